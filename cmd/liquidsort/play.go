package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-liquidsort/internal/config"
	"github.com/vovakirdan/tui-liquidsort/internal/core"
	"github.com/vovakirdan/tui-liquidsort/internal/games/liquidsort"
	"github.com/vovakirdan/tui-liquidsort/internal/levels"
	"github.com/vovakirdan/tui-liquidsort/internal/platform/tui"
	"github.com/vovakirdan/tui-liquidsort/internal/registry"
	"github.com/vovakirdan/tui-liquidsort/internal/storage"
)

var (
	flagConfig     string
	flagDifficulty string
	flagLevelFile  string
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play a puzzle",
	Long: `Start playing a generated puzzle at the chosen difficulty,
or a specific level loaded from a YAML file.

Controls:
  Left/Right/A/D  - Move cursor
  Space/Enter     - Select source, then pour into target
  X               - Cancel selection
  U               - Undo last pour
  H               - Show a hint
  R               - Restart with a fresh puzzle
  P               - Pause
  Q/Ctrl+C        - Quit

Difficulty options:
  easy   - 4 colors, generous empty space
  normal - 6 colors
  hard   - 8 colors, tighter empty space
  expert - 10 colors, minimal slack

Examples:
  liquidsort play
  liquidsort play --difficulty hard
  liquidsort play --seed 42 --difficulty expert
  liquidsort play --level ./levels/normal-0000002a.yaml
  liquidsort play --config ./my-liquidsort.yaml`,
	Args: cobra.NoArgs,
	Run:  runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom generation config YAML")
	playCmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, expert")
	playCmd.Flags().StringVar(&flagLevelFile, "level", "", "Path to a level YAML file to play instead of generating")
}

func runPlay(cmd *cobra.Command, args []string) {
	// Get terminal size
	width, height := 80, 24 // Defaults
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}

	// Create runtime config
	cfg := core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
	}

	// Configure the game before creation
	liquidsort.SetConfigPath(flagConfig)
	if flagDifficulty != "" {
		if !config.ValidPreset(flagDifficulty) {
			fmt.Fprintf(os.Stderr, "Error: unknown difficulty %q\n", flagDifficulty)
			fmt.Fprintln(os.Stderr, "Valid presets: easy, normal, hard, expert")
			os.Exit(1)
		}
		liquidsort.SetDifficultyPreset(flagDifficulty)
	}

	// A pinned level bypasses generation entirely
	if flagLevelFile != "" {
		level, err := levels.Read(flagLevelFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading level: %v\n", err)
			os.Exit(1)
		}
		liquidsort.SetLevel(level)
		defer liquidsort.ClearLevel()
	}

	// Create game instance
	game, err := registry.Create("liquidsort")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating game: %v\n", err)
		os.Exit(1)
	}

	// Open score storage
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open scores database: %v\n", err)
		// Continue without storage - game still works
		store = nil
	}

	// Run the game
	runErr := tui.Run(game, store, cfg)

	// Close store before potential exit
	if store != nil {
		store.Close()
	}

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", runErr)
		os.Exit(1)
	}
}

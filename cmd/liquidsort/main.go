// liquidsort is a terminal liquid-sorting puzzle: pour colored liquid
// between containers until every container holds a single color.
//
// Usage:
//
//	liquidsort play             - Play a puzzle at the chosen difficulty
//	liquidsort menu             - Interactive difficulty picker
//	liquidsort gen              - Generate a batch of verified levels
//	liquidsort solve <file>     - Solve a level file and print the moves
//	liquidsort scores           - Show best runs
//	liquidsort serve            - Start SSH server for remote play
//
// Global flags:
//
//	--fps <rate>    - Set tick rate (default: 30)
//	--seed <value>  - Set RNG seed for reproducible puzzles
//	--db <path>     - Set database path (default: ~/.liquidsort/scores.db)
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	// Import the game to register it
	_ "github.com/vovakirdan/tui-liquidsort/internal/games/liquidsort"
)

var (
	// Global flags
	flagFPS    int
	flagSeed   int64
	flagDBPath string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "liquidsort",
	Short: "Liquid Sort - a pouring puzzle for your terminal",
	Long: `Liquid Sort is a terminal puzzle game. Containers hold stacked runs
of colored liquid; pour matching colors on top of each other until every
container is empty or filled with a single color.

Available commands:
  play     - Play a puzzle directly
  menu     - Interactive difficulty picker
  gen      - Generate a batch of verified level files
  solve    - Solve a level file and print the pour sequence
  scores   - View best runs
  serve    - Start SSH server for remote play

Examples:
  liquidsort play
  liquidsort play --difficulty hard
  liquidsort gen --count 20 --difficulty expert
  liquidsort solve levels/normal-0000002a.yaml
  liquidsort serve --ssh :2222
  liquidsort scores normal`,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 30, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.liquidsort/scores.db", "Path to scores database")

	// Add subcommands
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(genCmd)
	rootCmd.AddCommand(solveCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(serveCmd)
}

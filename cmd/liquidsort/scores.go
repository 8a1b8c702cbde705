package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-liquidsort/internal/config"
	"github.com/vovakirdan/tui-liquidsort/internal/storage"
)

var flagScoresClear bool

var scoresCmd = &cobra.Command{
	Use:   "scores [difficulty]",
	Short: "Show best runs",
	Long: `Display the best runs, ranked by fewest moves.

With a difficulty argument, shows the top 10 runs for that difficulty.
Without one, shows a per-difficulty summary.

Examples:
  liquidsort scores
  liquidsort scores normal
  liquidsort scores hard --clear`,
	Args: cobra.MaximumNArgs(1),
	Run:  runScoresCmd,
}

func init() {
	scoresCmd.Flags().BoolVar(&flagScoresClear, "clear", false, "Clear recorded runs for the given difficulty")
}

func runScoresCmd(cmd *cobra.Command, args []string) {
	difficulty := ""
	if len(args) > 0 {
		difficulty = args[0]
		if !config.ValidPreset(difficulty) {
			fmt.Fprintf(os.Stderr, "Error: unknown difficulty %q\n", difficulty)
			fmt.Fprintln(os.Stderr, "Valid presets: easy, normal, hard, expert")
			os.Exit(1)
		}
	}

	if flagScoresClear && difficulty == "" {
		fmt.Fprintln(os.Stderr, "Error: --clear requires a difficulty argument")
		os.Exit(1)
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening scores database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	if flagScoresClear {
		if err := store.ClearScores(difficulty); err != nil {
			fmt.Fprintf(os.Stderr, "Error clearing runs: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Cleared runs for difficulty %q.\n", difficulty)
		return
	}

	if difficulty == "" {
		printSummary(store)
		return
	}

	printBestRuns(store, difficulty)
}

// printBestRuns shows the top 10 runs for one difficulty.
func printBestRuns(store *storage.Store, difficulty string) {
	scores, err := store.BestScores(difficulty, 10)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving runs: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Best Runs - %s\n", difficulty)
	fmt.Println()

	if len(scores) == 0 {
		fmt.Println("No runs recorded yet.")
		fmt.Println()
		fmt.Printf("Play 'liquidsort play --difficulty %s' to set the first record!\n", difficulty)
		return
	}

	fmt.Printf("  %-4s  %-20s  %-6s  %-6s  %s\n", "Rank", "Level", "Moves", "Time", "Date")
	fmt.Printf("  %-4s  %-20s  %-6s  %-6s  %s\n", "----", "-----", "-----", "----", "----")

	for i, entry := range scores {
		fmt.Printf("  %-4d  %-20s  %-6d  %-6s  %s\n",
			i+1, entry.LevelID, entry.Moves,
			formatRunDuration(entry.Duration),
			entry.CreatedAt.Format("2006-01-02 15:04"))
	}
}

// printSummary shows one line per difficulty with run counts and bests.
func printSummary(store *storage.Store) {
	stats, err := store.GetAllStats()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving stats: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("Runs by difficulty")
	fmt.Println()
	fmt.Printf("  %-8s  %-6s  %-10s  %-9s  %s\n", "Preset", "Runs", "Best moves", "Avg moves", "Last played")
	fmt.Printf("  %-8s  %-6s  %-10s  %-9s  %s\n", "------", "----", "----------", "---------", "-----------")

	for _, preset := range config.Presets() {
		s, ok := stats[string(preset)]
		if !ok || s.Runs == 0 {
			fmt.Printf("  %-8s  %-6s  %-10s  %-9s  %s\n", preset, "-", "-", "-", "-")
			continue
		}
		fmt.Printf("  %-8s  %-6d  %-10d  %-9.1f  %s\n",
			preset, s.Runs, s.BestMoves, s.AvgMoves,
			s.LastPlayed.Format("2006-01-02 15:04"))
	}
}

// formatRunDuration renders seconds as m:ss.
func formatRunDuration(secs int) string {
	if secs <= 0 {
		return "-"
	}
	return fmt.Sprintf("%d:%02d", secs/60, secs%60)
}

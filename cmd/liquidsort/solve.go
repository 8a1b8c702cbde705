package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-liquidsort/internal/engine"
	"github.com/vovakirdan/tui-liquidsort/internal/levels"
)

var (
	flagSolveMaxStates int
	flagSolveMaxDepth  int
)

var solveCmd = &cobra.Command{
	Use:   "solve <file-or-dir>",
	Short: "Solve a level file and print the pour sequence",
	Long: `Run the solvability search on a level YAML file, or on every
level in a directory.

Prints the shortest pour sequence found, or reports that the level is
unsolvable. The search is bounded: "unproven" means the budget ran out
before either outcome could be established, not that the level is bad.

Examples:
  liquidsort solve levels/normal-0000002a.yaml
  liquidsort solve ./levels
  liquidsort solve hard-level.yaml --max-states 500000`,
	Args: cobra.ExactArgs(1),
	Run:  runSolve,
}

func init() {
	defaults := engine.DefaultSearchParams()
	solveCmd.Flags().IntVar(&flagSolveMaxStates, "max-states", defaults.MaxStates, "Ceiling on distinct states explored")
	solveCmd.Flags().IntVar(&flagSolveMaxDepth, "max-depth", defaults.MaxDepth, "Ceiling on solution length explored")
}

func runSolve(_ *cobra.Command, args []string) {
	params := engine.SearchParams{
		MaxStates: flagSolveMaxStates,
		MaxDepth:  flagSolveMaxDepth,
	}

	info, err := os.Stat(args[0])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if info.IsDir() {
		solveBatch(args[0], params)
		return
	}

	level, err := levels.Read(args[0])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading level: %v\n", err)
		os.Exit(1)
	}
	if !solveOne(level, params, true) {
		os.Exit(1)
	}
}

// solveBatch solves every level in a directory, one summary line each.
func solveBatch(dir string, params engine.SearchParams) {
	batch, err := levels.ReadDir(dir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading levels: %v\n", err)
		os.Exit(1)
	}
	if len(batch) == 0 {
		fmt.Printf("No level files in %s\n", dir)
		return
	}

	solved := 0
	for _, level := range batch {
		if solveOne(level, params, false) {
			solved++
		}
	}
	fmt.Printf("\nSolved %d of %d level(s).\n", solved, len(batch))
	if solved < len(batch) {
		os.Exit(1)
	}
}

// solveOne runs the search on a single level. With verbose set it prints
// the full pour sequence; otherwise a one-line summary.
func solveOne(level engine.Level, params engine.SearchParams, verbose bool) bool {
	result := engine.Solve(level.NewState(), params)

	if !verbose {
		fmt.Printf("%-24s %-12s moves=%-3d states=%d\n",
			level.ID, result.Status, len(result.Moves), result.StatesExplored)
		return result.Solvable()
	}

	fmt.Printf("Level: %s (%d containers, %d colors, capacity %d)\n",
		level.ID, level.ContainerCount(), level.ColorCount, level.Capacity)
	fmt.Printf("Status: %s (explored %d states)\n", result.Status, result.StatesExplored)

	switch result.Status {
	case engine.StatusSolved:
		fmt.Printf("Solution: %d move(s)\n\n", len(result.Moves))
		for i, m := range result.Moves {
			// Container numbers are 1-based for the player
			fmt.Printf("  %2d. pour %d into %d  (%s x%d)\n",
				i+1, m.From+1, m.To+1, m.Segment.Color, m.Segment.Volume)
		}
	case engine.StatusNoSolution:
		fmt.Println("No pour sequence reaches a sorted state.")
	case engine.StatusUnproven:
		fmt.Println("Search budget exhausted before a proof either way.")
		fmt.Println("Retry with a larger --max-states or --max-depth.")
	}
	return result.Solvable()
}

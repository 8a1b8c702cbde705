package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-liquidsort/internal/config"
	"github.com/vovakirdan/tui-liquidsort/internal/engine"
	"github.com/vovakirdan/tui-liquidsort/internal/levels"
	"github.com/vovakirdan/tui-liquidsort/internal/storage"
)

var (
	flagGenCount      int
	flagGenDifficulty string
	flagGenConfig     string
	flagGenOut        string
	flagGenCache      bool
)

var genCmd = &cobra.Command{
	Use:   "gen",
	Short: "Generate a batch of verified levels",
	Long: `Generate verified-solvable levels and write them as YAML files.

Each level is scrambled from a solved arrangement, checked by a bounded
breadth-first search, and trimmed of unnecessary empty containers. Levels
are also cached in the database keyed by their canonical signature, so
repeat runs skip structural duplicates.

Examples:
  liquidsort gen
  liquidsort gen --count 50 --difficulty hard
  liquidsort gen --seed 42 --out ./my-levels
  liquidsort gen --cache=false --out ./levels`,
	Args: cobra.NoArgs,
	Run:  runGen,
}

func init() {
	genCmd.Flags().IntVar(&flagGenCount, "count", 10, "Number of levels to generate")
	genCmd.Flags().StringVar(&flagGenDifficulty, "difficulty", "normal", "Difficulty preset: easy, normal, hard, expert")
	genCmd.Flags().StringVar(&flagGenConfig, "config", "", "Path to custom generation config YAML")
	genCmd.Flags().StringVar(&flagGenOut, "out", "levels", "Output directory for level files")
	genCmd.Flags().BoolVar(&flagGenCache, "cache", true, "Cache generated levels in the database")
}

func runGen(_ *cobra.Command, _ []string) {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "liquidsort-gen",
	})

	if !config.ValidPreset(flagGenDifficulty) {
		logger.Fatal("unknown difficulty", "difficulty", flagGenDifficulty)
	}
	preset := config.DifficultyPreset(flagGenDifficulty)

	cfg, err := config.Load(flagGenConfig)
	if err != nil {
		logger.Fatal("could not load config", "error", err)
	}
	config.ApplyPreset(&cfg, preset)

	if err := os.MkdirAll(flagGenOut, 0o755); err != nil {
		logger.Fatal("could not create output directory", "dir", flagGenOut, "error", err)
	}

	var store *storage.Store
	if flagGenCache {
		store, err = storage.Open(flagDBPath)
		if err != nil {
			logger.Warn("could not open database, caching disabled", "error", err)
			store = nil
		} else {
			defer store.Close()
		}
	}

	baseSeed := flagSeed
	if baseSeed == 0 {
		baseSeed = time.Now().UnixNano()
	}

	written, duplicates, failed := 0, 0, 0

	for i := 0; i < flagGenCount; i++ {
		// Widely spaced seeds keep consecutive levels uncorrelated
		seed := uint64(baseSeed) + uint64(i)*1000003
		id := fmt.Sprintf("%s-%08x", preset, uint32(seed))

		params := cfg.GenParams(id, preset, seed)
		level, err := engine.GenerateLevel(params)
		if err != nil {
			if errors.Is(err, engine.ErrGenerationExhausted) {
				logger.Warn("generation exhausted, skipping", "id", id)
				failed++
				continue
			}
			logger.Fatal("generation failed", "id", id, "error", err)
		}

		// Re-solve to record the solution length alongside the level
		result := engine.Solve(level.NewState(), params.Search)

		path := filepath.Join(flagGenOut, id+".yaml")
		if err := levels.Write(path, level); err != nil {
			logger.Fatal("could not write level file", "path", path, "error", err)
		}

		if store != nil {
			data, encErr := levels.Encode(level)
			if encErr != nil {
				logger.Fatal("could not encode level", "id", id, "error", encErr)
			}
			inserted, saveErr := store.SaveLevel(storage.LevelRecord{
				LevelID:     level.ID,
				Signature:   level.Signature(),
				Difficulty:  level.Difficulty,
				ColorCount:  level.ColorCount,
				Capacity:    level.Capacity,
				Data:        data,
				SolutionLen: len(result.Moves),
			})
			if saveErr != nil {
				logger.Warn("could not cache level", "id", id, "error", saveErr)
			} else if !inserted {
				logger.Info("structural duplicate, already cached", "id", id)
				duplicates++
			}
		}

		logger.Info("generated",
			"id", id,
			"containers", level.ContainerCount(),
			"colors", level.ColorCount,
			"solution", len(result.Moves),
		)
		written++
	}

	fmt.Printf("Wrote %d level(s) to %s", written, flagGenOut)
	if duplicates > 0 {
		fmt.Printf(" (%d structural duplicate(s))", duplicates)
	}
	if failed > 0 {
		fmt.Printf(" (%d failed)", failed)
	}
	fmt.Println()
}

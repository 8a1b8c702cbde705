package storage

import (
	"os"
	"path/filepath"
	"testing"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "test.db")
	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestStoreOpenClose(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	// Check that the file was created
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created")
	}
}

func TestStoreSaveAndRetrieve(t *testing.T) {
	store := openTestStore(t)

	runs := []struct {
		level      string
		difficulty string
		moves      int
		duration   int
	}{
		{"normal-001", "normal", 24, 90},
		{"normal-002", "normal", 18, 70},
		{"normal-003", "normal", 31, 120},
		{"hard-001", "hard", 45, 300},
	}
	for _, r := range runs {
		if _, err := store.SaveScore(r.level, r.difficulty, r.moves, r.duration); err != nil {
			t.Fatalf("SaveScore() failed: %v", err)
		}
	}

	scores, err := store.BestScores("normal", 10)
	if err != nil {
		t.Fatalf("BestScores() failed: %v", err)
	}
	if len(scores) != 3 {
		t.Fatalf("Expected 3 normal runs, got %d", len(scores))
	}

	// Sorted by move count ascending
	if scores[0].Moves != 18 || scores[1].Moves != 24 || scores[2].Moves != 31 {
		t.Errorf("Runs not ordered by moves: %v", scores)
	}
	if scores[0].LevelID != "normal-002" {
		t.Errorf("Best run level = %s, want normal-002", scores[0].LevelID)
	}

	hardScores, err := store.BestScores("hard", 10)
	if err != nil {
		t.Fatalf("BestScores() failed: %v", err)
	}
	if len(hardScores) != 1 {
		t.Errorf("Expected 1 hard run, got %d", len(hardScores))
	}

	all, err := store.BestScores("", 10)
	if err != nil {
		t.Fatalf("BestScores() failed: %v", err)
	}
	if len(all) != 4 {
		t.Errorf("Expected 4 runs across difficulties, got %d", len(all))
	}
}

func TestStoreDurationBreaksTies(t *testing.T) {
	store := openTestStore(t)

	store.SaveScore("a", "normal", 20, 120)
	store.SaveScore("b", "normal", 20, 60)

	scores, err := store.BestScores("normal", 10)
	if err != nil {
		t.Fatalf("BestScores() failed: %v", err)
	}
	if scores[0].LevelID != "b" {
		t.Errorf("Faster run should rank first on equal moves, got %s", scores[0].LevelID)
	}
}

func TestStoreBestScoresLimit(t *testing.T) {
	store := openTestStore(t)

	for i := 0; i < 5; i++ {
		store.SaveScore("lvl", "easy", (i+1)*10, 0)
	}

	scores, err := store.BestScores("easy", 3)
	if err != nil {
		t.Fatalf("BestScores() failed: %v", err)
	}
	if len(scores) != 3 {
		t.Fatalf("Expected 3 runs with limit, got %d", len(scores))
	}
	if scores[0].Moves != 10 || scores[1].Moves != 20 || scores[2].Moves != 30 {
		t.Errorf("Runs not in expected order: %v", scores)
	}
}

func TestStoreBestMoves(t *testing.T) {
	store := openTestStore(t)

	// No runs yet
	best, err := store.BestMoves("normal-001")
	if err != nil {
		t.Fatalf("BestMoves() failed: %v", err)
	}
	if best != 0 {
		t.Errorf("Expected 0 for an unplayed level, got %d", best)
	}

	store.SaveScore("normal-001", "normal", 30, 0)
	store.SaveScore("normal-001", "normal", 22, 0)
	store.SaveScore("normal-001", "normal", 27, 0)

	best, err = store.BestMoves("normal-001")
	if err != nil {
		t.Fatalf("BestMoves() failed: %v", err)
	}
	if best != 22 {
		t.Errorf("Expected best of 22 moves, got %d", best)
	}
}

func TestStoreClearScores(t *testing.T) {
	store := openTestStore(t)

	store.SaveScore("a", "easy", 10, 0)
	store.SaveScore("b", "easy", 12, 0)
	store.SaveScore("c", "hard", 40, 0)

	if err := store.ClearScores("easy"); err != nil {
		t.Fatalf("ClearScores() failed: %v", err)
	}

	easyScores, _ := store.BestScores("easy", 10)
	if len(easyScores) != 0 {
		t.Errorf("Expected 0 easy runs after clear, got %d", len(easyScores))
	}

	hardScores, _ := store.BestScores("hard", 10)
	if len(hardScores) != 1 {
		t.Errorf("Hard runs should not be affected by clearing easy")
	}
}

func TestStoreLevelCache(t *testing.T) {
	store := openTestStore(t)

	rec := LevelRecord{
		LevelID:     "normal-001",
		Signature:   "blue:2|blue:2|green:2,red:2|red:2,green:2|",
		Difficulty:  "normal",
		ColorCount:  3,
		Capacity:    4,
		Data:        []byte("id: normal-001\n"),
		SolutionLen: 4,
	}

	inserted, err := store.SaveLevel(rec)
	if err != nil {
		t.Fatalf("SaveLevel() failed: %v", err)
	}
	if !inserted {
		t.Error("First SaveLevel should insert")
	}

	// Same signature is skipped
	rec.LevelID = "normal-dup"
	inserted, err = store.SaveLevel(rec)
	if err != nil {
		t.Fatalf("SaveLevel() failed: %v", err)
	}
	if inserted {
		t.Error("Duplicate signature should not insert")
	}

	got, err := store.LevelBySignature(rec.Signature)
	if err != nil {
		t.Fatalf("LevelBySignature() failed: %v", err)
	}
	if got == nil {
		t.Fatal("Cached level not found by signature")
	}
	if got.LevelID != "normal-001" || got.SolutionLen != 4 {
		t.Errorf("Cached level fields wrong: %+v", got)
	}
	if string(got.Data) != "id: normal-001\n" {
		t.Errorf("Cached level data wrong: %q", got.Data)
	}

	missing, err := store.LevelBySignature("no-such-signature")
	if err != nil {
		t.Fatalf("LevelBySignature() failed: %v", err)
	}
	if missing != nil {
		t.Error("Unknown signature should return nil")
	}
}

func TestStoreRandomLevel(t *testing.T) {
	store := openTestStore(t)

	// Empty cache
	rec, err := store.RandomLevel("normal")
	if err != nil {
		t.Fatalf("RandomLevel() failed: %v", err)
	}
	if rec != nil {
		t.Error("RandomLevel on empty cache should return nil")
	}

	store.SaveLevel(LevelRecord{
		LevelID: "normal-001", Signature: "sig-1", Difficulty: "normal",
		ColorCount: 4, Capacity: 4, Data: []byte("a"),
	})
	store.SaveLevel(LevelRecord{
		LevelID: "hard-001", Signature: "sig-2", Difficulty: "hard",
		ColorCount: 8, Capacity: 4, Data: []byte("b"),
	})

	rec, err = store.RandomLevel("normal")
	if err != nil {
		t.Fatalf("RandomLevel() failed: %v", err)
	}
	if rec == nil || rec.Difficulty != "normal" {
		t.Errorf("RandomLevel should pick from the requested difficulty, got %+v", rec)
	}

	count, err := store.LevelCount("")
	if err != nil {
		t.Fatalf("LevelCount() failed: %v", err)
	}
	if count != 2 {
		t.Errorf("LevelCount = %d, want 2", count)
	}
	count, err = store.LevelCount("hard")
	if err != nil {
		t.Fatalf("LevelCount() failed: %v", err)
	}
	if count != 1 {
		t.Errorf("LevelCount(hard) = %d, want 1", count)
	}
}

func TestStoreStats(t *testing.T) {
	store := openTestStore(t)

	store.SaveScore("a", "normal", 20, 60)
	store.SaveScore("b", "normal", 30, 90)
	store.SaveScore("c", "hard", 50, 200)

	stats, err := store.GetStats("normal")
	if err != nil {
		t.Fatalf("GetStats() failed: %v", err)
	}
	if stats.Runs != 2 || stats.BestMoves != 20 {
		t.Errorf("normal stats wrong: %+v", stats)
	}
	if stats.AvgMoves != 25.0 {
		t.Errorf("AvgMoves = %f, want 25", stats.AvgMoves)
	}

	all, err := store.GetAllStats()
	if err != nil {
		t.Fatalf("GetAllStats() failed: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("Expected stats for 2 difficulties, got %d", len(all))
	}
	if all["hard"].BestMoves != 50 {
		t.Errorf("hard stats wrong: %+v", all["hard"])
	}

	// Unplayed difficulty yields zeroed stats
	empty, err := store.GetStats("expert")
	if err != nil {
		t.Fatalf("GetStats() failed: %v", err)
	}
	if empty.Runs != 0 || empty.BestMoves != 0 {
		t.Errorf("expert stats should be zero: %+v", empty)
	}
}

func TestStoreNestedPath(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "subdir", "deep", "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() with nested path failed: %v", err)
	}
	defer store.Close()

	// Verify nested directories were created
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created in nested directory")
	}
}

// Package storage provides SQLite-based persistence for solve results and
// generated levels. Uses the pure-Go modernc.org/sqlite driver to avoid CGO
// dependencies.
package storage

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// Store manages the SQLite database connection.
type Store struct {
	db *sql.DB
}

// ScoreEntry represents a single completed level run.
// Fewer moves is better; duration breaks ties.
type ScoreEntry struct {
	ID         int64
	LevelID    string
	Difficulty string
	Moves      int
	Duration   int // Seconds from first pour to win
	CreatedAt  time.Time
}

// LevelRecord is a cached generated level.
// The signature uniquely identifies the level content, so regeneration
// never stores duplicates.
type LevelRecord struct {
	ID          int64
	LevelID     string
	Signature   string
	Difficulty  string
	ColorCount  int
	Capacity    int
	Data        []byte // YAML level file
	SolutionLen int    // Move count of the verified solution, 0 if unverified
	CreatedAt   time.Time
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
	// Expand ~ to home directory
	if dbPath != "" && dbPath[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("storage: cannot expand home directory: %w", err)
		}
		dbPath = filepath.Join(home, dbPath[1:])
	}

	// Create parent directories
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db}

	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return store, nil
}

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS scores (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			level_id TEXT NOT NULL,
			difficulty TEXT NOT NULL,
			moves INTEGER NOT NULL,
			duration_secs INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_scores_level ON scores(level_id);
		CREATE INDEX IF NOT EXISTS idx_scores_best ON scores(difficulty, moves ASC, duration_secs ASC);

		CREATE TABLE IF NOT EXISTS levels (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			level_id TEXT NOT NULL,
			signature TEXT NOT NULL UNIQUE,
			difficulty TEXT NOT NULL,
			color_count INTEGER NOT NULL,
			capacity INTEGER NOT NULL,
			data BLOB NOT NULL,
			solution_len INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_levels_difficulty ON levels(difficulty);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// parseTimestamp converts a scanned created_at value.
// The driver may return either time.Time or a string.
func parseTimestamp(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case string:
		if parsed, err := time.Parse("2006-01-02 15:04:05", t); err == nil {
			return parsed
		}
	}
	return time.Time{}
}

// SaveScore records a completed run for the given level.
// Returns the ID of the inserted record.
func (s *Store) SaveScore(levelID, difficulty string, moves, durationSecs int) (int64, error) {
	result, err := s.db.Exec(
		"INSERT INTO scores (level_id, difficulty, moves, duration_secs) VALUES (?, ?, ?, ?)",
		levelID, difficulty, moves, durationSecs,
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save score: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}

	return id, nil
}

// BestScores retrieves the best N runs for the given difficulty, ordered by
// move count ascending with duration as the tiebreaker. An empty difficulty
// returns runs across all difficulties.
func (s *Store) BestScores(difficulty string, limit int) ([]ScoreEntry, error) {
	if limit <= 0 {
		limit = 10
	}

	query := `SELECT id, level_id, difficulty, moves, duration_secs, created_at
		 FROM scores
		 ORDER BY moves ASC, duration_secs ASC
		 LIMIT ?`
	args := []any{limit}
	if difficulty != "" {
		query = `SELECT id, level_id, difficulty, moves, duration_secs, created_at
			 FROM scores
			 WHERE difficulty = ?
			 ORDER BY moves ASC, duration_secs ASC
			 LIMIT ?`
		args = []any{difficulty, limit}
	}

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query scores: %w", err)
	}
	defer rows.Close()

	var entries []ScoreEntry
	for rows.Next() {
		var e ScoreEntry
		var createdAt any
		if err := rows.Scan(&e.ID, &e.LevelID, &e.Difficulty, &e.Moves, &e.Duration, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		e.CreatedAt = parseTimestamp(createdAt)
		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return entries, nil
}

// BestMoves returns the lowest move count recorded for the given level.
// Returns 0 if the level has never been completed.
func (s *Store) BestMoves(levelID string) (int, error) {
	var moves sql.NullInt64
	err := s.db.QueryRow(
		"SELECT MIN(moves) FROM scores WHERE level_id = ?",
		levelID,
	).Scan(&moves)

	if err != nil {
		return 0, fmt.Errorf("storage: cannot query best moves: %w", err)
	}

	if !moves.Valid {
		return 0, nil
	}

	return int(moves.Int64), nil
}

// ClearScores deletes all runs for the given difficulty.
// An empty difficulty clears everything.
func (s *Store) ClearScores(difficulty string) error {
	var err error
	if difficulty == "" {
		_, err = s.db.Exec("DELETE FROM scores")
	} else {
		_, err = s.db.Exec("DELETE FROM scores WHERE difficulty = ?", difficulty)
	}
	if err != nil {
		return fmt.Errorf("storage: cannot clear scores: %w", err)
	}
	return nil
}

// SaveLevel caches a generated level. Levels with a signature already in
// the cache are skipped; the returned bool reports whether a row was
// inserted.
func (s *Store) SaveLevel(rec LevelRecord) (bool, error) {
	result, err := s.db.Exec(
		`INSERT OR IGNORE INTO levels
		 (level_id, signature, difficulty, color_count, capacity, data, solution_len)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		rec.LevelID, rec.Signature, rec.Difficulty, rec.ColorCount, rec.Capacity, rec.Data, rec.SolutionLen,
	)
	if err != nil {
		return false, fmt.Errorf("storage: cannot save level: %w", err)
	}

	n, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("storage: cannot check insert: %w", err)
	}
	return n > 0, nil
}

// LevelBySignature retrieves a cached level by its content signature.
// Returns nil if no such level exists.
func (s *Store) LevelBySignature(signature string) (*LevelRecord, error) {
	var rec LevelRecord
	var createdAt any

	err := s.db.QueryRow(
		`SELECT id, level_id, signature, difficulty, color_count, capacity, data, solution_len, created_at
		 FROM levels
		 WHERE signature = ?`,
		signature,
	).Scan(
		&rec.ID, &rec.LevelID, &rec.Signature, &rec.Difficulty,
		&rec.ColorCount, &rec.Capacity, &rec.Data, &rec.SolutionLen, &createdAt,
	)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query level: %w", err)
	}

	rec.CreatedAt = parseTimestamp(createdAt)
	return &rec, nil
}

// RandomLevel picks a random cached level for the given difficulty.
// Returns nil if the cache holds none.
func (s *Store) RandomLevel(difficulty string) (*LevelRecord, error) {
	var rec LevelRecord
	var createdAt any

	err := s.db.QueryRow(
		`SELECT id, level_id, signature, difficulty, color_count, capacity, data, solution_len, created_at
		 FROM levels
		 WHERE difficulty = ?
		 ORDER BY RANDOM()
		 LIMIT 1`,
		difficulty,
	).Scan(
		&rec.ID, &rec.LevelID, &rec.Signature, &rec.Difficulty,
		&rec.ColorCount, &rec.Capacity, &rec.Data, &rec.SolutionLen, &createdAt,
	)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("storage: cannot pick level: %w", err)
	}

	rec.CreatedAt = parseTimestamp(createdAt)
	return &rec, nil
}

// LevelCount returns the number of cached levels for the given difficulty.
// An empty difficulty counts all cached levels.
func (s *Store) LevelCount(difficulty string) (int, error) {
	var count int
	var err error
	if difficulty == "" {
		err = s.db.QueryRow("SELECT COUNT(*) FROM levels").Scan(&count)
	} else {
		err = s.db.QueryRow("SELECT COUNT(*) FROM levels WHERE difficulty = ?", difficulty).Scan(&count)
	}
	if err != nil {
		return 0, fmt.Errorf("storage: cannot count levels: %w", err)
	}
	return count, nil
}

// DifficultyStats contains aggregated run statistics for one difficulty.
type DifficultyStats struct {
	Difficulty string
	Runs       int
	BestMoves  int
	AvgMoves   float64
	LastPlayed time.Time
}

// GetStats retrieves aggregated run statistics for a specific difficulty.
func (s *Store) GetStats(difficulty string) (*DifficultyStats, error) {
	stats := &DifficultyStats{Difficulty: difficulty}

	err := s.db.QueryRow(
		`SELECT COUNT(*), COALESCE(MIN(moves), 0), COALESCE(AVG(moves), 0)
		 FROM scores WHERE difficulty = ?`,
		difficulty,
	).Scan(&stats.Runs, &stats.BestMoves, &stats.AvgMoves)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get stats: %w", err)
	}

	var lastPlayed any
	err = s.db.QueryRow(
		`SELECT created_at FROM scores WHERE difficulty = ? ORDER BY created_at DESC LIMIT 1`,
		difficulty,
	).Scan(&lastPlayed)
	if err != nil && err != sql.ErrNoRows {
		return nil, fmt.Errorf("storage: cannot get last played: %w", err)
	}
	if err == nil {
		stats.LastPlayed = parseTimestamp(lastPlayed)
	}

	return stats, nil
}

// GetAllStats retrieves run statistics for every difficulty that has runs.
func (s *Store) GetAllStats() (map[string]*DifficultyStats, error) {
	rows, err := s.db.Query(
		`SELECT difficulty, COUNT(*), MIN(moves), AVG(moves), MAX(created_at)
		 FROM scores
		 GROUP BY difficulty`,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get all stats: %w", err)
	}
	defer rows.Close()

	stats := make(map[string]*DifficultyStats)
	for rows.Next() {
		var d DifficultyStats
		var lastPlayed any
		if err := rows.Scan(&d.Difficulty, &d.Runs, &d.BestMoves, &d.AvgMoves, &lastPlayed); err != nil {
			return nil, fmt.Errorf("storage: cannot scan stats row: %w", err)
		}
		d.LastPlayed = parseTimestamp(lastPlayed)
		stats[d.Difficulty] = &d
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return stats, nil
}

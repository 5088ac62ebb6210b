// Package storage provides the SQLite run journal for G Runner.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// DefaultPath is where the journal lives unless --db overrides it.
const DefaultPath = "~/.arcade/grunner.db"

// Store manages the SQLite database connection for the run journal.
type Store struct {
	db *sql.DB
}

// Run is one finished round as recorded in the journal.
type Run struct {
	ID        int64
	Session   string // Player or SSH user that played the round
	Score     int
	Pickups   int
	Duration  time.Duration
	Ramps     int
	PeakScale float64
	HitBy     string // Category that ended the round
	Preset    string // Difficulty preset the round was played with
	CreatedAt time.Time
}

// Stats aggregates every run in the journal.
type Stats struct {
	Runs          int
	BestScore     int
	TotalPickups  int
	TotalDuration time.Duration
	LongestRun    time.Duration
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
		CREATE TABLE IF NOT EXISTS runs (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			session TEXT NOT NULL,
			score INTEGER NOT NULL,
			pickups INTEGER NOT NULL DEFAULT 0,
			duration_ms INTEGER NOT NULL DEFAULT 0,
			ramps INTEGER NOT NULL DEFAULT 0,
			peak_scale REAL NOT NULL DEFAULT 0,
			hit_by TEXT NOT NULL DEFAULT '',
			preset TEXT NOT NULL DEFAULT 'classic',
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_runs_score ON runs(score DESC);
		CREATE INDEX IF NOT EXISTS idx_runs_created ON runs(created_at DESC);
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

// SaveRun records a finished round.
// Returns the ID of the inserted record.
func (s *Store) SaveRun(r Run) (int64, error) {
	result, err := s.db.Exec(
		`INSERT INTO runs (session, score, pickups, duration_ms, ramps, peak_scale, hit_by, preset)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		r.Session, r.Score, r.Pickups, r.Duration.Milliseconds(), r.Ramps, r.PeakScale, r.HitBy, r.Preset,
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save run: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}

	return id, nil
}

// RecentRuns retrieves the latest runs, newest first.
func (s *Store) RecentRuns(limit int) ([]Run, error) {
	return s.queryRuns(`ORDER BY created_at DESC, id DESC LIMIT ?`, limit)
}

// BestRuns retrieves the highest scoring runs.
// Ties are broken by the earlier run.
func (s *Store) BestRuns(limit int) ([]Run, error) {
	return s.queryRuns(`ORDER BY score DESC, id ASC LIMIT ?`, limit)
}

func (s *Store) queryRuns(order string, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.db.Query(
		`SELECT id, session, score, pickups, duration_ms, ramps, peak_scale, hit_by, preset, created_at
		 FROM runs `+order,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var r Run
		var durationMS int64
		var createdAt any
		if err := rows.Scan(&r.ID, &r.Session, &r.Score, &r.Pickups, &durationMS,
			&r.Ramps, &r.PeakScale, &r.HitBy, &r.Preset, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		r.Duration = time.Duration(durationMS) * time.Millisecond
		r.CreatedAt = parseTime(createdAt)
		runs = append(runs, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return runs, nil
}

// Stats summarizes the whole journal. An empty journal yields zero Stats.
func (s *Store) Stats() (Stats, error) {
	var st Stats
	var best, pickups, total, longest sql.NullInt64
	err := s.db.QueryRow(
		`SELECT COUNT(*), MAX(score), SUM(pickups), SUM(duration_ms), MAX(duration_ms) FROM runs`,
	).Scan(&st.Runs, &best, &pickups, &total, &longest)
	if err != nil {
		return Stats{}, fmt.Errorf("storage: cannot query stats: %w", err)
	}

	st.BestScore = int(best.Int64)
	st.TotalPickups = int(pickups.Int64)
	st.TotalDuration = time.Duration(total.Int64) * time.Millisecond
	st.LongestRun = time.Duration(longest.Int64) * time.Millisecond
	return st, nil
}

// ClearRuns deletes every run.
func (s *Store) ClearRuns() error {
	if _, err := s.db.Exec("DELETE FROM runs"); err != nil {
		return fmt.Errorf("storage: cannot clear runs: %w", err)
	}
	return nil
}

// parseTime handles both time.Time and the string form SQLite may return.
func parseTime(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case string:
		for _, layout := range []string{"2006-01-02 15:04:05", time.RFC3339} {
			if parsed, err := time.Parse(layout, t); err == nil {
				return parsed
			}
		}
	}
	return time.Time{}
}

// Package storage provides SQLite-based persistence for simulation run history.
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

// Store manages the SQLite database connection for run history.
type Store struct {
	db *sql.DB
}

// RunRecord describes one finished simulation run. Only summary counters are
// kept; the bodies themselves are never persisted.
type RunRecord struct {
	ID         int64
	SimID      string
	Preset     string
	Seed       int64
	Population int
	Ticks      uint64
	Respawns   uint64
	Duration   int // Wall-clock seconds
	CreatedAt  time.Time
}

// RespawnRate returns respawns per thousand ticks.
func (r RunRecord) RespawnRate() float64 {
	if r.Ticks == 0 {
		return 0
	}
	return float64(r.Respawns) * 1000 / float64(r.Ticks)
}

// RunStats aggregates all runs of one simulation.
type RunStats struct {
	Runs          int
	TotalTicks    uint64
	TotalRespawns uint64
	LongestTicks  uint64
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
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
			sim_id TEXT NOT NULL,
			preset TEXT NOT NULL DEFAULT '',
			seed INTEGER NOT NULL,
			population INTEGER NOT NULL,
			ticks INTEGER NOT NULL DEFAULT 0,
			respawns INTEGER NOT NULL DEFAULT 0,
			duration_secs INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_runs_sim_id ON runs(sim_id);
		CREATE INDEX IF NOT EXISTS idx_runs_longest ON runs(sim_id, ticks DESC);
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

// SaveRun records a finished run and returns its ID.
func (s *Store) SaveRun(r RunRecord) (int64, error) {
	res, err := s.db.Exec(
		`INSERT INTO runs (sim_id, preset, seed, population, ticks, respawns, duration_secs)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		r.SimID, r.Preset, r.Seed, r.Population, int64(r.Ticks), int64(r.Respawns), r.Duration,
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save run: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}
	return id, nil
}

const runColumns = `id, sim_id, preset, seed, population, ticks, respawns, duration_secs, created_at`

// RecentRuns returns the newest runs of a simulation, newest first.
func (s *Store) RecentRuns(simID string, limit int) ([]RunRecord, error) {
	if limit <= 0 {
		limit = 20
	}
	return s.queryRuns(
		`SELECT `+runColumns+` FROM runs WHERE sim_id = ? ORDER BY id DESC LIMIT ?`,
		simID, limit,
	)
}

// TopRuns returns the longest runs of a simulation by tick count.
func (s *Store) TopRuns(simID string, limit int) ([]RunRecord, error) {
	if limit <= 0 {
		limit = 10
	}
	return s.queryRuns(
		`SELECT `+runColumns+` FROM runs WHERE sim_id = ? ORDER BY ticks DESC, id ASC LIMIT ?`,
		simID, limit,
	)
}

func (s *Store) queryRuns(query string, args ...any) ([]RunRecord, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query runs: %w", err)
	}
	defer rows.Close()

	var runs []RunRecord
	for rows.Next() {
		var r RunRecord
		var ticks, respawns int64
		var createdAt any
		if err := rows.Scan(&r.ID, &r.SimID, &r.Preset, &r.Seed, &r.Population,
			&ticks, &respawns, &r.Duration, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		r.Ticks = uint64(ticks)
		r.Respawns = uint64(respawns)
		r.CreatedAt = parseTime(createdAt)
		runs = append(runs, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return runs, nil
}

// Stats aggregates every stored run of a simulation.
func (s *Store) Stats(simID string) (RunStats, error) {
	var st RunStats
	var ticks, respawns, longest sql.NullInt64
	err := s.db.QueryRow(
		`SELECT COUNT(*), SUM(ticks), SUM(respawns), MAX(ticks) FROM runs WHERE sim_id = ?`,
		simID,
	).Scan(&st.Runs, &ticks, &respawns, &longest)
	if err != nil {
		return RunStats{}, fmt.Errorf("storage: cannot query run stats: %w", err)
	}

	st.TotalTicks = uint64(ticks.Int64)
	st.TotalRespawns = uint64(respawns.Int64)
	st.LongestTicks = uint64(longest.Int64)
	return st, nil
}

// ClearRuns deletes all runs of a simulation.
func (s *Store) ClearRuns(simID string) error {
	if _, err := s.db.Exec("DELETE FROM runs WHERE sim_id = ?", simID); err != nil {
		return fmt.Errorf("storage: cannot clear runs: %w", err)
	}
	return nil
}

// parseTime handles both time.Time and string datetimes from the driver.
func parseTime(v any) time.Time {
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

// Package store keeps a history of page loads in SQLite so failed loads can
// be inspected after the fact.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"github.com/Zachkp/portfolio/internal/loader"
)

// Store wraps the load history database.
type Store struct {
	db *sql.DB
}

// Stats summarises the load history.
type Stats struct {
	TotalLoads      int64            `json:"total_loads"`
	FailedLoads     int64            `json:"failed_loads"`
	LoadsToday      int64            `json:"loads_today"`
	FailuresByCause map[string]int64 `json:"failures_by_cause"`
	LastFailure     *loader.Result   `json:"last_failure,omitempty"`
}

// Open creates or opens the database at path.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("creating database directory: %w", err)
	}

	db, err := sql.Open("sqlite", path+"?_journal_mode=WAL&_busy_timeout=5000&_time_format=sqlite")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("pinging database: %w", err)
	}

	s := &Store{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}
	return s, nil
}

// OpenMemory creates an in-memory database for tests.
func OpenMemory() (*Store, error) {
	db, err := sql.Open("sqlite", ":memory:?_time_format=sqlite")
	if err != nil {
		return nil, fmt.Errorf("opening in-memory database: %w", err)
	}
	// every connection to :memory: is a fresh database
	db.SetMaxOpenConns(1)

	s := &Store{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}
	return s, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

const schema = `
CREATE TABLE IF NOT EXISTS load_events (
	id TEXT PRIMARY KEY,
	started_at DATETIME NOT NULL,
	duration_ms INTEGER NOT NULL DEFAULT 0,
	ok INTEGER NOT NULL,
	reason TEXT NOT NULL,
	document TEXT NOT NULL DEFAULT '',
	message TEXT NOT NULL DEFAULT ''
);
CREATE INDEX IF NOT EXISTS idx_load_events_started_at ON load_events(started_at);
`

func (s *Store) migrate() error {
	_, err := s.db.Exec(schema)
	return err
}

// Record stores one load result.
func (s *Store) Record(ctx context.Context, r loader.Result) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO load_events (id, started_at, duration_ms, ok, reason, document, message)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, r.ID, r.StartedAt.UTC(), r.Duration.Milliseconds(), r.OK, string(r.Reason), r.Document, r.Message)
	if err != nil {
		return fmt.Errorf("recording load %s: %w", r.ID, err)
	}
	return nil
}

// Recent returns the latest results, newest first.
func (s *Store) Recent(ctx context.Context, limit int) ([]loader.Result, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, started_at, duration_ms, ok, reason, document, message
		FROM load_events
		ORDER BY started_at DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("querying loads: %w", err)
	}
	defer rows.Close()

	var results []loader.Result
	for rows.Next() {
		r, err := scanResult(rows)
		if err != nil {
			return nil, err
		}
		results = append(results, r)
	}
	return results, rows.Err()
}

// Stats aggregates the whole history. "Today" is the UTC day of now.
func (s *Store) Stats(ctx context.Context, now time.Time) (*Stats, error) {
	stats := &Stats{FailuresByCause: make(map[string]int64)}

	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*), COALESCE(SUM(CASE WHEN ok THEN 0 ELSE 1 END), 0) FROM load_events`).
		Scan(&stats.TotalLoads, &stats.FailedLoads)
	if err != nil {
		return nil, fmt.Errorf("counting loads: %w", err)
	}

	day := now.UTC().Truncate(24 * time.Hour)
	err = s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM load_events WHERE started_at >= ? AND started_at < ?`,
		day, day.Add(24*time.Hour)).Scan(&stats.LoadsToday)
	if err != nil {
		return nil, fmt.Errorf("counting today's loads: %w", err)
	}

	rows, err := s.db.QueryContext(ctx, `SELECT reason, COUNT(*) FROM load_events WHERE NOT ok GROUP BY reason`)
	if err != nil {
		return nil, fmt.Errorf("grouping failures: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var reason string
		var n int64
		if err := rows.Scan(&reason, &n); err != nil {
			return nil, err
		}
		stats.FailuresByCause[reason] = n
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	row := s.db.QueryRowContext(ctx, `
		SELECT id, started_at, duration_ms, ok, reason, document, message
		FROM load_events WHERE NOT ok
		ORDER BY started_at DESC LIMIT 1
	`)
	last, err := scanResult(row)
	switch {
	case err == nil:
		stats.LastFailure = &last
	case err != sql.ErrNoRows:
		return nil, err
	}

	return stats, nil
}

// Cleanup deletes results older than the cutoff and returns how many went.
func (s *Store) Cleanup(ctx context.Context, before time.Time) (int64, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM load_events WHERE started_at < ?`, before.UTC())
	if err != nil {
		return 0, fmt.Errorf("cleaning up loads: %w", err)
	}
	return res.RowsAffected()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanResult(sc scanner) (loader.Result, error) {
	var (
		r        loader.Result
		reason   string
		duration int64
	)
	if err := sc.Scan(&r.ID, &r.StartedAt, &duration, &r.OK, &reason, &r.Document, &r.Message); err != nil {
		return r, err
	}
	r.Reason = loader.Reason(reason)
	r.Duration = time.Duration(duration) * time.Millisecond
	return r, nil
}

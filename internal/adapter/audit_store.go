package adapter

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // registers the "sqlite" driver

	m "github.com/mouse-blink/mender/internal/model"
)

// AuditStore keeps an append-only history of runs.
type AuditStore interface {
	Record(ctx context.Context, report *m.RunReport) error
	History(ctx context.Context, limit int) ([]m.AuditEntry, error)
	Close() error
}

const auditSchema = `
CREATE TABLE IF NOT EXISTS runs (
	run_id      TEXT PRIMARY KEY,
	mode        TEXT NOT NULL,
	state       TEXT NOT NULL,
	root        TEXT NOT NULL,
	started_at  INTEGER NOT NULL,
	finished_at INTEGER NOT NULL,
	changed     INTEGER NOT NULL DEFAULT 0,
	unfixed     INTEGER NOT NULL DEFAULT 0,
	errors      INTEGER NOT NULL DEFAULT 0,
	snapshot    TEXT NOT NULL DEFAULT ''
);
CREATE INDEX IF NOT EXISTS idx_runs_started ON runs(started_at);
`

// SQLiteAuditStore is the AuditStore backed by a local SQLite database.
type SQLiteAuditStore struct {
	conn *sql.DB
}

// OpenAuditStore opens (or creates) the audit database at path.
func OpenAuditStore(path m.Path) (*SQLiteAuditStore, error) {
	if dir := filepath.Dir(string(path)); dir != "" {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return nil, fmt.Errorf("failed to create audit directory: %w", err)
		}
	}

	conn, err := sql.Open("sqlite", string(path))
	if err != nil {
		return nil, fmt.Errorf("failed to open audit database: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA synchronous=NORMAL",
		"PRAGMA busy_timeout=5000",
	}

	for _, pragma := range pragmas {
		if _, err := conn.Exec(pragma); err != nil {
			_ = conn.Close()
			return nil, fmt.Errorf("failed to set pragma: %w", err)
		}
	}

	if _, err := conn.Exec(auditSchema); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("failed to initialize audit schema: %w", err)
	}

	return &SQLiteAuditStore{conn: conn}, nil
}

// Record inserts or replaces the row for report.
func (s *SQLiteAuditStore) Record(ctx context.Context, report *m.RunReport) error {
	snapshot := ""
	if report.Snapshot != nil {
		snapshot = report.Snapshot.Timestamp
	}

	_, err := s.conn.ExecContext(ctx, `
		INSERT OR REPLACE INTO runs
			(run_id, mode, state, root, started_at, finished_at, changed, unfixed, errors, snapshot)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		report.ID,
		string(report.Mode),
		string(report.State),
		string(report.Root),
		report.StartedAt.UnixNano(),
		report.FinishedAt.UnixNano(),
		len(report.Changed()),
		len(report.Unfixed()),
		len(report.Errors),
		snapshot,
	)
	if err != nil {
		return fmt.Errorf("record run %s: %w", report.ID, err)
	}

	return nil
}

// History returns the most recent runs, newest first. A non-positive limit returns all rows.
func (s *SQLiteAuditStore) History(ctx context.Context, limit int) ([]m.AuditEntry, error) {
	query := `SELECT run_id, mode, state, root, started_at, finished_at, changed, unfixed, errors, snapshot
		FROM runs ORDER BY started_at DESC, run_id`
	args := []any{}

	if limit > 0 {
		query += " LIMIT ?"

		args = append(args, limit)
	}

	rows, err := s.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query run history: %w", err)
	}
	defer rows.Close()

	entries := make([]m.AuditEntry, 0)

	for rows.Next() {
		var (
			e                 m.AuditEntry
			mode, state, root string
			started, finished int64
		)

		if err := rows.Scan(&e.RunID, &mode, &state, &root, &started, &finished,
			&e.Changed, &e.Unfixed, &e.Errors, &e.Snapshot); err != nil {
			return nil, fmt.Errorf("scan run history: %w", err)
		}

		e.Mode = m.Mode(mode)
		e.State = m.RunState(state)
		e.Root = m.Path(root)
		e.StartedAt = time.Unix(0, started).UTC()
		e.FinishedAt = time.Unix(0, finished).UTC()
		entries = append(entries, e)
	}

	return entries, rows.Err()
}

// Close closes the database connection.
func (s *SQLiteAuditStore) Close() error {
	return s.conn.Close()
}

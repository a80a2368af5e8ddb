package audit

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	_ "modernc.org/sqlite"
)

// schema is the append-only audit table. No updates, no deletes except
// retention pruning.
const schema = `
CREATE TABLE IF NOT EXISTS audit_records (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    request_id TEXT NOT NULL,
    recorded_at TIMESTAMP NOT NULL,
    method TEXT NOT NULL,
    path TEXT NOT NULL,
    provider TEXT,
    requested_model TEXT,
    model TEXT,
    headers TEXT,
    body_summary TEXT,
    status INTEGER,
    response_summary TEXT,
    streamed BOOLEAN NOT NULL DEFAULT 0,
    chunks INTEGER NOT NULL DEFAULT 0,
    duration_ms INTEGER,
    filter TEXT,
    error TEXT
);
CREATE INDEX IF NOT EXISTS idx_audit_recorded_at ON audit_records(recorded_at);
CREATE INDEX IF NOT EXISTS idx_audit_request_id ON audit_records(request_id);
`

// SQLiteStore persists audit records to a local SQLite database.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore opens (or creates) the database at path and applies
// the schema. WAL mode keeps record writes from blocking the pruner.
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open audit database: %w", err)
	}
	// Single writer; SQLite serializes anyway.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to enable WAL mode: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to apply audit schema: %w", err)
	}
	return &SQLiteStore{db: db}, nil
}

// Write implements Sink.
func (s *SQLiteStore) Write(ctx context.Context, rec *Record) error {
	headers, err := json.Marshal(rec.Headers)
	if err != nil {
		return fmt.Errorf("failed to encode headers: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO audit_records (
			request_id, recorded_at, method, path, provider,
			requested_model, model, headers, body_summary, status,
			response_summary, streamed, chunks, duration_ms, filter, error
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.RequestID, rec.Timestamp.UTC(), rec.Method, rec.Path, rec.Provider,
		rec.RequestedModel, rec.Model, string(headers), rec.BodySummary, rec.Status,
		rec.ResponseSummary, rec.Streamed, rec.Chunks, rec.Duration.Milliseconds(),
		rec.Filter, rec.Error,
	)
	if err != nil {
		return fmt.Errorf("failed to insert audit record: %w", err)
	}
	return nil
}

// PruneBefore deletes records recorded before the cutoff and returns
// the number removed.
func (s *SQLiteStore) PruneBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	res, err := s.db.ExecContext(ctx,
		"DELETE FROM audit_records WHERE recorded_at < ?", cutoff.UTC())
	if err != nil {
		return 0, fmt.Errorf("failed to prune audit records: %w", err)
	}
	return res.RowsAffected()
}

// Count returns the number of stored records.
func (s *SQLiteStore) Count(ctx context.Context) (int64, error) {
	var n int64
	err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM audit_records").Scan(&n)
	return n, err
}

// Close implements Sink.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

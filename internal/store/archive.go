// Package store persists query results to a local SQLite archive so CLI
// sessions can re-run target selection offline. This is an opt-in
// convenience for the command-line tools; the library components never
// read from it.
package store

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/gob"
	"fmt"
	"time"

	"github.com/golang/snappy"
	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	"github.com/skycat/skycat/pkg/types"
)

// Archive stores catalog batches keyed by the SQL that produced them.
type Archive struct {
	db     *sql.DB
	dbPath string
}

// RunRecord describes one archived query run.
type RunRecord struct {
	RunID     string
	SQL       string
	RowCount  int
	CreatedAt time.Time
}

// Open opens (creating if needed) a query archive at dbPath.
func Open(dbPath string) (*Archive, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("failed to open archive database: %w", err)
	}

	schema := `
	CREATE TABLE IF NOT EXISTS query_runs (
		run_id     TEXT PRIMARY KEY,
		sql_text   TEXT NOT NULL,
		row_count  INTEGER NOT NULL,
		created_at INTEGER NOT NULL,
		payload    BLOB NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_query_runs_created ON query_runs(created_at);
	`
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize archive schema: %w", err)
	}

	return &Archive{db: db, dbPath: dbPath}, nil
}

// Close closes the archive database.
func (a *Archive) Close() error {
	return a.db.Close()
}

// SaveBatch archives a batch under a fresh run ID. The batch is stored as
// a snappy-compressed gob payload; gob is used over JSON because missing
// photometry decodes to NaN, which JSON cannot represent.
func (a *Archive) SaveBatch(ctx context.Context, sqlText string, batch *types.CatalogBatch) (string, error) {
	var payload bytes.Buffer
	if err := gob.NewEncoder(&payload).Encode(batch); err != nil {
		return "", fmt.Errorf("failed to encode batch: %w", err)
	}
	compressed := snappy.Encode(nil, payload.Bytes())

	runID := uuid.NewString()
	_, err := a.db.ExecContext(ctx,
		`INSERT INTO query_runs (run_id, sql_text, row_count, created_at, payload) VALUES (?, ?, ?, ?, ?)`,
		runID, sqlText, batch.Len(), time.Now().Unix(), compressed)
	if err != nil {
		return "", fmt.Errorf("failed to archive query run: %w", err)
	}
	return runID, nil
}

// LoadBatch restores an archived batch by run ID.
func (a *Archive) LoadBatch(ctx context.Context, runID string) (*types.CatalogBatch, error) {
	var compressed []byte
	err := a.db.QueryRowContext(ctx,
		`SELECT payload FROM query_runs WHERE run_id = ?`, runID).Scan(&compressed)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("run %s not found in archive", runID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load query run: %w", err)
	}

	payload, err := snappy.Decode(nil, compressed)
	if err != nil {
		return nil, fmt.Errorf("failed to decompress archived batch: %w", err)
	}

	var batch types.CatalogBatch
	if err := gob.NewDecoder(bytes.NewReader(payload)).Decode(&batch); err != nil {
		return nil, fmt.Errorf("failed to decode archived batch: %w", err)
	}
	return &batch, nil
}

// ListRuns returns archived runs, newest first.
func (a *Archive) ListRuns(ctx context.Context, limit int) ([]RunRecord, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := a.db.QueryContext(ctx,
		`SELECT run_id, sql_text, row_count, created_at FROM query_runs ORDER BY created_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list query runs: %w", err)
	}
	defer rows.Close()

	var out []RunRecord
	for rows.Next() {
		var rec RunRecord
		var created int64
		if err := rows.Scan(&rec.RunID, &rec.SQL, &rec.RowCount, &created); err != nil {
			return nil, err
		}
		rec.CreatedAt = time.Unix(created, 0)
		out = append(out, rec)
	}
	return out, rows.Err()
}

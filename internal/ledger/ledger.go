// Package ledger tracks which source documents a pipeline run has already
// processed, keyed by content hash, so repeated runs skip work and stay
// within the OCR service's rate limits.
package ledger

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/tarikhaida/menu-tracker/constants"
	"github.com/tarikhaida/menu-tracker/internal/entity"
)

const schema = `
CREATE TABLE IF NOT EXISTS documents (
	id            TEXT PRIMARY KEY,
	filename      TEXT NOT NULL,
	content_hash  TEXT NOT NULL UNIQUE,
	status        TEXT NOT NULL,
	record_count  INTEGER NOT NULL DEFAULT 0,
	error_message TEXT NOT NULL DEFAULT '',
	processed_at  TEXT NOT NULL
);
`

// Ledger is a sqlite-backed record of processed documents.
type Ledger struct {
	db     *sql.DB
	logger *slog.Logger
}

// Open opens (and if needed initializes) the ledger database at path.
// Use ":memory:" for an ephemeral ledger.
func Open(path string, logger *slog.Logger) (*Ledger, error) {
	if logger == nil {
		logger = slog.Default()
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open ledger %s: %w", path, err)
	}
	// The pipeline is single-writer; one connection avoids sqlite busy errors.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("init ledger schema: %w", err)
	}
	return &Ledger{db: db, logger: logger}, nil
}

func (l *Ledger) Close() error {
	return l.db.Close()
}

// IsCompleted reports whether a document with this content hash has already
// been processed successfully.
func (l *Ledger) IsCompleted(ctx context.Context, contentHash string) (bool, error) {
	var status string
	err := l.db.QueryRowContext(ctx,
		`SELECT status FROM documents WHERE content_hash = ?`, contentHash).Scan(&status)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("query ledger: %w", err)
	}
	return status == string(constants.DocStatusCompleted), nil
}

// Record upserts a document's outcome, keyed by content hash. A re-run of a
// previously failed document overwrites its row.
func (l *Ledger) Record(ctx context.Context, doc entity.Document) error {
	if doc.ID == uuid.Nil {
		doc.ID = uuid.New()
	}
	if doc.ProcessedAt.IsZero() {
		doc.ProcessedAt = time.Now().UTC()
	}

	_, err := l.db.ExecContext(ctx, `
		INSERT INTO documents (id, filename, content_hash, status, record_count, error_message, processed_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(content_hash) DO UPDATE SET
			filename      = excluded.filename,
			status        = excluded.status,
			record_count  = excluded.record_count,
			error_message = excluded.error_message,
			processed_at  = excluded.processed_at`,
		doc.ID.String(), doc.Filename, doc.ContentHash, string(doc.Status),
		doc.RecordCount, doc.ErrorMessage, doc.ProcessedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("record document: %w", err)
	}
	return nil
}

// List returns all ledger rows, most recent first.
func (l *Ledger) List(ctx context.Context) ([]entity.Document, error) {
	rows, err := l.db.QueryContext(ctx, `
		SELECT id, filename, content_hash, status, record_count, error_message, processed_at
		FROM documents ORDER BY processed_at DESC, filename ASC`)
	if err != nil {
		return nil, fmt.Errorf("list ledger: %w", err)
	}
	defer rows.Close()

	var docs []entity.Document
	for rows.Next() {
		var (
			doc         entity.Document
			id, status  string
			processedAt string
		)
		if err := rows.Scan(&id, &doc.Filename, &doc.ContentHash, &status,
			&doc.RecordCount, &doc.ErrorMessage, &processedAt); err != nil {
			return nil, fmt.Errorf("scan ledger row: %w", err)
		}
		doc.ID, err = uuid.Parse(id)
		if err != nil {
			return nil, fmt.Errorf("parse ledger id %q: %w", id, err)
		}
		doc.Status = constants.DocumentStatus(status)
		doc.ProcessedAt, err = time.Parse(time.RFC3339, processedAt)
		if err != nil {
			return nil, fmt.Errorf("parse ledger timestamp %q: %w", processedAt, err)
		}
		docs = append(docs, doc)
	}
	return docs, rows.Err()
}

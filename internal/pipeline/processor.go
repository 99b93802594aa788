// Package pipeline coordinates the batch run: enumerate menu images, OCR
// each one through Docupipe, parse and normalize the results, and persist
// the merged store.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/tarikhaida/menu-tracker/constants"
	"github.com/tarikhaida/menu-tracker/internal/builder"
	"github.com/tarikhaida/menu-tracker/internal/common"
	"github.com/tarikhaida/menu-tracker/internal/entity"
	"github.com/tarikhaida/menu-tracker/internal/ledger"
	"github.com/tarikhaida/menu-tracker/internal/parser"
	"github.com/tarikhaida/menu-tracker/internal/store"
)

// TextExtractor is the OCR dependency: image bytes in, extracted text out.
type TextExtractor interface {
	ProcessImage(ctx context.Context, filename string, contents []byte) (string, error)
}

// Config holds batch behavior settings.
type Config struct {
	ImageDir string
	// DocumentDelay is the pause between OCR uploads; the service rate-limits.
	DocumentDelay time.Duration
}

// Processor runs one synchronous, strictly sequential pipeline pass. A
// per-document failure is logged and the batch continues; only store-level
// failures are fatal for the run.
type Processor struct {
	cfg     Config
	ocr     TextExtractor
	builder *builder.Builder
	store   *store.Store
	ledger  *ledger.Ledger
	logger  *slog.Logger
}

func NewProcessor(cfg Config, ocr TextExtractor, b *builder.Builder, st *store.Store, ld *ledger.Ledger, logger *slog.Logger) *Processor {
	if logger == nil {
		logger = slog.Default()
	}
	return &Processor{cfg: cfg, ocr: ocr, builder: b, store: st, ledger: ld, logger: logger}
}

// RunStats summarizes one pipeline pass.
type RunStats struct {
	RunID     uuid.UUID
	Scanned   int
	Skipped   int
	Processed int
	Failed    int
	Records   int
}

// Run executes the full pass over the image directory.
func (p *Processor) Run(ctx context.Context) (RunStats, error) {
	stats := RunStats{RunID: uuid.New()}
	ctx = common.WithRunID(ctx, stats.RunID.String())

	// Merge into whatever is already stored; a store that does not exist
	// yet just means a first run.
	if err := p.store.Load(); err != nil {
		if !errors.Is(err, common.ErrNoData) {
			return stats, common.WrapError(err, "load store")
		}
		p.logger.Info("pipeline.store.empty", "run_id", stats.RunID)
	}

	files, err := listMenuImages(p.cfg.ImageDir)
	if err != nil {
		return stats, common.WrapError(err, "list menu images")
	}
	if len(files) == 0 {
		p.logger.Warn("pipeline.images.none", "dir", p.cfg.ImageDir)
		return stats, nil
	}

	for i, path := range files {
		stats.Scanned++
		name := filepath.Base(path)

		hash, err := ledger.FileChecksum(path)
		if err != nil {
			p.logger.Error("pipeline.checksum.failed", "filename", name, "error", err)
			stats.Failed++
			continue
		}
		done, err := p.ledger.IsCompleted(ctx, hash)
		if err != nil {
			return stats, common.WrapError(err, "query ledger")
		}
		if done {
			p.logger.Debug("pipeline.document.skip", "filename", name, "hash", hash)
			stats.Skipped++
			continue
		}

		count, err := p.processDocument(ctx, path, hash)
		if err != nil {
			// One bad document never aborts the batch.
			p.logger.Error("pipeline.document.failed", "filename", name, "error", err)
			stats.Failed++
		} else {
			stats.Processed++
			stats.Records += count
		}

		if i < len(files)-1 && p.cfg.DocumentDelay > 0 {
			select {
			case <-ctx.Done():
				return stats, ctx.Err()
			case <-time.After(p.cfg.DocumentDelay):
			}
		}
	}

	if stats.Processed > 0 {
		if err := p.store.Save(); err != nil {
			return stats, common.WrapError(err, "persist store")
		}
	}

	p.logger.Info("pipeline.run.ok",
		"run_id", stats.RunID,
		"scanned", stats.Scanned,
		"skipped", stats.Skipped,
		"processed", stats.Processed,
		"failed", stats.Failed,
		"records", stats.Records,
		"store_size", p.store.Len(),
	)
	return stats, nil
}

// processDocument uploads one image, waits for its OCR text, and merges the
// extracted records into the store. The outcome lands in the ledger either
// way.
func (p *Processor) processDocument(ctx context.Context, path, hash string) (int, error) {
	name := filepath.Base(path)

	contents, err := os.ReadFile(path)
	if err != nil {
		p.recordOutcome(ctx, name, hash, constants.DocStatusFailed, 0, err)
		return 0, fmt.Errorf("read image: %w", err)
	}

	text, err := p.ocr.ProcessImage(ctx, name, contents)
	if err != nil {
		p.recordOutcome(ctx, name, hash, constants.DocStatusFailed, 0, err)
		return 0, fmt.Errorf("ocr: %w", err)
	}

	menus := parser.ParseMarkdownTable(text)
	if len(menus) == 0 {
		// Parse failure is "no data extracted", not an error. Re-uploading
		// the same image would only reproduce the same text.
		p.logger.Warn("pipeline.parse.empty", "filename", name, "text_bytes", len(text))
		p.recordOutcome(ctx, name, hash, constants.DocStatusCompleted, 0, nil)
		return 0, nil
	}

	records := p.builder.Build(name, menus)
	added, replaced := p.store.UpsertBatch(records)

	p.logger.Info("pipeline.document.ok",
		"filename", name, "days", len(menus),
		"records", len(records), "added", added, "replaced", replaced)

	p.recordOutcome(ctx, name, hash, constants.DocStatusCompleted, len(records), nil)
	return len(records), nil
}

func (p *Processor) recordOutcome(ctx context.Context, name, hash string, status constants.DocumentStatus, count int, cause error) {
	doc := entity.Document{
		Filename:    name,
		ContentHash: hash,
		Status:      status,
		RecordCount: count,
	}
	if cause != nil {
		doc.ErrorMessage = cause.Error()
	}
	if err := p.ledger.Record(ctx, doc); err != nil {
		p.logger.Error("pipeline.ledger.record_failed", "filename", name, "error", err)
	}
}

// listMenuImages returns the allowed image files directly under dir, in
// name order so runs are deterministic.
func listMenuImages(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	var files []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if !constants.AllowedExt(filepath.Ext(e.Name())) {
			continue
		}
		files = append(files, filepath.Join(dir, e.Name()))
	}
	sort.Strings(files)
	return files, nil
}

// FindByDate loads the store and looks up one date. common.ErrNoData means
// the store is absent entirely; common.ErrNotFound means no menu for that
// date. Callers must not conflate the two.
func FindByDate(st *store.Store, date time.Time) (entity.MenuRecord, error) {
	if err := st.Load(); err != nil {
		return entity.MenuRecord{}, err
	}
	return st.FindByDate(date)
}

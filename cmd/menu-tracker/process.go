package main

import (
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/tarikhaida/menu-tracker/internal/builder"
	"github.com/tarikhaida/menu-tracker/internal/docupipe"
	"github.com/tarikhaida/menu-tracker/internal/ledger"
	"github.com/tarikhaida/menu-tracker/internal/menudate"
	"github.com/tarikhaida/menu-tracker/internal/pipeline"
	"github.com/tarikhaida/menu-tracker/internal/store"
)

func processCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "process",
		Short: "OCR every new menu image and merge the results into the store",
		Long: `Scans the image directory, sends each image not yet on the ledger to
Docupipe, parses the returned markdown table, and persists the merged
records as CSV, JSON, and XLSX.

Re-running is safe: documents already processed are skipped by content
hash, and records for the same date are replaced, not duplicated.`,
		Args: cobra.NoArgs,
		RunE: runProcess,
	}
}

func runProcess(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	logger := slog.Default()

	ld, err := ledger.Open(cfg.Paths.LedgerPath, logger)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := ld.Close(); cerr != nil {
			logger.Error("ledger.close_failed", "error", cerr)
		}
	}()

	client := docupipe.NewClient(docupipe.Config{
		BaseURL:      cfg.Docupipe.BaseURL,
		APIKey:       cfg.Docupipe.APIKey,
		PollInterval: cfg.Docupipe.PollInterval,
		PollCeiling:  cfg.Docupipe.PollCeiling,
		MaxWait:      cfg.Docupipe.MaxWait,
		HTTPTimeout:  cfg.Docupipe.HTTPTimeout,
	}, logger)

	resolver := menudate.NewResolver(menudate.Config{
		DefaultYear:  cfg.Dates.DefaultYear,
		DefaultMonth: time.Month(cfg.Dates.DefaultMonth),
	}, logger)

	p := pipeline.NewProcessor(pipeline.Config{
		ImageDir:      cfg.Paths.ImageDir,
		DocumentDelay: cfg.Pipeline.DocumentDelay,
	}, client, builder.New(resolver, logger), store.New(cfg.Paths.OutputDir, logger), ld, logger)

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	start := time.Now()
	stats, err := p.Run(ctx)
	if err != nil {
		return fmt.Errorf("pipeline run %s: %w", stats.RunID, err)
	}

	fmt.Printf("run %s: %d scanned, %d skipped, %d processed, %d failed, %d records in %s\n",
		stats.RunID, stats.Scanned, stats.Skipped, stats.Processed, stats.Failed,
		stats.Records, time.Since(start).Round(time.Millisecond))
	return nil
}

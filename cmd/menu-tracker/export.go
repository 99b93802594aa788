package main

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/tarikhaida/menu-tracker/internal/common"
	"github.com/tarikhaida/menu-tracker/internal/store"
)

func exportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "export",
		Short: "Rewrite the JSON and XLSX mirrors from the canonical CSV",
		Long: `Loads the stored records and rewrites all three output files. Useful
after hand-editing the CSV or when a mirror file was deleted.`,
		Args: cobra.NoArgs,
		RunE: runExport,
	}
}

func runExport(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	st := store.New(cfg.Paths.OutputDir, slog.Default())

	if err := st.Load(); err != nil {
		if errors.Is(err, common.ErrNoData) {
			return fmt.Errorf("no menu store at %s, nothing to export", cfg.Paths.OutputDir)
		}
		return err
	}
	if err := st.Save(); err != nil {
		return err
	}

	fmt.Printf("exported %d records to %s\n", st.Len(), cfg.Paths.OutputDir)
	return nil
}

package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/spf13/cobra"

	"github.com/tarikhaida/menu-tracker/constants"
	"github.com/tarikhaida/menu-tracker/internal/common"
	"github.com/tarikhaida/menu-tracker/internal/entity"
	"github.com/tarikhaida/menu-tracker/internal/pipeline"
	"github.com/tarikhaida/menu-tracker/internal/store"
)

var lookupJSON bool

func lookupCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "lookup <date>",
		Short: "Show the menu stored for a date (YYYY-MM-DD)",
		Args:  cobra.ExactArgs(1),
		RunE:  runLookup,
	}
	cmd.Flags().BoolVar(&lookupJSON, "json", false, "output as JSON")
	return cmd
}

func runLookup(cmd *cobra.Command, args []string) error {
	date, err := time.Parse(entity.DateLayout, args[0])
	if err != nil {
		return fmt.Errorf("invalid date %q, expected YYYY-MM-DD: %w", args[0], err)
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	st := store.New(cfg.Paths.OutputDir, slog.Default())

	record, err := pipeline.FindByDate(st, date)
	switch {
	case errors.Is(err, common.ErrNoData):
		return fmt.Errorf("no menu store at %s, run `menu-tracker process` first", cfg.Paths.OutputDir)
	case errors.Is(err, common.ErrNotFound):
		return fmt.Errorf("no menu recorded for %s", args[0])
	case err != nil:
		return err
	}

	if lookupJSON {
		out, err := json.MarshalIndent(record, "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(out))
		return nil
	}

	fmt.Printf("%s %d %s %d (%s)\n", record.DayOfWeek, record.DayNumber,
		constants.FrenchMonthName(record.Date.Month()), record.Date.Year(), record.SourceFilename)
	fmt.Printf("  Entrée:         %s\n", record.Entree)
	fmt.Printf("  Plats:          %s\n", record.Plats)
	fmt.Printf("  Accompagnement: %s\n", record.Accompagnement)
	fmt.Printf("  Dessert:        %s\n", record.Dessert)
	return nil
}

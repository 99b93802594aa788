package main

import (
	"fmt"
	"log/slog"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/tarikhaida/menu-tracker/internal/ledger"
)

func ledgerCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "ledger",
		Short: "List processed documents and their outcomes",
		Args:  cobra.NoArgs,
		RunE:  runLedger,
	}
}

func runLedger(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	ld, err := ledger.Open(cfg.Paths.LedgerPath, slog.Default())
	if err != nil {
		return err
	}
	defer ld.Close()

	docs, err := ld.List(cmd.Context())
	if err != nil {
		return err
	}
	if len(docs) == 0 {
		fmt.Println("ledger is empty")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "PROCESSED\tSTATUS\tRECORDS\tFILENAME\tERROR")
	for _, d := range docs {
		fmt.Fprintf(w, "%s\t%s\t%d\t%s\t%s\n",
			d.ProcessedAt.Local().Format(time.DateTime), d.Status, d.RecordCount,
			d.Filename, d.ErrorMessage)
	}
	return w.Flush()
}

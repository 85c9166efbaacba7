package main

import (
	"encoding/csv"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/loteria-results/static-api/internal/decoder"
)

// convertCmd converts a spreadsheet to plain CSV
var convertCmd = &cobra.Command{
	Use:   "convert <input> <output.csv>",
	Short: "Convert a results spreadsheet to CSV",
	Long: `Decodes a local spreadsheet (XLSX or CSV) and writes it back out
as comma-separated CSV, preserving header and row order. Fully blank rows
are dropped.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("read %s: %w", args[0], err)
		}

		table, err := decoder.DecodeTable(data)
		if err != nil {
			return err
		}

		out, err := os.Create(args[1])
		if err != nil {
			return fmt.Errorf("create %s: %w", args[1], err)
		}
		defer out.Close()

		w := csv.NewWriter(out)
		if err := w.Write(table.Header); err != nil {
			return fmt.Errorf("write header: %w", err)
		}
		for _, row := range table.Rows {
			if err := w.Write(row); err != nil {
				return fmt.Errorf("write row: %w", err)
			}
		}
		w.Flush()
		if err := w.Error(); err != nil {
			return fmt.Errorf("flush %s: %w", args[1], err)
		}

		slog.Info("spreadsheet converted", "input", args[0], "output", args[1], "rows", len(table.Rows))
		return nil
	},
}

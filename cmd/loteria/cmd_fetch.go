package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/loteria-results/static-api/internal/services"
	"github.com/loteria-results/static-api/pkg/caixa"
)

var fetchOut string

// fetchCmd downloads the raw spreadsheet without generating anything
var fetchCmd = &cobra.Command{
	Use:   "fetch",
	Short: "Download the results spreadsheet for the configured lottery",
	RunE: func(cmd *cobra.Command, args []string) error {
		client := caixa.NewClient(cfg.Source.BaseURL, cfg.FetchTimeout())

		modalidade := services.Modalidade(cfg)
		data, err := client.FetchSpreadsheet(cmd.Context(), modalidade)
		if err != nil {
			return err
		}

		out := fetchOut
		if out == "" {
			out = cfg.Lottery + ".xlsx"
		}
		if err := os.WriteFile(out, data, 0o644); err != nil {
			return fmt.Errorf("save spreadsheet: %w", err)
		}
		slog.Info("spreadsheet saved", "lottery", cfg.Lottery, "modalidade", modalidade, "path", out, "bytes", len(data))
		return nil
	},
}

func init() {
	fetchCmd.Flags().StringVarP(&fetchOut, "out", "O", "", "destination file (default {lottery}.xlsx)")
}

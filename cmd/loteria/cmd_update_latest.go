package main

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/loteria-results/static-api/internal/services"
	"github.com/loteria-results/static-api/pkg/caixa"
)

// updateLatestCmd patches only the most recent draw into the tree
var updateLatestCmd = &cobra.Command{
	Use:   "update-latest",
	Short: "Refresh the latest draw from the Caixa JSON API without a full rebuild",
	Long: `Fetches the most recent draw from the per-lottery JSON endpoint
and writes its contest documents and the latest pointer into the existing
output tree, refreshing the manifest. Meant for frequent scheduled runs
between full spreadsheet publications.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		client := caixa.NewClient(cfg.Source.BaseURL, cfg.FetchTimeout())
		svc := services.NewUpdateService(client, cfg)

		rec, err := svc.UpdateLatest(cmd.Context())
		if err != nil {
			return err
		}

		date := "unknown"
		if rec.Date != nil {
			date = *rec.Date
		}
		slog.Info("update complete", "contest", rec.Contest, "date", date, "prizes", len(rec.Results))
		return nil
	},
}

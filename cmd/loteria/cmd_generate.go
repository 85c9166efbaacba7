package main

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/loteria-results/static-api/internal/services"
	"github.com/loteria-results/static-api/pkg/caixa"
)

var (
	inputFile   string
	failOnEmpty bool
)

// generateCmd runs the full rebuild pipeline
var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Rebuild the full static API tree from the published spreadsheet",
	Long: `Downloads the complete results spreadsheet for the configured
lottery, normalizes every draw into a canonical contest record, and
rewrites the static JSON tree plus the documentation page. Each run is a
clean rebuild of the whole tree, not an incremental update.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if cmd.Flags().Changed("fail-on-empty") {
			cfg.Pipeline.FailOnEmpty = failOnEmpty
		}

		client := caixa.NewClient(cfg.Source.BaseURL, cfg.FetchTimeout())
		svc := services.NewPipelineService(client, cfg)

		res, err := svc.Run(cmd.Context(), inputFile)
		if err != nil {
			return err
		}
		slog.Info("generation complete",
			"run", res.RunID,
			"contests", res.Manifest.TotalContests,
			"output", cfg.Output.Dir,
		)
		return nil
	},
}

func init() {
	generateCmd.Flags().StringVarP(&inputFile, "input", "i", "", "read a local spreadsheet instead of downloading")
	generateCmd.Flags().BoolVar(&failOnEmpty, "fail-on-empty", false, "exit non-zero when every source row is rejected")
}

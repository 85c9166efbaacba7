package main

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/loteria-results/static-api/internal/config"
	"github.com/loteria-results/static-api/internal/logging"
)

var (
	// Global flags
	cfgPath   string
	lottery   string
	outputDir string
	sourceURL string
	timeout   time.Duration
	verbose   bool

	// Loaded configuration, available to every subcommand
	cfg *config.Config
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "loteria",
	Short: "Static API generator for Brazilian lottery results",
	Long: `loteria rebuilds a tree of static JSON files from the result
spreadsheets published by Caixa Econômica Federal. The generated tree
mimics a REST API and can be served by any static host.

A full rebuild is "loteria generate"; between spreadsheet publications
"loteria update-latest" patches only the most recent draw.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// .env is optional; plain environment variables still apply
		_ = godotenv.Load()

		var err error
		cfg, err = config.Load(cfgPath)
		if err != nil {
			return fmt.Errorf("load configuration: %w", err)
		}
		applyFlagOverrides(cmd)
		logging.Setup(cfg.LogLevel, verbose)
		return nil
	},
}

// applyFlagOverrides lets explicitly-set flags win over config file and
// environment values.
func applyFlagOverrides(cmd *cobra.Command) {
	flags := cmd.Root().PersistentFlags()
	if flags.Changed("lottery") {
		cfg.Lottery = lottery
	}
	if flags.Changed("output") {
		cfg.Output.Dir = outputDir
	}
	if flags.Changed("source-url") {
		cfg.Source.BaseURL = sourceURL
	}
	if flags.Changed("timeout") {
		cfg.Source.TimeoutSeconds = int(timeout.Seconds())
	}
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&cfgPath, "config", "", "directory searched for config.yaml")
	flags.StringVarP(&lottery, "lottery", "l", "federal", "lottery identifier used to namespace the generated tree")
	flags.StringVarP(&outputDir, "output", "o", "public", "output root for the generated tree")
	flags.StringVar(&sourceURL, "source-url", "", "override for the Caixa API base URL")
	flags.DurationVar(&timeout, "timeout", 30*time.Second, "fetch timeout")
	flags.BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	rootCmd.AddCommand(generateCmd, fetchCmd, convertCmd, updateLatestCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

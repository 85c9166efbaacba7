package config

import (
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for the generator
type Config struct {
	Lottery  string
	Source   SourceConfig
	Output   OutputConfig
	Pages    PagesConfig
	Pipeline PipelineConfig
	LogLevel string
}

// SourceConfig holds fetch-boundary configuration
type SourceConfig struct {
	BaseURL        string
	TimeoutSeconds int
	// Slugs overrides the built-in lottery → modalidade download map.
	Slugs map[string]string
}

// OutputConfig holds output-tree configuration
type OutputConfig struct {
	Dir string
}

// PagesConfig holds documentation-page configuration
type PagesConfig struct {
	Enabled bool
}

// PipelineConfig holds run-policy configuration
type PipelineConfig struct {
	// FailOnEmpty makes a run with zero valid rows exit non-zero after
	// the empty manifest has been written.
	FailOnEmpty bool
}

// FetchTimeout returns the fetch boundary timeout as a duration.
func (c *Config) FetchTimeout() time.Duration {
	return time.Duration(c.Source.TimeoutSeconds) * time.Second
}

// Load loads configuration from environment variables and an optional
// config.yaml found in path or the working directory.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	if path != "" {
		v.AddConfigPath(path)
	}
	v.AddConfigPath(".")
	v.SetEnvPrefix("LOTERIA")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		// It's okay if the config file is not found, we'll use
		// environment variables and defaults
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, err
	}

	applyEnvOverrides(&config)
	return &config, nil
}

// setDefaults sets default values for configuration
func setDefaults(v *viper.Viper) {
	v.SetDefault("Lottery", "federal")
	v.SetDefault("Source.BaseURL", "")
	v.SetDefault("Source.TimeoutSeconds", 30)
	v.SetDefault("Output.Dir", "public")
	v.SetDefault("Pages.Enabled", true)
	v.SetDefault("Pipeline.FailOnEmpty", false)
	v.SetDefault("LogLevel", "info")
}

// applyEnvOverrides honors the flat environment variables that predate
// the viper setup and are still used by the scheduled runners.
func applyEnvOverrides(cfg *Config) {
	cfg.Lottery = GetEnv("LOTERIA_LOTTERY", cfg.Lottery)
	cfg.Output.Dir = GetEnv("LOTERIA_OUTPUT_DIR", cfg.Output.Dir)
	cfg.Source.BaseURL = GetEnv("LOTERIA_SOURCE_URL", cfg.Source.BaseURL)
	cfg.Source.TimeoutSeconds = GetEnvAsInt("LOTERIA_FETCH_TIMEOUT", cfg.Source.TimeoutSeconds)
	cfg.Pages.Enabled = GetEnvAsBool("LOTERIA_PAGES", cfg.Pages.Enabled)
	cfg.Pipeline.FailOnEmpty = GetEnvAsBool("LOTERIA_FAIL_ON_EMPTY", cfg.Pipeline.FailOnEmpty)

	// LOTERIA_SLUGS holds comma-separated lottery:modalidade pairs.
	for _, pair := range GetEnvAsSlice("LOTERIA_SLUGS", ",", nil) {
		name, slug, ok := strings.Cut(pair, ":")
		if !ok || strings.TrimSpace(name) == "" {
			continue
		}
		if cfg.Source.Slugs == nil {
			cfg.Source.Slugs = make(map[string]string)
		}
		cfg.Source.Slugs[strings.ToLower(strings.TrimSpace(name))] = strings.TrimSpace(slug)
	}
}

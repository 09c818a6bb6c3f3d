package config

import (
	"fmt"
	"strings"

	"github.com/kelseyhightower/envconfig"
)

// Config holds all application configuration.
type Config struct {
	Logging LogConfig
	Report  ReportConfig
	Metrics MetricsConfig
	Worker  WorkerConfig
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level       string `envconfig:"LOG_LEVEL" default:"info"`
	Development bool   `envconfig:"LOG_DEV" default:"false"`
}

// ReportConfig selects how the final report is rendered on stdout.
type ReportConfig struct {
	Format string `envconfig:"REPORT_FORMAT" default:"text"`
}

// MetricsConfig holds metrics export configuration.
type MetricsConfig struct {
	// Textfile is written in Prometheus text format after the run.
	// Empty disables export.
	Textfile string `envconfig:"METRICS_TEXTFILE"`
}

// WorkerConfig holds worker process configuration.
type WorkerConfig struct {
	// Binary is re-executed as each worker. Empty means the running executable.
	Binary string `envconfig:"WORKER_BINARY"`
}

var reportFormats = []string{"text", "json", "yaml", "toml"}

// Load loads configuration from environment variables.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// LoadOrDefault loads configuration from environment or returns default.
func LoadOrDefault() *Config {
	cfg, err := Load()
	if err != nil {
		return Default()
	}
	return cfg
}

// Default returns default configuration.
func Default() *Config {
	return &Config{
		Logging: LogConfig{
			Level:       "info",
			Development: false,
		},
		Report: ReportConfig{
			Format: "text",
		},
	}
}

// Validate checks values envconfig cannot express as types.
func (c *Config) Validate() error {
	c.Report.Format = strings.ToLower(strings.TrimSpace(c.Report.Format))
	for _, f := range reportFormats {
		if c.Report.Format == f {
			return nil
		}
	}
	return fmt.Errorf("invalid REPORT_FORMAT %q (want one of %s)", c.Report.Format, strings.Join(reportFormats, ", "))
}

// Package config provides 12-factor configuration for the shmcounters
// coordinator.
//
// Configuration is loaded from environment variables with sensible defaults.
// The positional arguments (worker count, iterations) are not configuration;
// they are parsed by the command.
//
// Configuration Sections:
//   - Logging: Log level and output format
//   - Report: Report rendering format (text, json, yaml, toml)
//   - Metrics: Optional Prometheus textfile export
//   - Worker: Executable re-run as each worker
//
// Example Usage:
//
//	cfg := config.LoadOrDefault()
//	logger, _ := logging.New(logging.Config{Level: cfg.Logging.Level})
//
// Environment Variables:
//   - LOG_LEVEL, LOG_DEV
//   - REPORT_FORMAT
//   - METRICS_TEXTFILE
//   - WORKER_BINARY
package config

// Package logging provides structured logging using uber/zap.
//
// Two modes are offered:
//   - Production: JSON output for machine parsing
//   - Development: Colored console output for human readability
//
// Every mode writes to stderr so that the coordinator's report on stdout
// stays machine readable. Workers inherit the coordinator's stderr.
//
// Example Usage:
//
//	logger := logging.NewDefault().ForRun(runID)
//	logger.Info("Workers spawned", zap.Int("count", n))
//	logger.Warn("Worker exited abnormally", zap.Error(err))
package logging

package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"go.uber.org/zap"

	"github.com/GriffinCanCode/shmcounters/internal/coordinator"
	"github.com/GriffinCanCode/shmcounters/internal/infrastructure/config"
	"github.com/GriffinCanCode/shmcounters/internal/infrastructure/monitoring"
	"github.com/GriffinCanCode/shmcounters/internal/logging"
	"github.com/GriffinCanCode/shmcounters/internal/shared/id"
	"github.com/GriffinCanCode/shmcounters/internal/worker"
)

func main() {
	if worker.IsWorkerProcess() {
		logger := newLogger(config.LoadOrDefault())
		code := worker.Main(logger)
		_ = logger.Sync()
		os.Exit(code)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args, os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

// run is the coordinator entry point. It returns the process exit code.
func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	flags := flag.NewFlagSet(args[0], flag.ContinueOnError)
	flags.SetOutput(stderr)
	dev := flags.Bool("dev", false, "Development logging (colored console, debug level)")
	format := flags.String("format", "", "Report format: text, json, yaml, toml (overrides REPORT_FORMAT)")
	flags.Usage = func() {
		fmt.Fprintf(stderr, "Usage: %s [flags] <num_workers> <num_increments_per_worker>\n", args[0])
		flags.PrintDefaults()
	}
	positional := args[1:]
	// A negative worker count looks like a flag; numbers are never flags here.
	if len(positional) == 0 || !isInteger(positional[0]) {
		if err := flags.Parse(positional); err != nil {
			return 1
		}
		positional = flags.Args()
	}
	if len(positional) != 2 {
		flags.Usage()
		return 1
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(stderr, "%v\n", err)
		return 1
	}
	if *dev {
		cfg.Logging.Development = true
		cfg.Logging.Level = "debug"
	}
	if *format != "" {
		cfg.Report.Format = *format
		if err := cfg.Validate(); err != nil {
			fmt.Fprintf(stderr, "%v\n", err)
			return 1
		}
	}

	params, err := coordinator.ParseArgs(positional)
	if err != nil {
		fmt.Fprintf(stderr, "%v\n", err)
		return 1
	}

	logger := newLogger(cfg)
	defer logger.Sync()

	runID := id.NewRunID()
	metrics := monitoring.NewMetrics(runID.String())
	c := coordinator.New(logger,
		coordinator.WithRunID(runID),
		coordinator.WithMetrics(metrics),
		coordinator.WithSpawner(&coordinator.ExecSpawner{
			Binary: cfg.Worker.Binary,
			Stderr: stderr,
		}),
	)

	rep, runErr := c.Run(ctx, params)

	if cfg.Metrics.Textfile != "" {
		if err := metrics.WriteTextfile(cfg.Metrics.Textfile); err != nil {
			logger.Warn("Failed to export metrics", zap.Error(err))
		}
	}

	if runErr != nil {
		fmt.Fprintf(stderr, "%v\n", runErr)
		return 1
	}

	if err := rep.Write(stdout, cfg.Report.Format); err != nil {
		fmt.Fprintf(stderr, "write report: %v\n", err)
		return 1
	}
	return 0
}

func isInteger(s string) bool {
	_, err := strconv.ParseInt(s, 10, 64)
	return err == nil
}

func newLogger(cfg *config.Config) *logging.Logger {
	lc := logging.DefaultConfig()
	if cfg.Logging.Development {
		lc = logging.DevelopmentConfig()
	}
	lc.Level = cfg.Logging.Level
	if cfg.Logging.Development && cfg.Logging.Level == "info" {
		lc.Level = "debug"
	}

	logger, err := logging.New(lc)
	if err != nil {
		return logging.NewDefault()
	}
	return logger
}

package coordinator

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/GriffinCanCode/shmcounters/internal/infrastructure/monitoring"
	"github.com/GriffinCanCode/shmcounters/internal/logging"
	"github.com/GriffinCanCode/shmcounters/internal/report"
	"github.com/GriffinCanCode/shmcounters/internal/shared/id"
)

// Coordinator owns the IPC resources of a run, spawns the workers, joins
// them and builds the report.
type Coordinator struct {
	runID    id.RunID
	logger   *logging.Logger
	metrics  *monitoring.Metrics
	spawner  Spawner
	allocate func() (*Resources, error)
}

// Option configures a Coordinator.
type Option func(*Coordinator)

// WithSpawner replaces the default ExecSpawner.
func WithSpawner(s Spawner) Option {
	return func(c *Coordinator) { c.spawner = s }
}

// WithMetrics records the run into m.
func WithMetrics(m *monitoring.Metrics) Option {
	return func(c *Coordinator) { c.metrics = m }
}

// WithRunID overrides the generated run ID.
func WithRunID(runID id.RunID) Option {
	return func(c *Coordinator) { c.runID = runID }
}

// New creates a Coordinator.
func New(logger *logging.Logger, opts ...Option) *Coordinator {
	c := &Coordinator{
		spawner:  &ExecSpawner{},
		allocate: Allocate,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.runID == "" {
		c.runID = id.NewRunID()
	}
	if logger == nil {
		logger = logging.NewNop()
	}
	c.logger = logger.ForRun(c.runID.String())
	return c
}

// RunID returns the identifier of this coordinator's run.
func (c *Coordinator) RunID() id.RunID { return c.runID }

// Run executes one full protocol round: validate, allocate, spawn, join,
// report. IPC resources are torn down on every return path.
//
// Cancelling ctx kills all workers; Run then reaps them, tears down and
// returns ErrInterrupted. A worker that fails its critical section does not
// fail the run; its status is part of the report.
func (c *Coordinator) Run(ctx context.Context, params Params) (*report.Report, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}

	res, err := c.allocate()
	if err != nil {
		c.logger.Error("Failed to allocate IPC resources", zap.Error(err))
		return nil, err
	}
	res.metrics = c.metrics
	c.recordCreated()
	c.logger.Info("IPC resources allocated",
		zap.Int("shm_id", res.Region.ID()),
		zap.Int("sem_id", res.Sem.ID()))

	defer func() {
		if c.metrics != nil {
			defer c.metrics.Finish()
		}
		if err := res.Teardown(); err != nil {
			c.logger.Error("IPC teardown incomplete", zap.Error(err))
			return
		}
		c.logger.Info("IPC resources removed")
	}()

	procs, err := SpawnWorkers(ctx, c.spawner, res, params, c.runID.String(), c.logger)
	if err != nil {
		if c.metrics != nil {
			var se *SpawnError
			if errors.As(err, &se) {
				c.metrics.WorkersSpawned.Add(float64(se.Started))
				c.metrics.WorkersKilled.Add(float64(se.Started))
			}
		}
		return nil, err
	}
	if c.metrics != nil {
		c.metrics.WorkersSpawned.Add(float64(len(procs)))
	}
	c.logger.Info("Workers spawned",
		zap.Int("workers", params.Workers),
		zap.Int64("iterations", params.Iterations))

	stop := context.AfterFunc(ctx, func() {
		c.logger.Warn("Run cancelled, killing workers")
		KillAll(procs, c.logger)
		if c.metrics != nil {
			c.metrics.WorkersKilled.Add(float64(len(procs)))
		}
	})

	statuses := JoinAll(procs, c.logger)
	if !stop() {
		return nil, fmt.Errorf("%w: %w", ErrInterrupted, context.Cause(ctx))
	}

	rep := report.Build(c.runID.String(), res.Region.Counters(), params.Workers, params.Iterations)
	for _, s := range statuses {
		line := &rep.PerWorker[s.Index]
		line.PID = s.PID
		line.ExitCode = s.Code
		line.Signal = s.Signal
		if s.Err != nil {
			line.Error = s.Err.Error()
		}
		if c.metrics != nil {
			c.metrics.RecordExit(s.Outcome())
		}
	}
	if c.metrics != nil {
		c.metrics.RecordResult(rep.Global, rep.Expected, rep.Sum)
	}

	if !rep.Consistent() {
		c.logger.Warn("Counters diverge from expected",
			zap.Int64("global", rep.Global),
			zap.Int64("expected", rep.Expected),
			zap.Int64("sum", rep.Sum))
	}
	return rep, nil
}

func (c *Coordinator) recordCreated() {
	if c.metrics == nil {
		return
	}
	c.metrics.IPCCreated.WithLabelValues(kindShm).Inc()
	c.metrics.IPCCreated.WithLabelValues(kindSem).Inc()
}

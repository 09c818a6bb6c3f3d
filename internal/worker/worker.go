package worker

import (
	"fmt"
	"os"
	"strconv"

	"github.com/kelseyhightower/envconfig"
	"go.uber.org/zap"

	"github.com/GriffinCanCode/shmcounters/internal/ipc"
	"github.com/GriffinCanCode/shmcounters/internal/logging"
)

// Process exit codes
const (
	ExitSuccess = 0
	ExitFailure = 1
)

// EnvPrefix prefixes every handshake variable passed to a worker.
const EnvPrefix = "SHMCOUNTERS_WORKER"

// RoleWorker is the value of SHMCOUNTERS_WORKER_ROLE in worker processes.
const RoleWorker = "worker"

// Mutex is the cross-process lock bracketing the critical section.
// *ipc.Semaphore satisfies it.
type Mutex interface {
	Acquire() error
	Release() error
}

// Params is the handshake a coordinator passes to a worker process.
type Params struct {
	Role       string `envconfig:"ROLE" required:"true"`
	RunID      string `envconfig:"RUN_ID"`
	ShmID      int    `envconfig:"SHM_ID" required:"true"`
	SemID      int    `envconfig:"SEM_ID" required:"true"`
	Index      int    `envconfig:"INDEX" required:"true"`
	Iterations int64  `envconfig:"ITERATIONS" required:"true"`
}

// Env encodes the params as environment entries for exec.Cmd.
func (p Params) Env() []string {
	return []string{
		EnvPrefix + "_ROLE=" + RoleWorker,
		EnvPrefix + "_RUN_ID=" + p.RunID,
		EnvPrefix + "_SHM_ID=" + strconv.Itoa(p.ShmID),
		EnvPrefix + "_SEM_ID=" + strconv.Itoa(p.SemID),
		EnvPrefix + "_INDEX=" + strconv.Itoa(p.Index),
		EnvPrefix + "_ITERATIONS=" + strconv.FormatInt(p.Iterations, 10),
	}
}

// IsWorkerProcess reports whether this process was started as a worker.
func IsWorkerProcess() bool {
	return os.Getenv(EnvPrefix+"_ROLE") == RoleWorker
}

// LoadParams decodes the handshake from the environment.
func LoadParams() (Params, error) {
	var p Params
	if err := envconfig.Process(EnvPrefix, &p); err != nil {
		return Params{}, fmt.Errorf("load worker params: %w", err)
	}
	if p.Role != RoleWorker {
		return Params{}, fmt.Errorf("load worker params: unexpected role %q", p.Role)
	}
	if p.Index < 0 || p.Index >= ipc.MaxWorkers {
		return Params{}, fmt.Errorf("load worker params: index %d out of range [0, %d)", p.Index, ipc.MaxWorkers)
	}
	if p.Iterations < 0 {
		return Params{}, fmt.Errorf("load worker params: negative iterations %d", p.Iterations)
	}
	return p, nil
}

// Run performs iterations critical-section entries. Each entry acquires mu,
// increments the global counter and the worker's own slot, then releases mu.
//
// The first acquire or release failure is returned immediately. No release
// is attempted after a failure: a failed acquire never took the lock, and a
// failed release means the semaphore itself is broken.
func Run(counters *ipc.Counters, mu Mutex, index int, iterations int64) error {
	if index < 0 || index >= ipc.MaxWorkers {
		return fmt.Errorf("worker index %d out of range [0, %d)", index, ipc.MaxWorkers)
	}

	for n := int64(0); n < iterations; n++ {
		if err := mu.Acquire(); err != nil {
			return err
		}
		counters.Global++
		counters.PerWorker[index]++
		if err := mu.Release(); err != nil {
			return err
		}
	}
	return nil
}

// Main is the entry point of a worker process. It attaches the shared
// region, runs the critical-section loop and returns the process exit code.
func Main(logger *logging.Logger) int {
	p, err := LoadParams()
	if err != nil {
		logger.Error("Invalid worker handshake", zap.Error(err))
		return ExitFailure
	}
	log := logger.ForRun(p.RunID).ForWorker(p.Index, os.Getpid())

	region, err := ipc.AttachRegion(p.ShmID)
	if err != nil {
		log.Error("Failed to attach shared region", zap.Int("shm_id", p.ShmID), zap.Error(err))
		return ExitFailure
	}
	defer func() {
		if err := region.Detach(); err != nil {
			log.Debug("Failed to detach shared region", zap.Int("shm_id", p.ShmID), zap.Error(err))
		}
	}()

	sem := ipc.OpenSemaphore(p.SemID)

	log.Debug("Worker started", zap.Int64("iterations", p.Iterations))
	if err := Run(region.Counters(), sem, p.Index, p.Iterations); err != nil {
		log.Error("Critical section failed", zap.Int("sem_id", p.SemID), zap.Error(err))
		return ExitFailure
	}
	log.Debug("Worker finished")
	return ExitSuccess
}

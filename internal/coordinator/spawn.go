package coordinator

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"
	"syscall"

	"go.uber.org/zap"

	"github.com/GriffinCanCode/shmcounters/internal/logging"
	"github.com/GriffinCanCode/shmcounters/internal/worker"
)

// Process is a started worker process.
type Process interface {
	Pid() int
	// Kill terminates the process with SIGKILL.
	Kill() error
	// Wait blocks until the process exits. An abnormal exit is reported in
	// the status; the error is non-nil only when waiting itself failed.
	Wait() (ExitStatus, error)
}

// Spawner starts worker processes.
type Spawner interface {
	Spawn(ctx context.Context, params worker.Params) (Process, error)
}

// ExecSpawner re-executes a binary in the worker role.
type ExecSpawner struct {
	// Binary defaults to the running executable.
	Binary string
	// Stderr receives worker logs. Defaults to os.Stderr.
	Stderr io.Writer
}

// Spawn starts one worker. The handshake travels in the environment.
// GODEBUG disables async preemption in the child: a preemption signal
// landing in semop would fail the wait with EINTR, which a worker treats
// as fatal.
func (s *ExecSpawner) Spawn(ctx context.Context, params worker.Params) (Process, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	binary := s.Binary
	if binary == "" {
		exe, err := os.Executable()
		if err != nil {
			return nil, fmt.Errorf("resolve executable: %w", err)
		}
		binary = exe
	}

	stderr := s.Stderr
	if stderr == nil {
		stderr = os.Stderr
	}

	cmd := exec.Command(binary)
	cmd.Env = workerEnv(os.Environ(), params)
	cmd.Stderr = stderr
	cmd.SysProcAttr = workerProcAttr()

	if err := cmd.Start(); err != nil {
		return nil, err
	}
	return &execProcess{cmd: cmd}, nil
}

// workerEnv appends the handshake to base and adds asyncpreemptoff=1 to
// any GODEBUG settings already present.
func workerEnv(base []string, params worker.Params) []string {
	godebug := "asyncpreemptoff=1"
	env := make([]string, 0, len(base)+8)
	for _, kv := range base {
		if v, ok := strings.CutPrefix(kv, "GODEBUG="); ok {
			if v != "" {
				godebug = v + "," + godebug
			}
			continue
		}
		env = append(env, kv)
	}
	env = append(env, params.Env()...)
	return append(env, "GODEBUG="+godebug)
}

type execProcess struct {
	cmd *exec.Cmd
}

func (p *execProcess) Pid() int { return p.cmd.Process.Pid }

func (p *execProcess) Kill() error { return p.cmd.Process.Kill() }

func (p *execProcess) Wait() (ExitStatus, error) {
	status := ExitStatus{PID: p.Pid()}

	err := p.cmd.Wait()
	var exitErr *exec.ExitError
	if err != nil && !errors.As(err, &exitErr) {
		return status, err
	}

	state := p.cmd.ProcessState
	status.Code = state.ExitCode()
	if ws, ok := state.Sys().(syscall.WaitStatus); ok && ws.Signaled() {
		status.Signal = ws.Signal().String()
	}
	return status, nil
}

// SpawnWorkers starts params.Workers workers attached to res. If any spawn
// fails, every worker already started is killed and reaped, and a
// SpawnError is returned. Releasing res remains the caller's job.
func SpawnWorkers(ctx context.Context, spawner Spawner, res *Resources, params Params, runID string, logger *logging.Logger) ([]Process, error) {
	procs := make([]Process, 0, params.Workers)

	for i := 0; i < params.Workers; i++ {
		p, err := spawner.Spawn(ctx, worker.Params{
			Role:       worker.RoleWorker,
			RunID:      runID,
			ShmID:      res.Region.ID(),
			SemID:      res.Sem.ID(),
			Index:      i,
			Iterations: params.Iterations,
		})
		if err != nil {
			logger.Error("Failed to spawn worker",
				zap.Int("worker", i),
				zap.Int("started", len(procs)),
				zap.Error(err))
			Terminate(procs, logger)
			return nil, &SpawnError{Index: i, Started: len(procs), Err: err}
		}
		logger.Debug("Worker spawned", zap.Int("worker", i), zap.Int("pid", p.Pid()))
		procs = append(procs, p)
	}

	return procs, nil
}

// Terminate kills every process and reaps it so no zombie is left behind.
func Terminate(procs []Process, logger *logging.Logger) {
	KillAll(procs, logger)
	for i, p := range procs {
		if _, err := p.Wait(); err != nil {
			logger.Warn("Failed to reap worker", zap.Int("worker", i), zap.Int("pid", p.Pid()), zap.Error(err))
		}
	}
}

// KillAll sends SIGKILL to every process without waiting. Processes that
// already exited are skipped silently.
func KillAll(procs []Process, logger *logging.Logger) {
	for i, p := range procs {
		if err := p.Kill(); err != nil && !errors.Is(err, os.ErrProcessDone) {
			logger.Warn("Failed to kill worker", zap.Int("worker", i), zap.Int("pid", p.Pid()), zap.Error(err))
		}
	}
}

package coordinator

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/GriffinCanCode/shmcounters/internal/infrastructure/monitoring"
	"github.com/GriffinCanCode/shmcounters/internal/logging"
)

// ExitStatus is how one worker ended.
type ExitStatus struct {
	Index  int
	PID    int
	Code   int    // -1 when killed by a signal
	Signal string // empty unless killed by a signal
	Err    error  // *JoinError when the wait itself failed
}

// Success reports a clean exit with status 0.
func (s ExitStatus) Success() bool {
	return s.Err == nil && s.Signal == "" && s.Code == 0
}

// Outcome classifies the status for metrics.
func (s ExitStatus) Outcome() string {
	switch {
	case s.Err != nil:
		return monitoring.OutcomeJoinFailed
	case s.Signal != "":
		return monitoring.OutcomeSignaled
	case s.Code != 0:
		return monitoring.OutcomeFailure
	default:
		return monitoring.OutcomeSuccess
	}
}

func (s ExitStatus) String() string {
	switch s.Outcome() {
	case monitoring.OutcomeJoinFailed:
		return s.Err.Error()
	case monitoring.OutcomeSignaled:
		return "signal " + s.Signal
	default:
		return fmt.Sprintf("exit %d", s.Code)
	}
}

// JoinAll waits for each process in order. A failed wait is logged and
// recorded in that worker's status; the remaining workers are still joined.
// A worker that never releases the semaphore blocks JoinAll forever.
func JoinAll(procs []Process, logger *logging.Logger) []ExitStatus {
	statuses := make([]ExitStatus, len(procs))

	for i, p := range procs {
		status, err := p.Wait()
		status.Index = i
		if status.PID == 0 {
			status.PID = p.Pid()
		}
		if err != nil {
			status.Err = &JoinError{Index: i, PID: status.PID, Err: err}
		}
		statuses[i] = status

		fields := []zap.Field{zap.Int("worker", i), zap.Int("pid", status.PID)}
		switch {
		case status.Err != nil:
			logger.Error("Failed to join worker", append(fields, zap.Error(status.Err))...)
		case !status.Success():
			logger.Warn("Worker exited abnormally", append(fields, zap.String("status", status.String()))...)
		default:
			logger.Debug("Worker joined", fields...)
		}
	}

	return statuses
}

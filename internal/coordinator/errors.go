package coordinator

import (
	"errors"
	"fmt"
)

// ErrInterrupted is returned when the run is cancelled by a signal.
var ErrInterrupted = errors.New("run interrupted")

// ConfigError reports invalid run parameters. No resources are allocated
// when it is returned.
type ConfigError struct {
	Field  string
	Value  string
	Reason string
}

func (e *ConfigError) Error() string {
	if e.Value == "" {
		return fmt.Sprintf("%s: %s", e.Field, e.Reason)
	}
	return fmt.Sprintf("%s %q: %s", e.Field, e.Value, e.Reason)
}

// SpawnError reports a worker process that could not be started. Index is
// the worker that failed; Started workers were killed before it was returned.
type SpawnError struct {
	Index   int
	Started int
	Err     error
}

func (e *SpawnError) Error() string {
	return fmt.Sprintf("spawn worker %d failed (%d already started, terminated): %v", e.Index, e.Started, e.Err)
}

func (e *SpawnError) Unwrap() error { return e.Err }

// JoinError reports a failed wait on a worker process.
type JoinError struct {
	Index int
	PID   int
	Err   error
}

func (e *JoinError) Error() string {
	return fmt.Sprintf("wait for worker %d (pid %d) failed: %v", e.Index, e.PID, e.Err)
}

func (e *JoinError) Unwrap() error { return e.Err }

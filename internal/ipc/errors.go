package ipc

import (
	"errors"
	"fmt"
)

// ErrUnsupported is returned on platforms without System V IPC.
var ErrUnsupported = errors.New("ipc: System V IPC is not supported on this platform")

// ResourceError reports a failure to create, attach or initialize an IPC
// resource. Op names the failing system call (shmget, shmat, semget, ...).
type ResourceError struct {
	Op  string
	Err error
}

func (e *ResourceError) Error() string {
	return fmt.Sprintf("%s failed: %v", e.Op, e.Err)
}

func (e *ResourceError) Unwrap() error { return e.Err }

// SyncError reports a failed acquire or release of a Semaphore.
type SyncError struct {
	Op    string // "acquire" or "release"
	SemID int
	Err   error
}

func (e *SyncError) Error() string {
	return fmt.Sprintf("semaphore %s (id %d) failed: %v", e.Op, e.SemID, e.Err)
}

func (e *SyncError) Unwrap() error { return e.Err }

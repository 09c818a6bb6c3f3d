//go:build linux && (amd64 || arm64 || riscv64 || loong64)

package ipc

import (
	"errors"
	"sync"
	"unsafe"

	"golang.org/x/sys/unix"
)

// semctl commands not exported by x/sys/unix
const (
	semGetVal = 12
	semSetVal = 16
)

// sembuf mirrors struct sembuf from <sys/sem.h>.
type sembuf struct {
	num uint16
	op  int16
	flg int16
}

// Semaphore is a single System V semaphore used as a binary mutex:
// value 1 is "available", value 0 is "held".
//
// Acquire and Release move the value by exactly one unit. An interrupted
// wait is reported as a SyncError and never retried.
type Semaphore struct {
	id int

	mu      sync.Mutex
	removed bool
}

// CreateSemaphore allocates a private semaphore set of size one and sets its
// value to initial. If the initialization fails the set is removed.
func CreateSemaphore(initial int) (*Semaphore, error) {
	r1, _, errno := unix.Syscall(unix.SYS_SEMGET, uintptr(unix.IPC_PRIVATE), 1, uintptr(unix.IPC_CREAT|0o600))
	if errno != 0 {
		return nil, &ResourceError{Op: "semget", Err: errno}
	}
	id := int(r1)

	if _, err := semctl(id, semSetVal, uintptr(initial)); err != nil {
		_, _ = semctl(id, unix.IPC_RMID, 0)
		return nil, &ResourceError{Op: "semctl(SETVAL)", Err: err}
	}
	return &Semaphore{id: id}, nil
}

// OpenSemaphore wraps an existing semaphore set by identifier. No system
// call is made; a stale id surfaces on the first Acquire.
func OpenSemaphore(id int) *Semaphore {
	return &Semaphore{id: id}
}

// ID returns the kernel identifier of the semaphore set.
func (s *Semaphore) ID() int { return s.id }

// Acquire blocks until the semaphore is available and takes it.
func (s *Semaphore) Acquire() error {
	if err := semop(s.id, -1); err != nil {
		return &SyncError{Op: "acquire", SemID: s.id, Err: err}
	}
	return nil
}

// Release returns the semaphore.
func (s *Semaphore) Release() error {
	if err := semop(s.id, 1); err != nil {
		return &SyncError{Op: "release", SemID: s.id, Err: err}
	}
	return nil
}

// Value returns the current semaphore value.
func (s *Semaphore) Value() (int, error) {
	v, err := semctl(s.id, semGetVal, 0)
	if err != nil {
		return 0, &ResourceError{Op: "semctl(GETVAL)", Err: err}
	}
	return v, nil
}

// Remove destroys the semaphore set, waking any waiter with EIDRM.
// Repeated calls are no-ops.
func (s *Semaphore) Remove() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.removed {
		return nil
	}
	s.removed = true
	if _, err := semctl(s.id, unix.IPC_RMID, 0); err != nil {
		if errors.Is(err, unix.EINVAL) || errors.Is(err, unix.EIDRM) {
			return nil
		}
		return &ResourceError{Op: "semctl(IPC_RMID)", Err: err}
	}
	return nil
}

// SemaphoreExists reports whether a semaphore set with the given id is still present.
func SemaphoreExists(id int) bool {
	_, err := semctl(id, semGetVal, 0)
	return err == nil
}

func semop(id int, delta int16) error {
	op := sembuf{num: 0, op: delta, flg: 0}
	_, _, errno := unix.Syscall(unix.SYS_SEMOP, uintptr(id), uintptr(unsafe.Pointer(&op)), 1)
	if errno != 0 {
		return errno
	}
	return nil
}

func semctl(id, cmd int, arg uintptr) (int, error) {
	r1, _, errno := unix.Syscall6(unix.SYS_SEMCTL, uintptr(id), 0, uintptr(cmd), arg, 0, 0)
	if errno != 0 {
		return 0, errno
	}
	return int(r1), nil
}

//go:build linux && (amd64 || arm64 || riscv64 || loong64)

package ipc

import (
	"errors"
	"sync"

	"golang.org/x/sys/unix"
)

// Region is an attachment to a System V shared memory segment holding
// Counters. The creator owns the segment and is the only party allowed to
// Remove it; attachers only Detach.
type Region struct {
	id  int
	mem []byte

	mu       sync.Mutex
	detached bool
	removed  bool
}

// CreateRegion allocates a private segment, attaches it and zeroes it.
// If the attach fails the segment is removed before returning.
func CreateRegion() (*Region, error) {
	id, err := unix.SysvShmGet(unix.IPC_PRIVATE, RegionSize, unix.IPC_CREAT|0o600)
	if err != nil {
		return nil, &ResourceError{Op: "shmget", Err: err}
	}

	mem, err := unix.SysvShmAttach(id, 0, 0)
	if err != nil {
		_, _ = unix.SysvShmCtl(id, unix.IPC_RMID, nil)
		return nil, &ResourceError{Op: "shmat", Err: err}
	}

	r := &Region{id: id, mem: mem}
	r.Counters().Reset()
	return r, nil
}

// AttachRegion attaches an existing segment by identifier.
func AttachRegion(id int) (*Region, error) {
	mem, err := unix.SysvShmAttach(id, 0, 0)
	if err != nil {
		return nil, &ResourceError{Op: "shmat", Err: err}
	}
	if len(mem) < RegionSize {
		_ = unix.SysvShmDetach(mem)
		return nil, &ResourceError{Op: "shmat", Err: unix.EINVAL}
	}
	return &Region{id: id, mem: mem}, nil
}

// ID returns the kernel identifier of the segment.
func (r *Region) ID() int { return r.id }

// Counters returns the shared counters. The pointer is valid until Detach.
func (r *Region) Counters() *Counters {
	return countersAt(r.mem)
}

// Detach unmaps the segment from this process. Repeated calls are no-ops.
func (r *Region) Detach() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.detached {
		return nil
	}
	r.detached = true
	mem := r.mem
	r.mem = nil
	if err := unix.SysvShmDetach(mem); err != nil {
		return &ResourceError{Op: "shmdt", Err: err}
	}
	return nil
}

// Remove marks the segment for destruction. The kernel frees it once the
// last attachment is gone. Repeated calls are no-ops.
func (r *Region) Remove() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.removed {
		return nil
	}
	r.removed = true
	if _, err := unix.SysvShmCtl(r.id, unix.IPC_RMID, nil); err != nil {
		if errors.Is(err, unix.EINVAL) || errors.Is(err, unix.EIDRM) {
			return nil
		}
		return &ResourceError{Op: "shmctl(IPC_RMID)", Err: err}
	}
	return nil
}

// RegionExists reports whether a segment with the given id is still present.
func RegionExists(id int) bool {
	var desc unix.SysvShmDesc
	_, err := unix.SysvShmCtl(id, unix.IPC_STAT, &desc)
	return err == nil
}

package coordinator

import (
	"errors"
	"sync"

	"github.com/GriffinCanCode/shmcounters/internal/infrastructure/monitoring"
	"github.com/GriffinCanCode/shmcounters/internal/ipc"
)

// Resource kinds used in metrics.
const (
	kindShm = "shm"
	kindSem = "sem"
)

// Allocation steps, replaced in tests to inject failures.
var (
	createRegion    = ipc.CreateRegion
	createSemaphore = ipc.CreateSemaphore
)

// Resources owns the IPC resources of one run: the shared region (attached
// in the coordinator) and the binary semaphore guarding it.
type Resources struct {
	Region *ipc.Region
	Sem    *ipc.Semaphore

	metrics *monitoring.Metrics

	mu   sync.Mutex
	done bool
}

// Allocate creates and zeroes the shared region, then creates the semaphore
// in the "available" state. If the semaphore cannot be created the region is
// released before the error is returned.
func Allocate() (*Resources, error) {
	region, err := createRegion()
	if err != nil {
		return nil, err
	}

	sem, err := createSemaphore(1)
	if err != nil {
		_ = region.Detach()
		_ = region.Remove()
		return nil, err
	}

	return &Resources{Region: region, Sem: sem}, nil
}

// Teardown detaches and removes the region and removes the semaphore.
// Every step runs even if an earlier one fails. Calls after the first are
// no-ops returning nil.
func (r *Resources) Teardown() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.done {
		return nil
	}
	r.done = true

	var errs []error
	if r.Region != nil {
		if err := r.Region.Detach(); err != nil {
			errs = append(errs, err)
		}
		if err := r.Region.Remove(); err != nil {
			errs = append(errs, err)
		} else {
			r.recordRemoved(kindShm)
		}
	}
	if r.Sem != nil {
		if err := r.Sem.Remove(); err != nil {
			errs = append(errs, err)
		} else {
			r.recordRemoved(kindSem)
		}
	}
	return errors.Join(errs...)
}

func (r *Resources) recordRemoved(kind string) {
	if r.metrics != nil {
		r.metrics.IPCRemoved.WithLabelValues(kind).Inc()
	}
}

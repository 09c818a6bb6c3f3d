// Package worker implements the worker side of the shared-counter protocol.
//
// A worker is a re-executed copy of the coordinator binary. It learns the
// shared region id, semaphore id, its slot index and its iteration quota
// from SHMCOUNTERS_WORKER_* environment variables, attaches the region and
// loops over the critical section. It never creates or destroys IPC
// resources.
package worker

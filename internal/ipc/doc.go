// Package ipc provides the System V IPC resources shared by the coordinator
// and its worker processes.
//
// Two resources are exposed:
//   - Region: a private shared memory segment laid out as Counters
//   - Semaphore: a single binary semaphore used as a cross-process mutex
//
// Both are created with IPC_PRIVATE keys, so they are reachable only through
// the numeric identifiers handed to workers by the coordinator. Identifiers
// live in the kernel's global IPC namespace until removed, which is why the
// creator must always call Remove (see `ipcs -m -s` for leaked ones).
//
// Lifecycle:
//
//	region, err := ipc.CreateRegion()   // coordinator
//	sem, err := ipc.CreateSemaphore(1)  // coordinator
//	...
//	region, err := ipc.AttachRegion(id) // worker
//	sem := ipc.OpenSemaphore(id)        // worker
//	...
//	region.Detach(); region.Remove()    // coordinator
//	sem.Remove()                        // coordinator
//
// Only Linux is supported. Other platforms get stubs returning ErrUnsupported.
package ipc

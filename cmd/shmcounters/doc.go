// Package main is the entry point for shmcounters.
//
// The same binary plays two roles. Started by a user it is the coordinator:
// it allocates a System V shared memory segment and a binary semaphore,
// re-executes itself once per worker, waits for every worker and prints the
// final counters. Started with SHMCOUNTERS_WORKER_ROLE=worker it is a worker:
// it attaches the segment and increments its counters under the semaphore.
//
// Architecture:
//
//	coordinator ── shmget/semget ──► shared region + semaphore
//	     │
//	     ├── exec ──► worker 0 ─┐
//	     ├── exec ──► worker 1 ─┼─ semop(-1); counters++; semop(+1)
//	     └── exec ──► worker N ─┘
//	     │
//	     └── wait all ─► report ─► shmctl/semctl IPC_RMID
//
// Configuration:
//   - Environment variables (12-factor), see internal/infrastructure/config
//   - CLI flags (override env vars)
//
// Usage:
//
//	./shmcounters 4 100000
//	REPORT_FORMAT=json ./shmcounters 8 1000
//	./shmcounters -dev -format yaml 2 10
//
// Exit status is 0 on a completed run and 1 on invalid arguments, IPC
// allocation failure, spawn failure or interruption.
//
// Signals:
//   - SIGINT, SIGTERM: kill workers, remove IPC resources, exit 1
//
// Known limitation: a worker that dies while holding the semaphore leaves it
// held, and the coordinator then waits forever for the remaining workers.
// Interrupting the coordinator still cleans up.
package main

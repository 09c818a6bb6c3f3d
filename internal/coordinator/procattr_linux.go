//go:build linux

package coordinator

import "syscall"

// workerProcAttr kills a worker if the coordinator thread that started it
// dies, so an aborted coordinator does not leave workers running.
func workerProcAttr() *syscall.SysProcAttr {
	return &syscall.SysProcAttr{Pdeathsig: syscall.SIGKILL}
}

//go:build !linux

package coordinator

import "syscall"

func workerProcAttr() *syscall.SysProcAttr { return nil }

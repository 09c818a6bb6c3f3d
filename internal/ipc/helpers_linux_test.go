//go:build linux && (amd64 || arm64 || riscv64 || loong64)

package ipc

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/sys/unix"
)

// newRegion creates a region or skips when the sandbox forbids System V IPC.
func newRegion(t *testing.T) *Region {
	t.Helper()
	r, err := CreateRegion()
	skipIfUnavailable(t, err)
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = r.Detach()
		_ = r.Remove()
	})
	return r
}

func newSemaphore(t *testing.T, initial int) *Semaphore {
	t.Helper()
	s, err := CreateSemaphore(initial)
	skipIfUnavailable(t, err)
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Remove() })
	return s
}

func skipIfUnavailable(t *testing.T, err error) {
	t.Helper()
	if errors.Is(err, unix.ENOSYS) || errors.Is(err, unix.EPERM) || errors.Is(err, unix.EACCES) {
		t.Skipf("System V IPC unavailable: %v", err)
	}
}

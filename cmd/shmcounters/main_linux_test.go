//go:build linux && (amd64 || arm64 || riscv64 || loong64)

package main

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sys/unix"

	"github.com/GriffinCanCode/shmcounters/internal/ipc"
)

func requireIPC(t *testing.T) {
	t.Helper()
	r, err := ipc.CreateRegion()
	if errors.Is(err, unix.ENOSYS) || errors.Is(err, unix.EPERM) || errors.Is(err, unix.EACCES) {
		t.Skipf("System V IPC unavailable: %v", err)
	}
	require.NoError(t, err)
	_ = r.Detach()
	_ = r.Remove()
}

func TestRunTextReport(t *testing.T) {
	requireIPC(t)

	code, stdout, stderr := runCLI(t, "2", "100")

	require.Equal(t, 0, code, stderr)
	want := "Coordinator: global_counter = 200 (expected 200)\n" +
		" worker  0 counter =          100\n" +
		" worker  1 counter =          100\n" +
		"Sum of per-worker counters = 200\n"
	assert.Equal(t, want, stdout)
}

func TestRunZeroIterationsExitsZero(t *testing.T) {
	requireIPC(t)

	code, stdout, _ := runCLI(t, "3", "0")

	assert.Equal(t, 0, code)
	assert.Contains(t, stdout, "global_counter = 0 (expected 0)")
	assert.Contains(t, stdout, "Sum of per-worker counters = 0")
}

func TestRunJSONReportAndMetrics(t *testing.T) {
	requireIPC(t)

	metricsPath := filepath.Join(t.TempDir(), "shmcounters.prom")
	t.Setenv("METRICS_TEXTFILE", metricsPath)

	code, stdout, stderr := runCLI(t, "-format", "json", "4", "250")
	require.Equal(t, 0, code, stderr)

	var rep struct {
		Global    int64 `json:"global_counter"`
		Expected  int64 `json:"expected_counter"`
		Sum       int64 `json:"worker_counter_sum"`
		PerWorker []struct {
			Counter  int64 `json:"counter"`
			ExitCode int   `json:"exit_code"`
		} `json:"per_worker"`
	}
	require.NoError(t, json.Unmarshal([]byte(stdout), &rep))
	assert.Equal(t, int64(1000), rep.Global)
	assert.Equal(t, int64(1000), rep.Expected)
	assert.Equal(t, int64(1000), rep.Sum)
	require.Len(t, rep.PerWorker, 4)
	for _, w := range rep.PerWorker {
		assert.Equal(t, int64(250), w.Counter)
		assert.Zero(t, w.ExitCode)
	}

	data, err := os.ReadFile(metricsPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), "shmcounters_global_counter")
}

func TestRunMissingWorkerBinary(t *testing.T) {
	requireIPC(t)
	t.Setenv("WORKER_BINARY", "/nonexistent/shmcounters")

	code, stdout, stderr := runCLI(t, "2", "10")

	assert.Equal(t, 1, code)
	assert.Empty(t, stdout)
	assert.Contains(t, stderr, "spawn worker 0 failed")
}

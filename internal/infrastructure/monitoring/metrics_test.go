package monitoring

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordResult(t *testing.T) {
	m := NewMetrics("run_test")

	m.RecordResult(400000, 400000, 400000)

	assert.Equal(t, 400000.0, testutil.ToFloat64(m.GlobalCounter))
	assert.Equal(t, 400000.0, testutil.ToFloat64(m.ExpectedCounter))
	assert.Equal(t, 400000.0, testutil.ToFloat64(m.WorkerCounterSum))
}

func TestRecordExit(t *testing.T) {
	m := NewMetrics("run_test")

	m.RecordExit(OutcomeSuccess)
	m.RecordExit(OutcomeSuccess)
	m.RecordExit(OutcomeSignaled)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.WorkerExits.WithLabelValues(OutcomeSuccess)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.WorkerExits.WithLabelValues(OutcomeSignaled)))
}

func TestSeparateRunsDoNotCollide(t *testing.T) {
	a := NewMetrics("run_a")
	b := NewMetrics("run_b")

	a.WorkersSpawned.Inc()

	assert.Equal(t, 1.0, testutil.ToFloat64(a.WorkersSpawned))
	assert.Equal(t, 0.0, testutil.ToFloat64(b.WorkersSpawned))
}

func TestRegistryGathersRunLabel(t *testing.T) {
	m := NewMetrics("run_gather")
	m.RecordExit(OutcomeFailure)

	families, err := m.Registry().Gather()
	require.NoError(t, err)

	found := false
	for _, mf := range families {
		if mf.GetName() != "shmcounters_worker_exits_total" {
			continue
		}
		found = true
		require.Len(t, mf.GetMetric(), 1)
		labels := map[string]string{}
		for _, lp := range mf.GetMetric()[0].GetLabel() {
			labels[lp.GetName()] = lp.GetValue()
		}
		assert.Equal(t, "run_gather", labels["run_id"])
		assert.Equal(t, OutcomeFailure, labels["outcome"])
	}
	assert.True(t, found)
}

func TestWriteTextfile(t *testing.T) {
	m := NewMetrics("run_file")
	m.WorkersSpawned.Add(4)
	m.IPCCreated.WithLabelValues("shm").Inc()
	m.Finish()

	path := filepath.Join(t.TempDir(), "shmcounters.prom")
	require.NoError(t, m.WriteTextfile(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	text := string(data)
	assert.Contains(t, text, `shmcounters_workers_spawned_total{run_id="run_file"} 4`)
	assert.Contains(t, text, `shmcounters_ipc_created_total{kind="shm",run_id="run_file"} 1`)
	assert.Contains(t, text, "shmcounters_run_duration_seconds")
}

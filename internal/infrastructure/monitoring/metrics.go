package monitoring

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Exit outcomes recorded for each worker.
const (
	OutcomeSuccess    = "success"
	OutcomeFailure    = "failure"
	OutcomeSignaled   = "signaled"
	OutcomeJoinFailed = "join_failed"
)

// Metrics holds the Prometheus collectors for one coordinator run.
type Metrics struct {
	registry *prometheus.Registry

	// Worker lifecycle
	WorkersSpawned prometheus.Counter
	WorkersKilled  prometheus.Counter
	WorkerExits    *prometheus.CounterVec

	// IPC resources
	IPCCreated *prometheus.CounterVec
	IPCRemoved *prometheus.CounterVec

	// Results
	GlobalCounter    prometheus.Gauge
	ExpectedCounter  prometheus.Gauge
	WorkerCounterSum prometheus.Gauge

	RunDuration prometheus.Gauge
	startTime   time.Time
}

// NewMetrics creates collectors on a private registry. Every series carries
// the run_id constant label.
func NewMetrics(runID string) *Metrics {
	reg := prometheus.NewRegistry()
	factory := promauto.With(prometheus.WrapRegistererWith(prometheus.Labels{"run_id": runID}, reg))

	return &Metrics{
		registry:  reg,
		startTime: time.Now(),

		WorkersSpawned: factory.NewCounter(prometheus.CounterOpts{
			Name: "shmcounters_workers_spawned_total",
			Help: "Total number of worker processes started",
		}),
		WorkersKilled: factory.NewCounter(prometheus.CounterOpts{
			Name: "shmcounters_workers_killed_total",
			Help: "Total number of worker processes terminated by the coordinator",
		}),
		WorkerExits: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "shmcounters_worker_exits_total",
			Help: "Worker exits by outcome",
		}, []string{"outcome"}),

		IPCCreated: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "shmcounters_ipc_created_total",
			Help: "System V IPC resources created",
		}, []string{"kind"}),
		IPCRemoved: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "shmcounters_ipc_removed_total",
			Help: "System V IPC resources removed",
		}, []string{"kind"}),

		GlobalCounter: factory.NewGauge(prometheus.GaugeOpts{
			Name: "shmcounters_global_counter",
			Help: "Observed global counter after join",
		}),
		ExpectedCounter: factory.NewGauge(prometheus.GaugeOpts{
			Name: "shmcounters_expected_counter",
			Help: "Expected global counter (workers * iterations)",
		}),
		WorkerCounterSum: factory.NewGauge(prometheus.GaugeOpts{
			Name: "shmcounters_worker_counter_sum",
			Help: "Sum of per-worker counters after join",
		}),

		RunDuration: factory.NewGauge(prometheus.GaugeOpts{
			Name: "shmcounters_run_duration_seconds",
			Help: "Wall time from resource allocation to teardown",
		}),
	}
}

// Registry exposes the underlying registry for gathering.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// RecordExit increments the exit counter for an outcome.
func (m *Metrics) RecordExit(outcome string) {
	m.WorkerExits.WithLabelValues(outcome).Inc()
}

// RecordResult stores the observed counters.
func (m *Metrics) RecordResult(global, expected, sum int64) {
	m.GlobalCounter.Set(float64(global))
	m.ExpectedCounter.Set(float64(expected))
	m.WorkerCounterSum.Set(float64(sum))
}

// Finish stamps the run duration.
func (m *Metrics) Finish() {
	m.RunDuration.Set(time.Since(m.startTime).Seconds())
}

// WriteTextfile writes every metric to path in Prometheus text format,
// atomically, for the node exporter textfile collector.
func (m *Metrics) WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, m.registry); err != nil {
		return fmt.Errorf("write metrics textfile: %w", err)
	}
	return nil
}

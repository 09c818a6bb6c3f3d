/*
Package monitoring collects Prometheus metrics for a coordinator run.

# Overview

A run is short-lived, so nothing is served over HTTP. Collectors live on a
private registry and are written once, after teardown, to a file that the
node exporter textfile collector can pick up.

# Metrics

  - shmcounters_workers_spawned_total, shmcounters_workers_killed_total
  - shmcounters_worker_exits_total{outcome}
  - shmcounters_ipc_created_total{kind}, shmcounters_ipc_removed_total{kind}
  - shmcounters_global_counter, shmcounters_expected_counter,
    shmcounters_worker_counter_sum
  - shmcounters_run_duration_seconds

# Usage

	metrics := monitoring.NewMetrics(runID)
	metrics.WorkersSpawned.Inc()
	metrics.RecordResult(global, expected, sum)
	metrics.Finish()
	_ = metrics.WriteTextfile("/var/lib/node_exporter/shmcounters.prom")
*/
package monitoring

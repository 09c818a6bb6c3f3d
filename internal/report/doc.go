// Package report aggregates the shared counters after a run and renders the
// summary printed on stdout.
//
// The text layout is the default:
//
//	Coordinator: global_counter = 400000 (expected 400000)
//	 worker  0 counter =       100000
//	 ...
//	Sum of per-worker counters = 400000
//
// json (sonic), yaml (goccy/go-yaml) and toml (go-toml) carry the same data
// plus per-worker exit status, for consumption by scripts.
package report

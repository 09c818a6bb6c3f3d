package report

import (
	"bytes"
	"fmt"
	"io"

	"github.com/bytedance/sonic"
	"github.com/goccy/go-yaml"
	"github.com/pelletier/go-toml/v2"

	"github.com/GriffinCanCode/shmcounters/internal/ipc"
)

// Formats
const (
	FormatText = "text"
	FormatJSON = "json"
	FormatYAML = "yaml"
	FormatTOML = "toml"
)

// WorkerLine is one worker's final state.
type WorkerLine struct {
	Index    int    `json:"index" yaml:"index" toml:"index"`
	PID      int    `json:"pid" yaml:"pid" toml:"pid"`
	Counter  int64  `json:"counter" yaml:"counter" toml:"counter"`
	ExitCode int    `json:"exit_code" yaml:"exit_code" toml:"exit_code"`
	Signal   string `json:"signal,omitempty" yaml:"signal,omitempty" toml:"signal,omitempty"`
	Error    string `json:"error,omitempty" yaml:"error,omitempty" toml:"error,omitempty"`
}

// Report is the coordinator's summary of a finished run.
type Report struct {
	RunID      string       `json:"run_id" yaml:"run_id" toml:"run_id"`
	Workers    int          `json:"workers" yaml:"workers" toml:"workers"`
	Iterations int64        `json:"iterations" yaml:"iterations" toml:"iterations"`
	Global     int64        `json:"global_counter" yaml:"global_counter" toml:"global_counter"`
	Expected   int64        `json:"expected_counter" yaml:"expected_counter" toml:"expected_counter"`
	Sum        int64        `json:"worker_counter_sum" yaml:"worker_counter_sum" toml:"worker_counter_sum"`
	PerWorker  []WorkerLine `json:"per_worker" yaml:"per_worker" toml:"per_worker"`
}

// Build reads the counters of the first workers slots. It must only be
// called once every worker has exited.
func Build(runID string, counters *ipc.Counters, workers int, iterations int64) *Report {
	r := &Report{
		RunID:      runID,
		Workers:    workers,
		Iterations: iterations,
		Global:     counters.Global,
		Expected:   int64(workers) * iterations,
		PerWorker:  make([]WorkerLine, workers),
	}
	for i, v := range counters.Snapshot(workers) {
		r.PerWorker[i] = WorkerLine{Index: i, Counter: v}
		r.Sum += v
	}
	return r
}

// Consistent reports whether the observed totals match expectations.
func (r *Report) Consistent() bool {
	return r.Global == r.Expected && r.Sum == r.Global
}

// Write renders the report in the requested format.
func (r *Report) Write(w io.Writer, format string) error {
	var (
		data []byte
		err  error
	)

	switch format {
	case FormatText, "":
		data = r.text()
	case FormatJSON:
		data, err = sonic.MarshalIndent(r, "", "  ")
		data = append(data, '\n')
	case FormatYAML:
		data, err = yaml.Marshal(r)
	case FormatTOML:
		data, err = toml.Marshal(r)
	default:
		return fmt.Errorf("unknown report format %q", format)
	}
	if err != nil {
		return fmt.Errorf("render %s report: %w", format, err)
	}

	_, err = w.Write(data)
	return err
}

func (r *Report) text() []byte {
	var b bytes.Buffer
	fmt.Fprintf(&b, "Coordinator: global_counter = %d (expected %d)\n", r.Global, r.Expected)
	for _, line := range r.PerWorker {
		fmt.Fprintf(&b, " worker %2d counter = %12d\n", line.Index, line.Counter)
	}
	fmt.Fprintf(&b, "Sum of per-worker counters = %d\n", r.Sum)
	return b.Bytes()
}

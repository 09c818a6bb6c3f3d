package coordinator

import (
	"fmt"
	"strconv"

	"github.com/GriffinCanCode/shmcounters/internal/ipc"
)

// Params are the run parameters.
type Params struct {
	Workers    int
	Iterations int64
}

// Expected is the global counter value a correct run ends with.
func (p Params) Expected() int64 {
	return int64(p.Workers) * p.Iterations
}

// Validate checks Workers is within [1, MaxWorkers] and Iterations is not negative.
func (p Params) Validate() error {
	if p.Workers < 1 || p.Workers > ipc.MaxWorkers {
		return &ConfigError{
			Field:  "worker_count",
			Value:  strconv.Itoa(p.Workers),
			Reason: fmt.Sprintf("must be 1..%d", ipc.MaxWorkers),
		}
	}
	if p.Iterations < 0 {
		return &ConfigError{
			Field:  "iterations_per_worker",
			Value:  strconv.FormatInt(p.Iterations, 10),
			Reason: "must be >= 0",
		}
	}
	return nil
}

// ParseArgs parses the positional <worker_count> <iterations_per_worker>
// arguments and validates them.
func ParseArgs(args []string) (Params, error) {
	if len(args) != 2 {
		return Params{}, &ConfigError{
			Field:  "arguments",
			Reason: fmt.Sprintf("expected 2, got %d", len(args)),
		}
	}

	workers, err := strconv.Atoi(args[0])
	if err != nil {
		return Params{}, &ConfigError{Field: "worker_count", Value: args[0], Reason: "not an integer"}
	}
	iterations, err := strconv.ParseInt(args[1], 10, 64)
	if err != nil {
		return Params{}, &ConfigError{Field: "iterations_per_worker", Value: args[1], Reason: "not an integer"}
	}

	p := Params{Workers: workers, Iterations: iterations}
	if err := p.Validate(); err != nil {
		return Params{}, err
	}
	return p, nil
}

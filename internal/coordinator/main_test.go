package coordinator

import (
	"os"
	"testing"

	"github.com/GriffinCanCode/shmcounters/internal/logging"
	"github.com/GriffinCanCode/shmcounters/internal/worker"
)

// TestMain lets the test binary double as the worker executable:
// ExecSpawner re-runs os.Executable() with the worker role set.
func TestMain(m *testing.M) {
	if worker.IsWorkerProcess() {
		os.Exit(worker.Main(logging.NewNop()))
	}
	os.Exit(m.Run())
}

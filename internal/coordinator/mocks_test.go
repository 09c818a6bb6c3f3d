package coordinator

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/GriffinCanCode/shmcounters/internal/worker"
)

type mockSpawner struct {
	mock.Mock
}

func (m *mockSpawner) Spawn(ctx context.Context, params worker.Params) (Process, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(Process), args.Error(1)
}

type mockProcess struct {
	mock.Mock
	pid int
}

func newMockProcess(pid int) *mockProcess {
	return &mockProcess{pid: pid}
}

func (m *mockProcess) Pid() int { return m.pid }

func (m *mockProcess) Kill() error {
	return m.Called().Error(0)
}

func (m *mockProcess) Wait() (ExitStatus, error) {
	args := m.Called()
	return args.Get(0).(ExitStatus), args.Error(1)
}

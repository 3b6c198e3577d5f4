package mocks

import (
	"time"

	"github.com/stretchr/testify/mock"
)

// MockRecorder implements metrics.Recorder for testing across packages
type MockRecorder struct {
	mock.Mock
}

func (m *MockRecorder) OperationStarted(operation string) {
	m.Called(operation)
}

func (m *MockRecorder) RecordOperation(operation string, duration time.Duration, err error) {
	m.Called(operation, duration, err)
}

func (m *MockRecorder) RecordLockWait(role string) {
	m.Called(role)
}

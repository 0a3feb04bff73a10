package mocks

import (
	"time"

	"github.com/stretchr/testify/mock"

	"toastd/domain/toasts"
)

// MockRenderer implements toasts.Renderer for testing
type MockRenderer struct {
	mock.Mock
}

func (m *MockRenderer) Mount(inst toasts.Instance) error {
	args := m.Called(inst)
	return args.Error(0)
}

func (m *MockRenderer) StartProgress(id toasts.ID, d time.Duration) error {
	args := m.Called(id, d)
	return args.Error(0)
}

func (m *MockRenderer) FreezeProgress(id toasts.ID, fraction float64) error {
	args := m.Called(id, fraction)
	return args.Error(0)
}

func (m *MockRenderer) Exit(id toasts.ID) error {
	args := m.Called(id)
	return args.Error(0)
}

func (m *MockRenderer) Remove(id toasts.ID) error {
	args := m.Called(id)
	return args.Error(0)
}

// MockMetricsRecorder implements the lifecycle metrics sink for testing
type MockMetricsRecorder struct {
	mock.Mock
}

func (m *MockMetricsRecorder) ToastSpawned(variant, position string) {
	m.Called(variant, position)
}

func (m *MockMetricsRecorder) ToastPaused() {
	m.Called()
}

func (m *MockMetricsRecorder) ToastResumed() {
	m.Called()
}

func (m *MockMetricsRecorder) ToastDismissed(reason string) {
	m.Called(reason)
}

func (m *MockMetricsRecorder) ToastRemoved(lifetime time.Duration) {
	m.Called(lifetime)
}

package mocks

import (
	"github.com/stretchr/testify/mock"

	"toastd/domain/events"
)

// MockToastEventPublisher is a mock implementation of ToastEventPublisher for testing
type MockToastEventPublisher struct {
	mock.Mock
}

func (m *MockToastEventPublisher) PublishToastSpawned(event events.ToastSpawnedEvent) {
	m.Called(event)
}

func (m *MockToastEventPublisher) PublishToastPaused(event events.ToastPausedEvent) {
	m.Called(event)
}

func (m *MockToastEventPublisher) PublishToastResumed(event events.ToastResumedEvent) {
	m.Called(event)
}

func (m *MockToastEventPublisher) PublishToastDismissed(event events.ToastDismissedEvent) {
	m.Called(event)
}

func (m *MockToastEventPublisher) PublishToastRemoved(event events.ToastRemovedEvent) {
	m.Called(event)
}

package events

import (
	"context"
	"log/slog"
	"sync"
)

// MockEventPublisher collects events in memory. Used by tests and as a
// fallback when no broker is configured in development.
type MockEventPublisher struct {
	mu     sync.Mutex
	events []*NotificationEvent
	logger *slog.Logger
}

func NewMockEventPublisher(logger *slog.Logger) *MockEventPublisher {
	return &MockEventPublisher{logger: logger}
}

func (p *MockEventPublisher) PublishNotificationEvent(_ context.Context, event *NotificationEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, event)
	p.logger.Info("mock event published", "event_id", event.ID, "event_type", event.Type)
	return nil
}

func (p *MockEventPublisher) Close() error {
	return nil
}

// GetPublishedEvents returns a snapshot of everything published so far.
func (p *MockEventPublisher) GetPublishedEvents() []*NotificationEvent {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]*NotificationEvent, len(p.events))
	copy(out, p.events)
	return out
}

func (p *MockEventPublisher) ClearEvents() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = nil
}

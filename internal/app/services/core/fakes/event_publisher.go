package fakes

import (
	"context"
	"medibook-service/internal/pkg/dto/requests"
	"sync"
)

type EventPublisher struct {
	mu     sync.Mutex
	events []requests.DomainEvent
	// Err, when set, is returned by Publish after recording the event.
	Err error
}

func NewEventPublisher() *EventPublisher {
	return &EventPublisher{}
}

func (p *EventPublisher) Publish(ctx context.Context, event *requests.DomainEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, *event)
	return p.Err
}

// Types returns the published event types in order.
func (p *EventPublisher) Types() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	types := make([]string, 0, len(p.events))
	for _, event := range p.events {
		types = append(types, event.Type)
	}
	return types
}

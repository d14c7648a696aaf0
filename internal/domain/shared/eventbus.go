package shared

import "context"

// EventHandler handles domain events
type EventHandler interface {
	// Handle processes a domain event
	Handle(ctx context.Context, event DomainEvent) error
	// EventTypes returns the event types this handler is interested in.
	// An empty slice means the handler receives all events.
	EventTypes() []string
}

// EventPublisher publishes domain events. Delivery is best-effort and
// fire-and-forget: the absence of a subscriber is not an error, and a
// failing handler must never propagate back into the caller's control flow.
type EventPublisher interface {
	Publish(ctx context.Context, events ...DomainEvent) error
}

// EventSubscriber subscribes to domain events
type EventSubscriber interface {
	// Subscribe registers a handler for specific event types.
	// If no event types are provided, the handler's own EventTypes are used.
	Subscribe(handler EventHandler, eventTypes ...string)
	// Unsubscribe removes a handler from the subscription list
	Unsubscribe(handler EventHandler)
}

// EventBus combines publisher and subscriber capabilities
type EventBus interface {
	EventPublisher
	EventSubscriber
}

// NoOpEventPublisher discards all events. Used in tests and as the default
// when no notification bus is configured.
type NoOpEventPublisher struct{}

// Publish discards the events
func (NoOpEventPublisher) Publish(_ context.Context, _ ...DomainEvent) error {
	return nil
}

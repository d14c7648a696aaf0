package event

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/oms/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type testEvent struct {
	shared.BaseDomainEvent
}

func (e *testEvent) Payload() map[string]any {
	return map[string]any{"aggregate_id": e.AggID.String()}
}

func newTestEvent(eventType string) *testEvent {
	return &testEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(eventType, "Test", uuid.New(), uuid.New()),
	}
}

type recordingHandler struct {
	types    []string
	received []shared.DomainEvent
	err      error
	panics   bool
}

func (h *recordingHandler) Handle(_ context.Context, event shared.DomainEvent) error {
	if h.panics {
		panic("handler exploded")
	}
	h.received = append(h.received, event)
	return h.err
}

func (h *recordingHandler) EventTypes() []string { return h.types }

func TestInMemoryEventBusPublish(t *testing.T) {
	ctx := context.Background()

	t.Run("delivers events to matching handlers", func(t *testing.T) {
		bus := NewInMemoryEventBus(zap.NewNop())
		handler := &recordingHandler{types: []string{"order-status-updated"}}
		bus.Subscribe(handler)

		event := newTestEvent("order-status-updated")
		require.NoError(t, bus.Publish(ctx, event))

		require.Len(t, handler.received, 1)
		assert.Equal(t, event.EventID(), handler.received[0].EventID())
	})

	t.Run("does not deliver to handlers of other types", func(t *testing.T) {
		bus := NewInMemoryEventBus(zap.NewNop())
		handler := &recordingHandler{types: []string{"invoice-created"}}
		bus.Subscribe(handler)

		require.NoError(t, bus.Publish(ctx, newTestEvent("order-status-updated")))
		assert.Empty(t, handler.received)
	})

	t.Run("wildcard handlers receive every event", func(t *testing.T) {
		bus := NewInMemoryEventBus(zap.NewNop())
		handler := &recordingHandler{}
		bus.Subscribe(handler)

		require.NoError(t, bus.Publish(ctx, newTestEvent("order-status-updated"), newTestEvent("invoice-created")))
		assert.Len(t, handler.received, 2)
	})

	t.Run("a failing handler does not affect the publisher or other handlers", func(t *testing.T) {
		bus := NewInMemoryEventBus(zap.NewNop())
		failing := &recordingHandler{types: []string{"order-status-updated"}, err: errors.New("boom")}
		healthy := &recordingHandler{types: []string{"order-status-updated"}}
		bus.Subscribe(failing)
		bus.Subscribe(healthy)

		require.NoError(t, bus.Publish(ctx, newTestEvent("order-status-updated")))
		assert.Len(t, healthy.received, 1)
	})

	t.Run("a panicking handler is contained", func(t *testing.T) {
		bus := NewInMemoryEventBus(zap.NewNop())
		panicking := &recordingHandler{types: []string{"order-status-updated"}, panics: true}
		healthy := &recordingHandler{types: []string{"order-status-updated"}}
		bus.Subscribe(panicking)
		bus.Subscribe(healthy)

		require.NotPanics(t, func() {
			_ = bus.Publish(ctx, newTestEvent("order-status-updated"))
		})
		assert.Len(t, healthy.received, 1)
	})

	t.Run("unsubscribed handlers stop receiving", func(t *testing.T) {
		bus := NewInMemoryEventBus(zap.NewNop())
		handler := &recordingHandler{types: []string{"order-status-updated"}}
		bus.Subscribe(handler)
		bus.Unsubscribe(handler)

		require.NoError(t, bus.Publish(ctx, newTestEvent("order-status-updated")))
		assert.Empty(t, handler.received)
	})

	t.Run("explicit subscription types override the handler's own list", func(t *testing.T) {
		bus := NewInMemoryEventBus(zap.NewNop())
		handler := &recordingHandler{types: []string{"order-status-updated"}}
		bus.Subscribe(handler, "invoice-created")

		require.NoError(t, bus.Publish(ctx, newTestEvent("order-status-updated")))
		assert.Empty(t, handler.received)

		require.NoError(t, bus.Publish(ctx, newTestEvent("invoice-created")))
		assert.Len(t, handler.received, 1)
	})
}

func TestHandlerRegistry(t *testing.T) {
	t.Run("returns type handlers before wildcard handlers", func(t *testing.T) {
		registry := NewHandlerRegistry()
		typed := &recordingHandler{}
		wildcard := &recordingHandler{}

		registry.Register(typed, "order-status-updated")
		registry.Register(wildcard)

		handlers := registry.GetHandlers("order-status-updated")
		require.Len(t, handlers, 2)
		assert.Same(t, typed, handlers[0].(*recordingHandler))
		assert.Same(t, wildcard, handlers[1].(*recordingHandler))
	})

	t.Run("unregister removes a handler everywhere", func(t *testing.T) {
		registry := NewHandlerRegistry()
		handler := &recordingHandler{}

		registry.Register(handler, "a", "b")
		registry.Unregister(handler)

		assert.Empty(t, registry.GetHandlers("a"))
		assert.Empty(t, registry.GetHandlers("b"))
	})
}

package order

import (
	"github.com/google/uuid"
	"github.com/oms/backend/internal/domain/shared"
)

// Event type constants for the order aggregate
const (
	EventTypeStatusUpdated = "order-status-updated"
)

// StatusUpdatedEvent is emitted when an order's status changes
type StatusUpdatedEvent struct {
	shared.BaseDomainEvent
	OrderID     uuid.UUID `json:"order_id"`
	OrderNumber string    `json:"order_number"`
	FromStatus  Status    `json:"from_status"`
	ToStatus    Status    `json:"to_status"`
	ActorID     uuid.UUID `json:"actor_id"`
}

// NewStatusUpdatedEvent creates a new status updated event
func NewStatusUpdatedEvent(o *Order, from, to Status, actorID uuid.UUID) *StatusUpdatedEvent {
	return &StatusUpdatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeStatusUpdated, "Order", o.ID, o.MerchantID),
		OrderID:         o.ID,
		OrderNumber:     o.OrderNumber,
		FromStatus:      from,
		ToStatus:        to,
		ActorID:         actorID,
	}
}

// Payload returns the event body as plain key/value pairs
func (e *StatusUpdatedEvent) Payload() map[string]any {
	return map[string]any{
		"order_id":     e.OrderID.String(),
		"order_number": e.OrderNumber,
		"from_status":  e.FromStatus.String(),
		"to_status":    e.ToStatus.String(),
		"actor_id":     e.ActorID.String(),
	}
}

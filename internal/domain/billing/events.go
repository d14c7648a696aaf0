package billing

import (
	"github.com/google/uuid"
	"github.com/oms/backend/internal/domain/shared"
)

// Event type constants for the billing context
const (
	EventTypeInvoiceCreated       = "invoice-created"
	EventTypeInvoiceStatusUpdated = "invoice-status-updated"
)

// InvoiceCreatedEvent is emitted when an invoice is issued for an order
type InvoiceCreatedEvent struct {
	shared.BaseDomainEvent
	InvoiceID     uuid.UUID `json:"invoice_id"`
	OrderID       uuid.UUID `json:"order_id"`
	DisplayNumber string    `json:"display_number"`
	Total         string    `json:"total"`
	Status        InvoiceStatus `json:"status"`
}

// NewInvoiceCreatedEvent creates a new invoice created event
func NewInvoiceCreatedEvent(inv *Invoice) *InvoiceCreatedEvent {
	return &InvoiceCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeInvoiceCreated, "Invoice", inv.ID, inv.MerchantID),
		InvoiceID:       inv.ID,
		OrderID:         inv.OrderID,
		DisplayNumber:   inv.DisplayNumber(),
		Total:           inv.Total.StringFixed(2),
		Status:          inv.Status,
	}
}

// Payload returns the event body as plain key/value pairs
func (e *InvoiceCreatedEvent) Payload() map[string]any {
	return map[string]any{
		"invoice_id":     e.InvoiceID.String(),
		"order_id":       e.OrderID.String(),
		"display_number": e.DisplayNumber,
		"total":          e.Total,
		"status":         string(e.Status),
	}
}

// InvoiceStatusUpdatedEvent is emitted when an invoice's mirrored payment
// state is corrected in place
type InvoiceStatusUpdatedEvent struct {
	shared.BaseDomainEvent
	InvoiceID uuid.UUID     `json:"invoice_id"`
	OrderID   uuid.UUID     `json:"order_id"`
	Status    InvoiceStatus `json:"status"`
	Method    string        `json:"method"`
}

// NewInvoiceStatusUpdatedEvent creates a new invoice status updated event
func NewInvoiceStatusUpdatedEvent(inv *Invoice) *InvoiceStatusUpdatedEvent {
	return &InvoiceStatusUpdatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeInvoiceStatusUpdated, "Invoice", inv.ID, inv.MerchantID),
		InvoiceID:       inv.ID,
		OrderID:         inv.OrderID,
		Status:          inv.Status,
		Method:          inv.Method,
	}
}

// Payload returns the event body as plain key/value pairs
func (e *InvoiceStatusUpdatedEvent) Payload() map[string]any {
	return map[string]any{
		"invoice_id": e.InvoiceID.String(),
		"order_id":   e.OrderID.String(),
		"status":     string(e.Status),
		"method":     e.Method,
	}
}

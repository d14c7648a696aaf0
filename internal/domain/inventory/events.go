package inventory

import (
	"github.com/google/uuid"
	"github.com/oms/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// Event type constants for the inventory context
const (
	EventTypeUpdated      = "inventory-updated"
	EventTypeStockUpdated = "inventory-stock-updated"
)

// StockUpdatedEvent is emitted after an inventory quantity change. OnHand
// carries the authoritative post-change quantity read back from storage,
// never a naively-added delta, to stay correct under concurrent writers.
type StockUpdatedEvent struct {
	shared.BaseDomainEvent
	ProductID uuid.UUID       `json:"product_id"`
	SKU       string          `json:"sku"`
	Delta     decimal.Decimal `json:"delta"`
	OnHand    decimal.Decimal `json:"on_hand"`
	Source    string          `json:"source"`
}

// NewStockUpdatedEvent creates a stock updated event with the given type
// (EventTypeUpdated or EventTypeStockUpdated)
func NewStockUpdatedEvent(eventType string, merchantID, recordID, productID uuid.UUID, sku string, delta, onHand decimal.Decimal, source string) *StockUpdatedEvent {
	return &StockUpdatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(eventType, "InventoryRecord", recordID, merchantID),
		ProductID:       productID,
		SKU:             sku,
		Delta:           delta,
		OnHand:          onHand,
		Source:          source,
	}
}

// Payload returns the event body as plain key/value pairs
func (e *StockUpdatedEvent) Payload() map[string]any {
	return map[string]any{
		"product_id": e.ProductID.String(),
		"sku":        e.SKU,
		"delta":      e.Delta.String(),
		"on_hand":    e.OnHand.String(),
		"source":     e.Source,
	}
}

package order

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/oms/backend/internal/domain/order"
	"github.com/shopspring/decimal"
)

// CacheInvalidator invalidates cached views keyed by the acting user.
// Invoked after any mutation that could stale a per-user cached read.
type CacheInvalidator interface {
	InvalidateActor(ctx context.Context, actorID uuid.UUID) error
}

// SettleCommand is the typed payload of a payment settlement request
type SettleCommand struct {
	Status order.PaymentStatus
	Method string
	Amount decimal.Decimal
	// NewUnitPrice, when set together with a paid target status, rewrites
	// every line item's unit price before settling
	NewUnitPrice *decimal.Decimal
}

// InvoiceOutcome reports what happened to the order's invoice during
// settlement: created, already existed and corrected in place, or failed
// softly without affecting the committed payment update.
type InvoiceOutcome struct {
	Created        bool       `json:"created"`
	AlreadyExisted bool       `json:"already_existed"`
	InvoiceID      *uuid.UUID `json:"invoice_id,omitempty"`
	DisplayNumber  string     `json:"display_number,omitempty"`
	Error          string     `json:"error,omitempty"`
}

// SettlementResult reports the outcome of a settlement
type SettlementResult struct {
	OrderID          uuid.UUID           `json:"order_id"`
	PaymentStatus    order.PaymentStatus `json:"payment_status"`
	OldStatus        order.Status        `json:"old_status"`
	NewStatus        order.Status        `json:"new_status"`
	OldTotal         string              `json:"old_total"`
	NewTotal         string              `json:"new_total"`
	UnitPriceChanged bool                `json:"unit_price_changed"`
	Invoice          InvoiceOutcome      `json:"invoice"`
}

// StatusChangeResult reports a direct status change
type StatusChangeResult struct {
	OrderID   uuid.UUID    `json:"order_id"`
	OldStatus order.Status `json:"old_status"`
	NewStatus order.Status `json:"new_status"`
}

// LineItemResponse is the API shape of an order line item
type LineItemResponse struct {
	ID            uuid.UUID `json:"id"`
	ProductID     uuid.UUID `json:"product_id"`
	SKU           string    `json:"sku"`
	HSNCode       string    `json:"hsn_code"`
	TaxRatePct    string    `json:"tax_rate_pct"`
	Quantity      string    `json:"quantity"`
	UnitPrice     string    `json:"unit_price"`
	ExtendedPrice string    `json:"extended_price"`
}

// OrderResponse is the API shape of an order
type OrderResponse struct {
	ID                   uuid.UUID           `json:"id"`
	OrderNumber          string              `json:"order_number"`
	CustomerID           uuid.UUID           `json:"customer_id"`
	CustomerName         string              `json:"customer_name"`
	CustomerJurisdiction string              `json:"customer_jurisdiction,omitempty"`
	AssignedTo           *uuid.UUID          `json:"assigned_to,omitempty"`
	TotalAmount          string              `json:"total_amount"`
	Status               order.Status        `json:"status"`
	PaymentStatus        order.PaymentStatus `json:"payment_status"`
	Items                []LineItemResponse  `json:"items"`
	CreatedAt            time.Time           `json:"created_at"`
	UpdatedAt            time.Time           `json:"updated_at"`
}

// ToOrderResponse maps an order aggregate to its API shape
func ToOrderResponse(o *order.Order) OrderResponse {
	items := make([]LineItemResponse, 0, len(o.Items))
	for _, it := range o.Items {
		items = append(items, LineItemResponse{
			ID:            it.ID,
			ProductID:     it.ProductID,
			SKU:           it.SKU,
			HSNCode:       it.HSNCode,
			TaxRatePct:    it.TaxRatePct.StringFixed(2),
			Quantity:      it.Quantity.String(),
			UnitPrice:     it.UnitPrice.StringFixed(2),
			ExtendedPrice: it.ExtendedPrice.StringFixed(2),
		})
	}

	return OrderResponse{
		ID:                   o.ID,
		OrderNumber:          o.OrderNumber,
		CustomerID:           o.CustomerID,
		CustomerName:         o.CustomerName,
		CustomerJurisdiction: o.CustomerJurisdiction,
		AssignedTo:           o.AssignedTo,
		TotalAmount:          o.TotalAmount.StringFixed(2),
		Status:               o.Status,
		PaymentStatus:        o.PaymentStatus,
		Items:                items,
		CreatedAt:            o.CreatedAt,
		UpdatedAt:            o.UpdatedAt,
	}
}

// HistoryEntryResponse is the API shape of an audit entry
type HistoryEntryResponse struct {
	ID         uuid.UUID              `json:"id"`
	EntryType  order.HistoryEntryType `json:"entry_type"`
	FromStatus order.Status           `json:"from_status"`
	ToStatus   order.Status           `json:"to_status"`
	EmployeeID *uuid.UUID             `json:"employee_id,omitempty"`
	ActorID    uuid.UUID              `json:"actor_id"`
	CreatedAt  time.Time              `json:"created_at"`
}

// ToHistoryEntryResponses maps audit entries to their API shape
func ToHistoryEntryResponses(entries []order.HistoryEntry) []HistoryEntryResponse {
	out := make([]HistoryEntryResponse, 0, len(entries))
	for _, e := range entries {
		out = append(out, HistoryEntryResponse{
			ID:         e.ID,
			EntryType:  e.EntryType,
			FromStatus: e.FromStatus,
			ToStatus:   e.ToStatus,
			EmployeeID: e.EmployeeID,
			ActorID:    e.ActorID,
			CreatedAt:  e.CreatedAt,
		})
	}
	return out
}

package returns

import (
	"time"

	"github.com/google/uuid"
	"github.com/oms/backend/internal/domain/returns"
	"github.com/shopspring/decimal"
)

// FileReturnItem is one line of a return request, matched against the
// order's line items by product identity
type FileReturnItem struct {
	ProductID uuid.UUID
	Quantity  decimal.Decimal
	Amount    decimal.Decimal
}

// FileReturnCommand is the typed payload for filing a return
type FileReturnCommand struct {
	CustomerID uuid.UUID
	Reason     string
	Items      []FileReturnItem
}

// ReturnItemResponse is the API shape of a return item
type ReturnItemResponse struct {
	ID          uuid.UUID  `json:"id"`
	OrderItemID uuid.UUID  `json:"order_item_id"`
	ProductID   uuid.UUID  `json:"product_id"`
	SKU         string     `json:"sku"`
	Quantity    string     `json:"quantity"`
	Amount      string     `json:"amount"`
	RestockedAt *time.Time `json:"restocked_at,omitempty"`
}

// ReturnResponse is the API shape of a return
type ReturnResponse struct {
	ID             uuid.UUID              `json:"id"`
	OrderID        uuid.UUID              `json:"order_id"`
	CustomerID     uuid.UUID              `json:"customer_id"`
	Reason         string                 `json:"reason"`
	RefundAmount   string                 `json:"refund_amount"`
	ApprovalStatus returns.ApprovalStatus `json:"approval_status"`
	ReceiptStatus  returns.ReceiptStatus  `json:"receipt_status"`
	Status         returns.Status         `json:"status"`
	Items          []ReturnItemResponse   `json:"items"`
	CreatedAt      time.Time              `json:"created_at"`
	UpdatedAt      time.Time              `json:"updated_at"`
}

// ToReturnResponse maps a return aggregate to its API shape
func ToReturnResponse(r *returns.Return) ReturnResponse {
	items := make([]ReturnItemResponse, 0, len(r.Items))
	for _, it := range r.Items {
		items = append(items, ReturnItemResponse{
			ID:          it.ID,
			OrderItemID: it.OrderItemID,
			ProductID:   it.ProductID,
			SKU:         it.SKU,
			Quantity:    it.Quantity.String(),
			Amount:      it.Amount.StringFixed(2),
			RestockedAt: it.RestockedAt,
		})
	}

	return ReturnResponse{
		ID:             r.ID,
		OrderID:        r.OrderID,
		CustomerID:     r.CustomerID,
		Reason:         r.Reason,
		RefundAmount:   r.RefundAmount.StringFixed(2),
		ApprovalStatus: r.ApprovalStatus,
		ReceiptStatus:  r.ReceiptStatus,
		Status:         r.Status,
		Items:          items,
		CreatedAt:      r.CreatedAt,
		UpdatedAt:      r.UpdatedAt,
	}
}

// RestockedItem reports one successfully restocked item with the
// authoritative post-increment quantity
type RestockedItem struct {
	ProductID uuid.UUID `json:"product_id"`
	SKU       string    `json:"sku"`
	Quantity  string    `json:"quantity"`
	OnHand    string    `json:"on_hand"`
}

// RestockFailure reports one item that could not be restocked
type RestockFailure struct {
	ProductID uuid.UUID `json:"product_id"`
	Error     string    `json:"error"`
}

// RestockReport is the outcome of a restock pass over a return. Failures
// are soft: the status change that triggered the restock is already durable.
type RestockReport struct {
	ReturnID  uuid.UUID        `json:"return_id"`
	Restocked []RestockedItem  `json:"restocked"`
	Failed    []RestockFailure `json:"failed,omitempty"`
}

// UpdateStatusResult reports a return status update plus the restock outcome
// when the receipt transition triggered one
type UpdateStatusResult struct {
	Return  ReturnResponse `json:"return"`
	Restock *RestockReport `json:"restock,omitempty"`
}

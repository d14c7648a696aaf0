package returns

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/oms/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// ApprovalStatus is the merchant's decision on a return request
type ApprovalStatus string

const (
	ApprovalPending  ApprovalStatus = "pending"
	ApprovalApproved ApprovalStatus = "approved"
	ApprovalRejected ApprovalStatus = "rejected"
)

// IsValid checks if the approval status is recognized
func (s ApprovalStatus) IsValid() bool {
	switch s {
	case ApprovalPending, ApprovalApproved, ApprovalRejected:
		return true
	}
	return false
}

// ReceiptStatus tracks the physical receipt of returned goods
type ReceiptStatus string

const (
	ReceiptPending   ReceiptStatus = "pending"
	ReceiptReceived  ReceiptStatus = "received"
	ReceiptInspected ReceiptStatus = "inspected"
	ReceiptRejected  ReceiptStatus = "rejected"
)

// IsValid checks if the receipt status is recognized
func (s ReceiptStatus) IsValid() bool {
	switch s {
	case ReceiptPending, ReceiptReceived, ReceiptInspected, ReceiptRejected:
		return true
	}
	return false
}

// IsRestockable returns true when goods in this state belong back on hand
func (s ReceiptStatus) IsRestockable() bool {
	return s == ReceiptReceived || s == ReceiptInspected
}

// Status is the coarse processing state of a return
type Status string

const (
	StatusPending   Status = "pending"
	StatusProcessed Status = "processed"
)

// IsValid checks if the status is recognized
func (s Status) IsValid() bool {
	return s == StatusPending || s == StatusProcessed
}

// Item is one returned line, referencing the original order line item.
// RestockedAt guards against double-restock when a receipt transition is
// retried: an item is restocked at most once.
type Item struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	ReturnID    uuid.UUID `gorm:"type:uuid;not null;index"`
	OrderItemID uuid.UUID `gorm:"type:uuid;not null"`
	ProductID   uuid.UUID `gorm:"type:uuid;not null"`
	SKU         string
	Quantity    decimal.Decimal `gorm:"type:numeric(12,4)"`
	Amount      decimal.Decimal `gorm:"type:numeric(14,2)"`
	RestockedAt *time.Time
	CreatedAt   time.Time
}

// TableName returns the database table name
func (Item) TableName() string { return "return_items" }

// MarkRestocked stamps the item as restocked
func (i *Item) MarkRestocked() {
	now := time.Now()
	i.RestockedAt = &now
}

// Return is a request to send order items back. At most one exists per order.
type Return struct {
	shared.MerchantAggregateRoot
	OrderID        uuid.UUID `gorm:"type:uuid;not null;uniqueIndex"`
	CustomerID     uuid.UUID `gorm:"type:uuid;not null"`
	Reason         string
	RefundAmount   decimal.Decimal `gorm:"type:numeric(14,2)"`
	ApprovalStatus ApprovalStatus  `gorm:"type:varchar(16);not null"`
	ReceiptStatus  ReceiptStatus   `gorm:"type:varchar(16);not null"`
	Status         Status          `gorm:"type:varchar(16);not null"`
	Items          []Item          `gorm:"foreignKey:ReturnID"`
}

// TableName returns the database table name
func (Return) TableName() string { return "returns" }

// NewReturn creates a return request. Refund amount is the sum of item
// amounts; items are added through AddItem.
func NewReturn(merchantID, orderID, customerID uuid.UUID, reason string) (*Return, error) {
	if orderID == uuid.Nil {
		return nil, shared.NewDomainError(shared.CodeInvalidInput, "Order ID cannot be empty")
	}
	if reason == "" {
		return nil, shared.NewDomainError(shared.CodeInvalidInput, "Return reason is required")
	}

	return &Return{
		MerchantAggregateRoot: shared.NewMerchantAggregateRoot(merchantID),
		OrderID:               orderID,
		CustomerID:            customerID,
		Reason:                reason,
		RefundAmount:          decimal.Zero,
		ApprovalStatus:        ApprovalPending,
		ReceiptStatus:         ReceiptPending,
		Status:                StatusPending,
		Items:                 make([]Item, 0),
	}, nil
}

// AddItem appends a returned line and accrues the refund amount
func (r *Return) AddItem(orderItemID, productID uuid.UUID, sku string, quantity, amount decimal.Decimal) error {
	if quantity.LessThanOrEqual(decimal.Zero) {
		return shared.NewDomainError(shared.CodeInvalidInput, "Return quantity must be positive")
	}
	if amount.IsNegative() {
		return shared.NewDomainError(shared.CodeInvalidInput, "Return amount cannot be negative")
	}

	r.Items = append(r.Items, Item{
		ID:          uuid.New(),
		ReturnID:    r.ID,
		OrderItemID: orderItemID,
		ProductID:   productID,
		SKU:         sku,
		Quantity:    quantity,
		Amount:      amount,
		CreatedAt:   time.Now(),
	})
	r.RefundAmount = r.RefundAmount.Add(amount)
	r.UpdatedAt = time.Now()

	return nil
}

// StatusUpdate carries the optional fields of a return status update.
// Nil fields are left untouched.
type StatusUpdate struct {
	Approval *ApprovalStatus
	Receipt  *ReceiptStatus
	Status   *Status
}

// Validate checks every provided field against its own enum
func (u StatusUpdate) Validate() error {
	if u.Approval == nil && u.Receipt == nil && u.Status == nil {
		return shared.NewDomainError(shared.CodeInvalidInput, "No status fields provided")
	}
	if u.Approval != nil && !u.Approval.IsValid() {
		return shared.NewDomainError(shared.CodeInvalidInput, fmt.Sprintf("Unknown approval status %q", *u.Approval))
	}
	if u.Receipt != nil && !u.Receipt.IsValid() {
		return shared.NewDomainError(shared.CodeInvalidInput, fmt.Sprintf("Unknown receipt status %q", *u.Receipt))
	}
	if u.Status != nil && !u.Status.IsValid() {
		return shared.NewDomainError(shared.CodeInvalidInput, fmt.Sprintf("Unknown return status %q", *u.Status))
	}
	return nil
}

// Apply mutates the return with the provided fields. Setting the approval
// status to rejected forces the receipt status to rejected in the same
// update: rejection short-circuits receiving.
//
// It returns true when the receipt status transitioned into a restockable
// state with this update, which is the sole trigger for the post-commit
// restock step.
func (r *Return) Apply(update StatusUpdate) (restock bool, err error) {
	if err := update.Validate(); err != nil {
		return false, err
	}

	prevReceipt := r.ReceiptStatus

	if update.Approval != nil {
		r.ApprovalStatus = *update.Approval
		if *update.Approval == ApprovalRejected {
			r.ReceiptStatus = ReceiptRejected
		}
	}
	if update.Receipt != nil {
		r.ReceiptStatus = *update.Receipt
	}
	if update.Status != nil {
		r.Status = *update.Status
	}
	r.UpdatedAt = time.Now()

	return r.ReceiptStatus.IsRestockable() && !prevReceipt.IsRestockable(), nil
}

// PendingRestockItems returns the items not yet restocked
func (r *Return) PendingRestockItems() []*Item {
	pending := make([]*Item, 0, len(r.Items))
	for idx := range r.Items {
		if r.Items[idx].RestockedAt == nil {
			pending = append(pending, &r.Items[idx])
		}
	}
	return pending
}

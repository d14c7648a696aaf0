package order

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/oms/backend/internal/domain/shared"
	"github.com/oms/backend/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
)

// LineItem represents a line item in an order. It carries a denormalized
// SKU / tax snapshot taken from the product at order time so that later
// catalog edits do not rewrite history.
type LineItem struct {
	ID            uuid.UUID  `gorm:"type:uuid;primaryKey"`
	OrderID       uuid.UUID  `gorm:"type:uuid;not null;index"`
	ProductID     uuid.UUID  `gorm:"type:uuid;not null"`
	InventoryID   *uuid.UUID `gorm:"type:uuid"`
	SKU           string
	HSNCode       string
	TaxRatePct    decimal.Decimal `gorm:"type:numeric(5,2)"`
	Quantity      decimal.Decimal `gorm:"type:numeric(12,4)"`
	UnitPrice     decimal.Decimal `gorm:"type:numeric(14,2)"`
	ExtendedPrice decimal.Decimal `gorm:"type:numeric(14,2)"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// TableName returns the database table name
func (LineItem) TableName() string { return "order_items" }

// NewLineItem creates a new order line item
func NewLineItem(orderID, productID uuid.UUID, sku, hsnCode string, taxRatePct, quantity decimal.Decimal, unitPrice valueobject.Money) (*LineItem, error) {
	if productID == uuid.Nil {
		return nil, shared.NewDomainError(shared.CodeInvalidInput, "Product ID cannot be empty")
	}
	if quantity.LessThanOrEqual(decimal.Zero) {
		return nil, shared.NewDomainError(shared.CodeInvalidInput, "Quantity must be positive")
	}
	if unitPrice.IsNegative() {
		return nil, shared.NewDomainError(shared.CodeInvalidInput, "Unit price cannot be negative")
	}

	now := time.Now()
	return &LineItem{
		ID:            uuid.New(),
		OrderID:       orderID,
		ProductID:     productID,
		SKU:           sku,
		HSNCode:       hsnCode,
		TaxRatePct:    taxRatePct,
		Quantity:      quantity,
		UnitPrice:     unitPrice.Amount(),
		ExtendedPrice: quantity.Mul(unitPrice.Amount()),
		CreatedAt:     now,
		UpdatedAt:     now,
	}, nil
}

// Reprice rewrites the unit price and recomputes the extended price.
// Quantity is immutable after creation.
func (i *LineItem) Reprice(unitPrice valueobject.Money) error {
	if unitPrice.IsNegative() {
		return shared.NewDomainError(shared.CodeInvalidInput, "Unit price cannot be negative")
	}
	i.UnitPrice = unitPrice.Amount()
	i.ExtendedPrice = i.Quantity.Mul(i.UnitPrice)
	i.UpdatedAt = time.Now()
	return nil
}

// PaymentRecord holds the settlement state of an order's payment.
// There is at most one per order; it is overwritten on each update and only
// the audit trail keeps history of prior states.
type PaymentRecord struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrderID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex"`
	MerchantID uuid.UUID `gorm:"type:uuid;not null;index"`
	Status     PaymentStatus
	Method     string
	Amount     decimal.Decimal `gorm:"type:numeric(14,2)"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// TableName returns the database table name
func (PaymentRecord) TableName() string { return "payments" }

// NewPaymentRecord creates a payment record for an order
func NewPaymentRecord(orderID, merchantID uuid.UUID, status PaymentStatus, method string, amount decimal.Decimal) *PaymentRecord {
	now := time.Now()
	return &PaymentRecord{
		ID:         uuid.New(),
		OrderID:    orderID,
		MerchantID: merchantID,
		Status:     status,
		Method:     method,
		Amount:     amount,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
}

// Update overwrites the settlement state
func (p *PaymentRecord) Update(status PaymentStatus, method string, amount decimal.Decimal) {
	p.Status = status
	if method != "" {
		p.Method = method
	}
	if amount.IsPositive() {
		p.Amount = amount
	}
	p.UpdatedAt = time.Now()
}

// Order represents the order aggregate root. Status, payment status,
// assignment and line items all hang off this aggregate and are mutated under
// the same row lock.
type Order struct {
	shared.MerchantAggregateRoot
	OrderNumber          string
	CustomerID           uuid.UUID `gorm:"type:uuid;not null;index"`
	CustomerName         string
	CustomerJurisdiction string     // tax-authority region snapshot taken at order time
	AssignedTo           *uuid.UUID `gorm:"type:uuid;index"` // handling employee, orthogonal to status
	Items                []LineItem `gorm:"foreignKey:OrderID"`
	TotalAmount          decimal.Decimal `gorm:"type:numeric(14,2)"`
	Status               Status          `gorm:"type:varchar(16);not null;index"`
	PaymentStatus        PaymentStatus   `gorm:"type:varchar(16);not null"`
}

// TableName returns the database table name
func (Order) TableName() string { return "orders" }

// NewOrder creates a new order in pending status
func NewOrder(merchantID uuid.UUID, orderNumber string, customerID uuid.UUID, customerName, customerJurisdiction string) (*Order, error) {
	if orderNumber == "" {
		return nil, shared.NewDomainError(shared.CodeInvalidInput, "Order number cannot be empty")
	}
	if customerID == uuid.Nil {
		return nil, shared.NewDomainError(shared.CodeInvalidInput, "Customer ID cannot be empty")
	}

	return &Order{
		MerchantAggregateRoot: shared.NewMerchantAggregateRoot(merchantID),
		OrderNumber:           orderNumber,
		CustomerID:            customerID,
		CustomerName:          customerName,
		CustomerJurisdiction:  customerJurisdiction,
		Items:                 make([]LineItem, 0),
		TotalAmount:           decimal.Zero,
		Status:                StatusPending,
		PaymentStatus:         PaymentPending,
	}, nil
}

// AddItem adds a line item to the order. Only allowed while pending.
func (o *Order) AddItem(productID uuid.UUID, sku, hsnCode string, taxRatePct, quantity decimal.Decimal, unitPrice valueobject.Money) (*LineItem, error) {
	if o.Status != StatusPending {
		return nil, shared.NewDomainError(shared.CodeInvalidInput, "Cannot add items to a non-pending order")
	}

	item, err := NewLineItem(o.ID, productID, sku, hsnCode, taxRatePct, quantity, unitPrice)
	if err != nil {
		return nil, err
	}

	o.Items = append(o.Items, *item)
	o.recalculateTotal()
	o.UpdatedAt = time.Now()

	return item, nil
}

// Reprice rewrites every line item's unit price and recomputes the order
// total as the new line-item sum.
func (o *Order) Reprice(unitPrice valueobject.Money) error {
	if len(o.Items) == 0 {
		return shared.NewDomainError(shared.CodeInvalidInput, "Order has no items to reprice")
	}
	for idx := range o.Items {
		if err := o.Items[idx].Reprice(unitPrice); err != nil {
			return err
		}
	}
	o.recalculateTotal()
	o.UpdatedAt = time.Now()
	return nil
}

// ChangeStatus applies a status transition already validated by the caller
// (transition policy, payment gate) and records the corresponding event.
func (o *Order) ChangeStatus(to Status, actorID uuid.UUID) error {
	if !to.IsValid() {
		return shared.NewDomainError(shared.CodeInvalidInput, fmt.Sprintf("Unknown order status %q", to))
	}
	if o.Status == to {
		return nil
	}

	from := o.Status
	o.Status = to
	o.UpdatedAt = time.Now()

	o.AddDomainEvent(NewStatusUpdatedEvent(o, from, to, actorID))

	return nil
}

// SetPaymentStatus records the payment outcome on the order row
func (o *Order) SetPaymentStatus(status PaymentStatus) {
	o.PaymentStatus = status
	o.UpdatedAt = time.Now()
}

// Assign attaches a handling employee without touching the status axis
func (o *Order) Assign(employeeID uuid.UUID) error {
	if employeeID == uuid.Nil {
		return shared.NewDomainError(shared.CodeInvalidInput, "Employee ID cannot be empty")
	}
	o.AssignedTo = &employeeID
	o.UpdatedAt = time.Now()
	return nil
}

// IsPaid returns true if the order's payment is settled
func (o *Order) IsPaid() bool {
	return o.PaymentStatus == PaymentPaid
}

// ItemByProduct returns the line item matching the given product, or nil
func (o *Order) ItemByProduct(productID uuid.UUID) *LineItem {
	for idx := range o.Items {
		if o.Items[idx].ProductID == productID {
			return &o.Items[idx]
		}
	}
	return nil
}

// recalculateTotal keeps the invariant total = sum(extended prices)
func (o *Order) recalculateTotal() {
	total := decimal.Zero
	for _, item := range o.Items {
		total = total.Add(item.ExtendedPrice)
	}
	o.TotalAmount = total
}

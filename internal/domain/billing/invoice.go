package billing

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/oms/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// InvoiceStatus mirrors the payment state of the invoiced order
type InvoiceStatus string

const (
	InvoiceUnpaid   InvoiceStatus = "unpaid"
	InvoicePaid     InvoiceStatus = "paid"
	InvoiceFailed   InvoiceStatus = "failed"
	InvoiceRefunded InvoiceStatus = "refunded"
)

// IsValid checks if the invoice status is recognized
func (s InvoiceStatus) IsValid() bool {
	switch s {
	case InvoiceUnpaid, InvoicePaid, InvoiceFailed, InvoiceRefunded:
		return true
	}
	return false
}

// InvoiceLineItem carries the per-item tax split and the HSN / rate snapshot
// taken at invoice time
type InvoiceLineItem struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey"`
	InvoiceID     uuid.UUID `gorm:"type:uuid;not null;index"`
	OrderItemID   uuid.UUID `gorm:"type:uuid;not null"`
	ProductID     uuid.UUID `gorm:"type:uuid;not null"`
	SKU           string
	HSNCode       string
	TaxRatePct    decimal.Decimal `gorm:"type:numeric(5,2)"`
	Quantity      decimal.Decimal `gorm:"type:numeric(12,4)"`
	UnitPrice     decimal.Decimal `gorm:"type:numeric(14,2)"`
	ExtendedPrice decimal.Decimal `gorm:"type:numeric(14,2)"`
	CGST          decimal.Decimal `gorm:"type:numeric(14,2)"`
	SGST          decimal.Decimal `gorm:"type:numeric(14,2)"`
	IGST          decimal.Decimal `gorm:"type:numeric(14,2)"`
	CreatedAt     time.Time
}

// TableName returns the database table name
func (InvoiceLineItem) TableName() string { return "invoice_items" }

// Invoice is the tax-compliant billing document for an order. At most one
// exists per order; the existence check lives with the callers of the issuer.
type Invoice struct {
	shared.MerchantAggregateRoot
	OrderID  uuid.UUID `gorm:"type:uuid;not null;uniqueIndex"`
	Number   int64     `gorm:"not null"` // merchant-scoped monotonically increasing
	Prefix   string
	Subtotal decimal.Decimal `gorm:"type:numeric(14,2)"`
	CGST     decimal.Decimal `gorm:"type:numeric(14,2)"`
	SGST     decimal.Decimal `gorm:"type:numeric(14,2)"`
	IGST     decimal.Decimal `gorm:"type:numeric(14,2)"`
	Discount decimal.Decimal `gorm:"type:numeric(14,2)"`
	Total    decimal.Decimal `gorm:"type:numeric(14,2)"`
	DueDate  time.Time
	Notes    string
	Status   InvoiceStatus `gorm:"type:varchar(16);not null"`
	Method   string
	Items    []InvoiceLineItem `gorm:"foreignKey:InvoiceID"`
}

// TableName returns the database table name
func (Invoice) TableName() string { return "invoices" }

// NewInvoice builds an invoice from a computed tax breakdown
func NewInvoice(merchantID, orderID uuid.UUID, number int64, prefix string, breakdown TaxBreakdown, dueDate time.Time, notes string, status InvoiceStatus) (*Invoice, error) {
	if orderID == uuid.Nil {
		return nil, shared.NewDomainError(shared.CodeInvalidInput, "Order ID cannot be empty")
	}
	if number <= 0 {
		return nil, shared.NewDomainError(shared.CodeInvalidInput, "Invoice number must be positive")
	}
	if !status.IsValid() {
		return nil, shared.NewDomainError(shared.CodeInvalidInput, fmt.Sprintf("Unknown invoice status %q", status))
	}

	inv := &Invoice{
		MerchantAggregateRoot: shared.NewMerchantAggregateRoot(merchantID),
		OrderID:               orderID,
		Number:                number,
		Prefix:                prefix,
		Subtotal:              breakdown.Subtotal,
		CGST:                  breakdown.CGST,
		SGST:                  breakdown.SGST,
		IGST:                  breakdown.IGST,
		Discount:              breakdown.Discount,
		Total:                 breakdown.Total,
		DueDate:               dueDate,
		Notes:                 notes,
		Status:                status,
		Items:                 make([]InvoiceLineItem, 0, len(breakdown.Lines)),
	}

	now := time.Now()
	for _, line := range breakdown.Lines {
		inv.Items = append(inv.Items, InvoiceLineItem{
			ID:            uuid.New(),
			InvoiceID:     inv.ID,
			OrderItemID:   line.OrderItemID,
			ProductID:     line.ProductID,
			SKU:           line.SKU,
			HSNCode:       line.HSNCode,
			TaxRatePct:    line.TaxRatePct,
			Quantity:      line.Quantity,
			UnitPrice:     line.UnitPrice,
			ExtendedPrice: line.ExtendedPrice,
			CGST:          line.CGST,
			SGST:          line.SGST,
			IGST:          line.IGST,
			CreatedAt:     now,
		})
	}

	inv.AddDomainEvent(NewInvoiceCreatedEvent(inv))

	return inv, nil
}

// DisplayNumber returns the human-facing invoice number, prefix followed by
// the sequence number.
func (i *Invoice) DisplayNumber() string {
	return fmt.Sprintf("%s%d", i.Prefix, i.Number)
}

// MarkPayment updates the mirrored payment state in place. Corrections never
// duplicate the invoice.
func (i *Invoice) MarkPayment(status InvoiceStatus, method string) error {
	if !status.IsValid() {
		return shared.NewDomainError(shared.CodeInvalidInput, fmt.Sprintf("Unknown invoice status %q", status))
	}
	i.Status = status
	if method != "" {
		i.Method = method
	}
	i.UpdatedAt = time.Now()

	i.AddDomainEvent(NewInvoiceStatusUpdatedEvent(i))

	return nil
}

package inventory

import (
	"time"

	"github.com/google/uuid"
	"github.com/oms/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// Record tracks the on-hand quantity for one (merchant, product) pair.
// It is shared mutable state referenced by orders and returns, guarded only
// by the enclosing transaction's row lock.
type Record struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	MerchantID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_inventory_merchant_product"`
	ProductID  uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_inventory_merchant_product"`
	SKU        string
	OnHand     decimal.Decimal `gorm:"type:numeric(12,4);not null"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// TableName returns the database table name
func (Record) TableName() string { return "inventory_records" }

// NewRecord creates an inventory record
func NewRecord(merchantID, productID uuid.UUID, sku string, onHand decimal.Decimal) (*Record, error) {
	if merchantID == uuid.Nil || productID == uuid.Nil {
		return nil, shared.NewDomainError(shared.CodeInvalidInput, "Merchant and product IDs cannot be empty")
	}
	if onHand.IsNegative() {
		return nil, shared.NewDomainError(shared.CodeInvalidInput, "On-hand quantity cannot be negative")
	}

	now := time.Now()
	return &Record{
		ID:         uuid.New(),
		MerchantID: merchantID,
		ProductID:  productID,
		SKU:        sku,
		OnHand:     onHand,
		CreatedAt:  now,
		UpdatedAt:  now,
	}, nil
}

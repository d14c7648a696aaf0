package order

import (
	"context"

	"github.com/google/uuid"
	"github.com/oms/backend/internal/domain/shared"
)

// Repository defines persistence operations for the Order aggregate
type Repository interface {
	// FindByIDForMerchant loads an order with its items, scoped to a merchant
	FindByIDForMerchant(ctx context.Context, merchantID, id uuid.UUID) (*Order, error)
	// FindByIDForMerchantLocked loads an order acquiring a row-level lock
	// (SELECT ... FOR UPDATE). Must be called inside a transaction; the lock
	// serializes concurrent settlement attempts on the same order.
	FindByIDForMerchantLocked(ctx context.Context, merchantID, id uuid.UUID) (*Order, error)
	// FindAllForMerchant lists orders for a merchant with filtering
	FindAllForMerchant(ctx context.Context, merchantID uuid.UUID, filter shared.Filter) ([]Order, error)
	// CountForMerchant counts orders for a merchant with filtering
	CountForMerchant(ctx context.Context, merchantID uuid.UUID, filter shared.Filter) (int64, error)
	// Save creates or updates an order and its line items
	Save(ctx context.Context, o *Order) error
}

// PaymentRepository defines persistence operations for payment records
type PaymentRepository interface {
	// FindByOrder returns the order's payment record, or shared.ErrNotFound
	FindByOrder(ctx context.Context, merchantID, orderID uuid.UUID) (*PaymentRecord, error)
	// Save creates or overwrites a payment record
	Save(ctx context.Context, p *PaymentRecord) error
}

// HistoryRepository defines persistence for the append-only audit trail
type HistoryRepository interface {
	// Append writes an audit entry
	Append(ctx context.Context, entry *HistoryEntry) error
	// FindByOrder returns audit entries for an order, newest first
	FindByOrder(ctx context.Context, merchantID, orderID uuid.UUID) ([]HistoryEntry, error)
}

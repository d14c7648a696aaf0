package inventory

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Repository defines persistence operations for inventory records
type Repository interface {
	// FindByProductForMerchant returns the record for a (merchant, product)
	// pair, or shared.ErrNotFound
	FindByProductForMerchant(ctx context.Context, merchantID, productID uuid.UUID) (*Record, error)
	// Increment atomically adds quantity to the on-hand count and returns the
	// authoritative new quantity (single UPDATE ... RETURNING).
	Increment(ctx context.Context, merchantID, productID uuid.UUID, quantity decimal.Decimal) (decimal.Decimal, error)
	// Decrement atomically subtracts quantity, failing with
	// shared.ErrInsufficientStock when it would drive on-hand below zero.
	Decrement(ctx context.Context, merchantID, productID uuid.UUID, quantity decimal.Decimal) (decimal.Decimal, error)
	// Save creates or updates an inventory record
	Save(ctx context.Context, rec *Record) error
}

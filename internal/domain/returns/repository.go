package returns

import (
	"context"

	"github.com/google/uuid"
)

// Repository defines persistence operations for the Return aggregate
type Repository interface {
	// FindByIDForMerchant loads a return with its items, scoped to a merchant
	FindByIDForMerchant(ctx context.Context, merchantID, id uuid.UUID) (*Return, error)
	// FindByOrder returns the order's return request, or shared.ErrNotFound.
	// Callers use this as the one-return-per-order guard.
	FindByOrder(ctx context.Context, merchantID, orderID uuid.UUID) (*Return, error)
	// Save creates or updates a return and its items
	Save(ctx context.Context, r *Return) error
	// MarkItemRestocked stamps a single return item's restocked_at marker
	MarkItemRestocked(ctx context.Context, itemID uuid.UUID) error
}

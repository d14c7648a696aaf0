package billing

import (
	"context"

	"github.com/google/uuid"
)

// InvoiceRepository defines persistence operations for invoices
type InvoiceRepository interface {
	// FindByIDForMerchant loads an invoice with its line items
	FindByIDForMerchant(ctx context.Context, merchantID, id uuid.UUID) (*Invoice, error)
	// FindByOrder returns the order's invoice, or shared.ErrNotFound.
	// Callers use this as the at-most-once guard before issuing.
	FindByOrder(ctx context.Context, merchantID, orderID uuid.UUID) (*Invoice, error)
	// Save creates or updates an invoice and its line items
	Save(ctx context.Context, inv *Invoice) error
}

// ProfileRepository defines persistence operations for billing profiles
type ProfileRepository interface {
	// FindByMerchant returns the merchant's billing profile, or shared.ErrNotFound
	FindByMerchant(ctx context.Context, merchantID uuid.UUID) (*Profile, error)
	// AllocateSequence atomically increments and returns the merchant's
	// next invoice number (single UPDATE ... RETURNING). Two concurrent
	// allocations for the same merchant never receive the same number.
	// Returns shared.ErrNotFound when the merchant has no billing profile.
	AllocateSequence(ctx context.Context, merchantID uuid.UUID) (*Sequence, error)
	// Save creates or updates a billing profile
	Save(ctx context.Context, p *Profile) error
}

package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/oms/backend/internal/domain/billing"
	"github.com/oms/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// GormBillingProfileRepository implements billing.ProfileRepository using GORM
type GormBillingProfileRepository struct {
	db *gorm.DB
}

// NewGormBillingProfileRepository creates a new GormBillingProfileRepository
func NewGormBillingProfileRepository(db *gorm.DB) *GormBillingProfileRepository {
	return &GormBillingProfileRepository{db: db}
}

// FindByMerchant returns the merchant's billing profile
func (r *GormBillingProfileRepository) FindByMerchant(ctx context.Context, merchantID uuid.UUID) (*billing.Profile, error) {
	var p billing.Profile
	if err := r.db.WithContext(ctx).
		Where("merchant_id = ?", merchantID).
		First(&p).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &p, nil
}

// AllocateSequence atomically claims the merchant's next invoice number.
// The single UPDATE ... RETURNING both advances the counter and reads the
// claimed value, so concurrent allocations for the same merchant are
// serialized by the row lock and never observe the same number.
func (r *GormBillingProfileRepository) AllocateSequence(ctx context.Context, merchantID uuid.UUID) (*billing.Sequence, error) {
	var row struct {
		Number       int64
		Prefix       string
		Jurisdiction string
	}

	result := r.db.WithContext(ctx).Raw(`
		UPDATE billing_profiles
		SET next_number = next_number + 1, updated_at = NOW()
		WHERE merchant_id = ?
		RETURNING next_number - 1 AS number, invoice_prefix AS prefix, jurisdiction`,
		merchantID,
	).Scan(&row)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		// No row matched: the merchant has no billing profile.
		return nil, shared.ErrNotFound
	}

	return &billing.Sequence{
		Number:       row.Number,
		Prefix:       row.Prefix,
		Jurisdiction: row.Jurisdiction,
	}, nil
}

// Save creates or updates a billing profile. The next_number counter is
// deliberately omitted on update so Save can never race AllocateSequence.
func (r *GormBillingProfileRepository) Save(ctx context.Context, p *billing.Profile) error {
	var existing billing.Profile
	err := r.db.WithContext(ctx).
		Where("merchant_id = ?", p.MerchantID).
		First(&existing).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return r.db.WithContext(ctx).Create(p).Error
	}
	if err != nil {
		return err
	}

	return r.db.WithContext(ctx).Model(&billing.Profile{}).
		Where("merchant_id = ?", p.MerchantID).
		Omit("next_number").
		Updates(map[string]interface{}{
			"invoice_prefix": p.InvoicePrefix,
			"gstin":          p.GSTIN,
			"jurisdiction":   p.Jurisdiction,
			"updated_at":     p.UpdatedAt,
		}).Error
}

// Ensure GormBillingProfileRepository implements billing.ProfileRepository
var _ billing.ProfileRepository = (*GormBillingProfileRepository)(nil)

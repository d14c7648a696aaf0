package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/oms/backend/internal/domain/inventory"
	"github.com/oms/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// GormInventoryRepository implements inventory.Repository using GORM.
// Quantity changes are single atomic UPDATE ... RETURNING statements: the
// returned on-hand value is the authoritative post-change quantity, correct
// under concurrent writers without an explicit row lock.
type GormInventoryRepository struct {
	db *gorm.DB
}

// NewGormInventoryRepository creates a new GormInventoryRepository
func NewGormInventoryRepository(db *gorm.DB) *GormInventoryRepository {
	return &GormInventoryRepository{db: db}
}

// FindByProductForMerchant returns the record for a (merchant, product) pair
func (r *GormInventoryRepository) FindByProductForMerchant(ctx context.Context, merchantID, productID uuid.UUID) (*inventory.Record, error) {
	var rec inventory.Record
	if err := r.db.WithContext(ctx).
		Where("merchant_id = ? AND product_id = ?", merchantID, productID).
		First(&rec).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &rec, nil
}

// Increment atomically adds quantity and returns the new on-hand count
func (r *GormInventoryRepository) Increment(ctx context.Context, merchantID, productID uuid.UUID, quantity decimal.Decimal) (decimal.Decimal, error) {
	var row struct {
		OnHand decimal.Decimal
	}

	result := r.db.WithContext(ctx).Raw(`
		UPDATE inventory_records
		SET on_hand = on_hand + ?, updated_at = NOW()
		WHERE merchant_id = ? AND product_id = ?
		RETURNING on_hand`,
		quantity, merchantID, productID,
	).Scan(&row)
	if result.Error != nil {
		return decimal.Zero, result.Error
	}
	if result.RowsAffected == 0 {
		return decimal.Zero, shared.ErrNotFound
	}

	return row.OnHand, nil
}

// Decrement atomically subtracts quantity, refusing to drive on-hand below
// zero. The guard is in the WHERE clause, so an insufficient-stock attempt
// simply matches no row.
func (r *GormInventoryRepository) Decrement(ctx context.Context, merchantID, productID uuid.UUID, quantity decimal.Decimal) (decimal.Decimal, error) {
	var row struct {
		OnHand decimal.Decimal
	}

	result := r.db.WithContext(ctx).Raw(`
		UPDATE inventory_records
		SET on_hand = on_hand - ?, updated_at = NOW()
		WHERE merchant_id = ? AND product_id = ? AND on_hand >= ?
		RETURNING on_hand`,
		quantity, merchantID, productID, quantity,
	).Scan(&row)
	if result.Error != nil {
		return decimal.Zero, result.Error
	}
	if result.RowsAffected == 0 {
		// Distinguish missing record from insufficient stock.
		if _, err := r.FindByProductForMerchant(ctx, merchantID, productID); err != nil {
			return decimal.Zero, err
		}
		return decimal.Zero, shared.ErrInsufficientStock
	}

	return row.OnHand, nil
}

// Save creates or updates an inventory record
func (r *GormInventoryRepository) Save(ctx context.Context, rec *inventory.Record) error {
	return r.db.WithContext(ctx).Save(rec).Error
}

// Ensure GormInventoryRepository implements inventory.Repository
var _ inventory.Repository = (*GormInventoryRepository)(nil)

package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/oms/backend/internal/domain/returns"
	"github.com/oms/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// GormReturnRepository implements returns.Repository using GORM
type GormReturnRepository struct {
	db *gorm.DB
}

// NewGormReturnRepository creates a new GormReturnRepository
func NewGormReturnRepository(db *gorm.DB) *GormReturnRepository {
	return &GormReturnRepository{db: db}
}

// FindByIDForMerchant loads a return with its items
func (r *GormReturnRepository) FindByIDForMerchant(ctx context.Context, merchantID, id uuid.UUID) (*returns.Return, error) {
	var ret returns.Return
	if err := r.db.WithContext(ctx).
		Preload("Items").
		Where("merchant_id = ? AND id = ?", merchantID, id).
		First(&ret).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &ret, nil
}

// FindByOrder returns the order's return request
func (r *GormReturnRepository) FindByOrder(ctx context.Context, merchantID, orderID uuid.UUID) (*returns.Return, error) {
	var ret returns.Return
	if err := r.db.WithContext(ctx).
		Preload("Items").
		Where("merchant_id = ? AND order_id = ?", merchantID, orderID).
		First(&ret).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &ret, nil
}

// Save creates or updates a return and its items
func (r *GormReturnRepository) Save(ctx context.Context, ret *returns.Return) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Items").Save(ret).Error; err != nil {
			return err
		}

		for i := range ret.Items {
			ret.Items[i].ReturnID = ret.ID
			if err := tx.Save(&ret.Items[i]).Error; err != nil {
				return err
			}
		}

		return nil
	})
}

// MarkItemRestocked stamps the item's restocked_at marker. The IS NULL guard
// makes the stamp first-writer-wins under concurrent restock attempts.
func (r *GormReturnRepository) MarkItemRestocked(ctx context.Context, itemID uuid.UUID) error {
	result := r.db.WithContext(ctx).Model(&returns.Item{}).
		Where("id = ? AND restocked_at IS NULL", itemID).
		Update("restocked_at", time.Now())
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Ensure GormReturnRepository implements returns.Repository
var _ returns.Repository = (*GormReturnRepository)(nil)

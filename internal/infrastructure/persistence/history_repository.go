package persistence

import (
	"context"

	"github.com/google/uuid"
	"github.com/oms/backend/internal/domain/order"
	"gorm.io/gorm"
)

// GormHistoryRepository implements order.HistoryRepository using GORM.
// The audit trail is append-only; entries are never updated or deleted.
type GormHistoryRepository struct {
	db *gorm.DB
}

// NewGormHistoryRepository creates a new GormHistoryRepository
func NewGormHistoryRepository(db *gorm.DB) *GormHistoryRepository {
	return &GormHistoryRepository{db: db}
}

// Append writes an audit entry
func (r *GormHistoryRepository) Append(ctx context.Context, entry *order.HistoryEntry) error {
	return r.db.WithContext(ctx).Create(entry).Error
}

// FindByOrder returns audit entries for an order, newest first
func (r *GormHistoryRepository) FindByOrder(ctx context.Context, merchantID, orderID uuid.UUID) ([]order.HistoryEntry, error) {
	var entries []order.HistoryEntry
	if err := r.db.WithContext(ctx).
		Where("merchant_id = ? AND order_id = ?", merchantID, orderID).
		Order("created_at DESC").
		Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}

// Ensure GormHistoryRepository implements order.HistoryRepository
var _ order.HistoryRepository = (*GormHistoryRepository)(nil)

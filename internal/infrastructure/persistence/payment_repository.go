package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/oms/backend/internal/domain/order"
	"github.com/oms/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// GormPaymentRepository implements order.PaymentRepository using GORM
type GormPaymentRepository struct {
	db *gorm.DB
}

// NewGormPaymentRepository creates a new GormPaymentRepository
func NewGormPaymentRepository(db *gorm.DB) *GormPaymentRepository {
	return &GormPaymentRepository{db: db}
}

// FindByOrder returns the order's payment record
func (r *GormPaymentRepository) FindByOrder(ctx context.Context, merchantID, orderID uuid.UUID) (*order.PaymentRecord, error) {
	var p order.PaymentRecord
	if err := r.db.WithContext(ctx).
		Where("merchant_id = ? AND order_id = ?", merchantID, orderID).
		First(&p).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &p, nil
}

// Save creates or overwrites a payment record
func (r *GormPaymentRepository) Save(ctx context.Context, p *order.PaymentRecord) error {
	return r.db.WithContext(ctx).Save(p).Error
}

// Ensure GormPaymentRepository implements order.PaymentRepository
var _ order.PaymentRepository = (*GormPaymentRepository)(nil)

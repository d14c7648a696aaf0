package persistence

import (
	"context"

	appbilling "github.com/oms/backend/internal/application/billing"
	apporder "github.com/oms/backend/internal/application/order"
	appreturns "github.com/oms/backend/internal/application/returns"
	"github.com/oms/backend/internal/domain/billing"
	"github.com/oms/backend/internal/domain/order"
	"github.com/oms/backend/internal/domain/returns"
	"gorm.io/gorm"
)

// GormOrderTransactionScope implements the order application layer's
// TransactionScope using GORM transactions
type GormOrderTransactionScope struct {
	db *gorm.DB
}

// NewGormOrderTransactionScope creates a new GormOrderTransactionScope
func NewGormOrderTransactionScope(db *gorm.DB) *GormOrderTransactionScope {
	return &GormOrderTransactionScope{db: db}
}

// Execute runs the given function within a database transaction. A returned
// error rolls everything back; nil commits.
func (s *GormOrderTransactionScope) Execute(ctx context.Context, fn func(repos apporder.TransactionalRepositories) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&gormOrderRepositories{tx: tx})
	})
}

// gormOrderRepositories provides repositories bound to one transaction
type gormOrderRepositories struct {
	tx *gorm.DB
}

func (r *gormOrderRepositories) Orders() order.Repository {
	return NewGormOrderRepository(r.tx)
}

func (r *gormOrderRepositories) Payments() order.PaymentRepository {
	return NewGormPaymentRepository(r.tx)
}

func (r *gormOrderRepositories) Histories() order.HistoryRepository {
	return NewGormHistoryRepository(r.tx)
}

func (r *gormOrderRepositories) Invoices() billing.InvoiceRepository {
	return NewGormInvoiceRepository(r.tx)
}

func (r *gormOrderRepositories) Profiles() billing.ProfileRepository {
	return NewGormBillingProfileRepository(r.tx)
}

// GormBillingTransactionScope implements the billing application layer's
// TransactionScope using GORM transactions
type GormBillingTransactionScope struct {
	db *gorm.DB
}

// NewGormBillingTransactionScope creates a new GormBillingTransactionScope
func NewGormBillingTransactionScope(db *gorm.DB) *GormBillingTransactionScope {
	return &GormBillingTransactionScope{db: db}
}

// Execute runs the given function within a database transaction
func (s *GormBillingTransactionScope) Execute(ctx context.Context, fn func(repos appbilling.TransactionalRepositories) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&gormBillingRepositories{tx: tx})
	})
}

// gormBillingRepositories provides repositories bound to one transaction
type gormBillingRepositories struct {
	tx *gorm.DB
}

func (r *gormBillingRepositories) Orders() order.Repository {
	return NewGormOrderRepository(r.tx)
}

func (r *gormBillingRepositories) Invoices() billing.InvoiceRepository {
	return NewGormInvoiceRepository(r.tx)
}

func (r *gormBillingRepositories) Profiles() billing.ProfileRepository {
	return NewGormBillingProfileRepository(r.tx)
}

// GormReturnTransactionScope implements the returns application layer's
// TransactionScope using GORM transactions
type GormReturnTransactionScope struct {
	db *gorm.DB
}

// NewGormReturnTransactionScope creates a new GormReturnTransactionScope
func NewGormReturnTransactionScope(db *gorm.DB) *GormReturnTransactionScope {
	return &GormReturnTransactionScope{db: db}
}

// Execute runs the given function within a database transaction
func (s *GormReturnTransactionScope) Execute(ctx context.Context, fn func(repos appreturns.TransactionalRepositories) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&gormReturnRepositories{tx: tx})
	})
}

// gormReturnRepositories provides repositories bound to one transaction
type gormReturnRepositories struct {
	tx *gorm.DB
}

func (r *gormReturnRepositories) Returns() returns.Repository {
	return NewGormReturnRepository(r.tx)
}

func (r *gormReturnRepositories) Orders() order.Repository {
	return NewGormOrderRepository(r.tx)
}

func (r *gormReturnRepositories) Histories() order.HistoryRepository {
	return NewGormHistoryRepository(r.tx)
}

var (
	_ apporder.TransactionScope             = (*GormOrderTransactionScope)(nil)
	_ apporder.TransactionalRepositories    = (*gormOrderRepositories)(nil)
	_ appbilling.TransactionScope           = (*GormBillingTransactionScope)(nil)
	_ appbilling.TransactionalRepositories  = (*gormBillingRepositories)(nil)
	_ appreturns.TransactionScope           = (*GormReturnTransactionScope)(nil)
	_ appreturns.TransactionalRepositories  = (*gormReturnRepositories)(nil)
)

package order

import (
	"context"

	"github.com/oms/backend/internal/domain/billing"
	"github.com/oms/backend/internal/domain/order"
)

// TransactionScope runs order mutations inside a single database
// transaction. Status change, payment upsert, audit entry and invoice
// issuance are all-or-nothing; post-commit side effects run outside.
type TransactionScope interface {
	// Execute runs fn within a transaction. A returned error rolls
	// everything back; nil commits.
	Execute(ctx context.Context, fn func(repos TransactionalRepositories) error) error
}

// TransactionalRepositories exposes the repositories participating in an
// order transaction. All of them share the same underlying transaction.
type TransactionalRepositories interface {
	Orders() order.Repository
	Payments() order.PaymentRepository
	Histories() order.HistoryRepository
	Invoices() billing.InvoiceRepository
	Profiles() billing.ProfileRepository
}

// NoOpTransactionScope executes the function without a real transaction.
// Used in tests.
type NoOpTransactionScope struct {
	OrderRepo   order.Repository
	PaymentRepo order.PaymentRepository
	HistoryRepo order.HistoryRepository
	InvoiceRepo billing.InvoiceRepository
	ProfileRepo billing.ProfileRepository
}

// Execute runs the function directly
func (s *NoOpTransactionScope) Execute(_ context.Context, fn func(repos TransactionalRepositories) error) error {
	return fn(s)
}

// Orders returns the order repository
func (s *NoOpTransactionScope) Orders() order.Repository { return s.OrderRepo }

// Payments returns the payment repository
func (s *NoOpTransactionScope) Payments() order.PaymentRepository { return s.PaymentRepo }

// Histories returns the history repository
func (s *NoOpTransactionScope) Histories() order.HistoryRepository { return s.HistoryRepo }

// Invoices returns the invoice repository
func (s *NoOpTransactionScope) Invoices() billing.InvoiceRepository { return s.InvoiceRepo }

// Profiles returns the billing profile repository
func (s *NoOpTransactionScope) Profiles() billing.ProfileRepository { return s.ProfileRepo }

var (
	_ TransactionScope          = (*NoOpTransactionScope)(nil)
	_ TransactionalRepositories = (*NoOpTransactionScope)(nil)
)

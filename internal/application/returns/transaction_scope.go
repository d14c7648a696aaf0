package returns

import (
	"context"

	"github.com/oms/backend/internal/domain/order"
	"github.com/oms/backend/internal/domain/returns"
)

// TransactionScope runs return mutations inside a single database
// transaction. The status update commits before any restock is attempted;
// restock runs on its own connection afterwards.
type TransactionScope interface {
	Execute(ctx context.Context, fn func(repos TransactionalRepositories) error) error
}

// TransactionalRepositories exposes the repositories participating in a
// return transaction
type TransactionalRepositories interface {
	Returns() returns.Repository
	Orders() order.Repository
	Histories() order.HistoryRepository
}

// NoOpTransactionScope executes the function without a real transaction.
// Used in tests.
type NoOpTransactionScope struct {
	ReturnRepo  returns.Repository
	OrderRepo   order.Repository
	HistoryRepo order.HistoryRepository
}

// Execute runs the function directly
func (s *NoOpTransactionScope) Execute(_ context.Context, fn func(repos TransactionalRepositories) error) error {
	return fn(s)
}

// Returns returns the return repository
func (s *NoOpTransactionScope) Returns() returns.Repository { return s.ReturnRepo }

// Orders returns the order repository
func (s *NoOpTransactionScope) Orders() order.Repository { return s.OrderRepo }

// Histories returns the history repository
func (s *NoOpTransactionScope) Histories() order.HistoryRepository { return s.HistoryRepo }

var (
	_ TransactionScope          = (*NoOpTransactionScope)(nil)
	_ TransactionalRepositories = (*NoOpTransactionScope)(nil)
)

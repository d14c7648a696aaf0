package order

import (
	"context"

	"github.com/google/uuid"
	"github.com/oms/backend/internal/domain/order"
	"go.uber.org/zap"
)

// AssignmentService attaches or reassigns the handling employee of an order.
// Assignment is an independent axis: the order status is never touched, and
// the audit trail records a tagged assignment entry rather than a status
// transition.
type AssignmentService struct {
	scope  TransactionScope
	cache  CacheInvalidator
	logger *zap.Logger
}

// NewAssignmentService creates a new AssignmentService
func NewAssignmentService(scope TransactionScope, cache CacheInvalidator, logger *zap.Logger) *AssignmentService {
	return &AssignmentService{
		scope:  scope,
		cache:  cache,
		logger: logger,
	}
}

// Assign sets the handling employee for an order
func (s *AssignmentService) Assign(ctx context.Context, merchantID, orderID uuid.UUID, actor order.Actor, employeeID uuid.UUID) (*OrderResponse, error) {
	var resp OrderResponse

	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		ord, err := repos.Orders().FindByIDForMerchantLocked(ctx, merchantID, orderID)
		if err != nil {
			return err
		}

		if err := ord.Assign(employeeID); err != nil {
			return err
		}
		if err := repos.Histories().Append(ctx, order.NewAssignedEntry(ord, employeeID, actor.ID)); err != nil {
			return err
		}
		if err := repos.Orders().Save(ctx, ord); err != nil {
			return err
		}

		resp = ToOrderResponse(ord)
		return nil
	})
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.InvalidateActor(ctx, actor.ID); err != nil {
			s.logger.Warn("cache invalidation failed",
				zap.String("actor_id", actor.ID.String()),
				zap.Error(err),
			)
		}
	}

	return &resp, nil
}

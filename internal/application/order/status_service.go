package order

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/oms/backend/internal/domain/order"
	"github.com/oms/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// paymentGated are the target statuses that require a settled payment
var paymentGated = map[order.Status]bool{
	order.StatusConfirmed: true,
	order.StatusShipped:   true,
	order.StatusDelivered: true,
	order.StatusCancelled: true,
}

// StatusService validates and applies direct (administrative) order status
// changes through the transition policy.
type StatusService struct {
	scope     TransactionScope
	orders    order.Repository
	histories order.HistoryRepository
	publisher shared.EventPublisher
	cache     CacheInvalidator
	logger    *zap.Logger
}

// NewStatusService creates a new StatusService
func NewStatusService(scope TransactionScope, orders order.Repository, histories order.HistoryRepository, publisher shared.EventPublisher, cache CacheInvalidator, logger *zap.Logger) *StatusService {
	return &StatusService{
		scope:     scope,
		orders:    orders,
		histories: histories,
		publisher: publisher,
		cache:     cache,
		logger:    logger,
	}
}

// ChangeStatus applies a status change for the given actor. The transition
// policy and the payment gate run before any write; rejection carries the
// allowed-target list for diagnostics.
func (s *StatusService) ChangeStatus(ctx context.Context, merchantID, orderID uuid.UUID, actor order.Actor, newStatus order.Status) (*StatusChangeResult, error) {
	if !newStatus.IsValid() {
		return nil, shared.NewDomainError(shared.CodeInvalidInput, fmt.Sprintf("Unknown order status %q", newStatus))
	}

	result := &StatusChangeResult{OrderID: orderID}
	var pending []shared.DomainEvent

	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		ord, err := repos.Orders().FindByIDForMerchantLocked(ctx, merchantID, orderID)
		if err != nil {
			return err
		}

		if !order.Allowed(actor.Role, ord.Status, newStatus) {
			return shared.NewDomainError(shared.CodeInvalidTransition,
				fmt.Sprintf("Cannot transition order from %s to %s", ord.Status, newStatus)).
				WithDetail("allowed_targets", order.AllowedTargetStrings(ord.Status))
		}

		if paymentGated[newStatus] && !ord.IsPaid() {
			return shared.NewDomainError(shared.CodePaymentRequired,
				fmt.Sprintf("Payment must be settled before moving the order to %s", newStatus))
		}

		from := ord.Status
		if err := ord.ChangeStatus(newStatus, actor.ID); err != nil {
			return err
		}
		if err := repos.Histories().Append(ctx, order.NewStatusChangedEntry(ord, from, newStatus, actor.ID)); err != nil {
			return err
		}
		if err := repos.Orders().Save(ctx, ord); err != nil {
			return err
		}

		result.OldStatus = from
		result.NewStatus = newStatus
		pending = drainEvents(ord)

		return nil
	})
	if err != nil {
		return nil, err
	}

	if s.publisher != nil && len(pending) > 0 {
		if err := s.publisher.Publish(ctx, pending...); err != nil {
			s.logger.Warn("failed to publish status events", zap.Error(err))
		}
	}
	if s.cache != nil {
		if err := s.cache.InvalidateActor(ctx, actor.ID); err != nil {
			s.logger.Warn("cache invalidation failed", zap.Error(err))
		}
	}

	return result, nil
}

// GetByID retrieves an order with its items
func (s *StatusService) GetByID(ctx context.Context, merchantID, orderID uuid.UUID) (*OrderResponse, error) {
	ord, err := s.orders.FindByIDForMerchant(ctx, merchantID, orderID)
	if err != nil {
		return nil, err
	}
	resp := ToOrderResponse(ord)
	return &resp, nil
}

// List retrieves orders for a merchant with filtering and pagination
func (s *StatusService) List(ctx context.Context, merchantID uuid.UUID, filter shared.Filter) ([]OrderResponse, int64, error) {
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 {
		filter.PageSize = 20
	}
	if filter.OrderBy == "" {
		filter.OrderBy = "created_at"
	}
	if filter.OrderDir == "" {
		filter.OrderDir = "desc"
	}

	orders, err := s.orders.FindAllForMerchant(ctx, merchantID, filter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.orders.CountForMerchant(ctx, merchantID, filter)
	if err != nil {
		return nil, 0, err
	}

	out := make([]OrderResponse, 0, len(orders))
	for idx := range orders {
		out = append(out, ToOrderResponse(&orders[idx]))
	}
	return out, total, nil
}

// History retrieves the audit trail for an order, newest first
func (s *StatusService) History(ctx context.Context, merchantID, orderID uuid.UUID) ([]HistoryEntryResponse, error) {
	entries, err := s.histories.FindByOrder(ctx, merchantID, orderID)
	if err != nil {
		return nil, err
	}
	return ToHistoryEntryResponses(entries), nil
}

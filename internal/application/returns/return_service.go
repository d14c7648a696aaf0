package returns

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/oms/backend/internal/domain/order"
	"github.com/oms/backend/internal/domain/returns"
	"github.com/oms/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// returnEligible are the order statuses a return may be filed against
var returnEligible = map[order.Status]bool{
	order.StatusConfirmed: true,
	order.StatusAssigned:  true,
	order.StatusShipped:   true,
	order.StatusDelivered: true,
	order.StatusCancelled: true,
}

// Service handles return filing and status updates. Restocking runs through
// the Restocker strictly after the status-update transaction commits, so a
// restock failure can never roll back a recorded status change.
type Service struct {
	scope     TransactionScope
	returns   returns.Repository
	restocker *Restocker
	publisher shared.EventPublisher
	logger    *zap.Logger
}

// NewService creates a new return Service
func NewService(scope TransactionScope, returnRepo returns.Repository, restocker *Restocker, publisher shared.EventPublisher, logger *zap.Logger) *Service {
	return &Service{
		scope:     scope,
		returns:   returnRepo,
		restocker: restocker,
		publisher: publisher,
		logger:    logger,
	}
}

// File creates a return request against an order and marks the whole order
// returned. Partial returns are representable at the item level, but the
// order status always moves to returned.
func (s *Service) File(ctx context.Context, merchantID, orderID uuid.UUID, actor order.Actor, cmd FileReturnCommand) (*ReturnResponse, error) {
	if len(cmd.Items) == 0 {
		return nil, shared.NewDomainError(shared.CodeInvalidInput, "Return must contain at least one item")
	}

	var filed *returns.Return
	var pending []shared.DomainEvent

	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		ord, err := repos.Orders().FindByIDForMerchantLocked(ctx, merchantID, orderID)
		if err != nil {
			return err
		}

		if !returnEligible[ord.Status] {
			return shared.NewDomainError(shared.CodeInvalidTransition,
				fmt.Sprintf("Order in %s status is not eligible for return", ord.Status))
		}

		// At most one return per order.
		if _, err := repos.Returns().FindByOrder(ctx, merchantID, orderID); err == nil {
			return shared.NewDomainError(shared.CodeAlreadyExists, "Order already has a return request")
		} else if de, ok := err.(*shared.DomainError); !ok || de.Code != shared.CodeNotFound {
			return err
		}

		ret, err := returns.NewReturn(merchantID, orderID, cmd.CustomerID, cmd.Reason)
		if err != nil {
			return err
		}

		for _, item := range cmd.Items {
			line := ord.ItemByProduct(item.ProductID)
			if line == nil {
				return shared.NewDomainError(shared.CodeInvalidInput,
					fmt.Sprintf("Product %s is not on the order", item.ProductID))
			}
			if item.Quantity.GreaterThan(line.Quantity) {
				return shared.NewDomainError(shared.CodeInvalidInput,
					fmt.Sprintf("Return quantity exceeds ordered quantity for product %s", item.ProductID))
			}
			if err := ret.AddItem(line.ID, line.ProductID, line.SKU, item.Quantity, item.Amount); err != nil {
				return err
			}
		}

		if err := repos.Returns().Save(ctx, ret); err != nil {
			return err
		}

		from := ord.Status
		if err := ord.ChangeStatus(order.StatusReturned, actor.ID); err != nil {
			return err
		}
		if err := repos.Histories().Append(ctx, order.NewStatusChangedEntry(ord, from, order.StatusReturned, actor.ID)); err != nil {
			return err
		}
		if err := repos.Orders().Save(ctx, ord); err != nil {
			return err
		}

		filed = ret
		pending = ord.GetDomainEvents()
		ord.ClearDomainEvents()

		return nil
	})
	if err != nil {
		return nil, err
	}

	if s.publisher != nil && len(pending) > 0 {
		if err := s.publisher.Publish(ctx, pending...); err != nil {
			s.logger.Warn("failed to publish return events", zap.Error(err))
		}
	}

	resp := ToReturnResponse(filed)
	return &resp, nil
}

// UpdateStatus applies the provided status fields to a return. When the
// receipt status transitions into a restockable state, the restock runs on
// its own connection after the update has committed; its outcome is attached
// to the result but never fails the operation.
func (s *Service) UpdateStatus(ctx context.Context, merchantID, returnID uuid.UUID, actor order.Actor, update returns.StatusUpdate) (*UpdateStatusResult, error) {
	if err := update.Validate(); err != nil {
		return nil, err
	}

	var updated *returns.Return
	restock := false

	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		ret, err := repos.Returns().FindByIDForMerchant(ctx, merchantID, returnID)
		if err != nil {
			return err
		}

		restock, err = ret.Apply(update)
		if err != nil {
			return err
		}

		if err := repos.Returns().Save(ctx, ret); err != nil {
			return err
		}

		updated = ret
		return nil
	})
	if err != nil {
		return nil, err
	}

	result := &UpdateStatusResult{Return: ToReturnResponse(updated)}

	// The status change is durable; restock failures are logged and
	// surfaced, never propagated.
	if restock && s.restocker != nil {
		result.Restock = s.restocker.Restock(ctx, merchantID, returnID, actor)
	}

	return result, nil
}

// GetByID retrieves a return with its items
func (s *Service) GetByID(ctx context.Context, merchantID, returnID uuid.UUID) (*ReturnResponse, error) {
	ret, err := s.returns.FindByIDForMerchant(ctx, merchantID, returnID)
	if err != nil {
		return nil, err
	}
	resp := ToReturnResponse(ret)
	return &resp, nil
}

// GetByOrder retrieves the return filed against an order
func (s *Service) GetByOrder(ctx context.Context, merchantID, orderID uuid.UUID) (*ReturnResponse, error) {
	ret, err := s.returns.FindByOrder(ctx, merchantID, orderID)
	if err != nil {
		return nil, err
	}
	resp := ToReturnResponse(ret)
	return &resp, nil
}

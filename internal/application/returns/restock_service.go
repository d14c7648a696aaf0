package returns

import (
	"context"

	"github.com/google/uuid"
	"github.com/oms/backend/internal/domain/inventory"
	"github.com/oms/backend/internal/domain/order"
	"github.com/oms/backend/internal/domain/returns"
	"github.com/oms/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// CacheInvalidator invalidates cached views keyed by the acting user
type CacheInvalidator interface {
	InvalidateActor(ctx context.Context, actorID uuid.UUID) error
}

// Restocker puts returned goods back on hand. It runs on its own
// connection, strictly after the receipt-status transaction has committed:
// its failures must never roll back the recorded status change, and the
// status change must be durable before inventory is touched.
type Restocker struct {
	returns   returns.Repository
	inventory inventory.Repository
	publisher shared.EventPublisher
	cache     CacheInvalidator
	logger    *zap.Logger
}

// NewRestocker creates a new Restocker
func NewRestocker(returnRepo returns.Repository, inventoryRepo inventory.Repository, publisher shared.EventPublisher, cache CacheInvalidator, logger *zap.Logger) *Restocker {
	return &Restocker{
		returns:   returnRepo,
		inventory: inventoryRepo,
		publisher: publisher,
		cache:     cache,
		logger:    logger,
	}
}

// Restock increments inventory for every not-yet-restocked item on the
// return, item by item, continuing past individual failures. Each successful
// increment reads back the authoritative new quantity and emits a
// notification carrying it. Items are restocked at most once: the
// restocked_at marker makes a retried receipt transition a no-op.
func (r *Restocker) Restock(ctx context.Context, merchantID, returnID uuid.UUID, actor order.Actor) *RestockReport {
	report := &RestockReport{ReturnID: returnID, Restocked: make([]RestockedItem, 0)}

	ret, err := r.returns.FindByIDForMerchant(ctx, merchantID, returnID)
	if err != nil {
		r.logger.Error("restock: failed to load return",
			zap.String("return_id", returnID.String()),
			zap.Error(err),
		)
		report.Failed = append(report.Failed, RestockFailure{Error: err.Error()})
		return report
	}

	for _, item := range ret.PendingRestockItems() {
		onHand, err := r.inventory.Increment(ctx, merchantID, item.ProductID, item.Quantity)
		if err != nil {
			r.logger.Error("restock: failed to increment inventory",
				zap.String("return_id", returnID.String()),
				zap.String("product_id", item.ProductID.String()),
				zap.String("quantity", item.Quantity.String()),
				zap.Error(err),
			)
			report.Failed = append(report.Failed, RestockFailure{ProductID: item.ProductID, Error: err.Error()})
			continue
		}

		if err := r.returns.MarkItemRestocked(ctx, item.ID); err != nil {
			// The increment is durable; without the marker a retry would
			// double-count, so this is logged loudly.
			r.logger.Error("restock: failed to mark item restocked",
				zap.String("return_item_id", item.ID.String()),
				zap.Error(err),
			)
		}

		report.Restocked = append(report.Restocked, RestockedItem{
			ProductID: item.ProductID,
			SKU:       item.SKU,
			Quantity:  item.Quantity.String(),
			OnHand:    onHand.String(),
		})

		r.notify(ctx, merchantID, item, onHand)
	}

	if r.cache != nil {
		if err := r.cache.InvalidateActor(ctx, actor.ID); err != nil {
			r.logger.Warn("restock: cache invalidation failed",
				zap.String("actor_id", actor.ID.String()),
				zap.Error(err),
			)
		}
	}

	r.logger.Info("restock completed",
		zap.String("return_id", returnID.String()),
		zap.Int("restocked", len(report.Restocked)),
		zap.Int("failed", len(report.Failed)),
	)

	return report
}

// notify emits the inventory notifications for one restocked item. The
// on-hand value is the post-increment quantity read back from storage.
func (r *Restocker) notify(ctx context.Context, merchantID uuid.UUID, item *returns.Item, onHand decimal.Decimal) {
	if r.publisher == nil {
		return
	}
	events := []shared.DomainEvent{
		inventory.NewStockUpdatedEvent(inventory.EventTypeUpdated, merchantID, item.ID, item.ProductID, item.SKU, item.Quantity, onHand, "return-restock"),
		inventory.NewStockUpdatedEvent(inventory.EventTypeStockUpdated, merchantID, item.ID, item.ProductID, item.SKU, item.Quantity, onHand, "return-restock"),
	}
	if err := r.publisher.Publish(ctx, events...); err != nil {
		r.logger.Warn("restock: failed to publish inventory events",
			zap.String("product_id", item.ProductID.String()),
			zap.Error(err),
		)
	}
}

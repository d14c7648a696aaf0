package order

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	appbilling "github.com/oms/backend/internal/application/billing"
	"github.com/oms/backend/internal/domain/billing"
	"github.com/oms/backend/internal/domain/order"
	"github.com/oms/backend/internal/domain/shared"
	"github.com/oms/backend/internal/domain/shared/valueobject"
	"go.uber.org/zap"
)

// defaultInvoiceDueDays is the payment term applied to invoices issued on
// settlement when no term is configured
const defaultInvoiceDueDays = 30

// SettlementService orchestrates payment-status updates: optional line-item
// repricing, the order status transition, the payment record upsert and
// at-most-once invoice issuance, all in one transaction.
type SettlementService struct {
	scope          TransactionScope
	issuer         *appbilling.Issuer
	invoiceDueDays int
	publisher      shared.EventPublisher
	cache          CacheInvalidator
	logger         *zap.Logger
}

// NewSettlementService creates a new SettlementService. invoiceDueDays is the
// payment term for invoices issued on settlement; non-positive values fall
// back to the default.
func NewSettlementService(scope TransactionScope, issuer *appbilling.Issuer, invoiceDueDays int, publisher shared.EventPublisher, cache CacheInvalidator, logger *zap.Logger) *SettlementService {
	if invoiceDueDays <= 0 {
		invoiceDueDays = defaultInvoiceDueDays
	}
	return &SettlementService{
		scope:          scope,
		issuer:         issuer,
		invoiceDueDays: invoiceDueDays,
		publisher:      publisher,
		cache:          cache,
		logger:         logger,
	}
}

// Settle applies a payment-status update to an order. When the target status
// is paid it also confirms the order (unless cancelled), issues the invoice
// exactly once, and reports the invoice outcome; invoice failure is a soft
// error that never rolls back the committed payment update.
func (s *SettlementService) Settle(ctx context.Context, merchantID, orderID uuid.UUID, actor order.Actor, cmd SettleCommand) (*SettlementResult, error) {
	if !cmd.Status.IsValid() {
		return nil, shared.NewDomainError(shared.CodeInvalidInput, fmt.Sprintf("Unknown payment status %q", cmd.Status))
	}

	result := &SettlementResult{OrderID: orderID, PaymentStatus: cmd.Status}
	var pending []shared.DomainEvent

	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		// The row lock acquired here serializes concurrent settlement
		// attempts on the same order; the invoice existence check below
		// happens within the same lock scope.
		ord, err := repos.Orders().FindByIDForMerchantLocked(ctx, merchantID, orderID)
		if err != nil {
			return err
		}

		if ord.PaymentStatus == order.PaymentPaid && cmd.Status == order.PaymentPending {
			return shared.NewDomainError(shared.CodeInvalidInput, "Cannot move a settled payment back to pending")
		}

		result.OldStatus = ord.Status
		result.OldTotal = ord.TotalAmount.StringFixed(2)

		if cmd.NewUnitPrice != nil && cmd.Status == order.PaymentPaid {
			if err := ord.Reprice(valueobject.NewMoneyINR(*cmd.NewUnitPrice)); err != nil {
				return err
			}
			result.UnitPriceChanged = true
		}

		if err := s.upsertPayment(ctx, repos, ord, cmd); err != nil {
			return err
		}
		ord.SetPaymentStatus(cmd.Status)

		if cmd.Status == order.PaymentPaid {
			if err := s.confirmOrder(ctx, repos, ord, actor); err != nil {
				return err
			}
		}

		// The repriced items and new statuses must be persisted before
		// invoice reconciliation: the issuer reads the order back from the
		// transaction, and the invoice must reflect the saved prices.
		if err := repos.Orders().Save(ctx, ord); err != nil {
			return err
		}

		if cmd.Status == order.PaymentPaid {
			pending = append(pending, s.reconcileInvoice(ctx, repos, ord, cmd, result)...)
		}

		result.NewStatus = ord.Status
		result.NewTotal = ord.TotalAmount.StringFixed(2)

		pending = append(pending, drainEvents(ord)...)

		return nil
	})
	if err != nil {
		return nil, err
	}

	// Post-commit side effects: best-effort, never fail the settlement.
	s.publish(ctx, pending)
	s.invalidate(ctx, actor.ID)

	return result, nil
}

// upsertPayment creates the payment record on first settlement and
// overwrites it thereafter; only the audit trail keeps prior states.
func (s *SettlementService) upsertPayment(ctx context.Context, repos TransactionalRepositories, ord *order.Order, cmd SettleCommand) error {
	amount := cmd.Amount
	if !amount.IsPositive() {
		amount = ord.TotalAmount
	}

	existing, err := repos.Payments().FindByOrder(ctx, ord.MerchantID, ord.ID)
	if err != nil {
		if de, ok := err.(*shared.DomainError); !ok || de.Code != shared.CodeNotFound {
			return err
		}
		return repos.Payments().Save(ctx, order.NewPaymentRecord(ord.ID, ord.MerchantID, cmd.Status, cmd.Method, amount))
	}

	existing.Update(cmd.Status, cmd.Method, amount)
	return repos.Payments().Save(ctx, existing)
}

// confirmOrder moves the order to confirmed on successful payment. A
// cancelled order stays cancelled: its payment can still be marked paid for
// refund bookkeeping without resurrecting it.
func (s *SettlementService) confirmOrder(ctx context.Context, repos TransactionalRepositories, ord *order.Order, actor order.Actor) error {
	if ord.Status == order.StatusCancelled || ord.Status == order.StatusConfirmed {
		return nil
	}

	from := ord.Status
	if err := ord.ChangeStatus(order.StatusConfirmed, actor.ID); err != nil {
		return err
	}
	return repos.Histories().Append(ctx, order.NewStatusChangedEntry(ord, from, order.StatusConfirmed, actor.ID))
}

// reconcileInvoice issues the invoice on first settlement or corrects the
// existing one's payment fields. Failures are reported through the result's
// soft-error field so the payment update still commits. Returns the invoice
// events to publish after commit.
func (s *SettlementService) reconcileInvoice(ctx context.Context, repos TransactionalRepositories, ord *order.Order, cmd SettleCommand, result *SettlementResult) []shared.DomainEvent {
	existing, err := repos.Invoices().FindByOrder(ctx, ord.MerchantID, ord.ID)
	if err != nil {
		if de, ok := err.(*shared.DomainError); !ok || de.Code != shared.CodeNotFound {
			result.Invoice.Error = err.Error()
			s.logger.Error("invoice lookup failed during settlement",
				zap.String("order_id", ord.ID.String()),
				zap.Error(err),
			)
			return nil
		}

		inv, issueErr := s.issuer.Issue(ctx, appbilling.IssueRepos{
			Orders:   repos.Orders(),
			Invoices: repos.Invoices(),
			Profiles: repos.Profiles(),
		}, appbilling.IssueCommand{
			OrderID:    ord.ID,
			MerchantID: ord.MerchantID,
			DueDate:    time.Now().AddDate(0, 0, s.invoiceDueDays),
			Status:     billing.InvoicePaid,
		})
		if issueErr != nil {
			result.Invoice.Error = issueErr.Error()
			s.logger.Error("invoice issuance failed during settlement",
				zap.String("order_id", ord.ID.String()),
				zap.Error(issueErr),
			)
			return nil
		}

		result.Invoice.Created = true
		result.Invoice.InvoiceID = &inv.ID
		result.Invoice.DisplayNumber = inv.DisplayNumber()
		return drainEvents(inv)
	}

	// Idempotent correction: the second settlement updates the existing
	// invoice's payment fields instead of creating a duplicate.
	if err := existing.MarkPayment(toInvoiceStatus(cmd.Status), cmd.Method); err != nil {
		result.Invoice.Error = err.Error()
		return nil
	}
	if err := repos.Invoices().Save(ctx, existing); err != nil {
		result.Invoice.Error = err.Error()
		s.logger.Error("invoice correction failed during settlement",
			zap.String("invoice_id", existing.ID.String()),
			zap.Error(err),
		)
		return nil
	}

	result.Invoice.AlreadyExisted = true
	result.Invoice.InvoiceID = &existing.ID
	result.Invoice.DisplayNumber = existing.DisplayNumber()
	return drainEvents(existing)
}

// drainEvents removes and returns an aggregate's pending domain events
func drainEvents(agg shared.AggregateRoot) []shared.DomainEvent {
	events := agg.GetDomainEvents()
	agg.ClearDomainEvents()
	return events
}

func toInvoiceStatus(status order.PaymentStatus) billing.InvoiceStatus {
	switch status {
	case order.PaymentPaid:
		return billing.InvoicePaid
	case order.PaymentFailed:
		return billing.InvoiceFailed
	case order.PaymentRefunded:
		return billing.InvoiceRefunded
	}
	return billing.InvoiceUnpaid
}

func (s *SettlementService) publish(ctx context.Context, events []shared.DomainEvent) {
	if s.publisher == nil || len(events) == 0 {
		return
	}
	if err := s.publisher.Publish(ctx, events...); err != nil {
		s.logger.Warn("failed to publish settlement events", zap.Error(err))
	}
}

func (s *SettlementService) invalidate(ctx context.Context, actorID uuid.UUID) {
	if s.cache == nil {
		return
	}
	if err := s.cache.InvalidateActor(ctx, actorID); err != nil {
		s.logger.Warn("cache invalidation failed",
			zap.String("actor_id", actorID.String()),
			zap.Error(err),
		)
	}
}

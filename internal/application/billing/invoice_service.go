package billing

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/oms/backend/internal/domain/billing"
	"github.com/oms/backend/internal/domain/order"
	"github.com/oms/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// TransactionScope runs billing mutations inside a single database
// transaction.
type TransactionScope interface {
	Execute(ctx context.Context, fn func(repos TransactionalRepositories) error) error
}

// TransactionalRepositories exposes the repositories participating in a
// billing transaction
type TransactionalRepositories interface {
	Orders() order.Repository
	Invoices() billing.InvoiceRepository
	Profiles() billing.ProfileRepository
}

// CreateInvoiceRequest is the payload for manual invoice issuance
type CreateInvoiceRequest struct {
	DueDate  time.Time
	Notes    string
	Discount decimal.Decimal
}

// InvoiceService handles manual invoice operations. Settlement-driven
// issuance goes through the Issuer directly inside the settlement
// transaction.
type InvoiceService struct {
	scope     TransactionScope
	issuer    *Issuer
	invoices  billing.InvoiceRepository
	publisher shared.EventPublisher
	logger    *zap.Logger
}

// NewInvoiceService creates a new InvoiceService
func NewInvoiceService(scope TransactionScope, issuer *Issuer, invoices billing.InvoiceRepository, publisher shared.EventPublisher, logger *zap.Logger) *InvoiceService {
	return &InvoiceService{
		scope:     scope,
		issuer:    issuer,
		invoices:  invoices,
		publisher: publisher,
		logger:    logger,
	}
}

// Create issues an invoice manually for an order that has none yet. Manual
// invoices start unpaid regardless of the order's payment state; settlement
// corrects them later.
func (s *InvoiceService) Create(ctx context.Context, merchantID, orderID uuid.UUID, req CreateInvoiceRequest) (*InvoiceResponse, error) {
	var issued *billing.Invoice

	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		// At-most-once guard: the issuer itself does not re-check.
		if _, err := repos.Invoices().FindByOrder(ctx, merchantID, orderID); err == nil {
			return shared.NewDomainError(shared.CodeAlreadyExists, "Order already has an invoice")
		} else if de, ok := err.(*shared.DomainError); !ok || de.Code != shared.CodeNotFound {
			return err
		}

		inv, err := s.issuer.Issue(ctx, IssueRepos{
			Orders:   repos.Orders(),
			Invoices: repos.Invoices(),
			Profiles: repos.Profiles(),
		}, IssueCommand{
			OrderID:    orderID,
			MerchantID: merchantID,
			DueDate:    req.DueDate,
			Notes:      req.Notes,
			Discount:   req.Discount,
			Status:     billing.InvoiceUnpaid,
		})
		if err != nil {
			return err
		}

		issued = inv
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.publishEvents(ctx, issued)

	resp := ToInvoiceResponse(issued)
	return &resp, nil
}

// GetByID retrieves an invoice with its line items
func (s *InvoiceService) GetByID(ctx context.Context, merchantID, invoiceID uuid.UUID) (*InvoiceResponse, error) {
	inv, err := s.invoices.FindByIDForMerchant(ctx, merchantID, invoiceID)
	if err != nil {
		return nil, err
	}
	resp := ToInvoiceResponse(inv)
	return &resp, nil
}

// GetByOrder retrieves the invoice issued for an order
func (s *InvoiceService) GetByOrder(ctx context.Context, merchantID, orderID uuid.UUID) (*InvoiceResponse, error) {
	inv, err := s.invoices.FindByOrder(ctx, merchantID, orderID)
	if err != nil {
		return nil, err
	}
	resp := ToInvoiceResponse(inv)
	return &resp, nil
}

// publishEvents emits the aggregate's pending events after commit;
// delivery is best-effort.
func (s *InvoiceService) publishEvents(ctx context.Context, inv *billing.Invoice) {
	if inv == nil || s.publisher == nil {
		return
	}
	events := inv.GetDomainEvents()
	inv.ClearDomainEvents()
	if len(events) == 0 {
		return
	}
	if err := s.publisher.Publish(ctx, events...); err != nil {
		s.logger.Warn("failed to publish invoice events",
			zap.String("invoice_id", inv.ID.String()),
			zap.Error(err),
		)
	}
}

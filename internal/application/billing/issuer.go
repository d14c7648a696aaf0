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

// IssueRepos are the transaction-scoped repositories the issuer works
// against. The caller owns the transaction; the issuer never opens one.
type IssueRepos struct {
	Orders   order.Repository
	Invoices billing.InvoiceRepository
	Profiles billing.ProfileRepository
}

// IssueCommand describes one invoice issuance
type IssueCommand struct {
	OrderID    uuid.UUID
	MerchantID uuid.UUID
	DueDate    time.Time
	Notes      string
	Discount   decimal.Decimal
	Status     billing.InvoiceStatus
}

// Issuer creates invoices. It is a pure "create" primitive: the at-most-once
// guard (invoice existence per order) belongs to its callers, which all hold
// the order row lock when they check.
type Issuer struct {
	logger *zap.Logger
}

// NewIssuer creates a new invoice issuer
func NewIssuer(logger *zap.Logger) *Issuer {
	return &Issuer{logger: logger}
}

// Issue allocates the merchant's next invoice number, computes the tax
// breakdown for the order's line items and persists the invoice header plus
// one line item per order line item. Runs entirely inside the caller's
// transaction.
func (iss *Issuer) Issue(ctx context.Context, repos IssueRepos, cmd IssueCommand) (*billing.Invoice, error) {
	ord, err := repos.Orders.FindByIDForMerchant(ctx, cmd.MerchantID, cmd.OrderID)
	if err != nil {
		return nil, err
	}

	// Concurrency-safety point: a single atomic increment-and-read so two
	// concurrent issuances for the same merchant never collide.
	seq, err := repos.Profiles.AllocateSequence(ctx, cmd.MerchantID)
	if err != nil {
		if de, ok := err.(*shared.DomainError); ok && de.Code == shared.CodeNotFound {
			return nil, shared.NewDomainError(shared.CodeNotFound, "Billing profile not configured for merchant")
		}
		return nil, err
	}

	lines := make([]billing.TaxLine, 0, len(ord.Items))
	for _, item := range ord.Items {
		lines = append(lines, billing.TaxLine{
			OrderItemID:   item.ID,
			ProductID:     item.ProductID,
			SKU:           item.SKU,
			HSNCode:       item.HSNCode,
			Quantity:      item.Quantity,
			UnitPrice:     item.UnitPrice,
			ExtendedPrice: item.ExtendedPrice,
			TaxRatePct:    item.TaxRatePct,
		})
	}

	breakdown := billing.CalculateGST(lines, seq.Jurisdiction, ord.CustomerJurisdiction, cmd.Discount)

	inv, err := billing.NewInvoice(cmd.MerchantID, cmd.OrderID, seq.Number, seq.Prefix, breakdown, cmd.DueDate, cmd.Notes, cmd.Status)
	if err != nil {
		return nil, err
	}

	if err := repos.Invoices.Save(ctx, inv); err != nil {
		return nil, err
	}

	iss.logger.Info("invoice issued",
		zap.String("invoice_id", inv.ID.String()),
		zap.String("order_id", cmd.OrderID.String()),
		zap.String("display_number", inv.DisplayNumber()),
		zap.String("total", inv.Total.StringFixed(2)),
	)

	return inv, nil
}

package order

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	appbilling "github.com/oms/backend/internal/application/billing"
	"github.com/oms/backend/internal/domain/billing"
	"github.com/oms/backend/internal/domain/order"
	"github.com/oms/backend/internal/domain/shared"
	"github.com/oms/backend/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// MockOrderRepository is a mock implementation of order.Repository
type MockOrderRepository struct {
	mock.Mock
}

func (m *MockOrderRepository) FindByIDForMerchant(ctx context.Context, merchantID, id uuid.UUID) (*order.Order, error) {
	args := m.Called(ctx, merchantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderRepository) FindByIDForMerchantLocked(ctx context.Context, merchantID, id uuid.UUID) (*order.Order, error) {
	args := m.Called(ctx, merchantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderRepository) FindAllForMerchant(ctx context.Context, merchantID uuid.UUID, filter shared.Filter) ([]order.Order, error) {
	args := m.Called(ctx, merchantID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]order.Order), args.Error(1)
}

func (m *MockOrderRepository) CountForMerchant(ctx context.Context, merchantID uuid.UUID, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, merchantID, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockOrderRepository) Save(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

// MockPaymentRepository is a mock implementation of order.PaymentRepository
type MockPaymentRepository struct {
	mock.Mock
}

func (m *MockPaymentRepository) FindByOrder(ctx context.Context, merchantID, orderID uuid.UUID) (*order.PaymentRecord, error) {
	args := m.Called(ctx, merchantID, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.PaymentRecord), args.Error(1)
}

func (m *MockPaymentRepository) Save(ctx context.Context, p *order.PaymentRecord) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

// MockHistoryRepository is a mock implementation of order.HistoryRepository
type MockHistoryRepository struct {
	mock.Mock
}

func (m *MockHistoryRepository) Append(ctx context.Context, entry *order.HistoryEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *MockHistoryRepository) FindByOrder(ctx context.Context, merchantID, orderID uuid.UUID) ([]order.HistoryEntry, error) {
	args := m.Called(ctx, merchantID, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]order.HistoryEntry), args.Error(1)
}

// MockInvoiceRepository is a mock implementation of billing.InvoiceRepository
type MockInvoiceRepository struct {
	mock.Mock
}

func (m *MockInvoiceRepository) FindByIDForMerchant(ctx context.Context, merchantID, id uuid.UUID) (*billing.Invoice, error) {
	args := m.Called(ctx, merchantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*billing.Invoice), args.Error(1)
}

func (m *MockInvoiceRepository) FindByOrder(ctx context.Context, merchantID, orderID uuid.UUID) (*billing.Invoice, error) {
	args := m.Called(ctx, merchantID, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*billing.Invoice), args.Error(1)
}

func (m *MockInvoiceRepository) Save(ctx context.Context, inv *billing.Invoice) error {
	args := m.Called(ctx, inv)
	return args.Error(0)
}

// MockProfileRepository is a mock implementation of billing.ProfileRepository
type MockProfileRepository struct {
	mock.Mock
}

func (m *MockProfileRepository) FindByMerchant(ctx context.Context, merchantID uuid.UUID) (*billing.Profile, error) {
	args := m.Called(ctx, merchantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*billing.Profile), args.Error(1)
}

func (m *MockProfileRepository) AllocateSequence(ctx context.Context, merchantID uuid.UUID) (*billing.Sequence, error) {
	args := m.Called(ctx, merchantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*billing.Sequence), args.Error(1)
}

func (m *MockProfileRepository) Save(ctx context.Context, p *billing.Profile) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

type settlementFixture struct {
	orders    *MockOrderRepository
	payments  *MockPaymentRepository
	histories *MockHistoryRepository
	invoices  *MockInvoiceRepository
	profiles  *MockProfileRepository
	service   *SettlementService
}

func newSettlementFixture() *settlementFixture {
	return newSettlementFixtureTerm(30)
}

func newSettlementFixtureTerm(invoiceDueDays int) *settlementFixture {
	f := &settlementFixture{
		orders:    new(MockOrderRepository),
		payments:  new(MockPaymentRepository),
		histories: new(MockHistoryRepository),
		invoices:  new(MockInvoiceRepository),
		profiles:  new(MockProfileRepository),
	}
	scope := &NoOpTransactionScope{
		OrderRepo:   f.orders,
		PaymentRepo: f.payments,
		HistoryRepo: f.histories,
		InvoiceRepo: f.invoices,
		ProfileRepo: f.profiles,
	}
	f.service = NewSettlementService(scope, appbilling.NewIssuer(zap.NewNop()), invoiceDueDays, nil, nil, zap.NewNop())
	return f
}

// snapshotOrderRepository behaves like a transaction-scoped repository: reads
// hydrate a fresh copy of the stored row, and writes replace it, so in-memory
// mutations of a loaded aggregate stay invisible until saved.
type snapshotOrderRepository struct {
	stored *order.Order
}

func newSnapshotOrderRepository(o *order.Order) *snapshotOrderRepository {
	return &snapshotOrderRepository{stored: cloneOrder(o)}
}

func cloneOrder(o *order.Order) *order.Order {
	snap := *o
	snap.Items = append([]order.LineItem(nil), o.Items...)
	return &snap
}

func (r *snapshotOrderRepository) FindByIDForMerchant(_ context.Context, merchantID, id uuid.UUID) (*order.Order, error) {
	if r.stored == nil || r.stored.MerchantID != merchantID || r.stored.ID != id {
		return nil, shared.ErrNotFound
	}
	return cloneOrder(r.stored), nil
}

func (r *snapshotOrderRepository) FindByIDForMerchantLocked(ctx context.Context, merchantID, id uuid.UUID) (*order.Order, error) {
	return r.FindByIDForMerchant(ctx, merchantID, id)
}

func (r *snapshotOrderRepository) FindAllForMerchant(_ context.Context, _ uuid.UUID, _ shared.Filter) ([]order.Order, error) {
	return nil, nil
}

func (r *snapshotOrderRepository) CountForMerchant(_ context.Context, _ uuid.UUID, _ shared.Filter) (int64, error) {
	return 0, nil
}

func (r *snapshotOrderRepository) Save(_ context.Context, o *order.Order) error {
	r.stored = cloneOrder(o)
	return nil
}

func newSettlementOrder(t *testing.T, merchantID uuid.UUID) *order.Order {
	t.Helper()
	ord, err := order.NewOrder(merchantID, "ORD-2001", uuid.New(), "Acme Traders", "KA")
	require.NoError(t, err)
	_, err = ord.AddItem(uuid.New(), "SKU-1", "9403", decimal.NewFromInt(18),
		decimal.NewFromInt(2), valueobject.NewMoneyINRFromFloat(40))
	require.NoError(t, err)
	return ord
}

func TestSettlementServiceSettle(t *testing.T) {
	ctx := context.Background()
	merchantID := uuid.New()
	actor := order.Actor{ID: uuid.New(), Role: order.RoleAdmin}

	t.Run("paid settlement confirms the order and issues the invoice", func(t *testing.T) {
		f := newSettlementFixture()
		ord := newSettlementOrder(t, merchantID)

		var issued *billing.Invoice
		f.orders.On("FindByIDForMerchantLocked", ctx, merchantID, ord.ID).Return(ord, nil)
		f.payments.On("FindByOrder", ctx, merchantID, ord.ID).Return(nil, shared.ErrNotFound)
		f.payments.On("Save", ctx, mock.AnythingOfType("*order.PaymentRecord")).Return(nil)
		f.histories.On("Append", ctx, mock.AnythingOfType("*order.HistoryEntry")).Return(nil)
		f.invoices.On("FindByOrder", ctx, merchantID, ord.ID).Return(nil, shared.ErrNotFound)
		f.orders.On("FindByIDForMerchant", ctx, merchantID, ord.ID).Return(ord, nil)
		f.profiles.On("AllocateSequence", ctx, merchantID).
			Return(&billing.Sequence{Number: 7, Prefix: "INV-", Jurisdiction: "KA"}, nil)
		f.invoices.On("Save", ctx, mock.AnythingOfType("*billing.Invoice")).
			Run(func(args mock.Arguments) { issued = args.Get(1).(*billing.Invoice) }).
			Return(nil)
		f.orders.On("Save", ctx, ord).Return(nil)

		result, err := f.service.Settle(ctx, merchantID, ord.ID, actor, SettleCommand{
			Status: order.PaymentPaid,
			Method: "upi",
		})
		require.NoError(t, err)
		require.NotNil(t, result)

		assert.Equal(t, order.StatusPending, result.OldStatus)
		assert.Equal(t, order.StatusConfirmed, result.NewStatus)
		assert.Equal(t, order.PaymentPaid, ord.PaymentStatus)

		assert.True(t, result.Invoice.Created)
		assert.False(t, result.Invoice.AlreadyExisted)
		assert.Empty(t, result.Invoice.Error)
		assert.Equal(t, "INV-7", result.Invoice.DisplayNumber)

		require.NotNil(t, issued)
		assert.Equal(t, int64(7), issued.Number)
		assert.Equal(t, billing.InvoicePaid, issued.Status)
		// 80 subtotal + 18% GST split as CGST/SGST (same jurisdiction)
		assert.Equal(t, "94.4", issued.Total.String())
		assert.Equal(t, "7.2", issued.CGST.String())
		assert.Equal(t, "7.2", issued.SGST.String())
		assert.True(t, issued.IGST.IsZero())

		f.orders.AssertExpectations(t)
		f.payments.AssertExpectations(t)
		f.invoices.AssertExpectations(t)
		f.profiles.AssertExpectations(t)
	})

	t.Run("reprice rewrites unit prices before settling", func(t *testing.T) {
		f := newSettlementFixture()
		ord := newSettlementOrder(t, merchantID)

		f.orders.On("FindByIDForMerchantLocked", ctx, merchantID, ord.ID).Return(ord, nil)
		f.payments.On("FindByOrder", ctx, merchantID, ord.ID).Return(nil, shared.ErrNotFound)
		f.payments.On("Save", ctx, mock.AnythingOfType("*order.PaymentRecord")).Return(nil)
		f.histories.On("Append", ctx, mock.AnythingOfType("*order.HistoryEntry")).Return(nil)
		f.invoices.On("FindByOrder", ctx, merchantID, ord.ID).Return(nil, shared.ErrNotFound)
		f.orders.On("FindByIDForMerchant", ctx, merchantID, ord.ID).Return(ord, nil)
		f.profiles.On("AllocateSequence", ctx, merchantID).
			Return(&billing.Sequence{Number: 1, Prefix: "INV-", Jurisdiction: "KA"}, nil)
		f.invoices.On("Save", ctx, mock.AnythingOfType("*billing.Invoice")).Return(nil)
		f.orders.On("Save", ctx, ord).Return(nil)

		newPrice := decimal.NewFromInt(50)
		result, err := f.service.Settle(ctx, merchantID, ord.ID, actor, SettleCommand{
			Status:       order.PaymentPaid,
			Method:       "upi",
			NewUnitPrice: &newPrice,
		})
		require.NoError(t, err)

		assert.True(t, result.UnitPriceChanged)
		assert.Equal(t, "80.00", result.OldTotal)
		assert.Equal(t, "100.00", result.NewTotal)
		assert.Equal(t, "50", ord.Items[0].UnitPrice.String())
		assert.Equal(t, "2", ord.Items[0].Quantity.String())
	})

	t.Run("invoice is computed from the persisted repriced items", func(t *testing.T) {
		f := newSettlementFixture()
		ord := newSettlementOrder(t, merchantID)

		// The issuer reloads the order from the repository, so the invoice
		// can only reflect the reprice if the order was saved first.
		orders := newSnapshotOrderRepository(ord)
		scope := &NoOpTransactionScope{
			OrderRepo:   orders,
			PaymentRepo: f.payments,
			HistoryRepo: f.histories,
			InvoiceRepo: f.invoices,
			ProfileRepo: f.profiles,
		}
		service := NewSettlementService(scope, appbilling.NewIssuer(zap.NewNop()), 30, nil, nil, zap.NewNop())

		var issued *billing.Invoice
		f.payments.On("FindByOrder", ctx, merchantID, ord.ID).Return(nil, shared.ErrNotFound)
		f.payments.On("Save", ctx, mock.AnythingOfType("*order.PaymentRecord")).Return(nil)
		f.histories.On("Append", ctx, mock.AnythingOfType("*order.HistoryEntry")).Return(nil)
		f.invoices.On("FindByOrder", ctx, merchantID, ord.ID).Return(nil, shared.ErrNotFound)
		f.profiles.On("AllocateSequence", ctx, merchantID).
			Return(&billing.Sequence{Number: 9, Prefix: "INV-", Jurisdiction: "KA"}, nil)
		f.invoices.On("Save", ctx, mock.AnythingOfType("*billing.Invoice")).
			Run(func(args mock.Arguments) { issued = args.Get(1).(*billing.Invoice) }).
			Return(nil)

		newPrice := decimal.NewFromInt(50)
		result, err := service.Settle(ctx, merchantID, ord.ID, actor, SettleCommand{
			Status:       order.PaymentPaid,
			Method:       "upi",
			NewUnitPrice: &newPrice,
		})
		require.NoError(t, err)

		assert.Equal(t, "80.00", result.OldTotal)
		assert.Equal(t, "100.00", result.NewTotal)

		require.NotNil(t, issued)
		assert.Equal(t, "100", issued.Subtotal.String())
		assert.Equal(t, "9", issued.CGST.String())
		assert.Equal(t, "9", issued.SGST.String())
		assert.Equal(t, "118", issued.Total.String())
		require.Len(t, issued.Items, 1)
		assert.Equal(t, "50", issued.Items[0].UnitPrice.String())
		assert.Equal(t, "100", issued.Items[0].ExtendedPrice.String())

		assert.Equal(t, "100", orders.stored.TotalAmount.String())
		assert.Equal(t, order.StatusConfirmed, orders.stored.Status)
	})

	t.Run("configured payment term sets the invoice due date", func(t *testing.T) {
		f := newSettlementFixtureTerm(45)
		ord := newSettlementOrder(t, merchantID)

		var issued *billing.Invoice
		f.orders.On("FindByIDForMerchantLocked", ctx, merchantID, ord.ID).Return(ord, nil)
		f.payments.On("FindByOrder", ctx, merchantID, ord.ID).Return(nil, shared.ErrNotFound)
		f.payments.On("Save", ctx, mock.AnythingOfType("*order.PaymentRecord")).Return(nil)
		f.histories.On("Append", ctx, mock.AnythingOfType("*order.HistoryEntry")).Return(nil)
		f.invoices.On("FindByOrder", ctx, merchantID, ord.ID).Return(nil, shared.ErrNotFound)
		f.orders.On("FindByIDForMerchant", ctx, merchantID, ord.ID).Return(ord, nil)
		f.profiles.On("AllocateSequence", ctx, merchantID).
			Return(&billing.Sequence{Number: 2, Prefix: "INV-", Jurisdiction: "KA"}, nil)
		f.invoices.On("Save", ctx, mock.AnythingOfType("*billing.Invoice")).
			Run(func(args mock.Arguments) { issued = args.Get(1).(*billing.Invoice) }).
			Return(nil)
		f.orders.On("Save", ctx, ord).Return(nil)

		_, err := f.service.Settle(ctx, merchantID, ord.ID, actor, SettleCommand{Status: order.PaymentPaid})
		require.NoError(t, err)

		require.NotNil(t, issued)
		assert.WithinDuration(t, time.Now().AddDate(0, 0, 45), issued.DueDate, time.Minute)
	})

	t.Run("rejects moving a settled payment back to pending", func(t *testing.T) {
		f := newSettlementFixture()
		ord := newSettlementOrder(t, merchantID)
		ord.SetPaymentStatus(order.PaymentPaid)

		f.orders.On("FindByIDForMerchantLocked", ctx, merchantID, ord.ID).Return(ord, nil)

		_, err := f.service.Settle(ctx, merchantID, ord.ID, actor, SettleCommand{Status: order.PaymentPending})
		require.Error(t, err)

		var de *shared.DomainError
		require.ErrorAs(t, err, &de)
		assert.Equal(t, shared.CodeInvalidInput, de.Code)

		f.orders.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
		f.payments.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("second paid settlement corrects the existing invoice in place", func(t *testing.T) {
		f := newSettlementFixture()
		ord := newSettlementOrder(t, merchantID)
		ord.SetPaymentStatus(order.PaymentPaid)
		require.NoError(t, ord.ChangeStatus(order.StatusConfirmed, actor.ID))
		ord.ClearDomainEvents()

		breakdown := billing.CalculateGST(nil, "KA", "KA", decimal.Zero)
		existing, err := billing.NewInvoice(merchantID, ord.ID, 7, "INV-", breakdown, ord.CreatedAt, "", billing.InvoiceUnpaid)
		require.NoError(t, err)
		existing.ClearDomainEvents()

		f.orders.On("FindByIDForMerchantLocked", ctx, merchantID, ord.ID).Return(ord, nil)
		f.payments.On("FindByOrder", ctx, merchantID, ord.ID).
			Return(order.NewPaymentRecord(ord.ID, merchantID, order.PaymentPending, "upi", ord.TotalAmount), nil)
		f.payments.On("Save", ctx, mock.AnythingOfType("*order.PaymentRecord")).Return(nil)
		f.invoices.On("FindByOrder", ctx, merchantID, ord.ID).Return(existing, nil)
		f.invoices.On("Save", ctx, existing).Return(nil)
		f.orders.On("Save", ctx, ord).Return(nil)

		result, err := f.service.Settle(ctx, merchantID, ord.ID, actor, SettleCommand{
			Status: order.PaymentPaid,
			Method: "card",
		})
		require.NoError(t, err)

		assert.False(t, result.Invoice.Created)
		assert.True(t, result.Invoice.AlreadyExisted)
		assert.Equal(t, "INV-7", result.Invoice.DisplayNumber)
		assert.Equal(t, billing.InvoicePaid, existing.Status)
		assert.Equal(t, "card", existing.Method)

		f.profiles.AssertNotCalled(t, "AllocateSequence", mock.Anything, mock.Anything)
	})

	t.Run("missing billing profile is a soft failure", func(t *testing.T) {
		f := newSettlementFixture()
		ord := newSettlementOrder(t, merchantID)

		f.orders.On("FindByIDForMerchantLocked", ctx, merchantID, ord.ID).Return(ord, nil)
		f.payments.On("FindByOrder", ctx, merchantID, ord.ID).Return(nil, shared.ErrNotFound)
		f.payments.On("Save", ctx, mock.AnythingOfType("*order.PaymentRecord")).Return(nil)
		f.histories.On("Append", ctx, mock.AnythingOfType("*order.HistoryEntry")).Return(nil)
		f.invoices.On("FindByOrder", ctx, merchantID, ord.ID).Return(nil, shared.ErrNotFound)
		f.orders.On("FindByIDForMerchant", ctx, merchantID, ord.ID).Return(ord, nil)
		f.profiles.On("AllocateSequence", ctx, merchantID).Return(nil, shared.ErrNotFound)
		f.orders.On("Save", ctx, ord).Return(nil)

		result, err := f.service.Settle(ctx, merchantID, ord.ID, actor, SettleCommand{Status: order.PaymentPaid})
		require.NoError(t, err, "invoice failure must not fail the settlement")

		assert.Equal(t, order.StatusConfirmed, result.NewStatus)
		assert.False(t, result.Invoice.Created)
		assert.Contains(t, result.Invoice.Error, "Billing profile not configured")

		f.orders.AssertCalled(t, "Save", ctx, ord)
		f.invoices.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("non-paid settlement skips confirmation and invoicing", func(t *testing.T) {
		f := newSettlementFixture()
		ord := newSettlementOrder(t, merchantID)

		f.orders.On("FindByIDForMerchantLocked", ctx, merchantID, ord.ID).Return(ord, nil)
		f.payments.On("FindByOrder", ctx, merchantID, ord.ID).Return(nil, shared.ErrNotFound)
		f.payments.On("Save", ctx, mock.AnythingOfType("*order.PaymentRecord")).Return(nil)
		f.orders.On("Save", ctx, ord).Return(nil)

		result, err := f.service.Settle(ctx, merchantID, ord.ID, actor, SettleCommand{Status: order.PaymentFailed})
		require.NoError(t, err)

		assert.Equal(t, order.StatusPending, result.NewStatus)
		assert.Equal(t, order.PaymentFailed, ord.PaymentStatus)

		f.histories.AssertNotCalled(t, "Append", mock.Anything, mock.Anything)
		f.invoices.AssertNotCalled(t, "FindByOrder", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("paid settlement on a cancelled order keeps it cancelled", func(t *testing.T) {
		f := newSettlementFixture()
		ord := newSettlementOrder(t, merchantID)
		require.NoError(t, ord.ChangeStatus(order.StatusCancelled, actor.ID))
		ord.ClearDomainEvents()

		breakdown := billing.CalculateGST(nil, "KA", "KA", decimal.Zero)
		existing, err := billing.NewInvoice(merchantID, ord.ID, 3, "INV-", breakdown, ord.CreatedAt, "", billing.InvoicePaid)
		require.NoError(t, err)
		existing.ClearDomainEvents()

		f.orders.On("FindByIDForMerchantLocked", ctx, merchantID, ord.ID).Return(ord, nil)
		f.payments.On("FindByOrder", ctx, merchantID, ord.ID).Return(nil, shared.ErrNotFound)
		f.payments.On("Save", ctx, mock.AnythingOfType("*order.PaymentRecord")).Return(nil)
		f.invoices.On("FindByOrder", ctx, merchantID, ord.ID).Return(existing, nil)
		f.invoices.On("Save", ctx, existing).Return(nil)
		f.orders.On("Save", ctx, ord).Return(nil)

		result, err := f.service.Settle(ctx, merchantID, ord.ID, actor, SettleCommand{Status: order.PaymentPaid})
		require.NoError(t, err)

		assert.Equal(t, order.StatusCancelled, result.NewStatus, "payment bookkeeping must not resurrect a cancelled order")
		f.histories.AssertNotCalled(t, "Append", mock.Anything, mock.Anything)
	})

	t.Run("rejects an unknown payment status", func(t *testing.T) {
		f := newSettlementFixture()

		_, err := f.service.Settle(ctx, merchantID, uuid.New(), actor, SettleCommand{Status: order.PaymentStatus("settled")})
		require.Error(t, err)

		var de *shared.DomainError
		require.ErrorAs(t, err, &de)
		assert.Equal(t, shared.CodeInvalidInput, de.Code)
		f.orders.AssertNotCalled(t, "FindByIDForMerchantLocked", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("propagates not found", func(t *testing.T) {
		f := newSettlementFixture()
		orderID := uuid.New()

		f.orders.On("FindByIDForMerchantLocked", ctx, merchantID, orderID).Return(nil, shared.ErrNotFound)

		_, err := f.service.Settle(ctx, merchantID, orderID, actor, SettleCommand{Status: order.PaymentPaid})
		require.Error(t, err)

		var de *shared.DomainError
		require.ErrorAs(t, err, &de)
		assert.Equal(t, shared.CodeNotFound, de.Code)
	})
}

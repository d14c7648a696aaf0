package order

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/oms/backend/internal/domain/order"
	"github.com/oms/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type statusFixture struct {
	orders    *MockOrderRepository
	histories *MockHistoryRepository
	service   *StatusService
}

func newStatusFixture() *statusFixture {
	f := &statusFixture{
		orders:    new(MockOrderRepository),
		histories: new(MockHistoryRepository),
	}
	scope := &NoOpTransactionScope{
		OrderRepo:   f.orders,
		HistoryRepo: f.histories,
	}
	f.service = NewStatusService(scope, f.orders, f.histories, nil, nil, zap.NewNop())
	return f
}

func newStatusOrder(t *testing.T, merchantID uuid.UUID, status order.Status, paid bool) *order.Order {
	t.Helper()
	ord, err := order.NewOrder(merchantID, "ORD-3001", uuid.New(), "Acme Traders", "KA")
	require.NoError(t, err)
	ord.Status = status
	if paid {
		ord.SetPaymentStatus(order.PaymentPaid)
	}
	return ord
}

func TestStatusServiceChangeStatus(t *testing.T) {
	ctx := context.Background()
	merchantID := uuid.New()

	t.Run("applies an allowed transition and records history", func(t *testing.T) {
		f := newStatusFixture()
		ord := newStatusOrder(t, merchantID, order.StatusPending, true)
		actor := order.Actor{ID: uuid.New(), Role: order.RoleEmployee}

		f.orders.On("FindByIDForMerchantLocked", ctx, merchantID, ord.ID).Return(ord, nil)
		f.histories.On("Append", ctx, mock.AnythingOfType("*order.HistoryEntry")).
			Run(func(args mock.Arguments) {
				entry := args.Get(1).(*order.HistoryEntry)
				assert.Equal(t, order.EntryStatusChanged, entry.EntryType)
				assert.Equal(t, order.StatusPending, entry.FromStatus)
				assert.Equal(t, order.StatusConfirmed, entry.ToStatus)
				assert.Equal(t, actor.ID, entry.ActorID)
			}).
			Return(nil)
		f.orders.On("Save", ctx, ord).Return(nil)

		result, err := f.service.ChangeStatus(ctx, merchantID, ord.ID, actor, order.StatusConfirmed)
		require.NoError(t, err)

		assert.Equal(t, order.StatusPending, result.OldStatus)
		assert.Equal(t, order.StatusConfirmed, result.NewStatus)
		assert.Equal(t, order.StatusConfirmed, ord.Status)

		f.orders.AssertExpectations(t)
		f.histories.AssertExpectations(t)
	})

	t.Run("rejects a transition outside the role's slice with allowed targets", func(t *testing.T) {
		f := newStatusFixture()
		ord := newStatusOrder(t, merchantID, order.StatusShipped, true)
		actor := order.Actor{ID: uuid.New(), Role: order.RoleEmployee}

		f.orders.On("FindByIDForMerchantLocked", ctx, merchantID, ord.ID).Return(ord, nil)

		_, err := f.service.ChangeStatus(ctx, merchantID, ord.ID, actor, order.StatusConfirmed)
		require.Error(t, err)

		var de *shared.DomainError
		require.ErrorAs(t, err, &de)
		assert.Equal(t, shared.CodeInvalidTransition, de.Code)
		assert.Equal(t, []string{"delivered"}, de.Details["allowed_targets"])

		f.orders.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("payment gate blocks confirmation of an unpaid order", func(t *testing.T) {
		f := newStatusFixture()
		ord := newStatusOrder(t, merchantID, order.StatusPending, false)
		actor := order.Actor{ID: uuid.New(), Role: order.RoleAdmin}

		f.orders.On("FindByIDForMerchantLocked", ctx, merchantID, ord.ID).Return(ord, nil)

		_, err := f.service.ChangeStatus(ctx, merchantID, ord.ID, actor, order.StatusConfirmed)
		require.Error(t, err)

		var de *shared.DomainError
		require.ErrorAs(t, err, &de)
		assert.Equal(t, shared.CodePaymentRequired, de.Code)

		f.orders.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
		f.histories.AssertNotCalled(t, "Append", mock.Anything, mock.Anything)
	})

	t.Run("assigned is not payment gated", func(t *testing.T) {
		f := newStatusFixture()
		ord := newStatusOrder(t, merchantID, order.StatusPending, false)
		actor := order.Actor{ID: uuid.New(), Role: order.RoleAdmin}

		f.orders.On("FindByIDForMerchantLocked", ctx, merchantID, ord.ID).Return(ord, nil)
		f.histories.On("Append", ctx, mock.AnythingOfType("*order.HistoryEntry")).Return(nil)
		f.orders.On("Save", ctx, ord).Return(nil)

		result, err := f.service.ChangeStatus(ctx, merchantID, ord.ID, actor, order.StatusAssigned)
		require.NoError(t, err)
		assert.Equal(t, order.StatusAssigned, result.NewStatus)
	})

	t.Run("terminal orders reject any change even for admin", func(t *testing.T) {
		f := newStatusFixture()
		ord := newStatusOrder(t, merchantID, order.StatusDelivered, true)
		actor := order.Actor{ID: uuid.New(), Role: order.RoleAdmin}

		f.orders.On("FindByIDForMerchantLocked", ctx, merchantID, ord.ID).Return(ord, nil)

		_, err := f.service.ChangeStatus(ctx, merchantID, ord.ID, actor, order.StatusShipped)
		require.Error(t, err)

		var de *shared.DomainError
		require.ErrorAs(t, err, &de)
		assert.Equal(t, shared.CodeInvalidTransition, de.Code)
		assert.Empty(t, de.Details["allowed_targets"])
	})

	t.Run("rejects an unknown status before touching the repository", func(t *testing.T) {
		f := newStatusFixture()
		actor := order.Actor{ID: uuid.New(), Role: order.RoleAdmin}

		_, err := f.service.ChangeStatus(ctx, merchantID, uuid.New(), actor, order.Status("archived"))
		require.Error(t, err)

		var de *shared.DomainError
		require.ErrorAs(t, err, &de)
		assert.Equal(t, shared.CodeInvalidInput, de.Code)
		f.orders.AssertNotCalled(t, "FindByIDForMerchantLocked", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestStatusServiceList(t *testing.T) {
	ctx := context.Background()
	merchantID := uuid.New()

	t.Run("applies pagination defaults", func(t *testing.T) {
		f := newStatusFixture()

		expected := shared.Filter{Page: 1, PageSize: 20, OrderBy: "created_at", OrderDir: "desc"}
		f.orders.On("FindAllForMerchant", ctx, merchantID, expected).Return([]order.Order{}, nil)
		f.orders.On("CountForMerchant", ctx, merchantID, expected).Return(int64(0), nil)

		out, total, err := f.service.List(ctx, merchantID, shared.Filter{})
		require.NoError(t, err)
		assert.Empty(t, out)
		assert.Equal(t, int64(0), total)

		f.orders.AssertExpectations(t)
	})

	t.Run("maps orders to responses", func(t *testing.T) {
		f := newStatusFixture()
		ord := newStatusOrder(t, merchantID, order.StatusConfirmed, true)

		filter := shared.Filter{Page: 2, PageSize: 10, OrderBy: "created_at", OrderDir: "asc"}
		f.orders.On("FindAllForMerchant", ctx, merchantID, filter).Return([]order.Order{*ord}, nil)
		f.orders.On("CountForMerchant", ctx, merchantID, filter).Return(int64(11), nil)

		out, total, err := f.service.List(ctx, merchantID, filter)
		require.NoError(t, err)
		require.Len(t, out, 1)
		assert.Equal(t, ord.ID, out[0].ID)
		assert.Equal(t, order.StatusConfirmed, out[0].Status)
		assert.Equal(t, int64(11), total)
	})
}

func TestStatusServiceGetByID(t *testing.T) {
	ctx := context.Background()
	merchantID := uuid.New()

	t.Run("returns the order with items", func(t *testing.T) {
		f := newStatusFixture()
		ord := newStatusOrder(t, merchantID, order.StatusPending, false)

		f.orders.On("FindByIDForMerchant", ctx, merchantID, ord.ID).Return(ord, nil)

		resp, err := f.service.GetByID(ctx, merchantID, ord.ID)
		require.NoError(t, err)
		assert.Equal(t, ord.ID, resp.ID)
		assert.Equal(t, "ORD-3001", resp.OrderNumber)
	})

	t.Run("propagates not found", func(t *testing.T) {
		f := newStatusFixture()
		orderID := uuid.New()

		f.orders.On("FindByIDForMerchant", ctx, merchantID, orderID).Return(nil, shared.ErrNotFound)

		_, err := f.service.GetByID(ctx, merchantID, orderID)
		require.Error(t, err)
	})
}

package returns

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestReturn(t *testing.T) *Return {
	t.Helper()
	r, err := NewReturn(uuid.New(), uuid.New(), uuid.New(), "damaged in transit")
	require.NoError(t, err)
	return r
}

func approval(s ApprovalStatus) *ApprovalStatus { return &s }
func receipt(s ReceiptStatus) *ReceiptStatus    { return &s }
func status(s Status) *Status                   { return &s }

func TestNewReturn(t *testing.T) {
	t.Run("creates return with all statuses pending", func(t *testing.T) {
		r := newTestReturn(t)

		assert.Equal(t, ApprovalPending, r.ApprovalStatus)
		assert.Equal(t, ReceiptPending, r.ReceiptStatus)
		assert.Equal(t, StatusPending, r.Status)
		assert.True(t, r.RefundAmount.IsZero())
		assert.Empty(t, r.Items)
	})

	t.Run("fails without a reason", func(t *testing.T) {
		_, err := NewReturn(uuid.New(), uuid.New(), uuid.New(), "")
		require.Error(t, err)
	})

	t.Run("fails without an order", func(t *testing.T) {
		_, err := NewReturn(uuid.New(), uuid.Nil, uuid.New(), "damaged")
		require.Error(t, err)
	})
}

func TestReturnAddItem(t *testing.T) {
	t.Run("accrues the refund amount", func(t *testing.T) {
		r := newTestReturn(t)

		require.NoError(t, r.AddItem(uuid.New(), uuid.New(), "SKU-1", decimal.NewFromInt(2), decimal.NewFromInt(80)))
		require.NoError(t, r.AddItem(uuid.New(), uuid.New(), "SKU-2", decimal.NewFromInt(1), decimal.NewFromInt(150)))

		require.Len(t, r.Items, 2)
		assert.Equal(t, "230", r.RefundAmount.String())
	})

	t.Run("rejects non-positive quantity", func(t *testing.T) {
		r := newTestReturn(t)
		require.Error(t, r.AddItem(uuid.New(), uuid.New(), "SKU-1", decimal.Zero, decimal.NewFromInt(10)))
	})

	t.Run("rejects negative amount", func(t *testing.T) {
		r := newTestReturn(t)
		require.Error(t, r.AddItem(uuid.New(), uuid.New(), "SKU-1", decimal.NewFromInt(1), decimal.NewFromInt(-10)))
	})
}

func TestStatusUpdateValidate(t *testing.T) {
	t.Run("rejects an empty update", func(t *testing.T) {
		require.Error(t, StatusUpdate{}.Validate())
	})

	t.Run("rejects unknown enum values", func(t *testing.T) {
		require.Error(t, StatusUpdate{Approval: approval("maybe")}.Validate())
		require.Error(t, StatusUpdate{Receipt: receipt("lost")}.Validate())
		require.Error(t, StatusUpdate{Status: status("done")}.Validate())
	})

	t.Run("accepts any valid combination", func(t *testing.T) {
		require.NoError(t, StatusUpdate{Approval: approval(ApprovalApproved)}.Validate())
		require.NoError(t, StatusUpdate{
			Approval: approval(ApprovalApproved),
			Receipt:  receipt(ReceiptReceived),
			Status:   status(StatusProcessed),
		}.Validate())
	})
}

func TestReturnApply(t *testing.T) {
	t.Run("receipt moving to received triggers restock", func(t *testing.T) {
		r := newTestReturn(t)

		restock, err := r.Apply(StatusUpdate{Receipt: receipt(ReceiptReceived)})
		require.NoError(t, err)
		assert.True(t, restock)
		assert.Equal(t, ReceiptReceived, r.ReceiptStatus)
	})

	t.Run("received to inspected does not re-trigger restock", func(t *testing.T) {
		r := newTestReturn(t)

		restock, err := r.Apply(StatusUpdate{Receipt: receipt(ReceiptReceived)})
		require.NoError(t, err)
		require.True(t, restock)

		restock, err = r.Apply(StatusUpdate{Receipt: receipt(ReceiptInspected)})
		require.NoError(t, err)
		assert.False(t, restock, "both states are restockable, nothing newly entered")
		assert.Equal(t, ReceiptInspected, r.ReceiptStatus)
	})

	t.Run("rejecting approval forces the receipt rejected", func(t *testing.T) {
		r := newTestReturn(t)

		restock, err := r.Apply(StatusUpdate{Approval: approval(ApprovalRejected)})
		require.NoError(t, err)
		assert.False(t, restock)
		assert.Equal(t, ApprovalRejected, r.ApprovalStatus)
		assert.Equal(t, ReceiptRejected, r.ReceiptStatus)
	})

	t.Run("explicit receipt wins over the rejection default", func(t *testing.T) {
		r := newTestReturn(t)

		restock, err := r.Apply(StatusUpdate{
			Approval: approval(ApprovalRejected),
			Receipt:  receipt(ReceiptReceived),
		})
		require.NoError(t, err)
		assert.True(t, restock)
		assert.Equal(t, ReceiptReceived, r.ReceiptStatus)
	})

	t.Run("rejected receipt never restocks", func(t *testing.T) {
		r := newTestReturn(t)

		restock, err := r.Apply(StatusUpdate{Receipt: receipt(ReceiptRejected)})
		require.NoError(t, err)
		assert.False(t, restock)
	})

	t.Run("updates the coarse status independently", func(t *testing.T) {
		r := newTestReturn(t)

		restock, err := r.Apply(StatusUpdate{Status: status(StatusProcessed)})
		require.NoError(t, err)
		assert.False(t, restock)
		assert.Equal(t, StatusProcessed, r.Status)
		assert.Equal(t, ReceiptPending, r.ReceiptStatus)
	})

	t.Run("propagates validation failures", func(t *testing.T) {
		r := newTestReturn(t)
		_, err := r.Apply(StatusUpdate{})
		require.Error(t, err)
	})
}

func TestPendingRestockItems(t *testing.T) {
	r := newTestReturn(t)
	require.NoError(t, r.AddItem(uuid.New(), uuid.New(), "SKU-1", decimal.NewFromInt(2), decimal.NewFromInt(80)))
	require.NoError(t, r.AddItem(uuid.New(), uuid.New(), "SKU-2", decimal.NewFromInt(1), decimal.NewFromInt(150)))

	require.Len(t, r.PendingRestockItems(), 2)

	r.Items[0].MarkRestocked()

	pending := r.PendingRestockItems()
	require.Len(t, pending, 1)
	assert.Equal(t, "SKU-2", pending[0].SKU)
}

func TestReceiptStatusIsRestockable(t *testing.T) {
	assert.True(t, ReceiptReceived.IsRestockable())
	assert.True(t, ReceiptInspected.IsRestockable())
	assert.False(t, ReceiptPending.IsRestockable())
	assert.False(t, ReceiptRejected.IsRestockable())
}

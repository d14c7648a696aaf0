package order

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAllowed(t *testing.T) {
	t.Run("no role may move any status back to pending", func(t *testing.T) {
		roles := []Role{RoleAdmin, RoleEmployee, RoleDelivery, RoleShipment}
		froms := []Status{StatusConfirmed, StatusAssigned, StatusShipped}
		for _, role := range roles {
			for _, from := range froms {
				assert.False(t, Allowed(role, from, StatusPending),
					"role %s must not move %s back to pending", role, from)
			}
		}
	})

	t.Run("terminal statuses have no outgoing transitions", func(t *testing.T) {
		terminals := []Status{StatusDelivered, StatusReturned, StatusCancelled}
		targets := []Status{StatusConfirmed, StatusAssigned, StatusShipped, StatusDelivered, StatusReturned, StatusCancelled}
		for _, from := range terminals {
			for _, to := range targets {
				if from == to {
					continue
				}
				assert.False(t, Allowed(RoleAdmin, from, to),
					"terminal status %s must not transition to %s even for admin", from, to)
			}
		}
	})

	t.Run("self transitions are rejected", func(t *testing.T) {
		assert.False(t, Allowed(RoleAdmin, StatusConfirmed, StatusConfirmed))
	})

	t.Run("admin may move any non-terminal status anywhere else", func(t *testing.T) {
		assert.True(t, Allowed(RoleAdmin, StatusPending, StatusConfirmed))
		assert.True(t, Allowed(RoleAdmin, StatusPending, StatusCancelled))
		assert.True(t, Allowed(RoleAdmin, StatusPending, StatusAssigned))
		assert.True(t, Allowed(RoleAdmin, StatusConfirmed, StatusDelivered))
		assert.True(t, Allowed(RoleAdmin, StatusShipped, StatusConfirmed))
		assert.True(t, Allowed(RoleAdmin, StatusAssigned, StatusReturned))
	})

	t.Run("shipment role owns confirmed/assigned to shipped", func(t *testing.T) {
		assert.True(t, Allowed(RoleShipment, StatusConfirmed, StatusShipped))
		assert.True(t, Allowed(RoleShipment, StatusAssigned, StatusShipped))

		assert.False(t, Allowed(RoleShipment, StatusShipped, StatusDelivered))
		assert.False(t, Allowed(RoleShipment, StatusPending, StatusConfirmed))
		assert.False(t, Allowed(RoleShipment, StatusConfirmed, StatusCancelled))
	})

	t.Run("delivery role owns shipped/assigned to delivered", func(t *testing.T) {
		assert.True(t, Allowed(RoleDelivery, StatusShipped, StatusDelivered))
		assert.True(t, Allowed(RoleDelivery, StatusAssigned, StatusDelivered))

		assert.False(t, Allowed(RoleDelivery, StatusConfirmed, StatusShipped))
		assert.False(t, Allowed(RoleDelivery, StatusPending, StatusConfirmed))
	})

	t.Run("employee walks the forward sequence only", func(t *testing.T) {
		assert.True(t, Allowed(RoleEmployee, StatusPending, StatusConfirmed))
		assert.True(t, Allowed(RoleEmployee, StatusConfirmed, StatusShipped))
		assert.True(t, Allowed(RoleEmployee, StatusShipped, StatusDelivered))

		assert.False(t, Allowed(RoleEmployee, StatusShipped, StatusConfirmed))
		assert.False(t, Allowed(RoleEmployee, StatusPending, StatusShipped))
		assert.False(t, Allowed(RoleEmployee, StatusConfirmed, StatusCancelled))
		assert.False(t, Allowed(RoleEmployee, StatusAssigned, StatusShipped))
	})

	t.Run("unknown role is denied everything", func(t *testing.T) {
		assert.False(t, Allowed(Role("auditor"), StatusPending, StatusConfirmed))
	})
}

func TestAllowedTargets(t *testing.T) {
	tests := []struct {
		from Status
		want []Status
	}{
		{StatusPending, []Status{StatusConfirmed}},
		{StatusConfirmed, []Status{StatusShipped}},
		{StatusAssigned, []Status{StatusShipped, StatusDelivered}},
		{StatusShipped, []Status{StatusDelivered}},
		{StatusDelivered, []Status{}},
		{StatusReturned, []Status{}},
		{StatusCancelled, []Status{}},
	}

	for _, tt := range tests {
		t.Run(tt.from.String(), func(t *testing.T) {
			assert.Equal(t, tt.want, AllowedTargets(tt.from))
		})
	}
}

func TestAllowedTargetStrings(t *testing.T) {
	assert.Equal(t, []string{"shipped", "delivered"}, AllowedTargetStrings(StatusAssigned))
	assert.Empty(t, AllowedTargetStrings(StatusDelivered))
}

func TestStatusIsTerminal(t *testing.T) {
	assert.True(t, StatusDelivered.IsTerminal())
	assert.True(t, StatusReturned.IsTerminal())
	assert.True(t, StatusCancelled.IsTerminal())

	assert.False(t, StatusPending.IsTerminal())
	assert.False(t, StatusConfirmed.IsTerminal())
	assert.False(t, StatusAssigned.IsTerminal())
	assert.False(t, StatusShipped.IsTerminal())
}

func TestStatusIsValid(t *testing.T) {
	for _, s := range []Status{StatusPending, StatusConfirmed, StatusAssigned, StatusShipped, StatusDelivered, StatusReturned, StatusCancelled} {
		assert.True(t, s.IsValid())
	}
	assert.False(t, Status("archived").IsValid())
	assert.False(t, Status("").IsValid())
}

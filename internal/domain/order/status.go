package order

// Status represents the lifecycle state of an order
type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusAssigned  Status = "assigned"
	StatusShipped   Status = "shipped"
	StatusDelivered Status = "delivered"
	StatusReturned  Status = "returned"
	StatusCancelled Status = "cancelled"
)

// IsValid checks if the status is a recognized order status
func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusAssigned, StatusShipped,
		StatusDelivered, StatusReturned, StatusCancelled:
		return true
	}
	return false
}

// String returns the string representation of the status
func (s Status) String() string {
	return string(s)
}

// IsTerminal returns true if no outgoing transition is permitted for any role
func (s Status) IsTerminal() bool {
	switch s {
	case StatusDelivered, StatusReturned, StatusCancelled:
		return true
	}
	return false
}

// PaymentStatus represents the settlement state of an order's payment
type PaymentStatus string

const (
	PaymentPending  PaymentStatus = "pending"
	PaymentPaid     PaymentStatus = "paid"
	PaymentFailed   PaymentStatus = "failed"
	PaymentRefunded PaymentStatus = "refunded"
)

// IsValid checks if the payment status is recognized
func (s PaymentStatus) IsValid() bool {
	switch s {
	case PaymentPending, PaymentPaid, PaymentFailed, PaymentRefunded:
		return true
	}
	return false
}

// String returns the string representation of the payment status
func (s PaymentStatus) String() string {
	return string(s)
}

// Role represents the actor role performing an order operation
type Role string

const (
	RoleAdmin    Role = "admin"
	RoleEmployee Role = "employee"
	RoleDelivery Role = "delivery"
	RoleShipment Role = "shipment"
)

// IsValid checks if the role is recognized
func (r Role) IsValid() bool {
	switch r {
	case RoleAdmin, RoleEmployee, RoleDelivery, RoleShipment:
		return true
	}
	return false
}

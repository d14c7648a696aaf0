package order

import "github.com/google/uuid"

// Actor identifies who is performing an operation. It is resolved by the
// request layer from an authenticated session and passed down as plain data.
type Actor struct {
	ID   uuid.UUID
	Role Role
}

// IsAdmin returns true for the administrative role
func (a Actor) IsAdmin() bool {
	return a.Role == RoleAdmin
}

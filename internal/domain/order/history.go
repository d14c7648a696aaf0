package order

import (
	"time"

	"github.com/google/uuid"
)

// HistoryEntryType discriminates what an audit entry records. Status changes
// and assignments are orthogonal axes and must not be conflated in
// status-oriented views.
type HistoryEntryType string

const (
	EntryStatusChanged HistoryEntryType = "status_changed"
	EntryAssigned      HistoryEntryType = "assigned"
)

// HistoryEntry is an append-only audit record of an order mutation
type HistoryEntry struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrderID    uuid.UUID `gorm:"type:uuid;not null;index"`
	MerchantID uuid.UUID `gorm:"type:uuid;not null;index"`
	EntryType  HistoryEntryType `gorm:"type:varchar(24);not null"`
	FromStatus Status           `gorm:"type:varchar(16)"`
	ToStatus   Status           `gorm:"type:varchar(16)"`
	EmployeeID *uuid.UUID       `gorm:"type:uuid"` // set only for assignment entries
	ActorID    uuid.UUID        `gorm:"type:uuid;not null"`
	CreatedAt  time.Time
}

// TableName returns the database table name
func (HistoryEntry) TableName() string { return "order_history" }

// NewStatusChangedEntry records a status transition in the audit trail
func NewStatusChangedEntry(o *Order, from, to Status, actorID uuid.UUID) *HistoryEntry {
	return &HistoryEntry{
		ID:         uuid.New(),
		OrderID:    o.ID,
		MerchantID: o.MerchantID,
		EntryType:  EntryStatusChanged,
		FromStatus: from,
		ToStatus:   to,
		ActorID:    actorID,
		CreatedAt:  time.Now(),
	}
}

// NewAssignedEntry records an assignment event. The order status is carried
// unchanged so status-transition views can filter these out by entry type.
func NewAssignedEntry(o *Order, employeeID, actorID uuid.UUID) *HistoryEntry {
	return &HistoryEntry{
		ID:         uuid.New(),
		OrderID:    o.ID,
		MerchantID: o.MerchantID,
		EntryType:  EntryAssigned,
		FromStatus: o.Status,
		ToStatus:   o.Status,
		EmployeeID: &employeeID,
		ActorID:    actorID,
		CreatedAt:  time.Now(),
	}
}

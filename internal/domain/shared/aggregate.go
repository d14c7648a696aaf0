package shared

import (
	"github.com/google/uuid"
)

// AggregateRoot is the base interface for all aggregate roots
type AggregateRoot interface {
	Entity
	AddDomainEvent(event DomainEvent)
	GetDomainEvents() []DomainEvent
	ClearDomainEvents()
}

// BaseAggregateRoot provides common fields for aggregate roots
type BaseAggregateRoot struct {
	BaseEntity
	domainEvents []DomainEvent `gorm:"-"`
}

// AddDomainEvent adds a domain event to be published after commit
func (a *BaseAggregateRoot) AddDomainEvent(event DomainEvent) {
	a.domainEvents = append(a.domainEvents, event)
}

// GetDomainEvents returns all pending domain events
func (a *BaseAggregateRoot) GetDomainEvents() []DomainEvent {
	return a.domainEvents
}

// ClearDomainEvents clears the pending domain events
func (a *BaseAggregateRoot) ClearDomainEvents() {
	a.domainEvents = nil
}

// NewBaseAggregateRoot creates a new base aggregate root
func NewBaseAggregateRoot() BaseAggregateRoot {
	return BaseAggregateRoot{
		BaseEntity:   NewBaseEntity(),
		domainEvents: make([]DomainEvent, 0),
	}
}

// MerchantAggregateRoot extends BaseAggregateRoot with merchant (tenant) scoping.
// Every aggregate in the system is owned by exactly one merchant; repositories
// must always filter by MerchantID.
type MerchantAggregateRoot struct {
	BaseAggregateRoot
	MerchantID uuid.UUID `gorm:"type:uuid;not null;index"`
}

// NewMerchantAggregateRoot creates a new merchant-scoped aggregate root
func NewMerchantAggregateRoot(merchantID uuid.UUID) MerchantAggregateRoot {
	return MerchantAggregateRoot{
		BaseAggregateRoot: NewBaseAggregateRoot(),
		MerchantID:        merchantID,
	}
}

package billing

import (
	"time"

	"github.com/google/uuid"
	"github.com/oms/backend/internal/domain/shared"
)

// Profile is a merchant's billing configuration: display prefix, tax
// jurisdiction and the next-invoice-number counter. The counter is only ever
// advanced through the repository's atomic allocation, never through Save.
type Profile struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey"`
	MerchantID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex"`
	InvoicePrefix string
	GSTIN         string
	Jurisdiction  string // tax-authority region code of the merchant
	NextNumber    int64  `gorm:"not null;default:1"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// TableName returns the database table name
func (Profile) TableName() string { return "billing_profiles" }

// NewProfile creates a billing profile for a merchant
func NewProfile(merchantID uuid.UUID, invoicePrefix, gstin, jurisdiction string) (*Profile, error) {
	if merchantID == uuid.Nil {
		return nil, shared.NewDomainError(shared.CodeInvalidInput, "Merchant ID cannot be empty")
	}
	if invoicePrefix == "" {
		return nil, shared.NewDomainError(shared.CodeInvalidInput, "Invoice prefix cannot be empty")
	}

	now := time.Now()
	return &Profile{
		ID:            uuid.New(),
		MerchantID:    merchantID,
		InvoicePrefix: invoicePrefix,
		GSTIN:         gstin,
		Jurisdiction:  jurisdiction,
		NextNumber:    1,
		CreatedAt:     now,
		UpdatedAt:     now,
	}, nil
}

// Sequence is the result of an atomic invoice-number allocation
type Sequence struct {
	Number       int64
	Prefix       string
	Jurisdiction string
}

package billing

import (
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DefaultTaxRatePct is applied when a line carries no tax rate
var DefaultTaxRatePct = decimal.NewFromInt(18)

var two = decimal.NewFromInt(2)
var hundred = decimal.NewFromInt(100)

// TaxLine is one line item entering the tax calculation
type TaxLine struct {
	OrderItemID   uuid.UUID
	ProductID     uuid.UUID
	SKU           string
	HSNCode       string
	Quantity      decimal.Decimal
	UnitPrice     decimal.Decimal
	ExtendedPrice decimal.Decimal
	TaxRatePct    decimal.Decimal
}

// TaxedLine is a line item with its computed tax split. CGST/SGST and IGST
// are mutually exclusive per line.
type TaxedLine struct {
	TaxLine
	GSTAmount decimal.Decimal
	CGST      decimal.Decimal
	SGST      decimal.Decimal
	IGST      decimal.Decimal
}

// TaxBreakdown is the aggregate result of a tax calculation
type TaxBreakdown struct {
	Lines    []TaxedLine
	Subtotal decimal.Decimal
	CGST     decimal.Decimal
	SGST     decimal.Decimal
	IGST     decimal.Decimal
	TotalTax decimal.Decimal
	Discount decimal.Decimal
	Total    decimal.Decimal
	// IntraJurisdiction is true when merchant and customer share a
	// jurisdiction and the split form (CGST+SGST) applies
	IntraJurisdiction bool
}

// SameJurisdiction reports whether two jurisdiction codes refer to the same
// tax region. Codes are compared trimmed and case-insensitively; a missing
// code on either side is treated as inter-jurisdiction.
func SameJurisdiction(merchant, customer string) bool {
	m := strings.TrimSpace(merchant)
	c := strings.TrimSpace(customer)
	if m == "" || c == "" {
		return false
	}
	return strings.EqualFold(m, c)
}

// CalculateGST computes the CGST/SGST or IGST split for a set of line items.
// It is pure and deterministic for identical inputs, which the invoice issuer
// relies on for reproducible totals.
//
// Per line: gst = extendedPrice * rate / 100, with rate defaulting to 18%
// when missing or zero. Intra-jurisdiction splits gst evenly into CGST and
// SGST; inter-jurisdiction assigns the whole amount to IGST.
func CalculateGST(lines []TaxLine, merchantJurisdiction, customerJurisdiction string, discount decimal.Decimal) TaxBreakdown {
	intra := SameJurisdiction(merchantJurisdiction, customerJurisdiction)

	breakdown := TaxBreakdown{
		Lines:             make([]TaxedLine, 0, len(lines)),
		Subtotal:          decimal.Zero,
		CGST:              decimal.Zero,
		SGST:              decimal.Zero,
		IGST:              decimal.Zero,
		TotalTax:          decimal.Zero,
		Discount:          discount,
		IntraJurisdiction: intra,
	}

	for _, line := range lines {
		rate := line.TaxRatePct
		if rate.LessThanOrEqual(decimal.Zero) {
			rate = DefaultTaxRatePct
		}

		gst := line.ExtendedPrice.Mul(rate).Div(hundred)
		taxed := TaxedLine{TaxLine: line, GSTAmount: gst}
		if intra {
			half := gst.Div(two)
			taxed.CGST = half
			taxed.SGST = half
		} else {
			taxed.IGST = gst
		}

		breakdown.Lines = append(breakdown.Lines, taxed)
		breakdown.Subtotal = breakdown.Subtotal.Add(line.ExtendedPrice)
		breakdown.CGST = breakdown.CGST.Add(taxed.CGST)
		breakdown.SGST = breakdown.SGST.Add(taxed.SGST)
		breakdown.IGST = breakdown.IGST.Add(taxed.IGST)
		breakdown.TotalTax = breakdown.TotalTax.Add(gst)
	}

	breakdown.Total = breakdown.Subtotal.Add(breakdown.TotalTax).Sub(discount)

	return breakdown
}

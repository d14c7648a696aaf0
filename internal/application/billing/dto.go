package billing

import (
	"time"

	"github.com/google/uuid"
	"github.com/oms/backend/internal/domain/billing"
)

// InvoiceItemResponse is the API shape of an invoice line item
type InvoiceItemResponse struct {
	ID            uuid.UUID `json:"id"`
	OrderItemID   uuid.UUID `json:"order_item_id"`
	ProductID     uuid.UUID `json:"product_id"`
	SKU           string    `json:"sku"`
	HSNCode       string    `json:"hsn_code"`
	TaxRatePct    string    `json:"tax_rate_pct"`
	Quantity      string    `json:"quantity"`
	UnitPrice     string    `json:"unit_price"`
	ExtendedPrice string    `json:"extended_price"`
	CGST          string    `json:"cgst"`
	SGST          string    `json:"sgst"`
	IGST          string    `json:"igst"`
}

// InvoiceResponse is the API shape of an invoice
type InvoiceResponse struct {
	ID            uuid.UUID             `json:"id"`
	OrderID       uuid.UUID             `json:"order_id"`
	Number        int64                 `json:"number"`
	DisplayNumber string                `json:"display_number"`
	Subtotal      string                `json:"subtotal"`
	CGST          string                `json:"cgst"`
	SGST          string                `json:"sgst"`
	IGST          string                `json:"igst"`
	Discount      string                `json:"discount"`
	Total         string                `json:"total"`
	DueDate       time.Time             `json:"due_date"`
	Notes         string                `json:"notes,omitempty"`
	Status        billing.InvoiceStatus `json:"status"`
	Method        string                `json:"method,omitempty"`
	Items         []InvoiceItemResponse `json:"items"`
	CreatedAt     time.Time             `json:"created_at"`
}

// ToInvoiceResponse maps an invoice aggregate to its API shape
func ToInvoiceResponse(inv *billing.Invoice) InvoiceResponse {
	items := make([]InvoiceItemResponse, 0, len(inv.Items))
	for _, it := range inv.Items {
		items = append(items, InvoiceItemResponse{
			ID:            it.ID,
			OrderItemID:   it.OrderItemID,
			ProductID:     it.ProductID,
			SKU:           it.SKU,
			HSNCode:       it.HSNCode,
			TaxRatePct:    it.TaxRatePct.StringFixed(2),
			Quantity:      it.Quantity.String(),
			UnitPrice:     it.UnitPrice.StringFixed(2),
			ExtendedPrice: it.ExtendedPrice.StringFixed(2),
			CGST:          it.CGST.StringFixed(2),
			SGST:          it.SGST.StringFixed(2),
			IGST:          it.IGST.StringFixed(2),
		})
	}

	return InvoiceResponse{
		ID:            inv.ID,
		OrderID:       inv.OrderID,
		Number:        inv.Number,
		DisplayNumber: inv.DisplayNumber(),
		Subtotal:      inv.Subtotal.StringFixed(2),
		CGST:          inv.CGST.StringFixed(2),
		SGST:          inv.SGST.StringFixed(2),
		IGST:          inv.IGST.StringFixed(2),
		Discount:      inv.Discount.StringFixed(2),
		Total:         inv.Total.StringFixed(2),
		DueDate:       inv.DueDate,
		Notes:         inv.Notes,
		Status:        inv.Status,
		Method:        inv.Method,
		Items:         items,
		CreatedAt:     inv.CreatedAt,
	}
}

package handler

import (
	"time"

	"github.com/gin-gonic/gin"
	appbilling "github.com/oms/backend/internal/application/billing"
	"github.com/shopspring/decimal"
)

// InvoiceHandler exposes invoice operations over HTTP. Invoices are normally
// issued by settlement; the create endpoint covers manual issuance for orders
// settled outside the system.
type InvoiceHandler struct {
	BaseHandler
	invoices *appbilling.InvoiceService
}

// NewInvoiceHandler creates a new InvoiceHandler
func NewInvoiceHandler(invoices *appbilling.InvoiceService) *InvoiceHandler {
	return &InvoiceHandler{invoices: invoices}
}

// CreateInvoiceRequest is the payload for manual invoice issuance
type CreateInvoiceRequest struct {
	OrderID  string     `json:"order_id" binding:"required,uuid"`
	DueDate  *time.Time `json:"due_date"`
	Notes    string     `json:"notes"`
	Discount string     `json:"discount"`
}

// Create handles POST /invoices
func (h *InvoiceHandler) Create(c *gin.Context) {
	merchantID, err := getMerchantID(c)
	if err != nil {
		h.Unauthorized(c, err.Error())
		return
	}

	var req CreateInvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body")
		return
	}
	orderID, err := parseUUID(req.OrderID)
	if err != nil {
		h.BadRequest(c, "Invalid order ID")
		return
	}

	create := appbilling.CreateInvoiceRequest{Notes: req.Notes}
	if req.DueDate != nil {
		create.DueDate = *req.DueDate
	} else {
		create.DueDate = time.Now().AddDate(0, 0, 30)
	}
	if req.Discount != "" {
		discount, err := decimal.NewFromString(req.Discount)
		if err != nil {
			h.BadRequest(c, "Invalid discount")
			return
		}
		create.Discount = discount
	}

	resp, err := h.invoices.Create(c.Request.Context(), merchantID, orderID, create)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, resp)
}

// Get handles GET /invoices/:id
func (h *InvoiceHandler) Get(c *gin.Context) {
	merchantID, err := getMerchantID(c)
	if err != nil {
		h.Unauthorized(c, err.Error())
		return
	}
	invoiceID, err := parseUUIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid invoice ID")
		return
	}

	resp, err := h.invoices.GetByID(c.Request.Context(), merchantID, invoiceID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// GetByOrder handles GET /orders/:id/invoice
func (h *InvoiceHandler) GetByOrder(c *gin.Context) {
	merchantID, err := getMerchantID(c)
	if err != nil {
		h.Unauthorized(c, err.Error())
		return
	}
	orderID, err := parseUUIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid order ID")
		return
	}

	resp, err := h.invoices.GetByOrder(c.Request.Context(), merchantID, orderID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

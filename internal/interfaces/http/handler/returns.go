package handler

import (
	"github.com/gin-gonic/gin"
	appreturns "github.com/oms/backend/internal/application/returns"
	"github.com/oms/backend/internal/domain/returns"
	"github.com/shopspring/decimal"
)

// ReturnHandler exposes return operations over HTTP
type ReturnHandler struct {
	BaseHandler
	service *appreturns.Service
}

// NewReturnHandler creates a new ReturnHandler
func NewReturnHandler(service *appreturns.Service) *ReturnHandler {
	return &ReturnHandler{service: service}
}

// FileReturnItemRequest is one line of a return filing
type FileReturnItemRequest struct {
	ProductID string `json:"product_id" binding:"required,uuid"`
	Quantity  string `json:"quantity" binding:"required"`
	Amount    string `json:"amount" binding:"required"`
}

// FileReturnRequest is the payload for filing a return against an order
type FileReturnRequest struct {
	CustomerID string                  `json:"customer_id" binding:"required,uuid"`
	Reason     string                  `json:"reason" binding:"required"`
	Items      []FileReturnItemRequest `json:"items" binding:"required,min=1,dive"`
}

// UpdateReturnStatusRequest carries the optional status fields of an update.
// Absent fields are left untouched.
type UpdateReturnStatusRequest struct {
	ApprovalStatus *string `json:"approval_status"`
	ReceiptStatus  *string `json:"receipt_status"`
	Status         *string `json:"status"`
}

// File handles POST /orders/:id/returns
func (h *ReturnHandler) File(c *gin.Context) {
	merchantID, err := getMerchantID(c)
	if err != nil {
		h.Unauthorized(c, err.Error())
		return
	}
	actor, err := getActor(c)
	if err != nil {
		h.Unauthorized(c, err.Error())
		return
	}
	orderID, err := parseUUIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid order ID")
		return
	}

	var req FileReturnRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body")
		return
	}

	customerID, err := parseUUID(req.CustomerID)
	if err != nil {
		h.BadRequest(c, "Invalid customer ID")
		return
	}

	cmd := appreturns.FileReturnCommand{
		CustomerID: customerID,
		Reason:     req.Reason,
		Items:      make([]appreturns.FileReturnItem, 0, len(req.Items)),
	}
	for _, item := range req.Items {
		productID, err := parseUUID(item.ProductID)
		if err != nil {
			h.BadRequest(c, "Invalid product ID")
			return
		}
		quantity, err := decimal.NewFromString(item.Quantity)
		if err != nil {
			h.BadRequest(c, "Invalid quantity")
			return
		}
		amount, err := decimal.NewFromString(item.Amount)
		if err != nil {
			h.BadRequest(c, "Invalid amount")
			return
		}
		cmd.Items = append(cmd.Items, appreturns.FileReturnItem{
			ProductID: productID,
			Quantity:  quantity,
			Amount:    amount,
		})
	}

	resp, err := h.service.File(c.Request.Context(), merchantID, orderID, actor, cmd)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, resp)
}

// UpdateStatus handles PATCH /returns/:id/status
func (h *ReturnHandler) UpdateStatus(c *gin.Context) {
	merchantID, err := getMerchantID(c)
	if err != nil {
		h.Unauthorized(c, err.Error())
		return
	}
	actor, err := getActor(c)
	if err != nil {
		h.Unauthorized(c, err.Error())
		return
	}
	returnID, err := parseUUIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid return ID")
		return
	}

	var req UpdateReturnStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body")
		return
	}

	var update returns.StatusUpdate
	if req.ApprovalStatus != nil {
		approval := returns.ApprovalStatus(*req.ApprovalStatus)
		update.Approval = &approval
	}
	if req.ReceiptStatus != nil {
		receipt := returns.ReceiptStatus(*req.ReceiptStatus)
		update.Receipt = &receipt
	}
	if req.Status != nil {
		status := returns.Status(*req.Status)
		update.Status = &status
	}

	result, err := h.service.UpdateStatus(c.Request.Context(), merchantID, returnID, actor, update)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}

// Get handles GET /returns/:id
func (h *ReturnHandler) Get(c *gin.Context) {
	merchantID, err := getMerchantID(c)
	if err != nil {
		h.Unauthorized(c, err.Error())
		return
	}
	returnID, err := parseUUIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid return ID")
		return
	}

	resp, err := h.service.GetByID(c.Request.Context(), merchantID, returnID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// GetByOrder handles GET /orders/:id/return
func (h *ReturnHandler) GetByOrder(c *gin.Context) {
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

	resp, err := h.service.GetByOrder(c.Request.Context(), merchantID, orderID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

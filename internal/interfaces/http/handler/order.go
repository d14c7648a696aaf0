package handler

import (
	"github.com/gin-gonic/gin"
	apporder "github.com/oms/backend/internal/application/order"
	"github.com/oms/backend/internal/domain/order"
	"github.com/oms/backend/internal/domain/shared"
	"github.com/oms/backend/internal/interfaces/http/dto"
	"github.com/shopspring/decimal"
)

// OrderHandler exposes order lifecycle operations over HTTP
type OrderHandler struct {
	BaseHandler
	status     *apporder.StatusService
	settlement *apporder.SettlementService
	assignment *apporder.AssignmentService
}

// NewOrderHandler creates a new OrderHandler
func NewOrderHandler(status *apporder.StatusService, settlement *apporder.SettlementService, assignment *apporder.AssignmentService) *OrderHandler {
	return &OrderHandler{
		status:     status,
		settlement: settlement,
		assignment: assignment,
	}
}

// ChangeStatusRequest is the payload for a direct status change
type ChangeStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// SettleRequest is the payload for a payment settlement
type SettleRequest struct {
	Status       string  `json:"status" binding:"required"`
	Method       string  `json:"method"`
	Amount       string  `json:"amount"`
	NewUnitPrice *string `json:"new_unit_price"`
}

// AssignRequest is the payload for assigning a handling employee
type AssignRequest struct {
	EmployeeID string `json:"employee_id" binding:"required,uuid"`
}

// ListOrdersRequest carries the order list query parameters
type ListOrdersRequest struct {
	dto.ListRequest
	Status        string `form:"status"`
	PaymentStatus string `form:"payment_status"`
	CustomerID    string `form:"customer_id"`
}

// Get handles GET /orders/:id
func (h *OrderHandler) Get(c *gin.Context) {
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

	resp, err := h.status.GetByID(c.Request.Context(), merchantID, orderID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// List handles GET /orders
func (h *OrderHandler) List(c *gin.Context) {
	merchantID, err := getMerchantID(c)
	if err != nil {
		h.Unauthorized(c, err.Error())
		return
	}

	req := ListOrdersRequest{ListRequest: dto.DefaultListRequest()}
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BadRequest(c, "Invalid query parameters")
		return
	}

	filter := shared.Filter{
		Page:     req.Page,
		PageSize: req.PageSize,
		OrderBy:  req.OrderBy,
		OrderDir: req.OrderDir,
		Filters:  make(map[string]interface{}),
	}
	if req.Status != "" {
		filter.Filters["status"] = req.Status
	}
	if req.PaymentStatus != "" {
		filter.Filters["payment_status"] = req.PaymentStatus
	}
	if req.CustomerID != "" {
		filter.Filters["customer_id"] = req.CustomerID
	}

	orders, total, err := h.status.List(c.Request.Context(), merchantID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, orders, total, filter.Page, filter.PageSize)
}

// ChangeStatus handles PATCH /orders/:id/status
func (h *OrderHandler) ChangeStatus(c *gin.Context) {
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

	var req ChangeStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body")
		return
	}

	result, err := h.status.ChangeStatus(c.Request.Context(), merchantID, orderID, actor, order.Status(req.Status))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}

// Settle handles POST /orders/:id/settle
func (h *OrderHandler) Settle(c *gin.Context) {
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

	var req SettleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body")
		return
	}

	cmd := apporder.SettleCommand{
		Status: order.PaymentStatus(req.Status),
		Method: req.Method,
	}
	if req.Amount != "" {
		amount, err := decimal.NewFromString(req.Amount)
		if err != nil {
			h.BadRequest(c, "Invalid amount")
			return
		}
		cmd.Amount = amount
	}
	if req.NewUnitPrice != nil {
		price, err := decimal.NewFromString(*req.NewUnitPrice)
		if err != nil {
			h.BadRequest(c, "Invalid unit price")
			return
		}
		cmd.NewUnitPrice = &price
	}

	result, err := h.settlement.Settle(c.Request.Context(), merchantID, orderID, actor, cmd)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}

// Assign handles POST /orders/:id/assign
func (h *OrderHandler) Assign(c *gin.Context) {
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

	var req AssignRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body")
		return
	}
	employeeID, err := parseUUID(req.EmployeeID)
	if err != nil {
		h.BadRequest(c, "Invalid employee ID")
		return
	}

	resp, err := h.assignment.Assign(c.Request.Context(), merchantID, orderID, actor, employeeID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// History handles GET /orders/:id/history
func (h *OrderHandler) History(c *gin.Context) {
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

	entries, err := h.status.History(c.Request.Context(), merchantID, orderID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, entries)
}

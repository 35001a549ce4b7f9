package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"fixserve_backend/internal/orders/repository"
	"fixserve_backend/internal/orders/service"
	"fixserve_backend/internal/orders/transport"
	"fixserve_backend/platform/httpkit"
	"fixserve_backend/platform/validator"
)

const (
	msgInvalidRequest   = "invalid request"
	msgValidationFailed = "validation failed"
)

// Handler handles HTTP requests for repair orders.
type Handler struct {
	svc *service.Service
	val *validator.Validator
}

// New creates a new orders handler.
func New(svc *service.Service, val *validator.Validator) *Handler {
	return &Handler{svc: svc, val: val}
}

// RegisterRoutes registers the order routes.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("", h.Create)
	rg.GET("/customer/:customerId", h.ListByCustomer)
	rg.GET("/technician/:technicianId/unaccepted", h.ListUnaccepted)
	rg.PUT("/:orderId/accept", h.Accept)
	rg.PUT("/:orderId/decline", h.Decline)
	rg.PUT("/:orderId/complete", h.Complete)

	rg.GET("/:orderId/status", h.GetStatus)
	rg.POST("/:orderId/status/arrived", h.MarkArrived)
	rg.POST("/:orderId/status/cost-verification", h.SubmitQuote)
	rg.POST("/:orderId/status/accept-cost", h.AcceptCost)
	rg.POST("/:orderId/status/reject-cost", h.RejectCost)
	rg.POST("/:orderId/status/payment", h.SettlePayment)
}

// Create handles POST /api/v1/orders
func (h *Handler) Create(c *gin.Context) {
	var req transport.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return
	}

	result, err := h.svc.CreateOrder(c.Request.Context(), req)
	if httpkit.HandleError(c, err) {
		return
	}

	httpkit.JSON(c, http.StatusCreated, result)
}

// ListByCustomer handles GET /api/v1/orders/customer/:customerId
func (h *Handler) ListByCustomer(c *gin.Context) {
	customerID, err := uuid.Parse(c.Param("customerId"))
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}

	result, err := h.svc.ListByCustomer(c.Request.Context(), customerID)
	if httpkit.HandleError(c, err) {
		return
	}

	httpkit.OK(c, result)
}

// ListUnaccepted handles GET /api/v1/orders/technician/:technicianId/unaccepted
func (h *Handler) ListUnaccepted(c *gin.Context) {
	technicianID, err := uuid.Parse(c.Param("technicianId"))
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}

	result, err := h.svc.ListUnacceptedByTechnician(c.Request.Context(), technicianID)
	if httpkit.HandleError(c, err) {
		return
	}

	httpkit.OK(c, result)
}

// Accept handles PUT /api/v1/orders/:orderId/accept
func (h *Handler) Accept(c *gin.Context) {
	orderID, technicianID, ok := h.orderAction(c)
	if !ok {
		return
	}

	result, err := h.svc.Accept(c.Request.Context(), orderID, technicianID)
	if httpkit.HandleError(c, err) {
		return
	}

	httpkit.OK(c, result)
}

// Decline handles PUT /api/v1/orders/:orderId/decline
func (h *Handler) Decline(c *gin.Context) {
	orderID, technicianID, ok := h.orderAction(c)
	if !ok {
		return
	}

	result, err := h.svc.Decline(c.Request.Context(), orderID, technicianID)
	if httpkit.HandleError(c, err) {
		return
	}

	httpkit.OK(c, result)
}

// Complete handles PUT /api/v1/orders/:orderId/complete
func (h *Handler) Complete(c *gin.Context) {
	orderID, technicianID, ok := h.orderAction(c)
	if !ok {
		return
	}

	result, err := h.svc.Complete(c.Request.Context(), orderID, technicianID)
	if httpkit.HandleError(c, err) {
		return
	}

	httpkit.OK(c, result)
}

// GetStatus handles GET /api/v1/orders/:orderId/status
func (h *Handler) GetStatus(c *gin.Context) {
	orderID, err := uuid.Parse(c.Param("orderId"))
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}

	result, err := h.svc.GetStatus(c.Request.Context(), orderID)
	if httpkit.HandleError(c, err) {
		return
	}

	httpkit.OK(c, result)
}

// MarkArrived handles POST /api/v1/orders/:orderId/status/arrived
func (h *Handler) MarkArrived(c *gin.Context) {
	orderID, err := uuid.Parse(c.Param("orderId"))
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}

	result, err := h.svc.MarkArrived(c.Request.Context(), orderID)
	if httpkit.HandleError(c, err) {
		return
	}

	httpkit.OK(c, result)
}

// SubmitQuote handles POST /api/v1/orders/:orderId/status/cost-verification
func (h *Handler) SubmitQuote(c *gin.Context) {
	orderID, err := uuid.Parse(c.Param("orderId"))
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}

	var req transport.SubmitQuoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return
	}

	lines := make([]repository.RepairLine, 0, len(req.RepairDetails))
	for _, line := range req.RepairDetails {
		lines = append(lines, repository.RepairLine{
			Description: line.Description,
			LineCost:    line.LineCost,
		})
	}

	result, err := h.svc.SubmitQuote(c.Request.Context(), orderID, req.Cost, lines)
	if httpkit.HandleError(c, err) {
		return
	}

	httpkit.OK(c, result)
}

// AcceptCost handles POST /api/v1/orders/:orderId/status/accept-cost
func (h *Handler) AcceptCost(c *gin.Context) {
	orderID, err := uuid.Parse(c.Param("orderId"))
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}

	result, err := h.svc.AcceptCost(c.Request.Context(), orderID)
	if httpkit.HandleError(c, err) {
		return
	}

	httpkit.OK(c, result)
}

// RejectCost handles POST /api/v1/orders/:orderId/status/reject-cost
func (h *Handler) RejectCost(c *gin.Context) {
	orderID, err := uuid.Parse(c.Param("orderId"))
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}

	result, err := h.svc.RejectCost(c.Request.Context(), orderID)
	if httpkit.HandleError(c, err) {
		return
	}

	httpkit.OK(c, result)
}

// SettlePayment handles POST /api/v1/orders/:orderId/status/payment
func (h *Handler) SettlePayment(c *gin.Context) {
	orderID, err := uuid.Parse(c.Param("orderId"))
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}

	var req transport.SettlePaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return
	}

	result, err := h.svc.SettlePayment(c.Request.Context(), orderID, req.Status, req.PaymentStatus)
	if httpkit.HandleError(c, err) {
		return
	}

	httpkit.OK(c, result)
}

// orderAction parses the order id from the path and the acting technician id
// from the body, shared by accept/decline/complete.
func (h *Handler) orderAction(c *gin.Context) (uuid.UUID, uuid.UUID, bool) {
	orderID, err := uuid.Parse(c.Param("orderId"))
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return uuid.Nil, uuid.Nil, false
	}

	var req transport.TechnicianActionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return uuid.Nil, uuid.Nil, false
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return uuid.Nil, uuid.Nil, false
	}

	return orderID, req.TechnicianID, true
}

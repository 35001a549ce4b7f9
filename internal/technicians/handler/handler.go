package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"fixserve_backend/internal/technicians/service"
	"fixserve_backend/internal/technicians/transport"
	"fixserve_backend/platform/httpkit"
	"fixserve_backend/platform/validator"
)

const (
	msgInvalidRequest   = "invalid request"
	msgValidationFailed = "validation failed"
)

// Handler handles HTTP requests for technicians.
type Handler struct {
	svc *service.Service
	val *validator.Validator
}

// New creates a new technicians handler.
func New(svc *service.Service, val *validator.Validator) *Handler {
	return &Handler{svc: svc, val: val}
}

// RegisterReadRoutes registers the directory lookup routes.
func (h *Handler) RegisterReadRoutes(rg *gin.RouterGroup) {
	rg.GET("", h.List)
	rg.GET("/:technicianId", h.GetByID)
	rg.GET("/:technicianId/suspensions", h.ListSuspensions)
}

// RegisterAdminRoutes registers registration and suspension management.
func (h *Handler) RegisterAdminRoutes(rg *gin.RouterGroup) {
	rg.POST("", h.Create)
	rg.POST("/:technicianId/suspensions", h.Suspend)
	rg.DELETE("/:technicianId/suspensions/:suspensionId", h.Unsuspend)
}

// Create handles POST /api/v1/technicians
func (h *Handler) Create(c *gin.Context) {
	var req transport.CreateTechnicianRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return
	}

	result, err := h.svc.Create(c.Request.Context(), req)
	if httpkit.HandleError(c, err) {
		return
	}

	httpkit.JSON(c, http.StatusCreated, result)
}

// List handles GET /api/v1/technicians
func (h *Handler) List(c *gin.Context) {
	result, err := h.svc.List(c.Request.Context())
	if httpkit.HandleError(c, err) {
		return
	}

	httpkit.OK(c, result)
}

// GetByID handles GET /api/v1/technicians/:technicianId
func (h *Handler) GetByID(c *gin.Context) {
	id, err := uuid.Parse(c.Param("technicianId"))
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}

	result, err := h.svc.GetByID(c.Request.Context(), id)
	if httpkit.HandleError(c, err) {
		return
	}

	httpkit.OK(c, result)
}

// Suspend handles POST /api/v1/technicians/:technicianId/suspensions
func (h *Handler) Suspend(c *gin.Context) {
	id, err := uuid.Parse(c.Param("technicianId"))
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}

	var req transport.SuspendRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return
	}

	result, err := h.svc.Suspend(c.Request.Context(), id, req)
	if httpkit.HandleError(c, err) {
		return
	}

	httpkit.JSON(c, http.StatusCreated, result)
}

// ListSuspensions handles GET /api/v1/technicians/:technicianId/suspensions
func (h *Handler) ListSuspensions(c *gin.Context) {
	id, err := uuid.Parse(c.Param("technicianId"))
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}

	result, err := h.svc.ListSuspensions(c.Request.Context(), id)
	if httpkit.HandleError(c, err) {
		return
	}

	httpkit.OK(c, result)
}

// Unsuspend handles DELETE /api/v1/technicians/:technicianId/suspensions/:suspensionId
func (h *Handler) Unsuspend(c *gin.Context) {
	technicianID, err := uuid.Parse(c.Param("technicianId"))
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	suspensionID, err := uuid.Parse(c.Param("suspensionId"))
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}

	if err := h.svc.Unsuspend(c.Request.Context(), technicianID, suspensionID); httpkit.HandleError(c, err) {
		return
	}

	httpkit.OK(c, gin.H{"message": "suspension removed"})
}

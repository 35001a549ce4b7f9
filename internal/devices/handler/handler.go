package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"fixserve_backend/internal/devices/service"
	"fixserve_backend/internal/devices/transport"
	"fixserve_backend/platform/httpkit"
	"fixserve_backend/platform/validator"
)

const (
	msgInvalidRequest   = "invalid request"
	msgValidationFailed = "validation failed"
)

// Handler handles HTTP requests for the device catalog.
type Handler struct {
	svc *service.Service
	val *validator.Validator
}

// New creates a new devices handler.
func New(svc *service.Service, val *validator.Validator) *Handler {
	return &Handler{svc: svc, val: val}
}

// RegisterAdminRoutes registers the catalog routes. The catalog is
// admin-managed end to end; other modules reach it through the service, not
// over HTTP.
func (h *Handler) RegisterAdminRoutes(rg *gin.RouterGroup) {
	rg.GET("", h.List)
	rg.GET("/:deviceId", h.GetByID)
	rg.POST("", h.Upsert)
	rg.PUT("/:deviceId/pool", h.SetPool)
}

// List handles GET /api/v1/admin/devices
func (h *Handler) List(c *gin.Context) {
	result, err := h.svc.List(c.Request.Context())
	if httpkit.HandleError(c, err) {
		return
	}

	httpkit.OK(c, result)
}

// GetByID handles GET /api/v1/admin/devices/:deviceId
func (h *Handler) GetByID(c *gin.Context) {
	id, err := uuid.Parse(c.Param("deviceId"))
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

// Upsert handles POST /api/v1/admin/devices
func (h *Handler) Upsert(c *gin.Context) {
	var req transport.UpsertDeviceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return
	}

	result, err := h.svc.Upsert(c.Request.Context(), req)
	if httpkit.HandleError(c, err) {
		return
	}

	httpkit.OK(c, result)
}

// SetPool handles PUT /api/v1/admin/devices/:deviceId/pool
func (h *Handler) SetPool(c *gin.Context) {
	id, err := uuid.Parse(c.Param("deviceId"))
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}

	var req transport.SetPoolRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return
	}

	result, err := h.svc.SetPool(c.Request.Context(), id, req)
	if httpkit.HandleError(c, err) {
		return
	}

	httpkit.OK(c, result)
}

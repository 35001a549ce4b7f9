// Package customers provides the customers domain module.
package customers

import (
	"github.com/jackc/pgx/v5/pgxpool"

	"fixserve_backend/internal/customers/handler"
	"fixserve_backend/internal/customers/repository"
	"fixserve_backend/internal/customers/service"
	apphttp "fixserve_backend/internal/http"
	"fixserve_backend/platform/logger"
	"fixserve_backend/platform/validator"
)

// Module represents the customers domain module.
type Module struct {
	handler *handler.Handler
	Service *service.Service
}

// NewModule creates a new customers module with all dependencies wired.
func NewModule(pool *pgxpool.Pool, val *validator.Validator, log *logger.Logger) *Module {
	repo := repository.New(pool)
	svc := service.New(repo, log)
	h := handler.New(svc, val)

	return &Module{
		handler: h,
		Service: svc,
	}
}

// Name returns the module name for logging
func (m *Module) Name() string {
	return "customers"
}

// RegisterRoutes registers the module's routes under /api/v1/customers
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	customers := ctx.Protected.Group("/customers")
	m.handler.RegisterRoutes(customers)
}

// Compile-time check that Module implements http.Module
var _ apphttp.Module = (*Module)(nil)

// Package technicians provides the technicians domain module.
package technicians

import (
	"github.com/jackc/pgx/v5/pgxpool"

	apphttp "fixserve_backend/internal/http"
	"fixserve_backend/internal/technicians/handler"
	"fixserve_backend/internal/technicians/repository"
	"fixserve_backend/internal/technicians/service"
	"fixserve_backend/platform/logger"
	"fixserve_backend/platform/validator"
)

// Module represents the technicians domain module.
type Module struct {
	handler    *handler.Handler
	Service    *service.Service
	Repository repository.Repository
}

// NewModule creates a new technicians module with all dependencies wired.
func NewModule(pool *pgxpool.Pool, val *validator.Validator, log *logger.Logger) *Module {
	repo := repository.New(pool)
	svc := service.New(repo, log)
	h := handler.New(svc, val)

	return &Module{
		handler:    h,
		Service:    svc,
		Repository: repo,
	}
}

// Name returns the module name for logging
func (m *Module) Name() string {
	return "technicians"
}

// RegisterRoutes registers lookups under /api/v1/technicians and management
// under /api/v1/admin/technicians.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	m.handler.RegisterReadRoutes(ctx.Protected.Group("/technicians"))
	m.handler.RegisterAdminRoutes(ctx.Admin.Group("/technicians"))
}

// Compile-time check that Module implements http.Module
var _ apphttp.Module = (*Module)(nil)

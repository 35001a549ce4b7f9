// Package orders provides the repair orders domain module.
package orders

import (
	"github.com/jackc/pgx/v5/pgxpool"

	"fixserve_backend/internal/events"
	apphttp "fixserve_backend/internal/http"
	"fixserve_backend/internal/orders/handler"
	"fixserve_backend/internal/orders/repository"
	"fixserve_backend/internal/orders/service"
	"fixserve_backend/platform/logger"
	"fixserve_backend/platform/validator"
)

// Ports are the cross-module collaborators the orders service depends on.
// Images and Enqueuer may be nil when the backing infrastructure is not
// configured.
type Ports struct {
	Technicians service.TechnicianDirectory
	Devices     service.DeviceRegistry
	Customers   service.CustomerDirectory
	Images      service.ImageChecker
	Enqueuer    service.MirrorEnqueuer
}

// Module represents the orders domain module.
type Module struct {
	handler *handler.Handler
	Service *service.Service
}

// NewModule creates a new orders module with all dependencies wired.
func NewModule(pool *pgxpool.Pool, val *validator.Validator, bus events.Bus, log *logger.Logger, ports Ports) *Module {
	repo := repository.New(pool)
	svc := service.New(service.Deps{
		Repo:        repo,
		Technicians: ports.Technicians,
		Devices:     ports.Devices,
		Customers:   ports.Customers,
		Images:      ports.Images,
		Enqueuer:    ports.Enqueuer,
		Bus:         bus,
		Log:         log,
	})
	h := handler.New(svc, val)

	return &Module{
		handler: h,
		Service: svc,
	}
}

// Name returns the module name for logging
func (m *Module) Name() string {
	return "orders"
}

// RegisterRoutes registers the module's routes under /api/v1/orders
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	orders := ctx.Protected.Group("/orders")
	m.handler.RegisterRoutes(orders)
}

// Compile-time check that Module implements http.Module
var _ apphttp.Module = (*Module)(nil)

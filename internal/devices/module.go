// Package devices provides the appliance catalog domain module.
package devices

import (
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"fixserve_backend/internal/devices/handler"
	"fixserve_backend/internal/devices/repository"
	"fixserve_backend/internal/devices/service"
	apphttp "fixserve_backend/internal/http"
	"fixserve_backend/platform/config"
	"fixserve_backend/platform/logger"
	"fixserve_backend/platform/validator"
)

// Module represents the devices domain module.
type Module struct {
	handler *handler.Handler
	Service *service.Service
}

// NewModule creates a new devices module with all dependencies wired.
// redisClient may be nil; the pool lookup then goes straight to the database.
func NewModule(pool *pgxpool.Pool, redisClient *redis.Client, cfg config.CacheConfig, val *validator.Validator, log *logger.Logger, technicians service.TechnicianVerifier) *Module {
	repo := repository.New(pool)
	cache := service.NewPoolCache(redisClient, cfg.GetDevicePoolCacheTTL(), log)
	svc := service.New(repo, cache, technicians, log)
	h := handler.New(svc, val)

	return &Module{
		handler: h,
		Service: svc,
	}
}

// Name returns the module name for logging
func (m *Module) Name() string {
	return "devices"
}

// RegisterRoutes registers the catalog routes under /api/v1/admin/devices.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	m.handler.RegisterAdminRoutes(ctx.Admin.Group("/devices"))
}

// Compile-time check that Module implements http.Module
var _ apphttp.Module = (*Module)(nil)

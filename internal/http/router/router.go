// Package router assembles the gin engine from platform middleware and the
// registered domain modules.
package router

import (
	"context"
	"net/http"
	"time"

	apphttp "fixserve_backend/internal/http"
	"fixserve_backend/platform/config"
	"fixserve_backend/platform/httpkit"
	"fixserve_backend/platform/logger"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

// HealthChecker exposes minimal functionality for readiness checks.
type HealthChecker interface {
	Ping(ctx context.Context) error
}

// Options carries the dependencies needed to build the engine.
type Options struct {
	Config  *config.Config
	Logger  *logger.Logger
	Health  HealthChecker
	Modules []apphttp.Module
}

// New builds the gin engine: platform middleware, health endpoints, and the
// routes of every registered module.
func New(opts Options) *gin.Engine {
	cfg := opts.Config
	log := opts.Logger

	if !equalsDevelopment(cfg.Env) {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(httpkit.RequestID())
	engine.Use(httpkit.RequestLogger(log))
	engine.Use(httpkit.SecurityHeaders())
	engine.Use(corsMiddleware(cfg))

	limiter := httpkit.NewIPRateLimiter(rate.Limit(50), 100, log)
	engine.Use(limiter.RateLimit())

	engine.GET("/api/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	engine.GET("/api/ready", func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()
		if opts.Health != nil {
			if err := opts.Health.Ping(ctx); err != nil {
				c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
				return
			}
		}
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	})

	authMiddleware := httpkit.AuthRequired(cfg)

	v1 := engine.Group("/api/v1")
	protected := v1.Group("")
	protected.Use(authMiddleware)
	admin := v1.Group("/admin")
	admin.Use(authMiddleware, httpkit.RequireRole("admin"))

	routerCtx := &apphttp.RouterContext{
		Engine:         engine,
		V1:             v1,
		Protected:      protected,
		Admin:          admin,
		Config:         cfg,
		AuthMiddleware: authMiddleware,
	}

	for _, module := range opts.Modules {
		module.RegisterRoutes(routerCtx)
		log.Info("module routes registered", "module", module.Name())
	}

	return engine
}

func corsMiddleware(cfg *config.Config) gin.HandlerFunc {
	corsConfig := cors.DefaultConfig()
	if cfg.GetCORSAllowAll() {
		corsConfig.AllowAllOrigins = true
	} else {
		corsConfig.AllowOrigins = cfg.GetCORSOrigins()
		corsConfig.AllowCredentials = cfg.GetCORSAllowCreds()
	}
	corsConfig.AllowHeaders = append(corsConfig.AllowHeaders, "Authorization", httpkit.HeaderRequestID)
	return cors.New(corsConfig)
}

func equalsDevelopment(env string) bool {
	return env == "development" || env == "dev"
}

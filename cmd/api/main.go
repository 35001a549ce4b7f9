package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"fixserve_backend/internal/adapters"
	"fixserve_backend/internal/adapters/storage"
	"fixserve_backend/internal/customers"
	"fixserve_backend/internal/devices"
	"fixserve_backend/internal/email"
	"fixserve_backend/internal/events"
	apphttp "fixserve_backend/internal/http"
	"fixserve_backend/internal/http/router"
	"fixserve_backend/internal/notification"
	"fixserve_backend/internal/orders"
	ordersvc "fixserve_backend/internal/orders/service"
	"fixserve_backend/internal/scheduler"
	"fixserve_backend/internal/technicians"
	"fixserve_backend/platform/config"
	"fixserve_backend/platform/db"
	"fixserve_backend/platform/logger"
	"fixserve_backend/platform/validator"

	custrepo "fixserve_backend/internal/customers/repository"
	ordersrepo "fixserve_backend/internal/orders/repository"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	log := logger.New(cfg.Env)
	log.Info("starting server", "env", cfg.Env, "addr", cfg.HTTPAddr)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// ========================================================================
	// Infrastructure Layer
	// ========================================================================

	if err := withRetry(ctx, log, "database migrations", 5, 2*time.Second, func() error {
		return db.RunMigrations(ctx, cfg, "migrations")
	}); err != nil {
		log.Error("failed to run database migrations", "error", err)
		panic("failed to run database migrations: " + err.Error())
	}
	log.Info("database migrations complete")

	var pool *pgxpool.Pool
	if err := withRetry(ctx, log, "database connection", 5, 2*time.Second, func() error {
		p, err := db.NewPool(ctx, cfg)
		if err != nil {
			return err
		}
		pool = p
		return nil
	}); err != nil {
		log.Error("failed to connect to database", "error", err)
		panic("failed to connect to database: " + err.Error())
	}
	defer pool.Close()
	log.Info("database connection established")

	// Event bus for decoupled communication between modules
	eventBus := events.NewInMemoryBus(log)

	redisClient := initRedis(ctx, cfg, log)
	if redisClient != nil {
		defer redisClient.Close()
	}

	mirrorEnqueuer, closeScheduler := initMirrorScheduler(cfg, log)
	if closeScheduler != nil {
		defer closeScheduler()
	}

	sender := initEmailSender(cfg, log)

	// Shared validator instance for dependency injection
	val := validator.New()

	imageChecker := initImageChecker(cfg, log)

	// ========================================================================
	// Domain Modules (Composition Root)
	// ========================================================================

	customersModule := customers.NewModule(pool, val, log)
	techniciansModule := technicians.NewModule(pool, val, log)

	technicianVerifier := adapters.NewTechnicianVerifierAdapter(techniciansModule.Repository)
	devicesModule := devices.NewModule(pool, redisClient, cfg, val, log, technicianVerifier)

	ordersModule := orders.NewModule(pool, val, eventBus, log, orders.Ports{
		Technicians: adapters.NewTechnicianDirectoryAdapter(techniciansModule.Repository),
		Devices:     adapters.NewDeviceRegistryAdapter(devicesModule.Service),
		Customers:   adapters.NewCustomerDirectoryAdapter(customersModule.Service),
		Images:      imageChecker,
		Enqueuer:    mirrorEnqueuer,
	})

	// Notification module subscribes to domain events (not HTTP-facing)
	notificationModule := notification.NewModule(sender, custrepo.New(pool), ordersrepo.New(pool), log)
	notificationModule.RegisterHandlers(eventBus)

	// ========================================================================
	// HTTP Layer
	// ========================================================================

	engine := router.New(router.Options{
		Config: cfg,
		Logger: log,
		Health: pool,
		Modules: []apphttp.Module{
			customersModule,
			techniciansModule,
			devicesModule,
			ordersModule,
		},
	})

	srvErr := make(chan error, 1)
	go func() {
		log.Info("server listening", "addr", cfg.HTTPAddr)
		srvErr <- engine.Run(cfg.HTTPAddr)
	}()

	select {
	case <-ctx.Done():
		log.Info("shutdown signal received, gracefully shutting down")
	case err := <-srvErr:
		if err != nil {
			log.Error("server error", "error", err)
			panic("server error: " + err.Error())
		}
	}
}

func initRedis(ctx context.Context, cfg *config.Config, log *logger.Logger) *redis.Client {
	if cfg.GetRedisURL() == "" {
		log.Warn("REDIS_URL not configured; device pool cache disabled")
		return nil
	}

	client, err := db.NewRedis(ctx, cfg)
	if err != nil {
		log.Error("failed to connect to redis; device pool cache disabled", "error", err)
		return nil
	}
	return client
}

func initMirrorScheduler(cfg *config.Config, log *logger.Logger) (ordersvc.MirrorEnqueuer, func()) {
	if cfg.GetRedisURL() == "" {
		log.Warn("REDIS_URL not configured; mirror sync retries disabled")
		return nil, nil
	}

	client, err := scheduler.NewClient(cfg)
	if err != nil {
		log.Error("failed to initialize scheduler client; mirror sync retries disabled", "error", err)
		return nil, nil
	}

	return client, func() {
		_ = client.Close()
	}
}

func initEmailSender(cfg *config.Config, log *logger.Logger) email.Sender {
	if !cfg.GetEmailEnabled() {
		log.Warn("email delivery disabled; notification emails will be dropped")
		return email.NoopSender{}
	}
	return email.NewSMTPSender(cfg)
}

func initImageChecker(cfg *config.Config, log *logger.Logger) ordersvc.ImageChecker {
	if !cfg.IsMinIOEnabled() {
		log.Warn("MinIO not configured; order image references will not be verified")
		return nil
	}

	checker, err := storage.NewImageChecker(cfg)
	if err != nil {
		log.Error("failed to initialize image checker; order image references will not be verified", "error", err)
		return nil
	}
	return checker
}

func withRetry(ctx context.Context, log *logger.Logger, name string, attempts int, baseDelay time.Duration, fn func() error) error {
	if attempts < 1 {
		return fmt.Errorf("%s: invalid retry attempts", name)
	}

	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if err := fn(); err == nil {
			return nil
		} else {
			lastErr = err
			log.Warn("retryable operation failed", "operation", name, "attempt", attempt, "error", err)
		}

		if attempt < attempts {
			delay := time.Duration(attempt*attempt) * baseDelay
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(delay):
			}
		}
	}

	return errors.New(name + ": " + lastErr.Error())
}

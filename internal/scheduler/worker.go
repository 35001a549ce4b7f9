package scheduler

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
	"github.com/jackc/pgx/v5/pgxpool"

	"fixserve_backend/internal/orders/repository"
	"fixserve_backend/platform/apperr"
	"fixserve_backend/platform/config"
	"fixserve_backend/platform/logger"
)

type Worker struct {
	server *asynq.Server
	mux    *asynq.ServeMux
	repo   repository.Repository
	log    *logger.Logger
}

func NewWorker(cfg config.WorkerConfig, pool *pgxpool.Pool, log *logger.Logger) (*Worker, error) {
	redisURL := cfg.GetRedisURL()
	if redisURL == "" {
		return nil, fmt.Errorf("redis url not configured")
	}

	opt, err := redisClientOpt(redisURL, cfg.GetRedisTLSInsecure())
	if err != nil {
		return nil, err
	}

	queue := cfg.GetAsynqQueueName()
	if queue == "" {
		queue = "default"
	}

	concurrency := cfg.GetAsynqConcurrency()
	if concurrency < 1 {
		concurrency = 10
	}

	server := asynq.NewServer(opt, asynq.Config{
		Concurrency: concurrency,
		Queues: map[string]int{
			queue: 1,
		},
	})

	mux := asynq.NewServeMux()
	w := &Worker{
		server: server,
		mux:    mux,
		repo:   repository.New(pool),
		log:    log,
	}

	mux.HandleFunc(TaskOrderMirrorSync, w.handleOrderMirrorSync)

	return w, nil
}

// handleOrderMirrorSync re-reads the authoritative status record and copies
// cost and payment status onto the order row. An order deleted in the
// meantime ends the retry chain.
func (w *Worker) handleOrderMirrorSync(ctx context.Context, task *asynq.Task) error {
	payload, err := ParseOrderMirrorSyncPayload(task)
	if err != nil {
		return err
	}

	orderID, err := uuid.Parse(payload.OrderID)
	if err != nil {
		return err
	}

	status, err := w.repo.GetStatus(ctx, orderID)
	if err != nil {
		if apperr.Is(err, apperr.KindNotFound) {
			w.log.Warn("mirror sync dropped, order gone", "order_id", orderID)
			return nil
		}
		return err
	}

	if err := w.repo.UpdateMirror(ctx, status.OrderID, status.Cost, status.PaymentStatus); err != nil {
		if apperr.Is(err, apperr.KindNotFound) {
			w.log.Warn("mirror sync dropped, order gone", "order_id", orderID)
			return nil
		}
		return err
	}

	w.log.Info("order mirror re-synced", "order_id", orderID)
	return nil
}

func (w *Worker) Run(ctx context.Context) {
	if w == nil || w.server == nil {
		return
	}

	go func() {
		<-ctx.Done()
		w.server.Shutdown()
	}()

	if err := w.server.Run(w.mux); err != nil {
		w.log.Error("scheduler worker stopped", "error", err)
	}
}

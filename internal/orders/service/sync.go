package service

import (
	"context"

	"fixserve_backend/internal/orders/repository"
)

// syncMirror copies the authoritative cost and payment status from the status
// record back onto the order row. The copy is best effort: a failure is
// logged and handed to the retry queue, never surfaced to the caller, so the
// order row may lag until the next successful sync.
func (s *Service) syncMirror(ctx context.Context, status repository.OrderStatus) {
	err := s.repo.UpdateMirror(ctx, status.OrderID, status.Cost, status.PaymentStatus)
	if err == nil {
		return
	}

	s.log.Error("order mirror sync failed", "order_id", status.OrderID, "error", err)
	if s.enqueuer == nil {
		return
	}
	if err := s.enqueuer.EnqueueMirrorSync(ctx, status.OrderID); err != nil {
		s.log.Error("order mirror sync retry enqueue failed", "order_id", status.OrderID, "error", err)
	}
}

package service

import (
	"context"

	"github.com/google/uuid"

	"fixserve_backend/internal/events"
	"fixserve_backend/internal/orders/repository"
	"fixserve_backend/internal/orders/transport"
	"fixserve_backend/platform/apperr"
)

// Accept moves an unaccepted order to accepted. Only the currently assigned
// technician may accept; a concurrent competing transition loses the
// conditional update and surfaces as invalid state.
func (s *Service) Accept(ctx context.Context, orderID, technicianID uuid.UUID) (transport.StatusResponse, error) {
	order, err := s.repo.GetOrder(ctx, orderID)
	if err != nil {
		return transport.StatusResponse{}, err
	}
	if order.TechnicianID != technicianID {
		return transport.StatusResponse{}, apperr.Forbidden("you are not authorized to accept this order")
	}

	status, err := s.repo.Transition(ctx, repository.TransitionParams{
		OrderID: orderID,
		From:    []repository.Status{repository.StatusUnaccepted},
		To:      repository.StatusAccepted,
	})
	if err != nil {
		return transport.StatusResponse{}, err
	}

	s.syncMirror(ctx, status)
	return toStatusResponse(status), nil
}

// Complete marks an accepted order as completed. Only the assigned technician
// may complete it.
func (s *Service) Complete(ctx context.Context, orderID, technicianID uuid.UUID) (transport.StatusResponse, error) {
	order, err := s.repo.GetOrder(ctx, orderID)
	if err != nil {
		return transport.StatusResponse{}, err
	}
	if order.TechnicianID != technicianID {
		return transport.StatusResponse{}, apperr.Forbidden("you are not authorized to complete this order")
	}

	status, err := s.repo.Transition(ctx, repository.TransitionParams{
		OrderID: orderID,
		From:    []repository.Status{repository.StatusAccepted},
		To:      repository.StatusCompleted,
	})
	if err != nil {
		return transport.StatusResponse{}, err
	}

	s.syncMirror(ctx, status)
	s.publish(ctx, events.OrderCompleted{
		BaseEvent:    events.NewBaseEvent(),
		OrderID:      orderID,
		CustomerID:   order.CustomerID,
		TechnicianID: technicianID,
	})
	return toStatusResponse(status), nil
}

// MarkArrived records that the technician has arrived on site.
func (s *Service) MarkArrived(ctx context.Context, orderID uuid.UUID) (transport.StatusResponse, error) {
	paymentStatus := repository.PaymentIncomplete
	status, err := s.repo.Transition(ctx, repository.TransitionParams{
		OrderID:          orderID,
		From:             []repository.Status{repository.StatusAccepted},
		To:               repository.StatusArrived,
		SetPaymentStatus: &paymentStatus,
	})
	if err != nil {
		return transport.StatusResponse{}, err
	}

	s.syncMirror(ctx, status)
	return toStatusResponse(status), nil
}

// SubmitQuote stores the cost quote and moves the order to cost verification.
// A quote needs a positive total and at least one repair line.
func (s *Service) SubmitQuote(ctx context.Context, orderID uuid.UUID, cost float64, lines []repository.RepairLine) (transport.StatusResponse, error) {
	if cost <= 0 {
		return transport.StatusResponse{}, apperr.Validation("quote cost must be positive")
	}
	if len(lines) == 0 {
		return transport.StatusResponse{}, apperr.Validation("quote needs at least one repair line")
	}

	paymentStatus := repository.PaymentIncomplete
	status, err := s.repo.Transition(ctx, repository.TransitionParams{
		OrderID: orderID,
		From: []repository.Status{
			repository.StatusUnaccepted,
			repository.StatusAccepted,
			repository.StatusArrived,
		},
		To:               repository.StatusCostVerification,
		SetPaymentStatus: &paymentStatus,
		SetCost:          &cost,
		SetRepairDetails: &lines,
	})
	if err != nil {
		return transport.StatusResponse{}, err
	}

	s.syncMirror(ctx, status)
	return toStatusResponse(status), nil
}

// AcceptCost approves the quote and starts the repair; payment becomes pending.
func (s *Service) AcceptCost(ctx context.Context, orderID uuid.UUID) (transport.StatusResponse, error) {
	paymentStatus := repository.PaymentPending
	status, err := s.repo.Transition(ctx, repository.TransitionParams{
		OrderID:          orderID,
		From:             []repository.Status{repository.StatusCostVerification},
		To:               repository.StatusRepairInProgress,
		SetPaymentStatus: &paymentStatus,
	})
	if err != nil {
		return transport.StatusResponse{}, err
	}

	s.syncMirror(ctx, status)
	return toStatusResponse(status), nil
}

// RejectCost declines the quote: the order returns to Arrived with the cost
// and repair lines cleared, ready for a fresh quote.
func (s *Service) RejectCost(ctx context.Context, orderID uuid.UUID) (transport.StatusResponse, error) {
	paymentStatus := repository.PaymentIncomplete
	zeroCost := 0.0
	emptyLines := []repository.RepairLine{}
	status, err := s.repo.Transition(ctx, repository.TransitionParams{
		OrderID:          orderID,
		From:             []repository.Status{repository.StatusCostVerification},
		To:               repository.StatusArrived,
		SetPaymentStatus: &paymentStatus,
		SetCost:          &zeroCost,
		SetRepairDetails: &emptyLines,
	})
	if err != nil {
		return transport.StatusResponse{}, err
	}

	s.syncMirror(ctx, status)
	return toStatusResponse(status), nil
}

// SettlePayment records a settled payment, moving the repair to ready-to-
// deliver. The caller must supply the target status and payment status
// explicitly; anything but ReadyToDeliver/completed is rejected up front.
func (s *Service) SettlePayment(ctx context.Context, orderID uuid.UUID, targetStatus, targetPayment string) (transport.StatusResponse, error) {
	if repository.Status(targetStatus) != repository.StatusReadyToDeliver ||
		repository.PaymentStatus(targetPayment) != repository.PaymentCompleted {
		return transport.StatusResponse{}, apperr.Validation("invalid status or payment status for payment update")
	}

	paymentStatus := repository.PaymentCompleted
	status, err := s.repo.Transition(ctx, repository.TransitionParams{
		OrderID:          orderID,
		From:             []repository.Status{repository.StatusRepairInProgress},
		To:               repository.StatusReadyToDeliver,
		SetPaymentStatus: &paymentStatus,
	})
	if err != nil {
		return transport.StatusResponse{}, err
	}

	s.syncMirror(ctx, status)
	return toStatusResponse(status), nil
}

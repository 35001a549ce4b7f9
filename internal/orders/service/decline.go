package service

import (
	"context"

	"github.com/google/uuid"

	"fixserve_backend/internal/events"
	"fixserve_backend/internal/orders/repository"
	"fixserve_backend/internal/orders/transport"
	"fixserve_backend/platform/apperr"
)

// Decline lets the currently assigned technician refuse an unaccepted order.
// A replacement is drawn from the device pool minus the decliner; technicians
// who declined earlier stay in the pool, so an order can bounce between two
// technicians indefinitely. The order keeps its unaccepted status throughout.
func (s *Service) Decline(ctx context.Context, orderID, technicianID uuid.UUID) (transport.DeclineOrderResponse, error) {
	order, err := s.repo.GetOrder(ctx, orderID)
	if err != nil {
		return transport.DeclineOrderResponse{}, err
	}
	if order.TechnicianID != technicianID {
		return transport.DeclineOrderResponse{}, apperr.Forbidden("you are not authorized to decline this order")
	}

	status, err := s.repo.GetStatus(ctx, orderID)
	if err != nil {
		return transport.DeclineOrderResponse{}, err
	}
	if status.Status != repository.StatusUnaccepted {
		return transport.DeclineOrderResponse{}, apperr.InvalidState("only unaccepted orders can be declined")
	}

	pool, err := s.devices.FindPool(ctx, order.ApplianceName, order.ServiceMode)
	if err != nil {
		return transport.DeclineOrderResponse{}, err
	}

	candidates := make([]uuid.UUID, 0, len(pool))
	for _, id := range pool {
		if id != technicianID {
			candidates = append(candidates, id)
		}
	}
	if len(candidates) == 0 {
		return transport.DeclineOrderResponse{}, apperr.Conflict("no other technician available to reassign")
	}

	newTechnicianID := s.policy.Select(candidates)
	if _, err := s.technicians.GetByID(ctx, newTechnicianID); err != nil {
		return transport.DeclineOrderResponse{}, err
	}

	if err := s.repo.Reassign(ctx, orderID, technicianID, newTechnicianID); err != nil {
		return transport.DeclineOrderResponse{}, err
	}

	// The reassignment refreshed updated_at; re-read for an accurate response.
	status, err = s.repo.GetStatus(ctx, orderID)
	if err != nil {
		return transport.DeclineOrderResponse{}, err
	}

	s.syncMirror(ctx, status)
	s.log.Info("order reassigned after decline",
		"order_id", orderID, "declined_by", technicianID, "new_technician_id", newTechnicianID)
	s.publish(ctx, events.OrderReassigned{
		BaseEvent:       events.NewBaseEvent(),
		OrderID:         orderID,
		DeclinedByID:    technicianID,
		NewTechnicianID: newTechnicianID,
	})

	return transport.DeclineOrderResponse{
		NewTechnicianID: newTechnicianID,
		Status:          toStatusResponse(status),
	}, nil
}

// Package service implements the order lifecycle: creation with automatic
// technician assignment, the status state machine, decline/reassignment, and
// the best-effort mirror synchronization between the status record and the
// order row.
package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"fixserve_backend/internal/events"
	"fixserve_backend/internal/orders/repository"
	"fixserve_backend/internal/orders/transport"
	"fixserve_backend/platform/apperr"
	"fixserve_backend/platform/logger"
)

// Deps bundles the service's collaborators. Images and Enqueuer are optional;
// everything else is required.
type Deps struct {
	Repo        repository.Repository
	Technicians TechnicianDirectory
	Devices     DeviceRegistry
	Customers   CustomerDirectory
	Images      ImageChecker
	Policy      SelectionPolicy
	Enqueuer    MirrorEnqueuer
	Bus         events.Bus
	Log         *logger.Logger
}

// Service provides business logic for repair orders.
type Service struct {
	repo        repository.Repository
	technicians TechnicianDirectory
	devices     DeviceRegistry
	customers   CustomerDirectory
	images      ImageChecker
	policy      SelectionPolicy
	enqueuer    MirrorEnqueuer
	bus         events.Bus
	log         *logger.Logger
}

// New creates a new orders service.
func New(deps Deps) *Service {
	policy := deps.Policy
	if policy == nil {
		policy = NewUniformRandomPolicy()
	}
	return &Service{
		repo:        deps.Repo,
		technicians: deps.Technicians,
		devices:     deps.Devices,
		customers:   deps.Customers,
		images:      deps.Images,
		policy:      policy,
		enqueuer:    deps.Enqueuer,
		bus:         deps.Bus,
		log:         deps.Log,
	}
}

// CreateOrder validates the request, assigns an available technician, and
// creates the order together with its initial status record in one atomic
// write.
func (s *Service) CreateOrder(ctx context.Context, req transport.CreateOrderRequest) (transport.CreateOrderResponse, error) {
	window, err := serviceWindow(req.ServiceDate, req.ServiceFromTime, req.ServiceToTime)
	if err != nil {
		return transport.CreateOrderResponse{}, err
	}

	exists, err := s.customers.Exists(ctx, req.CustomerID)
	if err != nil {
		return transport.CreateOrderResponse{}, err
	}
	if !exists {
		return transport.CreateOrderResponse{}, apperr.NotFound("customer not found")
	}

	if req.ImageID != nil && s.images != nil {
		ok, err := s.images.Exists(ctx, *req.ImageID)
		if err != nil {
			return transport.CreateOrderResponse{}, err
		}
		if !ok {
			return transport.CreateOrderResponse{}, apperr.NotFound("order image not found")
		}
	}

	mode := repository.ServiceMode(req.ServiceMode)
	technicianID, err := s.assignTechnician(ctx, req.ApplianceName, mode, window)
	if err != nil {
		return transport.CreateOrderResponse{}, err
	}

	order, status, err := s.repo.CreateWithStatus(ctx, repository.CreateOrderParams{
		CustomerID:      req.CustomerID,
		ApplianceName:   req.ApplianceName,
		ServiceMode:     mode,
		Brand:           req.Brand,
		ServiceDate:     window.start.Truncate(24 * time.Hour),
		ServiceFromTime: req.ServiceFromTime,
		ServiceToTime:   req.ServiceToTime,
		TechnicianID:    technicianID,
		ImageID:         req.ImageID,
		Address: repository.Address{
			HouseNumber: req.Address.HouseNumber,
			Landmark:    req.Address.Landmark,
			Street:      req.Address.Street,
			City:        req.Address.City,
			Pincode:     req.Address.Pincode,
		},
	})
	if err != nil {
		return transport.CreateOrderResponse{}, err
	}

	s.log.Info("order created", "order_id", order.ID, "technician_id", technicianID, "appliance", order.ApplianceName)
	s.publish(ctx, events.OrderCreated{
		BaseEvent:    events.NewBaseEvent(),
		OrderID:      order.ID,
		CustomerID:   order.CustomerID,
		TechnicianID: technicianID,
		Appliance:    order.ApplianceName,
	})

	return transport.CreateOrderResponse{
		AssignedTechnicianID: technicianID,
		Order:                toOrderResponse(order),
		Status:               toStatusResponse(status),
	}, nil
}

// ListByCustomer retrieves a customer's orders, newest first.
func (s *Service) ListByCustomer(ctx context.Context, customerID uuid.UUID) (transport.OrderListResponse, error) {
	orders, err := s.repo.ListByCustomer(ctx, customerID)
	if err != nil {
		return transport.OrderListResponse{}, err
	}
	return toOrderListResponse(orders), nil
}

// ListUnacceptedByTechnician retrieves the orders waiting on the technician's
// accept/decline decision. The technician must exist; an empty list is a
// valid outcome.
func (s *Service) ListUnacceptedByTechnician(ctx context.Context, technicianID uuid.UUID) (transport.OrderListResponse, error) {
	if _, err := s.technicians.GetByID(ctx, technicianID); err != nil {
		return transport.OrderListResponse{}, err
	}

	orders, err := s.repo.ListUnacceptedByTechnician(ctx, technicianID)
	if err != nil {
		return transport.OrderListResponse{}, err
	}
	return toOrderListResponse(orders), nil
}

// GetStatus retrieves the status record for an order.
func (s *Service) GetStatus(ctx context.Context, orderID uuid.UUID) (transport.StatusResponse, error) {
	status, err := s.repo.GetStatus(ctx, orderID)
	if err != nil {
		return transport.StatusResponse{}, err
	}
	return toStatusResponse(status), nil
}

func (s *Service) publish(ctx context.Context, event events.Event) {
	if s.bus != nil {
		s.bus.Publish(ctx, event)
	}
}

// serviceWindow combines the scheduled date with the wall-clock bounds into a
// concrete [start, end] interval.
type window struct {
	start time.Time
	end   time.Time
}

func serviceWindow(date, fromTime, toTime string) (window, error) {
	start, err := time.Parse("2006-01-02T15:04", date+"T"+fromTime)
	if err != nil {
		return window{}, apperr.Validation("invalid service date or time")
	}
	end, err := time.Parse("2006-01-02T15:04", date+"T"+toTime)
	if err != nil {
		return window{}, apperr.Validation("invalid service date or time")
	}
	if !end.After(start) {
		return window{}, apperr.Validation("service window must end after it starts")
	}
	return window{start: start, end: end}, nil
}

func toOrderResponse(order repository.Order) transport.OrderResponse {
	declinedBy := order.DeclinedBy
	if declinedBy == nil {
		declinedBy = []uuid.UUID{}
	}
	return transport.OrderResponse{
		ID:              order.ID,
		CustomerID:      order.CustomerID,
		ApplianceName:   order.ApplianceName,
		ServiceMode:     string(order.ServiceMode),
		Brand:           order.Brand,
		ServiceDate:     order.ServiceDate.Format("2006-01-02"),
		ServiceFromTime: order.ServiceFromTime,
		ServiceToTime:   order.ServiceToTime,
		TechnicianID:    order.TechnicianID,
		ImageID:         order.ImageID,
		Address: transport.AddressPayload{
			HouseNumber: order.Address.HouseNumber,
			Landmark:    order.Address.Landmark,
			Street:      order.Address.Street,
			City:        order.Address.City,
			Pincode:     order.Address.Pincode,
		},
		DeclinedBy:    declinedBy,
		Cost:          order.Cost,
		PaymentStatus: string(order.PaymentStatus),
		CreatedAt:     order.CreatedAt.Format(time.RFC3339),
	}
}

func toStatusResponse(status repository.OrderStatus) transport.StatusResponse {
	details := make([]transport.RepairLinePayload, 0, len(status.RepairDetails))
	for _, line := range status.RepairDetails {
		details = append(details, transport.RepairLinePayload{
			Description: line.Description,
			LineCost:    line.LineCost,
		})
	}
	return transport.StatusResponse{
		OrderID:       status.OrderID,
		Status:        string(status.Status),
		Cost:          status.Cost,
		ServiceCharge: status.ServiceCharge,
		RepairDetails: details,
		PaymentStatus: string(status.PaymentStatus),
		UpdatedAt:     status.UpdatedAt.Format(time.RFC3339),
	}
}

func toOrderListResponse(orders []repository.Order) transport.OrderListResponse {
	items := make([]transport.OrderResponse, 0, len(orders))
	for _, order := range orders {
		items = append(items, toOrderResponse(order))
	}
	return transport.OrderListResponse{Items: items, Total: len(items)}
}

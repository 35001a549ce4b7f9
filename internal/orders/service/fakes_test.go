package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"fixserve_backend/internal/orders/repository"
	"fixserve_backend/platform/apperr"
)

// fakeRepo is an in-memory Repository with the same conditional-update
// semantics as the real one, safe for concurrent use.
type fakeRepo struct {
	mu       sync.Mutex
	orders   map[uuid.UUID]repository.Order
	statuses map[uuid.UUID]repository.OrderStatus

	createErr error
	mirrorErr error

	mirrorCalls int
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		orders:   make(map[uuid.UUID]repository.Order),
		statuses: make(map[uuid.UUID]repository.OrderStatus),
	}
}

func (r *fakeRepo) CreateWithStatus(_ context.Context, params repository.CreateOrderParams) (repository.Order, repository.OrderStatus, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.createErr != nil {
		return repository.Order{}, repository.OrderStatus{}, r.createErr
	}

	order := repository.Order{
		ID:              uuid.New(),
		CustomerID:      params.CustomerID,
		ApplianceName:   params.ApplianceName,
		ServiceMode:     params.ServiceMode,
		Brand:           params.Brand,
		ServiceDate:     params.ServiceDate,
		ServiceFromTime: params.ServiceFromTime,
		ServiceToTime:   params.ServiceToTime,
		TechnicianID:    params.TechnicianID,
		ImageID:         params.ImageID,
		Address:         params.Address,
		DeclinedBy:      []uuid.UUID{},
		PaymentStatus:   repository.PaymentIncomplete,
		CreatedAt:       time.Now(),
	}
	status := repository.OrderStatus{
		OrderID:       order.ID,
		Status:        repository.StatusUnaccepted,
		RepairDetails: []repository.RepairLine{},
		PaymentStatus: repository.PaymentIncomplete,
		UpdatedAt:     time.Now(),
	}
	r.orders[order.ID] = order
	r.statuses[order.ID] = status
	return order, status, nil
}

func (r *fakeRepo) GetOrder(_ context.Context, orderID uuid.UUID) (repository.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	order, ok := r.orders[orderID]
	if !ok {
		return repository.Order{}, apperr.NotFound("order not found")
	}
	return order, nil
}

func (r *fakeRepo) ListByCustomer(_ context.Context, customerID uuid.UUID) ([]repository.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var result []repository.Order
	for _, order := range r.orders {
		if order.CustomerID == customerID {
			result = append(result, order)
		}
	}
	return result, nil
}

func (r *fakeRepo) ListUnacceptedByTechnician(_ context.Context, technicianID uuid.UUID) ([]repository.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var result []repository.Order
	for _, order := range r.orders {
		if order.TechnicianID == technicianID && r.statuses[order.ID].Status == repository.StatusUnaccepted {
			result = append(result, order)
		}
	}
	return result, nil
}

func (r *fakeRepo) GetStatus(_ context.Context, orderID uuid.UUID) (repository.OrderStatus, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	status, ok := r.statuses[orderID]
	if !ok {
		return repository.OrderStatus{}, apperr.NotFound("order status not found")
	}
	return status, nil
}

func (r *fakeRepo) Transition(_ context.Context, params repository.TransitionParams) (repository.OrderStatus, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	status, ok := r.statuses[params.OrderID]
	if !ok {
		return repository.OrderStatus{}, apperr.NotFound("order status not found")
	}

	matched := false
	for _, from := range params.From {
		if status.Status == from {
			matched = true
			break
		}
	}
	if !matched {
		return repository.OrderStatus{}, apperr.InvalidState(
			fmt.Sprintf("order is %q, cannot move to %q", status.Status, params.To))
	}

	status.Status = params.To
	if params.SetPaymentStatus != nil {
		status.PaymentStatus = *params.SetPaymentStatus
	}
	if params.SetCost != nil {
		status.Cost = *params.SetCost
	}
	if params.SetRepairDetails != nil {
		status.RepairDetails = *params.SetRepairDetails
	}
	status.UpdatedAt = time.Now()
	r.statuses[params.OrderID] = status
	return status, nil
}

func (r *fakeRepo) Reassign(_ context.Context, orderID, from, to uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	order, ok := r.orders[orderID]
	if !ok {
		return apperr.NotFound("order not found")
	}
	if order.TechnicianID != from {
		return apperr.InvalidState("order is no longer assigned to this technician")
	}
	if r.statuses[orderID].Status != repository.StatusUnaccepted {
		return apperr.InvalidState("only unaccepted orders can be reassigned")
	}

	order.TechnicianID = to
	order.DeclinedBy = append(order.DeclinedBy, from)
	r.orders[orderID] = order
	return nil
}

func (r *fakeRepo) UpdateMirror(_ context.Context, orderID uuid.UUID, cost float64, paymentStatus repository.PaymentStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.mirrorCalls++
	if r.mirrorErr != nil {
		return r.mirrorErr
	}

	order, ok := r.orders[orderID]
	if !ok {
		return apperr.NotFound("order not found")
	}
	order.Cost = cost
	order.PaymentStatus = paymentStatus
	r.orders[orderID] = order
	return nil
}

var _ repository.Repository = (*fakeRepo)(nil)

type fakeDirectory struct {
	technicians map[uuid.UUID]Technician
}

func newFakeDirectory(technicians ...Technician) *fakeDirectory {
	dir := &fakeDirectory{technicians: make(map[uuid.UUID]Technician)}
	for _, tech := range technicians {
		dir.technicians[tech.ID] = tech
	}
	return dir
}

func (d *fakeDirectory) GetByID(_ context.Context, id uuid.UUID) (Technician, error) {
	tech, ok := d.technicians[id]
	if !ok {
		return Technician{}, apperr.NotFound("technician not found")
	}
	return tech, nil
}

func (d *fakeDirectory) ListByIDs(_ context.Context, ids []uuid.UUID) ([]Technician, error) {
	var result []Technician
	for _, id := range ids {
		if tech, ok := d.technicians[id]; ok {
			result = append(result, tech)
		}
	}
	return result, nil
}

type fakeRegistry struct {
	pools map[string][]uuid.UUID
}

func newFakeRegistry() *fakeRegistry {
	return &fakeRegistry{pools: make(map[string][]uuid.UUID)}
}

func (r *fakeRegistry) register(name string, mode repository.ServiceMode, ids ...uuid.UUID) {
	r.pools[name+"/"+string(mode)] = ids
}

func (r *fakeRegistry) FindPool(_ context.Context, name string, mode repository.ServiceMode) ([]uuid.UUID, error) {
	pool, ok := r.pools[name+"/"+string(mode)]
	if !ok {
		return nil, apperr.NotFound("no technicians registered for this appliance and service mode")
	}
	return pool, nil
}

type fakeCustomers struct {
	known map[uuid.UUID]bool
}

func newFakeCustomers(ids ...uuid.UUID) *fakeCustomers {
	c := &fakeCustomers{known: make(map[uuid.UUID]bool)}
	for _, id := range ids {
		c.known[id] = true
	}
	return c
}

func (c *fakeCustomers) Exists(_ context.Context, id uuid.UUID) (bool, error) {
	return c.known[id], nil
}

// firstPolicy deterministically picks the first candidate.
type firstPolicy struct{}

func (firstPolicy) Select(candidates []uuid.UUID) uuid.UUID { return candidates[0] }

type fakeEnqueuer struct {
	mu     sync.Mutex
	orders []uuid.UUID
	err    error
}

func (e *fakeEnqueuer) EnqueueMirrorSync(_ context.Context, orderID uuid.UUID) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.err != nil {
		return e.err
	}
	e.orders = append(e.orders, orderID)
	return nil
}

var errBoom = errors.New("boom")

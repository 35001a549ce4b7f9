package service

import (
	"context"
	"math/rand"
	"sync"
	"time"

	"github.com/google/uuid"

	"fixserve_backend/internal/orders/repository"
	"fixserve_backend/platform/apperr"
)

// assignTechnician resolves the eligible pool for the appliance and mode,
// drops technicians suspended over the requested window, and lets the
// selection policy pick one.
func (s *Service) assignTechnician(ctx context.Context, applianceName string, mode repository.ServiceMode, w window) (uuid.UUID, error) {
	pool, err := s.devices.FindPool(ctx, applianceName, mode)
	if err != nil {
		return uuid.Nil, err
	}
	if len(pool) == 0 {
		return uuid.Nil, apperr.NotFound("no technicians registered for this appliance and service mode")
	}

	technicians, err := s.technicians.ListByIDs(ctx, pool)
	if err != nil {
		return uuid.Nil, err
	}

	available := availableTechnicians(technicians, w)
	if len(available) == 0 {
		return uuid.Nil, apperr.Conflict("no technician available for the selected time slot")
	}

	return s.policy.Select(available), nil
}

// availableTechnicians returns the ids of technicians with no suspension
// overlapping the requested window.
func availableTechnicians(technicians []Technician, w window) []uuid.UUID {
	available := make([]uuid.UUID, 0, len(technicians))
	for _, tech := range technicians {
		if !suspendedDuring(tech, w) {
			available = append(available, tech.ID)
		}
	}
	return available
}

// suspendedDuring reports whether any suspension interval [from, to] overlaps
// the window [start, end]. Touching boundaries count as overlapping.
func suspendedDuring(tech Technician, w window) bool {
	for _, susp := range tech.Suspensions {
		if !susp.From.After(w.end) && !susp.To.Before(w.start) {
			return true
		}
	}
	return false
}

// UniformRandomPolicy selects uniformly at random. It is deliberately not
// load-aware.
type UniformRandomPolicy struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewUniformRandomPolicy creates the default selection policy.
func NewUniformRandomPolicy() *UniformRandomPolicy {
	return &UniformRandomPolicy{rng: rand.New(rand.NewSource(time.Now().UnixNano()))}
}

// Select picks one candidate uniformly at random. Candidates must be non-empty.
func (p *UniformRandomPolicy) Select(candidates []uuid.UUID) uuid.UUID {
	p.mu.Lock()
	defer p.mu.Unlock()
	return candidates[p.rng.Intn(len(candidates))]
}

var _ SelectionPolicy = (*UniformRandomPolicy)(nil)

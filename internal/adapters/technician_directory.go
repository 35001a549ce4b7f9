// Package adapters wires cross-module ports: each adapter exposes one
// module's service through the narrow interface another module consumes.
package adapters

import (
	"context"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	ordersvc "fixserve_backend/internal/orders/service"
	techrepo "fixserve_backend/internal/technicians/repository"
)

// TechnicianDirectoryAdapter adapts the technicians repository for the orders
// module. It implements orders/service.TechnicianDirectory.
type TechnicianDirectoryAdapter struct {
	repo techrepo.Repository
}

func NewTechnicianDirectoryAdapter(repo techrepo.Repository) *TechnicianDirectoryAdapter {
	return &TechnicianDirectoryAdapter{repo: repo}
}

func (a *TechnicianDirectoryAdapter) GetByID(ctx context.Context, id uuid.UUID) (ordersvc.Technician, error) {
	tech, err := a.repo.GetByID(ctx, id)
	if err != nil {
		return ordersvc.Technician{}, err
	}

	suspensions, err := a.repo.ListSuspensions(ctx, id)
	if err != nil {
		return ordersvc.Technician{}, err
	}
	return toOrdersTechnician(tech, suspensions), nil
}

func (a *TechnicianDirectoryAdapter) ListByIDs(ctx context.Context, ids []uuid.UUID) ([]ordersvc.Technician, error) {
	var (
		technicians     []techrepo.Technician
		suspensionsByID map[uuid.UUID][]techrepo.Suspension
	)

	// The two lookups are independent; fetch them concurrently.
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		technicians, err = a.repo.ListByIDs(gctx, ids)
		return err
	})
	g.Go(func() error {
		var err error
		suspensionsByID, err = a.repo.ListSuspensionsByTechnicians(gctx, ids)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	result := make([]ordersvc.Technician, 0, len(technicians))
	for _, tech := range technicians {
		result = append(result, toOrdersTechnician(tech, suspensionsByID[tech.ID]))
	}
	return result, nil
}

func toOrdersTechnician(tech techrepo.Technician, suspensions []techrepo.Suspension) ordersvc.Technician {
	windows := make([]ordersvc.SuspensionWindow, 0, len(suspensions))
	for _, susp := range suspensions {
		windows = append(windows, ordersvc.SuspensionWindow{From: susp.From, To: susp.To})
	}
	return ordersvc.Technician{
		ID:          tech.ID,
		Name:        tech.Name,
		Suspensions: windows,
	}
}

var _ ordersvc.TechnicianDirectory = (*TechnicianDirectoryAdapter)(nil)

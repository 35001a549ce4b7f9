package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"

	"fixserve_backend/internal/technicians/repository"
	"fixserve_backend/internal/technicians/transport"
	"fixserve_backend/platform/apperr"
	"fixserve_backend/platform/logger"
)

type fakeTechRepo struct {
	technicians map[uuid.UUID]repository.Technician
	suspensions map[uuid.UUID][]repository.Suspension
}

func newFakeTechRepo() *fakeTechRepo {
	return &fakeTechRepo{
		technicians: make(map[uuid.UUID]repository.Technician),
		suspensions: make(map[uuid.UUID][]repository.Suspension),
	}
}

func (r *fakeTechRepo) Create(_ context.Context, params repository.CreateTechnicianParams) (repository.Technician, error) {
	for _, tech := range r.technicians {
		if tech.Mobile == params.Mobile {
			return repository.Technician{}, apperr.Conflict("a technician with this mobile number already exists")
		}
	}
	tech := repository.Technician{
		ID:        uuid.New(),
		Name:      params.Name,
		Mobile:    params.Mobile,
		Email:     params.Email,
		CreatedAt: time.Now(),
	}
	r.technicians[tech.ID] = tech
	return tech, nil
}

func (r *fakeTechRepo) GetByID(_ context.Context, id uuid.UUID) (repository.Technician, error) {
	tech, ok := r.technicians[id]
	if !ok {
		return repository.Technician{}, apperr.NotFound("technician not found")
	}
	return tech, nil
}

func (r *fakeTechRepo) List(_ context.Context) ([]repository.Technician, error) {
	var result []repository.Technician
	for _, tech := range r.technicians {
		result = append(result, tech)
	}
	return result, nil
}

func (r *fakeTechRepo) ListByIDs(_ context.Context, ids []uuid.UUID) ([]repository.Technician, error) {
	var result []repository.Technician
	for _, id := range ids {
		if tech, ok := r.technicians[id]; ok {
			result = append(result, tech)
		}
	}
	return result, nil
}

func (r *fakeTechRepo) AddSuspension(_ context.Context, technicianID uuid.UUID, from, to time.Time) (repository.Suspension, error) {
	susp := repository.Suspension{
		ID:           uuid.New(),
		TechnicianID: technicianID,
		From:         from,
		To:           to,
	}
	r.suspensions[technicianID] = append(r.suspensions[technicianID], susp)
	return susp, nil
}

func (r *fakeTechRepo) ListSuspensions(_ context.Context, technicianID uuid.UUID) ([]repository.Suspension, error) {
	return r.suspensions[technicianID], nil
}

func (r *fakeTechRepo) ListSuspensionsByTechnicians(_ context.Context, ids []uuid.UUID) (map[uuid.UUID][]repository.Suspension, error) {
	result := make(map[uuid.UUID][]repository.Suspension)
	for _, id := range ids {
		if susp, ok := r.suspensions[id]; ok {
			result[id] = susp
		}
	}
	return result, nil
}

func (r *fakeTechRepo) DeleteSuspension(_ context.Context, technicianID, suspensionID uuid.UUID) error {
	list := r.suspensions[technicianID]
	for i, susp := range list {
		if susp.ID == suspensionID {
			r.suspensions[technicianID] = append(list[:i], list[i+1:]...)
			return nil
		}
	}
	return apperr.NotFound("suspension not found")
}

var _ repository.Repository = (*fakeTechRepo)(nil)

func newTestService() (*Service, *fakeTechRepo) {
	repo := newFakeTechRepo()
	return New(repo, logger.New("development")), repo
}

func TestCreateNormalizesMobile(t *testing.T) {
	svc, _ := newTestService()

	resp, err := svc.Create(context.Background(), transport.CreateTechnicianRequest{
		Name:   "Ravi Kumar",
		Mobile: "98765 43210",
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if resp.Mobile != "+919876543210" {
		t.Fatalf("mobile = %q, want E.164 +919876543210", resp.Mobile)
	}
}

func TestCreateRejectsInvalidMobile(t *testing.T) {
	svc, _ := newTestService()

	_, err := svc.Create(context.Background(), transport.CreateTechnicianRequest{
		Name:   "Ravi Kumar",
		Mobile: "12345",
	})
	if !apperr.Is(err, apperr.KindValidation) {
		t.Fatalf("err = %v, want validation", err)
	}
}

func TestCreateDuplicateMobileConflicts(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	req := transport.CreateTechnicianRequest{Name: "Ravi Kumar", Mobile: "9876543210"}
	if _, err := svc.Create(ctx, req); err != nil {
		t.Fatalf("first create: %v", err)
	}

	req.Name = "Another Ravi"
	req.Mobile = "+91 98765 43210" // same number, different format
	_, err := svc.Create(ctx, req)
	if !apperr.Is(err, apperr.KindConflict) {
		t.Fatalf("err = %v, want conflict", err)
	}
}

func TestSuspendValidatesWindow(t *testing.T) {
	svc, repo := newTestService()
	ctx := context.Background()

	tech, err := repo.Create(ctx, repository.CreateTechnicianParams{Name: "Ravi", Mobile: "+919876543210"})
	if err != nil {
		t.Fatalf("seed technician: %v", err)
	}

	_, err = svc.Suspend(ctx, tech.ID, transport.SuspendRequest{
		From: "2026-09-20T00:00:00Z",
		To:   "2026-09-10T00:00:00Z",
	})
	if !apperr.Is(err, apperr.KindValidation) {
		t.Fatalf("err = %v, want validation", err)
	}

	_, err = svc.Suspend(ctx, tech.ID, transport.SuspendRequest{
		From: "not-a-time",
		To:   "2026-09-10T00:00:00Z",
	})
	if !apperr.Is(err, apperr.KindValidation) {
		t.Fatalf("err = %v, want validation", err)
	}
}

func TestSuspendUnknownTechnician(t *testing.T) {
	svc, _ := newTestService()

	_, err := svc.Suspend(context.Background(), uuid.New(), transport.SuspendRequest{
		From: "2026-09-10T00:00:00Z",
		To:   "2026-09-20T00:00:00Z",
	})
	if !apperr.Is(err, apperr.KindNotFound) {
		t.Fatalf("err = %v, want not found", err)
	}
}

func TestSuspendAndUnsuspendRoundTrip(t *testing.T) {
	svc, repo := newTestService()
	ctx := context.Background()

	tech, err := repo.Create(ctx, repository.CreateTechnicianParams{Name: "Ravi", Mobile: "+919876543210"})
	if err != nil {
		t.Fatalf("seed technician: %v", err)
	}

	susp, err := svc.Suspend(ctx, tech.ID, transport.SuspendRequest{
		From: "2026-09-10T00:00:00Z",
		To:   "2026-09-20T00:00:00Z",
	})
	if err != nil {
		t.Fatalf("Suspend: %v", err)
	}

	list, err := svc.ListSuspensions(ctx, tech.ID)
	if err != nil {
		t.Fatalf("ListSuspensions: %v", err)
	}
	if list.Total != 1 {
		t.Fatalf("suspensions = %d, want 1", list.Total)
	}

	if err := svc.Unsuspend(ctx, tech.ID, susp.ID); err != nil {
		t.Fatalf("Unsuspend: %v", err)
	}
	list, err = svc.ListSuspensions(ctx, tech.ID)
	if err != nil {
		t.Fatalf("ListSuspensions after delete: %v", err)
	}
	if list.Total != 0 {
		t.Fatalf("suspensions = %d, want 0", list.Total)
	}
}

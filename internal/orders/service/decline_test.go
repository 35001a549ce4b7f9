package service

import (
	"context"
	"testing"

	"github.com/google/uuid"

	"fixserve_backend/internal/orders/repository"
	"fixserve_backend/platform/apperr"
	"fixserve_backend/platform/logger"
)

func newDeclineFixture(t *testing.T, poolIDs ...uuid.UUID) (*Service, *fakeRepo, uuid.UUID) {
	t.Helper()
	customerID := uuid.New()

	technicians := make([]Technician, 0, len(poolIDs))
	for _, id := range poolIDs {
		technicians = append(technicians, Technician{ID: id})
	}

	repo := newFakeRepo()
	reg := newFakeRegistry()
	reg.register("washing machine", repository.ModeHomeRepair, poolIDs...)
	svc := newTestService(repo, newFakeDirectory(technicians...), reg, newFakeCustomers(customerID))

	orderID, _ := seedOrder(t, svc, customerID)
	return svc, repo, orderID
}

func TestDeclineReassignsToAnotherTechnician(t *testing.T) {
	first := uuid.New()
	second := uuid.New()
	svc, repo, orderID := newDeclineFixture(t, first, second)
	ctx := context.Background()

	resp, err := svc.Decline(ctx, orderID, first)
	if err != nil {
		t.Fatalf("Decline: %v", err)
	}
	if resp.NewTechnicianID != second {
		t.Fatalf("new technician = %s, want %s", resp.NewTechnicianID, second)
	}
	if resp.Status.Status != string(repository.StatusUnaccepted) {
		t.Fatalf("status = %q, must stay unaccepted", resp.Status.Status)
	}

	order, err := repo.GetOrder(ctx, orderID)
	if err != nil {
		t.Fatalf("get order: %v", err)
	}
	if order.TechnicianID != second {
		t.Fatalf("order technician = %s, want %s", order.TechnicianID, second)
	}
	if len(order.DeclinedBy) != 1 || order.DeclinedBy[0] != first {
		t.Fatalf("declinedBy = %v, want [%s]", order.DeclinedBy, first)
	}
}

func TestDeclineOnlyByAssignedTechnician(t *testing.T) {
	first := uuid.New()
	second := uuid.New()
	svc, _, orderID := newDeclineFixture(t, first, second)

	_, err := svc.Decline(context.Background(), orderID, second)
	if !apperr.Is(err, apperr.KindForbidden) {
		t.Fatalf("err = %v, want forbidden", err)
	}
}

func TestDeclineAfterAcceptIsInvalidState(t *testing.T) {
	first := uuid.New()
	second := uuid.New()
	svc, _, orderID := newDeclineFixture(t, first, second)
	ctx := context.Background()

	if _, err := svc.Accept(ctx, orderID, first); err != nil {
		t.Fatalf("accept: %v", err)
	}
	_, err := svc.Decline(ctx, orderID, first)
	if !apperr.Is(err, apperr.KindInvalidState) {
		t.Fatalf("err = %v, want invalid state", err)
	}
}

func TestDeclineSoleTechnicianConflicts(t *testing.T) {
	only := uuid.New()
	svc, _, orderID := newDeclineFixture(t, only)

	_, err := svc.Decline(context.Background(), orderID, only)
	if !apperr.Is(err, apperr.KindConflict) {
		t.Fatalf("err = %v, want conflict", err)
	}
}

// A two-technician pool can bounce an order back and forth: earlier decliners
// are only excluded from the reassignment that immediately follows their own
// decline.
func TestDeclineBouncesBetweenTwoTechnicians(t *testing.T) {
	first := uuid.New()
	second := uuid.New()
	svc, repo, orderID := newDeclineFixture(t, first, second)
	ctx := context.Background()

	resp, err := svc.Decline(ctx, orderID, first)
	if err != nil {
		t.Fatalf("first decline: %v", err)
	}
	if resp.NewTechnicianID != second {
		t.Fatalf("after first decline: technician = %s, want %s", resp.NewTechnicianID, second)
	}

	resp, err = svc.Decline(ctx, orderID, second)
	if err != nil {
		t.Fatalf("second decline: %v", err)
	}
	if resp.NewTechnicianID != first {
		t.Fatalf("after second decline: technician = %s, want %s", resp.NewTechnicianID, first)
	}

	order, err := repo.GetOrder(ctx, orderID)
	if err != nil {
		t.Fatalf("get order: %v", err)
	}
	if len(order.DeclinedBy) != 2 {
		t.Fatalf("declinedBy = %v, want both declines recorded", order.DeclinedBy)
	}
}

// Reassignment ignores suspension windows: availability filtering applies to
// initial assignment only.
func TestDeclineIgnoresSuspensions(t *testing.T) {
	customerID := uuid.New()
	first := uuid.New()
	second := uuid.New()

	suspended := Technician{
		ID: second,
		Suspensions: []SuspensionWindow{
			{From: mustTime(t, "2026-09-01T00:00"), To: mustTime(t, "2026-09-30T23:59")},
		},
	}

	repo := newFakeRepo()
	reg := newFakeRegistry()
	reg.register("washing machine", repository.ModeHomeRepair, first, second)
	svc := New(Deps{
		Repo:        repo,
		Technicians: newFakeDirectory(Technician{ID: first}, suspended),
		Devices:     reg,
		Customers:   newFakeCustomers(customerID),
		Policy:      firstPolicy{},
		Log:         logger.New("development"),
	})

	orderID, assigned := seedOrder(t, svc, customerID)
	if assigned != first {
		t.Fatalf("initial assignment = %s, want %s (the only available)", assigned, first)
	}

	resp, err := svc.Decline(context.Background(), orderID, first)
	if err != nil {
		t.Fatalf("Decline: %v", err)
	}
	if resp.NewTechnicianID != second {
		t.Fatalf("reassigned to %s, want suspended technician %s", resp.NewTechnicianID, second)
	}
}

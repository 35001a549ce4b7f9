package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"

	"fixserve_backend/internal/orders/repository"
	"fixserve_backend/platform/apperr"
)

func mustTime(t *testing.T, value string) time.Time {
	t.Helper()
	parsed, err := time.Parse("2006-01-02T15:04", value)
	if err != nil {
		t.Fatalf("parse %q: %v", value, err)
	}
	return parsed
}

func TestSuspendedDuringOverlap(t *testing.T) {
	w := window{
		start: mustTime(t, "2026-09-15T09:00"),
		end:   mustTime(t, "2026-09-15T11:00"),
	}

	cases := []struct {
		name string
		from string
		to   string
		want bool
	}{
		{"suspension before window", "2026-09-14T00:00", "2026-09-15T08:00", false},
		{"suspension after window", "2026-09-15T12:00", "2026-09-16T00:00", false},
		{"suspension covers window", "2026-09-14T00:00", "2026-09-16T00:00", true},
		{"suspension inside window", "2026-09-15T09:30", "2026-09-15T10:00", true},
		{"suspension ends at window start", "2026-09-15T08:00", "2026-09-15T09:00", true},
		{"suspension starts at window end", "2026-09-15T11:00", "2026-09-15T12:00", true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			tech := Technician{
				ID: uuid.New(),
				Suspensions: []SuspensionWindow{
					{From: mustTime(t, tc.from), To: mustTime(t, tc.to)},
				},
			}
			if got := suspendedDuring(tech, w); got != tc.want {
				t.Fatalf("suspendedDuring = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestAvailableTechniciansFiltersSuspended(t *testing.T) {
	w := window{
		start: mustTime(t, "2026-09-15T09:00"),
		end:   mustTime(t, "2026-09-15T11:00"),
	}
	free := Technician{ID: uuid.New()}
	suspended := Technician{
		ID: uuid.New(),
		Suspensions: []SuspensionWindow{
			{From: mustTime(t, "2026-09-15T00:00"), To: mustTime(t, "2026-09-15T23:59")},
		},
	}

	available := availableTechnicians([]Technician{free, suspended}, w)
	if len(available) != 1 || available[0] != free.ID {
		t.Fatalf("available = %v, want only %s", available, free.ID)
	}
}

func TestCreateOrderAllTechniciansSuspended(t *testing.T) {
	customerID := uuid.New()
	techID := uuid.New()

	suspended := Technician{
		ID: techID,
		Suspensions: []SuspensionWindow{
			{From: mustTime(t, "2026-09-01T00:00"), To: mustTime(t, "2026-09-30T23:59")},
		},
	}
	reg := newFakeRegistry()
	reg.register("washing machine", repository.ModeHomeRepair, techID)
	svc := newTestService(newFakeRepo(), newFakeDirectory(suspended), reg, newFakeCustomers(customerID))

	_, err := svc.CreateOrder(context.Background(), createRequest(customerID))
	if !apperr.Is(err, apperr.KindConflict) {
		t.Fatalf("err = %v, want conflict", err)
	}
}

func TestCreateOrderPicksAvailableOverSuspended(t *testing.T) {
	customerID := uuid.New()
	suspendedID := uuid.New()
	freeID := uuid.New()

	suspended := Technician{
		ID: suspendedID,
		Suspensions: []SuspensionWindow{
			{From: mustTime(t, "2026-09-15T00:00"), To: mustTime(t, "2026-09-15T23:59")},
		},
	}
	reg := newFakeRegistry()
	reg.register("washing machine", repository.ModeHomeRepair, suspendedID, freeID)
	svc := newTestService(newFakeRepo(), newFakeDirectory(suspended, Technician{ID: freeID}), reg, newFakeCustomers(customerID))

	resp, err := svc.CreateOrder(context.Background(), createRequest(customerID))
	if err != nil {
		t.Fatalf("CreateOrder: %v", err)
	}
	if resp.AssignedTechnicianID != freeID {
		t.Fatalf("assigned = %s, want the available technician %s", resp.AssignedTechnicianID, freeID)
	}
}

func TestUniformRandomPolicyStaysInCandidateSet(t *testing.T) {
	policy := NewUniformRandomPolicy()
	candidates := []uuid.UUID{uuid.New(), uuid.New(), uuid.New()}
	set := map[uuid.UUID]bool{}
	for _, id := range candidates {
		set[id] = true
	}

	for i := 0; i < 100; i++ {
		if picked := policy.Select(candidates); !set[picked] {
			t.Fatalf("policy picked %s, not in candidate set", picked)
		}
	}
}

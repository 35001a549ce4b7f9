package service

import (
	"context"
	"testing"

	"github.com/google/uuid"

	"fixserve_backend/internal/orders/repository"
	"fixserve_backend/internal/orders/transport"
	"fixserve_backend/platform/apperr"
	"fixserve_backend/platform/logger"
)

func newTestService(repo repository.Repository, dir TechnicianDirectory, reg DeviceRegistry, cust CustomerDirectory) *Service {
	return New(Deps{
		Repo:        repo,
		Technicians: dir,
		Devices:     reg,
		Customers:   cust,
		Policy:      firstPolicy{},
		Log:         logger.New("development"),
	})
}

func createRequest(customerID uuid.UUID) transport.CreateOrderRequest {
	return transport.CreateOrderRequest{
		CustomerID:      customerID,
		ApplianceName:   "washing machine",
		ServiceMode:     "HomeRepair",
		Brand:           "LG",
		ServiceDate:     "2026-09-15",
		ServiceFromTime: "09:00",
		ServiceToTime:   "11:00",
		Address: transport.AddressPayload{
			Street:  "MG Road",
			Pincode: "560001",
		},
	}
}

func TestCreateOrderAssignsTechnicianAndCreatesStatus(t *testing.T) {
	customerID := uuid.New()
	techID := uuid.New()

	repo := newFakeRepo()
	reg := newFakeRegistry()
	reg.register("washing machine", repository.ModeHomeRepair, techID)
	svc := newTestService(repo, newFakeDirectory(Technician{ID: techID}), reg, newFakeCustomers(customerID))

	resp, err := svc.CreateOrder(context.Background(), createRequest(customerID))
	if err != nil {
		t.Fatalf("CreateOrder: %v", err)
	}
	if resp.AssignedTechnicianID != techID {
		t.Fatalf("assigned technician = %s, want %s", resp.AssignedTechnicianID, techID)
	}
	if resp.Status.Status != string(repository.StatusUnaccepted) {
		t.Fatalf("initial status = %q, want unaccepted", resp.Status.Status)
	}
	if resp.Status.PaymentStatus != string(repository.PaymentIncomplete) {
		t.Fatalf("initial payment status = %q, want incomplete", resp.Status.PaymentStatus)
	}

	status, err := repo.GetStatus(context.Background(), resp.Order.ID)
	if err != nil {
		t.Fatalf("status record missing after creation: %v", err)
	}
	if status.Status != repository.StatusUnaccepted {
		t.Fatalf("stored status = %q, want unaccepted", status.Status)
	}
}

func TestCreateOrderUnknownCustomer(t *testing.T) {
	techID := uuid.New()
	reg := newFakeRegistry()
	reg.register("washing machine", repository.ModeHomeRepair, techID)
	svc := newTestService(newFakeRepo(), newFakeDirectory(Technician{ID: techID}), reg, newFakeCustomers())

	_, err := svc.CreateOrder(context.Background(), createRequest(uuid.New()))
	if !apperr.Is(err, apperr.KindNotFound) {
		t.Fatalf("err = %v, want not found", err)
	}
}

func TestCreateOrderNoPoolForAppliance(t *testing.T) {
	customerID := uuid.New()
	svc := newTestService(newFakeRepo(), newFakeDirectory(), newFakeRegistry(), newFakeCustomers(customerID))

	_, err := svc.CreateOrder(context.Background(), createRequest(customerID))
	if !apperr.Is(err, apperr.KindNotFound) {
		t.Fatalf("err = %v, want not found", err)
	}
}

func TestCreateOrderInvalidWindow(t *testing.T) {
	customerID := uuid.New()
	svc := newTestService(newFakeRepo(), newFakeDirectory(), newFakeRegistry(), newFakeCustomers(customerID))

	req := createRequest(customerID)
	req.ServiceFromTime = "11:00"
	req.ServiceToTime = "09:00"
	_, err := svc.CreateOrder(context.Background(), req)
	if !apperr.Is(err, apperr.KindValidation) {
		t.Fatalf("err = %v, want validation", err)
	}
}

func TestCreateOrderAtomicityOnRepositoryFailure(t *testing.T) {
	customerID := uuid.New()
	techID := uuid.New()

	repo := newFakeRepo()
	repo.createErr = errBoom
	reg := newFakeRegistry()
	reg.register("washing machine", repository.ModeHomeRepair, techID)
	svc := newTestService(repo, newFakeDirectory(Technician{ID: techID}), reg, newFakeCustomers(customerID))

	_, err := svc.CreateOrder(context.Background(), createRequest(customerID))
	if err == nil {
		t.Fatal("expected error")
	}
	if len(repo.orders) != 0 || len(repo.statuses) != 0 {
		t.Fatalf("partial state after failed creation: %d orders, %d statuses", len(repo.orders), len(repo.statuses))
	}
}

func TestListUnacceptedRequiresKnownTechnician(t *testing.T) {
	svc := newTestService(newFakeRepo(), newFakeDirectory(), newFakeRegistry(), newFakeCustomers())

	_, err := svc.ListUnacceptedByTechnician(context.Background(), uuid.New())
	if !apperr.Is(err, apperr.KindNotFound) {
		t.Fatalf("err = %v, want not found", err)
	}
}

func TestListUnacceptedEmptyListIsValid(t *testing.T) {
	techID := uuid.New()
	svc := newTestService(newFakeRepo(), newFakeDirectory(Technician{ID: techID}), newFakeRegistry(), newFakeCustomers())

	resp, err := svc.ListUnacceptedByTechnician(context.Background(), techID)
	if err != nil {
		t.Fatalf("ListUnacceptedByTechnician: %v", err)
	}
	if resp.Total != 0 || len(resp.Items) != 0 {
		t.Fatalf("expected empty list, got %d items", len(resp.Items))
	}
}

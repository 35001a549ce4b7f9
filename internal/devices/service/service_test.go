package service

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"fixserve_backend/internal/devices/repository"
	"fixserve_backend/internal/devices/transport"
	"fixserve_backend/platform/apperr"
	"fixserve_backend/platform/logger"
)

type fakeDeviceRepo struct {
	devices       map[string]repository.Device
	findPoolCalls int
}

func newFakeDeviceRepo() *fakeDeviceRepo {
	return &fakeDeviceRepo{devices: make(map[string]repository.Device)}
}

func key(name, mode string) string { return name + "/" + mode }

func (r *fakeDeviceRepo) Upsert(_ context.Context, params repository.UpsertDeviceParams) (repository.Device, error) {
	dev, ok := r.devices[key(params.Name, params.ServiceMode)]
	if !ok {
		dev = repository.Device{
			ID:          uuid.New(),
			Name:        params.Name,
			ServiceMode: params.ServiceMode,
			AddedAt:     time.Now(),
		}
	}
	dev.TechnicianIDs = params.TechnicianIDs
	r.devices[key(params.Name, params.ServiceMode)] = dev
	return dev, nil
}

func (r *fakeDeviceRepo) GetByID(_ context.Context, id uuid.UUID) (repository.Device, error) {
	for _, dev := range r.devices {
		if dev.ID == id {
			return dev, nil
		}
	}
	return repository.Device{}, apperr.NotFound("device not found")
}

func (r *fakeDeviceRepo) FindPool(_ context.Context, name, serviceMode string) ([]uuid.UUID, error) {
	r.findPoolCalls++
	dev, ok := r.devices[key(name, serviceMode)]
	if !ok {
		return nil, apperr.NotFound("no technicians registered for this appliance and service mode")
	}
	return dev.TechnicianIDs, nil
}

func (r *fakeDeviceRepo) List(_ context.Context) ([]repository.Device, error) {
	var result []repository.Device
	for _, dev := range r.devices {
		result = append(result, dev)
	}
	return result, nil
}

func (r *fakeDeviceRepo) SetPool(_ context.Context, id uuid.UUID, technicianIDs []uuid.UUID) (repository.Device, error) {
	for k, dev := range r.devices {
		if dev.ID == id {
			dev.TechnicianIDs = technicianIDs
			r.devices[k] = dev
			return dev, nil
		}
	}
	return repository.Device{}, apperr.NotFound("device not found")
}

var _ repository.Repository = (*fakeDeviceRepo)(nil)

type allowAllVerifier struct{}

func (allowAllVerifier) GetByID(_ context.Context, id uuid.UUID) (uuid.UUID, error) {
	return id, nil
}

type denyAllVerifier struct{}

func (denyAllVerifier) GetByID(_ context.Context, _ uuid.UUID) (uuid.UUID, error) {
	return uuid.Nil, apperr.NotFound("technician not found")
}

func newCachedService(t *testing.T, repo repository.Repository) (*Service, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	log := logger.New("development")
	cache := NewPoolCache(client, time.Minute, log)
	return New(repo, cache, allowAllVerifier{}, log), mr
}

func TestFindPoolReadThroughCache(t *testing.T) {
	repo := newFakeDeviceRepo()
	svc, _ := newCachedService(t, repo)
	ctx := context.Background()

	techID := uuid.New()
	if _, err := svc.Upsert(ctx, transport.UpsertDeviceRequest{
		Name:          "refrigerator",
		ServiceMode:   "HomeRepair",
		TechnicianIDs: []uuid.UUID{techID},
	}); err != nil {
		t.Fatalf("upsert: %v", err)
	}

	for i := 0; i < 3; i++ {
		pool, err := svc.FindPool(ctx, "refrigerator", "HomeRepair")
		if err != nil {
			t.Fatalf("find pool: %v", err)
		}
		if len(pool) != 1 || pool[0] != techID {
			t.Fatalf("pool = %v, want [%s]", pool, techID)
		}
	}

	if repo.findPoolCalls != 1 {
		t.Fatalf("repository hit %d times, want 1 (cache should serve repeats)", repo.findPoolCalls)
	}
}

func TestUpsertInvalidatesCache(t *testing.T) {
	repo := newFakeDeviceRepo()
	svc, _ := newCachedService(t, repo)
	ctx := context.Background()

	oldTech := uuid.New()
	newTech := uuid.New()
	if _, err := svc.Upsert(ctx, transport.UpsertDeviceRequest{
		Name:          "refrigerator",
		ServiceMode:   "HomeRepair",
		TechnicianIDs: []uuid.UUID{oldTech},
	}); err != nil {
		t.Fatalf("upsert: %v", err)
	}
	if _, err := svc.FindPool(ctx, "refrigerator", "HomeRepair"); err != nil {
		t.Fatalf("warm cache: %v", err)
	}

	if _, err := svc.Upsert(ctx, transport.UpsertDeviceRequest{
		Name:          "refrigerator",
		ServiceMode:   "HomeRepair",
		TechnicianIDs: []uuid.UUID{newTech},
	}); err != nil {
		t.Fatalf("second upsert: %v", err)
	}

	pool, err := svc.FindPool(ctx, "refrigerator", "HomeRepair")
	if err != nil {
		t.Fatalf("find pool: %v", err)
	}
	if len(pool) != 1 || pool[0] != newTech {
		t.Fatalf("pool = %v, want refreshed [%s]", pool, newTech)
	}
}

func TestFindPoolSurvivesRedisOutage(t *testing.T) {
	repo := newFakeDeviceRepo()
	svc, mr := newCachedService(t, repo)
	ctx := context.Background()

	techID := uuid.New()
	if _, err := svc.Upsert(ctx, transport.UpsertDeviceRequest{
		Name:          "microwave",
		ServiceMode:   "PickupRepairDrop",
		TechnicianIDs: []uuid.UUID{techID},
	}); err != nil {
		t.Fatalf("upsert: %v", err)
	}

	mr.Close()

	pool, err := svc.FindPool(ctx, "microwave", "PickupRepairDrop")
	if err != nil {
		t.Fatalf("find pool with redis down: %v", err)
	}
	if len(pool) != 1 || pool[0] != techID {
		t.Fatalf("pool = %v, want [%s]", pool, techID)
	}
}

func TestUpsertRejectsUnknownTechnician(t *testing.T) {
	repo := newFakeDeviceRepo()
	log := logger.New("development")
	svc := New(repo, NewPoolCache(nil, time.Minute, log), denyAllVerifier{}, log)

	_, err := svc.Upsert(context.Background(), transport.UpsertDeviceRequest{
		Name:          "oven",
		ServiceMode:   "HomeRepair",
		TechnicianIDs: []uuid.UUID{uuid.New()},
	})
	if !apperr.Is(err, apperr.KindValidation) {
		t.Fatalf("err = %v, want validation", err)
	}
}

func TestFindPoolUnknownApplianceIsNotFound(t *testing.T) {
	repo := newFakeDeviceRepo()
	log := logger.New("development")
	svc := New(repo, NewPoolCache(nil, time.Minute, log), allowAllVerifier{}, log)

	_, err := svc.FindPool(context.Background(), "toaster", "HomeRepair")
	if !apperr.Is(err, apperr.KindNotFound) {
		t.Fatalf("err = %v, want not found", err)
	}
}

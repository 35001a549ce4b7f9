// Package service implements the appliance catalog: admin-managed mappings
// from appliance and service mode to the technician pool, with a Redis
// read-through cache in front of the pool lookup.
package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"fixserve_backend/internal/devices/repository"
	"fixserve_backend/internal/devices/transport"
	"fixserve_backend/platform/apperr"
	"fixserve_backend/platform/logger"
)

// TechnicianVerifier checks that pool members are registered technicians.
type TechnicianVerifier interface {
	GetByID(ctx context.Context, id uuid.UUID) (uuid.UUID, error)
}

// Service provides business logic for the device catalog.
type Service struct {
	repo        repository.Repository
	cache       *PoolCache
	technicians TechnicianVerifier
	log         *logger.Logger
}

// New creates a new devices service. The cache may be nil.
func New(repo repository.Repository, cache *PoolCache, technicians TechnicianVerifier, log *logger.Logger) *Service {
	return &Service{repo: repo, cache: cache, technicians: technicians, log: log}
}

// Upsert creates or replaces a catalog entry. Every technician in the pool
// must be registered.
func (s *Service) Upsert(ctx context.Context, req transport.UpsertDeviceRequest) (transport.DeviceResponse, error) {
	if err := s.verifyPool(ctx, req.TechnicianIDs); err != nil {
		return transport.DeviceResponse{}, err
	}

	dev, err := s.repo.Upsert(ctx, repository.UpsertDeviceParams{
		Name:          req.Name,
		ServiceMode:   req.ServiceMode,
		TechnicianIDs: req.TechnicianIDs,
	})
	if err != nil {
		return transport.DeviceResponse{}, err
	}

	s.cache.Invalidate(ctx, dev.Name, dev.ServiceMode)
	s.log.Info("device catalog entry upserted", "device_id", dev.ID, "name", dev.Name, "mode", dev.ServiceMode, "pool_size", len(dev.TechnicianIDs))
	return toDeviceResponse(dev), nil
}

// SetPool replaces the technician pool of an existing entry.
func (s *Service) SetPool(ctx context.Context, id uuid.UUID, req transport.SetPoolRequest) (transport.DeviceResponse, error) {
	if err := s.verifyPool(ctx, req.TechnicianIDs); err != nil {
		return transport.DeviceResponse{}, err
	}

	dev, err := s.repo.SetPool(ctx, id, req.TechnicianIDs)
	if err != nil {
		return transport.DeviceResponse{}, err
	}

	s.cache.Invalidate(ctx, dev.Name, dev.ServiceMode)
	s.log.Info("device pool replaced", "device_id", dev.ID, "pool_size", len(dev.TechnicianIDs))
	return toDeviceResponse(dev), nil
}

// GetByID fetches a single catalog entry.
func (s *Service) GetByID(ctx context.Context, id uuid.UUID) (transport.DeviceResponse, error) {
	dev, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return transport.DeviceResponse{}, err
	}
	return toDeviceResponse(dev), nil
}

// List returns the whole catalog.
func (s *Service) List(ctx context.Context) (transport.DeviceListResponse, error) {
	devices, err := s.repo.List(ctx)
	if err != nil {
		return transport.DeviceListResponse{}, err
	}
	items := make([]transport.DeviceResponse, 0, len(devices))
	for _, dev := range devices {
		items = append(items, toDeviceResponse(dev))
	}
	return transport.DeviceListResponse{Items: items, Total: len(items)}, nil
}

// FindPool resolves the technician pool for an appliance and mode, consulting
// the cache first.
func (s *Service) FindPool(ctx context.Context, name, serviceMode string) ([]uuid.UUID, error) {
	if ids, ok := s.cache.Get(ctx, name, serviceMode); ok {
		return ids, nil
	}

	ids, err := s.repo.FindPool(ctx, name, serviceMode)
	if err != nil {
		return nil, err
	}

	s.cache.Set(ctx, name, serviceMode, ids)
	return ids, nil
}

func (s *Service) verifyPool(ctx context.Context, ids []uuid.UUID) error {
	for _, id := range ids {
		if _, err := s.technicians.GetByID(ctx, id); err != nil {
			if apperr.Is(err, apperr.KindNotFound) {
				return apperr.Validation("technician " + id.String() + " is not registered")
			}
			return err
		}
	}
	return nil
}

func toDeviceResponse(dev repository.Device) transport.DeviceResponse {
	ids := dev.TechnicianIDs
	if ids == nil {
		ids = []uuid.UUID{}
	}
	return transport.DeviceResponse{
		ID:            dev.ID,
		Name:          dev.Name,
		ServiceMode:   dev.ServiceMode,
		TechnicianIDs: ids,
		AddedAt:       dev.AddedAt.Format(time.RFC3339),
	}
}

package adapters

import (
	"context"

	"github.com/google/uuid"

	devsvc "fixserve_backend/internal/devices/service"
	ordersrepo "fixserve_backend/internal/orders/repository"
	ordersvc "fixserve_backend/internal/orders/service"
)

// DeviceRegistryAdapter adapts the devices service for the orders module.
// It implements orders/service.DeviceRegistry.
type DeviceRegistryAdapter struct {
	svc *devsvc.Service
}

func NewDeviceRegistryAdapter(svc *devsvc.Service) *DeviceRegistryAdapter {
	return &DeviceRegistryAdapter{svc: svc}
}

func (a *DeviceRegistryAdapter) FindPool(ctx context.Context, applianceName string, mode ordersrepo.ServiceMode) ([]uuid.UUID, error) {
	return a.svc.FindPool(ctx, applianceName, string(mode))
}

var _ ordersvc.DeviceRegistry = (*DeviceRegistryAdapter)(nil)

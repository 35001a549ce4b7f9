package adapters

import (
	"context"

	"github.com/google/uuid"

	custsvc "fixserve_backend/internal/customers/service"
	ordersvc "fixserve_backend/internal/orders/service"
)

// CustomerDirectoryAdapter adapts the customers service for the orders module.
// It implements orders/service.CustomerDirectory.
type CustomerDirectoryAdapter struct {
	svc *custsvc.Service
}

func NewCustomerDirectoryAdapter(svc *custsvc.Service) *CustomerDirectoryAdapter {
	return &CustomerDirectoryAdapter{svc: svc}
}

func (a *CustomerDirectoryAdapter) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	return a.svc.Exists(ctx, id)
}

var _ ordersvc.CustomerDirectory = (*CustomerDirectoryAdapter)(nil)

package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"fixserve_backend/internal/orders/repository"
)

// SuspensionWindow is an inclusive interval during which a technician cannot
// be scheduled.
type SuspensionWindow struct {
	From time.Time
	To   time.Time
}

// Technician is the read model this module needs from the technician directory.
type Technician struct {
	ID          uuid.UUID
	Name        string
	Suspensions []SuspensionWindow
}

// TechnicianDirectory is the read-only view onto technician identity and
// suspension windows.
type TechnicianDirectory interface {
	GetByID(ctx context.Context, id uuid.UUID) (Technician, error)
	ListByIDs(ctx context.Context, ids []uuid.UUID) ([]Technician, error)
}

// DeviceRegistry resolves the technician pool eligible to service an
// appliance under a given mode. A missing entry yields a not-found error.
type DeviceRegistry interface {
	FindPool(ctx context.Context, applianceName string, mode repository.ServiceMode) ([]uuid.UUID, error)
}

// CustomerDirectory checks customer existence for order creation.
type CustomerDirectory interface {
	Exists(ctx context.Context, id uuid.UUID) (bool, error)
}

// ImageChecker verifies that a referenced order image exists in external
// storage. Image bytes never flow through this module.
type ImageChecker interface {
	Exists(ctx context.Context, id uuid.UUID) (bool, error)
}

// SelectionPolicy picks one technician from a non-empty candidate set.
// The default policy selects uniformly at random; load-aware policies can be
// substituted without touching the lifecycle code.
type SelectionPolicy interface {
	Select(candidates []uuid.UUID) uuid.UUID
}

// MirrorEnqueuer schedules a retry when the best-effort mirror sync onto the
// order row fails.
type MirrorEnqueuer interface {
	EnqueueMirrorSync(ctx context.Context, orderID uuid.UUID) error
}

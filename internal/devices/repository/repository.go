// Package repository provides data access for the appliance catalog: which
// technicians can service which appliance under which mode.
package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"fixserve_backend/platform/apperr"
)

// Device is a catalog entry mapping an appliance and service mode to the pool
// of technicians qualified to handle it.
type Device struct {
	ID            uuid.UUID
	Name          string
	ServiceMode   string
	TechnicianIDs []uuid.UUID
	AddedAt       time.Time
}

// UpsertDeviceParams contains data for creating or replacing a catalog entry.
type UpsertDeviceParams struct {
	Name          string
	ServiceMode   string
	TechnicianIDs []uuid.UUID
}

// Repository defines data access for the device catalog.
type Repository interface {
	Upsert(ctx context.Context, params UpsertDeviceParams) (Device, error)
	GetByID(ctx context.Context, id uuid.UUID) (Device, error)
	FindPool(ctx context.Context, name, serviceMode string) ([]uuid.UUID, error)
	List(ctx context.Context) ([]Device, error)
	SetPool(ctx context.Context, id uuid.UUID, technicianIDs []uuid.UUID) (Device, error)
}

// Repo implements Repository backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new device repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

var _ Repository = (*Repo)(nil)

const deviceColumns = `id, name, service_mode, technician_ids, added_at`

// Upsert creates the catalog entry or replaces its technician pool when the
// (name, mode) pair already exists.
func (r *Repo) Upsert(ctx context.Context, params UpsertDeviceParams) (Device, error) {
	var dev Device
	err := r.pool.QueryRow(ctx, `
		INSERT INTO devices (name, service_mode, technician_ids)
		VALUES ($1, $2, $3)
		ON CONFLICT (name, service_mode)
		DO UPDATE SET technician_ids = EXCLUDED.technician_ids
		RETURNING `+deviceColumns,
		params.Name, params.ServiceMode, params.TechnicianIDs,
	).Scan(&dev.ID, &dev.Name, &dev.ServiceMode, &dev.TechnicianIDs, &dev.AddedAt)
	if err != nil {
		return Device{}, err
	}
	return dev, nil
}

// GetByID fetches a catalog entry by id.
func (r *Repo) GetByID(ctx context.Context, id uuid.UUID) (Device, error) {
	var dev Device
	err := r.pool.QueryRow(ctx, `
		SELECT `+deviceColumns+` FROM devices WHERE id = $1`, id,
	).Scan(&dev.ID, &dev.Name, &dev.ServiceMode, &dev.TechnicianIDs, &dev.AddedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return Device{}, apperr.NotFound("device not found")
	}
	if err != nil {
		return Device{}, err
	}
	return dev, nil
}

// FindPool returns the technician pool for an appliance and mode. A missing
// entry is a not-found error; an existing entry with an empty pool returns an
// empty slice.
func (r *Repo) FindPool(ctx context.Context, name, serviceMode string) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	err := r.pool.QueryRow(ctx, `
		SELECT technician_ids FROM devices WHERE name = $1 AND service_mode = $2`,
		name, serviceMode,
	).Scan(&ids)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperr.NotFound("no technicians registered for this appliance and service mode")
	}
	if err != nil {
		return nil, err
	}
	if ids == nil {
		ids = []uuid.UUID{}
	}
	return ids, nil
}

// List returns the whole catalog ordered by name then mode.
func (r *Repo) List(ctx context.Context) ([]Device, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+deviceColumns+` FROM devices ORDER BY name, service_mode`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	devices := []Device{}
	for rows.Next() {
		var dev Device
		if err := rows.Scan(&dev.ID, &dev.Name, &dev.ServiceMode, &dev.TechnicianIDs, &dev.AddedAt); err != nil {
			return nil, err
		}
		devices = append(devices, dev)
	}
	return devices, rows.Err()
}

// SetPool replaces the technician pool of an existing catalog entry.
func (r *Repo) SetPool(ctx context.Context, id uuid.UUID, technicianIDs []uuid.UUID) (Device, error) {
	var dev Device
	err := r.pool.QueryRow(ctx, `
		UPDATE devices SET technician_ids = $2 WHERE id = $1
		RETURNING `+deviceColumns,
		id, technicianIDs,
	).Scan(&dev.ID, &dev.Name, &dev.ServiceMode, &dev.TechnicianIDs, &dev.AddedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return Device{}, apperr.NotFound("device not found")
	}
	if err != nil {
		return Device{}, err
	}
	return dev, nil
}

// Package repository provides data access for technicians and their
// suspension windows.
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

// Technician is a field worker who can be assigned repair orders.
type Technician struct {
	ID        uuid.UUID
	Name      string
	Mobile    string
	Email     *string
	CreatedAt time.Time
}

// Suspension is an inclusive interval during which a technician cannot be
// scheduled.
type Suspension struct {
	ID           uuid.UUID
	TechnicianID uuid.UUID
	From         time.Time
	To           time.Time
}

// CreateTechnicianParams contains data for registering a technician.
type CreateTechnicianParams struct {
	Name   string
	Mobile string
	Email  *string
}

// Repository defines data access for technicians.
type Repository interface {
	Create(ctx context.Context, params CreateTechnicianParams) (Technician, error)
	GetByID(ctx context.Context, id uuid.UUID) (Technician, error)
	List(ctx context.Context) ([]Technician, error)
	ListByIDs(ctx context.Context, ids []uuid.UUID) ([]Technician, error)
	AddSuspension(ctx context.Context, technicianID uuid.UUID, from, to time.Time) (Suspension, error)
	ListSuspensions(ctx context.Context, technicianID uuid.UUID) ([]Suspension, error)
	ListSuspensionsByTechnicians(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID][]Suspension, error)
	DeleteSuspension(ctx context.Context, technicianID, suspensionID uuid.UUID) error
}

// Repo implements Repository backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new technician repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

var _ Repository = (*Repo)(nil)

const technicianColumns = `id, name, mobile, email, created_at`

// Create registers a new technician. Mobile numbers are unique; a duplicate
// surfaces as a conflict.
func (r *Repo) Create(ctx context.Context, params CreateTechnicianParams) (Technician, error) {
	var tech Technician
	err := r.pool.QueryRow(ctx, `
		INSERT INTO technicians (name, mobile, email)
		VALUES ($1, $2, $3)
		RETURNING `+technicianColumns,
		params.Name, params.Mobile, params.Email,
	).Scan(&tech.ID, &tech.Name, &tech.Mobile, &tech.Email, &tech.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return Technician{}, apperr.Conflict("a technician with this mobile number already exists")
		}
		return Technician{}, err
	}
	return tech, nil
}

// GetByID fetches a technician by id.
func (r *Repo) GetByID(ctx context.Context, id uuid.UUID) (Technician, error) {
	var tech Technician
	err := r.pool.QueryRow(ctx, `
		SELECT `+technicianColumns+` FROM technicians WHERE id = $1`, id,
	).Scan(&tech.ID, &tech.Name, &tech.Mobile, &tech.Email, &tech.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return Technician{}, apperr.NotFound("technician not found")
	}
	if err != nil {
		return Technician{}, err
	}
	return tech, nil
}

// List returns all technicians ordered by registration time.
func (r *Repo) List(ctx context.Context) ([]Technician, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+technicianColumns+` FROM technicians ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanTechnicians(rows)
}

// ListByIDs fetches the technicians whose ids appear in the given set.
// Unknown ids are silently skipped.
func (r *Repo) ListByIDs(ctx context.Context, ids []uuid.UUID) ([]Technician, error) {
	if len(ids) == 0 {
		return []Technician{}, nil
	}
	rows, err := r.pool.Query(ctx, `
		SELECT `+technicianColumns+` FROM technicians WHERE id = ANY($1)`, ids)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanTechnicians(rows)
}

// AddSuspension records a suspension window for a technician.
func (r *Repo) AddSuspension(ctx context.Context, technicianID uuid.UUID, from, to time.Time) (Suspension, error) {
	var susp Suspension
	err := r.pool.QueryRow(ctx, `
		INSERT INTO technician_suspensions (technician_id, suspended_from, suspended_to)
		VALUES ($1, $2, $3)
		RETURNING id, technician_id, suspended_from, suspended_to`,
		technicianID, from, to,
	).Scan(&susp.ID, &susp.TechnicianID, &susp.From, &susp.To)
	if err != nil {
		if isForeignKeyViolation(err) {
			return Suspension{}, apperr.NotFound("technician not found")
		}
		return Suspension{}, err
	}
	return susp, nil
}

// ListSuspensions returns a technician's suspension windows, earliest first.
func (r *Repo) ListSuspensions(ctx context.Context, technicianID uuid.UUID) ([]Suspension, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, technician_id, suspended_from, suspended_to
		FROM technician_suspensions
		WHERE technician_id = $1
		ORDER BY suspended_from`, technicianID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanSuspensions(rows)
}

// ListSuspensionsByTechnicians loads suspension windows for a set of
// technicians in one round trip, keyed by technician id.
func (r *Repo) ListSuspensionsByTechnicians(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID][]Suspension, error) {
	result := make(map[uuid.UUID][]Suspension, len(ids))
	if len(ids) == 0 {
		return result, nil
	}
	rows, err := r.pool.Query(ctx, `
		SELECT id, technician_id, suspended_from, suspended_to
		FROM technician_suspensions
		WHERE technician_id = ANY($1)
		ORDER BY suspended_from`, ids)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	suspensions, err := scanSuspensions(rows)
	if err != nil {
		return nil, err
	}
	for _, susp := range suspensions {
		result[susp.TechnicianID] = append(result[susp.TechnicianID], susp)
	}
	return result, nil
}

// DeleteSuspension removes a suspension window. The technician id guards
// against deleting another technician's window by guessing ids.
func (r *Repo) DeleteSuspension(ctx context.Context, technicianID, suspensionID uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `
		DELETE FROM technician_suspensions WHERE id = $1 AND technician_id = $2`,
		suspensionID, technicianID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("suspension not found")
	}
	return nil
}

func scanTechnicians(rows pgx.Rows) ([]Technician, error) {
	technicians := []Technician{}
	for rows.Next() {
		var tech Technician
		if err := rows.Scan(&tech.ID, &tech.Name, &tech.Mobile, &tech.Email, &tech.CreatedAt); err != nil {
			return nil, err
		}
		technicians = append(technicians, tech)
	}
	return technicians, rows.Err()
}

func scanSuspensions(rows pgx.Rows) ([]Suspension, error) {
	suspensions := []Suspension{}
	for rows.Next() {
		var susp Suspension
		if err := rows.Scan(&susp.ID, &susp.TechnicianID, &susp.From, &susp.To); err != nil {
			return nil, err
		}
		suspensions = append(suspensions, susp)
	}
	return suspensions, rows.Err()
}

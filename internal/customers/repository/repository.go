// Package repository provides data access for customers.
package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"fixserve_backend/platform/apperr"
)

// Customer is a registered customer who can place repair orders.
type Customer struct {
	ID        uuid.UUID
	Name      string
	Mobile    string
	Email     *string
	Address   string
	CreatedAt time.Time
}

// CreateCustomerParams contains data for registering a customer.
type CreateCustomerParams struct {
	Name    string
	Mobile  string
	Email   *string
	Address string
}

// Repository defines data access for customers.
type Repository interface {
	Create(ctx context.Context, params CreateCustomerParams) (Customer, error)
	GetByID(ctx context.Context, id uuid.UUID) (Customer, error)
	Exists(ctx context.Context, id uuid.UUID) (bool, error)
}

// Repo implements Repository backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new customer repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

var _ Repository = (*Repo)(nil)

const customerColumns = `id, name, mobile, email, address, created_at`

// Create registers a new customer.
func (r *Repo) Create(ctx context.Context, params CreateCustomerParams) (Customer, error) {
	var cust Customer
	err := r.pool.QueryRow(ctx, `
		INSERT INTO customers (name, mobile, email, address)
		VALUES ($1, $2, $3, $4)
		RETURNING `+customerColumns,
		params.Name, params.Mobile, params.Email, params.Address,
	).Scan(&cust.ID, &cust.Name, &cust.Mobile, &cust.Email, &cust.Address, &cust.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return Customer{}, apperr.Conflict("a customer with this mobile number already exists")
		}
		return Customer{}, err
	}
	return cust, nil
}

// GetByID fetches a customer by id.
func (r *Repo) GetByID(ctx context.Context, id uuid.UUID) (Customer, error) {
	var cust Customer
	err := r.pool.QueryRow(ctx, `
		SELECT `+customerColumns+` FROM customers WHERE id = $1`, id,
	).Scan(&cust.ID, &cust.Name, &cust.Mobile, &cust.Email, &cust.Address, &cust.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return Customer{}, apperr.NotFound("customer not found")
	}
	if err != nil {
		return Customer{}, err
	}
	return cust, nil
}

// Exists reports whether a customer with the id is registered.
func (r *Repo) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx, `
		SELECT EXISTS (SELECT 1 FROM customers WHERE id = $1)`, id,
	).Scan(&exists)
	if err != nil {
		return false, err
	}
	return exists, nil
}

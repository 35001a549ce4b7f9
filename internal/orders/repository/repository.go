package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"fixserve_backend/platform/apperr"
)

const (
	orderNotFoundMessage  = "order not found"
	statusNotFoundMessage = "order status not found"
)

const orderColumns = `
	id, customer_id, appliance_name, service_mode, brand,
	service_date, service_from_time, service_to_time,
	technician_id, image_id,
	address_house_number, address_landmark, address_street, address_city, address_pincode,
	declined_by, cost, payment_status, created_at`

// Repo implements the Repository interface with PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new orders repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// Compile-time check that Repo implements Repository.
var _ Repository = (*Repo)(nil)

// CreateWithStatus inserts the order and its initial status record in one
// transaction so the "no order without status" invariant holds even when the
// second write fails mid-flight.
func (r *Repo) CreateWithStatus(ctx context.Context, params CreateOrderParams) (Order, OrderStatus, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return Order{}, OrderStatus{}, fmt.Errorf("begin create order: %w", err)
	}
	defer tx.Rollback(ctx)

	orderID := uuid.New()

	orderQuery := `
		INSERT INTO repair_orders (
			id, customer_id, appliance_name, service_mode, brand,
			service_date, service_from_time, service_to_time,
			technician_id, image_id,
			address_house_number, address_landmark, address_street, address_city, address_pincode
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
		RETURNING ` + orderColumns

	var order Order
	err = tx.QueryRow(ctx, orderQuery,
		orderID, params.CustomerID, params.ApplianceName, params.ServiceMode, params.Brand,
		params.ServiceDate, params.ServiceFromTime, params.ServiceToTime,
		params.TechnicianID, params.ImageID,
		params.Address.HouseNumber, params.Address.Landmark, params.Address.Street,
		params.Address.City, params.Address.Pincode,
	).Scan(orderScanTargets(&order)...)
	if err != nil {
		return Order{}, OrderStatus{}, fmt.Errorf("insert order: %w", err)
	}

	statusQuery := `
		INSERT INTO repair_order_status (order_id)
		VALUES ($1)
		RETURNING order_id, status, cost, service_charge, repair_details, payment_status, updated_at`

	var status OrderStatus
	err = tx.QueryRow(ctx, statusQuery, orderID).Scan(
		&status.OrderID, &status.Status, &status.Cost, &status.ServiceCharge,
		&status.RepairDetails, &status.PaymentStatus, &status.UpdatedAt,
	)
	if err != nil {
		return Order{}, OrderStatus{}, fmt.Errorf("insert order status: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return Order{}, OrderStatus{}, fmt.Errorf("commit create order: %w", err)
	}

	return order, status, nil
}

// GetOrder retrieves an order by ID.
func (r *Repo) GetOrder(ctx context.Context, orderID uuid.UUID) (Order, error) {
	query := `SELECT ` + orderColumns + ` FROM repair_orders WHERE id = $1`

	var order Order
	err := r.pool.QueryRow(ctx, query, orderID).Scan(orderScanTargets(&order)...)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Order{}, apperr.NotFound(orderNotFoundMessage)
		}
		return Order{}, fmt.Errorf("get order by id: %w", err)
	}

	return order, nil
}

// ListByCustomer retrieves a customer's orders, newest first.
func (r *Repo) ListByCustomer(ctx context.Context, customerID uuid.UUID) ([]Order, error) {
	query := `SELECT ` + orderColumns + `
		FROM repair_orders
		WHERE customer_id = $1
		ORDER BY created_at DESC`

	rows, err := r.pool.Query(ctx, query, customerID)
	if err != nil {
		return nil, fmt.Errorf("list orders by customer: %w", err)
	}
	defer rows.Close()

	return scanOrders(rows)
}

// ListUnacceptedByTechnician retrieves the orders currently assigned to the
// technician that are still waiting for an accept/decline decision.
func (r *Repo) ListUnacceptedByTechnician(ctx context.Context, technicianID uuid.UUID) ([]Order, error) {
	query := `SELECT ` + orderColumns + `
		FROM repair_orders o
		WHERE o.technician_id = $1
		  AND EXISTS (
			SELECT 1 FROM repair_order_status s
			WHERE s.order_id = o.id AND s.status = 'unaccepted'
		  )
		ORDER BY o.created_at DESC`

	rows, err := r.pool.Query(ctx, query, technicianID)
	if err != nil {
		return nil, fmt.Errorf("list unaccepted orders by technician: %w", err)
	}
	defer rows.Close()

	return scanOrders(rows)
}

// UpdateMirror copies the authoritative cost and payment status onto the order row.
func (r *Repo) UpdateMirror(ctx context.Context, orderID uuid.UUID, cost float64, paymentStatus PaymentStatus) error {
	query := `UPDATE repair_orders SET cost = $2, payment_status = $3 WHERE id = $1`

	tag, err := r.pool.Exec(ctx, query, orderID, cost, paymentStatus)
	if err != nil {
		return fmt.Errorf("update order mirror: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound(orderNotFoundMessage)
	}

	return nil
}

// Reassign swaps the assigned technician and records the decline. The order
// update is conditional on the current assignee and the status touch is
// conditional on the order still being unaccepted, so two racing declines (or
// a decline racing an accept) leave exactly one winner.
func (r *Repo) Reassign(ctx context.Context, orderID, from, to uuid.UUID) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin reassign: %w", err)
	}
	defer tx.Rollback(ctx)

	orderQuery := `
		UPDATE repair_orders
		SET technician_id = $3, declined_by = array_append(declined_by, $2)
		WHERE id = $1 AND technician_id = $2`

	tag, err := tx.Exec(ctx, orderQuery, orderID, from, to)
	if err != nil {
		return fmt.Errorf("reassign order technician: %w", err)
	}
	if tag.RowsAffected() == 0 {
		if exists, checkErr := r.orderExists(ctx, orderID); checkErr == nil && !exists {
			return apperr.NotFound(orderNotFoundMessage)
		}
		return apperr.InvalidState("order is no longer assigned to this technician")
	}

	statusQuery := `
		UPDATE repair_order_status
		SET updated_at = now()
		WHERE order_id = $1 AND status = 'unaccepted'`

	tag, err = tx.Exec(ctx, statusQuery, orderID)
	if err != nil {
		return fmt.Errorf("touch order status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperr.InvalidState("order is no longer unaccepted")
	}

	return tx.Commit(ctx)
}

func (r *Repo) orderExists(ctx context.Context, orderID uuid.UUID) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM repair_orders WHERE id = $1)`, orderID).Scan(&exists)
	return exists, err
}

func orderScanTargets(order *Order) []interface{} {
	return []interface{}{
		&order.ID, &order.CustomerID, &order.ApplianceName, &order.ServiceMode, &order.Brand,
		&order.ServiceDate, &order.ServiceFromTime, &order.ServiceToTime,
		&order.TechnicianID, &order.ImageID,
		&order.Address.HouseNumber, &order.Address.Landmark, &order.Address.Street,
		&order.Address.City, &order.Address.Pincode,
		&order.DeclinedBy, &order.Cost, &order.PaymentStatus, &order.CreatedAt,
	}
}

func scanOrders(rows pgx.Rows) ([]Order, error) {
	orders := make([]Order, 0)
	for rows.Next() {
		var order Order
		if err := rows.Scan(orderScanTargets(&order)...); err != nil {
			return nil, fmt.Errorf("scan order: %w", err)
		}
		orders = append(orders, order)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate orders: %w", err)
	}
	return orders, nil
}

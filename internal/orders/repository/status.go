package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"fixserve_backend/platform/apperr"
)

// GetStatus retrieves the status record for an order.
func (r *Repo) GetStatus(ctx context.Context, orderID uuid.UUID) (OrderStatus, error) {
	query := `
		SELECT order_id, status, cost, service_charge, repair_details, payment_status, updated_at
		FROM repair_order_status
		WHERE order_id = $1`

	var status OrderStatus
	err := r.pool.QueryRow(ctx, query, orderID).Scan(
		&status.OrderID, &status.Status, &status.Cost, &status.ServiceCharge,
		&status.RepairDetails, &status.PaymentStatus, &status.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return OrderStatus{}, apperr.NotFound(statusNotFoundMessage)
		}
		return OrderStatus{}, fmt.Errorf("get order status: %w", err)
	}

	return status, nil
}

// Transition applies a conditional status update: the write matches only while
// the stored status is still one of params.From. This single compare-and-set
// is the only concurrency control for lifecycle transitions; a lost race
// surfaces as an invalid-state error, never as a silent overwrite.
func (r *Repo) Transition(ctx context.Context, params TransitionParams) (OrderStatus, error) {
	fromStatuses := make([]string, 0, len(params.From))
	for _, s := range params.From {
		fromStatuses = append(fromStatuses, string(s))
	}

	var paymentStatus *string
	if params.SetPaymentStatus != nil {
		value := string(*params.SetPaymentStatus)
		paymentStatus = &value
	}

	var repairDetails []byte
	if params.SetRepairDetails != nil {
		encoded, err := json.Marshal(*params.SetRepairDetails)
		if err != nil {
			return OrderStatus{}, fmt.Errorf("encode repair details: %w", err)
		}
		repairDetails = encoded
	}

	query := `
		UPDATE repair_order_status
		SET status = $2,
		    payment_status = COALESCE($3::text, payment_status),
		    cost = COALESCE($4::double precision, cost),
		    repair_details = COALESCE($5::jsonb, repair_details),
		    updated_at = now()
		WHERE order_id = $1 AND status = ANY($6::text[])
		RETURNING order_id, status, cost, service_charge, repair_details, payment_status, updated_at`

	var status OrderStatus
	err := r.pool.QueryRow(ctx, query,
		params.OrderID, params.To, paymentStatus, params.SetCost, repairDetails, fromStatuses,
	).Scan(
		&status.OrderID, &status.Status, &status.Cost, &status.ServiceCharge,
		&status.RepairDetails, &status.PaymentStatus, &status.UpdatedAt,
	)
	if err == nil {
		return status, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return OrderStatus{}, fmt.Errorf("transition order status: %w", err)
	}

	// No row matched: either the order has no status record at all, or it is
	// not in an expected prior state (including losing a concurrent update).
	current, getErr := r.GetStatus(ctx, params.OrderID)
	if getErr != nil {
		return OrderStatus{}, getErr
	}
	return OrderStatus{}, apperr.InvalidState(
		fmt.Sprintf("order is %q, cannot move to %q", current.Status, params.To))
}

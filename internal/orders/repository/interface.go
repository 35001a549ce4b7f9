package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Status is the lifecycle state of an order. The status record is the sole
// owner of this value; the order row only mirrors cost and payment status.
type Status string

const (
	StatusUnaccepted       Status = "unaccepted"
	StatusAccepted         Status = "accepted"
	StatusArrived          Status = "Arrived"
	StatusCostVerification Status = "CostVerification"
	StatusRepairInProgress Status = "RepairInProgress"
	StatusReadyToDeliver   Status = "ReadyToDeliver"
	StatusCompleted        Status = "completed"
)

// PaymentStatus tracks how far payment has progressed for an order.
type PaymentStatus string

const (
	PaymentIncomplete PaymentStatus = "incomplete"
	PaymentPending    PaymentStatus = "pending"
	PaymentCompleted  PaymentStatus = "completed"
)

// ServiceMode is how the repair is carried out.
type ServiceMode string

const (
	ModePickupRepairDrop ServiceMode = "PickupRepairDrop"
	ModeHomeRepair       ServiceMode = "HomeRepair"
)

// Address is the service address captured at order creation.
type Address struct {
	HouseNumber *string
	Landmark    *string
	Street      string
	City        *string
	Pincode     string
}

// Order is the customer-facing order aggregate. TechnicianID and DeclinedBy
// change through reassignment; Cost and PaymentStatus are eventually-consistent
// mirrors of the status record.
type Order struct {
	ID              uuid.UUID
	CustomerID      uuid.UUID
	ApplianceName   string
	ServiceMode     ServiceMode
	Brand           string
	ServiceDate     time.Time
	ServiceFromTime string
	ServiceToTime   string
	TechnicianID    uuid.UUID
	ImageID         *uuid.UUID
	Address         Address
	DeclinedBy      []uuid.UUID
	Cost            float64
	PaymentStatus   PaymentStatus
	CreatedAt       time.Time
}

// RepairLine is a single quoted repair item.
type RepairLine struct {
	Description string  `json:"description"`
	LineCost    float64 `json:"lineCost"`
}

// OrderStatus is the authoritative lifecycle and payment record for an order.
type OrderStatus struct {
	OrderID       uuid.UUID
	Status        Status
	Cost          float64
	ServiceCharge float64
	RepairDetails []RepairLine
	PaymentStatus PaymentStatus
	UpdatedAt     time.Time
}

// CreateOrderParams contains everything needed to create an order together
// with its initial status record.
type CreateOrderParams struct {
	CustomerID      uuid.UUID
	ApplianceName   string
	ServiceMode     ServiceMode
	Brand           string
	ServiceDate     time.Time
	ServiceFromTime string
	ServiceToTime   string
	TechnicianID    uuid.UUID
	ImageID         *uuid.UUID
	Address         Address
}

// TransitionParams describes a conditional status update. The write applies
// only while the stored status is still one of From; otherwise the transition
// is rejected with an invalid-state error.
type TransitionParams struct {
	OrderID uuid.UUID
	From    []Status
	To      Status

	// Optional field updates applied together with the status change.
	SetPaymentStatus *PaymentStatus
	SetCost          *float64
	SetRepairDetails *[]RepairLine
}

// Repository is the persistence boundary for orders and their status records.
type Repository interface {
	// CreateWithStatus inserts the order and its status record as a single
	// atomic unit; neither exists unless both writes succeed.
	CreateWithStatus(ctx context.Context, params CreateOrderParams) (Order, OrderStatus, error)

	GetOrder(ctx context.Context, orderID uuid.UUID) (Order, error)
	ListByCustomer(ctx context.Context, customerID uuid.UUID) ([]Order, error)
	ListUnacceptedByTechnician(ctx context.Context, technicianID uuid.UUID) ([]Order, error)

	GetStatus(ctx context.Context, orderID uuid.UUID) (OrderStatus, error)

	// Transition performs the conditional status update and returns the
	// resulting record. A lost race or a wrong prior state yields an
	// invalid-state error; a missing order yields not-found.
	Transition(ctx context.Context, params TransitionParams) (OrderStatus, error)

	// Reassign atomically swaps the assigned technician (conditional on the
	// current assignee), appends the decliner to declined_by, and refreshes
	// the status record's updated_at while it is still unaccepted.
	Reassign(ctx context.Context, orderID, from, to uuid.UUID) error

	// UpdateMirror copies the authoritative cost and payment status onto the
	// order row. Callers treat failures as non-fatal.
	UpdateMirror(ctx context.Context, orderID uuid.UUID, cost float64, paymentStatus PaymentStatus) error
}

// Package events defines the domain events exchanged between modules.
package events

import (
	"github.com/google/uuid"

	platformevents "fixserve_backend/platform/events"
)

// Re-export platform types for convenience
type (
	Event       = platformevents.Event
	BaseEvent   = platformevents.BaseEvent
	Handler     = platformevents.Handler
	HandlerFunc = platformevents.HandlerFunc
	Bus         = platformevents.Bus
)

// Re-export platform functions
var NewBaseEvent = platformevents.NewBaseEvent

// OrderCreated is published after an order and its status record are created
// and a technician has been assigned.
type OrderCreated struct {
	BaseEvent
	OrderID      uuid.UUID
	CustomerID   uuid.UUID
	TechnicianID uuid.UUID
	Appliance    string
}

func (e OrderCreated) EventName() string { return "orders.order.created" }

// OrderReassigned is published when a decline moves an order to a new technician.
type OrderReassigned struct {
	BaseEvent
	OrderID         uuid.UUID
	DeclinedByID    uuid.UUID
	NewTechnicianID uuid.UUID
}

func (e OrderReassigned) EventName() string { return "orders.order.reassigned" }

// OrderCompleted is published when the assigned technician marks the order done.
type OrderCompleted struct {
	BaseEvent
	OrderID      uuid.UUID
	CustomerID   uuid.UUID
	TechnicianID uuid.UUID
}

func (e OrderCompleted) EventName() string { return "orders.order.completed" }

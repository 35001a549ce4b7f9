// Package notification sends customer email in response to domain events.
// The module subscribes to the event bus so the orders domain never needs to
// know about email providers or templates. Delivery is best effort: a failed
// email is logged, never propagated back into the order flow.
package notification

import (
	"context"

	"github.com/google/uuid"

	custrepo "fixserve_backend/internal/customers/repository"
	"fixserve_backend/internal/email"
	"fixserve_backend/internal/events"
	ordersrepo "fixserve_backend/internal/orders/repository"
	"fixserve_backend/platform/logger"
)

// CustomerReader loads the customer contact details for outbound email.
type CustomerReader interface {
	GetByID(ctx context.Context, id uuid.UUID) (custrepo.Customer, error)
}

// OrderReader loads order details referenced by events.
type OrderReader interface {
	GetOrder(ctx context.Context, id uuid.UUID) (ordersrepo.Order, error)
}

// Module wires domain events to email delivery.
type Module struct {
	sender    email.Sender
	customers CustomerReader
	orders    OrderReader
	log       *logger.Logger
}

// NewModule creates the notification module.
func NewModule(sender email.Sender, customers CustomerReader, orders OrderReader, log *logger.Logger) *Module {
	return &Module{sender: sender, customers: customers, orders: orders, log: log}
}

// RegisterHandlers subscribes to the order lifecycle events.
func (m *Module) RegisterHandlers(bus *events.InMemoryBus) {
	bus.Subscribe(events.OrderCreated{}.EventName(), m)
	bus.Subscribe(events.OrderCompleted{}.EventName(), m)

	m.log.Info("notification module registered event handlers")
}

// Handle routes events to the appropriate handler method.
func (m *Module) Handle(ctx context.Context, event events.Event) error {
	switch e := event.(type) {
	case events.OrderCreated:
		return m.handleOrderCreated(ctx, e)
	case events.OrderCompleted:
		return m.handleOrderCompleted(ctx, e)
	default:
		return nil
	}
}

func (m *Module) handleOrderCreated(ctx context.Context, e events.OrderCreated) error {
	cust, err := m.customers.GetByID(ctx, e.CustomerID)
	if err != nil {
		m.log.Warn("order confirmation email skipped, customer lookup failed", "order_id", e.OrderID, "error", err)
		return nil
	}
	if cust.Email == nil {
		return nil
	}

	order, err := m.orders.GetOrder(ctx, e.OrderID)
	if err != nil {
		m.log.Warn("order confirmation email skipped, order lookup failed", "order_id", e.OrderID, "error", err)
		return nil
	}

	serviceDate := order.ServiceDate.Format("2006-01-02") + " " + order.ServiceFromTime
	if err := m.sender.SendOrderConfirmationEmail(ctx, *cust.Email, cust.Name, e.Appliance, serviceDate); err != nil {
		m.log.Error("order confirmation email failed", "order_id", e.OrderID, "error", err)
	}
	return nil
}

func (m *Module) handleOrderCompleted(ctx context.Context, e events.OrderCompleted) error {
	cust, err := m.customers.GetByID(ctx, e.CustomerID)
	if err != nil {
		m.log.Warn("order completed email skipped, customer lookup failed", "order_id", e.OrderID, "error", err)
		return nil
	}
	if cust.Email == nil {
		return nil
	}

	order, err := m.orders.GetOrder(ctx, e.OrderID)
	if err != nil {
		m.log.Warn("order completed email skipped, order lookup failed", "order_id", e.OrderID, "error", err)
		return nil
	}

	if err := m.sender.SendOrderCompletedEmail(ctx, *cust.Email, cust.Name, order.ApplianceName); err != nil {
		m.log.Error("order completed email failed", "order_id", e.OrderID, "error", err)
	}
	return nil
}

var _ events.Handler = (*Module)(nil)

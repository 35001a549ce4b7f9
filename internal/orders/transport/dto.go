package transport

import "github.com/google/uuid"

// AddressPayload is the service address for an order.
type AddressPayload struct {
	HouseNumber *string `json:"houseNumber,omitempty"`
	Landmark    *string `json:"landmark,omitempty"`
	Street      string  `json:"street" validate:"required"`
	City        *string `json:"city,omitempty"`
	Pincode     string  `json:"pincode" validate:"required"`
}

// CreateOrderRequest contains data for creating a new repair order.
type CreateOrderRequest struct {
	CustomerID      uuid.UUID      `json:"customerId" validate:"required"`
	ApplianceName   string         `json:"applianceName" validate:"required,min=1,max=100"`
	ServiceMode     string         `json:"serviceMode" validate:"required,oneof=PickupRepairDrop HomeRepair"`
	Brand           string         `json:"brand" validate:"required,min=1,max=100"`
	ServiceDate     string         `json:"serviceDate" validate:"required,datetime=2006-01-02"`
	ServiceFromTime string         `json:"serviceFromTime" validate:"required,clocktime"`
	ServiceToTime   string         `json:"serviceToTime" validate:"required,clocktime"`
	Address         AddressPayload `json:"address" validate:"required"`
	ImageID         *uuid.UUID     `json:"imageId,omitempty"`
}

// TechnicianActionRequest identifies the technician performing an
// accept/decline/complete action on an order.
type TechnicianActionRequest struct {
	TechnicianID uuid.UUID `json:"technicianId" validate:"required"`
}

// RepairLinePayload is a single quoted repair item.
type RepairLinePayload struct {
	Description string  `json:"description" validate:"required,min=1,max=500"`
	LineCost    float64 `json:"lineCost" validate:"gte=0"`
}

// SubmitQuoteRequest contains the cost quote submitted after inspection.
type SubmitQuoteRequest struct {
	Cost          float64             `json:"cost" validate:"required,gt=0"`
	RepairDetails []RepairLinePayload `json:"repairDetails" validate:"required,min=1,dive"`
}

// SettlePaymentRequest confirms payment settlement. Both fields must be
// supplied explicitly and carry exactly the expected values.
type SettlePaymentRequest struct {
	Status        string `json:"status" validate:"required,eq=ReadyToDeliver"`
	PaymentStatus string `json:"paymentStatus" validate:"required,eq=completed"`
}

// OrderResponse represents an order in API responses.
type OrderResponse struct {
	ID              uuid.UUID      `json:"id"`
	CustomerID      uuid.UUID      `json:"customerId"`
	ApplianceName   string         `json:"applianceName"`
	ServiceMode     string         `json:"serviceMode"`
	Brand           string         `json:"brand"`
	ServiceDate     string         `json:"serviceDate"`
	ServiceFromTime string         `json:"serviceFromTime"`
	ServiceToTime   string         `json:"serviceToTime"`
	TechnicianID    uuid.UUID      `json:"technicianId"`
	ImageID         *uuid.UUID     `json:"imageId,omitempty"`
	Address         AddressPayload `json:"address"`
	DeclinedBy      []uuid.UUID    `json:"declinedBy"`
	Cost            float64        `json:"cost"`
	PaymentStatus   string         `json:"paymentStatus"`
	CreatedAt       string         `json:"createdAt"`
}

// StatusResponse represents an order's status record in API responses.
type StatusResponse struct {
	OrderID       uuid.UUID           `json:"orderId"`
	Status        string              `json:"status"`
	Cost          float64             `json:"cost"`
	ServiceCharge float64             `json:"serviceCharge"`
	RepairDetails []RepairLinePayload `json:"repairDetails"`
	PaymentStatus string              `json:"paymentStatus"`
	UpdatedAt     string              `json:"updatedAt"`
}

// CreateOrderResponse is returned after successful order creation.
type CreateOrderResponse struct {
	AssignedTechnicianID uuid.UUID      `json:"assignedTechnicianId"`
	Order                OrderResponse  `json:"order"`
	Status               StatusResponse `json:"status"`
}

// DeclineOrderResponse is returned after a successful decline/reassign.
type DeclineOrderResponse struct {
	NewTechnicianID uuid.UUID      `json:"newTechnicianId"`
	Status          StatusResponse `json:"status"`
}

// OrderListResponse wraps a list of orders.
type OrderListResponse struct {
	Items []OrderResponse `json:"items"`
	Total int             `json:"total"`
}

package transport

import "github.com/google/uuid"

// CreateCustomerRequest contains data for registering a customer.
type CreateCustomerRequest struct {
	Name    string  `json:"name" validate:"required,min=1,max=100"`
	Mobile  string  `json:"mobile" validate:"required,mobile"`
	Email   *string `json:"email,omitempty" validate:"omitempty,email"`
	Address string  `json:"address" validate:"required,min=1,max=500"`
}

// CustomerResponse represents a customer in API responses.
type CustomerResponse struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Mobile    string    `json:"mobile"`
	Email     *string   `json:"email,omitempty"`
	Address   string    `json:"address"`
	CreatedAt string    `json:"createdAt"`
}

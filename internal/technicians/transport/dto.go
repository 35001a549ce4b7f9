package transport

import "github.com/google/uuid"

// CreateTechnicianRequest contains data for registering a technician.
type CreateTechnicianRequest struct {
	Name   string  `json:"name" validate:"required,min=1,max=100"`
	Mobile string  `json:"mobile" validate:"required,mobile"`
	Email  *string `json:"email,omitempty" validate:"omitempty,email"`
}

// SuspendRequest defines an inclusive window during which the technician is
// unavailable for new orders.
type SuspendRequest struct {
	From string `json:"from" validate:"required"`
	To   string `json:"to" validate:"required"`
}

// TechnicianResponse represents a technician in API responses.
type TechnicianResponse struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Mobile    string    `json:"mobile"`
	Email     *string   `json:"email,omitempty"`
	CreatedAt string    `json:"createdAt"`
}

// SuspensionResponse represents a suspension window in API responses.
type SuspensionResponse struct {
	ID           uuid.UUID `json:"id"`
	TechnicianID uuid.UUID `json:"technicianId"`
	From         string    `json:"from"`
	To           string    `json:"to"`
}

// TechnicianListResponse wraps a list of technicians.
type TechnicianListResponse struct {
	Items []TechnicianResponse `json:"items"`
	Total int                  `json:"total"`
}

// SuspensionListResponse wraps a technician's suspension windows.
type SuspensionListResponse struct {
	Items []SuspensionResponse `json:"items"`
	Total int                  `json:"total"`
}

package transport

import "github.com/google/uuid"

// UpsertDeviceRequest creates or replaces a catalog entry for an appliance
// and service mode.
type UpsertDeviceRequest struct {
	Name          string      `json:"name" validate:"required,min=1,max=100"`
	ServiceMode   string      `json:"serviceMode" validate:"required,oneof=PickupRepairDrop HomeRepair"`
	TechnicianIDs []uuid.UUID `json:"technicianIds" validate:"required"`
}

// SetPoolRequest replaces the technician pool of an existing catalog entry.
type SetPoolRequest struct {
	TechnicianIDs []uuid.UUID `json:"technicianIds" validate:"required"`
}

// DeviceResponse represents a catalog entry in API responses.
type DeviceResponse struct {
	ID            uuid.UUID   `json:"id"`
	Name          string      `json:"name"`
	ServiceMode   string      `json:"serviceMode"`
	TechnicianIDs []uuid.UUID `json:"technicianIds"`
	AddedAt       string      `json:"addedAt"`
}

// DeviceListResponse wraps the catalog listing.
type DeviceListResponse struct {
	Items []DeviceResponse `json:"items"`
	Total int              `json:"total"`
}

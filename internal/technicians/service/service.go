// Package service implements technician registration and suspension window
// management.
package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"fixserve_backend/internal/technicians/repository"
	"fixserve_backend/internal/technicians/transport"
	"fixserve_backend/platform/apperr"
	"fixserve_backend/platform/logger"
	"fixserve_backend/platform/phone"
)

// Service provides business logic for technicians.
type Service struct {
	repo repository.Repository
	log  *logger.Logger
}

// New creates a new technicians service.
func New(repo repository.Repository, log *logger.Logger) *Service {
	return &Service{repo: repo, log: log}
}

// Create registers a new technician. The mobile number is normalized to E.164
// before storage so the uniqueness constraint is format-independent.
func (s *Service) Create(ctx context.Context, req transport.CreateTechnicianRequest) (transport.TechnicianResponse, error) {
	if !phone.IsValid(req.Mobile) {
		return transport.TechnicianResponse{}, apperr.Validation("invalid mobile number")
	}

	tech, err := s.repo.Create(ctx, repository.CreateTechnicianParams{
		Name:   req.Name,
		Mobile: phone.NormalizeE164(req.Mobile),
		Email:  req.Email,
	})
	if err != nil {
		return transport.TechnicianResponse{}, err
	}

	s.log.Info("technician registered", "technician_id", tech.ID)
	return toTechnicianResponse(tech), nil
}

// GetByID fetches a single technician.
func (s *Service) GetByID(ctx context.Context, id uuid.UUID) (transport.TechnicianResponse, error) {
	tech, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return transport.TechnicianResponse{}, err
	}
	return toTechnicianResponse(tech), nil
}

// List returns all registered technicians.
func (s *Service) List(ctx context.Context) (transport.TechnicianListResponse, error) {
	technicians, err := s.repo.List(ctx)
	if err != nil {
		return transport.TechnicianListResponse{}, err
	}
	items := make([]transport.TechnicianResponse, 0, len(technicians))
	for _, tech := range technicians {
		items = append(items, toTechnicianResponse(tech))
	}
	return transport.TechnicianListResponse{Items: items, Total: len(items)}, nil
}

// Suspend records an unavailability window. Timestamps are RFC 3339; the
// window must not end before it starts.
func (s *Service) Suspend(ctx context.Context, technicianID uuid.UUID, req transport.SuspendRequest) (transport.SuspensionResponse, error) {
	from, err := time.Parse(time.RFC3339, req.From)
	if err != nil {
		return transport.SuspensionResponse{}, apperr.Validation("invalid suspension start time")
	}
	to, err := time.Parse(time.RFC3339, req.To)
	if err != nil {
		return transport.SuspensionResponse{}, apperr.Validation("invalid suspension end time")
	}
	if to.Before(from) {
		return transport.SuspensionResponse{}, apperr.Validation("suspension must not end before it starts")
	}

	if _, err := s.repo.GetByID(ctx, technicianID); err != nil {
		return transport.SuspensionResponse{}, err
	}

	susp, err := s.repo.AddSuspension(ctx, technicianID, from, to)
	if err != nil {
		return transport.SuspensionResponse{}, err
	}

	s.log.Info("technician suspended", "technician_id", technicianID, "from", from, "to", to)
	return toSuspensionResponse(susp), nil
}

// ListSuspensions returns a technician's suspension windows.
func (s *Service) ListSuspensions(ctx context.Context, technicianID uuid.UUID) (transport.SuspensionListResponse, error) {
	if _, err := s.repo.GetByID(ctx, technicianID); err != nil {
		return transport.SuspensionListResponse{}, err
	}

	suspensions, err := s.repo.ListSuspensions(ctx, technicianID)
	if err != nil {
		return transport.SuspensionListResponse{}, err
	}
	items := make([]transport.SuspensionResponse, 0, len(suspensions))
	for _, susp := range suspensions {
		items = append(items, toSuspensionResponse(susp))
	}
	return transport.SuspensionListResponse{Items: items, Total: len(items)}, nil
}

// Unsuspend removes a suspension window.
func (s *Service) Unsuspend(ctx context.Context, technicianID, suspensionID uuid.UUID) error {
	return s.repo.DeleteSuspension(ctx, technicianID, suspensionID)
}

func toTechnicianResponse(tech repository.Technician) transport.TechnicianResponse {
	return transport.TechnicianResponse{
		ID:        tech.ID,
		Name:      tech.Name,
		Mobile:    tech.Mobile,
		Email:     tech.Email,
		CreatedAt: tech.CreatedAt.Format(time.RFC3339),
	}
}

func toSuspensionResponse(susp repository.Suspension) transport.SuspensionResponse {
	return transport.SuspensionResponse{
		ID:           susp.ID,
		TechnicianID: susp.TechnicianID,
		From:         susp.From.Format(time.RFC3339),
		To:           susp.To.Format(time.RFC3339),
	}
}

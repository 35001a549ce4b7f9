package adapters

import (
	"context"

	"github.com/google/uuid"

	devsvc "fixserve_backend/internal/devices/service"
	techrepo "fixserve_backend/internal/technicians/repository"
)

// TechnicianVerifierAdapter lets the devices module confirm pool members are
// registered technicians. It implements devices/service.TechnicianVerifier.
type TechnicianVerifierAdapter struct {
	repo techrepo.Repository
}

func NewTechnicianVerifierAdapter(repo techrepo.Repository) *TechnicianVerifierAdapter {
	return &TechnicianVerifierAdapter{repo: repo}
}

func (a *TechnicianVerifierAdapter) GetByID(ctx context.Context, id uuid.UUID) (uuid.UUID, error) {
	tech, err := a.repo.GetByID(ctx, id)
	if err != nil {
		return uuid.Nil, err
	}
	return tech.ID, nil
}

var _ devsvc.TechnicianVerifier = (*TechnicianVerifierAdapter)(nil)

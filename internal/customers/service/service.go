// Package service implements the minimal customer read model the order flow
// depends on.
package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"fixserve_backend/internal/customers/repository"
	"fixserve_backend/internal/customers/transport"
	"fixserve_backend/platform/apperr"
	"fixserve_backend/platform/logger"
	"fixserve_backend/platform/phone"
)

// Service provides business logic for customers.
type Service struct {
	repo repository.Repository
	log  *logger.Logger
}

// New creates a new customers service.
func New(repo repository.Repository, log *logger.Logger) *Service {
	return &Service{repo: repo, log: log}
}

// Create registers a new customer with a normalized mobile number.
func (s *Service) Create(ctx context.Context, req transport.CreateCustomerRequest) (transport.CustomerResponse, error) {
	if !phone.IsValid(req.Mobile) {
		return transport.CustomerResponse{}, apperr.Validation("invalid mobile number")
	}

	cust, err := s.repo.Create(ctx, repository.CreateCustomerParams{
		Name:    req.Name,
		Mobile:  phone.NormalizeE164(req.Mobile),
		Email:   req.Email,
		Address: req.Address,
	})
	if err != nil {
		return transport.CustomerResponse{}, err
	}

	s.log.Info("customer registered", "customer_id", cust.ID)
	return toCustomerResponse(cust), nil
}

// GetByID fetches a single customer.
func (s *Service) GetByID(ctx context.Context, id uuid.UUID) (transport.CustomerResponse, error) {
	cust, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return transport.CustomerResponse{}, err
	}
	return toCustomerResponse(cust), nil
}

// Exists reports whether a customer is registered.
func (s *Service) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	return s.repo.Exists(ctx, id)
}

func toCustomerResponse(cust repository.Customer) transport.CustomerResponse {
	return transport.CustomerResponse{
		ID:        cust.ID,
		Name:      cust.Name,
		Mobile:    cust.Mobile,
		Email:     cust.Email,
		Address:   cust.Address,
		CreatedAt: cust.CreatedAt.Format(time.RFC3339),
	}
}

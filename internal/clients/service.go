package clients

import (
	"context"
	"fmt"
)

// Service wraps client directory business rules.
type Service struct {
	repo Repository
}

// NewService constructs a Service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Create stores a new client record.
func (s *Service) Create(ctx context.Context, req CreateClientRequest) (*Client, error) {
	id, err := s.repo.Create(ctx, Client{
		CompanyName:   req.CompanyName,
		ContactPerson: req.ContactPerson,
		Email:         req.Email,
		Phone:         req.Phone,
		Street:        req.Street,
		City:          req.City,
		PostalCode:    req.PostalCode,
		Country:       req.Country,
		TaxID:         req.TaxID,
	})
	if err != nil {
		return nil, fmt.Errorf("create client: %w", err)
	}
	return s.repo.Get(ctx, id)
}

// Get loads a client by id.
func (s *Service) Get(ctx context.Context, id int64) (*Client, error) {
	return s.repo.Get(ctx, id)
}

// List returns clients matching the filter plus the unpaged total.
func (s *Service) List(ctx context.Context, req ListClientsRequest) ([]Client, int, error) {
	return s.repo.List(ctx, req)
}

// Update applies a partial update and returns the new state.
func (s *Service) Update(ctx context.Context, id int64, req UpdateClientRequest) (*Client, error) {
	updates := make(map[string]interface{})
	setIf := func(col string, v *string) {
		if v != nil {
			updates[col] = *v
		}
	}
	setIf("company_name", req.CompanyName)
	setIf("contact_person", req.ContactPerson)
	setIf("email", req.Email)
	setIf("phone", req.Phone)
	setIf("street", req.Street)
	setIf("city", req.City)
	setIf("postal_code", req.PostalCode)
	setIf("country", req.Country)
	setIf("tax_id", req.TaxID)

	if len(updates) > 0 {
		if err := s.repo.Update(ctx, id, updates); err != nil {
			return nil, fmt.Errorf("update client: %w", err)
		}
	}
	return s.repo.Get(ctx, id)
}

// Delete removes a client record.
func (s *Service) Delete(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}

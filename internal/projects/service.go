package projects

import (
	"context"
	"errors"
	"fmt"
)

// Service wraps project business rules.
type Service struct {
	repo Repository
}

// NewService constructs a Service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Create stores a new project in planning state.
func (s *Service) Create(ctx context.Context, req CreateProjectRequest) (*Project, error) {
	if req.StartDate != nil && req.EndDate != nil && req.EndDate.Before(*req.StartDate) {
		return nil, errors.New("end_date must be after start_date")
	}
	id, err := s.repo.Create(ctx, Project{
		ClientID:    req.ClientID,
		Name:        req.Name,
		Description: req.Description,
		Status:      StatusPlanning,
		ProjectType: req.ProjectType,
		StartDate:   req.StartDate,
		EndDate:     req.EndDate,
		TotalValue:  req.TotalValue,
	})
	if err != nil {
		return nil, fmt.Errorf("create project: %w", err)
	}
	return s.repo.Get(ctx, id)
}

// Get loads a project by id.
func (s *Service) Get(ctx context.Context, id int64) (*Project, error) {
	return s.repo.Get(ctx, id)
}

// List returns projects matching the filter plus the unpaged total.
func (s *Service) List(ctx context.Context, req ListProjectsRequest) ([]ProjectWithClient, int, error) {
	return s.repo.List(ctx, req)
}

// Update applies a partial update and returns the new state.
func (s *Service) Update(ctx context.Context, id int64, req UpdateProjectRequest) (*Project, error) {
	updates := make(map[string]interface{})
	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if req.Status != nil {
		updates["status"] = string(*req.Status)
	}
	if req.ProjectType != nil {
		updates["project_type"] = string(*req.ProjectType)
	}
	if req.StartDate != nil {
		updates["start_date"] = *req.StartDate
	}
	if req.EndDate != nil {
		updates["end_date"] = *req.EndDate
	}
	if req.TotalValue != nil {
		updates["total_value"] = *req.TotalValue
	}

	if len(updates) > 0 {
		if err := s.repo.Update(ctx, id, updates); err != nil {
			return nil, fmt.Errorf("update project: %w", err)
		}
	}
	return s.repo.Get(ctx, id)
}

// Delete removes a project.
func (s *Service) Delete(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}

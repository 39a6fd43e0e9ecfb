package projects

import "time"

// CreateProjectRequest carries the fields for a new project.
type CreateProjectRequest struct {
	ClientID    int64      `json:"client_id" validate:"required,gt=0"`
	Name        string     `json:"name" validate:"required,max=200"`
	Description *string    `json:"description,omitempty"`
	ProjectType Type       `json:"project_type" validate:"required,oneof=onetime monthly"`
	StartDate   *time.Time `json:"start_date,omitempty"`
	EndDate     *time.Time `json:"end_date,omitempty"`
	TotalValue  float64    `json:"total_value" validate:"gte=0"`
}

// UpdateProjectRequest carries a partial project update.
type UpdateProjectRequest struct {
	Name        *string    `json:"name,omitempty" validate:"omitempty,max=200"`
	Description *string    `json:"description,omitempty"`
	Status      *Status    `json:"status,omitempty" validate:"omitempty,oneof=planning in_progress review completed cancelled"`
	ProjectType *Type      `json:"project_type,omitempty" validate:"omitempty,oneof=onetime monthly"`
	StartDate   *time.Time `json:"start_date,omitempty"`
	EndDate     *time.Time `json:"end_date,omitempty"`
	TotalValue  *float64   `json:"total_value,omitempty" validate:"omitempty,gte=0"`
}

// ListProjectsRequest filters and paginates the project listing.
type ListProjectsRequest struct {
	ClientID *int64  `json:"client_id,omitempty"`
	Status   *Status `json:"status,omitempty"`
	Limit    int     `json:"limit" validate:"gte=0,lte=500"`
	Offset   int     `json:"offset" validate:"gte=0"`
}

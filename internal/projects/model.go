// Package projects tracks client engagements from planning to completion.
package projects

import "time"

// Status is the project lifecycle state.
type Status string

const (
	StatusPlanning   Status = "planning"
	StatusInProgress Status = "in_progress"
	StatusReview     Status = "review"
	StatusCompleted  Status = "completed"
	StatusCancelled  Status = "cancelled"
)

// Type distinguishes one-off builds from recurring engagements.
type Type string

const (
	TypeOnetime Type = "onetime"
	TypeMonthly Type = "monthly"
)

// Project is one client engagement.
type Project struct {
	ID          int64      `json:"id"`
	ClientID    int64      `json:"client_id"`
	Name        string     `json:"name"`
	Description *string    `json:"description,omitempty"`
	Status      Status     `json:"status"`
	ProjectType Type       `json:"project_type"`
	StartDate   *time.Time `json:"start_date,omitempty"`
	EndDate     *time.Time `json:"end_date,omitempty"`
	TotalValue  float64    `json:"total_value"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// ProjectWithClient joins the client's display name for listings.
type ProjectWithClient struct {
	Project
	ClientName string `json:"client_name"`
}

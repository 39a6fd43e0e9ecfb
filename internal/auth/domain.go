// Package auth implements account registration, login and session binding.
package auth

import "time"

// Role is the coarse access level stored on a profile.
type Role string

const (
	RoleUser       Role = "user"
	RoleAdmin      Role = "admin"
	RoleSuperadmin Role = "superadmin"
)

// User represents a login account.
type User struct {
	ID           int64
	Email        string
	PasswordHash string
	IsActive     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Address is the postal address block kept on a profile.
type Address struct {
	Street     string `json:"street"`
	City       string `json:"city"`
	PostalCode string `json:"postal_code"`
	Country    string `json:"country"`
}

// Profile carries the business identity attached to a user: display name,
// company and the German tax identifiers printed on documents.
type Profile struct {
	UserID      int64     `json:"user_id"`
	Email       string    `json:"email"`
	FullName    *string   `json:"full_name,omitempty"`
	CompanyName *string   `json:"company_name,omitempty"`
	Role        Role      `json:"role"`
	TaxNumber   *string   `json:"tax_number,omitempty"`
	VATID       *string   `json:"vat_id,omitempty"`
	Address     *Address  `json:"address,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

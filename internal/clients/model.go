// Package clients manages the customer directory.
package clients

import "time"

// Client is one customer of the agency.
type Client struct {
	ID            int64     `json:"id"`
	CompanyName   string    `json:"company_name"`
	ContactPerson string    `json:"contact_person"`
	Email         string    `json:"email"`
	Phone         *string   `json:"phone,omitempty"`
	Street        string    `json:"street"`
	City          string    `json:"city"`
	PostalCode    string    `json:"postal_code"`
	Country       string    `json:"country"`
	TaxID         *string   `json:"tax_id,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

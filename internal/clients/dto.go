package clients

// CreateClientRequest carries the fields for a new client record.
type CreateClientRequest struct {
	CompanyName   string  `json:"company_name" validate:"required,max=200"`
	ContactPerson string  `json:"contact_person" validate:"required,max=200"`
	Email         string  `json:"email" validate:"required,email"`
	Phone         *string `json:"phone,omitempty" validate:"omitempty,max=40"`
	Street        string  `json:"street" validate:"required,max=200"`
	City          string  `json:"city" validate:"required,max=100"`
	PostalCode    string  `json:"postal_code" validate:"required,max=10"`
	Country       string  `json:"country" validate:"required,max=100"`
	TaxID         *string `json:"tax_id,omitempty" validate:"omitempty,max=30"`
}

// UpdateClientRequest carries a partial client update; nil fields are
// untouched.
type UpdateClientRequest struct {
	CompanyName   *string `json:"company_name,omitempty" validate:"omitempty,max=200"`
	ContactPerson *string `json:"contact_person,omitempty" validate:"omitempty,max=200"`
	Email         *string `json:"email,omitempty" validate:"omitempty,email"`
	Phone         *string `json:"phone,omitempty" validate:"omitempty,max=40"`
	Street        *string `json:"street,omitempty" validate:"omitempty,max=200"`
	City          *string `json:"city,omitempty" validate:"omitempty,max=100"`
	PostalCode    *string `json:"postal_code,omitempty" validate:"omitempty,max=10"`
	Country       *string `json:"country,omitempty" validate:"omitempty,max=100"`
	TaxID         *string `json:"tax_id,omitempty" validate:"omitempty,max=30"`
}

// ListClientsRequest filters and paginates the client listing.
type ListClientsRequest struct {
	Search *string `json:"search,omitempty"`
	Limit  int     `json:"limit" validate:"gte=0,lte=500"`
	Offset int     `json:"offset" validate:"gte=0"`
}

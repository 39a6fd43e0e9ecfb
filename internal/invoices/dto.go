package invoices

import "time"

// LineItemInput is one requested invoice line. The stored line total is
// always recomputed server-side; clients cannot supply it.
type LineItemInput struct {
	Description string  `json:"description"`
	Quantity    float64 `json:"quantity" validate:"gte=0"`
	UnitPrice   float64 `json:"unit_price"`
	TaxRate     float64 `json:"tax_rate" validate:"gte=0"`
}

// CreateInvoiceRequest carries the fields for a new invoice. InvoiceNumber,
// when set, overrides the generated document number.
type CreateInvoiceRequest struct {
	ClientID      int64           `json:"client_id" validate:"required,gt=0"`
	ProjectID     *int64          `json:"project_id,omitempty" validate:"omitempty,gt=0"`
	InvoiceNumber *string         `json:"invoice_number,omitempty" validate:"omitempty,max=40"`
	InvoiceDate   time.Time       `json:"invoice_date" validate:"required"`
	DueDate       time.Time       `json:"due_date" validate:"required"`
	Notes         *string         `json:"notes,omitempty"`
	Items         []LineItemInput `json:"items" validate:"dive"`
}

// CreateFromQuoteRequest derives an invoice from an accepted quote. Dates
// default to today and today+14 when omitted.
type CreateFromQuoteRequest struct {
	QuoteID     int64      `json:"quote_id" validate:"required,gt=0"`
	InvoiceDate *time.Time `json:"invoice_date,omitempty"`
	DueDate     *time.Time `json:"due_date,omitempty"`
}

// UpdateInvoiceRequest carries a partial update; only drafts accept it. A
// non-nil Items slice replaces the whole sequence and recomputes totals.
type UpdateInvoiceRequest struct {
	ProjectID     *int64           `json:"project_id,omitempty" validate:"omitempty,gt=0"`
	InvoiceNumber *string          `json:"invoice_number,omitempty" validate:"omitempty,max=40"`
	InvoiceDate   *time.Time       `json:"invoice_date,omitempty"`
	DueDate       *time.Time       `json:"due_date,omitempty"`
	Notes         *string          `json:"notes,omitempty"`
	Items         *[]LineItemInput `json:"items,omitempty" validate:"omitempty,dive"`
}

// ListInvoicesRequest filters and paginates the invoice listing.
type ListInvoicesRequest struct {
	ClientID *int64  `json:"client_id,omitempty"`
	Status   *Status `json:"status,omitempty"`
	Limit    int     `json:"limit" validate:"gte=0,lte=500"`
	Offset   int     `json:"offset" validate:"gte=0"`
}

package quotes

import "time"

// LineItemInput is one requested line of a quote or invoice. The stored
// line total is always recomputed server-side; clients cannot supply it.
type LineItemInput struct {
	Description string  `json:"description"`
	Quantity    float64 `json:"quantity" validate:"gte=0"`
	UnitPrice   float64 `json:"unit_price"`
	TaxRate     float64 `json:"tax_rate" validate:"gte=0"`
}

// CreateQuoteRequest carries the fields for a new quote. QuoteNumber, when
// set, overrides the generated document number.
type CreateQuoteRequest struct {
	ClientID    int64           `json:"client_id" validate:"required,gt=0"`
	ProjectID   *int64          `json:"project_id,omitempty" validate:"omitempty,gt=0"`
	QuoteNumber *string         `json:"quote_number,omitempty" validate:"omitempty,max=40"`
	QuoteDate   time.Time       `json:"quote_date" validate:"required"`
	ValidUntil  time.Time       `json:"valid_until" validate:"required"`
	Notes       *string         `json:"notes,omitempty"`
	Items       []LineItemInput `json:"items" validate:"dive"`
}

// UpdateQuoteRequest carries a partial update; only drafts accept it. A
// non-nil Items slice replaces the whole sequence and recomputes totals.
type UpdateQuoteRequest struct {
	ProjectID   *int64           `json:"project_id,omitempty" validate:"omitempty,gt=0"`
	QuoteNumber *string          `json:"quote_number,omitempty" validate:"omitempty,max=40"`
	QuoteDate   *time.Time       `json:"quote_date,omitempty"`
	ValidUntil  *time.Time       `json:"valid_until,omitempty"`
	Notes       *string          `json:"notes,omitempty"`
	Items       *[]LineItemInput `json:"items,omitempty" validate:"omitempty,dive"`
}

// ListQuotesRequest filters and paginates the quote listing.
type ListQuotesRequest struct {
	ClientID *int64  `json:"client_id,omitempty"`
	Status   *Status `json:"status,omitempty"`
	Limit    int     `json:"limit" validate:"gte=0,lte=500"`
	Offset   int     `json:"offset" validate:"gte=0"`
}

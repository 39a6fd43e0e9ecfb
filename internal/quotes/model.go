// Package quotes manages Angebote: offer documents built from billing line
// items, numbered AN-YYYYMMDD-nnnn.
package quotes

import (
	"time"

	"github.com/nineto6/backoffice/internal/billing"
)

// Status is the quote lifecycle state.
type Status string

const (
	StatusDraft    Status = "draft"
	StatusSent     Status = "sent"
	StatusAccepted Status = "accepted"
	StatusRejected Status = "rejected"
	StatusExpired  Status = "expired"
)

// Quote is one offer document. Items and the three totals are a snapshot
// computed through the billing ledger at save time.
type Quote struct {
	ID          int64              `json:"id"`
	ClientID    int64              `json:"client_id"`
	ProjectID   *int64             `json:"project_id,omitempty"`
	QuoteNumber string             `json:"quote_number"`
	QuoteDate   time.Time          `json:"quote_date"`
	ValidUntil  time.Time          `json:"valid_until"`
	Items       []billing.LineItem `json:"items"`
	Subtotal    float64            `json:"subtotal"`
	TaxAmount   float64            `json:"tax_amount"`
	Total       float64            `json:"total"`
	Status      Status             `json:"status"`
	Notes       *string            `json:"notes,omitempty"`
	CreatedAt   time.Time          `json:"created_at"`
	UpdatedAt   time.Time          `json:"updated_at"`
}

// QuoteWithClient joins the client's display name for listings.
type QuoteWithClient struct {
	Quote
	ClientName string `json:"client_name"`
}

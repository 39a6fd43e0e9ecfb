// Package invoices manages Rechnungen: billing documents numbered
// RE-YYYYMMDD-nnnn, optionally derived from an accepted quote.
package invoices

import (
	"time"

	"github.com/nineto6/backoffice/internal/billing"
)

// Status is the invoice lifecycle state. Overdue is set by the background
// sweep when a sent invoice passes its due date unpaid.
type Status string

const (
	StatusDraft     Status = "draft"
	StatusSent      Status = "sent"
	StatusPaid      Status = "paid"
	StatusOverdue   Status = "overdue"
	StatusCancelled Status = "cancelled"
)

// Invoice is one billing document. Items and the three totals are a
// snapshot computed through the billing ledger at save time.
type Invoice struct {
	ID            int64              `json:"id"`
	ClientID      int64              `json:"client_id"`
	ProjectID     *int64             `json:"project_id,omitempty"`
	QuoteID       *int64             `json:"quote_id,omitempty"`
	InvoiceNumber string             `json:"invoice_number"`
	InvoiceDate   time.Time          `json:"invoice_date"`
	DueDate       time.Time          `json:"due_date"`
	Items         []billing.LineItem `json:"items"`
	Subtotal      float64            `json:"subtotal"`
	TaxAmount     float64            `json:"tax_amount"`
	Total         float64            `json:"total"`
	Status        Status             `json:"status"`
	PaymentDate   *time.Time         `json:"payment_date,omitempty"`
	Notes         *string            `json:"notes,omitempty"`
	CreatedAt     time.Time          `json:"created_at"`
	UpdatedAt     time.Time          `json:"updated_at"`
}

// InvoiceWithClient joins the client's display name for listings.
type InvoiceWithClient struct {
	Invoice
	ClientName string `json:"client_name"`
}

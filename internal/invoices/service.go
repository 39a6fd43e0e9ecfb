package invoices

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/nineto6/backoffice/internal/billing"
	"github.com/nineto6/backoffice/internal/clients"
	"github.com/nineto6/backoffice/internal/quotes"
)

var (
	// ErrInvalidStatus indicates a lifecycle operation on the wrong state.
	ErrInvalidStatus = errors.New("invalid status transition")
	// ErrQuoteNotAccepted indicates a conversion from a non-accepted quote.
	ErrQuoteNotAccepted = errors.New("quote is not accepted")
)

// defaultPaymentTermDays is the due-date horizon when converting a quote
// without an explicit due date.
const defaultPaymentTermDays = 14

// Notifier is told when an invoice goes out to a client. Implementations
// enqueue the outbound mail; a nil notifier disables it.
type Notifier interface {
	InvoiceSent(ctx context.Context, invoice *Invoice, recipient string)
}

// Service wraps invoice business rules.
type Service struct {
	repo       Repository
	clientRepo clients.Repository
	quoteRepo  quotes.Repository
	notifier   Notifier
	now        func() time.Time
}

// NewService constructs a Service.
func NewService(repo Repository, clientRepo clients.Repository, quoteRepo quotes.Repository) *Service {
	return &Service{repo: repo, clientRepo: clientRepo, quoteRepo: quoteRepo, now: time.Now}
}

// WithNotifier attaches a send notifier.
func (s *Service) WithNotifier(n Notifier) *Service {
	s.notifier = n
	return s
}

func buildItems(inputs []LineItemInput) ([]billing.LineItem, billing.DocumentTotals) {
	ledger := billing.NewLedger()
	items := make([]billing.LineItem, len(inputs))
	for i, in := range inputs {
		items[i] = billing.LineItem{
			Description: in.Description,
			Quantity:    in.Quantity,
			UnitPrice:   in.UnitPrice,
			TaxRate:     in.TaxRate,
		}
	}
	ledger.SetItems(items)
	return ledger.Items(), ledger.Totals()
}

// Create stores a new draft invoice. The document number defaults to a
// generated RE label and may be overridden by the caller.
func (s *Service) Create(ctx context.Context, req CreateInvoiceRequest) (*Invoice, error) {
	if req.DueDate.Before(req.InvoiceDate) {
		return nil, errors.New("due_date must be after invoice_date")
	}
	if _, err := s.clientRepo.Get(ctx, req.ClientID); err != nil {
		return nil, fmt.Errorf("verify client: %w", err)
	}

	number := billing.DocumentNumber(billing.DocumentKindInvoice, req.InvoiceDate)
	if req.InvoiceNumber != nil && *req.InvoiceNumber != "" {
		number = *req.InvoiceNumber
	}

	items, totals := buildItems(req.Items)

	id, err := s.repo.Create(ctx, Invoice{
		ClientID:      req.ClientID,
		ProjectID:     req.ProjectID,
		InvoiceNumber: number,
		InvoiceDate:   req.InvoiceDate,
		DueDate:       req.DueDate,
		Items:         items,
		Subtotal:      totals.Subtotal,
		TaxAmount:     totals.TaxAmount,
		Total:         totals.Total,
		Status:        StatusDraft,
		Notes:         req.Notes,
	})
	if err != nil {
		return nil, fmt.Errorf("create invoice: %w", err)
	}
	return s.repo.Get(ctx, id)
}

// CreateFromQuote derives a draft invoice from an accepted quote, copying
// its client, project, line items and totals snapshot.
func (s *Service) CreateFromQuote(ctx context.Context, req CreateFromQuoteRequest) (*Invoice, error) {
	quote, err := s.quoteRepo.Get(ctx, req.QuoteID)
	if err != nil {
		return nil, fmt.Errorf("get quote: %w", err)
	}
	if quote.Status != quotes.StatusAccepted {
		return nil, ErrQuoteNotAccepted
	}

	invoiceDate := s.now()
	if req.InvoiceDate != nil {
		invoiceDate = *req.InvoiceDate
	}
	dueDate := invoiceDate.AddDate(0, 0, defaultPaymentTermDays)
	if req.DueDate != nil {
		dueDate = *req.DueDate
	}
	if dueDate.Before(invoiceDate) {
		return nil, errors.New("due_date must be after invoice_date")
	}

	// The quote's snapshot goes through the ledger again so the invoice
	// owns fresh item ids and a consistently derived totals snapshot.
	ledger := billing.NewLedger()
	items := make([]billing.LineItem, len(quote.Items))
	for i, item := range quote.Items {
		items[i] = billing.LineItem{
			Description: item.Description,
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice,
			TaxRate:     item.TaxRate,
		}
	}
	ledger.SetItems(items)
	totals := ledger.Totals()

	id, err := s.repo.Create(ctx, Invoice{
		ClientID:      quote.ClientID,
		ProjectID:     quote.ProjectID,
		QuoteID:       &quote.ID,
		InvoiceNumber: billing.DocumentNumber(billing.DocumentKindInvoice, invoiceDate),
		InvoiceDate:   invoiceDate,
		DueDate:       dueDate,
		Items:         ledger.Items(),
		Subtotal:      totals.Subtotal,
		TaxAmount:     totals.TaxAmount,
		Total:         totals.Total,
		Status:        StatusDraft,
		Notes:         quote.Notes,
	})
	if err != nil {
		return nil, fmt.Errorf("create invoice from quote: %w", err)
	}
	return s.repo.Get(ctx, id)
}

// Get loads an invoice by id.
func (s *Service) Get(ctx context.Context, id int64) (*Invoice, error) {
	return s.repo.Get(ctx, id)
}

// List returns invoices matching the filter plus the unpaged total.
func (s *Service) List(ctx context.Context, req ListInvoicesRequest) ([]InvoiceWithClient, int, error) {
	return s.repo.List(ctx, req)
}

// Update applies a partial update to a draft invoice. A provided item list
// replaces the stored one and the totals snapshot is recomputed with it.
func (s *Service) Update(ctx context.Context, id int64, req UpdateInvoiceRequest) (*Invoice, error) {
	existing, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get invoice: %w", err)
	}
	if existing.Status != StatusDraft {
		return nil, fmt.Errorf("%w: only draft invoices can be updated", ErrInvalidStatus)
	}

	updates := make(map[string]interface{})
	if req.ProjectID != nil {
		updates["project_id"] = *req.ProjectID
	}
	if req.InvoiceNumber != nil {
		updates["invoice_number"] = *req.InvoiceNumber
	}
	if req.InvoiceDate != nil {
		updates["invoice_date"] = *req.InvoiceDate
	}
	if req.DueDate != nil {
		updates["due_date"] = *req.DueDate
	}
	if req.Notes != nil {
		updates["notes"] = *req.Notes
	}
	if req.Items != nil {
		items, totals := buildItems(*req.Items)
		updates["items"] = items
		updates["subtotal"] = totals.Subtotal
		updates["tax_amount"] = totals.TaxAmount
		updates["total"] = totals.Total
	}

	if len(updates) > 0 {
		if err := s.repo.Update(ctx, id, updates); err != nil {
			return nil, fmt.Errorf("update invoice: %w", err)
		}
	}
	return s.repo.Get(ctx, id)
}

// Send marks a draft invoice as sent.
func (s *Service) Send(ctx context.Context, id int64) (*Invoice, error) {
	existing, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get invoice: %w", err)
	}
	if existing.Status != StatusDraft {
		return nil, fmt.Errorf("%w: only draft invoices can be sent", ErrInvalidStatus)
	}
	if err := s.repo.UpdateStatus(ctx, id, StatusSent, nil); err != nil {
		return nil, fmt.Errorf("update invoice status: %w", err)
	}
	invoice, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if s.notifier != nil {
		if client, err := s.clientRepo.Get(ctx, invoice.ClientID); err == nil && client.Email != "" {
			s.notifier.InvoiceSent(ctx, invoice, client.Email)
		}
	}
	return invoice, nil
}

// MarkPaid settles a sent or overdue invoice, recording the payment date.
func (s *Service) MarkPaid(ctx context.Context, id int64, paymentDate *time.Time) (*Invoice, error) {
	existing, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get invoice: %w", err)
	}
	if existing.Status != StatusSent && existing.Status != StatusOverdue {
		return nil, fmt.Errorf("%w: only sent or overdue invoices can be paid", ErrInvalidStatus)
	}
	paid := s.now()
	if paymentDate != nil {
		paid = *paymentDate
	}
	if err := s.repo.UpdateStatus(ctx, id, StatusPaid, &paid); err != nil {
		return nil, fmt.Errorf("update invoice status: %w", err)
	}
	return s.repo.Get(ctx, id)
}

// Cancel voids an unpaid invoice.
func (s *Service) Cancel(ctx context.Context, id int64) (*Invoice, error) {
	existing, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get invoice: %w", err)
	}
	switch existing.Status {
	case StatusDraft, StatusSent, StatusOverdue:
	default:
		return nil, fmt.Errorf("%w: paid or cancelled invoices cannot be cancelled", ErrInvalidStatus)
	}
	if err := s.repo.UpdateStatus(ctx, id, StatusCancelled, nil); err != nil {
		return nil, fmt.Errorf("update invoice status: %w", err)
	}
	return s.repo.Get(ctx, id)
}

// Delete removes a draft invoice.
func (s *Service) Delete(ctx context.Context, id int64) error {
	existing, err := s.repo.Get(ctx, id)
	if err != nil {
		return err
	}
	if existing.Status != StatusDraft {
		return fmt.Errorf("%w: only draft invoices can be deleted", ErrInvalidStatus)
	}
	return s.repo.Delete(ctx, id)
}

// MarkOverdue flips sent invoices past their due date. Called by the
// background worker.
func (s *Service) MarkOverdue(ctx context.Context, now time.Time) (int64, error) {
	return s.repo.MarkOverdue(ctx, now)
}

package quotes

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/nineto6/backoffice/internal/billing"
	"github.com/nineto6/backoffice/internal/clients"
)

var (
	// ErrInvalidStatus indicates a lifecycle operation on the wrong state.
	ErrInvalidStatus = errors.New("invalid status transition")
)

// Notifier is told when a quote goes out to a client. Implementations
// enqueue the outbound mail; a nil notifier disables it.
type Notifier interface {
	QuoteSent(ctx context.Context, quote *Quote, recipient string)
}

// Service wraps quote business rules.
type Service struct {
	repo       Repository
	clientRepo clients.Repository
	notifier   Notifier
}

// NewService constructs a Service.
func NewService(repo Repository, clientRepo clients.Repository) *Service {
	return &Service{repo: repo, clientRepo: clientRepo}
}

// WithNotifier attaches a send notifier.
func (s *Service) WithNotifier(n Notifier) *Service {
	s.notifier = n
	return s
}

// buildItems runs the requested lines through a billing ledger so ids are
// assigned and every line total and document total comes from one code path.
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

// Create stores a new draft quote. The document number defaults to a
// generated AN label and may be overridden by the caller.
func (s *Service) Create(ctx context.Context, req CreateQuoteRequest) (*Quote, error) {
	if req.ValidUntil.Before(req.QuoteDate) {
		return nil, errors.New("valid_until must be after quote_date")
	}
	if _, err := s.clientRepo.Get(ctx, req.ClientID); err != nil {
		return nil, fmt.Errorf("verify client: %w", err)
	}

	number := billing.DocumentNumber(billing.DocumentKindQuote, req.QuoteDate)
	if req.QuoteNumber != nil && *req.QuoteNumber != "" {
		number = *req.QuoteNumber
	}

	items, totals := buildItems(req.Items)

	id, err := s.repo.Create(ctx, Quote{
		ClientID:    req.ClientID,
		ProjectID:   req.ProjectID,
		QuoteNumber: number,
		QuoteDate:   req.QuoteDate,
		ValidUntil:  req.ValidUntil,
		Items:       items,
		Subtotal:    totals.Subtotal,
		TaxAmount:   totals.TaxAmount,
		Total:       totals.Total,
		Status:      StatusDraft,
		Notes:       req.Notes,
	})
	if err != nil {
		return nil, fmt.Errorf("create quote: %w", err)
	}
	return s.repo.Get(ctx, id)
}

// Get loads a quote by id.
func (s *Service) Get(ctx context.Context, id int64) (*Quote, error) {
	return s.repo.Get(ctx, id)
}

// List returns quotes matching the filter plus the unpaged total.
func (s *Service) List(ctx context.Context, req ListQuotesRequest) ([]QuoteWithClient, int, error) {
	return s.repo.List(ctx, req)
}

// Update applies a partial update to a draft quote. A provided item list
// replaces the stored one and the totals snapshot is recomputed with it.
func (s *Service) Update(ctx context.Context, id int64, req UpdateQuoteRequest) (*Quote, error) {
	existing, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get quote: %w", err)
	}
	if existing.Status != StatusDraft {
		return nil, fmt.Errorf("%w: only draft quotes can be updated", ErrInvalidStatus)
	}

	updates := make(map[string]interface{})
	if req.ProjectID != nil {
		updates["project_id"] = *req.ProjectID
	}
	if req.QuoteNumber != nil {
		updates["quote_number"] = *req.QuoteNumber
	}
	if req.QuoteDate != nil {
		updates["quote_date"] = *req.QuoteDate
	}
	if req.ValidUntil != nil {
		updates["valid_until"] = *req.ValidUntil
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
			return nil, fmt.Errorf("update quote: %w", err)
		}
	}
	return s.repo.Get(ctx, id)
}

// Send marks a draft quote as sent to the client.
func (s *Service) Send(ctx context.Context, id int64) (*Quote, error) {
	quote, err := s.transition(ctx, id, StatusDraft, StatusSent, "only draft quotes can be sent")
	if err != nil {
		return nil, err
	}
	if s.notifier != nil {
		if client, err := s.clientRepo.Get(ctx, quote.ClientID); err == nil && client.Email != "" {
			s.notifier.QuoteSent(ctx, quote, client.Email)
		}
	}
	return quote, nil
}

// Accept marks a sent quote as accepted.
func (s *Service) Accept(ctx context.Context, id int64) (*Quote, error) {
	return s.transition(ctx, id, StatusSent, StatusAccepted, "only sent quotes can be accepted")
}

// Reject marks a sent quote as rejected.
func (s *Service) Reject(ctx context.Context, id int64) (*Quote, error) {
	return s.transition(ctx, id, StatusSent, StatusRejected, "only sent quotes can be rejected")
}

// Delete removes a draft quote.
func (s *Service) Delete(ctx context.Context, id int64) error {
	existing, err := s.repo.Get(ctx, id)
	if err != nil {
		return err
	}
	if existing.Status != StatusDraft {
		return fmt.Errorf("%w: only draft quotes can be deleted", ErrInvalidStatus)
	}
	return s.repo.Delete(ctx, id)
}

// ExpireOverdue flips sent quotes past their validity date. Called by the
// background worker.
func (s *Service) ExpireOverdue(ctx context.Context, now time.Time) (int64, error) {
	return s.repo.MarkExpired(ctx, now)
}

func (s *Service) transition(ctx context.Context, id int64, from, to Status, reason string) (*Quote, error) {
	existing, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get quote: %w", err)
	}
	if existing.Status != from {
		return nil, fmt.Errorf("%w: %s", ErrInvalidStatus, reason)
	}
	if err := s.repo.UpdateStatus(ctx, id, to); err != nil {
		return nil, fmt.Errorf("update quote status: %w", err)
	}
	return s.repo.Get(ctx, id)
}

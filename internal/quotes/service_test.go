package quotes

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/nineto6/backoffice/internal/billing"
	"github.com/nineto6/backoffice/internal/clients"
)

type memoryRepo struct {
	quotes map[int64]*Quote
	nextID int64
}

func newMemoryRepo() *memoryRepo {
	return &memoryRepo{quotes: make(map[int64]*Quote)}
}

func (r *memoryRepo) Get(ctx context.Context, id int64) (*Quote, error) {
	q, ok := r.quotes[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *q
	return &cp, nil
}

func (r *memoryRepo) List(ctx context.Context, req ListQuotesRequest) ([]QuoteWithClient, int, error) {
	var out []QuoteWithClient
	for _, q := range r.quotes {
		if req.Status != nil && q.Status != *req.Status {
			continue
		}
		if req.ClientID != nil && q.ClientID != *req.ClientID {
			continue
		}
		out = append(out, QuoteWithClient{Quote: *q, ClientName: "Musterfirma GmbH"})
	}
	return out, len(out), nil
}

func (r *memoryRepo) Create(ctx context.Context, quote Quote) (int64, error) {
	r.nextID++
	quote.ID = r.nextID
	quote.CreatedAt = time.Now()
	quote.UpdatedAt = time.Now()
	r.quotes[quote.ID] = &quote
	return quote.ID, nil
}

func (r *memoryRepo) Update(ctx context.Context, id int64, updates map[string]interface{}) error {
	q, ok := r.quotes[id]
	if !ok {
		return ErrNotFound
	}
	if v, ok := updates["quote_number"]; ok {
		q.QuoteNumber = v.(string)
	}
	if v, ok := updates["quote_date"]; ok {
		q.QuoteDate = v.(time.Time)
	}
	if v, ok := updates["valid_until"]; ok {
		q.ValidUntil = v.(time.Time)
	}
	if v, ok := updates["notes"]; ok {
		notes := v.(string)
		q.Notes = &notes
	}
	if v, ok := updates["items"]; ok {
		q.Items = v.([]billing.LineItem)
	}
	if v, ok := updates["subtotal"]; ok {
		q.Subtotal = v.(float64)
	}
	if v, ok := updates["tax_amount"]; ok {
		q.TaxAmount = v.(float64)
	}
	if v, ok := updates["total"]; ok {
		q.Total = v.(float64)
	}
	return nil
}

func (r *memoryRepo) UpdateStatus(ctx context.Context, id int64, status Status) error {
	q, ok := r.quotes[id]
	if !ok {
		return ErrNotFound
	}
	q.Status = status
	return nil
}

func (r *memoryRepo) Delete(ctx context.Context, id int64) error {
	if _, ok := r.quotes[id]; !ok {
		return ErrNotFound
	}
	delete(r.quotes, id)
	return nil
}

func (r *memoryRepo) MarkExpired(ctx context.Context, now time.Time) (int64, error) {
	var n int64
	for _, q := range r.quotes {
		if q.Status == StatusSent && q.ValidUntil.Before(now) {
			q.Status = StatusExpired
			n++
		}
	}
	return n, nil
}

func (r *memoryRepo) CountByStatus(ctx context.Context, status Status) (int, error) {
	n := 0
	for _, q := range r.quotes {
		if q.Status == status {
			n++
		}
	}
	return n, nil
}

type stubClientRepo struct {
	known map[int64]bool
}

func (r *stubClientRepo) Get(ctx context.Context, id int64) (*clients.Client, error) {
	if !r.known[id] {
		return nil, clients.ErrNotFound
	}
	return &clients.Client{ID: id, CompanyName: "Musterfirma GmbH"}, nil
}

func (r *stubClientRepo) List(ctx context.Context, req clients.ListClientsRequest) ([]clients.Client, int, error) {
	return nil, 0, nil
}

func (r *stubClientRepo) Create(ctx context.Context, client clients.Client) (int64, error) {
	return 0, nil
}

func (r *stubClientRepo) Update(ctx context.Context, id int64, updates map[string]interface{}) error {
	return nil
}

func (r *stubClientRepo) Delete(ctx context.Context, id int64) error { return nil }

func (r *stubClientRepo) Count(ctx context.Context) (int, error) { return 0, nil }

func newTestService() (*Service, *memoryRepo) {
	repo := newMemoryRepo()
	return NewService(repo, &stubClientRepo{known: map[int64]bool{1: true}}), repo
}

func createReq(clientID int64) CreateQuoteRequest {
	now := time.Date(2025, time.January, 15, 10, 0, 0, 0, time.UTC)
	return CreateQuoteRequest{
		ClientID:   clientID,
		QuoteDate:  now,
		ValidUntil: now.AddDate(0, 0, 30),
		Items: []LineItemInput{
			{Description: "Elementor Website Entwicklung", Quantity: 2, UnitPrice: 100, TaxRate: billing.TaxRateStandard},
			{Description: "Backup & Monitoring", Quantity: 1, UnitPrice: 50, TaxRate: billing.TaxRateReduced},
		},
	}
}

func TestCreateQuoteComputesTotals(t *testing.T) {
	svc, _ := newTestService()

	quote, err := svc.Create(context.Background(), createReq(1))
	require.NoError(t, err)

	require.Equal(t, StatusDraft, quote.Status)
	require.Regexp(t, `^AN-20250115-\d{4}$`, quote.QuoteNumber)
	require.Len(t, quote.Items, 2)
	require.Equal(t, 200.0, quote.Items[0].LineTotal)
	require.Equal(t, 50.0, quote.Items[1].LineTotal)
	require.NotEmpty(t, quote.Items[0].ID)
	require.Equal(t, 250.0, quote.Subtotal)
	require.Equal(t, 41.50, quote.TaxAmount)
	require.Equal(t, 291.50, quote.Total)
}

func TestCreateQuoteNumberOverride(t *testing.T) {
	svc, _ := newTestService()

	req := createReq(1)
	number := "AN-2025-CUSTOM"
	req.QuoteNumber = &number

	quote, err := svc.Create(context.Background(), req)
	require.NoError(t, err)
	require.Equal(t, "AN-2025-CUSTOM", quote.QuoteNumber)
}

func TestCreateQuoteUnknownClient(t *testing.T) {
	svc, _ := newTestService()

	_, err := svc.Create(context.Background(), createReq(99))
	require.ErrorIs(t, err, clients.ErrNotFound)
}

func TestCreateQuoteValidityWindow(t *testing.T) {
	svc, _ := newTestService()

	req := createReq(1)
	req.ValidUntil = req.QuoteDate.AddDate(0, 0, -1)
	_, err := svc.Create(context.Background(), req)
	require.Error(t, err)
}

func TestUpdateQuoteReplacesItemsAndTotals(t *testing.T) {
	svc, _ := newTestService()

	quote, err := svc.Create(context.Background(), createReq(1))
	require.NoError(t, err)

	newItems := []LineItemInput{
		{Description: "SEO Optimierung", Quantity: 1, UnitPrice: 300, TaxRate: billing.TaxRateStandard},
	}
	updated, err := svc.Update(context.Background(), quote.ID, UpdateQuoteRequest{Items: &newItems})
	require.NoError(t, err)
	require.Len(t, updated.Items, 1)
	require.Equal(t, 300.0, updated.Subtotal)
	require.Equal(t, 57.0, updated.TaxAmount)
	require.Equal(t, 357.0, updated.Total)
}

func TestUpdateNonDraftRejected(t *testing.T) {
	svc, _ := newTestService()

	quote, err := svc.Create(context.Background(), createReq(1))
	require.NoError(t, err)
	_, err = svc.Send(context.Background(), quote.ID)
	require.NoError(t, err)

	notes := "nachtrag"
	_, err = svc.Update(context.Background(), quote.ID, UpdateQuoteRequest{Notes: &notes})
	require.ErrorIs(t, err, ErrInvalidStatus)
}

func TestQuoteLifecycle(t *testing.T) {
	svc, _ := newTestService()

	quote, err := svc.Create(context.Background(), createReq(1))
	require.NoError(t, err)

	// Accepting a draft skips the sent state and is rejected.
	_, err = svc.Accept(context.Background(), quote.ID)
	require.ErrorIs(t, err, ErrInvalidStatus)

	sent, err := svc.Send(context.Background(), quote.ID)
	require.NoError(t, err)
	require.Equal(t, StatusSent, sent.Status)

	accepted, err := svc.Accept(context.Background(), quote.ID)
	require.NoError(t, err)
	require.Equal(t, StatusAccepted, accepted.Status)
}

func TestDeleteOnlyDrafts(t *testing.T) {
	svc, _ := newTestService()

	quote, err := svc.Create(context.Background(), createReq(1))
	require.NoError(t, err)
	_, err = svc.Send(context.Background(), quote.ID)
	require.NoError(t, err)

	require.ErrorIs(t, svc.Delete(context.Background(), quote.ID), ErrInvalidStatus)
}

func TestExpireOverdue(t *testing.T) {
	svc, repo := newTestService()

	quote, err := svc.Create(context.Background(), createReq(1))
	require.NoError(t, err)
	_, err = svc.Send(context.Background(), quote.ID)
	require.NoError(t, err)

	n, err := svc.ExpireOverdue(context.Background(), quote.ValidUntil.AddDate(0, 0, 1))
	require.NoError(t, err)
	require.EqualValues(t, 1, n)

	expired, err := repo.Get(context.Background(), quote.ID)
	require.NoError(t, err)
	require.Equal(t, StatusExpired, expired.Status)
}

package dashboard

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/nineto6/backoffice/internal/clients"
	"github.com/nineto6/backoffice/internal/invoices"
	"github.com/nineto6/backoffice/internal/projects"
	"github.com/nineto6/backoffice/internal/quotes"
)

// The stubs embed their interface and override only what the dashboard
// touches; any other call panics loudly.

type stubClientRepo struct{ clients.Repository }

func (stubClientRepo) Count(ctx context.Context) (int, error) { return 12, nil }

type stubProjectRepo struct{ projects.Repository }

func (stubProjectRepo) CountActive(ctx context.Context) (int, error) { return 3, nil }

type stubQuoteRepo struct{ quotes.Repository }

func (stubQuoteRepo) CountByStatus(ctx context.Context, status quotes.Status) (int, error) {
	if status != quotes.StatusSent {
		return 0, nil
	}
	return 5, nil
}

type stubInvoiceRepo struct {
	invoices.Repository
	paidFrom, paidTo time.Time
}

func (r *stubInvoiceRepo) SumPaidBetween(ctx context.Context, from, to time.Time) (float64, error) {
	r.paidFrom, r.paidTo = from, to
	return 4250.50, nil
}

func (r *stubInvoiceRepo) SumUnpaid(ctx context.Context) (float64, error) { return 1190.0, nil }

type stubActivityRepo struct {
	limit int
}

func (r *stubActivityRepo) Recent(ctx context.Context, limit int) ([]Activity, error) {
	r.limit = limit
	return []Activity{{Kind: "invoice", ID: 1, Title: "RE-20250115-0001"}}, nil
}

func TestStats(t *testing.T) {
	invoiceRepo := &stubInvoiceRepo{}
	svc := NewService(stubClientRepo{}, stubProjectRepo{}, stubQuoteRepo{}, invoiceRepo, &stubActivityRepo{})
	svc.now = func() time.Time {
		return time.Date(2025, time.January, 20, 15, 30, 0, 0, time.UTC)
	}

	stats, err := svc.Stats(context.Background())
	require.NoError(t, err)

	require.Equal(t, 4250.50, stats.MonthRevenue)
	require.Equal(t, 3, stats.ActiveProjects)
	require.Equal(t, 12, stats.Clients)
	require.Equal(t, 5, stats.OpenQuotes)
	require.Equal(t, 1190.0, stats.UnpaidTotal)
	require.NotEmpty(t, stats.MonthRevenueFormatted)
	require.NotEmpty(t, stats.UnpaidTotalFormatted)

	// Revenue is bounded to the calendar month of "now".
	require.Equal(t, time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC), invoiceRepo.paidFrom)
	require.Equal(t, time.Date(2025, time.February, 1, 0, 0, 0, 0, time.UTC), invoiceRepo.paidTo)
}

func TestRecentActivityClampsLimit(t *testing.T) {
	activity := &stubActivityRepo{}
	svc := NewService(stubClientRepo{}, stubProjectRepo{}, stubQuoteRepo{}, &stubInvoiceRepo{}, activity)

	_, err := svc.RecentActivity(context.Background(), 0)
	require.NoError(t, err)
	require.Equal(t, defaultActivityLimit, activity.limit)

	_, err = svc.RecentActivity(context.Background(), 500)
	require.NoError(t, err)
	require.Equal(t, defaultActivityLimit, activity.limit)

	_, err = svc.RecentActivity(context.Background(), 25)
	require.NoError(t, err)
	require.Equal(t, 25, activity.limit)
}

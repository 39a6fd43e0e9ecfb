package dashboard

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/nineto6/backoffice/internal/billing"
	"github.com/nineto6/backoffice/internal/clients"
	"github.com/nineto6/backoffice/internal/invoices"
	"github.com/nineto6/backoffice/internal/projects"
	"github.com/nineto6/backoffice/internal/quotes"
)

const defaultActivityLimit = 10

// Service assembles the overview from the domain repositories.
type Service struct {
	clientRepo  clients.Repository
	projectRepo projects.Repository
	quoteRepo   quotes.Repository
	invoiceRepo invoices.Repository
	activity    ActivityRepository
	now         func() time.Time
}

// NewService constructs a Service.
func NewService(
	clientRepo clients.Repository,
	projectRepo projects.Repository,
	quoteRepo quotes.Repository,
	invoiceRepo invoices.Repository,
	activity ActivityRepository,
) *Service {
	return &Service{
		clientRepo:  clientRepo,
		projectRepo: projectRepo,
		quoteRepo:   quoteRepo,
		invoiceRepo: invoiceRepo,
		activity:    activity,
		now:         time.Now,
	}
}

// Stats gathers the five headline numbers. Revenue counts invoices paid
// within the current calendar month. The queries run concurrently.
func (s *Service) Stats(ctx context.Context) (*Stats, error) {
	now := s.now()
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	monthEnd := monthStart.AddDate(0, 1, 0)

	var stats Stats
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		revenue, err := s.invoiceRepo.SumPaidBetween(ctx, monthStart, monthEnd)
		stats.MonthRevenue = revenue
		return err
	})
	g.Go(func() error {
		n, err := s.projectRepo.CountActive(ctx)
		stats.ActiveProjects = n
		return err
	})
	g.Go(func() error {
		n, err := s.clientRepo.Count(ctx)
		stats.Clients = n
		return err
	})
	g.Go(func() error {
		n, err := s.quoteRepo.CountByStatus(ctx, quotes.StatusSent)
		stats.OpenQuotes = n
		return err
	})
	g.Go(func() error {
		sum, err := s.invoiceRepo.SumUnpaid(ctx)
		stats.UnpaidTotal = sum
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	stats.MonthRevenueFormatted = billing.FormatEUR(stats.MonthRevenue)
	stats.UnpaidTotalFormatted = billing.FormatEUR(stats.UnpaidTotal)
	return &stats, nil
}

// RecentActivity returns the latest documents and clients, newest first.
func (s *Service) RecentActivity(ctx context.Context, limit int) ([]Activity, error) {
	if limit <= 0 || limit > 50 {
		limit = defaultActivityLimit
	}
	return s.activity.Recent(ctx, limit)
}

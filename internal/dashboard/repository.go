package dashboard

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

// ActivityRepository feeds the recent-activity list.
type ActivityRepository interface {
	Recent(ctx context.Context, limit int) ([]Activity, error)
}

type activityRepository struct {
	pool *pgxpool.Pool
}

// NewActivityRepository returns the pgx-backed ActivityRepository.
func NewActivityRepository(pool *pgxpool.Pool) ActivityRepository {
	return &activityRepository{pool: pool}
}

// Recent interleaves the latest quotes, invoices and clients by creation
// time. One UNION keeps it a single round trip.
func (r *activityRepository) Recent(ctx context.Context, limit int) ([]Activity, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT kind, id, title, status, amount, occurred_at FROM (
			SELECT 'quote' AS kind, q.id, q.quote_number AS title, q.status::text AS status,
			       q.total AS amount, q.created_at AS occurred_at
			FROM quotes q
			UNION ALL
			SELECT 'invoice', i.id, i.invoice_number, i.status::text, i.total, i.created_at
			FROM invoices i
			UNION ALL
			SELECT 'client', c.id, c.company_name, NULL, NULL, c.created_at
			FROM clients c
		) feed
		ORDER BY occurred_at DESC
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Activity
	for rows.Next() {
		var a Activity
		if err := rows.Scan(&a.Kind, &a.ID, &a.Title, &a.Status, &a.Amount, &a.OccurredAt); err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

package quotes

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/nineto6/backoffice/internal/billing"
)

var (
	// ErrNotFound indicates the quote does not exist.
	ErrNotFound = errors.New("quote not found")
)

// Repository abstracts quote persistence. Line items travel as a JSON
// document alongside the totals snapshot.
type Repository interface {
	Get(ctx context.Context, id int64) (*Quote, error)
	List(ctx context.Context, req ListQuotesRequest) ([]QuoteWithClient, int, error)
	Create(ctx context.Context, quote Quote) (int64, error)
	Update(ctx context.Context, id int64, updates map[string]interface{}) error
	UpdateStatus(ctx context.Context, id int64, status Status) error
	Delete(ctx context.Context, id int64) error
	MarkExpired(ctx context.Context, now time.Time) (int64, error)
	CountByStatus(ctx context.Context, status Status) (int, error)
}

type repository struct {
	pool *pgxpool.Pool
}

// NewRepository returns the pgx-backed Repository.
func NewRepository(pool *pgxpool.Pool) Repository {
	return &repository{pool: pool}
}

const quoteColumns = `id, client_id, project_id, quote_number, quote_date, valid_until, items, subtotal, tax_amount, total, status, notes, created_at, updated_at`

func (r *repository) Get(ctx context.Context, id int64) (*Quote, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+quoteColumns+` FROM quotes WHERE id = $1`, id)
	q, err := scanQuote(row)
	if err != nil {
		return nil, err
	}
	return q, nil
}

func scanQuote(row pgx.Row) (*Quote, error) {
	var (
		q      Quote
		status string
		items  []byte
	)
	err := row.Scan(&q.ID, &q.ClientID, &q.ProjectID, &q.QuoteNumber, &q.QuoteDate, &q.ValidUntil,
		&items, &q.Subtotal, &q.TaxAmount, &q.Total, &status, &q.Notes, &q.CreatedAt, &q.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	q.Status = Status(status)
	if err := json.Unmarshal(items, &q.Items); err != nil {
		return nil, fmt.Errorf("decode quote items: %w", err)
	}
	return &q, nil
}

func (r *repository) List(ctx context.Context, req ListQuotesRequest) ([]QuoteWithClient, int, error) {
	var conditions []string
	var args []interface{}
	argPos := 1

	if req.ClientID != nil {
		conditions = append(conditions, fmt.Sprintf("q.client_id = $%d", argPos))
		args = append(args, *req.ClientID)
		argPos++
	}
	if req.Status != nil {
		conditions = append(conditions, fmt.Sprintf("q.status = $%d", argPos))
		args = append(args, string(*req.Status))
		argPos++
	}

	where := ""
	if len(conditions) > 0 {
		where = " WHERE " + strings.Join(conditions, " AND ")
	}

	var total int
	if err := r.pool.QueryRow(ctx, "SELECT COUNT(*) FROM quotes q"+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	limit := req.Limit
	if limit <= 0 {
		limit = 50
	}
	query := fmt.Sprintf(`
		SELECT q.id, q.client_id, q.project_id, q.quote_number, q.quote_date, q.valid_until,
		       q.items, q.subtotal, q.tax_amount, q.total, q.status, q.notes, q.created_at, q.updated_at,
		       c.company_name
		FROM quotes q
		JOIN clients c ON c.id = q.client_id
		%s
		ORDER BY q.quote_date DESC, q.id DESC
		LIMIT $%d OFFSET $%d
	`, where, argPos, argPos+1)
	args = append(args, limit, req.Offset)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var out []QuoteWithClient
	for rows.Next() {
		var (
			q      QuoteWithClient
			status string
			items  []byte
		)
		if err := rows.Scan(&q.ID, &q.ClientID, &q.ProjectID, &q.QuoteNumber, &q.QuoteDate, &q.ValidUntil,
			&items, &q.Subtotal, &q.TaxAmount, &q.Total, &status, &q.Notes, &q.CreatedAt, &q.UpdatedAt,
			&q.ClientName); err != nil {
			return nil, 0, err
		}
		q.Status = Status(status)
		if err := json.Unmarshal(items, &q.Items); err != nil {
			return nil, 0, fmt.Errorf("decode quote items: %w", err)
		}
		out = append(out, q)
	}
	return out, total, rows.Err()
}

func (r *repository) Create(ctx context.Context, quote Quote) (int64, error) {
	items, err := json.Marshal(itemsOrEmpty(quote.Items))
	if err != nil {
		return 0, err
	}
	var id int64
	err = r.pool.QueryRow(ctx, `
		INSERT INTO quotes (client_id, project_id, quote_number, quote_date, valid_until, items, subtotal, tax_amount, total, status, notes, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, NOW(), NOW())
		RETURNING id
	`, quote.ClientID, quote.ProjectID, quote.QuoteNumber, quote.QuoteDate, quote.ValidUntil,
		items, quote.Subtotal, quote.TaxAmount, quote.Total, string(quote.Status), quote.Notes).Scan(&id)
	if err != nil {
		return 0, err
	}
	return id, nil
}

func (r *repository) Update(ctx context.Context, id int64, updates map[string]interface{}) error {
	query := "UPDATE quotes SET updated_at = NOW()"
	var args []interface{}
	argPos := 1

	for _, col := range []string{"project_id", "quote_number", "quote_date", "valid_until", "subtotal", "tax_amount", "total", "notes"} {
		if v, ok := updates[col]; ok {
			query += fmt.Sprintf(", %s = $%d", col, argPos)
			args = append(args, v)
			argPos++
		}
	}
	if v, ok := updates["items"]; ok {
		data, err := json.Marshal(v)
		if err != nil {
			return err
		}
		query += fmt.Sprintf(", items = $%d", argPos)
		args = append(args, data)
		argPos++
	}

	query += fmt.Sprintf(" WHERE id = $%d", argPos)
	args = append(args, id)

	tag, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *repository) UpdateStatus(ctx context.Context, id int64, status Status) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE quotes SET status = $1, updated_at = NOW() WHERE id = $2`, string(status), id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *repository) Delete(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM quotes WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// MarkExpired flips sent quotes whose validity window has passed and
// reports how many rows changed.
func (r *repository) MarkExpired(ctx context.Context, now time.Time) (int64, error) {
	tag, err := r.pool.Exec(ctx, `
		UPDATE quotes SET status = $1, updated_at = NOW()
		WHERE status = $2 AND valid_until < $3
	`, string(StatusExpired), string(StatusSent), now)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

func (r *repository) CountByStatus(ctx context.Context, status Status) (int, error) {
	var n int
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM quotes WHERE status = $1`, string(status)).Scan(&n)
	return n, err
}

func itemsOrEmpty(items []billing.LineItem) []billing.LineItem {
	if items == nil {
		return []billing.LineItem{}
	}
	return items
}

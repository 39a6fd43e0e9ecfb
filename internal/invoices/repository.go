package invoices

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
	// ErrNotFound indicates the invoice does not exist.
	ErrNotFound = errors.New("invoice not found")
)

// Repository abstracts invoice persistence. Line items travel as a JSON
// document alongside the totals snapshot.
type Repository interface {
	Get(ctx context.Context, id int64) (*Invoice, error)
	List(ctx context.Context, req ListInvoicesRequest) ([]InvoiceWithClient, int, error)
	Create(ctx context.Context, invoice Invoice) (int64, error)
	Update(ctx context.Context, id int64, updates map[string]interface{}) error
	UpdateStatus(ctx context.Context, id int64, status Status, paymentDate *time.Time) error
	Delete(ctx context.Context, id int64) error
	MarkOverdue(ctx context.Context, now time.Time) (int64, error)
	SumUnpaid(ctx context.Context) (float64, error)
	SumPaidBetween(ctx context.Context, from, to time.Time) (float64, error)
}

type repository struct {
	pool *pgxpool.Pool
}

// NewRepository returns the pgx-backed Repository.
func NewRepository(pool *pgxpool.Pool) Repository {
	return &repository{pool: pool}
}

const invoiceColumns = `id, client_id, project_id, quote_id, invoice_number, invoice_date, due_date, items, subtotal, tax_amount, total, status, payment_date, notes, created_at, updated_at`

func (r *repository) Get(ctx context.Context, id int64) (*Invoice, error) {
	var (
		inv    Invoice
		status string
		items  []byte
	)
	err := r.pool.QueryRow(ctx, `SELECT `+invoiceColumns+` FROM invoices WHERE id = $1`, id).Scan(
		&inv.ID, &inv.ClientID, &inv.ProjectID, &inv.QuoteID, &inv.InvoiceNumber, &inv.InvoiceDate, &inv.DueDate,
		&items, &inv.Subtotal, &inv.TaxAmount, &inv.Total, &status, &inv.PaymentDate, &inv.Notes,
		&inv.CreatedAt, &inv.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	inv.Status = Status(status)
	if err := json.Unmarshal(items, &inv.Items); err != nil {
		return nil, fmt.Errorf("decode invoice items: %w", err)
	}
	return &inv, nil
}

func (r *repository) List(ctx context.Context, req ListInvoicesRequest) ([]InvoiceWithClient, int, error) {
	var conditions []string
	var args []interface{}
	argPos := 1

	if req.ClientID != nil {
		conditions = append(conditions, fmt.Sprintf("i.client_id = $%d", argPos))
		args = append(args, *req.ClientID)
		argPos++
	}
	if req.Status != nil {
		conditions = append(conditions, fmt.Sprintf("i.status = $%d", argPos))
		args = append(args, string(*req.Status))
		argPos++
	}

	where := ""
	if len(conditions) > 0 {
		where = " WHERE " + strings.Join(conditions, " AND ")
	}

	var total int
	if err := r.pool.QueryRow(ctx, "SELECT COUNT(*) FROM invoices i"+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	limit := req.Limit
	if limit <= 0 {
		limit = 50
	}
	query := fmt.Sprintf(`
		SELECT i.id, i.client_id, i.project_id, i.quote_id, i.invoice_number, i.invoice_date, i.due_date,
		       i.items, i.subtotal, i.tax_amount, i.total, i.status, i.payment_date, i.notes,
		       i.created_at, i.updated_at, c.company_name
		FROM invoices i
		JOIN clients c ON c.id = i.client_id
		%s
		ORDER BY i.invoice_date DESC, i.id DESC
		LIMIT $%d OFFSET $%d
	`, where, argPos, argPos+1)
	args = append(args, limit, req.Offset)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var out []InvoiceWithClient
	for rows.Next() {
		var (
			inv    InvoiceWithClient
			status string
			items  []byte
		)
		if err := rows.Scan(&inv.ID, &inv.ClientID, &inv.ProjectID, &inv.QuoteID, &inv.InvoiceNumber,
			&inv.InvoiceDate, &inv.DueDate, &items, &inv.Subtotal, &inv.TaxAmount, &inv.Total,
			&status, &inv.PaymentDate, &inv.Notes, &inv.CreatedAt, &inv.UpdatedAt, &inv.ClientName); err != nil {
			return nil, 0, err
		}
		inv.Status = Status(status)
		if err := json.Unmarshal(items, &inv.Items); err != nil {
			return nil, 0, fmt.Errorf("decode invoice items: %w", err)
		}
		out = append(out, inv)
	}
	return out, total, rows.Err()
}

func (r *repository) Create(ctx context.Context, invoice Invoice) (int64, error) {
	items := invoice.Items
	if items == nil {
		items = []billing.LineItem{}
	}
	data, err := json.Marshal(items)
	if err != nil {
		return 0, err
	}
	var id int64
	err = r.pool.QueryRow(ctx, `
		INSERT INTO invoices (client_id, project_id, quote_id, invoice_number, invoice_date, due_date, items, subtotal, tax_amount, total, status, payment_date, notes, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, NOW(), NOW())
		RETURNING id
	`, invoice.ClientID, invoice.ProjectID, invoice.QuoteID, invoice.InvoiceNumber, invoice.InvoiceDate,
		invoice.DueDate, data, invoice.Subtotal, invoice.TaxAmount, invoice.Total, string(invoice.Status),
		invoice.PaymentDate, invoice.Notes).Scan(&id)
	if err != nil {
		return 0, err
	}
	return id, nil
}

func (r *repository) Update(ctx context.Context, id int64, updates map[string]interface{}) error {
	query := "UPDATE invoices SET updated_at = NOW()"
	var args []interface{}
	argPos := 1

	for _, col := range []string{"project_id", "invoice_number", "invoice_date", "due_date", "subtotal", "tax_amount", "total", "notes"} {
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

func (r *repository) UpdateStatus(ctx context.Context, id int64, status Status, paymentDate *time.Time) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE invoices SET status = $1, payment_date = $2, updated_at = NOW() WHERE id = $3
	`, string(status), paymentDate, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *repository) Delete(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM invoices WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// MarkOverdue flips sent invoices whose due date has passed and reports how
// many rows changed.
func (r *repository) MarkOverdue(ctx context.Context, now time.Time) (int64, error) {
	tag, err := r.pool.Exec(ctx, `
		UPDATE invoices SET status = $1, updated_at = NOW()
		WHERE status = $2 AND due_date < $3
	`, string(StatusOverdue), string(StatusSent), now)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

func (r *repository) SumUnpaid(ctx context.Context) (float64, error) {
	var sum float64
	err := r.pool.QueryRow(ctx, `
		SELECT COALESCE(SUM(total), 0) FROM invoices WHERE status IN ('sent', 'overdue')
	`).Scan(&sum)
	return sum, err
}

func (r *repository) SumPaidBetween(ctx context.Context, from, to time.Time) (float64, error) {
	var sum float64
	err := r.pool.QueryRow(ctx, `
		SELECT COALESCE(SUM(total), 0) FROM invoices
		WHERE status = 'paid' AND payment_date >= $1 AND payment_date < $2
	`, from, to).Scan(&sum)
	return sum, err
}

package projects

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var (
	// ErrNotFound indicates the project record does not exist.
	ErrNotFound = errors.New("project not found")
)

// Repository abstracts project persistence.
type Repository interface {
	Get(ctx context.Context, id int64) (*Project, error)
	List(ctx context.Context, req ListProjectsRequest) ([]ProjectWithClient, int, error)
	Create(ctx context.Context, project Project) (int64, error)
	Update(ctx context.Context, id int64, updates map[string]interface{}) error
	Delete(ctx context.Context, id int64) error
	CountActive(ctx context.Context) (int, error)
}

type repository struct {
	pool *pgxpool.Pool
}

// NewRepository returns the pgx-backed Repository.
func NewRepository(pool *pgxpool.Pool) Repository {
	return &repository{pool: pool}
}

func (r *repository) Get(ctx context.Context, id int64) (*Project, error) {
	var p Project
	var status, ptype string
	err := r.pool.QueryRow(ctx, `
		SELECT id, client_id, name, description, status, project_type, start_date, end_date, total_value, created_at, updated_at
		FROM projects WHERE id = $1
	`, id).Scan(&p.ID, &p.ClientID, &p.Name, &p.Description, &status, &ptype,
		&p.StartDate, &p.EndDate, &p.TotalValue, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	p.Status = Status(status)
	p.ProjectType = Type(ptype)
	return &p, nil
}

func (r *repository) List(ctx context.Context, req ListProjectsRequest) ([]ProjectWithClient, int, error) {
	var conditions []string
	var args []interface{}
	argPos := 1

	if req.ClientID != nil {
		conditions = append(conditions, fmt.Sprintf("p.client_id = $%d", argPos))
		args = append(args, *req.ClientID)
		argPos++
	}
	if req.Status != nil {
		conditions = append(conditions, fmt.Sprintf("p.status = $%d", argPos))
		args = append(args, string(*req.Status))
		argPos++
	}

	where := ""
	if len(conditions) > 0 {
		where = " WHERE " + strings.Join(conditions, " AND ")
	}

	var total int
	if err := r.pool.QueryRow(ctx, "SELECT COUNT(*) FROM projects p"+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	limit := req.Limit
	if limit <= 0 {
		limit = 50
	}
	query := fmt.Sprintf(`
		SELECT p.id, p.client_id, p.name, p.description, p.status, p.project_type,
		       p.start_date, p.end_date, p.total_value, p.created_at, p.updated_at,
		       c.company_name
		FROM projects p
		JOIN clients c ON c.id = p.client_id
		%s
		ORDER BY p.created_at DESC
		LIMIT $%d OFFSET $%d
	`, where, argPos, argPos+1)
	args = append(args, limit, req.Offset)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var out []ProjectWithClient
	for rows.Next() {
		var p ProjectWithClient
		var status, ptype string
		if err := rows.Scan(&p.ID, &p.ClientID, &p.Name, &p.Description, &status, &ptype,
			&p.StartDate, &p.EndDate, &p.TotalValue, &p.CreatedAt, &p.UpdatedAt, &p.ClientName); err != nil {
			return nil, 0, err
		}
		p.Status = Status(status)
		p.ProjectType = Type(ptype)
		out = append(out, p)
	}
	return out, total, rows.Err()
}

func (r *repository) Create(ctx context.Context, project Project) (int64, error) {
	var id int64
	err := r.pool.QueryRow(ctx, `
		INSERT INTO projects (client_id, name, description, status, project_type, start_date, end_date, total_value, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NOW(), NOW())
		RETURNING id
	`, project.ClientID, project.Name, project.Description, string(project.Status),
		string(project.ProjectType), project.StartDate, project.EndDate, project.TotalValue).Scan(&id)
	if err != nil {
		return 0, err
	}
	return id, nil
}

func (r *repository) Update(ctx context.Context, id int64, updates map[string]interface{}) error {
	query := "UPDATE projects SET updated_at = NOW()"
	var args []interface{}
	argPos := 1

	for _, col := range []string{"name", "description", "status", "project_type", "start_date", "end_date", "total_value"} {
		if v, ok := updates[col]; ok {
			query += fmt.Sprintf(", %s = $%d", col, argPos)
			args = append(args, v)
			argPos++
		}
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

func (r *repository) Delete(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM projects WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *repository) CountActive(ctx context.Context) (int, error) {
	var n int
	err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM projects WHERE status IN ('planning', 'in_progress', 'review')`).Scan(&n)
	return n, err
}

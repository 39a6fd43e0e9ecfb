package auth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/nineto6/backoffice/internal/platform/db"
	"github.com/nineto6/backoffice/internal/shared"
)

// Repository abstracts user and profile persistence. CreateAccount writes
// the user row and its profile atomically; a failed profile insert must not
// leave an orphaned user behind.
type Repository interface {
	FindUserByEmail(ctx context.Context, email string) (*User, error)
	CreateAccount(ctx context.Context, email, passwordHash string, profile Profile) (int64, error)
	GetProfile(ctx context.Context, userID int64) (*Profile, error)
	UpdateProfile(ctx context.Context, userID int64, updates map[string]interface{}) error
}

type repository struct {
	pool *pgxpool.Pool
}

// NewRepository returns the pgx-backed Repository.
func NewRepository(pool *pgxpool.Pool) Repository {
	return &repository{pool: pool}
}

func (r *repository) FindUserByEmail(ctx context.Context, email string) (*User, error) {
	var u User
	err := r.pool.QueryRow(ctx, `
		SELECT id, email, password_hash, is_active, created_at, updated_at
		FROM users WHERE lower(email) = lower($1)
	`, email).Scan(&u.ID, &u.Email, &u.PasswordHash, &u.IsActive, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &u, nil
}

func (r *repository) CreateAccount(ctx context.Context, email, passwordHash string, profile Profile) (int64, error) {
	var address []byte
	if profile.Address != nil {
		data, err := json.Marshal(profile.Address)
		if err != nil {
			return 0, err
		}
		address = data
	}

	var id int64
	err := db.WithTx(ctx, r.pool, func(tx pgx.Tx) error {
		if err := tx.QueryRow(ctx, `
			INSERT INTO users (email, password_hash, is_active, created_at, updated_at)
			VALUES ($1, $2, TRUE, NOW(), NOW())
			RETURNING id
		`, email, passwordHash).Scan(&id); err != nil {
			return fmt.Errorf("insert user: %w", err)
		}

		if _, err := tx.Exec(ctx, `
			INSERT INTO profiles (user_id, email, full_name, company_name, role, tax_number, vat_id, address, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NOW(), NOW())
		`, id, profile.Email, profile.FullName, profile.CompanyName, string(profile.Role), profile.TaxNumber, profile.VATID, address); err != nil {
			return fmt.Errorf("insert profile: %w", err)
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return id, nil
}

func (r *repository) GetProfile(ctx context.Context, userID int64) (*Profile, error) {
	var (
		p       Profile
		role    string
		address []byte
	)
	err := r.pool.QueryRow(ctx, `
		SELECT user_id, email, full_name, company_name, role, tax_number, vat_id, address, created_at, updated_at
		FROM profiles WHERE user_id = $1
	`, userID).Scan(&p.UserID, &p.Email, &p.FullName, &p.CompanyName, &role, &p.TaxNumber, &p.VATID, &address, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	p.Role = Role(role)
	if len(address) > 0 {
		var addr Address
		if err := json.Unmarshal(address, &addr); err != nil {
			return nil, err
		}
		p.Address = &addr
	}
	return &p, nil
}

func (r *repository) UpdateProfile(ctx context.Context, userID int64, updates map[string]interface{}) error {
	query := "UPDATE profiles SET updated_at = NOW()"
	var args []interface{}
	argPos := 1

	for _, col := range []string{"full_name", "company_name", "tax_number", "vat_id"} {
		if v, ok := updates[col]; ok {
			query += fmt.Sprintf(", %s = $%d", col, argPos)
			args = append(args, v)
			argPos++
		}
	}
	if v, ok := updates["address"]; ok {
		data, err := json.Marshal(v)
		if err != nil {
			return err
		}
		query += fmt.Sprintf(", address = $%d", argPos)
		args = append(args, data)
		argPos++
	}

	query += fmt.Sprintf(" WHERE user_id = $%d", argPos)
	args = append(args, userID)

	tag, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return shared.ErrNotFound
	}
	return nil
}

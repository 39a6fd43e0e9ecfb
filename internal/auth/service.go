package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/nineto6/backoffice/internal/shared"
)

var (
	// ErrEmailTaken indicates a registration with an existing email.
	ErrEmailTaken = errors.New("email already registered")
)

// accountCreateAttempts bounds the retry loop around account creation. Each
// attempt writes user and profile in one transaction, so a failed attempt
// leaves nothing behind and the email stays free for a later retry.
const (
	accountCreateAttempts = 3
	accountCreateBackoff  = 100 * time.Millisecond
)

// Service wraps authentication business rules. All collaborators are
// injected; the package keeps no ambient client state.
type Service struct {
	repo   Repository
	logger *slog.Logger
}

// NewService constructs a Service.
func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

// RegisterInput carries the sign-up form fields.
type RegisterInput struct {
	Email       string
	Password    string
	FullName    *string
	CompanyName *string
}

// Authenticate validates email/password credentials.
func (s *Service) Authenticate(ctx context.Context, email, password string) (*User, error) {
	user, err := s.repo.FindUserByEmail(ctx, email)
	if err != nil {
		return nil, shared.ErrInvalidCredentials
	}
	if !user.IsActive {
		return nil, shared.ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, shared.ErrInvalidCredentials
	}
	return user, nil
}

// Register creates the login account and its profile row in one atomic
// write, retried a bounded number of times before the error is surfaced.
func (s *Service) Register(ctx context.Context, input RegisterInput) (*Profile, error) {
	if _, err := s.repo.FindUserByEmail(ctx, input.Email); err == nil {
		return nil, ErrEmailTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	profile := Profile{
		Email:       input.Email,
		FullName:    input.FullName,
		CompanyName: input.CompanyName,
		Role:        RoleUser,
	}

	var lastErr error
	for attempt := 1; attempt <= accountCreateAttempts; attempt++ {
		userID, err := s.repo.CreateAccount(ctx, input.Email, string(hash), profile)
		if err == nil {
			return s.repo.GetProfile(ctx, userID)
		}
		lastErr = err
		if s.logger != nil {
			s.logger.Warn("create account",
				slog.Int("attempt", attempt),
				slog.Any("error", lastErr))
		}
		if attempt == accountCreateAttempts {
			break
		}
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(accountCreateBackoff * time.Duration(attempt)):
		}
	}
	return nil, fmt.Errorf("create account after %d attempts: %w", accountCreateAttempts, lastErr)
}

// Profile returns the profile for a user id.
func (s *Service) Profile(ctx context.Context, userID int64) (*Profile, error) {
	return s.repo.GetProfile(ctx, userID)
}

// UpdateProfile applies a partial profile update and returns the new state.
func (s *Service) UpdateProfile(ctx context.Context, userID int64, updates map[string]interface{}) (*Profile, error) {
	if len(updates) > 0 {
		if err := s.repo.UpdateProfile(ctx, userID, updates); err != nil {
			return nil, fmt.Errorf("update profile: %w", err)
		}
	}
	return s.repo.GetProfile(ctx, userID)
}

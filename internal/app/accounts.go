package app

import (
	"context"
	"strings"

	"quizdeck-service/internal/domain"
)

// UserRepository abstracts how accounts are stored (Postgres, in-memory).
type UserRepository interface {
	GetByEmail(ctx context.Context, email string) (domain.User, error)
	Create(ctx context.Context, name, email string) (domain.User, error)
	UpdateName(ctx context.Context, email, name string) (domain.User, error)
	DeleteByEmail(ctx context.Context, email string) error
}

// AccountService contains the account use cases.
type AccountService struct {
	users UserRepository
}

func NewAccountService(users UserRepository) *AccountService {
	return &AccountService{users: users}
}

// Lookup fetches the account registered under email.
func (s *AccountService) Lookup(ctx context.Context, email string) (domain.User, error) {
	if email == "" {
		return domain.User{}, domain.ErrInvalidInput
	}
	return s.users.GetByEmail(ctx, email)
}

// Register creates an account on first sign-in. The display name defaults to
// the part of the email before the @ until the user renames themselves.
func (s *AccountService) Register(ctx context.Context, email string) (domain.User, error) {
	if email == "" {
		return domain.User{}, domain.ErrInvalidInput
	}
	return s.users.Create(ctx, defaultName(email), email)
}

// Rename updates the display name of an existing account.
func (s *AccountService) Rename(ctx context.Context, email, name string) (domain.User, error) {
	if email == "" || name == "" {
		return domain.User{}, domain.ErrInvalidInput
	}
	return s.users.UpdateName(ctx, email, name)
}

// Remove deletes the account registered under email.
func (s *AccountService) Remove(ctx context.Context, email string) error {
	if email == "" {
		return domain.ErrInvalidInput
	}
	return s.users.DeleteByEmail(ctx, email)
}

func defaultName(email string) string {
	if at := strings.IndexByte(email, '@'); at > 0 {
		return email[:at]
	}
	return email
}

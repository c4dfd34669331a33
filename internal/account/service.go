package account

import (
	"context"
	"strings"
	"unicode/utf8"

	"github.com/ayush/social-media-api/internal/models"
)

// Store defines the account persistence operations the service needs.
type Store interface {
	InsertAccount(ctx context.Context, username, password string) (*models.Account, error)
	FindAccountByUsername(ctx context.Context, username string) (*models.Account, error)
	FindAccountByCredentials(ctx context.Context, username, password string) (*models.Account, error)
}

// Service enforces the registration and login rules before delegating to the
// store. Every outcome is an account or nil; validation failures and store
// faults are not distinguished by callers.
type Service struct {
	store Store
}

func NewService(store Store) *Service {
	return &Service{store: store}
}

// Register creates a new account. It returns nil when the username is blank,
// the password is shorter than 4 characters, the username is already taken,
// or the insert fails.
//
// The uniqueness check and the insert are separate statements, so two
// concurrent registrations of the same username can both pass the check; the
// UNIQUE constraint on the column then fails the second insert.
func (s *Service) Register(ctx context.Context, username, password string) *models.Account {
	if strings.TrimSpace(username) == "" || utf8.RuneCountInString(password) < 4 {
		return nil
	}
	// A faulted lookup reads as "no such account"; the insert then hits the
	// same fault and the registration is rejected there.
	if existing, _ := s.store.FindAccountByUsername(ctx, username); existing != nil {
		return nil
	}
	created, err := s.store.InsertAccount(ctx, username, password)
	if err != nil {
		return nil
	}
	return created
}

// Login returns the account matching the credentials exactly, or nil. There
// is no rule beyond the store lookup.
func (s *Service) Login(ctx context.Context, username, password string) *models.Account {
	match, _ := s.store.FindAccountByCredentials(ctx, username, password)
	return match
}

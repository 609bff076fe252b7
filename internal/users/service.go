package users

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/billcollect/billcollect/internal/shared"
)

// RepositoryPort defines data access methods for users.
type RepositoryPort interface {
	Get(ctx context.Context, id string) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	Create(ctx context.Context, u User) (*User, error)
	Upsert(ctx context.Context, u User) (*User, error)
}

// Service handles user business logic.
type Service struct {
	repo RepositoryPort
}

// NewService builds Service instance.
func NewService(repo RepositoryPort) *Service {
	return &Service{repo: repo}
}

// Get returns the user with id or shared.ErrNotFound.
func (s *Service) Get(ctx context.Context, id string) (*User, error) {
	u, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}
	return u, nil
}

// GetByEmail looks a user up by normalized email.
func (s *Service) GetByEmail(ctx context.Context, email string) (*User, error) {
	u, err := s.repo.GetByEmail(ctx, normalizeEmail(email))
	if err != nil {
		return nil, fmt.Errorf("get user by email: %w", err)
	}
	return u, nil
}

// Create stores a new user, assigning id and timestamps. A taken email
// yields shared.ErrDuplicate.
func (s *Service) Create(ctx context.Context, u User) (*User, error) {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	if u.Email != nil {
		e := normalizeEmail(*u.Email)
		u.Email = &e
	}
	now := shared.Now()
	u.CreatedAt, u.UpdatedAt = now, now
	created, err := s.repo.Create(ctx, u)
	if err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}
	return created, nil
}

// EnsureDevUser upserts the fixed development account. When another account
// already owns the dev email, the dev account is kept without one.
func (s *Service) EnsureDevUser(ctx context.Context) (*User, error) {
	u := DevUser()
	owner, err := s.repo.GetByEmail(ctx, *u.Email)
	switch {
	case err == nil && owner.ID != u.ID:
		u.Email = nil
	case err != nil && !errors.Is(err, shared.ErrNotFound):
		return nil, fmt.Errorf("look up dev email: %w", err)
	}
	now := shared.Now()
	u.CreatedAt, u.UpdatedAt = now, now
	stored, err := s.repo.Upsert(ctx, u)
	if err != nil {
		return nil, fmt.Errorf("upsert dev user: %w", err)
	}
	return stored, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

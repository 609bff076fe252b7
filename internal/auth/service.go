package auth

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/billcollect/billcollect/internal/shared"
	"github.com/billcollect/billcollect/internal/users"
)

// Service wraps authentication business rules.
type Service struct {
	users UserStore
	cost  int
}

// NewService constructs a new Service.
func NewService(store UserStore) *Service {
	return &Service{users: store, cost: bcrypt.DefaultCost}
}

// Register creates a password account. A taken email yields
// shared.ErrDuplicate.
func (s *Service) Register(ctx context.Context, req RegisterRequest) (*users.User, error) {
	if len(req.Password) < MinPasswordLength {
		return nil, shared.NewValidationError("password", fmt.Sprintf("must be at least %d characters", MinPasswordLength))
	}
	if _, err := s.users.GetByEmail(ctx, req.Email); err == nil {
		return nil, fmt.Errorf("register: %w: email already registered", shared.ErrDuplicate)
	} else if !errors.Is(err, shared.ErrNotFound) {
		return nil, fmt.Errorf("register: %w", err)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), s.cost)
	if err != nil {
		return nil, fmt.Errorf("register: hash password: %w", err)
	}
	hash := string(hashed)
	email, first, last := req.Email, req.FirstName, req.LastName
	return s.users.Create(ctx, users.User{
		Email:        &email,
		FirstName:    &first,
		LastName:     &last,
		PasswordHash: &hash,
	})
}

// Authenticate validates email/password credentials. Unknown emails,
// accounts without a password and wrong passwords all yield
// shared.ErrInvalidCredentials.
func (s *Service) Authenticate(ctx context.Context, email, password string) (*users.User, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("authenticate: %w", err)
	}
	if !user.HasPassword() {
		return nil, shared.ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(*user.PasswordHash), []byte(password)); err != nil {
		return nil, shared.ErrInvalidCredentials
	}
	return user, nil
}

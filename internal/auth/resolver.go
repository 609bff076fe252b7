package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/billcollect/billcollect/internal/platform/httpx"
	"github.com/billcollect/billcollect/internal/shared"
	"github.com/billcollect/billcollect/internal/users"
)

// Resolver turns an inbound request into the tenant id every access-layer
// call is scoped by. It returns shared.ErrUnauthorized when the request
// carries no usable identity.
type Resolver interface {
	Resolve(r *http.Request) (string, error)
}

// UserStore is the subset of the users service needed for authentication.
type UserStore interface {
	Get(ctx context.Context, id string) (*users.User, error)
	GetByEmail(ctx context.Context, email string) (*users.User, error)
	Create(ctx context.Context, u users.User) (*users.User, error)
	EnsureDevUser(ctx context.Context) (*users.User, error)
}

// DevResolver binds sessions without a user to the development account, so
// every request resolves to a tenant without logging in.
type DevResolver struct {
	users UserStore
}

// NewDevResolver constructs a DevResolver.
func NewDevResolver(store UserStore) *DevResolver {
	return &DevResolver{users: store}
}

// Resolve implements Resolver.
func (d *DevResolver) Resolve(r *http.Request) (string, error) {
	sess := shared.SessionFromContext(r.Context())
	if sess == nil {
		return "", shared.ErrUnauthorized
	}
	if sess.User() == "" {
		dev, err := d.users.EnsureDevUser(r.Context())
		if err != nil {
			return "", err
		}
		sess.SetUser(dev.ID)
	}
	return lookupSessionUser(r.Context(), d.users, sess.User())
}

// SessionResolver accepts only sessions bound by a password login or
// registration.
type SessionResolver struct {
	users UserStore
}

// NewSessionResolver constructs a SessionResolver.
func NewSessionResolver(store UserStore) *SessionResolver {
	return &SessionResolver{users: store}
}

// Resolve implements Resolver.
func (s *SessionResolver) Resolve(r *http.Request) (string, error) {
	sess := shared.SessionFromContext(r.Context())
	if sess == nil || sess.User() == "" {
		return "", shared.ErrUnauthorized
	}
	return lookupSessionUser(r.Context(), s.users, sess.User())
}

func lookupSessionUser(ctx context.Context, store UserStore, id string) (string, error) {
	u, err := store.Get(ctx, id)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return "", shared.ErrUnauthorized
		}
		return "", fmt.Errorf("resolve session user: %w", err)
	}
	return u.ID, nil
}

// RequireTenant rejects requests the resolver cannot attach a tenant to and
// stores the tenant id in the request context otherwise.
func RequireTenant(resolver Resolver, logger *slog.Logger) func(http.Handler) http.Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tenantID, err := resolver.Resolve(r)
			if err != nil {
				if httpx.RespondError(w, err) {
					logger.Error("resolve tenant", slog.Any("error", err), slog.String("path", r.URL.Path))
				}
				return
			}
			next.ServeHTTP(w, r.WithContext(shared.ContextWithTenant(r.Context(), tenantID)))
		})
	}
}

package auth_test

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-chi/chi/v5"
	"github.com/redis/go-redis/v9"

	"github.com/billcollect/billcollect/internal/auth"
	"github.com/billcollect/billcollect/internal/shared"
	"github.com/billcollect/billcollect/internal/users"
	_ "github.com/billcollect/billcollect/testing"
)

type memoryUsers struct {
	mu   sync.Mutex
	byID map[string]users.User
}

func newMemoryUsers() *memoryUsers {
	return &memoryUsers{byID: map[string]users.User{}}
}

func (m *memoryUsers) Get(_ context.Context, id string) (*users.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.byID[id]
	if !ok {
		return nil, shared.ErrNotFound
	}
	return &u, nil
}

func (m *memoryUsers) GetByEmail(_ context.Context, email string) (*users.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.byID {
		if u.Email != nil && *u.Email == email {
			return &u, nil
		}
	}
	return nil, shared.ErrNotFound
}

func (m *memoryUsers) Create(_ context.Context, u users.User) (*users.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.byID[u.ID] = u
	return &u, nil
}

func (m *memoryUsers) Upsert(_ context.Context, u users.User) (*users.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if existing, ok := m.byID[u.ID]; ok {
		u.CreatedAt = existing.CreatedAt
	}
	m.byID[u.ID] = u
	return &u, nil
}

type env struct {
	repo     *memoryUsers
	users    *users.Service
	service  *auth.Service
	sessions *shared.SessionManager
	router   http.Handler
}

func newEnv(t *testing.T, dev bool) *env {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	repo := newMemoryUsers()
	userService := users.NewService(repo)
	sessions := shared.NewSessionManager(client, "test_session", "", time.Hour, false)

	var resolver auth.Resolver = auth.NewSessionResolver(userService)
	if dev {
		resolver = auth.NewDevResolver(userService)
	}
	service := auth.NewService(userService)
	handler := auth.NewHandler(slog.Default(), service, userService, sessions, resolver)

	r := chi.NewRouter()
	r.Use(sessions.Middleware(nil))
	r.Route("/api/auth", handler.MountRoutes)
	r.With(auth.RequireTenant(resolver, nil)).Get("/api/whoami", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(shared.TenantFromContext(r.Context())))
	})

	return &env{repo: repo, users: userService, service: service, sessions: sessions, router: r}
}

func (e *env) do(t *testing.T, req *http.Request, cookie *http.Cookie) *httptest.ResponseRecorder {
	t.Helper()
	if cookie != nil {
		req.AddCookie(cookie)
	}
	res := httptest.NewRecorder()
	e.router.ServeHTTP(res, req)
	return res
}

func cookieFrom(res *httptest.ResponseRecorder, name string) *http.Cookie {
	for _, c := range res.Result().Cookies() {
		if c.Name == name {
			return c
		}
	}
	return nil
}

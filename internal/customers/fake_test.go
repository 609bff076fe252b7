package customers_test

import (
	"context"
	"errors"
	"net/http"
	"sort"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/billcollect/billcollect/internal/auth"
	"github.com/billcollect/billcollect/internal/customers"
	"github.com/billcollect/billcollect/internal/shared"
	_ "github.com/billcollect/billcollect/testing"
)

type memoryRepo struct {
	mu   sync.Mutex
	rows map[string]customers.Customer
	// failWith makes every call return the error.
	failWith error
}

func newMemoryRepo() *memoryRepo {
	return &memoryRepo{rows: map[string]customers.Customer{}}
}

func (m *memoryRepo) WithTx(ctx context.Context, fn func(context.Context, customers.Repository) error) error {
	return fn(ctx, m)
}

func (m *memoryRepo) List(_ context.Context, tenantID string) ([]customers.Customer, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failWith != nil {
		return nil, m.failWith
	}
	out := []customers.Customer{}
	for _, c := range m.rows {
		if c.UserID == tenantID {
			out = append(out, c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (m *memoryRepo) Get(_ context.Context, id, tenantID string) (*customers.Customer, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failWith != nil {
		return nil, m.failWith
	}
	c, ok := m.rows[id]
	if !ok || c.UserID != tenantID {
		return nil, shared.ErrNotFound
	}
	return &c, nil
}

func (m *memoryRepo) Create(_ context.Context, c customers.Customer) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failWith != nil {
		return m.failWith
	}
	m.rows[c.ID] = c
	return nil
}

func (m *memoryRepo) Update(_ context.Context, id, tenantID string, updates map[string]any) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.rows[id]
	if !ok || c.UserID != tenantID {
		return shared.ErrNotFound
	}
	for col, v := range updates {
		switch col {
		case "name":
			c.Name = v.(string)
		case "package":
			c.Package = v.(shared.Amount)
		case "phone":
			c.Phone = v.(*string)
		case "address":
			c.Address = v.(*string)
		case "status":
			c.Status = v.(customers.Status)
		case "total_bills":
			c.TotalBills = v.(shared.Amount)
		case "outstanding":
			c.Outstanding = v.(shared.Amount)
		case "updated_at":
			c.UpdatedAt = v.(time.Time)
		default:
			return errors.New("unexpected column " + col)
		}
	}
	m.rows[id] = c
	return nil
}

func (m *memoryRepo) Delete(_ context.Context, id, tenantID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if c, ok := m.rows[id]; ok && c.UserID == tenantID {
		delete(m.rows, id)
	}
	return nil
}

// headerResolver takes the tenant from X-Tenant.
type headerResolver struct{}

func (headerResolver) Resolve(r *http.Request) (string, error) {
	if id := r.Header.Get("X-Tenant"); id != "" {
		return id, nil
	}
	return "", shared.ErrUnauthorized
}

func newRouter(svc *customers.Service) http.Handler {
	r := chi.NewRouter()
	r.Group(func(r chi.Router) {
		r.Use(auth.RequireTenant(headerResolver{}, nil))
		r.Route("/api/customers", customers.NewHandler(nil, svc).MountRoutes)
	})
	return r
}

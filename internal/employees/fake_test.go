package employees_test

import (
	"context"
	"errors"
	"net/http"
	"sort"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/billcollect/billcollect/internal/auth"
	"github.com/billcollect/billcollect/internal/employees"
	"github.com/billcollect/billcollect/internal/shared"
	_ "github.com/billcollect/billcollect/testing"
)

type memoryRepo struct {
	mu   sync.Mutex
	rows map[string]employees.Employee
}

func newMemoryRepo() *memoryRepo {
	return &memoryRepo{rows: map[string]employees.Employee{}}
}

func (m *memoryRepo) WithTx(ctx context.Context, fn func(context.Context, employees.Repository) error) error {
	return fn(ctx, m)
}

func (m *memoryRepo) List(_ context.Context, tenantID string) ([]employees.Employee, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []employees.Employee{}
	for _, e := range m.rows {
		if e.UserID == tenantID {
			out = append(out, e)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (m *memoryRepo) Get(_ context.Context, id, tenantID string) (*employees.Employee, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.rows[id]
	if !ok || e.UserID != tenantID {
		return nil, shared.ErrNotFound
	}
	return &e, nil
}

func (m *memoryRepo) Create(_ context.Context, e employees.Employee) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, existing := range m.rows {
		if existing.EmployeeNumber == e.EmployeeNumber {
			return shared.ErrDuplicate
		}
	}
	m.rows[e.ID] = e
	return nil
}

func (m *memoryRepo) Update(_ context.Context, id, tenantID string, updates map[string]any) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.rows[id]
	if !ok || e.UserID != tenantID {
		return shared.ErrNotFound
	}
	for col, v := range updates {
		switch col {
		case "employee_number":
			e.EmployeeNumber = v.(string)
		case "name":
			e.Name = v.(string)
		case "position":
			e.Position = v.(string)
		case "email":
			e.Email = v.(*string)
		case "phone":
			e.Phone = v.(*string)
		case "salary":
			e.Salary = v.(*shared.Amount)
		case "join_date":
			e.JoinDate = v.(time.Time)
		case "status":
			e.Status = v.(employees.Status)
		case "updated_at":
			e.UpdatedAt = v.(time.Time)
		default:
			return errors.New("unexpected column " + col)
		}
	}
	m.rows[id] = e
	return nil
}

func (m *memoryRepo) Delete(_ context.Context, id, tenantID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if e, ok := m.rows[id]; ok && e.UserID == tenantID {
		delete(m.rows, id)
	}
	return nil
}

type headerResolver struct{}

func (headerResolver) Resolve(r *http.Request) (string, error) {
	if id := r.Header.Get("X-Tenant"); id != "" {
		return id, nil
	}
	return "", shared.ErrUnauthorized
}

func newRouter(svc *employees.Service) http.Handler {
	r := chi.NewRouter()
	r.Group(func(r chi.Router) {
		r.Use(auth.RequireTenant(headerResolver{}, nil))
		r.Route("/api/employees", employees.NewHandler(nil, svc).MountRoutes)
	})
	return r
}

package expenses_test

import (
	"context"
	"errors"
	"net/http"
	"sort"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/billcollect/billcollect/internal/auth"
	"github.com/billcollect/billcollect/internal/expenses"
	"github.com/billcollect/billcollect/internal/shared"
	_ "github.com/billcollect/billcollect/testing"
)

type employeeRef struct {
	tenantID string
	name     string
}

type memoryRepo struct {
	mu        sync.Mutex
	rows      map[string]expenses.Expense
	employees map[string]employeeRef
}

func newMemoryRepo() *memoryRepo {
	return &memoryRepo{rows: map[string]expenses.Expense{}, employees: map[string]employeeRef{}}
}

func (m *memoryRepo) WithTx(ctx context.Context, fn func(context.Context, expenses.Repository) error) error {
	return fn(ctx, m)
}

func (m *memoryRepo) resolve(e expenses.Expense) expenses.Expense {
	e.EmployeeName = expenses.AdminEmployee
	if e.EmployeeID != nil {
		if emp, ok := m.employees[*e.EmployeeID]; ok && emp.tenantID == e.UserID {
			e.EmployeeName = emp.name
		}
	}
	return e
}

func (m *memoryRepo) List(_ context.Context, tenantID string) ([]expenses.Expense, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []expenses.Expense{}
	for _, e := range m.rows {
		if e.UserID == tenantID {
			out = append(out, m.resolve(e))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (m *memoryRepo) Get(_ context.Context, id, tenantID string) (*expenses.Expense, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.rows[id]
	if !ok || e.UserID != tenantID {
		return nil, shared.ErrNotFound
	}
	e = m.resolve(e)
	return &e, nil
}

func (m *memoryRepo) Create(_ context.Context, e expenses.Expense) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, existing := range m.rows {
		if existing.ExpenseNumber == e.ExpenseNumber {
			return shared.ErrDuplicate
		}
	}
	m.rows[e.ID] = e
	return nil
}

func (m *memoryRepo) Update(_ context.Context, id, tenantID string, updates map[string]any) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(updates) == 0 {
		return nil
	}
	e, ok := m.rows[id]
	if !ok || e.UserID != tenantID {
		return shared.ErrNotFound
	}
	for col, v := range updates {
		switch col {
		case "expense_number":
			e.ExpenseNumber = v.(string)
		case "description":
			e.Description = v.(string)
		case "category":
			e.Category = v.(string)
		case "amount":
			e.Amount = v.(shared.Amount)
		case "expense_date":
			e.ExpenseDate = v.(time.Time)
		case "employee_id":
			e.EmployeeID = v.(*string)
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

func newRouter(svc *expenses.Service) http.Handler {
	r := chi.NewRouter()
	r.Group(func(r chi.Router) {
		r.Use(auth.RequireTenant(headerResolver{}, nil))
		r.Route("/api/expenses", expenses.NewHandler(nil, svc).MountRoutes)
	})
	return r
}

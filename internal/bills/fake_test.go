package bills_test

import (
	"context"
	"errors"
	"net/http"
	"sort"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/billcollect/billcollect/internal/auth"
	"github.com/billcollect/billcollect/internal/bills"
	"github.com/billcollect/billcollect/internal/shared"
	_ "github.com/billcollect/billcollect/testing"
)

type customerRef struct {
	tenantID string
	name     string
}

type memoryRepo struct {
	mu        sync.Mutex
	rows      map[string]bills.Bill
	customers map[string]customerRef
}

func newMemoryRepo() *memoryRepo {
	return &memoryRepo{rows: map[string]bills.Bill{}, customers: map[string]customerRef{}}
}

func (m *memoryRepo) WithTx(ctx context.Context, fn func(context.Context, bills.Repository) error) error {
	return fn(ctx, m)
}

func (m *memoryRepo) resolve(b bills.Bill) bills.Bill {
	b.CustomerName = bills.UnknownCustomer
	if b.CustomerID != nil {
		if c, ok := m.customers[*b.CustomerID]; ok && c.tenantID == b.UserID {
			b.CustomerName = c.name
		}
	}
	return b
}

func (m *memoryRepo) List(_ context.Context, tenantID string) ([]bills.Bill, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []bills.Bill{}
	for _, b := range m.rows {
		if b.UserID == tenantID {
			out = append(out, m.resolve(b))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (m *memoryRepo) Get(_ context.Context, id, tenantID string) (*bills.Bill, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	b, ok := m.rows[id]
	if !ok || b.UserID != tenantID {
		return nil, shared.ErrNotFound
	}
	b = m.resolve(b)
	return &b, nil
}

func (m *memoryRepo) numberTaken(number, exceptID string) bool {
	for id, b := range m.rows {
		if b.BillNumber == number && id != exceptID {
			return true
		}
	}
	return false
}

func (m *memoryRepo) Create(_ context.Context, b bills.Bill) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.numberTaken(b.BillNumber, "") {
		return shared.ErrDuplicate
	}
	m.rows[b.ID] = b
	return nil
}

func (m *memoryRepo) Update(_ context.Context, id, tenantID string, updates map[string]any) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	b, ok := m.rows[id]
	if !ok || b.UserID != tenantID {
		return shared.ErrNotFound
	}
	for col, v := range updates {
		switch col {
		case "bill_number":
			if m.numberTaken(v.(string), id) {
				return shared.ErrDuplicate
			}
			b.BillNumber = v.(string)
		case "customer_id":
			b.CustomerID = v.(*string)
		case "amount":
			b.Amount = v.(shared.Amount)
		case "status":
			b.Status = v.(bills.Status)
		case "bill_date":
			b.BillDate = v.(time.Time)
		case "due_date":
			b.DueDate = v.(time.Time)
		case "paid_date":
			b.PaidDate = v.(*time.Time)
		case "updated_at":
			b.UpdatedAt = v.(time.Time)
		default:
			return errors.New("unexpected column " + col)
		}
	}
	m.rows[id] = b
	return nil
}

func (m *memoryRepo) Delete(_ context.Context, id, tenantID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if b, ok := m.rows[id]; ok && b.UserID == tenantID {
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

func newRouter(svc *bills.Service) http.Handler {
	r := chi.NewRouter()
	r.Group(func(r chi.Router) {
		r.Use(auth.RequireTenant(headerResolver{}, nil))
		r.Route("/api/bills", bills.NewHandler(nil, svc).MountRoutes)
	})
	return r
}

package dashboard_test

import (
	"context"
	"net/http"
	"sort"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/billcollect/billcollect/internal/auth"
	"github.com/billcollect/billcollect/internal/dashboard"
	"github.com/billcollect/billcollect/internal/shared"
	_ "github.com/billcollect/billcollect/testing"
)

type bill struct {
	tenant     string
	number     string
	customerID string
	status     string
	amount     shared.Amount
	paidDate   *time.Time
	createdAt  time.Time
}

type customer struct {
	tenant string
	id     string
	name   string
	status string
}

type expense struct {
	tenant string
	amount shared.Amount
}

// memoryRepo computes the aggregates over plain slices.
type memoryRepo struct {
	mu        sync.Mutex
	bills     []bill
	customers []customer
	expenses  []expense
	failWith  error
}

func (m *memoryRepo) SumPaidBills(_ context.Context, tenantID string) (shared.Amount, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failWith != nil {
		return shared.Amount{}, m.failWith
	}
	total := shared.ZeroAmount
	for _, b := range m.bills {
		if b.tenant == tenantID && b.status == "paid" {
			total = total.Add(b.amount)
		}
	}
	return total, nil
}

func (m *memoryRepo) SumExpenses(_ context.Context, tenantID string) (shared.Amount, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	total := shared.ZeroAmount
	for _, e := range m.expenses {
		if e.tenant == tenantID {
			total = total.Add(e.amount)
		}
	}
	return total, nil
}

func (m *memoryRepo) CountCustomers(_ context.Context, tenantID string) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var n int64
	for _, c := range m.customers {
		if c.tenant == tenantID {
			n++
		}
	}
	return n, nil
}

func (m *memoryRepo) CountPendingBills(_ context.Context, tenantID string) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var n int64
	for _, b := range m.bills {
		if b.tenant == tenantID && (b.status == "due" || b.status == "overdue") {
			n++
		}
	}
	return n, nil
}

func (m *memoryRepo) CustomersByStatus(_ context.Context, tenantID string) (map[string]int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	counts := map[string]int64{}
	for _, c := range m.customers {
		if c.tenant == tenantID {
			counts[c.status]++
		}
	}
	return counts, nil
}

func (m *memoryRepo) LastPaidBill(_ context.Context, tenantID string) (*dashboard.LastCollectedBill, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var paid []bill
	for _, b := range m.bills {
		if b.tenant == tenantID && b.status == "paid" {
			paid = append(paid, b)
		}
	}
	if len(paid) == 0 {
		return nil, nil
	}
	sort.Slice(paid, func(i, j int) bool {
		pi, pj := paid[i].paidDate, paid[j].paidDate
		switch {
		case pi != nil && pj != nil && !pi.Equal(*pj):
			return pi.After(*pj)
		case pi != nil && pj == nil:
			return true
		case pi == nil && pj != nil:
			return false
		}
		return paid[i].createdAt.After(paid[j].createdAt)
	})
	top := paid[0]
	name := "Unknown"
	for _, c := range m.customers {
		if c.tenant == tenantID && c.id == top.customerID {
			name = c.name
		}
	}
	return &dashboard.LastCollectedBill{
		CustomerName: name,
		Amount:       top.amount,
		BillNumber:   top.number,
		PaidDate:     top.paidDate,
	}, nil
}

type headerResolver struct{}

func (headerResolver) Resolve(r *http.Request) (string, error) {
	if id := r.Header.Get("X-Tenant"); id != "" {
		return id, nil
	}
	return "", shared.ErrUnauthorized
}

func newRouter(svc *dashboard.Service) http.Handler {
	r := chi.NewRouter()
	r.Group(func(r chi.Router) {
		r.Use(auth.RequireTenant(headerResolver{}, nil))
		r.Route("/api/dashboard", dashboard.NewHandler(nil, svc).MountRoutes)
	})
	return r
}

func at(s string) *time.Time {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		panic(err)
	}
	return &t
}

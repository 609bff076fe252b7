package customers

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/billcollect/billcollect/internal/shared"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// List returns the tenant's customers, newest first.
func (s *Service) List(ctx context.Context, tenantID string) ([]Customer, error) {
	if tenantID == "" {
		return nil, shared.ErrUnauthorized
	}
	customers, err := s.repo.List(ctx, tenantID)
	if err != nil {
		return nil, fmt.Errorf("list customers: %w", err)
	}
	return customers, nil
}

func (s *Service) Get(ctx context.Context, id, tenantID string) (*Customer, error) {
	if tenantID == "" {
		return nil, shared.ErrUnauthorized
	}
	customer, err := s.repo.Get(ctx, id, tenantID)
	if err != nil {
		return nil, fmt.Errorf("get customer: %w", err)
	}
	return customer, nil
}

// Create stores a new customer. Status defaults to due and the amounts to
// zero.
func (s *Service) Create(ctx context.Context, tenantID string, req CreateCustomerRequest) (*Customer, error) {
	if tenantID == "" {
		return nil, shared.ErrUnauthorized
	}
	now := shared.Now()
	customer := Customer{
		ID:          uuid.NewString(),
		Name:        req.Name,
		Package:     amountOrZero(req.Package),
		Phone:       req.Phone,
		Address:     req.Address,
		Status:      StatusDue,
		TotalBills:  amountOrZero(req.TotalBills),
		Outstanding: amountOrZero(req.Outstanding),
		UserID:      tenantID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if req.Status != "" {
		customer.Status = Status(req.Status)
	}

	var created *Customer
	err := s.repo.WithTx(ctx, func(ctx context.Context, repo Repository) error {
		if err := repo.Create(ctx, customer); err != nil {
			return err
		}
		var err error
		created, err = repo.Get(ctx, customer.ID, tenantID)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("create customer: %w", err)
	}
	return created, nil
}

// Update applies the non-nil fields of req and refreshes UpdatedAt.
func (s *Service) Update(ctx context.Context, id, tenantID string, req UpdateCustomerRequest) (*Customer, error) {
	if tenantID == "" {
		return nil, shared.ErrUnauthorized
	}
	var updated *Customer
	err := s.repo.WithTx(ctx, func(ctx context.Context, repo Repository) error {
		existing, err := repo.Get(ctx, id, tenantID)
		if err != nil {
			return err
		}
		updates := req.changes()
		updates["updated_at"] = shared.NextTimestamp(existing.UpdatedAt)
		if err := repo.Update(ctx, id, tenantID, updates); err != nil {
			return err
		}
		updated, err = repo.Get(ctx, id, tenantID)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("update customer: %w", err)
	}
	return updated, nil
}

// Delete removes the customer. Deleting a missing id is not an error and
// bills that reference the customer are kept.
func (s *Service) Delete(ctx context.Context, id, tenantID string) error {
	if tenantID == "" {
		return shared.ErrUnauthorized
	}
	if err := s.repo.Delete(ctx, id, tenantID); err != nil {
		return fmt.Errorf("delete customer: %w", err)
	}
	return nil
}

func amountOrZero(a *shared.Amount) shared.Amount {
	if a == nil {
		return shared.ZeroAmount
	}
	return *a
}

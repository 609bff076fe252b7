package bills

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/billcollect/billcollect/internal/shared"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// List returns the tenant's bills, newest first, each with its customer
// name.
func (s *Service) List(ctx context.Context, tenantID string) ([]Bill, error) {
	if tenantID == "" {
		return nil, shared.ErrUnauthorized
	}
	bills, err := s.repo.List(ctx, tenantID)
	if err != nil {
		return nil, fmt.Errorf("list bills: %w", err)
	}
	return bills, nil
}

func (s *Service) Get(ctx context.Context, id, tenantID string) (*Bill, error) {
	if tenantID == "" {
		return nil, shared.ErrUnauthorized
	}
	bill, err := s.repo.Get(ctx, id, tenantID)
	if err != nil {
		return nil, fmt.Errorf("get bill: %w", err)
	}
	return bill, nil
}

// Create stores a new bill with status due unless given. A bill number in
// use by any tenant yields shared.ErrDuplicate.
func (s *Service) Create(ctx context.Context, tenantID string, req CreateBillRequest) (*Bill, error) {
	if tenantID == "" {
		return nil, shared.ErrUnauthorized
	}
	if req.Amount == nil || req.BillDate == nil || req.DueDate == nil {
		return nil, fmt.Errorf("create bill: %w", shared.ErrValidation)
	}
	now := shared.Now()
	bill := Bill{
		ID:         uuid.NewString(),
		BillNumber: strings.TrimSpace(req.BillNumber),
		CustomerID: optional(req.CustomerID),
		Amount:     *req.Amount,
		Status:     StatusDue,
		BillDate:   req.BillDate.Time,
		DueDate:    req.DueDate.Time,
		PaidDate:   req.PaidDate.Ptr(),
		UserID:     tenantID,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if req.Status != "" {
		bill.Status = Status(req.Status)
	}

	var created *Bill
	err := s.repo.WithTx(ctx, func(ctx context.Context, repo Repository) error {
		if err := repo.Create(ctx, bill); err != nil {
			return err
		}
		var err error
		created, err = repo.Get(ctx, bill.ID, tenantID)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("create bill: %w", err)
	}
	return created, nil
}

// Update applies the non-nil fields of req and refreshes UpdatedAt. Marking a
// bill paid does not stamp PaidDate.
func (s *Service) Update(ctx context.Context, id, tenantID string, req UpdateBillRequest) (*Bill, error) {
	if tenantID == "" {
		return nil, shared.ErrUnauthorized
	}
	var updated *Bill
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
		return nil, fmt.Errorf("update bill: %w", err)
	}
	return updated, nil
}

// Delete removes the bill; a missing id is not an error.
func (s *Service) Delete(ctx context.Context, id, tenantID string) error {
	if tenantID == "" {
		return shared.ErrUnauthorized
	}
	if err := s.repo.Delete(ctx, id, tenantID); err != nil {
		return fmt.Errorf("delete bill: %w", err)
	}
	return nil
}

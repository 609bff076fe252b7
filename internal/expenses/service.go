package expenses

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

func (s *Service) List(ctx context.Context, tenantID string) ([]Expense, error) {
	if tenantID == "" {
		return nil, shared.ErrUnauthorized
	}
	expenses, err := s.repo.List(ctx, tenantID)
	if err != nil {
		return nil, fmt.Errorf("list expenses: %w", err)
	}
	return expenses, nil
}

func (s *Service) Get(ctx context.Context, id, tenantID string) (*Expense, error) {
	if tenantID == "" {
		return nil, shared.ErrUnauthorized
	}
	expense, err := s.repo.Get(ctx, id, tenantID)
	if err != nil {
		return nil, fmt.Errorf("get expense: %w", err)
	}
	return expense, nil
}

func (s *Service) Create(ctx context.Context, tenantID string, req CreateExpenseRequest) (*Expense, error) {
	if tenantID == "" {
		return nil, shared.ErrUnauthorized
	}
	if req.Amount == nil || req.ExpenseDate == nil {
		return nil, fmt.Errorf("create expense: %w", shared.ErrValidation)
	}
	expense := Expense{
		ID:            uuid.NewString(),
		ExpenseNumber: strings.TrimSpace(req.ExpenseNumber),
		Description:   req.Description,
		Category:      req.Category,
		Amount:        *req.Amount,
		ExpenseDate:   req.ExpenseDate.Time,
		EmployeeID:    optional(req.EmployeeID),
		UserID:        tenantID,
		CreatedAt:     shared.Now(),
	}

	var created *Expense
	err := s.repo.WithTx(ctx, func(ctx context.Context, repo Repository) error {
		if err := repo.Create(ctx, expense); err != nil {
			return err
		}
		var err error
		created, err = repo.Get(ctx, expense.ID, tenantID)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("create expense: %w", err)
	}
	return created, nil
}

// Update applies the non-nil fields of req. Expenses have no update
// timestamp, so an empty request returns the stored row unchanged.
func (s *Service) Update(ctx context.Context, id, tenantID string, req UpdateExpenseRequest) (*Expense, error) {
	if tenantID == "" {
		return nil, shared.ErrUnauthorized
	}
	var updated *Expense
	err := s.repo.WithTx(ctx, func(ctx context.Context, repo Repository) error {
		if err := repo.Update(ctx, id, tenantID, req.changes()); err != nil {
			return err
		}
		var err error
		updated, err = repo.Get(ctx, id, tenantID)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("update expense: %w", err)
	}
	return updated, nil
}

func (s *Service) Delete(ctx context.Context, id, tenantID string) error {
	if tenantID == "" {
		return shared.ErrUnauthorized
	}
	if err := s.repo.Delete(ctx, id, tenantID); err != nil {
		return fmt.Errorf("delete expense: %w", err)
	}
	return nil
}

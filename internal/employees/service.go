package employees

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

func (s *Service) List(ctx context.Context, tenantID string) ([]Employee, error) {
	if tenantID == "" {
		return nil, shared.ErrUnauthorized
	}
	employees, err := s.repo.List(ctx, tenantID)
	if err != nil {
		return nil, fmt.Errorf("list employees: %w", err)
	}
	return employees, nil
}

func (s *Service) Get(ctx context.Context, id, tenantID string) (*Employee, error) {
	if tenantID == "" {
		return nil, shared.ErrUnauthorized
	}
	employee, err := s.repo.Get(ctx, id, tenantID)
	if err != nil {
		return nil, fmt.Errorf("get employee: %w", err)
	}
	return employee, nil
}

// Create stores a new employee, active unless told otherwise.
func (s *Service) Create(ctx context.Context, tenantID string, req CreateEmployeeRequest) (*Employee, error) {
	if tenantID == "" {
		return nil, shared.ErrUnauthorized
	}
	if req.JoinDate == nil {
		return nil, fmt.Errorf("create employee: %w", shared.ErrValidation)
	}
	now := shared.Now()
	employee := Employee{
		ID:             uuid.NewString(),
		EmployeeNumber: strings.TrimSpace(req.EmployeeNumber),
		Name:           req.Name,
		Position:       req.Position,
		Email:          req.Email,
		Phone:          req.Phone,
		Salary:         req.Salary,
		JoinDate:       req.JoinDate.Time,
		Status:         StatusActive,
		UserID:         tenantID,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if req.Status != "" {
		employee.Status = Status(req.Status)
	}

	var created *Employee
	err := s.repo.WithTx(ctx, func(ctx context.Context, repo Repository) error {
		if err := repo.Create(ctx, employee); err != nil {
			return err
		}
		var err error
		created, err = repo.Get(ctx, employee.ID, tenantID)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("create employee: %w", err)
	}
	return created, nil
}

func (s *Service) Update(ctx context.Context, id, tenantID string, req UpdateEmployeeRequest) (*Employee, error) {
	if tenantID == "" {
		return nil, shared.ErrUnauthorized
	}
	var updated *Employee
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
		return nil, fmt.Errorf("update employee: %w", err)
	}
	return updated, nil
}

// Delete removes the employee. Expenses attributed to it fall back to Admin.
func (s *Service) Delete(ctx context.Context, id, tenantID string) error {
	if tenantID == "" {
		return shared.ErrUnauthorized
	}
	if err := s.repo.Delete(ctx, id, tenantID); err != nil {
		return fmt.Errorf("delete employee: %w", err)
	}
	return nil
}

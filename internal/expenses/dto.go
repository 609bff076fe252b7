package expenses

import (
	"strings"

	"github.com/billcollect/billcollect/internal/shared"
)

type CreateExpenseRequest struct {
	ExpenseNumber string            `json:"expenseNumber" validate:"required,notblank"`
	Description   string            `json:"description" validate:"required,notblank"`
	Category      string            `json:"category" validate:"required,notblank"`
	Amount        *shared.Amount    `json:"amount" validate:"required,money"`
	ExpenseDate   *shared.Timestamp `json:"expenseDate" validate:"required"`
	EmployeeID    *string           `json:"employeeId"`
}

type UpdateExpenseRequest struct {
	ExpenseNumber *string           `json:"expenseNumber" validate:"omitnil,notblank"`
	Description   *string           `json:"description" validate:"omitnil,notblank"`
	Category      *string           `json:"category" validate:"omitnil,notblank"`
	Amount        *shared.Amount    `json:"amount" validate:"omitnil,money"`
	ExpenseDate   *shared.Timestamp `json:"expenseDate"`
	EmployeeID    *string           `json:"employeeId"`
}

func (req UpdateExpenseRequest) changes() map[string]any {
	updates := make(map[string]any)
	if req.ExpenseNumber != nil {
		updates["expense_number"] = strings.TrimSpace(*req.ExpenseNumber)
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if req.Category != nil {
		updates["category"] = *req.Category
	}
	if req.Amount != nil {
		updates["amount"] = *req.Amount
	}
	if req.ExpenseDate != nil {
		updates["expense_date"] = req.ExpenseDate.Time
	}
	if req.EmployeeID != nil {
		updates["employee_id"] = optional(req.EmployeeID)
	}
	return updates
}

func optional(s *string) *string {
	if s == nil || strings.TrimSpace(*s) == "" {
		return nil
	}
	return s
}

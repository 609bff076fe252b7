package employees

import (
	"strings"

	"github.com/billcollect/billcollect/internal/shared"
)

type CreateEmployeeRequest struct {
	EmployeeNumber string            `json:"employeeNumber" validate:"required,notblank"`
	Name           string            `json:"name" validate:"required,notblank"`
	Position       string            `json:"position" validate:"required,notblank"`
	Email          *string           `json:"email" validate:"omitempty,email"`
	Phone          *string           `json:"phone"`
	Salary         *shared.Amount    `json:"salary" validate:"omitnil,money"`
	JoinDate       *shared.Timestamp `json:"joinDate" validate:"required"`
	Status         string            `json:"status" validate:"omitempty,oneof=active inactive"`
}

type UpdateEmployeeRequest struct {
	EmployeeNumber *string                        `json:"employeeNumber" validate:"omitnil,notblank"`
	Name           *string                        `json:"name" validate:"omitnil,notblank"`
	Position       *string                        `json:"position" validate:"omitnil,notblank"`
	Email          shared.Nullable[string]        `json:"email" validate:"omitempty,email"`
	Phone          shared.Nullable[string]        `json:"phone"`
	Salary         shared.Nullable[shared.Amount] `json:"salary" validate:"omitempty,money"`
	JoinDate       *shared.Timestamp              `json:"joinDate"`
	Status         *string                        `json:"status" validate:"omitnil,oneof=active inactive"`
}

func (req UpdateEmployeeRequest) changes() map[string]any {
	updates := make(map[string]any)
	if req.EmployeeNumber != nil {
		updates["employee_number"] = strings.TrimSpace(*req.EmployeeNumber)
	}
	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.Position != nil {
		updates["position"] = *req.Position
	}
	if req.Email.Set {
		updates["email"] = req.Email.Value
	}
	if req.Phone.Set {
		updates["phone"] = req.Phone.Value
	}
	if req.Salary.Set {
		updates["salary"] = req.Salary.Value
	}
	if req.JoinDate != nil {
		updates["join_date"] = req.JoinDate.Time
	}
	if req.Status != nil {
		updates["status"] = Status(*req.Status)
	}
	return updates
}

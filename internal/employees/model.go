package employees

import (
	"time"

	"github.com/billcollect/billcollect/internal/shared"
)

type Status string

const (
	StatusActive   Status = "active"
	StatusInactive Status = "inactive"
)

// Employee is a member of the tenant's staff. EmployeeNumber is unique
// across all tenants.
type Employee struct {
	ID             string         `json:"id" db:"id"`
	EmployeeNumber string         `json:"employeeNumber" db:"employee_number"`
	Name           string         `json:"name" db:"name"`
	Position       string         `json:"position" db:"position"`
	Email          *string        `json:"email" db:"email"`
	Phone          *string        `json:"phone" db:"phone"`
	Salary         *shared.Amount `json:"salary" db:"salary"`
	JoinDate       time.Time      `json:"joinDate" db:"join_date"`
	Status         Status         `json:"status" db:"status"`
	UserID         string         `json:"userId" db:"user_id"`
	CreatedAt      time.Time      `json:"createdAt" db:"created_at"`
	UpdatedAt      time.Time      `json:"updatedAt" db:"updated_at"`
}

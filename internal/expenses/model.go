package expenses

import (
	"time"

	"github.com/billcollect/billcollect/internal/shared"
)

// AdminEmployee is reported for expenses not attributed to an employee of
// the tenant.
const AdminEmployee = "Admin"

// Expense is money spent by the tenant, optionally attributed to an
// employee. Expenses carry no update timestamp.
type Expense struct {
	ID            string        `json:"id" db:"id"`
	ExpenseNumber string        `json:"expenseNumber" db:"expense_number"`
	Description   string        `json:"description" db:"description"`
	Category      string        `json:"category" db:"category"`
	Amount        shared.Amount `json:"amount" db:"amount"`
	ExpenseDate   time.Time     `json:"expenseDate" db:"expense_date"`
	EmployeeID    *string       `json:"employeeId" db:"employee_id"`
	UserID        string        `json:"userId" db:"user_id"`
	CreatedAt     time.Time     `json:"createdAt" db:"created_at"`
	EmployeeName  string        `json:"employeeName" db:"employee_name"`
}

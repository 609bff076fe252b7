package bills

import (
	"time"

	"github.com/billcollect/billcollect/internal/shared"
)

type Status string

const (
	StatusPaid    Status = "paid"
	StatusDue     Status = "due"
	StatusOverdue Status = "overdue"
)

// UnknownCustomer is reported when a bill's customer cannot be resolved
// within the tenant.
const UnknownCustomer = "Unknown"

// Bill is an amount owed by a customer. BillNumber is unique across all
// tenants. PaidDate is set by the caller when the bill is paid.
type Bill struct {
	ID           string        `json:"id" db:"id"`
	BillNumber   string        `json:"billNumber" db:"bill_number"`
	CustomerID   *string       `json:"customerId" db:"customer_id"`
	Amount       shared.Amount `json:"amount" db:"amount"`
	Status       Status        `json:"status" db:"status"`
	BillDate     time.Time     `json:"billDate" db:"bill_date"`
	DueDate      time.Time     `json:"dueDate" db:"due_date"`
	PaidDate     *time.Time    `json:"paidDate" db:"paid_date"`
	UserID       string        `json:"userId" db:"user_id"`
	CreatedAt    time.Time     `json:"createdAt" db:"created_at"`
	UpdatedAt    time.Time     `json:"updatedAt" db:"updated_at"`
	CustomerName string        `json:"customerName" db:"customer_name"`
}

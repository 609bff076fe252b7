package customers

import (
	"time"

	"github.com/billcollect/billcollect/internal/shared"
)

// Status is the billing state of a customer.
type Status string

const (
	StatusPaid           Status = "paid"
	StatusDue            Status = "due"
	StatusOverdue        Status = "overdue"
	StatusTemporaryClose Status = "temporary close"
)

// Customer is a billed account owned by one tenant. TotalBills and
// Outstanding are stored as entered and are not recomputed from bills.
type Customer struct {
	ID          string        `json:"id" db:"id"`
	Name        string        `json:"name" db:"name"`
	Package     shared.Amount `json:"package" db:"package"`
	Phone       *string       `json:"phone" db:"phone"`
	Address     *string       `json:"address" db:"address"`
	Status      Status        `json:"status" db:"status"`
	TotalBills  shared.Amount `json:"totalBills" db:"total_bills"`
	Outstanding shared.Amount `json:"outstanding" db:"outstanding"`
	UserID      string        `json:"userId" db:"user_id"`
	CreatedAt   time.Time     `json:"createdAt" db:"created_at"`
	UpdatedAt   time.Time     `json:"updatedAt" db:"updated_at"`
}

package dashboard

import (
	"time"

	"github.com/billcollect/billcollect/internal/shared"
)

// Stats is the tenant summary shown on the dashboard. The figures come from
// independent queries and may reflect slightly different moments.
type Stats struct {
	TotalCollections     shared.Amount      `json:"totalCollections"`
	TotalExpenses        shared.Amount      `json:"totalExpenses"`
	ActiveCustomers      int64              `json:"activeCustomers"`
	PendingBills         int64              `json:"pendingBills"`
	CustomerStatusCounts StatusCounts       `json:"customerStatusCounts"`
	LastCollectedBill    *LastCollectedBill `json:"lastCollectedBill"`
}

// StatusCounts has a fixed key set. Customers in any other status, such as
// "temporary close", are counted in ActiveCustomers only.
type StatusCounts struct {
	Paid    int64 `json:"paid"`
	Due     int64 `json:"due"`
	Overdue int64 `json:"overdue"`
}

// LastCollectedBill describes the most recently paid bill.
type LastCollectedBill struct {
	CustomerName string        `json:"customerName"`
	Amount       shared.Amount `json:"amount"`
	BillNumber   string        `json:"billNumber"`
	PaidDate     *time.Time    `json:"paidDate"`
}

func countsFrom(byStatus map[string]int64) StatusCounts {
	return StatusCounts{
		Paid:    byStatus["paid"],
		Due:     byStatus["due"],
		Overdue: byStatus["overdue"],
	}
}

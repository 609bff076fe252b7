package bills

import (
	"strings"

	"github.com/billcollect/billcollect/internal/shared"
)

type CreateBillRequest struct {
	BillNumber string            `json:"billNumber" validate:"required,notblank"`
	CustomerID *string           `json:"customerId"`
	Amount     *shared.Amount    `json:"amount" validate:"required,money"`
	Status     string            `json:"status" validate:"omitempty,oneof=paid due overdue"`
	BillDate   *shared.Timestamp `json:"billDate" validate:"required"`
	DueDate    *shared.Timestamp `json:"dueDate" validate:"required"`
	PaidDate   *shared.Timestamp `json:"paidDate"`
}

// UpdateBillRequest is a partial update; nil fields are left unchanged and
// an explicit null paidDate clears it.
type UpdateBillRequest struct {
	BillNumber *string                           `json:"billNumber" validate:"omitnil,notblank"`
	CustomerID *string                           `json:"customerId"`
	Amount     *shared.Amount                    `json:"amount" validate:"omitnil,money"`
	Status     *string                           `json:"status" validate:"omitnil,oneof=paid due overdue"`
	BillDate   *shared.Timestamp                 `json:"billDate"`
	DueDate    *shared.Timestamp                 `json:"dueDate"`
	PaidDate   shared.Nullable[shared.Timestamp] `json:"paidDate"`
}

func (req UpdateBillRequest) changes() map[string]any {
	updates := make(map[string]any)
	if req.BillNumber != nil {
		updates["bill_number"] = strings.TrimSpace(*req.BillNumber)
	}
	if req.CustomerID != nil {
		updates["customer_id"] = optional(req.CustomerID)
	}
	if req.Amount != nil {
		updates["amount"] = *req.Amount
	}
	if req.Status != nil {
		updates["status"] = Status(*req.Status)
	}
	if req.BillDate != nil {
		updates["bill_date"] = req.BillDate.Time
	}
	if req.DueDate != nil {
		updates["due_date"] = req.DueDate.Time
	}
	if req.PaidDate.Set {
		updates["paid_date"] = req.PaidDate.Value.Ptr()
	}
	return updates
}

// optional maps an empty reference, as sent by an unselected form field,
// to no reference.
func optional(s *string) *string {
	if s == nil || strings.TrimSpace(*s) == "" {
		return nil
	}
	return s
}

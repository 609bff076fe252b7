package customers

import "github.com/billcollect/billcollect/internal/shared"

type CreateCustomerRequest struct {
	Name        string         `json:"name" validate:"required,notblank"`
	Package     *shared.Amount `json:"package" validate:"omitnil,money"`
	Phone       *string        `json:"phone"`
	Address     *string        `json:"address"`
	Status      string         `json:"status" validate:"omitempty,oneof=paid due overdue 'temporary close'"`
	TotalBills  *shared.Amount `json:"totalBills" validate:"omitnil,money"`
	Outstanding *shared.Amount `json:"outstanding" validate:"omitnil,money"`
}

// UpdateCustomerRequest is a partial update; nil fields are left unchanged and
// an explicit null phone or address clears it.
type UpdateCustomerRequest struct {
	Name        *string                 `json:"name" validate:"omitnil,notblank"`
	Package     *shared.Amount          `json:"package" validate:"omitnil,money"`
	Phone       shared.Nullable[string] `json:"phone"`
	Address     shared.Nullable[string] `json:"address"`
	Status      *string                 `json:"status" validate:"omitnil,oneof=paid due overdue 'temporary close'"`
	TotalBills  *shared.Amount          `json:"totalBills" validate:"omitnil,money"`
	Outstanding *shared.Amount          `json:"outstanding" validate:"omitnil,money"`
}

func (req UpdateCustomerRequest) changes() map[string]any {
	updates := make(map[string]any)
	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.Package != nil {
		updates["package"] = *req.Package
	}
	if req.Phone.Set {
		updates["phone"] = req.Phone.Value
	}
	if req.Address.Set {
		updates["address"] = req.Address.Value
	}
	if req.Status != nil {
		updates["status"] = Status(*req.Status)
	}
	if req.TotalBills != nil {
		updates["total_bills"] = *req.TotalBills
	}
	if req.Outstanding != nil {
		updates["outstanding"] = *req.Outstanding
	}
	return updates
}

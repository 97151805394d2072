package order

import (
	"github.com/shopspring/decimal"

	"github.com/corray333/finance-dashboard/internal/service/models/period"
)

// ListOrdersModel represents filter and pagination parameters for listing orders.
type ListOrdersModel struct {
	Period   period.Period `json:"period,omitempty"`
	Page     int           `json:"page,omitempty"`
	PageSize int           `json:"pageSize,omitempty"`
}

// Listing is one page of window-filtered orders together with totals
// derived from the whole filtered set, not just the page.
type Listing struct {
	Orders      []Order         `json:"orders"`
	Total       int             `json:"total"`
	TotalIncome decimal.Decimal `json:"totalIncome"`
	Page        int             `json:"page"`
	PageSize    int             `json:"pageSize"`
}

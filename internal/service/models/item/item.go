package item

import (
	"time"

	"github.com/shopspring/decimal"
)

// Item represents a catalog item snapshot as owned by the upstream catalog.
// The dashboard never mutates items.
type Item struct {
	ID          int64           `json:"id"`
	Name        string          `json:"name"        validate:"required"`
	Description string          `json:"description"`
	Type        string          `json:"type"`
	ItemType    string          `json:"itemType"`
	Price       decimal.Decimal `json:"price"       validate:"gte=0"`
	Duration    int             `json:"duration"`
	Status      string          `json:"status"`
	Deleted     bool            `json:"deleted"`
	CreatedAt   time.Time       `json:"createdAt"`
}

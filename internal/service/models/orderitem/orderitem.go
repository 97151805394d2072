package orderitem

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/corray333/finance-dashboard/internal/service/models/item"
)

// OrderItem represents a line in an order, linking it to a catalog item
// with a quantity. The embedded Item is a snapshot taken by the upstream.
type OrderItem struct {
	ID        int64      `json:"id"`
	OrderID   string     `json:"OrderId"`
	ItemID    int64      `json:"ItemId"`
	Quantity  int        `json:"quantity"  validate:"gte=0"`
	CreatedAt time.Time  `json:"createdAt"`
	Item      *item.Item `json:"Item"      validate:"required"`
}

// LineAmount returns price multiplied by quantity for this line.
func (i *OrderItem) LineAmount() decimal.Decimal {
	return i.Item.Price.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

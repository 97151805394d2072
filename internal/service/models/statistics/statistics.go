package statistics

import (
	"github.com/shopspring/decimal"

	"github.com/corray333/finance-dashboard/internal/service/models/order"
)

// Statistics holds the derived summary over a set of orders. It is never
// persisted; it is recomputed from the upstream data on every request.
type Statistics struct {
	TotalOrders     int             `json:"totalOrders"`
	OrdersByStatus  map[string]int  `json:"ordersByStatus"`
	TotalAmount     decimal.Decimal `json:"totalAmount"`
	OrdersByTable   map[string]int  `json:"ordersByTable"`
	OrdersByWaiter  map[string]int  `json:"ordersByWaiter"`
	MostOrderedItem MostOrderedItem `json:"mostOrderedItem"`
}

// MostOrderedItem is the item name with the highest line-item frequency.
type MostOrderedItem struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// Compute reduces orders into Statistics in a single pass, with a nested
// pass over each order's line items. It is a pure function of its input.
//
// TotalAmount accumulates price times quantity without rounding; rounding
// to two decimals is a presentation concern. Item frequency counts one
// per line item occurrence regardless of quantity. Ties on the maximum
// frequency keep the first-encountered item.
//
// Embedded Waiter and Item records are expected to be present; the
// upstream boundary validates that before orders reach this package.
func Compute(orders []order.Order) Statistics {
	stats := Statistics{
		TotalOrders:    len(orders),
		OrdersByStatus: make(map[string]int),
		TotalAmount:    decimal.Zero,
		OrdersByTable:  make(map[string]int),
		OrdersByWaiter: make(map[string]int),
	}

	itemFrequency := make(map[string]int)
	itemOrder := make([]string, 0)

	for i := range orders {
		o := &orders[i]

		stats.OrdersByStatus[o.OrderStatus]++
		stats.OrdersByTable[o.TableNumber]++
		stats.OrdersByWaiter[o.Waiter.FullName()]++

		for j := range o.OrderItems {
			line := &o.OrderItems[j]
			stats.TotalAmount = stats.TotalAmount.Add(line.LineAmount())

			name := line.Item.Name
			if _, seen := itemFrequency[name]; !seen {
				itemOrder = append(itemOrder, name)
			}
			itemFrequency[name]++
		}
	}

	// Strictly-greater comparison over first-encounter order: an item
	// seen later never displaces an equally frequent earlier one.
	for _, name := range itemOrder {
		if itemFrequency[name] > stats.MostOrderedItem.Count {
			stats.MostOrderedItem = MostOrderedItem{
				Name:  name,
				Count: itemFrequency[name],
			}
		}
	}

	return stats
}

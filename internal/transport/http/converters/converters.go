package converters

import (
	"time"

	"github.com/corray333/finance-dashboard/internal/service/models/order"
	"github.com/corray333/finance-dashboard/internal/service/models/statistics"
)

// OrderLineResponse is one line item in an order response.
type OrderLineResponse struct {
	Name     string `json:"name"`
	Quantity int    `json:"quantity"`
	Price    string `json:"price"`
}

// OrderResponse is an order as rendered for the dashboard tables:
// identifiers and derived per-order totals, rounded to two decimals
// at this presentation boundary and nowhere earlier.
type OrderResponse struct {
	ID                 string              `json:"id"`
	TableNumber        string              `json:"tableNumber"`
	WaiterName         string              `json:"waiterName"`
	OrderStatus        string              `json:"orderStatus"`
	Seen               string              `json:"seen"`
	SpecialDescription *string             `json:"specialDescription,omitempty"`
	CreatedAt          time.Time           `json:"createdAt"`
	ItemsCount         int                 `json:"itemsCount"`
	TotalAmount        string              `json:"totalAmount"`
	Items              []OrderLineResponse `json:"items"`
}

// OrderToResponse converts an order model to its response form.
func OrderToResponse(o *order.Order) OrderResponse {
	items := make([]OrderLineResponse, len(o.OrderItems))
	for i := range o.OrderItems {
		line := &o.OrderItems[i]
		items[i] = OrderLineResponse{
			Name:     line.Item.Name,
			Quantity: line.Quantity,
			Price:    line.Item.Price.StringFixed(2),
		}
	}

	return OrderResponse{
		ID:                 o.ID,
		TableNumber:        o.TableNumber,
		WaiterName:         o.Waiter.FullName(),
		OrderStatus:        o.OrderStatus,
		Seen:               o.Seen,
		SpecialDescription: o.SpecialDescription,
		CreatedAt:          o.CreatedAt,
		ItemsCount:         o.ItemsCount(),
		TotalAmount:        o.TotalAmount().StringFixed(2),
		Items:              items,
	}
}

// OrdersToResponse converts a slice of order models.
func OrdersToResponse(orders []order.Order) []OrderResponse {
	result := make([]OrderResponse, len(orders))
	for i := range orders {
		result[i] = OrderToResponse(&orders[i])
	}

	return result
}

// MostOrderedItemResponse mirrors statistics.MostOrderedItem.
type MostOrderedItemResponse struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// StatisticsResponse is the aggregate view for the statistics page.
type StatisticsResponse struct {
	TotalOrders     int                     `json:"totalOrders"`
	OrdersByStatus  map[string]int          `json:"ordersByStatus"`
	TotalAmount     string                  `json:"totalAmount"`
	OrdersByTable   map[string]int          `json:"ordersByTable"`
	OrdersByWaiter  map[string]int          `json:"ordersByWaiter"`
	MostOrderedItem MostOrderedItemResponse `json:"mostOrderedItem"`
}

// StatisticsToResponse converts computed statistics to their response form.
func StatisticsToResponse(s statistics.Statistics) StatisticsResponse {
	return StatisticsResponse{
		TotalOrders:    s.TotalOrders,
		OrdersByStatus: s.OrdersByStatus,
		TotalAmount:    s.TotalAmount.StringFixed(2),
		OrdersByTable:  s.OrdersByTable,
		OrdersByWaiter: s.OrdersByWaiter,
		MostOrderedItem: MostOrderedItemResponse{
			Name:  s.MostOrderedItem.Name,
			Count: s.MostOrderedItem.Count,
		},
	}
}

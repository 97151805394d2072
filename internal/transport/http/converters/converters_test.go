package converters

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/corray333/finance-dashboard/internal/service/models/item"
	"github.com/corray333/finance-dashboard/internal/service/models/order"
	"github.com/corray333/finance-dashboard/internal/service/models/orderitem"
	"github.com/corray333/finance-dashboard/internal/service/models/statistics"
	"github.com/corray333/finance-dashboard/internal/service/models/waiter"
)

func TestOrderToResponse(t *testing.T) {
	createdAt := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
	o := order.Order{
		ID:          "ord-1",
		TableNumber: "7",
		OrderStatus: "pending",
		Seen:        order.SeenFalse,
		CreatedAt:   createdAt,
		Waiter:      &waiter.Waiter{FirstName: "Ana", LastName: "Petrova"},
		OrderItems: []orderitem.OrderItem{
			{
				Quantity: 2,
				Item:     &item.Item{Name: "Soup", Price: decimal.RequireFromString("4.5")},
			},
			{
				Quantity: 1,
				Item:     &item.Item{Name: "Steak", Price: decimal.RequireFromString("16")},
			},
		},
	}

	resp := OrderToResponse(&o)

	if resp.WaiterName != "Ana Petrova" {
		t.Errorf("waiterName = %q, want %q", resp.WaiterName, "Ana Petrova")
	}
	if resp.ItemsCount != 3 {
		t.Errorf("itemsCount = %d, want 3", resp.ItemsCount)
	}
	if resp.TotalAmount != "25.00" {
		t.Errorf("totalAmount = %q, want %q", resp.TotalAmount, "25.00")
	}
	if len(resp.Items) != 2 || resp.Items[0].Price != "4.50" {
		t.Errorf("unexpected items: %+v", resp.Items)
	}
	if resp.SpecialDescription != nil {
		t.Errorf("specialDescription must stay nil, got %v", *resp.SpecialDescription)
	}
}

func TestStatisticsToResponse(t *testing.T) {
	stats := statistics.Statistics{
		TotalOrders:    3,
		TotalAmount:    decimal.RequireFromString("0.3"),
		OrdersByStatus: map[string]int{"pending": 3},
		MostOrderedItem: statistics.MostOrderedItem{
			Name:  "Soup",
			Count: 2,
		},
	}

	resp := StatisticsToResponse(stats)

	if resp.TotalAmount != "0.30" {
		t.Errorf("totalAmount = %q, want %q", resp.TotalAmount, "0.30")
	}
	if resp.MostOrderedItem.Name != "Soup" || resp.MostOrderedItem.Count != 2 {
		t.Errorf("unexpected mostOrderedItem: %+v", resp.MostOrderedItem)
	}
}

package statistics

import (
	"testing"

	"github.com/shopspring/decimal"

	"github.com/corray333/finance-dashboard/internal/service/models/item"
	"github.com/corray333/finance-dashboard/internal/service/models/order"
	"github.com/corray333/finance-dashboard/internal/service/models/orderitem"
	"github.com/corray333/finance-dashboard/internal/service/models/waiter"
)

func makeOrder(status, table, firstName, lastName string, items ...orderitem.OrderItem) order.Order {
	return order.Order{
		ID:          "ord-" + status + "-" + table,
		OrderStatus: status,
		TableNumber: table,
		Waiter:      &waiter.Waiter{FirstName: firstName, LastName: lastName},
		OrderItems:  items,
	}
}

func makeLine(name string, price int64, quantity int) orderitem.OrderItem {
	return orderitem.OrderItem{
		Quantity: quantity,
		Item:     &item.Item{Name: name, Price: decimal.NewFromInt(price)},
	}
}

func TestComputeScenario(t *testing.T) {
	// Scenario from the dashboard:
	// pending order, table 5: 2 x Pizza at 10
	// approved order, table 7: 1 x Cola at 5
	orders := []order.Order{
		makeOrder("pending", "5", "Anna", "Smith", makeLine("Pizza", 10, 2)),
		makeOrder("approved", "7", "Bob", "Jones", makeLine("Cola", 5, 1)),
	}

	stats := Compute(orders)

	if stats.TotalOrders != 2 {
		t.Errorf("TotalOrders expected 2, got %d", stats.TotalOrders)
	}
	if !stats.TotalAmount.Equal(decimal.NewFromInt(25)) {
		t.Errorf("TotalAmount expected 25, got %s", stats.TotalAmount)
	}
	if stats.OrdersByStatus["pending"] != 1 || stats.OrdersByStatus["approved"] != 1 {
		t.Errorf("OrdersByStatus incorrect: %v", stats.OrdersByStatus)
	}
	if stats.OrdersByTable["5"] != 1 || stats.OrdersByTable["7"] != 1 {
		t.Errorf("OrdersByTable incorrect: %v", stats.OrdersByTable)
	}
	if stats.OrdersByWaiter["Anna Smith"] != 1 || stats.OrdersByWaiter["Bob Jones"] != 1 {
		t.Errorf("OrdersByWaiter incorrect: %v", stats.OrdersByWaiter)
	}
}

func TestComputeEmptyInput(t *testing.T) {
	stats := Compute(nil)

	if stats.TotalOrders != 0 {
		t.Errorf("TotalOrders expected 0, got %d", stats.TotalOrders)
	}
	if !stats.TotalAmount.IsZero() {
		t.Errorf("TotalAmount expected 0, got %s", stats.TotalAmount)
	}
	if stats.MostOrderedItem.Name != "" || stats.MostOrderedItem.Count != 0 {
		t.Errorf("MostOrderedItem expected empty, got %+v", stats.MostOrderedItem)
	}
}

func TestComputeOrderWithoutItems(t *testing.T) {
	orders := []order.Order{
		makeOrder("pending", "3", "Anna", "Smith"),
	}

	stats := Compute(orders)

	if !stats.TotalAmount.IsZero() {
		t.Errorf("order without items must contribute 0, got %s", stats.TotalAmount)
	}
	if stats.TotalOrders != 1 {
		t.Errorf("TotalOrders expected 1, got %d", stats.TotalOrders)
	}
}

func TestComputeFrequencyByPresenceNotQuantity(t *testing.T) {
	// Two orders each containing the same item once, with large
	// quantities: frequency must still be 2.
	orders := []order.Order{
		makeOrder("pending", "1", "Anna", "Smith", makeLine("Pizza", 10, 7)),
		makeOrder("pending", "2", "Bob", "Jones", makeLine("Pizza", 10, 3)),
	}

	stats := Compute(orders)

	if stats.MostOrderedItem.Name != "Pizza" {
		t.Errorf("expected Pizza, got %q", stats.MostOrderedItem.Name)
	}
	if stats.MostOrderedItem.Count != 2 {
		t.Errorf("expected count 2, got %d", stats.MostOrderedItem.Count)
	}
}

func TestComputeTieKeepsFirstSeen(t *testing.T) {
	// Soup and Salad both appear twice; Soup is encountered first and
	// must win the tie.
	orders := []order.Order{
		makeOrder("pending", "1", "Anna", "Smith", makeLine("Soup", 4, 1), makeLine("Salad", 6, 1)),
		makeOrder("pending", "2", "Bob", "Jones", makeLine("Salad", 6, 1), makeLine("Soup", 4, 1)),
	}

	stats := Compute(orders)

	if stats.MostOrderedItem.Name != "Soup" {
		t.Errorf("tie must keep first-seen item Soup, got %q", stats.MostOrderedItem.Name)
	}
	if stats.MostOrderedItem.Count != 2 {
		t.Errorf("expected count 2, got %d", stats.MostOrderedItem.Count)
	}
}

func TestComputeReorderInvariance(t *testing.T) {
	a := makeOrder("pending", "5", "Anna", "Smith", makeLine("Pizza", 10, 2))
	b := makeOrder("approved", "7", "Bob", "Jones", makeLine("Cola", 5, 1))
	c := makeOrder("removed", "5", "Anna", "Smith", makeLine("Soup", 4, 3))

	forward := Compute([]order.Order{a, b, c})
	backward := Compute([]order.Order{c, b, a})

	if !forward.TotalAmount.Equal(backward.TotalAmount) {
		t.Errorf("TotalAmount order-sensitive: %s vs %s", forward.TotalAmount, backward.TotalAmount)
	}
	if forward.TotalOrders != backward.TotalOrders {
		t.Errorf("TotalOrders order-sensitive")
	}
	for status, count := range forward.OrdersByStatus {
		if backward.OrdersByStatus[status] != count {
			t.Errorf("OrdersByStatus order-sensitive for %q", status)
		}
	}
	for table, count := range forward.OrdersByTable {
		if backward.OrdersByTable[table] != count {
			t.Errorf("OrdersByTable order-sensitive for %q", table)
		}
	}
}

func TestComputeNoAccumulationRounding(t *testing.T) {
	// 3 x 0.10 must be exactly 0.30, not a float approximation.
	orders := []order.Order{
		makeOrder("pending", "1", "Anna", "Smith", orderitem.OrderItem{
			Quantity: 3,
			Item:     &item.Item{Name: "Espresso", Price: decimal.RequireFromString("0.10")},
		}),
	}

	stats := Compute(orders)

	if !stats.TotalAmount.Equal(decimal.RequireFromString("0.30")) {
		t.Errorf("expected exactly 0.30, got %s", stats.TotalAmount)
	}
}

package dashboardsvc

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/corray333/finance-dashboard/internal/changefeed"
	"github.com/corray333/finance-dashboard/internal/service/models/item"
	"github.com/corray333/finance-dashboard/internal/service/models/order"
	"github.com/corray333/finance-dashboard/internal/service/models/orderitem"
	"github.com/corray333/finance-dashboard/internal/service/models/period"
	"github.com/corray333/finance-dashboard/internal/service/models/waiter"
	"github.com/corray333/finance-dashboard/pkg/paging"
)

type stubUpstream struct {
	orders    []order.Order
	updateErr error
	updates   []string
}

func (s *stubUpstream) ListOrders(ctx context.Context) ([]order.Order, error) {
	return s.orders, nil
}

func (s *stubUpstream) ListNewOrders(ctx context.Context) ([]order.Order, error) {
	return s.orders, nil
}

func (s *stubUpstream) ListPendingOrders(ctx context.Context) ([]order.Order, error) {
	return s.orders, nil
}

func (s *stubUpstream) GetOrder(ctx context.Context, id string) (*order.Order, error) {
	for i := range s.orders {
		if s.orders[i].ID == id {
			return &s.orders[i], nil
		}
	}

	return nil, errors.New("not found")
}

func (s *stubUpstream) UpdateOrderField(ctx context.Context, id string, field order.Field, newValue string) error {
	if s.updateErr != nil {
		return s.updateErr
	}
	s.updates = append(s.updates, id+":"+field.String()+"="+newValue)

	return nil
}

var testNow = time.Date(2025, time.March, 15, 12, 0, 0, 0, time.UTC)

func testOrder(id string, age time.Duration, price int64, quantity int) order.Order {
	return order.Order{
		ID:          id,
		OrderStatus: "pending",
		TableNumber: "1",
		Seen:        order.SeenFalse,
		CreatedAt:   testNow.Add(-age),
		Waiter:      &waiter.Waiter{FirstName: "Anna", LastName: "Smith"},
		OrderItems: []orderitem.OrderItem{
			{Quantity: quantity, Item: &item.Item{Name: "Pizza", Price: decimal.NewFromInt(price)}},
		},
	}
}

func newTestService(u *stubUpstream, feed *changefeed.Feed) *DashboardService {
	return MustNewDashboardService(
		WithUpstream(u),
		WithChangeFeed(feed),
		WithNowFunc(func() time.Time { return testNow }),
		WithChangeTTL(5*time.Minute),
	)
}

func TestStatisticsWindowsOrders(t *testing.T) {
	u := &stubUpstream{orders: []order.Order{
		testOrder("recent", time.Hour, 10, 2),
		testOrder("old", 48*time.Hour, 99, 1),
	}}
	svc := newTestService(u, changefeed.New())

	stats, err := svc.Statistics(context.Background(), period.Last24)
	if err != nil {
		t.Fatalf("Statistics failed: %v", err)
	}

	if stats.TotalOrders != 1 {
		t.Errorf("expected only the recent order, got %d", stats.TotalOrders)
	}
	if !stats.TotalAmount.Equal(decimal.NewFromInt(20)) {
		t.Errorf("TotalAmount expected 20, got %s", stats.TotalAmount)
	}
}

func TestListOrdersPaginates(t *testing.T) {
	u := &stubUpstream{orders: []order.Order{
		testOrder("a", time.Hour, 10, 1),
		testOrder("b", 2*time.Hour, 10, 1),
		testOrder("c", 3*time.Hour, 10, 1),
	}}
	svc := newTestService(u, changefeed.New())

	listing, err := svc.ListOrders(context.Background(), order.ListOrdersModel{
		Period:   period.AllTime,
		Page:     2,
		PageSize: 2,
	})
	if err != nil {
		t.Fatalf("ListOrders failed: %v", err)
	}

	if listing.Total != 3 {
		t.Errorf("Total expected 3, got %d", listing.Total)
	}
	if len(listing.Orders) != 1 || listing.Orders[0].ID != "c" {
		t.Errorf("page 2 expected [c], got %+v", listing.Orders)
	}
	if !listing.TotalIncome.Equal(decimal.NewFromInt(30)) {
		t.Errorf("TotalIncome must cover the whole filtered set, got %s", listing.TotalIncome)
	}
}

func TestListOrdersRejectsInvalidPage(t *testing.T) {
	svc := newTestService(&stubUpstream{}, changefeed.New())

	_, err := svc.ListOrders(context.Background(), order.ListOrdersModel{
		Period:   period.AllTime,
		Page:     0,
		PageSize: 10,
	})
	if !errors.Is(err, paging.ErrInvalidPage) {
		t.Fatalf("expected ErrInvalidPage, got %v", err)
	}
}

func TestRequestAndConfirmChange(t *testing.T) {
	u := &stubUpstream{orders: []order.Order{testOrder("ord-1", time.Hour, 10, 1)}}
	feed := changefeed.New()
	svc := newTestService(u, feed)

	change, err := svc.RequestChange("ord-1", order.FieldOrderStatus, "approved")
	if err != nil {
		t.Fatalf("RequestChange failed: %v", err)
	}
	if feed.Counter() != 0 {
		t.Error("requesting must not signal the feed")
	}
	if len(u.updates) != 0 {
		t.Error("requesting must not touch the upstream")
	}

	if err := svc.ConfirmChange(context.Background(), change.ID); err != nil {
		t.Fatalf("ConfirmChange failed: %v", err)
	}
	if len(u.updates) != 1 || u.updates[0] != "ord-1:OrderStatus=approved" {
		t.Errorf("unexpected upstream updates: %v", u.updates)
	}
	if feed.Counter() != 1 {
		t.Errorf("feed counter expected 1, got %d", feed.Counter())
	}

	// A change is single-use.
	if err := svc.ConfirmChange(context.Background(), change.ID); !errors.Is(err, ErrUnknownChange) {
		t.Errorf("second confirm expected ErrUnknownChange, got %v", err)
	}
}

func TestConfirmChangeUpstreamFailureProducesNoSignal(t *testing.T) {
	u := &stubUpstream{updateErr: errors.New("upstream returned 500 Internal Server Error")}
	feed := changefeed.New()
	svc := newTestService(u, feed)

	change, err := svc.RequestChange("ord-1", order.FieldSeen, order.SeenTrue)
	if err != nil {
		t.Fatalf("RequestChange failed: %v", err)
	}

	if err := svc.ConfirmChange(context.Background(), change.ID); err == nil {
		t.Fatal("expected the upstream error to surface")
	}
	if feed.Counter() != 0 {
		t.Error("a failed mutation must not signal the feed")
	}
}

func TestRequestChangeValidatesFieldAndValue(t *testing.T) {
	svc := newTestService(&stubUpstream{}, changefeed.New())

	if _, err := svc.RequestChange("ord-1", order.Field("TableNumber"), "9"); err == nil {
		t.Error("TableNumber must not be updatable")
	}
	if _, err := svc.RequestChange("ord-1", order.FieldOrderStatus, "vaporized"); err == nil {
		t.Error("unknown status value must be rejected")
	}
	if _, err := svc.RequestChange("ord-1", order.FieldSeen, "yes"); err == nil {
		t.Error("seen flag accepts only the literal true/false")
	}
	if _, err := svc.RequestChange("ord-1", order.FieldSeen, order.SeenFalse); err != nil {
		t.Errorf("literal false must be accepted: %v", err)
	}
}

func TestConfirmExpiredChange(t *testing.T) {
	u := &stubUpstream{}
	now := testNow
	svc := MustNewDashboardService(
		WithUpstream(u),
		WithNowFunc(func() time.Time { return now }),
		WithChangeTTL(time.Minute),
	)

	change, err := svc.RequestChange("ord-1", order.FieldSeen, order.SeenTrue)
	if err != nil {
		t.Fatalf("RequestChange failed: %v", err)
	}

	now = now.Add(2 * time.Minute)

	if err := svc.ConfirmChange(context.Background(), change.ID); !errors.Is(err, ErrChangeExpired) {
		t.Fatalf("expected ErrChangeExpired, got %v", err)
	}
	if len(u.updates) != 0 {
		t.Error("expired change must not reach the upstream")
	}
}

func TestCancelChange(t *testing.T) {
	svc := newTestService(&stubUpstream{}, changefeed.New())

	change, err := svc.RequestChange("ord-1", order.FieldSeen, order.SeenTrue)
	if err != nil {
		t.Fatalf("RequestChange failed: %v", err)
	}

	if err := svc.CancelChange(change.ID); err != nil {
		t.Fatalf("CancelChange failed: %v", err)
	}
	if err := svc.ConfirmChange(context.Background(), change.ID); !errors.Is(err, ErrUnknownChange) {
		t.Errorf("cancelled change must be unknown, got %v", err)
	}
}

func TestCancelUnknownChange(t *testing.T) {
	svc := newTestService(&stubUpstream{}, changefeed.New())

	if err := svc.CancelChange(uuid.New()); !errors.Is(err, ErrUnknownChange) {
		t.Errorf("expected ErrUnknownChange, got %v", err)
	}
}

package dashboardsvc

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/viper"

	"github.com/corray333/finance-dashboard/internal/changefeed"
	"github.com/corray333/finance-dashboard/internal/service/models/order"
	"github.com/corray333/finance-dashboard/internal/service/models/period"
	"github.com/corray333/finance-dashboard/internal/service/models/statistics"
	"github.com/corray333/finance-dashboard/pkg/paging"
)

// upstream is the finance API surface the service depends on.
type upstream interface {
	ListOrders(ctx context.Context) ([]order.Order, error)
	ListNewOrders(ctx context.Context) ([]order.Order, error)
	ListPendingOrders(ctx context.Context) ([]order.Order, error)
	GetOrder(ctx context.Context, id string) (*order.Order, error)
	UpdateOrderField(ctx context.Context, id string, field order.Field, newValue string) error
}

// DashboardService derives dashboard views from upstream order data and
// brokers confirmed single-field mutations back to it. It holds no
// durable state: every read goes back to the upstream, which stays the
// sole source of truth.
type DashboardService struct {
	upstream  upstream
	feed      *changefeed.Feed
	now       func() time.Time
	changeTTL time.Duration

	pending pendingChanges
}

// option is a function that configures the DashboardService.
type option func(*DashboardService)

// MustNewDashboardService creates a new DashboardService.
func MustNewDashboardService(opts ...option) *DashboardService {
	changeTTLSeconds := viper.GetInt("dashboard.change_ttl_seconds")
	if changeTTLSeconds == 0 {
		changeTTLSeconds = 300
	}

	s := &DashboardService{
		now:       time.Now,
		changeTTL: time.Duration(changeTTLSeconds) * time.Second,
	}
	s.pending.entries = make(map[string]PendingChange)

	for _, opt := range opts {
		opt(s)
	}

	if s.upstream == nil {
		panic("dashboard service requires an upstream client")
	}
	if s.feed == nil {
		s.feed = changefeed.New()
	}

	return s
}

// WithUpstream sets the finance API client for the DashboardService.
//
//goland:noinspection GoExportedFuncWithUnexportedType
func WithUpstream(u upstream) option {
	return func(s *DashboardService) {
		s.upstream = u
	}
}

// WithChangeFeed sets the change feed notified after committed mutations.
//
//goland:noinspection GoExportedFuncWithUnexportedType
func WithChangeFeed(feed *changefeed.Feed) option {
	return func(s *DashboardService) {
		s.feed = feed
	}
}

// WithNowFunc overrides the clock, for tests.
//
//goland:noinspection GoExportedFuncWithUnexportedType
func WithNowFunc(now func() time.Time) option {
	return func(s *DashboardService) {
		s.now = now
	}
}

// WithChangeTTL overrides how long a pending change stays confirmable.
//
//goland:noinspection GoExportedFuncWithUnexportedType
func WithChangeTTL(ttl time.Duration) option {
	return func(s *DashboardService) {
		s.changeTTL = ttl
	}
}

// Statistics fetches all orders, narrows them to the period window, and
// aggregates them into summary statistics.
func (s *DashboardService) Statistics(ctx context.Context, p period.Period) (statistics.Statistics, error) {
	orders, err := s.upstream.ListOrders(ctx)
	if err != nil {
		return statistics.Statistics{}, err
	}

	return statistics.Compute(s.filterByPeriod(orders, p)), nil
}

// ListOrders fetches all orders, narrows them to the period window, and
// returns one page together with totals over the whole filtered set.
func (s *DashboardService) ListOrders(ctx context.Context, model order.ListOrdersModel) (order.Listing, error) {
	orders, err := s.upstream.ListOrders(ctx)
	if err != nil {
		return order.Listing{}, err
	}

	filtered := s.filterByPeriod(orders, model.Period)

	page, err := paging.Page(filtered, model.Page, model.PageSize)
	if err != nil {
		return order.Listing{}, err
	}

	totalIncome := decimal.Zero
	for i := range filtered {
		totalIncome = totalIncome.Add(filtered[i].TotalAmount())
	}

	return order.Listing{
		Orders:      page,
		Total:       len(filtered),
		TotalIncome: totalIncome,
		Page:        model.Page,
		PageSize:    model.PageSize,
	}, nil
}

// NewOrders fetches the orders the upstream considers unseen.
func (s *DashboardService) NewOrders(ctx context.Context) ([]order.Order, error) {
	return s.upstream.ListNewOrders(ctx)
}

// PendingOrders fetches the orders with status pending.
func (s *DashboardService) PendingOrders(ctx context.Context) ([]order.Order, error) {
	return s.upstream.ListPendingOrders(ctx)
}

// OrderDetails fetches a single order with its line items.
func (s *DashboardService) OrderDetails(ctx context.Context, id string) (*order.Order, error) {
	return s.upstream.GetOrder(ctx, id)
}

func (s *DashboardService) filterByPeriod(orders []order.Order, p period.Period) []order.Order {
	now := s.now()

	filtered := make([]order.Order, 0, len(orders))
	for i := range orders {
		if p.Contains(now, orders[i].CreatedAt) {
			filtered = append(filtered, orders[i])
		}
	}

	return filtered
}

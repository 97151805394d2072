package poller

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/spf13/viper"

	"github.com/corray333/finance-dashboard/internal/changefeed"
	"github.com/corray333/finance-dashboard/internal/service/models/order"
)

// service is the surface the poller consumes.
type service interface {
	NewOrders(ctx context.Context) ([]order.Order, error)
}

// Worker keeps a fresh snapshot of the upstream's new orders. It
// refreshes on a fixed interval and immediately after a committed
// mutation, so a just-approved order disappears from the snapshot on
// the next read instead of up to one interval later.
type Worker struct {
	service      service
	feed         *changefeed.Feed
	pollInterval time.Duration
	stopCh       chan struct{}

	generation atomic.Uint64

	mu         sync.RWMutex
	appliedGen uint64
	snapshot   []order.Order
	updatedAt  time.Time
}

// NewWorker creates a new new-orders poller.
func NewWorker(svc service, feed *changefeed.Feed) *Worker {
	pollIntervalSeconds := viper.GetInt("dashboard.poll_interval_seconds")
	if pollIntervalSeconds == 0 {
		pollIntervalSeconds = 10
	}

	return &Worker{
		service:      svc,
		feed:         feed,
		pollInterval: time.Duration(pollIntervalSeconds) * time.Second,
		stopCh:       make(chan struct{}),
	}
}

// Start begins polling. It blocks until the context is cancelled or
// Stop is called.
func (w *Worker) Start(ctx context.Context) {
	events, cancel := w.feed.Subscribe(8)
	defer cancel()

	ticker := time.NewTicker(w.pollInterval)
	defer ticker.Stop()

	slog.Info("New-orders poller started", "poll_interval", w.pollInterval)

	w.Refresh(ctx)

	for {
		select {
		case <-ctx.Done():
			slog.Info("New-orders poller shutting down")

			return
		case <-w.stopCh:
			slog.Info("New-orders poller stopped")

			return
		case <-ticker.C:
			w.Refresh(ctx)
		case _, ok := <-events:
			if !ok {
				return
			}
			w.Refresh(ctx)
		}
	}
}

// Stop stops the worker.
func (w *Worker) Stop() {
	close(w.stopCh)
}

// Snapshot returns the latest applied new-orders view and when it was
// taken. A failed refresh leaves the previous snapshot in place.
func (w *Worker) Snapshot() ([]order.Order, time.Time) {
	w.mu.RLock()
	defer w.mu.RUnlock()

	return w.snapshot, w.updatedAt
}

// Refresh fetches the new orders once. Each refresh carries a generation
// number taken before the fetch; a response that arrives after a newer
// refresh already applied is discarded instead of overwriting it.
func (w *Worker) Refresh(ctx context.Context) {
	gen := w.generation.Add(1)

	orders, err := w.service.NewOrders(ctx)
	if err != nil {
		slog.Error("Failed to refresh new orders", "error", err)

		return
	}

	w.apply(gen, orders)
}

// apply installs a fetched snapshot unless a newer one already landed.
func (w *Worker) apply(gen uint64, orders []order.Order) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if gen < w.appliedGen {
		slog.Debug("Discarding stale new-orders response", "generation", gen, "applied", w.appliedGen)

		return
	}

	w.appliedGen = gen
	w.snapshot = orders
	w.updatedAt = time.Now()
}

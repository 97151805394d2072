package dashboardsvc

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/corray333/finance-dashboard/internal/changefeed"
	"github.com/corray333/finance-dashboard/internal/service/models/order"
)

var (
	// ErrUnknownChange means the confirmation id does not match a
	// pending change; it was never requested, already decided, or
	// already purged.
	ErrUnknownChange = errors.New("unknown pending change")

	// ErrChangeExpired means the change outlived its confirmation TTL.
	ErrChangeExpired = errors.New("pending change expired")
)

// PendingChange is the first phase of a confirmed mutation: the request
// has been validated and is waiting for an explicit confirmation before
// anything is sent upstream.
type PendingChange struct {
	ID          uuid.UUID   `json:"id"`
	OrderID     string      `json:"orderId"`
	Field       order.Field `json:"field"`
	NewValue    string      `json:"newValue"`
	RequestedAt time.Time   `json:"requestedAt"`
	ExpiresAt   time.Time   `json:"expiresAt"`
}

type pendingChanges struct {
	mu      sync.Mutex
	entries map[string]PendingChange
}

// RequestChange validates and registers a single-field update without
// executing it. The returned change must be confirmed before the TTL
// elapses, or cancelled.
func (s *DashboardService) RequestChange(orderID string, field order.Field, newValue string) (PendingChange, error) {
	if orderID == "" {
		return PendingChange{}, errors.New("order id must not be empty")
	}
	if err := order.ValidateFieldValue(field, newValue); err != nil {
		return PendingChange{}, err
	}

	now := s.now()
	change := PendingChange{
		ID:          uuid.New(),
		OrderID:     orderID,
		Field:       field,
		NewValue:    newValue,
		RequestedAt: now,
		ExpiresAt:   now.Add(s.changeTTL),
	}

	s.pending.mu.Lock()
	defer s.pending.mu.Unlock()

	s.purgeExpiredLocked(now)
	s.pending.entries[change.ID.String()] = change

	return change, nil
}

// ConfirmChange executes a previously requested change. The change feed
// is notified only after the upstream accepted the update; a failed
// PATCH produces no signal and no retry.
func (s *DashboardService) ConfirmChange(ctx context.Context, id uuid.UUID) error {
	change, err := s.takeChange(id)
	if err != nil {
		return err
	}

	if err := s.upstream.UpdateOrderField(ctx, change.OrderID, change.Field, change.NewValue); err != nil {
		slog.Error("Failed to update order field upstream",
			"order_id", change.OrderID,
			"field", change.Field,
			"error", err,
		)

		return err
	}

	s.feed.Publish(changefeed.Event{
		OrderID:  change.OrderID,
		Field:    change.Field.String(),
		NewValue: change.NewValue,
		At:       s.now(),
	})

	return nil
}

// CancelChange discards a previously requested change.
func (s *DashboardService) CancelChange(id uuid.UUID) error {
	_, err := s.takeChange(id)

	return err
}

// takeChange removes the change from the pending set, enforcing the TTL.
func (s *DashboardService) takeChange(id uuid.UUID) (PendingChange, error) {
	s.pending.mu.Lock()
	defer s.pending.mu.Unlock()

	change, ok := s.pending.entries[id.String()]
	if !ok {
		return PendingChange{}, ErrUnknownChange
	}
	delete(s.pending.entries, id.String())

	if s.now().After(change.ExpiresAt) {
		return PendingChange{}, ErrChangeExpired
	}

	return change, nil
}

func (s *DashboardService) purgeExpiredLocked(now time.Time) {
	for key, change := range s.pending.entries {
		if now.After(change.ExpiresAt) {
			delete(s.pending.entries, key)
		}
	}
}

package waiter

import "time"

// Waiter represents a waiter record owned by the upstream system.
// The dashboard only reads the name fields for display and grouping.
type Waiter struct {
	ID          int64     `json:"id"`
	FirstName   string    `json:"firstName"`
	LastName    string    `json:"lastName"`
	Type        string    `json:"type"`
	Status      string    `json:"status"`
	Email       string    `json:"email"`
	PhoneNumber string    `json:"phoneNumber"`
	Deleted     bool      `json:"deleted"`
	CreatedAt   time.Time `json:"createdAt"`
}

// FullName returns the "first last" composite used as a grouping key.
// Two waiters sharing a full name collide on that key; this is accepted.
func (w *Waiter) FullName() string {
	return w.FirstName + " " + w.LastName
}

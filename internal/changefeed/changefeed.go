package changefeed

import (
	"sync"
	"sync/atomic"
	"time"
)

// Event records one successfully committed upstream mutation.
type Event struct {
	OrderID  string    `json:"orderId"`
	Field    string    `json:"field"`
	NewValue string    `json:"newValue"`
	At       time.Time `json:"at"`
}

// Feed is an in-process change feed: a monotonically incrementing counter
// plus a fan-out to subscribers. Polling clients read the counter to
// decide whether to re-fetch; in-process consumers subscribe for a push.
//
// Publishing never blocks: a subscriber that cannot keep up misses
// events, but the counter still advances, so a poll always catches up.
type Feed struct {
	counter atomic.Uint64

	mu     sync.Mutex
	nextID int
	subs   map[int]chan Event
}

func New() *Feed {
	return &Feed{
		subs: make(map[int]chan Event),
	}
}

// Publish increments the counter and fans the event out to subscribers.
func (f *Feed) Publish(e Event) {
	f.counter.Add(1)

	f.mu.Lock()
	defer f.mu.Unlock()

	for _, ch := range f.subs {
		select {
		case ch <- e:
		default:
		}
	}
}

// Counter returns the number of events published so far.
func (f *Feed) Counter() uint64 {
	return f.counter.Load()
}

// Subscribe registers a buffered subscription. The returned cancel
// function must be called to release it.
func (f *Feed) Subscribe(buffer int) (<-chan Event, func()) {
	f.mu.Lock()
	defer f.mu.Unlock()

	id := f.nextID
	f.nextID++

	ch := make(chan Event, buffer)
	f.subs[id] = ch

	cancel := func() {
		f.mu.Lock()
		defer f.mu.Unlock()

		if _, ok := f.subs[id]; ok {
			delete(f.subs, id)
			close(ch)
		}
	}

	return ch, cancel
}

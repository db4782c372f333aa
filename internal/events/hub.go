// Package events fans store mutations out to presentation subscribers so a
// front-end can re-render after every write instead of polling.
package events

import (
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"
)

const (
	TypePredictionCreated  = "prediction_created"
	TypePredictionUpdated  = "prediction_updated"
	TypePredictionDeleted  = "prediction_deleted"
	TypePredictionUnlocked = "prediction_unlocked"
	TypeSessionStarted     = "session_started"
	TypeSessionEnded       = "session_ended"
	TypeBalanceChanged     = "balance_changed"
)

// Event is one store mutation notification.
type Event struct {
	Type string    `json:"type"`
	ID   int64     `json:"id,omitempty"`
	At   time.Time `json:"at"`
}

// Hub is an in-process publish/subscribe fan-out. Publishing never blocks:
// slow subscribers lose events rather than stalling a mutation.
type Hub struct {
	mu      sync.Mutex
	nextSub int64
	subs    map[int64]chan Event

	logger  *zap.Logger
	dropped uint64
}

func NewHub(logger *zap.Logger) *Hub {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Hub{
		subs:   map[int64]chan Event{},
		logger: logger,
	}
}

// Subscribe registers a buffered receiver. The returned cancel func must be
// called when the subscriber goes away; it closes the channel.
func (h *Hub) Subscribe(buf int) (<-chan Event, func()) {
	if buf <= 0 {
		buf = 16
	}
	ch := make(chan Event, buf)

	h.mu.Lock()
	h.nextSub++
	id := h.nextSub
	h.subs[id] = ch
	h.mu.Unlock()

	cancel := func() {
		h.mu.Lock()
		if sub, ok := h.subs[id]; ok {
			delete(h.subs, id)
			close(sub)
		}
		h.mu.Unlock()
	}
	return ch, cancel
}

func (h *Hub) Publish(event Event) {
	if event.At.IsZero() {
		event.At = time.Now().UTC()
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	for _, ch := range h.subs {
		select {
		case ch <- event:
		default:
			atomic.AddUint64(&h.dropped, 1)
		}
	}
}

// Dropped reports how many events were discarded due to slow subscribers.
func (h *Hub) Dropped() uint64 {
	return atomic.LoadUint64(&h.dropped)
}

package hub

import (
	"sync"

	"github.com/rs/zerolog/log"

	"logview/dashboard"
)

const subscriberBuffer = 16

// Hub fans view updates out to every subscriber.
type Hub struct {
	mu          sync.RWMutex
	subscribers map[chan dashboard.Update]struct{}
	dropped     int64
	closed      bool
}

// New creates an empty Hub.
func New() *Hub {
	return &Hub{
		subscribers: make(map[chan dashboard.Update]struct{}),
	}
}

// Subscribe returns a buffered channel receiving every published update and a
// function that unsubscribes and closes it. The channel is also closed when the
// hub is closed.
func (h *Hub) Subscribe() (<-chan dashboard.Update, func()) {
	ch := make(chan dashboard.Update, subscriberBuffer)

	h.mu.Lock()
	if h.closed {
		close(ch)
	} else {
		h.subscribers[ch] = struct{}{}
	}
	h.mu.Unlock()

	var once sync.Once
	return ch, func() {
		once.Do(func() { h.remove(ch) })
	}
}

func (h *Hub) remove(ch chan dashboard.Update) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.subscribers[ch]; ok {
		delete(h.subscribers, ch)
		close(ch)
	}
}

// Publish sends u to all subscribers without blocking.
// A subscriber whose buffer is full misses the update.
func (h *Hub) Publish(u dashboard.Update) {
	h.mu.Lock()
	defer h.mu.Unlock()

	for ch := range h.subscribers {
		select {
		case ch <- u:
		default:
			h.dropped++
			log.Warn().Int64("dropped", h.dropped).Msg("hub: dropped update for slow subscriber")
		}
	}
}

// Subscribers returns the number of live subscribers.
func (h *Hub) Subscribers() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subscribers)
}

// Dropped returns the total number of updates dropped due to slow subscribers.
func (h *Hub) Dropped() int64 {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.dropped
}

// Close closes every subscriber channel. Later subscriptions get a closed channel.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()

	for ch := range h.subscribers {
		close(ch)
	}
	h.subscribers = make(map[chan dashboard.Update]struct{})
	h.closed = true
}

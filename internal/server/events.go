package server

import (
	"sync"
	"time"
)

// NavigationEvent is broadcast to websocket subscribers after each
// successful navigation.
type NavigationEvent struct {
	ID     string    `json:"id"`
	URL    string    `json:"url"`
	Window string    `json:"window"`
	Time   time.Time `json:"time"`
}

// eventHub fans navigation events out to websocket subscribers. Publishing
// never blocks: a subscriber whose buffer is full simply misses the event.
type eventHub struct {
	mu   sync.Mutex
	subs map[chan NavigationEvent]struct{}
}

func newEventHub() *eventHub {
	return &eventHub{subs: make(map[chan NavigationEvent]struct{})}
}

func (h *eventHub) subscribe() chan NavigationEvent {
	ch := make(chan NavigationEvent, 8)
	h.mu.Lock()
	h.subs[ch] = struct{}{}
	h.mu.Unlock()
	return ch
}

func (h *eventHub) unsubscribe(ch chan NavigationEvent) {
	h.mu.Lock()
	delete(h.subs, ch)
	h.mu.Unlock()
}

func (h *eventHub) publish(ev NavigationEvent) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for ch := range h.subs {
		select {
		case ch <- ev:
		default:
		}
	}
}

package gateway

import (
	"sync"

	"family-tasks/internal/logging"
)

// EventType identifies the kind of row change carried by an event.
type EventType string

const (
	EventInsert EventType = "insert"
	EventUpdate EventType = "update"
	EventDelete EventType = "delete"
)

// Event is a change notification for a single row. Fields carries the
// scoping columns of the affected row (id plus owner columns) so
// subscriptions can be matched without shipping the whole record.
type Event struct {
	Table  Table
	Type   EventType
	Fields map[string]string
}

// Subscription receives events for one table, filtered by equality
// conditions. Events is buffered; a slow consumer drops notifications
// rather than blocking the publisher, which is safe because consumers
// reload the full collection on any event.
type Subscription struct {
	Events chan Event

	table  Table
	equals []Filter
}

// Matches reports whether the event satisfies every filter of the
// subscription. A filter on a column absent from the event never matches.
func (s *Subscription) Matches(ev Event) bool {
	if ev.Table != s.table {
		return false
	}
	for _, f := range s.equals {
		if ev.Fields[f.Field] != f.Value {
			return false
		}
	}
	return true
}

// Hub fans row-change events out to matching subscriptions. Gateway
// implementations publish into the hub after every successful mutation.
type Hub struct {
	mu   sync.RWMutex
	subs map[*Subscription]struct{}
}

// NewHub creates an empty hub.
func NewHub() *Hub {
	return &Hub{
		subs: make(map[*Subscription]struct{}),
	}
}

// Subscribe registers a new subscription for the given table and filters.
func (h *Hub) Subscribe(table Table, equals []Filter) *Subscription {
	sub := &Subscription{
		Events: make(chan Event, 16),
		table:  table,
		equals: equals,
	}

	h.mu.Lock()
	h.subs[sub] = struct{}{}
	h.mu.Unlock()

	return sub
}

// Unsubscribe removes the subscription and closes its event channel.
// Safe to call more than once.
func (h *Hub) Unsubscribe(sub *Subscription) {
	if sub == nil {
		return
	}

	h.mu.Lock()
	_, registered := h.subs[sub]
	delete(h.subs, sub)
	h.mu.Unlock()

	if registered {
		close(sub.Events)
	}
}

// Publish delivers the event to every matching subscription.
func (h *Hub) Publish(ev Event) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for sub := range h.subs {
		if !sub.Matches(ev) {
			continue
		}
		select {
		case sub.Events <- ev:
		default:
			logging.Debugf("hub: dropped %s event on %s for slow subscriber\n", ev.Type, ev.Table)
		}
	}
}

// Close drops every remaining subscription.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()

	for sub := range h.subs {
		delete(h.subs, sub)
		close(sub.Events)
	}
}

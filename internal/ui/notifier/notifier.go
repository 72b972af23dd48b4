// Package notifier broadcasts data change events to SSE listeners.
package notifier

import (
	"slices"
	"sync"
)

// Kind classifies a change.
type Kind int

const (
	// DataChanged means one or more tab datasets changed.
	DataChanged Kind = iota
	// Reload means a bootstrap resource changed and pages must reload.
	Reload
)

func (k Kind) String() string {
	switch k {
	case DataChanged:
		return "data-changed"
	case Reload:
		return "reload"
	default:
		return "unknown"
	}
}

// Event describes a change to the served data.
type Event struct {
	Kind Kind
	// Tabs lists the changed tab ids for DataChanged events.
	Tabs []string
}

// merge folds a later event into e. A reload absorbs everything else.
func (e Event) merge(later Event) Event {
	if e.Kind == Reload || later.Kind == Reload {
		return Event{Kind: Reload}
	}
	tabs := slices.Clone(e.Tabs)
	for _, id := range later.Tabs {
		if !slices.Contains(tabs, id) {
			tabs = append(tabs, id)
		}
	}
	return Event{Kind: DataChanged, Tabs: tabs}
}

// Notifier broadcasts events to all subscribed listeners.
// Each listener holds at most one pending event; events that arrive before
// the listener catches up are merged into it.
type Notifier struct {
	mu        sync.Mutex
	listeners map[chan Event]struct{}
}

// New creates a new Notifier instance.
func New() *Notifier {
	return &Notifier{
		listeners: make(map[chan Event]struct{}),
	}
}

// Subscribe returns a channel that receives events.
// The caller must call Unsubscribe when done to prevent goroutine leaks.
func (n *Notifier) Subscribe() chan Event {
	ch := make(chan Event, 1)
	n.mu.Lock()
	n.listeners[ch] = struct{}{}
	n.mu.Unlock()
	return ch
}

// Unsubscribe removes a listener channel and closes it.
func (n *Notifier) Unsubscribe(ch chan Event) {
	n.mu.Lock()
	delete(n.listeners, ch)
	n.mu.Unlock()
	close(ch)
}

// Broadcast sends ev to all listeners without blocking.
func (n *Notifier) Broadcast(ev Event) {
	n.mu.Lock()
	defer n.mu.Unlock()

	for ch := range n.listeners {
		pending := ev
		select {
		case prev := <-ch:
			pending = prev.merge(ev)
		default:
		}
		select {
		case ch <- pending:
		default:
			// Only Broadcast sends, under n.mu, so the slot is free here.
		}
	}
}

// Len returns the number of subscribed listeners.
func (n *Notifier) Len() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.listeners)
}

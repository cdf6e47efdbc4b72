// Package event carries user intents from the UI to the controller.
//
// Views publish an Event when the user does something (types a query,
// clicks a page, changes servings) and the controller subscribes one
// handler per Kind. Publish runs handlers synchronously on the caller's
// goroutine, so the UI is expected to publish from a tea.Cmd rather than
// from its Update loop.
package event

import (
	"context"
	"sync"
)

// Kind identifies what the user asked for.
type Kind int

const (
	HashChange Kind = iota
	Search
	Paginate
	Servings
	BookmarkToggle
	Upload
	Reload
)

func (k Kind) String() string {
	switch k {
	case HashChange:
		return "hashchange"
	case Search:
		return "search"
	case Paginate:
		return "paginate"
	case Servings:
		return "servings"
	case BookmarkToggle:
		return "bookmark"
	case Upload:
		return "upload"
	case Reload:
		return "reload"
	default:
		return "unknown"
	}
}

// Event is a single user intent. Only the payload field matching Kind is set.
type Event struct {
	Kind     Kind
	Page     int               // Paginate
	Servings int               // Servings
	Fields   map[string]string // Upload
}

// Handler reacts to an event. Handlers report failures through views, not
// return values.
type Handler func(ctx context.Context, ev Event)

// Bus dispatches events to subscribed handlers. The zero value is ready to use.
type Bus struct {
	mu       sync.RWMutex
	handlers map[Kind][]Handler
}

// NewBus returns an empty Bus.
func NewBus() *Bus {
	return &Bus{}
}

// Subscribe registers h for kind. Handlers for the same kind run in
// registration order.
func (b *Bus) Subscribe(kind Kind, h Handler) {
	if h == nil {
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.handlers == nil {
		b.handlers = make(map[Kind][]Handler)
	}
	b.handlers[kind] = append(b.handlers[kind], h)
}

// Publish runs every handler subscribed to ev.Kind and reports whether any ran.
func (b *Bus) Publish(ctx context.Context, ev Event) bool {
	b.mu.RLock()
	handlers := append([]Handler(nil), b.handlers[ev.Kind]...)
	b.mu.RUnlock()

	for _, h := range handlers {
		h(ctx, ev)
	}
	return len(handlers) > 0
}

// Subscribers returns how many handlers are registered for kind.
func (b *Bus) Subscribers(kind Kind) int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.handlers[kind])
}

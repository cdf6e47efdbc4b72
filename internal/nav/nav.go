// Package nav holds the current location, the recipe id that would live in
// a browser URL fragment. Changing it notifies the event bus the same way a
// hashchange would.
package nav

import (
	"context"
	"strings"
	"sync"

	"github.com/five82/forkify/internal/event"
)

// Publisher delivers events; *event.Bus implements it.
type Publisher interface {
	Publish(ctx context.Context, ev event.Event) bool
}

// Location is the current recipe id plus the hooks that fire when it changes.
type Location struct {
	bus Publisher

	mu       sync.RWMutex
	hash     string
	watchers []func(string)
}

// New returns a Location starting at initial.
func New(bus Publisher, initial string) *Location {
	return &Location{bus: bus, hash: clean(initial)}
}

// Hash returns the current recipe id, or "" when none is selected.
func (l *Location) Hash() string {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.hash
}

// Navigate sets the id and publishes a HashChange event, even when the id is
// unchanged.
func (l *Location) Navigate(ctx context.Context, id string) {
	l.set(id)
	l.bus.Publish(ctx, event.Event{Kind: event.HashChange})
}

// Replace sets the id without publishing anything.
func (l *Location) Replace(id string) {
	l.set(id)
}

// Reload publishes a Reload event. The id is kept.
func (l *Location) Reload(ctx context.Context) {
	l.bus.Publish(ctx, event.Event{Kind: event.Reload})
}

// Watch registers fn to be called with the new id after every change.
func (l *Location) Watch(fn func(id string)) {
	if fn == nil {
		return
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	l.watchers = append(l.watchers, fn)
}

func (l *Location) set(id string) {
	id = clean(id)
	l.mu.Lock()
	l.hash = id
	watchers := append(([]func(string))(nil), l.watchers...)
	l.mu.Unlock()

	for _, fn := range watchers {
		fn(id)
	}
}

func clean(id string) string {
	return strings.TrimPrefix(strings.TrimSpace(id), "#")
}

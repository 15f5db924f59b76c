// Package event is a small in-process pub/sub bus for widget lifecycle
// notifications, so host-page integrations can react without reaching into
// widget internals.
package event

import (
	"sync"

	"github.com/google/uuid"
)

// Events the widget publishes.
const (
	WidgetLoaded = "widget:loaded"
	CartAdded    = "cart:added"
)

// Handler receives the event payload. Handlers run synchronously on the
// dispatching goroutine.
type Handler func(payload any)

type Dispatcher struct {
	mu       sync.RWMutex
	handlers map[string]map[string]Handler
}

func NewDispatcher() *Dispatcher {
	return &Dispatcher{
		handlers: make(map[string]map[string]Handler),
	}
}

// Subscribe registers a handler and returns an opaque handle for Unsubscribe.
func (d *Dispatcher) Subscribe(name string, fn Handler) string {
	d.mu.Lock()
	defer d.mu.Unlock()

	id := uuid.NewString()
	if d.handlers[name] == nil {
		d.handlers[name] = make(map[string]Handler)
	}
	d.handlers[name][id] = fn
	return id
}

func (d *Dispatcher) Unsubscribe(name, handle string) {
	d.mu.Lock()
	defer d.mu.Unlock()

	delete(d.handlers[name], handle)
}

func (d *Dispatcher) Dispatch(name string, payload any) {
	d.mu.RLock()
	fns := make([]Handler, 0, len(d.handlers[name]))
	for _, fn := range d.handlers[name] {
		fns = append(fns, fn)
	}
	d.mu.RUnlock()

	for _, fn := range fns {
		fn(payload)
	}
}

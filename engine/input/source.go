// Package input turns host input events into discrete directional events.
package input

import (
	"sync"

	"github.com/go-gl/mathgl/mgl32"
)

// Handler receives one directional event. The vector is not normalized; consumers decide how to
// interpret magnitude.
type Handler func(direction mgl32.Vec2)

// Subscription identifies a registered Handler.
type Subscription uint64

// Source delivers directional events on activation edges only, never on every frame.
type Source interface {
	// Subscribe registers a handler.
	//
	// Parameters:
	//   - handler: function called for each event
	//
	// Returns:
	//   - Subscription: token to pass to Unsubscribe
	Subscribe(handler Handler) Subscription

	// Unsubscribe removes a handler. Unknown subscriptions are ignored.
	//
	// Parameters:
	//   - sub: the token returned by Subscribe
	Unsubscribe(sub Subscription)
}

// Dispatcher is an in-process Source. Events passed to Emit are fanned out to every handler in
// subscription order.
type Dispatcher struct {
	mu *sync.Mutex

	next     Subscription
	order    []Subscription
	handlers map[Subscription]Handler
}

var _ Source = &Dispatcher{}

// NewDispatcher creates an empty Dispatcher.
//
// Returns:
//   - *Dispatcher: the dispatcher
func NewDispatcher() *Dispatcher {
	return &Dispatcher{
		mu:       &sync.Mutex{},
		handlers: make(map[Subscription]Handler),
	}
}

func (d *Dispatcher) Subscribe(handler Handler) Subscription {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.next++
	d.handlers[d.next] = handler
	d.order = append(d.order, d.next)
	return d.next
}

func (d *Dispatcher) Unsubscribe(sub Subscription) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if _, ok := d.handlers[sub]; !ok {
		return
	}
	delete(d.handlers, sub)
	for i, s := range d.order {
		if s == sub {
			d.order = append(d.order[:i], d.order[i+1:]...)
			break
		}
	}
}

// Emit delivers direction to every subscribed handler.
// Handlers run without the dispatcher lock held, so they may subscribe or unsubscribe.
//
// Parameters:
//   - direction: the directional event
func (d *Dispatcher) Emit(direction mgl32.Vec2) {
	d.mu.Lock()
	handlers := make([]Handler, 0, len(d.order))
	for _, s := range d.order {
		handlers = append(handlers, d.handlers[s])
	}
	d.mu.Unlock()

	for _, h := range handlers {
		h(direction)
	}
}

// HandlerCount returns the number of registered handlers.
func (d *Dispatcher) HandlerCount() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.handlers)
}

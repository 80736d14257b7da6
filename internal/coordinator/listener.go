package coordinator

import (
	"github.com/phinze/niceview/internal/event"
	"github.com/phinze/niceview/internal/render"
	"github.com/phinze/niceview/internal/status"
	"github.com/phinze/niceview/internal/widget"
)

// Listener turns events of some kinds into a typed delta and folds it into
// every registered widget.
type Listener[T any] struct {
	Name    string
	Kinds   []event.Kind
	Regions render.Region

	// Extract reads the delta. It is called with a nil event for the initial
	// fetch and must not block.
	Extract func(event.Event) T
	Apply   func(status.State, T) status.State
}

// Register subscribes l on bus and primes every widget already in reg with
// an initial fetch. Widgets must be created before their listeners are
// registered.
func Register[T any](bus *event.Bus, reg *widget.Registry, l Listener[T]) {
	bus.Subscribe(func(e event.Event) {
		l.Notify(reg, e)
	}, l.Kinds...)
	l.Notify(reg, nil)
}

// Notify extracts the delta for e and applies it to every widget.
func (l Listener[T]) Notify(reg *widget.Registry, e event.Event) {
	delta := l.Extract(e)
	apply := func(s status.State) status.State {
		return l.Apply(s, delta)
	}
	reg.Each(func(w *widget.Widget) {
		w.Update(apply, l.Regions)
	})
}

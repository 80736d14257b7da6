package widget

import "errors"

// ErrRegistryFull is returned when registering beyond the registry capacity.
var ErrRegistryFull = errors.New("widget registry full")

// Registry is an append-only list of live widgets with a fixed capacity.
type Registry struct {
	widgets []*Widget
}

// NewRegistry creates a registry holding at most capacity widgets.
func NewRegistry(capacity int) *Registry {
	if capacity < 1 {
		capacity = 1
	}
	return &Registry{widgets: make([]*Widget, 0, capacity)}
}

// Register adds w.
func (r *Registry) Register(w *Widget) error {
	if len(r.widgets) == cap(r.widgets) {
		return ErrRegistryFull
	}
	r.widgets = append(r.widgets, w)
	return nil
}

// Each calls fn for every widget in registration order.
func (r *Registry) Each(fn func(*Widget)) {
	for _, w := range r.widgets {
		fn(w)
	}
}

// Len returns the number of registered widgets.
func (r *Registry) Len() int {
	return len(r.widgets)
}

// Cap returns the registry capacity.
func (r *Registry) Cap() int {
	return cap(r.widgets)
}

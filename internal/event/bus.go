package event

import (
	"context"
	"log"
	"sync"
)

// Handler reacts to a single event. Handlers run on the bus goroutine and
// must not block.
type Handler func(Event)

// Bus is a bounded event queue drained by a single goroutine.
//
// Producers on any goroutine call Post. Run delivers events one at a time to
// the handlers subscribed to their kind, so handlers never run concurrently.
type Bus struct {
	queue chan Event

	mu       sync.RWMutex
	handlers map[Kind][]Handler
}

// NewBus creates a bus that buffers up to depth undelivered events.
func NewBus(depth int) *Bus {
	if depth < 1 {
		depth = 1
	}
	return &Bus{
		queue:    make(chan Event, depth),
		handlers: make(map[Kind][]Handler),
	}
}

// Subscribe registers h for every kind in kinds.
func (b *Bus) Subscribe(h Handler, kinds ...Kind) {
	b.mu.Lock()
	defer b.mu.Unlock()

	for _, k := range kinds {
		b.handlers[k] = append(b.handlers[k], h)
	}
}

// Post enqueues e without blocking. It returns false when the queue is full
// and the event was dropped.
func (b *Bus) Post(e Event) bool {
	select {
	case b.queue <- e:
		return true
	default:
		log.Printf("Event queue full, dropping %s", e.Kind())
		return false
	}
}

// Dispatch delivers e synchronously to its handlers in subscription order.
// A panicking handler is logged and skipped.
func (b *Bus) Dispatch(e Event) {
	b.mu.RLock()
	handlers := b.handlers[e.Kind()]
	b.mu.RUnlock()

	for _, h := range handlers {
		b.call(h, e)
	}
}

func (b *Bus) call(h Handler, e Event) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("Handler for %s panicked: %v", e.Kind(), r)
		}
	}()
	h(e)
}

// Run drains the queue until ctx is cancelled. after, when non-nil, is called
// once each event has been dispatched.
func (b *Bus) Run(ctx context.Context, after func(Event)) {
	for {
		select {
		case <-ctx.Done():
			return
		case e := <-b.queue:
			b.Dispatch(e)
			if after != nil {
				after(e)
			}
		}
	}
}

// Pending returns the number of queued events.
func (b *Bus) Pending() int {
	return len(b.queue)
}

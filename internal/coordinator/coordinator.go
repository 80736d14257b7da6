// Package coordinator manages module lifecycle, routes status events to the
// widgets and pushes composited frames to the display sinks.
package coordinator

import (
	"context"
	"log"
	"sync"

	"github.com/phinze/niceview/internal/display"
	"github.com/phinze/niceview/internal/event"
	"github.com/phinze/niceview/internal/module"
	"github.com/phinze/niceview/internal/render"
	"github.com/phinze/niceview/internal/widget"
)

// Coordinator owns the event bus, the widget registry and the screen the
// widgets draw on.
type Coordinator struct {
	bus      *event.Bus
	screen   *display.Screen
	registry *widget.Registry
	modules  []module.Module

	// Sinks are called from the bus goroutine.
	sinks []display.Sink

	// Lifecycle
	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup

	mu sync.RWMutex
}

// New creates a Coordinator.
func New(bus *event.Bus, screen *display.Screen, registry *widget.Registry) *Coordinator {
	return &Coordinator{
		bus:      bus,
		screen:   screen,
		registry: registry,
		modules:  make([]module.Module, 0),
	}
}

// RegisterModule registers a source module. Must be called before Start.
func (c *Coordinator) RegisterModule(m module.Module) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.modules = append(c.modules, m)
}

// AddSink adds a display backend. Must be called before Start.
func (c *Coordinator) AddSink(s display.Sink) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.sinks = append(c.sinks, s)
}

// Start initializes all modules, presents the initial frame and dispatches
// events until ctx is cancelled.
func (c *Coordinator) Start(ctx context.Context) error {
	c.ctx, c.cancel = context.WithCancel(ctx)

	for _, m := range c.modules {
		if err := m.Init(c.ctx, c.bus); err != nil {
			return err
		}
		log.Printf("Module %s initialized", m.ID())
	}

	c.Flush()

	c.wg.Add(1)
	go func() {
		defer c.wg.Done()
		c.bus.Run(c.ctx, c.afterDispatch)
	}()

	<-c.ctx.Done()
	return nil
}

// Stop shuts down all modules and waits for the dispatch loop to exit.
func (c *Coordinator) Stop() error {
	if c.cancel != nil {
		c.cancel()
	}

	for _, m := range c.modules {
		if err := m.Stop(); err != nil {
			log.Printf("Failed to stop module %s: %v", m.ID(), err)
		}
	}

	c.wg.Wait()
	return nil
}

// afterDispatch flushes once the queue has drained, so a burst of events
// produces a single frame.
func (c *Coordinator) afterDispatch(event.Event) {
	if c.bus.Pending() > 0 {
		return
	}
	c.Flush()
}

// Flush composites and presents a frame if any widget redrew since the last
// flush. It reports whether a frame was presented.
func (c *Coordinator) Flush() bool {
	var dirty render.Region
	c.registry.Each(func(w *widget.Widget) {
		dirty |= w.TakePending()
	})
	if dirty == render.None {
		return false
	}

	frame := c.screen.Composite()

	c.mu.RLock()
	defer c.mu.RUnlock()
	for _, s := range c.sinks {
		if err := s.Present(frame); err != nil {
			log.Printf("Failed to present frame: %v", err)
		}
	}
	return true
}

// Bus returns the event bus.
func (c *Coordinator) Bus() *event.Bus {
	return c.bus
}

// Registry returns the widget registry.
func (c *Coordinator) Registry() *widget.Registry {
	return c.registry
}

// Screen returns the screen widgets are composited on.
func (c *Coordinator) Screen() *display.Screen {
	return c.screen
}

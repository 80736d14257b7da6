// Package app assembles the status display pipeline around a simulated
// keyboard. The commands only differ in the sinks they attach.
package app

import (
	"fmt"
	"log"
	"time"

	"github.com/phinze/niceview/internal/config"
	"github.com/phinze/niceview/internal/coordinator"
	"github.com/phinze/niceview/internal/display"
	"github.com/phinze/niceview/internal/event"
	"github.com/phinze/niceview/internal/modules/sim"
	"github.com/phinze/niceview/internal/render"
	"github.com/phinze/niceview/internal/widget"
)

// QueueDepth is the event bus capacity.
const QueueDepth = 64

// App is a fully wired display stack.
type App struct {
	Config      config.Config
	Keyboard    *sim.Keyboard
	Coordinator *coordinator.Coordinator
	Widgets     []*widget.Widget

	listening bool
}

// New builds the renderer, one widget per configured display and the
// coordinator. tick drives the keyboard simulation; zero disables it.
func New(cfg config.Config, tick time.Duration) (*App, error) {
	r, err := render.Load(cfg.RenderOptions(), cfg.Font)
	if err != nil {
		return nil, fmt.Errorf("failed to load renderer: %w", err)
	}

	screen := display.NewScreen(display.NewPalette(cfg.Inverted))
	reg := widget.NewRegistry(cfg.Displays)
	widgets := make([]*widget.Widget, 0, cfg.Displays)
	for i := 0; i < cfg.Displays; i++ {
		w, err := widget.New(screen, reg, r, widget.WithRotation(cfg.Rotation))
		if err != nil {
			return nil, fmt.Errorf("failed to create widget %d: %w", i, err)
		}
		widgets = append(widgets, w)
	}
	log.Printf("Created %d of %d displays", reg.Len(), reg.Cap())

	kb := sim.New(sim.Config{
		Layers:   cfg.Layers,
		Profiles: cfg.Profiles,
		Tick:     tick,
	})

	coord := coordinator.New(event.NewBus(QueueDepth), screen, reg)
	coord.RegisterModule(kb)

	return &App{
		Config:      cfg,
		Keyboard:    kb,
		Coordinator: coord,
		Widgets:     widgets,
	}, nil
}

// Listen registers the status listeners, priming every widget from the
// keyboard's current state. Later calls do nothing.
func (a *App) Listen() {
	if a.listening {
		return
	}
	a.listening = true
	coordinator.RegisterStatusListeners(a.Coordinator.Bus(), a.Coordinator.Registry(), coordinator.Sources{
		Power:        a.Keyboard,
		Connectivity: a.Keyboard,
		Keymap:       a.Keyboard,
		TypingSpeed:  a.Keyboard,
	})
}

// Trace logs every event of the named kinds, using the names event kinds
// print as, e.g. "layer_state_changed".
func (a *App) Trace(names ...string) error {
	kinds := make([]event.Kind, 0, len(names))
	for _, name := range names {
		k := event.ParseKind(name)
		if k == 0 {
			return fmt.Errorf("unknown event kind %q", name)
		}
		kinds = append(kinds, k)
	}
	a.Coordinator.Bus().Subscribe(func(e event.Event) {
		log.Printf("Event %s: %+v", e.Kind(), e)
	}, kinds...)
	return nil
}

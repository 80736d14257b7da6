// Package widget ties one status state to its three region canvases and the
// screen object they are composited through.
package widget

import (
	"github.com/phinze/niceview/internal/canvas"
	"github.com/phinze/niceview/internal/display"
	"github.com/phinze/niceview/internal/render"
	"github.com/phinze/niceview/internal/status"
)

// Renderer draws regions and decides which ones a state change affects.
// *render.Renderer implements it.
type Renderer interface {
	Draw(region render.Region, c *canvas.Canvas, s status.State)
	Dirty(prev, next status.State) render.Region
}

// Placement of each region canvas on the panel, in composite order.
var placements = [len(render.Regions)]struct {
	align  display.Align
	dx, dy int
}{
	{display.TopRight, 0, 0},
	{display.TopRight, -38, 0},
	{display.TopLeft, -24, 0},
}

// Widget is one status display.
type Widget struct {
	renderer Renderer
	rotation canvas.Rotation

	state    status.State
	canvases [len(render.Regions)]*canvas.Canvas
	scratch  *canvas.Canvas
	root     *display.Object

	draws   [len(render.Regions)]int
	pending render.Region
}

// Option configures a Widget.
type Option func(*Widget)

// WithRotation sets the rotation applied to every region after drawing.
// The default is a quarter turn clockwise, matching the panel mounting.
func WithRotation(r canvas.Rotation) Option {
	return func(w *Widget) {
		w.rotation = r
	}
}

// New creates a widget on parent, registers it in reg and draws every region
// once.
func New(parent *display.Screen, reg *Registry, r Renderer, opts ...Option) (*Widget, error) {
	w := &Widget{
		renderer: r,
		rotation: canvas.Rotate90,
		scratch:  canvas.New(),
	}
	for _, opt := range opts {
		opt(w)
	}
	if err := reg.Register(w); err != nil {
		return nil, err
	}

	w.root = parent.NewObject()
	for i := range w.canvases {
		w.canvases[i] = canvas.New()
		p := placements[i]
		w.root.Attach(w.canvases[i].Image(), p.align, p.dx, p.dy)
	}

	w.Redraw(render.All)
	return w, nil
}

// Root returns the screen object holding the widget's canvases.
func (w *Widget) Root() *display.Object {
	return w.root
}

// State returns the current state.
func (w *Widget) State() status.State {
	return w.state
}

// Canvas returns the canvas backing a single region.
func (w *Widget) Canvas(region render.Region) *canvas.Canvas {
	i := region.Index()
	if i < 0 {
		return nil
	}
	return w.canvases[i]
}

// Update folds apply into the state and redraws the declared regions whose
// inputs changed. It returns the regions redrawn.
func (w *Widget) Update(apply func(status.State) status.State, declared render.Region) render.Region {
	prev := w.state
	w.state = apply(prev)
	dirty := declared & w.renderer.Dirty(prev, w.state)
	w.Redraw(dirty)
	return dirty
}

// Redraw draws and rotates the given regions from the current state.
func (w *Widget) Redraw(regions render.Region) {
	for i, region := range render.Regions {
		if regions&region == 0 {
			continue
		}
		c := w.canvases[i]
		w.renderer.Draw(region, c, w.state)
		canvas.RotateInPlace(c.Image(), w.scratch.Image(), w.rotation)
		w.draws[i]++
		w.pending |= region
	}
}

// Draws returns how many times region has been drawn.
func (w *Widget) Draws(region render.Region) int {
	i := region.Index()
	if i < 0 {
		return 0
	}
	return w.draws[i]
}

// TakePending returns the regions drawn since the last call and clears them.
func (w *Widget) TakePending() render.Region {
	p := w.pending
	w.pending = render.None
	return p
}

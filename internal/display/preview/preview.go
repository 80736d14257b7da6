//go:build !tinygo

// Package preview shows frames in a desktop window.
package preview

import (
	"image"
	"sync"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/phinze/niceview/internal/display"
)

// Binding runs Action when Key is pressed in the window.
type Binding struct {
	Key    ebiten.Key
	Help   string
	Action func()
}

// Window is an ebiten game that draws the latest presented frame.
type Window struct {
	title    string
	scale    int
	bindings []Binding

	mu    sync.Mutex
	frame *display.Frame

	rgba *image.RGBA
	img  *ebiten.Image
}

// New creates a window. Escape closes it.
func New(title string, scale int, palette display.Palette, bindings ...Binding) *Window {
	if scale < 1 {
		scale = 1
	}
	return &Window{
		title:    title,
		scale:    scale,
		bindings: bindings,
		frame:    display.NewFrame(palette),
		rgba:     image.NewRGBA(image.Rect(0, 0, display.Width, display.Height)),
	}
}

// Present implements display.Sink.
func (w *Window) Present(f *display.Frame) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	f.CopyTo(w.frame)
	return nil
}

// Run opens the window and blocks until it is closed.
func (w *Window) Run() error {
	ebiten.SetWindowTitle(w.title)
	ebiten.SetWindowSize(display.Width*w.scale, display.Height*w.scale)
	ebiten.SetTPS(30)
	return ebiten.RunGame(w)
}

func (w *Window) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	for _, b := range w.bindings {
		if inpututil.IsKeyJustPressed(b.Key) {
			b.Action()
		}
	}
	return nil
}

func (w *Window) Draw(screen *ebiten.Image) {
	if w.img == nil {
		w.img = ebiten.NewImage(display.Width, display.Height)
	}

	w.mu.Lock()
	w.frame.RGBA(w.rgba)
	w.mu.Unlock()

	w.img.WritePixels(w.rgba.Pix)
	screen.DrawImage(w.img, nil)
}

func (w *Window) Layout(outsideWidth, outsideHeight int) (int, int) {
	return display.Width, display.Height
}

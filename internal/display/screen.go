package display

import (
	"image"

	"periph.io/x/devices/v3/ssd1306/image1bit"
)

// Align selects the panel corner an attached buffer is positioned against.
type Align uint8

const (
	TopLeft Align = iota
	TopRight
)

type layer struct {
	img *image1bit.VerticalLSB
	at  image.Point
}

// Object is a group of 1-bit buffers placed on the screen. Buffers are
// referenced, not copied, so drawing into them shows up on the next
// composite.
type Object struct {
	layers []layer
}

// Attach places img on the panel. The offset is applied after alignment, so
// Attach(img, TopRight, -38, 0) puts img 38 pixels left of the right edge.
func (o *Object) Attach(img *image1bit.VerticalLSB, align Align, dx, dy int) {
	at := image.Pt(dx, dy)
	if align == TopRight {
		at.X += Width - img.Rect.Dx()
	}
	o.layers = append(o.layers, layer{img: img, at: at})
}

// Screen is the root surface. Objects are composited in creation order and
// later layers overwrite earlier ones where they overlap.
type Screen struct {
	objects []*Object
	frame   *Frame
}

// NewScreen creates a screen drawing with p.
func NewScreen(p Palette) *Screen {
	return &Screen{frame: NewFrame(p)}
}

// NewObject creates an empty object on the screen.
func (s *Screen) NewObject() *Object {
	o := &Object{}
	s.objects = append(s.objects, o)
	return o
}

// Palette returns the screen palette.
func (s *Screen) Palette() Palette {
	return s.frame.Palette
}

// Composite redraws the frame from every attached buffer and returns it. The
// returned frame is owned by the screen and reused on the next call.
func (s *Screen) Composite() *Frame {
	bits := s.frame.Bits
	for i := range bits.Pix {
		bits.Pix[i] = 0
	}
	for _, o := range s.objects {
		for _, l := range o.layers {
			blit(bits, l.img, l.at)
		}
	}
	s.frame.Seq++
	return s.frame
}

func blit(dst, src *image1bit.VerticalLSB, at image.Point) {
	r := src.Rect.Sub(src.Rect.Min).Add(at).Intersect(dst.Rect)
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			dst.SetBit(x, y, src.BitAt(x-at.X+src.Rect.Min.X, y-at.Y+src.Rect.Min.Y))
		}
	}
}

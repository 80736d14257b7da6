// Package display composites region canvases onto the 160x68 panel and hands
// finished frames to output backends.
package display

import (
	"image"
	"image/color"

	"golang.org/x/image/colornames"
	"golang.org/x/image/draw"
	"periph.io/x/devices/v3/ssd1306/image1bit"
)

// Panel geometry.
const (
	Width  = 160
	Height = 68
)

// Sink receives composited frames. Present must copy what it needs before
// returning; the frame is reused for the next composite.
type Sink interface {
	Present(f *Frame) error
}

// SinkFunc adapts a function to a Sink.
type SinkFunc func(f *Frame) error

// Present calls fn(f).
func (fn SinkFunc) Present(f *Frame) error {
	return fn(f)
}

// Palette maps the two pixel states to real colours.
type Palette struct {
	Foreground color.RGBA
	Background color.RGBA
}

// NewPalette returns black on white, or white on black when inverted.
func NewPalette(inverted bool) Palette {
	if inverted {
		return Palette{Foreground: colornames.White, Background: colornames.Black}
	}
	return Palette{Foreground: colornames.Black, Background: colornames.White}
}

// Color returns the colour of a pixel.
func (p Palette) Color(b image1bit.Bit) color.RGBA {
	if b {
		return p.Foreground
	}
	return p.Background
}

// Frame is one full panel image.
type Frame struct {
	Bits    *image1bit.VerticalLSB
	Palette Palette
	// Seq increases every time the frame content changes.
	Seq uint64
}

// NewFrame allocates a blank frame.
func NewFrame(p Palette) *Frame {
	return &Frame{
		Bits:    image1bit.NewVerticalLSB(image.Rect(0, 0, Width, Height)),
		Palette: p,
	}
}

// Bounds returns the frame rectangle.
func (f *Frame) Bounds() image.Rectangle {
	return f.Bits.Rect
}

// CopyTo copies the frame into dst, which must have the same size.
func (f *Frame) CopyTo(dst *Frame) {
	copy(dst.Bits.Pix, f.Bits.Pix)
	dst.Palette = f.Palette
	dst.Seq = f.Seq
}

// Clone returns a deep copy of the frame.
func (f *Frame) Clone() *Frame {
	c := NewFrame(f.Palette)
	f.CopyTo(c)
	return c
}

// RGBA writes the frame into dst using the palette. dst must be Width x Height.
func (f *Frame) RGBA(dst *image.RGBA) {
	for y := 0; y < Height; y++ {
		for x := 0; x < Width; x++ {
			dst.SetRGBA(dst.Rect.Min.X+x, dst.Rect.Min.Y+y, f.Palette.Color(f.Bits.BitAt(x, y)))
		}
	}
}

// Image returns the frame as a newly allocated RGBA image.
func (f *Frame) Image() *image.RGBA {
	img := image.NewRGBA(f.Bounds())
	f.RGBA(img)
	return img
}

// Scale draws the frame into r of dst with nearest-neighbour scaling, keeping
// pixels crisp. scratch must be a Width x Height RGBA buffer.
func (f *Frame) Scale(dst draw.Image, r image.Rectangle, scratch *image.RGBA) {
	f.RGBA(scratch)
	draw.NearestNeighbor.Scale(dst, r, scratch, scratch.Bounds(), draw.Src, nil)
}

// Package canvas provides the square 1-bit drawing surfaces the status regions
// are rendered into, plus the rotation applied before compositing.
package canvas

import (
	"image"
	"image/color"

	"periph.io/x/devices/v3/ssd1306/image1bit"
)

// Size is the edge length in pixels of every region canvas.
const Size = 68

// Bit is a single canvas pixel.
type Bit = image1bit.Bit

// Ink values. Ink is the foreground colour, Paper the background; the mapping
// to real colours happens at composite time.
const (
	Ink   = image1bit.On
	Paper = image1bit.Off
)

// Canvas is a square 1-bit pixel buffer.
type Canvas struct {
	img *image1bit.VerticalLSB
}

// New allocates a Size x Size canvas cleared to Paper.
func New() *Canvas {
	return &Canvas{img: image1bit.NewVerticalLSB(image.Rect(0, 0, Size, Size))}
}

// Image returns the backing buffer.
func (c *Canvas) Image() *image1bit.VerticalLSB {
	return c.img
}

// Bounds returns the canvas rectangle.
func (c *Canvas) Bounds() image.Rectangle {
	return c.img.Rect
}

// Fill sets every pixel to b.
func (c *Canvas) Fill(b image1bit.Bit) {
	v := byte(0)
	if b {
		v = 0xff
	}
	for i := range c.img.Pix {
		c.img.Pix[i] = v
	}
}

// Set sets a single pixel, ignoring coordinates outside the canvas.
func (c *Canvas) Set(x, y int, b image1bit.Bit) {
	if !(image.Point{x, y}).In(c.img.Rect) {
		return
	}
	c.img.SetBit(x, y, b)
}

// At reports the pixel at x, y. Out of range reads return Paper.
func (c *Canvas) At(x, y int) image1bit.Bit {
	if !(image.Point{x, y}).In(c.img.Rect) {
		return Paper
	}
	return c.img.BitAt(x, y)
}

// FillRect fills the w x h rectangle at x, y, clipped to the canvas.
func (c *Canvas) FillRect(x, y, w, h int, b image1bit.Bit) {
	r := image.Rect(x, y, x+w, y+h).Intersect(c.img.Rect)
	for py := r.Min.Y; py < r.Max.Y; py++ {
		for px := r.Min.X; px < r.Max.X; px++ {
			c.img.SetBit(px, py, b)
		}
	}
}

// DrawMask paints b wherever mask has coverage of at least half, with the
// mask's origin placed at x, y.
func (c *Canvas) DrawMask(mask *image.Alpha, x, y int, b image1bit.Bit) {
	c.eachMaskPixel(mask, x, y, func(px, py int) {
		c.img.SetBit(px, py, b)
	})
}

// InvertMask flips every canvas pixel covered by mask, so the shape stays
// visible over both Ink and Paper.
func (c *Canvas) InvertMask(mask *image.Alpha, x, y int) {
	c.eachMaskPixel(mask, x, y, func(px, py int) {
		c.img.SetBit(px, py, !c.img.BitAt(px, py))
	})
}

func (c *Canvas) eachMaskPixel(mask *image.Alpha, x, y int, fn func(px, py int)) {
	mb := mask.Bounds()
	for my := mb.Min.Y; my < mb.Max.Y; my++ {
		py := y + my - mb.Min.Y
		if py < 0 || py >= Size {
			continue
		}
		for mx := mb.Min.X; mx < mb.Max.X; mx++ {
			px := x + mx - mb.Min.X
			if px < 0 || px >= Size {
				continue
			}
			if mask.AlphaAt(mx, my).A >= 0x80 {
				fn(px, py)
			}
		}
	}
}

// DrawImage copies src onto the canvas at x, y. inkOf decides which source
// colours become Ink.
func (c *Canvas) DrawImage(src image.Image, x, y int, inkOf func(color.Color) bool) {
	sb := src.Bounds()
	for sy := sb.Min.Y; sy < sb.Max.Y; sy++ {
		for sx := sb.Min.X; sx < sb.Max.X; sx++ {
			c.Set(x+sx-sb.Min.X, y+sy-sb.Min.Y, image1bit.Bit(inkOf(src.At(sx, sy))))
		}
	}
}

// Line draws a one pixel wide line using Bresenham's algorithm.
func (c *Canvas) Line(x0, y0, x1, y1 int, b image1bit.Bit) {
	dx := abs(x1 - x0)
	dy := -abs(y1 - y0)
	sx := 1
	if x0 >= x1 {
		sx = -1
	}
	sy := 1
	if y0 >= y1 {
		sy = -1
	}
	err := dx + dy

	for {
		c.Set(x0, y0, b)
		if x0 == x1 && y0 == y1 {
			break
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			err += dx
			y0 += sy
		}
	}
}

// Ring draws an annulus centred on cx, cy with outer radius r and the given
// stroke width. A width >= r produces a filled disc.
func (c *Canvas) Ring(cx, cy, r, width int, b image1bit.Bit) {
	inner := r - width
	if inner < 0 {
		inner = 0
	}
	outer2 := r * r
	inner2 := inner * inner
	for y := cy - r; y <= cy+r; y++ {
		for x := cx - r; x <= cx+r; x++ {
			d2 := (x-cx)*(x-cx) + (y-cy)*(y-cy)
			if d2 <= outer2 && (inner == 0 || d2 > inner2) {
				c.Set(x, y, b)
			}
		}
	}
}

// Equal reports whether two canvases hold the same pixels.
func (c *Canvas) Equal(o *Canvas) bool {
	return EqualBits(c.img, o.img)
}

// EqualBits compares two 1-bit images pixel by pixel.
func EqualBits(a, b *image1bit.VerticalLSB) bool {
	if a.Rect != b.Rect {
		return false
	}
	for y := a.Rect.Min.Y; y < a.Rect.Max.Y; y++ {
		for x := a.Rect.Min.X; x < a.Rect.Max.X; x++ {
			if a.BitAt(x, y) != b.BitAt(x, y) {
				return false
			}
		}
	}
	return true
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

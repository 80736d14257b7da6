package canvas

import (
	"fmt"

	"periph.io/x/devices/v3/ssd1306/image1bit"
)

// Rotation is a clockwise quarter-turn count expressed in degrees.
type Rotation int

const (
	Rotate0   Rotation = 0
	Rotate90  Rotation = 90
	Rotate180 Rotation = 180
	Rotate270 Rotation = 270
)

// ParseRotation validates a rotation in degrees.
func ParseRotation(deg int) (Rotation, error) {
	switch deg {
	case 0, 90, 180, 270:
		return Rotation(deg), nil
	case -90:
		return Rotate270, nil
	}
	return 0, fmt.Errorf("unsupported rotation %d (want 0, 90, 180 or 270)", deg)
}

// Inverse returns the rotation that undoes r.
func (r Rotation) Inverse() Rotation {
	return (360 - r) % 360
}

// Rotate writes src rotated clockwise by r into dst. Both buffers must be the
// same square size and must not alias. Rotate does not allocate.
func Rotate(dst, src *image1bit.VerticalLSB, r Rotation) {
	n := src.Rect.Dx()
	last := n - 1
	for y := 0; y < n; y++ {
		for x := 0; x < n; x++ {
			b := src.BitAt(x, y)
			switch r {
			case Rotate90:
				dst.SetBit(last-y, x, b)
			case Rotate180:
				dst.SetBit(last-x, last-y, b)
			case Rotate270:
				dst.SetBit(y, last-x, b)
			default:
				dst.SetBit(x, y, b)
			}
		}
	}
}

// RotateInPlace rotates buf by r, using scratch as the temporary copy.
// scratch must have the same geometry as buf.
func RotateInPlace(buf, scratch *image1bit.VerticalLSB, r Rotation) {
	if r == Rotate0 {
		return
	}
	copy(scratch.Pix, buf.Pix)
	Rotate(buf, scratch, r)
}

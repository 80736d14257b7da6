package canvas

import (
	"image"
	"image/color"
	"testing"

	"tinygo.org/x/drivers"
)

func count(c *Canvas) int {
	n := 0
	for y := 0; y < Size; y++ {
		for x := 0; x < Size; x++ {
			if c.At(x, y) == Ink {
				n++
			}
		}
	}
	return n
}

func TestFillRectClips(t *testing.T) {
	c := New()
	c.FillRect(-2, -2, 4, 4, Ink)
	if got := count(c); got != 4 {
		t.Fatalf("ink pixels = %d, want 4", got)
	}
	c.FillRect(Size-1, Size-1, 10, 10, Ink)
	if got := count(c); got != 5 {
		t.Fatalf("ink pixels = %d, want 5", got)
	}
}

func TestFillClearsEverything(t *testing.T) {
	c := New()
	c.Fill(Ink)
	if got := count(c); got != Size*Size {
		t.Fatalf("ink pixels after Fill(Ink) = %d, want %d", got, Size*Size)
	}
	c.Fill(Paper)
	if got := count(c); got != 0 {
		t.Fatalf("ink pixels after Fill(Paper) = %d, want 0", got)
	}
}

func TestDrawMaskThreshold(t *testing.T) {
	mask := image.NewAlpha(image.Rect(0, 0, 2, 1))
	mask.SetAlpha(0, 0, color.Alpha{A: 0xff})
	mask.SetAlpha(1, 0, color.Alpha{A: 0x20})

	c := New()
	c.DrawMask(mask, 10, 10, Ink)
	if c.At(10, 10) != Ink {
		t.Fatalf("opaque mask pixel not drawn")
	}
	if c.At(11, 10) != Paper {
		t.Fatalf("faint mask pixel drawn")
	}

	c.InvertMask(mask, 10, 10)
	if c.At(10, 10) != Paper {
		t.Fatalf("InvertMask did not flip covered pixel")
	}
}

func TestLineEndpoints(t *testing.T) {
	c := New()
	c.Line(2, 60, 65, 24, Ink)
	if c.At(2, 60) != Ink || c.At(65, 24) != Ink {
		t.Fatalf("line endpoints not drawn")
	}
}

func TestRingFilledDisc(t *testing.T) {
	c := New()
	c.Ring(34, 34, 9, 9, Ink)
	if c.At(34, 34) != Ink {
		t.Fatalf("filled ring centre not drawn")
	}

	o := New()
	o.Ring(34, 34, 13, 2, Ink)
	if o.At(34, 34) != Paper {
		t.Fatalf("outline ring centre drawn")
	}
	if o.At(34+13, 34) != Ink {
		t.Fatalf("outline ring edge not drawn")
	}
}

func TestDisplayerView(t *testing.T) {
	c := New()
	var d drivers.Displayer = c.Displayer()
	w, h := d.Size()
	if w != Size || h != Size {
		t.Fatalf("Size() = %d,%d, want %d,%d", w, h, Size, Size)
	}
	d.SetPixel(3, 4, InkRGBA)
	if c.At(3, 4) != Ink {
		t.Fatalf("SetPixel(InkRGBA) did not set ink")
	}
	d.SetPixel(3, 4, PaperRGBA)
	if c.At(3, 4) != Paper {
		t.Fatalf("SetPixel(PaperRGBA) did not clear")
	}
	d.SetPixel(-1, 200, InkRGBA)
}

package canvas

import (
	"image"
	"math/rand"
	"testing"

	"github.com/disintegration/imaging"
	"periph.io/x/devices/v3/ssd1306/image1bit"
)

func randomCanvas(seed int64) *Canvas {
	rng := rand.New(rand.NewSource(seed))
	c := New()
	for y := 0; y < Size; y++ {
		for x := 0; x < Size; x++ {
			c.Set(x, y, image1bit.Bit(rng.Intn(2) == 1))
		}
	}
	return c
}

func rotated(src *Canvas, r Rotation) *Canvas {
	dst := New()
	Rotate(dst.Image(), src.Image(), r)
	return dst
}

func TestRotateRoundTrip(t *testing.T) {
	src := randomCanvas(1)
	for _, r := range []Rotation{Rotate0, Rotate90, Rotate180, Rotate270} {
		back := rotated(rotated(src, r), r.Inverse())
		if !back.Equal(src) {
			t.Fatalf("Rotate(%d) then Rotate(%d) did not restore the buffer", r, r.Inverse())
		}
	}
}

func TestRotateComposition(t *testing.T) {
	src := randomCanvas(2)

	twice90 := rotated(rotated(src, Rotate90), Rotate90)
	if !twice90.Equal(rotated(src, Rotate180)) {
		t.Fatalf("two 90 degree rotations differ from one 180 degree rotation")
	}

	thrice90 := rotated(twice90, Rotate90)
	if !thrice90.Equal(rotated(src, Rotate270)) {
		t.Fatalf("three 90 degree rotations differ from one 270 degree rotation")
	}
}

func TestRotate90Clockwise(t *testing.T) {
	src := New()
	src.Set(0, 0, Ink)
	src.Set(5, 2, Ink)

	dst := rotated(src, Rotate90)
	if dst.At(Size-1, 0) != Ink {
		t.Fatalf("top-left pixel did not move to top-right")
	}
	if dst.At(Size-1-2, 5) != Ink {
		t.Fatalf("pixel (5,2) did not move to (%d,5)", Size-1-2)
	}
}

// imaging.Rotate270 turns counter-clockwise by 270, which is 90 clockwise.
func TestRotateMatchesImaging(t *testing.T) {
	src := randomCanvas(3)
	want := imaging.Rotate270(src.Image())
	got := rotated(src, Rotate90)

	for y := 0; y < Size; y++ {
		for x := 0; x < Size; x++ {
			r, _, _, _ := want.At(x, y).RGBA()
			if image1bit.Bit(r >= 0x8000) != got.At(x, y) {
				t.Fatalf("pixel (%d,%d) differs from imaging.Rotate270", x, y)
			}
		}
	}
}

func TestRotateInPlace(t *testing.T) {
	src := randomCanvas(4)
	want := rotated(src, Rotate270)

	buf := randomCanvas(4)
	scratch := New()
	RotateInPlace(buf.Image(), scratch.Image(), Rotate270)
	if !buf.Equal(want) {
		t.Fatalf("RotateInPlace result differs from Rotate")
	}
}

func TestRotateInPlaceDoesNotAllocate(t *testing.T) {
	buf := randomCanvas(5)
	scratch := New()
	allocs := testing.AllocsPerRun(20, func() {
		RotateInPlace(buf.Image(), scratch.Image(), Rotate90)
	})
	if allocs != 0 {
		t.Fatalf("RotateInPlace allocated %.1f times per run, want 0", allocs)
	}
}

func TestParseRotation(t *testing.T) {
	tests := []struct {
		deg     int
		want    Rotation
		wantErr bool
	}{
		{0, Rotate0, false},
		{90, Rotate90, false},
		{180, Rotate180, false},
		{270, Rotate270, false},
		{-90, Rotate270, false},
		{45, 0, true},
	}
	for _, tt := range tests {
		got, err := ParseRotation(tt.deg)
		if (err != nil) != tt.wantErr {
			t.Fatalf("ParseRotation(%d) error = %v, wantErr %v", tt.deg, err, tt.wantErr)
		}
		if got != tt.want {
			t.Fatalf("ParseRotation(%d) = %d, want %d", tt.deg, got, tt.want)
		}
	}
}

func TestRotateIgnoresImageOrigin(t *testing.T) {
	c := New()
	if c.Bounds() != image.Rect(0, 0, Size, Size) {
		t.Fatalf("Bounds() = %v, want origin-based %dx%d", c.Bounds(), Size, Size)
	}
}

package panel

import (
	"errors"
	"image/color"
	"testing"

	"github.com/phinze/niceview/internal/display"
	"periph.io/x/devices/v3/ssd1306/image1bit"
)

type fakeDisplayer struct {
	w, h     int16
	pix      map[[2]int16]color.RGBA
	flushes  int
	flushErr error
}

func newFake(w, h int16) *fakeDisplayer {
	return &fakeDisplayer{w: w, h: h, pix: make(map[[2]int16]color.RGBA)}
}

func (f *fakeDisplayer) Size() (int16, int16) { return f.w, f.h }

func (f *fakeDisplayer) SetPixel(x, y int16, c color.RGBA) {
	if x < 0 || y < 0 || x >= f.w || y >= f.h {
		panic("pixel out of range")
	}
	f.pix[[2]int16{x, y}] = c
}

func (f *fakeDisplayer) Display() error {
	f.flushes++
	return f.flushErr
}

func TestPresentWritesPalette(t *testing.T) {
	dev := newFake(display.Width, display.Height)
	s := New(dev)

	f := display.NewFrame(display.NewPalette(false))
	f.Bits.SetBit(5, 6, image1bit.On)
	f.Seq = 1

	if err := s.Present(f); err != nil {
		t.Fatalf("Present() error = %v", err)
	}
	if got := dev.pix[[2]int16{5, 6}]; got != f.Palette.Foreground {
		t.Fatalf("pixel (5,6) = %v, want foreground", got)
	}
	if got := dev.pix[[2]int16{0, 0}]; got != f.Palette.Background {
		t.Fatalf("pixel (0,0) = %v, want background", got)
	}
	if dev.flushes != 1 {
		t.Fatalf("flushes = %d, want 1", dev.flushes)
	}
}

func TestPresentClipsToDriverSize(t *testing.T) {
	dev := newFake(32, 16)
	f := display.NewFrame(display.NewPalette(true))
	f.Seq = 1
	if err := New(dev).Present(f); err != nil {
		t.Fatalf("Present() error = %v", err)
	}
	if len(dev.pix) != 32*16 {
		t.Fatalf("wrote %d pixels, want %d", len(dev.pix), 32*16)
	}
}

func TestPresentSkipsRepeatsAndRetriesErrors(t *testing.T) {
	dev := newFake(display.Width, display.Height)
	s := New(dev)
	f := display.NewFrame(display.NewPalette(false))
	f.Seq = 3

	dev.flushErr = errors.New("bus busy")
	if err := s.Present(f); err == nil {
		t.Fatal("Present() error = nil, want flush error")
	}
	dev.flushErr = nil
	if err := s.Present(f); err != nil {
		t.Fatalf("Present() error = %v", err)
	}
	if err := s.Present(f); err != nil {
		t.Fatalf("Present() error = %v", err)
	}
	if dev.flushes != 2 {
		t.Fatalf("flushes = %d, want 2", dev.flushes)
	}
}

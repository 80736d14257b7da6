// Package panel pushes frames to a tinygo display driver.
package panel

import (
	"github.com/phinze/niceview/internal/display"
	"tinygo.org/x/drivers"
)

// Sink writes frames to any drivers.Displayer. Pixels outside the driver's
// reported size are dropped.
type Sink struct {
	dev     drivers.Displayer
	lastSeq uint64
}

// New wraps dev.
func New(dev drivers.Displayer) *Sink {
	return &Sink{dev: dev}
}

// Present writes f and flushes the driver. Frames already presented are
// skipped.
func (s *Sink) Present(f *display.Frame) error {
	if f.Seq != 0 && f.Seq == s.lastSeq {
		return nil
	}
	w, h := s.dev.Size()
	maxX := min(int(w), display.Width)
	maxY := min(int(h), display.Height)
	for y := 0; y < maxY; y++ {
		for x := 0; x < maxX; x++ {
			s.dev.SetPixel(int16(x), int16(y), f.Palette.Color(f.Bits.BitAt(x, y)))
		}
	}
	if err := s.dev.Display(); err != nil {
		return err
	}
	s.lastSeq = f.Seq
	return nil
}

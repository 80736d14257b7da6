// Package snapshot saves frames as image files.
package snapshot

import (
	"fmt"
	"image"

	"github.com/disintegration/imaging"
	"github.com/phinze/niceview/internal/display"
)

// Image returns f upscaled by scale with hard pixel edges.
func Image(f *display.Frame, scale int) image.Image {
	img := f.Image()
	if scale <= 1 {
		return img
	}
	return imaging.Resize(img, display.Width*scale, display.Height*scale, imaging.NearestNeighbor)
}

// Write saves f to path. The format follows the file extension.
func Write(f *display.Frame, path string, scale int) error {
	if err := imaging.Save(Image(f, scale), path); err != nil {
		return fmt.Errorf("failed to save snapshot: %w", err)
	}
	return nil
}

// Sink saves every new frame to Path, overwriting the previous one.
type Sink struct {
	Path  string
	Scale int

	lastSeq uint64
}

// Present implements display.Sink.
func (s *Sink) Present(f *display.Frame) error {
	if f.Seq != 0 && f.Seq == s.lastSeq {
		return nil
	}
	if err := Write(f, s.Path, s.Scale); err != nil {
		return err
	}
	s.lastSeq = f.Seq
	return nil
}

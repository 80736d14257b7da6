// Package deck mirrors frames onto a Stream Deck touch strip.
package deck

import (
	"errors"
	"fmt"
	"image"
	"image/draw"

	"github.com/phinze/niceview/internal/display"
	"golang.org/x/image/colornames"
	"rafaelmartins.com/p/streamdeck"
)

// ErrNoStrip is returned for devices without a touch strip.
var ErrNoStrip = errors.New("device has no touch strip")

// Sink draws frames centred on the touch strip.
type Sink struct {
	device  *streamdeck.Device
	strip   *image.RGBA
	scratch *image.RGBA
	target  image.Rectangle
	lastSeq uint64
}

// New creates a sink for device.
func New(device *streamdeck.Device) (*Sink, error) {
	if !device.GetTouchStripSupported() {
		return nil, ErrNoStrip
	}
	rect, err := device.GetTouchStripImageRectangle()
	if err != nil {
		return nil, fmt.Errorf("failed to get touch strip size: %w", err)
	}
	return &Sink{
		device:  device,
		strip:   image.NewRGBA(rect),
		scratch: image.NewRGBA(image.Rect(0, 0, display.Width, display.Height)),
		target:  Fit(rect),
	}, nil
}

// Fit returns the largest rectangle with the panel's aspect ratio centred in
// area. Integer scale factors are preferred so pixels stay square.
func Fit(area image.Rectangle) image.Rectangle {
	scale := min(area.Dx()/display.Width, area.Dy()/display.Height)
	w, h := display.Width*scale, display.Height*scale
	if scale == 0 {
		h = area.Dy()
		w = display.Width * h / display.Height
		if w > area.Dx() {
			w = area.Dx()
			h = display.Height * w / display.Width
		}
	}
	origin := area.Min.Add(image.Pt((area.Dx()-w)/2, (area.Dy()-h)/2))
	return image.Rectangle{Min: origin, Max: origin.Add(image.Pt(w, h))}
}

// Present implements display.Sink.
func (s *Sink) Present(f *display.Frame) error {
	if f.Seq != 0 && f.Seq == s.lastSeq {
		return nil
	}
	draw.Draw(s.strip, s.strip.Bounds(), image.NewUniform(colornames.Black), image.Point{}, draw.Src)
	f.Scale(s.strip, s.target, s.scratch)
	if err := s.device.SetTouchStripImage(s.strip); err != nil {
		return fmt.Errorf("failed to set touch strip image: %w", err)
	}
	s.lastSeq = f.Seq
	return nil
}

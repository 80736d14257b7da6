package snapshot

import (
	"image/color"
	"path/filepath"
	"testing"

	"github.com/disintegration/imaging"
	"github.com/phinze/niceview/internal/display"
	"periph.io/x/devices/v3/ssd1306/image1bit"
)

func TestWriteScalesWithHardEdges(t *testing.T) {
	f := display.NewFrame(display.NewPalette(false))
	f.Bits.SetBit(2, 1, image1bit.On)

	path := filepath.Join(t.TempDir(), "frame.png")
	if err := Write(f, path, 4); err != nil {
		t.Fatalf("Write() error = %v", err)
	}

	img, err := imaging.Open(path)
	if err != nil {
		t.Fatalf("imaging.Open() error = %v", err)
	}
	if got := img.Bounds().Size(); got.X != display.Width*4 || got.Y != display.Height*4 {
		t.Fatalf("size = %v, want %dx%d", got, display.Width*4, display.Height*4)
	}

	black := color.NRGBAModel.Convert(color.Black)
	white := color.NRGBAModel.Convert(color.White)
	for _, tt := range []struct {
		x, y int
		want color.Color
	}{
		{8, 4, black},
		{11, 7, black},
		{12, 4, white},
		{7, 4, white},
	} {
		if got := color.NRGBAModel.Convert(img.At(tt.x, tt.y)); got != tt.want {
			t.Fatalf("pixel (%d,%d) = %v, want %v", tt.x, tt.y, got, tt.want)
		}
	}
}

func TestImageUnscaled(t *testing.T) {
	f := display.NewFrame(display.NewPalette(true))
	img := Image(f, 1)
	if img.Bounds() != f.Bounds() {
		t.Fatalf("Image(f, 1) bounds = %v, want %v", img.Bounds(), f.Bounds())
	}
}

func TestSinkSkipsRepeatedFrames(t *testing.T) {
	s := &Sink{Path: filepath.Join(t.TempDir(), "missing", "frame.png"), Scale: 1}
	f := display.NewFrame(display.NewPalette(false))
	f.Seq = 1

	if err := s.Present(f); err == nil {
		t.Fatal("Present() error = nil for an unwritable path")
	}

	s.Path = filepath.Join(t.TempDir(), "frame.png")
	if err := s.Present(f); err != nil {
		t.Fatalf("Present() error = %v", err)
	}
	s.Path = filepath.Join(t.TempDir(), "missing", "again.png")
	if err := s.Present(f); err != nil {
		t.Fatalf("Present() of a repeated frame error = %v, want nil", err)
	}
}

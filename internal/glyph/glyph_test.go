package glyph

import (
	"image"
	"testing"
)

func coverage(m *image.Alpha) int {
	n := 0
	for _, a := range m.Pix {
		if a >= 0x80 {
			n++
		}
	}
	return n
}

func TestLoadRendersEveryIcon(t *testing.T) {
	s, err := Load(16)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	tests := []struct {
		g    Glyph
		size image.Point
	}{
		{USB, image.Pt(16, 16)},
		{Bluetooth, image.Pt(16, 16)},
		{Disconnected, image.Pt(16, 16)},
		{Pairing, image.Pt(16, 16)},
		{Bolt, image.Pt(BoltWidth, BoltHeight)},
	}
	for _, tt := range tests {
		t.Run(tt.g.String(), func(t *testing.T) {
			m := s.Mask(tt.g)
			if m == nil {
				t.Fatalf("Mask(%s) = nil", tt.g)
			}
			if got := m.Bounds().Size(); got != tt.size {
				t.Fatalf("Mask(%s) size = %v, want %v", tt.g, got, tt.size)
			}
			if coverage(m) == 0 {
				t.Fatalf("Mask(%s) is empty", tt.g)
			}
		})
	}

	if s.Mask(None) != nil {
		t.Fatalf("Mask(None) != nil")
	}
}

func TestIconsAreDistinct(t *testing.T) {
	s, err := Load(16)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	seen := map[string]Glyph{}
	for _, g := range []Glyph{USB, Bluetooth, Disconnected, Pairing} {
		key := string(s.Mask(g).Pix)
		if prev, ok := seen[key]; ok {
			t.Fatalf("%s and %s rasterise identically", prev, g)
		}
		seen[key] = g
	}
}

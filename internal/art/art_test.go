package art

import (
	"errors"
	"image"
	"image/color"
	"testing"
)

func TestReactionDiffusion(t *testing.T) {
	img, err := ReactionDiffusion()
	if err != nil {
		t.Fatalf("ReactionDiffusion() error = %v", err)
	}
	if got := img.Bounds(); got != image.Rect(0, 0, Width, Height) {
		t.Fatalf("Bounds() = %v, want 68x68", got)
	}

	white := color.RGBA{0xff, 0xff, 0xff, 0xff}
	black := color.RGBA{0, 0, 0, 0xff}
	if img.Palette[0] != white || img.Palette[1] != black {
		t.Fatalf("palette = %v, want [white black]", img.Palette)
	}

	// First data byte is 0xe1: three set, four clear, one set.
	want := []uint8{1, 1, 1, 0, 0, 0, 0, 1}
	for x, idx := range want {
		if got := img.ColorIndexAt(x, 0); got != idx {
			t.Fatalf("ColorIndexAt(%d, 0) = %d, want %d", x, got, idx)
		}
	}
}

func TestDecodeIndexed1BitShort(t *testing.T) {
	_, err := DecodeIndexed1Bit(make([]byte, 10), 68, 68)
	if !errors.Is(err, ErrShortData) {
		t.Fatalf("DecodeIndexed1Bit() error = %v, want ErrShortData", err)
	}
}

func TestDecodeIndexed1BitRowPadding(t *testing.T) {
	data := []byte{
		0xff, 0xff, 0xff, 0xff,
		0x00, 0x00, 0x00, 0xff,
		0x80, 0x00, // row 0: x=0 set, 10 wide so two bytes
		0x00, 0x40, // row 1: x=9 set
	}
	img, err := DecodeIndexed1Bit(data, 10, 2)
	if err != nil {
		t.Fatalf("DecodeIndexed1Bit() error = %v", err)
	}
	if img.ColorIndexAt(0, 0) != 1 || img.ColorIndexAt(9, 1) != 1 {
		t.Fatalf("set bits not decoded")
	}
	if img.ColorIndexAt(1, 0) != 0 || img.ColorIndexAt(8, 1) != 0 {
		t.Fatalf("clear bits decoded as set")
	}
}

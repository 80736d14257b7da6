// Package art holds the decorative bitmap shown in the middle region.
package art

import (
	_ "embed"
	"errors"
	"fmt"
	"image"
	"image/color"
)

//go:embed reaction_diffusion.bin
var reactionDiffusion []byte

// ReactionDiffusion dimensions.
const (
	Width  = 68
	Height = 68
)

// ErrShortData is returned when an image buffer is smaller than its header
// claims.
var ErrShortData = errors.New("indexed image data too short")

// paletteEntryBytes is the size of one B, G, R, A palette entry.
const paletteEntryBytes = 4

// DecodeIndexed1Bit decodes an LVGL INDEXED_1BIT image: a two-entry BGRA
// palette followed by rows packed MSB first, each row padded to a whole byte.
func DecodeIndexed1Bit(data []byte, w, h int) (*image.Paletted, error) {
	stride := (w + 7) / 8
	want := 2*paletteEntryBytes + stride*h
	if len(data) < want {
		return nil, fmt.Errorf("%w: have %d bytes, want %d", ErrShortData, len(data), want)
	}

	palette := make(color.Palette, 2)
	for i := range palette {
		p := data[i*paletteEntryBytes:]
		palette[i] = color.RGBA{R: p[2], G: p[1], B: p[0], A: p[3]}
	}

	img := image.NewPaletted(image.Rect(0, 0, w, h), palette)
	pix := data[2*paletteEntryBytes:]
	for y := 0; y < h; y++ {
		row := pix[y*stride:]
		for x := 0; x < w; x++ {
			if row[x/8]&(0x80>>(x%8)) != 0 {
				img.SetColorIndex(x, y, 1)
			}
		}
	}
	return img, nil
}

// ReactionDiffusion decodes the embedded 68x68 reaction-diffusion pattern.
func ReactionDiffusion() (*image.Paletted, error) {
	img, err := DecodeIndexed1Bit(reactionDiffusion, Width, Height)
	if err != nil {
		return nil, fmt.Errorf("failed to decode reaction diffusion art: %w", err)
	}
	return img, nil
}

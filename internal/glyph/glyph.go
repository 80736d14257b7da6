// Package glyph rasterises the embedded SVG status icons into 1-bit masks.
//
// Icons are rendered once at startup; the draw path only blits masks.
package glyph

import (
	_ "embed"
	"fmt"
	"image"
	"image/color"
	"strings"

	"github.com/srwiley/oksvg"
	"github.com/srwiley/rasterx"
)

//go:embed icons/usb.svg
var iconUSBSVG string

//go:embed icons/bluetooth.svg
var iconBluetoothSVG string

//go:embed icons/close.svg
var iconCloseSVG string

//go:embed icons/settings.svg
var iconSettingsSVG string

//go:embed icons/bolt.svg
var iconBoltSVG string

// Glyph names one of the status icons.
type Glyph int

const (
	None Glyph = iota
	USB
	Bluetooth
	// Disconnected is shown for a bonded BLE profile that is not connected.
	Disconnected
	// Pairing is shown for an open (unbonded) BLE profile.
	Pairing
	// Bolt is the charging overlay drawn on the battery.
	Bolt
)

// String returns the glyph name.
func (g Glyph) String() string {
	switch g {
	case USB:
		return "usb"
	case Bluetooth:
		return "bluetooth"
	case Disconnected:
		return "disconnected"
	case Pairing:
		return "pairing"
	case Bolt:
		return "bolt"
	default:
		return "none"
	}
}

// Bolt overlay size, matching the battery outline it sits on.
const (
	BoltWidth  = 11
	BoltHeight = 18
)

// Set holds the rasterised masks.
type Set struct {
	masks map[Glyph]*image.Alpha
}

// Load rasterises every icon. Connection icons are size x size pixels.
func Load(size int) (*Set, error) {
	sources := []struct {
		g    Glyph
		svg  string
		w, h int
	}{
		{USB, iconUSBSVG, size, size},
		{Bluetooth, iconBluetoothSVG, size, size},
		{Disconnected, iconCloseSVG, size, size},
		{Pairing, iconSettingsSVG, size, size},
		{Bolt, iconBoltSVG, BoltWidth, BoltHeight},
	}

	s := &Set{masks: make(map[Glyph]*image.Alpha, len(sources))}
	for _, src := range sources {
		mask, err := renderSVGMask(src.svg, src.w, src.h)
		if err != nil {
			return nil, fmt.Errorf("failed to render %s icon: %w", src.g, err)
		}
		s.masks[src.g] = mask
	}
	return s, nil
}

// Mask returns the mask for g, or nil for None.
func (s *Set) Mask(g Glyph) *image.Alpha {
	return s.masks[g]
}

// renderSVGMask renders an SVG string and keeps only its coverage.
func renderSVGMask(svgContent string, w, h int) (*image.Alpha, error) {
	svgContent = strings.ReplaceAll(svgContent, "currentColor", "#ffffff")

	icon, err := oksvg.ReadIconStream(strings.NewReader(svgContent))
	if err != nil {
		return nil, fmt.Errorf("failed to parse SVG: %w", err)
	}

	img := image.NewRGBA(image.Rect(0, 0, w, h))
	icon.SetTarget(0, 0, float64(w), float64(h))

	scanner := rasterx.NewScannerGV(w, h, img, img.Bounds())
	raster := rasterx.NewDasher(w, h, scanner)
	icon.Draw(raster, 1.0)

	mask := image.NewAlpha(img.Bounds())
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			mask.SetAlpha(x, y, color.Alpha{A: img.RGBAAt(x, y).A})
		}
	}
	return mask, nil
}

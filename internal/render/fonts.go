package render

import (
	"fmt"
	"image"

	"github.com/phinze/niceview/internal/canvas"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
	"periph.io/x/devices/v3/ssd1306/image1bit"
	"tinygo.org/x/tinyfont"
	"tinygo.org/x/tinyfont/freesans"
	"tinygo.org/x/tinyfont/proggy"
)

// Typeface measures and draws single lines of text onto a canvas.
type Typeface interface {
	Width(text []byte) int
	Ascent() int
	Draw(c *canvas.Canvas, text []byte, x, baseline int, ink image1bit.Bit)
}

// Font families accepted by LoadFonts.
const (
	FontGoBold   = "gobold"
	FontTinyfont = "tinyfont"
)

// Fonts groups the typefaces the renderer uses.
type Fonts struct {
	Label Typeface // device name
	Body  Typeface // layer and profile lines
	Badge Typeface // profile indicator numbers
	Small Typeface // WPM value
}

// bodySamples are the widest generated bottom lines. The body face must fit
// each of them on a canvas without truncation.
var bodySamples = []string{"LAYER 255", "PRFILE 255"}

// Body face sizes for the opentype family, largest first.
const (
	bodyMaxSize  = 13
	bodyMinSize  = 6
	bodySizeStep = 0.5
)

// LoadFonts builds the typefaces for a font family.
func LoadFonts(family string) (Fonts, error) {
	small := faceTypeface{face: basicfont.Face7x13}

	switch family {
	case "", FontGoBold:
		tt, err := opentype.Parse(gobold.TTF)
		if err != nil {
			return Fonts{}, fmt.Errorf("failed to parse bold font: %w", err)
		}
		label, err := newFace(tt, 16)
		if err != nil {
			return Fonts{}, fmt.Errorf("failed to create label face: %w", err)
		}
		body, err := bodyFace(tt)
		if err != nil {
			return Fonts{}, err
		}
		badge, err := newFace(tt, 12)
		if err != nil {
			return Fonts{}, fmt.Errorf("failed to create badge face: %w", err)
		}
		return Fonts{Label: label, Body: body, Badge: badge, Small: small}, nil

	case FontTinyfont:
		tf := tinyTypeface{font: &freesans.Bold9pt7b}
		body := tinyTypeface{font: &proggy.TinySZ8pt7b}
		if !fitsAll(body, bodySamples, canvas.Size) {
			return Fonts{}, fmt.Errorf("tinyfont body face too wide for %q", bodySamples)
		}
		return Fonts{Label: tf, Body: body, Badge: tf, Small: small}, nil
	}
	return Fonts{}, fmt.Errorf("unknown font family %q", family)
}

// bodyFace returns the largest face of tt in which every body sample fits
// the canvas width.
func bodyFace(tt *opentype.Font) (Typeface, error) {
	for size := float64(bodyMaxSize); size >= bodyMinSize; size -= bodySizeStep {
		face, err := newFace(tt, size)
		if err != nil {
			return nil, fmt.Errorf("failed to create body face: %w", err)
		}
		if fitsAll(face, bodySamples, canvas.Size) {
			return face, nil
		}
	}
	return nil, fmt.Errorf("no body face size fits %q", bodySamples)
}

func fitsAll(tf Typeface, samples []string, maxWidth int) bool {
	for _, s := range samples {
		if tf.Width([]byte(s)) > maxWidth {
			return false
		}
	}
	return true
}

func newFace(tt *opentype.Font, size float64) (Typeface, error) {
	face, err := opentype.NewFace(tt, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, err
	}
	return faceTypeface{face: face}, nil
}

// faceTypeface draws with an x/image font.Face.
type faceTypeface struct {
	face font.Face
}

func (f faceTypeface) Width(text []byte) int {
	return font.MeasureBytes(f.face, text).Ceil()
}

func (f faceTypeface) Ascent() int {
	return f.face.Metrics().Ascent.Ceil()
}

func (f faceTypeface) Draw(c *canvas.Canvas, text []byte, x, baseline int, ink image1bit.Bit) {
	d := &font.Drawer{
		Dst:  c.Image(),
		Src:  image.NewUniform(ink),
		Face: f.face,
		Dot:  fixed.Point26_6{X: fixed.I(x), Y: fixed.I(baseline)},
	}
	d.DrawBytes(text)
}

// tinyTypeface draws with a tinyfont bitmap font through the canvas'
// Displayer view.
type tinyTypeface struct {
	font tinyfont.Fonter
}

func (t tinyTypeface) Width(text []byte) int {
	_, outbox := tinyfont.LineWidth(t.font, string(text))
	return int(outbox)
}

func (t tinyTypeface) Ascent() int {
	return int(t.font.GetYAdvance()) * 3 / 4
}

func (t tinyTypeface) Draw(c *canvas.Canvas, text []byte, x, baseline int, ink image1bit.Bit) {
	col := canvas.PaperRGBA
	if ink {
		col = canvas.InkRGBA
	}
	tinyfont.WriteLine(c.Displayer(), t.font, int16(x), int16(baseline), string(text), col)
}

// Package render draws the status state into the three region canvases.
//
// Every Draw function clears its canvas first and depends only on the state
// passed in, so drawing the same state twice yields the same pixels.
package render

import (
	"fmt"
	"image"
	"image/color"

	"github.com/phinze/niceview/internal/art"
	"github.com/phinze/niceview/internal/canvas"
	"github.com/phinze/niceview/internal/glyph"
	"github.com/phinze/niceview/internal/status"
)

// GlyphSize is the edge length of the connection icons.
const GlyphSize = 16

// MaxProfileSlots is the number of indicator rings the middle region has
// room for.
const MaxProfileSlots = 5

// Text line positions (top of line) inside their regions.
const (
	nameLineY   = 18
	layerLineY  = 5
	profileLine = 21
)

// WPM graph frame in the top region, below the device name.
const (
	wpmTop    = 36
	wpmHeight = canvas.Size - wpmTop
)

// profileRingCenters are the ring centres of the profile indicator layout.
var profileRingCenters = [MaxProfileSlots]image.Point{
	{13, 13}, {55, 13}, {34, 34}, {13, 55}, {55, 55},
}

// Options configures what the renderer draws.
type Options struct {
	// DeviceName is printed under the battery in the top region.
	DeviceName string
	// Inverted swaps foreground and background. It only affects how the
	// fixed-colour art maps onto ink.
	Inverted bool
	// ProfileIndicators replaces the middle art with one ring per profile
	// slot, the active one filled.
	ProfileIndicators bool
	// ProfileSlots is the number of rings shown, at most MaxProfileSlots.
	ProfileSlots int
	// WPMGraph adds a words-per-minute sparkline to the top region.
	WPMGraph bool
}

// Renderer draws status regions.
type Renderer struct {
	opts   Options
	fonts  Fonts
	glyphs *glyph.Set
	art    image.Image
}

// New creates a renderer from already loaded resources.
func New(opts Options, fonts Fonts, glyphs *glyph.Set, artwork image.Image) *Renderer {
	if opts.ProfileSlots <= 0 || opts.ProfileSlots > MaxProfileSlots {
		opts.ProfileSlots = MaxProfileSlots
	}
	return &Renderer{opts: opts, fonts: fonts, glyphs: glyphs, art: artwork}
}

// Load creates a renderer, loading fonts for family, the icons and the
// middle art.
func Load(opts Options, family string) (*Renderer, error) {
	fonts, err := LoadFonts(family)
	if err != nil {
		return nil, err
	}
	glyphs, err := glyph.Load(GlyphSize)
	if err != nil {
		return nil, fmt.Errorf("failed to load glyphs: %w", err)
	}
	artwork, err := art.ReactionDiffusion()
	if err != nil {
		return nil, err
	}
	return New(opts, fonts, glyphs, artwork), nil
}

// Draw renders a single region.
func (r *Renderer) Draw(region Region, c *canvas.Canvas, s status.State) {
	switch region {
	case Top:
		r.DrawTop(c, s)
	case Middle:
		r.DrawMiddle(c, s)
	case Bottom:
		r.DrawBottom(c, s)
	}
}

// Dirty reports the regions whose drawn inputs differ between prev and next.
func (r *Renderer) Dirty(prev, next status.State) Region {
	var d Region
	if prev.Battery != next.Battery ||
		prev.Charging != next.Charging ||
		EndpointGlyph(prev) != EndpointGlyph(next) ||
		(r.opts.WPMGraph && prev.WPM != next.WPM) {
		d |= Top
	}
	if r.opts.ProfileIndicators && prev.ActiveProfile != next.ActiveProfile {
		d |= Middle
	}
	if prev.LayerIndex != next.LayerIndex ||
		prev.LayerLabel != next.LayerLabel ||
		prev.ActiveProfile != next.ActiveProfile {
		d |= Bottom
	}
	return d
}

// EndpointGlyph picks the connection icon for the state.
func EndpointGlyph(s status.State) glyph.Glyph {
	switch s.Endpoint {
	case status.EndpointUSB:
		return glyph.USB
	case status.EndpointBLE:
		switch {
		case !s.ProfileBonded:
			return glyph.Pairing
		case s.ProfileConnected:
			return glyph.Bluetooth
		default:
			return glyph.Disconnected
		}
	}
	return glyph.None
}

// DrawTop draws battery, connection icon and device name.
func (r *Renderer) DrawTop(c *canvas.Canvas, s status.State) {
	c.Fill(canvas.Paper)

	r.drawBattery(c, s)

	if mask := r.glyphs.Mask(EndpointGlyph(s)); mask != nil {
		c.DrawMask(mask, canvas.Size-mask.Bounds().Dx(), 0, canvas.Ink)
	}

	if r.opts.WPMGraph {
		r.drawWPM(c, s)
	}

	var name label
	name.appendString(r.opts.DeviceName)
	name.fit(r.fonts.Label, canvas.Size)
	drawCentered(c, r.fonts.Label, &name, nameLineY, canvas.Ink)
}

func (r *Renderer) drawBattery(c *canvas.Canvas, s status.State) {
	c.FillRect(0, 2, 29, 12, canvas.Ink)
	c.FillRect(1, 3, 27, 10, canvas.Paper)
	c.FillRect(2, 4, (int(s.Battery)+2)/4, 8, canvas.Ink)
	c.FillRect(30, 5, 3, 6, canvas.Ink)
	c.FillRect(31, 6, 1, 4, canvas.Paper)

	if s.Charging {
		c.InvertMask(r.glyphs.Mask(glyph.Bolt), 9, -1)
	}
}

// drawWPM draws a framed sparkline of the WPM window with the latest value
// in its top right corner.
func (r *Renderer) drawWPM(c *canvas.Canvas, s status.State) {
	c.FillRect(0, wpmTop, canvas.Size, wpmHeight, canvas.Ink)
	c.FillRect(1, wpmTop+1, canvas.Size-2, wpmHeight-2, canvas.Paper)

	var text label
	text.appendInt(int(s.LatestWPM()))
	w := r.fonts.Small.Width(text.bytes())
	r.fonts.Small.Draw(c, text.bytes(), canvas.Size-2-w, wpmTop+1+r.fonts.Small.Ascent(), canvas.Ink)

	lo, hi := 255, 0
	for _, v := range s.WPM {
		lo = min(lo, int(v))
		hi = max(hi, int(v))
	}
	span := hi - lo
	if span == 0 {
		span = 1
	}

	bottom := canvas.Size - 3
	rise := wpmHeight - 6
	var prev image.Point
	for i, v := range s.WPM {
		p := image.Pt(2+i*7, bottom-(int(v)-lo)*rise/span)
		if i > 0 {
			c.Line(prev.X, prev.Y, p.X, p.Y, canvas.Ink)
		}
		prev = p
	}
}

// DrawMiddle draws the decorative art, or the profile rings when enabled.
func (r *Renderer) DrawMiddle(c *canvas.Canvas, s status.State) {
	c.Fill(canvas.Paper)

	if !r.opts.ProfileIndicators {
		c.DrawImage(r.art, 0, 0, r.artInk)
		return
	}

	for i, center := range profileRingCenters[:r.opts.ProfileSlots] {
		selected := i == s.ActiveProfile
		c.Ring(center.X, center.Y, 13, 2, canvas.Ink)

		ink := canvas.Ink
		if selected {
			c.Ring(center.X, center.Y, 9, 9, canvas.Ink)
			ink = canvas.Paper
		}

		var num label
		num.appendInt(i + 1)
		w := r.fonts.Badge.Width(num.bytes())
		baseline := center.Y + r.fonts.Badge.Ascent()/2
		r.fonts.Badge.Draw(c, num.bytes(), center.X-w/2, baseline, ink)
	}
}

// artInk maps the art's fixed palette onto ink: dark pixels are foreground
// unless the display is inverted.
func (r *Renderer) artInk(col color.Color) bool {
	g := color.GrayModel.Convert(col).(color.Gray)
	return (g.Y < 0x80) != r.opts.Inverted
}

// DrawBottom draws the layer line and the profile line.
func (r *Renderer) DrawBottom(c *canvas.Canvas, s status.State) {
	c.Fill(canvas.Paper)

	// Generated lines always fit the body face, so only a custom label is
	// ever shortened.
	var line label
	layerText(&line, s)
	if s.LayerLabel != "" {
		line.fit(r.fonts.Body, canvas.Size)
	}
	drawCentered(c, r.fonts.Body, &line, layerLineY, canvas.Ink)

	line.reset()
	profileText(&line, s)
	drawCentered(c, r.fonts.Body, &line, profileLine, canvas.Ink)
}

// LayerText returns the layer line for s: its label when set, otherwise
// "LAYER <index>".
func LayerText(s status.State) string {
	var l label
	layerText(&l, s)
	return l.String()
}

// ProfileText returns the 1-based profile line for s.
func ProfileText(s status.State) string {
	var l label
	profileText(&l, s)
	return l.String()
}

func layerText(l *label, s status.State) {
	if s.LayerLabel != "" {
		l.appendString(s.LayerLabel)
		return
	}
	l.appendString("LAYER ")
	l.appendInt(int(s.LayerIndex))
}

func profileText(l *label, s status.State) {
	l.appendString("PRFILE ")
	l.appendInt(s.ActiveProfile + 1)
}

// drawCentered draws l centred with its top at y. Lines wider than the canvas
// are clipped on both sides.
func drawCentered(c *canvas.Canvas, tf Typeface, l *label, y int, ink canvas.Bit) {
	w := tf.Width(l.bytes())
	tf.Draw(c, l.bytes(), (canvas.Size-w)/2, y+tf.Ascent(), ink)
}

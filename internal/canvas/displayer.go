package canvas

import (
	"image/color"

	"periph.io/x/devices/v3/ssd1306/image1bit"
	"tinygo.org/x/drivers"
)

// Colours understood by the Displayer view: anything bright is Ink.
var (
	InkRGBA   = color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
	PaperRGBA = color.RGBA{A: 0xff}
)

type displayer struct {
	c *Canvas
}

// Displayer returns a tinygo drivers.Displayer view of the canvas, so tinygo
// drawing packages (tinyfont, tinydraw) can render into it directly.
func (c *Canvas) Displayer() drivers.Displayer {
	return displayer{c: c}
}

func (d displayer) Size() (x, y int16) {
	return Size, Size
}

func (d displayer) SetPixel(x, y int16, c color.RGBA) {
	d.c.Set(int(x), int(y), image1bit.Bit(c.R|c.G|c.B >= 0x80))
}

func (d displayer) Display() error {
	return nil
}

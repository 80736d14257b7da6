// Package term renders frames as terminal text using half-block cells.
package term

import (
	"fmt"
	"image/color"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/phinze/niceview/internal/display"
)

const halfBlock = "▀"

// Render draws f with one cell per two pixel rows: the upper pixel is the
// cell's foreground, the lower its background.
func Render(f *display.Frame) string {
	styles := cellStyles(f.Palette)

	var b strings.Builder
	var run strings.Builder
	for y := 0; y < display.Height; y += 2 {
		if y > 0 {
			b.WriteByte('\n')
		}
		cur := -1
		for x := 0; x < display.Width; x++ {
			idx := 0
			if f.Bits.BitAt(x, y) {
				idx |= 2
			}
			if y+1 < display.Height && f.Bits.BitAt(x, y+1) {
				idx |= 1
			}
			if idx != cur && run.Len() > 0 {
				b.WriteString(styles[cur].Render(run.String()))
				run.Reset()
			}
			cur = idx
			run.WriteString(halfBlock)
		}
		b.WriteString(styles[cur].Render(run.String()))
		run.Reset()
	}
	return b.String()
}

// cellStyles indexes styles by upper<<1 | lower, with 1 meaning ink.
func cellStyles(p display.Palette) [4]lipgloss.Style {
	fg, bg := hex(p.Foreground), hex(p.Background)
	pick := func(on bool) lipgloss.Color {
		if on {
			return fg
		}
		return bg
	}
	var s [4]lipgloss.Style
	for i := range s {
		s[i] = lipgloss.NewStyle().
			Foreground(pick(i&2 != 0)).
			Background(pick(i&1 != 0))
	}
	return s
}

func hex(c color.RGBA) lipgloss.Color {
	return lipgloss.Color(fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B))
}

// FrameMsg delivers a frame to a bubbletea model.
type FrameMsg struct {
	Frame *display.Frame
}

// Sink forwards frames to a running bubbletea program.
type Sink struct {
	program *tea.Program
}

// NewSink creates a sink feeding p.
func NewSink(p *tea.Program) *Sink {
	return &Sink{program: p}
}

// Present implements display.Sink. The frame is cloned since the program
// renders on its own goroutine.
func (s *Sink) Present(f *display.Frame) error {
	s.program.Send(FrameMsg{Frame: f.Clone()})
	return nil
}

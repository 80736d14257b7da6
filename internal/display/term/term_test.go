package term

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/phinze/niceview/internal/display"
	"periph.io/x/devices/v3/ssd1306/image1bit"
)

func TestRenderGeometry(t *testing.T) {
	f := display.NewFrame(display.NewPalette(false))
	for x := 0; x < display.Width; x += 3 {
		f.Bits.SetBit(x, x%display.Height, image1bit.On)
	}

	lines := strings.Split(Render(f), "\n")
	if len(lines) != display.Height/2 {
		t.Fatalf("Render() produced %d lines, want %d", len(lines), display.Height/2)
	}
	for i, line := range lines {
		if w := lipgloss.Width(line); w != display.Width {
			t.Fatalf("line %d width = %d, want %d", i, w, display.Width)
		}
	}
}

func TestCellStyles(t *testing.T) {
	p := display.NewPalette(false)
	s := cellStyles(p)

	if got := s[2].GetForeground(); got != hex(p.Foreground) {
		t.Fatalf("upper ink foreground = %v, want %v", got, hex(p.Foreground))
	}
	if got := s[2].GetBackground(); got != hex(p.Background) {
		t.Fatalf("lower paper background = %v, want %v", got, hex(p.Background))
	}
	if got := s[1].GetBackground(); got != hex(p.Foreground) {
		t.Fatalf("lower ink background = %v, want %v", got, hex(p.Foreground))
	}
	if got := hex(p.Foreground); got != lipgloss.Color("#000000") {
		t.Fatalf("hex(black) = %v, want #000000", got)
	}
}

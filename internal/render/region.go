package render

import "strings"

// Region is a bit set of canvas regions.
type Region uint8

const (
	// Top shows battery, connection and the device name.
	Top Region = 1 << iota
	// Middle shows the decorative art or the profile indicators.
	Middle
	// Bottom shows the layer and profile lines.
	Bottom

	None Region = 0
	All         = Top | Middle | Bottom
)

// Regions lists the single regions in composite order.
var Regions = [...]Region{Top, Middle, Bottom}

// Has reports whether r includes every region in o.
func (r Region) Has(o Region) bool {
	return r&o == o
}

// Index returns the slot of a single region in Regions.
func (r Region) Index() int {
	switch r {
	case Top:
		return 0
	case Middle:
		return 1
	case Bottom:
		return 2
	}
	return -1
}

func (r Region) String() string {
	if r == None {
		return "none"
	}
	var parts []string
	if r.Has(Top) {
		parts = append(parts, "top")
	}
	if r.Has(Middle) {
		parts = append(parts, "middle")
	}
	if r.Has(Bottom) {
		parts = append(parts, "bottom")
	}
	return strings.Join(parts, "|")
}

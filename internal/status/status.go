// Package status holds the per-widget status record and the operations that
// fold event deltas into it.
package status

// WPMWindow is the number of words-per-minute samples kept for the graph.
const WPMWindow = 10

// MaxBattery is the upper bound of the battery level.
const MaxBattery = 100

// Endpoint identifies the transport key events are sent over.
type Endpoint uint8

const (
	// EndpointNone means the connectivity subsystem has not reported one yet.
	EndpointNone Endpoint = iota
	EndpointUSB
	EndpointBLE
)

// String returns a short name for the endpoint.
func (e Endpoint) String() string {
	switch e {
	case EndpointUSB:
		return "usb"
	case EndpointBLE:
		return "ble"
	default:
		return "none"
	}
}

// ParseEndpoint maps a name from String back to an Endpoint.
// Unknown names map to EndpointNone.
func ParseEndpoint(s string) Endpoint {
	switch s {
	case "usb", "USB":
		return EndpointUSB
	case "ble", "BLE":
		return EndpointBLE
	default:
		return EndpointNone
	}
}

// Profile describes the active BLE profile slot.
type Profile struct {
	Index     int
	Connected bool
	Bonded    bool
}

// State is everything the status widget draws.
//
// State is a value type: every operation returns an updated copy and leaves
// fields outside its category untouched.
type State struct {
	Battery  uint8
	Charging bool

	Endpoint         Endpoint
	ActiveProfile    int
	ProfileConnected bool
	ProfileBonded    bool

	LayerIndex uint8
	// LayerLabel is the configured name of the layer, empty when unset.
	LayerLabel string

	// WPM holds the most recent samples, oldest first.
	WPM [WPMWindow]uint8
}

// WithBattery returns s with the battery level set, clamped to [0, 100].
func (s State) WithBattery(level int) State {
	s.Battery = ClampBattery(level)
	return s
}

// WithUSBPower returns s with the charging flag set from USB power presence.
func (s State) WithUSBPower(powered bool) State {
	s.Charging = powered
	return s
}

// WithEndpoint returns s with the selected endpoint replaced.
func (s State) WithEndpoint(e Endpoint) State {
	s.Endpoint = e
	return s
}

// WithProfile returns s with the active BLE profile fields replaced.
func (s State) WithProfile(p Profile) State {
	s.ActiveProfile = p.Index
	s.ProfileConnected = p.Connected
	s.ProfileBonded = p.Bonded
	return s
}

// WithLayer returns s with the active layer replaced.
func (s State) WithLayer(index uint8, label string) State {
	s.LayerIndex = index
	s.LayerLabel = label
	return s
}

// PushWPM returns s with sample appended to the WPM window and the oldest
// sample dropped.
func (s State) PushWPM(sample uint8) State {
	copy(s.WPM[:], s.WPM[1:])
	s.WPM[WPMWindow-1] = sample
	return s
}

// Profile returns the active profile fields as a Profile.
func (s State) Profile() Profile {
	return Profile{
		Index:     s.ActiveProfile,
		Connected: s.ProfileConnected,
		Bonded:    s.ProfileBonded,
	}
}

// LatestWPM returns the newest WPM sample.
func (s State) LatestWPM() uint8 {
	return s.WPM[WPMWindow-1]
}

// ClampBattery limits level to the [0, 100] range.
func ClampBattery(level int) uint8 {
	switch {
	case level < 0:
		return 0
	case level > MaxBattery:
		return MaxBattery
	default:
		return uint8(level)
	}
}

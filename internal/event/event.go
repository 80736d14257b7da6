// Package event defines the status events raised by the keyboard subsystems
// and the queue that delivers them.
package event

import "github.com/phinze/niceview/internal/status"

// Kind identifies an event type.
type Kind uint8

const (
	KindBattery Kind = iota + 1
	KindUSBConn
	KindEndpoint
	KindActiveProfile
	KindLayer
	KindWPM
)

var kindNames = [...]string{
	KindBattery:       "battery_state_changed",
	KindUSBConn:       "usb_conn_state_changed",
	KindEndpoint:      "endpoint_changed",
	KindActiveProfile: "active_profile_changed",
	KindLayer:         "layer_state_changed",
	KindWPM:           "wpm_state_changed",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) && kindNames[k] != "" {
		return kindNames[k]
	}
	return "unknown"
}

// ParseKind maps a name from String back to a Kind. It returns 0 for unknown
// names.
func ParseKind(s string) Kind {
	for k, name := range kindNames {
		if name != "" && name == s {
			return Kind(k)
		}
	}
	return 0
}

// Event is anything that can be posted to a Bus.
type Event interface {
	Kind() Kind
}

// BatteryStateChanged carries the new battery level.
type BatteryStateChanged struct {
	StateOfCharge uint8
}

// USBConnStateChanged reports a change in USB power.
type USBConnStateChanged struct {
	Powered bool
}

// EndpointChanged reports a new selected output endpoint.
type EndpointChanged struct {
	Endpoint status.Endpoint
}

// ActiveProfileChanged reports a BLE profile switch or a connection change on
// the active profile.
type ActiveProfileChanged struct {
	Index int
}

// LayerStateChanged reports a layer being activated or deactivated.
type LayerStateChanged struct {
	Layer  uint8
	Active bool
}

// WPMStateChanged carries a new words-per-minute sample.
type WPMStateChanged struct {
	State uint8
}

func (BatteryStateChanged) Kind() Kind  { return KindBattery }
func (USBConnStateChanged) Kind() Kind  { return KindUSBConn }
func (EndpointChanged) Kind() Kind      { return KindEndpoint }
func (ActiveProfileChanged) Kind() Kind { return KindActiveProfile }
func (LayerStateChanged) Kind() Kind    { return KindLayer }
func (WPMStateChanged) Kind() Kind      { return KindWPM }

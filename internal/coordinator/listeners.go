package coordinator

import (
	"log"

	"github.com/phinze/niceview/internal/event"
	"github.com/phinze/niceview/internal/render"
	"github.com/phinze/niceview/internal/status"
	"github.com/phinze/niceview/internal/widget"
)

// BatteryDelta is the battery listener's view of the power subsystem.
type BatteryDelta struct {
	Level      uint8
	USBPowered bool
}

// BatteryListener tracks the battery level and USB power. The level is taken
// from the event when it carries one and queried otherwise; a failed query
// keeps the last known level.
func BatteryListener(p Power) Listener[BatteryDelta] {
	var last uint8
	return Listener[BatteryDelta]{
		Name:    "battery",
		Kinds:   []event.Kind{event.KindBattery, event.KindUSBConn},
		Regions: render.Top,
		Extract: func(e event.Event) BatteryDelta {
			if ev, ok := e.(event.BatteryStateChanged); ok {
				last = ev.StateOfCharge
			} else if level, err := p.StateOfCharge(); err != nil {
				log.Printf("Failed to read state of charge: %v", err)
			} else {
				last = level
			}
			return BatteryDelta{Level: last, USBPowered: p.USBPowered()}
		},
		Apply: func(s status.State, d BatteryDelta) status.State {
			return s.WithBattery(int(d.Level)).WithUSBPower(d.USBPowered)
		},
	}
}

// OutputDelta is the output listener's view of the connectivity subsystem.
type OutputDelta struct {
	Endpoint status.Endpoint
	Profile  status.Profile
}

// OutputListener tracks the selected endpoint and the active profile.
// Unknown endpoints and negative profile indexes keep the last known value.
func OutputListener(c Connectivity) Listener[OutputDelta] {
	var last OutputDelta
	return Listener[OutputDelta]{
		Name:    "output",
		Kinds:   []event.Kind{event.KindEndpoint, event.KindUSBConn, event.KindActiveProfile},
		Regions: render.Top | render.Middle | render.Bottom,
		Extract: func(event.Event) OutputDelta {
			switch ep := c.SelectedEndpoint(); ep {
			case status.EndpointNone, status.EndpointUSB, status.EndpointBLE:
				last.Endpoint = ep
			default:
				log.Printf("Failed to read endpoint: unknown value %d", ep)
			}

			if idx := c.ActiveProfileIndex(); idx >= 0 {
				last.Profile = status.Profile{
					Index:     idx,
					Connected: c.ActiveProfileConnected(),
					Bonded:    !c.ActiveProfileOpen(),
				}
			} else {
				log.Printf("Failed to read active profile: index %d", idx)
			}
			return last
		},
		Apply: func(s status.State, d OutputDelta) status.State {
			return s.WithEndpoint(d.Endpoint).WithProfile(d.Profile)
		},
	}
}

// LayerDelta is the active layer and its label.
type LayerDelta struct {
	Index uint8
	Label string
}

// LayerListener tracks the highest active layer.
func LayerListener(k Keymap) Listener[LayerDelta] {
	return Listener[LayerDelta]{
		Name:    "layer",
		Kinds:   []event.Kind{event.KindLayer},
		Regions: render.Bottom,
		Extract: func(event.Event) LayerDelta {
			idx := k.HighestLayerActive()
			return LayerDelta{Index: idx, Label: k.LayerName(idx)}
		},
		Apply: func(s status.State, d LayerDelta) status.State {
			return s.WithLayer(d.Index, d.Label)
		},
	}
}

// WPMListener appends every words-per-minute sample to the window.
func WPMListener(t TypingSpeed) Listener[uint8] {
	return Listener[uint8]{
		Name:    "wpm",
		Kinds:   []event.Kind{event.KindWPM},
		Regions: render.Top,
		Extract: func(e event.Event) uint8 {
			if ev, ok := e.(event.WPMStateChanged); ok {
				return ev.State
			}
			return t.WPM()
		},
		Apply: func(s status.State, v uint8) status.State {
			return s.PushWPM(v)
		},
	}
}

// RegisterStatusListeners registers a listener for every non-nil source.
func RegisterStatusListeners(bus *event.Bus, reg *widget.Registry, src Sources) {
	if src.Power != nil {
		Register(bus, reg, BatteryListener(src.Power))
	}
	if src.Connectivity != nil {
		Register(bus, reg, OutputListener(src.Connectivity))
	}
	if src.Keymap != nil {
		Register(bus, reg, LayerListener(src.Keymap))
	}
	if src.TypingSpeed != nil {
		Register(bus, reg, WPMListener(src.TypingSpeed))
	}
}

// Package sim provides an in-memory keyboard that stands in for the battery,
// connectivity, keymap and typing speed subsystems.
package sim

import (
	"context"
	"errors"
	"log"
	"sync"
	"time"

	"github.com/phinze/niceview/internal/event"
	"github.com/phinze/niceview/internal/module"
	"github.com/phinze/niceview/internal/status"
)

// ErrBatteryUnavailable is returned by StateOfCharge while a battery failure
// is injected.
var ErrBatteryUnavailable = errors.New("battery gauge unavailable")

// Config configures a simulated keyboard.
type Config struct {
	// Layers are the layer labels; an empty entry means no label.
	Layers []string
	// Profiles is the number of BLE profile slots.
	Profiles int
	// Tick is the interval of the battery drain and WPM decay. Zero disables
	// the ticker.
	Tick time.Duration
}

type profileSlot struct {
	connected bool
	bonded    bool
}

// Keyboard is a simulated keyboard. Setters update the state and post the
// event the real subsystem would raise. All methods are safe for concurrent
// use.
type Keyboard struct {
	module.BaseModule

	cfg Config

	mu          sync.RWMutex
	battery     uint8
	batteryFail bool
	usb         bool
	endpoint    status.Endpoint
	profile     int
	slots       []profileSlot
	layer       uint8
	wpm         uint8

	tickCancel context.CancelFunc
}

// New creates a keyboard on battery, with BLE selected and profile 0 bonded
// and connected.
func New(cfg Config) *Keyboard {
	if cfg.Profiles < 1 {
		cfg.Profiles = 5
	}
	k := &Keyboard{
		BaseModule: module.NewBaseModule("sim"),
		cfg:        cfg,
		battery:    status.MaxBattery,
		endpoint:   status.EndpointBLE,
		slots:      make([]profileSlot, cfg.Profiles),
	}
	k.slots[0] = profileSlot{connected: true, bonded: true}
	return k
}

// Init starts the drain ticker when configured.
func (k *Keyboard) Init(ctx context.Context, bus *event.Bus) error {
	if err := k.BaseModule.Init(ctx, bus); err != nil {
		return err
	}
	if k.cfg.Tick > 0 {
		tickCtx, cancel := context.WithCancel(ctx)
		k.tickCancel = cancel
		go k.run(tickCtx)
	}
	log.Println("Simulated keyboard initialized")
	return nil
}

// Stop shuts down the ticker.
func (k *Keyboard) Stop() error {
	if k.tickCancel != nil {
		k.tickCancel()
	}
	return k.BaseModule.Stop()
}

func (k *Keyboard) run(ctx context.Context) {
	ticker := time.NewTicker(k.cfg.Tick)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			k.Tick()
		}
	}
}

// Tick advances the simulation one step: the battery charges on USB power
// and drains otherwise, and typing speed decays by a tenth.
func (k *Keyboard) Tick() {
	k.mu.Lock()
	level := k.battery
	switch {
	case k.usb && level < status.MaxBattery:
		level++
	case !k.usb && level > 0:
		level--
	}
	changed := level != k.battery
	k.battery = level
	k.wpm -= k.wpm / 10
	if k.wpm < 10 {
		k.wpm = 0
	}
	wpm := k.wpm
	k.mu.Unlock()

	if changed {
		k.Post(event.BatteryStateChanged{StateOfCharge: level})
	}
	k.Post(event.WPMStateChanged{State: wpm})
}

// StateOfCharge implements coordinator.Power.
func (k *Keyboard) StateOfCharge() (uint8, error) {
	k.mu.RLock()
	defer k.mu.RUnlock()
	if k.batteryFail {
		return 0, ErrBatteryUnavailable
	}
	return k.battery, nil
}

// USBPowered implements coordinator.Power.
func (k *Keyboard) USBPowered() bool {
	k.mu.RLock()
	defer k.mu.RUnlock()
	return k.usb
}

// SelectedEndpoint implements coordinator.Connectivity. USB is only selected
// while USB power is present.
func (k *Keyboard) SelectedEndpoint() status.Endpoint {
	k.mu.RLock()
	defer k.mu.RUnlock()
	if k.endpoint == status.EndpointUSB && !k.usb {
		return status.EndpointBLE
	}
	return k.endpoint
}

// ActiveProfileIndex implements coordinator.Connectivity.
func (k *Keyboard) ActiveProfileIndex() int {
	k.mu.RLock()
	defer k.mu.RUnlock()
	return k.profile
}

// ActiveProfileConnected implements coordinator.Connectivity.
func (k *Keyboard) ActiveProfileConnected() bool {
	k.mu.RLock()
	defer k.mu.RUnlock()
	return k.slots[k.profile].connected
}

// ActiveProfileOpen implements coordinator.Connectivity.
func (k *Keyboard) ActiveProfileOpen() bool {
	k.mu.RLock()
	defer k.mu.RUnlock()
	return !k.slots[k.profile].bonded
}

// HighestLayerActive implements coordinator.Keymap.
func (k *Keyboard) HighestLayerActive() uint8 {
	k.mu.RLock()
	defer k.mu.RUnlock()
	return k.layer
}

// LayerName implements coordinator.Keymap.
func (k *Keyboard) LayerName(layer uint8) string {
	if int(layer) < len(k.cfg.Layers) {
		return k.cfg.Layers[layer]
	}
	return ""
}

// WPM implements coordinator.TypingSpeed.
func (k *Keyboard) WPM() uint8 {
	k.mu.RLock()
	defer k.mu.RUnlock()
	return k.wpm
}

// SetBattery sets the battery level, clamped to [0, 100].
func (k *Keyboard) SetBattery(level int) {
	v := status.ClampBattery(level)
	k.mu.Lock()
	k.battery = v
	k.mu.Unlock()
	k.Post(event.BatteryStateChanged{StateOfCharge: v})
}

// AdjustBattery changes the battery level by delta.
func (k *Keyboard) AdjustBattery(delta int) {
	k.mu.RLock()
	level := int(k.battery)
	k.mu.RUnlock()
	k.SetBattery(level + delta)
}

// FailBattery makes StateOfCharge fail until called with false.
func (k *Keyboard) FailBattery(fail bool) {
	k.mu.Lock()
	defer k.mu.Unlock()
	k.batteryFail = fail
}

// SetUSB plugs or unplugs USB power.
func (k *Keyboard) SetUSB(powered bool) {
	k.mu.Lock()
	k.usb = powered
	k.mu.Unlock()
	k.Post(event.USBConnStateChanged{Powered: powered})
}

// ToggleUSB flips USB power.
func (k *Keyboard) ToggleUSB() {
	k.SetUSB(!k.USBPowered())
}

// SetEndpoint selects the preferred output endpoint.
func (k *Keyboard) SetEndpoint(e status.Endpoint) {
	k.mu.Lock()
	k.endpoint = e
	k.mu.Unlock()
	k.Post(event.EndpointChanged{Endpoint: k.SelectedEndpoint()})
}

// ToggleEndpoint switches between USB and BLE.
func (k *Keyboard) ToggleEndpoint() {
	k.mu.RLock()
	e := k.endpoint
	k.mu.RUnlock()
	if e == status.EndpointUSB {
		k.SetEndpoint(status.EndpointBLE)
	} else {
		k.SetEndpoint(status.EndpointUSB)
	}
}

// SelectProfile makes slot i the active profile. Out of range slots are
// ignored.
func (k *Keyboard) SelectProfile(i int) {
	k.mu.Lock()
	if i < 0 || i >= len(k.slots) {
		k.mu.Unlock()
		return
	}
	k.profile = i
	k.mu.Unlock()
	k.Post(event.ActiveProfileChanged{Index: i})
}

// NextProfile selects the following profile slot, wrapping around.
func (k *Keyboard) NextProfile() {
	k.SelectProfile((k.ActiveProfileIndex() + 1) % k.cfg.Profiles)
}

// SetConnected sets whether the active profile's host is connected.
func (k *Keyboard) SetConnected(connected bool) {
	k.mu.Lock()
	slot := &k.slots[k.profile]
	slot.connected = connected
	if connected {
		slot.bonded = true
	}
	idx := k.profile
	k.mu.Unlock()
	k.Post(event.ActiveProfileChanged{Index: idx})
}

// ToggleConnected flips the connection of the active profile.
func (k *Keyboard) ToggleConnected() {
	k.SetConnected(!k.ActiveProfileConnected())
}

// ClearProfile removes the bond of the active profile, leaving it open for
// pairing.
func (k *Keyboard) ClearProfile() {
	k.mu.Lock()
	k.slots[k.profile] = profileSlot{}
	idx := k.profile
	k.mu.Unlock()
	k.Post(event.ActiveProfileChanged{Index: idx})
}

// SetLayer activates layer.
func (k *Keyboard) SetLayer(layer uint8) {
	k.mu.Lock()
	k.layer = layer
	k.mu.Unlock()
	k.Post(event.LayerStateChanged{Layer: layer, Active: true})
}

// NextLayer activates the following configured layer, wrapping around.
func (k *Keyboard) NextLayer() {
	n := max(len(k.cfg.Layers), 1)
	k.SetLayer(uint8((int(k.HighestLayerActive()) + 1) % n))
}

// SetWPM sets the typing speed.
func (k *Keyboard) SetWPM(wpm uint8) {
	k.mu.Lock()
	k.wpm = wpm
	k.mu.Unlock()
	k.Post(event.WPMStateChanged{State: wpm})
}

// Type bumps the typing speed as if a burst of keys was pressed.
func (k *Keyboard) Type() {
	k.mu.RLock()
	wpm := int(k.wpm) + 15
	k.mu.RUnlock()
	k.SetWPM(uint8(min(wpm, 250)))
}

// Reset restores the state New starts with and posts a full set of events.
func (k *Keyboard) Reset() {
	k.mu.Lock()
	k.battery = status.MaxBattery
	k.batteryFail = false
	k.usb = false
	k.endpoint = status.EndpointBLE
	k.profile = 0
	for i := range k.slots {
		k.slots[i] = profileSlot{}
	}
	k.slots[0] = profileSlot{connected: true, bonded: true}
	k.layer = 0
	k.wpm = 0
	k.mu.Unlock()

	k.Post(event.BatteryStateChanged{StateOfCharge: status.MaxBattery})
	k.Post(event.USBConnStateChanged{})
	k.Post(event.EndpointChanged{Endpoint: status.EndpointBLE})
	k.Post(event.ActiveProfileChanged{})
	k.Post(event.LayerStateChanged{Active: true})
	k.Post(event.WPMStateChanged{})
}

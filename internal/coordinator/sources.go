package coordinator

import "github.com/phinze/niceview/internal/status"

// Power reports battery and USB power state.
type Power interface {
	StateOfCharge() (uint8, error)
	USBPowered() bool
}

// Connectivity reports the output endpoint and the active BLE profile.
type Connectivity interface {
	SelectedEndpoint() status.Endpoint
	ActiveProfileIndex() int
	ActiveProfileConnected() bool
	// ActiveProfileOpen reports whether the active profile has no bond.
	ActiveProfileOpen() bool
}

// Keymap reports the active layer.
type Keymap interface {
	HighestLayerActive() uint8
	// LayerName returns the configured label, or "" when none is set.
	LayerName(layer uint8) string
}

// TypingSpeed reports the words-per-minute estimate.
type TypingSpeed interface {
	WPM() uint8
}

// Sources groups the collaborators the status listeners read from. A nil
// field disables the corresponding listener.
type Sources struct {
	Power        Power
	Connectivity Connectivity
	Keymap       Keymap
	TypingSpeed  TypingSpeed
}

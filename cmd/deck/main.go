package main

import (
	"context"
	"fmt"
	"image/color"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/phinze/niceview/internal/app"
	"github.com/phinze/niceview/internal/config"
	"github.com/phinze/niceview/internal/display/deck"
	"github.com/phinze/niceview/internal/modules/sim"
	"golang.org/x/image/colornames"
	"rafaelmartins.com/p/streamdeck"
)

// Device timings.
const (
	pollInterval = 2 * time.Second
	stopTimeout  = 2 * time.Second
	closeTimeout = 3 * time.Second
)

func main() {
	log.Println("=== nice!view Stream Deck mirror ===")
	log.Println("Press Ctrl+C to exit")

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	wakeCh := wakeEvents()

	// One session per connected device. A session ends on disconnect, wake
	// or shutdown, and the display state starts over with the next one.
	for {
		device, err := openDevice(ctx)
		if err != nil {
			break
		}
		s := &session{cfg: cfg, device: device}
		if err := s.run(ctx, wakeCh); err != nil {
			log.Printf("Failed to run session: %v", err)
		}
		if ctx.Err() != nil {
			break
		}
		log.Println("Waiting for device reconnect...")
	}
	log.Println("Exiting...")
}

// openDevice polls until a Stream Deck opens or ctx is cancelled.
func openDevice(ctx context.Context) (*streamdeck.Device, error) {
	ticker := time.NewTicker(pollInterval)
	defer ticker.Stop()

	for attempt := 0; ; attempt++ {
		device, err := tryOpen()
		if err == nil {
			log.Printf("Connected to: %s", device.GetModelName())
			return device, nil
		}
		if attempt == 0 {
			log.Printf("Waiting for device: %v", err)
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-ticker.C:
		}
	}
}

func tryOpen() (*streamdeck.Device, error) {
	device, err := streamdeck.GetDevice("")
	if err != nil {
		return nil, err
	}
	if err := device.Open(); err != nil {
		return nil, fmt.Errorf("failed to open device: %w", err)
	}
	return device, nil
}

// within runs fn and reports whether it returned before d elapsed. fn keeps
// running in the background after a timeout.
func within(d time.Duration, fn func()) bool {
	done := make(chan struct{})
	go func() {
		defer close(done)
		fn()
	}()

	select {
	case <-done:
		return true
	case <-time.After(d):
		return false
	}
}

// keyAction is a simulator control bound to a Stream Deck key.
type keyAction struct {
	name   string
	color  color.RGBA
	action func(*sim.Keyboard)
}

var keyActions = []keyAction{
	{"plug/unplug USB", colornames.Orange, (*sim.Keyboard).ToggleUSB},
	{"toggle output", colornames.Deepskyblue, (*sim.Keyboard).ToggleEndpoint},
	{"next profile", colornames.Purple, (*sim.Keyboard).NextProfile},
	{"connect/disconnect", colornames.Limegreen, (*sim.Keyboard).ToggleConnected},
	{"clear bond", colornames.Red, (*sim.Keyboard).ClearProfile},
	{"next layer", colornames.Yellow, (*sim.Keyboard).NextLayer},
	{"type burst", colornames.Cyan, (*sim.Keyboard).Type},
	{"reset", colornames.White, (*sim.Keyboard).Reset},
}

// session mirrors the display on one connected device.
type session struct {
	cfg    config.Config
	device *streamdeck.Device
}

// run drives a fresh display stack from the device until it disconnects, the
// system wakes or ctx is cancelled. The device is closed on return.
func (s *session) run(ctx context.Context, wakeCh <-chan struct{}) error {
	defer func() {
		if !within(closeTimeout, func() { s.device.Close() }) {
			log.Println("Device close timed out")
		}
	}()

	s.device.SetBrightness(80)
	s.device.ForEachKey(func(key streamdeck.KeyID) error {
		return s.device.ClearKey(key)
	})

	sink, err := deck.New(s.device)
	if err != nil {
		return fmt.Errorf("failed to create strip sink: %w", err)
	}
	a, err := app.New(s.cfg, time.Second)
	if err != nil {
		return fmt.Errorf("failed to build display: %w", err)
	}
	a.Coordinator.AddSink(sink)
	a.Listen()

	setupKeys(s.device, a.Keyboard)
	setupDials(s.device, a.Keyboard)

	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	handlerErrs := make(chan error, 8)
	disconnected := make(chan error, 1)
	go func() {
		disconnected <- s.device.Listen(handlerErrs)
	}()
	go func() {
		if err := a.Coordinator.Start(runCtx); err != nil {
			log.Printf("Failed to start coordinator: %v", err)
		}
	}()

	log.Println("Ready! Keys and dials drive the simulated keyboard")

wait:
	for {
		select {
		case err := <-handlerErrs:
			log.Printf("Failed to handle input: %v", err)
		case <-ctx.Done():
			log.Println("Shutting down...")
			break wait
		case err := <-disconnected:
			log.Printf("Device disconnected: %v", err)
			break wait
		case <-wakeCh:
			log.Println("Reconnecting device after wake...")
			break wait
		}
	}

	cancel()
	if !within(stopTimeout, func() { a.Coordinator.Stop() }) {
		log.Println("Cleanup timed out")
	}
	return nil
}

func setupKeys(device *streamdeck.Device, kb *sim.Keyboard) {
	device.ForEachKey(func(key streamdeck.KeyID) error {
		idx := int(key - streamdeck.KEY_1)
		if idx >= len(keyActions) {
			return nil
		}
		ka := keyActions[idx]
		device.SetKeyColor(key, ka.color)

		return device.AddKeyHandler(key, func(d *streamdeck.Device, k *streamdeck.Key) error {
			log.Printf("Key: %s", ka.name)
			ka.action(kb)
			return nil
		})
	})
}

// setupDials binds the dials in order: battery level, layer, typing speed
// and profile. Pressing the first dial toggles a battery gauge failure.
func setupDials(device *streamdeck.Device, kb *sim.Keyboard) {
	if device.GetDialCount() == 0 {
		log.Println("No dials on this device")
		return
	}

	failing := false
	idx := 0
	device.ForEachDial(func(dial streamdeck.DialID) error {
		n := idx
		idx++

		switch n {
		case 0:
			device.AddDialSwitchHandler(dial, func(d *streamdeck.Device, di *streamdeck.Dial) error {
				failing = !failing
				log.Printf("Dial: battery gauge failing=%v", failing)
				kb.FailBattery(failing)
				return nil
			})
		}

		return device.AddDialRotateHandler(dial, func(d *streamdeck.Device, di *streamdeck.Dial, delta int8) error {
			switch n {
			case 0:
				kb.AdjustBattery(int(delta) * 5)
			case 1:
				if delta > 0 {
					kb.NextLayer()
				} else {
					kb.SetLayer(0)
				}
			case 2:
				wpm := int(kb.WPM()) + int(delta)*5
				kb.SetWPM(uint8(min(max(wpm, 0), 250)))
			case 3:
				kb.NextProfile()
			}
			return nil
		})
	})
}

// Package replay drives a simulated keyboard from a recorded JSON-lines
// stream.
//
// Each line is an envelope:
//
//	{"diff": true, "delayMs": 250, "payload": {"battery": 80, "usb": true}}
//
// A diff payload is merged field by field. A non-diff envelope with an empty
// payload resets the keyboard. delayMs waits before the line is applied.
package replay

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"time"

	"github.com/phinze/niceview/internal/event"
	"github.com/phinze/niceview/internal/module"
	"github.com/phinze/niceview/internal/modules/sim"
	"github.com/phinze/niceview/internal/status"
)

// Envelope is a single stream line.
type Envelope struct {
	Diff    bool            `json:"diff"`
	DelayMs int             `json:"delayMs"`
	Payload json.RawMessage `json:"payload"`
}

// Module replays a stream into a keyboard.
type Module struct {
	module.BaseModule

	src      io.Reader
	keyboard *sim.Keyboard
	lines    int

	cancel context.CancelFunc
	done   chan struct{}
}

// New creates a module reading from src.
func New(src io.Reader, keyboard *sim.Keyboard) *Module {
	return &Module{
		BaseModule: module.NewBaseModule("replay"),
		src:        src,
		keyboard:   keyboard,
		done:       make(chan struct{}),
	}
}

// Init starts reading the stream in the background.
func (m *Module) Init(ctx context.Context, bus *event.Bus) error {
	if err := m.BaseModule.Init(ctx, bus); err != nil {
		return err
	}
	streamCtx, cancel := context.WithCancel(ctx)
	m.cancel = cancel
	go m.stream(streamCtx)

	log.Println("Replay module initialized")
	return nil
}

// Stop cancels the stream.
func (m *Module) Stop() error {
	if m.cancel != nil {
		m.cancel()
	}
	return m.BaseModule.Stop()
}

// Done is closed once the stream has been fully read or cancelled.
func (m *Module) Done() <-chan struct{} {
	return m.done
}

func (m *Module) stream(ctx context.Context) {
	defer close(m.done)

	scanner := bufio.NewScanner(m.src)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	for scanner.Scan() {
		m.lines++
		var env Envelope
		if err := json.Unmarshal(scanner.Bytes(), &env); err != nil {
			log.Printf("Failed to parse replay line %d: %v", m.lines, err)
			continue
		}

		if env.DelayMs > 0 {
			select {
			case <-ctx.Done():
				return
			case <-time.After(time.Duration(env.DelayMs) * time.Millisecond):
			}
		} else if ctx.Err() != nil {
			return
		}

		if err := Apply(m.keyboard, env); err != nil {
			log.Printf("Failed to apply replay line %d: %v", m.lines, err)
		}
	}

	if err := scanner.Err(); err != nil {
		log.Printf("Scanner error: %v", err)
	}
	log.Printf("Replay finished after %d lines", m.lines)
}

// Apply merges one envelope into k.
func Apply(k *sim.Keyboard, env Envelope) error {
	var payload map[string]interface{}
	if len(env.Payload) > 0 {
		if err := json.Unmarshal(env.Payload, &payload); err != nil {
			return fmt.Errorf("failed to parse payload: %w", err)
		}
	}

	if !env.Diff && len(payload) == 0 {
		k.Reset()
		return nil
	}
	mergePayloadMap(k, payload)
	return nil
}

// mergePayloadMap applies only the fields present in src.
func mergePayloadMap(k *sim.Keyboard, src map[string]interface{}) {
	if v, ok := src["batteryFail"].(bool); ok {
		k.FailBattery(v)
	}
	if v, ok := src["battery"].(float64); ok {
		k.SetBattery(int(v))
	}
	if v, ok := src["usb"].(bool); ok {
		k.SetUSB(v)
	}
	if v, ok := src["endpoint"].(string); ok {
		k.SetEndpoint(status.ParseEndpoint(v))
	}
	if v, ok := src["profile"].(float64); ok {
		k.SelectProfile(int(v))
	}
	if v, ok := src["connected"].(bool); ok {
		k.SetConnected(v)
	}
	if v, ok := src["open"].(bool); ok && v {
		k.ClearProfile()
	}
	if v, ok := src["layer"].(float64); ok && v >= 0 && v <= 255 {
		k.SetLayer(uint8(v))
	}
	if v, ok := src["wpm"].(float64); ok && v >= 0 && v <= 255 {
		k.SetWPM(uint8(v))
	}
}

package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/phinze/niceview/internal/app"
	"github.com/phinze/niceview/internal/config"
	"github.com/phinze/niceview/internal/display/preview"
	"github.com/phinze/niceview/internal/modules/replay"
	"github.com/phinze/niceview/internal/modules/sim"
)

func main() {
	scale := flag.Int("scale", 4, "window scale factor")
	tick := flag.Duration("tick", time.Second, "simulation step (0 disables battery drain and WPM decay)")
	replayPath := flag.String("replay", "", "JSON-lines event stream to replay")
	trace := flag.String("trace", "", "comma separated event kinds to log, e.g. layer_state_changed")
	flag.Parse()

	log.Println("=== nice!view preview ===")
	log.Println("Press Escape to exit")

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	a, err := app.New(cfg, *tick)
	if err != nil {
		log.Fatalf("Failed to build display: %v", err)
	}

	if *trace != "" {
		if err := a.Trace(strings.Split(*trace, ",")...); err != nil {
			log.Fatalf("Failed to trace events: %v", err)
		}
	}

	if *replayPath != "" {
		f, err := os.Open(*replayPath)
		if err != nil {
			log.Fatalf("Failed to open replay: %v", err)
		}
		defer f.Close()
		a.Coordinator.RegisterModule(replay.New(f, a.Keyboard))
	}

	bindings := keyBindings(a.Keyboard)
	for _, b := range bindings {
		log.Printf("  %-6s %s", b.Key, b.Help)
	}

	win := preview.New("nice!view", *scale, a.Coordinator.Screen().Palette(), bindings...)
	a.Coordinator.AddSink(win)
	a.Listen()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigChan
		log.Println("\nReceived shutdown signal")
		os.Exit(0)
	}()

	go func() {
		if err := a.Coordinator.Start(ctx); err != nil {
			log.Fatalf("Failed to start coordinator: %v", err)
		}
	}()

	// ebiten needs the main goroutine.
	if err := win.Run(); err != nil {
		log.Printf("Window error: %v", err)
	}

	cancel()
	a.Coordinator.Stop()
	log.Println("Exiting...")
}

func keyBindings(kb *sim.Keyboard) []preview.Binding {
	failing := false
	return []preview.Binding{
		{Key: ebiten.KeyArrowUp, Help: "battery +10", Action: func() { kb.AdjustBattery(10) }},
		{Key: ebiten.KeyArrowDown, Help: "battery -10", Action: func() { kb.AdjustBattery(-10) }},
		{Key: ebiten.KeyF, Help: "toggle battery gauge failure", Action: func() {
			failing = !failing
			kb.FailBattery(failing)
		}},
		{Key: ebiten.KeyU, Help: "plug/unplug USB", Action: kb.ToggleUSB},
		{Key: ebiten.KeyE, Help: "toggle USB/BLE output", Action: kb.ToggleEndpoint},
		{Key: ebiten.KeyP, Help: "next BLE profile", Action: kb.NextProfile},
		{Key: ebiten.KeyC, Help: "connect/disconnect host", Action: kb.ToggleConnected},
		{Key: ebiten.KeyX, Help: "clear profile bond", Action: kb.ClearProfile},
		{Key: ebiten.KeyL, Help: "next layer", Action: kb.NextLayer},
		{Key: ebiten.KeySpace, Help: "type a burst", Action: kb.Type},
		{Key: ebiten.KeyR, Help: "reset", Action: kb.Reset},
	}
}

package main

import (
	"flag"
	"log"
	"strconv"
	"strings"

	"github.com/phinze/niceview/internal/app"
	"github.com/phinze/niceview/internal/config"
	"github.com/phinze/niceview/internal/display/snapshot"
	"github.com/phinze/niceview/internal/event"
	"github.com/phinze/niceview/internal/status"
)

func main() {
	out := flag.String("o", "niceview.png", "output file (png, jpg, gif, bmp or tiff)")
	scale := flag.Int("scale", 4, "scale factor")
	battery := flag.Int("battery", 100, "battery level")
	usb := flag.Bool("usb", false, "USB power present")
	endpoint := flag.String("endpoint", "ble", "output endpoint (usb or ble)")
	profile := flag.Int("profile", 0, "active BLE profile (0-based)")
	connected := flag.Bool("connected", true, "active profile connected")
	open := flag.Bool("open", false, "active profile has no bond")
	layer := flag.Int("layer", 0, "active layer")
	wpm := flag.String("wpm", "", "comma separated WPM samples, oldest first")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	a, err := app.New(cfg, 0)
	if err != nil {
		log.Fatalf("Failed to build display: %v", err)
	}

	kb := a.Keyboard
	kb.SetBattery(*battery)
	kb.SetUSB(*usb)
	kb.SetEndpoint(status.ParseEndpoint(*endpoint))
	kb.SelectProfile(*profile)
	if *open {
		kb.ClearProfile()
	} else {
		kb.SetConnected(*connected)
	}
	if *layer < 0 || *layer > 255 {
		log.Fatalf("Invalid layer %d", *layer)
	}
	kb.SetLayer(uint8(*layer))
	a.Listen()

	if *wpm != "" {
		for _, field := range strings.Split(*wpm, ",") {
			v, err := strconv.ParseUint(strings.TrimSpace(field), 10, 8)
			if err != nil {
				log.Fatalf("Invalid WPM sample %q: %v", field, err)
			}
			a.Coordinator.Bus().Dispatch(event.WPMStateChanged{State: uint8(v)})
		}
	}

	a.Coordinator.AddSink(&snapshot.Sink{Path: *out, Scale: *scale})
	a.Coordinator.Flush()
	log.Printf("Wrote %s", *out)
}

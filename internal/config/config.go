// Package config loads the display settings from the environment.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/phinze/niceview/internal/canvas"
	"github.com/phinze/niceview/internal/render"
)

// Config holds the display settings.
type Config struct {
	DeviceName        string
	Rotation          canvas.Rotation
	Inverted          bool
	Font              string
	ProfileIndicators bool
	WPMGraph          bool
	Layers            []string
	Profiles          int
	Displays          int
}

// RenderOptions returns the renderer options for c.
func (c Config) RenderOptions() render.Options {
	return render.Options{
		DeviceName:        c.DeviceName,
		Inverted:          c.Inverted,
		ProfileIndicators: c.ProfileIndicators,
		ProfileSlots:      c.Profiles,
		WPMGraph:          c.WPMGraph,
	}
}

// Default returns the settings used when no variables are set.
func Default() Config {
	return Config{
		DeviceName: "BEN",
		Rotation:   canvas.Rotate90,
		Font:       render.FontGoBold,
		Profiles:   render.MaxProfileSlots,
		Displays:   1,
	}
}

// Load reads the NICEVIEW_* environment variables.
func Load() (Config, error) {
	return load(os.Getenv)
}

func load(getenv func(string) string) (Config, error) {
	cfg := Default()

	if name := getenv("NICEVIEW_DEVICE_NAME"); name != "" {
		cfg.DeviceName = name
	}

	if v := getenv("NICEVIEW_ROTATION"); v != "" {
		deg, err := strconv.Atoi(v)
		if err != nil {
			return Config{}, fmt.Errorf("invalid NICEVIEW_ROTATION %q: %w", v, err)
		}
		rot, err := canvas.ParseRotation(deg)
		if err != nil {
			return Config{}, fmt.Errorf("invalid NICEVIEW_ROTATION: %w", err)
		}
		cfg.Rotation = rot
	}

	var err error
	if cfg.Inverted, err = parseBool(getenv, "NICEVIEW_INVERTED"); err != nil {
		return Config{}, err
	}
	if cfg.ProfileIndicators, err = parseBool(getenv, "NICEVIEW_PROFILE_INDICATORS"); err != nil {
		return Config{}, err
	}
	if cfg.WPMGraph, err = parseBool(getenv, "NICEVIEW_WPM_GRAPH"); err != nil {
		return Config{}, err
	}

	if f := getenv("NICEVIEW_FONT"); f != "" {
		switch f {
		case render.FontGoBold, render.FontTinyfont:
			cfg.Font = f
		default:
			return Config{}, fmt.Errorf("invalid NICEVIEW_FONT %q (want %s or %s)", f, render.FontGoBold, render.FontTinyfont)
		}
	}

	if v := getenv("NICEVIEW_LAYERS"); v != "" {
		for _, name := range strings.Split(v, ",") {
			cfg.Layers = append(cfg.Layers, strings.TrimSpace(name))
		}
		if len(cfg.Layers) > 256 {
			return Config{}, fmt.Errorf("NICEVIEW_LAYERS has %d entries, at most 256 layers are supported", len(cfg.Layers))
		}
	}

	if cfg.Profiles, err = parseCount(getenv, "NICEVIEW_PROFILES", cfg.Profiles, render.MaxProfileSlots); err != nil {
		return Config{}, err
	}
	if cfg.Displays, err = parseCount(getenv, "NICEVIEW_DISPLAYS", cfg.Displays, 8); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

func parseBool(getenv func(string) string, key string) (bool, error) {
	v := getenv(key)
	if v == "" {
		return false, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, fmt.Errorf("invalid %s %q: %w", key, v, err)
	}
	return b, nil
}

func parseCount(getenv func(string) string, key string, def, limit int) (int, error) {
	v := getenv(key)
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, v, err)
	}
	if n < 1 || n > limit {
		return 0, fmt.Errorf("%s must be between 1 and %d, got %d", key, limit, n)
	}
	return n, nil
}

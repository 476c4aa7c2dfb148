// Copyright (c) 2019 devblok
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package core

import (
	"os"
	"strconv"

	"github.com/gobuffalo/envy"
	"github.com/joho/godotenv"
	"github.com/pkg/errors"
)

// Configuration defines the global program configuration
type Configuration struct {
	Window WindowConfiguration
	Time   TimeConfiguration
	Assets AssetConfiguration
	Log    LogConfiguration
}

// WindowConfiguration is used to configure the window and its GL context
type WindowConfiguration struct {
	Title        string
	ScreenWidth  int
	ScreenHeight int

	// Backend selects the windowing library, "sdl" or "glfw"
	Backend string

	// ContextMajor and ContextMinor request a core profile context version
	ContextMajor int
	ContextMinor int

	// Hidden creates the window without showing it
	Hidden bool

	// VSync waits for the vertical retrace on every swap
	VSync bool
}

// TimeConfiguration is used to configure time services
type TimeConfiguration struct {
	// FramesPerSecond caps frames per second that is put out
	// To unlimit, set to 0
	FramesPerSecond int
}

// AssetConfiguration points at the shader and texture sources
type AssetConfiguration struct {
	// Path is a directory or a .kar archive. Empty means the
	// assets built into the binary.
	Path string
}

// LogConfiguration configures the logger
type LogConfiguration struct {
	Level string
}

// Environment variables read by LoadConfiguration
const (
	EnvWidth    = "LEARNGL_WIDTH"
	EnvHeight   = "LEARNGL_HEIGHT"
	EnvTitle    = "LEARNGL_TITLE"
	EnvFPS      = "LEARNGL_FPS"
	EnvBackend  = "LEARNGL_BACKEND"
	EnvAssets   = "LEARNGL_ASSETS"
	EnvLogLevel = "LEARNGL_LOG_LEVEL"
)

// DefaultConfiguration returns the configuration the tutorial programs
// run with when nothing is overridden
func DefaultConfiguration() Configuration {
	return Configuration{
		Window: WindowConfiguration{
			Title:        "learn-opengl",
			ScreenWidth:  800,
			ScreenHeight: 600,
			Backend:      "sdl",
			ContextMajor: 3,
			ContextMinor: 3,
			VSync:        true,
		},
		Time: TimeConfiguration{
			FramesPerSecond: 60,
		},
		Log: LogConfiguration{
			Level: "info",
		},
	}
}

// LoadConfiguration loads the given .env files, skipping those that do
// not exist, and applies LEARNGL_* variables over DefaultConfiguration.
// Variables already set in the environment win over .env files.
func LoadConfiguration(files ...string) (Configuration, error) {
	for _, f := range files {
		if _, err := os.Stat(f); os.IsNotExist(err) {
			continue
		}
		if err := godotenv.Load(f); err != nil {
			return Configuration{}, errors.Wrapf(err, "loading %s", f)
		}
	}
	envy.Reload()

	cfg := DefaultConfiguration()
	var err error
	if cfg.Window.ScreenWidth, err = envInt(EnvWidth, cfg.Window.ScreenWidth); err != nil {
		return Configuration{}, err
	}
	if cfg.Window.ScreenHeight, err = envInt(EnvHeight, cfg.Window.ScreenHeight); err != nil {
		return Configuration{}, err
	}
	if cfg.Time.FramesPerSecond, err = envInt(EnvFPS, cfg.Time.FramesPerSecond); err != nil {
		return Configuration{}, err
	}
	cfg.Window.Title = envy.Get(EnvTitle, cfg.Window.Title)
	cfg.Window.Backend = envy.Get(EnvBackend, cfg.Window.Backend)
	cfg.Assets.Path = envy.Get(EnvAssets, cfg.Assets.Path)
	cfg.Log.Level = envy.Get(EnvLogLevel, cfg.Log.Level)

	return cfg, cfg.Validate()
}

// Validate checks the configuration for values no backend can honor
func (c Configuration) Validate() error {
	if c.Window.ScreenWidth <= 0 || c.Window.ScreenHeight <= 0 {
		return errors.Errorf("invalid screen size %dx%d", c.Window.ScreenWidth, c.Window.ScreenHeight)
	}
	if c.Time.FramesPerSecond < 0 {
		return errors.Errorf("invalid frames per second %d", c.Time.FramesPerSecond)
	}
	switch c.Window.Backend {
	case "sdl", "glfw":
	default:
		return errors.Errorf("unknown window backend %q", c.Window.Backend)
	}
	return nil
}

func envInt(key string, def int) (int, error) {
	raw := envy.Get(key, "")
	if raw == "" {
		return def, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, errors.Wrapf(err, "%s", key)
	}
	return v, nil
}

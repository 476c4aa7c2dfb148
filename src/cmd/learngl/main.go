// Copyright (c) 2019 devblok
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"runtime/pprof"
	"runtime/trace"
	"strings"

	"github.com/gobuffalo/packr"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	"github.com/devblok/learngl/src/app"
	"github.com/devblok/learngl/src/assets"
	"github.com/devblok/learngl/src/core"
	"github.com/devblok/learngl/src/gfx/glr"
	"github.com/devblok/learngl/src/gfx/glr/native"
	"github.com/devblok/learngl/src/platform"
	"github.com/devblok/learngl/src/platform/glfwwin"
	"github.com/devblok/learngl/src/platform/sdlwin"
)

func init() {
	runtime.LockOSThread()
}

var (
	sceneName  = flag.String("scene", "triangle", "Scene to draw: "+strings.Join(app.SceneNames(), "|"))
	backend    = flag.String("backend", "", "Window backend: sdl|glfw")
	assetPath  = flag.String("assets", "", "Asset directory or .kar archive, built in assets when empty")
	envFile    = flag.String("env", ".env", "Environment file with LEARNGL_* settings")
	debug      = flag.Bool("debug", false, "Log at debug level")
	width      = flag.Int("width", 0, "Window width, overrides configuration")
	height     = flag.Int("height", 0, "Window height, overrides configuration")
	fps        = flag.Int("fps", -1, "Frames per second, 0 for uncapped, overrides configuration")
	cpuProfile = flag.String("cpuprof", "", "Profile CPU usage to file")
	memProfile = flag.String("memprof", "", "Profile memory usage into a file")
	traceFile  = flag.String("trace", "", "Trace output for profiling")
)

func main() {
	flag.Parse()
	if err := run(); err != nil {
		log.WithError(err).Error("learngl failed")
		os.Exit(1)
	}
}

func configure() (core.Configuration, error) {
	cfg, err := core.LoadConfiguration(*envFile)
	if err != nil {
		return cfg, err
	}
	if *backend != "" {
		cfg.Window.Backend = *backend
	}
	if *assetPath != "" {
		cfg.Assets.Path = *assetPath
	}
	if *debug {
		cfg.Log.Level = "debug"
	}
	if *width > 0 {
		cfg.Window.ScreenWidth = *width
	}
	if *height > 0 {
		cfg.Window.ScreenHeight = *height
	}
	if *fps >= 0 {
		cfg.Time.FramesPerSecond = *fps
	}
	return cfg, cfg.Validate()
}

func openSurface(cfg core.WindowConfiguration) (platform.Surface, error) {
	switch cfg.Backend {
	case "sdl":
		return sdlwin.Open(cfg)
	case "glfw":
		return glfwwin.Open(cfg)
	}
	return nil, fmt.Errorf("unknown window backend %q", cfg.Backend)
}

func openAssets(path string) (assets.Source, error) {
	if path == "" {
		return assets.NewBoxSource(packr.NewBox("../../../assets")), nil
	}
	return assets.OpenPath(path)
}

func run() error {
	if *cpuProfile != "" {
		f, err := os.Create(*cpuProfile)
		if err != nil {
			return err
		}
		defer f.Close()
		if err := pprof.StartCPUProfile(f); err != nil {
			return err
		}
		defer pprof.StopCPUProfile()
	}

	if *traceFile != "" {
		f, err := os.Create(*traceFile)
		if err != nil {
			return err
		}
		defer f.Close()
		if err := trace.Start(f); err != nil {
			return err
		}
		defer trace.Stop()
	}

	cfg, err := configure()
	if err != nil {
		return errors.Wrap(err, "configuration")
	}
	logger, err := core.NewLogger(cfg.Log)
	if err != nil {
		return err
	}
	log.SetLevel(logger.Level)

	scene, err := app.NewScene(*sceneName)
	if err != nil {
		return err
	}

	src, err := openAssets(cfg.Assets.Path)
	if err != nil {
		return errors.Wrap(err, "assets")
	}
	loader := assets.NewLoader(src, logger)
	defer loader.Close()

	surface, err := openSurface(cfg.Window)
	if err != nil {
		return err
	}
	window := platform.NewWindowHandle(surface)
	defer window.Close()

	fn, err := native.New()
	if err != nil {
		return err
	}
	glctx := glr.NewContext(fn, logger)
	info := glctx.Info()
	logger.WithFields(log.Fields{
		"vendor":   info.Vendor,
		"renderer": info.Renderer,
		"version":  info.Version,
	}).Info("OpenGL context ready")

	defer scene.Release()
	if err := scene.Setup(glctx, loader); err != nil {
		return err
	}
	glctx.CheckErrors("scene setup")

	clock := core.NewTime(cfg.Time)
	defer clock.Stop()

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()
	if err := app.Run(ctx, window.Surface(), glctx, scene, clock); err != nil {
		return err
	}

	if *memProfile != "" {
		f, err := os.Create(*memProfile)
		if err != nil {
			return err
		}
		defer f.Close()
		if err := pprof.WriteHeapProfile(f); err != nil {
			return err
		}
	}
	return nil
}

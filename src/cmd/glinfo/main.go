// Copyright (c) 2019 devblok
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package main

import (
	"encoding/json"
	"fmt"
	"os"
	"runtime"

	log "github.com/sirupsen/logrus"

	"github.com/devblok/learngl/src/core"
	"github.com/devblok/learngl/src/gfx/glr"
	"github.com/devblok/learngl/src/gfx/glr/native"
	"github.com/devblok/learngl/src/platform"
	"github.com/devblok/learngl/src/platform/sdlwin"
)

func init() {
	runtime.LockOSThread()
}

func main() {
	cfg := core.DefaultConfiguration().Window
	cfg.Hidden = true

	surface, err := sdlwin.Open(cfg)
	if err != nil {
		log.WithError(err).Fatal("Failed to open window")
	}
	window := platform.NewWindowHandle(surface)
	defer window.Close()

	fn, err := native.New()
	if err != nil {
		log.WithError(err).Error("Failed to load OpenGL")
		window.Close()
		os.Exit(1)
	}
	ctx := glr.NewContext(fn, log.StandardLogger())

	bytes, err := json.Marshal(ctx.Info())
	if err != nil {
		log.WithError(err).Error("Failed to encode info")
		window.Close()
		os.Exit(1)
	}
	fmt.Printf("%s\n", bytes)
}

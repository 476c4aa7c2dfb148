// Copyright (c) 2019 devblok
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

// Package app runs a Scene in a window.
package app

import (
	"context"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/devblok/learngl/src/core"
	"github.com/devblok/learngl/src/gfx/glr"
	"github.com/devblok/learngl/src/platform"
)

// statsInterval is how often Run logs the frame rate.
const statsInterval = 5 * time.Second

// Frame runs one iteration of the render loop: poll events, draw and
// present. It reports whether GL errors were pending after the frame.
// Nothing is drawn once the surface has been asked to close.
func Frame(surface platform.Surface, glctx *glr.Context, scene Scene) (bool, error) {
	surface.PollEvents()
	if surface.ShouldClose() {
		return false, nil
	}
	if err := scene.Draw(glctx); err != nil {
		return false, err
	}
	surface.SwapBuffers()
	return glctx.CheckErrors("frame"), nil
}

// Run draws scene on every tick of clock until the surface is asked to
// close or ctx is cancelled. The viewport follows the framebuffer size.
// Run blocks and must be called from the thread owning the GL context.
func Run(ctx context.Context, surface platform.Surface, glctx *glr.Context, scene Scene, clock *core.Time) error {
	logger := glctx.Logger()

	surface.OnResize(func(width, height int) {
		glctx.Viewport(width, height)
		logger.WithFields(log.Fields{"width": width, "height": height}).Debug("Viewport resized")
	})
	glctx.Viewport(surface.FramebufferSize())

	var (
		frames    int
		lastStats = clock.Elapsed()
	)
	for !surface.ShouldClose() {
		select {
		case <-ctx.Done():
			logger.Info("Render loop cancelled")
			return nil
		case <-clock.FpsTicker().C:
		}

		if _, err := Frame(surface, glctx, scene); err != nil {
			return err
		}
		frames++

		if now := clock.Elapsed(); now-lastStats >= statsInterval {
			logger.WithField("fps", float64(frames)/(now-lastStats).Seconds()).Debug("Frame rate")
			frames, lastStats = 0, now
		}
	}
	logger.Info("Window closed")
	return nil
}

// Copyright (c) 2019 devblok
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

// Package sdlwin opens a platform.Surface with SDL2.
package sdlwin

import (
	log "github.com/sirupsen/logrus"
	"github.com/veandco/go-sdl2/sdl"

	"github.com/devblok/learngl/src/core"
	"github.com/devblok/learngl/src/gfx/glr"
	"github.com/devblok/learngl/src/platform"
)

// Window is an SDL window with a current GL core profile context.
type Window struct {
	window  *sdl.Window
	context sdl.GLContext
	close   bool
	resize  func(width, height int)

	// drawable reports the framebuffer size in pixels, which differs
	// from the window size on HiDPI displays
	drawable func() (int32, int32)
}

var _ platform.Surface = (*Window)(nil)

// Open initializes SDL video, creates a resizable window and makes a GL
// context of the configured version current on the calling thread.
func Open(cfg core.WindowConfiguration) (w *Window, err error) {
	if err := sdl.Init(sdl.INIT_VIDEO | sdl.INIT_EVENTS); err != nil {
		return nil, &glr.InitError{Stage: "sdl", Err: err}
	}
	defer func() {
		if err != nil {
			sdl.Quit()
		}
	}()

	for attr, value := range map[sdl.GLattr]int{
		sdl.GL_CONTEXT_MAJOR_VERSION: cfg.ContextMajor,
		sdl.GL_CONTEXT_MINOR_VERSION: cfg.ContextMinor,
		sdl.GL_CONTEXT_PROFILE_MASK:  sdl.GL_CONTEXT_PROFILE_CORE,
		sdl.GL_DOUBLEBUFFER:          1,
	} {
		if err := sdl.GLSetAttribute(attr, value); err != nil {
			return nil, &glr.InitError{Stage: "context", Err: err}
		}
	}

	flags := uint32(sdl.WINDOW_OPENGL | sdl.WINDOW_RESIZABLE)
	if cfg.Hidden {
		flags |= sdl.WINDOW_HIDDEN
	}
	window, err := sdl.CreateWindow(cfg.Title,
		sdl.WINDOWPOS_UNDEFINED,
		sdl.WINDOWPOS_UNDEFINED,
		int32(cfg.ScreenWidth),
		int32(cfg.ScreenHeight),
		flags)
	if err != nil {
		return nil, &glr.InitError{Stage: "window", Err: err}
	}

	glctx, err := window.GLCreateContext()
	if err != nil {
		window.Destroy()
		return nil, &glr.InitError{Stage: "context", Err: err}
	}

	interval := 0
	if cfg.VSync {
		interval = 1
	}
	if err := sdl.GLSetSwapInterval(interval); err != nil {
		log.WithError(err).Warn("Swap interval not supported")
	}

	log.WithFields(log.Fields{
		"width":  cfg.ScreenWidth,
		"height": cfg.ScreenHeight,
		"major":  cfg.ContextMajor,
		"minor":  cfg.ContextMinor,
	}).Debug("SDL window opened")
	return &Window{window: window, context: glctx, drawable: window.GLGetDrawableSize}, nil
}

// PollEvents drains the SDL event queue.
func (w *Window) PollEvents() {
	for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
		w.handle(event)
	}
}

// handle applies one event. Quit and Escape request closing, size
// changes forward the drawable size to the resize callback.
func (w *Window) handle(event sdl.Event) {
	switch e := event.(type) {
	case *sdl.QuitEvent:
		w.close = true
	case *sdl.KeyboardEvent:
		if e.Type == sdl.KEYDOWN && e.Keysym.Sym == sdl.K_ESCAPE {
			w.close = true
		}
	case *sdl.WindowEvent:
		if e.Event == sdl.WINDOWEVENT_SIZE_CHANGED && w.resize != nil {
			w.resize(w.FramebufferSize())
		}
	}
}

// ShouldClose implements platform.Surface.
func (w *Window) ShouldClose() bool {
	return w.close
}

// RequestClose implements platform.Surface.
func (w *Window) RequestClose() {
	w.close = true
}

// SwapBuffers implements platform.Surface.
func (w *Window) SwapBuffers() {
	w.window.GLSwap()
}

// FramebufferSize implements platform.Surface.
func (w *Window) FramebufferSize() (int, int) {
	width, height := w.drawable()
	return int(width), int(height)
}

// OnResize implements platform.Surface.
func (w *Window) OnResize(fn func(width, height int)) {
	w.resize = fn
}

// Destroy deletes the context, the window and shuts SDL down.
func (w *Window) Destroy() {
	sdl.GLDeleteContext(w.context)
	if err := w.window.Destroy(); err != nil {
		log.WithError(err).Warn("Destroying SDL window")
	}
	sdl.Quit()
	log.Debug("SDL window destroyed")
}

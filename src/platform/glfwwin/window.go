// Copyright (c) 2019 devblok
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

// Package glfwwin opens a platform.Surface with GLFW.
package glfwwin

import (
	"github.com/go-gl/glfw/v3.3/glfw"
	log "github.com/sirupsen/logrus"

	"github.com/devblok/learngl/src/core"
	"github.com/devblok/learngl/src/gfx/glr"
	"github.com/devblok/learngl/src/platform"
)

// Window is a GLFW window with a current GL core profile context.
type Window struct {
	window *glfw.Window
	resize func(width, height int)
}

var _ platform.Surface = (*Window)(nil)

// Open initializes GLFW, creates a window and makes a forward compatible
// core profile context of the configured version current on the calling
// thread.
func Open(cfg core.WindowConfiguration) (*Window, error) {
	if err := glfw.Init(); err != nil {
		return nil, &glr.InitError{Stage: "glfw", Err: err}
	}

	glfw.WindowHint(glfw.ContextVersionMajor, cfg.ContextMajor)
	glfw.WindowHint(glfw.ContextVersionMinor, cfg.ContextMinor)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
	glfw.WindowHint(glfw.Resizable, glfw.True)
	if cfg.Hidden {
		glfw.WindowHint(glfw.Visible, glfw.False)
	}

	window, err := glfw.CreateWindow(cfg.ScreenWidth, cfg.ScreenHeight, cfg.Title, nil, nil)
	if err != nil {
		glfw.Terminate()
		return nil, &glr.InitError{Stage: "window", Err: err}
	}
	window.MakeContextCurrent()
	if cfg.VSync {
		glfw.SwapInterval(1)
	} else {
		glfw.SwapInterval(0)
	}

	w := &Window{window: window}
	window.SetKeyCallback(func(win *glfw.Window, key glfw.Key, scancode int, action glfw.Action, mods glfw.ModifierKey) {
		if key == glfw.KeyEscape && action == glfw.Press {
			win.SetShouldClose(true)
		}
	})
	window.SetFramebufferSizeCallback(func(_ *glfw.Window, width, height int) {
		if w.resize != nil {
			w.resize(width, height)
		}
	})

	log.WithFields(log.Fields{
		"width":  cfg.ScreenWidth,
		"height": cfg.ScreenHeight,
		"major":  cfg.ContextMajor,
		"minor":  cfg.ContextMinor,
	}).Debug("GLFW window opened")
	return w, nil
}

// PollEvents implements platform.Surface.
func (w *Window) PollEvents() {
	glfw.PollEvents()
}

// ShouldClose implements platform.Surface.
func (w *Window) ShouldClose() bool {
	return w.window.ShouldClose()
}

// RequestClose implements platform.Surface.
func (w *Window) RequestClose() {
	w.window.SetShouldClose(true)
}

// SwapBuffers implements platform.Surface.
func (w *Window) SwapBuffers() {
	w.window.SwapBuffers()
}

// FramebufferSize implements platform.Surface.
func (w *Window) FramebufferSize() (int, int) {
	return w.window.GetFramebufferSize()
}

// OnResize implements platform.Surface.
func (w *Window) OnResize(fn func(width, height int)) {
	w.resize = fn
}

// Destroy destroys the window and terminates GLFW.
func (w *Window) Destroy() {
	w.window.Destroy()
	glfw.Terminate()
	log.Debug("GLFW window destroyed")
}

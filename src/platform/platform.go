// Copyright (c) 2019 devblok
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

// Package platform owns the native window and GL context a renderer
// draws into.
package platform

import (
	"io/ioutil"
)

// Surface is a platform window with a current GL context.
type Surface interface {

	// PollEvents processes pending window system events.
	PollEvents()

	// ShouldClose reports whether closing was requested by the user or
	// by RequestClose.
	ShouldClose() bool

	// RequestClose asks the window to close at the next check.
	RequestClose()

	// SwapBuffers presents the back buffer.
	SwapBuffers()

	// FramebufferSize returns the drawable size in pixels.
	FramebufferSize() (width, height int)

	// OnResize registers fn to be called with the new drawable size
	// whenever the window is resized.
	OnResize(fn func(width, height int))

	// Destroy tears down the context and the window.
	Destroy()
}

// NewWindowHandle takes ownership of surface.
func NewWindowHandle(surface Surface) *WindowHandle {
	return &WindowHandle{surface: surface}
}

// WindowHandle is the single owner of a Surface. The zero value owns
// nothing. The surface is destroyed exactly once, by the first Close of
// whichever handle owns it at that time. A WindowHandle is not safe for
// concurrent use.
type WindowHandle struct {
	surface Surface
}

// Surface returns the owned surface, nil once closed or moved.
func (h *WindowHandle) Surface() Surface {
	if h == nil {
		return nil
	}
	return h.surface
}

// Live reports whether the handle still owns a surface.
func (h *WindowHandle) Live() bool {
	return h.Surface() != nil
}

// Move transfers ownership to a new handle and empties h.
func (h *WindowHandle) Move() *WindowHandle {
	moved := &WindowHandle{surface: h.surface}
	h.surface = nil
	return moved
}

// Close destroys the owned surface. Further calls do nothing.
func (h *WindowHandle) Close() {
	if h == nil || h.surface == nil {
		return
	}
	s := h.surface
	h.surface = nil
	s.Destroy()
}

// ReadAll returns the contents of the file at path as text. A missing or
// unreadable file is an error satisfying os.IsNotExist or os.IsPermission
// as appropriate, an empty file is the empty string.
func ReadAll(path string) (string, error) {
	data, err := ioutil.ReadFile(path)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

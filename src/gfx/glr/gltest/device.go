// Copyright (c) 2019 devblok
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

// Package gltest provides a software implementation of glr.Functions.
// It keeps the object tables, binding points and error queue of an
// OpenGL 3.3 core context and validates calls the way a driver does, so
// resource code can be tested without a display.
package gltest

import (
	"github.com/devblok/learngl/src/gfx/glr"
)

// DrawCall records one draw issued to the device.
type DrawCall struct {
	Mode        glr.Enum
	First       int32
	Count       int32
	Indexed     bool
	IndexType   glr.Enum
	Program     uint32
	VertexArray uint32
}

// Counts is the number of live objects per kind.
type Counts struct {
	Buffers      int
	VertexArrays int
	Shaders      int
	Programs     int
	Textures     int
}

// AttribState is the recorded state of one vertex attribute.
type AttribState struct {
	Enabled    bool
	Size       int32
	Type       glr.Enum
	Normalized bool
	Stride     int32
	Offset     int
	Buffer     uint32
}

// TextureState is the recorded state of one texture object.
type TextureState struct {
	Width          int32
	Height         int32
	InternalFormat int32
	Format         glr.Enum
	Pixels         []byte
	Params         map[glr.Enum]int32
	Levels         int
}

type buffer struct {
	data  []byte
	usage glr.Enum
}

type vertexArray struct {
	element uint32
	attribs map[uint32]*AttribState
}

type texture struct {
	TextureState
}

// Device is a software GL context. The zero value is not usable, create
// one with New.
type Device struct {
	nextID uint32
	errors []glr.Enum
	calls  map[string]int

	buffers     map[uint32]*buffer
	bound       map[glr.Enum]uint32
	arrays      map[uint32]*vertexArray
	vertexArray uint32

	shaders  map[uint32]*shader
	programs map[uint32]*program
	program  uint32

	textures  map[uint32]*texture
	unit      uint32
	unitTex   [glr.MaxTextureUnits]uint32
	unpack    int32
	clear     [4]float32
	viewport  [4]int32
	draws     []DrawCall
	clearings int
}

var _ glr.Functions = (*Device)(nil)

// New creates a fresh device with no objects and an empty error queue.
func New() *Device {
	return &Device{
		calls:    make(map[string]int),
		buffers:  make(map[uint32]*buffer),
		bound:    make(map[glr.Enum]uint32),
		arrays:   make(map[uint32]*vertexArray),
		shaders:  make(map[uint32]*shader),
		programs: make(map[uint32]*program),
		textures: make(map[uint32]*texture),
		unpack:   4,
	}
}

func (d *Device) call(name string) {
	d.calls[name]++
}

func (d *Device) fail(code glr.Enum) {
	d.errors = append(d.errors, code)
}

func (d *Device) gen() uint32 {
	d.nextID++
	return d.nextID
}

// Calls returns how many times the named entry point was called.
func (d *Device) Calls(name string) int {
	return d.calls[name]
}

// PushError queues an error as if a previous call had raised it.
func (d *Device) PushError(code glr.Enum) {
	d.fail(code)
}

// PendingErrors returns the queued errors without draining them.
func (d *Device) PendingErrors() []glr.Enum {
	return append([]glr.Enum(nil), d.errors...)
}

// Live counts the objects that have not been deleted.
func (d *Device) Live() Counts {
	shaders := 0
	for _, s := range d.shaders {
		if !s.deleted {
			shaders++
		}
	}
	return Counts{
		Buffers:      len(d.buffers),
		VertexArrays: len(d.arrays),
		Shaders:      shaders,
		Programs:     len(d.programs),
		Textures:     len(d.textures),
	}
}

// Draws returns the draw calls issued so far.
func (d *Device) Draws() []DrawCall {
	return append([]DrawCall(nil), d.draws...)
}

// Clears returns how many times the color buffer was cleared.
func (d *Device) Clears() int {
	return d.clearings
}

// ClearColorValue returns the current clear color.
func (d *Device) ClearColorValue() [4]float32 {
	return d.clear
}

// ViewportValue returns the current viewport.
func (d *Device) ViewportValue() [4]int32 {
	return d.viewport
}

// GetError implements glr.Functions.
func (d *Device) GetError() glr.Enum {
	d.call("GetError")
	if len(d.errors) == 0 {
		return glr.NO_ERROR
	}
	code := d.errors[0]
	d.errors = d.errors[1:]
	return code
}

// GetString implements glr.Functions.
func (d *Device) GetString(name glr.Enum) string {
	d.call("GetString")
	switch name {
	case glr.VENDOR:
		return "learngl"
	case glr.RENDERER:
		return "gltest software device"
	case glr.VERSION:
		return "3.3 (Core Profile) gltest"
	case glr.SHADING_LANGUAGE_VERSION:
		return "3.30"
	}
	d.fail(glr.INVALID_ENUM)
	return ""
}

// ClearColor implements glr.Functions.
func (d *Device) ClearColor(r, g, b, a float32) {
	d.call("ClearColor")
	d.clear = [4]float32{r, g, b, a}
}

// Clear implements glr.Functions.
func (d *Device) Clear(mask glr.Enum) {
	d.call("Clear")
	if mask&^(glr.COLOR_BUFFER_BIT|glr.DEPTH_BUFFER_BIT) != 0 {
		d.fail(glr.INVALID_VALUE)
		return
	}
	if mask&glr.COLOR_BUFFER_BIT != 0 {
		d.clearings++
	}
}

// Viewport implements glr.Functions.
func (d *Device) Viewport(x, y, width, height int32) {
	d.call("Viewport")
	if width < 0 || height < 0 {
		d.fail(glr.INVALID_VALUE)
		return
	}
	d.viewport = [4]int32{x, y, width, height}
}

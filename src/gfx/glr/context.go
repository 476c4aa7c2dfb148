// Copyright (c) 2019 devblok
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

// Package glr implements OpenGL resource ownership on top of an explicit
// context. Every wrapper holds the Context it was created on, and binding
// a wrapper is a state transition of that Context's binding slots rather
// than of hidden global state.
package glr

import (
	"fmt"
	"path/filepath"
	"runtime"

	log "github.com/sirupsen/logrus"
)

// Context tracks the binding slots of one GL context. It is not safe for
// concurrent use; all calls must come from the thread owning the context.
type Context struct {
	fn  Functions
	log log.FieldLogger

	buffers     map[Enum]uint32
	elements    map[uint32]uint32
	vertexArray uint32
	program     uint32
	unit        uint32
	textures    [MaxTextureUnits]uint32
}

// NewContext wraps the given entry points. A nil logger logs to the
// logrus standard logger.
func NewContext(fn Functions, logger log.FieldLogger) *Context {
	if logger == nil {
		logger = log.StandardLogger()
	}
	return &Context{
		fn:       fn,
		log:      logger,
		buffers:  make(map[Enum]uint32),
		elements: make(map[uint32]uint32),
	}
}

// Functions returns the entry points this context drives.
func (c *Context) Functions() Functions {
	return c.fn
}

// Logger returns the logger resources created on this context use.
func (c *Context) Logger() log.FieldLogger {
	return c.log
}

// BoundBuffer returns the buffer currently bound to target, zero if none.
func (c *Context) BoundBuffer(target BufferTarget) uint32 {
	return c.buffers[Enum(target)]
}

// BoundVertexArray returns the current vertex array, zero if none.
func (c *Context) BoundVertexArray() uint32 {
	return c.vertexArray
}

// BoundProgram returns the current program, zero if none.
func (c *Context) BoundProgram() uint32 {
	return c.program
}

// ActiveUnit returns the active texture unit index.
func (c *Context) ActiveUnit() uint32 {
	return c.unit
}

// BoundTexture returns the 2D texture bound to the given unit.
func (c *Context) BoundTexture(unit uint32) uint32 {
	if unit >= MaxTextureUnits {
		return 0
	}
	return c.textures[unit]
}

func (c *Context) bindBuffer(target Enum, id uint32) {
	c.fn.BindBuffer(target, id)
	c.buffers[target] = id
	if target == ELEMENT_ARRAY_BUFFER {
		c.elements[c.vertexArray] = id
	}
}

func (c *Context) bindVertexArray(id uint32) {
	c.fn.BindVertexArray(id)
	c.vertexArray = id
	// the element buffer binding belongs to the vertex array
	c.buffers[ELEMENT_ARRAY_BUFFER] = c.elements[id]
}

func (c *Context) useProgram(id uint32) {
	c.fn.UseProgram(id)
	c.program = id
}

func (c *Context) activeTexture(unit uint32) {
	c.fn.ActiveTexture(TEXTURE0 + Enum(unit))
	c.unit = unit
}

func (c *Context) bindTexture(id uint32) {
	c.fn.BindTexture(TEXTURE_2D, id)
	if c.unit < MaxTextureUnits {
		c.textures[c.unit] = id
	}
}

// forgetBuffer clears every slot still holding a deleted buffer, the way
// the driver does when a bound name is deleted.
func (c *Context) forgetBuffer(id uint32) {
	for target, bound := range c.buffers {
		if bound == id {
			c.buffers[target] = 0
		}
	}
	for vao, bound := range c.elements {
		if bound == id {
			c.elements[vao] = 0
		}
	}
}

func (c *Context) forgetVertexArray(id uint32) {
	if c.vertexArray == id {
		c.vertexArray = 0
		c.buffers[ELEMENT_ARRAY_BUFFER] = c.elements[0]
	}
	delete(c.elements, id)
}

func (c *Context) forgetTexture(id uint32) {
	for unit, bound := range c.textures {
		if bound == id {
			c.textures[unit] = 0
		}
	}
}

// Errors drains the error queue and logs each pending code tagged with
// location. The queue is empty on return.
func (c *Context) Errors(location string) []Enum {
	var codes []Enum
	for code := c.fn.GetError(); code != NO_ERROR; code = c.fn.GetError() {
		c.log.WithFields(log.Fields{
			"location": location,
			"code":     uint32(code),
			"name":     ErrorName(code),
		}).Error("GL error")
		codes = append(codes, code)
	}
	return codes
}

// CheckErrors drains the error queue and reports whether anything was
// pending.
func (c *Context) CheckErrors(location string) bool {
	return len(c.Errors(location)) > 0
}

// Check is CheckErrors tagged with the caller's file and line.
func (c *Context) Check() bool {
	return c.CheckErrors(caller(2))
}

func caller(skip int) string {
	_, file, line, ok := runtime.Caller(skip)
	if !ok {
		return "unknown"
	}
	return fmt.Sprintf("%s:%d", filepath.Base(file), line)
}

// ClearColor sets the color used by Clear.
func (c *Context) ClearColor(r, g, b, a float32) {
	c.fn.ClearColor(r, g, b, a)
}

// Clear clears the color buffer.
func (c *Context) Clear() {
	c.fn.Clear(COLOR_BUFFER_BIT)
}

// Viewport maps normalized device coordinates onto a width x height
// framebuffer.
func (c *Context) Viewport(width, height int) {
	c.fn.Viewport(0, 0, int32(width), int32(height))
}

// DrawArrays draws count vertices of the bound vertex array starting at
// first.
func (c *Context) DrawArrays(mode Enum, first, count int) {
	c.fn.DrawArrays(mode, int32(first), int32(count))
}

// DrawElements draws count indices of type typ from the element buffer of
// the bound vertex array, starting offset bytes into it.
func (c *Context) DrawElements(mode Enum, count int, typ Enum, offset int) {
	c.fn.DrawElements(mode, int32(count), typ, offset)
}

// Info describes the driver behind a context.
type Info struct {
	Vendor   string `json:"vendor"`
	Renderer string `json:"renderer"`
	Version  string `json:"version"`
	GLSL     string `json:"glsl"`
}

// Info queries the driver strings.
func (c *Context) Info() Info {
	return Info{
		Vendor:   c.fn.GetString(VENDOR),
		Renderer: c.fn.GetString(RENDERER),
		Version:  c.fn.GetString(VERSION),
		GLSL:     c.fn.GetString(SHADING_LANGUAGE_VERSION),
	}
}

// noCopy makes go vet report wrappers that are copied by value.
type noCopy struct{}

func (*noCopy) Lock()   {}
func (*noCopy) Unlock() {}

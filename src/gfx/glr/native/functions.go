// Copyright (c) 2019 devblok
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

// Package native implements glr.Functions on top of the OpenGL 3.3 core
// profile bindings. A context must be current on the calling thread before
// New is called and for every call afterwards.
package native

import (
	"strings"
	"unsafe"

	"github.com/go-gl/gl/v3.3-core/gl"

	"github.com/devblok/learngl/src/gfx/glr"
)

// Functions calls straight into the driver.
type Functions struct{}

var _ glr.Functions = (*Functions)(nil)

// New loads the GL function pointers for the current context.
func New() (*Functions, error) {
	if err := gl.Init(); err != nil {
		return nil, &glr.InitError{Stage: "loader", Err: err}
	}
	return &Functions{}, nil
}

func ptr(data []byte) unsafe.Pointer {
	if len(data) == 0 {
		return nil
	}
	return unsafe.Pointer(&data[0])
}

func cstr(s string) *uint8 {
	return gl.Str(s + "\x00")
}

func infoLog(length int32, fill func(int32, *uint8)) string {
	if length <= 0 {
		return ""
	}
	buf := strings.Repeat("\x00", int(length+1))
	fill(length, gl.Str(buf))
	return strings.TrimRight(buf, "\x00")
}

func (*Functions) GenBuffer() uint32 {
	var id uint32
	gl.GenBuffers(1, &id)
	return id
}

func (*Functions) DeleteBuffer(id uint32) {
	gl.DeleteBuffers(1, &id)
}

func (*Functions) BindBuffer(target glr.Enum, id uint32) {
	gl.BindBuffer(uint32(target), id)
}

func (*Functions) BufferData(target glr.Enum, size int, data []byte, usage glr.Enum) {
	if data != nil && len(data) < size {
		panic("glr/native: BufferData with fewer bytes than size")
	}
	gl.BufferData(uint32(target), size, ptr(data), uint32(usage))
}

func (*Functions) GetBufferSubData(target glr.Enum, offset int, dst []byte) {
	gl.GetBufferSubData(uint32(target), offset, len(dst), ptr(dst))
}

func (*Functions) GenVertexArray() uint32 {
	var id uint32
	gl.GenVertexArrays(1, &id)
	return id
}

func (*Functions) DeleteVertexArray(id uint32) {
	gl.DeleteVertexArrays(1, &id)
}

func (*Functions) BindVertexArray(id uint32) {
	gl.BindVertexArray(id)
}

func (*Functions) EnableVertexAttribArray(index uint32) {
	gl.EnableVertexAttribArray(index)
}

func (*Functions) VertexAttribPointer(index uint32, size int32, typ glr.Enum, normalized bool, stride int32, offset int) {
	gl.VertexAttribPointerWithOffset(index, size, uint32(typ), normalized, stride, uintptr(offset))
}

func (*Functions) CreateShader(typ glr.Enum) uint32 {
	return gl.CreateShader(uint32(typ))
}

func (*Functions) ShaderSource(id uint32, src string) {
	sources, free := gl.Strs(src + "\x00")
	gl.ShaderSource(id, 1, sources, nil)
	free()
}

func (*Functions) CompileShader(id uint32) {
	gl.CompileShader(id)
}

func (*Functions) GetShaderi(id uint32, pname glr.Enum) int32 {
	var v int32
	gl.GetShaderiv(id, uint32(pname), &v)
	return v
}

func (f *Functions) GetShaderInfoLog(id uint32) string {
	return infoLog(f.GetShaderi(id, glr.INFO_LOG_LENGTH), func(n int32, buf *uint8) {
		gl.GetShaderInfoLog(id, n, nil, buf)
	})
}

func (*Functions) DeleteShader(id uint32) {
	gl.DeleteShader(id)
}

func (*Functions) CreateProgram() uint32 {
	return gl.CreateProgram()
}

func (*Functions) AttachShader(program, shader uint32) {
	gl.AttachShader(program, shader)
}

func (*Functions) DetachShader(program, shader uint32) {
	gl.DetachShader(program, shader)
}

func (*Functions) LinkProgram(program uint32) {
	gl.LinkProgram(program)
}

func (*Functions) GetProgrami(program uint32, pname glr.Enum) int32 {
	var v int32
	gl.GetProgramiv(program, uint32(pname), &v)
	return v
}

func (f *Functions) GetProgramInfoLog(program uint32) string {
	return infoLog(f.GetProgrami(program, glr.INFO_LOG_LENGTH), func(n int32, buf *uint8) {
		gl.GetProgramInfoLog(program, n, nil, buf)
	})
}

func (*Functions) UseProgram(program uint32) {
	gl.UseProgram(program)
}

func (*Functions) DeleteProgram(program uint32) {
	gl.DeleteProgram(program)
}

func (*Functions) GetUniformLocation(program uint32, name string) int32 {
	return gl.GetUniformLocation(program, cstr(name))
}

func (*Functions) GetAttribLocation(program uint32, name string) int32 {
	return gl.GetAttribLocation(program, cstr(name))
}

func (*Functions) Uniform1i(location int32, v int32) {
	gl.Uniform1i(location, v)
}

func (*Functions) Uniform1f(location int32, v float32) {
	gl.Uniform1f(location, v)
}

func (*Functions) Uniform4f(location int32, v0, v1, v2, v3 float32) {
	gl.Uniform4f(location, v0, v1, v2, v3)
}

func (*Functions) UniformMatrix4fv(location int32, m []float32) {
	if len(m) < 16 {
		return
	}
	gl.UniformMatrix4fv(location, int32(len(m)/16), false, &m[0])
}

func (*Functions) GenTexture() uint32 {
	var id uint32
	gl.GenTextures(1, &id)
	return id
}

func (*Functions) DeleteTexture(id uint32) {
	gl.DeleteTextures(1, &id)
}

func (*Functions) ActiveTexture(unit glr.Enum) {
	gl.ActiveTexture(uint32(unit))
}

func (*Functions) BindTexture(target glr.Enum, id uint32) {
	gl.BindTexture(uint32(target), id)
}

func (*Functions) TexParameteri(target, pname glr.Enum, param int32) {
	gl.TexParameteri(uint32(target), uint32(pname), param)
}

func (*Functions) GetTexParameteri(target, pname glr.Enum) int32 {
	var v int32
	gl.GetTexParameteriv(uint32(target), uint32(pname), &v)
	return v
}

func (*Functions) PixelStorei(pname glr.Enum, param int32) {
	gl.PixelStorei(uint32(pname), param)
}

func (*Functions) TexImage2D(target glr.Enum, level int32, internalFormat int32, width, height int32, format, typ glr.Enum, pixels []byte) {
	gl.TexImage2D(uint32(target), level, internalFormat, width, height, 0, uint32(format), uint32(typ), ptr(pixels))
}

func (*Functions) GenerateMipmap(target glr.Enum) {
	gl.GenerateMipmap(uint32(target))
}

func (*Functions) ClearColor(r, g, b, a float32) {
	gl.ClearColor(r, g, b, a)
}

func (*Functions) Clear(mask glr.Enum) {
	gl.Clear(uint32(mask))
}

func (*Functions) Viewport(x, y, width, height int32) {
	gl.Viewport(x, y, width, height)
}

func (*Functions) DrawArrays(mode glr.Enum, first, count int32) {
	gl.DrawArrays(uint32(mode), first, count)
}

func (*Functions) DrawElements(mode glr.Enum, count int32, typ glr.Enum, offset int) {
	gl.DrawElementsWithOffset(uint32(mode), count, uint32(typ), uintptr(offset))
}

func (*Functions) GetError() glr.Enum {
	return glr.Enum(gl.GetError())
}

func (*Functions) GetString(name glr.Enum) string {
	s := gl.GetString(uint32(name))
	if s == nil {
		return ""
	}
	return gl.GoStr(s)
}

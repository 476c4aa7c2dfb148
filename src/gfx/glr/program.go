// Copyright (c) 2019 devblok
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package glr

import (
	glm "github.com/go-gl/mathgl/mgl32"
)

// NewProgram links a vertex and a fragment shader into a program. The
// shaders are detached after a successful link and may be released. When
// linking fails the program is deleted and a *LinkError carrying the
// linker log is returned.
func NewProgram(ctx *Context, vs, fs *Shader) (*Program, error) {
	if vs == nil || vs.id == 0 || vs.stage != VertexStage {
		return nil, &ResourceError{Kind: "program", Reason: "first shader must be a live vertex shader"}
	}
	if fs == nil || fs.id == 0 || fs.stage != FragmentStage {
		return nil, &ResourceError{Kind: "program", Reason: "second shader must be a live fragment shader"}
	}

	id := ctx.fn.CreateProgram()
	if id == 0 {
		return nil, &ResourceError{Kind: "program", Reason: "no handle returned"}
	}

	ctx.fn.AttachShader(id, vs.id)
	ctx.fn.AttachShader(id, fs.id)
	ctx.fn.LinkProgram(id)
	if ctx.fn.GetProgrami(id, LINK_STATUS) == int32(FALSE) {
		msg := ctx.fn.GetProgramInfoLog(id)
		ctx.fn.DeleteProgram(id)
		err := &LinkError{Log: msg}
		ctx.log.Error(err)
		return nil, err
	}
	ctx.fn.DetachShader(id, vs.id)
	ctx.fn.DetachShader(id, fs.id)

	ctx.log.WithField("id", id).Debug("ShaderProgram created")
	return &Program{
		ctx:        ctx,
		id:         id,
		uniforms:   make(map[string]int32),
		attributes: make(map[string]int32),
	}, nil
}

// BuildProgram compiles both stages and links them. The intermediate
// shaders are released on every path.
func BuildProgram(ctx *Context, vertexSource, fragmentSource string) (*Program, error) {
	vs, err := NewShader(ctx, VertexStage, vertexSource)
	if err != nil {
		return nil, err
	}
	defer vs.Release()

	fs, err := NewShader(ctx, FragmentStage, fragmentSource)
	if err != nil {
		return nil, err
	}
	defer fs.Release()

	return NewProgram(ctx, vs, fs)
}

// Program owns one linked shader program and caches the locations of
// its uniforms and attributes.
type Program struct {
	noCopy noCopy

	ctx        *Context
	id         uint32
	uniforms   map[string]int32
	attributes map[string]int32
}

// ID returns the program handle.
func (p *Program) ID() uint32 {
	return p.id
}

// Bind makes the program the current pipeline.
func (p *Program) Bind() {
	p.ctx.useProgram(p.id)
}

// Unbind clears the current pipeline.
func (p *Program) Unbind() {
	p.ctx.useProgram(0)
}

// UniformLocation returns the location of the named uniform, -1 if the
// program has no active uniform of that name. Valid locations, including
// zero, are cached for the lifetime of the program; misses are not, so a
// missing name is queried again on every call.
func (p *Program) UniformLocation(name string) int32 {
	loc, _ := p.LookupUniform(name)
	return loc
}

// LookupUniform is UniformLocation that also reports whether the uniform
// exists.
func (p *Program) LookupUniform(name string) (int32, bool) {
	return lookup(p.uniforms, name, func() int32 {
		return p.ctx.fn.GetUniformLocation(p.id, name)
	})
}

// AttribLocation returns the location of the named vertex attribute, -1
// if the program has no active attribute of that name. Caching follows
// UniformLocation.
func (p *Program) AttribLocation(name string) int32 {
	loc, _ := p.LookupAttrib(name)
	return loc
}

// LookupAttrib is AttribLocation that also reports whether the attribute
// exists.
func (p *Program) LookupAttrib(name string) (int32, bool) {
	return lookup(p.attributes, name, func() int32 {
		return p.ctx.fn.GetAttribLocation(p.id, name)
	})
}

func lookup(cache map[string]int32, name string, query func() int32) (int32, bool) {
	if loc, ok := cache[name]; ok {
		return loc, true
	}
	loc := query()
	if loc < 0 {
		return -1, false
	}
	cache[name] = loc
	return loc, true
}

// use binds the program if another one is current, uniforms are always
// written to the current program.
func (p *Program) use() {
	if p.ctx.program != p.id {
		p.Bind()
	}
}

// SetInt sets an int or sampler uniform.
func (p *Program) SetInt(name string, v int32) {
	p.use()
	p.ctx.fn.Uniform1i(p.UniformLocation(name), v)
}

// SetFloat sets a float uniform.
func (p *Program) SetFloat(name string, v float32) {
	p.use()
	p.ctx.fn.Uniform1f(p.UniformLocation(name), v)
}

// SetVec4 sets a vec4 uniform.
func (p *Program) SetVec4(name string, v glm.Vec4) {
	p.use()
	p.ctx.fn.Uniform4f(p.UniformLocation(name), v[0], v[1], v[2], v[3])
}

// SetMat4 sets a mat4 uniform. mgl32 matrices are column major, as GL
// expects them.
func (p *Program) SetMat4(name string, m glm.Mat4) {
	p.use()
	p.ctx.fn.UniformMatrix4fv(p.UniformLocation(name), m[:])
}

// Release deletes the program.
func (p *Program) Release() {
	if p == nil || p.id == 0 {
		return
	}
	if p.ctx.program == p.id {
		p.ctx.useProgram(0)
	}
	p.ctx.fn.DeleteProgram(p.id)
	p.ctx.log.WithField("id", p.id).Debug("ShaderProgram deleted")
	p.id = 0
}

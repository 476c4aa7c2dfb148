// Copyright (c) 2019 devblok
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package gltest

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/devblok/learngl/src/gfx/glr"
)

var (
	mainRegexp  = regexp.MustCompile(`void\s+main\s*\(\s*(void)?\s*\)`)
	errorRegexp = regexp.MustCompile(`(?m)^\s*#error\s*(.*)$`)
	declRegexp  = regexp.MustCompile(`(?m)^\s*(?:layout\s*\(\s*location\s*=\s*(\d+)\s*\)\s*)?(in|out|uniform)\s+(\w+)\s+(\w+)\s*;`)
)

// declaration is one interface variable of a shader.
type declaration struct {
	qualifier string
	typ       string
	name      string
	location  int32
}

type shader struct {
	typ      glr.Enum
	source   string
	compiled bool
	log      string
	deleted  bool
	attached int
	decls    []declaration
}

type program struct {
	attached   []uint32
	linked     bool
	log        string
	uniforms   map[string]int32
	types      map[int32]string
	attributes map[string]int32
	values     map[int32][]float32
}

// compile runs a small GLSL front end: it requires a main function,
// balanced braces and parentheses, honors #error and collects the in, out
// and uniform declarations at file scope.
func compile(src string) ([]declaration, string) {
	if m := errorRegexp.FindStringSubmatch(src); m != nil {
		line := strings.Count(src[:strings.Index(src, m[0])], "\n") + 1
		return nil, fmt.Sprintf("0:%d(1): error: #error %s\n", line, strings.TrimSpace(m[1]))
	}
	for _, pair := range [][2]string{{"{", "}"}, {"(", ")"}} {
		if strings.Count(src, pair[0]) != strings.Count(src, pair[1]) {
			return nil, fmt.Sprintf("0:%d(1): error: syntax error, unbalanced '%s'\n", strings.Count(src, "\n")+1, pair[0])
		}
	}
	if !mainRegexp.MatchString(src) {
		return nil, "0:1(1): error: main function not found\n"
	}
	var decls []declaration
	for _, m := range declRegexp.FindAllStringSubmatch(src, -1) {
		d := declaration{qualifier: m[2], typ: m[3], name: m[4], location: -1}
		if m[1] != "" {
			loc, err := strconv.Atoi(m[1])
			if err != nil || loc >= glr.MaxVertexAttribs {
				return nil, fmt.Sprintf("0:1(1): error: invalid location for '%s'\n", d.name)
			}
			d.location = int32(loc)
		}
		decls = append(decls, d)
	}
	return decls, ""
}

// uniformSize is the number of floats a uniform of typ holds.
func uniformSize(typ string) int {
	switch typ {
	case "vec2":
		return 2
	case "vec3":
		return 3
	case "vec4":
		return 4
	case "mat4":
		return 16
	}
	return 1
}

// CreateShader implements glr.Functions.
func (d *Device) CreateShader(typ glr.Enum) uint32 {
	d.call("CreateShader")
	if typ != glr.VERTEX_SHADER && typ != glr.FRAGMENT_SHADER {
		d.fail(glr.INVALID_ENUM)
		return 0
	}
	id := d.gen()
	d.shaders[id] = &shader{typ: typ}
	return id
}

func (d *Device) lookupShader(id uint32) (*shader, bool) {
	s, ok := d.shaders[id]
	if !ok || s.deleted {
		d.fail(glr.INVALID_VALUE)
		return nil, false
	}
	return s, true
}

// ShaderSource implements glr.Functions.
func (d *Device) ShaderSource(id uint32, src string) {
	d.call("ShaderSource")
	if s, ok := d.lookupShader(id); ok {
		s.source = src
	}
}

// CompileShader implements glr.Functions.
func (d *Device) CompileShader(id uint32) {
	d.call("CompileShader")
	s, ok := d.lookupShader(id)
	if !ok {
		return
	}
	s.decls, s.log = compile(s.source)
	s.compiled = s.log == ""
}

// GetShaderi implements glr.Functions.
func (d *Device) GetShaderi(id uint32, pname glr.Enum) int32 {
	d.call("GetShaderi")
	s, ok := d.lookupShader(id)
	if !ok {
		return 0
	}
	switch pname {
	case glr.COMPILE_STATUS:
		if s.compiled {
			return int32(glr.TRUE)
		}
		return int32(glr.FALSE)
	case glr.INFO_LOG_LENGTH:
		if s.log == "" {
			return 0
		}
		return int32(len(s.log) + 1)
	case glr.SHADER_TYPE:
		return int32(s.typ)
	}
	d.fail(glr.INVALID_ENUM)
	return 0
}

// GetShaderInfoLog implements glr.Functions.
func (d *Device) GetShaderInfoLog(id uint32) string {
	d.call("GetShaderInfoLog")
	if s, ok := d.lookupShader(id); ok {
		return s.log
	}
	return ""
}

// DeleteShader implements glr.Functions. A shader still attached to a
// program is only flagged and goes away once detached.
func (d *Device) DeleteShader(id uint32) {
	d.call("DeleteShader")
	if id == 0 {
		return
	}
	s, ok := d.lookupShader(id)
	if !ok {
		return
	}
	s.deleted = true
	if s.attached == 0 {
		delete(d.shaders, id)
	}
}

// CreateProgram implements glr.Functions.
func (d *Device) CreateProgram() uint32 {
	d.call("CreateProgram")
	id := d.gen()
	d.programs[id] = &program{}
	return id
}

func (d *Device) lookupProgram(id uint32) (*program, bool) {
	p, ok := d.programs[id]
	if !ok {
		d.fail(glr.INVALID_VALUE)
		return nil, false
	}
	return p, true
}

// AttachShader implements glr.Functions.
func (d *Device) AttachShader(prog, sh uint32) {
	d.call("AttachShader")
	p, ok := d.lookupProgram(prog)
	if !ok {
		return
	}
	s, ok := d.lookupShader(sh)
	if !ok {
		return
	}
	for _, id := range p.attached {
		if id == sh || d.shaders[id].typ == s.typ {
			d.fail(glr.INVALID_OPERATION)
			return
		}
	}
	p.attached = append(p.attached, sh)
	s.attached++
}

// DetachShader implements glr.Functions.
func (d *Device) DetachShader(prog, sh uint32) {
	d.call("DetachShader")
	p, ok := d.lookupProgram(prog)
	if !ok {
		return
	}
	d.detach(p, sh)
}

func (d *Device) detach(p *program, sh uint32) {
	for idx, id := range p.attached {
		if id != sh {
			continue
		}
		p.attached = append(p.attached[:idx], p.attached[idx+1:]...)
		s := d.shaders[sh]
		s.attached--
		if s.deleted && s.attached == 0 {
			delete(d.shaders, sh)
		}
		return
	}
	d.fail(glr.INVALID_OPERATION)
}

// LinkProgram implements glr.Functions. Linking needs one compiled vertex
// and one compiled fragment shader whose interfaces agree.
func (d *Device) LinkProgram(prog uint32) {
	d.call("LinkProgram")
	p, ok := d.lookupProgram(prog)
	if !ok {
		return
	}
	p.linked = false
	p.uniforms, p.types, p.attributes, p.values = nil, nil, nil, nil

	var vs, fs *shader
	for _, id := range p.attached {
		s := d.shaders[id]
		if !s.compiled {
			p.log = "error: linking with uncompiled/unspecialized shader\n"
			return
		}
		if s.typ == glr.VERTEX_SHADER {
			vs = s
		} else {
			fs = s
		}
	}
	if vs == nil || fs == nil {
		p.log = "error: program lacks a vertex or fragment shader\n"
		return
	}

	outputs := make(map[string]string)
	for _, decl := range vs.decls {
		if decl.qualifier == "out" {
			outputs[decl.name] = decl.typ
		}
	}
	for _, decl := range fs.decls {
		if decl.qualifier != "in" {
			continue
		}
		typ, ok := outputs[decl.name]
		if !ok {
			p.log = fmt.Sprintf("error: fragment shader input `%s' has no matching vertex shader output\n", decl.name)
			return
		}
		if typ != decl.typ {
			p.log = fmt.Sprintf("error: `%s' declared as type `%s' and type `%s'\n", decl.name, typ, decl.typ)
			return
		}
	}

	p.attributes = make(map[string]int32)
	used := make(map[int32]bool)
	for _, decl := range vs.decls {
		if decl.qualifier == "in" && decl.location >= 0 {
			p.attributes[decl.name] = decl.location
			used[decl.location] = true
		}
	}
	next := int32(0)
	for _, decl := range vs.decls {
		if decl.qualifier != "in" || decl.location >= 0 {
			continue
		}
		for used[next] {
			next++
		}
		p.attributes[decl.name] = next
		used[next] = true
	}

	p.uniforms = make(map[string]int32)
	p.types = make(map[int32]string)
	p.values = make(map[int32][]float32)
	for _, s := range []*shader{vs, fs} {
		for _, decl := range s.decls {
			if decl.qualifier != "uniform" {
				continue
			}
			if _, ok := p.uniforms[decl.name]; ok {
				continue
			}
			loc := int32(len(p.uniforms))
			p.uniforms[decl.name] = loc
			p.types[loc] = decl.typ
			p.values[loc] = make([]float32, uniformSize(decl.typ))
		}
	}
	p.linked = true
	p.log = ""
}

// GetProgrami implements glr.Functions.
func (d *Device) GetProgrami(prog uint32, pname glr.Enum) int32 {
	d.call("GetProgrami")
	p, ok := d.lookupProgram(prog)
	if !ok {
		return 0
	}
	switch pname {
	case glr.LINK_STATUS:
		if p.linked {
			return int32(glr.TRUE)
		}
		return int32(glr.FALSE)
	case glr.INFO_LOG_LENGTH:
		if p.log == "" {
			return 0
		}
		return int32(len(p.log) + 1)
	case glr.ATTACHED_SHADERS:
		return int32(len(p.attached))
	}
	d.fail(glr.INVALID_ENUM)
	return 0
}

// GetProgramInfoLog implements glr.Functions.
func (d *Device) GetProgramInfoLog(prog uint32) string {
	d.call("GetProgramInfoLog")
	if p, ok := d.lookupProgram(prog); ok {
		return p.log
	}
	return ""
}

// UseProgram implements glr.Functions.
func (d *Device) UseProgram(prog uint32) {
	d.call("UseProgram")
	if prog == 0 {
		d.program = 0
		return
	}
	p, ok := d.lookupProgram(prog)
	if !ok {
		return
	}
	if !p.linked {
		d.fail(glr.INVALID_OPERATION)
		return
	}
	d.program = prog
}

// CurrentProgram returns the program in use as the device sees it.
func (d *Device) CurrentProgram() uint32 {
	return d.program
}

// DeleteProgram implements glr.Functions.
func (d *Device) DeleteProgram(prog uint32) {
	d.call("DeleteProgram")
	if prog == 0 {
		return
	}
	p, ok := d.lookupProgram(prog)
	if !ok {
		return
	}
	for len(p.attached) > 0 {
		d.detach(p, p.attached[0])
	}
	delete(d.programs, prog)
	if d.program == prog {
		d.program = 0
	}
}

func (d *Device) location(prog uint32, name string, table func(*program) map[string]int32) int32 {
	p, ok := d.lookupProgram(prog)
	if !ok {
		return -1
	}
	if !p.linked {
		d.fail(glr.INVALID_OPERATION)
		return -1
	}
	if loc, ok := table(p)[name]; ok {
		return loc
	}
	return -1
}

// GetUniformLocation implements glr.Functions.
func (d *Device) GetUniformLocation(prog uint32, name string) int32 {
	d.call("GetUniformLocation")
	return d.location(prog, name, func(p *program) map[string]int32 { return p.uniforms })
}

// GetAttribLocation implements glr.Functions.
func (d *Device) GetAttribLocation(prog uint32, name string) int32 {
	d.call("GetAttribLocation")
	return d.location(prog, name, func(p *program) map[string]int32 { return p.attributes })
}

// setUniform stores values at location of the current program. Location
// -1 is silently ignored.
func (d *Device) setUniform(location int32, values ...float32) {
	p, ok := d.programs[d.program]
	if !ok {
		d.fail(glr.INVALID_OPERATION)
		return
	}
	if location == -1 {
		return
	}
	slot, ok := p.values[location]
	if !ok || len(slot) != len(values) {
		d.fail(glr.INVALID_OPERATION)
		return
	}
	copy(slot, values)
}

// Uniform1i implements glr.Functions.
func (d *Device) Uniform1i(location int32, v int32) {
	d.call("Uniform1i")
	d.setUniform(location, float32(v))
}

// Uniform1f implements glr.Functions.
func (d *Device) Uniform1f(location int32, v float32) {
	d.call("Uniform1f")
	d.setUniform(location, v)
}

// Uniform4f implements glr.Functions.
func (d *Device) Uniform4f(location int32, v0, v1, v2, v3 float32) {
	d.call("Uniform4f")
	d.setUniform(location, v0, v1, v2, v3)
}

// UniformMatrix4fv implements glr.Functions.
func (d *Device) UniformMatrix4fv(location int32, m []float32) {
	d.call("UniformMatrix4fv")
	d.setUniform(location, m...)
}

// Uniform returns the value stored at location of a linked program.
func (d *Device) Uniform(prog uint32, location int32) ([]float32, bool) {
	p, ok := d.programs[prog]
	if !ok {
		return nil, false
	}
	v, ok := p.values[location]
	if !ok {
		return nil, false
	}
	return append([]float32(nil), v...), true
}

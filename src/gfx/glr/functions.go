// Copyright (c) 2019 devblok
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package glr

// Enum is an OpenGL enumerant.
type Enum uint32

// OpenGL 3.3 core enumerants used by the wrappers.
const (
	NO_ERROR                      Enum = 0
	INVALID_ENUM                  Enum = 0x0500
	INVALID_VALUE                 Enum = 0x0501
	INVALID_OPERATION             Enum = 0x0502
	OUT_OF_MEMORY                 Enum = 0x0505
	INVALID_FRAMEBUFFER_OPERATION Enum = 0x0506

	FALSE Enum = 0
	TRUE  Enum = 1

	ARRAY_BUFFER         Enum = 0x8892
	ELEMENT_ARRAY_BUFFER Enum = 0x8893
	STREAM_DRAW          Enum = 0x88E0
	STATIC_DRAW          Enum = 0x88E4
	DYNAMIC_DRAW         Enum = 0x88E8

	BYTE           Enum = 0x1400
	UNSIGNED_BYTE  Enum = 0x1401
	SHORT          Enum = 0x1402
	UNSIGNED_SHORT Enum = 0x1403
	INT            Enum = 0x1404
	UNSIGNED_INT   Enum = 0x1405
	FLOAT          Enum = 0x1406

	FRAGMENT_SHADER  Enum = 0x8B30
	VERTEX_SHADER    Enum = 0x8B31
	SHADER_TYPE      Enum = 0x8B4F
	COMPILE_STATUS   Enum = 0x8B81
	LINK_STATUS      Enum = 0x8B82
	INFO_LOG_LENGTH  Enum = 0x8B84
	ATTACHED_SHADERS Enum = 0x8B85

	TEXTURE_2D           Enum = 0x0DE1
	TEXTURE0             Enum = 0x84C0
	TEXTURE_MAG_FILTER   Enum = 0x2800
	TEXTURE_MIN_FILTER   Enum = 0x2801
	TEXTURE_WRAP_S       Enum = 0x2802
	TEXTURE_WRAP_T       Enum = 0x2803
	NEAREST              Enum = 0x2600
	LINEAR               Enum = 0x2601
	LINEAR_MIPMAP_LINEAR Enum = 0x2703
	REPEAT               Enum = 0x2901
	CLAMP_TO_EDGE        Enum = 0x812F
	UNPACK_ALIGNMENT     Enum = 0x0CF5

	RED  Enum = 0x1903
	RG   Enum = 0x8227
	RGB  Enum = 0x1907
	RGBA Enum = 0x1908

	DEPTH_BUFFER_BIT Enum = 0x00000100
	COLOR_BUFFER_BIT Enum = 0x00004000

	POINTS         Enum = 0x0000
	LINES          Enum = 0x0001
	LINE_STRIP     Enum = 0x0003
	TRIANGLES      Enum = 0x0004
	TRIANGLE_STRIP Enum = 0x0005
	TRIANGLE_FAN   Enum = 0x0006

	VENDOR                   Enum = 0x1F00
	RENDERER                 Enum = 0x1F01
	VERSION                  Enum = 0x1F02
	SHADING_LANGUAGE_VERSION Enum = 0x8B8C
)

// MaxTextureUnits is the number of texture units a context is guaranteed
// to expose to the fragment stage.
const MaxTextureUnits = 16

// MaxVertexAttribs is the number of generic vertex attributes a context
// is guaranteed to expose.
const MaxVertexAttribs = 16

// Functions is the set of GL entry points the resource wrappers drive.
// Implementations must be called from the goroutine that owns the
// current GL context.
type Functions interface {
	GenBuffer() uint32
	DeleteBuffer(id uint32)
	BindBuffer(target Enum, id uint32)
	BufferData(target Enum, size int, data []byte, usage Enum)
	GetBufferSubData(target Enum, offset int, dst []byte)

	GenVertexArray() uint32
	DeleteVertexArray(id uint32)
	BindVertexArray(id uint32)
	EnableVertexAttribArray(index uint32)
	VertexAttribPointer(index uint32, size int32, typ Enum, normalized bool, stride int32, offset int)

	CreateShader(typ Enum) uint32
	ShaderSource(id uint32, src string)
	CompileShader(id uint32)
	GetShaderi(id uint32, pname Enum) int32
	GetShaderInfoLog(id uint32) string
	DeleteShader(id uint32)

	CreateProgram() uint32
	AttachShader(program, shader uint32)
	DetachShader(program, shader uint32)
	LinkProgram(program uint32)
	GetProgrami(program uint32, pname Enum) int32
	GetProgramInfoLog(program uint32) string
	UseProgram(program uint32)
	DeleteProgram(program uint32)
	GetUniformLocation(program uint32, name string) int32
	GetAttribLocation(program uint32, name string) int32
	Uniform1i(location int32, v int32)
	Uniform1f(location int32, v float32)
	Uniform4f(location int32, v0, v1, v2, v3 float32)
	UniformMatrix4fv(location int32, m []float32)

	GenTexture() uint32
	DeleteTexture(id uint32)
	ActiveTexture(unit Enum)
	BindTexture(target Enum, id uint32)
	TexParameteri(target, pname Enum, param int32)
	GetTexParameteri(target, pname Enum) int32
	PixelStorei(pname Enum, param int32)
	TexImage2D(target Enum, level int32, internalFormat int32, width, height int32, format, typ Enum, pixels []byte)
	GenerateMipmap(target Enum)

	ClearColor(r, g, b, a float32)
	Clear(mask Enum)
	Viewport(x, y, width, height int32)
	DrawArrays(mode Enum, first, count int32)
	DrawElements(mode Enum, count int32, typ Enum, offset int)

	GetError() Enum
	GetString(name Enum) string
}

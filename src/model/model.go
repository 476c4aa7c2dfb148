// Copyright (c) 2019 devblok
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

// Package model holds the vertex data the tutorial scenes draw.
package model

import (
	"unsafe"

	glm "github.com/go-gl/mathgl/mgl32"

	"github.com/devblok/learngl/src/core"
	"github.com/devblok/learngl/src/gfx/glr"
)

// Vertex is a model vertex
type Vertex struct {
	Pos   glm.Vec3
	Color glm.Vec3
	UV    glm.Vec2
}

// VertexSize is the stride of a Vertex in a vertex buffer.
const VertexSize = int32(unsafe.Sizeof(Vertex{}))

// Attributes return the attribute layout of Vertex: position at
// location 0, color at 1 and texture coordinates at 2.
func Attributes() []glr.Attribute {
	return []glr.Attribute{
		{
			Index:  0,
			Size:   3,
			Type:   glr.FLOAT,
			Stride: VertexSize,
			Offset: int(unsafe.Offsetof(Vertex{}.Pos)),
		},
		{
			Index:  1,
			Size:   3,
			Type:   glr.FLOAT,
			Stride: VertexSize,
			Offset: int(unsafe.Offsetof(Vertex{}.Color)),
		},
		{
			Index:  2,
			Size:   2,
			Type:   glr.FLOAT,
			Stride: VertexSize,
			Offset: int(unsafe.Offsetof(Vertex{}.UV)),
		},
	}
}

// Mesh is a vertex list with optional indices.
type Mesh struct {
	Vertices []Vertex
	Indices  []uint32
}

// Indexed reports whether the mesh is drawn through its indices.
func (m Mesh) Indexed() bool {
	return len(m.Indices) > 0
}

// Count is the number of vertices a draw of the mesh processes.
func (m Mesh) Count() int {
	if m.Indexed() {
		return len(m.Indices)
	}
	return len(m.Vertices)
}

// VertexBytes returns the vertices laid out as Attributes describes.
func (m Mesh) VertexBytes() []byte {
	floats := make([]float32, 0, len(m.Vertices)*8)
	for _, v := range m.Vertices {
		floats = append(floats, v.Pos[:]...)
		floats = append(floats, v.Color[:]...)
		floats = append(floats, v.UV[:]...)
	}
	return core.Float32Bytes(floats)
}

// IndexBytes returns the indices as unsigned ints.
func (m Mesh) IndexBytes() []byte {
	return core.Uint32Bytes(m.Indices)
}

// Triangle is the red, green and blue triangle of the first tutorial.
func Triangle() Mesh {
	return Mesh{Vertices: []Vertex{
		{Pos: glm.Vec3{-0.5, -0.5, 0}, Color: glm.Vec3{1, 0, 0}, UV: glm.Vec2{0, 0}},
		{Pos: glm.Vec3{0.5, -0.5, 0}, Color: glm.Vec3{0, 1, 0}, UV: glm.Vec2{1, 0}},
		{Pos: glm.Vec3{0, 0.5, 0}, Color: glm.Vec3{0, 0, 1}, UV: glm.Vec2{0.5, 1}},
	}}
}

// Quad is a textured rectangle made of two indexed triangles.
func Quad() Mesh {
	return Mesh{
		Vertices: []Vertex{
			{Pos: glm.Vec3{0.5, 0.5, 0}, Color: glm.Vec3{1, 0, 0}, UV: glm.Vec2{1, 1}},
			{Pos: glm.Vec3{0.5, -0.5, 0}, Color: glm.Vec3{0, 1, 0}, UV: glm.Vec2{1, 0}},
			{Pos: glm.Vec3{-0.5, -0.5, 0}, Color: glm.Vec3{0, 0, 1}, UV: glm.Vec2{0, 0}},
			{Pos: glm.Vec3{-0.5, 0.5, 0}, Color: glm.Vec3{1, 1, 0}, UV: glm.Vec2{0, 1}},
		},
		Indices: []uint32{
			0, 1, 3,
			1, 2, 3,
		},
	}
}

// Transform places a model in the scene.
type Transform struct {
	Position glm.Vec3
	Axis     glm.Vec3
	Angle    float32
	Scale    float32
}

// Matrix returns translation * rotation * scale. A zero Scale counts as
// one, a zero Axis as no rotation.
func (t Transform) Matrix() glm.Mat4 {
	scale := t.Scale
	if scale == 0 {
		scale = 1
	}
	rotation := glm.Ident4()
	if t.Axis.Len() > 0 {
		rotation = glm.HomogRotate3D(t.Angle, t.Axis.Normalize())
	}
	return glm.Translate3D(t.Position[0], t.Position[1], t.Position[2]).
		Mul4(rotation).
		Mul4(glm.Scale3D(scale, scale, scale))
}

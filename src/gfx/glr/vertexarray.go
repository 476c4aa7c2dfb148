// Copyright (c) 2019 devblok
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package glr

// Attribute describes how one generic vertex attribute reads the bytes of
// the currently bound array buffer.
type Attribute struct {
	Index      uint32
	Size       int32 // components per vertex, 1 to 4
	Type       Enum
	Normalized bool
	Stride     int32
	Offset     int
}

// NewVertexArray creates an empty vertex array.
func NewVertexArray(ctx *Context) (*VertexArray, error) {
	id := ctx.fn.GenVertexArray()
	if id == 0 {
		return nil, &ResourceError{Kind: "vertex array", Reason: "no handle returned"}
	}
	ctx.log.WithField("id", id).Debug("VertexArray created")
	return &VertexArray{ctx: ctx, id: id}, nil
}

// VertexArray owns one vertex attribute binding set.
type VertexArray struct {
	noCopy noCopy

	ctx   *Context
	id    uint32
	attrs []Attribute
}

// ID returns the vertex array handle.
func (va *VertexArray) ID() uint32 {
	return va.id
}

// Bind makes the vertex array current.
func (va *VertexArray) Bind() {
	va.ctx.bindVertexArray(va.id)
}

// Unbind clears the current vertex array.
func (va *VertexArray) Unbind() {
	va.ctx.bindVertexArray(0)
}

// SetAttributes enables each attribute and points it into the array
// buffer bound at the time of the call. The vertex array must be bound and
// the caller is responsible for binding the source buffer first.
func (va *VertexArray) SetAttributes(attrs ...Attribute) {
	for _, a := range attrs {
		va.ctx.fn.EnableVertexAttribArray(a.Index)
		va.ctx.fn.VertexAttribPointer(a.Index, a.Size, a.Type, a.Normalized, a.Stride, a.Offset)
	}
	va.attrs = append(va.attrs, attrs...)
}

// Attributes returns the attributes registered so far, in order.
func (va *VertexArray) Attributes() []Attribute {
	return append([]Attribute(nil), va.attrs...)
}

// Release deletes the vertex array.
func (va *VertexArray) Release() {
	if va == nil || va.id == 0 {
		return
	}
	va.ctx.fn.DeleteVertexArray(va.id)
	va.ctx.forgetVertexArray(va.id)
	va.ctx.log.WithField("id", va.id).Debug("VertexArray deleted")
	va.id = 0
}

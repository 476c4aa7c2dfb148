// Copyright (c) 2019 devblok
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package glr_test

import (
	"testing"

	qt "github.com/frankban/quicktest"

	"github.com/devblok/learngl/src/core"
	"github.com/devblok/learngl/src/gfx"
	"github.com/devblok/learngl/src/gfx/glr"
	"github.com/devblok/learngl/src/gfx/glr/gltest"
)

var (
	_ gfx.Resource = (*glr.Buffer)(nil)
	_ gfx.Resource = (*glr.VertexArray)(nil)
	_ gfx.Resource = (*glr.Shader)(nil)
	_ gfx.Resource = (*glr.Program)(nil)
	_ gfx.Resource = (*glr.Texture)(nil)

	_ gfx.Bindable = (*glr.Buffer)(nil)
	_ gfx.Bindable = (*glr.VertexArray)(nil)
	_ gfx.Bindable = (*glr.Program)(nil)
)

func TestBufferRoundTrip(t *testing.T) {
	c := qt.New(t)
	ctx, _, _ := newContext(c)

	data := core.Float32Bytes([]float32{0.0, 0.5, -0.5})
	b, err := glr.NewBuffer(ctx, glr.ArrayBuffer, glr.StaticDraw, 0, data)
	c.Assert(err, qt.IsNil)
	defer b.Release()

	c.Assert(b.Len(), qt.Equals, 12)
	c.Assert(b.Target(), qt.Equals, glr.ArrayBuffer)
	c.Assert(ctx.BoundBuffer(glr.ArrayBuffer), qt.Equals, b.ID())

	raw, err := b.Read(0, 12)
	c.Assert(err, qt.IsNil)
	c.Assert(core.BytesFloat32(raw), qt.DeepEquals, []float32{0.0, 0.5, -0.5})

	raw, err = b.Read(4, 4)
	c.Assert(err, qt.IsNil)
	c.Assert(core.BytesFloat32(raw), qt.DeepEquals, []float32{0.5})
	c.Assert(ctx.CheckErrors("buffer read"), qt.IsFalse)
}

func TestBufferReserve(t *testing.T) {
	c := qt.New(t)
	ctx, dev, _ := newContext(c)

	b, err := glr.NewBuffer(ctx, glr.ArrayBuffer, glr.DynamicDraw, 64, nil)
	c.Assert(err, qt.IsNil)
	defer b.Release()

	contents, ok := dev.BufferContents(b.ID())
	c.Assert(ok, qt.IsTrue)
	c.Assert(contents, qt.DeepEquals, make([]byte, 64))
}

func TestBufferReadOutOfRange(t *testing.T) {
	c := qt.New(t)
	ctx, _, _ := newContext(c)

	b, err := glr.NewBuffer(ctx, glr.ArrayBuffer, glr.StaticDraw, 0, []byte{1, 2, 3, 4})
	c.Assert(err, qt.IsNil)

	_, err = b.Read(2, 4)
	c.Assert(err, qt.ErrorMatches, `read \[2:6\] out of range of 4 byte buffer`)

	b.Release()
	_, err = b.Read(0, 1)
	c.Assert(err, qt.ErrorMatches, "failed to read buffer: already released")
}

func TestBufferNegativeSize(t *testing.T) {
	c := qt.New(t)
	ctx, dev, _ := newContext(c)

	_, err := glr.NewBuffer(ctx, glr.ArrayBuffer, glr.StaticDraw, -1, nil)
	c.Assert(err, qt.ErrorAs, new(*glr.ResourceError))
	c.Assert(dev.Live(), qt.Equals, gltest.Counts{})
}

func TestBufferShortData(t *testing.T) {
	c := qt.New(t)
	ctx, dev, _ := newContext(c)

	data := core.Float32Bytes([]float32{0.0, 0.5, -0.5})
	_, err := glr.NewBuffer(ctx, glr.ArrayBuffer, glr.StaticDraw, 16, data)
	c.Assert(err, qt.ErrorMatches, "failed to create buffer: 12 bytes of data for a 16 byte buffer")
	c.Assert(dev.Live(), qt.Equals, gltest.Counts{})

	dev.BufferData(glr.ARRAY_BUFFER, 16, data, glr.STATIC_DRAW)
	c.Assert(dev.PendingErrors(), qt.DeepEquals, []glr.Enum{glr.INVALID_VALUE})
}

func TestBufferReleaseOnce(t *testing.T) {
	c := qt.New(t)
	ctx, dev, _ := newContext(c)

	b, err := glr.NewBuffer(ctx, glr.ArrayBuffer, glr.StaticDraw, 0, []byte{1})
	c.Assert(err, qt.IsNil)
	id := b.ID()
	c.Assert(dev.Live().Buffers, qt.Equals, 1)

	b.Release()
	b.Release()
	c.Assert(b.ID(), qt.Equals, uint32(0))
	c.Assert(dev.Live().Buffers, qt.Equals, 0)
	c.Assert(dev.Calls("DeleteBuffer"), qt.Equals, 1)
	c.Assert(ctx.BoundBuffer(glr.ArrayBuffer), qt.Not(qt.Equals), id)

	var nilBuffer *glr.Buffer
	nilBuffer.Release()
}

func TestVertexArrayAttributes(t *testing.T) {
	c := qt.New(t)
	ctx, dev, _ := newContext(c)

	va, err := glr.NewVertexArray(ctx)
	c.Assert(err, qt.IsNil)
	vbo, err := glr.NewBuffer(ctx, glr.ArrayBuffer, glr.StaticDraw, 0, make([]byte, 72))
	c.Assert(err, qt.IsNil)
	defer gfx.ReleaseAll(va, vbo)

	va.Bind()
	vbo.Bind()
	attrs := []glr.Attribute{
		{Index: 0, Size: 3, Type: glr.FLOAT, Stride: 24},
		{Index: 1, Size: 3, Type: glr.FLOAT, Stride: 24, Offset: 12},
	}
	va.SetAttributes(attrs...)
	c.Assert(va.Attributes(), qt.DeepEquals, attrs)
	c.Assert(ctx.BoundVertexArray(), qt.Equals, va.ID())

	state, ok := dev.Attrib(va.ID(), 1)
	c.Assert(ok, qt.IsTrue)
	c.Assert(state, qt.Equals, gltest.AttribState{
		Enabled: true,
		Size:    3,
		Type:    glr.FLOAT,
		Stride:  24,
		Offset:  12,
		Buffer:  vbo.ID(),
	})
	c.Assert(ctx.CheckErrors("attributes"), qt.IsFalse)
}

func TestVertexArrayWithoutBinding(t *testing.T) {
	c := qt.New(t)
	ctx, _, _ := newContext(c)

	va, err := glr.NewVertexArray(ctx)
	c.Assert(err, qt.IsNil)
	defer va.Release()

	va.SetAttributes(glr.Attribute{Index: 0, Size: 3, Type: glr.FLOAT})
	c.Assert(ctx.Errors("unbound vertex array"), qt.DeepEquals, []glr.Enum{glr.INVALID_OPERATION, glr.INVALID_OPERATION})
}

func TestReleaseAllReverseOrder(t *testing.T) {
	c := qt.New(t)
	ctx, dev, _ := newContext(c)

	va, err := glr.NewVertexArray(ctx)
	c.Assert(err, qt.IsNil)
	va.Bind()
	b, err := glr.NewBuffer(ctx, glr.ArrayBuffer, glr.StaticDraw, 0, []byte{1, 2})
	c.Assert(err, qt.IsNil)

	gfx.ReleaseAll(va, nil, b)
	c.Assert(dev.Live(), qt.Equals, gltest.Counts{})
	c.Assert(ctx.BoundVertexArray(), qt.Equals, uint32(0))
	c.Assert(ctx.CheckErrors("release"), qt.IsFalse)
}

// Copyright (c) 2019 devblok
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package glr

import (
	"fmt"

	log "github.com/sirupsen/logrus"
)

// BufferTarget is the binding point a buffer is created for.
type BufferTarget Enum

// Buffer targets.
const (
	ArrayBuffer        = BufferTarget(ARRAY_BUFFER)
	ElementArrayBuffer = BufferTarget(ELEMENT_ARRAY_BUFFER)
)

func (t BufferTarget) String() string {
	switch t {
	case ArrayBuffer:
		return "vertex"
	case ElementArrayBuffer:
		return "index"
	}
	return fmt.Sprintf("target(0x%04X)", uint32(t))
}

// Usage is the expected access pattern of a buffer's data store.
type Usage Enum

// Usage hints.
const (
	StaticDraw  = Usage(STATIC_DRAW)
	DynamicDraw = Usage(DYNAMIC_DRAW)
	StreamDraw  = Usage(STREAM_DRAW)
)

// NewBuffer creates a buffer, binds it to target and uploads data. When
// data is nil, size bytes are reserved. When size is zero the length of
// data is used. Data shorter than size is an error.
func NewBuffer(ctx *Context, target BufferTarget, usage Usage, size int, data []byte) (*Buffer, error) {
	if size == 0 {
		size = len(data)
	}
	if size < 0 {
		return nil, &ResourceError{Kind: "buffer", Reason: fmt.Sprintf("negative size %d", size)}
	}
	if data != nil && size > len(data) {
		return nil, &ResourceError{Kind: "buffer", Reason: fmt.Sprintf("%d bytes of data for a %d byte buffer", len(data), size)}
	}

	id := ctx.fn.GenBuffer()
	if id == 0 {
		return nil, &ResourceError{Kind: "buffer", Reason: "no handle returned"}
	}

	b := &Buffer{
		ctx:    ctx,
		id:     id,
		target: target,
		usage:  usage,
		size:   size,
	}
	b.Bind()
	ctx.fn.BufferData(Enum(target), size, data, Enum(usage))
	ctx.log.WithFields(log.Fields{"id": id, "target": target, "size": size}).Debug("Buffer created")
	return b, nil
}

// Buffer owns one GPU data buffer.
type Buffer struct {
	noCopy noCopy

	ctx    *Context
	id     uint32
	target BufferTarget
	usage  Usage
	size   int
}

// ID returns the buffer handle.
func (b *Buffer) ID() uint32 {
	return b.id
}

// Target returns the target the buffer binds to.
func (b *Buffer) Target() BufferTarget {
	return b.target
}

// Usage returns the usage hint the buffer was created with.
func (b *Buffer) Usage() Usage {
	return b.usage
}

// Len returns the size of the data store in bytes.
func (b *Buffer) Len() int {
	return b.size
}

// Bind makes the buffer current for its target.
func (b *Buffer) Bind() {
	b.ctx.bindBuffer(Enum(b.target), b.id)
}

// Unbind clears the binding of the buffer's target.
func (b *Buffer) Unbind() {
	b.ctx.bindBuffer(Enum(b.target), 0)
}

// Read binds the buffer and returns size bytes of its data store starting
// at offset.
func (b *Buffer) Read(offset, size int) ([]byte, error) {
	if b.id == 0 {
		return nil, &ResourceError{Op: "read", Kind: "buffer", Reason: "already released"}
	}
	if offset < 0 || size < 0 || offset+size > b.size {
		return nil, fmt.Errorf("read [%d:%d] out of range of %d byte buffer", offset, offset+size, b.size)
	}
	dst := make([]byte, size)
	b.Bind()
	b.ctx.fn.GetBufferSubData(Enum(b.target), offset, dst)
	return dst, nil
}

// Release deletes the buffer.
func (b *Buffer) Release() {
	if b == nil || b.id == 0 {
		return
	}
	b.ctx.fn.DeleteBuffer(b.id)
	b.ctx.forgetBuffer(b.id)
	b.ctx.log.WithField("id", b.id).Debug("Buffer deleted")
	b.id = 0
}

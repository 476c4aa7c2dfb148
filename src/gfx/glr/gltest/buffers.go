// Copyright (c) 2019 devblok
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package gltest

import (
	"github.com/devblok/learngl/src/gfx/glr"
)

func validBufferTarget(target glr.Enum) bool {
	return target == glr.ARRAY_BUFFER || target == glr.ELEMENT_ARRAY_BUFFER
}

func validUsage(usage glr.Enum) bool {
	switch usage {
	case glr.STATIC_DRAW, glr.DYNAMIC_DRAW, glr.STREAM_DRAW:
		return true
	}
	return false
}

// GenBuffer implements glr.Functions.
func (d *Device) GenBuffer() uint32 {
	d.call("GenBuffer")
	id := d.gen()
	d.buffers[id] = &buffer{}
	return id
}

// DeleteBuffer implements glr.Functions. Deleting a bound buffer unbinds
// it, unknown names are ignored.
func (d *Device) DeleteBuffer(id uint32) {
	d.call("DeleteBuffer")
	if _, ok := d.buffers[id]; !ok {
		return
	}
	delete(d.buffers, id)
	for target, bound := range d.bound {
		if bound == id {
			d.bound[target] = 0
		}
	}
	for _, va := range d.arrays {
		if va.element == id {
			va.element = 0
		}
		for _, a := range va.attribs {
			if a.Buffer == id {
				a.Buffer = 0
			}
		}
	}
}

// BindBuffer implements glr.Functions.
func (d *Device) BindBuffer(target glr.Enum, id uint32) {
	d.call("BindBuffer")
	if !validBufferTarget(target) {
		d.fail(glr.INVALID_ENUM)
		return
	}
	if _, ok := d.buffers[id]; id != 0 && !ok {
		d.fail(glr.INVALID_OPERATION)
		return
	}
	if target == glr.ELEMENT_ARRAY_BUFFER {
		if va, ok := d.arrays[d.vertexArray]; ok {
			va.element = id
			return
		}
	}
	d.bound[target] = id
}

func (d *Device) boundBuffer(target glr.Enum) (*buffer, bool) {
	id := d.bound[target]
	if target == glr.ELEMENT_ARRAY_BUFFER {
		if va, ok := d.arrays[d.vertexArray]; ok {
			id = va.element
		}
	}
	b, ok := d.buffers[id]
	return b, ok && id != 0
}

// BufferData implements glr.Functions. A nil data reserves size zeroed
// bytes, data shorter than size is INVALID_VALUE.
func (d *Device) BufferData(target glr.Enum, size int, data []byte, usage glr.Enum) {
	d.call("BufferData")
	if !validBufferTarget(target) || !validUsage(usage) {
		d.fail(glr.INVALID_ENUM)
		return
	}
	if size < 0 || (data != nil && len(data) < size) {
		d.fail(glr.INVALID_VALUE)
		return
	}
	b, ok := d.boundBuffer(target)
	if !ok {
		d.fail(glr.INVALID_OPERATION)
		return
	}
	b.data = make([]byte, size)
	copy(b.data, data)
	b.usage = usage
}

// GetBufferSubData implements glr.Functions.
func (d *Device) GetBufferSubData(target glr.Enum, offset int, dst []byte) {
	d.call("GetBufferSubData")
	if !validBufferTarget(target) {
		d.fail(glr.INVALID_ENUM)
		return
	}
	b, ok := d.boundBuffer(target)
	if !ok {
		d.fail(glr.INVALID_OPERATION)
		return
	}
	if offset < 0 || offset+len(dst) > len(b.data) {
		d.fail(glr.INVALID_VALUE)
		return
	}
	copy(dst, b.data[offset:])
}

// BufferContents returns a copy of a buffer's data store.
func (d *Device) BufferContents(id uint32) ([]byte, bool) {
	b, ok := d.buffers[id]
	if !ok {
		return nil, false
	}
	return append([]byte(nil), b.data...), true
}

// BoundBuffer returns the buffer bound to target as the device sees it.
func (d *Device) BoundBuffer(target glr.Enum) uint32 {
	if target == glr.ELEMENT_ARRAY_BUFFER {
		if va, ok := d.arrays[d.vertexArray]; ok {
			return va.element
		}
	}
	return d.bound[target]
}

// GenVertexArray implements glr.Functions.
func (d *Device) GenVertexArray() uint32 {
	d.call("GenVertexArray")
	id := d.gen()
	d.arrays[id] = &vertexArray{attribs: make(map[uint32]*AttribState)}
	return id
}

// DeleteVertexArray implements glr.Functions.
func (d *Device) DeleteVertexArray(id uint32) {
	d.call("DeleteVertexArray")
	if _, ok := d.arrays[id]; !ok {
		return
	}
	delete(d.arrays, id)
	if d.vertexArray == id {
		d.vertexArray = 0
	}
}

// BindVertexArray implements glr.Functions.
func (d *Device) BindVertexArray(id uint32) {
	d.call("BindVertexArray")
	if _, ok := d.arrays[id]; id != 0 && !ok {
		d.fail(glr.INVALID_OPERATION)
		return
	}
	d.vertexArray = id
}

// BoundVertexArray returns the current vertex array as the device sees it.
func (d *Device) BoundVertexArray() uint32 {
	return d.vertexArray
}

// EnableVertexAttribArray implements glr.Functions.
func (d *Device) EnableVertexAttribArray(index uint32) {
	d.call("EnableVertexAttribArray")
	va, ok := d.arrays[d.vertexArray]
	if !ok {
		d.fail(glr.INVALID_OPERATION)
		return
	}
	if index >= glr.MaxVertexAttribs {
		d.fail(glr.INVALID_VALUE)
		return
	}
	a, ok := va.attribs[index]
	if !ok {
		a = &AttribState{Size: 4, Type: glr.FLOAT}
		va.attribs[index] = a
	}
	a.Enabled = true
}

// VertexAttribPointer implements glr.Functions.
func (d *Device) VertexAttribPointer(index uint32, size int32, typ glr.Enum, normalized bool, stride int32, offset int) {
	d.call("VertexAttribPointer")
	va, ok := d.arrays[d.vertexArray]
	if !ok {
		d.fail(glr.INVALID_OPERATION)
		return
	}
	if index >= glr.MaxVertexAttribs || size < 1 || size > 4 || stride < 0 {
		d.fail(glr.INVALID_VALUE)
		return
	}
	switch typ {
	case glr.BYTE, glr.UNSIGNED_BYTE, glr.SHORT, glr.UNSIGNED_SHORT, glr.INT, glr.UNSIGNED_INT, glr.FLOAT:
	default:
		d.fail(glr.INVALID_ENUM)
		return
	}
	src := d.bound[glr.ARRAY_BUFFER]
	if src == 0 && offset != 0 {
		d.fail(glr.INVALID_OPERATION)
		return
	}
	a, ok := va.attribs[index]
	if !ok {
		a = &AttribState{}
		va.attribs[index] = a
	}
	a.Size = size
	a.Type = typ
	a.Normalized = normalized
	a.Stride = stride
	a.Offset = offset
	a.Buffer = src
}

// Attrib returns the state of one attribute of a vertex array.
func (d *Device) Attrib(vertexArray, index uint32) (AttribState, bool) {
	va, ok := d.arrays[vertexArray]
	if !ok {
		return AttribState{}, false
	}
	a, ok := va.attribs[index]
	if !ok {
		return AttribState{}, false
	}
	return *a, true
}

func validMode(mode glr.Enum) bool {
	switch mode {
	case glr.POINTS, glr.LINES, glr.LINE_STRIP, glr.TRIANGLES, glr.TRIANGLE_STRIP, glr.TRIANGLE_FAN:
		return true
	}
	return false
}

// drawable checks the state every draw needs: a linked current program and
// a bound vertex array whose enabled attributes all source a buffer.
func (d *Device) drawable(mode glr.Enum, count int32) (*vertexArray, bool) {
	if !validMode(mode) {
		d.fail(glr.INVALID_ENUM)
		return nil, false
	}
	if count < 0 {
		d.fail(glr.INVALID_VALUE)
		return nil, false
	}
	if p, ok := d.programs[d.program]; !ok || !p.linked {
		d.fail(glr.INVALID_OPERATION)
		return nil, false
	}
	va, ok := d.arrays[d.vertexArray]
	if !ok {
		d.fail(glr.INVALID_OPERATION)
		return nil, false
	}
	for _, a := range va.attribs {
		if a.Enabled && a.Buffer == 0 {
			d.fail(glr.INVALID_OPERATION)
			return nil, false
		}
	}
	return va, true
}

// DrawArrays implements glr.Functions.
func (d *Device) DrawArrays(mode glr.Enum, first, count int32) {
	d.call("DrawArrays")
	if first < 0 {
		d.fail(glr.INVALID_VALUE)
		return
	}
	if _, ok := d.drawable(mode, count); !ok {
		return
	}
	d.draws = append(d.draws, DrawCall{
		Mode:        mode,
		First:       first,
		Count:       count,
		Program:     d.program,
		VertexArray: d.vertexArray,
	})
}

// DrawElements implements glr.Functions.
func (d *Device) DrawElements(mode glr.Enum, count int32, typ glr.Enum, offset int) {
	d.call("DrawElements")
	var size int
	switch typ {
	case glr.UNSIGNED_BYTE:
		size = 1
	case glr.UNSIGNED_SHORT:
		size = 2
	case glr.UNSIGNED_INT:
		size = 4
	default:
		d.fail(glr.INVALID_ENUM)
		return
	}
	va, ok := d.drawable(mode, count)
	if !ok {
		return
	}
	indices, ok := d.buffers[va.element]
	if !ok || va.element == 0 || offset < 0 || offset+int(count)*size > len(indices.data) {
		d.fail(glr.INVALID_OPERATION)
		return
	}
	d.draws = append(d.draws, DrawCall{
		Mode:        mode,
		First:       int32(offset / size),
		Count:       count,
		Indexed:     true,
		IndexType:   typ,
		Program:     d.program,
		VertexArray: d.vertexArray,
	})
}

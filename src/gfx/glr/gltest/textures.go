// Copyright (c) 2019 devblok
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package gltest

import (
	"math/bits"

	"github.com/devblok/learngl/src/gfx/glr"
)

// GenTexture implements glr.Functions.
func (d *Device) GenTexture() uint32 {
	d.call("GenTexture")
	id := d.gen()
	d.textures[id] = &texture{TextureState{
		Params: map[glr.Enum]int32{
			glr.TEXTURE_WRAP_S:     int32(glr.REPEAT),
			glr.TEXTURE_WRAP_T:     int32(glr.REPEAT),
			glr.TEXTURE_MIN_FILTER: int32(glr.NEAREST),
			glr.TEXTURE_MAG_FILTER: int32(glr.LINEAR),
		},
	}}
	return id
}

// DeleteTexture implements glr.Functions.
func (d *Device) DeleteTexture(id uint32) {
	d.call("DeleteTexture")
	if _, ok := d.textures[id]; !ok {
		return
	}
	delete(d.textures, id)
	for unit, bound := range d.unitTex {
		if bound == id {
			d.unitTex[unit] = 0
		}
	}
}

// ActiveTexture implements glr.Functions.
func (d *Device) ActiveTexture(unit glr.Enum) {
	d.call("ActiveTexture")
	if unit < glr.TEXTURE0 || unit >= glr.TEXTURE0+glr.MaxTextureUnits {
		d.fail(glr.INVALID_ENUM)
		return
	}
	d.unit = uint32(unit - glr.TEXTURE0)
}

// ActiveUnit returns the active texture unit index as the device sees it.
func (d *Device) ActiveUnit() uint32 {
	return d.unit
}

// BindTexture implements glr.Functions.
func (d *Device) BindTexture(target glr.Enum, id uint32) {
	d.call("BindTexture")
	if target != glr.TEXTURE_2D {
		d.fail(glr.INVALID_ENUM)
		return
	}
	if _, ok := d.textures[id]; id != 0 && !ok {
		d.fail(glr.INVALID_OPERATION)
		return
	}
	d.unitTex[d.unit] = id
}

// BoundTexture returns the texture bound to unit as the device sees it.
func (d *Device) BoundTexture(unit uint32) uint32 {
	if unit >= glr.MaxTextureUnits {
		return 0
	}
	return d.unitTex[unit]
}

func (d *Device) boundTexture(target glr.Enum) (*texture, bool) {
	if target != glr.TEXTURE_2D {
		d.fail(glr.INVALID_ENUM)
		return nil, false
	}
	t, ok := d.textures[d.unitTex[d.unit]]
	if !ok {
		d.fail(glr.INVALID_OPERATION)
		return nil, false
	}
	return t, true
}

func validTexParameter(pname glr.Enum, param int32) bool {
	switch pname {
	case glr.TEXTURE_WRAP_S, glr.TEXTURE_WRAP_T:
		return param == int32(glr.REPEAT) || param == int32(glr.CLAMP_TO_EDGE)
	case glr.TEXTURE_MAG_FILTER:
		return param == int32(glr.NEAREST) || param == int32(glr.LINEAR)
	case glr.TEXTURE_MIN_FILTER:
		return param == int32(glr.NEAREST) || param == int32(glr.LINEAR) || param == int32(glr.LINEAR_MIPMAP_LINEAR)
	}
	return false
}

// TexParameteri implements glr.Functions.
func (d *Device) TexParameteri(target, pname glr.Enum, param int32) {
	d.call("TexParameteri")
	t, ok := d.boundTexture(target)
	if !ok {
		return
	}
	if !validTexParameter(pname, param) {
		d.fail(glr.INVALID_ENUM)
		return
	}
	t.Params[pname] = param
}

// GetTexParameteri implements glr.Functions.
func (d *Device) GetTexParameteri(target, pname glr.Enum) int32 {
	d.call("GetTexParameteri")
	t, ok := d.boundTexture(target)
	if !ok {
		return 0
	}
	v, ok := t.Params[pname]
	if !ok {
		d.fail(glr.INVALID_ENUM)
		return 0
	}
	return v
}

// PixelStorei implements glr.Functions.
func (d *Device) PixelStorei(pname glr.Enum, param int32) {
	d.call("PixelStorei")
	if pname != glr.UNPACK_ALIGNMENT {
		d.fail(glr.INVALID_ENUM)
		return
	}
	switch param {
	case 1, 2, 4, 8:
		d.unpack = param
	default:
		d.fail(glr.INVALID_VALUE)
	}
}

// UnpackAlignment returns the current UNPACK_ALIGNMENT.
func (d *Device) UnpackAlignment() int32 {
	return d.unpack
}

func formatChannels(format glr.Enum) int {
	switch format {
	case glr.RED:
		return 1
	case glr.RG:
		return 2
	case glr.RGB:
		return 3
	case glr.RGBA:
		return 4
	}
	return 0
}

// TexImage2D implements glr.Functions. Only level 0 uploads of unsigned
// byte data are supported. Rows are padded to the unpack alignment.
func (d *Device) TexImage2D(target glr.Enum, level int32, internalFormat int32, width, height int32, format, typ glr.Enum, pixels []byte) {
	d.call("TexImage2D")
	t, ok := d.boundTexture(target)
	if !ok {
		return
	}
	channels := formatChannels(format)
	if channels == 0 || typ != glr.UNSIGNED_BYTE || formatChannels(glr.Enum(internalFormat)) == 0 {
		d.fail(glr.INVALID_ENUM)
		return
	}
	if level != 0 || width < 0 || height < 0 {
		d.fail(glr.INVALID_VALUE)
		return
	}
	row := int(width) * channels
	stride := (row + int(d.unpack) - 1) / int(d.unpack) * int(d.unpack)
	need := 0
	if height > 0 {
		need = stride*(int(height)-1) + row
	}
	if pixels != nil && len(pixels) < need {
		d.fail(glr.INVALID_OPERATION)
		return
	}
	t.Width = width
	t.Height = height
	t.InternalFormat = internalFormat
	t.Format = format
	t.Pixels = make([]byte, row*int(height))
	if pixels != nil {
		for y := 0; y < int(height); y++ {
			copy(t.Pixels[y*row:(y+1)*row], pixels[y*stride:])
		}
	}
	t.Levels = 1
}

// GenerateMipmap implements glr.Functions.
func (d *Device) GenerateMipmap(target glr.Enum) {
	d.call("GenerateMipmap")
	t, ok := d.boundTexture(target)
	if !ok {
		return
	}
	if t.Width == 0 || t.Height == 0 {
		d.fail(glr.INVALID_OPERATION)
		return
	}
	size := t.Width
	if t.Height > size {
		size = t.Height
	}
	t.Levels = bits.Len32(uint32(size))
}

// Texture returns the recorded state of a texture object.
func (d *Device) Texture(id uint32) (TextureState, bool) {
	t, ok := d.textures[id]
	if !ok {
		return TextureState{}, false
	}
	state := t.TextureState
	state.Pixels = append([]byte(nil), t.Pixels...)
	state.Params = make(map[glr.Enum]int32, len(t.Params))
	for k, v := range t.Params {
		state.Params[k] = v
	}
	return state, true
}

// Copyright (c) 2019 devblok
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package glr

import (
	"fmt"
	"image"

	"github.com/devblok/learngl/src/core"
	log "github.com/sirupsen/logrus"
)

// TextureParameters are the sampling parameters of a texture.
type TextureParameters struct {
	WrapS     Enum
	WrapT     Enum
	MinFilter Enum
	MagFilter Enum
}

// DefaultTextureParameters repeat on both axes, filter trilinearly when
// minifying and linearly when magnifying.
var DefaultTextureParameters = TextureParameters{
	WrapS:     REPEAT,
	WrapT:     REPEAT,
	MinFilter: LINEAR_MIPMAP_LINEAR,
	MagFilter: LINEAR,
}

var channelFormats = [...]Enum{0, RED, RG, RGB, RGBA}

// NewTexture uploads tightly packed pixels of width x height with the
// given number of channels as a 2D texture with DefaultTextureParameters
// and a full mipmap chain.
func NewTexture(ctx *Context, pixels []byte, width, height, channels int) (*Texture, error) {
	if len(pixels) == 0 {
		return nil, &AssetError{Path: "texture", Err: ErrNoPixelData}
	}
	if channels < 1 || channels > 4 {
		return nil, &ResourceError{Kind: "texture", Reason: fmt.Sprintf("unsupported channel count %d", channels)}
	}
	if width <= 0 || height <= 0 {
		return nil, &ResourceError{Kind: "texture", Reason: fmt.Sprintf("invalid size %dx%d", width, height)}
	}
	if need := width * height * channels; len(pixels) < need {
		return nil, &ResourceError{Kind: "texture", Reason: fmt.Sprintf("%d bytes of pixel data, %dx%dx%d needs %d", len(pixels), width, height, channels, need)}
	}

	id := ctx.fn.GenTexture()
	if id == 0 {
		return nil, &ResourceError{Kind: "texture", Reason: "no handle returned"}
	}

	t := &Texture{
		ctx:      ctx,
		id:       id,
		width:    width,
		height:   height,
		channels: channels,
		params:   DefaultTextureParameters,
	}
	ctx.bindTexture(id)
	ctx.fn.TexParameteri(TEXTURE_2D, TEXTURE_WRAP_S, int32(t.params.WrapS))
	ctx.fn.TexParameteri(TEXTURE_2D, TEXTURE_WRAP_T, int32(t.params.WrapT))
	ctx.fn.TexParameteri(TEXTURE_2D, TEXTURE_MIN_FILTER, int32(t.params.MinFilter))
	ctx.fn.TexParameteri(TEXTURE_2D, TEXTURE_MAG_FILTER, int32(t.params.MagFilter))

	// rows are tightly packed, which breaks the default 4 byte alignment
	// for 1 and 3 channel images
	ctx.fn.PixelStorei(UNPACK_ALIGNMENT, 1)
	format := channelFormats[channels]
	ctx.fn.TexImage2D(TEXTURE_2D, 0, int32(format), int32(width), int32(height), format, UNSIGNED_BYTE, pixels)
	ctx.fn.PixelStorei(UNPACK_ALIGNMENT, 4)
	ctx.fn.GenerateMipmap(TEXTURE_2D)

	ctx.log.WithFields(log.Fields{"id": id, "width": width, "height": height, "channels": channels}).Debug("Texture created")
	return t, nil
}

// NewTextureFromImage uploads img as an RGBA texture.
func NewTextureFromImage(ctx *Context, img image.Image) (*Texture, error) {
	if img == nil || img.Bounds().Empty() {
		return nil, &AssetError{Path: "texture", Err: ErrNoPixelData}
	}
	b := img.Bounds()
	return NewTexture(ctx, core.GetPixels(img, 4), b.Dx(), b.Dy(), 4)
}

// Texture owns one 2D texture object.
type Texture struct {
	noCopy noCopy

	ctx      *Context
	id       uint32
	width    int
	height   int
	channels int
	params   TextureParameters
}

// ID returns the texture handle.
func (t *Texture) ID() uint32 {
	return t.id
}

// Width returns the width of the base level in pixels.
func (t *Texture) Width() int {
	return t.width
}

// Height returns the height of the base level in pixels.
func (t *Texture) Height() int {
	return t.height
}

// Channels returns the number of color channels.
func (t *Texture) Channels() int {
	return t.channels
}

// Parameters returns the sampling parameters set at creation.
func (t *Texture) Parameters() TextureParameters {
	return t.params
}

// Bind activates texture unit slot and binds the texture to it.
func (t *Texture) Bind(slot uint32) {
	t.ctx.activeTexture(slot)
	t.ctx.bindTexture(t.id)
}

// Unbind clears the texture binding of the active unit.
func (t *Texture) Unbind() {
	t.ctx.bindTexture(0)
}

// Release deletes the texture.
func (t *Texture) Release() {
	if t == nil || t.id == 0 {
		return
	}
	t.ctx.fn.DeleteTexture(t.id)
	t.ctx.forgetTexture(t.id)
	t.ctx.log.WithField("id", t.id).Debug("Texture deleted")
	t.id = 0
}

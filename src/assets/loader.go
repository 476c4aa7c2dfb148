// Copyright (c) 2019 devblok
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package assets

import (
	"image"
	"io"
	"io/ioutil"

	// image formats the loader decodes
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"github.com/disintegration/imaging"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	"github.com/devblok/learngl/src/core"
	"github.com/devblok/learngl/src/gfx/glr"
)

// Pixels is a decoded image, tightly packed with row 0 at the bottom.
type Pixels struct {
	Data     []byte
	Width    int
	Height   int
	Channels int
}

// Loader turns assets of a Source into shader sources, images and GL
// resources. Every failure is a *glr.AssetError naming the asset.
type Loader struct {
	src Source
	log log.FieldLogger
}

// NewLoader reads from src. A nil logger logs to the logrus standard
// logger.
func NewLoader(src Source, logger log.FieldLogger) *Loader {
	if logger == nil {
		logger = log.StandardLogger()
	}
	return &Loader{src: src, log: logger}
}

// Source returns the source the loader reads from.
func (l *Loader) Source() Source {
	return l.src
}

// Close closes the source if it holds resources.
func (l *Loader) Close() error {
	if c, ok := l.src.(io.Closer); ok {
		return c.Close()
	}
	return nil
}

func (l *Loader) read(name string) ([]byte, error) {
	r, err := l.src.Open(name)
	if err != nil {
		return nil, &glr.AssetError{Path: name, Err: err}
	}
	defer r.Close()

	data, err := ioutil.ReadAll(r)
	if err != nil {
		return nil, &glr.AssetError{Path: name, Err: errors.Wrap(err, "read")}
	}
	l.log.WithFields(log.Fields{"asset": name, "size": len(data)}).Debug("Asset loaded")
	return data, nil
}

// Shader returns the source text of the named shader.
func (l *Loader) Shader(name string) (string, error) {
	data, err := l.read(name)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// Program compiles and links name.vert and name.frag.
func (l *Loader) Program(ctx *glr.Context, name string) (*glr.Program, error) {
	vs, err := l.Shader(name + ".vert")
	if err != nil {
		return nil, err
	}
	fs, err := l.Shader(name + ".frag")
	if err != nil {
		return nil, err
	}
	return glr.BuildProgram(ctx, vs, fs)
}

// Image decodes the named image into RGBA pixels.
func (l *Loader) Image(name string) (*Pixels, error) {
	return l.ImageChannels(name, 4)
}

// ImageChannels decodes the named image into pixels with the given
// number of channels, 1 to 4.
func (l *Loader) ImageChannels(name string, channels int) (*Pixels, error) {
	if channels < 1 || channels > 4 {
		return nil, &glr.AssetError{Path: name, Err: errors.Errorf("unsupported channel count %d", channels)}
	}
	img, err := l.decode(name)
	if err != nil {
		return nil, err
	}

	// GL puts texture row 0 at the bottom, images have it at the top
	flipped := imaging.FlipV(img)
	b := flipped.Bounds()
	return &Pixels{
		Data:     core.GetPixels(flipped, channels),
		Width:    b.Dx(),
		Height:   b.Dy(),
		Channels: channels,
	}, nil
}

func (l *Loader) decode(name string) (image.Image, error) {
	r, err := l.src.Open(name)
	if err != nil {
		return nil, &glr.AssetError{Path: name, Err: err}
	}
	defer r.Close()

	img, format, err := image.Decode(r)
	if err != nil {
		return nil, &glr.AssetError{Path: name, Err: errors.Wrap(err, "decode")}
	}
	if img.Bounds().Empty() {
		return nil, &glr.AssetError{Path: name, Err: glr.ErrNoPixelData}
	}
	l.log.WithFields(log.Fields{"asset": name, "format": format}).Debug("Image decoded")
	return img, nil
}

// Texture loads the named image as an RGBA texture.
func (l *Loader) Texture(ctx *glr.Context, name string) (*glr.Texture, error) {
	px, err := l.Image(name)
	if err != nil {
		return nil, err
	}
	return glr.NewTexture(ctx, px.Data, px.Width, px.Height, px.Channels)
}

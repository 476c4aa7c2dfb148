// Copyright (c) 2019 devblok
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package assets_test

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/png"
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"

	qt "github.com/frankban/quicktest"
	"github.com/gobuffalo/packr"
	logtest "github.com/sirupsen/logrus/hooks/test"

	"github.com/devblok/learngl/src/assets"
	"github.com/devblok/learngl/src/gfx/glr"
	"github.com/devblok/learngl/src/gfx/glr/gltest"
	"github.com/devblok/learngl/src/utility/kar"
)

const assetDir = "../../assets"

var wantAssets = []string{
	"shaders/quad.frag",
	"shaders/quad.vert",
	"shaders/solid.frag",
	"shaders/solid.vert",
	"shaders/triangle.frag",
	"shaders/triangle.vert",
	"textures/checker.bmp",
}

func buildArchive(c *qt.C) string {
	builder, err := kar.NewBuilder(kar.Header{Author: "test", Version: 1})
	c.Assert(err, qt.IsNil)
	defer builder.Close()

	for _, name := range wantAssets {
		f, err := os.Open(filepath.Join(assetDir, filepath.FromSlash(name)))
		c.Assert(err, qt.IsNil)
		err = builder.Add(name, f)
		f.Close()
		c.Assert(err, qt.IsNil)
	}

	path := filepath.Join(c.TempDir(), "assets.kar")
	out, err := os.Create(path)
	c.Assert(err, qt.IsNil)
	_, err = builder.WriteTo(out)
	c.Assert(err, qt.IsNil)
	c.Assert(out.Close(), qt.IsNil)
	return path
}

func sources(c *qt.C) map[string]assets.Source {
	archive, err := assets.OpenArchive(buildArchive(c))
	c.Assert(err, qt.IsNil)
	c.Cleanup(func() { archive.Close() })

	return map[string]assets.Source{
		"dir":     assets.DirSource(assetDir),
		"box":     assets.NewBoxSource(packr.NewBox("../../assets")),
		"archive": archive,
	}
}

func TestSources(t *testing.T) {
	c := qt.New(t)

	want, err := ioutil.ReadFile(filepath.Join(assetDir, "shaders", "triangle.vert"))
	c.Assert(err, qt.IsNil)

	for name, src := range sources(c) {
		src := src
		c.Run(name, func(c *qt.C) {
			names, err := src.List()
			c.Assert(err, qt.IsNil)
			c.Assert(names, qt.DeepEquals, wantAssets)

			r, err := src.Open("shaders/triangle.vert")
			c.Assert(err, qt.IsNil)
			got, err := ioutil.ReadAll(r)
			c.Assert(err, qt.IsNil)
			c.Assert(r.Close(), qt.IsNil)
			c.Assert(string(got), qt.Equals, string(want))

			_, err = src.Open("shaders/missing.vert")
			c.Assert(os.IsNotExist(err), qt.IsTrue)
		})
	}
}

func TestOpenPath(t *testing.T) {
	c := qt.New(t)

	src, err := assets.OpenPath(assetDir)
	c.Assert(err, qt.IsNil)
	c.Assert(src, qt.Equals, assets.Source(assets.DirSource(assetDir)))

	src, err = assets.OpenPath(buildArchive(c))
	c.Assert(err, qt.IsNil)
	c.Assert(src, qt.Satisfies, func(s assets.Source) bool {
		_, ok := s.(*assets.ArchiveSource)
		return ok
	})
	c.Assert(assets.NewLoader(src, nil).Close(), qt.IsNil)

	_, err = assets.OpenPath(filepath.Join(assetDir, "shaders", "quad.vert"))
	c.Assert(err, qt.ErrorMatches, ".* is neither a directory nor a kar archive")
}

func TestLoaderShader(t *testing.T) {
	c := qt.New(t)
	logger, _ := logtest.NewNullLogger()
	loader := assets.NewLoader(assets.DirSource(assetDir), logger)

	text, err := loader.Shader("shaders/solid.frag")
	c.Assert(err, qt.IsNil)
	c.Assert(text, qt.Contains, "uniform vec4 color;")

	_, err = loader.Shader("shaders/missing.frag")
	var assetErr *glr.AssetError
	c.Assert(errors.As(err, &assetErr), qt.IsTrue)
	c.Assert(assetErr.Path, qt.Equals, "shaders/missing.frag")
	c.Assert(errors.Is(err, os.ErrNotExist), qt.IsTrue)
}

func TestLoaderProgram(t *testing.T) {
	c := qt.New(t)
	logger, _ := logtest.NewNullLogger()
	ctx := glr.NewContext(gltest.New(), logger)

	for name, src := range sources(c) {
		loader := assets.NewLoader(src, logger)
		for _, shader := range []string{"shaders/triangle", "shaders/quad", "shaders/solid"} {
			p, err := loader.Program(ctx, shader)
			c.Assert(err, qt.IsNil, qt.Commentf("%s from %s", shader, name))
			p.Release()
		}
	}
	c.Assert(ctx.CheckErrors("programs"), qt.IsFalse)
}

func writePNG(c *qt.C, img image.Image) string {
	dir := c.TempDir()
	var buf bytes.Buffer
	c.Assert(png.Encode(&buf, img), qt.IsNil)
	c.Assert(ioutil.WriteFile(filepath.Join(dir, "img.png"), buf.Bytes(), 0644), qt.IsNil)
	return dir
}

func TestLoaderImageFlipped(t *testing.T) {
	c := qt.New(t)

	img := image.NewNRGBA(image.Rect(0, 0, 1, 2))
	img.Set(0, 0, color.NRGBA{R: 255, A: 255})
	img.Set(0, 1, color.NRGBA{B: 255, A: 255})
	loader := assets.NewLoader(assets.DirSource(writePNG(c, img)), nil)

	px, err := loader.Image("img.png")
	c.Assert(err, qt.IsNil)
	c.Assert(px.Width, qt.Equals, 1)
	c.Assert(px.Height, qt.Equals, 2)
	c.Assert(px.Channels, qt.Equals, 4)
	c.Assert(px.Data, qt.DeepEquals, []byte{0, 0, 255, 255, 255, 0, 0, 255})

	px, err = loader.ImageChannels("img.png", 3)
	c.Assert(err, qt.IsNil)
	c.Assert(px.Data, qt.DeepEquals, []byte{0, 0, 255, 255, 0, 0})

	_, err = loader.ImageChannels("img.png", 0)
	c.Assert(err, qt.ErrorMatches, `failed to load asset "img.png": unsupported channel count 0`)
}

func TestLoaderImageBMP(t *testing.T) {
	c := qt.New(t)
	loader := assets.NewLoader(assets.DirSource(assetDir), nil)

	px, err := loader.Image("textures/checker.bmp")
	c.Assert(err, qt.IsNil)
	c.Assert(px.Width, qt.Equals, 8)
	c.Assert(px.Height, qt.Equals, 8)
	c.Assert(px.Data, qt.HasLen, 8*8*4)
}

func TestLoaderImageInvalid(t *testing.T) {
	c := qt.New(t)

	dir := c.TempDir()
	c.Assert(ioutil.WriteFile(filepath.Join(dir, "bad.png"), []byte("not an image"), 0644), qt.IsNil)
	loader := assets.NewLoader(assets.DirSource(dir), nil)

	_, err := loader.Image("bad.png")
	c.Assert(err, qt.ErrorMatches, `failed to load asset "bad.png": decode: .*`)
}

func TestLoaderTexture(t *testing.T) {
	c := qt.New(t)
	dev := gltest.New()
	ctx := glr.NewContext(dev, nil)
	loader := assets.NewLoader(assets.DirSource(assetDir), nil)

	tex, err := loader.Texture(ctx, "textures/checker.bmp")
	c.Assert(err, qt.IsNil)
	defer tex.Release()

	state, ok := dev.Texture(tex.ID())
	c.Assert(ok, qt.IsTrue)
	c.Assert(state.Width, qt.Equals, int32(8))
	c.Assert(state.Levels, qt.Equals, 4)
	c.Assert(ctx.CheckErrors("texture"), qt.IsFalse)
}

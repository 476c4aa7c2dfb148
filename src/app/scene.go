// Copyright (c) 2019 devblok
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package app

import (
	"fmt"
	"sort"
	"time"

	glm "github.com/go-gl/mathgl/mgl32"

	"github.com/devblok/learngl/src/assets"
	"github.com/devblok/learngl/src/gfx"
	"github.com/devblok/learngl/src/gfx/glr"
	"github.com/devblok/learngl/src/model"
)

// Scene is one tutorial program. Setup creates its GL resources, Draw
// renders one frame into the current framebuffer and Release frees
// everything Setup created, also after a failed Setup.
type Scene interface {
	Setup(ctx *glr.Context, loader *assets.Loader) error
	Draw(ctx *glr.Context) error
	Release()
}

var scenes = map[string]func() Scene{
	"clear":    func() Scene { return &ClearScene{Color: DefaultClearColor} },
	"triangle": func() Scene { return &TriangleScene{} },
	"quad":     func() Scene { return &QuadScene{Speed: 1} },
}

// SceneNames lists the names NewScene accepts.
func SceneNames() []string {
	names := make([]string, 0, len(scenes))
	for name := range scenes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// NewScene returns the named scene.
func NewScene(name string) (Scene, error) {
	fn, ok := scenes[name]
	if !ok {
		return nil, fmt.Errorf("unknown scene %q, want one of %v", name, SceneNames())
	}
	return fn(), nil
}

// DefaultClearColor is the dark teal every scene clears to.
var DefaultClearColor = glm.Vec4{0.2, 0.3, 0.3, 1}

// ClearScene only clears the window.
type ClearScene struct {
	Color glm.Vec4
}

// Setup implements Scene.
func (s *ClearScene) Setup(ctx *glr.Context, _ *assets.Loader) error {
	ctx.ClearColor(s.Color[0], s.Color[1], s.Color[2], s.Color[3])
	return nil
}

// Draw implements Scene.
func (s *ClearScene) Draw(ctx *glr.Context) error {
	ctx.Clear()
	return nil
}

// Release implements Scene.
func (s *ClearScene) Release() {}

// geometry is the vertex array and buffers of an uploaded mesh.
type geometry struct {
	mesh     model.Mesh
	vertices *glr.VertexArray
	vbo      *glr.Buffer
	ebo      *glr.Buffer
}

func upload(ctx *glr.Context, mesh model.Mesh) (g *geometry, err error) {
	g = &geometry{mesh: mesh}
	defer func() {
		if err != nil {
			g.Release()
			g = nil
		}
	}()

	if g.vertices, err = glr.NewVertexArray(ctx); err != nil {
		return g, err
	}
	g.vertices.Bind()
	if g.vbo, err = glr.NewBuffer(ctx, glr.ArrayBuffer, glr.StaticDraw, 0, mesh.VertexBytes()); err != nil {
		return g, err
	}
	if mesh.Indexed() {
		if g.ebo, err = glr.NewBuffer(ctx, glr.ElementArrayBuffer, glr.StaticDraw, 0, mesh.IndexBytes()); err != nil {
			return g, err
		}
	}
	g.vertices.SetAttributes(model.Attributes()...)
	g.vertices.Unbind()
	return g, nil
}

func (g *geometry) Draw(ctx *glr.Context) {
	g.vertices.Bind()
	if g.mesh.Indexed() {
		ctx.DrawElements(glr.TRIANGLES, g.mesh.Count(), glr.UNSIGNED_INT, 0)
	} else {
		ctx.DrawArrays(glr.TRIANGLES, 0, g.mesh.Count())
	}
	g.vertices.Unbind()
}

func (g *geometry) Release() {
	if g == nil {
		return
	}
	gfx.ReleaseAll(g.vertices, g.vbo, g.ebo)
}

// TriangleScene draws the vertex colored triangle.
type TriangleScene struct {
	program  *glr.Program
	triangle *geometry
}

// Setup implements Scene.
func (s *TriangleScene) Setup(ctx *glr.Context, loader *assets.Loader) (err error) {
	if s.program, err = loader.Program(ctx, "shaders/triangle"); err != nil {
		return err
	}
	if s.triangle, err = upload(ctx, model.Triangle()); err != nil {
		return err
	}
	ctx.ClearColor(DefaultClearColor[0], DefaultClearColor[1], DefaultClearColor[2], DefaultClearColor[3])
	return nil
}

// Draw implements Scene.
func (s *TriangleScene) Draw(ctx *glr.Context) error {
	ctx.Clear()
	s.program.Bind()
	s.triangle.Draw(ctx)
	return nil
}

// Release implements Scene.
func (s *TriangleScene) Release() {
	s.triangle.Release()
	s.program.Release()
}

// QuadScene draws a textured quad spinning around the z axis.
type QuadScene struct {
	// Speed is the rotation speed in radians per second
	Speed float32

	// Elapsed drives the rotation, time since Setup when nil
	Elapsed func() time.Duration

	program *glr.Program
	texture *glr.Texture
	quad    *geometry
}

// Setup implements Scene.
func (s *QuadScene) Setup(ctx *glr.Context, loader *assets.Loader) (err error) {
	if s.program, err = loader.Program(ctx, "shaders/quad"); err != nil {
		return err
	}
	if s.texture, err = loader.Texture(ctx, "textures/checker.bmp"); err != nil {
		return err
	}
	if s.quad, err = upload(ctx, model.Quad()); err != nil {
		return err
	}
	if s.Elapsed == nil {
		start := time.Now()
		s.Elapsed = func() time.Duration { return time.Since(start) }
	}
	s.program.SetInt("tex", 0)
	ctx.ClearColor(DefaultClearColor[0], DefaultClearColor[1], DefaultClearColor[2], DefaultClearColor[3])
	return nil
}

// Transform returns the model matrix of the current frame.
func (s *QuadScene) Transform() glm.Mat4 {
	return model.Transform{
		Axis:  glm.Vec3{0, 0, 1},
		Angle: s.Speed * float32(s.Elapsed().Seconds()),
	}.Matrix()
}

// Draw implements Scene.
func (s *QuadScene) Draw(ctx *glr.Context) error {
	ctx.Clear()
	s.texture.Bind(0)
	s.program.SetMat4("transform", s.Transform())
	s.quad.Draw(ctx)
	return nil
}

// Release implements Scene.
func (s *QuadScene) Release() {
	gfx.ReleaseAll(s.program, s.texture)
	s.quad.Release()
}

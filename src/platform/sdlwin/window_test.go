// Copyright (c) 2019 devblok
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package sdlwin

import (
	"testing"

	qt "github.com/frankban/quicktest"
	"github.com/veandco/go-sdl2/sdl"
)

func TestResizeReportsDrawableSize(t *testing.T) {
	c := qt.New(t)

	w := &Window{drawable: func() (int32, int32) { return 1600, 1200 }}
	var width, height int
	w.OnResize(func(wd, ht int) { width, height = wd, ht })

	w.handle(&sdl.WindowEvent{Event: sdl.WINDOWEVENT_SIZE_CHANGED, Data1: 800, Data2: 600})
	c.Assert(width, qt.Equals, 1600)
	c.Assert(height, qt.Equals, 1200)
	c.Assert(w.ShouldClose(), qt.IsFalse)
}

func TestCloseEvents(t *testing.T) {
	c := qt.New(t)

	w := &Window{}
	w.handle(&sdl.KeyboardEvent{Type: sdl.KEYUP, Keysym: sdl.Keysym{Sym: sdl.K_ESCAPE}})
	c.Assert(w.ShouldClose(), qt.IsFalse)
	w.handle(&sdl.KeyboardEvent{Type: sdl.KEYDOWN, Keysym: sdl.Keysym{Sym: sdl.K_ESCAPE}})
	c.Assert(w.ShouldClose(), qt.IsTrue)

	w = &Window{}
	w.handle(&sdl.QuitEvent{Type: sdl.QUIT})
	c.Assert(w.ShouldClose(), qt.IsTrue)
}

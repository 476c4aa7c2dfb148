// Copyright (c) 2019 devblok
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package platform_test

import (
	"errors"
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"

	qt "github.com/frankban/quicktest"

	"github.com/devblok/learngl/src/platform"
)

type fakeSurface struct {
	destroyed int
}

func (*fakeSurface) PollEvents() {}
func (*fakeSurface) ShouldClose() bool { return false }
func (*fakeSurface) RequestClose() {}
func (*fakeSurface) SwapBuffers() {}
func (*fakeSurface) FramebufferSize() (int, int) { return 800, 600 }
func (*fakeSurface) OnResize(func(width, height int)) {}
func (s *fakeSurface) Destroy() { s.destroyed++ }

var errSetup = errors.New("setup failed")

func setup(s platform.Surface, fail bool) error {
	h := platform.NewWindowHandle(s)
	defer h.Close()
	if fail {
		return errSetup
	}
	h.Close()
	return nil
}

func TestCloseOnce(t *testing.T) {
	c := qt.New(t)

	s := &fakeSurface{}
	c.Assert(setup(s, true), qt.Equals, errSetup)
	c.Assert(s.destroyed, qt.Equals, 1)

	s = &fakeSurface{}
	c.Assert(setup(s, false), qt.IsNil)
	c.Assert(s.destroyed, qt.Equals, 1)
}

func TestMove(t *testing.T) {
	c := qt.New(t)

	s := &fakeSurface{}
	h := platform.NewWindowHandle(s)
	c.Assert(h.Live(), qt.IsTrue)

	moved := h.Move()
	c.Assert(h.Live(), qt.IsFalse)
	c.Assert(h.Surface(), qt.IsNil)
	c.Assert(moved.Surface(), qt.Equals, platform.Surface(s))

	h.Close()
	c.Assert(s.destroyed, qt.Equals, 0)
	moved.Close()
	moved.Close()
	c.Assert(s.destroyed, qt.Equals, 1)
	c.Assert(moved.Surface(), qt.IsNil)
}

func TestZeroHandle(t *testing.T) {
	c := qt.New(t)

	var h platform.WindowHandle
	c.Assert(h.Live(), qt.IsFalse)
	h.Close()

	var nilHandle *platform.WindowHandle
	nilHandle.Close()
	c.Assert(nilHandle.Surface(), qt.IsNil)
}

func TestReadAll(t *testing.T) {
	c := qt.New(t)
	dir := c.TempDir()

	path := filepath.Join(dir, "triangle.vert")
	c.Assert(ioutil.WriteFile(path, []byte("void main() {}\n"), 0644), qt.IsNil)
	text, err := platform.ReadAll(path)
	c.Assert(err, qt.IsNil)
	c.Assert(text, qt.Equals, "void main() {}\n")

	empty := filepath.Join(dir, "empty.frag")
	c.Assert(ioutil.WriteFile(empty, nil, 0644), qt.IsNil)
	text, err = platform.ReadAll(empty)
	c.Assert(err, qt.IsNil)
	c.Assert(text, qt.Equals, "")

	_, err = platform.ReadAll(filepath.Join(dir, "missing.vert"))
	c.Assert(os.IsNotExist(err), qt.IsTrue)
}

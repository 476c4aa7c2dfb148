// Copyright (c) 2019 devblok
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package main

import (
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"

	qt "github.com/frankban/quicktest"

	"github.com/devblok/learngl/src/utility/kar"
)

func TestExtractPath(t *testing.T) {
	c := qt.New(t)
	dst := filepath.Join(c.TempDir(), "out")

	path, err := extractPath(dst, "shaders/quad.vert")
	c.Assert(err, qt.IsNil)
	c.Assert(path, qt.Equals, filepath.Join(dst, "shaders", "quad.vert"))

	for _, name := range []string{"../escaped.txt", "a/../../escaped.txt", "/etc/passwd", ".."} {
		_, err := extractPath(dst, name)
		c.Assert(err, qt.ErrorMatches, "refusing to extract .*", qt.Commentf("%q", name))
	}
}

func TestCompressExtract(t *testing.T) {
	c := qt.New(t)
	dir := c.TempDir()

	src := filepath.Join(dir, "src")
	c.Assert(os.MkdirAll(filepath.Join(src, "shaders"), 0755), qt.IsNil)
	c.Assert(ioutil.WriteFile(filepath.Join(src, "shaders", "a.vert"), []byte("void main() {}\n"), 0644), qt.IsNil)
	c.Assert(ioutil.WriteFile(filepath.Join(src, "b.txt"), []byte("b"), 0644), qt.IsNil)

	archive := filepath.Join(dir, "out.kar")
	c.Assert(compressFiles(src, archive), qt.IsNil)
	c.Assert(compressFiles(src, archive), qt.ErrorMatches, "destination file exists.*")

	out := filepath.Join(dir, "out")
	c.Assert(extractFiles(archive, out), qt.IsNil)
	data, err := ioutil.ReadFile(filepath.Join(out, "shaders", "a.vert"))
	c.Assert(err, qt.IsNil)
	c.Assert(string(data), qt.Equals, "void main() {}\n")
	data, err = ioutil.ReadFile(filepath.Join(out, "b.txt"))
	c.Assert(err, qt.IsNil)
	c.Assert(string(data), qt.Equals, "b")
}

func TestAddFileRejectsEscapingName(t *testing.T) {
	c := qt.New(t)

	builder, err := kar.NewBuilder(kar.Header{})
	c.Assert(err, qt.IsNil)
	defer builder.Close()
	c.Assert(addFile(builder, "../escaped.txt", os.Args[0]), qt.ErrorMatches, `.*file name must be .*`)
}

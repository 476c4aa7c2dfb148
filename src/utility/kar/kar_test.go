// Copyright (c) 2019 devblok
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package kar_test

import (
	"bytes"
	"io/ioutil"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	qt "github.com/frankban/quicktest"
	"github.com/pkg/errors"
	"golang.org/x/exp/mmap"

	"github.com/devblok/learngl/src/utility/kar"
)

var (
	testString1 = "idunvovkjnreovmegihjbrqlkmfrjnb"
	testString2 = "idunvovkjnreovmsdvwrvnervnreegihjbrqlkmfrjnb"
)

func build(c *qt.C, files map[string]string, order ...string) []byte {
	builder, err := kar.NewBuilder(kar.Header{
		Author:      "devblok",
		DateCreated: time.Now().Unix(),
		Version:     1,
	})
	c.Assert(err, qt.IsNil)
	defer builder.Close()

	for _, name := range order {
		c.Assert(builder.Add(name, strings.NewReader(files[name])), qt.IsNil)
	}

	var buf bytes.Buffer
	_, err = builder.WriteTo(&buf)
	c.Assert(err, qt.IsNil)
	return buf.Bytes()
}

func testArchive(c *qt.C) []byte {
	return build(c, map[string]string{
		"test/test1.txt": testString1,
		"test/test2.txt": testString2,
		"empty":          "",
	}, "test/test1.txt", "test/test2.txt", "empty")
}

func TestCreateAndRead(t *testing.T) {
	c := qt.New(t)

	ar, err := kar.Open(bytes.NewReader(testArchive(c)))
	c.Assert(err, qt.IsNil)
	c.Assert(ar.Header().Author, qt.Equals, "devblok")
	c.Assert(ar.Files(), qt.DeepEquals, []string{"test/test1.txt", "test/test2.txt", "empty"})

	f, err := ar.Open("test/test2.txt")
	c.Assert(err, qt.IsNil)
	c.Assert(f.Name(), qt.Equals, "test/test2.txt")
	c.Assert(f.Size(), qt.Equals, int64(len(testString2)))

	result, err := ioutil.ReadAll(f)
	c.Assert(err, qt.IsNil)
	c.Assert(string(result), qt.Equals, testString2)
}

func TestCreateAndReadAll(t *testing.T) {
	c := qt.New(t)

	ar, err := kar.Open(bytes.NewReader(testArchive(c)))
	c.Assert(err, qt.IsNil)

	data, err := ar.ReadAll("test/test1.txt")
	c.Assert(err, qt.IsNil)
	c.Assert(string(data), qt.Equals, testString1)

	data, err = ar.ReadAll("empty")
	c.Assert(err, qt.IsNil)
	c.Assert(data, qt.HasLen, 0)

	_, err = ar.ReadAll("missing")
	c.Assert(errors.Cause(err), qt.Equals, kar.ErrNotFound)
}

func TestOpenmmap(t *testing.T) {
	c := qt.New(t)

	path := filepath.Join(c.TempDir(), "opentest.kar")
	c.Assert(ioutil.WriteFile(path, testArchive(c), 0644), qt.IsNil)

	r, err := mmap.Open(path)
	c.Assert(err, qt.IsNil)
	defer r.Close()

	ar, err := kar.Open(r)
	c.Assert(err, qt.IsNil)

	var wg sync.WaitGroup
	results := make([]string, 2)
	for idx, name := range []string{"test/test1.txt", "test/test2.txt"} {
		wg.Add(1)
		go func(idx int, name string) {
			defer wg.Done()
			data, err := ar.ReadAll(name)
			if err == nil {
				results[idx] = string(data)
			}
		}(idx, name)
	}
	wg.Wait()
	c.Assert(results, qt.DeepEquals, []string{testString1, testString2})
}

func TestOpenFile(t *testing.T) {
	c := qt.New(t)

	path := filepath.Join(c.TempDir(), "opentest.kar")
	c.Assert(ioutil.WriteFile(path, testArchive(c), 0644), qt.IsNil)

	f, err := os.Open(path)
	c.Assert(err, qt.IsNil)
	defer f.Close()

	ar, err := kar.Open(f)
	c.Assert(err, qt.IsNil)
	data, err := ar.ReadAll("test/test2.txt")
	c.Assert(err, qt.IsNil)
	c.Assert(string(data), qt.Equals, testString2)
}

func TestOpenCorrupted(t *testing.T) {
	c := qt.New(t)

	_, err := kar.Open(bytes.NewReader([]byte("TAR\x00aaaaaaaaaaaa")))
	c.Assert(err, qt.Equals, kar.ErrFileFormat)

	_, err = kar.Open(bytes.NewReader([]byte("KA")))
	c.Assert(err, qt.Equals, kar.ErrFileFormat)

	raw := testArchive(c)
	_, err = kar.Open(bytes.NewReader(raw[:kar.PreambleLength+3]))
	c.Assert(err, qt.Equals, kar.ErrFileFormat)
}

// headerOnly is a readerAt that does not report its size.
type headerOnly struct{ data []byte }

func (h headerOnly) ReadAt(p []byte, off int64) (int, error) {
	return bytes.NewReader(h.data).ReadAt(p, off)
}

func TestOpenHugeHeaderLength(t *testing.T) {
	c := qt.New(t)

	raw := []byte(kar.Magic + "\x00\x00\x00\x00\x00\x00\x00\x40")
	_, err := kar.Open(bytes.NewReader(raw))
	c.Assert(err, qt.Equals, kar.ErrFileFormat)
	_, err = kar.Open(headerOnly{raw})
	c.Assert(err, qt.Equals, kar.ErrFileFormat)

	// within the cap but longer than the source
	raw = []byte(kar.Magic + "\x00\x10\x00\x00\x00\x00\x00\x00")
	_, err = kar.Open(bytes.NewReader(raw))
	c.Assert(err, qt.Equals, kar.ErrFileFormat)
	_, err = kar.Open(headerOnly{raw})
	c.Assert(err, qt.Equals, kar.ErrFileFormat)
}

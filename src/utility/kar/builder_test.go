// Copyright (c) 2019 devblok
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package kar

import (
	"bytes"
	"os"
	"strings"
	"testing"
	"time"

	qt "github.com/frankban/quicktest"
)

func TestAddAndWrite(t *testing.T) {
	c := qt.New(t)

	builder, err := NewBuilder(Header{
		Author:      "devblok",
		DateCreated: time.Now().Unix(),
		Version:     1,
	})
	c.Assert(err, qt.IsNil)
	defer builder.Close()

	c.Assert(builder.Add("test", strings.NewReader("idunvovkjnreovmegihjbrqlkmfrjnb")), qt.IsNil)
	c.Assert(builder.Add("test2", strings.NewReader("idunvovkjnreovmsdvwrvnervnreegihjbrqlkmfrjnb")), qt.IsNil)
	c.Assert(builder.files, qt.HasLen, 2)
	c.Assert(builder.files[0].Size, qt.Equals, int64(31))

	var buf bytes.Buffer
	written, err := builder.WriteTo(&buf)
	c.Assert(err, qt.IsNil)
	c.Assert(written, qt.Equals, int64(buf.Len()))
	c.Assert(buf.String()[:MagicLength], qt.Equals, Magic)

	size, err := binaryToint64(buf.Bytes()[MagicLength:])
	c.Assert(err, qt.IsNil)
	var header Header
	c.Assert(gobDecode(&header, buf.Bytes()[PreambleLength:PreambleLength+size]), qt.IsNil)
	c.Assert(header.Author, qt.Equals, "devblok")
	c.Assert(header.Index, qt.HasLen, 2)
	c.Assert(header.Index[0].Offset, qt.Equals, int64(0))
	c.Assert(header.Index[1].Offset, qt.Equals, header.Index[0].CompressedSize)
	c.Assert(int64(buf.Len()), qt.Equals, PreambleLength+size+header.Index[0].CompressedSize+header.Index[1].CompressedSize)
}

func TestAddDuplicate(t *testing.T) {
	c := qt.New(t)

	builder, err := NewBuilder(Header{})
	c.Assert(err, qt.IsNil)
	defer builder.Close()

	c.Assert(builder.Add("a", strings.NewReader("a")), qt.IsNil)
	c.Assert(builder.Add("a", strings.NewReader("b")), qt.ErrorMatches, "a: file already added to archive")
	c.Assert(builder.Len(), qt.Equals, 1)
}

func TestCloseRemovesTemp(t *testing.T) {
	c := qt.New(t)

	builder, err := NewBuilder(Header{})
	c.Assert(err, qt.IsNil)
	c.Assert(builder.Add("a", strings.NewReader("a")), qt.IsNil)
	c.Assert(builder.Close(), qt.IsNil)

	_, err = os.Stat(builder.tempDir)
	c.Assert(os.IsNotExist(err), qt.IsTrue)
}

func TestInt64Binary(t *testing.T) {
	c := qt.New(t)

	for _, num := range []int64{0, 1, 1 << 40, -7} {
		got, err := binaryToint64(int64ToBinary(num))
		c.Assert(err, qt.IsNil)
		c.Assert(got, qt.Equals, num)
	}
	_, err := binaryToint64([]byte{1, 2})
	c.Assert(err, qt.Equals, ErrFileFormat)
}

func TestValidName(t *testing.T) {
	c := qt.New(t)

	for _, name := range []string{"a", "shaders/quad.vert", "a/b/c.txt", "..a"} {
		c.Assert(ValidName(name), qt.IsTrue, qt.Commentf("%q", name))
	}
	for _, name := range []string{
		"", ".", "..", "../escaped.txt", "a/../../b", "/etc/passwd",
		"a//b", "a/./b", "a/", `..\escaped.txt`, "C:evil", "a\x00b",
	} {
		c.Assert(ValidName(name), qt.IsFalse, qt.Commentf("%q", name))
	}
}

func TestAddRejectsEscapingName(t *testing.T) {
	c := qt.New(t)

	builder, err := NewBuilder(Header{})
	c.Assert(err, qt.IsNil)
	defer builder.Close()

	err = builder.Add("../escaped.txt", strings.NewReader("x"))
	c.Assert(err, qt.ErrorMatches, `"../escaped.txt": file name must be .*`)
	c.Assert(builder.Len(), qt.Equals, 0)
}

func TestOpenRejectsEscapingIndex(t *testing.T) {
	c := qt.New(t)

	header, err := gobEncode(Header{Index: []IndexEntry{{Name: "../escaped.txt"}}})
	c.Assert(err, qt.IsNil)
	var raw bytes.Buffer
	raw.WriteString(Magic)
	raw.Write(int64ToBinary(int64(len(header))))
	raw.Write(header)

	_, err = Open(bytes.NewReader(raw.Bytes()))
	c.Assert(err, qt.Equals, ErrFileFormat)
}

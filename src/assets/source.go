// Copyright (c) 2019 devblok
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

// Package assets finds shader sources and images in a directory, in the
// files packed into the binary or in a kar archive.
package assets

import (
	"bytes"
	"io"
	"io/ioutil"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"github.com/gobuffalo/packd"
	"github.com/gobuffalo/packr"
	"github.com/pkg/errors"
	"golang.org/x/exp/mmap"

	"github.com/devblok/learngl/src/utility/kar"
)

// Source resolves slash separated asset names.
type Source interface {

	// Open returns the contents of the named asset.
	Open(name string) (io.ReadCloser, error)

	// List returns the names of all assets, sorted.
	List() ([]string, error)
}

// OpenPath picks a Source for path: a kar archive when it names a .kar
// file, a directory otherwise.
func OpenPath(p string) (Source, error) {
	if strings.EqualFold(filepath.Ext(p), ".kar") {
		return OpenArchive(p)
	}
	info, err := os.Stat(p)
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		return nil, errors.Errorf("%s is neither a directory nor a kar archive", p)
	}
	return DirSource(p), nil
}

// DirSource reads assets from a directory tree.
type DirSource string

// Open implements Source.
func (d DirSource) Open(name string) (io.ReadCloser, error) {
	return os.Open(filepath.Join(string(d), filepath.FromSlash(path.Clean("/" + name))))
}

// List implements Source.
func (d DirSource) List() ([]string, error) {
	var names []string
	err := filepath.Walk(string(d), func(p string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			return nil
		}
		rel, err := filepath.Rel(string(d), p)
		if err != nil {
			return err
		}
		names = append(names, filepath.ToSlash(rel))
		return nil
	})
	sort.Strings(names)
	return names, err
}

// BoxSource reads assets packed into the binary with packr.
type BoxSource struct {
	Box packr.Box
}

// NewBoxSource wraps box.
func NewBoxSource(box packr.Box) *BoxSource {
	return &BoxSource{Box: box}
}

// Open implements Source.
func (b *BoxSource) Open(name string) (io.ReadCloser, error) {
	if !b.Box.Has(name) {
		return nil, &os.PathError{Op: "open", Path: name, Err: os.ErrNotExist}
	}
	data, err := b.Box.Find(name)
	if err != nil {
		return nil, err
	}
	return ioutil.NopCloser(bytes.NewReader(data)), nil
}

// List implements Source.
func (b *BoxSource) List() ([]string, error) {
	var names []string
	err := b.Box.Walk(func(name string, _ packd.File) error {
		names = append(names, filepath.ToSlash(name))
		return nil
	})
	sort.Strings(names)
	return names, err
}

// ArchiveSource reads assets from a memory mapped kar archive.
type ArchiveSource struct {
	mapped  *mmap.ReaderAt
	archive *kar.Archive
}

// OpenArchive maps the archive at p.
func OpenArchive(p string) (*ArchiveSource, error) {
	mapped, err := mmap.Open(p)
	if err != nil {
		return nil, err
	}
	archive, err := kar.Open(mapped)
	if err != nil {
		mapped.Close()
		return nil, errors.Wrap(err, p)
	}
	return &ArchiveSource{mapped: mapped, archive: archive}, nil
}

// Open implements Source.
func (a *ArchiveSource) Open(name string) (io.ReadCloser, error) {
	r, err := a.archive.Open(name)
	if err != nil {
		if errors.Cause(err) == kar.ErrNotFound {
			return nil, &os.PathError{Op: "open", Path: name, Err: os.ErrNotExist}
		}
		return nil, err
	}
	return ioutil.NopCloser(r), nil
}

// List implements Source.
func (a *ArchiveSource) List() ([]string, error) {
	names := a.archive.Files()
	sort.Strings(names)
	return names, nil
}

// Close unmaps the archive.
func (a *ArchiveSource) Close() error {
	return a.mapped.Close()
}

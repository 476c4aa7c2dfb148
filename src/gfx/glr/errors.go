// Copyright (c) 2019 devblok
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package glr

import (
	"errors"
	"fmt"
)

// ErrNoPixelData is reported when a texture is requested from an image
// that decoded to nothing.
var ErrNoPixelData = errors.New("no pixel data")

// InitError is returned when the window, the GL context or the
// function loader cannot be set up.
type InitError struct {
	Stage string
	Err   error
}

func (e *InitError) Error() string {
	return fmt.Sprintf("failed to init %s: %v", e.Stage, e.Err)
}

// Unwrap returns the underlying error.
func (e *InitError) Unwrap() error { return e.Err }

// Cause returns the underlying error for github.com/pkg/errors.
func (e *InitError) Cause() error { return e.Err }

// CompileError carries the compiler log of a shader stage that failed
// to compile.
type CompileError struct {
	Stage Stage
	Log   string
}

func (e *CompileError) Error() string {
	return fmt.Sprintf("failed to compile shader (%s): %s", e.Stage, e.Log)
}

// LinkError carries the linker log of a program that failed to link.
type LinkError struct {
	Log string
}

func (e *LinkError) Error() string {
	return fmt.Sprintf("failed to link shaders: %s", e.Log)
}

// ResourceError is returned when the API refuses to allocate an object
// or an operation needs an object that was already released.
type ResourceError struct {
	Kind   string
	Reason string

	// Op is the failed operation, "create" when empty
	Op string
}

func (e *ResourceError) Error() string {
	op := e.Op
	if op == "" {
		op = "create"
	}
	return fmt.Sprintf("failed to %s %s: %s", op, e.Kind, e.Reason)
}

// AssetError is returned when a shader source or an image cannot be
// loaded.
type AssetError struct {
	Path string
	Err  error
}

func (e *AssetError) Error() string {
	return fmt.Sprintf("failed to load asset %q: %v", e.Path, e.Err)
}

// Unwrap returns the underlying error.
func (e *AssetError) Unwrap() error { return e.Err }

// Cause returns the underlying error for github.com/pkg/errors.
func (e *AssetError) Cause() error { return e.Err }

// ErrorName returns the symbolic name of a GL error code.
func ErrorName(code Enum) string {
	switch code {
	case NO_ERROR:
		return "GL_NO_ERROR"
	case INVALID_ENUM:
		return "GL_INVALID_ENUM"
	case INVALID_VALUE:
		return "GL_INVALID_VALUE"
	case INVALID_OPERATION:
		return "GL_INVALID_OPERATION"
	case OUT_OF_MEMORY:
		return "GL_OUT_OF_MEMORY"
	case INVALID_FRAMEBUFFER_OPERATION:
		return "GL_INVALID_FRAMEBUFFER_OPERATION"
	}
	return fmt.Sprintf("0x%04X", uint32(code))
}

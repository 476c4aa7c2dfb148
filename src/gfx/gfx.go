// Copyright (c) 2019 devblok
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

// Package gfx defines rendering related features that renderers must implement.
package gfx

// Releasable defines any memory-occupying item that can be freed.
type Releasable interface {

	// Release releases memory occupied by the implementing structure.
	// Calling it more than once has no further effect.
	Release()
}

// Bindable describes an object that occupies a binding slot of the
// graphics context while it is in use.
type Bindable interface {

	// Bind makes the object current in its slot.
	Bind()

	// Unbind clears the slot the object binds to.
	Unbind()
}

// Resource describes a GPU resident object owned by exactly one wrapper.
type Resource interface {
	Releasable

	// ID returns the API handle, zero once released.
	ID() uint32
}

// ReleaseAll releases resources in reverse order, the way nested scopes
// unwind.
func ReleaseAll(rs ...Releasable) {
	for idx := len(rs) - 1; idx >= 0; idx-- {
		if rs[idx] != nil {
			rs[idx].Release()
		}
	}
}

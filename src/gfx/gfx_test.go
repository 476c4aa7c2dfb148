// Copyright (c) 2019 devblok
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package gfx_test

import (
	"testing"

	qt "github.com/frankban/quicktest"

	"github.com/devblok/learngl/src/gfx"
)

type resource struct {
	name  string
	order *[]string
}

func (r *resource) Release() { *r.order = append(*r.order, r.name) }

func TestReleaseAllReverse(t *testing.T) {
	c := qt.New(t)

	var order []string
	gfx.ReleaseAll(
		&resource{"vao", &order},
		nil,
		&resource{"vbo", &order},
		&resource{"program", &order},
	)
	c.Assert(order, qt.DeepEquals, []string{"program", "vbo", "vao"})
}

// Copyright (c) 2019 devblok
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package core_test

import (
	"testing"
	"time"

	qt "github.com/frankban/quicktest"

	"github.com/devblok/learngl/src/core"
)

func TestTimeTicks(t *testing.T) {
	c := qt.New(t)

	ts := core.NewTime(core.TimeConfiguration{FramesPerSecond: 1000})
	defer ts.Stop()
	c.Assert(ts.Fps(), qt.Equals, 1000)

	select {
	case <-ts.FpsTicker().C:
	case <-time.After(time.Second):
		c.Fatal("ticker did not fire")
	}
	c.Assert(ts.Elapsed() > 0, qt.IsTrue)
}

func TestTimeUncapped(t *testing.T) {
	c := qt.New(t)

	ts := core.NewTime(core.TimeConfiguration{})
	defer ts.Stop()

	for idx := 0; idx < 3; idx++ {
		select {
		case <-ts.FpsTicker().C:
		case <-time.After(time.Second):
			c.Fatal("ticker did not fire")
		}
	}
}

func TestFrameInterval(t *testing.T) {
	c := qt.New(t)

	c.Assert(core.FrameInterval(60), qt.Equals, time.Second/60)
	c.Assert(core.FrameInterval(1), qt.Equals, time.Second)
	c.Assert(core.FrameInterval(0), qt.Equals, time.Nanosecond)
	c.Assert(core.FrameInterval(-5), qt.Equals, time.Nanosecond)
}

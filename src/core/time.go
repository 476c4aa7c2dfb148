// Copyright (c) 2019 devblok
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package core

import (
	"time"
)

// FrameInterval is the time between two frames at fps frames per
// second. Zero or less means uncapped.
func FrameInterval(fps int) time.Duration {
	if fps <= 0 {
		return time.Nanosecond
	}
	return time.Second / time.Duration(fps)
}

// Time paces the render loop and measures how long it has run
type Time struct {
	fps    int
	frames *time.Ticker
	start  time.Time
}

// NewTime starts the frame ticker described by cfg
func NewTime(cfg TimeConfiguration) *Time {
	return &Time{
		fps:    cfg.FramesPerSecond,
		frames: time.NewTicker(FrameInterval(cfg.FramesPerSecond)),
		start:  time.Now(),
	}
}

// Fps is the configured frame cap, 0 when uncapped
func (t *Time) Fps() int {
	return t.fps
}

// FpsTicker fires once per frame
func (t *Time) FpsTicker() *time.Ticker {
	return t.frames
}

// Elapsed returns the time passed since NewTime
func (t *Time) Elapsed() time.Duration {
	return time.Since(t.start)
}

// Stop releases the ticker
func (t *Time) Stop() {
	t.frames.Stop()
}

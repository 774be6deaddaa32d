// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package imageload

import (
	"fmt"
	"image"
)

// State is the load state of one frame's screenshot.
type State uint8

// Load states.
const (
	// Idle means no source is set.
	Idle State = iota

	// Loading means a decode for the current source is outstanding.
	Loading

	// Loaded means the current source decoded successfully.
	Loaded

	// Failed means the current source could not be decoded. Terminal
	// until the source changes.
	Failed
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Loading:
		return "loading"
	case Loaded:
		return "loaded"
	case Failed:
		return "failed"
	default:
		return fmt.Sprintf("State(%d)", s)
	}
}

// Status is a snapshot of a slot.
type Status struct {
	State  State
	Source string

	// Image is set only in the Loaded state.
	Image image.Image

	// Err is the failure message, set only in the Failed state.
	Err string
}

// Ready reports whether a current image is available.
func (s Status) Ready() bool { return s.State == Loaded && s.Image != nil }

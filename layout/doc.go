// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package layout computes where each frame sits on the strip.
//
// The same Compute call drives the live stage and the exporter, so slice
// boundaries in exported images match the guides shown while editing.
//
//	l, err := layout.Compute([]string{"a", "b", "c"}, layout.Hero, 1320, 2868)
//	// l.Slices[1] is the wide center slice
package layout

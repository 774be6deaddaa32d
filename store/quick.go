// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package store

import (
	"fmt"
	"sort"
)

// quickLayouts are named transform presets. Each overwrites only the
// fields it defines.
var quickLayouts = map[string]func(*Transform){
	"front": func(t *Transform) {
		t.Rotation, t.TiltX, t.TiltY = 0, 0, 0
		t.FlipX, t.FlipY = false, false
		t.OffsetX, t.OffsetY = 0, 0
	},
	"flat": func(t *Transform) {
		t.Rotation, t.TiltX, t.TiltY = 0, 50, 0
		t.FlipX, t.FlipY = false, false
		t.OffsetX = 0
	},
	"isometric-left": func(t *Transform) {
		t.Rotation, t.TiltX, t.TiltY = 30, 10, 10
		t.FlipX, t.FlipY = false, false
	},
	"isometric-right": func(t *Transform) {
		t.Rotation, t.TiltX, t.TiltY = -30, 10, -10
		t.FlipX, t.FlipY = false, false
	},
	"side": func(t *Transform) {
		t.Rotation, t.TiltX, t.TiltY = 0, 0, 45
		t.FlipX, t.FlipY = false, false
	},
	"floating": func(t *Transform) {
		t.Rotation, t.TiltX, t.TiltY = 15, -10, -5
		t.OffsetY = -40
		t.Scale = 1.1
	},
}

// QuickLayoutNames returns the names of the transform presets, sorted.
func QuickLayoutNames() []string {
	names := make([]string, 0, len(quickLayouts))
	for n := range quickLayouts {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// ApplyQuickLayout applies the named transform preset to t.
func ApplyQuickLayout(name string, t *Transform) error {
	fn, ok := quickLayouts[name]
	if !ok {
		return fmt.Errorf("store: unknown quick layout %q", name)
	}
	fn(t)
	return nil
}

// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package stage

import "strings"

// Tag marks a group of scene elements whose visibility can be toggled.
// Tags are bit flags and can be combined.
type Tag uint8

const (
	// TagGuides marks the dashed cut lines between slices.
	TagGuides Tag = 1 << iota

	// TagSelection marks the outline around the active frame.
	TagSelection
)

// EditorOnly lists the tags that must never appear in exported output.
func EditorOnly() []Tag {
	return []Tag{TagGuides, TagSelection}
}

// Has reports whether every flag of o is set in t.
func (t Tag) Has(o Tag) bool { return t&o == o }

func (t Tag) String() string {
	if t == 0 {
		return "none"
	}
	var parts []string
	if t.Has(TagGuides) {
		parts = append(parts, "guides")
	}
	if t.Has(TagSelection) {
		parts = append(parts, "selection")
	}
	if rest := t &^ (TagGuides | TagSelection); rest != 0 {
		parts = append(parts, "unknown")
	}
	return strings.Join(parts, "|")
}

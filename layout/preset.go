// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package layout

import (
	"fmt"
	"strings"

	"github.com/gogpu/mockup"
)

// Preset selects how frames are arranged and sized along the strip.
// It is global to the strip, not per frame.
type Preset uint8

// Cut presets.
const (
	// Even gives every frame an equal, contiguous slice.
	Even Preset = iota

	// Overlap places frames closer than their width so neighbours overlap.
	Overlap

	// Hero widens the center frame and narrows the others.
	Hero

	// Diagonal is reserved. Its geometry is undefined, so Compute returns
	// the Even layout for it and it is never selectable.
	Diagonal
)

// OverlapFraction is the share of the base width by which adjacent
// frames overlap under the Overlap preset.
const OverlapFraction = 0.12

// Hero preset width factors.
const (
	HeroCenterFactor = 1.4
	HeroSideFactor   = 0.85
)

var presetNames = [...]string{
	Even:     "even",
	Overlap:  "overlap",
	Hero:     "hero",
	Diagonal: "diagonal",
}

// String returns the lower-case preset name.
func (p Preset) String() string {
	if int(p) < len(presetNames) {
		return presetNames[p]
	}
	return fmt.Sprintf("Preset(%d)", p)
}

// Valid reports whether p is a known preset value.
func (p Preset) Valid() bool {
	return int(p) < len(presetNames)
}

// Selectable reports whether p may be offered to users.
// Diagonal is known but unimplemented.
func (p Preset) Selectable() bool {
	return p.Valid() && p != Diagonal
}

// MarshalText implements encoding.TextMarshaler.
func (p Preset) MarshalText() ([]byte, error) {
	if !p.Valid() {
		return nil, fmt.Errorf("%w: preset %d", mockup.ErrInvalidLayoutInput, p)
	}
	return []byte(p.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (p *Preset) UnmarshalText(b []byte) error {
	v, err := ParsePreset(string(b))
	if err != nil {
		return err
	}
	*p = v
	return nil
}

// ParsePreset parses a preset name, ignoring case and surrounding space.
func ParsePreset(s string) (Preset, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for i, n := range presetNames {
		if n == name {
			return Preset(i), nil
		}
	}
	return Even, fmt.Errorf("%w: unknown preset %q", mockup.ErrInvalidLayoutInput, s)
}

// Presets returns the selectable presets in display order.
func Presets() []Preset {
	return []Preset{Even, Overlap, Hero}
}

// Names returns the names of all known presets, including reserved ones.
func Names() []string {
	return append([]string(nil), presetNames[:]...)
}

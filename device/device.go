// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package device holds the static metadata of the supported device
// silhouettes: frame size, screen mask and named export sizes.
package device

import (
	"errors"
	"fmt"
	"maps"
	"sort"
	"strings"

	"github.com/agnivade/levenshtein"

	"github.com/gogpu/mockup/fit"
)

// ErrUnknownType is returned for device names that are not in the table.
var ErrUnknownType = errors.New("device: unknown type")

// Type identifies a device silhouette.
type Type string

// Supported device types.
const (
	IPhone  Type = "iphone"
	Android Type = "android"
	Tablet  Type = "tablet"
	Desktop Type = "desktop"
)

// Default is the device used for new frames.
const Default = IPhone

// ScreenMask is the region of a device silhouette where screenshot content
// is visible, in frame coordinates.
type ScreenMask struct {
	X, Y          float64
	Width, Height float64
	CornerRadius  float64
}

// Rect returns the mask rectangle without its corner radius.
func (m ScreenMask) Rect() fit.Rect {
	return fit.Rect{X: m.X, Y: m.Y, Width: m.Width, Height: m.Height}
}

// Size is a width x height pair in pixels.
type Size struct {
	Width, Height int
}

func (s Size) String() string { return fmt.Sprintf("%dx%d", s.Width, s.Height) }

// ExportPreset names a store-specific export size.
type ExportPreset string

// Export presets.
const (
	AppStore  ExportPreset = "appstore"
	PlayStore ExportPreset = "playstore"
	Social    ExportPreset = "social"
)

// Meta describes one device silhouette.
type Meta struct {
	Name          string
	Model         string
	Type          Type
	FrameWidth    float64
	FrameHeight   float64
	Screen        ScreenMask
	ExportPresets map[ExportPreset]Size
}

// ExportSize returns the named export size.
func (m Meta) ExportSize(p ExportPreset) (Size, bool) {
	s, ok := m.ExportPresets[p]
	return s, ok
}

var table = map[Type]Meta{
	IPhone: {
		Name:        "iPhone",
		Model:       "16 Pro Max",
		Type:        IPhone,
		FrameWidth:  1136,
		FrameHeight: 2468,
		Screen:      ScreenMask{X: 24, Y: 24, Width: 1088, Height: 2420, CornerRadius: 110},
		ExportPresets: map[ExportPreset]Size{
			AppStore:  {1320, 2868},
			PlayStore: {1080, 1920},
			Social:    {1080, 1350},
		},
	},
	Android: {
		Name:        "Android",
		Model:       "S25 Ultra",
		Type:        Android,
		FrameWidth:  1080,
		FrameHeight: 2320,
		Screen:      ScreenMask{X: 20, Y: 20, Width: 1040, Height: 2280, CornerRadius: 60},
		ExportPresets: map[ExportPreset]Size{
			AppStore:  {1320, 2868},
			PlayStore: {1080, 1920},
			Social:    {1080, 1350},
		},
	},
	Tablet: {
		Name:        "Tablet",
		Model:       "iPad Pro",
		Type:        Tablet,
		FrameWidth:  1640,
		FrameHeight: 2260,
		Screen:      ScreenMask{X: 40, Y: 40, Width: 1560, Height: 2180, CornerRadius: 36},
		ExportPresets: map[ExportPreset]Size{
			AppStore:  {2064, 2752},
			PlayStore: {1600, 2560},
			Social:    {1080, 1350},
		},
	},
	Desktop: {
		Name:        "Desktop",
		Model:       "MacBook",
		Type:        Desktop,
		FrameWidth:  1800,
		FrameHeight: 1160,
		Screen:      ScreenMask{X: 30, Y: 30, Width: 1740, Height: 1090, CornerRadius: 8},
		ExportPresets: map[ExportPreset]Size{
			AppStore:  {2880, 1800},
			PlayStore: {1920, 1080},
			Social:    {1200, 675},
		},
	},
}

// Lookup returns the metadata for t.
func Lookup(t Type) (Meta, error) {
	m, ok := table[t]
	if !ok {
		return Meta{}, unknown(string(t))
	}
	m.ExportPresets = maps.Clone(m.ExportPresets)
	return m, nil
}

// MustLookup is like Lookup but panics for unknown types.
func MustLookup(t Type) Meta {
	m, err := Lookup(t)
	if err != nil {
		panic(err)
	}
	return m
}

// Types returns all device types in display order.
func Types() []Type {
	return []Type{IPhone, Android, Tablet, Desktop}
}

// ParseType parses a device name. Unknown names produce an error that
// suggests the closest known name.
func ParseType(s string) (Type, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	if _, ok := table[Type(name)]; ok {
		return Type(name), nil
	}
	return "", unknown(s)
}

func unknown(s string) error {
	names := make([]string, 0, len(table))
	for t := range table {
		names = append(names, string(t))
	}
	sort.Strings(names)
	if hint := Suggest(s, names); hint != "" {
		return fmt.Errorf("%w %q (did you mean %q?)", ErrUnknownType, s, hint)
	}
	return fmt.Errorf("%w %q (known: %s)", ErrUnknownType, s, strings.Join(names, ", "))
}

// Suggest returns the candidate closest to s by edit distance, or "" when
// nothing is close enough to be a plausible typo.
func Suggest(s string, candidates []string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	best, bestDist := "", -1
	for _, c := range candidates {
		d := levenshtein.ComputeDistance(s, c)
		if bestDist < 0 || d < bestDist {
			best, bestDist = c, d
		}
	}
	if bestDist < 0 || bestDist > max(2, len(s)/3) {
		return ""
	}
	return best
}

// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package store

import "github.com/gogpu/mockup/device"

// TextKind distinguishes the two overlays of a frame.
type TextKind string

// Overlay kinds.
const (
	Headline TextKind = "headline"
	Subtitle TextKind = "subtitle"
)

// TextOverlay is a line of marketing text drawn above the device.
// X and Y are fractions of the slice width and height; X is the center.
type TextOverlay struct {
	Kind       TextKind
	Text       string
	X, Y       float64
	FontSize   float64
	FontWeight int
	Fill       string // hex color
}

// Bold reports whether the overlay uses a bold face.
func (t TextOverlay) Bold() bool { return t.FontWeight >= 700 }

// DefaultHeadline returns the headline overlay of a new frame.
func DefaultHeadline() TextOverlay {
	return TextOverlay{Kind: Headline, X: 0.5, Y: 0.07, FontSize: 64, FontWeight: 800, Fill: "#ffffff"}
}

// DefaultSubtitle returns the subtitle overlay of a new frame.
func DefaultSubtitle() TextOverlay {
	return TextOverlay{Kind: Subtitle, X: 0.5, Y: 0.14, FontSize: 32, FontWeight: 500, Fill: "#e4e4e7"}
}

// Transform positions the device silhouette inside its slice.
// Angles are in degrees.
type Transform struct {
	Scale    float64
	Rotation float64

	// TiltX and TiltY tilt the device about its horizontal and vertical
	// axes. They are rendered as foreshortening.
	TiltX, TiltY float64

	SkewX, SkewY float64
	FlipX, FlipY bool

	// OffsetX and OffsetY move the device in strip pixels.
	OffsetX, OffsetY float64
}

// IdentityTransform returns the front-facing, unscaled transform.
func IdentityTransform() Transform {
	return Transform{Scale: 1}
}

// IsIdentity reports whether t leaves the device untouched.
func (t Transform) IsIdentity() bool {
	return t == IdentityTransform()
}

// Frame is one device-plus-content unit of the strip.
type Frame struct {
	ID     string
	Device device.Type

	// Screenshot is the image source; "" means no screenshot.
	Screenshot string

	Headline TextOverlay
	Subtitle TextOverlay

	Transform  Transform
	ShowDevice bool
}

// Overlays returns the headline and subtitle in drawing order.
func (f Frame) Overlays() [2]TextOverlay {
	return [2]TextOverlay{f.Headline, f.Subtitle}
}

// BackgroundKind selects the background fill.
type BackgroundKind string

// Background kinds.
const (
	Solid    BackgroundKind = "solid"
	Gradient BackgroundKind = "gradient"
)

// Background is the fill behind all frames.
type Background struct {
	Kind   BackgroundKind
	Color1 string
	Color2 string
	Angle  float64 // degrees, gradient only
}

// DefaultBackground returns the background of a new session.
func DefaultBackground() Background {
	return Background{Kind: Gradient, Color1: "#1a1a2e", Color2: "#16213e", Angle: 135}
}

// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package device

import "strings"

// Padding around the device inside an automatically sized canvas. The top
// band is reserved for the marketing text overlays.
const (
	PaddingX      = 92
	PaddingTop    = 320
	PaddingBottom = 80

	// DesktopExtraWidth widens desktop canvases for the keyboard deck.
	DesktopExtraWidth = 80
)

// AutoCanvasSize returns the canvas size derived from the device frame:
// the frame plus horizontal padding and the text band above it.
// The iPhone result matches the App Store export size.
func AutoCanvasSize(m Meta) (width, height float64) {
	width = m.FrameWidth + 2*PaddingX
	if m.Type == Desktop {
		width += DesktopExtraWidth
	}
	height = m.FrameHeight + PaddingTop + PaddingBottom
	return width, height
}

// CanvasPreset is a named explicit canvas size.
type CanvasPreset struct {
	Label string
	Size
}

// CanvasPresets returns the named canvas sizes offered besides "auto".
func CanvasPresets() []CanvasPreset {
	return []CanvasPreset{
		{"App Store", Size{1320, 2868}},
		{"Play Store", Size{1080, 1920}},
		{"IG Post", Size{1080, 1350}},
		{"IG Story/Reels", Size{1080, 1920}},
		{"TikTok", Size{1080, 1920}},
		{"Facebook Post", Size{1200, 630}},
		{"Twitter/X", Size{1200, 675}},
		{"IG Carousel", Size{1080, 1080}},
	}
}

// FindCanvasPreset looks a canvas preset up by label, ignoring case.
func FindCanvasPreset(label string) (CanvasPreset, bool) {
	for _, p := range CanvasPresets() {
		if strings.EqualFold(p.Label, label) {
			return p, true
		}
	}
	return CanvasPreset{}, false
}

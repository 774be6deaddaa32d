// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package fit places a screenshot onto a device screen mask.
package fit

import (
	"fmt"
	"math"

	"github.com/gogpu/mockup"
)

// Rect is an axis-aligned rectangle in frame coordinates.
type Rect struct {
	X, Y          float64
	Width, Height float64
}

// Right returns the x coordinate of the right edge.
func (r Rect) Right() float64 { return r.X + r.Width }

// Bottom returns the y coordinate of the bottom edge.
func (r Rect) Bottom() float64 { return r.Y + r.Height }

// Result is the placement of an image that fully covers a mask.
type Result struct {
	X, Y          float64
	Width, Height float64

	// Scale is the factor applied to the image's intrinsic size.
	Scale float64
}

// Rect returns the placement rectangle without the scale.
func (r Result) Rect() Rect {
	return Rect{X: r.X, Y: r.Y, Width: r.Width, Height: r.Height}
}

// Covers reports whether the placement covers mask on both axes.
// eps absorbs floating point error from the division in Cover.
func (r Result) Covers(mask Rect, eps float64) bool {
	return r.X <= mask.X+eps &&
		r.Y <= mask.Y+eps &&
		r.Right() >= mask.Right()-eps &&
		r.Bottom() >= mask.Bottom()-eps
}

// Right returns the x coordinate of the right edge.
func (r Result) Right() float64 { return r.X + r.Width }

// Bottom returns the y coordinate of the bottom edge.
func (r Result) Bottom() float64 { return r.Y + r.Height }

// Cover scales an image of the given intrinsic size so it fills mask
// completely while preserving its aspect ratio.
//
// An image relatively wider than the mask is matched to the mask height and
// centered horizontally; otherwise it is matched to the mask width and
// centered vertically. The overflow on the centered axis is cropped by the
// mask, so the offset on that axis may be negative.
//
// Non-positive or non-finite sizes are contract violations reported as
// errors wrapping [mockup.ErrInvalidLayoutInput].
func Cover(imgWidth, imgHeight float64, mask Rect) (Result, error) {
	if !positive(imgWidth) || !positive(imgHeight) {
		return Result{}, fmt.Errorf("%w: image size %vx%v", mockup.ErrInvalidLayoutInput, imgWidth, imgHeight)
	}
	if !positive(mask.Width) || !positive(mask.Height) || !finite(mask.X) || !finite(mask.Y) {
		return Result{}, fmt.Errorf("%w: mask %+v", mockup.ErrInvalidLayoutInput, mask)
	}

	var r Result
	if imgWidth/imgHeight > mask.Width/mask.Height {
		r.Height = mask.Height
		r.Width = imgWidth * (mask.Height / imgHeight)
		r.X = mask.X - (r.Width-mask.Width)/2
		r.Y = mask.Y
	} else {
		r.Width = mask.Width
		r.Height = imgHeight * (mask.Width / imgWidth)
		r.X = mask.X
		r.Y = mask.Y - (r.Height-mask.Height)/2
	}
	r.Scale = r.Width / imgWidth
	return r, nil
}

func positive(v float64) bool { return v > 0 && !math.IsInf(v, 1) }

func finite(v float64) bool { return !math.IsNaN(v) && !math.IsInf(v, 0) }

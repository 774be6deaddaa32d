// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package stage

import (
	"context"
	"image"
	"math"
)

// Renderer draws a scene to pixels.
type Renderer interface {
	// Render draws opts.Region of the strip. The result has bounds
	// (0,0)-(round(dx*Scale), round(dy*Scale)).
	Render(ctx context.Context, sc *Scene, opts RenderOptions) (*image.RGBA, error)
}

// RenderOptions selects what a Renderer draws.
type RenderOptions struct {
	// Region is the strip rectangle to draw.
	Region image.Rectangle

	// Scale is output pixels per strip pixel.
	Scale float64

	// Visible holds the tags whose elements are drawn.
	Visible Tag
}

// OutputSize returns the pixel size of a render with these options.
func (o RenderOptions) OutputSize() (width, height int) {
	width = int(math.Max(1, math.Floor(float64(o.Region.Dx())*o.Scale+0.5)))
	height = int(math.Max(1, math.Floor(float64(o.Region.Dy())*o.Scale+0.5)))
	return width, height
}

// view maps strip coordinates to output pixels.
type view struct {
	ox, oy float64
	s      float64
}

func newView(o RenderOptions) view {
	return view{ox: float64(o.Region.Min.X), oy: float64(o.Region.Min.Y), s: o.Scale}
}

func (v view) pt(x, y float64) (float64, float64) {
	return (x - v.ox) * v.s, (y - v.oy) * v.s
}

func (v view) len(l float64) float64 { return l * v.s }

// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package layout

import (
	"fmt"
	"image"
	"math"

	"github.com/gogpu/mockup"
)

// Slice is one frame's region of the strip, in logical strip pixels.
type Slice struct {
	ID     string
	X      float64
	Y      float64
	Width  float64
	Height float64
}

// Rect returns the slice snapped to integer pixels.
// Export crops exactly this rectangle from the strip raster.
func (s Slice) Rect() image.Rectangle {
	x, y := Round(s.X), Round(s.Y)
	return image.Rect(int(x), int(y), int(x+Round(s.Width)), int(y+Round(s.Height)))
}

// Right returns the x coordinate of the slice's right edge.
func (s Slice) Right() float64 { return s.X + s.Width }

// Layout is the computed geometry of a strip. It is recomputed on every
// change and never written back to the frame store.
type Layout struct {
	// TotalWidth is the strip width.
	TotalWidth float64

	// StageHeight is the base height the layout was computed for.
	StageHeight float64

	// Slices are ordered like the frame ids passed to Compute.
	Slices []Slice
}

// Len returns the number of slices.
func (l Layout) Len() int { return len(l.Slices) }

// Slice returns the slice for the given frame id.
func (l Layout) Slice(id string) (Slice, bool) {
	for _, s := range l.Slices {
		if s.ID == id {
			return s, true
		}
	}
	return Slice{}, false
}

// Bounds returns the integer strip rectangle [0,TotalWidth) x [0,StageHeight).
func (l Layout) Bounds() image.Rectangle {
	return image.Rect(0, 0, int(Round(l.TotalWidth)), int(Round(l.StageHeight)))
}

// CutLines returns the sorted, de-duplicated x positions where the strip is
// cut, excluding the outer edges. Overlap layouts yield both edges of every
// overlap band.
func (l Layout) CutLines() []float64 {
	if len(l.Slices) < 2 {
		return nil
	}
	seen := make(map[float64]struct{}, 2*len(l.Slices))
	lines := make([]float64, 0, 2*len(l.Slices))
	add := func(x float64) {
		if x <= 0 || x >= l.TotalWidth {
			return
		}
		if _, ok := seen[x]; ok {
			return
		}
		seen[x] = struct{}{}
		lines = append(lines, x)
	}
	for _, s := range l.Slices {
		add(s.X)
		add(s.Right())
	}
	// Insertion sort: slices are already nearly ordered.
	for i := 1; i < len(lines); i++ {
		for j := i; j > 0 && lines[j] < lines[j-1]; j-- {
			lines[j], lines[j-1] = lines[j-1], lines[j]
		}
	}
	return lines
}

// Compute lays out frames along the strip.
//
// ids are the frame identities in strip order; baseWidth and baseHeight are
// the canvas size of one frame. Compute is pure and never fails for valid
// input. Non-positive or non-finite dimensions, empty ids and duplicate ids
// are contract violations reported as errors wrapping
// [mockup.ErrInvalidLayoutInput].
//
// A single frame always gets one full-width slice at x = 0, whatever the
// preset. Diagonal falls back to Even.
func Compute(ids []string, preset Preset, baseWidth, baseHeight float64) (Layout, error) {
	if err := validate(ids, preset, baseWidth, baseHeight); err != nil {
		return Layout{}, err
	}

	l := Layout{StageHeight: baseHeight}
	count := len(ids)
	if count == 0 {
		l.Slices = []Slice{}
		return l, nil
	}

	height := Round(baseHeight)
	l.Slices = make([]Slice, count)

	if count == 1 {
		w := Round(baseWidth)
		l.Slices[0] = Slice{ID: ids[0], Width: w, Height: height}
		l.TotalWidth = w
		return l, nil
	}

	switch preset {
	case Overlap:
		step := baseWidth - Round(baseWidth*OverlapFraction)
		for i, id := range ids {
			l.Slices[i] = Slice{ID: id, X: float64(i) * step, Width: baseWidth, Height: height}
		}
		l.TotalWidth = l.Slices[count-1].X + baseWidth

	case Hero:
		center := (count - 1) / 2
		centerWidth := Round(baseWidth * HeroCenterFactor)
		sideWidth := Round(baseWidth * HeroSideFactor)
		x := 0.0
		for i, id := range ids {
			w := sideWidth
			if i == center {
				w = centerWidth
			}
			l.Slices[i] = Slice{ID: id, X: x, Width: w, Height: height}
			x += w
		}
		l.TotalWidth = x

	default: // Even, and Diagonal until it has geometry of its own.
		w := Round(baseWidth)
		for i, id := range ids {
			l.Slices[i] = Slice{ID: id, X: float64(i) * w, Width: w, Height: height}
		}
		l.TotalWidth = float64(count) * w
	}

	return l, nil
}

// MustCompute is like Compute but panics on error.
// Use only when the inputs are known to be valid.
func MustCompute(ids []string, preset Preset, baseWidth, baseHeight float64) Layout {
	l, err := Compute(ids, preset, baseWidth, baseHeight)
	if err != nil {
		panic(err)
	}
	return l
}

func validate(ids []string, preset Preset, baseWidth, baseHeight float64) error {
	if !preset.Valid() {
		return fmt.Errorf("%w: preset %d", mockup.ErrInvalidLayoutInput, preset)
	}
	if !positive(baseWidth) || !positive(baseHeight) {
		return fmt.Errorf("%w: base size %vx%v", mockup.ErrInvalidLayoutInput, baseWidth, baseHeight)
	}
	seen := make(map[string]struct{}, len(ids))
	for i, id := range ids {
		if id == "" {
			return fmt.Errorf("%w: empty frame id at index %d", mockup.ErrInvalidLayoutInput, i)
		}
		if _, dup := seen[id]; dup {
			return fmt.Errorf("%w: duplicate frame id %q", mockup.ErrInvalidLayoutInput, id)
		}
		seen[id] = struct{}{}
	}
	return nil
}

func positive(v float64) bool {
	return v > 0 && !math.IsInf(v, 1)
}

// Round rounds half up, so 2.5 -> 3 and -2.5 -> -2. All snapped geometry
// goes through it so the renderer and the exporter agree on every edge.
func Round(v float64) float64 {
	return math.Floor(v + 0.5)
}

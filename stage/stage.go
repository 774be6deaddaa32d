// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package stage

import (
	"context"
	"errors"
	"fmt"
	"image"
	"math"
	"sync"

	"github.com/gogpu/mockup"
)

// Errors returned by Stage.
var (
	// ErrClosed is returned when a closed stage is asked to render.
	ErrClosed = errors.New("stage: closed")

	// ErrInvalidScale is returned for non-positive or non-finite scales.
	ErrInvalidScale = errors.New("stage: invalid scale")

	// ErrInvalidRegion is returned when a render region is empty.
	ErrInvalidRegion = errors.New("stage: invalid region")
)

// Option configures a Stage.
type Option func(*Stage)

// WithRenderer replaces the default GGRenderer.
func WithRenderer(r Renderer) Option {
	return func(s *Stage) { s.renderer = r }
}

// WithScale sets the initial display scale. Invalid values are ignored.
func WithScale(scale float64) Option {
	return func(s *Stage) {
		if validScale(scale) {
			s.scale = scale
		}
	}
}

// Stage is the render surface. It is safe for concurrent use.
//
// Output pixels per strip pixel are display scale times the pixel ratio
// passed to Rasterize. Editor-only elements start visible.
type Stage struct {
	renderer Renderer

	mu      sync.Mutex
	scene   *Scene
	scale   float64
	visible Tag
	closed  bool
}

// New creates a stage with display scale 1 and all tags visible.
func New(opts ...Option) *Stage {
	s := &Stage{scale: 1, visible: TagGuides | TagSelection}
	for _, opt := range opts {
		opt(s)
	}
	if s.renderer == nil {
		s.renderer = NewGGRenderer()
	}
	return s
}

// SetScene replaces the scene. A nil scene makes the stage not ready.
func (s *Stage) SetScene(sc *Scene) {
	s.mu.Lock()
	s.scene = sc
	s.mu.Unlock()
}

// Scene returns the current scene, or nil.
func (s *Stage) Scene() *Scene {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.scene
}

// Ready reports whether the stage can render: it is open and holds a scene
// with at least one frame.
func (s *Stage) Ready() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return !s.closed && s.scene != nil && len(s.scene.Frames) > 0
}

// Scale returns the display scale.
func (s *Stage) Scale() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.scale
}

// SetScale sets the display scale.
func (s *Stage) SetScale(scale float64) error {
	if !validScale(scale) {
		return fmt.Errorf("%w: %v", ErrInvalidScale, scale)
	}
	s.mu.Lock()
	s.scale = scale
	s.mu.Unlock()
	return nil
}

// Visible reports whether every element with tag t is shown.
func (s *Stage) Visible(t Tag) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.visible.Has(t)
}

// SetVisible shows or hides the elements with tag t.
func (s *Stage) SetVisible(t Tag, visible bool) {
	s.mu.Lock()
	if visible {
		s.visible |= t
	} else {
		s.visible &^= t
	}
	s.mu.Unlock()
}

// Rasterize renders region, given in strip pixels, at display scale times
// pixelRatio.
func (s *Stage) Rasterize(ctx context.Context, region image.Rectangle, pixelRatio float64) (*image.RGBA, error) {
	if !validScale(pixelRatio) {
		return nil, fmt.Errorf("%w: pixel ratio %v", ErrInvalidScale, pixelRatio)
	}
	if region.Empty() {
		return nil, fmt.Errorf("%w: %v", ErrInvalidRegion, region)
	}
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil, ErrClosed
	}
	sc, opts := s.scene, RenderOptions{
		Region:  region,
		Scale:   s.scale * pixelRatio,
		Visible: s.visible,
	}
	s.mu.Unlock()
	if sc == nil {
		return nil, mockup.ErrExportNotReady
	}

	mockup.Logger().Debug("stage: rasterize",
		"region", region.String(), "scale", opts.Scale, "visible", opts.Visible.String())
	return s.renderer.Render(ctx, sc, opts)
}

// Display renders the whole strip as shown in the editor.
func (s *Stage) Display(ctx context.Context) (*image.RGBA, error) {
	sc := s.Scene()
	if sc == nil {
		return nil, mockup.ErrExportNotReady
	}
	return s.Rasterize(ctx, sc.Bounds(), 1)
}

// Close releases the scene. Further renders fail with ErrClosed.
func (s *Stage) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil
	}
	s.closed = true
	s.scene = nil
	return nil
}

func validScale(v float64) bool {
	return v > 0 && !math.IsInf(v, 0) && !math.IsNaN(v)
}

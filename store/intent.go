// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package store

import "fmt"

// Intent is a user edit expressed as data. Input handlers translate drags
// and control changes into intents; the store applies them and the next
// layout pass reads the result. Geometry never flows back into the store.
type Intent interface {
	apply(s *Store) error
}

// Apply applies an intent.
func (s *Store) Apply(in Intent) error {
	return in.apply(s)
}

// SetFrameOffset moves a frame's device to an absolute pixel offset.
type SetFrameOffset struct {
	FrameID string
	X, Y    float64
}

func (in SetFrameOffset) apply(s *Store) error {
	return s.Update(in.FrameID, func(f *Frame) {
		f.Transform.OffsetX, f.Transform.OffsetY = in.X, in.Y
	})
}

// SetTextPosition moves an overlay. X and Y are fractions of the slice.
type SetTextPosition struct {
	FrameID string
	Kind    TextKind
	X, Y    float64
}

func (in SetTextPosition) apply(s *Store) error {
	return s.updateOverlay(in.FrameID, in.Kind, func(t *TextOverlay) { t.X, t.Y = in.X, in.Y })
}

// SetText replaces an overlay's text.
type SetText struct {
	FrameID string
	Kind    TextKind
	Text    string
}

func (in SetText) apply(s *Store) error {
	return s.updateOverlay(in.FrameID, in.Kind, func(t *TextOverlay) { t.Text = in.Text })
}

// SetTransform replaces a frame's whole transform.
type SetTransform struct {
	FrameID   string
	Transform Transform
}

func (in SetTransform) apply(s *Store) error {
	return s.Update(in.FrameID, func(f *Frame) { f.Transform = in.Transform })
}

// ResetTransform restores the identity transform.
type ResetTransform struct {
	FrameID string
}

func (in ResetTransform) apply(s *Store) error {
	return s.Update(in.FrameID, func(f *Frame) { f.Transform = IdentityTransform() })
}

// QuickLayoutIntent applies a named transform preset to a frame.
type QuickLayoutIntent struct {
	FrameID string
	Name    string
}

func (in QuickLayoutIntent) apply(s *Store) error {
	var err error
	uerr := s.Update(in.FrameID, func(f *Frame) {
		t := f.Transform
		if err = ApplyQuickLayout(in.Name, &t); err == nil {
			f.Transform = t
		}
	})
	if uerr != nil {
		return uerr
	}
	return err
}

// ToggleDevice shows or hides the device silhouette of a frame.
type ToggleDevice struct {
	FrameID string
}

func (in ToggleDevice) apply(s *Store) error {
	return s.Update(in.FrameID, func(f *Frame) { f.ShowDevice = !f.ShowDevice })
}

func (s *Store) updateOverlay(id string, kind TextKind, fn func(*TextOverlay)) error {
	if kind != Headline && kind != Subtitle {
		return fmt.Errorf("store: unknown text kind %q", kind)
	}
	return s.Update(id, func(f *Frame) {
		if kind == Headline {
			fn(&f.Headline)
		} else {
			fn(&f.Subtitle)
		}
	})
}

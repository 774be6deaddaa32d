// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package store holds the editing session state: the ordered frame list,
// the active frame, the cut preset, the background and the optional
// explicit canvas size.
//
// The store is the only owner of frames. Renderers and the exporter read
// immutable snapshots; every mutation goes through a setter or an Intent.
package store

import (
	"errors"
	"fmt"
	"slices"
	"sync"

	"github.com/google/uuid"

	"github.com/gogpu/mockup/device"
	"github.com/gogpu/mockup/layout"
)

// Errors returned by Store operations.
var (
	// ErrFrameNotFound is returned for ids that are not in the store.
	ErrFrameNotFound = errors.New("store: frame not found")

	// ErrLastFrame is returned when removing the only frame.
	ErrLastFrame = errors.New("store: cannot remove the last frame")

	// ErrPresetUnsupported is returned for presets that are not selectable.
	ErrPresetUnsupported = errors.New("store: preset not supported")

	// ErrInvalidCanvasSize is returned for non-positive explicit sizes.
	ErrInvalidCanvasSize = errors.New("store: invalid canvas size")
)

// Snapshot is an immutable copy of the store state.
type Snapshot struct {
	Frames     []Frame
	ActiveID   string
	Preset     layout.Preset
	Background Background

	// CanvasWidth and CanvasHeight are the explicit canvas size;
	// nil means derive from device metadata.
	CanvasWidth  *int
	CanvasHeight *int
}

// IDs returns the frame ids in strip order.
func (s Snapshot) IDs() []string {
	ids := make([]string, len(s.Frames))
	for i, f := range s.Frames {
		ids[i] = f.ID
	}
	return ids
}

// Frame returns the frame with the given id.
func (s Snapshot) Frame(id string) (Frame, bool) {
	for _, f := range s.Frames {
		if f.ID == id {
			return f, true
		}
	}
	return Frame{}, false
}

// CanvasSize returns the base size of one frame's canvas. An explicit size
// wins; otherwise the size is derived from the first frame's device so that
// changing the active frame never resizes the strip.
func (s Snapshot) CanvasSize() (width, height float64, err error) {
	typ := device.Default
	if len(s.Frames) > 0 {
		typ = s.Frames[0].Device
	}
	meta, err := device.Lookup(typ)
	if err != nil {
		return 0, 0, err
	}
	width, height = device.AutoCanvasSize(meta)
	if s.CanvasWidth != nil {
		width = float64(*s.CanvasWidth)
	}
	if s.CanvasHeight != nil {
		height = float64(*s.CanvasHeight)
	}
	return width, height, nil
}

// Layout computes the strip geometry for this snapshot.
func (s Snapshot) Layout() (layout.Layout, error) {
	w, h, err := s.CanvasSize()
	if err != nil {
		return layout.Layout{}, err
	}
	return layout.Compute(s.IDs(), s.Preset, w, h)
}

// Store is the frame store. It is safe for concurrent use; the host is
// still expected to keep edits out of an export in progress.
type Store struct {
	mu         sync.RWMutex
	frames     []Frame
	activeID   string
	preset     layout.Preset
	background Background
	canvasW    *int
	canvasH    *int
	newID      func() string
}

// Option configures a Store.
type Option func(*Store)

// WithIDGenerator replaces the uuid-based id generator.
func WithIDGenerator(fn func() string) Option {
	return func(s *Store) { s.newID = fn }
}

// New creates a store holding one default frame.
func New(opts ...Option) *Store {
	s := &Store{
		preset:     layout.Even,
		background: DefaultBackground(),
		newID:      uuid.NewString,
	}
	for _, opt := range opts {
		opt(s)
	}
	f := s.newFrame(device.Default)
	s.frames = []Frame{f}
	s.activeID = f.ID
	return s
}

func (s *Store) newFrame(t device.Type) Frame {
	return Frame{
		ID:         s.newID(),
		Device:     t,
		Headline:   DefaultHeadline(),
		Subtitle:   DefaultSubtitle(),
		Transform:  IdentityTransform(),
		ShowDevice: true,
	}
}

// Snapshot returns a deep copy of the current state.
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return Snapshot{
		Frames:       slices.Clone(s.frames),
		ActiveID:     s.activeID,
		Preset:       s.preset,
		Background:   s.background,
		CanvasWidth:  cloneInt(s.canvasW),
		CanvasHeight: cloneInt(s.canvasH),
	}
}

// Len returns the number of frames.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.frames)
}

// Frame returns a copy of the frame with the given id.
func (s *Store) Frame(id string) (Frame, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	i := s.index(id)
	if i < 0 {
		return Frame{}, fmt.Errorf("%w: %q", ErrFrameNotFound, id)
	}
	return s.frames[i], nil
}

// ActiveID returns the id of the active frame.
func (s *Store) ActiveID() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.activeID
}

// SetActive makes id the active frame.
func (s *Store) SetActive(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.index(id) < 0 {
		return fmt.Errorf("%w: %q", ErrFrameNotFound, id)
	}
	s.activeID = id
	return nil
}

// Append adds a frame for device t at the end of the strip, makes it
// active and returns its id.
func (s *Store) Append(t device.Type) (string, error) {
	if _, err := device.Lookup(t); err != nil {
		return "", err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	f := s.newFrame(t)
	s.frames = append(s.frames, f)
	s.activeID = f.ID
	return f.ID, nil
}

// Remove deletes a frame. At least one frame always remains. When the
// active frame is removed its neighbour becomes active.
func (s *Store) Remove(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.index(id)
	if i < 0 {
		return fmt.Errorf("%w: %q", ErrFrameNotFound, id)
	}
	if len(s.frames) == 1 {
		return ErrLastFrame
	}
	s.frames = slices.Delete(s.frames, i, i+1)
	if s.activeID == id {
		s.activeID = s.frames[min(i, len(s.frames)-1)].ID
	}
	return nil
}

// Move moves a frame to position to, shifting the others.
func (s *Store) Move(id string, to int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.index(id)
	if i < 0 {
		return fmt.Errorf("%w: %q", ErrFrameNotFound, id)
	}
	to = max(0, min(to, len(s.frames)-1))
	f := s.frames[i]
	s.frames = slices.Insert(slices.Delete(s.frames, i, i+1), to, f)
	return nil
}

// Preset returns the cut preset.
func (s *Store) Preset() layout.Preset {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.preset
}

// SetPreset sets the cut preset. Presets that are not selectable are rejected.
func (s *Store) SetPreset(p layout.Preset) error {
	if !p.Selectable() {
		return fmt.Errorf("%w: %v", ErrPresetUnsupported, p)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.preset = p
	return nil
}

// SetBackground replaces the background.
func (s *Store) SetBackground(b Background) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.background = b
}

// SetCanvasSize sets an explicit canvas size. Pass nil for both to go
// back to the automatic size; either dimension may be left automatic.
func (s *Store) SetCanvasSize(width, height *int) error {
	if (width != nil && *width <= 0) || (height != nil && *height <= 0) {
		return fmt.Errorf("%w: %s x %s", ErrInvalidCanvasSize, fmtInt(width), fmtInt(height))
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.canvasW, s.canvasH = cloneInt(width), cloneInt(height)
	return nil
}

// ResetCanvasSize restores the automatic canvas size.
func (s *Store) ResetCanvasSize() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.canvasW, s.canvasH = nil, nil
}

// SetScreenshot sets or clears ("") the screenshot source of a frame.
func (s *Store) SetScreenshot(id, src string) error {
	return s.Update(id, func(f *Frame) { f.Screenshot = src })
}

// SetDevice changes the device of a frame.
func (s *Store) SetDevice(id string, t device.Type) error {
	if _, err := device.Lookup(t); err != nil {
		return err
	}
	return s.Update(id, func(f *Frame) { f.Device = t })
}

// Update mutates a frame in place. fn must not retain f. The frame id
// cannot be changed through Update.
func (s *Store) Update(id string, fn func(f *Frame)) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.index(id)
	if i < 0 {
		return fmt.Errorf("%w: %q", ErrFrameNotFound, id)
	}
	fn(&s.frames[i])
	s.frames[i].ID = id
	return nil
}

func (s *Store) index(id string) int {
	return slices.IndexFunc(s.frames, func(f Frame) bool { return f.ID == id })
}

func cloneInt(p *int) *int {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

func fmtInt(p *int) string {
	if p == nil {
		return "auto"
	}
	return fmt.Sprint(*p)
}

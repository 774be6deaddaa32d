// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package imageload

import (
	"context"
	"sync"
)

// Registry owns one Slot per frame.
type Registry struct {
	cfg config

	mu    sync.Mutex
	slots map[string]*Slot
}

// NewRegistry creates an empty registry. Options apply to every slot.
func NewRegistry(opts ...Option) *Registry {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	return &Registry{cfg: cfg, slots: make(map[string]*Slot)}
}

// Slot returns the slot for a frame, creating an Idle one if needed.
func (r *Registry) Slot(frameID string) *Slot {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.slots[frameID]
	if !ok {
		s = newSlot(frameID, r.cfg)
		r.slots[frameID] = s
	}
	return s
}

// Status returns the status of a frame's slot; unknown frames are Idle.
func (r *Registry) Status(frameID string) Status {
	r.mu.Lock()
	s, ok := r.slots[frameID]
	r.mu.Unlock()
	if !ok {
		return Status{State: Idle}
	}
	return s.Status()
}

// Sync brings the registry in line with the frame list: sources maps frame
// id to screenshot source ("" for none). Slots of frames no longer present
// are closed and dropped.
func (r *Registry) Sync(sources map[string]string) {
	r.mu.Lock()
	var stale []*Slot
	for id, s := range r.slots {
		if _, ok := sources[id]; !ok {
			stale = append(stale, s)
			delete(r.slots, id)
		}
	}
	r.mu.Unlock()

	for _, s := range stale {
		s.Close()
	}
	for id, src := range sources {
		r.Slot(id).SetSource(src)
	}
}

// Len returns the number of slots.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.slots)
}

// Wait blocks until no slot is Loading or ctx is done.
func (r *Registry) Wait(ctx context.Context) error {
	for _, s := range r.snapshot() {
		if _, err := s.Wait(ctx); err != nil {
			return err
		}
	}
	return nil
}

// Close closes every slot and empties the registry.
func (r *Registry) Close() {
	slots := r.snapshot()
	r.mu.Lock()
	r.slots = make(map[string]*Slot)
	r.mu.Unlock()
	for _, s := range slots {
		s.Close()
	}
}

func (r *Registry) snapshot() []*Slot {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*Slot, 0, len(r.slots))
	for _, s := range r.slots {
		out = append(out, s)
	}
	return out
}

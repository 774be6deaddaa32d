// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package imageload

import (
	"context"
	"errors"
	"image"
	"sync"

	"github.com/gogpu/mockup"
)

// Option configures a Slot or Registry.
type Option func(*config)

type config struct {
	decoder  Decoder
	onChange func(frameID string, st Status)
}

func defaultConfig() config {
	return config{decoder: SourceDecoder{}}
}

// WithDecoder replaces the default SourceDecoder.
func WithDecoder(d Decoder) Option {
	return func(c *config) { c.decoder = d }
}

// WithOnChange registers a callback invoked after every applied state
// transition. It runs outside the slot lock, on the goroutine that caused
// the transition. A generation's Loading callback returns before its decode
// starts, so its Loaded or Failed callback always comes after it. Callbacks
// from concurrent SetSource calls on one slot may interleave.
func WithOnChange(fn func(frameID string, st Status)) Option {
	return func(c *config) { c.onChange = fn }
}

// Slot is the load state machine of one frame.
//
// Every SetSource starts a new generation. A decode result is applied only
// if its generation is still current; results of superseded decodes are
// dropped without any transition. Slots never share locks, so frames load
// independently.
type Slot struct {
	frameID string
	cfg     config

	mu     sync.Mutex
	gen    uint64
	status Status
	cancel context.CancelFunc
	done   chan struct{} // closed when the current generation settles
}

// NewSlot creates an Idle slot for a frame.
func NewSlot(frameID string, opts ...Option) *Slot {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	return newSlot(frameID, cfg)
}

func newSlot(frameID string, cfg config) *Slot {
	done := make(chan struct{})
	close(done)
	return &Slot{frameID: frameID, cfg: cfg, done: done}
}

// FrameID returns the frame this slot belongs to.
func (s *Slot) FrameID() string { return s.frameID }

// Status returns a snapshot of the slot.
func (s *Slot) Status() Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.status
}

// SetSource assigns a new screenshot source. "" returns the slot to Idle
// and discards any held image. A non-empty source moves the slot to
// Loading and starts a decode. Setting the current source again is a no-op,
// also after a failure; use Reload to retry.
func (s *Slot) SetSource(src string) {
	s.mu.Lock()
	if src == s.status.Source {
		s.mu.Unlock()
		return
	}
	st, start := s.begin(src)
	s.mu.Unlock()
	s.notify(st)
	start()
}

// Reload decodes the current source again. It is the explicit retry for a
// Failed slot; the core never retries on its own.
func (s *Slot) Reload() {
	s.mu.Lock()
	if s.status.Source == "" {
		s.mu.Unlock()
		return
	}
	st, start := s.begin(s.status.Source)
	s.mu.Unlock()
	s.notify(st)
	start()
}

// begin starts a new generation and returns its status together with the
// function that launches the decode. Callers hold s.mu, notify, then call
// start, so a generation's Loading callback precedes its result.
func (s *Slot) begin(src string) (Status, func()) {
	s.gen++
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
	s.settle()

	if src == "" {
		s.status = Status{State: Idle}
		return s.status, func() {}
	}

	ctx, cancel := context.WithCancel(context.Background())
	s.cancel = cancel
	s.done = make(chan struct{})
	s.status = Status{State: Loading, Source: src}

	gen, dec := s.gen, s.cfg.decoder
	mockup.Logger().Debug("imageload: decode started", "frame", s.frameID, "generation", gen)
	start := func() {
		go func() {
			img, err := dec.Decode(ctx, src)
			s.finish(gen, img, err)
		}()
	}
	return s.status, start
}

// finish applies a decode result if gen is still current.
func (s *Slot) finish(gen uint64, img image.Image, err error) {
	s.mu.Lock()
	if cur := s.gen; gen != cur {
		s.mu.Unlock()
		mockup.Logger().Debug("imageload: stale decode discarded",
			"frame", s.frameID, "generation", gen, "current", cur)
		return
	}
	if err == nil && img == nil {
		err = errors.New("decoder returned no image")
	}
	if err != nil {
		s.status = Status{State: Failed, Source: s.status.Source, Err: err.Error()}
		mockup.Logger().Warn("imageload: decode failed", "frame", s.frameID, "err", err)
	} else {
		s.status = Status{State: Loaded, Source: s.status.Source, Image: img}
	}
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
	s.settle()
	st := s.status
	s.mu.Unlock()
	s.notify(st)
}

// settle closes the done channel of the current generation. Callers hold s.mu.
func (s *Slot) settle() {
	select {
	case <-s.done:
	default:
		close(s.done)
	}
}

func (s *Slot) notify(st Status) {
	if s.cfg.onChange != nil {
		s.cfg.onChange(s.frameID, st)
	}
}

// Wait blocks until the slot is not Loading or ctx is done, and returns
// the status at that point.
func (s *Slot) Wait(ctx context.Context) (Status, error) {
	for {
		s.mu.Lock()
		st, done := s.status, s.done
		s.mu.Unlock()
		if st.State != Loading {
			return st, nil
		}
		select {
		case <-done:
		case <-ctx.Done():
			return st, ctx.Err()
		}
	}
}

// Close cancels any outstanding decode and returns the slot to Idle.
func (s *Slot) Close() {
	s.mu.Lock()
	s.gen++
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
	s.settle()
	s.status = Status{State: Idle}
	s.mu.Unlock()
}

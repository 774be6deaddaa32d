// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package session wires the store, image loading, the stage and the export
// pipeline into one editing session.
//
// The host calls Refresh after any change to frames, preset or canvas size;
// geometry is recomputed from a fresh snapshot every time. Edits and
// exports share one lock, so an edit issued during an export waits until
// the export has restored the stage.
package session

import (
	"context"
	"image"
	"sync"
	"sync/atomic"

	"github.com/gogpu/mockup"
	"github.com/gogpu/mockup/export"
	"github.com/gogpu/mockup/imageload"
	"github.com/gogpu/mockup/stage"
	"github.com/gogpu/mockup/store"
)

// Option configures a Session.
type Option func(*options)

type options struct {
	store    *store.Store
	stage    *stage.Stage
	pipeline *export.Pipeline
	loadOpts []imageload.Option
	onImage  func(frameID string, st imageload.Status)
}

// WithStore uses an existing store instead of a new one.
func WithStore(st *store.Store) Option {
	return func(o *options) { o.store = st }
}

// WithStage uses an existing stage.
func WithStage(st *stage.Stage) Option {
	return func(o *options) { o.stage = st }
}

// WithPipeline uses an existing export pipeline.
func WithPipeline(p *export.Pipeline) Option {
	return func(o *options) { o.pipeline = p }
}

// WithImageOptions passes options to the image registry.
func WithImageOptions(opts ...imageload.Option) Option {
	return func(o *options) { o.loadOpts = append(o.loadOpts, opts...) }
}

// WithOnImage registers a callback for screenshot load transitions. The
// host typically schedules a Refresh from it. It must not call back into
// the session synchronously.
func WithOnImage(fn func(frameID string, st imageload.Status)) Option {
	return func(o *options) { o.onImage = fn }
}

// Session is one editing session.
type Session struct {
	store    *store.Store
	stage    *stage.Stage
	pipeline *export.Pipeline
	images   *imageload.Registry

	mu    sync.Mutex
	dirty atomic.Bool
}

// New creates a session. Defaults are a one-frame store, a stage at
// display scale 1 and a pipeline with default options.
func New(opts ...Option) *Session {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	if o.store == nil {
		o.store = store.New()
	}
	if o.stage == nil {
		o.stage = stage.New()
	}
	if o.pipeline == nil {
		o.pipeline = export.New()
	}

	s := &Session{store: o.store, stage: o.stage, pipeline: o.pipeline}
	onImage := o.onImage
	// Later options win, so callers may still replace the decoder.
	loadOpts := []imageload.Option{imageload.WithDecoder(imageload.NewCache(imageload.SourceDecoder{}, 0))}
	loadOpts = append(loadOpts, o.loadOpts...)
	loadOpts = append(loadOpts, imageload.WithOnChange(func(id string, st imageload.Status) {
		s.dirty.Store(true)
		if onImage != nil {
			onImage(id, st)
		}
	}))
	s.images = imageload.NewRegistry(loadOpts...)
	return s
}

// Store returns the frame store. Mutate it through Edit or Apply while
// exports may run.
func (s *Session) Store() *store.Store { return s.store }

// Stage returns the render surface.
func (s *Session) Stage() *stage.Stage { return s.stage }

// Images returns the screenshot registry.
func (s *Session) Images() *imageload.Registry { return s.images }

// Dirty reports whether a screenshot changed state since the last Refresh.
func (s *Session) Dirty() bool { return s.dirty.Load() }

// Edit runs fn against the store under the session lock and refreshes.
func (s *Session) Edit(fn func(st *store.Store) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := fn(s.store); err != nil {
		return err
	}
	return s.refresh()
}

// Apply applies an intent and refreshes.
func (s *Session) Apply(in store.Intent) error {
	return s.Edit(func(st *store.Store) error { return st.Apply(in) })
}

// Refresh syncs screenshot loading with the frames and rebuilds the scene.
func (s *Session) Refresh() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.refresh()
}

func (s *Session) refresh() error {
	snap := s.store.Snapshot()
	sources := make(map[string]string, len(snap.Frames))
	for _, f := range snap.Frames {
		sources[f.ID] = f.Screenshot
	}
	s.images.Sync(sources)
	s.dirty.Store(false)

	sc, err := stage.Build(snap, s.images)
	if err != nil {
		return err
	}
	s.stage.SetScene(sc)
	mockup.Logger().Debug("session: refreshed",
		"frames", len(snap.Frames), "preset", snap.Preset.String(), "width", sc.Layout.TotalWidth)
	return nil
}

// WaitImages blocks until no screenshot is loading, then refreshes so the
// stage shows the results.
func (s *Session) WaitImages(ctx context.Context) error {
	if err := s.images.Wait(ctx); err != nil {
		return err
	}
	return s.Refresh()
}

// Preview renders the strip at the stage's display scale with editor-only
// elements as currently shown.
func (s *Session) Preview(ctx context.Context) (*image.RGBA, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.refresh(); err != nil {
		return nil, err
	}
	return s.stage.Display(ctx)
}

// Export refreshes the stage and exports the current frames.
func (s *Session) Export(ctx context.Context, mode export.Mode) (*export.Result, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.refresh(); err != nil {
		return nil, err
	}
	req, err := Request(s.store.Snapshot(), mode)
	if err != nil {
		return nil, err
	}
	return s.pipeline.Export(ctx, s.stage, req)
}

// Request builds the export request for a snapshot with the same geometry
// inputs the stage is laid out with.
func Request(snap store.Snapshot, mode export.Mode) (export.Request, error) {
	w, h, err := snap.CanvasSize()
	if err != nil {
		return export.Request{}, err
	}
	return export.Request{
		FrameIDs:     snap.IDs(),
		Preset:       snap.Preset,
		CanvasWidth:  w,
		CanvasHeight: h,
		Mode:         mode,
	}, nil
}

// Close stops all screenshot loads and releases the stage.
func (s *Session) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.images.Close()
	return s.stage.Close()
}

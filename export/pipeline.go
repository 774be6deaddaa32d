// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package export

import (
	"context"
	"errors"
	"fmt"
	"image"
	"image/draw"
	"sync/atomic"
	"time"

	"github.com/klauspost/compress/flate"

	"github.com/gogpu/mockup"
	"github.com/gogpu/mockup/layout"
	"github.com/gogpu/mockup/stage"
)

// Errors returned by Pipeline.Export.
var (
	// ErrNoFrames is returned for a request without frames.
	ErrNoFrames = errors.New("export: no frames")

	// ErrExportInProgress is returned when an export is already running on
	// the same pipeline.
	ErrExportInProgress = errors.New("export: export in progress")
)

// DefaultSliceDelay is the pause between batch slices.
const DefaultSliceDelay = 20 * time.Millisecond

// Surface is the render surface an export runs against.
// *stage.Stage implements it.
type Surface interface {
	Ready() bool
	Scale() float64
	SetScale(scale float64) error
	Visible(t stage.Tag) bool
	SetVisible(t stage.Tag, visible bool)
	Rasterize(ctx context.Context, region image.Rectangle, pixelRatio float64) (*image.RGBA, error)
}

// Request describes one export. The geometry inputs must be the ones the
// live surface was laid out with.
type Request struct {
	FrameIDs     []string
	Preset       layout.Preset
	CanvasWidth  float64
	CanvasHeight float64
	Mode         Mode
}

// Job is the rasterization plan derived from a Request.
type Job struct {
	// Mode is the effective mode. Batch with one frame becomes Single.
	Mode Mode

	Layout layout.Layout

	// Region is the strip area rendered in one pass.
	Region image.Rectangle

	// Slices are the crop rectangles in Batch mode, in frame order.
	Slices []image.Rectangle

	// PixelScale is the pixel ratio passed to Rasterize.
	PixelScale float64
}

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithClock sets the time source used for file names.
func WithClock(now func() time.Time) Option {
	return func(p *Pipeline) { p.now = now }
}

// WithSliceDelay sets the pause between batch slices. Zero disables it;
// cancellation is still checked between slices.
func WithSliceDelay(d time.Duration) Option {
	return func(p *Pipeline) { p.delay = max(0, d) }
}

// WithFullStrip adds the uncut strip to batch archives as "_full.png".
func WithFullStrip(enabled bool) Option {
	return func(p *Pipeline) { p.fullStrip = enabled }
}

// WithCompression sets the flate level of archive entries, from
// flate.NoCompression (entries are stored) to flate.BestCompression.
func WithCompression(level int) Option {
	return func(p *Pipeline) {
		if level >= flate.HuffmanOnly && level <= flate.BestCompression {
			p.level = level
		}
	}
}

// Pipeline runs exports. A Pipeline runs one export at a time.
type Pipeline struct {
	now       func() time.Time
	delay     time.Duration
	fullStrip bool
	level     int

	busy atomic.Bool
}

// New creates a pipeline.
func New(opts ...Option) *Pipeline {
	p := &Pipeline{
		now:   time.Now,
		delay: DefaultSliceDelay,
		level: flate.BestSpeed,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Busy reports whether an export is running.
func (p *Pipeline) Busy() bool { return p.busy.Load() }

// Plan computes the job for req without touching any surface.
func (p *Pipeline) Plan(req Request) (Job, error) {
	if len(req.FrameIDs) == 0 {
		return Job{}, ErrNoFrames
	}
	l, err := layout.Compute(req.FrameIDs, req.Preset, req.CanvasWidth, req.CanvasHeight)
	if err != nil {
		return Job{}, err
	}
	job := Job{Mode: req.Mode, Layout: l, Region: l.Bounds(), PixelScale: 1}
	if l.Len() == 1 {
		job.Mode = Single
		job.Region = l.Slices[0].Rect()
	}
	if job.Mode == Batch {
		job.Slices = make([]image.Rectangle, l.Len())
		for i, s := range l.Slices {
			job.Slices[i] = s.Rect().Intersect(job.Region)
		}
	}
	return job, nil
}

// Export runs the export protocol against s.
//
// It fails with mockup.ErrExportNotReady, ErrNoFrames or
// ErrExportInProgress before any surface state is touched. Past that point
// the display scale and the editor-only visibility are restored on every
// exit path, including panics.
func (p *Pipeline) Export(ctx context.Context, s Surface, req Request) (res *Result, err error) {
	if !s.Ready() {
		return nil, mockup.ErrExportNotReady
	}
	if len(req.FrameIDs) == 0 {
		return nil, ErrNoFrames
	}
	if !p.busy.CompareAndSwap(false, true) {
		return nil, ErrExportInProgress
	}
	defer p.busy.Store(false)
	defer func() {
		if err != nil {
			mockup.Logger().Warn("export: aborted", "mode", req.Mode.String(), "err", err)
		}
	}()

	captured := p.now()
	saved := record(s)
	defer saved.restore(s)

	if err := s.SetScale(1); err != nil {
		return nil, fmt.Errorf("export: force unit scale: %w", err)
	}
	for _, t := range stage.EditorOnly() {
		s.SetVisible(t, false)
	}

	job, err := p.Plan(req)
	if err != nil {
		return nil, err
	}
	mockup.Logger().Debug("export: job planned",
		"mode", job.Mode.String(), "frames", job.Layout.Len(), "region", job.Region.String())

	strip, err := p.rasterize(ctx, s, job.Region, job.PixelScale)
	if err != nil {
		return nil, err
	}

	res = &Result{Mode: job.Mode, Layout: job.Layout, Captured: captured}
	if job.Mode == Single {
		res.Images = []*image.RGBA{strip}
		err = p.packSingle(res)
	} else {
		if res.Images, err = p.slice(ctx, strip, job); err != nil {
			return nil, err
		}
		err = p.packBatch(res, strip)
	}
	if err != nil {
		return nil, err
	}

	mockup.Logger().Info("export: done",
		"mode", res.Mode.String(), "file", res.Name, "bytes", len(res.Data), "images", len(res.Images))
	return res, nil
}

func (p *Pipeline) rasterize(ctx context.Context, s Surface, region image.Rectangle, ratio float64) (*image.RGBA, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	img, err := s.Rasterize(ctx, region, ratio)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		if errors.Is(err, mockup.ErrImageDecode) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: rasterize %v: %v", mockup.ErrImageDecode, region, err)
	}
	want := image.Rect(0, 0, region.Dx(), region.Dy())
	if img == nil || img.Bounds().Size() != want.Size() {
		return nil, fmt.Errorf("%w: rasterize %v: unexpected raster size", mockup.ErrImageDecode, region)
	}
	return img, nil
}

// slice crops each job slice from strip, pausing between slices.
func (p *Pipeline) slice(ctx context.Context, strip *image.RGBA, job Job) ([]*image.RGBA, error) {
	out := make([]*image.RGBA, 0, len(job.Slices))
	origin := strip.Bounds().Min.Sub(job.Region.Min)
	for i, r := range job.Slices {
		if i > 0 {
			if err := p.yield(ctx); err != nil {
				return nil, err
			}
		}
		out = append(out, crop(strip, r.Add(origin)))
	}
	return out, nil
}

func (p *Pipeline) yield(ctx context.Context) error {
	if p.delay <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(p.delay)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// crop copies r out of src into a new image anchored at the origin.
func crop(src *image.RGBA, r image.Rectangle) *image.RGBA {
	dst := image.NewRGBA(image.Rect(0, 0, r.Dx(), r.Dy()))
	draw.Draw(dst, dst.Bounds(), src, r.Min, draw.Src)
	return dst
}

// surfaceState is the surface state an export must give back.
type surfaceState struct {
	scale   float64
	visible map[stage.Tag]bool
}

func record(s Surface) surfaceState {
	st := surfaceState{scale: s.Scale(), visible: make(map[stage.Tag]bool)}
	for _, t := range stage.EditorOnly() {
		st.visible[t] = s.Visible(t)
	}
	return st
}

func (st surfaceState) restore(s Surface) {
	for t, v := range st.visible {
		s.SetVisible(t, v)
	}
	if err := s.SetScale(st.scale); err != nil {
		mockup.Logger().Warn("export: restore display scale", "scale", st.scale, "err", err)
	}
}

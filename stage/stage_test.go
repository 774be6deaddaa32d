// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package stage

import (
	"context"
	"errors"
	"image"
	"testing"

	"github.com/gogpu/mockup"
	"github.com/gogpu/mockup/device"
	"github.com/gogpu/mockup/store"
)

type recordingRenderer struct {
	calls []RenderOptions
	err   error
}

func (r *recordingRenderer) Render(_ context.Context, _ *Scene, opts RenderOptions) (*image.RGBA, error) {
	r.calls = append(r.calls, opts)
	if r.err != nil {
		return nil, r.err
	}
	w, h := opts.OutputSize()
	return image.NewRGBA(image.Rect(0, 0, w, h)), nil
}

func testScene(t *testing.T, n int) *Scene {
	t.Helper()
	st := store.New()
	for i := 1; i < n; i++ {
		if _, err := st.Append(device.IPhone); err != nil {
			t.Fatalf("Append() error = %v", err)
		}
	}
	sc, err := Build(st.Snapshot(), nil)
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	return sc
}

func TestStage_Defaults(t *testing.T) {
	s := New(WithRenderer(&recordingRenderer{}))
	if s.Scale() != 1 {
		t.Errorf("Scale() = %v, want 1", s.Scale())
	}
	for _, tag := range EditorOnly() {
		if !s.Visible(tag) {
			t.Errorf("Visible(%v) = false, want true", tag)
		}
	}
	if s.Ready() {
		t.Error("Ready() = true without a scene")
	}
}

func TestStage_WithScale(t *testing.T) {
	if got := New(WithScale(0.25)).Scale(); got != 0.25 {
		t.Errorf("Scale() = %v, want 0.25", got)
	}
	if got := New(WithScale(-1)).Scale(); got != 1 {
		t.Errorf("Scale() with invalid option = %v, want 1", got)
	}
}

func TestStage_SetScale(t *testing.T) {
	s := New()
	if err := s.SetScale(0.5); err != nil {
		t.Fatalf("SetScale() error = %v", err)
	}
	for _, bad := range []float64{0, -2} {
		if err := s.SetScale(bad); !errors.Is(err, ErrInvalidScale) {
			t.Errorf("SetScale(%v) error = %v, want ErrInvalidScale", bad, err)
		}
	}
	if s.Scale() != 0.5 {
		t.Errorf("Scale() = %v, want 0.5", s.Scale())
	}
}

func TestStage_SetVisible(t *testing.T) {
	s := New()
	s.SetVisible(TagGuides, false)
	if s.Visible(TagGuides) {
		t.Error("Visible(guides) = true after hide")
	}
	if !s.Visible(TagSelection) {
		t.Error("Visible(selection) = false, want untouched")
	}
	s.SetVisible(TagGuides, true)
	if !s.Visible(TagGuides | TagSelection) {
		t.Error("Visible(all) = false after show")
	}
}

func TestStage_Rasterize(t *testing.T) {
	rec := &recordingRenderer{}
	s := New(WithRenderer(rec), WithScale(0.5))
	s.SetScene(testScene(t, 2))
	s.SetVisible(TagSelection, false)

	img, err := s.Rasterize(context.Background(), image.Rect(0, 0, 100, 40), 2)
	if err != nil {
		t.Fatalf("Rasterize() error = %v", err)
	}
	if b := img.Bounds(); b.Dx() != 100 || b.Dy() != 40 {
		t.Errorf("bounds = %v, want 100x40", b)
	}
	got := rec.calls[0]
	if got.Scale != 1 {
		t.Errorf("render scale = %v, want 1", got.Scale)
	}
	if got.Visible != TagGuides {
		t.Errorf("render visible = %v, want guides", got.Visible)
	}
}

func TestStage_RasterizeErrors(t *testing.T) {
	rec := &recordingRenderer{}
	s := New(WithRenderer(rec))
	ctx := context.Background()

	if _, err := s.Rasterize(ctx, image.Rect(0, 0, 10, 10), 1); !errors.Is(err, mockup.ErrExportNotReady) {
		t.Errorf("Rasterize() without scene error = %v, want ErrExportNotReady", err)
	}
	s.SetScene(testScene(t, 1))
	if _, err := s.Rasterize(ctx, image.Rectangle{}, 1); !errors.Is(err, ErrInvalidRegion) {
		t.Errorf("Rasterize(empty) error = %v, want ErrInvalidRegion", err)
	}
	if _, err := s.Rasterize(ctx, image.Rect(0, 0, 1, 1), 0); !errors.Is(err, ErrInvalidScale) {
		t.Errorf("Rasterize(ratio 0) error = %v, want ErrInvalidScale", err)
	}

	_ = s.Close()
	if s.Ready() {
		t.Error("Ready() = true after Close")
	}
	if _, err := s.Rasterize(ctx, image.Rect(0, 0, 1, 1), 1); !errors.Is(err, ErrClosed) {
		t.Errorf("Rasterize() after Close error = %v, want ErrClosed", err)
	}
	if len(rec.calls) != 0 {
		t.Errorf("renderer calls = %d, want 0", len(rec.calls))
	}
}

func TestStage_Display(t *testing.T) {
	rec := &recordingRenderer{}
	s := New(WithRenderer(rec), WithScale(0.1))
	sc := testScene(t, 3)
	s.SetScene(sc)
	if !s.Ready() {
		t.Fatal("Ready() = false with scene")
	}
	if _, err := s.Display(context.Background()); err != nil {
		t.Fatalf("Display() error = %v", err)
	}
	if got := rec.calls[0].Region; got != sc.Bounds() {
		t.Errorf("Display region = %v, want %v", got, sc.Bounds())
	}
}

func TestTag_String(t *testing.T) {
	tests := []struct {
		tag  Tag
		want string
	}{
		{0, "none"},
		{TagGuides, "guides"},
		{TagSelection, "selection"},
		{TagGuides | TagSelection, "guides|selection"},
	}
	for _, tt := range tests {
		if got := tt.tag.String(); got != tt.want {
			t.Errorf("Tag(%d).String() = %q, want %q", tt.tag, got, tt.want)
		}
	}
}

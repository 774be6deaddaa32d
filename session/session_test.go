// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package session

import (
	"context"
	"image"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gogpu/mockup/device"
	"github.com/gogpu/mockup/export"
	"github.com/gogpu/mockup/imageload"
	"github.com/gogpu/mockup/layout"
	"github.com/gogpu/mockup/stage"
	"github.com/gogpu/mockup/store"
)

type blankRenderer struct {
	entered chan struct{}
	release chan struct{}
}

func (r *blankRenderer) Render(_ context.Context, _ *stage.Scene, opts stage.RenderOptions) (*image.RGBA, error) {
	if r.entered != nil {
		r.entered <- struct{}{}
		<-r.release
	}
	w, h := opts.OutputSize()
	return image.NewRGBA(image.Rect(0, 0, w, h)), nil
}

func constDecoder(img image.Image) imageload.Decoder {
	return imageload.DecoderFunc(func(context.Context, string) (image.Image, error) {
		return img, nil
	})
}

func newTestSession(t *testing.T, r stage.Renderer, opts ...Option) *Session {
	t.Helper()
	base := []Option{
		WithStage(stage.New(stage.WithRenderer(r), stage.WithScale(0.5))),
		WithPipeline(export.New(export.WithSliceDelay(0))),
	}
	s := New(append(base, opts...)...)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func waitCtx(t *testing.T) context.Context {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	t.Cleanup(cancel)
	return ctx
}

func TestSession_Refresh(t *testing.T) {
	s := newTestSession(t, &blankRenderer{})
	if s.Stage().Ready() {
		t.Fatal("stage ready before Refresh")
	}
	if err := s.Refresh(); err != nil {
		t.Fatalf("Refresh() error = %v", err)
	}
	sc := s.Stage().Scene()
	if sc == nil || len(sc.Frames) != 1 {
		t.Fatalf("scene = %+v, want one frame", sc)
	}
}

func TestSession_Apply(t *testing.T) {
	s := newTestSession(t, &blankRenderer{})
	id := s.Store().ActiveID()
	if err := s.Apply(store.ToggleDevice{FrameID: id}); err != nil {
		t.Fatalf("Apply() error = %v", err)
	}
	n, ok := s.Stage().Scene().Frame(id)
	if !ok || n.ShowDevice {
		t.Errorf("scene frame ShowDevice = %v, want false", n.ShowDevice)
	}
	if err := s.Apply(store.ToggleDevice{FrameID: "missing"}); err == nil {
		t.Error("Apply() on a missing frame succeeded")
	}
}

func TestSession_Edit(t *testing.T) {
	s := newTestSession(t, &blankRenderer{})
	err := s.Edit(func(st *store.Store) error {
		if _, err := st.Append(device.Tablet); err != nil {
			return err
		}
		return st.SetPreset(layout.Overlap)
	})
	if err != nil {
		t.Fatalf("Edit() error = %v", err)
	}
	sc := s.Stage().Scene()
	if sc.Layout.Len() != 2 {
		t.Fatalf("slices = %d, want 2", sc.Layout.Len())
	}
	if sc.Layout.Slices[1].X >= sc.Layout.Slices[0].Right() {
		t.Error("overlap preset not applied to the scene")
	}
}

func TestSession_Screenshots(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 40, 80))
	var changes atomic.Int32
	s := newTestSession(t, &blankRenderer{},
		WithImageOptions(imageload.WithDecoder(constDecoder(img))),
		WithOnImage(func(string, imageload.Status) { changes.Add(1) }),
	)
	id := s.Store().ActiveID()
	if err := s.Edit(func(st *store.Store) error { return st.SetScreenshot(id, "shot.png") }); err != nil {
		t.Fatal(err)
	}
	if err := s.WaitImages(waitCtx(t)); err != nil {
		t.Fatalf("WaitImages() error = %v", err)
	}
	n, _ := s.Stage().Scene().Frame(id)
	if n.Image != img {
		t.Error("scene does not show the loaded screenshot")
	}
	if changes.Load() == 0 {
		t.Error("OnImage callback never ran")
	}

	if err := s.Edit(func(st *store.Store) error { return st.SetScreenshot(id, "") }); err != nil {
		t.Fatal(err)
	}
	if n, _ := s.Stage().Scene().Frame(id); n.Image != nil {
		t.Error("cleared screenshot still shown")
	}
}

func TestSession_Export(t *testing.T) {
	s := newTestSession(t, &blankRenderer{})
	if err := s.Edit(func(st *store.Store) error {
		_, err := st.Append(device.IPhone)
		return err
	}); err != nil {
		t.Fatal(err)
	}
	res, err := s.Export(context.Background(), export.Batch)
	if err != nil {
		t.Fatalf("Export() error = %v", err)
	}
	if len(res.Entries) != 2 {
		t.Errorf("entries = %v, want 2", res.Entries)
	}
	if got := s.Stage().Scale(); got != 0.5 {
		t.Errorf("Scale() after export = %v, want 0.5", got)
	}
	auto, _ := device.AutoCanvasSize(device.MustLookup(device.IPhone))
	if b := res.Images[0].Bounds(); b.Dx() != int(auto) {
		t.Errorf("slice width = %d, want %v", b.Dx(), auto)
	}
}

func TestSession_EditWaitsForExport(t *testing.T) {
	r := &blankRenderer{entered: make(chan struct{}), release: make(chan struct{})}
	s := newTestSession(t, r)

	exported := make(chan error, 1)
	go func() {
		_, err := s.Export(context.Background(), export.Single)
		exported <- err
	}()
	<-r.entered

	edited := make(chan struct{})
	go func() {
		_ = s.Edit(func(st *store.Store) error { return st.SetPreset(layout.Hero) })
		close(edited)
	}()

	select {
	case <-edited:
		t.Fatal("edit ran during the export critical section")
	case <-time.After(20 * time.Millisecond):
	}
	close(r.release)
	if err := <-exported; err != nil {
		t.Fatalf("Export() error = %v", err)
	}
	<-edited
	if s.Store().Preset() != layout.Hero {
		t.Error("queued edit was not applied")
	}
}

func TestRequest(t *testing.T) {
	st := store.New()
	w, h := 1080, 1920
	if err := st.SetCanvasSize(&w, &h); err != nil {
		t.Fatal(err)
	}
	req, err := Request(st.Snapshot(), export.Single)
	if err != nil {
		t.Fatalf("Request() error = %v", err)
	}
	if req.CanvasWidth != 1080 || req.CanvasHeight != 1920 || len(req.FrameIDs) != 1 {
		t.Errorf("Request() = %+v", req)
	}
}

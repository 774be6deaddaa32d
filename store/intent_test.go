// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package store

import (
	"errors"
	"testing"
)

func TestApply_SetFrameOffset(t *testing.T) {
	s := New(seqIDs())
	if err := s.Apply(SetFrameOffset{FrameID: "frame-1", X: 12, Y: -40}); err != nil {
		t.Fatal(err)
	}
	f, _ := s.Frame("frame-1")
	if f.Transform.OffsetX != 12 || f.Transform.OffsetY != -40 {
		t.Errorf("offset = %v,%v; want 12,-40", f.Transform.OffsetX, f.Transform.OffsetY)
	}
	if err := s.Apply(SetFrameOffset{FrameID: "nope"}); !errors.Is(err, ErrFrameNotFound) {
		t.Errorf("Apply(unknown frame) error = %v", err)
	}
}

func TestApply_TextIntents(t *testing.T) {
	s := New(seqIDs())
	if err := s.Apply(SetText{FrameID: "frame-1", Kind: Headline, Text: "Ship faster"}); err != nil {
		t.Fatal(err)
	}
	if err := s.Apply(SetTextPosition{FrameID: "frame-1", Kind: Subtitle, X: 0.25, Y: 0.3}); err != nil {
		t.Fatal(err)
	}
	f, _ := s.Frame("frame-1")
	if f.Headline.Text != "Ship faster" {
		t.Errorf("Headline.Text = %q", f.Headline.Text)
	}
	if f.Subtitle.X != 0.25 || f.Subtitle.Y != 0.3 {
		t.Errorf("Subtitle position = %v,%v", f.Subtitle.X, f.Subtitle.Y)
	}
	if err := s.Apply(SetText{FrameID: "frame-1", Kind: "caption"}); err == nil {
		t.Error("Apply(SetText caption) should fail")
	}
}

func TestApply_TransformIntents(t *testing.T) {
	s := New(seqIDs())
	if err := s.Apply(QuickLayoutIntent{FrameID: "frame-1", Name: "floating"}); err != nil {
		t.Fatal(err)
	}
	f, _ := s.Frame("frame-1")
	if f.Transform.Rotation != 15 || f.Transform.Scale != 1.1 || f.Transform.OffsetY != -40 {
		t.Errorf("floating transform = %+v", f.Transform)
	}

	if err := s.Apply(QuickLayoutIntent{FrameID: "frame-1", Name: "upside-down"}); err == nil {
		t.Error("unknown quick layout should fail")
	}
	f2, _ := s.Frame("frame-1")
	if f2.Transform != f.Transform {
		t.Error("failed quick layout modified the transform")
	}

	if err := s.Apply(ResetTransform{FrameID: "frame-1"}); err != nil {
		t.Fatal(err)
	}
	f, _ = s.Frame("frame-1")
	if !f.Transform.IsIdentity() {
		t.Errorf("transform after reset = %+v", f.Transform)
	}

	tr := IdentityTransform()
	tr.FlipX = true
	_ = s.Apply(SetTransform{FrameID: "frame-1", Transform: tr})
	_ = s.Apply(ToggleDevice{FrameID: "frame-1"})
	f, _ = s.Frame("frame-1")
	if !f.Transform.FlipX || f.ShowDevice {
		t.Errorf("frame = %+v, want flipped and device hidden", f)
	}
}

func TestQuickLayoutNames(t *testing.T) {
	names := QuickLayoutNames()
	if len(names) != 6 || names[0] != "flat" {
		t.Errorf("QuickLayoutNames() = %v", names)
	}
	for _, n := range names {
		tr := IdentityTransform()
		if err := ApplyQuickLayout(n, &tr); err != nil {
			t.Errorf("ApplyQuickLayout(%q) error = %v", n, err)
		}
	}
}

// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package device

import (
	"errors"
	"strings"
	"testing"
)

func TestLookup_AllTypes(t *testing.T) {
	for _, typ := range Types() {
		m, err := Lookup(typ)
		if err != nil {
			t.Fatalf("Lookup(%s) error = %v", typ, err)
		}
		if m.Type != typ {
			t.Errorf("Lookup(%s).Type = %s", typ, m.Type)
		}
		s := m.Screen
		if s.X < 0 || s.Y < 0 || s.X+s.Width > m.FrameWidth || s.Y+s.Height > m.FrameHeight {
			t.Errorf("%s: screen %+v outside frame %vx%v", typ, s, m.FrameWidth, m.FrameHeight)
		}
		for _, p := range []ExportPreset{AppStore, PlayStore, Social} {
			if sz, ok := m.ExportSize(p); !ok || sz.Width <= 0 || sz.Height <= 0 {
				t.Errorf("%s: ExportSize(%s) = %v, %v", typ, p, sz, ok)
			}
		}
	}
}

func TestLookup_ReturnsCopy(t *testing.T) {
	m := MustLookup(IPhone)
	m.ExportPresets[AppStore] = Size{1, 1}
	if got, _ := MustLookup(IPhone).ExportSize(AppStore); got != (Size{1320, 2868}) {
		t.Errorf("table mutated through Lookup result: %v", got)
	}
}

func TestLookup_Unknown(t *testing.T) {
	if _, err := Lookup("toaster"); !errors.Is(err, ErrUnknownType) {
		t.Errorf("Lookup(toaster) error = %v, want ErrUnknownType", err)
	}
}

func TestParseType(t *testing.T) {
	got, err := ParseType(" Tablet ")
	if err != nil || got != Tablet {
		t.Fatalf("ParseType(Tablet) = %v, %v", got, err)
	}

	_, err = ParseType("iphnoe")
	if !errors.Is(err, ErrUnknownType) {
		t.Fatalf("ParseType(iphnoe) error = %v, want ErrUnknownType", err)
	}
	if !strings.Contains(err.Error(), `did you mean "iphone"`) {
		t.Errorf("error %q does not suggest iphone", err)
	}

	_, err = ParseType("refrigerator")
	if err == nil || strings.Contains(err.Error(), "did you mean") {
		t.Errorf("ParseType(refrigerator) error = %v, want list of known types", err)
	}
}

func TestSuggest(t *testing.T) {
	c := []string{"even", "overlap", "hero"}
	tests := []struct{ in, want string }{
		{"evn", "even"},
		{"overlpa", "overlap"},
		{"HERO", "hero"},
		{"completely-different", ""},
	}
	for _, tt := range tests {
		if got := Suggest(tt.in, c); got != tt.want {
			t.Errorf("Suggest(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
	if got := Suggest("x", nil); got != "" {
		t.Errorf("Suggest with no candidates = %q, want empty", got)
	}
}

func TestAutoCanvasSize(t *testing.T) {
	w, h := AutoCanvasSize(MustLookup(IPhone))
	if w != 1320 || h != 2868 {
		t.Errorf("AutoCanvasSize(iphone) = %vx%v, want 1320x2868", w, h)
	}
	m := MustLookup(Desktop)
	w, _ = AutoCanvasSize(m)
	if want := m.FrameWidth + 2*PaddingX + DesktopExtraWidth; w != want {
		t.Errorf("AutoCanvasSize(desktop) width = %v, want %v", w, want)
	}
}

func TestFindCanvasPreset(t *testing.T) {
	p, ok := FindCanvasPreset("twitter/x")
	if !ok || p.Size != (Size{1200, 675}) {
		t.Errorf("FindCanvasPreset(twitter/x) = %+v, %v", p, ok)
	}
	if _, ok := FindCanvasPreset("billboard"); ok {
		t.Error("FindCanvasPreset(billboard) found, want missing")
	}
}

// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package layout

import (
	"errors"
	"fmt"
	"image"
	"math"
	"testing"

	"github.com/gogpu/mockup"
)

func ids(n int) []string {
	out := make([]string, n)
	for i := range out {
		out[i] = fmt.Sprintf("f%d", i)
	}
	return out
}

func TestCompute_Even(t *testing.T) {
	for _, base := range []float64{100, 1320, 333.4, 333.6} {
		for n := 1; n <= 6; n++ {
			l, err := Compute(ids(n), Even, base, 500)
			if err != nil {
				t.Fatalf("Compute(%d, even, %v) error = %v", n, base, err)
			}
			w := Round(base)
			for i, s := range l.Slices {
				if s.Width != w {
					t.Errorf("n=%d base=%v: slice %d width = %v, want %v", n, base, i, s.Width, w)
				}
				if s.X != float64(i)*w {
					t.Errorf("n=%d base=%v: slice %d x = %v, want %v", n, base, i, s.X, float64(i)*w)
				}
				if s.Y != 0 || s.Height != 500 {
					t.Errorf("slice %d y/height = %v/%v, want 0/500", i, s.Y, s.Height)
				}
			}
			if l.TotalWidth != float64(n)*w {
				t.Errorf("n=%d base=%v: TotalWidth = %v, want %v", n, base, l.TotalWidth, float64(n)*w)
			}
		}
	}
}

func TestCompute_Overlap(t *testing.T) {
	const base = 1000.0
	step := base - Round(OverlapFraction*base) // 880
	for n := 2; n <= 6; n++ {
		l, err := Compute(ids(n), Overlap, base, 800)
		if err != nil {
			t.Fatalf("Compute() error = %v", err)
		}
		for i := 0; i+1 < n; i++ {
			if d := l.Slices[i+1].X - l.Slices[i].X; d != step {
				t.Errorf("n=%d: x[%d]-x[%d] = %v, want %v", n, i+1, i, d, step)
			}
		}
		for i, s := range l.Slices {
			if s.Width != base {
				t.Errorf("n=%d: slice %d width = %v, want %v", n, i, s.Width, base)
			}
		}
		if want := l.Slices[n-1].X + base; l.TotalWidth != want {
			t.Errorf("n=%d: TotalWidth = %v, want %v", n, l.TotalWidth, want)
		}
	}
}

func TestCompute_Hero(t *testing.T) {
	const base = 1000.0
	for _, n := range []int{3, 4, 5, 7} {
		l, err := Compute(ids(n), Hero, base, 800)
		if err != nil {
			t.Fatalf("Compute() error = %v", err)
		}
		center := (n - 1) / 2
		sum := 0.0
		for i, s := range l.Slices {
			want := Round(HeroSideFactor * base)
			if i == center {
				want = Round(HeroCenterFactor * base)
			}
			if s.Width != want {
				t.Errorf("n=%d: slice %d width = %v, want %v", n, i, s.Width, want)
			}
			if s.X != sum {
				t.Errorf("n=%d: slice %d x = %v, want %v (contiguous)", n, i, s.X, sum)
			}
			sum += s.Width
		}
		if l.TotalWidth != sum {
			t.Errorf("n=%d: TotalWidth = %v, want %v", n, l.TotalWidth, sum)
		}
	}
}

func TestCompute_HeroTwoFramesCenterIsFirst(t *testing.T) {
	l := MustCompute(ids(2), Hero, 100, 100)
	if l.Slices[0].Width != 140 || l.Slices[1].Width != 85 {
		t.Errorf("widths = %v/%v, want 140/85", l.Slices[0].Width, l.Slices[1].Width)
	}
}

func TestCompute_DiagonalFallsBackToEven(t *testing.T) {
	even := MustCompute(ids(4), Even, 640, 480)
	diag := MustCompute(ids(4), Diagonal, 640, 480)
	if even.TotalWidth != diag.TotalWidth {
		t.Fatalf("TotalWidth = %v, want %v", diag.TotalWidth, even.TotalWidth)
	}
	for i := range even.Slices {
		if even.Slices[i] != diag.Slices[i] {
			t.Errorf("slice %d = %+v, want %+v", i, diag.Slices[i], even.Slices[i])
		}
	}
}

func TestCompute_ZeroFrames(t *testing.T) {
	for _, p := range []Preset{Even, Overlap, Hero, Diagonal} {
		l, err := Compute(nil, p, 100, 100)
		if err != nil {
			t.Fatalf("Compute(nil, %v) error = %v", p, err)
		}
		if l.TotalWidth != 0 || len(l.Slices) != 0 {
			t.Errorf("%v: got TotalWidth=%v slices=%d, want 0/0", p, l.TotalWidth, len(l.Slices))
		}
		if l.CutLines() != nil {
			t.Errorf("%v: CutLines() = %v, want nil", p, l.CutLines())
		}
	}
}

func TestCompute_OneFrameFullWidth(t *testing.T) {
	for _, p := range []Preset{Even, Overlap, Hero, Diagonal} {
		l := MustCompute([]string{"only"}, p, 1320, 2868)
		want := Slice{ID: "only", X: 0, Y: 0, Width: 1320, Height: 2868}
		if len(l.Slices) != 1 || l.Slices[0] != want {
			t.Errorf("%v: slices = %+v, want [%+v]", p, l.Slices, want)
		}
		if l.TotalWidth != 1320 {
			t.Errorf("%v: TotalWidth = %v, want 1320", p, l.TotalWidth)
		}
	}
}

func TestCompute_InvalidInput(t *testing.T) {
	tests := []struct {
		name string
		ids  []string
		p    Preset
		w, h float64
	}{
		{"zero width", ids(2), Even, 0, 100},
		{"negative height", ids(2), Even, 100, -1},
		{"nan width", ids(2), Even, math.NaN(), 100},
		{"inf height", ids(2), Even, 100, math.Inf(1)},
		{"empty id", []string{"a", ""}, Even, 100, 100},
		{"duplicate id", []string{"a", "a"}, Hero, 100, 100},
		{"unknown preset", ids(2), Preset(42), 100, 100},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Compute(tt.ids, tt.p, tt.w, tt.h)
			if !errors.Is(err, mockup.ErrInvalidLayoutInput) {
				t.Errorf("Compute() error = %v, want ErrInvalidLayoutInput", err)
			}
		})
	}
}

func TestMustCompute_Panics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("MustCompute did not panic on invalid input")
		}
	}()
	MustCompute(ids(1), Even, -1, 1)
}

func TestLayout_SliceAndBounds(t *testing.T) {
	l := MustCompute([]string{"a", "b"}, Even, 100, 50)
	s, ok := l.Slice("b")
	if !ok || s.X != 100 {
		t.Fatalf("Slice(b) = %+v, %v; want x=100", s, ok)
	}
	if _, ok := l.Slice("zzz"); ok {
		t.Error("Slice(zzz) found, want missing")
	}
	if got, want := l.Bounds(), image.Rect(0, 0, 200, 50); got != want {
		t.Errorf("Bounds() = %v, want %v", got, want)
	}
	if got, want := s.Rect(), image.Rect(100, 0, 200, 50); got != want {
		t.Errorf("Rect() = %v, want %v", got, want)
	}
}

func TestLayout_CutLines(t *testing.T) {
	even := MustCompute(ids(3), Even, 100, 10)
	if got := even.CutLines(); len(got) != 2 || got[0] != 100 || got[1] != 200 {
		t.Errorf("even CutLines() = %v, want [100 200]", got)
	}

	over := MustCompute(ids(3), Overlap, 100, 10) // x = 0, 88, 176; total 276
	want := []float64{88, 100, 176, 188}
	got := over.CutLines()
	if len(got) != len(want) {
		t.Fatalf("overlap CutLines() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("overlap CutLines()[%d] = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestRound(t *testing.T) {
	tests := []struct{ in, want float64 }{
		{2.5, 3}, {2.4, 2}, {-2.5, -2}, {0, 0}, {158.4, 158},
	}
	for _, tt := range tests {
		if got := Round(tt.in); got != tt.want {
			t.Errorf("Round(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

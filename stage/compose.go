// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package stage

import (
	"fmt"
	"image"
	"image/draw"
	"math"

	"github.com/disintegration/imaging"
	"github.com/gogpu/gg"
	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/math/f64"

	"github.com/gogpu/mockup/fit"
	"github.com/gogpu/mockup/store"
)

// compositeDevice draws one frame's device layer onto out.
func compositeDevice(out *image.RGBA, n FrameNode, v view) error {
	p := n.Placement()
	t := n.Transform
	scale := t.Scale
	if scale <= 0 {
		scale = 1
	}
	// The layer is rasterized at its final size so that only the
	// orientation is left to resampling.
	f := p.Factor * v.s * scale

	layer, err := deviceLayer(n, f)
	if err != nil {
		return err
	}
	var src image.Image = layer
	if t.FlipX {
		src = imaging.FlipH(src)
	}
	if t.FlipY {
		src = imaging.FlipV(src)
	}

	cx, cy := p.Center()
	ox, oy := v.pt(cx+t.OffsetX, cy+t.OffsetY)
	m := orientation(t)
	sb := src.Bounds()
	hw, hh := float64(sb.Dx())/2, float64(sb.Dy())/2

	if m == (linear{1, 0, 0, 1}) {
		at := image.Pt(int(math.Floor(ox-hw+0.5)), int(math.Floor(oy-hh+0.5)))
		r := image.Rectangle{Min: at, Max: at.Add(sb.Size())}
		draw.Draw(out, r, src, sb.Min, draw.Over)
		return nil
	}

	// s2d maps layer pixels to output pixels around the layer center.
	s2d := f64.Aff3{
		m.a, m.b, ox - m.a*hw - m.b*hh,
		m.c, m.d, oy - m.c*hw - m.d*hh,
	}
	if !m.invertible() {
		return nil
	}
	xdraw.BiLinear.Transform(out, s2d, src, sb, xdraw.Over, nil)
	return nil
}

// linear is a 2x2 matrix [a b; c d].
type linear struct{ a, b, c, d float64 }

func (m linear) mul(o linear) linear {
	return linear{
		m.a*o.a + m.b*o.c, m.a*o.b + m.b*o.d,
		m.c*o.a + m.d*o.c, m.c*o.b + m.d*o.d,
	}
}

func (m linear) invertible() bool {
	return math.Abs(m.a*m.d-m.b*m.c) > 1e-9
}

// orientation returns rotation * skew * tilt. Tilt about the vertical axis
// shortens the width by cos(TiltY); about the horizontal axis it shortens
// the height by cos(TiltX).
func orientation(t store.Transform) linear {
	rad := func(deg float64) float64 { return deg * math.Pi / 180 }
	m := linear{1, 0, 0, 1}
	if t.Rotation != 0 {
		s, c := math.Sincos(rad(t.Rotation))
		m = m.mul(linear{c, -s, s, c})
	}
	if t.SkewX != 0 || t.SkewY != 0 {
		m = m.mul(linear{1, math.Tan(rad(t.SkewX)), math.Tan(rad(t.SkewY)), 1})
	}
	if t.TiltX != 0 || t.TiltY != 0 {
		m = m.mul(linear{math.Cos(rad(t.TiltY)), 0, 0, math.Cos(rad(t.TiltX))})
	}
	return m
}

// deviceLayer rasterizes the device body and its screen at f output pixels
// per device unit.
func deviceLayer(n FrameNode, f float64) (*image.RGBA, error) {
	meta := n.Device
	lw, lh := px(meta.FrameWidth*f), px(meta.FrameHeight*f)

	var layer *image.RGBA
	if n.ShowDevice {
		dc := gg.NewContext(lw, lh)
		defer func() { _ = dc.Close() }()
		radius := (meta.Screen.CornerRadius + meta.Screen.X) * f
		dc.SetHexColor(BodyColor)
		dc.DrawRoundedRectangle(0, 0, float64(lw), float64(lh), radius)
		if err := dc.Fill(); err != nil {
			return nil, fmt.Errorf("device body: %w", err)
		}
		bezel := math.Max(1, 4*f)
		dc.SetHexColor(BezelColor)
		dc.SetLineWidth(bezel)
		dc.DrawRoundedRectangle(bezel/2, bezel/2, float64(lw)-bezel, float64(lh)-bezel, radius)
		if err := dc.Stroke(); err != nil {
			return nil, fmt.Errorf("device bezel: %w", err)
		}
		layer = toRGBA(dc.Image())
	} else {
		layer = image.NewRGBA(image.Rect(0, 0, lw, lh))
	}

	sm := meta.Screen
	sr := image.Rect(
		int(math.Floor(sm.X*f+0.5)), int(math.Floor(sm.Y*f+0.5)),
		int(math.Floor((sm.X+sm.Width)*f+0.5)), int(math.Floor((sm.Y+sm.Height)*f+0.5)),
	).Intersect(layer.Bounds())
	if sr.Empty() {
		return layer, nil
	}

	screen, err := screenImage(n.Image, sr.Dx(), sr.Dy())
	if err != nil {
		return nil, err
	}
	mask, err := roundedMask(sr.Dx(), sr.Dy(), sm.CornerRadius*f)
	if err != nil {
		return nil, err
	}
	draw.DrawMask(layer, sr, screen, image.Point{}, mask, image.Point{}, draw.Over)
	return layer, nil
}

// screenImage cover-fits img into a w x h screen, or returns the
// placeholder when img is nil.
func screenImage(img image.Image, w, h int) (image.Image, error) {
	if img == nil {
		return image.NewUniform(gg.Hex(PlaceholderColor).Color()), nil
	}
	b := img.Bounds()
	r, err := fit.Cover(float64(b.Dx()), float64(b.Dy()), fit.Rect{Width: float64(w), Height: float64(h)})
	if err != nil {
		return nil, err
	}
	scaled := imaging.Resize(img, px(r.Width), px(r.Height), imaging.Linear)
	// Cropping at the fitted offset keeps the overflow centered.
	at := image.Pt(int(math.Floor(-r.X+0.5)), int(math.Floor(-r.Y+0.5)))
	return imaging.Crop(scaled, image.Rectangle{Min: at, Max: at.Add(image.Pt(w, h))}), nil
}

func roundedMask(w, h int, radius float64) (image.Image, error) {
	dc := gg.NewContext(w, h)
	defer func() { _ = dc.Close() }()
	dc.SetHexColor("#ffffff")
	dc.DrawRoundedRectangle(0, 0, float64(w), float64(h), radius)
	if err := dc.Fill(); err != nil {
		return nil, fmt.Errorf("screen mask: %w", err)
	}
	return dc.Image(), nil
}

func px(v float64) int {
	return max(1, int(math.Floor(v+0.5)))
}

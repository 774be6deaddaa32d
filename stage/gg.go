// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package stage

import (
	"context"
	"fmt"
	"image"
	"image/draw"
	"math"
	"sync"

	"github.com/gogpu/gg"
	"github.com/gogpu/gg/text"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/gogpu/mockup"
	"github.com/gogpu/mockup/store"
)

// Colors used by GGRenderer.
const (
	BodyColor        = "#1c1c1e"
	BezelColor       = "#3a3a3c"
	PlaceholderColor = "#0a0a0a"
	GuideColor       = "#3b82f6"
	SelectionColor   = "#3b82f6"
)

// GGRenderer renders scenes on the CPU with gg.
//
// Background, device bodies, screen masks, text, guides and the selection
// outline are gg paths. Each device is drawn into its own layer and
// composited with an affine transform, so rotation, skew and tilt apply to
// the body and the screenshot alike.
type GGRenderer struct {
	fontsOnce sync.Once
	regular   *text.FontSource
	bold      *text.FontSource
	fontErr   error
}

// NewGGRenderer returns a renderer using the Go fonts for overlays.
func NewGGRenderer() *GGRenderer {
	return &GGRenderer{}
}

// Render implements Renderer.
func (r *GGRenderer) Render(ctx context.Context, sc *Scene, opts RenderOptions) (*image.RGBA, error) {
	w, h := opts.OutputSize()
	v := newView(opts)

	bg := gg.NewContext(w, h)
	defer func() { _ = bg.Close() }()
	r.drawBackground(bg, sc, v)
	out := toRGBA(bg.Image())

	for _, n := range sc.Frames {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if err := compositeDevice(out, n, v); err != nil {
			return nil, fmt.Errorf("%w: frame %s: %v", mockup.ErrImageDecode, n.ID, err)
		}
	}

	fg := gg.NewContext(w, h)
	defer func() { _ = fg.Close() }()
	if err := r.drawText(fg, sc, v); err != nil {
		return nil, err
	}
	if opts.Visible.Has(TagGuides) {
		drawGuides(fg, sc, v, h)
	}
	if opts.Visible.Has(TagSelection) {
		drawSelection(fg, sc, v)
	}
	draw.Draw(out, out.Bounds(), toRGBA(fg.Image()), image.Point{}, draw.Over)
	return out, nil
}

func (r *GGRenderer) drawBackground(dc *gg.Context, sc *Scene, v view) {
	b := sc.Background
	if b.Kind != store.Gradient {
		dc.ClearWithColor(gg.Hex(b.Color1))
		return
	}
	// CSS convention: 0 degrees points up, 90 points right.
	bounds := sc.Bounds()
	bw, bh := float64(bounds.Dx()), float64(bounds.Dy())
	rad := b.Angle * math.Pi / 180
	dx, dy := math.Sin(rad), -math.Cos(rad)
	half := (math.Abs(bw*dx) + math.Abs(bh*dy)) / 2
	x0, y0 := v.pt(bw/2-dx*half, bh/2-dy*half)
	x1, y1 := v.pt(bw/2+dx*half, bh/2+dy*half)

	brush := gg.NewLinearGradientBrush(x0, y0, x1, y1).
		AddColorStop(0, gg.Hex(b.Color1)).
		AddColorStop(1, gg.Hex(b.Color2))
	dc.SetFillBrush(brush)
	dc.DrawRectangle(0, 0, float64(dc.Width()), float64(dc.Height()))
	_ = dc.Fill()
}

func (r *GGRenderer) fonts() (regular, bold *text.FontSource, err error) {
	r.fontsOnce.Do(func() {
		if r.regular, r.fontErr = text.NewFontSource(goregular.TTF); r.fontErr != nil {
			return
		}
		r.bold, r.fontErr = text.NewFontSource(gobold.TTF)
	})
	return r.regular, r.bold, r.fontErr
}

func (r *GGRenderer) drawText(dc *gg.Context, sc *Scene, v view) error {
	regular, bold, err := r.fonts()
	if err != nil {
		return fmt.Errorf("stage: load fonts: %w", err)
	}
	for _, n := range sc.Frames {
		k := n.Placement().Factor
		for _, o := range [...]store.TextOverlay{n.Headline, n.Subtitle} {
			if o.Text == "" || o.FontSize <= 0 {
				continue
			}
			src := regular
			if o.Bold() {
				src = bold
			}
			dc.SetFont(src.Face(v.len(o.FontSize * k)))
			dc.SetHexColor(o.Fill)
			x, y := v.pt(n.TextAnchor(o))
			dc.DrawStringAnchored(o.Text, x, y, 0.5, 0.5)
		}
	}
	return nil
}

func drawGuides(dc *gg.Context, sc *Scene, v view, height int) {
	lines := sc.Layout.CutLines()
	if len(lines) == 0 {
		return
	}
	dc.SetHexColor(GuideColor)
	dc.SetLineWidth(math.Max(1, v.len(2)))
	dc.SetDash(v.len(12), v.len(8))
	for _, x := range lines {
		px, _ := v.pt(x, 0)
		dc.DrawLine(px, 0, px, float64(height))
		_ = dc.Stroke()
	}
	dc.ClearDash()
}

func drawSelection(dc *gg.Context, sc *Scene, v view) {
	n, ok := sc.Frame(sc.ActiveID)
	if !ok {
		return
	}
	p := n.Placement()
	lw := math.Max(1, v.len(4))
	x, y := v.pt(p.X+n.Transform.OffsetX, p.Y+n.Transform.OffsetY)
	dc.SetHexColor(SelectionColor)
	dc.SetLineWidth(lw)
	dc.DrawRoundedRectangle(x-lw, y-lw, v.len(p.Width)+2*lw, v.len(p.Height)+2*lw,
		v.len(n.Device.Screen.CornerRadius*p.Factor))
	_ = dc.Stroke()
}

// toRGBA returns img as *image.RGBA, converting when needed.
func toRGBA(img image.Image) *image.RGBA {
	if rgba, ok := img.(*image.RGBA); ok && rgba.Bounds().Min == (image.Point{}) {
		return rgba
	}
	b := img.Bounds()
	out := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(out, out.Bounds(), img, b.Min, draw.Src)
	return out
}

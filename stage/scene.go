// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package stage

import (
	"fmt"
	"image"
	"math"

	"github.com/gogpu/mockup/device"
	"github.com/gogpu/mockup/imageload"
	"github.com/gogpu/mockup/layout"
	"github.com/gogpu/mockup/store"
)

// ImageSource reports the load status of a frame's screenshot.
// *imageload.Registry implements it.
type ImageSource interface {
	Status(frameID string) imageload.Status
}

// Scene is everything a Renderer needs to draw one strip.
type Scene struct {
	Layout     layout.Layout
	Background store.Background
	ActiveID   string
	Frames     []FrameNode
}

// FrameNode is one frame placed on the strip.
type FrameNode struct {
	ID         string
	Slice      layout.Slice
	Device     device.Meta
	Transform  store.Transform
	ShowDevice bool
	Headline   store.TextOverlay
	Subtitle   store.TextOverlay

	// Image is the current screenshot, nil unless its load state is Loaded.
	// A nil image renders as the neutral placeholder.
	Image image.Image
	Load  imageload.State
}

// Build turns a store snapshot into a scene. Geometry is computed with
// layout.Compute from the snapshot's preset and canvas size. images may be
// nil, in which case every screen renders as a placeholder.
func Build(snap store.Snapshot, images ImageSource) (*Scene, error) {
	l, err := snap.Layout()
	if err != nil {
		return nil, err
	}
	sc := &Scene{
		Layout:     l,
		Background: snap.Background,
		ActiveID:   snap.ActiveID,
		Frames:     make([]FrameNode, 0, len(snap.Frames)),
	}
	for i, f := range snap.Frames {
		meta, err := device.Lookup(f.Device)
		if err != nil {
			return nil, fmt.Errorf("frame %s: %w", f.ID, err)
		}
		n := FrameNode{
			ID:         f.ID,
			Slice:      l.Slices[i],
			Device:     meta,
			Transform:  f.Transform,
			ShowDevice: f.ShowDevice,
			Headline:   f.Headline,
			Subtitle:   f.Subtitle,
		}
		if images != nil {
			st := images.Status(f.ID)
			n.Load = st.State
			// A status for an older source is never shown.
			if st.Ready() && st.Source == f.Screenshot {
				n.Image = st.Image
			}
		}
		sc.Frames = append(sc.Frames, n)
	}
	return sc, nil
}

// Bounds returns the strip rectangle.
func (sc *Scene) Bounds() image.Rectangle { return sc.Layout.Bounds() }

// Frame returns the node with the given id.
func (sc *Scene) Frame(id string) (FrameNode, bool) {
	for _, n := range sc.Frames {
		if n.ID == id {
			return n, true
		}
	}
	return FrameNode{}, false
}

// Placement is the untransformed device rectangle inside a slice, in strip
// coordinates, and the factor from device units to strip pixels.
type Placement struct {
	X, Y, Width, Height float64
	Factor              float64
}

// Center returns the center of the placement.
func (p Placement) Center() (x, y float64) {
	return p.X + p.Width/2, p.Y + p.Height/2
}

// Placement positions the device so that a slice of the automatic canvas
// size holds it at factor 1 with the standard padding. Other slice sizes
// scale the padded box uniformly to fit and center it.
func (n FrameNode) Placement() Placement {
	autoW, autoH := device.AutoCanvasSize(n.Device)
	k := math.Min(n.Slice.Width/autoW, n.Slice.Height/autoH)
	boxX := n.Slice.X + (n.Slice.Width-autoW*k)/2
	boxY := n.Slice.Y + (n.Slice.Height-autoH*k)/2
	return Placement{
		X:      boxX + (autoW-n.Device.FrameWidth)/2*k,
		Y:      boxY + device.PaddingTop*k,
		Width:  n.Device.FrameWidth * k,
		Height: n.Device.FrameHeight * k,
		Factor: k,
	}
}

// TextAnchor returns the strip position of an overlay's anchor point.
// Overlay positions are fractions of the slice.
func (n FrameNode) TextAnchor(o store.TextOverlay) (x, y float64) {
	return n.Slice.X + o.X*n.Slice.Width, n.Slice.Y + o.Y*n.Slice.Height
}

// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package mockup composes device mockup frames into a single wide strip and
// exports it as one image or as a set of per-frame slices.
//
// # Overview
//
// A strip is a row of frames. Each frame is a device silhouette with a
// screenshot fitted into its screen and two text overlays. The packages are
// organized leaves first:
//
//   - layout: pure slice geometry for the cut presets (even, overlap, hero)
//   - fit: cover-fit of a screenshot onto a device screen mask
//   - device: static device metadata and canvas auto-sizing
//   - store: the ordered frame list, active frame, preset and canvas size
//   - imageload: per-frame asynchronous screenshot loading
//   - stage: the render surface and its gg renderer adapter
//   - export: the export protocol, PNG and ZIP packaging
//   - session: the host loop tying the above together
//
// # Quick Start
//
//	s := session.New()
//	defer s.Close()
//	id := s.Store().ActiveID()
//	_ = s.Edit(func(st *store.Store) error { return st.SetScreenshot(id, "screen.png") })
//	_ = s.WaitImages(ctx)
//	res, err := s.Export(ctx, export.Batch)
//	if err != nil {
//	    return err
//	}
//	path, err := res.Save("out")
//
// # Geometry
//
// Layout and fit are rendering-technology agnostic. Only the stage renderer
// touches pixels; everything it draws is derived from the computed geometry,
// so what is shown and what is exported agree to the pixel.
//
// # Logging
//
// The library is silent by default. Call [SetLogger] to enable output.
package mockup

// Version information
const (
	// Version is the current version of the library
	Version = "0.3.0"

	// VersionMajor is the major version
	VersionMajor = 0

	// VersionMinor is the minor version
	VersionMinor = 3

	// VersionPatch is the patch version
	VersionPatch = 0
)

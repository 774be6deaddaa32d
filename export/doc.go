// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package export rasterizes a strip and packages it for download.
//
// Pipeline.Export runs a fixed protocol against a Surface: it records the
// display scale and the visibility of editor-only elements, forces unit
// scale, hides guides and the selection outline, recomputes the strip
// geometry, and rasterizes. The recorded state is restored before Export
// returns, whether it succeeds, fails, is cancelled, or panics.
//
// In Single mode the result is one PNG. In Batch mode the strip is
// rendered once and every slice is cropped from that raster, so slices
// share one render pass; the slices are packaged as a ZIP archive with
// entries 1.png to N.png. File names come from the capture time.
package export

// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package stage is the render surface of the composer.
//
// A Stage holds the current Scene, a display scale, and the visibility of
// editor-only elements (cut-line guides and the selection outline). Pixels
// come from a Renderer; GGRenderer draws with github.com/gogpu/gg and
// composites transformed device layers with golang.org/x/image/draw.
//
// Scenes are built from a store snapshot by Build. Geometry always comes
// from package layout; the renderer only consumes it.
//
//	st := stage.New(stage.WithScale(0.25))
//	sc, err := stage.Build(snap, registry)
//	if err != nil {
//		return err
//	}
//	st.SetScene(sc)
//	img, err := st.Display(ctx)
package stage

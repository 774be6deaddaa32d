// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package mockup

import "errors"

// Error taxonomy shared by all sub-packages. Sub-packages wrap these with
// context using fmt.Errorf("%w: ...") so callers can match with errors.Is.
var (
	// ErrInvalidLayoutInput reports a caller contract violation: non-positive
	// or non-finite dimensions, or a malformed frame list.
	ErrInvalidLayoutInput = errors.New("mockup: invalid layout input")

	// ErrImageDecode reports a per-frame screenshot load failure or a
	// rasterization failure during export.
	ErrImageDecode = errors.New("mockup: image decode failure")

	// ErrExportNotReady is returned when export is invoked before the render
	// surface is available. No state is mutated in that case.
	ErrExportNotReady = errors.New("mockup: render surface not ready")
)

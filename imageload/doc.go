// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package imageload loads frame screenshots asynchronously.
//
// Each frame has a Slot with four states: Idle, Loading, Loaded and Failed.
// A new source supersedes the previous one; the superseded decode may still
// finish, but its result is discarded, so a render never shows a stale
// image. A failed load is terminal for its source and is rendered as a
// neutral placeholder; it never blocks other frames.
package imageload

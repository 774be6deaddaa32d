// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package export

import (
	"bytes"
	"fmt"
	"image"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/klauspost/compress/flate"
	"github.com/klauspost/compress/zip"

	"github.com/gogpu/mockup/layout"
)

// Media types of export payloads.
const (
	MediaPNG = "image/png"
	MediaZIP = "application/zip"
)

// FullStripEntry is the archive entry holding the uncut strip.
const FullStripEntry = "_full.png"

// TimestampLayout formats capture times as ddmmyyhhmm.
const TimestampLayout = "0201061504"

// Result is a finished export.
type Result struct {
	Mode Mode

	// Name is the suggested file name, derived from Captured.
	Name string

	// MediaType is MediaPNG or MediaZIP.
	MediaType string

	// Data is the encoded payload.
	Data []byte

	// Entries lists archive entry names in order. Empty for Single.
	Entries []string

	// Images are the encoded rasters: the strip in Single mode, one per
	// frame in Batch mode.
	Images []*image.RGBA

	Layout   layout.Layout
	Captured time.Time
}

// WriteTo writes the payload to w.
func (r *Result) WriteTo(w io.Writer) (int64, error) {
	n, err := w.Write(r.Data)
	return int64(n), err
}

// Save writes the payload into dir under r.Name and returns the path.
func (r *Result) Save(dir string) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("export: %w", err)
	}
	path := filepath.Join(dir, r.Name)
	if err := os.WriteFile(path, r.Data, 0o644); err != nil { //nolint:gosec // exported images are not secret
		return "", fmt.Errorf("export: %w", err)
	}
	return path, nil
}

// FileName returns the name of an export captured at t.
func FileName(mode Mode, frames int, t time.Time) string {
	ts := t.Format(TimestampLayout)
	switch {
	case mode == Batch && frames > 1:
		return ts + "-mockups.zip"
	case frames == 1:
		return ts + "-mockup.png"
	default:
		return ts + "-canvas.png"
	}
}

// EncodePNG encodes img as PNG.
func EncodePNG(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("export: encode png: %w", err)
	}
	return buf.Bytes(), nil
}

func (p *Pipeline) packSingle(res *Result) error {
	data, err := EncodePNG(res.Images[0])
	if err != nil {
		return err
	}
	res.Name = FileName(Single, res.Layout.Len(), res.Captured)
	res.MediaType = MediaPNG
	res.Data = data
	return nil
}

// packBatch builds the archive in memory. Nothing is returned unless every
// entry was written.
func (p *Pipeline) packBatch(res *Result, strip *image.RGBA) error {
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	method := zip.Deflate
	if p.level == flate.NoCompression {
		method = zip.Store
	} else {
		level := p.level
		zw.RegisterCompressor(zip.Deflate, func(w io.Writer) (io.WriteCloser, error) {
			return flate.NewWriter(w, level)
		})
	}

	entries := make([]string, 0, len(res.Images)+1)
	add := func(name string, img image.Image) error {
		data, err := EncodePNG(img)
		if err != nil {
			return err
		}
		w, err := zw.CreateHeader(&zip.FileHeader{Name: name, Method: method, Modified: res.Captured})
		if err != nil {
			return fmt.Errorf("export: zip entry %s: %w", name, err)
		}
		if _, err := w.Write(data); err != nil {
			return fmt.Errorf("export: zip entry %s: %w", name, err)
		}
		entries = append(entries, name)
		return nil
	}

	for i, img := range res.Images {
		if err := add(strconv.Itoa(i+1)+".png", img); err != nil {
			return err
		}
	}
	if p.fullStrip {
		if err := add(FullStripEntry, strip); err != nil {
			return err
		}
	}
	if err := zw.Close(); err != nil {
		return fmt.Errorf("export: zip: %w", err)
	}

	res.Name = FileName(Batch, len(res.Images), res.Captured)
	res.MediaType = MediaZIP
	res.Data = buf.Bytes()
	res.Entries = entries
	return nil
}

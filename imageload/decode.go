// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package imageload

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"image"
	_ "image/gif"  // register GIF decoder
	_ "image/jpeg" // register JPEG decoder
	_ "image/png"  // register PNG decoder
	"net/url"
	"os"
	"strings"

	_ "golang.org/x/image/bmp"  // register BMP decoder
	_ "golang.org/x/image/tiff" // register TIFF decoder
	_ "golang.org/x/image/webp" // register WebP decoder

	"github.com/gogpu/mockup"
)

// Decoder turns a screenshot source into an image.
// Implementations should return promptly once ctx is cancelled.
type Decoder interface {
	Decode(ctx context.Context, src string) (image.Image, error)
}

// DecoderFunc adapts a function to the Decoder interface.
type DecoderFunc func(ctx context.Context, src string) (image.Image, error)

// Decode implements Decoder.
func (f DecoderFunc) Decode(ctx context.Context, src string) (image.Image, error) {
	return f(ctx, src)
}

// SourceDecoder decodes data URLs ("data:image/png;base64,...") and local
// file paths. PNG, JPEG, GIF, WebP, BMP and TIFF are supported.
type SourceDecoder struct{}

// Decode implements Decoder.
func (SourceDecoder) Decode(ctx context.Context, src string) (image.Image, error) {
	data, err := readSource(src)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", mockup.ErrImageDecode, err)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", mockup.ErrImageDecode, describe(src), err)
	}
	mockup.Logger().Debug("imageload: decoded",
		"source", describe(src), "format", format,
		"width", img.Bounds().Dx(), "height", img.Bounds().Dy())
	return img, nil
}

func readSource(src string) ([]byte, error) {
	if rest, ok := strings.CutPrefix(src, "data:"); ok {
		meta, payload, found := strings.Cut(rest, ",")
		if !found {
			return nil, fmt.Errorf("malformed data URL")
		}
		if strings.HasSuffix(meta, ";base64") {
			return base64.StdEncoding.DecodeString(payload)
		}
		s, err := url.PathUnescape(payload)
		return []byte(s), err
	}
	path := src
	if u, err := url.Parse(src); err == nil && u.Scheme == "file" {
		path = u.Path
	}
	return os.ReadFile(path) //nolint:gosec // path is user-provided intentionally
}

// describe shortens data URLs for logs and errors.
func describe(src string) string {
	if strings.HasPrefix(src, "data:") {
		meta, _, _ := strings.Cut(src, ",")
		return meta + ",…"
	}
	return src
}

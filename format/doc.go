// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package format defines the pixel formats a window buffer can be
// negotiated with and the byte width of each.
//
// The table is closed: every declared PixelFormat has exactly one
// bytes-per-pixel entry, and BytesPerPixel only fails for values outside
// the enumeration.
//
//	bpp, err := format.BytesPerPixel(format.RGBA8888) // 4, nil
//
// Formats with a WebGPU counterpart expose it through TextureFormat so
// buffers can be described to gogpu consumers without a second table.
package format

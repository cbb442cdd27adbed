// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package format

import (
	"errors"
	"fmt"
	"strings"

	"github.com/gogpu/gputypes"
)

// PixelFormat identifies the memory layout of one pixel in a window buffer.
//
// Values match the NDK AHARDWAREBUFFER_FORMAT_* constants so they can be
// handed to the platform unchanged.
type PixelFormat uint32

const (
	// RGBA8888 is 8 bits per channel, red first, with alpha.
	RGBA8888 PixelFormat = 0x01

	// RGBX8888 is RGBA8888 with the alpha byte ignored.
	RGBX8888 PixelFormat = 0x02

	// RGB888 is 8 bits per channel without alpha (3 bytes per pixel).
	RGB888 PixelFormat = 0x03

	// RGB565 is 16-bit packed rrrrrggggggbbbbb, little-endian.
	RGB565 PixelFormat = 0x04

	// RGBA16F is four 16-bit floats.
	RGBA16F PixelFormat = 0x16

	// Blob is an opaque data buffer.
	Blob PixelFormat = 0x21

	// YCbCr420 is 8-bit 4:2:0 YCbCr.
	YCbCr420 PixelFormat = 0x23

	// RGBA1010102 is 10 bits per color channel and 2 bits of alpha.
	RGBA1010102 PixelFormat = 0x2b

	// D16 is a 16-bit depth format.
	D16 PixelFormat = 0x30

	// D24 is a 24-bit depth format.
	D24 PixelFormat = 0x31

	// D24S8 is 24-bit depth with 8-bit stencil.
	D24S8 PixelFormat = 0x32

	// D32F is a 32-bit float depth format.
	D32F PixelFormat = 0x33

	// D32FS8 is 32-bit float depth with 8-bit stencil.
	D32FS8 PixelFormat = 0x34

	// S8 is an 8-bit stencil format.
	S8 PixelFormat = 0x35
)

type formatInfo struct {
	name    string
	bpp     int
	texture gputypes.TextureFormat
}

// table is the single source of truth for every declared format.
// Widths for Blob, YCbCr420 and the packed depth/stencil formats are the
// values used when these buffers are addressed as plain pixel arrays.
var table = map[PixelFormat]formatInfo{
	RGBA8888:    {"rgba8888", 4, gputypes.TextureFormatRGBA8Unorm},
	RGBX8888:    {"rgbx8888", 4, gputypes.TextureFormatRGBA8Unorm},
	RGB888:      {"rgb888", 3, gputypes.TextureFormatUndefined},
	RGB565:      {"rgb565", 2, gputypes.TextureFormatUndefined},
	RGBA16F:     {"rgba16f", 8, gputypes.TextureFormatRGBA16Float},
	Blob:        {"blob", 4, gputypes.TextureFormatUndefined},
	YCbCr420:    {"ycbcr420", 3, gputypes.TextureFormatUndefined},
	RGBA1010102: {"rgba1010102", 4, gputypes.TextureFormatRGB10A2Unorm},
	D16:         {"d16", 2, gputypes.TextureFormatDepth16Unorm},
	D24:         {"d24", 3, gputypes.TextureFormatDepth24Plus},
	D24S8:       {"d24s8", 3, gputypes.TextureFormatDepth24PlusStencil8},
	D32F:        {"d32f", 4, gputypes.TextureFormatDepth32Float},
	D32FS8:      {"d32fs8", 4, gputypes.TextureFormatDepth32FloatStencil8},
	S8:          {"s8", 1, gputypes.TextureFormatStencil8},
}

// order is the declaration order returned by Formats.
var order = []PixelFormat{
	RGBA8888, RGBX8888, RGB888, RGB565, RGBA16F, Blob, YCbCr420,
	RGBA1010102, D16, D24, D24S8, D32F, D32FS8, S8,
}

// ErrUnsupportedFormat is matched by errors returned for formats that have
// no entry in the table.
var ErrUnsupportedFormat = errors.New("format: unsupported pixel format")

// UnsupportedFormatError reports the offending format value.
type UnsupportedFormatError struct {
	Format PixelFormat
}

func (e *UnsupportedFormatError) Error() string {
	return fmt.Sprintf("format: unsupported pixel format 0x%x", uint32(e.Format))
}

// Unwrap returns ErrUnsupportedFormat.
func (e *UnsupportedFormatError) Unwrap() error { return ErrUnsupportedFormat }

// Formats returns every declared format in declaration order.
func Formats() []PixelFormat {
	out := make([]PixelFormat, len(order))
	copy(out, order)
	return out
}

// BytesPerPixel returns the byte width of one pixel in format f.
func BytesPerPixel(f PixelFormat) (int, error) {
	info, ok := table[f]
	if !ok {
		return 0, &UnsupportedFormatError{Format: f}
	}
	return info.bpp, nil
}

// MustBytesPerPixel is like BytesPerPixel but panics on unknown formats.
func MustBytesPerPixel(f PixelFormat) int {
	n, err := BytesPerPixel(f)
	if err != nil {
		panic(err)
	}
	return n
}

// Valid reports whether f is a declared format.
func (f PixelFormat) Valid() bool {
	_, ok := table[f]
	return ok
}

// String returns the lower-case format name, or a hex value for unknown formats.
func (f PixelFormat) String() string {
	if info, ok := table[f]; ok {
		return info.name
	}
	return fmt.Sprintf("PixelFormat(0x%x)", uint32(f))
}

// TextureFormat returns the WebGPU texture format with the same layout,
// or gputypes.TextureFormatUndefined when there is none.
func (f PixelFormat) TextureFormat() gputypes.TextureFormat {
	return table[f].texture
}

// IsDepthStencil reports whether f holds depth or stencil data rather than color.
func (f PixelFormat) IsDepthStencil() bool {
	tf := f.TextureFormat()
	if tf == gputypes.TextureFormatUndefined {
		return false
	}
	return tf.IsDepthStencil()
}

// FromTextureFormat returns the pixel format matching a WebGPU texture
// format. RGBA8Unorm maps to RGBA8888.
func FromTextureFormat(tf gputypes.TextureFormat) (PixelFormat, bool) {
	if tf == gputypes.TextureFormatUndefined {
		return 0, false
	}
	for _, f := range order {
		if table[f].texture == tf {
			return f, true
		}
	}
	return 0, false
}

// Parse returns the format with the given name, as printed by String, or
// the format matching a WebGPU texture format name such as "RGBA8Unorm".
// Matching is case-insensitive.
func Parse(name string) (PixelFormat, error) {
	n := strings.ToLower(strings.TrimSpace(name))
	for _, f := range order {
		if table[f].name == n {
			return f, nil
		}
	}
	for _, f := range order {
		tf := table[f].texture
		if tf == gputypes.TextureFormatUndefined || !strings.EqualFold(tf.String(), n) {
			continue
		}
		if pf, ok := FromTextureFormat(tf); ok {
			return pf, nil
		}
	}
	return 0, fmt.Errorf("format: unknown pixel format %q", name)
}

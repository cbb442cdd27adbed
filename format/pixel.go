// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package format

import (
	"fmt"
	"image/color"
)

// Encode packs c into the byte sequence for one pixel of format f.
// Only displayable 8-bit and 565 formats are supported; the channels are
// written as stored, with no color-space conversion.
func Encode(f PixelFormat, c color.Color) ([]byte, error) {
	rgba := color.RGBAModel.Convert(c).(color.RGBA)
	switch f {
	case RGBA8888:
		return []byte{rgba.R, rgba.G, rgba.B, rgba.A}, nil
	case RGBX8888:
		return []byte{rgba.R, rgba.G, rgba.B, 0xFF}, nil
	case RGB888:
		return []byte{rgba.R, rgba.G, rgba.B}, nil
	case RGB565:
		p := rgb565(rgba.R, rgba.G, rgba.B)
		return []byte{byte(p), byte(p >> 8)}, nil
	}
	if !f.Valid() {
		return nil, &UnsupportedFormatError{Format: f}
	}
	return nil, fmt.Errorf("format: cannot encode color as %s", f)
}

// Decode reads one pixel of format f from px. Depth and stencil formats
// decode as gray from the most significant byte of their depth (or stencil)
// sample. Other formats without a color interpretation decode their first
// byte as gray so buffers of any format can still be previewed.
func Decode(f PixelFormat, px []byte) color.RGBA {
	switch f {
	case RGBA8888:
		if len(px) >= 4 {
			return color.RGBA{px[0], px[1], px[2], px[3]}
		}
	case RGBX8888, RGB888:
		if len(px) >= 3 {
			return color.RGBA{px[0], px[1], px[2], 0xFF}
		}
	case RGB565:
		if len(px) >= 2 {
			r, g, b := rgb888From565(uint16(px[0]) | uint16(px[1])<<8)
			return color.RGBA{r, g, b, 0xFF}
		}
	}
	if len(px) == 0 {
		return color.RGBA{}
	}
	if f.IsDepthStencil() {
		// Depth samples are little-endian; the last byte is the most significant.
		v := px[len(px)-1]
		return color.RGBA{v, v, v, 0xFF}
	}
	return color.RGBA{px[0], px[0], px[0], 0xFF}
}

func rgb565(r, g, b uint8) uint16 {
	rr := uint16(r>>3) & 0x1F
	gg := uint16(g>>2) & 0x3F
	bb := uint16(b>>3) & 0x1F
	return (rr << 11) | (gg << 5) | bb
}

func rgb888From565(p uint16) (r, g, b uint8) {
	rr := (p >> 11) & 0x1F
	gg := (p >> 5) & 0x3F
	bb := p & 0x1F

	r = uint8((rr * 255) / 31)
	g = uint8((gg * 255) / 63)
	b = uint8((bb * 255) / 31)
	return r, g, b
}

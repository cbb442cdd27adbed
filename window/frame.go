// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package window

import (
	"image"

	"github.com/gogpu/winblit/format"
)

// Frame is a presented buffer as handed to post hooks.
// Pix belongs to the receiver and is not modified after the hook returns.
type Frame struct {
	Width  int
	Height int
	Stride int
	Format format.PixelFormat
	Pix    []byte
}

// Image decodes the frame into an RGBA image, dropping row padding.
func (f Frame) Image() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, f.Width, f.Height))
	bpp, err := format.BytesPerPixel(f.Format)
	if err != nil {
		return img
	}
	for y := 0; y < f.Height; y++ {
		row := y * f.Stride * bpp
		for x := 0; x < f.Width; x++ {
			i := row + x*bpp
			if i+bpp > len(f.Pix) {
				return img
			}
			img.SetRGBA(x, y, format.Decode(f.Format, f.Pix[i:i+bpp]))
		}
	}
	return img
}

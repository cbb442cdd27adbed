// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package blit

import (
	"errors"
	"fmt"

	"github.com/gogpu/winblit/format"
	"github.com/gogpu/winblit/window"
)

// Color is the byte sequence of one pixel, written verbatim. Its length
// must equal the bytes-per-pixel of the target format.
type Color []byte

// Errors returned by Fill, Clamp and Validate.
var (
	ErrInvalidRect  = errors.New("blit: rectangle outside buffer geometry")
	ErrColorSize    = errors.New("blit: color length does not match pixel size")
	ErrStride       = errors.New("blit: stride smaller than width")
	ErrShortBuffer  = errors.New("blit: buffer shorter than stride*height*bpp")
	ErrOutOfBounds  = errors.New("blit: write outside buffer")
	ErrNilBuffer    = errors.New("blit: nil buffer")
	errNegativeSize = errors.New("blit: negative geometry")
)

// Offset returns the byte offset of pixel (x, y), both zero-based, in a
// row-major buffer with stride pixels per row.
func Offset(x, y, stride, bpp int) int {
	return (y*stride + x) * bpp
}

// OffsetOneBased returns the byte offset of the pixel in row i, column j,
// both one-based: (j + (i-1)*stride - 1) * bpp.
func OffsetOneBased(i, j, stride, bpp int) int {
	return (j + (i-1)*stride - 1) * bpp
}

// Validate reports ErrInvalidRect unless 0 <= Left < Right <= width and
// 0 <= Top < Bottom <= height.
func Validate(r window.Rect, width, height int) error {
	if r.Left < 0 || r.Top < 0 || r.Right > width || r.Bottom > height || r.Empty() {
		return fmt.Errorf("%w: %v in %dx%d", ErrInvalidRect, r, width, height)
	}
	return nil
}

// Clamp intersects r with the width x height geometry. It returns
// ErrInvalidRect when nothing is left.
func Clamp(r window.Rect, width, height int) (window.Rect, error) {
	c := window.Rect{
		Top:    min(max(r.Top, 0), height),
		Left:   min(max(r.Left, 0), width),
		Bottom: min(max(r.Bottom, 0), height),
		Right:  min(max(r.Right, 0), width),
	}
	if c.Empty() {
		return c, fmt.Errorf("%w: %v clamps to nothing in %dx%d", ErrInvalidRect, r, width, height)
	}
	return c, nil
}

// Fill writes c into every pixel of r in buf.
//
// Fill checks the whole request before the first write and writes nothing
// when a check fails: the color must be one pixel wide, the stride at
// least the width, Bits at least Stride*Height*bpp bytes, and r inside the
// buffer. Each row segment is checked against the span again before it is
// written.
func Fill(buf *window.Buffer, r window.Rect, c Color) error {
	p, err := prepare(buf, r, c)
	if err != nil {
		return err
	}
	return p.rows(r.Top, r.Bottom)
}

// plan is a validated fill request.
type plan struct {
	bits   []byte
	stride int
	bpp    int
	left   int
	right  int
	color  Color
}

func prepare(buf *window.Buffer, r window.Rect, c Color) (*plan, error) {
	if buf == nil {
		return nil, ErrNilBuffer
	}
	if buf.Width < 0 || buf.Height < 0 {
		return nil, errNegativeSize
	}
	bpp, err := format.BytesPerPixel(buf.Format)
	if err != nil {
		return nil, err
	}
	if len(c) != bpp {
		return nil, fmt.Errorf("%w: %d bytes for %s (%d)", ErrColorSize, len(c), buf.Format, bpp)
	}
	if buf.Stride < buf.Width {
		return nil, fmt.Errorf("%w: stride %d, width %d", ErrStride, buf.Stride, buf.Width)
	}
	span := buf.Stride * buf.Height * bpp
	if len(buf.Bits) < span {
		return nil, fmt.Errorf("%w: have %d, need %d", ErrShortBuffer, len(buf.Bits), span)
	}
	if err := Validate(r, buf.Width, buf.Height); err != nil {
		return nil, err
	}
	return &plan{
		bits:   buf.Bits[:span],
		stride: buf.Stride,
		bpp:    bpp,
		left:   r.Left,
		right:  r.Right,
		color:  c,
	}, nil
}

// rows fills rows [top, bottom) between the plan's columns.
func (p *plan) rows(top, bottom int) error {
	rowBytes := (p.right - p.left) * p.bpp
	for y := top; y < bottom; y++ {
		start := Offset(p.left, y, p.stride, p.bpp)
		end := start + rowBytes
		if start < 0 || end > len(p.bits) {
			return fmt.Errorf("%w: row %d bytes [%d,%d) of %d", ErrOutOfBounds, y, start, end, len(p.bits))
		}
		fillRow(p.bits[start:end], p.color)
	}
	return nil
}

// fillRow repeats c across row, doubling the written prefix each step.
func fillRow(row []byte, c Color) {
	if len(row) == 0 {
		return
	}
	n := copy(row, c)
	for n < len(row) {
		n += copy(row[n:], row[:n])
	}
}

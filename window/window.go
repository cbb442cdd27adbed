// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package window

import (
	"context"
	"errors"
	"fmt"
	"image"

	"github.com/gogpu/gputypes"

	"github.com/gogpu/winblit/format"
)

// Window is a borrowed handle to a platform-owned drawable surface.
//
// The methods mirror the native window API: geometry queries, a reference
// count that keeps the surface alive during a render, and the
// lock/unlock-and-post protocol for CPU access to the pixel buffer.
//
// Window implementations are not expected to be safe for concurrent use.
// Callers serialize render cycles (see winblit.Slot).
type Window interface {
	// Width returns the current surface width in pixels.
	// It may change between calls when the platform resizes the surface.
	Width() int

	// Height returns the current surface height in pixels.
	Height() int

	// Acquire increments the platform reference count.
	Acquire()

	// Release decrements the platform reference count. It must be called
	// exactly once for each Acquire.
	Release()

	// SetBuffersGeometry sets the size and format of buffers returned by
	// subsequent Lock calls. Zero width and height select the window size.
	SetBuffersGeometry(width, height int, f format.PixelFormat)

	// Lock locks the next buffer for CPU writes and fills buf.
	// A negative status means the lock failed and buf is unspecified.
	// dirty may be nil to cover the whole window.
	Lock(buf *Buffer, dirty *Rect) int32

	// UnlockAndPost unlocks the buffer locked by Lock and queues it for
	// display. A negative status means the post failed.
	UnlockAndPost() int32
}

// Runner is implemented by windows that own an event loop, such as a
// desktop window or a terminal. Run blocks until the loop ends or ctx is
// canceled.
type Runner interface {
	Run(ctx context.Context) error
}

// Status codes returned by Lock and UnlockAndPost. Failures are negative
// errno values, as on the platform.
const (
	StatusOK       int32 = 0
	StatusBusy     int32 = -16
	StatusNoDevice int32 = -19
	StatusInvalid  int32 = -22
)

// Buffer describes a locked pixel buffer.
//
// Bits aliases memory owned by the window. It is valid only until the
// matching UnlockAndPost and must not be retained past it.
type Buffer struct {
	// Width and Height are the buffer size in pixels.
	Width  int
	Height int

	// Stride is the number of pixel slots per row, at least Width.
	Stride int

	// Format is the negotiated pixel format.
	Format format.PixelFormat

	// Bits is the pixel memory, at least Stride*Height*bytes-per-pixel long.
	Bits []byte
}

// Span returns the number of bytes the buffer geometry addresses.
func (b *Buffer) Span() (int, error) {
	bpp, err := format.BytesPerPixel(b.Format)
	if err != nil {
		return 0, err
	}
	return b.Stride * b.Height * bpp, nil
}

// Extent returns the buffer size as a single-layer WebGPU extent.
func (b *Buffer) Extent() gputypes.Extent3D {
	return gputypes.NewExtent2D(uint32(max(b.Width, 0)), uint32(max(b.Height, 0))) //nolint:gosec // clamped above
}

// Rect is a pixel rectangle in window coordinates.
//
// The rectangle is half-open: it covers rows Top..Bottom-1 and columns
// Left..Right-1. In one-based terms that is rows Top+1..Bottom and columns
// Left+1..Right.
type Rect struct {
	Top    int
	Left   int
	Bottom int
	Right  int
}

// Full returns the rectangle covering a width x height window.
func Full(width, height int) Rect {
	return Rect{Top: 0, Left: 0, Bottom: height, Right: width}
}

// Dx returns the rectangle width.
func (r Rect) Dx() int { return r.Right - r.Left }

// Dy returns the rectangle height.
func (r Rect) Dy() int { return r.Bottom - r.Top }

// Empty reports whether the rectangle covers no pixels.
func (r Rect) Empty() bool { return r.Left >= r.Right || r.Top >= r.Bottom }

// Image converts r to an image.Rectangle.
func (r Rect) Image() image.Rectangle {
	return image.Rect(r.Left, r.Top, r.Right, r.Bottom)
}

// FromImage converts an image.Rectangle to a Rect.
func FromImage(ir image.Rectangle) Rect {
	ir = ir.Canon()
	return Rect{Top: ir.Min.Y, Left: ir.Min.X, Bottom: ir.Max.Y, Right: ir.Max.X}
}

func (r Rect) String() string {
	return fmt.Sprintf("{top:%d left:%d bottom:%d right:%d}", r.Top, r.Left, r.Bottom, r.Right)
}

// Errors.
var (
	// ErrLockFailed is matched by errors for a negative Lock status.
	ErrLockFailed = errors.New("window: lock failed")

	// ErrPresentFailed is matched by errors for a negative UnlockAndPost status.
	ErrPresentFailed = errors.New("window: unlock and post failed")

	// ErrLockState is returned when a Lock operation is called out of order.
	ErrLockState = errors.New("window: invalid lock state")
)

// StatusError carries the status code of a failed platform call.
type StatusError struct {
	Op     string
	Status int32
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("window: %s failed with status %d", e.Op, e.Status)
}

// Unwrap returns ErrLockFailed or ErrPresentFailed depending on Op.
func (e *StatusError) Unwrap() error {
	if e.Op == opLock {
		return ErrLockFailed
	}
	return ErrPresentFailed
}

const (
	opLock          = "lock"
	opUnlockAndPost = "unlockAndPost"
)

// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

//go:build android && cgo

package android

/*
#cgo LDFLAGS: -landroid
#include <android/native_window.h>
*/
import "C"

import (
	"unsafe"

	"github.com/gogpu/winblit"
	"github.com/gogpu/winblit/format"
	"github.com/gogpu/winblit/window"
)

// Window is an ANativeWindow.
type Window struct {
	ptr *C.ANativeWindow
}

// FromPointer wraps a native ANativeWindow pointer. It panics on nil.
func FromPointer(p unsafe.Pointer) *Window {
	if p == nil {
		panic("android: nil ANativeWindow")
	}
	return &Window{ptr: (*C.ANativeWindow)(p)}
}

// Pointer returns the native handle.
func (w *Window) Pointer() unsafe.Pointer {
	return unsafe.Pointer(w.ptr)
}

func (w *Window) Width() int  { return int(C.ANativeWindow_getWidth(w.ptr)) }
func (w *Window) Height() int { return int(C.ANativeWindow_getHeight(w.ptr)) }
func (w *Window) Acquire()    { C.ANativeWindow_acquire(w.ptr) }
func (w *Window) Release()    { C.ANativeWindow_release(w.ptr) }

// Format returns the window's current pixel format.
func (w *Window) Format() format.PixelFormat {
	return format.PixelFormat(C.ANativeWindow_getFormat(w.ptr))
}

func (w *Window) SetBuffersGeometry(width, height int, f format.PixelFormat) {
	s := C.ANativeWindow_setBuffersGeometry(w.ptr, C.int32_t(width), C.int32_t(height), C.int32_t(f))
	if s < 0 {
		winblit.Logger().Warn("android: setBuffersGeometry failed", "status", int32(s))
	}
}

func (w *Window) Lock(buf *window.Buffer, dirty *window.Rect) int32 {
	var nb C.ANativeWindow_Buffer
	var bounds *C.ARect
	if dirty != nil {
		bounds = &C.ARect{
			left:   C.int32_t(dirty.Left),
			top:    C.int32_t(dirty.Top),
			right:  C.int32_t(dirty.Right),
			bottom: C.int32_t(dirty.Bottom),
		}
	}

	s := int32(C.ANativeWindow_lock(w.ptr, &nb, bounds))
	if s < 0 {
		return s
	}

	f := format.PixelFormat(nb.format)
	bpp, err := format.BytesPerPixel(f)
	if err != nil || nb.bits == nil {
		// The buffer is locked on the platform side and must still be posted.
		*buf = window.Buffer{Width: int(nb.width), Height: int(nb.height), Stride: int(nb.stride), Format: f}
		return s
	}

	n := int(nb.stride) * int(nb.height) * bpp
	*buf = window.Buffer{
		Width:  int(nb.width),
		Height: int(nb.height),
		Stride: int(nb.stride),
		Format: f,
		Bits:   unsafe.Slice((*byte)(nb.bits), n),
	}
	if dirty != nil {
		*dirty = window.Rect{
			Top:    int(bounds.top),
			Left:   int(bounds.left),
			Bottom: int(bounds.bottom),
			Right:  int(bounds.right),
		}
	}
	return s
}

func (w *Window) UnlockAndPost() int32 {
	return int32(C.ANativeWindow_unlockAndPost(w.ptr))
}

var _ window.Window = (*Window)(nil)

// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package tinydisplay presents window frames on a display driven through
// the TinyGo drivers Displayer interface (SPI and parallel LCD panels,
// e-paper, or any type that implements it).
//
//	d := st7789.New(machine.SPI0, ...)
//	w := tinydisplay.New(&d)
//	renderer.NotifySurfaceAvailable(ctx, w, true)
//
// The window buffer is sized from the display. Every post pushes the frame
// pixel by pixel with SetPixel and then calls Display. A Display error makes
// the post return window.StatusInvalid.
package tinydisplay

import (
	"tinygo.org/x/drivers"

	"github.com/gogpu/winblit"
	"github.com/gogpu/winblit/window"
)

// Window is a memory-backed window mirrored to a display.
type Window struct {
	*window.Memory

	d drivers.Displayer
}

// New creates a window the size of d. Extra options are applied to the
// underlying window.Memory after the display hook.
func New(d drivers.Displayer, opts ...window.MemoryOption) *Window {
	w := &Window{d: d}
	width, height := d.Size()
	all := append([]window.MemoryOption{window.WithPostHook(w.present)}, opts...)
	w.Memory = window.NewMemory(int(width), int(height), all...)
	return w
}

// Display returns the wrapped display.
func (w *Window) Display() drivers.Displayer {
	return w.d
}

func (w *Window) present(f window.Frame) error {
	img := f.Image()
	dw, dh := w.d.Size()
	width, height := min(f.Width, int(dw)), min(f.Height, int(dh))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			w.d.SetPixel(int16(x), int16(y), img.RGBAAt(x, y))
		}
	}
	if err := w.d.Display(); err != nil {
		winblit.Logger().Warn("tinydisplay: display failed", "err", err)
		return err
	}
	return nil
}

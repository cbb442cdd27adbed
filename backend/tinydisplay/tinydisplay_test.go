// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package tinydisplay

import (
	"context"
	"errors"
	"image/color"
	"testing"

	"github.com/gogpu/winblit"
	"github.com/gogpu/winblit/blit"
	"github.com/gogpu/winblit/format"
	"github.com/gogpu/winblit/window"
)

// panel is a drivers.Displayer that records pixels in memory.
type panel struct {
	w, h     int16
	pix      map[[2]int16]color.RGBA
	displays int
	err      error
}

func newPanel(w, h int16) *panel {
	return &panel{w: w, h: h, pix: make(map[[2]int16]color.RGBA)}
}

func (p *panel) Size() (x, y int16) { return p.w, p.h }

func (p *panel) SetPixel(x, y int16, c color.RGBA) {
	if x < 0 || y < 0 || x >= p.w || y >= p.h {
		panic("SetPixel out of range")
	}
	p.pix[[2]int16{x, y}] = c
}

func (p *panel) Display() error {
	p.displays++
	return p.err
}

func TestNewSizesFromDisplay(t *testing.T) {
	w := New(newPanel(240, 135))
	if w.Width() != 240 || w.Height() != 135 {
		t.Errorf("size = %dx%d, want 240x135", w.Width(), w.Height())
	}
}

func TestPresentPushesPixels(t *testing.T) {
	p := newPanel(16, 8)
	w := New(p, window.WithStrideAlign(32))

	r := winblit.New(
		winblit.WithFormat(format.RGB565),
		winblit.WithSource(winblit.Fixed{Rect: window.Rect{Bottom: 2, Right: 3}, Color: blit.Color{0x00, 0xF8}}),
	)
	if _, err := r.NotifySurfaceAvailable(context.Background(), w, true); err != nil {
		t.Fatal(err)
	}

	if p.displays != 1 {
		t.Errorf("displays = %d, want 1", p.displays)
	}
	if len(p.pix) != 16*8 {
		t.Errorf("pixels pushed = %d, want %d", len(p.pix), 16*8)
	}
	if got := p.pix[[2]int16{2, 1}]; got != (color.RGBA{0xFF, 0, 0, 0xFF}) {
		t.Errorf("pixel (2,1) = %v, want red", got)
	}
	if got := p.pix[[2]int16{3, 1}]; got != (color.RGBA{0, 0, 0, 0xFF}) {
		t.Errorf("pixel (3,1) = %v, want black", got)
	}
}

func TestDisplayErrorFailsPost(t *testing.T) {
	p := newPanel(4, 4)
	p.err = errors.New("spi timeout")
	w := New(p)

	r := winblit.New(winblit.WithSource(winblit.Fixed{Full: true, Color: blit.Color{1, 2, 3, 4}}))
	rep, err := r.NotifySurfaceAvailable(context.Background(), w, true)
	if !errors.Is(err, window.ErrPresentFailed) {
		t.Fatalf("err = %v, want ErrPresentFailed", err)
	}
	if rep.Outcome != winblit.OutcomePresentFailed || rep.PostStatus != window.StatusInvalid {
		t.Errorf("report = %+v", rep)
	}
	if w.Refs() != 0 || w.Locked() {
		t.Error("window not released after failed post")
	}
}

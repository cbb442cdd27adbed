// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package term

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/gogpu/winblit"
	"github.com/gogpu/winblit/blit"
	"github.com/gogpu/winblit/format"
	"github.com/gogpu/winblit/window"
)

var red = blit.Color{255, 0, 0, 255}

func newSimWindow(t *testing.T, opts window.Options) (*Window, tcell.SimulationScreen) {
	t.Helper()
	screen := tcell.NewSimulationScreen("UTF-8")
	w, err := New(screen, opts)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	t.Cleanup(w.Close)
	return w, screen
}

func cellColors(t *testing.T, screen tcell.Screen, x, y int) (fg, bg tcell.Color) {
	t.Helper()
	ch, _, style, _ := screen.GetContent(x, y)
	if ch != halfBlock {
		t.Fatalf("cell (%d,%d) = %q, want %q", x, y, ch, halfBlock)
	}
	fg, bg, _ = style.Decompose()
	return fg, bg
}

func render(t *testing.T, w window.Window, src winblit.Source) {
	t.Helper()
	r := winblit.New(winblit.WithSource(src))
	if _, err := r.NotifySurfaceAvailable(context.Background(), w, true); err != nil {
		t.Fatalf("render: %v", err)
	}
}

// TestNewSizesFromScreen tests the default one pixel per column, two per row.
func TestNewSizesFromScreen(t *testing.T) {
	w, screen := newSimWindow(t, window.Options{})
	cols, rows := screen.Size()
	if w.Width() != cols || w.Height() != rows*2 {
		t.Errorf("window %dx%d, want %dx%d", w.Width(), w.Height(), cols, rows*2)
	}
}

func TestPresentHalfBlocks(t *testing.T) {
	w, screen := newSimWindow(t, window.Options{})
	render(t, w, winblit.Fixed{Rect: window.Rect{Top: 0, Left: 0, Bottom: 1, Right: 2}, Color: red})

	fg, bg := cellColors(t, screen, 0, 0)
	if fg != tcell.NewRGBColor(255, 0, 0) || bg != tcell.NewRGBColor(0, 0, 0) {
		t.Errorf("cell (0,0) fg %v bg %v, want red over black", fg, bg)
	}
	fg, bg = cellColors(t, screen, 1, 0)
	if fg != tcell.NewRGBColor(255, 0, 0) || bg != tcell.NewRGBColor(0, 0, 0) {
		t.Errorf("cell (1,0) fg %v bg %v, want red over black", fg, bg)
	}
	fg, _ = cellColors(t, screen, 2, 0)
	if fg != tcell.NewRGBColor(0, 0, 0) {
		t.Errorf("cell (2,0) fg %v, want black", fg)
	}
}

func TestPresentScalesToGrid(t *testing.T) {
	screen := tcell.NewSimulationScreen("UTF-8")
	w, err := New(screen, window.Options{Width: 4, Height: 2})
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(w.Close)

	// Left half red, stretched across the whole grid.
	render(t, w, winblit.Fixed{Rect: window.Rect{Bottom: 2, Right: 2}, Color: red})

	cols, rows := screen.Size()
	fg, bg := cellColors(t, screen, 0, rows-1)
	if fg != tcell.NewRGBColor(255, 0, 0) || bg != tcell.NewRGBColor(255, 0, 0) {
		t.Errorf("left cell fg %v bg %v, want red", fg, bg)
	}
	fg, _ = cellColors(t, screen, cols-1, 0)
	if fg != tcell.NewRGBColor(0, 0, 0) {
		t.Errorf("right cell fg %v, want black", fg)
	}
}

func TestRequestRedrawRepaints(t *testing.T) {
	w, screen := newSimWindow(t, window.Options{})

	// Nothing presented yet: a redraw leaves the screen alone.
	w.RequestRedraw()
	if ch, _, _, _ := screen.GetContent(0, 0); ch == halfBlock {
		t.Fatal("redraw before any post painted the screen")
	}

	render(t, w, winblit.Fixed{Rect: window.Rect{Bottom: 2, Right: 1}, Color: red})
	screen.SetContent(0, 0, ' ', nil, tcell.StyleDefault)
	screen.Show()

	w.RequestRedraw()
	fg, bg := cellColors(t, screen, 0, 0)
	if fg != tcell.NewRGBColor(255, 0, 0) || bg != tcell.NewRGBColor(255, 0, 0) {
		t.Errorf("cell (0,0) fg %v bg %v after redraw, want red", fg, bg)
	}
}

func TestRunQuitsOnKey(t *testing.T) {
	tests := []struct {
		name string
		ev   *tcell.EventKey
	}{
		{"q", tcell.NewEventKey(tcell.KeyRune, 'q', tcell.ModNone)},
		{"escape", tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone)},
		{"ctrl-c", tcell.NewEventKey(tcell.KeyCtrlC, 0, tcell.ModCtrl)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, screen := newSimWindow(t, window.Options{Width: 2, Height: 2})

			done := make(chan error, 1)
			go func() { done <- w.Run(context.Background()) }()

			if err := screen.PostEvent(tt.ev); err != nil {
				t.Fatalf("PostEvent: %v", err)
			}
			select {
			case err := <-done:
				if err != nil {
					t.Errorf("Run = %v, want nil", err)
				}
			case <-time.After(5 * time.Second):
				t.Fatal("Run did not return after quit key")
			}

			var buf window.Buffer
			w.SetBuffersGeometry(0, 0, format.RGBA8888)
			if s := w.Lock(&buf, nil); s != window.StatusNoDevice {
				t.Errorf("Lock after Run = %d, want StatusNoDevice", s)
			}
		})
	}
}

func TestRunCanceled(t *testing.T) {
	w, _ := newSimWindow(t, window.Options{Width: 2, Height: 2})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()
	cancel()

	select {
	case err := <-done:
		if !errors.Is(err, context.Canceled) {
			t.Errorf("Run = %v, want context.Canceled", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not return after cancel")
	}
}

func TestRegistered(t *testing.T) {
	e, ok := window.Get("term")
	if !ok {
		t.Fatal("term backend not registered")
	}
	if e.Priority != Priority {
		t.Errorf("priority = %d, want %d", e.Priority, Priority)
	}
}

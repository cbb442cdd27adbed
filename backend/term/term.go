// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package term

import (
	"context"
	"fmt"
	"image"
	"sync"
	"sync/atomic"

	"github.com/gdamore/tcell/v2"
	"golang.org/x/image/draw"

	"github.com/gogpu/winblit"
	"github.com/gogpu/winblit/window"
)

// Priority is the registry priority of the terminal backend.
const Priority = 20

// halfBlock is the glyph used for every cell.
const halfBlock = '▀'

func init() {
	window.Register("term", Priority, func(opts window.Options) (window.Window, error) {
		screen, err := tcell.NewScreen()
		if err != nil {
			return nil, fmt.Errorf("term: %w", err)
		}
		return New(screen, opts)
	}, nil)
}

// Window is a memory-backed window drawn into a tcell screen.
type Window struct {
	*window.Memory

	screen tcell.Screen
	closed atomic.Bool
	once   sync.Once

	mu   sync.Mutex
	last *image.RGBA
}

// New initializes screen and creates a window on it. A positive
// opts.Width and opts.Height fix the buffer size; otherwise the buffer is
// one pixel per column and two per row of the terminal.
func New(screen tcell.Screen, opts window.Options) (*Window, error) {
	if err := screen.Init(); err != nil {
		return nil, fmt.Errorf("term: init screen: %w", err)
	}
	screen.HideCursor()
	screen.Clear()

	width, height := opts.Width, opts.Height
	if width <= 0 || height <= 0 {
		cols, rows := screen.Size()
		width, height = cols, rows*2
	}
	if width <= 0 || height <= 0 {
		screen.Fini()
		return nil, fmt.Errorf("term: screen has no cells")
	}

	w := &Window{screen: screen}
	w.Memory = window.NewMemory(width, height,
		window.WithStrideAlign(opts.StrideAlign),
		window.WithPostHook(w.present),
		window.WithRedraw(w.redraw),
	)
	return w, nil
}

// Screen returns the underlying tcell screen.
func (w *Window) Screen() tcell.Screen {
	return w.screen
}

func (w *Window) present(f window.Frame) error {
	img := f.Image()
	w.mu.Lock()
	w.last = img
	w.mu.Unlock()
	if !w.closed.Load() {
		w.draw(img)
	}
	return nil
}

// redraw repaints the last presented frame, if any.
func (w *Window) redraw() {
	w.mu.Lock()
	last := w.last
	w.mu.Unlock()
	if last != nil && !w.closed.Load() {
		w.draw(last)
	}
}

// draw scales img to the cell grid and shows it.
func (w *Window) draw(img *image.RGBA) {
	cols, rows := w.screen.Size()
	if cols <= 0 || rows <= 0 {
		return
	}

	grid := img
	if b := img.Bounds(); b.Dx() != cols || b.Dy() != rows*2 {
		grid = image.NewRGBA(image.Rect(0, 0, cols, rows*2))
		draw.NearestNeighbor.Scale(grid, grid.Bounds(), img, b, draw.Src, nil)
	}

	for y := 0; y < rows; y++ {
		for x := 0; x < cols; x++ {
			top := grid.RGBAAt(x, 2*y)
			bottom := grid.RGBAAt(x, 2*y+1)
			style := tcell.StyleDefault.
				Foreground(tcell.NewRGBColor(int32(top.R), int32(top.G), int32(top.B))).
				Background(tcell.NewRGBColor(int32(bottom.R), int32(bottom.G), int32(bottom.B)))
			w.screen.SetContent(x, y, halfBlock, nil, style)
		}
	}
	w.screen.Show()
}

// Run handles terminal events until the user quits or ctx is done. The
// screen is restored and the window destroyed before Run returns.
func (w *Window) Run(ctx context.Context) error {
	defer w.Close()

	stop := context.AfterFunc(ctx, func() {
		_ = w.screen.PostEvent(tcell.NewEventInterrupt(nil))
	})
	defer stop()

	log := winblit.Logger()
	for {
		switch ev := w.screen.PollEvent().(type) {
		case nil:
			return ctx.Err()
		case *tcell.EventInterrupt:
			if ctx.Err() != nil {
				return ctx.Err()
			}
		case *tcell.EventResize:
			w.screen.Sync()
			w.RequestRedraw()
			cols, rows := ev.Size()
			log.Debug("term: resized", "cols", cols, "rows", rows)
		case *tcell.EventKey:
			if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC ||
				(ev.Key() == tcell.KeyRune && ev.Rune() == 'q') {
				log.Info("term: quit requested")
				return nil
			}
		}
	}
}

// Close destroys the window and restores the terminal. It is safe to call
// more than once.
func (w *Window) Close() {
	w.once.Do(func() {
		w.Destroy()
		w.closed.Store(true)
		w.screen.Fini()
	})
}

var _ window.Runner = (*Window)(nil)

// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package desktop

import (
	"context"
	"errors"
	"image"
	"os"
	"runtime"
	"sync"

	"github.com/gogpu/gpucontext"
	"github.com/hajimehoshi/ebiten/v2"

	"github.com/gogpu/winblit"
	"github.com/gogpu/winblit/window"
)

// Priority is the registry priority of the desktop backend.
const Priority = 50

func init() {
	window.Register("desktop", Priority, func(opts window.Options) (window.Window, error) {
		return New(opts)
	}, Available)
}

// Available reports whether a display is likely to be reachable.
func Available() bool {
	switch runtime.GOOS {
	case "linux", "freebsd", "openbsd", "netbsd":
		return os.Getenv("DISPLAY") != "" || os.Getenv("WAYLAND_DISPLAY") != ""
	case "windows", "darwin":
		return true
	}
	return false
}

// Window is a memory-backed window presented through Ebitengine.
type Window struct {
	*window.Memory

	title string
	scale int

	mu    sync.Mutex
	frame *image.RGBA
	gen   uint64
}

// New creates a desktop window of opts.Width x opts.Height logical pixels.
// The buffer is opts.Scale times larger in each direction.
func New(opts window.Options) (*Window, error) {
	if opts.Width <= 0 || opts.Height <= 0 {
		return nil, errors.New("desktop: window needs a positive size")
	}
	w := &Window{title: opts.Title}
	if w.title == "" {
		w.title = "winblit"
	}
	wp := gpucontext.NullWindowProvider{W: opts.Width, H: opts.Height, SF: opts.Scale}
	w.Memory = window.FromProvider(wp,
		window.WithStrideAlign(opts.StrideAlign),
		window.WithPostHook(w.present),
	)
	if w.Width() <= 0 || w.Height() <= 0 {
		return nil, errors.New("desktop: scaled window size is empty")
	}
	w.scale = max(1, min(4, 1280/w.Width(), 800/w.Height()))
	return w, nil
}

// present runs after every successful post, on the rendering goroutine.
func (w *Window) present(f window.Frame) error {
	img := f.Image()
	w.mu.Lock()
	w.frame = img
	w.gen++
	w.mu.Unlock()
	return nil
}

// latest returns the most recent frame and its generation.
func (w *Window) latest() (*image.RGBA, uint64) {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.frame, w.gen
}

// Run opens the window and blocks until it is closed or ctx is done.
// Closing the window destroys it, so later locks fail with
// window.StatusNoDevice.
func (w *Window) Run(ctx context.Context) error {
	ebiten.SetWindowTitle(w.title)
	ebiten.SetWindowSize(w.Width()*w.scale, w.Height()*w.scale)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	winblit.Logger().Info("desktop: window open", "width", w.Width(), "height", w.Height(), "scale", w.scale)
	err := ebiten.RunGame(&game{ctx: ctx, w: w})
	w.Destroy()
	if errors.Is(err, ebiten.Termination) {
		return ctx.Err()
	}
	return err
}

type game struct {
	ctx context.Context
	w   *Window

	img *ebiten.Image
	gen uint64
}

func (g *game) Update() error {
	if g.ctx.Err() != nil {
		return ebiten.Termination
	}
	return nil
}

func (g *game) Draw(screen *ebiten.Image) {
	frame, gen := g.w.latest()
	if frame == nil {
		return
	}
	b := frame.Bounds()
	if g.img == nil || g.img.Bounds().Dx() != b.Dx() || g.img.Bounds().Dy() != b.Dy() {
		if g.img != nil {
			g.img.Deallocate()
		}
		g.img = ebiten.NewImage(b.Dx(), b.Dy())
		g.gen = 0
	}
	if gen != g.gen {
		g.img.WritePixels(frame.Pix)
		g.gen = gen
	}
	screen.DrawImage(g.img, nil)
}

func (g *game) Layout(_, _ int) (int, int) {
	return g.w.Width(), g.w.Height()
}

var _ window.Runner = (*Window)(nil)

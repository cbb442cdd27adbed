// Command winblit fills a rectangle of a window with a solid color, once
// when the window appears and then on a timer.
//
//	winblit -backend term -interval 500ms -ticks 10
//	winblit -backend memory -width 720 -height 1600 -rect 0,0,100,50 -color '#ff0000' -png out.png
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"image"
	"image/png"
	"log/slog"
	"os"
	"os/signal"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/gogpu/winblit"
	"github.com/gogpu/winblit/format"
	"github.com/gogpu/winblit/window"

	_ "github.com/gogpu/winblit/backend/term"
)

type config struct {
	backend     string
	width       int
	height      int
	format      string
	strideAlign int
	scale       float64
	interval    time.Duration
	ticks       int
	seed        uint64
	rect        string
	color       string
	workers     int
	strict      bool
	png         string
	verbose     bool
}

func main() {
	var cfg config
	flag.StringVar(&cfg.backend, "backend", "", "window backend (memory, term, desktop); empty picks the best available")
	flag.IntVar(&cfg.width, "width", 360, "window width in pixels")
	flag.IntVar(&cfg.height, "height", 800, "window height in pixels")
	flag.StringVar(&cfg.format, "format", "rgba8888", "pixel format, by name or WebGPU texture format")
	flag.IntVar(&cfg.strideAlign, "stride-align", 0, "pad rows to a multiple of this many pixels")
	flag.Float64Var(&cfg.scale, "scale", 1, "DPI scale factor; the buffer is width*scale x height*scale")
	flag.DurationVar(&cfg.interval, "interval", time.Second, "timer interval")
	flag.IntVar(&cfg.ticks, "ticks", 2, "number of timer ticks, the first one immediate (0 runs until interrupted)")
	flag.Uint64Var(&cfg.seed, "seed", 0, "seed for random rectangles (0 picks one)")
	flag.StringVar(&cfg.rect, "rect", "", "fixed rectangle top,left,bottom,right")
	flag.StringVar(&cfg.color, "color", "", "fixed color as #rrggbb[aa] or raw bytes b0,b1,...")
	flag.IntVar(&cfg.workers, "workers", 0, "fill workers (0 or 1 fills inline)")
	flag.BoolVar(&cfg.strict, "strict", false, "reject rectangles outside the window instead of clamping")
	flag.StringVar(&cfg.png, "png", "", "write the last presented frame to this PNG file")
	flag.BoolVar(&cfg.verbose, "v", false, "debug logging")
	flag.Parse()

	level := slog.LevelInfo
	if cfg.verbose {
		level = slog.LevelDebug
	}
	winblit.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	if err := run(cfg); err != nil {
		fmt.Fprintln(os.Stderr, "winblit:", err)
		os.Exit(1)
	}
}

func run(cfg config) error {
	f, err := format.Parse(cfg.format)
	if err != nil {
		return err
	}
	src, err := newSource(cfg, f)
	if err != nil {
		return err
	}

	opts := window.Options{
		Width:       cfg.width,
		Height:      cfg.height,
		Format:      f,
		StrideAlign: cfg.strideAlign,
		Title:       "winblit",
		Scale:       cfg.scale,
	}
	var w window.Window
	if cfg.backend == "" {
		w, err = window.New(opts)
	} else {
		w, err = window.NewByName(cfg.backend, opts)
	}
	if err != nil {
		return err
	}

	ropts := []winblit.Option{
		winblit.WithFormat(f),
		winblit.WithSource(src),
		winblit.WithWorkers(cfg.workers),
	}
	if cfg.strict {
		ropts = append(ropts, winblit.WithStrictRects())
	}
	r := winblit.New(ropts...)
	defer r.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	log := winblit.Logger()
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if _, err := r.NotifySurfaceAvailable(gctx, w, true); err != nil {
			log.Warn("first frame failed", "err", err)
		}
		err := r.Run(gctx, winblit.TickerConfig{Interval: cfg.interval, Ticks: cfg.ticks})
		return ignoreCanceled(err)
	})

	if runner, ok := w.(window.Runner); ok {
		err := runner.Run(gctx)
		cancel()
		if err := ignoreCanceled(err); err != nil {
			log.Warn("window closed", "err", err)
		}
	}
	if err := g.Wait(); err != nil {
		return err
	}
	r.NotifySurfaceDestroyed()

	st := r.Stats()
	log.Info("done",
		"cycles", st.Cycles, "rendered", st.Rendered, "skipped", st.Skipped,
		"lock_failures", st.LockFailures, "present_failures", st.PresentFailures,
		"rejected", st.Rejected)

	if cfg.png != "" {
		return writePNG(cfg.png, w)
	}
	return nil
}

func ignoreCanceled(err error) error {
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

// snapshotter is implemented by memory-backed windows.
type snapshotter interface {
	Snapshot() *image.RGBA
}

func writePNG(path string, w window.Window) error {
	s, ok := w.(snapshotter)
	if !ok {
		return fmt.Errorf("backend %T cannot snapshot frames", w)
	}
	out, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := png.Encode(out, s.Snapshot()); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}

package winblit

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"sync"

	"github.com/gogpu/winblit/blit"
	"github.com/gogpu/winblit/format"
	"github.com/gogpu/winblit/window"
)

// Renderer drives render cycles against the window held in its Slot.
// Cycles triggered by surface events, by Tick and by RenderOnce are
// serialized; all methods are safe for concurrent use.
type Renderer struct {
	slot   Slot
	opts   options
	bpp    int
	filler *blit.Filler

	mu    sync.Mutex
	stats Stats
}

// New creates a Renderer. It panics if the configured format has no
// bytes-per-pixel mapping.
func New(opts ...Option) *Renderer {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.source == nil {
		o.source = NewRandom(rand.Uint64())
	}

	r := &Renderer{
		opts: o,
		bpp:  format.MustBytesPerPixel(o.format),
	}
	if o.workers > 1 {
		r.filler = blit.NewFiller(o.workers)
	}
	return r
}

// NotifySurfaceAvailable stores w as the current window. When render is
// true it then runs one cycle against it, like a platform callback that
// hands over a fresh surface and asks for a first frame.
func (r *Renderer) NotifySurfaceAvailable(ctx context.Context, w window.Window, render bool) (Report, error) {
	if w == nil {
		return Report{Trigger: TriggerEvent, Outcome: OutcomeSkipped}, ErrNoSurface
	}
	r.slot.Set(w)
	Logger().Info("winblit: surface available",
		"width", w.Width(), "height", w.Height(), "render", render)
	if !render {
		return Report{Trigger: TriggerEvent, Outcome: OutcomeSkipped}, nil
	}
	return r.cycle(ctx, TriggerEvent)
}

// NotifySurfaceDestroyed empties the slot once any in-flight cycle has
// finished, and returns the window it held.
func (r *Renderer) NotifySurfaceDestroyed() window.Window {
	w := r.slot.Clear()
	if w != nil {
		Logger().Info("winblit: surface destroyed")
	}
	return w
}

// Surface returns the current window or nil.
func (r *Renderer) Surface() window.Window {
	return r.slot.Current()
}

// RenderOnce runs one cycle. With no window registered it returns
// ErrNoSurface and an OutcomeSkipped report.
func (r *Renderer) RenderOnce(ctx context.Context) (Report, error) {
	return r.cycle(ctx, TriggerManual)
}

// Tick runs one timer-driven cycle. Once the limit set by WithMaxTicks is
// reached it returns ErrTickLimit without touching the window.
func (r *Renderer) Tick(ctx context.Context) (Report, error) {
	r.mu.Lock()
	if r.opts.maxTicks > 0 && r.stats.Ticks >= r.opts.maxTicks {
		r.mu.Unlock()
		return Report{Trigger: TriggerTimer, Outcome: OutcomeSkipped}, ErrTickLimit
	}
	r.stats.Ticks++
	r.mu.Unlock()

	return r.cycle(ctx, TriggerTimer)
}

// Stats returns a snapshot of the cycle counters.
func (r *Renderer) Stats() Stats {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.stats
}

// Close releases the fill workers. The Renderer keeps working afterwards
// with inline fills.
func (r *Renderer) Close() {
	if r.filler != nil {
		r.filler.Close()
	}
}

func (r *Renderer) cycle(ctx context.Context, trig Trigger) (Report, error) {
	if err := ctx.Err(); err != nil {
		return Report{Trigger: trig, Outcome: OutcomeSkipped}, err
	}

	start := r.opts.now()
	var rep Report
	err := r.slot.Do(func(w window.Window) error {
		var err error
		rep, err = r.render(w, trig)
		return err
	})
	if errors.Is(err, ErrNoSurface) {
		rep = Report{Trigger: trig, Outcome: OutcomeSkipped}
		Logger().Debug("winblit: cycle skipped, no surface", "trigger", trig)
	}
	rep.Duration = r.opts.now().Sub(start)

	r.mu.Lock()
	r.stats.add(rep.Outcome)
	r.mu.Unlock()
	return rep, err
}

// render runs one cycle against w. Every path after Acquire releases w
// exactly once, and UnlockAndPresent runs only after a successful lock.
func (r *Renderer) render(w window.Window, trig Trigger) (Report, error) {
	log := Logger()

	w.Acquire()
	defer w.Release()

	rep := Report{
		Trigger: trig,
		Width:   w.Width(),
		Height:  w.Height(),
		Format:  r.opts.format,
	}

	lk := window.NewLock(w)
	if err := lk.SetGeometry(rep.Width, rep.Height, r.opts.format); err != nil {
		return rep, fmt.Errorf("winblit: %w", err)
	}
	buf, err := lk.Acquire(nil)
	rep.LockStatus = lk.LockStatus()
	if err != nil {
		lk.Abandon()
		rep.Outcome = OutcomeLockFailed
		log.Warn("winblit: lock failed", "status", rep.LockStatus, "trigger", trig)
		return rep, fmt.Errorf("winblit: %w", err)
	}
	// A panicking source must not leave the buffer locked.
	defer func() {
		if lk.State() == window.StateLocked {
			_ = lk.UnlockAndPresent()
		}
	}()
	log.Debug("winblit: buffer locked",
		"extent", buf.Extent(), "stride", buf.Stride, "format", buf.Format)

	rect, c := r.opts.source.Next(rep.Width, rep.Height, r.opts.format, r.bpp)
	rep.Rect, err = r.fill(buf, rep.Width, rep.Height, rect, c)
	var fillErr error
	if err != nil {
		rep.Outcome = OutcomeRejected
		fillErr = fmt.Errorf("winblit: rectangle rejected: %w", err)
		log.Warn("winblit: rectangle rejected", "rect", rect, "err", err)
	}

	presentErr := lk.UnlockAndPresent()
	rep.PostStatus = lk.PostStatus()
	if presentErr != nil {
		rep.Outcome = OutcomePresentFailed
		presentErr = fmt.Errorf("winblit: %w", presentErr)
		log.Warn("winblit: present failed", "status", rep.PostStatus, "trigger", trig)
	}
	if fillErr == nil && presentErr == nil {
		log.Debug("winblit: rendered", "rect", rep.Rect, "trigger", trig)
	}
	return rep, errors.Join(fillErr, presentErr)
}

// fill clamps or validates rect against the smaller of the queried and
// locked geometries, then writes c into it.
func (r *Renderer) fill(buf *window.Buffer, width, height int, rect window.Rect, c blit.Color) (window.Rect, error) {
	width, height = min(width, buf.Width), min(height, buf.Height)

	var err error
	if r.opts.strict {
		err = blit.Validate(rect, width, height)
	} else {
		rect, err = blit.Clamp(rect, width, height)
	}
	if err != nil {
		return rect, err
	}

	if r.filler != nil {
		err = r.filler.Fill(buf, rect, c)
	} else {
		err = blit.Fill(buf, rect, c)
	}
	return rect, err
}

package winblit

import (
	"time"

	"github.com/gogpu/winblit/format"
)

// Option configures a Renderer during creation.
//
// Example:
//
//	r := winblit.New(
//	    winblit.WithFormat(format.RGB565),
//	    winblit.WithSource(winblit.Fixed{Rect: rect, Color: red}),
//	)
type Option func(*options)

type options struct {
	format   format.PixelFormat
	source   Source
	strict   bool
	maxTicks int
	workers  int
	now      func() time.Time
}

func defaultOptions() options {
	return options{
		format: format.RGBA8888,
		now:    time.Now,
	}
}

// WithFormat sets the pixel format negotiated with the window.
// The default is format.RGBA8888.
func WithFormat(f format.PixelFormat) Option {
	return func(o *options) {
		o.format = f
	}
}

// WithSource sets where each cycle takes its rectangle and color from.
// The default is a Random source seeded from the runtime.
func WithSource(s Source) Option {
	return func(o *options) {
		o.source = s
	}
}

// WithStrictRects makes the renderer reject rectangles that do not fit the
// locked geometry instead of clamping them.
func WithStrictRects() Option {
	return func(o *options) {
		o.strict = true
	}
}

// WithMaxTicks bounds the number of timer-driven cycles. Tick returns
// ErrTickLimit afterwards. Zero means unbounded.
func WithMaxTicks(n int) Option {
	return func(o *options) {
		o.maxTicks = max(n, 0)
	}
}

// WithWorkers fills rectangles on a worker pool of n goroutines.
// Values below 2 keep the fill on the calling goroutine.
func WithWorkers(n int) Option {
	return func(o *options) {
		o.workers = n
	}
}

// WithClock replaces time.Now for cycle duration measurement.
func WithClock(now func() time.Time) Option {
	return func(o *options) {
		if now != nil {
			o.now = now
		}
	}
}

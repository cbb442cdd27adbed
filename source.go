package winblit

import (
	"math/rand/v2"

	"github.com/gogpu/winblit/blit"
	"github.com/gogpu/winblit/format"
	"github.com/gogpu/winblit/window"
)

// Source supplies the rectangle and color for one render cycle. Next is
// called with the queried window geometry while the window is locked, and
// never concurrently for the same Renderer.
type Source interface {
	Next(width, height int, f format.PixelFormat, bpp int) (window.Rect, blit.Color)
}

// SourceFunc adapts a function to the Source interface.
type SourceFunc func(width, height int, f format.PixelFormat, bpp int) (window.Rect, blit.Color)

// Next calls fn.
func (fn SourceFunc) Next(width, height int, f format.PixelFormat, bpp int) (window.Rect, blit.Color) {
	return fn(width, height, f, bpp)
}

// Fixed returns the same rectangle and color every cycle. When Full is
// set, Rect is ignored and the whole window is filled. A zero Rect is
// empty and gets rejected like any other empty rectangle.
type Fixed struct {
	Rect  window.Rect
	Full  bool
	Color blit.Color
}

// Next implements Source.
func (s Fixed) Next(width, height int, _ format.PixelFormat, _ int) (window.Rect, blit.Color) {
	if s.Full {
		return window.Full(width, height), s.Color
	}
	return s.Rect, s.Color
}

// Random picks a rectangle spanning the window center and random color
// bytes. Top is in [0,h/2) and Bottom in [h/2,h-1]; Left and Right
// likewise. The last row and column are left alone once the window is at
// least two pixels in that direction. The rectangle is never empty for a
// window of at least 1x1.
//
// A Random is not safe for concurrent use; a Renderer only calls it from
// inside a serialized cycle.
type Random struct {
	rng *rand.Rand
}

// NewRandom returns a Random with a fixed seed, for reproducible runs.
func NewRandom(seed uint64) *Random {
	return &Random{rng: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

// Next implements Source.
func (s *Random) Next(width, height int, _ format.PixelFormat, bpp int) (window.Rect, blit.Color) {
	top, bottom := s.span(height)
	left, right := s.span(width)

	c := make(blit.Color, bpp)
	for i := range c {
		c[i] = byte(s.rng.UintN(256))
	}
	return window.Rect{Top: top, Left: left, Bottom: bottom, Right: right}, c
}

// span returns [lo, hi) with lo in [0,n/2) and hi in [n/2,n-1].
// For n == 1 it returns [0, 1).
func (s *Random) span(n int) (lo, hi int) {
	if n <= 0 {
		return 0, 0
	}
	half := n / 2
	if half > 0 {
		lo = s.rng.IntN(half)
	}
	hi = half + s.rng.IntN(n-half)
	if hi <= lo {
		hi = lo + 1
	}
	return lo, hi
}

// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package window

import (
	"image"
	"sync"

	"github.com/gogpu/gpucontext"

	"github.com/gogpu/winblit/format"
)

// MemoryOption configures a Memory window.
type MemoryOption func(*Memory)

// WithStrideAlign rounds every row up to a multiple of n pixels, the way
// platform allocators pad rows. Values below 2 disable padding.
func WithStrideAlign(n int) MemoryOption {
	return func(m *Memory) {
		m.strideAlign = n
	}
}

// WithPostHook registers fn to receive every presented frame. A non-nil
// error from fn makes UnlockAndPost return StatusInvalid.
func WithPostHook(fn func(Frame) error) MemoryOption {
	return func(m *Memory) {
		m.onPost = fn
	}
}

// WithRedraw registers fn to run on RequestRedraw.
func WithRedraw(fn func()) MemoryOption {
	return func(m *Memory) {
		m.onRedraw = fn
	}
}

// WithScale sets the DPI scale factor reported through gpucontext.
func WithScale(s float64) MemoryOption {
	return func(m *Memory) {
		if s > 0 {
			m.scale = s
		}
	}
}

// Memory is a Window backed by Go memory.
//
// It behaves like a platform window with a single buffer: the buffer keeps
// its contents across locks as long as the geometry does not change, and
// UnlockAndPost copies it to the presented frame. Faults can be injected
// with FailNextLock and FailNextPost.
//
// Memory is safe for concurrent use, but the lock protocol itself is not
// reentrant: a second Lock while locked returns StatusBusy.
type Memory struct {
	mu sync.Mutex

	width  int
	height int
	scale  float64

	strideAlign int
	onPost      func(Frame) error
	onRedraw    func()

	geomSet    bool
	geomWidth  int
	geomHeight int
	geomFormat format.PixelFormat

	back      []byte
	backFrame Frame
	presented Frame

	locked    bool
	destroyed bool

	refs     int
	acquires int
	releases int
	locks    int
	posts    int

	failLock int32
	failPost int32
}

// NewMemory returns a width x height memory window.
func NewMemory(width, height int, opts ...MemoryOption) *Memory {
	m := &Memory{
		width:  width,
		height: height,
		scale:  1,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// FromProvider returns a memory window sized to the physical pixel size
// of wp: its logical size times its scale factor.
func FromProvider(wp gpucontext.WindowProvider, opts ...MemoryOption) *Memory {
	w, h := wp.Size()
	s := wp.ScaleFactor()
	opts = append([]MemoryOption{WithScale(s)}, opts...)
	return NewMemory(int(float64(w)*s), int(float64(h)*s), opts...)
}

// Width returns the window width in pixels.
func (m *Memory) Width() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.width
}

// Height returns the window height in pixels.
func (m *Memory) Height() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.height
}

// Acquire increments the reference count.
func (m *Memory) Acquire() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.refs++
	m.acquires++
}

// Release decrements the reference count. It panics when the count is
// already zero.
func (m *Memory) Release() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.refs == 0 {
		panic("window: Release without matching Acquire")
	}
	m.refs--
	m.releases++
}

// SetBuffersGeometry records the geometry for the next Lock.
func (m *Memory) SetBuffersGeometry(width, height int, f format.PixelFormat) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.geomSet = true
	m.geomWidth = width
	m.geomHeight = height
	m.geomFormat = f
}

// Lock locks the back buffer. The dirty rectangle, when given, is widened
// to the whole buffer since Memory does not track damage.
func (m *Memory) Lock(buf *Buffer, dirty *Rect) int32 {
	m.mu.Lock()
	defer m.mu.Unlock()

	switch {
	case m.destroyed:
		return StatusNoDevice
	case m.locked:
		return StatusBusy
	case m.failLock < 0:
		s := m.failLock
		m.failLock = 0
		return s
	case !m.geomSet:
		return StatusInvalid
	}

	w, h := m.geomWidth, m.geomHeight
	if w == 0 && h == 0 {
		w, h = m.width, m.height
	}
	if w <= 0 || h <= 0 {
		return StatusInvalid
	}
	bpp, err := format.BytesPerPixel(m.geomFormat)
	if err != nil {
		return StatusInvalid
	}

	stride := w
	if m.strideAlign > 1 {
		stride = (w + m.strideAlign - 1) / m.strideAlign * m.strideAlign
	}

	f := m.backFrame
	if m.back == nil || f.Width != w || f.Height != h || f.Stride != stride || f.Format != m.geomFormat {
		m.back = make([]byte, stride*h*bpp)
		m.backFrame = Frame{Width: w, Height: h, Stride: stride, Format: m.geomFormat}
	}

	*buf = Buffer{Width: w, Height: h, Stride: stride, Format: m.geomFormat, Bits: m.back}
	if dirty != nil {
		*dirty = Full(w, h)
	}
	m.locked = true
	m.locks++
	return StatusOK
}

// UnlockAndPost presents the back buffer. The frame counts as presented
// only once the post hook, if any, has accepted it.
func (m *Memory) UnlockAndPost() int32 {
	m.mu.Lock()
	if !m.locked {
		m.mu.Unlock()
		return StatusInvalid
	}
	m.locked = false
	if m.failPost < 0 {
		s := m.failPost
		m.failPost = 0
		m.mu.Unlock()
		return s
	}

	frame := m.backFrame
	frame.Pix = make([]byte, len(m.back))
	copy(frame.Pix, m.back)
	hook := m.onPost
	m.mu.Unlock()

	if hook != nil {
		if err := hook(frame); err != nil {
			return StatusInvalid
		}
	}

	m.mu.Lock()
	m.presented = frame
	m.posts++
	m.mu.Unlock()
	return StatusOK
}

// Resize changes the window size. Buffers locked afterwards with a zero
// geometry follow the new size.
func (m *Memory) Resize(width, height int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.width, m.height = width, height
}

// Destroy invalidates the window; later locks return StatusNoDevice.
func (m *Memory) Destroy() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.destroyed = true
}

// FailNextLock makes the next Lock return status, which must be negative.
func (m *Memory) FailNextLock(status int32) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.failLock = status
}

// FailNextPost makes the next UnlockAndPost return status, which must be
// negative. The buffer is unlocked but not presented.
func (m *Memory) FailNextPost(status int32) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.failPost = status
}

// Refs returns the current reference count.
func (m *Memory) Refs() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.refs
}

// Acquires returns the number of Acquire calls.
func (m *Memory) Acquires() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.acquires
}

// Releases returns the number of Release calls.
func (m *Memory) Releases() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.releases
}

// Locks returns the number of successful locks.
func (m *Memory) Locks() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.locks
}

// Posts returns the number of presented frames.
func (m *Memory) Posts() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.posts
}

// Locked reports whether a buffer is currently locked.
func (m *Memory) Locked() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.locked
}

// Presented returns the last presented frame. The frame is empty before
// the first successful post.
func (m *Memory) Presented() Frame {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.presented
}

// Snapshot returns the last presented frame as an RGBA image.
func (m *Memory) Snapshot() *image.RGBA {
	return m.Presented().Image()
}

// Size returns the window size in logical points.
func (m *Memory) Size() (width, height int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return int(float64(m.width) / m.scale), int(float64(m.height) / m.scale)
}

// ScaleFactor returns the DPI scale factor.
func (m *Memory) ScaleFactor() float64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.scale
}

// RequestRedraw runs the redraw callback, if any.
func (m *Memory) RequestRedraw() {
	m.mu.Lock()
	fn := m.onRedraw
	m.mu.Unlock()
	if fn != nil {
		fn()
	}
}

var (
	_ Window                    = (*Memory)(nil)
	_ gpucontext.WindowProvider = (*Memory)(nil)
)

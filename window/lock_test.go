// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package window

import (
	"errors"
	"testing"

	"github.com/gogpu/winblit/format"
)

// scriptedWindow returns fixed statuses and counts protocol calls.
type scriptedWindow struct {
	lockStatus int32
	postStatus int32

	geometryCalls int
	lockCalls     int
	postCalls     int
	bits          []byte
}

func (w *scriptedWindow) Width() int  { return 4 }
func (w *scriptedWindow) Height() int { return 2 }
func (w *scriptedWindow) Acquire()    {}
func (w *scriptedWindow) Release()    {}

func (w *scriptedWindow) SetBuffersGeometry(int, int, format.PixelFormat) { w.geometryCalls++ }

func (w *scriptedWindow) Lock(buf *Buffer, _ *Rect) int32 {
	w.lockCalls++
	if w.lockStatus >= 0 {
		if w.bits == nil {
			w.bits = make([]byte, 4*2*4)
		}
		buf.Bits = w.bits
	}
	return w.lockStatus
}

func (w *scriptedWindow) UnlockAndPost() int32 {
	w.postCalls++
	return w.postStatus
}

func TestLockHappyPath(t *testing.T) {
	w := &scriptedWindow{}
	l := NewLock(w)

	if err := l.SetGeometry(4, 2, format.RGBA8888); err != nil {
		t.Fatalf("SetGeometry: %v", err)
	}
	if l.State() != StateGeometrySet {
		t.Fatalf("state = %s, want GeometrySet", l.State())
	}

	buf, err := l.Acquire(nil)
	if err != nil {
		t.Fatalf("Acquire: %v", err)
	}
	if l.State() != StateLocked {
		t.Fatalf("state = %s, want Locked", l.State())
	}
	if buf.Width != 4 || buf.Height != 2 || buf.Stride != 4 || buf.Format != format.RGBA8888 {
		t.Errorf("buffer = %+v", *buf)
	}
	if len(buf.Bits) != 32 {
		t.Errorf("len(Bits) = %d, want 32", len(buf.Bits))
	}

	if err := l.UnlockAndPresent(); err != nil {
		t.Fatalf("UnlockAndPresent: %v", err)
	}
	if l.State() != StateIdle {
		t.Errorf("state = %s, want Idle", l.State())
	}
	if buf.Bits != nil {
		t.Error("buffer bits must not survive the unlock")
	}
	if w.postCalls != 1 {
		t.Errorf("UnlockAndPost calls = %d, want 1", w.postCalls)
	}
}

func TestLockFailedNeverUnlocks(t *testing.T) {
	w := &scriptedWindow{lockStatus: -1}
	l := NewLock(w)
	_ = l.SetGeometry(4, 2, format.RGBA8888)

	buf, err := l.Acquire(nil)
	if buf != nil {
		t.Error("Acquire returned a buffer on failure")
	}
	if !errors.Is(err, ErrLockFailed) {
		t.Fatalf("err = %v, want ErrLockFailed", err)
	}
	var se *StatusError
	if !errors.As(err, &se) || se.Status != -1 {
		t.Errorf("err = %#v, want status -1", err)
	}
	if l.State() != StateLockFailed {
		t.Errorf("state = %s, want LockFailed", l.State())
	}

	if err := l.UnlockAndPresent(); !errors.Is(err, ErrLockState) {
		t.Errorf("UnlockAndPresent after failed lock = %v, want ErrLockState", err)
	}
	if w.postCalls != 0 {
		t.Errorf("UnlockAndPost calls = %d, want 0", w.postCalls)
	}

	l.Abandon()
	if l.State() != StateIdle {
		t.Errorf("state after Abandon = %s, want Idle", l.State())
	}
}

func TestLockPresentFailed(t *testing.T) {
	w := &scriptedWindow{postStatus: -22}
	l := NewLock(w)
	_ = l.SetGeometry(4, 2, format.RGBA8888)
	if _, err := l.Acquire(nil); err != nil {
		t.Fatalf("Acquire: %v", err)
	}

	err := l.UnlockAndPresent()
	if !errors.Is(err, ErrPresentFailed) {
		t.Fatalf("err = %v, want ErrPresentFailed", err)
	}
	if l.PostStatus() != -22 {
		t.Errorf("PostStatus = %d, want -22", l.PostStatus())
	}
	if l.State() != StateIdle {
		t.Errorf("state = %s, want Idle", l.State())
	}

	// Not retried: a second unlock is out of order and never reaches the window.
	if err := l.UnlockAndPresent(); !errors.Is(err, ErrLockState) {
		t.Errorf("second UnlockAndPresent = %v, want ErrLockState", err)
	}
	if w.postCalls != 1 {
		t.Errorf("UnlockAndPost calls = %d, want 1", w.postCalls)
	}
}

func TestLockOutOfOrder(t *testing.T) {
	w := &scriptedWindow{}
	l := NewLock(w)

	if _, err := l.Acquire(nil); !errors.Is(err, ErrLockState) {
		t.Errorf("Acquire before SetGeometry = %v, want ErrLockState", err)
	}
	if w.lockCalls != 0 {
		t.Errorf("Lock reached the window before geometry was set")
	}

	_ = l.SetGeometry(4, 2, format.RGBA8888)
	if err := l.SetGeometry(4, 2, format.RGBA8888); !errors.Is(err, ErrLockState) {
		t.Errorf("second SetGeometry = %v, want ErrLockState", err)
	}
	if w.geometryCalls != 1 {
		t.Errorf("SetBuffersGeometry calls = %d, want 1", w.geometryCalls)
	}

	_, _ = l.Acquire(nil)
	l.Abandon()
	if l.State() != StateLocked {
		t.Errorf("Abandon must not leave a locked buffer; state = %s", l.State())
	}
	_ = l.UnlockAndPresent()
}

func TestLockStateString(t *testing.T) {
	tests := map[LockState]string{
		StateIdle:        "Idle",
		StateGeometrySet: "GeometrySet",
		StateLocked:      "Locked",
		StateLockFailed:  "LockFailed",
		LockState(9):     "LockState(9)",
	}
	for s, want := range tests {
		if got := s.String(); got != want {
			t.Errorf("String() = %q, want %q", got, want)
		}
	}
}

func TestStatusErrorMessage(t *testing.T) {
	err := &StatusError{Op: "lock", Status: -16}
	if got := err.Error(); got != "window: lock failed with status -16" {
		t.Errorf("Error() = %q", got)
	}
}

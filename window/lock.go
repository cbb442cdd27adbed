// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package window

import (
	"fmt"

	"github.com/gogpu/winblit/format"
)

// LockState is the state of a Lock.
type LockState uint8

const (
	// StateIdle is the initial state and the state after unlock or abandon.
	StateIdle LockState = iota

	// StateGeometrySet means buffer geometry has been negotiated.
	StateGeometrySet

	// StateLocked means a buffer is locked for CPU writes.
	StateLocked

	// StateLockFailed means the last lock attempt returned a negative status.
	StateLockFailed
)

func (s LockState) String() string {
	switch s {
	case StateIdle:
		return "Idle"
	case StateGeometrySet:
		return "GeometrySet"
	case StateLocked:
		return "Locked"
	case StateLockFailed:
		return "LockFailed"
	default:
		return fmt.Sprintf("LockState(%d)", uint8(s))
	}
}

// Lock drives the buffer protocol of one Window:
//
//	Idle -> GeometrySet -> Locked -> Idle       (UnlockAndPresent)
//	Idle -> GeometrySet -> LockFailed -> Idle   (Abandon)
//
// UnlockAndPost reaches the window exactly once per successful lock and
// never otherwise. A Lock is used by a single render cycle and is not safe
// for concurrent use.
type Lock struct {
	w     Window
	state LockState
	buf   Buffer

	width, height int
	format        format.PixelFormat

	lockStatus int32
	postStatus int32
}

// NewLock returns an idle Lock for w.
func NewLock(w Window) *Lock {
	return &Lock{w: w}
}

// State returns the current state.
func (l *Lock) State() LockState { return l.state }

// LockStatus returns the status of the last lock attempt.
func (l *Lock) LockStatus() int32 { return l.lockStatus }

// PostStatus returns the status of the last unlock-and-post.
func (l *Lock) PostStatus() int32 { return l.postStatus }

// SetGeometry negotiates the buffer size and format.
func (l *Lock) SetGeometry(width, height int, f format.PixelFormat) error {
	if l.state != StateIdle {
		return fmt.Errorf("%w: set geometry in state %s", ErrLockState, l.state)
	}
	l.w.SetBuffersGeometry(width, height, f)
	l.width, l.height, l.format = width, height, f
	l.state = StateGeometrySet
	return nil
}

// Acquire locks a buffer of the negotiated geometry. On a negative status
// it returns a *StatusError matching ErrLockFailed and the Lock moves to
// StateLockFailed; the caller must then Abandon instead of unlocking.
func (l *Lock) Acquire(dirty *Rect) (*Buffer, error) {
	if l.state != StateGeometrySet {
		return nil, fmt.Errorf("%w: lock in state %s", ErrLockState, l.state)
	}

	l.buf = Buffer{Width: l.width, Height: l.height, Stride: l.width, Format: l.format}
	l.lockStatus = l.w.Lock(&l.buf, dirty)
	if l.lockStatus < 0 {
		l.buf = Buffer{}
		l.state = StateLockFailed
		return nil, &StatusError{Op: opLock, Status: l.lockStatus}
	}

	l.state = StateLocked
	return &l.buf, nil
}

// UnlockAndPresent posts the locked buffer and returns to StateIdle.
// A negative status is returned as a *StatusError matching
// ErrPresentFailed; it is not retried.
func (l *Lock) UnlockAndPresent() error {
	if l.state != StateLocked {
		return fmt.Errorf("%w: unlock in state %s", ErrLockState, l.state)
	}

	l.postStatus = l.w.UnlockAndPost()
	l.buf.Bits = nil
	l.state = StateIdle
	if l.postStatus < 0 {
		return &StatusError{Op: opUnlockAndPost, Status: l.postStatus}
	}
	return nil
}

// Abandon returns a Lock that never reached StateLocked to StateIdle
// without calling the window. It is a no-op in StateLocked, which must be
// left through UnlockAndPresent.
func (l *Lock) Abandon() {
	switch l.state {
	case StateGeometrySet, StateLockFailed:
		l.state = StateIdle
	}
}

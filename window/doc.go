// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package window defines the native window handle used by winblit and the
// buffer lock protocol around it.
//
// # Window
//
// Window mirrors the platform native-window API: geometry queries, a
// reference count, buffer geometry negotiation, and Lock/UnlockAndPost for
// CPU access to the pixel buffer. Status codes are negative errno values.
//
// # Lock
//
// Lock wraps one Window and enforces the order of the protocol:
//
//	l := window.NewLock(w)
//	_ = l.SetGeometry(w.Width(), w.Height(), format.RGBA8888)
//	buf, err := l.Acquire(nil)
//	if err != nil {
//	    l.Abandon() // no unlock after a failed lock
//	    return err
//	}
//	// write buf.Bits
//	err = l.UnlockAndPresent()
//
// # Backends
//
// Memory is a Window backed by Go memory, used headless and as the buffer
// store of the desktop, terminal and display-panel backends. Backends
// register with the Registry and are created by name:
//
//	w, err := window.NewByName("memory", window.Options{Width: 720, Height: 1600})
package window

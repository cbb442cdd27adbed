// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package android wraps an ANativeWindow as a window.Window.
//
// The native handle comes from outside Go, typically
// ANativeWindow_fromSurface in a JNI entry point or the window field of an
// android_app. FromPointer takes ownership of one reference:
//
//	//export Java_com_example_Blit_drawColor
//	func Java_com_example_Blit_drawColor(env, class, nativeWindow uintptr) {
//	    w := android.FromPointer(unsafe.Pointer(nativeWindow))
//	    renderer.NotifySurfaceAvailable(ctx, w, true)
//	}
//
// The locked buffer's bits pointer is exposed as a Go slice of exactly
// stride*height*bpp bytes, valid until UnlockAndPost.
package android

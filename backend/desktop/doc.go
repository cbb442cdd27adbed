// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package desktop provides a window backend that shows posted frames in a
// desktop window through Ebitengine.
//
// The window's pixel buffer lives in Go memory (window.Memory). Every
// successful unlock-and-post copies the frame into an RGBA image which the
// Ebitengine draw loop uploads and scales to the window.
//
// Importing the package registers the "desktop" backend:
//
//	import _ "github.com/gogpu/winblit/backend/desktop"
//
//	w, err := window.NewByName("desktop", window.Options{Width: 360, Height: 800})
//	go renderer.Run(ctx, winblit.DefaultTickerConfig)
//	err = w.(window.Runner).Run(ctx) // blocks until the window closes
//
// Run must be called from the main goroutine.
package desktop

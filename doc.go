// Package winblit fills a rectangle of a window's pixel buffer with a solid
// color and presents it.
//
// # Render cycle
//
// A Renderer holds the current window in a Slot and runs one cycle per
// trigger: acquire the window, query its size, set the buffer geometry,
// lock, fill the rectangle, unlock and post, release. A failed lock skips
// the fill and the post; a failed post is reported and not retried. The
// window is released on every path.
//
//	r := winblit.New(winblit.WithFormat(format.RGBA8888))
//	defer r.Close()
//
//	w := window.NewMemory(720, 1600)
//	rep, err := r.NotifySurfaceAvailable(ctx, w, true)
//
//	// Two more frames, one second apart.
//	err = r.Run(ctx, winblit.DefaultTickerConfig)
//
// # Triggers
//
// Cycles start from a surface event (NotifySurfaceAvailable), a timer (Tick
// and Run) or directly (RenderOnce). The Slot serializes them, so at most one
// cycle holds a given window's buffer lock at a time.
//
// # Packages
//
//   - format: pixel formats and their byte widths
//   - window: the window contract, the lock state machine, an in-memory
//     window and the backend registry
//   - blit: bounds-checked rectangle fills
//   - backend/...: desktop, terminal, display-panel and Android windows
//
// # Logging
//
// winblit is silent by default. Call SetLogger to enable logging.
package winblit

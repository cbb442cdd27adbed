package winblit

import "errors"

// Errors returned by the render cycle driver. Lock, present, rectangle and
// format errors come from the window, blit and format packages and are
// wrapped, so errors.Is matches both.
var (
	// ErrNoSurface is returned when a cycle runs with no window registered.
	ErrNoSurface = errors.New("winblit: no surface available")

	// ErrTickLimit is returned by Tick once the configured maximum number
	// of timer-driven cycles has run.
	ErrTickLimit = errors.New("winblit: tick limit reached")
)

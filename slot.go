package winblit

import (
	"sync"

	"github.com/gogpu/winblit/window"
)

// Slot holds the window the renderer draws into. Set and Clear come from
// surface lifecycle events while Do runs render cycles; the mutex is held
// for the whole of Do, so at most one cycle runs against the window and a
// Clear waits until the in-flight cycle has released it.
type Slot struct {
	mu sync.Mutex
	w  window.Window
}

// Set stores w, replacing any previous window.
func (s *Slot) Set(w window.Window) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.w = w
}

// Clear empties the slot and returns the window it held, if any.
func (s *Slot) Clear() window.Window {
	s.mu.Lock()
	defer s.mu.Unlock()
	w := s.w
	s.w = nil
	return w
}

// Current returns the stored window or nil.
func (s *Slot) Current() window.Window {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.w
}

// Do calls fn with the stored window while holding the slot. It returns
// ErrNoSurface without calling fn when the slot is empty.
func (s *Slot) Do(fn func(window.Window) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.w == nil {
		return ErrNoSurface
	}
	return fn(s.w)
}

package winblit

import (
	"fmt"
	"time"

	"github.com/gogpu/winblit/format"
	"github.com/gogpu/winblit/window"
)

// Outcome is how a render cycle ended.
type Outcome uint8

const (
	// OutcomeRendered means the rectangle was filled and presented.
	OutcomeRendered Outcome = iota

	// OutcomeSkipped means no window was registered (or the tick limit was
	// reached) and nothing was called.
	OutcomeSkipped

	// OutcomeLockFailed means lock returned a negative status. Nothing was
	// written and the window was released.
	OutcomeLockFailed

	// OutcomePresentFailed means unlock-and-post returned a negative status.
	OutcomePresentFailed

	// OutcomeRejected means the rectangle or color did not fit the locked
	// buffer. The buffer was presented unchanged.
	OutcomeRejected
)

func (o Outcome) String() string {
	switch o {
	case OutcomeRendered:
		return "rendered"
	case OutcomeSkipped:
		return "skipped"
	case OutcomeLockFailed:
		return "lock-failed"
	case OutcomePresentFailed:
		return "present-failed"
	case OutcomeRejected:
		return "rejected"
	default:
		return fmt.Sprintf("Outcome(%d)", uint8(o))
	}
}

// Trigger is what started a render cycle.
type Trigger uint8

const (
	TriggerManual Trigger = iota // RenderOnce
	TriggerEvent                 // NotifySurfaceAvailable
	TriggerTimer                 // Tick and Run
)

func (t Trigger) String() string {
	switch t {
	case TriggerManual:
		return "manual"
	case TriggerEvent:
		return "event"
	case TriggerTimer:
		return "timer"
	default:
		return fmt.Sprintf("Trigger(%d)", uint8(t))
	}
}

// Report describes one render cycle.
type Report struct {
	Outcome Outcome
	Trigger Trigger

	// Width and Height are the window size queried at the start of the cycle.
	Width  int
	Height int
	Format format.PixelFormat

	// Rect is the rectangle that was filled, after clamping.
	Rect window.Rect

	LockStatus int32
	PostStatus int32
	Duration   time.Duration
}

// Stats counts render cycles by outcome.
type Stats struct {
	Cycles          int
	Ticks           int
	Rendered        int
	Skipped         int
	LockFailures    int
	PresentFailures int
	Rejected        int
}

func (s *Stats) add(o Outcome) {
	s.Cycles++
	switch o {
	case OutcomeRendered:
		s.Rendered++
	case OutcomeSkipped:
		s.Skipped++
	case OutcomeLockFailed:
		s.LockFailures++
	case OutcomePresentFailed:
		s.PresentFailures++
	case OutcomeRejected:
		s.Rejected++
	}
}

// Package progress is the fire-and-forget side channel for run progress.
// It only informs; pipeline outcomes are identical whether or not anyone
// listens.
package progress

import (
	"sync"
	"time"
)

// DefaultInterval matches the UI throttle the tool grew up with: at most
// one event per 100ms.
const DefaultInterval = 100 * time.Millisecond

// Event is one progress update.
type Event struct {
	Percentage int
	Label      string
}

// Func receives events. It is called inline and must return quickly.
type Func func(Event)

// Reporter debounces events to at most one per interval. A nil Reporter
// (or nil Func) is a no-op, so callers report unconditionally.
type Reporter struct {
	fn       Func
	interval time.Duration

	mu   sync.Mutex
	last time.Time
}

// New builds a Reporter. interval <= 0 selects DefaultInterval.
func New(fn Func, interval time.Duration) *Reporter {
	if interval <= 0 {
		interval = DefaultInterval
	}
	return &Reporter{fn: fn, interval: interval}
}

// Report forwards the event unless one was forwarded within the debounce
// interval.
func (r *Reporter) Report(percentage int, label string) {
	if r == nil || r.fn == nil {
		return
	}
	r.mu.Lock()
	now := time.Now()
	if now.Sub(r.last) < r.interval {
		r.mu.Unlock()
		return
	}
	r.last = now
	r.mu.Unlock()

	r.fn(Event{Percentage: percentage, Label: label})
}

// Done always delivers a terminal 100% event, bypassing the debounce.
func (r *Reporter) Done(label string) {
	if r == nil || r.fn == nil {
		return
	}
	r.fn(Event{Percentage: 100, Label: label})
}

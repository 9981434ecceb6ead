package autocomplete

import (
	"sync"
	"time"
)

// Timer is a pending call that can be stopped before it fires.
type Timer interface {
	Stop() bool
}

// AfterFunc schedules f after d. time.AfterFunc is the production
// implementation; tests inject a manual clock.
type AfterFunc func(d time.Duration, f func()) Timer

func realAfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}

// Debouncer runs only the last of a burst of calls, once delay has passed
// without a newer one.
type Debouncer struct {
	mu    sync.Mutex
	delay time.Duration
	after AfterFunc
	timer Timer
}

func NewDebouncer(delay time.Duration, after AfterFunc) *Debouncer {
	if after == nil {
		after = realAfterFunc
	}
	return &Debouncer{delay: delay, after: after}
}

// Trigger stops the pending call, if any, and schedules f. It reports
// whether a call was stopped before firing.
func (d *Debouncer) Trigger(f func()) (replaced bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.timer != nil {
		replaced = d.timer.Stop()
	}
	d.timer = d.after(d.delay, f)
	return replaced
}

// Cancel stops the pending call. It reports whether one was stopped
// before firing.
func (d *Debouncer) Cancel() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.timer == nil {
		return false
	}
	stopped := d.timer.Stop()
	d.timer = nil
	return stopped
}

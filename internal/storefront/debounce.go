package storefront

import (
	"sync"
	"time"
)

const DebounceInterval = 300 * time.Millisecond

// SearchDebouncer collapses a rapid input stream to at most one downstream
// emission per quiet period. Consecutive duplicate values are suppressed,
// so retyping the same query does not re-trigger a load.
type SearchDebouncer struct {
	mu      sync.Mutex
	delay   time.Duration
	timer   *time.Timer
	pending string
	last    string
	emitted bool
	emit    func(query string)
}

func NewSearchDebouncer(delay time.Duration, emit func(query string)) *SearchDebouncer {
	if delay <= 0 {
		delay = DebounceInterval
	}
	return &SearchDebouncer{delay: delay, emit: emit}
}

// Input records a keystroke and restarts the quiet-period timer.
func (d *SearchDebouncer) Input(query string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.pending = query
	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.delay, d.fire)
}

// Flush emits the pending value immediately, bypassing the timer.
func (d *SearchDebouncer) Flush() {
	d.mu.Lock()
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
	d.mu.Unlock()
	d.fire()
}

// Stop cancels any pending emission.
func (d *SearchDebouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}

func (d *SearchDebouncer) fire() {
	d.mu.Lock()
	if d.emitted && d.pending == d.last {
		d.mu.Unlock()
		return
	}
	d.last = d.pending
	d.emitted = true
	value := d.pending
	emit := d.emit
	d.mu.Unlock()
	emit(value)
}

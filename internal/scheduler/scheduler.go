package scheduler

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.uber.org/zap"
)

var ErrStopped = errors.New("scheduler stopped")

// Sleep waits for d or until ctx is done, whichever comes first. A
// non-positive d returns immediately.
func Sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}

	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// Debouncer coalesces bursts of Trigger calls into a single run of fn once
// the delay has passed without another trigger. After Stop no further runs
// happen and Trigger returns ErrStopped.
type Debouncer struct {
	fn      func()
	delay   time.Duration
	logger  *zap.Logger
	timer   *time.Timer
	gen     uint64
	runs    int
	stopped bool
	mu      sync.Mutex
}

func NewDebouncer(delay time.Duration, fn func(), logger *zap.Logger) *Debouncer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Debouncer{fn: fn, delay: delay, logger: logger}
}

func (d *Debouncer) Trigger() error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.stopped {
		return ErrStopped
	}
	if d.timer != nil {
		d.timer.Stop()
	}
	d.gen++
	gen := d.gen
	d.timer = time.AfterFunc(d.delay, func() { d.fire(gen) })
	return nil
}

// fire runs fn unless a later Trigger or Stop superseded this timer.
func (d *Debouncer) fire(gen uint64) {
	d.mu.Lock()
	if d.stopped || gen != d.gen {
		d.mu.Unlock()
		return
	}
	d.timer = nil
	d.runs++
	d.mu.Unlock()

	defer func() {
		if r := recover(); r != nil {
			d.logger.Error("debounced run panicked", zap.Any("panic", r))
		}
	}()
	d.fn()
}

// Pending reports whether a run is scheduled.
func (d *Debouncer) Pending() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.timer != nil
}

func (d *Debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.stopped {
		return
	}
	d.stopped = true
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
	d.logger.Debug("debouncer stopped", zap.Int("runs", d.runs))
}

// GetStatus returns the current debouncer state.
func (d *Debouncer) GetStatus() map[string]interface{} {
	d.mu.Lock()
	defer d.mu.Unlock()

	return map[string]interface{}{
		"pending": d.timer != nil,
		"stopped": d.stopped,
		"runs":    d.runs,
		"delay":   d.delay.String(),
	}
}

package chart

import (
	"sync"
	"time"

	"github.com/cleancity/api/internal/model"
	"github.com/cleancity/api/internal/scheduler"
	"go.uber.org/zap"
)

// Drawer owns the current chart set. Report changes call Invalidate; the
// redraw runs once after the delay, no matter how many changes arrived.
type Drawer struct {
	source    func() []model.Report
	now       func() time.Time
	logger    *zap.Logger
	onRedraw  func()
	debouncer *scheduler.Debouncer

	mu       sync.Mutex
	current  *Set
	version  int64
	disposed int
}

type Option func(*Drawer)

func WithClock(now func() time.Time) Option {
	return func(d *Drawer) { d.now = now }
}

func WithLogger(logger *zap.Logger) Option {
	return func(d *Drawer) { d.logger = logger }
}

// WithRedrawHook runs fn after each completed redraw.
func WithRedrawHook(fn func()) Option {
	return func(d *Drawer) { d.onRedraw = fn }
}

func NewDrawer(source func() []model.Report, delay time.Duration, opts ...Option) *Drawer {
	d := &Drawer{
		source: source,
		now:    time.Now,
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(d)
	}
	d.debouncer = scheduler.NewDebouncer(delay, func() { d.Redraw() }, d.logger)
	return d
}

// Invalidate schedules a redraw, replacing any pending one. It is a no-op
// after Close.
func (d *Drawer) Invalidate() {
	if err := d.debouncer.Trigger(); err != nil {
		d.logger.Debug("redraw skipped", zap.Error(err))
	}
}

// Redraw disposes the current set and builds a new one from the source.
func (d *Drawer) Redraw() Set {
	reports := d.source()

	d.mu.Lock()
	defer d.mu.Unlock()

	if d.current != nil {
		d.current.Charts = nil
		d.current = nil
		d.disposed++
	}

	d.version++
	set := &Set{
		Version: d.version,
		BuiltAt: d.now().UTC(),
		Charts:  Build(reports, d.now()),
	}
	d.current = set

	d.logger.Debug("charts redrawn", zap.Int64("version", set.Version), zap.Int("reports", len(reports)))
	if d.onRedraw != nil {
		d.onRedraw()
	}
	return *set
}

// Current returns the live set, drawing it first if none exists yet.
func (d *Drawer) Current() Set {
	d.mu.Lock()
	if d.current != nil {
		set := *d.current
		d.mu.Unlock()
		return set
	}
	d.mu.Unlock()
	return d.Redraw()
}

// Disposed is the number of sets torn down by redraws.
func (d *Drawer) Disposed() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.disposed
}

func (d *Drawer) Pending() bool {
	return d.debouncer.Pending()
}

// Close cancels a pending redraw. The last set stays readable.
func (d *Drawer) Close() {
	d.debouncer.Stop()
}

package repository

import (
	"context"
	"sync"
	"time"

	"github.com/cleancity/api/internal/model"
	"github.com/cleancity/api/internal/store"
	"go.uber.org/zap"
)

// ReportRepository holds the newest-first report list and writes the whole
// list back to its collection after every mutation.
type ReportRepository struct {
	mu          sync.RWMutex
	coll        *store.Collection[model.Report]
	reports     []model.Report
	lastID      int64
	subscribers []func()
	settings
}

func NewReportRepository(coll *store.Collection[model.Report], opts ...Option) *ReportRepository {
	return &ReportRepository{
		coll:     coll,
		reports:  []model.Report{},
		settings: newSettings(opts),
	}
}

// Load hydrates the repository from storage. Missing or malformed data
// leaves it empty.
func (r *ReportRepository) Load(ctx context.Context) []model.Report {
	reports := r.coll.Load(ctx)

	r.mu.Lock()
	r.reports = reports
	r.lastID = 0
	for _, rep := range reports {
		if rep.ID > r.lastID {
			r.lastID = rep.ID
		}
	}
	r.mu.Unlock()

	r.logger.Info("reports loaded", zap.Int("count", len(reports)))
	return r.List()
}

// List returns a copy of the reports, newest first.
func (r *ReportRepository) List() []model.Report {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]model.Report, len(r.reports))
	copy(out, r.reports)
	return out
}

func (r *ReportRepository) Get(id int64) (model.Report, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if i := r.indexLocked(id); i >= 0 {
		return r.reports[i], true
	}
	return model.Report{}, false
}

// OnChange registers fn to run after every mutation.
func (r *ReportRepository) OnChange(fn func()) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.subscribers = append(r.subscribers, fn)
}

// Add files a new report at the head of the list. The id is the creation
// time in milliseconds, bumped past the largest known id on collision.
func (r *ReportRepository) Add(ctx context.Context, in model.ReportInput) (model.Report, error) {
	r.mu.Lock()
	now := r.now()
	id := now.UnixMilli()
	if id <= r.lastID {
		id = r.lastID + 1
	}
	r.lastID = id

	rep := model.Report{
		ID:          id,
		Name:        in.Name,
		Contact:     in.Contact,
		Location:    in.Location,
		WasteType:   in.WasteType,
		Description: in.Description,
		Photo:       in.Photo,
		Status:      model.StatusSubmitted,
		Date:        now,
	}
	r.reports = append([]model.Report{rep}, r.reports...)
	err := r.flushLocked(ctx)
	r.mu.Unlock()

	r.notify()
	return rep, err
}

// UpdateStatus sets the status of report id and stamps its update time.
// An unknown id changes nothing and is not an error.
func (r *ReportRepository) UpdateStatus(ctx context.Context, id int64, status model.Status) (bool, error) {
	r.mu.Lock()
	found := r.setStatusLocked(id, status)
	err := r.flushLocked(ctx)
	r.mu.Unlock()

	if found {
		r.notify()
	}
	return found, err
}

// Advance moves report id one step forward in its lifecycle. An unknown id
// is a silent no-op; a report with no next step returns ErrNoNextStatus.
func (r *ReportRepository) Advance(ctx context.Context, id int64) (model.Report, bool, error) {
	r.mu.Lock()
	i := r.indexLocked(id)
	if i < 0 {
		r.mu.Unlock()
		return model.Report{}, false, nil
	}

	next, ok := r.reports[i].Status.Next()
	if !ok {
		rep := r.reports[i]
		r.mu.Unlock()
		return rep, true, ErrNoNextStatus
	}

	r.setStatusLocked(id, next)
	rep := r.reports[i]
	err := r.flushLocked(ctx)
	r.mu.Unlock()

	r.notify()
	return rep, true, err
}

func (r *ReportRepository) setStatusLocked(id int64, status model.Status) bool {
	i := r.indexLocked(id)
	if i < 0 {
		return false
	}

	updated := r.now()
	r.reports[i].Status = status
	r.reports[i].UpdatedAt = &updated
	return true
}

func (r *ReportRepository) indexLocked(id int64) int {
	for i := range r.reports {
		if r.reports[i].ID == id {
			return i
		}
	}
	return -1
}

// flushLocked writes the whole list. A failed write keeps the in-memory
// change; the next successful flush persists it.
func (r *ReportRepository) flushLocked(ctx context.Context) error {
	if err := r.coll.Save(ctx, r.reports); err != nil {
		r.logger.Error("flush reports failed", zap.Error(err), zap.Int("count", len(r.reports)))
		return err
	}
	return nil
}

func (r *ReportRepository) notify() {
	r.mu.RLock()
	subs := make([]func(), len(r.subscribers))
	copy(subs, r.subscribers)
	r.mu.RUnlock()

	for _, fn := range subs {
		fn()
	}
}

// SetClock is used by seeding tools that backdate reports.
func (r *ReportRepository) SetClock(now func() time.Time) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.now = now
}

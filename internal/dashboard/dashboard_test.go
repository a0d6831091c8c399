package dashboard_test

import (
	"testing"
	"time"

	"github.com/cleancity/api/internal/dashboard"
	"github.com/cleancity/api/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

func report(id int64, status model.Status, created time.Time) model.Report {
	return model.Report{ID: id, Status: status, Date: created, WasteType: model.WasteOther}
}

func TestResolutionRate(t *testing.T) {
	assert.Equal(t, 0, dashboard.ResolutionRate(0, 0))
	assert.Equal(t, 33, dashboard.ResolutionRate(1, 3))
	assert.Equal(t, 67, dashboard.ResolutionRate(2, 3))
	assert.Equal(t, 50, dashboard.ResolutionRate(1, 2))
	assert.Equal(t, 100, dashboard.ResolutionRate(4, 4))

	assert.Equal(t, 0, dashboard.CountByStatus(nil).ResolutionRate())
}

func TestCountByStatus(t *testing.T) {
	reports := []model.Report{
		report(1, model.StatusSubmitted, now),
		report(2, model.StatusSubmitted, now),
		report(3, model.StatusInProgress, now),
		report(4, model.StatusResolved, now),
		report(5, model.StatusAdminOnly, now),
	}

	counts := dashboard.CountByStatus(reports)
	assert.Equal(t, dashboard.StatusCounts{Submitted: 2, InProgress: 1, Resolved: 1, Total: 5}, counts)
	assert.Equal(t, 3, counts.Active())
	assert.Equal(t, 20, counts.ResolutionRate())
}

func TestRecentActivity(t *testing.T) {
	updated := now.Add(time.Hour)
	older := report(1, model.StatusResolved, now.Add(-48*time.Hour))
	older.UpdatedAt = &updated

	reports := []model.Report{
		report(7, model.StatusSubmitted, now.Add(-1*time.Hour)),
		report(6, model.StatusSubmitted, now.Add(-2*time.Hour)),
		report(5, model.StatusSubmitted, now.Add(-2*time.Hour)),
		report(4, model.StatusSubmitted, now.Add(-3*time.Hour)),
		report(3, model.StatusSubmitted, now.Add(-4*time.Hour)),
		report(2, model.StatusSubmitted, now.Add(-5*time.Hour)),
		older,
	}
	snapshot := append([]model.Report(nil), reports...)

	got := dashboard.RecentActivity(reports, 5)
	require.Len(t, got, 5)

	ids := make([]int64, len(got))
	for i, r := range got {
		ids[i] = r.ID
	}
	assert.Equal(t, []int64{1, 7, 6, 5, 4}, ids, "update stamp wins and ties keep list order")
	assert.Equal(t, snapshot, reports, "input is not reordered")
}

func TestClassifyPriority(t *testing.T) {
	tests := []struct {
		name        string
		wasteType   model.WasteType
		description string
		want        model.Priority
	}{
		{"hazardous type", model.WasteHazardous, "paint cans", model.PriorityHigh},
		{"keyword block", model.WasteIllegalDumping, "trash pile blocking sidewalk", model.PriorityHigh},
		{"keyword case insensitive", model.WasteOther, "EMERGENCY at the corner", model.PriorityHigh},
		{"keyword overflow", model.WasteOverflowingGarbage, "bin Overflowing again", model.PriorityHigh},
		{"keyword danger", model.WasteRecyclingIssue, "dangerous glass", model.PriorityHigh},
		{"illegal dumping", model.WasteIllegalDumping, "old sofa", model.PriorityMedium},
		{"default", model.WasteRecyclingIssue, "missed pickup", model.PriorityLow},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := model.Report{WasteType: tt.wasteType, Description: tt.description}
			assert.Equal(t, tt.want, dashboard.ClassifyPriority(r))
		})
	}
}

func TestCountByType(t *testing.T) {
	reports := []model.Report{
		{WasteType: model.WasteOther},
		{WasteType: model.WasteHazardous},
		{WasteType: model.WasteOther},
	}

	assert.Equal(t, []dashboard.TypeCount{
		{WasteType: model.WasteHazardous, Label: "Hazardous Waste", Count: 1},
		{WasteType: model.WasteOther, Label: "Other", Count: 2},
	}, dashboard.CountByType(reports))

	assert.NotNil(t, dashboard.CountByType(nil))
}

func TestMonthlyTrend(t *testing.T) {
	reports := []model.Report{
		report(1, model.StatusSubmitted, now),
		report(2, model.StatusSubmitted, time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)),
		report(3, model.StatusSubmitted, time.Date(2025, 3, 31, 23, 0, 0, 0, time.UTC)),
		report(4, model.StatusSubmitted, time.Date(2025, 1, 2, 0, 0, 0, 0, time.UTC)),
		report(5, model.StatusSubmitted, time.Date(2024, 12, 31, 0, 0, 0, 0, time.UTC)),
	}

	got := dashboard.MonthlyTrend(reports, now, 6)
	assert.Equal(t, []dashboard.MonthCount{
		{Month: "Jan", Count: 1},
		{Month: "Feb", Count: 0},
		{Month: "Mar", Count: 1},
		{Month: "Apr", Count: 0},
		{Month: "May", Count: 0},
		{Month: "Jun", Count: 2},
	}, got)

	t.Run("spans a year boundary", func(t *testing.T) {
		feb := time.Date(2025, 2, 10, 0, 0, 0, 0, time.UTC)
		got := dashboard.MonthlyTrend(reports, feb, 3)
		assert.Equal(t, []dashboard.MonthCount{
			{Month: "Dec", Count: 1},
			{Month: "Jan", Count: 1},
			{Month: "Feb", Count: 0},
		}, got)
	})
}

func TestAverageResolutionDays(t *testing.T) {
	assert.Equal(t, 0.0, dashboard.AverageResolutionDays(nil))

	resolvedAt := func(created time.Time, after time.Duration) model.Report {
		r := report(1, model.StatusResolved, created)
		u := created.Add(after)
		r.UpdatedAt = &u
		return r
	}

	reports := []model.Report{
		resolvedAt(now, 24*time.Hour),
		resolvedAt(now, 48*time.Hour),
		report(3, model.StatusResolved, now),
		report(4, model.StatusInProgress, now),
	}
	assert.Equal(t, 1.5, dashboard.AverageResolutionDays(reports))
}

func TestBuildUserHidesAdminOnly(t *testing.T) {
	reports := []model.Report{
		report(3, model.StatusAdminOnly, now),
		report(2, model.StatusSubmitted, now.Add(-time.Hour)),
		report(1, model.StatusResolved, now.Add(-2*time.Hour)),
	}

	user := dashboard.BuildUser(reports)
	assert.Equal(t, 2, user.Counts.Total)
	require.Len(t, user.Recent, 2)
	assert.Equal(t, int64(2), user.Recent[0].ID)
	for _, r := range user.Activity {
		assert.NotEqual(t, model.StatusAdminOnly, r.Status)
	}
}

func TestBuildUserRecentFollowsActivity(t *testing.T) {
	updated := now.Add(time.Minute)
	oldButTouched := report(1, model.StatusResolved, now.AddDate(0, 0, -30))
	oldButTouched.UpdatedAt = &updated

	reports := []model.Report{
		report(5, model.StatusSubmitted, now),
		report(4, model.StatusSubmitted, now.Add(-time.Hour)),
		report(3, model.StatusSubmitted, now.Add(-2*time.Hour)),
		report(2, model.StatusSubmitted, now.Add(-3*time.Hour)),
		oldButTouched,
	}

	user := dashboard.BuildUser(reports)
	require.Len(t, user.Recent, dashboard.UserRecentLimit)
	ids := make([]int64, 0, len(user.Recent))
	for _, r := range user.Recent {
		ids = append(ids, r.ID)
	}
	assert.Equal(t, []int64{1, 5, 4, 3}, ids)
	assert.Equal(t, int64(5), reports[0].ID, "input order is untouched")
}

func TestBuildAdmin(t *testing.T) {
	reports := []model.Report{
		{ID: 2, Status: model.StatusSubmitted, WasteType: model.WasteIllegalDumping, Description: "trash pile blocking sidewalk", Date: now},
		{ID: 1, Status: model.StatusResolved, WasteType: model.WasteOther, Description: "ok", Date: now},
	}

	admin := dashboard.BuildAdmin(reports, now)
	assert.Equal(t, 50, admin.ResolutionRate)
	assert.Equal(t, 1, admin.ActiveIssues)
	require.Len(t, admin.Rows, 2)
	assert.Equal(t, model.PriorityHigh, admin.Rows[0].Priority)
	assert.Equal(t, model.PriorityLow, admin.Rows[1].Priority)
	assert.Len(t, admin.Trend, dashboard.TrendMonths)
}

func TestBuildHome(t *testing.T) {
	var reports []model.Report
	for i := 10; i > 0; i-- {
		reports = append(reports, report(int64(i), model.StatusInProgress, now))
	}

	home := dashboard.BuildHome(reports)
	assert.Len(t, home.Recent, dashboard.HomeRecentLimit)
	assert.Equal(t, int64(10), home.Recent[0].ID)
	assert.Equal(t, 10, home.Counts.InProgress)
	assert.Equal(t, 0, home.ResolutionRate)
}

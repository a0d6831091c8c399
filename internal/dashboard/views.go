package dashboard

import (
	"time"

	"github.com/cleancity/api/internal/filter"
	"github.com/cleancity/api/internal/model"
)

type Home struct {
	Counts         StatusCounts   `json:"counts"`
	ResolutionRate int            `json:"resolutionRate"`
	Recent         []model.Report `json:"recent"`
}

func BuildHome(reports []model.Report) Home {
	counts := CountByStatus(reports)
	return Home{
		Counts:         counts,
		ResolutionRate: counts.ResolutionRate(),
		Recent:         head(reports, HomeRecentLimit),
	}
}

// User is the resident dashboard. Reports marked admin-only are hidden.
type User struct {
	Counts   StatusCounts   `json:"counts"`
	Recent   []model.Report `json:"recent"`
	Activity []model.Report `json:"activity"`
}

func BuildUser(reports []model.Report) User {
	visible := filter.ExcludeStatus(reports, model.StatusAdminOnly)

	return User{
		Counts:   CountByStatus(visible),
		Recent:   RecentActivity(visible, UserRecentLimit),
		Activity: RecentActivity(visible, RecentActivityLimit),
	}
}

type AdminRow struct {
	Report   model.Report   `json:"report"`
	Priority model.Priority `json:"priority"`
}

type Admin struct {
	Counts                StatusCounts `json:"counts"`
	ResolutionRate        int          `json:"resolutionRate"`
	ActiveIssues          int          `json:"activeIssues"`
	AverageResolutionDays float64      `json:"averageResolutionDays"`
	ByType                []TypeCount  `json:"byType"`
	Trend                 []MonthCount `json:"trend"`
	Rows                  []AdminRow   `json:"rows"`
}

func BuildAdmin(reports []model.Report, now time.Time) Admin {
	counts := CountByStatus(reports)

	rows := make([]AdminRow, 0, len(reports))
	for _, r := range reports {
		rows = append(rows, AdminRow{Report: r, Priority: ClassifyPriority(r)})
	}

	return Admin{
		Counts:                counts,
		ResolutionRate:        counts.ResolutionRate(),
		ActiveIssues:          counts.Active(),
		AverageResolutionDays: AverageResolutionDays(reports),
		ByType:                CountByType(reports),
		Trend:                 MonthlyTrend(reports, now, TrendMonths),
		Rows:                  rows,
	}
}

func head(reports []model.Report, n int) []model.Report {
	if len(reports) > n {
		reports = reports[:n]
	}
	out := make([]model.Report, len(reports))
	copy(out, reports)
	return out
}

package dashboard

import (
	"math"
	"sort"
	"strings"
	"time"

	"github.com/cleancity/api/internal/model"
)

const (
	RecentActivityLimit = 5
	HomeRecentLimit     = 6
	UserRecentLimit     = 4
	TrendMonths         = 6
)

// urgentWords raise a report to high priority when found in its description.
var urgentWords = []string{"emergency", "danger", "overflow", "block"}

type StatusCounts struct {
	Submitted  int `json:"submitted"`
	InProgress int `json:"inProgress"`
	Resolved   int `json:"resolved"`
	Total      int `json:"total"`
}

// Active is the number of reports still needing attention.
func (c StatusCounts) Active() int {
	return c.Submitted + c.InProgress
}

func (c StatusCounts) ResolutionRate() int {
	return ResolutionRate(c.Resolved, c.Total)
}

func CountByStatus(reports []model.Report) StatusCounts {
	counts := StatusCounts{Total: len(reports)}
	for _, r := range reports {
		switch r.Status {
		case model.StatusSubmitted:
			counts.Submitted++
		case model.StatusInProgress:
			counts.InProgress++
		case model.StatusResolved:
			counts.Resolved++
		}
	}
	return counts
}

// ResolutionRate is resolved/total as a rounded percentage, 0 when total is 0.
func ResolutionRate(resolved, total int) int {
	if total <= 0 {
		return 0
	}
	return int(math.Round(float64(resolved) / float64(total) * 100))
}

// RecentActivity returns the n reports with the latest activity time. The
// input is not reordered; ties keep list order.
func RecentActivity(reports []model.Report, n int) []model.Report {
	sorted := make([]model.Report, len(reports))
	copy(sorted, reports)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].ActivityTime().After(sorted[j].ActivityTime())
	})
	if len(sorted) > n {
		sorted = sorted[:n]
	}
	return sorted
}

// ClassifyPriority is advisory only; it never affects storage or order.
func ClassifyPriority(r model.Report) model.Priority {
	if r.WasteType == model.WasteHazardous {
		return model.PriorityHigh
	}
	description := strings.ToLower(r.Description)
	for _, word := range urgentWords {
		if strings.Contains(description, word) {
			return model.PriorityHigh
		}
	}
	if r.WasteType == model.WasteIllegalDumping {
		return model.PriorityMedium
	}
	return model.PriorityLow
}

type TypeCount struct {
	WasteType model.WasteType `json:"wasteType"`
	Label     string          `json:"label"`
	Count     int             `json:"count"`
}

// CountByType counts reports per waste type in form order, omitting types
// with no reports.
func CountByType(reports []model.Report) []TypeCount {
	counts := make(map[model.WasteType]int)
	for _, r := range reports {
		counts[r.WasteType]++
	}

	out := []TypeCount{}
	for _, wt := range model.WasteTypes() {
		if n := counts[wt]; n > 0 {
			out = append(out, TypeCount{WasteType: wt, Label: wt.Label(), Count: n})
		}
	}
	return out
}

type MonthCount struct {
	Month string `json:"month"`
	Count int    `json:"count"`
}

// MonthlyTrend counts reports created in each of the last months calendar
// months up to and including the month of now, oldest first.
func MonthlyTrend(reports []model.Report, now time.Time, months int) []MonthCount {
	now = now.UTC()
	current := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	start := current.AddDate(0, -(months - 1), 0)

	out := make([]MonthCount, months)
	for i := range out {
		out[i].Month = start.AddDate(0, i, 0).Format("Jan")
	}

	for _, r := range reports {
		d := r.Date.UTC()
		idx := (d.Year()-start.Year())*12 + int(d.Month()) - int(start.Month())
		if idx >= 0 && idx < months {
			out[idx].Count++
		}
	}
	return out
}

// AverageResolutionDays is the mean time from filing to the last update of
// resolved reports, in days rounded to one decimal.
func AverageResolutionDays(reports []model.Report) float64 {
	var total time.Duration
	n := 0
	for _, r := range reports {
		if r.Status != model.StatusResolved || r.UpdatedAt == nil {
			continue
		}
		total += r.UpdatedAt.Sub(r.Date)
		n++
	}
	if n == 0 {
		return 0
	}
	days := total.Hours() / 24 / float64(n)
	return math.Round(days*10) / 10
}

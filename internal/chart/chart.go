// Package chart builds the admin dashboard charts as Chart.js configs. The
// browser draws whatever set the server currently holds.
package chart

import (
	"time"

	"github.com/cleancity/api/internal/dashboard"
	"github.com/cleancity/api/internal/model"
)

const (
	colorSubmitted  = "#3b82f6"
	colorInProgress = "#f59e0b"
	colorResolved   = "#22c55e"
	colorFill       = "rgba(34, 197, 94, 0.1)"
)

// Canvas ids in the admin view.
const (
	StatusCanvas = "statusChart"
	TypeCanvas   = "typeChart"
	TrendCanvas  = "trendChart"
)

type Dataset struct {
	Label           string  `json:"label,omitempty"`
	Data            []int   `json:"data"`
	BackgroundColor any     `json:"backgroundColor,omitempty"`
	BorderColor     string  `json:"borderColor,omitempty"`
	BorderWidth     *int    `json:"borderWidth,omitempty"`
	BorderRadius    int     `json:"borderRadius,omitempty"`
	Fill            bool    `json:"fill,omitempty"`
	Tension         float64 `json:"tension,omitempty"`
}

type Data struct {
	Labels   []string  `json:"labels"`
	Datasets []Dataset `json:"datasets"`
}

// Spec is one chart, shaped like the Chart.js constructor config plus the
// canvas it belongs to.
type Spec struct {
	Canvas  string         `json:"canvas"`
	Type    string         `json:"type"`
	Data    Data           `json:"data"`
	Options map[string]any `json:"options"`
}

// Set is the three admin charts built from one snapshot of the reports.
type Set struct {
	Version int64     `json:"version"`
	BuiltAt time.Time `json:"builtAt"`
	Charts  []Spec    `json:"charts"`
}

func Build(reports []model.Report, now time.Time) []Spec {
	return []Spec{
		StatusDoughnut(dashboard.CountByStatus(reports)),
		TypeBar(dashboard.CountByType(reports)),
		TrendLine(dashboard.MonthlyTrend(reports, now, dashboard.TrendMonths)),
	}
}

func StatusDoughnut(c dashboard.StatusCounts) Spec {
	noBorder := 0
	return Spec{
		Canvas: StatusCanvas,
		Type:   "doughnut",
		Data: Data{
			Labels: []string{
				model.StatusSubmitted.Label(),
				model.StatusInProgress.Label(),
				model.StatusResolved.Label(),
			},
			Datasets: []Dataset{{
				Data:            []int{c.Submitted, c.InProgress, c.Resolved},
				BackgroundColor: []string{colorSubmitted, colorInProgress, colorResolved},
				BorderWidth:     &noBorder,
			}},
		},
		Options: map[string]any{
			"responsive": true,
			"plugins": map[string]any{
				"legend": map[string]any{"position": "bottom"},
			},
		},
	}
}

func TypeBar(counts []dashboard.TypeCount) Spec {
	labels := make([]string, 0, len(counts))
	data := make([]int, 0, len(counts))
	for _, tc := range counts {
		labels = append(labels, tc.Label)
		data = append(data, tc.Count)
	}

	return Spec{
		Canvas: TypeCanvas,
		Type:   "bar",
		Data: Data{
			Labels: labels,
			Datasets: []Dataset{{
				Label:           "Reports by Type",
				Data:            data,
				BackgroundColor: colorResolved,
				BorderRadius:    8,
			}},
		},
		Options: axisOptions(),
	}
}

func TrendLine(months []dashboard.MonthCount) Spec {
	labels := make([]string, 0, len(months))
	data := make([]int, 0, len(months))
	for _, m := range months {
		labels = append(labels, m.Month)
		data = append(data, m.Count)
	}

	return Spec{
		Canvas: TrendCanvas,
		Type:   "line",
		Data: Data{
			Labels: labels,
			Datasets: []Dataset{{
				Label:           "Monthly Reports",
				Data:            data,
				BorderColor:     colorResolved,
				BackgroundColor: colorFill,
				Fill:            true,
				Tension:         0.4,
			}},
		},
		Options: axisOptions(),
	}
}

func axisOptions() map[string]any {
	return map[string]any{
		"responsive": true,
		"plugins": map[string]any{
			"legend": map[string]any{"display": false},
		},
		"scales": map[string]any{
			"y": map[string]any{"beginAtZero": true},
		},
	}
}

package model

import "time"

// Report is one citizen-filed waste complaint. Field names match the
// stored collection format.
type Report struct {
	ID          int64      `json:"id"`
	Name        string     `json:"name"`
	Contact     string     `json:"contact"`
	Location    string     `json:"location"`
	WasteType   WasteType  `json:"wasteType"`
	Description string     `json:"description"`
	Photo       string     `json:"photo,omitempty"`
	Status      Status     `json:"status"`
	Date        time.Time  `json:"date"`
	UpdatedAt   *time.Time `json:"updatedAt,omitempty"`
}

// ActivityTime is the update stamp when present, otherwise the creation time.
func (r Report) ActivityTime() time.Time {
	if r.UpdatedAt != nil {
		return *r.UpdatedAt
	}
	return r.Date
}

// ReportInput carries the fields a resident fills in on the report form.
type ReportInput struct {
	Name        string
	Contact     string
	Location    string
	WasteType   WasteType
	Description string
	Photo       string
}

// Status constants
type Status string

const (
	StatusSubmitted  Status = "submitted"
	StatusInProgress Status = "in-progress"
	StatusResolved   Status = "resolved"
	StatusAdminOnly  Status = "admin-only"
)

// Statuses lists every known status in lifecycle order.
func Statuses() []Status {
	return []Status{StatusSubmitted, StatusInProgress, StatusResolved, StatusAdminOnly}
}

func (s Status) Valid() bool {
	switch s {
	case StatusSubmitted, StatusInProgress, StatusResolved, StatusAdminOnly:
		return true
	}
	return false
}

// Next returns the status the advance button moves to. ok is false for
// statuses that have no forward step.
func (s Status) Next() (next Status, ok bool) {
	switch s {
	case StatusSubmitted:
		return StatusInProgress, true
	case StatusInProgress:
		return StatusResolved, true
	}
	return s, false
}

// ActionLabel is the admin table button caption for advancing s.
func (s Status) ActionLabel() string {
	switch s {
	case StatusSubmitted:
		return "Start"
	case StatusInProgress:
		return "Resolve"
	}
	return ""
}

func (s Status) Label() string {
	switch s {
	case StatusSubmitted:
		return "Submitted"
	case StatusInProgress:
		return "In Progress"
	case StatusResolved:
		return "Resolved"
	case StatusAdminOnly:
		return "Admin Only"
	}
	return string(s)
}

func (s Status) Icon() string {
	switch s {
	case StatusInProgress:
		return "⚙️"
	case StatusResolved:
		return "✅"
	}
	return "📝"
}

// ActivityMessage is the timeline headline for a report in status s.
func (s Status) ActivityMessage() string {
	switch s {
	case StatusSubmitted:
		return "New report submitted"
	case StatusInProgress:
		return "Report is being processed"
	case StatusResolved:
		return "Report has been resolved"
	}
	return "Report updated"
}

// WasteType constants
type WasteType string

const (
	WasteOverflowingGarbage WasteType = "overflowing-garbage"
	WasteIllegalDumping     WasteType = "illegal-dumping"
	WasteHazardous          WasteType = "hazardous-waste"
	WasteRecyclingIssue     WasteType = "recycling-issue"
	WasteOther              WasteType = "other"
)

// WasteTypes lists every waste type in form order.
func WasteTypes() []WasteType {
	return []WasteType{
		WasteOverflowingGarbage,
		WasteIllegalDumping,
		WasteHazardous,
		WasteRecyclingIssue,
		WasteOther,
	}
}

func (w WasteType) Valid() bool {
	switch w {
	case WasteOverflowingGarbage, WasteIllegalDumping, WasteHazardous, WasteRecyclingIssue, WasteOther:
		return true
	}
	return false
}

func (w WasteType) Label() string {
	switch w {
	case WasteOverflowingGarbage:
		return "Overflowing Garbage"
	case WasteIllegalDumping:
		return "Illegal Dumping"
	case WasteHazardous:
		return "Hazardous Waste"
	case WasteRecyclingIssue:
		return "Recycling Issue"
	}
	return "Other"
}

// OptionLabel is the caption used in the report form select.
func (w WasteType) OptionLabel() string {
	switch w {
	case WasteOverflowingGarbage:
		return "Overflowing Garbage Bin"
	case WasteRecyclingIssue:
		return "Recycling Problem"
	}
	return w.Label()
}

func (w WasteType) Icon() string {
	switch w {
	case WasteOverflowingGarbage:
		return "🗑️"
	case WasteIllegalDumping:
		return "🚫"
	case WasteHazardous:
		return "⚠️"
	case WasteRecyclingIssue:
		return "♻️"
	}
	return "❓"
}

// Priority is the advisory triage level shown on the admin dashboard.
type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

// Class is the CSS class of the priority indicator.
func (p Priority) Class() string {
	return "priority-" + string(p)
}

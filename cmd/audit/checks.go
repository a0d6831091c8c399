package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/cleancity/api/internal/model"
	"github.com/cleancity/api/internal/validator"
	emailaddress "github.com/mcnijman/go-emailaddress"
)

type Issue struct {
	Collection string `json:"collection"`
	Index      int    `json:"index"`
	ID         int64  `json:"id,omitempty"`
	Type       string `json:"type"`
	Details    string `json:"details"`
}

type Result struct {
	Reports int
	Users   int
	Issues  []Issue
}

func (r Result) ByType() map[string][]Issue {
	out := make(map[string][]Issue)
	for _, issue := range r.Issues {
		out[issue.Type] = append(out[issue.Type], issue)
	}
	return out
}

// Audit checks both stored collections. A collection that is not a JSON
// array is reported once and otherwise skipped, matching how the app
// falls back to an empty list.
func Audit(reportsRaw, usersRaw []byte, workers int) Result {
	var result Result

	if reports, ok := splitArray("reports", reportsRaw, &result.Issues); ok {
		result.Reports = len(reports)
		result.Issues = append(result.Issues, auditRecords(reports, workers, auditReport)...)
		result.Issues = append(result.Issues, auditReportList(reports)...)
	}

	if users, ok := splitArray("users", usersRaw, &result.Issues); ok {
		result.Users = len(users)
		result.Issues = append(result.Issues, auditRecords(users, workers, auditUser)...)
		result.Issues = append(result.Issues, auditUserList(users)...)
	}

	return result
}

func splitArray(collection string, raw []byte, issues *[]Issue) ([]json.RawMessage, bool) {
	if len(raw) == 0 {
		return nil, false
	}
	var records []json.RawMessage
	if err := json.Unmarshal(raw, &records); err != nil {
		*issues = append(*issues, Issue{
			Collection: collection,
			Index:      -1,
			Type:       "PARSE_ERROR",
			Details:    fmt.Sprintf("Stored value is not a JSON array: %v", err),
		})
		return nil, false
	}
	return records, true
}

func auditReport(index int, raw json.RawMessage) []Issue {
	var r model.Report
	if err := json.Unmarshal(raw, &r); err != nil {
		return []Issue{{Collection: "reports", Index: index, Type: "PARSE_ERROR", Details: err.Error()}}
	}

	var issues []Issue
	add := func(typ, format string, args ...any) {
		issues = append(issues, Issue{
			Collection: "reports",
			Index:      index,
			ID:         r.ID,
			Type:       typ,
			Details:    fmt.Sprintf(format, args...),
		})
	}

	if r.ID <= 0 {
		add("MISSING_ID", "Report has no positive id")
	}
	if !r.Status.Valid() {
		add("UNKNOWN_STATUS", "Status %q is not known", r.Status)
	}
	if !r.WasteType.Valid() {
		add("UNKNOWN_WASTE_TYPE", "Waste type %q is not known", r.WasteType)
	}
	for field, value := range map[string]string{
		"name":        r.Name,
		"contact":     r.Contact,
		"location":    r.Location,
		"description": r.Description,
	} {
		if strings.TrimSpace(value) == "" {
			add("EMPTY_FIELD", "Field %s is empty", field)
		}
	}
	if r.Date.IsZero() {
		add("MISSING_DATE", "Report has no creation date")
	}
	if r.UpdatedAt != nil && r.UpdatedAt.Before(r.Date) {
		add("UPDATED_BEFORE_CREATED", "Updated %s before created %s", r.UpdatedAt.Format("2006-01-02"), r.Date.Format("2006-01-02"))
	}
	if r.Photo != "" && !validator.IsPhotoDataURL(r.Photo) {
		add("INVALID_PHOTO", "Photo is not an image data URL")
	}

	return issues
}

// auditReportList checks properties of the whole list: unique ids and
// newest-first order. Ids grow with every add, so order is checked on ids;
// creation dates may be backdated by seeding.
func auditReportList(records []json.RawMessage) []Issue {
	var issues []Issue
	seen := make(map[int64]int)
	var prev *model.Report

	for i, raw := range records {
		var r model.Report
		if err := json.Unmarshal(raw, &r); err != nil {
			prev = nil
			continue
		}

		if first, ok := seen[r.ID]; ok {
			issues = append(issues, Issue{
				Collection: "reports",
				Index:      i,
				ID:         r.ID,
				Type:       "DUPLICATE_ID",
				Details:    fmt.Sprintf("Id already used at index %d", first),
			})
		} else {
			seen[r.ID] = i
		}

		if prev != nil && r.ID > prev.ID {
			issues = append(issues, Issue{
				Collection: "reports",
				Index:      i,
				ID:         r.ID,
				Type:       "ORDER_VIOLATION",
				Details:    fmt.Sprintf("Filed after the report before it (id %d)", prev.ID),
			})
		}
		rr := r
		prev = &rr
	}
	return issues
}

func auditUser(index int, raw json.RawMessage) []Issue {
	var u model.User
	if err := json.Unmarshal(raw, &u); err != nil {
		return []Issue{{Collection: "users", Index: index, Type: "PARSE_ERROR", Details: err.Error()}}
	}

	var issues []Issue
	if strings.TrimSpace(u.Name) == "" {
		issues = append(issues, Issue{Collection: "users", Index: index, Type: "EMPTY_FIELD", Details: "Field name is empty"})
	}
	if _, err := emailaddress.Parse(u.Email); err != nil {
		issues = append(issues, Issue{
			Collection: "users",
			Index:      index,
			Type:       "INVALID_EMAIL",
			Details:    fmt.Sprintf("Email %q is not valid", u.Email),
		})
	}
	return issues
}

func auditUserList(records []json.RawMessage) []Issue {
	var issues []Issue
	seen := make(map[string]int)

	for i, raw := range records {
		var u model.User
		if err := json.Unmarshal(raw, &u); err != nil {
			continue
		}
		email := strings.ToLower(strings.TrimSpace(u.Email))
		if email == "" {
			continue
		}
		if first, ok := seen[email]; ok {
			issues = append(issues, Issue{
				Collection: "users",
				Index:      i,
				Type:       "DUPLICATE_EMAIL",
				Details:    fmt.Sprintf("Email %s already registered at index %d", email, first),
			})
			continue
		}
		seen[email] = i
	}
	return issues
}

package filter

import (
	"strings"

	"github.com/cleancity/api/internal/model"
)

// Criteria narrows a report list. Zero-valued fields match everything.
type Criteria struct {
	Status    model.Status    `form:"status"`
	WasteType model.WasteType `form:"wasteType"`
	Query     string          `form:"q"`
}

func (c Criteria) IsZero() bool {
	return c.Status == "" && c.WasteType == "" && strings.TrimSpace(c.Query) == ""
}

// Reports returns the reports matching c, keeping their order. The result
// is never nil.
func Reports(reports []model.Report, c Criteria) []model.Report {
	query := strings.ToLower(strings.TrimSpace(c.Query))

	filtered := make([]model.Report, 0, len(reports))
	for _, r := range reports {
		if c.Status != "" && r.Status != c.Status {
			continue
		}
		if c.WasteType != "" && r.WasteType != c.WasteType {
			continue
		}
		if query != "" && !matches(r, query) {
			continue
		}
		filtered = append(filtered, r)
	}

	return filtered
}

// matches checks the free-text fields a resident would search by.
func matches(r model.Report, query string) bool {
	for _, field := range []string{r.Location, r.Description, r.Name} {
		if strings.Contains(strings.ToLower(field), query) {
			return true
		}
	}
	return false
}

// ExcludeStatus drops reports in status s, e.g. admin-only entries on
// resident-facing lists.
func ExcludeStatus(reports []model.Report, s model.Status) []model.Report {
	filtered := make([]model.Report, 0, len(reports))
	for _, r := range reports {
		if r.Status != s {
			filtered = append(filtered, r)
		}
	}
	return filtered
}

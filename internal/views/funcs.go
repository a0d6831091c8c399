package views

import (
	"fmt"
	"html/template"
	"strconv"
	"time"

	"github.com/cleancity/api/internal/model"
	"github.com/cleancity/api/internal/validator"
)

func (r *Renderer) funcs() template.FuncMap {
	return template.FuncMap{
		"timeAgo":    func(t time.Time) string { return TimeAgo(r.now(), t) },
		"formatDate": FormatDate,
		"truncate":   Truncate,
		"shortID":    ShortID,
		"wasteTypes": model.WasteTypes,
		"pct":        func(n int) string { return strconv.Itoa(n) + "%" },
		"days":       func(d float64) string { return strconv.FormatFloat(d, 'f', -1, 64) + "d" },
		"photoURL":   PhotoURL,
	}
}

// TimeAgo renders the whole hours between t and now: "Just now" under an
// hour, "Nh ago" under a day, otherwise "Nd ago".
func TimeAgo(now, t time.Time) string {
	hours := int(now.Sub(t).Hours())
	switch {
	case hours < 1:
		return "Just now"
	case hours < 24:
		return fmt.Sprintf("%dh ago", hours)
	}
	return fmt.Sprintf("%dd ago", hours/24)
}

func FormatDate(t time.Time) string {
	return t.Format("1/2/2006")
}

// Truncate cuts s to n runes and marks the cut with "...".
func Truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n]) + "..."
}

// ShortID is the last four digits of a report id, as shown in the admin table.
func ShortID(id int64) string {
	s := strconv.FormatInt(id, 10)
	if len(s) > 4 {
		s = s[len(s)-4:]
	}
	return s
}

// PhotoURL lets a stored image data URL through the template URL filter.
// Anything else renders as an empty src.
func PhotoURL(s string) template.URL {
	if !validator.IsPhotoDataURL(s) {
		return ""
	}
	return template.URL(s)
}

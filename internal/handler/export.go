package handler

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/cleancity/api/internal/dashboard"
	"github.com/cleancity/api/internal/filter"
	"github.com/cleancity/api/internal/model"
	"github.com/cleancity/api/internal/repository"
	"github.com/gin-gonic/gin"
)

type ExportHandler struct {
	reports *repository.ReportRepository
	now     func() time.Time
}

func NewExportHandler(reports *repository.ReportRepository, now func() time.Time) *ExportHandler {
	if now == nil {
		now = time.Now
	}
	return &ExportHandler{reports: reports, now: now}
}

// Export writes the (optionally filtered) report list as json, csv or md.
// Photos are left out of csv and md.
func (h *ExportHandler) Export(c *gin.Context) {
	format := c.DefaultQuery("format", "json")

	criteria, ok := bindCriteria(c)
	if !ok {
		return
	}
	reports := filter.Reports(h.reports.List(), criteria)
	stamp := h.now().UTC().Format("20060102-150405")

	switch format {
	case "json":
		h.exportJSON(c, reports, stamp)
	case "csv":
		h.exportCSV(c, reports, stamp)
	case "md", "markdown":
		h.exportMarkdown(c, reports, stamp)
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid format. Use json, csv, or md"})
	}
}

func (h *ExportHandler) exportJSON(c *gin.Context, reports []model.Report, stamp string) {
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=reports-%s.json", stamp))
	c.JSON(http.StatusOK, reports)
}

func (h *ExportHandler) exportCSV(c *gin.Context, reports []model.Report, stamp string) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	_ = writer.Write([]string{"ID", "Date", "Updated", "Status", "Type", "Priority", "Location", "Reporter", "Contact", "Description"})

	for _, r := range reports {
		updated := ""
		if r.UpdatedAt != nil {
			updated = r.UpdatedAt.UTC().Format(time.RFC3339)
		}
		_ = writer.Write([]string{
			strconv.FormatInt(r.ID, 10),
			r.Date.UTC().Format(time.RFC3339),
			updated,
			string(r.Status),
			string(r.WasteType),
			string(dashboard.ClassifyPriority(r)),
			r.Location,
			r.Name,
			r.Contact,
			r.Description,
		})
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to encode csv"})
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=reports-%s.csv", stamp))
	c.Data(http.StatusOK, "text/csv", buf.Bytes())
}

func (h *ExportHandler) exportMarkdown(c *gin.Context, reports []model.Report, stamp string) {
	var buf bytes.Buffer
	counts := dashboard.CountByStatus(reports)

	buf.WriteString("# CleanCity Reports\n\n")
	fmt.Fprintf(&buf, "**Exported:** %s\n\n", h.now().UTC().Format("2006-01-02 15:04:05"))
	fmt.Fprintf(&buf, "**Total:** %d | **Submitted:** %d | **In Progress:** %d | **Resolved:** %d | **Resolution Rate:** %d%%\n\n",
		counts.Total, counts.Submitted, counts.InProgress, counts.Resolved, counts.ResolutionRate())

	for _, r := range reports {
		fmt.Fprintf(&buf, "## #%d %s %s\n\n", r.ID, r.WasteType.Icon(), r.WasteType.Label())
		fmt.Fprintf(&buf, "- **Status:** %s\n", r.Status.Label())
		fmt.Fprintf(&buf, "- **Priority:** %s\n", dashboard.ClassifyPriority(r))
		fmt.Fprintf(&buf, "- **Location:** %s\n", r.Location)
		fmt.Fprintf(&buf, "- **Reporter:** %s (%s)\n", r.Name, r.Contact)
		fmt.Fprintf(&buf, "- **Filed:** %s\n\n", r.Date.UTC().Format("2006-01-02 15:04"))
		fmt.Fprintf(&buf, "%s\n\n---\n\n", r.Description)
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=reports-%s.md", stamp))
	c.Data(http.StatusOK, "text/markdown", buf.Bytes())
}

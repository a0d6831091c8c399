package handler

import (
	"net/http"
	"time"

	"github.com/cleancity/api/internal/chart"
	"github.com/cleancity/api/internal/dashboard"
	"github.com/cleancity/api/internal/repository"
	"github.com/gin-gonic/gin"
)

type AdminHandler struct {
	reports *repository.ReportRepository
	charts  *chart.Drawer
	now     func() time.Time
}

func NewAdminHandler(reports *repository.ReportRepository, charts *chart.Drawer, now func() time.Time) *AdminHandler {
	if now == nil {
		now = time.Now
	}
	return &AdminHandler{reports: reports, charts: charts, now: now}
}

// GetStats returns the admin dashboard aggregation.
func (h *AdminHandler) GetStats(c *gin.Context) {
	c.JSON(http.StatusOK, dashboard.BuildAdmin(h.reports.List(), h.now()))
}

// GetCharts returns the live chart set. The browser disposes its previous
// charts before drawing these.
func (h *AdminHandler) GetCharts(c *gin.Context) {
	c.JSON(http.StatusOK, h.charts.Current())
}

package handler

import (
	"bytes"
	"net/http"
	"strings"
	"time"

	"github.com/cleancity/api/internal/config"
	"github.com/cleancity/api/internal/dashboard"
	"github.com/cleancity/api/internal/model"
	"github.com/cleancity/api/internal/repository"
	"github.com/cleancity/api/internal/route"
	"github.com/cleancity/api/internal/views"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const (
	ViewHeader     = "X-View"
	FragmentHeader = "X-Fragment"
	pageTitle      = "CleanCity - Waste Management"
)

type ViewHandler struct {
	reports  *repository.ReportRepository
	renderer *views.Renderer
	cfg      *config.Config
	now      func() time.Time
	logger   *zap.Logger
}

func NewViewHandler(reports *repository.ReportRepository, renderer *views.Renderer, cfg *config.Config, now func() time.Time, logger *zap.Logger) *ViewHandler {
	if now == nil {
		now = time.Now
	}
	return &ViewHandler{reports: reports, renderer: renderer, cfg: cfg, now: now, logger: logger.Named("views")}
}

// Shell serves the page frame. The browser loads views into it by fragment.
func (h *ViewHandler) Shell(c *gin.Context) {
	var buf bytes.Buffer
	err := h.renderer.Shell(&buf, views.ShellData{
		Title: pageTitle,
		Links: route.Links(route.Home.Fragment()),
	})
	if err != nil {
		h.logger.Error("render shell failed", zap.Error(err))
		c.String(http.StatusInternalServerError, "failed to render page")
		return
	}
	c.Data(http.StatusOK, "text/html; charset=utf-8", buf.Bytes())
}

// View renders the view for the fragment in the path. Unknown fragments
// render home; X-Fragment echoes the fragment unchanged so the browser
// keeps it.
func (h *ViewHandler) View(c *gin.Context) {
	fragment := strings.TrimPrefix(c.Param("fragment"), "/")
	state := route.Transition(fragment)

	var buf bytes.Buffer
	if err := h.renderer.Render(&buf, state.View, h.viewData(state.View)); err != nil {
		h.logger.Error("render view failed", zap.String("view", state.View.String()), zap.Error(err))
		c.String(http.StatusInternalServerError, "failed to render view")
		return
	}

	c.Header(ViewHeader, state.View.Fragment())
	c.Header(FragmentHeader, state.Fragment)
	c.Data(http.StatusOK, "text/html; charset=utf-8", buf.Bytes())
}

func (h *ViewHandler) viewData(v route.View) any {
	switch v {
	case route.Home:
		return dashboard.BuildHome(h.reports.List())
	case route.Dashboard:
		return dashboard.BuildUser(h.reports.List())
	case route.Report:
		return views.ReportForm{MaxPhotoBytes: h.cfg.MaxPhotoBytes}
	case route.Schedule:
		return model.CollectionSchedule()
	case route.Admin:
		return dashboard.BuildAdmin(h.reports.List(), h.now())
	}
	return nil
}

// Schedule returns the collection calendar.
func Schedule(c *gin.Context) {
	c.JSON(http.StatusOK, model.CollectionSchedule())
}

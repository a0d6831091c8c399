package handler

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/cleancity/api/internal/config"
	"github.com/cleancity/api/internal/filter"
	"github.com/cleancity/api/internal/limiter"
	"github.com/cleancity/api/internal/middleware"
	"github.com/cleancity/api/internal/model"
	"github.com/cleancity/api/internal/repository"
	"github.com/cleancity/api/internal/route"
	"github.com/cleancity/api/internal/scheduler"
	"github.com/cleancity/api/internal/validator"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// statusClientClosedRequest is sent when the client gave up during the
// submission delay. Nothing has been written at that point.
const statusClientClosedRequest = 499

const reportSubmittedMessage = "Report submitted successfully! Thank you for helping keep our community clean."

type ReportHandler struct {
	reports *repository.ReportRepository
	limiter *limiter.Limiter
	cfg     *config.Config
	logger  *zap.Logger
}

func NewReportHandler(reports *repository.ReportRepository, l *limiter.Limiter, cfg *config.Config, logger *zap.Logger) *ReportHandler {
	return &ReportHandler{reports: reports, limiter: l, cfg: cfg, logger: logger.Named("reports")}
}

type SubmitReportRequest struct {
	Name        string `json:"name" form:"name" binding:"required"`
	Contact     string `json:"contact" form:"contact" binding:"required"`
	Location    string `json:"location" form:"location" binding:"required"`
	WasteType   string `json:"wasteType" form:"wasteType" binding:"required,oneof=overflowing-garbage illegal-dumping hazardous-waste recycling-issue other"`
	Description string `json:"description" form:"description" binding:"required"`
	Photo       string `json:"photo" form:"-"`
}

type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// Submit files a report from the multipart form or a JSON body. The
// response is delayed by the configured submission latency; a client that
// disconnects during the delay leaves the store untouched. Once the delay
// has passed the write completes even if the client goes away.
func (h *ReportHandler) Submit(c *gin.Context) {
	if !allow(c, h.limiter, limiter.ActionReport) {
		c.JSON(http.StatusTooManyRequests, gin.H{"error": "Too many reports. Please try again later."})
		return
	}

	if h.cfg.MaxPhotoBytes > 0 {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, requestLimit(h.cfg.MaxPhotoBytes))
	}

	input, err := h.bindReport(c)
	if err != nil {
		writeInputError(c, err)
		return
	}

	input, err = validator.ValidateReport(input)
	if err != nil {
		writeInputError(c, err)
		return
	}

	ctx := c.Request.Context()
	if err := scheduler.Sleep(ctx, h.cfg.SubmitDelay); err != nil {
		h.logger.Info("submission cancelled", zap.String("request_id", middleware.RequestID(c)), zap.Error(err))
		c.JSON(statusClientClosedRequest, gin.H{"error": "submission cancelled"})
		return
	}

	report, err := h.reports.Add(context.WithoutCancel(ctx), input)
	if err != nil {
		h.logger.Error("save report failed", zap.Int64("id", report.ID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save report"})
		return
	}
	middleware.RecordReportSubmitted(string(report.WasteType))

	c.JSON(http.StatusCreated, gin.H{
		"message":  reportSubmittedMessage,
		"report":   report,
		"redirect": route.Report.Fragment(),
	})
}

func (h *ReportHandler) bindReport(c *gin.Context) (model.ReportInput, error) {
	var req SubmitReportRequest
	isJSON := strings.HasPrefix(c.ContentType(), gin.MIMEJSON)

	if isJSON {
		if err := c.ShouldBindJSON(&req); err != nil {
			return model.ReportInput{}, bindError(err, "invalid request body")
		}
		if req.Photo != "" && !validator.IsPhotoDataURL(req.Photo) {
			return model.ReportInput{}, validator.ErrInvalidPhoto
		}
		if h.cfg.MaxPhotoBytes > 0 && int64(len(req.Photo)) > dataURLLimit(h.cfg.MaxPhotoBytes) {
			return model.ReportInput{}, fmt.Errorf("%w: photo is too large", validator.ErrInvalidPhoto)
		}
	} else {
		if err := c.ShouldBind(&req); err != nil {
			return model.ReportInput{}, bindError(err, "invalid form")
		}
		photo, err := h.readPhoto(c)
		if err != nil {
			return model.ReportInput{}, err
		}
		req.Photo = photo
	}

	return model.ReportInput{
		Name:        req.Name,
		Contact:     req.Contact,
		Location:    req.Location,
		WasteType:   model.WasteType(req.WasteType),
		Description: req.Description,
		Photo:       req.Photo,
	}, nil
}

// readPhoto encodes the optional "photo" upload as a data URL.
func (h *ReportHandler) readPhoto(c *gin.Context) (string, error) {
	header, err := c.FormFile("photo")
	if errors.Is(err, http.ErrMissingFile) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("%w: unreadable photo upload", errBadRequest)
	}

	f, err := header.Open()
	if err != nil {
		return "", fmt.Errorf("%w: unreadable photo upload", errBadRequest)
	}
	defer f.Close()

	limit := h.cfg.MaxPhotoBytes
	var r io.Reader = f
	if limit > 0 {
		r = io.LimitReader(f, limit+1)
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return "", fmt.Errorf("%w: unreadable photo upload", errBadRequest)
	}

	return validator.EncodePhoto(data, limit)
}

// requestLimit caps a submission body: the largest photo as a data URL
// plus room for the text fields and multipart framing.
func requestLimit(maxPhotoBytes int64) int64 {
	return dataURLLimit(maxPhotoBytes) + 64<<10
}

// dataURLLimit is the length of a base64 data URL for a maxBytes image,
// with room for the media type prefix.
func dataURLLimit(maxBytes int64) int64 {
	return (maxBytes+2)/3*4 + 64
}

// List returns reports newest first, optionally filtered by status,
// wasteType and a free-text q.
func (h *ReportHandler) List(c *gin.Context) {
	criteria, ok := bindCriteria(c)
	if !ok {
		return
	}

	reports := filter.Reports(h.reports.List(), criteria)
	c.JSON(http.StatusOK, gin.H{
		"reports": reports,
		"total":   len(reports),
	})
}

func (h *ReportHandler) Get(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	report, found := h.reports.Get(id)
	if !found {
		c.JSON(http.StatusNotFound, gin.H{"error": "report not found"})
		return
	}
	c.JSON(http.StatusOK, report)
}

// UpdateStatus sets any known status. An unknown id is not an error; the
// response reports whether anything changed.
func (h *ReportHandler) UpdateStatus(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "status is required"})
		return
	}
	status := model.Status(req.Status)
	if !status.Valid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid status"})
		return
	}

	found, err := h.reports.UpdateStatus(context.WithoutCancel(c.Request.Context()), id, status)
	if err != nil {
		h.logger.Error("update status failed", zap.Int64("id", id), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update report"})
		return
	}
	if found {
		middleware.RecordStatusUpdate(string(status))
	}

	c.JSON(http.StatusOK, gin.H{"updated": found})
}

// Advance is the admin table action: submitted to in-progress, then to
// resolved.
func (h *ReportHandler) Advance(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	report, found, err := h.reports.Advance(context.WithoutCancel(c.Request.Context()), id)
	switch {
	case errors.Is(err, repository.ErrNoNextStatus):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error(), "report": report})
		return
	case err != nil:
		h.logger.Error("advance failed", zap.Int64("id", id), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update report"})
		return
	case !found:
		c.JSON(http.StatusOK, gin.H{"updated": false})
		return
	}

	middleware.RecordStatusUpdate(string(report.Status))
	c.JSON(http.StatusOK, gin.H{"updated": true, "report": report})
}

func parseID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid report id"})
		return 0, false
	}
	return id, true
}

// bindCriteria reads list filters from the query string and rejects
// unknown enum values.
func bindCriteria(c *gin.Context) (filter.Criteria, bool) {
	var criteria filter.Criteria
	if err := c.ShouldBindQuery(&criteria); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid filters"})
		return criteria, false
	}
	if criteria.Status != "" && !criteria.Status.Valid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid status"})
		return criteria, false
	}
	if criteria.WasteType != "" && !criteria.WasteType.Valid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid waste type"})
		return criteria, false
	}
	return criteria, true
}

package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/imodoiepale/kra-invoice-api/internal/models"
	"github.com/imodoiepale/kra-invoice-api/internal/services"
	"github.com/sirupsen/logrus"
)

// ReportHandler handles stored-report retrieval and export
type ReportHandler struct {
	reports  services.ReportStoreInterface
	exporter services.ExportServiceInterface
	logger   *logrus.Logger
}

// NewReportHandler creates a new report handler
func NewReportHandler(reports services.ReportStoreInterface, exporter services.ExportServiceInterface, logger *logrus.Logger) *ReportHandler {
	return &ReportHandler{
		reports:  reports,
		exporter: exporter,
		logger:   logger,
	}
}

// ListReports lists retained report IDs
// @Summary List retained reports
// @Tags Reports
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /reports [get]
func (h *ReportHandler) ListReports(c *gin.Context) {
	ids, err := h.reports.List(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:     "Failed to list reports",
			Message:   err.Error(),
			Code:      "REPORT_LIST_ERROR",
			Timestamp: time.Now(),
			Path:      c.Request.URL.Path,
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"report_ids": ids,
		"count":      len(ids),
	})
}

// GetReport retrieves a stored report
// @Summary Get a stored report
// @Tags Reports
// @Produce json
// @Param id path string true "Report ID"
// @Success 200 {object} models.BatchReport
// @Failure 404 {object} models.ErrorResponse
// @Router /reports/{id} [get]
func (h *ReportHandler) GetReport(c *gin.Context) {
	report, ok := h.loadReport(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, report)
}

// ExportJSON exports a stored report as a JSON attachment
// @Summary Export a report as JSON
// @Tags Reports
// @Produce json
// @Param id path string true "Report ID"
// @Success 200 {object} models.BatchReport
// @Failure 404 {object} models.ErrorResponse
// @Router /reports/{id}/export/json [get]
func (h *ReportHandler) ExportJSON(c *gin.Context) {
	report, ok := h.loadReport(c)
	if !ok {
		return
	}

	data, err := h.exporter.ToJSON(report)
	if err != nil {
		h.respondExportError(c, report.ID, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+h.exporter.Filename(report, "json")+`"`)
	c.Data(http.StatusOK, "application/json; charset=utf-8", data)
}

// ExportCSV exports a stored report as a CSV attachment
// @Summary Export a report as CSV
// @Tags Reports
// @Produce text/csv
// @Param id path string true "Report ID"
// @Success 200 {string} string "CSV document"
// @Failure 404 {object} models.ErrorResponse
// @Router /reports/{id}/export/csv [get]
func (h *ReportHandler) ExportCSV(c *gin.Context) {
	report, ok := h.loadReport(c)
	if !ok {
		return
	}

	data, err := h.exporter.ToCSV(report)
	if err != nil {
		h.respondExportError(c, report.ID, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+h.exporter.Filename(report, "csv")+`"`)
	c.Data(http.StatusOK, "text/csv; charset=utf-8", data)
}

// loadReport resolves the :id path parameter to a stored report, writing the
// error response itself when the report cannot be served.
func (h *ReportHandler) loadReport(c *gin.Context) (*models.BatchReport, bool) {
	id := c.Param("id")

	report, err := h.reports.Get(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, services.ErrReportNotFound) {
			c.JSON(http.StatusNotFound, models.ErrorResponse{
				Error:     "Report not found",
				Message:   "No completed report exists with ID " + id,
				Code:      "REPORT_NOT_FOUND",
				Timestamp: time.Now(),
				Path:      c.Request.URL.Path,
			})
			return nil, false
		}

		h.logger.WithFields(logrus.Fields{
			"report_id": id,
			"error":     err.Error(),
		}).Error("Failed to load stored report")

		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:     "Failed to load report",
			Message:   err.Error(),
			Code:      "REPORT_LOAD_ERROR",
			Timestamp: time.Now(),
			Path:      c.Request.URL.Path,
		})
		return nil, false
	}

	return report, true
}

func (h *ReportHandler) respondExportError(c *gin.Context, reportID string, err error) {
	h.logger.WithFields(logrus.Fields{
		"report_id": reportID,
		"error":     err.Error(),
	}).Error("Report export failed")

	c.JSON(http.StatusInternalServerError, models.ErrorResponse{
		Error:     "Export failed",
		Message:   err.Error(),
		Code:      "EXPORT_ERROR",
		Timestamp: time.Now(),
		Path:      c.Request.URL.Path,
	})
}

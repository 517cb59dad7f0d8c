package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/campus-pulse/wellbeing-api/internal/service"
	appErrors "github.com/campus-pulse/wellbeing-api/pkg/errors"
	"github.com/campus-pulse/wellbeing-api/pkg/response"
)

// ExportHandler serves downloadable CSV and PDF documents.
type ExportHandler struct {
	exports *service.ExportService
}

// NewExportHandler constructs the export handler.
func NewExportHandler(exports *service.ExportService) *ExportHandler {
	return &ExportHandler{exports: exports}
}

// Alerts streams the current alert set as a document. Format defaults to csv.
func (h *ExportHandler) Alerts(c *gin.Context) {
	if h.exports == nil {
		response.Error(c, appErrors.ErrInternal)
		return
	}
	filter, err := parseAlertFilter(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	result, err := h.exports.Alerts(c.Request.Context(), filter, exportFormat(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	serveExport(c, result)
}

// StressTrend streams one student's stress curve as a document.
func (h *ExportHandler) StressTrend(c *gin.Context) {
	if h.exports == nil {
		response.Error(c, appErrors.ErrInternal)
		return
	}
	studentID, err := parseIDParam(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}
	filter, err := parseTrendFilter(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	result, err := h.exports.StressTrend(c.Request.Context(), studentID, filter, exportFormat(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	serveExport(c, result)
}

func exportFormat(c *gin.Context) service.ExportFormat {
	format := c.DefaultQuery("format", string(service.FormatCSV))
	return service.ExportFormat(format)
}

func serveExport(c *gin.Context, result *service.ExportResult) {
	c.Header("Content-Disposition", "attachment; filename="+result.FileName)
	c.Data(http.StatusOK, result.ContentType, result.Content)
}

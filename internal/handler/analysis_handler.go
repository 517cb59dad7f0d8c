package handler

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/campus-pulse/wellbeing-api/internal/middleware"
	"github.com/campus-pulse/wellbeing-api/internal/models"
	"github.com/campus-pulse/wellbeing-api/internal/service"
	appErrors "github.com/campus-pulse/wellbeing-api/pkg/errors"
	"github.com/campus-pulse/wellbeing-api/pkg/response"
)

// AnalysisHandler exposes the stress, attendance and grade analysis reads.
type AnalysisHandler struct {
	analysis *service.AnalysisService
}

// NewAnalysisHandler constructs the analysis handler.
func NewAnalysisHandler(analysis *service.AnalysisService) *AnalysisHandler {
	return &AnalysisHandler{analysis: analysis}
}

// StressTrend returns one student's weekly stress curve.
func (h *AnalysisHandler) StressTrend(c *gin.Context) {
	if h.analysis == nil {
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
	start := time.Now()
	points, cacheHit, err := h.analysis.StudentStressTrend(c.Request.Context(), studentID, filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	middleware.SetCacheHit(c, cacheHit)
	response.JSON(c, http.StatusOK, points, nil, timedMeta(c, start))
}

// AttendanceAverages returns the mean attendance rate per student.
func (h *AnalysisHandler) AttendanceAverages(c *gin.Context) {
	if h.analysis == nil {
		response.Error(c, appErrors.ErrInternal)
		return
	}
	filter, err := parseTrendFilter(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	start := time.Now()
	averages, cacheHit, err := h.analysis.StudentsAverageAttendance(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	middleware.SetCacheHit(c, cacheHit)
	response.JSON(c, http.StatusOK, averages, nil, timedMeta(c, start))
}

// StudentAttendance returns one student's mean attendance rate. The rate is
// null when the student has no matching attendance rows.
func (h *AnalysisHandler) StudentAttendance(c *gin.Context) {
	if h.analysis == nil {
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
	start := time.Now()
	avg, err := h.analysis.StudentAverageAttendance(c.Request.Context(), studentID, filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	payload := gin.H{"student_id": studentID, "average_attendance_rate": avg}
	response.JSON(c, http.StatusOK, payload, nil, timedMeta(c, start))
}

// CompareModules returns per-module stress/grade summary with Pearson r.
func (h *AnalysisHandler) CompareModules(c *gin.Context) {
	if h.analysis == nil {
		response.Error(c, appErrors.ErrInternal)
		return
	}
	filter, err := parseComparisonFilter(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	start := time.Now()
	comparisons, cacheHit, err := h.analysis.CompareStressGradeByModule(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	middleware.SetCacheHit(c, cacheHit)
	response.JSON(c, http.StatusOK, comparisons, nil, timedMeta(c, start))
}

// GradeDistribution returns labelled histogram buckets for grades.
func (h *AnalysisHandler) GradeDistribution(c *gin.Context) {
	if h.analysis == nil {
		response.Error(c, appErrors.ErrInternal)
		return
	}
	moduleID, err := queryInt64(c, "module_id")
	if err != nil {
		response.Error(c, err)
		return
	}
	includeInactive, err := queryBool(c, "include_inactive")
	if err != nil {
		response.Error(c, err)
		return
	}
	start := time.Now()
	buckets, err := h.analysis.GradeDistribution(c.Request.Context(), moduleID, includeInactive, nil)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, buckets, nil, timedMeta(c, start))
}

// StressGradeScatter returns raw stress/grade pairs for plotting.
func (h *AnalysisHandler) StressGradeScatter(c *gin.Context) {
	if h.analysis == nil {
		response.Error(c, appErrors.ErrInternal)
		return
	}
	moduleID, err := queryInt64(c, "module_id")
	if err != nil {
		response.Error(c, err)
		return
	}
	includeInactive, err := queryBool(c, "include_inactive")
	if err != nil {
		response.Error(c, err)
		return
	}
	start := time.Now()
	pairs, err := h.analysis.StressGradePairs(c.Request.Context(), moduleID, includeInactive)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, pairs, nil, timedMeta(c, start))
}

// System returns the instrumentation snapshot.
func (h *AnalysisHandler) System(c *gin.Context) {
	if h.analysis == nil {
		response.Error(c, appErrors.ErrInternal)
		return
	}
	start := time.Now()
	metrics := h.analysis.SystemMetrics()
	middleware.SetCacheHit(c, false)
	response.JSON(c, http.StatusOK, metrics, nil, timedMeta(c, start))
}

func parseTrendFilter(c *gin.Context) (models.TrendFilter, error) {
	filter := models.TrendFilter{}
	moduleID, err := queryInt64(c, "module_id")
	if err != nil {
		return filter, err
	}
	filter.ModuleID = moduleID
	includeInactive, err := queryBool(c, "include_inactive")
	if err != nil {
		return filter, err
	}
	filter.IncludeInactive = includeInactive
	return filter, nil
}

func parseComparisonFilter(c *gin.Context) (models.ModuleComparisonFilter, error) {
	filter := models.ModuleComparisonFilter{}
	if raw := c.Query("module_ids"); raw != "" {
		for _, part := range strings.Split(raw, ",") {
			part = strings.TrimSpace(part)
			if part == "" {
				continue
			}
			id, err := strconv.ParseInt(part, 10, 64)
			if err != nil {
				return filter, appErrors.Clone(appErrors.ErrValidation, "invalid module_ids parameter")
			}
			filter.ModuleIDs = append(filter.ModuleIDs, id)
		}
	}
	includeInactive, err := queryBool(c, "include_inactive")
	if err != nil {
		return filter, err
	}
	filter.IncludeInactive = includeInactive
	return filter, nil
}

func timedMeta(c *gin.Context, start time.Time) map[string]interface{} {
	meta := middleware.ExtractMeta(c)
	if meta == nil {
		meta = make(map[string]interface{})
	}
	meta["processing_time_ms"] = time.Since(start).Milliseconds()
	return meta
}

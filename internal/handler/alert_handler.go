package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/campus-pulse/wellbeing-api/internal/models"
	"github.com/campus-pulse/wellbeing-api/internal/service"
	appErrors "github.com/campus-pulse/wellbeing-api/pkg/errors"
	"github.com/campus-pulse/wellbeing-api/pkg/response"
)

// AlertHandler exposes alert listing, lifecycle and materialization endpoints.
type AlertHandler struct {
	alerts           *service.AlertService
	stress           *service.StressService
	defaultThreshold int
	defaultClearOld  bool
}

// NewAlertHandler constructs the alert handler. The defaults apply when a
// generate request omits threshold or clear_old.
func NewAlertHandler(alerts *service.AlertService, stress *service.StressService, defaultThreshold int, defaultClearOld bool) *AlertHandler {
	if defaultThreshold <= 0 {
		defaultThreshold = service.DefaultStressThreshold
	}
	return &AlertHandler{
		alerts:           alerts,
		stress:           stress,
		defaultThreshold: defaultThreshold,
		defaultClearOld:  defaultClearOld,
	}
}

// List returns alerts matching the query filters.
func (h *AlertHandler) List(c *gin.Context) {
	if h.alerts == nil {
		response.Error(c, appErrors.ErrInternal)
		return
	}
	filter, err := parseAlertFilter(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	alerts, err := h.alerts.List(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, alerts, nil)
}

// Get returns a single alert.
func (h *AlertHandler) Get(c *gin.Context) {
	if h.alerts == nil {
		response.Error(c, appErrors.ErrInternal)
		return
	}
	id, err := parseIDParam(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}
	alert, err := h.alerts.Get(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, alert, nil)
}

type generateAlertsRequest struct {
	Threshold       *int   `json:"threshold"`
	ModuleID        *int64 `json:"module_id"`
	IncludeInactive bool   `json:"include_inactive"`
	ClearOld        *bool  `json:"clear_old"`
}

// Generate runs the consecutive-week detector and materializes alerts.
func (h *AlertHandler) Generate(c *gin.Context) {
	if h.stress == nil {
		response.Error(c, appErrors.ErrInternal)
		return
	}
	var req generateAlertsRequest
	if c.Request.Body != nil && c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid alert generation payload"))
			return
		}
	}

	opts := service.AlertOptions{
		Threshold:       h.defaultThreshold,
		ModuleID:        req.ModuleID,
		IncludeInactive: req.IncludeInactive,
		ClearOld:        h.defaultClearOld,
	}
	if req.Threshold != nil {
		opts.Threshold = *req.Threshold
	}
	if req.ClearOld != nil {
		opts.ClearOld = *req.ClearOld
	}

	start := time.Now()
	alerts, err := h.stress.CreateHighStressAlerts(c.Request.Context(), opts)
	if err != nil {
		response.Error(c, err)
		return
	}
	meta := timedMeta(c, start)
	meta["alerts_created"] = len(alerts)
	response.JSON(c, http.StatusCreated, alerts, nil, meta)
}

// Events runs the detector without writing anything, as a dry-run preview.
func (h *AlertHandler) Events(c *gin.Context) {
	if h.stress == nil {
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
	threshold := queryIntDefault(c, "threshold", h.defaultThreshold)

	start := time.Now()
	events, err := h.stress.DetectConsecutiveHighStress(c.Request.Context(), service.DetectionOptions{
		Threshold:       threshold,
		ModuleID:        moduleID,
		IncludeInactive: includeInactive,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, events, nil, timedMeta(c, start))
}

// Resolve marks an alert as handled.
func (h *AlertHandler) Resolve(c *gin.Context) {
	if h.alerts == nil {
		response.Error(c, appErrors.ErrInternal)
		return
	}
	id, err := parseIDParam(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}
	alert, err := h.alerts.Resolve(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, alert, nil)
}

// Delete removes an alert entirely.
func (h *AlertHandler) Delete(c *gin.Context) {
	if h.alerts == nil {
		response.Error(c, appErrors.ErrInternal)
		return
	}
	id, err := parseIDParam(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}
	if err := h.alerts.Delete(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// Deactivate soft-deletes an alert.
func (h *AlertHandler) Deactivate(c *gin.Context) {
	if h.alerts == nil {
		response.Error(c, appErrors.ErrInternal)
		return
	}
	id, err := parseIDParam(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}
	if err := h.alerts.Deactivate(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

func parseAlertFilter(c *gin.Context) (models.AlertFilter, error) {
	filter := models.AlertFilter{}
	studentID, err := queryInt64(c, "student_id")
	if err != nil {
		return filter, err
	}
	filter.StudentID = studentID
	moduleID, err := queryInt64(c, "module_id")
	if err != nil {
		return filter, err
	}
	filter.ModuleID = moduleID
	resolved, err := queryBoolPtr(c, "resolved")
	if err != nil {
		return filter, err
	}
	filter.Resolved = resolved
	includeInactive, err := queryBool(c, "include_inactive")
	if err != nil {
		return filter, err
	}
	filter.IncludeInactive = includeInactive
	return filter, nil
}

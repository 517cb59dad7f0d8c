package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/campus-pulse/wellbeing-api/internal/models"
	"github.com/campus-pulse/wellbeing-api/internal/service"
	appErrors "github.com/campus-pulse/wellbeing-api/pkg/errors"
	"github.com/campus-pulse/wellbeing-api/pkg/response"
)

// AttendanceHandler exposes attendance record CRUD endpoints.
type AttendanceHandler struct {
	attendance *service.AttendanceService
}

// NewAttendanceHandler constructs the attendance handler.
func NewAttendanceHandler(attendance *service.AttendanceService) *AttendanceHandler {
	return &AttendanceHandler{attendance: attendance}
}

// List returns attendance records matching the query filters.
func (h *AttendanceHandler) List(c *gin.Context) {
	if h.attendance == nil {
		response.Error(c, appErrors.ErrInternal)
		return
	}
	filter, err := parseAttendanceFilter(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	records, err := h.attendance.List(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, records, nil)
}

// Get returns a single attendance record.
func (h *AttendanceHandler) Get(c *gin.Context) {
	if h.attendance == nil {
		response.Error(c, appErrors.ErrInternal)
		return
	}
	id, err := parseIDParam(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}
	record, err := h.attendance.Get(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, record, nil)
}

// Create records new attendance.
func (h *AttendanceHandler) Create(c *gin.Context) {
	if h.attendance == nil {
		response.Error(c, appErrors.ErrInternal)
		return
	}
	var req service.AttendanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid attendance payload"))
		return
	}
	record, err := h.attendance.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, record)
}

// Update rewrites an attendance record.
func (h *AttendanceHandler) Update(c *gin.Context) {
	if h.attendance == nil {
		response.Error(c, appErrors.ErrInternal)
		return
	}
	id, err := parseIDParam(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}
	var req service.AttendanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid attendance payload"))
		return
	}
	record, err := h.attendance.Update(c.Request.Context(), id, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, record, nil)
}

// Delete removes an attendance record entirely.
func (h *AttendanceHandler) Delete(c *gin.Context) {
	if h.attendance == nil {
		response.Error(c, appErrors.ErrInternal)
		return
	}
	id, err := parseIDParam(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}
	if err := h.attendance.Delete(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// Deactivate soft-deletes an attendance record.
func (h *AttendanceHandler) Deactivate(c *gin.Context) {
	if h.attendance == nil {
		response.Error(c, appErrors.ErrInternal)
		return
	}
	id, err := parseIDParam(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}
	if err := h.attendance.Deactivate(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

func parseAttendanceFilter(c *gin.Context) (models.AttendanceFilter, error) {
	filter := models.AttendanceFilter{}
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
	weekNumber, err := queryInt(c, "week_number")
	if err != nil {
		return filter, err
	}
	filter.WeekNumber = weekNumber
	includeInactive, err := queryBool(c, "include_inactive")
	if err != nil {
		return filter, err
	}
	filter.IncludeInactive = includeInactive
	return filter, nil
}

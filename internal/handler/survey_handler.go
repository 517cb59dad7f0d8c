package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/campus-pulse/wellbeing-api/internal/models"
	"github.com/campus-pulse/wellbeing-api/internal/service"
	appErrors "github.com/campus-pulse/wellbeing-api/pkg/errors"
	"github.com/campus-pulse/wellbeing-api/pkg/response"
)

// SurveyHandler exposes weekly survey CRUD endpoints.
type SurveyHandler struct {
	surveys *service.SurveyService
}

// NewSurveyHandler constructs the survey handler.
func NewSurveyHandler(surveys *service.SurveyService) *SurveyHandler {
	return &SurveyHandler{surveys: surveys}
}

// List returns survey responses matching the query filters.
func (h *SurveyHandler) List(c *gin.Context) {
	if h.surveys == nil {
		response.Error(c, appErrors.ErrInternal)
		return
	}
	filter, err := parseSurveyFilter(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	surveys, err := h.surveys.List(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, surveys, nil)
}

// Get returns a single survey response.
func (h *SurveyHandler) Get(c *gin.Context) {
	if h.surveys == nil {
		response.Error(c, appErrors.ErrInternal)
		return
	}
	id, err := parseIDParam(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}
	survey, err := h.surveys.Get(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, survey, nil)
}

// Create records a new survey response.
func (h *SurveyHandler) Create(c *gin.Context) {
	if h.surveys == nil {
		response.Error(c, appErrors.ErrInternal)
		return
	}
	var req service.SurveyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid survey payload"))
		return
	}
	survey, err := h.surveys.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, survey)
}

// Update rewrites a survey response.
func (h *SurveyHandler) Update(c *gin.Context) {
	if h.surveys == nil {
		response.Error(c, appErrors.ErrInternal)
		return
	}
	id, err := parseIDParam(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}
	var req service.SurveyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid survey payload"))
		return
	}
	survey, err := h.surveys.Update(c.Request.Context(), id, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, survey, nil)
}

// Delete removes a survey response entirely.
func (h *SurveyHandler) Delete(c *gin.Context) {
	if h.surveys == nil {
		response.Error(c, appErrors.ErrInternal)
		return
	}
	id, err := parseIDParam(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}
	if err := h.surveys.Delete(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// Deactivate soft-deletes a survey response.
func (h *SurveyHandler) Deactivate(c *gin.Context) {
	if h.surveys == nil {
		response.Error(c, appErrors.ErrInternal)
		return
	}
	id, err := parseIDParam(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}
	if err := h.surveys.Deactivate(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

func parseSurveyFilter(c *gin.Context) (models.SurveyFilter, error) {
	filter := models.SurveyFilter{}
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

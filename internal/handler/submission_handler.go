package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/campus-pulse/wellbeing-api/internal/models"
	"github.com/campus-pulse/wellbeing-api/internal/service"
	appErrors "github.com/campus-pulse/wellbeing-api/pkg/errors"
	"github.com/campus-pulse/wellbeing-api/pkg/response"
)

// SubmissionHandler exposes submission record CRUD endpoints.
type SubmissionHandler struct {
	submissions *service.SubmissionService
}

// NewSubmissionHandler constructs the submission handler.
func NewSubmissionHandler(submissions *service.SubmissionService) *SubmissionHandler {
	return &SubmissionHandler{submissions: submissions}
}

// List returns submission records matching the query filters.
func (h *SubmissionHandler) List(c *gin.Context) {
	if h.submissions == nil {
		response.Error(c, appErrors.ErrInternal)
		return
	}
	filter := models.SubmissionFilter{}
	studentID, err := queryInt64(c, "student_id")
	if err != nil {
		response.Error(c, err)
		return
	}
	filter.StudentID = studentID
	moduleID, err := queryInt64(c, "module_id")
	if err != nil {
		response.Error(c, err)
		return
	}
	filter.ModuleID = moduleID
	includeInactive, err := queryBool(c, "include_inactive")
	if err != nil {
		response.Error(c, err)
		return
	}
	filter.IncludeInactive = includeInactive

	records, err := h.submissions.List(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, records, nil)
}

// Get returns a single submission record.
func (h *SubmissionHandler) Get(c *gin.Context) {
	if h.submissions == nil {
		response.Error(c, appErrors.ErrInternal)
		return
	}
	id, err := parseIDParam(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}
	record, err := h.submissions.Get(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, record, nil)
}

// Create records a new submission.
func (h *SubmissionHandler) Create(c *gin.Context) {
	if h.submissions == nil {
		response.Error(c, appErrors.ErrInternal)
		return
	}
	var req service.SubmissionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid submission payload"))
		return
	}
	record, err := h.submissions.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, record)
}

// Update rewrites a submission record.
func (h *SubmissionHandler) Update(c *gin.Context) {
	if h.submissions == nil {
		response.Error(c, appErrors.ErrInternal)
		return
	}
	id, err := parseIDParam(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}
	var req service.SubmissionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid submission payload"))
		return
	}
	record, err := h.submissions.Update(c.Request.Context(), id, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, record, nil)
}

// Delete removes a submission record entirely.
func (h *SubmissionHandler) Delete(c *gin.Context) {
	if h.submissions == nil {
		response.Error(c, appErrors.ErrInternal)
		return
	}
	id, err := parseIDParam(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}
	if err := h.submissions.Delete(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// Deactivate soft-deletes a submission record.
func (h *SubmissionHandler) Deactivate(c *gin.Context) {
	if h.submissions == nil {
		response.Error(c, appErrors.ErrInternal)
		return
	}
	id, err := parseIDParam(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}
	if err := h.submissions.Deactivate(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/campus-pulse/wellbeing-api/internal/models"
	"github.com/campus-pulse/wellbeing-api/internal/service"
	appErrors "github.com/campus-pulse/wellbeing-api/pkg/errors"
	"github.com/campus-pulse/wellbeing-api/pkg/response"
)

// StudentHandler exposes student CRUD endpoints.
type StudentHandler struct {
	students *service.StudentService
}

// NewStudentHandler constructs the student handler.
func NewStudentHandler(students *service.StudentService) *StudentHandler {
	return &StudentHandler{students: students}
}

// List returns a paged student listing.
func (h *StudentHandler) List(c *gin.Context) {
	if h.students == nil {
		response.Error(c, appErrors.ErrInternal)
		return
	}
	includeInactive, err := queryBool(c, "include_inactive")
	if err != nil {
		response.Error(c, err)
		return
	}
	filter := models.StudentFilter{
		Search:          c.Query("search"),
		IncludeInactive: includeInactive,
		Page:            queryIntDefault(c, "page", 1),
		PageSize:        queryIntDefault(c, "page_size", 20),
	}
	students, pagination, err := h.students.List(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, students, pagination)
}

// Get returns a single active student.
func (h *StudentHandler) Get(c *gin.Context) {
	if h.students == nil {
		response.Error(c, appErrors.ErrInternal)
		return
	}
	id, err := parseIDParam(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}
	student, err := h.students.Get(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, student, nil)
}

// Create registers a new student.
func (h *StudentHandler) Create(c *gin.Context) {
	if h.students == nil {
		response.Error(c, appErrors.ErrInternal)
		return
	}
	var req service.CreateStudentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid student payload"))
		return
	}
	student, err := h.students.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, student)
}

// Update rewrites a student record.
func (h *StudentHandler) Update(c *gin.Context) {
	if h.students == nil {
		response.Error(c, appErrors.ErrInternal)
		return
	}
	id, err := parseIDParam(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}
	var req service.UpdateStudentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid student payload"))
		return
	}
	student, err := h.students.Update(c.Request.Context(), id, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, student, nil)
}

// Delete removes a student row entirely.
func (h *StudentHandler) Delete(c *gin.Context) {
	if h.students == nil {
		response.Error(c, appErrors.ErrInternal)
		return
	}
	id, err := parseIDParam(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}
	if err := h.students.Delete(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// Deactivate soft-deletes a student.
func (h *StudentHandler) Deactivate(c *gin.Context) {
	if h.students == nil {
		response.Error(c, appErrors.ErrInternal)
		return
	}
	id, err := parseIDParam(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}
	if err := h.students.Deactivate(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/campus-pulse/wellbeing-api/internal/service"
	appErrors "github.com/campus-pulse/wellbeing-api/pkg/errors"
	"github.com/campus-pulse/wellbeing-api/pkg/response"
)

// ModuleHandler exposes module catalogue reads.
type ModuleHandler struct {
	modules *service.ModuleService
}

// NewModuleHandler constructs the module handler.
func NewModuleHandler(modules *service.ModuleService) *ModuleHandler {
	return &ModuleHandler{modules: modules}
}

// List returns the module catalogue.
func (h *ModuleHandler) List(c *gin.Context) {
	if h.modules == nil {
		response.Error(c, appErrors.ErrInternal)
		return
	}
	includeInactive, err := queryBool(c, "include_inactive")
	if err != nil {
		response.Error(c, err)
		return
	}
	modules, err := h.modules.List(c.Request.Context(), includeInactive)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, modules, nil)
}

// Get returns a single module.
func (h *ModuleHandler) Get(c *gin.Context) {
	if h.modules == nil {
		response.Error(c, appErrors.ErrInternal)
		return
	}
	id, err := parseIDParam(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}
	module, err := h.modules.Get(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, module, nil)
}

// Enrolments returns enrolments for one module.
func (h *ModuleHandler) Enrolments(c *gin.Context) {
	if h.modules == nil {
		response.Error(c, appErrors.ErrInternal)
		return
	}
	id, err := parseIDParam(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}
	enrolments, err := h.modules.Enrolments(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, enrolments, nil)
}

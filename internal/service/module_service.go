package service

import (
	"context"
	"database/sql"

	"github.com/campus-pulse/wellbeing-api/internal/models"
	appErrors "github.com/campus-pulse/wellbeing-api/pkg/errors"
)

type moduleRepository interface {
	List(ctx context.Context, includeInactive bool) ([]models.Module, error)
	FindByID(ctx context.Context, id int64) (*models.Module, error)
	Enrolments(ctx context.Context, moduleID int64) ([]models.Enrolment, error)
}

// ModuleService exposes module catalogue reads.
type ModuleService struct {
	repo moduleRepository
}

// NewModuleService constructs the module service.
func NewModuleService(repo moduleRepository) *ModuleService {
	return &ModuleService{repo: repo}
}

// List returns the module catalogue.
func (s *ModuleService) List(ctx context.Context, includeInactive bool) ([]models.Module, error) {
	modules, err := s.repo.List(ctx, includeInactive)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrStore.Code, appErrors.ErrStore.Status, "failed to list modules")
	}
	return modules, nil
}

// Get returns a single module.
func (s *ModuleService) Get(ctx context.Context, id int64) (*models.Module, error) {
	module, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "module not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrStore.Code, appErrors.ErrStore.Status, "failed to load module")
	}
	return module, nil
}

// Enrolments returns enrolments for one module.
func (s *ModuleService) Enrolments(ctx context.Context, moduleID int64) ([]models.Enrolment, error) {
	if _, err := s.Get(ctx, moduleID); err != nil {
		return nil, err
	}
	enrolments, err := s.repo.Enrolments(ctx, moduleID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrStore.Code, appErrors.ErrStore.Status, "failed to list enrolments")
	}
	return enrolments, nil
}

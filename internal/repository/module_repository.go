package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/campus-pulse/wellbeing-api/internal/models"
)

// ModuleRepository reads module and enrolment rows. Modules are reference
// data for the analysis endpoints and are not mutated through this API.
type ModuleRepository struct {
	db *sqlx.DB
}

// NewModuleRepository constructs a ModuleRepository.
func NewModuleRepository(db *sqlx.DB) *ModuleRepository {
	return &ModuleRepository{db: db}
}

// List returns modules, active only unless includeInactive.
func (r *ModuleRepository) List(ctx context.Context, includeInactive bool) ([]models.Module, error) {
	query := "SELECT id, module_code, module_title, credit, academic_year, is_active FROM modules"
	if !includeInactive {
		query += " WHERE is_active = TRUE"
	}
	query += " ORDER BY module_code ASC"

	modules := []models.Module{}
	if err := r.db.SelectContext(ctx, &modules, query); err != nil {
		return nil, fmt.Errorf("list modules: %w", err)
	}
	return modules, nil
}

// FindByID fetches a module by ID.
func (r *ModuleRepository) FindByID(ctx context.Context, id int64) (*models.Module, error) {
	const query = "SELECT id, module_code, module_title, credit, academic_year, is_active FROM modules WHERE id = $1"
	var module models.Module
	if err := r.db.GetContext(ctx, &module, query, id); err != nil {
		return nil, err
	}
	return &module, nil
}

// Enrolments returns active enrolments for a module.
func (r *ModuleRepository) Enrolments(ctx context.Context, moduleID int64) ([]models.Enrolment, error) {
	const query = "SELECT id, student_id, module_id, enrol_date, is_active FROM enrolments WHERE module_id = $1 AND is_active = TRUE ORDER BY student_id ASC"
	enrolments := []models.Enrolment{}
	if err := r.db.SelectContext(ctx, &enrolments, query, moduleID); err != nil {
		return nil, fmt.Errorf("list enrolments: %w", err)
	}
	return enrolments, nil
}

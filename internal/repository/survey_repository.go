package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/campus-pulse/wellbeing-api/internal/models"
)

// SurveyRepository manages persistence for weekly wellbeing surveys.
type SurveyRepository struct {
	db *sqlx.DB
}

// NewSurveyRepository constructs a SurveyRepository.
func NewSurveyRepository(db *sqlx.DB) *SurveyRepository {
	return &SurveyRepository{db: db}
}

// List returns survey responses matching the provided filters.
func (r *SurveyRepository) List(ctx context.Context, filter models.SurveyFilter) ([]models.SurveyResponse, error) {
	var builder strings.Builder
	builder.WriteString("SELECT id, student_id, module_id, week_number, stress_level, hours_slept, mood_comment, created_at, is_active FROM survey_responses WHERE 1=1")
	var args []interface{}
	if !filter.IncludeInactive {
		builder.WriteString(" AND is_active = TRUE")
	}
	if filter.StudentID != nil {
		args = append(args, *filter.StudentID)
		builder.WriteString(fmt.Sprintf(" AND student_id = $%d", len(args)))
	}
	if filter.ModuleID != nil {
		args = append(args, *filter.ModuleID)
		builder.WriteString(fmt.Sprintf(" AND module_id = $%d", len(args)))
	}
	if filter.WeekNumber != nil {
		args = append(args, *filter.WeekNumber)
		builder.WriteString(fmt.Sprintf(" AND week_number = $%d", len(args)))
	}
	builder.WriteString(" ORDER BY student_id ASC, week_number ASC")

	responses := []models.SurveyResponse{}
	if err := r.db.SelectContext(ctx, &responses, builder.String(), args...); err != nil {
		return nil, fmt.Errorf("list survey responses: %w", err)
	}
	return responses, nil
}

// FindByID fetches a single survey response.
func (r *SurveyRepository) FindByID(ctx context.Context, id int64) (*models.SurveyResponse, error) {
	const query = "SELECT id, student_id, module_id, week_number, stress_level, hours_slept, mood_comment, created_at, is_active FROM survey_responses WHERE id = $1"
	var response models.SurveyResponse
	if err := r.db.GetContext(ctx, &response, query, id); err != nil {
		return nil, err
	}
	return &response, nil
}

// Create inserts a new survey response.
func (r *SurveyRepository) Create(ctx context.Context, response *models.SurveyResponse) error {
	if response.CreatedAt == nil {
		now := time.Now().UTC()
		response.CreatedAt = &now
	}
	const query = `INSERT INTO survey_responses (student_id, module_id, week_number, stress_level, hours_slept, mood_comment, created_at, is_active)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8) RETURNING id`
	if err := r.db.QueryRowxContext(ctx, query,
		response.StudentID, response.ModuleID, response.WeekNumber, response.StressLevel,
		response.HoursSlept, response.MoodComment, response.CreatedAt, response.IsActive,
	).Scan(&response.ID); err != nil {
		return fmt.Errorf("create survey response: %w", err)
	}
	return nil
}

// Update rewrites the mutable survey fields.
func (r *SurveyRepository) Update(ctx context.Context, response *models.SurveyResponse) error {
	const query = `UPDATE survey_responses SET student_id = $1, module_id = $2, week_number = $3, stress_level = $4, hours_slept = $5, mood_comment = $6, is_active = $7 WHERE id = $8`
	res, err := r.db.ExecContext(ctx, query,
		response.StudentID, response.ModuleID, response.WeekNumber, response.StressLevel,
		response.HoursSlept, response.MoodComment, response.IsActive, response.ID,
	)
	if err != nil {
		return fmt.Errorf("update survey response: %w", err)
	}
	return requireRowAffected(res, "survey response")
}

// HardDelete removes the row entirely.
func (r *SurveyRepository) HardDelete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM survey_responses WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("delete survey response: %w", err)
	}
	return requireRowAffected(res, "survey response")
}

// Deactivate soft-deletes the row.
func (r *SurveyRepository) Deactivate(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, "UPDATE survey_responses SET is_active = FALSE WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("deactivate survey response: %w", err)
	}
	return requireRowAffected(res, "survey response")
}

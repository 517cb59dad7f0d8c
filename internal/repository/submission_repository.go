package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"

	"github.com/campus-pulse/wellbeing-api/internal/models"
)

// SubmissionRepository manages persistence for assignment submissions.
type SubmissionRepository struct {
	db *sqlx.DB
}

// NewSubmissionRepository constructs a SubmissionRepository.
func NewSubmissionRepository(db *sqlx.DB) *SubmissionRepository {
	return &SubmissionRepository{db: db}
}

// List returns submission records matching the provided filters.
func (r *SubmissionRepository) List(ctx context.Context, filter models.SubmissionFilter) ([]models.SubmissionRecord, error) {
	var builder strings.Builder
	builder.WriteString("SELECT id, student_id, module_id, assessment_name, due_date, submitted_date, is_submitted, is_late, is_active FROM submission_records WHERE 1=1")
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
	builder.WriteString(" ORDER BY student_id ASC, module_id ASC, assessment_name ASC")

	records := []models.SubmissionRecord{}
	if err := r.db.SelectContext(ctx, &records, builder.String(), args...); err != nil {
		return nil, fmt.Errorf("list submission records: %w", err)
	}
	return records, nil
}

// FindByID fetches a single submission record.
func (r *SubmissionRepository) FindByID(ctx context.Context, id int64) (*models.SubmissionRecord, error) {
	const query = "SELECT id, student_id, module_id, assessment_name, due_date, submitted_date, is_submitted, is_late, is_active FROM submission_records WHERE id = $1"
	var record models.SubmissionRecord
	if err := r.db.GetContext(ctx, &record, query, id); err != nil {
		return nil, err
	}
	return &record, nil
}

// Create inserts a new submission record.
func (r *SubmissionRepository) Create(ctx context.Context, record *models.SubmissionRecord) error {
	const query = `INSERT INTO submission_records (student_id, module_id, assessment_name, due_date, submitted_date, is_submitted, is_late, is_active)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8) RETURNING id`
	if err := r.db.QueryRowxContext(ctx, query,
		record.StudentID, record.ModuleID, record.AssessmentName, record.DueDate,
		record.SubmittedDate, record.IsSubmitted, record.IsLate, record.IsActive,
	).Scan(&record.ID); err != nil {
		return fmt.Errorf("create submission record: %w", err)
	}
	return nil
}

// Update rewrites the mutable submission fields.
func (r *SubmissionRepository) Update(ctx context.Context, record *models.SubmissionRecord) error {
	const query = `UPDATE submission_records SET student_id = $1, module_id = $2, assessment_name = $3, due_date = $4, submitted_date = $5, is_submitted = $6, is_late = $7, is_active = $8 WHERE id = $9`
	res, err := r.db.ExecContext(ctx, query,
		record.StudentID, record.ModuleID, record.AssessmentName, record.DueDate,
		record.SubmittedDate, record.IsSubmitted, record.IsLate, record.IsActive, record.ID,
	)
	if err != nil {
		return fmt.Errorf("update submission record: %w", err)
	}
	return requireRowAffected(res, "submission record")
}

// HardDelete removes the row entirely.
func (r *SubmissionRepository) HardDelete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM submission_records WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("delete submission record: %w", err)
	}
	return requireRowAffected(res, "submission record")
}

// Deactivate soft-deletes the row.
func (r *SubmissionRepository) Deactivate(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, "UPDATE submission_records SET is_active = FALSE WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("deactivate submission record: %w", err)
	}
	return requireRowAffected(res, "submission record")
}

package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"

	"github.com/campus-pulse/wellbeing-api/internal/models"
)

// AnalysisRepository exposes the read queries the stress-trend and
// correlation engines run over survey_responses, grades and
// attendance_records.
type AnalysisRepository struct {
	db *sqlx.DB
}

// NewAnalysisRepository instantiates the repository.
func NewAnalysisRepository(db *sqlx.DB) *AnalysisRepository {
	return &AnalysisRepository{db: db}
}

// StressTrend returns one student's weekly stress curve ascending by week.
func (r *AnalysisRepository) StressTrend(ctx context.Context, studentID int64, filter models.TrendFilter) ([]models.StressTrendPoint, error) {
	var builder strings.Builder
	builder.WriteString("SELECT week_number, stress_level, created_at FROM survey_responses WHERE student_id = $1")
	args := []interface{}{studentID}
	if !filter.IncludeInactive {
		builder.WriteString(" AND is_active = TRUE")
	}
	if filter.ModuleID != nil {
		args = append(args, *filter.ModuleID)
		builder.WriteString(fmt.Sprintf(" AND module_id = $%d", len(args)))
	}
	builder.WriteString(" ORDER BY week_number ASC")

	points := []models.StressTrendPoint{}
	if err := r.db.SelectContext(ctx, &points, builder.String(), args...); err != nil {
		return nil, fmt.Errorf("query stress trend: %w", err)
	}
	return points, nil
}

// StudentsAverageAttendance returns AVG(attendance_rate) grouped by student.
func (r *AnalysisRepository) StudentsAverageAttendance(ctx context.Context, filter models.TrendFilter) ([]models.StudentAttendanceAverage, error) {
	var builder strings.Builder
	builder.WriteString("SELECT student_id, AVG(attendance_rate) AS average_attendance_rate FROM attendance_records WHERE 1=1")
	var args []interface{}
	if !filter.IncludeInactive {
		builder.WriteString(" AND is_active = TRUE")
	}
	if filter.ModuleID != nil {
		args = append(args, *filter.ModuleID)
		builder.WriteString(fmt.Sprintf(" AND module_id = $%d", len(args)))
	}
	builder.WriteString(" GROUP BY student_id ORDER BY student_id ASC")

	averages := []models.StudentAttendanceAverage{}
	if err := r.db.SelectContext(ctx, &averages, builder.String(), args...); err != nil {
		return nil, fmt.Errorf("query students average attendance: %w", err)
	}
	return averages, nil
}

// StudentAverageAttendance returns one student's mean attendance_rate, or nil
// when the student has no matching rows. The nil result is distinct from 0.0.
func (r *AnalysisRepository) StudentAverageAttendance(ctx context.Context, studentID int64, filter models.TrendFilter) (*float64, error) {
	var builder strings.Builder
	builder.WriteString("SELECT AVG(attendance_rate) FROM attendance_records WHERE student_id = $1")
	args := []interface{}{studentID}
	if !filter.IncludeInactive {
		builder.WriteString(" AND is_active = TRUE")
	}
	if filter.ModuleID != nil {
		args = append(args, *filter.ModuleID)
		builder.WriteString(fmt.Sprintf(" AND module_id = $%d", len(args)))
	}

	var avg sql.NullFloat64
	if err := r.db.GetContext(ctx, &avg, builder.String(), args...); err != nil {
		return nil, fmt.Errorf("query student average attendance: %w", err)
	}
	if !avg.Valid {
		return nil, nil
	}
	return &avg.Float64, nil
}

// StressGradeAggregates returns the per-module aggregate sums over the inner
// join of survey_responses and grades on (student_id, module_id). If a student
// holds several grade rows for a module, the join yields the cross-product;
// the correlation engine depends on those semantics.
func (r *AnalysisRepository) StressGradeAggregates(ctx context.Context, filter models.ModuleComparisonFilter) ([]models.StressGradeAggregate, error) {
	var builder strings.Builder
	builder.WriteString(`SELECT sr.module_id,
        COUNT(*) AS sample_size,
        AVG(sr.stress_level) AS avg_stress,
        AVG(g.grade) AS avg_grade,
        SUM(sr.stress_level::DOUBLE PRECISION * g.grade) AS sum_xy,
        SUM(sr.stress_level::DOUBLE PRECISION * sr.stress_level) AS sum_x2,
        SUM(g.grade * g.grade) AS sum_y2
        FROM survey_responses sr
        INNER JOIN grades g ON g.student_id = sr.student_id AND g.module_id = sr.module_id
        WHERE 1=1`)
	var args []interface{}
	if !filter.IncludeInactive {
		builder.WriteString(" AND sr.is_active = TRUE AND g.is_active = TRUE")
	}
	if len(filter.ModuleIDs) > 0 {
		placeholders := make([]string, len(filter.ModuleIDs))
		for i, id := range filter.ModuleIDs {
			args = append(args, id)
			placeholders[i] = fmt.Sprintf("$%d", len(args))
		}
		builder.WriteString(fmt.Sprintf(" AND sr.module_id IN (%s)", strings.Join(placeholders, ",")))
	}
	builder.WriteString(" GROUP BY sr.module_id ORDER BY sr.module_id ASC")

	aggregates := []models.StressGradeAggregate{}
	if err := r.db.SelectContext(ctx, &aggregates, builder.String(), args...); err != nil {
		return nil, fmt.Errorf("query stress grade aggregates: %w", err)
	}
	return aggregates, nil
}

// GradeValues returns raw grade values for histogram bucketing.
func (r *AnalysisRepository) GradeValues(ctx context.Context, moduleID *int64, includeInactive bool) ([]float64, error) {
	var builder strings.Builder
	builder.WriteString("SELECT grade FROM grades WHERE grade IS NOT NULL")
	var args []interface{}
	if !includeInactive {
		builder.WriteString(" AND is_active = TRUE")
	}
	if moduleID != nil {
		args = append(args, *moduleID)
		builder.WriteString(fmt.Sprintf(" AND module_id = $%d", len(args)))
	}

	grades := []float64{}
	if err := r.db.SelectContext(ctx, &grades, builder.String(), args...); err != nil {
		return nil, fmt.Errorf("query grade values: %w", err)
	}
	return grades, nil
}

// StressGradePairs returns raw scatter points from the survey x grade join,
// ordered by (student_id, module_id, week_number).
func (r *AnalysisRepository) StressGradePairs(ctx context.Context, moduleID *int64, includeInactive bool) ([]models.StressGradePair, error) {
	var builder strings.Builder
	builder.WriteString(`SELECT sr.student_id, sr.module_id, sr.week_number, sr.stress_level, g.grade
        FROM survey_responses sr
        INNER JOIN grades g ON g.student_id = sr.student_id AND g.module_id = sr.module_id
        WHERE 1=1`)
	var args []interface{}
	if !includeInactive {
		builder.WriteString(" AND sr.is_active = TRUE AND g.is_active = TRUE")
	}
	if moduleID != nil {
		args = append(args, *moduleID)
		builder.WriteString(fmt.Sprintf(" AND sr.module_id = $%d", len(args)))
	}
	builder.WriteString(" ORDER BY sr.student_id ASC, sr.module_id ASC, sr.week_number ASC")

	pairs := []models.StressGradePair{}
	if err := r.db.SelectContext(ctx, &pairs, builder.String(), args...); err != nil {
		return nil, fmt.Errorf("query stress grade pairs: %w", err)
	}
	return pairs, nil
}

// SurveyScanRows streams survey rows in the (student, module, week) order the
// high-stress detector scans in. NULL module_id rows sort last per student.
func (r *AnalysisRepository) SurveyScanRows(ctx context.Context, moduleID *int64, includeInactive bool) ([]models.SurveyScanRow, error) {
	var builder strings.Builder
	builder.WriteString("SELECT student_id, module_id, week_number, stress_level FROM survey_responses WHERE 1=1")
	var args []interface{}
	if !includeInactive {
		builder.WriteString(" AND is_active = TRUE")
	}
	if moduleID != nil {
		args = append(args, *moduleID)
		builder.WriteString(fmt.Sprintf(" AND module_id = $%d", len(args)))
	}
	builder.WriteString(" ORDER BY student_id ASC, module_id ASC, week_number ASC")

	rows := []models.SurveyScanRow{}
	if err := r.db.SelectContext(ctx, &rows, builder.String(), args...); err != nil {
		return nil, fmt.Errorf("query survey scan rows: %w", err)
	}
	return rows, nil
}

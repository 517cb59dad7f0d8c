package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"

	"github.com/campus-pulse/wellbeing-api/internal/models"
)

// AttendanceRepository manages persistence for attendance records.
type AttendanceRepository struct {
	db *sqlx.DB
}

// NewAttendanceRepository constructs an AttendanceRepository.
func NewAttendanceRepository(db *sqlx.DB) *AttendanceRepository {
	return &AttendanceRepository{db: db}
}

// List returns attendance records matching the provided filters.
func (r *AttendanceRepository) List(ctx context.Context, filter models.AttendanceFilter) ([]models.AttendanceRecord, error) {
	var builder strings.Builder
	builder.WriteString("SELECT id, student_id, module_id, week_number, attended_sessions, total_sessions, attendance_rate, is_active FROM attendance_records WHERE 1=1")
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
	builder.WriteString(" ORDER BY student_id ASC, module_id ASC, week_number ASC")

	records := []models.AttendanceRecord{}
	if err := r.db.SelectContext(ctx, &records, builder.String(), args...); err != nil {
		return nil, fmt.Errorf("list attendance records: %w", err)
	}
	return records, nil
}

// FindByID fetches a single attendance record.
func (r *AttendanceRepository) FindByID(ctx context.Context, id int64) (*models.AttendanceRecord, error) {
	const query = "SELECT id, student_id, module_id, week_number, attended_sessions, total_sessions, attendance_rate, is_active FROM attendance_records WHERE id = $1"
	var record models.AttendanceRecord
	if err := r.db.GetContext(ctx, &record, query, id); err != nil {
		return nil, err
	}
	return &record, nil
}

// Create inserts a new attendance record.
func (r *AttendanceRepository) Create(ctx context.Context, record *models.AttendanceRecord) error {
	const query = `INSERT INTO attendance_records (student_id, module_id, week_number, attended_sessions, total_sessions, attendance_rate, is_active)
        VALUES ($1, $2, $3, $4, $5, $6, $7) RETURNING id`
	if err := r.db.QueryRowxContext(ctx, query,
		record.StudentID, record.ModuleID, record.WeekNumber,
		record.AttendedSessions, record.TotalSessions, record.AttendanceRate, record.IsActive,
	).Scan(&record.ID); err != nil {
		return fmt.Errorf("create attendance record: %w", err)
	}
	return nil
}

// Update rewrites the mutable attendance fields.
func (r *AttendanceRepository) Update(ctx context.Context, record *models.AttendanceRecord) error {
	const query = `UPDATE attendance_records SET student_id = $1, module_id = $2, week_number = $3, attended_sessions = $4, total_sessions = $5, attendance_rate = $6, is_active = $7 WHERE id = $8`
	res, err := r.db.ExecContext(ctx, query,
		record.StudentID, record.ModuleID, record.WeekNumber,
		record.AttendedSessions, record.TotalSessions, record.AttendanceRate,
		record.IsActive, record.ID,
	)
	if err != nil {
		return fmt.Errorf("update attendance record: %w", err)
	}
	return requireRowAffected(res, "attendance record")
}

// HardDelete removes the row entirely.
func (r *AttendanceRepository) HardDelete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM attendance_records WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("delete attendance record: %w", err)
	}
	return requireRowAffected(res, "attendance record")
}

// Deactivate soft-deletes the row.
func (r *AttendanceRepository) Deactivate(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, "UPDATE attendance_records SET is_active = FALSE WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("deactivate attendance record: %w", err)
	}
	return requireRowAffected(res, "attendance record")
}

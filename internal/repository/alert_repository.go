package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"

	"github.com/campus-pulse/wellbeing-api/internal/models"
)

// AlertRepository manages persistence for high-stress alerts.
type AlertRepository struct {
	db *sqlx.DB
}

// NewAlertRepository constructs an AlertRepository.
func NewAlertRepository(db *sqlx.DB) *AlertRepository {
	return &AlertRepository{db: db}
}

// List returns alerts matching the provided filters, newest week first.
func (r *AlertRepository) List(ctx context.Context, filter models.AlertFilter) ([]models.Alert, error) {
	var builder strings.Builder
	builder.WriteString("SELECT id, student_id, module_id, week_number, reason, created_at, resolved, is_active FROM alerts WHERE 1=1")
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
	if filter.Resolved != nil {
		args = append(args, *filter.Resolved)
		builder.WriteString(fmt.Sprintf(" AND resolved = $%d", len(args)))
	}
	builder.WriteString(" ORDER BY week_number DESC, student_id ASC")

	alerts := []models.Alert{}
	if err := r.db.SelectContext(ctx, &alerts, builder.String(), args...); err != nil {
		return nil, fmt.Errorf("list alerts: %w", err)
	}
	return alerts, nil
}

// FindByID fetches a single alert.
func (r *AlertRepository) FindByID(ctx context.Context, id int64) (*models.Alert, error) {
	const query = "SELECT id, student_id, module_id, week_number, reason, created_at, resolved, is_active FROM alerts WHERE id = $1"
	var alert models.Alert
	if err := r.db.GetContext(ctx, &alert, query, id); err != nil {
		return nil, err
	}
	return &alert, nil
}

// Create inserts a single alert row.
func (r *AlertRepository) Create(ctx context.Context, alert *models.Alert) error {
	const query = `INSERT INTO alerts (student_id, module_id, week_number, reason, created_at, resolved, is_active)
        VALUES ($1, $2, $3, $4, $5, $6, $7) RETURNING id`
	if err := r.db.QueryRowxContext(ctx, query,
		alert.StudentID, alert.ModuleID, alert.WeekNumber, alert.Reason,
		alert.CreatedAt, alert.Resolved, alert.IsActive,
	).Scan(&alert.ID); err != nil {
		return fmt.Errorf("create alert: %w", err)
	}
	return nil
}

// Update rewrites the mutable alert fields.
func (r *AlertRepository) Update(ctx context.Context, alert *models.Alert) error {
	const query = `UPDATE alerts SET student_id = $1, module_id = $2, week_number = $3, reason = $4, resolved = $5, is_active = $6 WHERE id = $7`
	res, err := r.db.ExecContext(ctx, query,
		alert.StudentID, alert.ModuleID, alert.WeekNumber, alert.Reason,
		alert.Resolved, alert.IsActive, alert.ID,
	)
	if err != nil {
		return fmt.Errorf("update alert: %w", err)
	}
	return requireRowAffected(res, "alert")
}

// HardDelete removes the row entirely.
func (r *AlertRepository) HardDelete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM alerts WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("delete alert: %w", err)
	}
	return requireRowAffected(res, "alert")
}

// Deactivate soft-deletes the row.
func (r *AlertRepository) Deactivate(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, "UPDATE alerts SET is_active = FALSE WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("deactivate alert: %w", err)
	}
	return requireRowAffected(res, "alert")
}

// Replace atomically swaps the alert set produced by one materializer run.
// When clearOld is set, prior rows are deleted first: all rows when moduleID
// is nil, otherwise only rows for that module. Deletes and inserts share one
// transaction so a failed insert never leaves the delete committed.
func (r *AlertRepository) Replace(ctx context.Context, moduleID *int64, clearOld bool, alerts []models.Alert) ([]models.Alert, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin alert replace: %w", err)
	}

	if clearOld {
		if moduleID == nil {
			_, err = tx.ExecContext(ctx, "DELETE FROM alerts")
		} else {
			_, err = tx.ExecContext(ctx, "DELETE FROM alerts WHERE module_id = $1", *moduleID)
		}
		if err != nil {
			tx.Rollback() //nolint:errcheck
			return nil, fmt.Errorf("clear old alerts: %w", err)
		}
	}

	const query = `INSERT INTO alerts (student_id, module_id, week_number, reason, created_at, resolved, is_active)
        VALUES ($1, $2, $3, $4, $5, $6, $7) RETURNING id`
	inserted := make([]models.Alert, 0, len(alerts))
	for _, alert := range alerts {
		if err := tx.QueryRowxContext(ctx, query,
			alert.StudentID, alert.ModuleID, alert.WeekNumber, alert.Reason,
			alert.CreatedAt, alert.Resolved, alert.IsActive,
		).Scan(&alert.ID); err != nil {
			tx.Rollback() //nolint:errcheck
			return nil, fmt.Errorf("insert alert: %w", err)
		}
		inserted = append(inserted, alert)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit alert replace: %w", err)
	}
	return inserted, nil
}

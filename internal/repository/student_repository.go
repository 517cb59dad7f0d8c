package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"

	"github.com/campus-pulse/wellbeing-api/internal/models"
)

// StudentRepository manages persistence for student records.
type StudentRepository struct {
	db *sqlx.DB
}

// NewStudentRepository constructs a StudentRepository.
func NewStudentRepository(db *sqlx.DB) *StudentRepository {
	return &StudentRepository{db: db}
}

// List returns students matching the provided filters plus the total count.
func (r *StudentRepository) List(ctx context.Context, filter models.StudentFilter) ([]models.Student, int, error) {
	base := "FROM students WHERE 1=1"
	var args []interface{}
	if !filter.IncludeInactive {
		base += " AND is_active = TRUE"
	}
	if filter.Search != "" {
		args = append(args, "%"+strings.ToLower(filter.Search)+"%")
		base += fmt.Sprintf(" AND (LOWER(full_name) LIKE $%d OR LOWER(student_number) LIKE $%d)", len(args), len(args))
	}

	page := filter.Page
	if page < 1 {
		page = 1
	}
	size := filter.PageSize
	if size <= 0 || size > 100 {
		size = 20
	}
	offset := (page - 1) * size

	query := fmt.Sprintf(`SELECT id, student_number, full_name, email, course_name, year_of_study, is_active
        %s ORDER BY student_number ASC LIMIT %d OFFSET %d`, base, size, offset)

	students := []models.Student{}
	if err := r.db.SelectContext(ctx, &students, query, args...); err != nil {
		return nil, 0, fmt.Errorf("list students: %w", err)
	}

	var total int
	if err := r.db.GetContext(ctx, &total, "SELECT COUNT(*) "+base, args...); err != nil {
		return nil, 0, fmt.Errorf("count students: %w", err)
	}
	return students, total, nil
}

// FindByID fetches a student by ID.
func (r *StudentRepository) FindByID(ctx context.Context, id int64) (*models.Student, error) {
	const query = "SELECT id, student_number, full_name, email, course_name, year_of_study, is_active FROM students WHERE id = $1"
	var student models.Student
	if err := r.db.GetContext(ctx, &student, query, id); err != nil {
		return nil, err
	}
	return &student, nil
}

// ExistsByNumber checks if a student number is taken, optionally excluding an ID.
func (r *StudentRepository) ExistsByNumber(ctx context.Context, studentNumber string, excludeID int64) (bool, error) {
	query := "SELECT 1 FROM students WHERE student_number = $1"
	args := []interface{}{studentNumber}
	if excludeID != 0 {
		query += " AND id <> $2"
		args = append(args, excludeID)
	}
	var exists int
	if err := r.db.GetContext(ctx, &exists, query+" LIMIT 1", args...); err != nil {
		if err == sql.ErrNoRows {
			return false, nil
		}
		return false, fmt.Errorf("check student number: %w", err)
	}
	return true, nil
}

// Create inserts a new student record.
func (r *StudentRepository) Create(ctx context.Context, student *models.Student) error {
	const query = `INSERT INTO students (student_number, full_name, email, course_name, year_of_study, is_active)
        VALUES ($1, $2, $3, $4, $5, $6) RETURNING id`
	if err := r.db.QueryRowxContext(ctx, query,
		student.StudentNumber, student.FullName, student.Email,
		student.CourseName, student.YearOfStudy, student.IsActive,
	).Scan(&student.ID); err != nil {
		return fmt.Errorf("create student: %w", err)
	}
	return nil
}

// Update rewrites the mutable student fields.
func (r *StudentRepository) Update(ctx context.Context, student *models.Student) error {
	const query = `UPDATE students SET student_number = $1, full_name = $2, email = $3, course_name = $4, year_of_study = $5, is_active = $6 WHERE id = $7`
	res, err := r.db.ExecContext(ctx, query,
		student.StudentNumber, student.FullName, student.Email,
		student.CourseName, student.YearOfStudy, student.IsActive, student.ID,
	)
	if err != nil {
		return fmt.Errorf("update student: %w", err)
	}
	return requireRowAffected(res, "student")
}

// HardDelete removes the student row entirely.
func (r *StudentRepository) HardDelete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM students WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("delete student: %w", err)
	}
	return requireRowAffected(res, "student")
}

// Deactivate soft-deletes the student.
func (r *StudentRepository) Deactivate(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, "UPDATE students SET is_active = FALSE WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("deactivate student: %w", err)
	}
	return requireRowAffected(res, "student")
}

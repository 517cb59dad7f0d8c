package service

import (
	"context"
	"database/sql"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/campus-pulse/wellbeing-api/internal/models"
	appErrors "github.com/campus-pulse/wellbeing-api/pkg/errors"
)

type studentRepository interface {
	List(ctx context.Context, filter models.StudentFilter) ([]models.Student, int, error)
	FindByID(ctx context.Context, id int64) (*models.Student, error)
	ExistsByNumber(ctx context.Context, studentNumber string, excludeID int64) (bool, error)
	Create(ctx context.Context, student *models.Student) error
	Update(ctx context.Context, student *models.Student) error
	HardDelete(ctx context.Context, id int64) error
	Deactivate(ctx context.Context, id int64) error
}

// CreateStudentRequest holds payload for creating students.
type CreateStudentRequest struct {
	StudentNumber string  `json:"student_number" validate:"required"`
	FullName      string  `json:"full_name" validate:"required"`
	Email         *string `json:"email" validate:"omitempty,email"`
	CourseName    *string `json:"course_name"`
	YearOfStudy   *int    `json:"year_of_study" validate:"omitempty,gte=1,lte=7"`
}

// UpdateStudentRequest holds payload for updating students.
type UpdateStudentRequest struct {
	StudentNumber string  `json:"student_number" validate:"required"`
	FullName      string  `json:"full_name" validate:"required"`
	Email         *string `json:"email" validate:"omitempty,email"`
	CourseName    *string `json:"course_name"`
	YearOfStudy   *int    `json:"year_of_study" validate:"omitempty,gte=1,lte=7"`
	IsActive      *bool   `json:"is_active"`
}

// StudentService handles student use-cases.
type StudentService struct {
	repo      studentRepository
	validator *validator.Validate
	logger    *zap.Logger
}

// NewStudentService constructs the student service.
func NewStudentService(repo studentRepository, validate *validator.Validate, logger *zap.Logger) *StudentService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &StudentService{repo: repo, validator: validate, logger: logger}
}

// List returns students and pagination metadata.
func (s *StudentService) List(ctx context.Context, filter models.StudentFilter) ([]models.Student, *models.Pagination, error) {
	students, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, nil, appErrors.Wrap(err, appErrors.ErrStore.Code, appErrors.ErrStore.Status, "failed to list students")
	}
	page := filter.Page
	if page < 1 {
		page = 1
	}
	size := filter.PageSize
	if size <= 0 {
		size = 20
	}
	pagination := &models.Pagination{Page: page, PageSize: size, TotalCount: total}
	return students, pagination, nil
}

// Get returns a single active student.
func (s *StudentService) Get(ctx context.Context, id int64) (*models.Student, error) {
	student, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "student not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrStore.Code, appErrors.ErrStore.Status, "failed to load student")
	}
	if !student.IsActive {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "student not found")
	}
	return student, nil
}

// Create registers a new student.
func (s *StudentService) Create(ctx context.Context, req CreateStudentRequest) (*models.Student, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid student payload")
	}
	exists, err := s.repo.ExistsByNumber(ctx, req.StudentNumber, 0)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrStore.Code, appErrors.ErrStore.Status, "failed to validate student number")
	}
	if exists {
		return nil, appErrors.Clone(appErrors.ErrConflict, "student number already used")
	}
	student := &models.Student{
		StudentNumber: req.StudentNumber,
		FullName:      req.FullName,
		Email:         req.Email,
		CourseName:    req.CourseName,
		YearOfStudy:   req.YearOfStudy,
		IsActive:      true,
	}
	if err := s.repo.Create(ctx, student); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrStore.Code, appErrors.ErrStore.Status, "failed to create student")
	}
	return student, nil
}

// Update rewrites an existing student.
func (s *StudentService) Update(ctx context.Context, id int64, req UpdateStudentRequest) (*models.Student, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid student payload")
	}
	existing, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	taken, err := s.repo.ExistsByNumber(ctx, req.StudentNumber, id)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrStore.Code, appErrors.ErrStore.Status, "failed to validate student number")
	}
	if taken {
		return nil, appErrors.Clone(appErrors.ErrConflict, "student number already used")
	}

	existing.StudentNumber = req.StudentNumber
	existing.FullName = req.FullName
	existing.Email = req.Email
	existing.CourseName = req.CourseName
	existing.YearOfStudy = req.YearOfStudy
	if req.IsActive != nil {
		existing.IsActive = *req.IsActive
	}
	if err := s.repo.Update(ctx, existing); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrStore.Code, appErrors.ErrStore.Status, "failed to update student")
	}
	return existing, nil
}

// Delete removes a student row entirely. The record disappears rather than
// being deactivated; Deactivate covers the soft path.
func (s *StudentService) Delete(ctx context.Context, id int64) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}
	if err := s.repo.HardDelete(ctx, id); err != nil {
		return appErrors.Wrap(err, appErrors.ErrStore.Code, appErrors.ErrStore.Status, "failed to delete student")
	}
	return nil
}

// Deactivate soft-deletes a student.
func (s *StudentService) Deactivate(ctx context.Context, id int64) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}
	if err := s.repo.Deactivate(ctx, id); err != nil {
		return appErrors.Wrap(err, appErrors.ErrStore.Code, appErrors.ErrStore.Status, "failed to deactivate student")
	}
	return nil
}

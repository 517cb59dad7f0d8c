package service

import (
	"context"
	"database/sql"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/campus-pulse/wellbeing-api/internal/models"
	appErrors "github.com/campus-pulse/wellbeing-api/pkg/errors"
)

type submissionRepository interface {
	List(ctx context.Context, filter models.SubmissionFilter) ([]models.SubmissionRecord, error)
	FindByID(ctx context.Context, id int64) (*models.SubmissionRecord, error)
	Create(ctx context.Context, record *models.SubmissionRecord) error
	Update(ctx context.Context, record *models.SubmissionRecord) error
	HardDelete(ctx context.Context, id int64) error
	Deactivate(ctx context.Context, id int64) error
}

// SubmissionRequest holds payload for creating or replacing submissions.
type SubmissionRequest struct {
	StudentID      int64   `json:"student_id" validate:"required,gt=0"`
	ModuleID       int64   `json:"module_id" validate:"required,gt=0"`
	AssessmentName string  `json:"assessment_name" validate:"required"`
	DueDate        *string `json:"due_date"`
	SubmittedDate  *string `json:"submitted_date"`
	IsSubmitted    bool    `json:"is_submitted"`
	IsLate         bool    `json:"is_late"`
}

// SubmissionService handles assignment submission use-cases.
type SubmissionService struct {
	repo      submissionRepository
	validator *validator.Validate
	logger    *zap.Logger
}

// NewSubmissionService constructs the submission service.
func NewSubmissionService(repo submissionRepository, validate *validator.Validate, logger *zap.Logger) *SubmissionService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SubmissionService{repo: repo, validator: validate, logger: logger}
}

// List returns submission records for the filter.
func (s *SubmissionService) List(ctx context.Context, filter models.SubmissionFilter) ([]models.SubmissionRecord, error) {
	records, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrStore.Code, appErrors.ErrStore.Status, "failed to list submission records")
	}
	return records, nil
}

// Get returns a single submission record.
func (s *SubmissionService) Get(ctx context.Context, id int64) (*models.SubmissionRecord, error) {
	record, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "submission record not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrStore.Code, appErrors.ErrStore.Status, "failed to load submission record")
	}
	return record, nil
}

// Create inserts a new submission record.
func (s *SubmissionService) Create(ctx context.Context, req SubmissionRequest) (*models.SubmissionRecord, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid submission payload")
	}
	record := &models.SubmissionRecord{
		StudentID:      req.StudentID,
		ModuleID:       req.ModuleID,
		AssessmentName: req.AssessmentName,
		DueDate:        req.DueDate,
		SubmittedDate:  req.SubmittedDate,
		IsSubmitted:    req.IsSubmitted,
		IsLate:         req.IsLate,
		IsActive:       true,
	}
	if err := s.repo.Create(ctx, record); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrStore.Code, appErrors.ErrStore.Status, "failed to create submission record")
	}
	return record, nil
}

// Update rewrites an existing submission record.
func (s *SubmissionService) Update(ctx context.Context, id int64, req SubmissionRequest) (*models.SubmissionRecord, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid submission payload")
	}
	existing, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	existing.StudentID = req.StudentID
	existing.ModuleID = req.ModuleID
	existing.AssessmentName = req.AssessmentName
	existing.DueDate = req.DueDate
	existing.SubmittedDate = req.SubmittedDate
	existing.IsSubmitted = req.IsSubmitted
	existing.IsLate = req.IsLate
	if err := s.repo.Update(ctx, existing); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrStore.Code, appErrors.ErrStore.Status, "failed to update submission record")
	}
	return existing, nil
}

// Delete removes a submission record entirely.
func (s *SubmissionService) Delete(ctx context.Context, id int64) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}
	if err := s.repo.HardDelete(ctx, id); err != nil {
		return appErrors.Wrap(err, appErrors.ErrStore.Code, appErrors.ErrStore.Status, "failed to delete submission record")
	}
	return nil
}

// Deactivate soft-deletes a submission record.
func (s *SubmissionService) Deactivate(ctx context.Context, id int64) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}
	if err := s.repo.Deactivate(ctx, id); err != nil {
		return appErrors.Wrap(err, appErrors.ErrStore.Code, appErrors.ErrStore.Status, "failed to deactivate submission record")
	}
	return nil
}

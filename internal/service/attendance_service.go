package service

import (
	"context"
	"database/sql"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/campus-pulse/wellbeing-api/internal/models"
	appErrors "github.com/campus-pulse/wellbeing-api/pkg/errors"
)

type attendanceRepository interface {
	List(ctx context.Context, filter models.AttendanceFilter) ([]models.AttendanceRecord, error)
	FindByID(ctx context.Context, id int64) (*models.AttendanceRecord, error)
	Create(ctx context.Context, record *models.AttendanceRecord) error
	Update(ctx context.Context, record *models.AttendanceRecord) error
	HardDelete(ctx context.Context, id int64) error
	Deactivate(ctx context.Context, id int64) error
}

// AttendanceRequest holds payload for creating or replacing attendance rows.
// AttendanceRate is optional; when absent it derives from the session counts.
type AttendanceRequest struct {
	StudentID        int64    `json:"student_id" validate:"required,gt=0"`
	ModuleID         int64    `json:"module_id" validate:"required,gt=0"`
	WeekNumber       int      `json:"week_number" validate:"required,gte=1"`
	AttendedSessions *int     `json:"attended_sessions" validate:"omitempty,gte=0"`
	TotalSessions    *int     `json:"total_sessions" validate:"omitempty,gte=0"`
	AttendanceRate   *float64 `json:"attendance_rate" validate:"omitempty,gte=0,lte=1"`
}

// AttendanceService handles attendance record use-cases.
type AttendanceService struct {
	repo      attendanceRepository
	cache     *CacheService
	validator *validator.Validate
	logger    *zap.Logger
}

// NewAttendanceService constructs the attendance service.
func NewAttendanceService(repo attendanceRepository, cache *CacheService, validate *validator.Validate, logger *zap.Logger) *AttendanceService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AttendanceService{repo: repo, cache: cache, validator: validate, logger: logger}
}

// List returns attendance records for the filter.
func (s *AttendanceService) List(ctx context.Context, filter models.AttendanceFilter) ([]models.AttendanceRecord, error) {
	records, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrStore.Code, appErrors.ErrStore.Status, "failed to list attendance records")
	}
	return records, nil
}

// Get returns a single attendance record.
func (s *AttendanceService) Get(ctx context.Context, id int64) (*models.AttendanceRecord, error) {
	record, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "attendance record not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrStore.Code, appErrors.ErrStore.Status, "failed to load attendance record")
	}
	return record, nil
}

// Create inserts a new attendance record.
func (s *AttendanceService) Create(ctx context.Context, req AttendanceRequest) (*models.AttendanceRecord, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid attendance payload")
	}
	record := &models.AttendanceRecord{
		StudentID:        req.StudentID,
		ModuleID:         req.ModuleID,
		WeekNumber:       req.WeekNumber,
		AttendedSessions: req.AttendedSessions,
		TotalSessions:    req.TotalSessions,
		AttendanceRate:   deriveRate(req),
		IsActive:         true,
	}
	if err := s.repo.Create(ctx, record); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrStore.Code, appErrors.ErrStore.Status, "failed to create attendance record")
	}
	s.invalidate(ctx)
	return record, nil
}

// Update rewrites an existing attendance record.
func (s *AttendanceService) Update(ctx context.Context, id int64, req AttendanceRequest) (*models.AttendanceRecord, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid attendance payload")
	}
	existing, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	existing.StudentID = req.StudentID
	existing.ModuleID = req.ModuleID
	existing.WeekNumber = req.WeekNumber
	existing.AttendedSessions = req.AttendedSessions
	existing.TotalSessions = req.TotalSessions
	existing.AttendanceRate = deriveRate(req)
	if err := s.repo.Update(ctx, existing); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrStore.Code, appErrors.ErrStore.Status, "failed to update attendance record")
	}
	s.invalidate(ctx)
	return existing, nil
}

// Delete removes an attendance record entirely.
func (s *AttendanceService) Delete(ctx context.Context, id int64) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}
	if err := s.repo.HardDelete(ctx, id); err != nil {
		return appErrors.Wrap(err, appErrors.ErrStore.Code, appErrors.ErrStore.Status, "failed to delete attendance record")
	}
	s.invalidate(ctx)
	return nil
}

// Deactivate soft-deletes an attendance record.
func (s *AttendanceService) Deactivate(ctx context.Context, id int64) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}
	if err := s.repo.Deactivate(ctx, id); err != nil {
		return appErrors.Wrap(err, appErrors.ErrStore.Code, appErrors.ErrStore.Status, "failed to deactivate attendance record")
	}
	s.invalidate(ctx)
	return nil
}

// deriveRate prefers an explicit rate and falls back to attended/total.
// The rate is a fraction in [0,1] throughout the system.
func deriveRate(req AttendanceRequest) *float64 {
	if req.AttendanceRate != nil {
		return req.AttendanceRate
	}
	if req.AttendedSessions == nil || req.TotalSessions == nil || *req.TotalSessions == 0 {
		return nil
	}
	rate := float64(*req.AttendedSessions) / float64(*req.TotalSessions)
	return &rate
}

func (s *AttendanceService) invalidate(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Invalidate(ctx, "analysis:*"); err != nil {
		s.logger.Warn("invalidate analysis cache", zap.Error(err))
	}
}

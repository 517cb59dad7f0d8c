package service

import (
	"context"
	"database/sql"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/campus-pulse/wellbeing-api/internal/models"
	appErrors "github.com/campus-pulse/wellbeing-api/pkg/errors"
)

type surveyRepository interface {
	List(ctx context.Context, filter models.SurveyFilter) ([]models.SurveyResponse, error)
	FindByID(ctx context.Context, id int64) (*models.SurveyResponse, error)
	Create(ctx context.Context, response *models.SurveyResponse) error
	Update(ctx context.Context, response *models.SurveyResponse) error
	HardDelete(ctx context.Context, id int64) error
	Deactivate(ctx context.Context, id int64) error
}

// SurveyRequest holds payload for creating or replacing survey responses.
type SurveyRequest struct {
	StudentID   int64    `json:"student_id" validate:"required,gt=0"`
	ModuleID    *int64   `json:"module_id" validate:"omitempty,gt=0"`
	WeekNumber  int      `json:"week_number" validate:"required,gte=1"`
	StressLevel int      `json:"stress_level" validate:"required,gte=1,lte=5"`
	HoursSlept  *float64 `json:"hours_slept" validate:"omitempty,gte=0,lte=24"`
	MoodComment *string  `json:"mood_comment"`
}

// SurveyService handles weekly survey use-cases. Writes invalidate the cached
// analysis payloads derived from survey data.
type SurveyService struct {
	repo      surveyRepository
	cache     *CacheService
	validator *validator.Validate
	logger    *zap.Logger
}

// NewSurveyService constructs the survey service.
func NewSurveyService(repo surveyRepository, cache *CacheService, validate *validator.Validate, logger *zap.Logger) *SurveyService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SurveyService{repo: repo, cache: cache, validator: validate, logger: logger}
}

// List returns survey responses for the filter.
func (s *SurveyService) List(ctx context.Context, filter models.SurveyFilter) ([]models.SurveyResponse, error) {
	responses, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrStore.Code, appErrors.ErrStore.Status, "failed to list survey responses")
	}
	return responses, nil
}

// Get returns a single survey response.
func (s *SurveyService) Get(ctx context.Context, id int64) (*models.SurveyResponse, error) {
	response, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "survey response not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrStore.Code, appErrors.ErrStore.Status, "failed to load survey response")
	}
	return response, nil
}

// Create inserts a new survey response.
func (s *SurveyService) Create(ctx context.Context, req SurveyRequest) (*models.SurveyResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid survey payload")
	}
	response := &models.SurveyResponse{
		StudentID:   req.StudentID,
		ModuleID:    req.ModuleID,
		WeekNumber:  req.WeekNumber,
		StressLevel: req.StressLevel,
		HoursSlept:  req.HoursSlept,
		MoodComment: req.MoodComment,
		IsActive:    true,
	}
	if err := s.repo.Create(ctx, response); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrStore.Code, appErrors.ErrStore.Status, "failed to create survey response")
	}
	s.invalidateAnalysis(ctx)
	return response, nil
}

// Update rewrites an existing survey response.
func (s *SurveyService) Update(ctx context.Context, id int64, req SurveyRequest) (*models.SurveyResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid survey payload")
	}
	existing, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	existing.StudentID = req.StudentID
	existing.ModuleID = req.ModuleID
	existing.WeekNumber = req.WeekNumber
	existing.StressLevel = req.StressLevel
	existing.HoursSlept = req.HoursSlept
	existing.MoodComment = req.MoodComment
	if err := s.repo.Update(ctx, existing); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrStore.Code, appErrors.ErrStore.Status, "failed to update survey response")
	}
	s.invalidateAnalysis(ctx)
	return existing, nil
}

// Delete removes a survey response entirely.
func (s *SurveyService) Delete(ctx context.Context, id int64) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}
	if err := s.repo.HardDelete(ctx, id); err != nil {
		return appErrors.Wrap(err, appErrors.ErrStore.Code, appErrors.ErrStore.Status, "failed to delete survey response")
	}
	s.invalidateAnalysis(ctx)
	return nil
}

// Deactivate soft-deletes a survey response.
func (s *SurveyService) Deactivate(ctx context.Context, id int64) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}
	if err := s.repo.Deactivate(ctx, id); err != nil {
		return appErrors.Wrap(err, appErrors.ErrStore.Code, appErrors.ErrStore.Status, "failed to deactivate survey response")
	}
	s.invalidateAnalysis(ctx)
	return nil
}

func (s *SurveyService) invalidateAnalysis(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Invalidate(ctx, "analysis:*"); err != nil {
		s.logger.Warn("invalidate analysis cache", zap.Error(err))
	}
}

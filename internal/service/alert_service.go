package service

import (
	"context"
	"database/sql"

	"go.uber.org/zap"

	"github.com/campus-pulse/wellbeing-api/internal/models"
	appErrors "github.com/campus-pulse/wellbeing-api/pkg/errors"
)

type alertReadRepository interface {
	List(ctx context.Context, filter models.AlertFilter) ([]models.Alert, error)
	FindByID(ctx context.Context, id int64) (*models.Alert, error)
	Update(ctx context.Context, alert *models.Alert) error
	HardDelete(ctx context.Context, id int64) error
	Deactivate(ctx context.Context, id int64) error
}

// AlertService exposes read and lifecycle operations over materialized
// alerts. Alert creation stays with StressService.
type AlertService struct {
	repo   alertReadRepository
	logger *zap.Logger
}

// NewAlertService constructs the alert service.
func NewAlertService(repo alertReadRepository, logger *zap.Logger) *AlertService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AlertService{repo: repo, logger: logger}
}

// List returns alerts for the filter.
func (s *AlertService) List(ctx context.Context, filter models.AlertFilter) ([]models.Alert, error) {
	alerts, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrStore.Code, appErrors.ErrStore.Status, "failed to list alerts")
	}
	return alerts, nil
}

// Get returns a single alert.
func (s *AlertService) Get(ctx context.Context, id int64) (*models.Alert, error) {
	alert, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "alert not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrStore.Code, appErrors.ErrStore.Status, "failed to load alert")
	}
	return alert, nil
}

// Resolve marks an alert as handled.
func (s *AlertService) Resolve(ctx context.Context, id int64) (*models.Alert, error) {
	alert, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if alert.Resolved {
		return alert, nil
	}
	alert.Resolved = true
	if err := s.repo.Update(ctx, alert); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrStore.Code, appErrors.ErrStore.Status, "failed to resolve alert")
	}
	s.logger.Info("alert resolved", zap.Int64("alert_id", id))
	return alert, nil
}

// Delete removes an alert entirely.
func (s *AlertService) Delete(ctx context.Context, id int64) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}
	if err := s.repo.HardDelete(ctx, id); err != nil {
		return appErrors.Wrap(err, appErrors.ErrStore.Code, appErrors.ErrStore.Status, "failed to delete alert")
	}
	return nil
}

// Deactivate soft-deletes an alert.
func (s *AlertService) Deactivate(ctx context.Context, id int64) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}
	if err := s.repo.Deactivate(ctx, id); err != nil {
		return appErrors.Wrap(err, appErrors.ErrStore.Code, appErrors.ErrStore.Status, "failed to deactivate alert")
	}
	return nil
}

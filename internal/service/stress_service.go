package service

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/campus-pulse/wellbeing-api/internal/models"
	appErrors "github.com/campus-pulse/wellbeing-api/pkg/errors"
)

// DefaultStressThreshold marks a survey week as high stress at level 4 of 5.
const DefaultStressThreshold = 4

// SurveyScanner streams survey rows in (student, module, week) scan order.
type SurveyScanner interface {
	SurveyScanRows(ctx context.Context, moduleID *int64, includeInactive bool) ([]models.SurveyScanRow, error)
}

// AlertWriter swaps the alert set produced by one materializer run.
type AlertWriter interface {
	Replace(ctx context.Context, moduleID *int64, clearOld bool, alerts []models.Alert) ([]models.Alert, error)
}

// DetectionOptions scope a high-stress scan.
type DetectionOptions struct {
	Threshold       int `validate:"omitempty,gte=1,lte=5"`
	ModuleID        *int64
	IncludeInactive bool
}

// AlertOptions scope one alert materialization run.
type AlertOptions struct {
	Threshold       int `validate:"omitempty,gte=1,lte=5"`
	ModuleID        *int64
	IncludeInactive bool
	ClearOld        bool
}

// StressService runs the consecutive-week high-stress detector and
// materializes its findings as alert rows.
type StressService struct {
	surveys   SurveyScanner
	alerts    AlertWriter
	metrics   *MetricsService
	validator *validator.Validate
	logger    *zap.Logger
}

// NewStressService constructs the stress service.
func NewStressService(surveys SurveyScanner, alerts AlertWriter, metrics *MetricsService, validate *validator.Validate, logger *zap.Logger) *StressService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &StressService{surveys: surveys, alerts: alerts, metrics: metrics, validator: validate, logger: logger}
}

// DetectConsecutiveHighStress scans survey rows ordered by
// (student_id, module_id, week_number) and emits one event for every adjacent
// pair of weeks within the same (student, module) group where both stress
// levels reach the threshold and the week numbers differ by exactly one.
// The first row of each group is never compared against the previous group.
func (s *StressService) DetectConsecutiveHighStress(ctx context.Context, opts DetectionOptions) ([]models.StressEvent, error) {
	if err := s.validator.Struct(opts); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid detection options")
	}
	threshold := opts.Threshold
	if threshold == 0 {
		threshold = DefaultStressThreshold
	}

	start := time.Now()
	rows, err := s.surveys.SurveyScanRows(ctx, opts.ModuleID, opts.IncludeInactive)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrStore.Code, appErrors.ErrStore.Status, "failed to scan survey rows")
	}
	if s.metrics != nil {
		s.metrics.ObserveDBQuery("stress_detection_scan", time.Since(start))
	}

	return detectEvents(rows, threshold), nil
}

// detectEvents is the detector state machine. A single pass keeps
// (prev student, prev module, prev week, prev stress) and advances on every
// row, so overlapping runs of qualifying weeks emit one event per pair.
func detectEvents(rows []models.SurveyScanRow, threshold int) []models.StressEvent {
	events := []models.StressEvent{}

	var havePrev bool
	var prev models.SurveyScanRow

	for _, row := range rows {
		if !havePrev || row.StudentID != prev.StudentID || !sameModule(row.ModuleID, prev.ModuleID) {
			// Group boundary: reset without comparing across groups.
			prev = row
			havePrev = true
			continue
		}

		if row.WeekNumber == prev.WeekNumber+1 && prev.StressLevel >= threshold && row.StressLevel >= threshold {
			events = append(events, models.StressEvent{
				StudentID:  row.StudentID,
				ModuleID:   row.ModuleID,
				WeekStart:  prev.WeekNumber,
				WeekNext:   row.WeekNumber,
				StressPrev: prev.StressLevel,
				StressCurr: row.StressLevel,
			})
		}

		prev = row
	}

	return events
}

// CreateHighStressAlerts materializes detection events as alert rows.
// Events reduce to one per (student, module) keeping the latest week pair.
// When nothing qualifies, no write happens at all: existing alerts are kept
// even with ClearOld set. Otherwise the clear and the inserts run in one
// transaction through the alert store.
func (s *StressService) CreateHighStressAlerts(ctx context.Context, opts AlertOptions) ([]models.Alert, error) {
	if err := s.validator.Struct(opts); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid alert options")
	}
	threshold := opts.Threshold
	if threshold == 0 {
		threshold = DefaultStressThreshold
	}

	events, err := s.DetectConsecutiveHighStress(ctx, DetectionOptions{
		Threshold:       threshold,
		ModuleID:        opts.ModuleID,
		IncludeInactive: opts.IncludeInactive,
	})
	if err != nil {
		return nil, err
	}

	latest := reduceLatestByKey(events)
	if len(latest) == 0 {
		return []models.Alert{}, nil
	}

	now := time.Now().UTC()
	toInsert := make([]models.Alert, 0, len(latest))
	for _, evt := range latest {
		toInsert = append(toInsert, models.Alert{
			StudentID:  evt.StudentID,
			ModuleID:   evt.ModuleID,
			WeekNumber: evt.WeekNext,
			Reason:     alertReason(threshold, evt),
			CreatedAt:  now,
			Resolved:   false,
			IsActive:   true,
		})
	}

	inserted, err := s.alerts.Replace(ctx, opts.ModuleID, opts.ClearOld, toInsert)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrStore.Code, appErrors.ErrStore.Status, "failed to materialize alerts")
	}
	if s.metrics != nil {
		s.metrics.CountAlertsCreated(len(inserted))
	}
	s.logger.Info("high stress alerts materialized",
		zap.Int("events", len(events)),
		zap.Int("alerts", len(inserted)),
		zap.Int("threshold", threshold),
	)
	return inserted, nil
}

// reduceLatestByKey keeps, per (student, module), the event with the greatest
// WeekNext. Keys retain first-seen scan order so output stays deterministic.
func reduceLatestByKey(events []models.StressEvent) []models.StressEvent {
	type groupKey struct {
		studentID  int64
		moduleID   int64
		moduleNull bool
	}

	index := make(map[groupKey]int, len(events))
	latest := make([]models.StressEvent, 0, len(events))
	for _, evt := range events {
		key := groupKey{studentID: evt.StudentID, moduleNull: evt.ModuleID == nil}
		if evt.ModuleID != nil {
			key.moduleID = *evt.ModuleID
		}
		if pos, ok := index[key]; ok {
			if evt.WeekNext > latest[pos].WeekNext {
				latest[pos] = evt
			}
			continue
		}
		index[key] = len(latest)
		latest = append(latest, evt)
	}
	return latest
}

func alertReason(threshold int, evt models.StressEvent) string {
	return fmt.Sprintf("Stress >= %d in consecutive weeks %d and %d (module_id=%s).",
		threshold, evt.WeekStart, evt.WeekNext, moduleRef(evt.ModuleID))
}

func moduleRef(moduleID *int64) string {
	if moduleID == nil {
		return "none"
	}
	return strconv.FormatInt(*moduleID, 10)
}

func sameModule(a, b *int64) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}

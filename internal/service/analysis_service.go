package service

import (
	"context"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/campus-pulse/wellbeing-api/internal/models"
	appErrors "github.com/campus-pulse/wellbeing-api/pkg/errors"
)

// DefaultGradeBins partitions the 0-100 grade scale. The final interval is
// half-open up to 101 so a perfect 100 lands in the last bucket.
var DefaultGradeBins = []models.GradeBin{
	{Low: 0, High: 60},
	{Low: 60, High: 70},
	{Low: 70, High: 80},
	{Low: 80, High: 90},
	{Low: 90, High: 101},
}

// AnalysisRepository describes the persistence layer required by AnalysisService.
type AnalysisRepository interface {
	StressTrend(ctx context.Context, studentID int64, filter models.TrendFilter) ([]models.StressTrendPoint, error)
	StudentsAverageAttendance(ctx context.Context, filter models.TrendFilter) ([]models.StudentAttendanceAverage, error)
	StudentAverageAttendance(ctx context.Context, studentID int64, filter models.TrendFilter) (*float64, error)
	StressGradeAggregates(ctx context.Context, filter models.ModuleComparisonFilter) ([]models.StressGradeAggregate, error)
	GradeValues(ctx context.Context, moduleID *int64, includeInactive bool) ([]float64, error)
	StressGradePairs(ctx context.Context, moduleID *int64, includeInactive bool) ([]models.StressGradePair, error)
}

// AnalysisService computes stress trends, attendance averages and the
// stress/grade correlation views. The boolean each read returns indicates
// whether data originated from cache.
type AnalysisService struct {
	repo    AnalysisRepository
	cache   *CacheService
	metrics *MetricsService
	logger  *zap.Logger
}

// NewAnalysisService constructs the analysis service.
func NewAnalysisService(repo AnalysisRepository, cache *CacheService, metrics *MetricsService, logger *zap.Logger) *AnalysisService {
	return &AnalysisService{repo: repo, cache: cache, metrics: metrics, logger: logger}
}

// StudentStressTrend returns one student's weekly stress curve. A student
// with no matching surveys yields an empty list, not an error.
func (s *AnalysisService) StudentStressTrend(ctx context.Context, studentID int64, filter models.TrendFilter) ([]models.StressTrendPoint, bool, error) {
	cacheKey := makeAnalysisCacheKey("stress-trend", formatID(&studentID), formatID(filter.ModuleID), formatBool(filter.IncludeInactive))
	var cached []models.StressTrendPoint
	if s.cache != nil {
		if hit, err := s.cache.Get(ctx, cacheKey, &cached); err != nil {
			return nil, false, fmt.Errorf("get stress trend cache: %w", err)
		} else if hit {
			return cached, true, nil
		}
	}

	start := time.Now()
	points, err := s.repo.StressTrend(ctx, studentID, filter)
	if err != nil {
		return nil, false, appErrors.Wrap(err, appErrors.ErrStore.Code, appErrors.ErrStore.Status, "failed to load stress trend")
	}
	if s.metrics != nil {
		s.metrics.ObserveDBQuery("analysis_stress_trend", time.Since(start))
	}
	s.cacheSet(ctx, cacheKey, points)
	return points, false, nil
}

// StudentsAverageAttendance returns the mean attendance rate per student.
func (s *AnalysisService) StudentsAverageAttendance(ctx context.Context, filter models.TrendFilter) ([]models.StudentAttendanceAverage, bool, error) {
	cacheKey := makeAnalysisCacheKey("attendance", formatID(filter.ModuleID), formatBool(filter.IncludeInactive))
	var cached []models.StudentAttendanceAverage
	if s.cache != nil {
		if hit, err := s.cache.Get(ctx, cacheKey, &cached); err != nil {
			return nil, false, fmt.Errorf("get attendance cache: %w", err)
		} else if hit {
			return cached, true, nil
		}
	}

	start := time.Now()
	averages, err := s.repo.StudentsAverageAttendance(ctx, filter)
	if err != nil {
		return nil, false, appErrors.Wrap(err, appErrors.ErrStore.Code, appErrors.ErrStore.Status, "failed to load attendance averages")
	}
	if s.metrics != nil {
		s.metrics.ObserveDBQuery("analysis_attendance", time.Since(start))
	}
	s.cacheSet(ctx, cacheKey, averages)
	return averages, false, nil
}

// StudentAverageAttendance returns one student's mean attendance rate, or nil
// when the student has no matching attendance rows.
func (s *AnalysisService) StudentAverageAttendance(ctx context.Context, studentID int64, filter models.TrendFilter) (*float64, error) {
	start := time.Now()
	avg, err := s.repo.StudentAverageAttendance(ctx, studentID, filter)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrStore.Code, appErrors.ErrStore.Status, "failed to load student attendance")
	}
	if s.metrics != nil {
		s.metrics.ObserveDBQuery("analysis_student_attendance", time.Since(start))
	}
	return avg, nil
}

// CompareStressGradeByModule joins survey and grade data per module and
// derives sample size, means and the Pearson correlation coefficient.
func (s *AnalysisService) CompareStressGradeByModule(ctx context.Context, filter models.ModuleComparisonFilter) ([]models.ModuleStressGradeComparison, bool, error) {
	cacheKey := makeAnalysisCacheKey("stress-grade", formatIDs(filter.ModuleIDs), formatBool(filter.IncludeInactive))
	var cached []models.ModuleStressGradeComparison
	if s.cache != nil {
		if hit, err := s.cache.Get(ctx, cacheKey, &cached); err != nil {
			return nil, false, fmt.Errorf("get stress grade cache: %w", err)
		} else if hit {
			return cached, true, nil
		}
	}

	start := time.Now()
	aggregates, err := s.repo.StressGradeAggregates(ctx, filter)
	if err != nil {
		return nil, false, appErrors.Wrap(err, appErrors.ErrStore.Code, appErrors.ErrStore.Status, "failed to load stress grade aggregates")
	}
	if s.metrics != nil {
		s.metrics.ObserveDBQuery("analysis_stress_grade", time.Since(start))
	}

	comparisons := make([]models.ModuleStressGradeComparison, 0, len(aggregates))
	for _, agg := range aggregates {
		comparisons = append(comparisons, models.ModuleStressGradeComparison{
			ModuleID:           agg.ModuleID,
			AverageStressLevel: agg.AvgStress,
			AverageGrade:       agg.AvgGrade,
			SampleSize:         agg.SampleSize,
			PearsonCorr:        pearsonFromAggregate(agg),
		})
	}
	s.cacheSet(ctx, cacheKey, comparisons)
	return comparisons, false, nil
}

// GradeDistribution buckets grades into labelled histogram bars. A nil bins
// slice selects DefaultGradeBins. Bins are assumed sorted and non-overlapping;
// each grade lands in the first bin where low <= g < high.
func (s *AnalysisService) GradeDistribution(ctx context.Context, moduleID *int64, includeInactive bool, bins []models.GradeBin) ([]models.GradeBucket, error) {
	if len(bins) == 0 {
		bins = DefaultGradeBins
	}

	start := time.Now()
	grades, err := s.repo.GradeValues(ctx, moduleID, includeInactive)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrStore.Code, appErrors.ErrStore.Status, "failed to load grade values")
	}
	if s.metrics != nil {
		s.metrics.ObserveDBQuery("analysis_grade_distribution", time.Since(start))
	}

	buckets := make([]models.GradeBucket, len(bins))
	for i, bin := range bins {
		buckets[i] = models.GradeBucket{Label: binLabel(bin), Count: 0}
	}
	for _, g := range grades {
		for i, bin := range bins {
			if g >= bin.Low && g < bin.High {
				buckets[i].Count++
				break
			}
		}
	}
	return buckets, nil
}

// StressGradePairs returns raw scatter points from the survey x grade join.
func (s *AnalysisService) StressGradePairs(ctx context.Context, moduleID *int64, includeInactive bool) ([]models.StressGradePair, error) {
	start := time.Now()
	pairs, err := s.repo.StressGradePairs(ctx, moduleID, includeInactive)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrStore.Code, appErrors.ErrStore.Status, "failed to load stress grade pairs")
	}
	if s.metrics != nil {
		s.metrics.ObserveDBQuery("analysis_stress_grade_pairs", time.Since(start))
	}
	return pairs, nil
}

// SystemMetrics returns the instrumentation snapshot.
func (s *AnalysisService) SystemMetrics() models.SystemMetrics {
	if s.metrics == nil {
		return models.SystemMetrics{}
	}
	return s.metrics.Snapshot()
}

func (s *AnalysisService) cacheSet(ctx context.Context, key string, value interface{}) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Set(ctx, key, value, 0); err != nil && s.logger != nil {
		s.logger.Warn("cache analysis payload", zap.String("key", key), zap.Error(err))
	}
}

// pearsonFromAggregate derives r from aggregate sums:
// r = (sum_xy - n*mx*my) / sqrt((sum_x2 - n*mx^2) * (sum_y2 - n*my^2)).
// Returns nil for samples below two or zero variance in either series.
func pearsonFromAggregate(agg models.StressGradeAggregate) *float64 {
	if agg.SampleSize < 2 {
		return nil
	}
	n := float64(agg.SampleSize)
	numerator := agg.SumXY - n*agg.AvgStress*agg.AvgGrade
	denomLeft := agg.SumX2 - n*agg.AvgStress*agg.AvgStress
	denomRight := agg.SumY2 - n*agg.AvgGrade*agg.AvgGrade
	denominator := math.Sqrt(denomLeft * denomRight)
	if denominator == 0 {
		return nil
	}
	r := numerator / denominator
	return &r
}

// binLabel renders "low-high", displaying the sentinel 101 upper bound as 100.
func binLabel(bin models.GradeBin) string {
	high := int(bin.High)
	if high == 101 {
		high = 100
	}
	return fmt.Sprintf("%d-%d", int(bin.Low), high)
}

func makeAnalysisCacheKey(parts ...string) string {
	var builder strings.Builder
	builder.Grow(len(parts) * 16)
	builder.WriteString("analysis")
	for _, part := range parts {
		if part == "" {
			continue
		}
		builder.WriteByte(':')
		builder.WriteString(strings.ReplaceAll(part, ":", "|"))
	}
	return builder.String()
}

func formatID(id *int64) string {
	if id == nil {
		return ""
	}
	return strconv.FormatInt(*id, 10)
}

func formatIDs(ids []int64) string {
	if len(ids) == 0 {
		return ""
	}
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = strconv.FormatInt(id, 10)
	}
	return strings.Join(parts, ",")
}

func formatBool(v bool) string {
	if v {
		return "all"
	}
	return ""
}

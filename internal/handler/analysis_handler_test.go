package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campus-pulse/wellbeing-api/internal/models"
	"github.com/campus-pulse/wellbeing-api/internal/service"
)

type fakeAnalysisStore struct {
	trend       []models.StressTrendPoint
	trendErr    error
	averages    []models.StudentAttendanceAverage
	studentAvg  *float64
	aggregates  []models.StressGradeAggregate
	grades      []float64
	pairs       []models.StressGradePair
	lastTrendID int64
	lastFilter  models.TrendFilter
}

func (f *fakeAnalysisStore) StressTrend(_ context.Context, studentID int64, filter models.TrendFilter) ([]models.StressTrendPoint, error) {
	f.lastTrendID = studentID
	f.lastFilter = filter
	return f.trend, f.trendErr
}

func (f *fakeAnalysisStore) StudentsAverageAttendance(context.Context, models.TrendFilter) ([]models.StudentAttendanceAverage, error) {
	return f.averages, nil
}

func (f *fakeAnalysisStore) StudentAverageAttendance(context.Context, int64, models.TrendFilter) (*float64, error) {
	return f.studentAvg, nil
}

func (f *fakeAnalysisStore) StressGradeAggregates(context.Context, models.ModuleComparisonFilter) ([]models.StressGradeAggregate, error) {
	return f.aggregates, nil
}

func (f *fakeAnalysisStore) GradeValues(context.Context, *int64, bool) ([]float64, error) {
	return f.grades, nil
}

func (f *fakeAnalysisStore) StressGradePairs(context.Context, *int64, bool) ([]models.StressGradePair, error) {
	return f.pairs, nil
}

func newAnalysisHandlerForTest(store *fakeAnalysisStore) *AnalysisHandler {
	return NewAnalysisHandler(service.NewAnalysisService(store, nil, nil, nil))
}

func TestAnalysisHandlerStressTrend(t *testing.T) {
	gin.SetMode(gin.TestMode)
	store := &fakeAnalysisStore{trend: []models.StressTrendPoint{
		{WeekNumber: 1, StressLevel: 2},
		{WeekNumber: 2, StressLevel: 4},
	}}
	handler := newAnalysisHandlerForTest(store)

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodGet, "/analysis/stress-trend/7?module_id=2", nil)
	c.Params = gin.Params{{Key: "id", Value: "7"}}

	handler.StressTrend(c)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, int64(7), store.lastTrendID)
	require.NotNil(t, store.lastFilter.ModuleID)
	assert.Equal(t, int64(2), *store.lastFilter.ModuleID)

	var envelope struct {
		Data []models.StressTrendPoint `json:"data"`
		Meta map[string]interface{}    `json:"meta"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	require.Len(t, envelope.Data, 2)
	assert.Contains(t, envelope.Meta, "processing_time_ms")
}

func TestAnalysisHandlerStressTrendInvalidID(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := newAnalysisHandlerForTest(&fakeAnalysisStore{})

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodGet, "/analysis/stress-trend/0", nil)
	c.Params = gin.Params{{Key: "id", Value: "0"}}

	handler.StressTrend(c)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAnalysisHandlerStressTrendBadModuleID(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := newAnalysisHandlerForTest(&fakeAnalysisStore{})

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodGet, "/analysis/stress-trend/7?module_id=abc", nil)
	c.Params = gin.Params{{Key: "id", Value: "7"}}

	handler.StressTrend(c)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAnalysisHandlerStudentAttendanceNull(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := newAnalysisHandlerForTest(&fakeAnalysisStore{studentAvg: nil})

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodGet, "/analysis/attendance/7", nil)
	c.Params = gin.Params{{Key: "id", Value: "7"}}

	handler.StudentAttendance(c)

	assert.Equal(t, http.StatusOK, rec.Code)
	var envelope struct {
		Data map[string]interface{} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	assert.Equal(t, float64(7), envelope.Data["student_id"])
	assert.Nil(t, envelope.Data["average_attendance_rate"])
}

func TestAnalysisHandlerCompareModulesParsesIDs(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := newAnalysisHandlerForTest(&fakeAnalysisStore{aggregates: []models.StressGradeAggregate{}})

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodGet, "/analysis/modules/compare?module_ids=1,2,3", nil)

	handler.CompareModules(c)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestAnalysisHandlerCompareModulesBadIDs(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := newAnalysisHandlerForTest(&fakeAnalysisStore{})

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodGet, "/analysis/modules/compare?module_ids=1,x", nil)

	handler.CompareModules(c)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAnalysisHandlerGradeDistribution(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := newAnalysisHandlerForTest(&fakeAnalysisStore{grades: []float64{55, 95}})

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodGet, "/analysis/grades/distribution", nil)

	handler.GradeDistribution(c)

	assert.Equal(t, http.StatusOK, rec.Code)
	var envelope struct {
		Data []models.GradeBucket `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	require.Len(t, envelope.Data, 5)
	assert.Equal(t, "0-60", envelope.Data[0].Label)
	assert.Equal(t, 1, envelope.Data[0].Count)
	assert.Equal(t, "90-100", envelope.Data[4].Label)
	assert.Equal(t, 1, envelope.Data[4].Count)
}

func TestAnalysisHandlerNilService(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := NewAnalysisHandler(nil)

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodGet, "/analysis/system", nil)

	handler.System(c)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

type responseEnvelope struct {
	Data interface{}            `json:"data"`
	Meta map[string]interface{} `json:"meta"`
}

package handler

import (
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campus-pulse/wellbeing-api/internal/models"
	"github.com/campus-pulse/wellbeing-api/internal/service"
)

type fakeSurveyStore struct {
	rows []models.SurveyScanRow
	err  error
}

func (f *fakeSurveyStore) SurveyScanRows(context.Context, *int64, bool) ([]models.SurveyScanRow, error) {
	return f.rows, f.err
}

type fakeAlertStore struct {
	alerts      []models.Alert
	listFilter  models.AlertFilter
	replaced    []models.Alert
	replaceCall bool
	updated     *models.Alert
}

func (f *fakeAlertStore) List(_ context.Context, filter models.AlertFilter) ([]models.Alert, error) {
	f.listFilter = filter
	return f.alerts, nil
}

func (f *fakeAlertStore) FindByID(_ context.Context, id int64) (*models.Alert, error) {
	for i := range f.alerts {
		if f.alerts[i].ID == id {
			alert := f.alerts[i]
			return &alert, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (f *fakeAlertStore) Update(_ context.Context, alert *models.Alert) error {
	f.updated = alert
	return nil
}

func (f *fakeAlertStore) HardDelete(context.Context, int64) error { return nil }

func (f *fakeAlertStore) Deactivate(context.Context, int64) error { return nil }

func (f *fakeAlertStore) Replace(_ context.Context, _ *int64, _ bool, alerts []models.Alert) ([]models.Alert, error) {
	f.replaceCall = true
	out := make([]models.Alert, len(alerts))
	copy(out, alerts)
	for i := range out {
		out[i].ID = int64(i + 1)
	}
	f.replaced = out
	return out, nil
}

func newAlertHandlerForTest(surveys *fakeSurveyStore, alerts *fakeAlertStore) *AlertHandler {
	stress := service.NewStressService(surveys, alerts, nil, nil, nil)
	alertSvc := service.NewAlertService(alerts, nil)
	return NewAlertHandler(alertSvc, stress, 0, true)
}

func TestAlertHandlerGenerateCreatesAlerts(t *testing.T) {
	gin.SetMode(gin.TestMode)
	surveys := &fakeSurveyStore{rows: []models.SurveyScanRow{
		{StudentID: 1, WeekNumber: 4, StressLevel: 4},
		{StudentID: 1, WeekNumber: 5, StressLevel: 5},
	}}
	alerts := &fakeAlertStore{}
	handler := newAlertHandlerForTest(surveys, alerts)

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodPost, "/alerts/generate", nil)

	handler.Generate(c)

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.True(t, alerts.replaceCall)
	require.Len(t, alerts.replaced, 1)
	assert.Equal(t, 5, alerts.replaced[0].WeekNumber)

	var envelope responseEnvelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	assert.Equal(t, float64(1), envelope.Meta["alerts_created"])
}

func TestAlertHandlerGenerateInvalidThreshold(t *testing.T) {
	gin.SetMode(gin.TestMode)
	alerts := &fakeAlertStore{}
	handler := newAlertHandlerForTest(&fakeSurveyStore{}, alerts)

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodPost, "/alerts/generate", strings.NewReader(`{"threshold":9}`))
	c.Request.Header.Set("Content-Type", "application/json")

	handler.Generate(c)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.False(t, alerts.replaceCall)
}

func TestAlertHandlerEventsDryRun(t *testing.T) {
	gin.SetMode(gin.TestMode)
	surveys := &fakeSurveyStore{rows: []models.SurveyScanRow{
		{StudentID: 1, WeekNumber: 2, StressLevel: 4},
		{StudentID: 1, WeekNumber: 3, StressLevel: 4},
	}}
	alerts := &fakeAlertStore{}
	handler := newAlertHandlerForTest(surveys, alerts)

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodGet, "/alerts/events?threshold=4", nil)

	handler.Events(c)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.False(t, alerts.replaceCall)

	var envelope struct {
		Data []models.StressEvent `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	require.Len(t, envelope.Data, 1)
	assert.Equal(t, int64(1), envelope.Data[0].StudentID)
}

func TestAlertHandlerEventsBadModuleID(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := newAlertHandlerForTest(&fakeSurveyStore{}, &fakeAlertStore{})

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodGet, "/alerts/events?module_id=abc", nil)

	handler.Events(c)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAlertHandlerListForwardsFilter(t *testing.T) {
	gin.SetMode(gin.TestMode)
	alerts := &fakeAlertStore{}
	handler := newAlertHandlerForTest(&fakeSurveyStore{}, alerts)

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodGet, "/alerts?student_id=7&resolved=true", nil)

	handler.List(c)

	assert.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, alerts.listFilter.StudentID)
	assert.Equal(t, int64(7), *alerts.listFilter.StudentID)
	require.NotNil(t, alerts.listFilter.Resolved)
	assert.True(t, *alerts.listFilter.Resolved)
}

func TestAlertHandlerGetInvalidID(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := newAlertHandlerForTest(&fakeSurveyStore{}, &fakeAlertStore{})

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodGet, "/alerts/abc", nil)
	c.Params = gin.Params{{Key: "id", Value: "abc"}}

	handler.Get(c)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAlertHandlerGetNotFound(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := newAlertHandlerForTest(&fakeSurveyStore{}, &fakeAlertStore{})

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodGet, "/alerts/99", nil)
	c.Params = gin.Params{{Key: "id", Value: "99"}}

	handler.Get(c)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestAlertHandlerResolve(t *testing.T) {
	gin.SetMode(gin.TestMode)
	alerts := &fakeAlertStore{alerts: []models.Alert{
		{ID: 3, StudentID: 1, WeekNumber: 5, Reason: "r", IsActive: true},
	}}
	handler := newAlertHandlerForTest(&fakeSurveyStore{}, alerts)

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodPost, "/alerts/3/resolve", nil)
	c.Params = gin.Params{{Key: "id", Value: "3"}}

	handler.Resolve(c)

	assert.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, alerts.updated)
	assert.True(t, alerts.updated.Resolved)
}

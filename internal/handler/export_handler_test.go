package handler

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/campus-pulse/wellbeing-api/internal/models"
	"github.com/campus-pulse/wellbeing-api/internal/service"
)

func newExportHandlerForTest(alerts *fakeAlertStore, analysis *fakeAnalysisStore) *ExportHandler {
	return NewExportHandler(service.NewExportService(alerts, analysis, nil))
}

func TestExportHandlerAlertsCSV(t *testing.T) {
	gin.SetMode(gin.TestMode)
	moduleID := int64(2)
	alerts := &fakeAlertStore{alerts: []models.Alert{
		{ID: 1, StudentID: 7, ModuleID: &moduleID, WeekNumber: 5, Reason: "high stress", IsActive: true},
	}}
	handler := newExportHandlerForTest(alerts, &fakeAnalysisStore{})

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodGet, "/exports/alerts", nil)

	handler.Alerts(c)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "attachment")
	assert.Contains(t, rec.Header().Get("Content-Type"), "text/csv")
	body := rec.Body.String()
	assert.True(t, strings.HasPrefix(body, "ID,Student ID,Module ID,Week,Reason,Resolved,Created At"))
	assert.Contains(t, body, "high stress")
}

func TestExportHandlerAlertsPDF(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := newExportHandlerForTest(&fakeAlertStore{}, &fakeAnalysisStore{})

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodGet, "/exports/alerts?format=pdf", nil)

	handler.Alerts(c)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "application/pdf")
	assert.True(t, strings.HasPrefix(rec.Body.String(), "%PDF"))
}

func TestExportHandlerUnsupportedFormat(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := newExportHandlerForTest(&fakeAlertStore{}, &fakeAnalysisStore{})

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodGet, "/exports/alerts?format=xlsx", nil)

	handler.Alerts(c)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestExportHandlerStressTrendCSV(t *testing.T) {
	gin.SetMode(gin.TestMode)
	analysis := &fakeAnalysisStore{trend: []models.StressTrendPoint{
		{WeekNumber: 1, StressLevel: 3},
	}}
	handler := newExportHandlerForTest(&fakeAlertStore{}, analysis)

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodGet, "/exports/stress-trend/7", nil)
	c.Params = gin.Params{{Key: "id", Value: "7"}}

	handler.StressTrend(c)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, strings.HasPrefix(rec.Body.String(), "Week,Stress Level,Recorded At"))
}

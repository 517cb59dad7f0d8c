package service

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campus-pulse/wellbeing-api/internal/models"
)

type fakeSurveyScanner struct {
	rows []models.SurveyScanRow
	err  error

	lastModuleID        *int64
	lastIncludeInactive bool
}

func (f *fakeSurveyScanner) SurveyScanRows(_ context.Context, moduleID *int64, includeInactive bool) ([]models.SurveyScanRow, error) {
	f.lastModuleID = moduleID
	f.lastIncludeInactive = includeInactive
	return f.rows, f.err
}

type fakeAlertWriter struct {
	err error

	called       bool
	lastModuleID *int64
	lastClearOld bool
	lastAlerts   []models.Alert
}

func (f *fakeAlertWriter) Replace(_ context.Context, moduleID *int64, clearOld bool, alerts []models.Alert) ([]models.Alert, error) {
	f.called = true
	f.lastModuleID = moduleID
	f.lastClearOld = clearOld
	f.lastAlerts = alerts
	if f.err != nil {
		return nil, f.err
	}
	out := make([]models.Alert, len(alerts))
	copy(out, alerts)
	for i := range out {
		out[i].ID = int64(i + 1)
	}
	return out, nil
}

func ptrInt64(v int64) *int64 { return &v }

func scanRow(student int64, module *int64, week, stress int) models.SurveyScanRow {
	return models.SurveyScanRow{StudentID: student, ModuleID: module, WeekNumber: week, StressLevel: stress}
}

func TestDetectEventsConsecutivePair(t *testing.T) {
	rows := []models.SurveyScanRow{
		scanRow(1, ptrInt64(10), 1, 2),
		scanRow(1, ptrInt64(10), 2, 4),
		scanRow(1, ptrInt64(10), 3, 5),
	}

	events := detectEvents(rows, 4)

	require.Len(t, events, 1)
	assert.Equal(t, int64(1), events[0].StudentID)
	assert.Equal(t, 2, events[0].WeekStart)
	assert.Equal(t, 3, events[0].WeekNext)
	assert.Equal(t, 4, events[0].StressPrev)
	assert.Equal(t, 5, events[0].StressCurr)
}

func TestDetectEventsOverlappingRunEmitsPerPair(t *testing.T) {
	// Weeks 3, 4, 5, 5 stress at threshold: pairs (3,4) and (4,5) qualify,
	// the duplicate week 5 row does not since 5 != 5+1.
	rows := []models.SurveyScanRow{
		scanRow(1, ptrInt64(10), 3, 4),
		scanRow(1, ptrInt64(10), 4, 5),
		scanRow(1, ptrInt64(10), 5, 4),
		scanRow(1, ptrInt64(10), 5, 5),
	}

	events := detectEvents(rows, 4)

	require.Len(t, events, 2)
	assert.Equal(t, 3, events[0].WeekStart)
	assert.Equal(t, 4, events[0].WeekNext)
	assert.Equal(t, 4, events[1].WeekStart)
	assert.Equal(t, 5, events[1].WeekNext)
}

func TestDetectEventsRampUpRun(t *testing.T) {
	// Stress climbing 3, 4, 5, 5 over weeks 1..4: the first pair stays
	// below threshold, the next two qualify.
	rows := []models.SurveyScanRow{
		scanRow(1, ptrInt64(101), 1, 3),
		scanRow(1, ptrInt64(101), 2, 4),
		scanRow(1, ptrInt64(101), 3, 5),
		scanRow(1, ptrInt64(101), 4, 5),
	}

	events := detectEvents(rows, 4)

	require.Len(t, events, 2)
	assert.Equal(t, 2, events[0].WeekStart)
	assert.Equal(t, 3, events[0].WeekNext)
	assert.Equal(t, 3, events[1].WeekStart)
	assert.Equal(t, 4, events[1].WeekNext)

	kept := reduceLatestByKey(events)
	require.Len(t, kept, 1)
	assert.Equal(t, 4, kept[0].WeekNext)
}

func TestDetectEventsWeekGapBreaksRun(t *testing.T) {
	rows := []models.SurveyScanRow{
		scanRow(1, ptrInt64(10), 1, 5),
		scanRow(1, ptrInt64(10), 3, 5),
	}

	assert.Empty(t, detectEvents(rows, 4))
}

func TestDetectEventsBelowThreshold(t *testing.T) {
	rows := []models.SurveyScanRow{
		scanRow(1, ptrInt64(10), 1, 4),
		scanRow(1, ptrInt64(10), 2, 3),
		scanRow(1, ptrInt64(10), 3, 4),
	}

	assert.Empty(t, detectEvents(rows, 4))
}

func TestDetectEventsGroupBoundaries(t *testing.T) {
	// Adjacent rows that both qualify must not pair across a student or a
	// module boundary, even when the week numbers line up.
	rows := []models.SurveyScanRow{
		scanRow(1, ptrInt64(10), 4, 5),
		scanRow(1, ptrInt64(20), 5, 5),
		scanRow(2, ptrInt64(20), 6, 5),
	}

	assert.Empty(t, detectEvents(rows, 4))
}

func TestDetectEventsNilModuleGroup(t *testing.T) {
	// NULL module rows form their own group per student: two nil-module
	// rows pair with each other, but never with a concrete module.
	rows := []models.SurveyScanRow{
		scanRow(1, ptrInt64(10), 1, 5),
		scanRow(1, nil, 1, 5),
		scanRow(1, nil, 2, 5),
	}

	events := detectEvents(rows, 4)

	require.Len(t, events, 1)
	assert.Nil(t, events[0].ModuleID)
	assert.Equal(t, 1, events[0].WeekStart)
	assert.Equal(t, 2, events[0].WeekNext)
}

func TestDetectEventsThresholdMonotonicity(t *testing.T) {
	rows := []models.SurveyScanRow{
		scanRow(1, ptrInt64(10), 1, 3),
		scanRow(1, ptrInt64(10), 2, 4),
		scanRow(1, ptrInt64(10), 3, 4),
		scanRow(1, ptrInt64(10), 4, 5),
		scanRow(2, ptrInt64(10), 1, 5),
		scanRow(2, ptrInt64(10), 2, 5),
	}

	prev := len(detectEvents(rows, 1))
	for threshold := 2; threshold <= 5; threshold++ {
		curr := len(detectEvents(rows, threshold))
		assert.LessOrEqual(t, curr, prev, "raising the threshold must never add events")
		prev = curr
	}
}

func TestReduceLatestByKeyKeepsMaxWeekNext(t *testing.T) {
	events := []models.StressEvent{
		{StudentID: 1, ModuleID: ptrInt64(10), WeekStart: 2, WeekNext: 3},
		{StudentID: 1, ModuleID: ptrInt64(10), WeekStart: 3, WeekNext: 4},
		{StudentID: 1, ModuleID: nil, WeekStart: 5, WeekNext: 6},
		{StudentID: 2, ModuleID: ptrInt64(10), WeekStart: 1, WeekNext: 2},
	}

	latest := reduceLatestByKey(events)

	require.Len(t, latest, 3)
	assert.Equal(t, 4, latest[0].WeekNext)
	assert.Nil(t, latest[1].ModuleID)
	assert.Equal(t, int64(2), latest[2].StudentID)
}

func TestReduceLatestByKeyFirstSeenOrder(t *testing.T) {
	events := []models.StressEvent{
		{StudentID: 2, ModuleID: ptrInt64(10), WeekNext: 2},
		{StudentID: 1, ModuleID: ptrInt64(10), WeekNext: 3},
		{StudentID: 2, ModuleID: ptrInt64(10), WeekNext: 5},
	}

	latest := reduceLatestByKey(events)

	require.Len(t, latest, 2)
	assert.Equal(t, int64(2), latest[0].StudentID)
	assert.Equal(t, 5, latest[0].WeekNext)
	assert.Equal(t, int64(1), latest[1].StudentID)
}

func TestDetectConsecutiveHighStressDefaultsThreshold(t *testing.T) {
	scanner := &fakeSurveyScanner{rows: []models.SurveyScanRow{
		scanRow(1, ptrInt64(10), 1, 4),
		scanRow(1, ptrInt64(10), 2, 4),
		scanRow(1, ptrInt64(10), 3, 3),
	}}
	svc := NewStressService(scanner, &fakeAlertWriter{}, nil, nil, nil)

	events, err := svc.DetectConsecutiveHighStress(context.Background(), DetectionOptions{})
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, 1, events[0].WeekStart)
}

func TestDetectConsecutiveHighStressInvalidThreshold(t *testing.T) {
	svc := NewStressService(&fakeSurveyScanner{}, &fakeAlertWriter{}, nil, nil, nil)

	_, err := svc.DetectConsecutiveHighStress(context.Background(), DetectionOptions{Threshold: 9})
	assert.Error(t, err)
}

func TestCreateHighStressAlertsMaterializes(t *testing.T) {
	module := ptrInt64(10)
	scanner := &fakeSurveyScanner{rows: []models.SurveyScanRow{
		scanRow(1, module, 3, 4),
		scanRow(1, module, 4, 5),
		scanRow(1, module, 5, 4),
	}}
	writer := &fakeAlertWriter{}
	svc := NewStressService(scanner, writer, nil, nil, nil)

	alerts, err := svc.CreateHighStressAlerts(context.Background(), AlertOptions{ModuleID: module, ClearOld: true})
	require.NoError(t, err)

	require.Len(t, alerts, 1)
	assert.Equal(t, int64(1), alerts[0].StudentID)
	assert.Equal(t, 5, alerts[0].WeekNumber)
	assert.Equal(t, "Stress >= 4 in consecutive weeks 4 and 5 (module_id=10).", alerts[0].Reason)
	assert.False(t, alerts[0].Resolved)
	assert.True(t, alerts[0].IsActive)

	assert.True(t, writer.called)
	assert.True(t, writer.lastClearOld)
	assert.Equal(t, module, writer.lastModuleID)
}

func TestCreateHighStressAlertsEmptySkipsWrite(t *testing.T) {
	scanner := &fakeSurveyScanner{rows: []models.SurveyScanRow{
		scanRow(1, ptrInt64(10), 1, 2),
		scanRow(1, ptrInt64(10), 2, 3),
	}}
	writer := &fakeAlertWriter{}
	svc := NewStressService(scanner, writer, nil, nil, nil)

	alerts, err := svc.CreateHighStressAlerts(context.Background(), AlertOptions{ClearOld: true})
	require.NoError(t, err)

	assert.Empty(t, alerts)
	assert.False(t, writer.called, "no qualifying events must leave existing alerts untouched")
}

func TestCreateHighStressAlertsNilModuleReason(t *testing.T) {
	scanner := &fakeSurveyScanner{rows: []models.SurveyScanRow{
		scanRow(1, nil, 1, 5),
		scanRow(1, nil, 2, 5),
	}}
	writer := &fakeAlertWriter{}
	svc := NewStressService(scanner, writer, nil, nil, nil)

	alerts, err := svc.CreateHighStressAlerts(context.Background(), AlertOptions{})
	require.NoError(t, err)

	require.Len(t, alerts, 1)
	assert.Equal(t, "Stress >= 4 in consecutive weeks 1 and 2 (module_id=none).", alerts[0].Reason)
}

func TestCreateHighStressAlertsStoreFailure(t *testing.T) {
	scanner := &fakeSurveyScanner{rows: []models.SurveyScanRow{
		scanRow(1, ptrInt64(10), 1, 5),
		scanRow(1, ptrInt64(10), 2, 5),
	}}
	writer := &fakeAlertWriter{err: errors.New("boom")}
	svc := NewStressService(scanner, writer, nil, nil, nil)

	_, err := svc.CreateHighStressAlerts(context.Background(), AlertOptions{})
	assert.Error(t, err)
}

func TestCreateHighStressAlertsOnePerKey(t *testing.T) {
	module := ptrInt64(10)
	rows := []models.SurveyScanRow{}
	for week := 1; week <= 6; week++ {
		rows = append(rows, scanRow(1, module, week, 5))
	}
	rows = append(rows,
		scanRow(2, module, 2, 5),
		scanRow(2, module, 3, 5),
	)
	scanner := &fakeSurveyScanner{rows: rows}
	writer := &fakeAlertWriter{}
	svc := NewStressService(scanner, writer, nil, nil, nil)

	alerts, err := svc.CreateHighStressAlerts(context.Background(), AlertOptions{})
	require.NoError(t, err)

	require.Len(t, alerts, 2)
	assert.Equal(t, 6, alerts[0].WeekNumber, "student one keeps only the latest pair")
	assert.Equal(t, 3, alerts[1].WeekNumber)
}

func TestAlertReasonFormat(t *testing.T) {
	evt := models.StressEvent{WeekStart: 7, WeekNext: 8, ModuleID: ptrInt64(42)}
	assert.Equal(t, "Stress >= 5 in consecutive weeks 7 and 8 (module_id=42).", alertReason(5, evt))
}

func TestSameModule(t *testing.T) {
	a, b := ptrInt64(1), ptrInt64(1)
	c := ptrInt64(2)
	assert.True(t, sameModule(a, b))
	assert.True(t, sameModule(nil, nil))
	assert.False(t, sameModule(a, c))
	assert.False(t, sameModule(a, nil))
	assert.False(t, sameModule(nil, c))
}

func TestDetectEventsScalesWithManyStudents(t *testing.T) {
	rows := []models.SurveyScanRow{}
	for s := int64(1); s <= 50; s++ {
		rows = append(rows,
			scanRow(s, ptrInt64(10), 1, 5),
			scanRow(s, ptrInt64(10), 2, 5),
		)
	}

	events := detectEvents(rows, 4)

	require.Len(t, events, 50)
	for i, evt := range events {
		assert.Equal(t, int64(i+1), evt.StudentID, fmt.Sprintf("event %d", i))
	}
}

package service

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campus-pulse/wellbeing-api/internal/models"
	appErrors "github.com/campus-pulse/wellbeing-api/pkg/errors"
)

type fakeAttendanceRepo struct {
	records map[int64]*models.AttendanceRecord
	created *models.AttendanceRecord
	nextID  int64
}

func newFakeAttendanceRepo() *fakeAttendanceRepo {
	return &fakeAttendanceRepo{records: map[int64]*models.AttendanceRecord{}, nextID: 1}
}

func (f *fakeAttendanceRepo) List(context.Context, models.AttendanceFilter) ([]models.AttendanceRecord, error) {
	out := []models.AttendanceRecord{}
	for _, rec := range f.records {
		out = append(out, *rec)
	}
	return out, nil
}

func (f *fakeAttendanceRepo) FindByID(_ context.Context, id int64) (*models.AttendanceRecord, error) {
	rec, ok := f.records[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	clone := *rec
	return &clone, nil
}

func (f *fakeAttendanceRepo) Create(_ context.Context, record *models.AttendanceRecord) error {
	record.ID = f.nextID
	f.nextID++
	rec := *record
	f.records[record.ID] = &rec
	f.created = record
	return nil
}

func (f *fakeAttendanceRepo) Update(_ context.Context, record *models.AttendanceRecord) error {
	rec := *record
	f.records[record.ID] = &rec
	return nil
}

func (f *fakeAttendanceRepo) HardDelete(_ context.Context, id int64) error {
	delete(f.records, id)
	return nil
}

func (f *fakeAttendanceRepo) Deactivate(_ context.Context, id int64) error {
	if rec, ok := f.records[id]; ok {
		rec.IsActive = false
	}
	return nil
}

func intPtr(v int) *int           { return &v }
func floatPtr(v float64) *float64 { return &v }

func TestAttendanceCreateDerivesRateFromSessions(t *testing.T) {
	repo := newFakeAttendanceRepo()
	svc := NewAttendanceService(repo, nil, nil, nil)

	record, err := svc.Create(context.Background(), AttendanceRequest{
		StudentID:        1,
		ModuleID:         2,
		WeekNumber:       3,
		AttendedSessions: intPtr(3),
		TotalSessions:    intPtr(4),
	})
	require.NoError(t, err)
	require.NotNil(t, record.AttendanceRate)
	assert.InDelta(t, 0.75, *record.AttendanceRate, 1e-9)
	assert.True(t, record.IsActive)
}

func TestAttendanceCreatePrefersExplicitRate(t *testing.T) {
	repo := newFakeAttendanceRepo()
	svc := NewAttendanceService(repo, nil, nil, nil)

	record, err := svc.Create(context.Background(), AttendanceRequest{
		StudentID:        1,
		ModuleID:         2,
		WeekNumber:       3,
		AttendedSessions: intPtr(1),
		TotalSessions:    intPtr(4),
		AttendanceRate:   floatPtr(0.9),
	})
	require.NoError(t, err)
	require.NotNil(t, record.AttendanceRate)
	assert.InDelta(t, 0.9, *record.AttendanceRate, 1e-9)
}

func TestAttendanceCreateNilRateWhenNoSessions(t *testing.T) {
	repo := newFakeAttendanceRepo()
	svc := NewAttendanceService(repo, nil, nil, nil)

	record, err := svc.Create(context.Background(), AttendanceRequest{
		StudentID:  1,
		ModuleID:   2,
		WeekNumber: 3,
	})
	require.NoError(t, err)
	assert.Nil(t, record.AttendanceRate)
}

func TestAttendanceCreateZeroTotalSessions(t *testing.T) {
	repo := newFakeAttendanceRepo()
	svc := NewAttendanceService(repo, nil, nil, nil)

	record, err := svc.Create(context.Background(), AttendanceRequest{
		StudentID:        1,
		ModuleID:         2,
		WeekNumber:       3,
		AttendedSessions: intPtr(0),
		TotalSessions:    intPtr(0),
	})
	require.NoError(t, err)
	assert.Nil(t, record.AttendanceRate)
}

func TestAttendanceCreateRejectsOutOfRangeRate(t *testing.T) {
	repo := newFakeAttendanceRepo()
	svc := NewAttendanceService(repo, nil, nil, nil)

	_, err := svc.Create(context.Background(), AttendanceRequest{
		StudentID:      1,
		ModuleID:       2,
		WeekNumber:     3,
		AttendanceRate: floatPtr(1.5),
	})
	require.Error(t, err)
	appErr := appErrors.FromError(err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErr.Code)
}

func TestAttendanceUpdateMissingRecord(t *testing.T) {
	repo := newFakeAttendanceRepo()
	svc := NewAttendanceService(repo, nil, nil, nil)

	_, err := svc.Update(context.Background(), 99, AttendanceRequest{
		StudentID:  1,
		ModuleID:   2,
		WeekNumber: 3,
	})
	require.Error(t, err)
	appErr := appErrors.FromError(err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErr.Code)
}

func TestAttendanceDeactivate(t *testing.T) {
	repo := newFakeAttendanceRepo()
	svc := NewAttendanceService(repo, nil, nil, nil)

	record, err := svc.Create(context.Background(), AttendanceRequest{
		StudentID:      1,
		ModuleID:       2,
		WeekNumber:     3,
		AttendanceRate: floatPtr(0.5),
	})
	require.NoError(t, err)

	require.NoError(t, svc.Deactivate(context.Background(), record.ID))
	assert.False(t, repo.records[record.ID].IsActive)
}

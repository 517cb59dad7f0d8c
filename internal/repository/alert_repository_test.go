package repository

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campus-pulse/wellbeing-api/internal/models"
)

func sampleAlert(student int64, module *int64, week int) models.Alert {
	return models.Alert{
		StudentID:  student,
		ModuleID:   module,
		WeekNumber: week,
		Reason:     "Stress >= 4 in consecutive weeks 3 and 4 (module_id=10).",
		CreatedAt:  time.Now().UTC(),
		IsActive:   true,
	}
}

func TestAlertRepositoryReplaceClearsAllAndInserts(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewAlertRepository(db)

	moduleID := int64(10)
	alerts := []models.Alert{
		sampleAlert(1, &moduleID, 4),
		sampleAlert(2, &moduleID, 6),
	}

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM alerts")).
		WillReturnResult(sqlmock.NewResult(0, 3))
	mock.ExpectQuery("INSERT INTO alerts").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(11))
	mock.ExpectQuery("INSERT INTO alerts").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(12))
	mock.ExpectCommit()

	inserted, err := repo.Replace(context.Background(), nil, true, alerts)
	require.NoError(t, err)
	require.Len(t, inserted, 2)
	assert.Equal(t, int64(11), inserted[0].ID)
	assert.Equal(t, int64(12), inserted[1].ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAlertRepositoryReplaceModuleScopedClear(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewAlertRepository(db)

	moduleID := int64(10)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM alerts WHERE module_id = $1")).
		WithArgs(moduleID).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery("INSERT INTO alerts").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(21))
	mock.ExpectCommit()

	inserted, err := repo.Replace(context.Background(), &moduleID, true, []models.Alert{sampleAlert(1, &moduleID, 4)})
	require.NoError(t, err)
	require.Len(t, inserted, 1)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAlertRepositoryReplaceWithoutClear(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewAlertRepository(db)

	mock.ExpectBegin()
	mock.ExpectQuery("INSERT INTO alerts").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(31))
	mock.ExpectCommit()

	inserted, err := repo.Replace(context.Background(), nil, false, []models.Alert{sampleAlert(1, nil, 2)})
	require.NoError(t, err)
	require.Len(t, inserted, 1)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAlertRepositoryReplaceRollsBackOnInsertFailure(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewAlertRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM alerts")).
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectQuery("INSERT INTO alerts").
		WillReturnError(errors.New("constraint violation"))
	mock.ExpectRollback()

	_, err := repo.Replace(context.Background(), nil, true, []models.Alert{sampleAlert(1, nil, 2)})
	require.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAlertRepositoryListFilters(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewAlertRepository(db)

	studentID := int64(1)
	resolved := false
	rows := sqlmock.NewRows([]string{"id", "student_id", "module_id", "week_number", "reason", "created_at", "resolved", "is_active"}).
		AddRow(5, 1, 10, 4, "reason", time.Now(), false, true)
	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, student_id, module_id, week_number, reason, created_at, resolved, is_active FROM alerts WHERE 1=1 AND is_active = TRUE AND student_id = $1 AND resolved = $2 ORDER BY week_number DESC, student_id ASC")).
		WithArgs(studentID, resolved).
		WillReturnRows(rows)

	alerts, err := repo.List(context.Background(), models.AlertFilter{StudentID: &studentID, Resolved: &resolved})
	require.NoError(t, err)
	require.Len(t, alerts, 1)
	assert.Equal(t, int64(5), alerts[0].ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAlertRepositoryUpdateMissingRow(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewAlertRepository(db)

	mock.ExpectExec("UPDATE alerts SET").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.Update(context.Background(), &models.Alert{ID: 99})
	assert.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

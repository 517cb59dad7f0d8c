package repository

import (
	"context"
	"regexp"
	"testing"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campus-pulse/wellbeing-api/internal/models"
)

func TestStudentRepositoryListPaged(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewStudentRepository(db)

	rows := sqlmock.NewRows([]string{"id", "student_number", "full_name", "email", "course_name", "year_of_study", "is_active"}).
		AddRow(1, "S1001", "Student One", nil, nil, nil, true)
	mock.ExpectQuery("SELECT id, student_number, full_name, email, course_name, year_of_study, is_active[\\s\\S]*LIMIT 20 OFFSET 0").
		WillReturnRows(rows)
	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM students WHERE 1=1 AND is_active = TRUE")).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	students, total, err := repo.List(context.Background(), models.StudentFilter{})
	require.NoError(t, err)
	assert.Len(t, students, 1)
	assert.Equal(t, 1, total)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStudentRepositoryListSearch(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewStudentRepository(db)

	mock.ExpectQuery("LOWER\\(full_name\\) LIKE \\$1 OR LOWER\\(student_number\\) LIKE \\$1").
		WithArgs("%ali%").
		WillReturnRows(sqlmock.NewRows([]string{"id", "student_number", "full_name", "email", "course_name", "year_of_study", "is_active"}))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*)")).
		WithArgs("%ali%").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))

	_, total, err := repo.List(context.Background(), models.StudentFilter{Search: "Ali"})
	require.NoError(t, err)
	assert.Equal(t, 0, total)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStudentRepositoryCreateReturnsID(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewStudentRepository(db)

	mock.ExpectQuery("INSERT INTO students").
		WithArgs("S1001", "Student One", nil, nil, nil, true).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(42))

	student := &models.Student{StudentNumber: "S1001", FullName: "Student One", IsActive: true}
	require.NoError(t, repo.Create(context.Background(), student))
	assert.Equal(t, int64(42), student.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStudentRepositoryExistsByNumber(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewStudentRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT 1 FROM students WHERE student_number = $1 LIMIT 1")).
		WithArgs("S1001").
		WillReturnRows(sqlmock.NewRows([]string{"1"}).AddRow(1))

	exists, err := repo.ExistsByNumber(context.Background(), "S1001", 0)
	require.NoError(t, err)
	assert.True(t, exists)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT 1 FROM students WHERE student_number = $1 AND id <> $2 LIMIT 1")).
		WithArgs("S1001", int64(7)).
		WillReturnRows(sqlmock.NewRows([]string{"1"}))

	exists, err = repo.ExistsByNumber(context.Background(), "S1001", 7)
	require.NoError(t, err)
	assert.False(t, exists)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStudentRepositoryDeactivate(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewStudentRepository(db)

	mock.ExpectExec(regexp.QuoteMeta("UPDATE students SET is_active = FALSE WHERE id = $1")).
		WithArgs(int64(1)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.Deactivate(context.Background(), 1))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStudentRepositoryHardDeleteMissing(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewStudentRepository(db)

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM students WHERE id = $1")).
		WithArgs(int64(404)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	assert.Error(t, repo.HardDelete(context.Background(), 404))
	assert.NoError(t, mock.ExpectationsWereMet())
}

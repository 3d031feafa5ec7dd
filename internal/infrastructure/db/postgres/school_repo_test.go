package postgres

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/baechuer/edusphere/internal/domain"
)

func TestSchoolRepo_UpsertStudents(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewSchoolRepo(db)
	batch := []domain.Student{
		{ID: "s1", Name: "Ann", Grade: "10", AttendanceRate: 90, FeesStatus: "PAID"},
		{ID: "s2", Name: "Bob", FeesStatus: "PENDING"},
	}

	t.Run("commits", func(t *testing.T) {
		mock.ExpectBegin()
		prep := mock.ExpectPrepare("INSERT INTO students")
		prep.ExpectExec().WithArgs("s1", nil, "Ann", "10", "", "", "", 90, "PAID").WillReturnResult(sqlmock.NewResult(0, 1))
		prep.ExpectExec().WithArgs("s2", nil, "Bob", "", "", "", "", 0, "PENDING").WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		require.NoError(t, repo.UpsertStudents(context.Background(), batch))
	})

	t.Run("rolls_back_on_row_failure", func(t *testing.T) {
		mock.ExpectBegin()
		prep := mock.ExpectPrepare("INSERT INTO students")
		prep.ExpectExec().WillReturnResult(sqlmock.NewResult(0, 1))
		prep.ExpectExec().WillReturnError(errors.New("constraint"))
		mock.ExpectRollback()

		err := repo.UpsertStudents(context.Background(), batch)
		assert.True(t, domain.Is(err, "db_unavailable"))
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSchoolRepo_ListTeachers_DecodesClasses(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	rows := sqlmock.NewRows([]string{"id", "name", "subject", "email", "classes"}).
		AddRow("t1", "Mr. Anderson", "Math", "a@school.com", `["10-A","9-B"]`).
		AddRow("t2", "Ms. Roberts", "Science", "r@school.com", "").
		AddRow("t3", "Mx. Legacy", "Art", "l@school.com", "not json")
	mock.ExpectQuery("SELECT (.+) FROM teachers").WillReturnRows(rows)

	got, err := NewSchoolRepo(db).ListTeachers(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, []string{"10-A", "9-B"}, got[0].Classes)
	assert.Equal(t, []string{}, got[1].Classes)
	assert.Equal(t, []string{}, got[2].Classes)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSchoolRepo_CreateTeacher_EncodesClasses(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec("INSERT INTO teachers").
		WithArgs("t9", "New", "PE", "n@school.com", `["7-A"]`).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err = NewSchoolRepo(db).CreateTeacher(context.Background(), domain.Teacher{
		ID: "t9", Name: "New", Subject: "PE", Email: "n@school.com", Classes: []string{"7-A"},
	})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSchoolRepo_MarkFeePaid(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewSchoolRepo(db)

	mock.ExpectExec("UPDATE fees SET fees_status = 'PAID'").WithArgs("INV-001").
		WillReturnResult(sqlmock.NewResult(0, 1))
	require.NoError(t, repo.MarkFeePaid(context.Background(), "INV-001"))

	mock.ExpectExec("UPDATE fees SET fees_status = 'PAID'").WithArgs("INV-404").
		WillReturnResult(sqlmock.NewResult(0, 0))
	err = repo.MarkFeePaid(context.Background(), "INV-404")
	assert.True(t, domain.Is(err, "invoice_not_found"))

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSchoolRepo_UpsertAttendance(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	prep := mock.ExpectPrepare("INSERT INTO attendance")
	prep.ExpectExec().WithArgs("s1-2024-03-01", "2024-03-01", "s1", "PRESENT").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err = NewSchoolRepo(db).UpsertAttendance(context.Background(), []domain.AttendanceRecord{
		{ID: "s1-2024-03-01", Date: "2024-03-01", StudentID: "s1", Status: "PRESENT"},
	})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSchoolRepo_Stats(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery("SELECT").
		WillReturnRows(sqlmock.NewRows([]string{"students", "teachers", "revenue"}).AddRow(3, 2, int64(1250)))

	s, err := NewSchoolRepo(db).Stats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, domain.Stats{Students: 3, Teachers: 2, Revenue: 1250}, s)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSchoolRepo_ListStudents_NullableUserID(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	rows := sqlmock.NewRows([]string{"id", "user_id", "name", "grade", "section", "guardian_name", "contact", "attendance_rate", "fees_status"}).
		AddRow("s1", "u3", "Emma", "10", "A", "John", "+1", 95, "PAID").
		AddRow("s2", nil, "Liam", "10", "A", "Sarah", "+2", 88, "PENDING")
	mock.ExpectQuery("SELECT (.+) FROM students").WillReturnRows(rows)

	got, err := NewSchoolRepo(db).ListStudents(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 2)
	require.NotNil(t, got[0].UserID)
	assert.Equal(t, "u3", *got[0].UserID)
	assert.Nil(t, got[1].UserID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

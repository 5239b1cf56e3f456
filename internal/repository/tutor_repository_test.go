package repository

import (
	"context"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/tutoring-api/internal/models"
)

func TestTutorRepositoryListByTermAssemblesRoster(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewTutorRepository(db)

	monday := time.Date(2026, 10, 19, 0, 0, 0, 0, time.UTC)
	mock.ExpectQuery(regexp.QuoteMeta("FROM tutor_profiles tp")).
		WithArgs(int64(7)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "term_id", "approved", "about_me", "first_name", "last_name", "created_at"}).
			AddRow(1, "tutor-1", 7, true, "", "Grace", "Hopper", time.Now()).
			AddRow(2, "tutor-2", 7, false, "Physics nerd", "Alan", "Turing", time.Now()))
	mock.ExpectQuery(regexp.QuoteMeta("FROM tutor_courses WHERE tutor_profile_id = ANY($1)")).
		WithArgs(sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"tutor_profile_id", "course_code"}).
			AddRow(1, "MATH 115").AddRow(2, "PHYS 101").AddRow(1, "MATH 116"))
	mock.ExpectQuery(regexp.QuoteMeta("FROM tutor_schedule_blocks WHERE tutor_profile_id = ANY($1)")).
		WithArgs(sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"id", "tutor_profile_id", "day_of_week", "start_time", "end_time", "location"}).
			AddRow(10, 1, 1, "09:00:00", "11:00:00", "Room A"))
	mock.ExpectQuery(regexp.QuoteMeta("FROM date_blocks WHERE tutor_profile_id = ANY($1)")).
		WithArgs(sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"id", "tutor_profile_id", "date", "start_time", "end_time", "location"}).
			AddRow(20, 1, monday, "10:00:00", "10:30:00", "").
			AddRow(21, 2, monday, "13:00:00", "15:00:00", "Lab"))

	tutors, err := repo.ListByTerm(context.Background(), 7)
	require.NoError(t, err)
	require.Len(t, tutors, 2)

	grace := tutors[0]
	assert.Equal(t, "Grace Hopper", grace.FullName())
	assert.Equal(t, []string{"MATH 115", "MATH 116"}, grace.Courses)
	require.Len(t, grace.RegularSchedule, 1)
	assert.Equal(t, time.Monday, grace.RegularSchedule[0].DayOfWeek)
	assert.Equal(t, models.NewClock(11, 0), grace.RegularSchedule[0].EndTime)
	require.Len(t, grace.Exceptions, 1)
	assert.False(t, grace.Exceptions[0].AddsAvailability())

	alan := tutors[1]
	assert.Empty(t, alan.RegularSchedule)
	require.Len(t, alan.Exceptions, 1)
	assert.True(t, alan.Exceptions[0].AddsAvailability())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTutorRepositoryListByTermEmpty(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewTutorRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("FROM tutor_profiles tp")).
		WithArgs(int64(9)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "term_id", "approved", "about_me", "first_name", "last_name", "created_at"}))

	tutors, err := repo.ListByTerm(context.Background(), 9)
	require.NoError(t, err)
	assert.Empty(t, tutors)
	assert.NoError(t, mock.ExpectationsWereMet())
}

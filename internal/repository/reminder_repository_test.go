package repository

import (
	"context"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/timecraft-app/timecraft-api/internal/models"
)

func reminderRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "title", "subject", "deadline_date", "deadline_time", "reminder_days", "reminder_time", "notification_ids", "created_at"})
}

func TestReminderRepositoryCreateAndFind(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()

	repo := NewReminderRepository(db)
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO reminders")).
		WillReturnResult(sqlmock.NewResult(1, 1))

	reminder := &models.Reminder{
		Title:           "Assignment 2",
		Subject:         "CS101",
		DeadlineDate:    time.Date(2026, time.September, 17, 0, 0, 0, 0, time.UTC),
		DeadlineTime:    "11:59 PM",
		ReminderDays:    pq.StringArray{"Wed"},
		ReminderTime:    "8:00 AM",
		NotificationIDs: pq.StringArray{"h1", "h2"},
	}
	require.NoError(t, repo.Create(context.Background(), reminder))
	assert.NotEmpty(t, reminder.ID)

	rows := reminderRows().
		AddRow(reminder.ID, "Assignment 2", "CS101", reminder.DeadlineDate, "11:59 PM", `{Wed}`, "8:00 AM", `{h1,h2}`, time.Now())
	mock.ExpectQuery(regexp.QuoteMeta("WHERE id = $1")).
		WithArgs(reminder.ID).
		WillReturnRows(rows)

	found, err := repo.FindByID(context.Background(), reminder.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"h1", "h2"}, []string(found.NotificationIDs))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestReminderRepositoryListUpcomingLimit(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()

	repo := NewReminderRepository(db)
	rows := reminderRows().
		AddRow("r1", "Assignment 2", "CS101", time.Now(), "11:59 PM", `{Wed}`, "8:00 AM", `{}`, time.Now())
	mock.ExpectQuery(regexp.QuoteMeta("ORDER BY deadline_date ASC LIMIT 5")).
		WillReturnRows(rows)

	reminders, err := repo.ListUpcoming(context.Background(), 0)
	require.NoError(t, err)
	require.Len(t, reminders, 1)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestReminderRepositoryDelete(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()

	repo := NewReminderRepository(db)
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM reminders")).
		WithArgs("r1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.Delete(context.Background(), "r1"))
	require.NoError(t, mock.ExpectationsWereMet())
}

package service

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/timecraft-app/timecraft-api/internal/models"
	appErrors "github.com/timecraft-app/timecraft-api/pkg/errors"
	"github.com/timecraft-app/timecraft-api/pkg/notify"
)

type fakeReminderRepo struct {
	reminders []models.Reminder
	created   *models.Reminder
	createErr error
	deleted   string
}

func (f *fakeReminderRepo) List(context.Context) ([]models.Reminder, error) {
	return f.reminders, nil
}

func (f *fakeReminderRepo) ListUpcoming(_ context.Context, limit int) ([]models.Reminder, error) {
	if limit < len(f.reminders) {
		return f.reminders[:limit], nil
	}
	return f.reminders, nil
}

func (f *fakeReminderRepo) FindByID(_ context.Context, id string) (*models.Reminder, error) {
	for i := range f.reminders {
		if f.reminders[i].ID == id {
			return &f.reminders[i], nil
		}
	}
	return nil, sql.ErrNoRows
}

func (f *fakeReminderRepo) Create(_ context.Context, reminder *models.Reminder) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.created = reminder
	return nil
}

func (f *fakeReminderRepo) Delete(_ context.Context, id string) error {
	f.deleted = id
	return nil
}

type fakeScheduler struct {
	scheduled   []notify.Notification
	cancelled   []string
	failAfter   int
	scheduleErr error
}

func (f *fakeScheduler) ScheduleAt(_ context.Context, n notify.Notification) (string, error) {
	if f.scheduleErr != nil && len(f.scheduled) >= f.failAfter {
		return "", f.scheduleErr
	}
	f.scheduled = append(f.scheduled, n)
	return n.At.Format(time.RFC3339), nil
}

func (f *fakeScheduler) Cancel(_ context.Context, handle string) error {
	f.cancelled = append(f.cancelled, handle)
	return nil
}

func (f *fakeScheduler) CancelAll(ctx context.Context, handles []string) error {
	for _, handle := range handles {
		if err := f.Cancel(ctx, handle); err != nil {
			return err
		}
	}
	return nil
}

// 2026-08-31 07:00 is a Monday morning.
func reminderNow() time.Time {
	return time.Date(2026, time.August, 31, 7, 0, 0, 0, time.UTC)
}

func TestReminderServiceCreateSchedulesOccurrences(t *testing.T) {
	repo := &fakeReminderRepo{}
	sched := &fakeScheduler{}
	svc := NewReminderService(repo, sched, nil, nil).WithNow(reminderNow)

	reminder, err := svc.Create(context.Background(), CreateReminderRequest{
		Title:        "Assignment 2",
		Subject:      "CS101",
		DeadlineDate: "2026-09-17",
		DeadlineTime: "11:59 PM",
		ReminderDays: []string{"Wed"},
		ReminderTime: "8:00 AM",
	})
	require.NoError(t, err)
	require.NotNil(t, repo.created)

	assert.NotEmpty(t, reminder.ID)
	require.Len(t, sched.scheduled, 3)
	assert.Equal(t, time.Date(2026, time.September, 2, 8, 0, 0, 0, time.UTC), sched.scheduled[0].At)
	assert.Equal(t, reminder.ID, sched.scheduled[0].ReminderID)
	assert.Equal(t, "Reminder: Assignment 2 - Due Sep 17, 2026 at 11:59 PM", sched.scheduled[0].Body)
	assert.Len(t, []string(reminder.NotificationIDs), 3)
}

func TestReminderServiceCreateRequiresDays(t *testing.T) {
	svc := NewReminderService(&fakeReminderRepo{}, &fakeScheduler{}, nil, nil).WithNow(reminderNow)

	_, err := svc.Create(context.Background(), CreateReminderRequest{
		Title:        "Assignment 2",
		DeadlineDate: "2026-09-17",
		DeadlineTime: "11:59 PM",
		ReminderTime: "8:00 AM",
	})
	require.Error(t, err)
	assert.True(t, appErrors.Is(err, appErrors.ErrNoReminderDays))
}

func TestReminderServiceCreateRejectsPastDeadline(t *testing.T) {
	svc := NewReminderService(&fakeReminderRepo{}, &fakeScheduler{}, nil, nil).WithNow(reminderNow)

	_, err := svc.Create(context.Background(), CreateReminderRequest{
		Title:        "Late",
		DeadlineDate: "2026-08-30",
		DeadlineTime: "11:59 PM",
		ReminderDays: []string{"Mon"},
		ReminderTime: "8:00 AM",
	})
	require.Error(t, err)
	assert.True(t, appErrors.Is(err, appErrors.ErrValidation))
}

func TestReminderServiceCreateRejectsBadInputs(t *testing.T) {
	svc := NewReminderService(&fakeReminderRepo{}, &fakeScheduler{}, nil, nil).WithNow(reminderNow)

	cases := []struct {
		name string
		req  CreateReminderRequest
	}{
		{"bad day", CreateReminderRequest{Title: "x", DeadlineDate: "2026-09-17", DeadlineTime: "11:59 PM", ReminderDays: []string{"Funday"}, ReminderTime: "8:00 AM"}},
		{"bad time", CreateReminderRequest{Title: "x", DeadlineDate: "2026-09-17", DeadlineTime: "11:59 PM", ReminderDays: []string{"Mon"}, ReminderTime: "98:00"}},
		{"bad date", CreateReminderRequest{Title: "x", DeadlineDate: "17-09-2026", DeadlineTime: "11:59 PM", ReminderDays: []string{"Mon"}, ReminderTime: "8:00 AM"}},
		{"missing title", CreateReminderRequest{DeadlineDate: "2026-09-17", DeadlineTime: "11:59 PM", ReminderDays: []string{"Mon"}, ReminderTime: "8:00 AM"}},
	}
	for _, tc := range cases {
		_, err := svc.Create(context.Background(), tc.req)
		require.Error(t, err, tc.name)
	}
}

func TestReminderServiceCreateRollsBackOnScheduleFailure(t *testing.T) {
	sched := &fakeScheduler{failAfter: 2, scheduleErr: errors.New("transport down")}
	repo := &fakeReminderRepo{}
	svc := NewReminderService(repo, sched, nil, nil).WithNow(reminderNow)

	_, err := svc.Create(context.Background(), CreateReminderRequest{
		Title:        "Assignment 2",
		DeadlineDate: "2026-09-17",
		DeadlineTime: "11:59 PM",
		ReminderDays: []string{"Wed"},
		ReminderTime: "8:00 AM",
	})
	require.Error(t, err)
	assert.True(t, appErrors.Is(err, appErrors.ErrSchedulingFailed))
	assert.Nil(t, repo.created)
	assert.Len(t, sched.cancelled, 2)
}

func TestReminderServiceCreateRollsBackOnPersistFailure(t *testing.T) {
	sched := &fakeScheduler{}
	repo := &fakeReminderRepo{createErr: errors.New("db down")}
	svc := NewReminderService(repo, sched, nil, nil).WithNow(reminderNow)

	_, err := svc.Create(context.Background(), CreateReminderRequest{
		Title:        "Assignment 2",
		DeadlineDate: "2026-09-17",
		DeadlineTime: "11:59 PM",
		ReminderDays: []string{"Wed"},
		ReminderTime: "8:00 AM",
	})
	require.Error(t, err)
	assert.Len(t, sched.cancelled, len(sched.scheduled))
}

func TestReminderServicePreviewIsPure(t *testing.T) {
	repo := &fakeReminderRepo{}
	sched := &fakeScheduler{}
	svc := NewReminderService(repo, sched, nil, nil).WithNow(reminderNow)

	result, err := svc.Preview(context.Background(), PreviewOccurrencesRequest{
		DeadlineDate: "2026-09-17",
		DeadlineTime: "11:59 PM",
		ReminderDays: []string{"Wed"},
		ReminderTime: "8:00 AM",
	})
	require.NoError(t, err)
	require.Len(t, result.Occurrences, 3)
	assert.Empty(t, sched.scheduled)
	assert.Nil(t, repo.created)
}

func TestReminderServiceDeleteCancelsNotifications(t *testing.T) {
	repo := &fakeReminderRepo{reminders: []models.Reminder{{
		ID:              "r1",
		Title:           "Assignment 2",
		NotificationIDs: []string{"h1", "h2"},
	}}}
	sched := &fakeScheduler{}
	svc := NewReminderService(repo, sched, nil, nil)

	require.NoError(t, svc.Delete(context.Background(), "r1"))
	assert.Equal(t, []string{"h1", "h2"}, sched.cancelled)
	assert.Equal(t, "r1", repo.deleted)
}

func TestReminderServiceDeleteMissing(t *testing.T) {
	svc := NewReminderService(&fakeReminderRepo{}, &fakeScheduler{}, nil, nil)

	err := svc.Delete(context.Background(), "ghost")
	require.Error(t, err)
	assert.True(t, appErrors.Is(err, appErrors.ErrNotFound))
}

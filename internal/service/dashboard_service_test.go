package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/timecraft-app/timecraft-api/internal/models"
)

func dashboardClasses() []models.ClassEntry {
	return []models.ClassEntry{
		{
			ID: "cs", Subject: "CS101", Instructor: "DR. SMITH",
			Kind: models.KindLecture, RoomPrefix: models.RoomPrefixLecture, RoomNumber: "204",
			Day: "Mon", StartTime: "9:00 AM", EndTime: "11:00 AM",
			TimeSlots: []string{"9:00 AM", "10:00 AM"},
		},
		{
			ID: "math", Subject: "MATH201", Instructor: "DR. JONES",
			Kind: models.KindLecture, RoomPrefix: models.RoomPrefixLecture, RoomNumber: "101",
			Day: "Mon", StartTime: "1:00 PM", EndTime: "2:00 PM",
			TimeSlots: []string{"1:00 PM"},
		},
	}
}

func newDashboardService(classes []models.ClassEntry, reminders []models.Reminder, now time.Time) *DashboardService {
	return NewDashboardService(DashboardServiceParams{
		Classes:   &fakeClassRepo{classes: classes},
		Reminders: &fakeReminderRepo{reminders: reminders},
		Now:       func() time.Time { return now },
	})
}

func TestDashboardHomeCurrentAndNext(t *testing.T) {
	now := time.Date(2026, time.August, 31, 9, 30, 0, 0, time.UTC) // Monday 9:30
	svc := newDashboardService(dashboardClasses(), nil, now)

	payload, cacheHit, err := svc.Home(context.Background())
	require.NoError(t, err)
	assert.False(t, cacheHit)

	require.NotNil(t, payload.CurrentClass)
	assert.Equal(t, "CS101", payload.CurrentClass.Name)
	assert.Equal(t, "9:00 AM - 11:00 AM", payload.CurrentClass.Time)
	assert.Equal(t, "ITC 204", payload.CurrentClass.Room)

	require.NotNil(t, payload.NextClass)
	assert.Equal(t, "MATH201", payload.NextClass.Name)
	assert.Equal(t, "Mon", payload.NextClass.Day)
}

func TestDashboardHomeBetweenClasses(t *testing.T) {
	now := time.Date(2026, time.August, 31, 11, 30, 0, 0, time.UTC)
	svc := newDashboardService(dashboardClasses(), nil, now)

	payload, _, err := svc.Home(context.Background())
	require.NoError(t, err)
	assert.Nil(t, payload.CurrentClass)
	require.NotNil(t, payload.NextClass)
	assert.Equal(t, "MATH201", payload.NextClass.Name)
}

func TestDashboardHomeNextOnFollowingDay(t *testing.T) {
	now := time.Date(2026, time.August, 31, 18, 0, 0, 0, time.UTC) // Monday evening
	classes := dashboardClasses()
	classes = append(classes, models.ClassEntry{
		ID: "chem", Subject: "CHEM", Kind: models.KindLab,
		RoomPrefix: models.RoomPrefixLab, RoomNumber: "2",
		Day: "Wed", StartTime: "8:00 AM", EndTime: "9:00 AM",
		TimeSlots: []string{"8:00 AM"},
	})
	svc := newDashboardService(classes, nil, now)

	payload, _, err := svc.Home(context.Background())
	require.NoError(t, err)
	assert.Nil(t, payload.CurrentClass)
	require.NotNil(t, payload.NextClass)
	assert.Equal(t, "CHEM", payload.NextClass.Name)
	assert.Equal(t, "Wed", payload.NextClass.Day)
	assert.Equal(t, "CCL 2", payload.NextClass.Room)
}

func TestDashboardHomeReminderSummaries(t *testing.T) {
	now := time.Date(2026, time.August, 31, 9, 30, 0, 0, time.UTC)
	reminders := []models.Reminder{
		{
			ID: "r1", Title: "Assignment 2", Subject: "CS101",
			DeadlineDate: time.Date(2026, time.September, 17, 0, 0, 0, 0, time.UTC),
			DeadlineTime: "11:59 PM",
		},
		{
			ID: "r2", Title: "Buy books",
			DeadlineDate: time.Date(2026, time.September, 20, 0, 0, 0, 0, time.UTC),
			DeadlineTime: "6:00 PM",
		},
	}
	svc := newDashboardService(nil, reminders, now)

	payload, _, err := svc.Home(context.Background())
	require.NoError(t, err)
	require.Len(t, payload.Reminders, 2)
	assert.Equal(t, "Assignment 2", payload.Reminders[0].Title)
	assert.Equal(t, "Sep 17, 2026", payload.Reminders[0].Deadline)
	assert.Equal(t, "General", payload.Reminders[1].Subject)
}

func TestDashboardHomeEmpty(t *testing.T) {
	now := time.Date(2026, time.August, 30, 12, 0, 0, 0, time.UTC) // Sunday
	svc := newDashboardService(nil, nil, now)

	payload, cacheHit, err := svc.Home(context.Background())
	require.NoError(t, err)
	assert.False(t, cacheHit)
	assert.Nil(t, payload.CurrentClass)
	assert.Nil(t, payload.NextClass)
	assert.Empty(t, payload.Reminders)
}

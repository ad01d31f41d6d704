package models

import (
	"time"

	"github.com/lib/pq"
)

// Reminder is a one-time deadline with recurring weekly notifications
// leading up to it.
type Reminder struct {
	ID              string         `db:"id" json:"id"`
	Title           string         `db:"title" json:"title"`
	Subject         string         `db:"subject" json:"subject"`
	DeadlineDate    time.Time      `db:"deadline_date" json:"deadline_date"`
	DeadlineTime    string         `db:"deadline_time" json:"deadline_time"`
	ReminderDays    pq.StringArray `db:"reminder_days" json:"reminder_days"`
	ReminderTime    string         `db:"reminder_time" json:"reminder_time"`
	NotificationIDs pq.StringArray `db:"notification_ids" json:"notification_ids"`
	CreatedAt       time.Time      `db:"created_at" json:"created_at"`
}

// ReminderSummary is the dashboard projection of a reminder.
type ReminderSummary struct {
	Title    string `json:"title"`
	Subject  string `json:"subject"`
	Deadline string `json:"deadline"`
	Time     string `json:"time"`
}

package timegrid

import (
	"fmt"
	"time"

	appErrors "github.com/timecraft-app/timecraft-api/pkg/errors"
)

// ClassDay is a day of the six-day class week, Monday through Saturday.
// Classes never fall on Sunday, so Sunday is not a member.
type ClassDay int

const (
	Monday ClassDay = iota
	Tuesday
	Wednesday
	Thursday
	Friday
	Saturday
)

var classDayLabels = [...]string{"Mon", "Tue", "Wed", "Thu", "Fri", "Sat"}

// ClassDays lists the class week in calendar order.
func ClassDays() []ClassDay {
	return []ClassDay{Monday, Tuesday, Wednesday, Thursday, Friday, Saturday}
}

// ParseClassDay resolves a short day label into a ClassDay.
func ParseClassDay(label string) (ClassDay, error) {
	for i, l := range classDayLabels {
		if l == label {
			return ClassDay(i), nil
		}
	}
	return 0, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("unknown class day %q", label))
}

// ClassDayOf maps a calendar weekday onto the class week. ok is false for
// Sunday.
func ClassDayOf(wd time.Weekday) (ClassDay, bool) {
	if wd == time.Sunday {
		return 0, false
	}
	return ClassDay(int(wd) - 1), true
}

// Next returns the following class day, wrapping Saturday back to Monday.
func (d ClassDay) Next() ClassDay {
	return ClassDay((int(d) + 1) % len(classDayLabels))
}

func (d ClassDay) String() string {
	if d < 0 || int(d) >= len(classDayLabels) {
		return fmt.Sprintf("ClassDay(%d)", int(d))
	}
	return classDayLabels[d]
}

// ReminderDay is a day of the full seven-day week, Sunday through Saturday.
// Reminders may fire on any day, including Sunday.
type ReminderDay int

const (
	RemindSunday ReminderDay = iota
	RemindMonday
	RemindTuesday
	RemindWednesday
	RemindThursday
	RemindFriday
	RemindSaturday
)

var reminderDayLabels = [...]string{"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"}

// ParseReminderDay resolves a short day label into a ReminderDay.
func ParseReminderDay(label string) (ReminderDay, error) {
	for i, l := range reminderDayLabels {
		if l == label {
			return ReminderDay(i), nil
		}
	}
	return 0, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("unknown reminder day %q", label))
}

// Weekday maps the reminder day onto time.Weekday. The two enumerations
// share Sunday-first ordering.
func (d ReminderDay) Weekday() time.Weekday {
	return time.Weekday(int(d))
}

func (d ReminderDay) String() string {
	if d < 0 || int(d) >= len(reminderDayLabels) {
		return fmt.Sprintf("ReminderDay(%d)", int(d))
	}
	return reminderDayLabels[d]
}

package models

import (
	"time"

	"github.com/lib/pq"
)

// Class kinds. A class is exactly one of the two.
const (
	KindLecture = "lecture"
	KindLab     = "lab"
)

// Room prefixes derived from the class kind.
const (
	RoomPrefixLecture = "ITC"
	RoomPrefixLab     = "CCL"
)

// ClassEntry represents one scheduled class on the weekly grid.
type ClassEntry struct {
	ID         string         `db:"id" json:"id"`
	Subject    string         `db:"subject" json:"subject"`
	Instructor string         `db:"instructor" json:"instructor"`
	Kind       string         `db:"kind" json:"kind"`
	RoomPrefix string         `db:"room_prefix" json:"room_prefix"`
	RoomNumber string         `db:"room_number" json:"room_number"`
	Day        string         `db:"day" json:"day"`
	StartTime  string         `db:"start_time" json:"start_time"`
	EndTime    string         `db:"end_time" json:"end_time"`
	TimeSlots  pq.StringArray `db:"time_slots" json:"time_slots"`
	Color      string         `db:"color" json:"color"`
	CreatedAt  time.Time      `db:"created_at" json:"created_at"`
	UpdatedAt  time.Time      `db:"updated_at" json:"updated_at"`
}

// ClassFilter describes query params for listing classes.
type ClassFilter struct {
	Day     string
	Subject string
	Kind    string
}

// ClassConflict describes an existing class that blocks a candidate.
type ClassConflict struct {
	ClassID string `json:"class_id"`
	Subject string `json:"subject"`
	Day     string `json:"day"`
	Slot    string `json:"slot"`
}

// ClassConflictError is returned when a candidate collides with an existing
// class, either on a slot or on the one-lecture-one-lab-per-subject rule.
type ClassConflictError struct {
	Type     string        `json:"type"`
	Message  string        `json:"message"`
	Conflict ClassConflict `json:"conflict"`
}

// Error implements the error interface for conflict errors.
func (e *ClassConflictError) Error() string {
	if e == nil {
		return "<nil>"
	}
	return e.Message
}

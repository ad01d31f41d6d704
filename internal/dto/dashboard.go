package dto

import "github.com/timecraft-app/timecraft-api/internal/models"

// DashboardResponse aggregates the home-screen payload: the class in session,
// the next upcoming class and the nearest deadlines.
type DashboardResponse struct {
	CurrentClass *DashboardClass          `json:"currentClass"`
	NextClass    *DashboardClass          `json:"nextClass"`
	Reminders    []models.ReminderSummary `json:"reminders"`
}

// DashboardClass is the display projection of a class entry.
type DashboardClass struct {
	Name string `json:"name"`
	Time string `json:"time"`
	Room string `json:"room"`
	Day  string `json:"day"`
}

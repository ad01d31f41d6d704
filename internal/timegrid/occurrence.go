package timegrid

import (
	"sort"
	"time"
)

// GenerateOccurrences produces every instant at which a recurring reminder
// must fire: for each chosen weekday, the first occurrence at or after now
// (today counts while its time of day has not passed), then every 7 days,
// all strictly before the deadline. The merged result is ascending and a
// pure function of its inputs.
func GenerateOccurrences(deadline time.Time, days []ReminderDay, timeOfDay Clock12, now time.Time) []time.Time {
	mins := timeOfDay.Minutes()
	var out []time.Time
	for _, day := range days {
		daysUntil := (int(day.Weekday()) - int(now.Weekday()) + 7) % 7
		first := time.Date(now.Year(), now.Month(), now.Day()+daysUntil,
			mins/60, mins%60, 0, 0, now.Location())
		if !first.After(now) {
			first = first.AddDate(0, 0, 7)
		}
		for t := first; t.Before(deadline); t = t.AddDate(0, 0, 7) {
			out = append(out, t)
		}
	}

	sort.Slice(out, func(i, j int) bool { return out[i].Before(out[j]) })
	deduped := out[:0]
	for i, t := range out {
		if i > 0 && t.Equal(out[i-1]) {
			continue
		}
		deduped = append(deduped, t)
	}
	return deduped
}

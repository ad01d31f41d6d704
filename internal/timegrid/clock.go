package timegrid

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	appErrors "github.com/timecraft-app/timecraft-api/pkg/errors"
)

// Clock12 is a wall-clock time of day on the 12-hour dial.
type Clock12 struct {
	Hour     int    `json:"hour"`
	Minute   int    `json:"minute"`
	Meridiem string `json:"meridiem"`
}

const (
	MeridiemAM = "AM"
	MeridiemPM = "PM"
)

var clockPattern = regexp.MustCompile(`^(\d{1,2}):(\d{2})\s*(AM|PM)$`)

// ParseClock parses a "h:mm AM" style string into a Clock12.
func ParseClock(raw string) (Clock12, error) {
	m := clockPattern.FindStringSubmatch(strings.ToUpper(strings.TrimSpace(raw)))
	if m == nil {
		return Clock12{}, appErrors.Clone(appErrors.ErrInvalidTimeFormat, fmt.Sprintf("invalid time %q, expected h:mm AM/PM", raw))
	}
	hour, _ := strconv.Atoi(m[1])
	minute, _ := strconv.Atoi(m[2])
	if hour < 1 || hour > 12 || minute > 59 {
		return Clock12{}, appErrors.Clone(appErrors.ErrInvalidTimeFormat, fmt.Sprintf("invalid time %q, hour must be 1-12 and minute 0-59", raw))
	}
	return Clock12{Hour: hour, Minute: minute, Meridiem: m[3]}, nil
}

// Minutes converts the clock to minutes since midnight. Noon is 720,
// midnight is 0.
func (c Clock12) Minutes() int {
	h := c.Hour % 12
	if c.Meridiem == MeridiemPM {
		h += 12
	}
	return h*60 + c.Minute
}

// String renders the clock back to its canonical "h:mm AM" form.
func (c Clock12) String() string {
	return fmt.Sprintf("%d:%02d %s", c.Hour, c.Minute, c.Meridiem)
}

// ClockFromMinutes builds the 12-hour clock for the given minutes since
// midnight. The inverse of Minutes for the 0..1439 range.
func ClockFromMinutes(mins int) Clock12 {
	mins = ((mins % 1440) + 1440) % 1440
	h24 := mins / 60
	minute := mins % 60
	meridiem := MeridiemAM
	if h24 >= 12 {
		meridiem = MeridiemPM
	}
	hour := h24 % 12
	if hour == 0 {
		hour = 12
	}
	return Clock12{Hour: hour, Minute: minute, Meridiem: meridiem}
}

// ParseMinutes is a shorthand for parsing then converting a label.
func ParseMinutes(raw string) (int, error) {
	c, err := ParseClock(raw)
	if err != nil {
		return 0, err
	}
	return c.Minutes(), nil
}

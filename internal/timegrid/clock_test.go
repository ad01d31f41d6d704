package timegrid

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appErrors "github.com/timecraft-app/timecraft-api/pkg/errors"
)

func TestParseClock(t *testing.T) {
	cases := []struct {
		raw     string
		minutes int
	}{
		{"7:00 AM", 7 * 60},
		{"12:00 PM", 12 * 60},
		{"12:00 AM", 0},
		{"12:30 AM", 30},
		{"1:05 PM", 13*60 + 5},
		{"11:59 PM", 23*60 + 59},
		{"6:00 pm", 18 * 60},
		{"  9:15 AM ", 9*60 + 15},
	}
	for _, tc := range cases {
		c, err := ParseClock(tc.raw)
		require.NoError(t, err, tc.raw)
		assert.Equal(t, tc.minutes, c.Minutes(), tc.raw)
	}
}

func TestParseClockRejectsMalformed(t *testing.T) {
	for _, raw := range []string{"", "25:00 AM", "0:30 PM", "13:00 PM", "9:60 AM", "9:00", "900 AM", "noon"} {
		_, err := ParseClock(raw)
		require.Error(t, err, raw)
		assert.True(t, appErrors.Is(err, appErrors.ErrInvalidTimeFormat), raw)
	}
}

func TestClockString(t *testing.T) {
	c, err := ParseClock("9:05 AM")
	require.NoError(t, err)
	assert.Equal(t, "9:05 AM", c.String())
}

func TestClockFromMinutesRoundTrip(t *testing.T) {
	cases := []struct {
		minutes int
		label   string
	}{
		{0, "12:00 AM"},
		{30, "12:30 AM"},
		{720, "12:00 PM"},
		{725, "12:05 PM"},
		{13*60 + 45, "1:45 PM"},
		{23*60 + 59, "11:59 PM"},
	}
	for _, tc := range cases {
		c := ClockFromMinutes(tc.minutes)
		assert.Equal(t, tc.label, c.String())
		assert.Equal(t, tc.minutes, c.Minutes())
	}
}

func TestParseMinutes(t *testing.T) {
	mins, err := ParseMinutes("10:00 AM")
	require.NoError(t, err)
	assert.Equal(t, 600, mins)

	_, err = ParseMinutes("nope")
	require.Error(t, err)
}

package timegrid

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appErrors "github.com/timecraft-app/timecraft-api/pkg/errors"
)

func gridEntry(id, subject string, day ClassDay, start, end string) Entry {
	slots, err := SlotRange(start, end)
	if err != nil {
		panic(err)
	}
	return Entry{ID: id, Subject: subject, Day: day, Slots: slots}
}

func TestFindConflictOverlap(t *testing.T) {
	existing := []Entry{
		gridEntry("a", "CS101", Monday, "9:00 AM", "11:00 AM"),
		gridEntry("b", "MATH201", Monday, "1:00 PM", "2:00 PM"),
	}

	candidate, err := SlotRange("10:00 AM", "12:00 PM")
	require.NoError(t, err)

	conflict, err := FindConflict(Monday, candidate, existing, "")
	require.NoError(t, err)
	require.NotNil(t, conflict)
	assert.Equal(t, "a", conflict.Entry.ID)
	assert.Equal(t, "10:00 AM", conflict.Slot)
}

func TestFindConflictAdjacentSlotsDoNotOverlap(t *testing.T) {
	existing := []Entry{gridEntry("a", "CS101", Monday, "9:00 AM", "11:00 AM")}

	candidate, err := SlotRange("11:00 AM", "1:00 PM")
	require.NoError(t, err)

	conflict, err := FindConflict(Monday, candidate, existing, "")
	require.NoError(t, err)
	assert.Nil(t, conflict)
}

func TestFindConflictIgnoresOtherDays(t *testing.T) {
	existing := []Entry{gridEntry("a", "CS101", Tuesday, "9:00 AM", "11:00 AM")}

	candidate, err := SlotRange("9:00 AM", "11:00 AM")
	require.NoError(t, err)

	conflict, err := FindConflict(Monday, candidate, existing, "")
	require.NoError(t, err)
	assert.Nil(t, conflict)
}

func TestFindConflictExcludesEditedEntry(t *testing.T) {
	existing := []Entry{gridEntry("a", "CS101", Monday, "9:00 AM", "11:00 AM")}

	candidate, err := SlotRange("9:00 AM", "10:00 AM")
	require.NoError(t, err)

	conflict, err := FindConflict(Monday, candidate, existing, "a")
	require.NoError(t, err)
	assert.Nil(t, conflict)
}

func TestFindConflictReportsEarliestCandidateSlot(t *testing.T) {
	// Both existing entries overlap; the first candidate slot decides which
	// conflict is reported, then insertion order breaks ties.
	existing := []Entry{
		gridEntry("late", "PHYS", Monday, "10:00 AM", "12:00 PM"),
		gridEntry("early", "CHEM", Monday, "9:00 AM", "10:00 AM"),
	}

	candidate, err := SlotRange("9:00 AM", "11:00 AM")
	require.NoError(t, err)

	conflict, err := FindConflict(Monday, candidate, existing, "")
	require.NoError(t, err)
	require.NotNil(t, conflict)
	assert.Equal(t, "early", conflict.Entry.ID)
	assert.Equal(t, "9:00 AM", conflict.Slot)
}

func TestFindConflictRejectsUnknownCandidateSlot(t *testing.T) {
	_, err := FindConflict(Monday, []string{"9:30 AM"}, nil, "")
	require.Error(t, err)
	assert.True(t, appErrors.Is(err, appErrors.ErrUnknownSlot))
}

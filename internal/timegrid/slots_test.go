package timegrid

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appErrors "github.com/timecraft-app/timecraft-api/pkg/errors"
)

func TestSlotsReturnsIndependentCopy(t *testing.T) {
	slots := Slots()
	require.Equal(t, "7:00 AM", slots[0])
	slots[0] = "mutated"

	again := Slots()
	assert.Equal(t, "7:00 AM", again[0])
}

func TestSlotsGridShape(t *testing.T) {
	slots := Slots()
	require.Len(t, slots, SlotCount())
	assert.Equal(t, "7:00 AM", slots[0])
	assert.Equal(t, "6:00 PM", slots[len(slots)-1])

	// Consecutive labels are exactly one hour apart.
	for i := 1; i < len(slots); i++ {
		prev, err := SlotMinutes(slots[i-1])
		require.NoError(t, err)
		cur, err := SlotMinutes(slots[i])
		require.NoError(t, err)
		assert.Equal(t, 60, cur-prev)
	}
}

func TestSlotIndex(t *testing.T) {
	idx, err := SlotIndex("9:00 AM")
	require.NoError(t, err)
	assert.Equal(t, 2, idx)

	_, err = SlotIndex("9:30 AM")
	require.Error(t, err)
	assert.True(t, appErrors.Is(err, appErrors.ErrUnknownSlot))
}

func TestNextLabel(t *testing.T) {
	next, err := NextLabel("11:00 AM")
	require.NoError(t, err)
	assert.Equal(t, "12:00 PM", next)

	_, err = NextLabel("6:00 PM")
	require.Error(t, err)
	assert.True(t, appErrors.Is(err, appErrors.ErrOutOfRange))
}

func TestSlotRange(t *testing.T) {
	run, err := SlotRange("9:00 AM", "11:00 AM")
	require.NoError(t, err)
	assert.Equal(t, []string{"9:00 AM", "10:00 AM"}, run)

	run, err = SlotRange("5:00 PM", "6:00 PM")
	require.NoError(t, err)
	assert.Equal(t, []string{"5:00 PM"}, run)
}

func TestSlotRangeRejectsInvertedAndEqual(t *testing.T) {
	_, err := SlotRange("11:00 AM", "9:00 AM")
	require.Error(t, err)
	assert.True(t, appErrors.Is(err, appErrors.ErrInvalidRange))

	_, err = SlotRange("9:00 AM", "9:00 AM")
	require.Error(t, err)
	assert.True(t, appErrors.Is(err, appErrors.ErrInvalidRange))
}

func TestSlotRangeRejectsUnknownLabels(t *testing.T) {
	_, err := SlotRange("6:30 AM", "9:00 AM")
	require.Error(t, err)
	assert.True(t, appErrors.Is(err, appErrors.ErrUnknownSlot))

	_, err = SlotRange("9:00 AM", "7:30 PM")
	require.Error(t, err)
	assert.True(t, appErrors.Is(err, appErrors.ErrUnknownSlot))
}

func TestSlotRangeRejectsRunPastFinalSlot(t *testing.T) {
	// A class ending at 7:00 PM would occupy the 6:00 PM slot, which has no
	// next label.
	_, err := SlotRange("5:00 PM", "7:00 PM")
	require.Error(t, err)
	assert.True(t, appErrors.Is(err, appErrors.ErrOutOfRange))
}

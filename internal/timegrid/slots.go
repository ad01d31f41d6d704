package timegrid

import (
	"fmt"

	appErrors "github.com/timecraft-app/timecraft-api/pkg/errors"
)

// canonicalSlots is the fixed daily grid shared by every weekday. Each label
// marks the start of a one-hour slot; a class occupying a slot runs from the
// label until the next one.
var canonicalSlots = [...]string{
	"7:00 AM",
	"8:00 AM",
	"9:00 AM",
	"10:00 AM",
	"11:00 AM",
	"12:00 PM",
	"1:00 PM",
	"2:00 PM",
	"3:00 PM",
	"4:00 PM",
	"5:00 PM",
	"6:00 PM",
}

// Slots returns a copy of the canonical slot labels in grid order.
func Slots() []string {
	out := make([]string, len(canonicalSlots))
	copy(out, canonicalSlots[:])
	return out
}

// SlotCount is the number of slots in the daily grid.
func SlotCount() int {
	return len(canonicalSlots)
}

// SlotIndex returns the position of a label in the canonical grid.
func SlotIndex(label string) (int, error) {
	for i, s := range canonicalSlots {
		if s == label {
			return i, nil
		}
	}
	return 0, appErrors.Clone(appErrors.ErrUnknownSlot, fmt.Sprintf("unknown time slot %q", label))
}

// NextLabel returns the label following the given slot. The label after a
// class's last occupied slot is the class's true end time, so the final slot
// of the grid has no next label and cannot be occupied.
func NextLabel(label string) (string, error) {
	idx, err := SlotIndex(label)
	if err != nil {
		return "", err
	}
	if idx == len(canonicalSlots)-1 {
		return "", appErrors.Clone(appErrors.ErrOutOfRange, fmt.Sprintf("no slot after %q", label))
	}
	return canonicalSlots[idx+1], nil
}

// gridEndLabel is the wall-clock end of the grid's final slot. It is not a
// slot label itself: a range ending here would occupy the final slot, which
// has no next label.
func gridEndLabel() string {
	mins, _ := ParseMinutes(canonicalSlots[len(canonicalSlots)-1])
	return ClockFromMinutes(mins + 60).String()
}

// SlotMinutes returns the start of the slot in minutes since midnight.
func SlotMinutes(label string) (int, error) {
	if _, err := SlotIndex(label); err != nil {
		return 0, err
	}
	return ParseMinutes(label)
}

// SlotRange expands the half-open label range [start, end) into the
// contiguous run of occupied slots. The end label is the slot after the last
// occupied one and is not part of the run.
func SlotRange(start, end string) ([]string, error) {
	startIdx, err := SlotIndex(start)
	if err != nil {
		return nil, err
	}
	endIdx, err := SlotIndex(end)
	if err != nil {
		if end == gridEndLabel() {
			last := canonicalSlots[len(canonicalSlots)-1]
			return nil, appErrors.Clone(appErrors.ErrOutOfRange, fmt.Sprintf("no slot after %q", last))
		}
		return nil, err
	}
	if startIdx >= endIdx {
		return nil, appErrors.Clone(appErrors.ErrInvalidRange, fmt.Sprintf("end time %q must be after start time %q", end, start))
	}
	run := make([]string, 0, endIdx-startIdx)
	for i := startIdx; i < endIdx; i++ {
		run = append(run, canonicalSlots[i])
	}
	return run, nil
}

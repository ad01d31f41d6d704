package timegrid

import (
	"sort"
	"time"
)

// NextClass tags an upcoming entry with the day it occurs on, which may
// differ from today.
type NextClass struct {
	Entry Entry    `json:"entry"`
	Day   ClassDay `json:"day"`
}

// Resolution answers "what is happening now and what comes next" for a grid
// snapshot.
type Resolution struct {
	Current *Entry     `json:"current,omitempty"`
	Next    *NextClass `json:"next,omitempty"`
}

// Resolve finds the entry occupying the current instant and the next
// upcoming entry, scanning forward across day boundaries for at most one
// full week. An entry is current while now falls in the half-open interval
// from its first slot to the label after its last slot. The same entry is
// never reported as both current and next.
func Resolve(now time.Time, entries []Entry) (Resolution, error) {
	var res Resolution
	if len(entries) == 0 {
		return res, nil
	}

	minutesNow := now.Hour()*60 + now.Minute()
	today, isClassDay := ClassDayOf(now.Weekday())

	if isClassDay {
		todays, err := entriesOn(today, entries)
		if err != nil {
			return Resolution{}, err
		}
		for i := range todays {
			start, end, err := occupiedInterval(todays[i].entry)
			if err != nil {
				return Resolution{}, err
			}
			if minutesNow >= start && minutesNow < end {
				current := todays[i].entry
				res.Current = &current
				break
			}
		}
		for i := range todays {
			if todays[i].startMinutes <= minutesNow {
				continue
			}
			if res.Current != nil && todays[i].entry.ID == res.Current.ID {
				continue
			}
			res.Next = &NextClass{Entry: todays[i].entry, Day: today}
			break
		}
		if res.Next != nil {
			return res, nil
		}
	}

	// No same-day candidate: walk forward one full cycle of the class week.
	day := Monday
	if isClassDay {
		day = today.Next()
	}
	for i := 0; i < len(classDayLabels); i++ {
		candidates, err := entriesOn(day, entries)
		if err != nil {
			return Resolution{}, err
		}
		for j := range candidates {
			if res.Current != nil && candidates[j].entry.ID == res.Current.ID {
				continue
			}
			res.Next = &NextClass{Entry: candidates[j].entry, Day: day}
			return res, nil
		}
		day = day.Next()
	}
	return res, nil
}

type sortedEntry struct {
	entry        Entry
	startMinutes int
	startIndex   int
}

// entriesOn filters a snapshot down to one day, sorted by first-slot index.
func entriesOn(day ClassDay, entries []Entry) ([]sortedEntry, error) {
	var out []sortedEntry
	for _, e := range entries {
		if e.Day != day || len(e.Slots) == 0 {
			continue
		}
		idx, err := SlotIndex(e.Slots[0])
		if err != nil {
			return nil, err
		}
		mins, err := SlotMinutes(e.Slots[0])
		if err != nil {
			return nil, err
		}
		out = append(out, sortedEntry{entry: e, startMinutes: mins, startIndex: idx})
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].startIndex < out[j].startIndex
	})
	return out, nil
}

// occupiedInterval returns the half-open [start, end) occupancy of an entry
// in minutes since midnight. The end is the start of the label following the
// last occupied slot.
func occupiedInterval(e Entry) (int, int, error) {
	start, err := SlotMinutes(e.Slots[0])
	if err != nil {
		return 0, 0, err
	}
	endLabel, err := NextLabel(e.Slots[len(e.Slots)-1])
	if err != nil {
		return 0, 0, err
	}
	end, err := SlotMinutes(endLabel)
	if err != nil {
		return 0, 0, err
	}
	return start, end, nil
}

package timegrid

// Entry is the engine's view of a scheduled class: one weekday plus a
// contiguous run of occupied slots. The engine never reads anything else, so
// callers can project their storage records into it.
type Entry struct {
	ID      string   `json:"id"`
	Subject string   `json:"subject"`
	Day     ClassDay `json:"day"`
	Slots   []string `json:"slots"`
}

// Conflict names the existing entry and the slot where a candidate overlaps.
type Conflict struct {
	Entry Entry  `json:"entry"`
	Slot  string `json:"slot"`
}

// FindConflict scans existing entries for one occupying any of the candidate
// slots on the candidate day. Entries are scanned slot-first in the order
// given, so with insertion-ordered input the reported conflict is
// deterministic. excludeID skips the entry being edited.
func FindConflict(day ClassDay, slots []string, entries []Entry, excludeID string) (*Conflict, error) {
	for _, slot := range slots {
		if _, err := SlotIndex(slot); err != nil {
			return nil, err
		}
		for _, entry := range entries {
			if excludeID != "" && entry.ID == excludeID {
				continue
			}
			if entry.Day != day {
				continue
			}
			for _, occupied := range entry.Slots {
				if occupied == slot {
					return &Conflict{Entry: entry, Slot: slot}, nil
				}
			}
		}
	}
	return nil, nil
}

package tickets

// PositionOf returns the 1-based index of id within the sequence. A ticket
// absent from the sequence reports position 1; callers supplying an explicit
// ticket id may land outside the filtered view and the screen still needs a
// position to show.
func PositionOf(seq []Ticket, id int64) int {
	for i, t := range seq {
		if t.ID == id {
			return i + 1
		}
	}
	return 1
}

// NextAfter returns the element following currentID in the sequence,
// wrapping to the first element when currentID is nil, absent, or last.
// The sequence must be non-empty.
func NextAfter(seq []Ticket, currentID *int64) Ticket {
	if currentID != nil {
		for i, t := range seq {
			if t.ID == *currentID && i < len(seq)-1 {
				return seq[i+1]
			}
		}
	}
	return seq[0]
}

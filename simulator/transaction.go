package simulator

import "sort"

// Edit is a single non-overlapping change to the buffer, expressed in
// pre-image char coordinates. A nil Replacement deletes [Start, End).
type Edit struct {
	Start       int
	End         int
	Replacement *string
}

// Transaction is an immutable, ordered set of non-overlapping edits applied
// atomically to a buffer. Grounded on the reference trainer's
// apply_transaction, which pushes the pre-image onto history before
// mutating — see history.go.
type Transaction struct {
	Edits []Edit
}

// singleEdit builds a one-edit transaction, the common case for every
// simulator primitive in §4.2.
func singleEdit(start, end int, replacement *string) Transaction {
	return Transaction{Edits: []Edit{{Start: start, End: end, Replacement: replacement}}}
}

func replacementOf(s string) *string { return &s }

func (t Transaction) validate(lenChars int) error {
	sorted := append([]Edit{}, t.Edits...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Start < sorted[j].Start })
	prevEnd := -1
	for _, e := range sorted {
		if e.Start < 0 || e.End < e.Start || e.End > lenChars {
			return newSimError(ErrStateCorruption, ErrInvalidPosition)
		}
		if e.Start < prevEnd {
			return newSimError(ErrStateCorruption, ErrOverlappingEdits)
		}
		prevEnd = e.End
	}
	return nil
}

func (t Transaction) sortedDescending() []Edit {
	sorted := append([]Edit{}, t.Edits...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Start > sorted[j].Start })
	return sorted
}

package summarize

import "strings"

// Accumulator reconciles a stream of possibly overlapping text fragments
// into non-overlapping deltas. Generation backends differ in what they
// stream: some send true deltas, some resend the cumulative text so far,
// and some retransmit a suffix that overlaps what was already sent. The
// accumulator collapses all three so no character is ever emitted twice.
//
// Not safe for concurrent use; one generation request owns one Accumulator.
type Accumulator struct {
	collected string
}

// NewAccumulator returns an empty accumulator.
func NewAccumulator() *Accumulator {
	return &Accumulator{}
}

// Add absorbs one fragment and returns the newly seen text, which is empty
// when the fragment is a duplicate or a replay of earlier content.
func (a *Accumulator) Add(fragment string) string {
	if fragment == "" {
		return ""
	}
	if a.collected == "" {
		a.collected = fragment
		return fragment
	}
	if strings.HasPrefix(fragment, a.collected) {
		delta := fragment[len(a.collected):]
		a.collected = fragment
		return delta
	}
	if strings.Contains(a.collected, fragment) {
		return ""
	}
	// Longest suffix of collected that prefixes the fragment.
	overlap := 0
	limit := len(a.collected)
	if len(fragment) < limit {
		limit = len(fragment)
	}
	for i := 1; i <= limit; i++ {
		if a.collected[len(a.collected)-i:] == fragment[:i] {
			overlap = i
		}
	}
	delta := fragment[overlap:]
	a.collected += delta
	return delta
}

// Text returns everything accumulated so far.
func (a *Accumulator) Text() string {
	return a.collected
}

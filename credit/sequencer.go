package credit

import "sort"

// =============================================================================
// REPAYMENT SEQUENCER - Folding events over a schedule
// =============================================================================

// ApplyAll folds early-repayment events over a base schedule, left to
// right, each event re-amortizing the tail produced by the previous
// one. Events must already be sorted by effective date; the sequencer
// does not re-sort, so the caller's insertion order decides ties and
// the result depends on event order when dates interleave.
//
// An empty event list returns the base schedule unchanged.
func ApplyAll(base Schedule, events []Event, params Params) (Schedule, error) {
	schedule := base
	for _, event := range events {
		next, err := Reamortize(schedule, event, params)
		if err != nil {
			return nil, err
		}
		schedule = next
	}
	return schedule, nil
}

// SortEvents orders events by effective date ascending, keeping
// insertion order between events on the same date. Boundary callers
// run this on insert; the engine itself assumes sorted input.
func SortEvents(events []Event) {
	sort.SliceStable(events, func(i, j int) bool {
		return events[i].Date.Before(events[j].Date)
	})
}

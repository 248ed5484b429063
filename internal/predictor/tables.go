package predictor

import "github.com/danielpatrickdp/adaptive-rps/internal/move"

// #region frequency-table
// FrequencyTable counts moves. Zero counts are removed so the table stays
// sparse.
type FrequencyTable struct {
	counts map[move.Move]int
	total  int
}

// NewFrequencyTable returns an empty table.
func NewFrequencyTable() *FrequencyTable {
	return &FrequencyTable{counts: make(map[move.Move]int)}
}

// Inc adds one occurrence of m.
func (f *FrequencyTable) Inc(m move.Move) {
	f.counts[m]++
	f.total++
}

// Dec removes one occurrence of m. Decrementing an absent move is a no-op.
func (f *FrequencyTable) Dec(m move.Move) {
	c, ok := f.counts[m]
	if !ok {
		return
	}
	if c <= 1 {
		delete(f.counts, m)
	} else {
		f.counts[m] = c - 1
	}
	f.total--
}

// Count returns the occurrences of m.
func (f *FrequencyTable) Count(m move.Move) int {
	return f.counts[m]
}

// Total returns the sum of all counts.
func (f *FrequencyTable) Total() int {
	return f.total
}

// Empty reports whether no move has been counted.
func (f *FrequencyTable) Empty() bool {
	return f.total == 0
}

// Top returns the most frequent move, breaking ties by move order.
func (f *FrequencyTable) Top() (move.Move, bool) {
	var best move.Move
	bestCount := 0
	for _, m := range move.Moves() {
		if c := f.counts[m]; c > bestCount {
			best, bestCount = m, c
		}
	}
	return best, bestCount > 0
}

// Snapshot copies the non-zero counts.
func (f *FrequencyTable) Snapshot() map[move.Move]int {
	out := make(map[move.Move]int, len(f.counts))
	for m, c := range f.counts {
		out[m] = c
	}
	return out
}

// #endregion frequency-table

// #region transition-table
// TransitionTable counts which move followed each previous move. Counts only
// grow.
type TransitionTable struct {
	rows map[move.Move]*FrequencyTable
}

// NewTransitionTable returns an empty table.
func NewTransitionTable() *TransitionTable {
	return &TransitionTable{rows: make(map[move.Move]*FrequencyTable)}
}

// Record counts one prev -> next transition.
func (t *TransitionTable) Record(prev, next move.Move) {
	row, ok := t.rows[prev]
	if !ok {
		row = NewFrequencyTable()
		t.rows[prev] = row
	}
	row.Inc(next)
}

// Predict returns the most frequent successor of prev.
func (t *TransitionTable) Predict(prev move.Move) (move.Move, bool) {
	row, ok := t.rows[prev]
	if !ok {
		return 0, false
	}
	return row.Top()
}

// Row returns a copy of the successor counts for prev.
func (t *TransitionTable) Row(prev move.Move) map[move.Move]int {
	row, ok := t.rows[prev]
	if !ok {
		return map[move.Move]int{}
	}
	return row.Snapshot()
}

// Snapshot copies every row.
func (t *TransitionTable) Snapshot() map[move.Move]map[move.Move]int {
	out := make(map[move.Move]map[move.Move]int, len(t.rows))
	for prev, row := range t.rows {
		out[prev] = row.Snapshot()
	}
	return out
}

// #endregion transition-table

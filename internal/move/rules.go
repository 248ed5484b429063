package move

// #region rules
// Rules holds the cyclic dominance relation. It is a value type with no
// exported fields, so a Rules can be shared between sessions without
// cross-talk.
type Rules struct {
	defeats [Count]Move // defeats[m] is the move m beats
	counter [Count]Move // counter[m] is the move that beats m
}

// Standard returns the classic relation: rock beats scissors, scissors beats
// paper, paper beats rock.
func Standard() Rules {
	var r Rules
	r.defeats[Rock] = Scissors
	r.defeats[Scissors] = Paper
	r.defeats[Paper] = Rock
	for _, m := range Moves() {
		r.counter[r.defeats[m]] = m
	}
	return r
}

// Valid reports whether r is a complete cyclic relation: every move beats
// exactly one other move and is beaten by exactly one. The zero Rules is not
// valid; build one with Standard.
func (r Rules) Valid() bool {
	for _, m := range Moves() {
		d := r.defeats[m]
		if !d.Valid() || d == m || r.counter[d] != m || r.counter[m] == d {
			return false
		}
	}
	return true
}

// Moves returns every move in tie-break order.
func Moves() []Move {
	return []Move{Rock, Paper, Scissors}
}

// #endregion rules

// #region relation
// Outcome compares first against second.
func (r Rules) Outcome(first, second Move) Outcome {
	switch {
	case first == second:
		return Tie
	case r.defeats[first] == second:
		return FirstWins
	default:
		return SecondWins
	}
}

// Defeats returns the move that m beats.
func (r Rules) Defeats(m Move) Move {
	return r.defeats[m]
}

// CounterOf returns the move that beats m.
func (r Rules) CounterOf(m Move) Move {
	return r.counter[m]
}

// #endregion relation

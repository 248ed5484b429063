package move

import "fmt"

// #region move
// Move is one of the three hand shapes. The declaration order is the fixed
// ordering used for deterministic tie-breaks.
type Move uint8

const (
	Rock Move = iota
	Paper
	Scissors
)

// Count is the number of moves in the cycle.
const Count = 3

var moveNames = [Count]string{"rock", "paper", "scissors"}

// Valid reports whether m is one of the enumerated moves.
func (m Move) Valid() bool {
	return m < Count
}

func (m Move) String() string {
	if !m.Valid() {
		return fmt.Sprintf("move(%d)", uint8(m))
	}
	return moveNames[m]
}

// FromName returns the move with the given canonical name.
func FromName(name string) (Move, error) {
	for i, n := range moveNames {
		if n == name {
			return Move(i), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnrecognized, name)
}

// MarshalText encodes a move by its canonical name.
func (m Move) MarshalText() ([]byte, error) {
	if !m.Valid() {
		return nil, fmt.Errorf("invalid move %d", uint8(m))
	}
	return []byte(moveNames[m]), nil
}

// UnmarshalText decodes a canonical move name.
func (m *Move) UnmarshalText(b []byte) error {
	v, err := FromName(string(b))
	if err != nil {
		return err
	}
	*m = v
	return nil
}

// #endregion move

// #region outcome
// Outcome is the result of comparing two moves.
type Outcome uint8

const (
	Tie Outcome = iota
	FirstWins
	SecondWins
)

func (o Outcome) String() string {
	switch o {
	case Tie:
		return "tie"
	case FirstWins:
		return "first_wins"
	case SecondWins:
		return "second_wins"
	}
	return fmt.Sprintf("outcome(%d)", uint8(o))
}

// Invert swaps the perspective of the two players.
func (o Outcome) Invert() Outcome {
	switch o {
	case FirstWins:
		return SecondWins
	case SecondWins:
		return FirstWins
	}
	return o
}

// #endregion outcome

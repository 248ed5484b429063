package move

import (
	"errors"
	"fmt"
	"strings"
)

// #region errors
var (
	// ErrUnrecognized is returned when raw text matches no synonym.
	ErrUnrecognized = errors.New("unrecognized move")
	// ErrAmbiguousSynonym is returned when one synonym names two moves.
	ErrAmbiguousSynonym = errors.New("ambiguous synonym")
	// ErrInvalidRules is returned when a Rules value is not a full cycle.
	ErrInvalidRules = errors.New("invalid rules")
)

// #endregion errors

// #region synonyms
// DefaultSynonyms returns the accepted spellings for each move: full name,
// plural, first letter, short prefix and the stone/scissor variants.
func DefaultSynonyms() map[Move][]string {
	return map[Move][]string{
		Rock:     {"rock", "rocks", "r", "ro", "stone", "stones", "st"},
		Paper:    {"paper", "papers", "p", "pa", "sheet"},
		Scissors: {"scissors", "scissor", "s", "sc", "sci"},
	}
}

// #endregion synonyms

// #region parser
// Parser normalizes free text into a Move.
type Parser struct {
	lookup map[string]Move
}

// NewParser builds a parser from a synonym table. Synonyms are trimmed and
// lowercased; a synonym listed under two different moves is an error.
func NewParser(synonyms map[Move][]string) (*Parser, error) {
	lookup := make(map[string]Move)
	for _, m := range Moves() {
		for _, raw := range synonyms[m] {
			key := normalize(raw)
			if key == "" {
				continue
			}
			if prev, ok := lookup[key]; ok && prev != m {
				return nil, fmt.Errorf("%w: %q names both %s and %s", ErrAmbiguousSynonym, key, prev, m)
			}
			lookup[key] = m
		}
	}
	return &Parser{lookup: lookup}, nil
}

// Parse maps raw input to a move.
func (p *Parser) Parse(raw string) (Move, error) {
	m, ok := p.lookup[normalize(raw)]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnrecognized, strings.TrimSpace(raw))
	}
	return m, nil
}

func normalize(s string) string {
	return strings.ToLower(strings.Join(strings.Fields(s), " "))
}

// #endregion parser

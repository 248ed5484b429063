package replay

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/danielpatrickdp/adaptive-rps/internal/move"
	"github.com/danielpatrickdp/adaptive-rps/internal/predictor"
)

// #region fixture-types

// Fixture is the top-level JSON structure for a replay fixture.
type Fixture struct {
	Description     string                  `json:"description"`
	SessionID       string                  `json:"session_id,omitempty"`
	Seed            uint64                  `json:"seed"`
	Config          predictor.Config        `json:"config"`
	HumanMoves      []move.Move             `json:"human_moves"`
	ExpectedResults []FixtureExpectedResult `json:"expected_results"`
}

// FixtureExpectedResult pins the machine move, and optionally the branch,
// for one round. Rounds not listed are not checked.
type FixtureExpectedResult struct {
	Round   int       `json:"round"`
	Machine move.Move `json:"machine_move"`
	Branch  string    `json:"branch,omitempty"`
}

// Mismatch describes one expectation that a replay did not meet.
type Mismatch struct {
	Round    int
	Field    string
	Expected string
	Got      string
}

func (m Mismatch) String() string {
	return fmt.Sprintf("round %d: %s expected %s, got %s", m.Round, m.Field, m.Expected, m.Got)
}

// #endregion fixture-types

// #region fixture-loader

// LoadFixture reads and parses a JSON fixture file.
func LoadFixture(path string) (*Fixture, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read fixture %s: %w", path, err)
	}
	var f Fixture
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse fixture %s: %w", path, err)
	}
	return &f, nil
}

// WriteFixture writes f as indented JSON.
func WriteFixture(path string, f *Fixture) error {
	data, err := json.MarshalIndent(f, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal fixture: %w", err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("write fixture %s: %w", path, err)
	}
	return nil
}

// Run replays the fixture with its own seed and config.
func (f *Fixture) Run() ([]ReplayResult, error) {
	return Replay(f.Config, predictor.SeededSource(f.Seed), f.HumanMoves)
}

// Check compares results against the fixture's expectations.
func (f *Fixture) Check(results []ReplayResult) []Mismatch {
	var out []Mismatch
	for _, e := range f.ExpectedResults {
		if e.Round < 1 || e.Round > len(results) {
			out = append(out, Mismatch{Round: e.Round, Field: "round", Expected: "present", Got: "missing"})
			continue
		}
		r := results[e.Round-1]
		if r.Machine != e.Machine {
			out = append(out, Mismatch{Round: e.Round, Field: "machine_move", Expected: e.Machine.String(), Got: r.Machine.String()})
		}
		if e.Branch != "" && string(r.Branch) != e.Branch {
			out = append(out, Mismatch{Round: e.Round, Field: "branch", Expected: e.Branch, Got: string(r.Branch)})
		}
	}
	return out
}

// #endregion fixture-loader

package replay

import (
	"errors"
	"testing"

	"github.com/danielpatrickdp/adaptive-rps/internal/eval"
	"github.com/danielpatrickdp/adaptive-rps/internal/move"
	"github.com/danielpatrickdp/adaptive-rps/internal/predictor"
)

func humans(n int, pattern ...move.Move) []move.Move {
	out := make([]move.Move, n)
	for i := range out {
		out[i] = pattern[i%len(pattern)]
	}
	return out
}

// 1. Same seed, same config, same humans → identical machine moves.
func TestReplay_Deterministic(t *testing.T) {
	cfg := predictor.DefaultConfig()
	seq := humans(60, move.Rock, move.Rock, move.Scissors, move.Paper)

	a, err := Replay(cfg, predictor.SeededSource(99), seq)
	if err != nil {
		t.Fatalf("Replay: %v", err)
	}
	b, _ := Replay(cfg, predictor.SeededSource(99), seq)
	for i := range a {
		if a[i].Machine != b[i].Machine || a[i].Branch != b[i].Branch {
			t.Fatalf("round %d diverged: %+v vs %+v", i+1, a[i], b[i])
		}
	}
}

// 2. Invalid config surfaces before any round is played.
func TestReplay_InvalidConfig(t *testing.T) {
	cfg := predictor.DefaultConfig()
	cfg.ExplorationRate = 1.5
	if _, err := Replay(cfg, nil, humans(3, move.Rock)); !errors.Is(err, predictor.ErrInvalidConfig) {
		t.Fatalf("expected ErrInvalidConfig, got %v", err)
	}
}

// 3. First round is always a fallback or exploration: nothing is known yet.
func TestReplay_FirstRoundHasNoPrediction(t *testing.T) {
	for seed := uint64(0); seed < 20; seed++ {
		res, _ := Replay(predictor.DefaultConfig(), predictor.SeededSource(seed), humans(1, move.Paper))
		if res[0].HasPrediction {
			t.Fatalf("seed %d: first round carried a prediction via %s", seed, res[0].Branch)
		}
	}
}

// 4. Against a fixed cycle the greedy predictor wins nearly every round.
func TestReplay_ExploitsCycle(t *testing.T) {
	cfg := predictor.DefaultConfig()
	cfg.ExplorationRate = 0
	cfg.MarkovWeight = 1
	res, _ := Replay(cfg, predictor.SeededSource(5), humans(90, move.Rock, move.Paper, move.Scissors))

	s := Summarize(res)
	if s.TotalRounds != 90 {
		t.Fatalf("expected 90 rounds, got %d", s.TotalRounds)
	}
	if s.Tally.MachineWins < 85 {
		t.Fatalf("expected the machine to dominate a cycle, got %+v", s.Tally)
	}
	if s.Branches[predictor.BranchMarkov] < 85 {
		t.Fatalf("expected markov to dominate, got %v", s.Branches)
	}

	r := eval.NewEvalHarness(eval.DefaultEvalConfig(), move.Standard()).Run(Samples(res))
	if !r.Passed {
		t.Fatalf("expected eval pass, got %s", r.Reason)
	}
}

// 5. Summarize counts every outcome.
func TestSummarize(t *testing.T) {
	res := []ReplayResult{
		{Outcome: move.FirstWins, Branch: predictor.BranchExplore},
		{Outcome: move.SecondWins, Branch: predictor.BranchMarkov},
		{Outcome: move.Tie, Branch: predictor.BranchMarkov},
	}
	s := Summarize(res)
	if s.Tally.HumanWins != 1 || s.Tally.MachineWins != 1 || s.Tally.Ties != 1 {
		t.Fatalf("unexpected tally %+v", s.Tally)
	}
	if s.Branches[predictor.BranchMarkov] != 2 {
		t.Fatalf("unexpected branches %v", s.Branches)
	}
}

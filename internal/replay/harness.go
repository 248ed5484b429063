package replay

import (
	"github.com/danielpatrickdp/adaptive-rps/internal/eval"
	"github.com/danielpatrickdp/adaptive-rps/internal/game"
	"github.com/danielpatrickdp/adaptive-rps/internal/move"
	"github.com/danielpatrickdp/adaptive-rps/internal/predictor"
)

// #region types
// ReplayResult captures one replayed round.
type ReplayResult struct {
	Round         int
	Human         move.Move
	Machine       move.Move
	Outcome       move.Outcome // human's side
	Branch        predictor.Branch
	Predicted     move.Move
	HasPrediction bool
}

// ReplaySummary provides aggregate stats from a replay run.
type ReplaySummary struct {
	TotalRounds int
	Tally       game.Tally
	Branches    map[predictor.Branch]int
}

// #endregion types

// #region replay
// Replay drives a fresh predictor through a recorded human move sequence.
// With the same config and an identically seeded src it reproduces the
// machine moves of the original session.
func Replay(config predictor.Config, src predictor.Source, humans []move.Move) ([]ReplayResult, error) {
	g, err := game.New(config, move.Standard(), src)
	if err != nil {
		return nil, err
	}

	results := make([]ReplayResult, 0, len(humans))
	for _, h := range humans {
		r := g.Play(h)
		results = append(results, ReplayResult{
			Round:         r.Number,
			Human:         r.Human,
			Machine:       r.Machine,
			Outcome:       r.Outcome,
			Branch:        r.Choice.Branch,
			Predicted:     r.Choice.Predicted,
			HasPrediction: r.Choice.HasPrediction,
		})
	}
	return results, nil
}

// Summarize computes aggregate stats from replay results.
func Summarize(results []ReplayResult) ReplaySummary {
	s := ReplaySummary{
		TotalRounds: len(results),
		Branches:    make(map[predictor.Branch]int),
	}
	for _, r := range results {
		s.Branches[r.Branch]++
		switch r.Outcome {
		case move.FirstWins:
			s.Tally.HumanWins++
		case move.SecondWins:
			s.Tally.MachineWins++
		default:
			s.Tally.Ties++
		}
	}
	return s
}

// Samples converts results for the eval harness.
func Samples(results []ReplayResult) []eval.Sample {
	out := make([]eval.Sample, len(results))
	for i, r := range results {
		out[i] = eval.Sample{
			Human:         r.Human,
			Machine:       r.Machine,
			Predicted:     r.Predicted,
			HasPrediction: r.HasPrediction,
		}
	}
	return out
}

// #endregion replay

package bot

import (
	"github.com/danielpatrickdp/adaptive-rps/internal/eval"
	"github.com/danielpatrickdp/adaptive-rps/internal/game"
)

// Match plays rounds of s against g and returns every round in order. A
// non-positive rounds plays nothing.
func Match(g *game.Game, s Strategy, rounds int) []game.Round {
	if rounds <= 0 {
		return nil
	}
	out := make([]game.Round, 0, rounds)
	var last game.Round
	for i := 0; i < rounds; i++ {
		r := g.Play(s.Next(last.Machine, i > 0))
		out = append(out, r)
		last = r
	}
	return out
}

// Samples converts played rounds for the eval harness.
func Samples(rounds []game.Round) []eval.Sample {
	out := make([]eval.Sample, len(rounds))
	for i, r := range rounds {
		out[i] = eval.Sample{
			Human:         r.Human,
			Machine:       r.Machine,
			Predicted:     r.Choice.Predicted,
			HasPrediction: r.Choice.HasPrediction,
		}
	}
	return out
}

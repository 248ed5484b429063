package bot

import (
	"testing"

	"github.com/danielpatrickdp/adaptive-rps/internal/eval"
	"github.com/danielpatrickdp/adaptive-rps/internal/game"
	"github.com/danielpatrickdp/adaptive-rps/internal/move"
	"github.com/danielpatrickdp/adaptive-rps/internal/predictor"
)

func greedyGame(t *testing.T, seed uint64) *game.Game {
	t.Helper()
	cfg := predictor.DefaultConfig()
	cfg.ExplorationRate = 0
	cfg.MarkovWeight = 1
	g, err := game.New(cfg, move.Standard(), predictor.SeededSource(seed))
	if err != nil {
		t.Fatalf("game.New: %v", err)
	}
	return g
}

func TestMatchAgainstPredictableStrategies(t *testing.T) {
	for _, name := range []string{"constant", "cycle", "copy-last"} {
		t.Run(name, func(t *testing.T) {
			s, _ := ByName(name, nil)
			rounds := Match(greedyGame(t, 11), s, 200)
			if len(rounds) != 200 {
				t.Fatalf("expected 200 rounds, got %d", len(rounds))
			}
			res := eval.NewEvalHarness(eval.DefaultEvalConfig(), move.Standard()).Run(Samples(rounds))
			if !res.Passed {
				t.Fatalf("expected the predictor to beat %s: %s", name, res.Reason)
			}
			m, _ := res.Metric(eval.MetricMachineWinRate)
			if m.Value < 0.4 {
				t.Fatalf("machine win rate %.3f too low against %s", m.Value, name)
			}
		})
	}
}

func TestMatchFeedsLastMachineMove(t *testing.T) {
	s, _ := ByName("copy-last", nil)
	rounds := Match(greedyGame(t, 5), s, 20)
	if rounds[0].Human != move.Scissors {
		t.Fatalf("expected opening scissors, got %s", rounds[0].Human)
	}
	for i := 1; i < len(rounds); i++ {
		if rounds[i].Human != rounds[i-1].Machine {
			t.Fatalf("round %d: human %s should copy machine %s", i+1, rounds[i].Human, rounds[i-1].Machine)
		}
	}
}

func TestMatchNonPositiveRounds(t *testing.T) {
	s, _ := ByName("constant", nil)
	g := greedyGame(t, 1)
	for _, n := range []int{0, -5} {
		if got := Match(g, s, n); len(got) != 0 {
			t.Fatalf("rounds=%d: expected no rounds, got %d", n, len(got))
		}
	}
	if g.Tally().Rounds() != 0 {
		t.Fatalf("expected no rounds played, got %+v", g.Tally())
	}
}

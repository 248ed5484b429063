package bot

import (
	"context"
	"testing"

	"github.com/danielpatrickdp/adaptive-rps/internal/eval"
	"github.com/danielpatrickdp/adaptive-rps/internal/move"
	"github.com/danielpatrickdp/adaptive-rps/internal/predictor"
)

func simConfig(seed uint64, names ...string) SimConfig {
	return SimConfig{
		Predictor:  predictor.DefaultConfig(),
		Strategies: names,
		Games:      4,
		Rounds:     200,
		Workers:    4,
		Seed:       seed,
	}
}

func TestDefaultStrategiesPassWithDefaultConfig(t *testing.T) {
	for seed := uint64(1); seed <= 5; seed++ {
		names := Names()
		samples, err := Simulate(context.Background(), simConfig(seed, names...))
		if err != nil {
			t.Fatalf("seed %d: Simulate: %v", seed, err)
		}
		reports, ok := Evaluate(names, samples, eval.DefaultEvalConfig())
		if !ok {
			for _, r := range reports {
				if !r.Passed() {
					t.Errorf("seed %d: %s failed: %s", seed, r.Strategy, r.Result.Reason)
				}
			}
			t.Fatalf("seed %d: default strategy set should pass", seed)
		}
		for _, r := range reports {
			if r.Result.Rounds != 4*200 {
				t.Fatalf("seed %d: %s scored %d rounds, want 800", seed, r.Strategy, r.Result.Rounds)
			}
		}
	}
}

func TestExploitableStrategiesAreGated(t *testing.T) {
	for _, name := range []string{"constant", "cycle"} {
		if !Exploitable(name) {
			t.Errorf("%s should be gated", name)
		}
	}
	for _, name := range []string{"random", "beat-last", "copy-last", "lizard"} {
		if Exploitable(name) {
			t.Errorf("%s should not be gated", name)
		}
	}
}

func TestEvaluateFailsWhenGatedStrategyLoses(t *testing.T) {
	var losing []eval.Sample
	for i := 0; i < 50; i++ {
		losing = append(losing, eval.Sample{Human: move.Rock, Machine: move.Scissors})
	}
	samples := map[string][]eval.Sample{"constant": losing, "random": losing}

	reports, ok := Evaluate([]string{"constant", "random"}, samples, eval.DefaultEvalConfig())
	if ok {
		t.Fatal("expected overall failure when a gated strategy loses")
	}
	if reports[0].Passed() {
		t.Fatal("constant is gated and should fail")
	}
	if !reports[1].Passed() || reports[1].Result.Passed {
		t.Fatalf("random should fail its metrics but not the run: %+v", reports[1])
	}
}

func TestSimulateRejectsBadInput(t *testing.T) {
	bad := []SimConfig{
		simConfig(1, "lizard"),
		{Predictor: predictor.DefaultConfig(), Strategies: []string{"cycle"}, Games: 1, Rounds: 0, Workers: 1},
		{Predictor: predictor.Config{}, Strategies: []string{"cycle"}, Games: 1, Rounds: 1, Workers: 1},
	}
	for i, cfg := range bad {
		if _, err := Simulate(context.Background(), cfg); err == nil {
			t.Errorf("case %d: expected error", i)
		}
	}
}

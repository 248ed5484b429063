package bot

import (
	"context"
	"fmt"
	"sync"

	"github.com/danielpatrickdp/adaptive-rps/internal/eval"
	"github.com/danielpatrickdp/adaptive-rps/internal/game"
	"github.com/danielpatrickdp/adaptive-rps/internal/move"
	"github.com/danielpatrickdp/adaptive-rps/internal/predictor"
	"github.com/danielpatrickdp/adaptive-rps/internal/session"
	"github.com/golang/glog"
	"golang.org/x/sync/errgroup"
)

// #region simulate
// SimConfig describes a batch of bot-vs-predictor games.
type SimConfig struct {
	Predictor  predictor.Config
	Strategies []string
	Games      int    // games per strategy
	Rounds     int    // rounds per game
	Workers    int    // concurrent games
	Seed       uint64 // game i of the batch uses Seed+i
}

// Simulate plays every game across a bounded worker pool and returns the
// samples per strategy. Every game owns its own predictor and seeded source.
func Simulate(ctx context.Context, cfg SimConfig) (map[string][]eval.Sample, error) {
	if cfg.Games < 1 || cfg.Rounds < 1 || cfg.Workers < 1 {
		return nil, fmt.Errorf("games, rounds and workers must be positive")
	}
	for _, name := range cfg.Strategies {
		if _, ok := factories[name]; !ok {
			return nil, fmt.Errorf("unknown strategy %q", name)
		}
	}
	reg, err := session.NewRegistry(cfg.Workers, cfg.Predictor, move.Standard(), func(id string, g *game.Game) {
		glog.V(2).Infof("session %s closed after %d rounds", id, g.Tally().Rounds())
	})
	if err != nil {
		return nil, err
	}

	var mu sync.Mutex
	samples := make(map[string][]eval.Sample, len(cfg.Strategies))

	eg, ctx := errgroup.WithContext(ctx)
	eg.SetLimit(cfg.Workers)
	for si, name := range cfg.Strategies {
		for gi := 0; gi < cfg.Games; gi++ {
			gameSeed := cfg.Seed + uint64(si*cfg.Games+gi)
			eg.Go(func() error {
				if err := ctx.Err(); err != nil {
					return err
				}
				id, g, err := reg.Open("", predictor.SeededSource(gameSeed))
				if err != nil {
					return fmt.Errorf("open session: %w", err)
				}
				defer reg.Close(id)

				s, err := ByName(name, predictor.SeededSource(^gameSeed))
				if err != nil {
					return err
				}
				played := Match(g, s, cfg.Rounds)
				glog.V(1).Infof("%s game %d: %+v", name, gi, g.Tally())

				mu.Lock()
				samples[name] = append(samples[name], Samples(played)...)
				mu.Unlock()
				return nil
			})
		}
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}
	return samples, nil
}

// #endregion simulate

// #region evaluate
// Report is one strategy's evaluation. Only exploitable strategies are
// gated; the rest are reported for information.
type Report struct {
	Strategy string
	Gated    bool
	Result   eval.EvalResult
}

// Passed reports whether the report counts as a pass.
func (r Report) Passed() bool {
	return !r.Gated || r.Result.Passed
}

// Evaluate scores samples per strategy, in the order of names, and reports
// whether every gated strategy passed.
func Evaluate(names []string, samples map[string][]eval.Sample, config eval.EvalConfig) ([]Report, bool) {
	harness := eval.NewEvalHarness(config, move.Standard())
	reports := make([]Report, 0, len(names))
	ok := true
	for _, name := range names {
		r := Report{
			Strategy: name,
			Gated:    Exploitable(name),
			Result:   harness.Run(samples[name]),
		}
		if !r.Passed() {
			ok = false
		}
		reports = append(reports, r)
	}
	return reports, ok
}

// #endregion evaluate

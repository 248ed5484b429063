package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/danielpatrickdp/adaptive-rps/internal/bot"
	"github.com/danielpatrickdp/adaptive-rps/internal/eval"
	"github.com/danielpatrickdp/adaptive-rps/internal/predictor"
	"github.com/golang/glog"
)

// #region main

func main() {
	def := predictor.DefaultConfig()
	strategies := flag.String("strategies", strings.Join(bot.Names(), ","), "comma-separated bot strategies")
	games := flag.Int("games", 20, "games per strategy")
	rounds := flag.Int("rounds", 200, "rounds per game")
	workers := flag.Int("workers", 8, "concurrent games")
	seed := flag.Uint64("seed", 1, "base seed; game i uses seed+i")
	window := flag.Int("window", def.WindowCapacity, "rolling window capacity")
	exploration := flag.Float64("exploration", def.ExplorationRate, "probability of a random move")
	markovWeight := flag.Float64("markov-weight", def.MarkovWeight, "probability of trusting the transition table")
	useMarkov := flag.Bool("markov", def.UseMarkov, "enable the transition table")
	flag.Set("logtostderr", "true")
	flag.Parse()
	defer glog.Flush()

	config := predictor.Config{
		WindowCapacity:  *window,
		ExplorationRate: *exploration,
		MarkovWeight:    *markovWeight,
		UseMarkov:       *useMarkov,
	}
	names := strings.Split(*strategies, ",")
	for _, n := range names {
		if _, err := bot.ByName(n, nil); err != nil {
			fmt.Fprintf(os.Stderr, "%v (known: %s)\n", err, strings.Join(bot.Names(), ", "))
			os.Exit(2)
		}
	}
	if *games < 1 || *rounds < 1 || *workers < 1 {
		fmt.Fprintln(os.Stderr, "games, rounds and workers must be positive")
		os.Exit(2)
	}
	if err := config.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(2)
	}

	results, err := bot.Simulate(context.Background(), bot.SimConfig{
		Predictor:  config,
		Strategies: names,
		Games:      *games,
		Rounds:     *rounds,
		Workers:    *workers,
		Seed:       *seed,
	})
	if err != nil {
		glog.Errorf("simulate: %v", err)
		glog.Flush()
		os.Exit(1)
	}
	reports, ok := bot.Evaluate(names, results, eval.DefaultEvalConfig())
	printReports(reports)
	if !ok {
		glog.Flush()
		os.Exit(1)
	}
}

// #endregion main

// #region output

// printReports prints one eval row per strategy. Ungated strategies show
// "info" instead of a verdict.
func printReports(reports []bot.Report) {
	metrics := []string{
		eval.MetricMachineWinRate, eval.MetricHumanWinRate, eval.MetricTieRate,
		eval.MetricPredictionAccuracy, eval.MetricHumanEntropy,
	}

	fmt.Printf("%-10s  %7s  %8s  %8s  %8s  %8s  %8s  %s\n",
		"Strategy", "Rounds", "Machine", "Human", "Tie", "Accuracy", "Entropy", "Pass")
	fmt.Printf("%-10s+-%7s+-%8s+-%8s+-%8s+-%8s+-%8s+-%s\n",
		"----------", "-------", "--------", "--------", "--------", "--------", "--------", "----")

	for _, r := range reports {
		fmt.Printf("%-10s  %7d", r.Strategy, r.Result.Rounds)
		for _, m := range metrics {
			v, _ := r.Result.Metric(m)
			fmt.Printf("  %8.4f", v.Value)
		}
		status := "ok"
		switch {
		case !r.Gated:
			status = "info"
		case !r.Result.Passed:
			status = "FAIL"
			glog.Warningf("%s: %s", r.Strategy, r.Result.Reason)
		}
		fmt.Printf("  %s\n", status)
	}
}

// #endregion output

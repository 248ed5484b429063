package eval

import (
	"fmt"
	"math"

	"github.com/danielpatrickdp/adaptive-rps/internal/move"
)

// Metric names.
const (
	MetricMachineWinRate     = "machine_win_rate"
	MetricHumanWinRate       = "human_win_rate"
	MetricTieRate            = "tie_rate"
	MetricPredictionAccuracy = "prediction_accuracy"
	MetricHumanEntropy       = "human_entropy"
)

// #region eval-harness
// EvalHarness scores a sequence of rounds.
type EvalHarness struct {
	config EvalConfig
	rules  move.Rules
}

// NewEvalHarness creates an eval harness with the given configuration.
// rules must be valid (see move.Rules.Valid); pass move.Standard().
func NewEvalHarness(config EvalConfig, rules move.Rules) *EvalHarness {
	return &EvalHarness{config: config, rules: rules}
}

// Run computes rates over samples. Win rate and prediction accuracy are
// gated by the config; tie rate, human win rate and entropy are informational.
func (h *EvalHarness) Run(samples []Sample) EvalResult {
	n := len(samples)
	var humanWins, machineWins, ties, predicted, hits int
	var counts [move.Count]int

	for _, s := range samples {
		switch h.rules.Outcome(s.Human, s.Machine) {
		case move.FirstWins:
			humanWins++
		case move.SecondWins:
			machineWins++
		default:
			ties++
		}
		if s.HasPrediction {
			predicted++
			if s.Predicted == s.Human {
				hits++
			}
		}
		counts[s.Human]++
	}

	enforce := n >= h.config.MinRounds
	var failReasons []string

	// 1. Machine win rate
	machineRate := rate(machineWins, n)
	machinePass := !enforce || machineRate >= h.config.MinMachineWinRate
	if !machinePass {
		failReasons = append(failReasons, fmt.Sprintf("machine win rate %.4f below %.4f", machineRate, h.config.MinMachineWinRate))
	}

	// 2. Prediction accuracy over rounds that had a prediction
	accuracy := rate(hits, predicted)
	accuracyPass := !enforce || predicted == 0 || accuracy >= h.config.MinPredictionAccuracy
	if !accuracyPass {
		failReasons = append(failReasons, fmt.Sprintf("prediction accuracy %.4f below %.4f", accuracy, h.config.MinPredictionAccuracy))
	}

	metrics := []EvalMetric{
		{Name: MetricMachineWinRate, Value: machineRate, Pass: machinePass},
		{Name: MetricHumanWinRate, Value: rate(humanWins, n), Pass: true},
		{Name: MetricTieRate, Value: rate(ties, n), Pass: true},
		{Name: MetricPredictionAccuracy, Value: accuracy, Pass: accuracyPass},
		// 3. Entropy: informational only
		{Name: MetricHumanEntropy, Value: normalizedEntropy(counts[:], n), Pass: true},
	}

	reason := "all checks passed"
	switch {
	case n == 0:
		reason = "no rounds"
	case len(failReasons) == 1:
		reason = fmt.Sprintf("eval failed: %s", failReasons[0])
	case len(failReasons) > 1:
		reason = fmt.Sprintf("eval failed: %d checks: %s", len(failReasons), failReasons[0])
	}

	return EvalResult{
		Rounds:  n,
		Passed:  len(failReasons) == 0,
		Metrics: metrics,
		Reason:  reason,
	}
}

// #endregion eval-harness

// #region helpers
func rate(k, n int) float64 {
	if n == 0 {
		return 0
	}
	return float64(k) / float64(n)
}

// normalizedEntropy is the Shannon entropy of counts divided by its maximum,
// so 0 means one move only and 1 means perfectly uniform play.
func normalizedEntropy(counts []int, n int) float64 {
	if n == 0 {
		return 0
	}
	var h float64
	for _, c := range counts {
		if c == 0 {
			continue
		}
		p := float64(c) / float64(n)
		h -= p * math.Log2(p)
	}
	return h / math.Log2(float64(len(counts)))
}

// #endregion helpers

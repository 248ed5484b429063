package eval

import "github.com/danielpatrickdp/adaptive-rps/internal/move"

// #region eval-config
// EvalConfig holds thresholds for judging a played or replayed session.
type EvalConfig struct {
	MinMachineWinRate     float64 // fail if the machine wins a smaller share of rounds
	MinPredictionAccuracy float64 // fail if predictions hit less often than this
	MinRounds             int     // below this, checks are reported but never fail
}

// DefaultEvalConfig returns thresholds that a uniformly random opponent
// would sit at.
func DefaultEvalConfig() EvalConfig {
	return EvalConfig{
		MinMachineWinRate:     1.0 / 3.0,
		MinPredictionAccuracy: 1.0 / 3.0,
		MinRounds:             10,
	}
}

// #endregion eval-config

// #region sample
// Sample is one round as seen by the evaluator.
type Sample struct {
	Human         move.Move
	Machine       move.Move
	Predicted     move.Move
	HasPrediction bool
}

// #endregion sample

// #region eval-metric
// EvalMetric captures a single check result.
type EvalMetric struct {
	Name  string  `json:"name"`
	Value float64 `json:"value"`
	Pass  bool    `json:"pass"`
}

// #endregion eval-metric

// #region eval-result
// EvalResult is the output of a session evaluation.
type EvalResult struct {
	Rounds  int          `json:"rounds"`
	Passed  bool         `json:"passed"`
	Metrics []EvalMetric `json:"metrics"`
	Reason  string       `json:"reason"`
}

// Metric looks up a metric by name.
func (r EvalResult) Metric(name string) (EvalMetric, bool) {
	for _, m := range r.Metrics {
		if m.Name == name {
			return m, true
		}
	}
	return EvalMetric{}, false
}

// #endregion eval-result

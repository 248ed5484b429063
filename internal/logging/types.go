package logging

import (
	"time"

	"github.com/danielpatrickdp/adaptive-rps/internal/predictor"
)

// #region decision-entry
// DecisionEntry is a single row in the decision_log table.
type DecisionEntry struct {
	SessionID  string
	Round      int
	Branch     predictor.Branch
	Predicted  string // empty when no prediction was made
	Machine    string
	Human      string
	RecordJSON string
	CreatedAt  time.Time
}

// #endregion decision-entry

// #region decision-record
// DecisionRecord captures the model state a choice was made from.
// Serialized as JSON into decision_log.record_json.
type DecisionRecord struct {
	Round  int    `json:"round"`
	Branch string `json:"branch"`

	// Model state before the human's move was observed
	LastHuman   string         `json:"last_human,omitempty"`
	Frequencies map[string]int `json:"frequencies"`
	MarkovRow   map[string]int `json:"markov_row,omitempty"` // successors of LastHuman
	WindowLen   int            `json:"window_len"`

	// Tunables active at decision time
	Thresholds DecisionThresholds `json:"thresholds"`
}

// DecisionThresholds mirrors predictor.Config for the log.
type DecisionThresholds struct {
	WindowCapacity  int     `json:"window_capacity"`
	ExplorationRate float64 `json:"exploration_rate"`
	MarkovWeight    float64 `json:"markov_weight"`
	UseMarkov       bool    `json:"use_markov"`
}

// #endregion decision-record

package predictor

import (
	"errors"
	"fmt"
	"math"

	"github.com/danielpatrickdp/adaptive-rps/internal/move"
)

// #region config
// ErrInvalidConfig is returned when a Config value is outside its domain.
var ErrInvalidConfig = errors.New("invalid predictor config")

// Config holds the tunables for a Predictor.
type Config struct {
	WindowCapacity  int     `json:"window_capacity"`  // rolling window size (default 50)
	ExplorationRate float64 `json:"exploration_rate"` // probability of a uniformly random move (default 0.15)
	MarkovWeight    float64 `json:"markov_weight"`    // probability of preferring Markov over frequency (default 0.7)
	UseMarkov       bool    `json:"use_markov"`       // consult the transition table at all (default true)
}

// DefaultConfig returns the standard tuning.
func DefaultConfig() Config {
	return Config{
		WindowCapacity:  50,
		ExplorationRate: 0.15,
		MarkovWeight:    0.7,
		UseMarkov:       true,
	}
}

// Validate rejects values outside their declared domains. Nothing is clamped.
func (c Config) Validate() error {
	if c.WindowCapacity < 1 {
		return fmt.Errorf("%w: window_capacity %d must be positive", ErrInvalidConfig, c.WindowCapacity)
	}
	if !isProbability(c.ExplorationRate) {
		return fmt.Errorf("%w: exploration_rate %v outside [0,1]", ErrInvalidConfig, c.ExplorationRate)
	}
	if !isProbability(c.MarkovWeight) {
		return fmt.Errorf("%w: markov_weight %v outside [0,1]", ErrInvalidConfig, c.MarkovWeight)
	}
	return nil
}

func isProbability(p float64) bool {
	return !math.IsNaN(p) && p >= 0 && p <= 1
}

// #endregion config

// #region source
// Source supplies randomness. *rand.Rand from math/rand/v2 satisfies it.
type Source interface {
	Float64() float64 // uniform in [0,1)
	IntN(n int) int   // uniform in [0,n)
}

// #endregion source

// #region choice
// Branch names the selection path that produced a machine move.
type Branch string

const (
	BranchExplore   Branch = "explore"
	BranchMarkov    Branch = "markov"
	BranchFrequency Branch = "frequency"
	BranchFallback  Branch = "fallback"
)

// Choice is the full result of one selection.
type Choice struct {
	Move      move.Move // machine move
	Predicted move.Move // predicted human move; meaningful only if HasPrediction
	// HasPrediction is false for explore and fallback.
	HasPrediction bool
	Branch        Branch
}

// #endregion choice

package predictor

import (
	"math/rand/v2"

	"github.com/danielpatrickdp/adaptive-rps/internal/move"
	"github.com/danielpatrickdp/adaptive-rps/internal/window"
)

// #region predictor
// Predictor models one human player's move history and picks the machine's
// counter-move. Not safe for concurrent use: each session owns its own.
type Predictor struct {
	config Config
	rules  move.Rules
	src    Source

	window      *window.Window[move.Move]
	frequencies *FrequencyTable
	transitions *TransitionTable

	last    move.Move
	hasLast bool
}

// New validates config and rules and returns a cold predictor. A nil src
// uses the process-wide generator from math/rand/v2.
func New(config Config, rules move.Rules, src Source) (*Predictor, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	if !rules.Valid() {
		return nil, move.ErrInvalidRules
	}
	if src == nil {
		src = globalSource{}
	}
	return &Predictor{
		config:      config,
		rules:       rules,
		src:         src,
		window:      window.New[move.Move](config.WindowCapacity),
		frequencies: NewFrequencyTable(),
		transitions: NewTransitionTable(),
	}, nil
}

// #endregion predictor

// #region choose
// ChooseMove returns the machine's move for the upcoming round.
func (p *Predictor) ChooseMove() move.Move {
	return p.Choose().Move
}

// Choose selects the machine's move and reports which branch produced it.
// It reads state only; call Observe afterwards with the human's actual move.
func (p *Predictor) Choose() Choice {
	if p.src.Float64() < p.config.ExplorationRate {
		return Choice{Move: p.randomMove(), Branch: BranchExplore}
	}

	predicted, branch, ok := p.predict()
	if !ok {
		return Choice{Move: p.randomMove(), Branch: BranchFallback}
	}
	return Choice{
		Move:          p.rules.CounterOf(predicted),
		Predicted:     predicted,
		HasPrediction: true,
		Branch:        branch,
	}
}

// predict fuses the Markov and frequency predictions.
func (p *Predictor) predict() (move.Move, Branch, bool) {
	markov, hasMarkov := p.markovPrediction()
	freq, hasFreq := p.frequencies.Top()

	switch {
	case hasMarkov && hasFreq:
		if p.src.Float64() < p.config.MarkovWeight {
			return markov, BranchMarkov, true
		}
		return freq, BranchFrequency, true
	case hasMarkov:
		return markov, BranchMarkov, true
	case hasFreq:
		return freq, BranchFrequency, true
	}
	return 0, "", false
}

func (p *Predictor) markovPrediction() (move.Move, bool) {
	if !p.config.UseMarkov || !p.hasLast {
		return 0, false
	}
	return p.transitions.Predict(p.last)
}

func (p *Predictor) randomMove() move.Move {
	return move.Moves()[p.src.IntN(move.Count)]
}

// #endregion choose

// #region observe
// Observe feeds the human's actual move for the round just played.
func (p *Predictor) Observe(human move.Move) {
	if p.hasLast {
		p.transitions.Record(p.last, human)
	}
	p.last, p.hasLast = human, true

	if evicted, ok := p.window.Push(human); ok {
		p.frequencies.Dec(evicted)
	}
	p.frequencies.Inc(human)
}

// #endregion observe

// #region introspection
// Config returns the configuration the predictor was built with.
func (p *Predictor) Config() Config {
	return p.config
}

// Warmed reports whether at least one move has been observed.
func (p *Predictor) Warmed() bool {
	return p.hasLast
}

// Last returns the most recently observed human move.
func (p *Predictor) Last() (move.Move, bool) {
	return p.last, p.hasLast
}

// Window returns the rolling window contents, oldest first.
func (p *Predictor) Window() []move.Move {
	return p.window.Items()
}

// Frequencies returns the rolling-window counts.
func (p *Predictor) Frequencies() map[move.Move]int {
	return p.frequencies.Snapshot()
}

// Transitions returns the full order-1 transition counts.
func (p *Predictor) Transitions() map[move.Move]map[move.Move]int {
	return p.transitions.Snapshot()
}

// TransitionsFrom returns the successor counts recorded for prev.
func (p *Predictor) TransitionsFrom(prev move.Move) map[move.Move]int {
	return p.transitions.Row(prev)
}

// #endregion introspection

// #region global-source
// SeededSource returns a deterministic PCG-backed source. Two sources built
// from the same seed produce the same draws.
func SeededSource(seed uint64) Source {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

type globalSource struct{}

func (globalSource) Float64() float64 { return rand.Float64() }
func (globalSource) IntN(n int) int   { return rand.IntN(n) }

// #endregion global-source

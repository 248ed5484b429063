package game

import (
	"github.com/danielpatrickdp/adaptive-rps/internal/move"
	"github.com/danielpatrickdp/adaptive-rps/internal/predictor"
)

// #region types
// Round is one completed exchange. Outcome is from the human's side: the
// human is the first player.
type Round struct {
	Number  int
	Human   move.Move
	Machine move.Move
	Outcome move.Outcome
	Choice  predictor.Choice
}

// Tally is the running score.
type Tally struct {
	HumanWins   int `json:"human_wins"`
	MachineWins int `json:"machine_wins"`
	Ties        int `json:"ties"`
}

// Rounds returns the number of rounds counted.
func (t Tally) Rounds() int {
	return t.HumanWins + t.MachineWins + t.Ties
}

func (t *Tally) add(o move.Outcome) {
	switch o {
	case move.FirstWins:
		t.HumanWins++
	case move.SecondWins:
		t.MachineWins++
	default:
		t.Ties++
	}
}

// #endregion types

// #region game
// ChoiceHook runs after the machine has committed its choice and before the
// human's move is observed.
type ChoiceHook func(round int, choice predictor.Choice, p *predictor.Predictor)

// Game drives a predictor one round at a time. Not safe for concurrent use.
type Game struct {
	rules     move.Rules
	predictor *predictor.Predictor
	tally     Tally
	round     int
	hook      ChoiceHook
}

// New builds a game around a fresh predictor.
func New(config predictor.Config, rules move.Rules, src predictor.Source) (*Game, error) {
	p, err := predictor.New(config, rules, src)
	if err != nil {
		return nil, err
	}
	return &Game{rules: rules, predictor: p}, nil
}

// Play commits the machine's choice for this round, then feeds the human's
// move to the predictor. The choice never sees the move it is answering.
func (g *Game) Play(human move.Move) Round {
	g.round++
	choice := g.predictor.Choose()
	if g.hook != nil {
		g.hook(g.round, choice, g.predictor)
	}
	g.predictor.Observe(human)

	r := Round{
		Number:  g.round,
		Human:   human,
		Machine: choice.Move,
		Outcome: g.rules.Outcome(human, choice.Move),
		Choice:  choice,
	}
	g.tally.add(r.Outcome)
	return r
}

// OnChoice installs h, replacing any previous hook.
func (g *Game) OnChoice(h ChoiceHook) {
	g.hook = h
}

// Tally returns the running score.
func (g *Game) Tally() Tally {
	return g.tally
}

// Predictor exposes the underlying model for read-only introspection.
func (g *Game) Predictor() *predictor.Predictor {
	return g.predictor
}

// Rules returns the dominance relation in use.
func (g *Game) Rules() move.Rules {
	return g.rules
}

// #endregion game

// #region result-text
// ResultText renders an outcome the way the REPL prints it.
func ResultText(o move.Outcome) string {
	switch o {
	case move.FirstWins:
		return "You win!"
	case move.SecondWins:
		return "You lose!"
	}
	return "It's a tie!"
}

// #endregion result-text

package bot

import (
	"fmt"
	"math/rand/v2"
	"sort"

	"github.com/danielpatrickdp/adaptive-rps/internal/move"
	"github.com/danielpatrickdp/adaptive-rps/internal/predictor"
)

// #region strategy
// Strategy stands in for a human player in simulations.
type Strategy interface {
	Name() string
	// Next returns the move for this round. lastMachine is valid only when
	// hasLast is true.
	Next(lastMachine move.Move, hasLast bool) move.Move
}

// #endregion strategy

// #region strategies
type constant struct{ m move.Move }

func (c constant) Name() string { return "constant" }

func (c constant) Next(move.Move, bool) move.Move { return c.m }

// cycle plays the moves in order, wrapping around.
type cycle struct {
	seq []move.Move
	i   int
}

func (c *cycle) Name() string { return "cycle" }

func (c *cycle) Next(move.Move, bool) move.Move {
	m := c.seq[c.i%len(c.seq)]
	c.i++
	return m
}

type random struct{ src predictor.Source }

func (r random) Name() string { return "random" }

func (r random) Next(move.Move, bool) move.Move {
	return move.Move(r.src.IntN(move.Count))
}

// beatLast plays whatever would have beaten the machine's previous move.
type beatLast struct {
	rules move.Rules
	first move.Move
}

func (b beatLast) Name() string { return "beat-last" }

func (b beatLast) Next(lastMachine move.Move, hasLast bool) move.Move {
	if !hasLast {
		return b.first
	}
	return b.rules.CounterOf(lastMachine)
}

// copyLast repeats the machine's previous move.
type copyLast struct{ first move.Move }

func (c copyLast) Name() string { return "copy-last" }

func (c copyLast) Next(lastMachine move.Move, hasLast bool) move.Move {
	if !hasLast {
		return c.first
	}
	return lastMachine
}

// #endregion strategies

// #region registry
type entry struct {
	build func(src predictor.Source) Strategy
	// exploitable strategies have a pattern the predictor is expected to
	// learn. The others play at or against chance by construction.
	exploitable bool
}

var factories = map[string]entry{
	"constant": {exploitable: true, build: func(predictor.Source) Strategy {
		return constant{m: move.Rock}
	}},
	"cycle": {exploitable: true, build: func(predictor.Source) Strategy {
		return &cycle{seq: []move.Move{move.Rock, move.Paper, move.Scissors}}
	}},
	"random": {build: func(src predictor.Source) Strategy {
		if src == nil {
			src = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
		}
		return random{src: src}
	}},
	"beat-last": {build: func(predictor.Source) Strategy {
		return beatLast{rules: move.Standard(), first: move.Paper}
	}},
	"copy-last": {build: func(predictor.Source) Strategy {
		return copyLast{first: move.Scissors}
	}},
}

// ByName builds a fresh strategy. src is used only by strategies that need
// randomness.
func ByName(name string, src predictor.Source) (Strategy, error) {
	e, ok := factories[name]
	if !ok {
		return nil, fmt.Errorf("unknown strategy %q", name)
	}
	return e.build(src), nil
}

// Exploitable reports whether the predictor is expected to beat the named
// strategy. Unknown names are not exploitable.
func Exploitable(name string) bool {
	return factories[name].exploitable
}

// Names lists the known strategies, sorted.
func Names() []string {
	out := make([]string, 0, len(factories))
	for n := range factories {
		out = append(out, n)
	}
	sort.Strings(out)
	return out
}

// #endregion registry

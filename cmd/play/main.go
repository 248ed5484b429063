package main

import (
	"bufio"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"math/rand/v2"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/danielpatrickdp/adaptive-rps/internal/game"
	"github.com/danielpatrickdp/adaptive-rps/internal/logging"
	"github.com/danielpatrickdp/adaptive-rps/internal/move"
	"github.com/danielpatrickdp/adaptive-rps/internal/predictor"
	"github.com/danielpatrickdp/adaptive-rps/internal/store"
	"github.com/golang/glog"
	"github.com/joho/godotenv"
)

// #region main
func main() {
	_ = godotenv.Load()

	def := predictor.DefaultConfig()
	dbPath := flag.String("db", envOr("ADAPTIVE_RPS_DB", "adaptive_rps.db"), "path to the session database")
	window := flag.Int("window", envInt("ADAPTIVE_RPS_WINDOW", def.WindowCapacity), "rolling window capacity")
	exploration := flag.Float64("exploration", envFloat("ADAPTIVE_RPS_EXPLORATION", def.ExplorationRate), "probability of a random move")
	markovWeight := flag.Float64("markov-weight", envFloat("ADAPTIVE_RPS_MARKOV_WEIGHT", def.MarkovWeight), "probability of trusting the transition table over frequencies")
	useMarkov := flag.Bool("markov", envBool("ADAPTIVE_RPS_USE_MARKOV", def.UseMarkov), "enable the transition table")
	seedFlag := flag.String("seed", envOr("ADAPTIVE_RPS_SEED", ""), "random seed (empty picks one)")
	flag.Set("logtostderr", "true")
	flag.Parse()
	defer glog.Flush()

	config := predictor.Config{
		WindowCapacity:  *window,
		ExplorationRate: *exploration,
		MarkovWeight:    *markovWeight,
		UseMarkov:       *useMarkov,
	}
	if err := config.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(2)
	}

	seed := rand.Uint64()
	if *seedFlag != "" {
		s, err := strconv.ParseUint(*seedFlag, 10, 64)
		if err != nil {
			fmt.Fprintf(os.Stderr, "seed: %v\n", err)
			os.Exit(2)
		}
		seed = s
	}

	st, err := store.NewStore(*dbPath)
	if err != nil {
		glog.Exitf("failed to open store: %v", err)
	}
	defer st.Close()

	sess, err := st.CreateSession(config, seed)
	if err != nil {
		glog.Exitf("failed to create session: %v", err)
	}

	g, err := game.New(config, move.Standard(), predictor.SeededSource(seed))
	if err != nil {
		glog.Exitf("failed to start game: %v", err)
	}

	parser, err := move.NewParser(move.DefaultSynonyms())
	if err != nil {
		glog.Exitf("failed to build parser: %v", err)
	}

	fmt.Println("Adaptive rock-paper-scissors ready.")
	fmt.Printf("  DB: %s | Session: %s | Seed: %d\n", *dbPath, sess.ID, seed)
	fmt.Println("Choose stone, paper, or scissor ('score', 'model', or 'quit'):")

	replErr := repl(os.Stdin, os.Stdout, g, parser, sessionRecorder{st}, sess.ID)

	t := g.Tally()
	fmt.Printf("Final score: you %d, machine %d, ties %d\n", t.HumanWins, t.MachineWins, t.Ties)
	if replErr != nil {
		glog.Errorf("session %s stopped: %v", sess.ID, replErr)
		glog.Flush()
		st.Close()
		os.Exit(1)
	}
}

// #endregion main

// #region recorder
// recorder persists finished rounds and their decision log entries.
type recorder interface {
	RecordRound(rec store.RoundRecord) error
	LogDecision(entry logging.DecisionEntry) error
}

type sessionRecorder struct {
	*store.Store
}

func (r sessionRecorder) LogDecision(entry logging.DecisionEntry) error {
	return logging.LogDecision(r.DB(), entry)
}

// #endregion recorder

// #region repl
// repl plays rounds until quit or end of input. A round that cannot be stored
// ends the session: later rounds would leave a gap that replay cannot bridge.
func repl(in io.Reader, out io.Writer, g *game.Game, parser *move.Parser, rec recorder, sessionID string) error {
	// The hook fires before the human's move is observed, so the snapshot
	// reflects what the choice was actually based on.
	var pending logging.DecisionRecord
	g.OnChoice(func(round int, choice predictor.Choice, p *predictor.Predictor) {
		pending = logging.Snapshot(round, choice, p)
	})

	scanner := bufio.NewScanner(in)
	for {
		fmt.Fprint(out, "> ")
		if !scanner.Scan() {
			return scanner.Err()
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		switch strings.ToLower(line) {
		case "quit", "exit":
			return nil
		case "score":
			printScore(out, g.Tally())
			continue
		case "model":
			printModel(out, g.Predictor())
			continue
		}

		human, err := parser.Parse(line)
		if err != nil {
			if !errors.Is(err, move.ErrUnrecognized) {
				glog.Warningf("parse %q: %v", line, err)
			}
			fmt.Fprintln(out, "Invalid input! Please choose stone, paper, or scissor.")
			continue
		}

		r := g.Play(human)
		fmt.Fprintf(out, "Computer chose %s. %s\n", r.Machine, game.ResultText(r.Outcome))

		if err := rec.RecordRound(store.RoundRecord{
			SessionID: sessionID,
			Number:    r.Number,
			Human:     r.Human,
			Machine:   r.Machine,
			Outcome:   r.Outcome,
		}); err != nil {
			fmt.Fprintln(out, "Round could not be saved; ending the session.")
			return fmt.Errorf("record round %d: %w", r.Number, err)
		}

		entry := logging.DecisionEntry{
			SessionID: sessionID,
			Round:     r.Number,
			Branch:    r.Choice.Branch,
			Machine:   r.Machine.String(),
			Human:     r.Human.String(),
		}
		if recJSON, err := json.Marshal(pending); err != nil {
			glog.Errorf("marshal decision record %d: %v", r.Number, err)
		} else {
			entry.RecordJSON = string(recJSON)
		}
		if r.Choice.HasPrediction {
			entry.Predicted = r.Choice.Predicted.String()
		}
		if err := rec.LogDecision(entry); err != nil {
			glog.Errorf("log decision %d: %v", r.Number, err)
		}
		glog.V(1).Infof("round=%d branch=%s predicted=%s", r.Number, r.Choice.Branch, entry.Predicted)
	}
}

func printScore(out io.Writer, t game.Tally) {
	fmt.Fprintf(out, "Rounds: %d | You: %d | Machine: %d | Ties: %d\n", t.Rounds(), t.HumanWins, t.MachineWins, t.Ties)
}

func printModel(out io.Writer, p *predictor.Predictor) {
	freqs := p.Frequencies()
	fmt.Fprintf(out, "Window (%d/%d):", len(p.Window()), p.Config().WindowCapacity)
	for _, m := range move.Moves() {
		fmt.Fprintf(out, " %s=%d", m, freqs[m])
	}
	fmt.Fprintln(out)

	trans := p.Transitions()
	prevs := make([]move.Move, 0, len(trans))
	for prev := range trans {
		prevs = append(prevs, prev)
	}
	sort.Slice(prevs, func(i, j int) bool { return prevs[i] < prevs[j] })
	for _, prev := range prevs {
		fmt.Fprintf(out, "  after %-8s", prev)
		for _, m := range move.Moves() {
			fmt.Fprintf(out, " %s=%d", m, trans[prev][m])
		}
		fmt.Fprintln(out)
	}
}

// #endregion repl

// #region helpers
func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v, err := strconv.Atoi(os.Getenv(key)); err == nil {
		return v
	}
	return fallback
}

func envFloat(key string, fallback float64) float64 {
	if v, err := strconv.ParseFloat(os.Getenv(key), 64); err == nil {
		return v
	}
	return fallback
}

func envBool(key string, fallback bool) bool {
	if v, err := strconv.ParseBool(os.Getenv(key)); err == nil {
		return v
	}
	return fallback
}

// #endregion helpers

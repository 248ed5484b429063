package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/danielpatrickdp/adaptive-rps/internal/move"
	"github.com/danielpatrickdp/adaptive-rps/internal/predictor"
	"github.com/danielpatrickdp/adaptive-rps/internal/replay"
	"github.com/danielpatrickdp/adaptive-rps/internal/store"
	"github.com/golang/glog"
)

// #region main

func main() {
	dbPath := flag.String("db", "", "path to adaptive_rps.db (DB mode)")
	sessionID := flag.String("session", "", "session to replay (DB mode, default latest)")
	fixturePath := flag.String("fixture", "", "path to fixture JSON (fixture mode)")
	flag.Set("logtostderr", "true")
	flag.Parse()
	defer glog.Flush()

	if (*dbPath == "" && *fixturePath == "") || (*dbPath != "" && *fixturePath != "") {
		fmt.Fprintln(os.Stderr, "usage: replay --db path/to/adaptive_rps.db [--session id]")
		fmt.Fprintln(os.Stderr, "       replay --fixture path/to/fixture.json")
		os.Exit(2)
	}

	var exitCode int
	if *fixturePath != "" {
		exitCode = runFixtureMode(*fixturePath)
	} else {
		exitCode = runDBMode(*dbPath, *sessionID)
	}
	glog.Flush()
	os.Exit(exitCode)
}

// #endregion main

// #region db-mode

// runDBMode replays a stored session with its recorded seed and config and
// compares every machine move against what was played live.
func runDBMode(dbPath, sessionID string) int {
	st, err := store.NewStore(dbPath)
	if err != nil {
		glog.Errorf("open db: %v", err)
		return 2
	}
	defer st.Close()

	var sess store.Session
	if sessionID == "" {
		sess, err = st.LatestSession()
	} else {
		sess, err = st.GetSession(sessionID)
	}
	if err != nil {
		glog.Errorf("find session: %v", err)
		return 2
	}

	rounds, err := st.ListRounds(sess.ID)
	if err != nil {
		glog.Errorf("list rounds: %v", err)
		return 2
	}
	if len(rounds) == 0 {
		fmt.Fprintf(os.Stderr, "session %s has no rounds\n", sess.ID)
		return 2
	}

	humans := make([]move.Move, len(rounds))
	expected := make([]move.Move, len(rounds))
	for i, r := range rounds {
		humans[i] = r.Human
		expected[i] = r.Machine
	}

	results, err := replay.Replay(sess.Config, predictor.SeededSource(sess.Seed), humans)
	if err != nil {
		glog.Errorf("replay: %v", err)
		return 2
	}

	fmt.Printf("Session %s (seed %d, %d rounds)\n\n", sess.ID, sess.Seed, len(rounds))
	return printComparison(results, expected)
}

// #endregion db-mode

// #region fixture-mode

func runFixtureMode(path string) int {
	f, err := replay.LoadFixture(path)
	if err != nil {
		glog.Errorf("load fixture: %v", err)
		return 2
	}

	results, err := f.Run()
	if err != nil {
		glog.Errorf("replay: %v", err)
		return 2
	}

	if f.Description != "" {
		fmt.Printf("%s\n\n", f.Description)
	}
	for _, r := range results {
		fmt.Printf("%-6d| %-9s| %-9s| %-10s| %s\n", r.Round, r.Human, r.Machine, r.Branch, r.Outcome)
	}

	mismatches := f.Check(results)
	fmt.Printf("\nSummary: %d rounds, %d checked, %d mismatch\n",
		len(results), len(f.ExpectedResults), len(mismatches))
	for _, m := range mismatches {
		fmt.Printf("  %s\n", m)
	}
	if len(mismatches) > 0 {
		return 1
	}
	return 0
}

// #endregion fixture-mode

// #region output

// printComparison outputs a comparison table and returns exit code.
// expected holds the machine moves recorded live.
func printComparison(results []replay.ReplayResult, expected []move.Move) int {
	fmt.Printf("%-6s| %-9s| %-9s| %-9s| %-10s| %s\n", "Round", "Human", "Expected", "Replayed", "Branch", "Match")
	fmt.Printf("%-6s+%-10s+%-10s+%-10s+%-11s+%s\n",
		"------", "----------", "----------", "----------", "-----------", "------")

	matches := 0
	total := len(results)
	if len(expected) < total {
		total = len(expected)
	}

	for i := 0; i < total; i++ {
		r := results[i]
		match := "DIFF"
		if r.Machine == expected[i] {
			match = "OK"
			matches++
		}
		fmt.Printf("%-6d| %-9s| %-9s| %-9s| %-10s| %s\n", r.Round, r.Human, expected[i], r.Machine, r.Branch, match)
	}

	summary := replay.Summarize(results[:total])
	diverge := total - matches
	fmt.Printf("\nSummary: %d total, %d match, %d diverge\n", total, matches, diverge)
	fmt.Printf("Replayed score: you %d, machine %d, ties %d\n",
		summary.Tally.HumanWins, summary.Tally.MachineWins, summary.Tally.Ties)

	if diverge > 0 {
		return 1
	}
	return 0
}

// #endregion output

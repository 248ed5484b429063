package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/danielpatrickdp/adaptive-rps/internal/eval"
	"github.com/danielpatrickdp/adaptive-rps/internal/logging"
	"github.com/danielpatrickdp/adaptive-rps/internal/move"
	"github.com/danielpatrickdp/adaptive-rps/internal/predictor"
	"github.com/danielpatrickdp/adaptive-rps/internal/store"
	"github.com/golang/glog"
)

// #region main

func main() {
	dbPath := flag.String("db", "", "path to adaptive_rps.db")
	last := flag.Int("last", 20, "show N most recent sessions")
	sessionID := flag.String("session", "", "show single session detail")
	jsonOut := flag.Bool("json", false, "output as JSON instead of table")
	flag.Set("logtostderr", "true")
	flag.Parse()
	defer glog.Flush()

	if *dbPath == "" {
		fmt.Fprintln(os.Stderr, "usage: inspect --db path/to/adaptive_rps.db [--last N] [--session id] [--json]")
		os.Exit(2)
	}

	st, err := store.NewStore(*dbPath)
	if err != nil {
		glog.Errorf("open db: %v", err)
		glog.Flush()
		os.Exit(1)
	}
	defer st.Close()

	if *sessionID != "" {
		err = runDetailMode(st, *sessionID, *jsonOut)
	} else {
		err = runListMode(st, *last, *jsonOut)
	}
	if err != nil {
		glog.Errorf("error: %v", err)
		glog.Flush()
		os.Exit(1)
	}
}

// #endregion main

// #region list-mode

type listRow struct {
	SessionID   string  `json:"session_id"`
	Rounds      int     `json:"rounds"`
	HumanWins   int     `json:"human_wins"`
	MachineWins int     `json:"machine_wins"`
	Ties        int     `json:"ties"`
	MachineRate float64 `json:"machine_win_rate"`
	Window      int     `json:"window"`
	CreatedAt   string  `json:"created_at"`
}

func runListMode(st *store.Store, last int, jsonOut bool) error {
	sessions, err := st.ListSessions(last)
	if err != nil {
		return err
	}
	if len(sessions) == 0 {
		fmt.Fprintln(os.Stderr, "no sessions found")
		return nil
	}

	rows := make([]listRow, len(sessions))
	for i, s := range sessions {
		rate := 0.0
		if s.Rounds > 0 {
			rate = float64(s.MachineWins) / float64(s.Rounds)
		}
		rows[i] = listRow{
			SessionID:   s.ID,
			Rounds:      s.Rounds,
			HumanWins:   s.HumanWins,
			MachineWins: s.MachineWins,
			Ties:        s.Ties,
			MachineRate: rate,
			Window:      s.Config.WindowCapacity,
			CreatedAt:   s.CreatedAt.Format("2006-01-02T15:04:05Z"),
		}
	}

	if jsonOut {
		return printJSON(rows)
	}

	fmt.Printf("%-12s  %6s  %5s  %7s  %5s  %8s  %6s  %s\n",
		"Session", "Rounds", "Human", "Machine", "Ties", "Win Rate", "Window", "Time")
	fmt.Printf("%-12s+-%6s+-%5s+-%7s+-%5s+-%8s+-%6s+-%s\n",
		"------------", "------", "-----", "-------", "-----", "--------", "------", "--------------------")
	for _, r := range rows {
		fmt.Printf("%-12s  %6d  %5d  %7d  %5d  %8.3f  %6d  %s\n",
			shortID(r.SessionID), r.Rounds, r.HumanWins, r.MachineWins, r.Ties, r.MachineRate, r.Window, r.CreatedAt)
	}
	return nil
}

// #endregion list-mode

// #region detail-mode

type detailOutput struct {
	SessionID string           `json:"session_id"`
	Seed      uint64           `json:"seed"`
	CreatedAt string           `json:"created_at"`
	Config    predictor.Config `json:"config"`
	Rounds    []roundDetail    `json:"rounds"`
	Eval      eval.EvalResult  `json:"eval"`
	Branches  map[string]int   `json:"branches"`
}

type roundDetail struct {
	Round     int    `json:"round"`
	Human     string `json:"human"`
	Machine   string `json:"machine"`
	Outcome   string `json:"outcome"`
	Branch    string `json:"branch,omitempty"`
	Predicted string `json:"predicted,omitempty"`
}

func runDetailMode(st *store.Store, sessionID string, jsonOut bool) error {
	sess, err := st.GetSession(sessionID)
	if err != nil {
		return err
	}
	rounds, err := st.ListRounds(sess.ID)
	if err != nil {
		return err
	}
	decisions, err := logging.ListDecisions(st.DB(), sess.ID)
	if err != nil {
		return err
	}
	byRound := make(map[int]logging.DecisionEntry, len(decisions))
	for _, d := range decisions {
		byRound[d.Round] = d
	}

	out := detailOutput{
		SessionID: sess.ID,
		Seed:      sess.Seed,
		CreatedAt: sess.CreatedAt.Format("2006-01-02T15:04:05Z"),
		Config:    sess.Config,
		Rounds:    make([]roundDetail, len(rounds)),
		Branches:  make(map[string]int),
	}
	samples := make([]eval.Sample, len(rounds))
	for i, r := range rounds {
		rd := roundDetail{
			Round:   r.Number,
			Human:   r.Human.String(),
			Machine: r.Machine.String(),
			Outcome: r.Outcome.String(),
		}
		samples[i] = eval.Sample{Human: r.Human, Machine: r.Machine}
		if d, ok := byRound[r.Number]; ok {
			rd.Branch = string(d.Branch)
			rd.Predicted = d.Predicted
			out.Branches[rd.Branch]++
			if p, err := move.FromName(d.Predicted); err == nil {
				samples[i].Predicted, samples[i].HasPrediction = p, true
			}
		}
		out.Rounds[i] = rd
	}
	out.Eval = eval.NewEvalHarness(eval.DefaultEvalConfig(), move.Standard()).Run(samples)

	if jsonOut {
		return printJSON(out)
	}

	fmt.Printf("Session:    %s\n", out.SessionID)
	fmt.Printf("Seed:       %d\n", out.Seed)
	fmt.Printf("Created:    %s\n", out.CreatedAt)
	fmt.Printf("Config:     window=%d exploration=%.2f markov_weight=%.2f markov=%t\n",
		sess.Config.WindowCapacity, sess.Config.ExplorationRate, sess.Config.MarkovWeight, sess.Config.UseMarkov)

	fmt.Printf("\n%-6s  %-9s  %-9s  %-11s  %-10s  %s\n", "Round", "Human", "Machine", "Outcome", "Branch", "Predicted")
	for _, r := range out.Rounds {
		fmt.Printf("%-6d  %-9s  %-9s  %-11s  %-10s  %s\n", r.Round, r.Human, r.Machine, r.Outcome, r.Branch, r.Predicted)
	}

	fmt.Printf("\nBranches:")
	for _, b := range []predictor.Branch{predictor.BranchExplore, predictor.BranchMarkov, predictor.BranchFrequency, predictor.BranchFallback} {
		fmt.Printf(" %s=%d", b, out.Branches[string(b)])
	}
	fmt.Println()

	fmt.Printf("\nEval (%d rounds):\n", out.Eval.Rounds)
	for _, m := range out.Eval.Metrics {
		status := "ok"
		if !m.Pass {
			status = "FAIL"
		}
		fmt.Printf("  %-22s %8.4f  %s\n", m.Name, m.Value, status)
	}
	if out.Eval.Reason != "" {
		fmt.Printf("  %s\n", out.Eval.Reason)
	}
	return nil
}

// #endregion detail-mode

// #region helpers

func shortID(id string) string {
	if len(id) > 12 {
		return id[:12]
	}
	return id
}

func printJSON(v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal json: %w", err)
	}
	fmt.Println(string(data))
	return nil
}

// #endregion helpers

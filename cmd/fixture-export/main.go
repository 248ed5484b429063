package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/danielpatrickdp/adaptive-rps/internal/logging"
	"github.com/danielpatrickdp/adaptive-rps/internal/move"
	"github.com/danielpatrickdp/adaptive-rps/internal/replay"
	"github.com/danielpatrickdp/adaptive-rps/internal/store"
	"github.com/golang/glog"
)

// #region main

func main() {
	dbPath := flag.String("db", "", "path to adaptive_rps.db")
	sessionID := flag.String("session", "", "session to export (default latest)")
	rounds := flag.Int("rounds", 0, "export only the first N rounds (0 exports all)")
	desc := flag.String("description", "", "fixture description")
	outPath := flag.String("out", "", "output fixture JSON path")
	flag.Set("logtostderr", "true")
	flag.Parse()
	defer glog.Flush()

	if *dbPath == "" || *outPath == "" {
		fmt.Fprintln(os.Stderr, "usage: fixture-export --db path/to/db --out path/to/fixture.json [--session id] [--rounds N]")
		os.Exit(2)
	}

	if err := run(*dbPath, *sessionID, *rounds, *desc, *outPath); err != nil {
		glog.Errorf("error: %v", err)
		glog.Flush()
		os.Exit(1)
	}
}

// #endregion main

// #region extract

func run(dbPath, sessionID string, limit int, desc, outPath string) error {
	st, err := store.NewStore(dbPath)
	if err != nil {
		return fmt.Errorf("open db: %w", err)
	}
	defer st.Close()

	var sess store.Session
	if sessionID == "" {
		sess, err = st.LatestSession()
	} else {
		sess, err = st.GetSession(sessionID)
	}
	if err != nil {
		return err
	}

	rounds, err := st.ListRounds(sess.ID)
	if err != nil {
		return err
	}
	if len(rounds) == 0 {
		return fmt.Errorf("session %s has no rounds", sess.ID)
	}
	// Replays always start from round 1, so only a prefix can be exported.
	if limit > 0 && limit < len(rounds) {
		rounds = rounds[:limit]
	}

	decisions, err := logging.ListDecisions(st.DB(), sess.ID)
	if err != nil {
		return err
	}
	branches := make(map[int]string, len(decisions))
	for _, d := range decisions {
		branches[d.Round] = string(d.Branch)
	}

	f := buildFixture(sess, rounds, branches, desc)
	if err := replay.WriteFixture(outPath, f); err != nil {
		return err
	}

	glog.Infof("exported %d rounds of session %s to %s", len(rounds), sess.ID, outPath)
	return nil
}

// #endregion extract

// #region build-fixture

func buildFixture(sess store.Session, rounds []store.RoundRecord, branches map[int]string, desc string) *replay.Fixture {
	if desc == "" {
		desc = fmt.Sprintf("exported from session %s", sess.ID)
	}
	f := &replay.Fixture{
		Description:     desc,
		SessionID:       sess.ID,
		Seed:            sess.Seed,
		Config:          sess.Config,
		HumanMoves:      make([]move.Move, len(rounds)),
		ExpectedResults: make([]replay.FixtureExpectedResult, len(rounds)),
	}
	for i, r := range rounds {
		f.HumanMoves[i] = r.Human
		f.ExpectedResults[i] = replay.FixtureExpectedResult{
			Round:   r.Number,
			Machine: r.Machine,
			Branch:  branches[r.Number],
		}
	}
	return f
}

// #endregion build-fixture

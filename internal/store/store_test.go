package store

import (
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/danielpatrickdp/adaptive-rps/internal/move"
	"github.com/danielpatrickdp/adaptive-rps/internal/predictor"
	_ "modernc.org/sqlite"
)

func tempDB(t *testing.T) *Store {
	t.Helper()
	dir := t.TempDir()
	s, err := NewStore(filepath.Join(dir, "test.db"))
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestCreateAndGetSession(t *testing.T) {
	s := tempDB(t)
	cfg := predictor.DefaultConfig()
	cfg.WindowCapacity = 12

	sess, err := s.CreateSession(cfg, 1<<63+5)
	if err != nil {
		t.Fatalf("CreateSession: %v", err)
	}
	if sess.ID == "" {
		t.Fatal("expected non-empty session ID")
	}

	got, err := s.GetSession(sess.ID)
	if err != nil {
		t.Fatalf("GetSession: %v", err)
	}
	if got.Seed != 1<<63+5 {
		t.Fatalf("seed did not round-trip: %d", got.Seed)
	}
	if got.Config != cfg {
		t.Fatalf("config did not round-trip: %+v", got.Config)
	}
}

func TestGetSessionNotFound(t *testing.T) {
	s := tempDB(t)
	_, err := s.GetSession("missing")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if _, err := s.LatestSession(); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound from empty store, got %v", err)
	}
}

func TestRecordAndListRounds(t *testing.T) {
	s := tempDB(t)
	sess, _ := s.CreateSession(predictor.DefaultConfig(), 1)

	rounds := []RoundRecord{
		{SessionID: sess.ID, Number: 1, Human: move.Rock, Machine: move.Paper, Outcome: move.SecondWins},
		{SessionID: sess.ID, Number: 2, Human: move.Scissors, Machine: move.Paper, Outcome: move.FirstWins},
		{SessionID: sess.ID, Number: 3, Human: move.Paper, Machine: move.Paper, Outcome: move.Tie},
	}
	for _, r := range rounds {
		if err := s.RecordRound(r); err != nil {
			t.Fatalf("RecordRound: %v", err)
		}
	}

	got, err := s.ListRounds(sess.ID)
	if err != nil {
		t.Fatalf("ListRounds: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("expected 3 rounds, got %d", len(got))
	}
	for i, r := range got {
		want := rounds[i]
		if r.Number != want.Number || r.Human != want.Human || r.Machine != want.Machine || r.Outcome != want.Outcome {
			t.Errorf("round %d: got %+v want %+v", i, r, want)
		}
		if r.CreatedAt.IsZero() {
			t.Errorf("round %d: expected created_at filled", i)
		}
	}
}

func TestRecordRoundDuplicateFails(t *testing.T) {
	s := tempDB(t)
	sess, _ := s.CreateSession(predictor.DefaultConfig(), 1)
	r := RoundRecord{SessionID: sess.ID, Number: 1, Human: move.Rock, Machine: move.Rock, Outcome: move.Tie}
	if err := s.RecordRound(r); err != nil {
		t.Fatalf("RecordRound: %v", err)
	}
	if err := s.RecordRound(r); err == nil {
		t.Fatal("expected primary key violation")
	}
}

func TestRecordRoundUnknownSessionFails(t *testing.T) {
	s := tempDB(t)
	err := s.RecordRound(RoundRecord{SessionID: "nope", Number: 1, Human: move.Rock, Machine: move.Rock})
	if err == nil {
		t.Fatal("expected foreign key violation")
	}
}

func TestListSessionsTallies(t *testing.T) {
	s := tempDB(t)
	first, _ := s.CreateSession(predictor.DefaultConfig(), 1)
	time.Sleep(2 * time.Millisecond)
	second, _ := s.CreateSession(predictor.DefaultConfig(), 2)

	s.RecordRound(RoundRecord{SessionID: first.ID, Number: 1, Human: move.Rock, Machine: move.Scissors, Outcome: move.FirstWins})
	s.RecordRound(RoundRecord{SessionID: first.ID, Number: 2, Human: move.Rock, Machine: move.Paper, Outcome: move.SecondWins})
	s.RecordRound(RoundRecord{SessionID: first.ID, Number: 3, Human: move.Rock, Machine: move.Paper, Outcome: move.SecondWins})

	list, err := s.ListSessions(10)
	if err != nil {
		t.Fatalf("ListSessions: %v", err)
	}
	if len(list) != 2 {
		t.Fatalf("expected 2 sessions, got %d", len(list))
	}
	if list[0].ID != second.ID {
		t.Fatalf("expected newest first, got %s", list[0].ID)
	}
	if list[0].Rounds != 0 {
		t.Fatalf("expected empty tally for second session, got %+v", list[0])
	}
	got := list[1]
	if got.Rounds != 3 || got.HumanWins != 1 || got.MachineWins != 2 || got.Ties != 0 {
		t.Fatalf("unexpected tally %+v", got)
	}

	latest, err := s.LatestSession()
	if err != nil {
		t.Fatalf("LatestSession: %v", err)
	}
	if latest.ID != second.ID {
		t.Fatalf("expected latest %s, got %s", second.ID, latest.ID)
	}
}

func TestLatestSessionSubSecondOrder(t *testing.T) {
	s := tempDB(t)
	base := time.Date(2026, 3, 1, 12, 0, 1, 0, time.UTC)

	older, err := s.createSessionAt(predictor.DefaultConfig(), 1, base.Add(100*time.Millisecond))
	if err != nil {
		t.Fatalf("createSessionAt: %v", err)
	}
	newer, err := s.createSessionAt(predictor.DefaultConfig(), 2, base.Add(150*time.Millisecond))
	if err != nil {
		t.Fatalf("createSessionAt: %v", err)
	}

	latest, err := s.LatestSession()
	if err != nil {
		t.Fatalf("LatestSession: %v", err)
	}
	if latest.ID != newer.ID {
		t.Fatalf("expected %s (newer), got %s (older is %s)", newer.ID, latest.ID, older.ID)
	}
	if !latest.CreatedAt.Equal(newer.CreatedAt) {
		t.Fatalf("created_at did not round-trip: %v", latest.CreatedAt)
	}

	list, err := s.ListSessions(10)
	if err != nil {
		t.Fatalf("ListSessions: %v", err)
	}
	if len(list) != 2 || list[0].ID != newer.ID || list[1].ID != older.ID {
		t.Fatalf("unexpected order %+v", list)
	}
}

func TestLatestSessionSameTimestamp(t *testing.T) {
	s := tempDB(t)
	at := time.Date(2026, 3, 1, 12, 0, 1, 0, time.UTC)
	s.createSessionAt(predictor.DefaultConfig(), 1, at)
	second, _ := s.createSessionAt(predictor.DefaultConfig(), 2, at)

	latest, err := s.LatestSession()
	if err != nil {
		t.Fatalf("LatestSession: %v", err)
	}
	if latest.ID != second.ID {
		t.Fatalf("expected the later insert %s, got %s", second.ID, latest.ID)
	}
}

package store

import (
	"errors"
	"time"

	"github.com/danielpatrickdp/adaptive-rps/internal/move"
	"github.com/danielpatrickdp/adaptive-rps/internal/predictor"
)

// ErrNotFound is returned when a session does not exist.
var ErrNotFound = errors.New("not found")

// #region session
// Session is one play session. Seed drives the session's random source so
// the machine's moves can be replayed exactly.
type Session struct {
	ID        string
	Seed      uint64
	Config    predictor.Config
	CreatedAt time.Time
}

// SessionSummary pairs a session with its round tally.
type SessionSummary struct {
	Session
	Rounds      int
	HumanWins   int
	MachineWins int
	Ties        int
}

// #endregion session

// #region round-record
// RoundRecord is one persisted round. Outcome is from the human's side.
type RoundRecord struct {
	SessionID string
	Number    int
	Human     move.Move
	Machine   move.Move
	Outcome   move.Outcome
	CreatedAt time.Time
}

// #endregion round-record

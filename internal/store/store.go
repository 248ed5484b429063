package store

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/danielpatrickdp/adaptive-rps/internal/move"
	"github.com/danielpatrickdp/adaptive-rps/internal/predictor"
	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

// #region schema
const schema = `
CREATE TABLE IF NOT EXISTS sessions (
	session_id    TEXT PRIMARY KEY,
	seed          INTEGER NOT NULL,
	config_json   TEXT NOT NULL,
	created_at    TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS rounds (
	session_id    TEXT NOT NULL,
	round_no      INTEGER NOT NULL,
	human_move    TEXT NOT NULL,
	machine_move  TEXT NOT NULL,
	outcome       TEXT NOT NULL,
	created_at    TEXT NOT NULL,
	PRIMARY KEY (session_id, round_no),
	FOREIGN KEY (session_id) REFERENCES sessions(session_id)
);

CREATE TABLE IF NOT EXISTS decision_log (
	id            INTEGER PRIMARY KEY AUTOINCREMENT,
	session_id    TEXT NOT NULL,
	round_no      INTEGER NOT NULL,
	branch        TEXT NOT NULL,
	predicted     TEXT,
	machine_move  TEXT NOT NULL,
	human_move    TEXT NOT NULL,
	record_json   TEXT,
	created_at    TEXT NOT NULL,
	FOREIGN KEY (session_id) REFERENCES sessions(session_id)
);
`

// timeLayout is fixed-width so created_at sorts correctly as text.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

// #endregion schema

// #region store-struct
// Store persists sessions and rounds in SQLite.
type Store struct {
	db *sql.DB
}

// #endregion store-struct

// #region constructor
// NewStore opens a SQLite database and runs migrations.
func NewStore(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		return nil, fmt.Errorf("pragma: %w", err)
	}
	if _, err := db.Exec("PRAGMA foreign_keys=ON"); err != nil {
		return nil, fmt.Errorf("pragma fk: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return &Store{db: db}, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// DB returns the underlying *sql.DB for use by other packages (e.g. logging).
func (s *Store) DB() *sql.DB {
	return s.db
}

// #endregion constructor

// #region sessions
// CreateSession inserts a new session with a fresh ID.
func (s *Store) CreateSession(config predictor.Config, seed uint64) (Session, error) {
	return s.createSessionAt(config, seed, time.Now().UTC())
}

func (s *Store) createSessionAt(config predictor.Config, seed uint64, at time.Time) (Session, error) {
	sess := Session{
		ID:        uuid.New().String(),
		Seed:      seed,
		Config:    config,
		CreatedAt: at,
	}
	cfgJSON, err := json.Marshal(config)
	if err != nil {
		return Session{}, fmt.Errorf("marshal config: %w", err)
	}
	_, err = s.db.Exec(
		`INSERT INTO sessions (session_id, seed, config_json, created_at) VALUES (?, ?, ?, ?)`,
		sess.ID, int64(seed), string(cfgJSON), sess.CreatedAt.UTC().Format(timeLayout),
	)
	if err != nil {
		return Session{}, fmt.Errorf("insert session: %w", err)
	}
	return sess, nil
}

// GetSession retrieves a session by ID.
func (s *Store) GetSession(id string) (Session, error) {
	row := s.db.QueryRow(
		`SELECT session_id, seed, config_json, created_at FROM sessions WHERE session_id = ?`, id,
	)
	sess, err := scanSession(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Session{}, fmt.Errorf("session %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return Session{}, fmt.Errorf("get session %s: %w", id, err)
	}
	return sess, nil
}

// LatestSession returns the most recently created session.
func (s *Store) LatestSession() (Session, error) {
	row := s.db.QueryRow(
		`SELECT session_id, seed, config_json, created_at FROM sessions ORDER BY created_at DESC, rowid DESC LIMIT 1`,
	)
	sess, err := scanSession(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Session{}, fmt.Errorf("latest session: %w", ErrNotFound)
	}
	if err != nil {
		return Session{}, fmt.Errorf("latest session: %w", err)
	}
	return sess, nil
}

// ListSessions returns the most recent sessions with their round tallies.
func (s *Store) ListSessions(limit int) ([]SessionSummary, error) {
	rows, err := s.db.Query(
		`SELECT s.session_id, s.seed, s.config_json, s.created_at,
		        COUNT(r.round_no),
		        COALESCE(SUM(r.outcome = 'first_wins'), 0),
		        COALESCE(SUM(r.outcome = 'second_wins'), 0),
		        COALESCE(SUM(r.outcome = 'tie'), 0)
		 FROM sessions s LEFT JOIN rounds r ON r.session_id = s.session_id
		 GROUP BY s.session_id
		 ORDER BY s.created_at DESC, s.rowid DESC LIMIT ?`, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("list sessions: %w", err)
	}
	defer rows.Close()

	var out []SessionSummary
	for rows.Next() {
		var sum SessionSummary
		var seed int64
		var cfgJSON, createdStr string
		if err := rows.Scan(&sum.ID, &seed, &cfgJSON, &createdStr,
			&sum.Rounds, &sum.HumanWins, &sum.MachineWins, &sum.Ties); err != nil {
			return nil, fmt.Errorf("scan row: %w", err)
		}
		sum.Seed = uint64(seed)
		if err := json.Unmarshal([]byte(cfgJSON), &sum.Config); err != nil {
			return nil, fmt.Errorf("unmarshal config: %w", err)
		}
		sum.CreatedAt, _ = time.Parse(time.RFC3339Nano, createdStr)
		out = append(out, sum)
	}
	return out, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanSession(row rowScanner) (Session, error) {
	var sess Session
	var seed int64
	var cfgJSON, createdStr string
	if err := row.Scan(&sess.ID, &seed, &cfgJSON, &createdStr); err != nil {
		return Session{}, err
	}
	sess.Seed = uint64(seed)
	if err := json.Unmarshal([]byte(cfgJSON), &sess.Config); err != nil {
		return Session{}, fmt.Errorf("unmarshal config: %w", err)
	}
	sess.CreatedAt, _ = time.Parse(time.RFC3339Nano, createdStr)
	return sess, nil
}

// #endregion sessions

// #region rounds
// RecordRound appends a round to its session.
func (s *Store) RecordRound(rec RoundRecord) error {
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now().UTC()
	}
	_, err := s.db.Exec(
		`INSERT INTO rounds (session_id, round_no, human_move, machine_move, outcome, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		rec.SessionID, rec.Number, rec.Human.String(), rec.Machine.String(),
		rec.Outcome.String(), rec.CreatedAt.UTC().Format(timeLayout),
	)
	if err != nil {
		return fmt.Errorf("insert round: %w", err)
	}
	return nil
}

// ListRounds returns a session's rounds in play order.
func (s *Store) ListRounds(sessionID string) ([]RoundRecord, error) {
	rows, err := s.db.Query(
		`SELECT session_id, round_no, human_move, machine_move, outcome, created_at
		 FROM rounds WHERE session_id = ? ORDER BY round_no ASC`, sessionID,
	)
	if err != nil {
		return nil, fmt.Errorf("list rounds: %w", err)
	}
	defer rows.Close()

	var out []RoundRecord
	for rows.Next() {
		var rec RoundRecord
		var human, machine, outcome, createdStr string
		if err := rows.Scan(&rec.SessionID, &rec.Number, &human, &machine, &outcome, &createdStr); err != nil {
			return nil, fmt.Errorf("scan row: %w", err)
		}
		if rec.Human, err = move.FromName(human); err != nil {
			return nil, fmt.Errorf("round %d human move: %w", rec.Number, err)
		}
		if rec.Machine, err = move.FromName(machine); err != nil {
			return nil, fmt.Errorf("round %d machine move: %w", rec.Number, err)
		}
		if rec.Outcome, err = parseOutcome(outcome); err != nil {
			return nil, fmt.Errorf("round %d: %w", rec.Number, err)
		}
		rec.CreatedAt, _ = time.Parse(time.RFC3339Nano, createdStr)
		out = append(out, rec)
	}
	return out, rows.Err()
}

func parseOutcome(s string) (move.Outcome, error) {
	for _, o := range []move.Outcome{move.Tie, move.FirstWins, move.SecondWins} {
		if o.String() == s {
			return o, nil
		}
	}
	return 0, fmt.Errorf("unknown outcome %q", s)
}

// #endregion rounds

package logging

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/danielpatrickdp/adaptive-rps/internal/move"
	"github.com/danielpatrickdp/adaptive-rps/internal/predictor"
)

// #region log-decision
// LogDecision writes an entry to the decision_log table.
func LogDecision(db *sql.DB, entry DecisionEntry) error {
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now().UTC()
	}

	_, err := db.Exec(
		`INSERT INTO decision_log (session_id, round_no, branch, predicted, machine_move, human_move, record_json, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		entry.SessionID,
		entry.Round,
		string(entry.Branch),
		nullIfEmpty(entry.Predicted),
		entry.Machine,
		entry.Human,
		nullIfEmpty(entry.RecordJSON),
		entry.CreatedAt.Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("log decision: %w", err)
	}
	return nil
}

// #endregion log-decision

// #region list-decisions
// ListDecisions returns a session's decision entries in round order.
func ListDecisions(db *sql.DB, sessionID string) ([]DecisionEntry, error) {
	rows, err := db.Query(
		`SELECT session_id, round_no, branch, predicted, machine_move, human_move, record_json, created_at
		 FROM decision_log WHERE session_id = ? ORDER BY round_no ASC, id ASC`, sessionID,
	)
	if err != nil {
		return nil, fmt.Errorf("list decisions: %w", err)
	}
	defer rows.Close()

	var out []DecisionEntry
	for rows.Next() {
		var e DecisionEntry
		var branch, createdStr string
		var predicted, record sql.NullString
		if err := rows.Scan(&e.SessionID, &e.Round, &branch, &predicted, &e.Machine, &e.Human, &record, &createdStr); err != nil {
			return nil, fmt.Errorf("scan row: %w", err)
		}
		e.Branch = predictor.Branch(branch)
		e.Predicted = predicted.String
		e.RecordJSON = record.String
		e.CreatedAt, _ = time.Parse(time.RFC3339Nano, createdStr)
		out = append(out, e)
	}
	return out, rows.Err()
}

// #endregion list-decisions

// #region snapshot
// Snapshot builds a DecisionRecord from the predictor as it stood when
// choice was made. Call it before Observe.
func Snapshot(round int, choice predictor.Choice, p *predictor.Predictor) DecisionRecord {
	cfg := p.Config()
	rec := DecisionRecord{
		Round:       round,
		Branch:      string(choice.Branch),
		Frequencies: byName(p.Frequencies()),
		WindowLen:   len(p.Window()),
		Thresholds: DecisionThresholds{
			WindowCapacity:  cfg.WindowCapacity,
			ExplorationRate: cfg.ExplorationRate,
			MarkovWeight:    cfg.MarkovWeight,
			UseMarkov:       cfg.UseMarkov,
		},
	}
	if last, ok := p.Last(); ok {
		rec.LastHuman = last.String()
		if row := p.TransitionsFrom(last); len(row) > 0 {
			rec.MarkovRow = byName(row)
		}
	}
	return rec
}

// #endregion snapshot

// #region helpers
func nullIfEmpty(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}

func byName(counts map[move.Move]int) map[string]int {
	out := make(map[string]int, len(counts))
	for m, c := range counts {
		out[m.String()] = c
	}
	return out
}

// #endregion helpers

// internal/store/history.go
//
// SQLite-backed history of finished rounds. This is the external
// collaborator the skill estimator reads from: it hands out immutable
// snapshots of closed rounds and never exposes in-progress state.
// Schema lives in ./sql migrations (rounds, users tables).

package store

import (
	"context"
	"database/sql"
	"time"

	"github.com/robalobadob/wordletrack/internal/puzzle"
	"github.com/robalobadob/wordletrack/internal/skill"
)

// History persists finished rounds and serves round snapshots.
type History struct {
	db *sql.DB
}

// NewHistory wraps an open database handle.
func NewHistory(db *sql.DB) *History {
	return &History{db: db}
}

// RecordRound inserts a finished round. Exactly one of userID or
// anonID identifies the owner.
func (h *History) RecordRound(ctx context.Context, userID, anonID string, s *puzzle.Session) error {
	outcome := s.Outcome()
	var uid, aid any
	if userID != "" {
		uid = userID
	} else {
		aid = anonID
	}
	_, err := h.db.ExecContext(ctx, `
        INSERT INTO rounds
            (id, user_id, anonymous_id, level, word, attempts, hints_used, won, started_at, duration_ms)
        VALUES (?,?,?,?,?,?,?,?,?,?)`,
		s.ID, uid, aid, s.Level.Len(), s.Hidden,
		len(s.Attempts), s.HintsUsed, outcome == puzzle.OutcomeWon,
		s.StartedAt.UTC().Format(time.RFC3339), s.Duration().Milliseconds(),
	)
	return err
}

// RoundsFor returns the closed rounds of one player, oldest first.
func (h *History) RoundsFor(ctx context.Context, userID string) ([]skill.Round, error) {
	rows, err := h.db.QueryContext(ctx, `
        SELECT attempts, hints_used, won, duration_ms
        FROM rounds
        WHERE user_id=?
        ORDER BY started_at ASC`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanRounds(rows)
}

// AllVectors summarizes every user's closed rounds into performance
// vectors. The returned map is a snapshot; tier assignment over it
// replaces, never patches, prior assignments.
func (h *History) AllVectors(ctx context.Context) (map[string]skill.Vector, error) {
	rows, err := h.db.QueryContext(ctx, `
        SELECT user_id, attempts, hints_used, won, duration_ms
        FROM rounds
        WHERE user_id IS NOT NULL
        ORDER BY user_id, started_at ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	byUser := make(map[string][]skill.Round)
	for rows.Next() {
		var (
			uid        string
			r          skill.Round
			durationMs int64
		)
		if err := rows.Scan(&uid, &r.Attempts, &r.HintsUsed, &r.Won, &durationMs); err != nil {
			return nil, err
		}
		r.Duration = time.Duration(durationMs) * time.Millisecond
		byUser[uid] = append(byUser[uid], r)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	out := make(map[string]skill.Vector, len(byUser))
	for uid, rounds := range byUser {
		out[uid] = skill.Summarize(rounds)
	}
	return out, nil
}

// ClaimAnonRounds transfers anonymous rounds to a user account after
// signup or login.
func (h *History) ClaimAnonRounds(ctx context.Context, anonID, userID string) error {
	if anonID == "" || userID == "" {
		return nil
	}
	_, err := h.db.ExecContext(ctx,
		`UPDATE rounds SET user_id=?, anonymous_id=NULL WHERE anonymous_id=?`, userID, anonID)
	return err
}

func scanRounds(rows *sql.Rows) ([]skill.Round, error) {
	var out []skill.Round
	for rows.Next() {
		var (
			r          skill.Round
			durationMs int64
		)
		if err := rows.Scan(&r.Attempts, &r.HintsUsed, &r.Won, &durationMs); err != nil {
			return nil, err
		}
		r.Duration = time.Duration(durationMs) * time.Millisecond
		out = append(out, r)
	}
	return out, rows.Err()
}

package tape

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/roach88/tally/internal/engine"
)

// GetSession returns the session with the given ID, wrapping
// ErrSessionNotFound when there is none.
func (s *Store) GetSession(ctx context.Context, id string) (Session, error) {
	var sess Session
	err := s.db.QueryRowContext(ctx, `
		SELECT s.id, s.started_at_seq, s.label, COUNT(st.seq)
		FROM sessions s
		LEFT JOIN steps st ON st.session_id = s.id
		WHERE s.id = ?
		GROUP BY s.id
	`, id).Scan(&sess.ID, &sess.StartedAtSeq, &sess.Label, &sess.StepCount)
	if errors.Is(err, sql.ErrNoRows) {
		return Session{}, fmt.Errorf("get session %s: %w", id, ErrSessionNotFound)
	}
	if err != nil {
		return Session{}, fmt.Errorf("get session %s: %w", id, err)
	}
	return sess, nil
}

// ListSessions returns all sessions in creation order. A non-empty label
// restricts the list to sessions with that label.
//
// Returns an empty slice (not nil) when there are none.
func (s *Store) ListSessions(ctx context.Context, label string) ([]Session, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT s.id, s.started_at_seq, s.label, COUNT(st.seq)
		FROM sessions s
		LEFT JOIN steps st ON st.session_id = s.id
		WHERE ? = '' OR s.label = ?
		GROUP BY s.id
		ORDER BY s.id COLLATE BINARY ASC
	`, label, label)
	if err != nil {
		return nil, fmt.Errorf("query sessions: %w", err)
	}
	defer rows.Close()

	sessions := []Session{}
	for rows.Next() {
		var sess Session
		if err := rows.Scan(&sess.ID, &sess.StartedAtSeq, &sess.Label, &sess.StepCount); err != nil {
			return nil, fmt.Errorf("scan session: %w", err)
		}
		sessions = append(sessions, sess)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate sessions: %w", err)
	}
	return sessions, nil
}

// ReadSteps returns a session's steps ordered by seq. Wraps
// ErrSessionNotFound when the session does not exist; a session with no
// steps yields an empty slice.
func (s *Store) ReadSteps(ctx context.Context, sessionID string) ([]StepRecord, error) {
	if _, err := s.GetSession(ctx, sessionID); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT session_id, seq, key, command, display, result_shown
		FROM steps
		WHERE session_id = ?
		ORDER BY seq ASC
	`, sessionID)
	if err != nil {
		return nil, fmt.Errorf("query steps: %w", err)
	}
	defer rows.Close()

	steps := []StepRecord{}
	for rows.Next() {
		rec, err := scanStep(rows)
		if err != nil {
			return nil, err
		}
		steps = append(steps, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate steps: %w", err)
	}
	return steps, nil
}

func scanStep(rows *sql.Rows) (StepRecord, error) {
	var (
		rec         StepRecord
		command     string
		resultShown int
	)
	if err := rows.Scan(&rec.SessionID, &rec.Seq, &rec.Key, &command, &rec.Display, &resultShown); err != nil {
		return StepRecord{}, fmt.Errorf("scan step: %w", err)
	}
	c, err := engine.ParseCommand(command)
	if err != nil {
		return StepRecord{}, fmt.Errorf("step %d: %w", rec.Seq, err)
	}
	rec.Command = c
	rec.ResultShown = resultShown != 0
	return rec, nil
}

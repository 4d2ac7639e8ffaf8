package tape

import (
	"context"
	"fmt"

	"github.com/google/uuid"
)

// CreateSession inserts a new session whose steps will start after
// startedAtSeq. The ID is a fresh UUIDv7.
func (s *Store) CreateSession(ctx context.Context, label string, startedAtSeq int64) (Session, error) {
	sess := Session{
		ID:           uuid.Must(uuid.NewV7()).String(),
		StartedAtSeq: startedAtSeq,
		Label:        label,
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO sessions (id, started_at_seq, label)
		VALUES (?, ?, ?)
	`, sess.ID, sess.StartedAtSeq, sess.Label)
	if err != nil {
		return Session{}, fmt.Errorf("create session: %w", err)
	}
	return sess, nil
}

// WriteStep appends a step to its session. A step whose (session, seq) is
// already recorded is ignored. The session must exist.
func (s *Store) WriteStep(ctx context.Context, rec StepRecord) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO steps (session_id, seq, key, command, display, result_shown)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(session_id, seq) DO NOTHING
	`,
		rec.SessionID,
		rec.Seq,
		rec.Key,
		rec.Command.String(),
		rec.Display,
		boolToInt(rec.ResultShown),
	)
	if err != nil {
		return fmt.Errorf("write step: %w", err)
	}
	return nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

package tape

import (
	"errors"

	"github.com/roach88/tally/internal/engine"
)

// ErrSessionNotFound is returned when a session ID has no sessions row.
var ErrSessionNotFound = errors.New("session not found")

// Session is one recorded run of an engine.
type Session struct {
	ID           string `json:"id"`
	StartedAtSeq int64  `json:"started_at_seq"`
	Label        string `json:"label,omitempty"`
	StepCount    int    `json:"step_count"`
}

// StepRecord is an engine.Step together with the key that caused it.
type StepRecord struct {
	SessionID   string         `json:"session_id"`
	Seq         int64          `json:"seq"`
	Key         string         `json:"key"`
	Command     engine.Command `json:"command"`
	Display     string         `json:"display"`
	ResultShown bool           `json:"result_shown"`
}

// NewStepRecord pairs s with its session and key.
func NewStepRecord(sessionID, key string, s engine.Step) StepRecord {
	return StepRecord{
		SessionID:   sessionID,
		Seq:         s.Seq,
		Key:         key,
		Command:     s.Command,
		Display:     s.Display,
		ResultShown: s.ResultShown,
	}
}

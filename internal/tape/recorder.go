package tape

import (
	"context"
	"log/slog"

	"github.com/roach88/tally/internal/engine"
)

// Recorder writes engine Steps to a session. Register it with
// engine.WithObserver and route key presses through Press so each Step is
// stored with the key that produced it.
//
// A Recorder is not safe for concurrent use; it belongs to one engine.
type Recorder struct {
	ctx     context.Context
	store   *Store
	session string
	logger  *slog.Logger

	key string
	err error
}

// NewRecorder returns a recorder for sessionID. ctx bounds every write.
func NewRecorder(ctx context.Context, s *Store, sessionID string, logger *slog.Logger) *Recorder {
	if logger == nil {
		logger = slog.Default()
	}
	return &Recorder{ctx: ctx, store: s, session: sessionID, logger: logger}
}

// SessionID returns the session being recorded.
func (r *Recorder) SessionID() string {
	return r.session
}

// Press runs apply with key as the label for any Step it emits. It returns
// apply's error, or else the first write error since the previous Press.
func (r *Recorder) Press(key string, apply func() error) error {
	r.key = key
	r.err = nil
	defer func() { r.key = "" }()

	if err := apply(); err != nil {
		return err
	}
	return r.err
}

// Observe implements engine.Observer. Steps emitted outside Press are
// stored with the command string as their key.
func (r *Recorder) Observe(s engine.Step) {
	key := r.key
	if key == "" {
		key = s.Command.String()
	}
	err := r.store.WriteStep(r.ctx, NewStepRecord(r.session, key, s))
	if err != nil {
		r.logger.Warn("record step failed", "session", r.session, "seq", s.Seq, "error", err)
		if r.err == nil {
			r.err = err
		}
		return
	}
	r.logger.Debug("recorded step", "session", r.session, "seq", s.Seq, "key", key, "display", s.Display)
}

package tape

import (
	"context"
	"fmt"

	"github.com/roach88/tally/internal/engine"
)

// Divergence is the first recorded step that a replay did not reproduce.
type Divergence struct {
	Seq             int64          `json:"seq"`
	Key             string         `json:"key"`
	Command         engine.Command `json:"command"`
	WantDisplay     string         `json:"want_display"`
	GotDisplay      string         `json:"got_display"`
	WantResultShown bool           `json:"want_result_shown"`
	GotResultShown  bool           `json:"got_result_shown"`
}

func (d *Divergence) String() string {
	return fmt.Sprintf("seq %d (%s, key %q): display %q result_shown=%t, recorded %q result_shown=%t",
		d.Seq, d.Command, d.Key, d.GotDisplay, d.GotResultShown, d.WantDisplay, d.WantResultShown)
}

// ReplayResult summarizes a replay.
type ReplayResult struct {
	SessionID    string      `json:"session_id"`
	Steps        int         `json:"steps"`
	FinalDisplay string      `json:"final_display"`
	Divergence   *Divergence `json:"divergence,omitempty"`
}

// Identical reports whether every recorded step was reproduced.
func (r ReplayResult) Identical() bool {
	return r.Divergence == nil
}

// Replay re-runs a session's recorded commands on a fresh engine whose
// clock starts at the session's started_at_seq, comparing each resulting
// Step with the recording. It stops at the first divergence.
//
// opts are passed to engine.New after the clock option; callers use them
// for logging.
func (s *Store) Replay(ctx context.Context, sessionID string, opts ...engine.EngineOption) (ReplayResult, error) {
	sess, err := s.GetSession(ctx, sessionID)
	if err != nil {
		return ReplayResult{}, fmt.Errorf("replay: %w", err)
	}
	steps, err := s.ReadSteps(ctx, sessionID)
	if err != nil {
		return ReplayResult{}, fmt.Errorf("replay: %w", err)
	}

	var last engine.Step
	capture := engine.ObserverFunc(func(st engine.Step) { last = st })
	eopts := append([]engine.EngineOption{
		engine.WithClock(engine.NewClockAt(sess.StartedAtSeq)),
		engine.WithObserver(capture),
	}, opts...)
	e := engine.New(eopts...)

	result := ReplayResult{SessionID: sessionID}
	for _, rec := range steps {
		if err := ctx.Err(); err != nil {
			return result, fmt.Errorf("replay: %w", err)
		}
		if err := e.Apply(rec.Command); err != nil {
			return result, fmt.Errorf("replay seq %d: %w", rec.Seq, err)
		}
		result.Steps++
		result.FinalDisplay = last.Display

		if last.Seq != rec.Seq || last.Display != rec.Display || last.ResultShown != rec.ResultShown {
			result.Divergence = &Divergence{
				Seq:             rec.Seq,
				Key:             rec.Key,
				Command:         rec.Command,
				WantDisplay:     rec.Display,
				GotDisplay:      last.Display,
				WantResultShown: rec.ResultShown,
				GotResultShown:  last.ResultShown,
			}
			return result, nil
		}
	}
	if len(steps) == 0 {
		result.FinalDisplay = e.Display()
	}
	return result, nil
}

package harness

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/roach88/tally/internal/engine"
	"github.com/roach88/tally/internal/keymap"
	"github.com/roach88/tally/internal/tape"
)

// Harness holds the per-run wiring: one engine, one keymap, one tape.
type Harness struct {
	store    *tape.Store
	engine   *engine.Engine
	keymap   *keymap.Keymap
	recorder *tape.Recorder
	session  string
	logger   *slog.Logger
}

// Run executes a scenario and returns the result.
//
// Each run uses a fresh engine and a private in-memory tape, so scenarios
// are isolated and sequence numbers always start at 1. A non-nil error
// means the scenario could not be executed; failed expectations are
// reported in Result.Errors instead.
func Run(scenario *Scenario) (*Result, error) {
	ctx := context.Background()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	km := keymap.Default()
	if scenario.Keymap != "" {
		loaded, err := keymap.LoadFile(scenario.Keymap)
		if err != nil {
			return nil, fmt.Errorf("load keymap: %w", err)
		}
		km = loaded
	}

	st, err := tape.Open(":memory:")
	if err != nil {
		return nil, fmt.Errorf("create in-memory tape: %w", err)
	}
	defer st.Close()

	sess, err := st.CreateSession(ctx, scenario.Name, 0)
	if err != nil {
		return nil, err
	}

	rec := tape.NewRecorder(ctx, st, sess.ID, logger)
	h := &Harness{
		store:    st,
		engine:   engine.New(engine.WithLogger(logger), engine.WithObserver(rec)),
		keymap:   km,
		recorder: rec,
		session:  sess.ID,
		logger:   logger,
	}

	result := NewResult()
	if err := h.executeFlow(scenario.Flow, result); err != nil {
		return nil, fmt.Errorf("execute flow: %w", err)
	}

	result.Display = h.engine.Display()
	result.ResultShown = h.engine.ResultShown()
	checkFinal(scenario.Expect, result)

	steps, err := st.ReadSteps(ctx, sess.ID)
	if err != nil {
		return nil, fmt.Errorf("read trace: %w", err)
	}
	for _, s := range steps {
		result.Trace = append(result.Trace, traceEventFromStep(s))
	}

	for _, msg := range EvaluateAssertions(result, scenario.Assertions) {
		result.AddError(msg)
	}

	if err := h.verifyReplay(ctx, result); err != nil {
		return nil, err
	}

	return result, nil
}

// executeFlow presses each key in turn and checks per-step expectations.
func (h *Harness) executeFlow(flow []FlowStep, result *Result) error {
	for i, step := range flow {
		handled := false
		err := h.recorder.Press(step.Press, func() error {
			var err error
			handled, err = h.keymap.Press(h.engine, step.Press)
			return err
		})
		if err != nil {
			return fmt.Errorf("flow step %d: %w", i, err)
		}
		if !handled {
			result.AddError(fmt.Sprintf("flow[%d]: key %q is not bound", i, step.Press))
			continue
		}

		h.logger.Debug("flow step completed",
			"step", i,
			"key", step.Press,
			"display", h.engine.Display(),
		)

		if step.Expect != "" && h.engine.Display() != step.Expect {
			result.AddError(fmt.Sprintf("flow[%d] press %q: display %q, expected %q",
				i, step.Press, h.engine.Display(), step.Expect))
		}
		if step.ResultShown != nil && h.engine.ResultShown() != *step.ResultShown {
			result.AddError(fmt.Sprintf("flow[%d] press %q: result_shown %t, expected %t",
				i, step.Press, h.engine.ResultShown(), *step.ResultShown))
		}
	}
	return nil
}

func checkFinal(expect *FinalExpect, result *Result) {
	if expect == nil {
		return
	}
	if expect.Display != "" && result.Display != expect.Display {
		result.AddError(fmt.Sprintf("final display %q, expected %q", result.Display, expect.Display))
	}
	if expect.ResultShown != nil && result.ResultShown != *expect.ResultShown {
		result.AddError(fmt.Sprintf("final result_shown %t, expected %t", result.ResultShown, *expect.ResultShown))
	}
}

// verifyReplay re-runs the recorded session; any divergence means the
// engine is not deterministic and fails the scenario.
func (h *Harness) verifyReplay(ctx context.Context, result *Result) error {
	replay, err := h.store.Replay(ctx, h.session, engine.WithLogger(h.logger))
	if err != nil {
		return fmt.Errorf("replay: %w", err)
	}
	if !replay.Identical() {
		result.AddError("replay diverged at " + replay.Divergence.String())
	}
	return nil
}

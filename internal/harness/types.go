package harness

import "github.com/roach88/tally/internal/tape"

// TraceEvent is one recorded step.
type TraceEvent struct {
	Seq         int64  `json:"seq"`
	Key         string `json:"key"`
	Command     string `json:"command"`
	Display     string `json:"display"`
	ResultShown bool   `json:"result_shown"`
}

func traceEventFromStep(rec tape.StepRecord) TraceEvent {
	return TraceEvent{
		Seq:         rec.Seq,
		Key:         rec.Key,
		Command:     rec.Command.String(),
		Display:     rec.Display,
		ResultShown: rec.ResultShown,
	}
}

// Result is the outcome of a scenario run.
type Result struct {
	// Pass is true when every expectation and assertion held.
	Pass bool `json:"pass"`

	// Trace is every step in order, as read back from the tape.
	Trace []TraceEvent `json:"trace"`

	// Errors lists failed checks. Empty when Pass is true.
	Errors []string `json:"errors,omitempty"`

	// Display and ResultShown are the engine's final state.
	Display     string `json:"display"`
	ResultShown bool   `json:"result_shown"`
}

// NewResult returns a passing result with no trace.
func NewResult() *Result {
	return &Result{
		Pass:   true,
		Trace:  []TraceEvent{},
		Errors: []string{},
	}
}

// AddError records a failed check and marks the result as failed.
func (r *Result) AddError(err string) {
	r.Errors = append(r.Errors, err)
	r.Pass = false
}

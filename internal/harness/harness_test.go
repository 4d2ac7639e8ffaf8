package harness

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func boolPtr(b bool) *bool { return &b }

func TestRun_Pass(t *testing.T) {
	s := &Scenario{
		Name:        "addition",
		Description: "adds",
		Flow: []FlowStep{
			{Press: "1"},
			{Press: "+"},
			{Press: "2"},
			{Press: "=", Expect: "3", ResultShown: boolPtr(true)},
		},
		Expect: &FinalExpect{Display: "3", ResultShown: boolPtr(true)},
	}

	result, err := Run(s)
	require.NoError(t, err)
	assert.True(t, result.Pass, "errors: %v", result.Errors)
	assert.Empty(t, result.Errors)
	assert.Equal(t, "3", result.Display)
	assert.True(t, result.ResultShown)

	require.Len(t, result.Trace, 4)
	assert.Equal(t, TraceEvent{Seq: 4, Key: "=", Command: "evaluate", Display: "3", ResultShown: true}, result.Trace[3])
}

func TestRun_StepExpectationFails(t *testing.T) {
	s := &Scenario{
		Name:        "wrong",
		Description: "wrong display",
		Flow: []FlowStep{
			{Press: "2"},
			{Press: "×"},
			{Press: "2", Expect: "5"},
			{Press: "=", ResultShown: boolPtr(false)},
		},
	}

	result, err := Run(s)
	require.NoError(t, err)
	assert.False(t, result.Pass)
	require.Len(t, result.Errors, 2)
	assert.Equal(t, `flow[2] press "2": display "2*2", expected "5"`, result.Errors[0])
	assert.Equal(t, `flow[3] press "=": result_shown true, expected false`, result.Errors[1])
}

func TestRun_FinalExpectationFails(t *testing.T) {
	s := &Scenario{
		Name:        "final",
		Description: "final display",
		Flow:        []FlowStep{{Press: "9"}},
		Expect:      &FinalExpect{Display: "8", ResultShown: boolPtr(true)},
	}

	result, err := Run(s)
	require.NoError(t, err)
	assert.False(t, result.Pass)
	assert.Equal(t, []string{
		`final display "9", expected "8"`,
		`final result_shown false, expected true`,
	}, result.Errors)
}

func TestRun_UnboundKey(t *testing.T) {
	s := &Scenario{
		Name:        "unbound",
		Description: "unbound key",
		Flow:        []FlowStep{{Press: "1"}, {Press: "Tab"}, {Press: "2"}},
	}

	result, err := Run(s)
	require.NoError(t, err)
	assert.False(t, result.Pass)
	assert.Equal(t, []string{`flow[1]: key "Tab" is not bound`}, result.Errors)
	assert.Equal(t, "12", result.Display)
	assert.Len(t, result.Trace, 2, "unbound keys leave no step")
}

func TestRun_AssertionFailure(t *testing.T) {
	s := &Scenario{
		Name:        "assert",
		Description: "assertion fails",
		Flow:        []FlowStep{{Press: "4"}, {Press: "%"}},
		Assertions: []Assertion{
			{Type: AssertTraceCount, Command: "percent", Count: 2},
		},
	}

	result, err := Run(s)
	require.NoError(t, err)
	assert.False(t, result.Pass)
	require.Len(t, result.Errors, 1)
	assert.True(t, strings.HasPrefix(result.Errors[0], "Assertion failed: trace_count"))
}

func TestRun_BadKeymap(t *testing.T) {
	s := &Scenario{
		Name:        "bad",
		Description: "bad keymap",
		Keymap:      filepath.Join(t.TempDir(), "missing.cue"),
		Flow:        []FlowStep{{Press: "1"}},
	}

	_, err := Run(s)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "load keymap")
}

func TestRun_Isolated(t *testing.T) {
	s := &Scenario{
		Name:        "isolated",
		Description: "each run starts fresh",
		Flow:        []FlowStep{{Press: "7"}},
	}

	for i := 0; i < 3; i++ {
		result, err := Run(s)
		require.NoError(t, err)
		require.Len(t, result.Trace, 1)
		assert.Equal(t, int64(1), result.Trace[0].Seq)
		assert.Equal(t, "7", result.Display)
	}
}

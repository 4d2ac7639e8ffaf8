package cli

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/tally/internal/tape"
)

func TestPress_Text(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{"separate keys", []string{"1", "2", "+", "3", "="}, "15\n"},
		{"one token", []string{"12+3="}, "15\n"},
		{"minus as key", []string{"9", "-", "4", "Enter"}, "5\n"},
		{"percent", []string{"5", "0", "%"}, "0.5\n"},
		{"division by zero", []string{"1/0="}, "Error\n"},
		{"button labels", []string{"7", "±", "AC", "3", "×", "3", "="}, "9\n"},
		{"full width", []string{"５", "＋", "５", "="}, "10\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, _, err := execute(t, "", append([]string{"press"}, tt.args...)...)
			require.NoError(t, err)
			assert.Equal(t, tt.want, out)
		})
	}
}

func TestPress_JSON(t *testing.T) {
	out, _, err := execute(t, "", "press", "2*3=", "?", "--format", "json")
	require.NoError(t, err)

	var result PressResult
	resp := decodeResponse(t, out, &result)
	assert.Equal(t, "ok", resp.Status)
	assert.Equal(t, "6", result.Display)
	assert.True(t, result.ResultShown)
	assert.Equal(t, []string{"?"}, result.Ignored)
	assert.Empty(t, result.SessionID)
}

func TestPress_MissingArgs(t *testing.T) {
	_, _, err := execute(t, "", "press")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "requires at least 1 arg")
}

func TestPress_CustomKeymap(t *testing.T) {
	out, _, err := execute(t, "", "press", "6", "x", "7", "=", "n",
		"--keymap", filepath.Join("testdata", "letters.cue"))
	require.NoError(t, err)
	assert.Equal(t, "-42\n", out)
}

func TestPress_BadKeymap(t *testing.T) {
	_, _, err := execute(t, "", "press", "1", "--keymap", filepath.Join("testdata", "broken.cue"))
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, err.Error(), "failed to load keymap")
	assert.Contains(t, err.Error(), "bindings.x")
}

func TestPress_RecordsSession(t *testing.T) {
	db := filepath.Join(t.TempDir(), "tally.db")

	out, errOut, err := execute(t, "", "press", "4+4=", "--db", db, "--label", "demo")
	require.NoError(t, err)
	assert.Equal(t, "8\n", out)
	assert.Contains(t, errOut, "session ")

	st, err := tape.Open(db)
	require.NoError(t, err)
	defer st.Close()

	sessions, err := st.ListSessions(context.Background(), "demo")
	require.NoError(t, err)
	require.Len(t, sessions, 1)
	assert.Equal(t, 4, sessions[0].StepCount)

	steps, err := st.ReadSteps(context.Background(), sessions[0].ID)
	require.NoError(t, err)
	assert.Equal(t, "4", steps[0].Key)
	assert.Equal(t, "=", steps[3].Key)
	assert.Equal(t, "8", steps[3].Display)
}

func TestPress_BadDatabase(t *testing.T) {
	_, _, err := execute(t, "", "press", "1", "--db", filepath.Join(t.TempDir(), "no", "such", "tally.db"))
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, err.Error(), "failed to open database")
}

package cli

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recordSession records keys with the press command and returns the
// session ID printed on stderr.
func recordSession(t *testing.T, db, label string, keys ...string) string {
	t.Helper()
	args := append([]string{"press", "--db", db, "--label", label}, keys...)
	_, errOut, err := execute(t, "", args...)
	require.NoError(t, err)
	line := strings.TrimSpace(errOut)
	require.True(t, strings.HasPrefix(line, "session "), "stderr: %q", errOut)
	return strings.TrimPrefix(line, "session ")
}

func TestHistory_ListSessions(t *testing.T) {
	db := filepath.Join(t.TempDir(), "tally.db")
	first := recordSession(t, db, "morning", "1+1=")
	second := recordSession(t, db, "evening", "2×2=")

	out, _, err := execute(t, "", "history", "--db", db)
	require.NoError(t, err)
	assert.Contains(t, out, "SESSION")
	assert.Contains(t, out, first)
	assert.Contains(t, out, second)
	assert.Less(t, strings.Index(out, first), strings.Index(out, second))

	out, _, err = execute(t, "", "history", "--db", db, "--label", "evening")
	require.NoError(t, err)
	assert.NotContains(t, out, first)
	assert.Contains(t, out, second)
}

func TestHistory_Empty(t *testing.T) {
	db := filepath.Join(t.TempDir(), "tally.db")

	out, _, err := execute(t, "", "history", "--db", db)
	require.NoError(t, err)
	assert.Contains(t, out, "No sessions found.")
}

func TestHistory_Steps(t *testing.T) {
	db := filepath.Join(t.TempDir(), "tally.db")
	id := recordSession(t, db, "demo", "3", "÷", "4", "=")

	out, _, err := execute(t, "", "history", "--db", db, id)
	require.NoError(t, err)
	assert.Contains(t, out, "Session: "+id)
	assert.Contains(t, out, "Label: demo")
	assert.Contains(t, out, "operator(/)")
	assert.Contains(t, out, "= 0.75")
}

func TestHistory_StepsJSON(t *testing.T) {
	db := filepath.Join(t.TempDir(), "tally.db")
	id := recordSession(t, db, "", "5%")

	out, _, err := execute(t, "", "history", "--db", db, id, "--format", "json")
	require.NoError(t, err)

	var data SessionSteps
	resp := decodeResponse(t, out, &data)
	assert.Equal(t, "ok", resp.Status)
	assert.Equal(t, id, data.Session.ID)
	require.Len(t, data.Steps, 2)
	assert.Equal(t, "percent", data.Steps[1].Command.String())
	assert.Equal(t, "0.05", data.Steps[1].Display)
}

func TestHistory_UnknownSession(t *testing.T) {
	db := filepath.Join(t.TempDir(), "tally.db")

	_, _, err := execute(t, "", "history", "--db", db, "missing")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, err.Error(), "session not found: missing")
}

func TestHistory_RequiresDB(t *testing.T) {
	_, _, err := execute(t, "", "history")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `required flag(s) "db" not set`)
}

package cli

import (
	"database/sql"
	"path/filepath"
	"testing"

	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReplay_AllIdentical(t *testing.T) {
	db := filepath.Join(t.TempDir(), "tally.db")
	recordSession(t, db, "a", "12+3=")
	recordSession(t, db, "b", "1/0=", "5")

	out, _, err := execute(t, "", "replay", "--db", db)
	require.NoError(t, err)
	assert.Contains(t, out, `(5 steps, display "15")`)
	assert.Contains(t, out, `(5 steps, display "5")`)
	assert.Contains(t, out, "✓ All 2 session(s) replayed identically")
}

func TestReplay_SingleSessionJSON(t *testing.T) {
	db := filepath.Join(t.TempDir(), "tally.db")
	id := recordSession(t, db, "", "7", "±")

	out, _, err := execute(t, "", "replay", "--db", db, id, "--format", "json")
	require.NoError(t, err)

	var summary ReplaySummary
	resp := decodeResponse(t, out, &summary)
	assert.Equal(t, "ok", resp.Status)
	assert.True(t, summary.AllIdentical)
	require.Len(t, summary.Sessions, 1)
	assert.Equal(t, id, summary.Sessions[0].SessionID)
	assert.Equal(t, "-7", summary.Sessions[0].FinalDisplay)
}

func TestReplay_Diverged(t *testing.T) {
	db := filepath.Join(t.TempDir(), "tally.db")
	id := recordSession(t, db, "", "6×7=")

	raw, err := sql.Open("sqlite3", db)
	require.NoError(t, err)
	_, err = raw.Exec(`UPDATE steps SET display = '41' WHERE session_id = ? AND command = 'evaluate'`, id)
	require.NoError(t, err)
	require.NoError(t, raw.Close())

	out, _, err := execute(t, "", "replay", "--db", db)
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, out, "✗ "+id)
	assert.Contains(t, out, `display "42" result_shown=true, recorded "41"`)

	out, _, err = execute(t, "", "replay", "--db", db, "--format", "json")
	require.Error(t, err)
	resp := decodeResponse(t, out, nil)
	assert.Equal(t, "error", resp.Status)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "E_REPLAY_DIVERGED", resp.Error.Code)
}

func TestReplay_Empty(t *testing.T) {
	db := filepath.Join(t.TempDir(), "tally.db")

	out, _, err := execute(t, "", "replay", "--db", db)
	require.NoError(t, err)
	assert.Contains(t, out, "No sessions found in database.")
}

func TestReplay_UnknownSession(t *testing.T) {
	db := filepath.Join(t.TempDir(), "tally.db")

	_, _, err := execute(t, "", "replay", "--db", db, "nope")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, err.Error(), "session not found: nope")
}

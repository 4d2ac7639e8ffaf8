package tape

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/roach88/tally/internal/engine"
)

// createTestStore opens a store in a temp directory, closed on cleanup.
func createTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "tape.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

// record runs keys against a fresh recorded engine and returns the session.
// Keys are single-character command shorthands: digits, operators, '.',
// 'n' negate, '%', 'd' delete, 'c' reset, '=' evaluate.
func record(t *testing.T, s *Store, label, keys string) (Session, *engine.Engine) {
	t.Helper()
	ctx := context.Background()

	sess, err := s.CreateSession(ctx, label, 0)
	require.NoError(t, err)

	rec := NewRecorder(ctx, s, sess.ID, nil)
	e := engine.New(engine.WithObserver(rec))
	for _, k := range keys {
		c := commandFor(t, byte(k))
		require.NoError(t, rec.Press(string(k), func() error { return e.Apply(c) }))
	}
	return sess, e
}

func commandFor(t *testing.T, k byte) engine.Command {
	t.Helper()
	switch {
	case k >= '0' && k <= '9':
		return engine.CmdDigit(k)
	case engine.IsOperator(k):
		return engine.CmdOperator(k)
	}
	switch k {
	case '.':
		return engine.CmdDecimal
	case 'n':
		return engine.CmdNegate
	case '%':
		return engine.CmdPercent
	case 'd':
		return engine.CmdDelete
	case 'c':
		return engine.CmdReset
	case '=':
		return engine.CmdEvaluate
	}
	t.Fatalf("no command for key %q", k)
	return engine.Command{}
}

package tape

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/tally/internal/engine"
)

func TestReadSteps_Ordered(t *testing.T) {
	s := createTestStore(t)
	sess, _ := record(t, s, "", "12+3=")

	steps, err := s.ReadSteps(context.Background(), sess.ID)
	require.NoError(t, err)
	require.Len(t, steps, 5)

	want := []struct {
		key     string
		command engine.Command
		display string
		shown   bool
	}{
		{"1", engine.CmdDigit('1'), "1", false},
		{"2", engine.CmdDigit('2'), "12", false},
		{"+", engine.CmdOperator('+'), "12+", false},
		{"3", engine.CmdDigit('3'), "12+3", false},
		{"=", engine.CmdEvaluate, "15", true},
	}
	for i, w := range want {
		assert.Equal(t, int64(i+1), steps[i].Seq)
		assert.Equal(t, w.key, steps[i].Key)
		assert.Equal(t, w.command, steps[i].Command)
		assert.Equal(t, w.display, steps[i].Display)
		assert.Equal(t, w.shown, steps[i].ResultShown)
	}
}

func TestReadSteps_EmptySession(t *testing.T) {
	s := createTestStore(t)
	sess, err := s.CreateSession(context.Background(), "", 0)
	require.NoError(t, err)

	steps, err := s.ReadSteps(context.Background(), sess.ID)
	require.NoError(t, err)
	assert.NotNil(t, steps)
	assert.Empty(t, steps)
}

func TestReadSteps_SessionNotFound(t *testing.T) {
	s := createTestStore(t)

	_, err := s.ReadSteps(context.Background(), "missing")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrSessionNotFound))
}

func TestGetSession_CountsSteps(t *testing.T) {
	s := createTestStore(t)
	sess, _ := record(t, s, "", "9n")

	got, err := s.GetSession(context.Background(), sess.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, got.StepCount)
}

func TestListSessions(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()

	empty, err := s.ListSessions(ctx, "")
	require.NoError(t, err)
	assert.NotNil(t, empty)
	assert.Empty(t, empty)

	first, _ := record(t, s, "work", "1")
	second, _ := record(t, s, "play", "12")
	third, _ := record(t, s, "work", "123")

	all, err := s.ListSessions(ctx, "")
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, first.ID, all[0].ID)
	assert.Equal(t, second.ID, all[1].ID)
	assert.Equal(t, third.ID, all[2].ID)
	assert.Equal(t, []int{1, 2, 3}, []int{all[0].StepCount, all[1].StepCount, all[2].StepCount})

	work, err := s.ListSessions(ctx, "work")
	require.NoError(t, err)
	require.Len(t, work, 2)
	assert.Equal(t, first.ID, work[0].ID)
	assert.Equal(t, third.ID, work[1].ID)
}

package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/tally/internal/tape"
)

// ReplayOptions holds flags for the replay command.
type ReplayOptions struct {
	*RootOptions
	Database string
}

// ReplaySummary is the result of replaying one or more sessions.
type ReplaySummary struct {
	Sessions     []tape.ReplayResult `json:"sessions"`
	Total        int                 `json:"total"`
	AllIdentical bool                `json:"all_identical"`
}

// NewReplayCommand creates the replay command.
func NewReplayCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ReplayOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "replay [session-id]",
		Short: "Replay recorded sessions and verify determinism",
		Long: `Re-run recorded sessions on a fresh calculator and check that every
step reproduces the recorded display. Without a session ID every session
in the database is replayed.

Exit codes:
  0 - All sessions replayed identically
  1 - A session diverged from its recording
  2 - Command error (database not found, unknown session, etc.)

Examples:
  tally replay --db ./tally.db
  tally replay --db ./tally.db 0190f3c4-...
  tally replay --db ./tally.db --format json`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runReplay(opts, args, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Database, "db", "", "path to SQLite database (required)")
	_ = cmd.MarkFlagRequired("db")

	return cmd
}

func runReplay(opts *ReplayOptions, args []string, cmd *cobra.Command) error {
	ctx := context.Background()

	st, err := tape.Open(opts.Database)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to open database", err)
	}
	defer st.Close()

	var ids []string
	if len(args) == 1 {
		ids = []string{args[0]}
	} else {
		sessions, err := st.ListSessions(ctx, "")
		if err != nil {
			return WrapExitError(ExitCommandError, "failed to list sessions", err)
		}
		for _, s := range sessions {
			ids = append(ids, s.ID)
		}
	}

	summary := ReplaySummary{
		Sessions:     make([]tape.ReplayResult, 0, len(ids)),
		Total:        len(ids),
		AllIdentical: true,
	}

	for _, id := range ids {
		result, err := st.Replay(ctx, id)
		if errors.Is(err, tape.ErrSessionNotFound) {
			return NewExitError(ExitCommandError, fmt.Sprintf("session not found: %s", id))
		}
		if err != nil {
			return WrapExitError(ExitCommandError, fmt.Sprintf("failed to replay session %s", id), err)
		}
		summary.Sessions = append(summary.Sessions, result)
		if !result.Identical() {
			summary.AllIdentical = false
		}
	}

	if opts.Format == "json" {
		return outputReplayJSON(cmd, summary)
	}
	return outputReplayText(cmd, summary)
}

func outputReplayJSON(cmd *cobra.Command, summary ReplaySummary) error {
	response := CLIResponse{Status: "ok", Data: summary}
	if !summary.AllIdentical {
		response.Status = "error"
		response.Error = &CLIError{
			Code:    "E_REPLAY_DIVERGED",
			Message: "replay diverged from recording",
		}
	}

	encoder := json.NewEncoder(cmd.OutOrStdout())
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(response); err != nil {
		return err
	}

	if !summary.AllIdentical {
		return NewExitError(ExitFailure, "replay diverged from recording")
	}
	return nil
}

func outputReplayText(cmd *cobra.Command, summary ReplaySummary) error {
	w := cmd.OutOrStdout()

	if summary.Total == 0 {
		fmt.Fprintln(w, "No sessions found in database.")
		return nil
	}

	for _, r := range summary.Sessions {
		if r.Identical() {
			fmt.Fprintf(w, "✓ %s (%d steps, display %q)\n", r.SessionID, r.Steps, r.FinalDisplay)
			continue
		}
		fmt.Fprintf(w, "✗ %s\n", r.SessionID)
		fmt.Fprintf(w, "  diverged at %s\n", r.Divergence)
	}

	fmt.Fprintln(w)
	if !summary.AllIdentical {
		return NewExitError(ExitFailure, "replay diverged from recording")
	}
	fmt.Fprintf(w, "✓ All %d session(s) replayed identically\n", summary.Total)
	return nil
}

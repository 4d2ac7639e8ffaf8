package cli

import (
	"context"
	"errors"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/roach88/tally/internal/tape"
)

// HistoryOptions holds flags for the history command.
type HistoryOptions struct {
	*RootOptions
	Database string
	Label    string
}

// SessionSteps is the history of one session.
type SessionSteps struct {
	Session tape.Session      `json:"session"`
	Steps   []tape.StepRecord `json:"steps"`
}

// NewHistoryCommand creates the history command.
func NewHistoryCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &HistoryOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "history [session-id]",
		Short: "List recorded sessions or show one session's steps",
		Long: `List the sessions recorded in a tape database, oldest first, or show
every step of one session.

Examples:
  tally history --db ./tally.db
  tally history --db ./tally.db --label demo
  tally history --db ./tally.db 0190f3c4-... --format json`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runHistory(opts, args, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Database, "db", "", "path to SQLite database (required)")
	_ = cmd.MarkFlagRequired("db")
	cmd.Flags().StringVar(&opts.Label, "label", "", "only list sessions with this label")

	return cmd
}

func runHistory(opts *HistoryOptions, args []string, cmd *cobra.Command) error {
	ctx := context.Background()

	st, err := tape.Open(opts.Database)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to open database", err)
	}
	defer st.Close()

	formatter := &OutputFormatter{Format: opts.Format, Writer: cmd.OutOrStdout()}

	if len(args) == 0 {
		sessions, err := st.ListSessions(ctx, opts.Label)
		if err != nil {
			return WrapExitError(ExitCommandError, "failed to list sessions", err)
		}
		if opts.Format == "json" {
			return formatter.Success(sessions)
		}
		return outputSessionsText(cmd, sessions)
	}

	sess, err := st.GetSession(ctx, args[0])
	if errors.Is(err, tape.ErrSessionNotFound) {
		return NewExitError(ExitCommandError, fmt.Sprintf("session not found: %s", args[0]))
	}
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to read session", err)
	}
	steps, err := st.ReadSteps(ctx, sess.ID)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to read steps", err)
	}

	if opts.Format == "json" {
		return formatter.Success(SessionSteps{Session: sess, Steps: steps})
	}
	return outputStepsText(cmd, sess, steps)
}

func outputSessionsText(cmd *cobra.Command, sessions []tape.Session) error {
	w := cmd.OutOrStdout()
	if len(sessions) == 0 {
		fmt.Fprintln(w, "No sessions found.")
		return nil
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "SESSION\tLABEL\tSTEPS")
	for _, s := range sessions {
		fmt.Fprintf(tw, "%s\t%s\t%d\n", s.ID, s.Label, s.StepCount)
	}
	return tw.Flush()
}

func outputStepsText(cmd *cobra.Command, sess tape.Session, steps []tape.StepRecord) error {
	w := cmd.OutOrStdout()
	fmt.Fprintf(w, "Session: %s\n", sess.ID)
	if sess.Label != "" {
		fmt.Fprintf(w, "Label: %s\n", sess.Label)
	}
	fmt.Fprintln(w)

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "SEQ\tKEY\tCOMMAND\tDISPLAY")
	for _, s := range steps {
		display := s.Display
		if s.ResultShown {
			display = "= " + display
		}
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\n", s.Seq, s.Key, s.Command, display)
	}
	return tw.Flush()
}

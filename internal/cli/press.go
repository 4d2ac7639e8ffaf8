package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

// PressOptions holds flags for the press command.
type PressOptions struct {
	*RootOptions
	Database string
	Label    string
}

// PressResult is the state after a sequence of keys.
type PressResult struct {
	Display     string   `json:"display"`
	ResultShown bool     `json:"result_shown"`
	SessionID   string   `json:"session_id,omitempty"`
	Ignored     []string `json:"ignored,omitempty"`
}

// NewPressCommand creates the press command.
func NewPressCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &PressOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "press <key>...",
		Short: "Press keys on a fresh calculator and print the display",
		Long: `Press keys on a fresh calculator and print the final display.

Each argument is a key label. An argument that is not a bound key is typed
one character at a time, so "12+3=" is the same as "1 2 + 3 =". Unbound
keys are ignored.

Examples:
  tally press 12+3=
  tally press 5 0 %
  tally press -- 9 - 4 Enter
  tally press 2×3= --db ./tally.db --label demo
  tally press 1/0= --format json`,
		Args:          cobra.MinimumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPress(opts, args, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Database, "db", "", "record the session to this SQLite database")
	cmd.Flags().StringVar(&opts.Label, "label", "", "label for the recorded session")

	return cmd
}

func runPress(opts *PressOptions, keys []string, cmd *cobra.Command) error {
	calc, err := newCalculator(context.Background(), opts.RootOptions, opts.Database, opts.Label)
	if err != nil {
		return err
	}
	defer calc.Close()

	var ignored []string
	for _, key := range keys {
		skipped, err := calc.PressToken(key)
		ignored = append(ignored, skipped...)
		if err != nil {
			return WrapExitError(ExitCommandError, "press failed", err)
		}
	}

	result := calc.State()
	result.Ignored = ignored

	formatter := &OutputFormatter{Format: opts.Format, Writer: cmd.OutOrStdout()}
	if opts.Format == "json" {
		return formatter.Success(result)
	}

	w := cmd.OutOrStdout()
	fmt.Fprintln(w, result.Display)
	if result.SessionID != "" {
		fmt.Fprintf(cmd.ErrOrStderr(), "session %s\n", result.SessionID)
	}
	return nil
}

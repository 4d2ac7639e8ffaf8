package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

// ReplOptions holds flags for the repl command.
type ReplOptions struct {
	*RootOptions
	Database string
	Label    string
}

// NewReplCommand creates the repl command.
func NewReplCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ReplOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "repl",
		Short: "Interactive calculator reading keys from stdin",
		Long: `Read lines of keys from stdin and show the display after each line.

Each line is a whitespace-separated list of keys, typed like the arguments
of "tally press". The calculator keeps its state between lines. "quit" or
end of input exits.

In text mode the display is drawn as a panel; in JSON mode one response
object is written per line.

Examples:
  tally repl
  tally repl --db ./tally.db --label evening
  echo "12+3=" | tally repl --format json`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRepl(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Database, "db", "", "record the session to this SQLite database")
	cmd.Flags().StringVar(&opts.Label, "label", "", "label for the recorded session")

	return cmd
}

func runRepl(opts *ReplOptions, cmd *cobra.Command) error {
	calc, err := newCalculator(context.Background(), opts.RootOptions, opts.Database, opts.Label)
	if err != nil {
		return err
	}
	defer calc.Close()

	w := cmd.OutOrStdout()
	formatter := &OutputFormatter{Format: opts.Format, Writer: w}

	if opts.Format != "json" {
		fmt.Fprintln(w, RenderDisplay(calc.engine.Snapshot()))
	}

	scanner := bufio.NewScanner(cmd.InOrStdin())
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "quit" || line == "exit" {
			break
		}
		if line == "" {
			continue
		}

		ignored, err := calc.PressLine(line)
		if err != nil {
			return WrapExitError(ExitCommandError, "press failed", err)
		}

		result := calc.State()
		result.Ignored = ignored
		if opts.Format == "json" {
			if err := formatter.Success(result); err != nil {
				return err
			}
			continue
		}
		fmt.Fprintln(w, RenderDisplay(result.Display, result.ResultShown))
		if len(ignored) > 0 {
			fmt.Fprintf(w, "ignored: %s\n", strings.Join(ignored, " "))
		}
	}
	if err := scanner.Err(); err != nil {
		return WrapExitError(ExitCommandError, "read input", err)
	}

	if id := calc.SessionID(); id != "" && opts.Format != "json" {
		fmt.Fprintf(w, "session %s\n", id)
	}
	return nil
}

package cli

import (
	"bufio"
	"fmt"

	"github.com/spf13/cobra"
	"golang.org/x/text/language"

	"github.com/roach88/tally/internal/display"
	"github.com/roach88/tally/internal/session"
)

// NewReplCommand creates the repl command: an interactive loop that
// applies each input line as a keystroke sequence and echoes the live
// formula and preview after every line.
func NewReplCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "repl",
		Short: "Interactive calculator session",
		Long: `Read keystroke sequences line by line and echo the formula and the
live preview after each line. Same key map as eval. Type "quit" to
leave; history persists across sessions.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := opts.openStore()
			if err != nil {
				return err
			}
			defer store.Close()

			ctx := cmd.Context()
			sess, err := session.New(ctx, store)
			if err != nil {
				return WrapExitError(ExitCommandError, "start session", err)
			}

			fmtr := display.New(language.English)
			in := bufio.NewScanner(cmd.InOrStdin())
			out := cmd.OutOrStdout()

			fmt.Fprint(out, "> ")
			for in.Scan() {
				line := in.Text()
				if line == "quit" || line == "exit" {
					break
				}
				if err := sess.PressSequence(ctx, line); err != nil {
					fmt.Fprintf(out, "! %v\n", err)
				}
				fmt.Fprintf(out, "%s\n= %s\n> ", sess.Display(), fmtr.Answer(sess.Preview()))
			}
			return in.Err()
		},
	}
}

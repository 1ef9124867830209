package cli

import (
	"github.com/spf13/cobra"
	"golang.org/x/text/language"

	"github.com/roach88/tally/internal/display"
	"github.com/roach88/tally/internal/session"
)

// EvalResult is the payload printed by the eval command.
type EvalResult struct {
	Formula string  `json:"formula"`
	Markup  string  `json:"markup,omitempty"`
	Result  string  `json:"result"`
	Value   float64 `json:"value"`
}

// NewEvalCommand creates the eval command: apply a keystroke sequence
// to a fresh session and print the resulting formula and value.
func NewEvalCommand(opts *RootOptions) *cobra.Command {
	var withMarkup bool

	cmd := &cobra.Command{
		Use:   "eval <keystrokes>",
		Short: "Apply a keystroke sequence and print the result",
		Long: `Apply a keystroke sequence and print the resulting formula and value.

Keys: digits and "." build numbers; + - * / ^ E are binary operators
(E is the exponent shift, left x 10^right); r takes the reciprocal,
s the square root, n negates; a is the last answer; ( ) group; =
finalizes and commits to history; < is backspace; C clears.`,
		Args: cobra.ExactArgs(1),
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

			if err := sess.PressSequence(ctx, args[0]); err != nil {
				return WrapExitError(ExitCommandError, "apply keystrokes", err)
			}

			value := sess.Preview()
			result := EvalResult{
				Formula: sess.Display(),
				Result:  display.New(language.English).Answer(value),
				Value:   value,
			}
			if withMarkup {
				result.Markup = Markup(sess.Formula().Fragments())
			}

			out := &OutputFormatter{Format: opts.Format, Writer: cmd.OutOrStdout()}
			if withMarkup && opts.Format == "text" {
				return out.Successf(result, "%s\n%s\n= %s", result.Formula, result.Markup, result.Result)
			}
			return out.Successf(result, "%s\n= %s", result.Formula, result.Result)
		},
	}

	cmd.Flags().BoolVar(&withMarkup, "markup", false, "include span markup of the formula")

	return cmd
}

package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/text/language"

	"github.com/roach88/tally/internal/display"
	"github.com/roach88/tally/internal/token"
)

// HistoryEntry is the payload shape of one listed entry.
type HistoryEntry struct {
	ID      int64   `json:"id"`
	Formula string  `json:"formula"`
	Answer  float64 `json:"answer"`
}

// NewHistoryCommand creates the history command group.
func NewHistoryCommand(opts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Inspect and manage committed calculations",
	}

	cmd.AddCommand(newHistoryListCommand(opts))
	cmd.AddCommand(newHistoryDeleteCommand(opts))
	cmd.AddCommand(newHistoryClearCommand(opts))

	return cmd
}

func newHistoryListCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List history entries, oldest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := opts.openStore()
			if err != nil {
				return err
			}
			defer store.Close()

			entries, err := store.List(cmd.Context())
			if err != nil {
				return WrapExitError(ExitCommandError, "list history", err)
			}

			fmtr := display.New(language.English)
			payload := make([]HistoryEntry, len(entries))
			var text strings.Builder
			for i, e := range entries {
				payload[i] = HistoryEntry{
					ID:      e.ID,
					Formula: token.Render(e.Tokens),
					Answer:  e.Answer,
				}
				fmt.Fprintf(&text, "%4d  %s %s\n", e.ID, payload[i].Formula, fmtr.Answer(e.Answer))
			}

			out := &OutputFormatter{Format: opts.Format, Writer: cmd.OutOrStdout()}
			if opts.Format == "json" {
				return out.Success(payload)
			}
			if len(entries) == 0 {
				return out.Successf(nil, "history is empty")
			}
			_, err = fmt.Fprint(cmd.OutOrStdout(), text.String())
			return err
		},
	}
}

func newHistoryDeleteCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete one history entry",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return NewExitError(ExitFailure, fmt.Sprintf("invalid entry id %q", args[0]))
			}

			store, err := opts.openStore()
			if err != nil {
				return err
			}
			defer store.Close()

			if err := store.Delete(cmd.Context(), id); err != nil {
				return WrapExitError(ExitCommandError, "delete entry", err)
			}

			out := &OutputFormatter{Format: opts.Format, Writer: cmd.OutOrStdout()}
			return out.Successf(map[string]int64{"deleted": id}, "deleted entry %d", id)
		},
	}
}

func newHistoryClearCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Delete all history entries",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := opts.openStore()
			if err != nil {
				return err
			}
			defer store.Close()

			if err := store.Clear(cmd.Context()); err != nil {
				return WrapExitError(ExitCommandError, "clear history", err)
			}

			out := &OutputFormatter{Format: opts.Format, Writer: cmd.OutOrStdout()}
			return out.Successf(map[string]bool{"cleared": true}, "history cleared")
		},
	}
}

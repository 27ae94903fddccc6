package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/avolkenstein/planweave/internal/cli/formatter"
	"github.com/avolkenstein/planweave/internal/history"
	"github.com/avolkenstein/planweave/internal/yamldoc"
	"github.com/spf13/cobra"
)

func newHistoryCmd(app *App) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show recent plan revisions",
		RunE: func(cmd *cobra.Command, args []string) error {
			if app.History == nil {
				return fmt.Errorf("history is not available")
			}
			revs, err := app.History.List(context.Background(), limit)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatRevisionTable(revs))
			return nil
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 20, "Number of revisions to show")

	return cmd
}

func newUndoCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "undo",
		Short: "Restore the plan to the previous revision",
		RunE: func(cmd *cobra.Command, args []string) error {
			if app.History == nil {
				return fmt.Errorf("history is not available")
			}

			rev, err := app.History.Previous(context.Background())
			if err != nil {
				if errors.Is(err, history.ErrNoRevision) {
					return fmt.Errorf("nothing to undo")
				}
				return err
			}

			tasks, warnings, err := yamldoc.Parse(rev.Document)
			if err != nil {
				return fmt.Errorf("previous revision is unreadable: %w", err)
			}
			for _, w := range warnings {
				fmt.Fprintln(cmd.ErrOrStderr(), formatter.StyleYellow.Render("! ")+w)
			}

			if err := app.Store.ReplaceAll(tasks, "undo"); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s Restored revision from %s (%s)\n",
				formatter.StyleGreen.Render("✔"),
				formatter.HumanTimestamp(rev.CreatedAt),
				rev.Reason)
			return nil
		},
	}
}

package cli

import (
	"github.com/avolkenstein/planweave/internal/assistant"
	"github.com/avolkenstein/planweave/internal/history"
	"github.com/avolkenstein/planweave/internal/store"
	"github.com/spf13/cobra"
)

// App holds the wired dependencies used by CLI commands and the TUI.
type App struct {
	Store     *store.Store
	Assistant assistant.Service // nil when the assistant is disabled
	History   *history.RevisionLog

	// IsInteractive reports whether stdin is a terminal. The bare
	// "planweave" command launches the TUI only when it is.
	IsInteractive func() bool
}

// NewRootCmd creates the top-level "planweave" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:   "planweave",
		Short: "Task planner with a Gantt timeline and an AI assistant",
		RunE: func(cmd *cobra.Command, args []string) error {
			if app.IsInteractive != nil && app.IsInteractive() {
				return runTUI(app)
			}
			return cmd.Help()
		},
	}

	root.AddCommand(
		newListCmd(app),
		newShowCmd(app),
		newAddCmd(app),
		newEditCmd(app),
		newDoneCmd(app),
		newRmCmd(app),
		newGanttCmd(app),
		newSummarizeCmd(app),
		newRewriteCmd(app),
		newExportCmd(app),
		newHistoryCmd(app),
		newUndoCmd(app),
	)

	return root
}

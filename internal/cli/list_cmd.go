package cli

import (
	"fmt"

	"github.com/avolkenstein/planweave/internal/cli/formatter"
	"github.com/avolkenstein/planweave/internal/domain"
	"github.com/spf13/cobra"
)

func newListCmd(app *App) *cobra.Command {
	var sortKey string
	var desc bool
	var status string
	var priority string
	var window int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List tasks",
		RunE: func(cmd *cobra.Command, args []string) error {
			var filter domain.Filter
			if status != "" {
				s := domain.TaskStatus(status)
				if !domain.ValidTaskStatuses[s] {
					return fmt.Errorf("unknown status %q", status)
				}
				filter.Statuses = []domain.TaskStatus{s}
			}
			if priority != "" {
				p := domain.TaskPriority(priority)
				if !domain.ValidTaskPriorities[p] {
					return fmt.Errorf("unknown priority %q", priority)
				}
				filter.Priorities = []domain.TaskPriority{p}
			}
			filter.WindowDays = window

			tasks := filter.Apply(app.Store.Snapshot(), nowFunc())
			if sortKey != "" {
				k := domain.SortKey(sortKey)
				if !domain.ValidSortKeys[k] {
					return fmt.Errorf("unknown sort key %q (start, end, priority, status)", sortKey)
				}
				tasks = domain.SortTasks(tasks, k, desc)
			}

			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatTaskTable(tasks))
			return nil
		},
	}

	cmd.Flags().StringVar(&sortKey, "sort", "", "Sort by start, end, priority or status")
	cmd.Flags().BoolVar(&desc, "desc", false, "Sort descending")
	cmd.Flags().StringVar(&status, "status", "", "Only tasks with this status")
	cmd.Flags().StringVar(&priority, "priority", "", "Only tasks with this priority")
	cmd.Flags().IntVar(&window, "window", 0, "Only tasks within the next N days")

	return cmd
}

func newShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show <task>",
		Short: "Show one task in detail",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := resolveTask(app, args[0])
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatTaskDetail(app.Store.Snapshot(), t))
			return nil
		},
	}
}

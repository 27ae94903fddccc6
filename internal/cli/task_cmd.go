package cli

import (
	"fmt"
	"time"

	"github.com/avolkenstein/planweave/internal/cli/formatter"
	"github.com/avolkenstein/planweave/internal/domain"
	"github.com/spf13/cobra"
)

func newAddCmd(app *App) *cobra.Command {
	var desc string
	var status string
	var priority string
	var start string
	var end string
	var after []string

	cmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Add a task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			t := domain.Task{
				Name:        args[0],
				Description: desc,
				Status:      domain.TaskStatus(status),
				Priority:    domain.TaskPriority(priority),
			}

			var err error
			if t.StartDate, err = parseDateFlag(start); err != nil {
				return err
			}
			if end == "" {
				end = start
			}
			if t.EndDate, err = parseDateFlag(end); err != nil {
				return err
			}

			for _, ref := range after {
				dep, err := resolveTask(app, ref)
				if err != nil {
					return err
				}
				t.Dependencies = append(t.Dependencies, dep.ID)
			}

			added, err := app.Store.Add(t)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s Added: %s (%s)\n",
				formatter.StyleGreen.Render("✔"),
				formatter.Bold(added.Name),
				added.ID[:8])
			return nil
		},
	}

	cmd.Flags().StringVar(&desc, "desc", "", "Task description")
	cmd.Flags().StringVar(&status, "status", string(domain.StatusNotStarted), "Status: not_started, in_progress or completed")
	cmd.Flags().StringVar(&priority, "priority", string(domain.PriorityMedium), "Priority: high, medium or low")
	cmd.Flags().StringVar(&start, "start", "", "Start date (YYYY-MM-DD, default today)")
	cmd.Flags().StringVar(&end, "end", "", "End date (YYYY-MM-DD, default start)")
	cmd.Flags().StringSliceVar(&after, "after", nil, "Tasks this one depends on (id or name, repeatable)")

	return cmd
}

func newEditCmd(app *App) *cobra.Command {
	var name string
	var desc string
	var status string
	var priority string
	var start string
	var end string

	cmd := &cobra.Command{
		Use:   "edit <task>",
		Short: "Edit a task's fields",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := resolveTask(app, args[0])
			if err != nil {
				return err
			}

			if cmd.Flags().Changed("name") {
				t.Name = name
			}
			if cmd.Flags().Changed("desc") {
				t.Description = desc
			}
			if cmd.Flags().Changed("status") {
				t.Status = domain.TaskStatus(status)
			}
			if cmd.Flags().Changed("priority") {
				t.Priority = domain.TaskPriority(priority)
			}
			if cmd.Flags().Changed("start") {
				if t.StartDate, err = domain.ParseDate(start); err != nil {
					return err
				}
			}
			if cmd.Flags().Changed("end") {
				if t.EndDate, err = domain.ParseDate(end); err != nil {
					return err
				}
			}

			if err := app.Store.Update(t); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s Updated: %s\n",
				formatter.StyleGreen.Render("✔"), formatter.Bold(t.Name))
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "New name")
	cmd.Flags().StringVar(&desc, "desc", "", "New description")
	cmd.Flags().StringVar(&status, "status", "", "New status")
	cmd.Flags().StringVar(&priority, "priority", "", "New priority")
	cmd.Flags().StringVar(&start, "start", "", "New start date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&end, "end", "", "New end date (YYYY-MM-DD)")

	return cmd
}

func newDoneCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "done <task>...",
		Short: "Mark tasks completed",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ids := make([]string, 0, len(args))
			for _, ref := range args {
				t, err := resolveTask(app, ref)
				if err != nil {
					return err
				}
				ids = append(ids, t.ID)
			}
			if err := app.Store.BulkSetStatus(ids, domain.StatusCompleted); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s Completed %d task(s)\n",
				formatter.StyleGreen.Render("✔"), len(ids))
			return nil
		},
	}
}

func newRmCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "rm <task>...",
		Short: "Delete tasks",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ids := make([]string, 0, len(args))
			for _, ref := range args {
				t, err := resolveTask(app, ref)
				if err != nil {
					return err
				}
				ids = append(ids, t.ID)
			}
			if err := app.Store.BulkDelete(ids); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s Deleted %d task(s)\n",
				formatter.StyleGreen.Render("✔"), len(ids))
			return nil
		},
	}
}

// parseDateFlag parses a date flag, defaulting an empty value to today.
func parseDateFlag(s string) (time.Time, error) {
	if s == "" {
		now := nowFunc()
		return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC), nil
	}
	return domain.ParseDate(s)
}

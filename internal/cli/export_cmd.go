package cli

import (
	"fmt"
	"os"
	"os/exec"
	"runtime"
	"time"

	"github.com/avolkenstein/planweave/internal/calendar"
	"github.com/avolkenstein/planweave/internal/cli/formatter"
	"github.com/avolkenstein/planweave/internal/domain"
	"github.com/spf13/cobra"
)

func newExportCmd(app *App) *cobra.Command {
	var icsPath string
	var open bool

	cmd := &cobra.Command{
		Use:   "export [task]...",
		Short: "Export tasks to a calendar",
		Long: `Export builds one calendar event per task. By default it prints the
event links; --open opens them in the browser, --ics writes an iCalendar
file instead. With no arguments every task is exported.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			var tasks []domain.Task
			if len(args) == 0 {
				tasks = app.Store.Snapshot()
			} else {
				for _, ref := range args {
					t, err := resolveTask(app, ref)
					if err != nil {
						return err
					}
					tasks = append(tasks, t)
				}
			}
			if len(tasks) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), formatter.Dim("Nothing to export."))
				return nil
			}

			if icsPath != "" {
				ics := calendar.BuildICS(tasks, nowFunc())
				if err := os.WriteFile(icsPath, []byte(ics), 0644); err != nil {
					return fmt.Errorf("writing calendar file: %w", err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s Wrote %d event(s) to %s\n",
					formatter.StyleGreen.Render("✔"), len(tasks), icsPath)
				return nil
			}

			plan := calendar.BuildPlan(tasks)

			if !open {
				fmt.Fprint(cmd.OutOrStdout(), formatter.FormatExportPlan(plan))
				return nil
			}

			if plan.NeedsConfirm {
				prompt := fmt.Sprintf("Open %d browser tabs?", len(plan.Links))
				if !confirm(cmd, prompt) {
					fmt.Fprintln(cmd.OutOrStdout(), formatter.Dim("Cancelled."))
					return nil
				}
			}

			for i, link := range plan.Links {
				if i > 0 {
					time.Sleep(plan.OpenDelay)
				}
				if err := openBrowser(link.URL); err != nil {
					return fmt.Errorf("opening %s: %w", link.Name, err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s Opened: %s\n",
					formatter.StyleGreen.Render("✔"), link.Name)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&icsPath, "ics", "", "Write an iCalendar file to this path")
	cmd.Flags().BoolVar(&open, "open", false, "Open each event link in the browser")

	return cmd
}

// openBrowser launches the platform's URL handler.
func openBrowser(url string) error {
	switch runtime.GOOS {
	case "darwin":
		return exec.Command("open", url).Start()
	case "windows":
		return exec.Command("rundll32", "url.dll,FileProtocolHandler", url).Start()
	default:
		return exec.Command("xdg-open", url).Start()
	}
}

package cli

import (
	"fmt"
	"time"

	"github.com/avolkenstein/planweave/internal/domain"
	"github.com/avolkenstein/planweave/internal/gantt"
	"github.com/spf13/cobra"
)

func newGanttCmd(app *App) *cobra.Command {
	var granularity string
	var zoom float64
	var width int

	cmd := &cobra.Command{
		Use:   "gantt",
		Short: "Print the task timeline",
		RunE: func(cmd *cobra.Command, args []string) error {
			g := gantt.Granularity(granularity)
			if !gantt.ValidGranularities[g] {
				return fmt.Errorf("unknown granularity %q (day, week, month)", granularity)
			}

			tasks := app.Store.Snapshot()
			tl := gantt.NewTimeline(tasks, g, gantt.ClampZoom(zoom), nowFunc())

			rangeOf := func(t domain.Task) (time.Time, time.Time) {
				return t.StartDate, t.EndDate
			}
			fmt.Fprint(cmd.OutOrStdout(), renderChart(tasks, tl, rangeOf, width, 0, -1, nil))
			return nil
		},
	}

	cmd.Flags().StringVar(&granularity, "granularity", "day", "Axis granularity: day, week or month")
	cmd.Flags().Float64Var(&zoom, "zoom", 1.0, "Zoom factor (clamped to 0.3..3.0)")
	cmd.Flags().IntVar(&width, "width", 100, "Chart width in columns")

	return cmd
}

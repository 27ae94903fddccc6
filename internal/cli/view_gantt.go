package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/avolkenstein/planweave/internal/cli/formatter"
	"github.com/avolkenstein/planweave/internal/domain"
	"github.com/avolkenstein/planweave/internal/gantt"
	"github.com/avolkenstein/planweave/internal/store"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

const (
	// pxPerCell maps the engine's pixel space onto terminal cells, so a
	// day column at zoom 1 is ten cells wide.
	pxPerCell = 7.5

	// nameColWidth is the fixed width of the task name column.
	nameColWidth = 22

	// chartHeaderLines is the rows the axis header occupies inside the
	// view; appHeaderLines the rows the app chrome adds above it. Both
	// feed the mouse hit test.
	chartHeaderLines = 2
	appHeaderLines   = 2

	zoomStep = 0.25

	// edgeScrollZone is how close (in cells) the pointer must be to a
	// chart edge before an active drag nudges hScroll by edgeScrollStep.
	edgeScrollZone = 3
	edgeScrollStep = 4
)

// ganttView renders the task timeline and supports drag rescheduling.
type ganttView struct {
	state *SharedState

	tasks  []domain.Task
	tl     gantt.Timeline
	drag   *gantt.Drag
	cursor int

	// preview overrides task dates while a drag is in flight.
	preview map[string]gantt.DateRange

	// horizontal scroll offset, in cells.
	hScroll int
}

func newGanttView(state *SharedState) *ganttView {
	v := &ganttView{state: state}
	v.reload()
	return v
}

func (v *ganttView) ID() ViewID    { return ViewGantt }
func (v *ganttView) Title() string { return "Timeline" }

func (v *ganttView) ShortHelp() []key.Binding {
	return []key.Binding{
		key.NewBinding(key.WithKeys("d"), key.WithHelp("d/w/m", "granularity")),
		key.NewBinding(key.WithKeys("+"), key.WithHelp("+/-", "zoom")),
		key.NewBinding(key.WithKeys("left"), key.WithHelp("←→", "scroll")),
		key.NewBinding(key.WithKeys("space"), key.WithHelp("space", "select")),
		key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "edit")),
		key.NewBinding(key.WithKeys("drag"), key.WithHelp("drag", "reschedule")),
		key.NewBinding(key.WithKeys("l"), key.WithHelp("l", "list")),
	}
}

func (v *ganttView) Init() tea.Cmd { return nil }

// reload rebuilds the timeline from the store and resets any drag.
func (v *ganttView) reload() {
	v.tasks = v.state.VisibleTasks()
	v.tl = gantt.NewTimeline(v.tasks, v.state.Granularity, v.state.Zoom, nowFunc())
	v.drag = gantt.NewDrag(v.tl)
	v.preview = nil
	v.state.PruneSelection(v.state.App.Store.Snapshot())
	if v.cursor >= len(v.tasks) {
		v.cursor = len(v.tasks) - 1
	}
	if v.cursor < 0 {
		v.cursor = 0
	}
}

func (v *ganttView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case refreshViewMsg:
		v.reload()
		return v, nil

	case tea.KeyMsg:
		return v.handleKey(msg)

	case tea.MouseMsg:
		return v.handleMouse(msg)
	}
	return v, nil
}

func (v *ganttView) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "up", "k":
		if v.cursor > 0 {
			v.cursor--
		}
	case "down", "j":
		if v.cursor < len(v.tasks)-1 {
			v.cursor++
		}
	case " ":
		if v.cursor < len(v.tasks) {
			id := v.tasks[v.cursor].ID
			if v.state.Selected[id] {
				delete(v.state.Selected, id)
			} else {
				v.state.Selected[id] = true
			}
		}
	case "left", "h":
		v.hScroll -= 4
		if v.hScroll < 0 {
			v.hScroll = 0
		}
	case "right":
		v.hScroll += 4
	case "d":
		v.state.Granularity = gantt.GranularityDay
		v.reload()
	case "w":
		v.state.Granularity = gantt.GranularityWeek
		v.reload()
	case "m":
		v.state.Granularity = gantt.GranularityMonth
		v.reload()
	case "+", "=":
		v.state.Zoom = gantt.ClampZoom(v.state.Zoom + zoomStep)
		v.reload()
	case "-":
		v.state.Zoom = gantt.ClampZoom(v.state.Zoom - zoomStep)
		v.reload()
	case "enter":
		if v.cursor < len(v.tasks) {
			return v, pushView(newEditTaskView(v.state, v.tasks[v.cursor].ID))
		}
	case "l":
		return v, replaceView(newTaskListView(v.state))
	case "r":
		v.reload()
	}
	return v, nil
}

// handleMouse drives the drag state machine. Cell coordinates are
// converted back to engine pixels so thresholds and unit rounding match
// the chart geometry.
func (v *ganttView) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	px := float64(msg.X-nameColWidth+v.hScroll) * pxPerCell
	py := float64(msg.Y)

	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button != tea.MouseButtonLeft {
			return v, nil
		}
		row := v.rowAt(msg.Y)
		if row < 0 || row >= len(v.tasks) {
			return v, nil
		}
		v.cursor = row
		t := v.tasks[row]
		v.drag.PointerDown(t.ID, px, py, v.dragOrigins(t))

	case tea.MouseActionMotion:
		if preview := v.drag.PointerMove(px, py); preview != nil {
			v.preview = preview
		}
		if v.drag.Phase() == gantt.DragActive {
			v.autoScroll(msg.X)
		}

	case tea.MouseActionRelease:
		commit, dragged := v.drag.PointerUp(px, py)
		v.preview = nil
		if dragged {
			if commit != nil {
				return v, v.commitReschedule(commit)
			}
			return v, nil
		}
		// A plain click opens the edit form, unless a just-finished
		// drag suppressed it.
		if v.drag.ConsumeClickSuppression() {
			return v, nil
		}
		if row := v.rowAt(msg.Y); row >= 0 && row < len(v.tasks) {
			return v, pushView(newEditTaskView(v.state, v.tasks[row].ID))
		}
	}
	return v, nil
}

// autoScroll nudges the chart sideways when a drag approaches its
// edges, so a bar can be dragged beyond the visible window. The px
// conversion in handleMouse folds hScroll back in, which keeps the unit
// delta consistent across the scroll.
func (v *ganttView) autoScroll(x int) {
	if x >= v.state.Width-edgeScrollZone {
		v.hScroll += edgeScrollStep
		return
	}
	if x <= nameColWidth+edgeScrollZone && v.hScroll > 0 {
		v.hScroll -= edgeScrollStep
		if v.hScroll < 0 {
			v.hScroll = 0
		}
	}
}

// dragOrigins returns the pre-drag dates of every task the drag moves:
// the whole selection when the press lands on a selected bar, otherwise
// the pressed task alone.
func (v *ganttView) dragOrigins(pressed domain.Task) map[string]gantt.DateRange {
	origins := map[string]gantt.DateRange{
		pressed.ID: {Start: pressed.StartDate, End: pressed.EndDate},
	}
	if !v.state.Selected[pressed.ID] {
		return origins
	}
	for _, t := range v.tasks {
		if v.state.Selected[t.ID] {
			origins[t.ID] = gantt.DateRange{Start: t.StartDate, End: t.EndDate}
		}
	}
	return origins
}

func (v *ganttView) commitReschedule(commit map[string]gantt.DateRange) tea.Cmd {
	changes := make([]store.TaskDates, 0, len(commit))
	for id, r := range commit {
		changes = append(changes, store.TaskDates{ID: id, Start: r.Start, End: r.End})
	}
	if err := v.state.App.Store.Reschedule(changes); err != nil {
		return showOutput(errorLine(err))
	}
	return refreshViews()
}

// rowAt maps an absolute terminal row to a task index.
func (v *ganttView) rowAt(y int) int {
	return y - appHeaderLines - chartHeaderLines
}

func (v *ganttView) View() string {
	if len(v.tasks) == 0 {
		return "\n  " + formatter.Dim("Nothing to chart. Add tasks first.")
	}

	chartWidth := v.state.Width - nameColWidth
	if chartWidth < 10 {
		chartWidth = 10
	}

	var b strings.Builder
	b.WriteString(renderChart(v.tasks, v.tl, v.displayRange, chartWidth, v.hScroll, v.cursor, v.state.Selected))

	if arrows := gantt.Arrows(v.tasks, v.tl, 1); len(arrows) > 0 {
		b.WriteString("\n")
		for _, a := range arrows {
			from := domain.TaskName(v.tasks, a.FromID)
			to := domain.TaskName(v.tasks, a.ToID)
			b.WriteString("  " + formatter.Dim(from+" ─▶ "+to) + "\n")
		}
	}

	footer := fmt.Sprintf("%s · zoom %.2g", v.state.Granularity, v.state.Zoom)
	if n := len(v.state.Selected); n > 0 {
		footer += fmt.Sprintf(" · %d selected", n)
	}
	b.WriteString("\n  " + formatter.Dim(footer))
	return b.String()
}

// displayRange returns a task's dates with any in-flight drag preview
// applied.
func (v *ganttView) displayRange(t domain.Task) (time.Time, time.Time) {
	if r, ok := v.preview[t.ID]; ok {
		return r.Start, r.End
	}
	return t.StartDate, t.EndDate
}

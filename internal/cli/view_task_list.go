package cli

import (
	"fmt"
	"strings"

	"github.com/avolkenstein/planweave/internal/calendar"
	"github.com/avolkenstein/planweave/internal/cli/formatter"
	"github.com/avolkenstein/planweave/internal/domain"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// statusCycle is the order the 't' key walks a task's status through.
var statusCycle = []domain.TaskStatus{
	domain.StatusNotStarted,
	domain.StatusInProgress,
	domain.StatusCompleted,
}

// filter cycle presets for the 'f' (status), 'p' (priority) and
// 'w' (window) keys. The empty first entry means "no filter".
var (
	statusFilterCycle   = []domain.TaskStatus{"", domain.StatusNotStarted, domain.StatusInProgress, domain.StatusCompleted}
	priorityFilterCycle = []domain.TaskPriority{"", domain.PriorityHigh, domain.PriorityMedium, domain.PriorityLow}
	windowCycle         = []int{0, 7, 14, 30}
	sortCycle           = []domain.SortKey{"", domain.SortByStartDate, domain.SortByEndDate, domain.SortByPriority, domain.SortByStatus}
)

// taskListView is the home view: the filtered, sorted task collection
// with a cursor and a multi-select set for bulk operations.
type taskListView struct {
	state  *SharedState
	tasks  []domain.Task
	all    []domain.Task // unfiltered snapshot, for dependency name lookup
	cursor int
	err    error
}

func newTaskListView(state *SharedState) *taskListView {
	return &taskListView{state: state}
}

func (v *taskListView) ID() ViewID    { return ViewTaskList }
func (v *taskListView) Title() string { return "Tasks" }

func (v *taskListView) ShortHelp() []key.Binding {
	return []key.Binding{
		key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "edit")),
		key.NewBinding(key.WithKeys("space"), key.WithHelp("space", "select")),
		key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "add")),
		key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "status")),
		key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "delete")),
		key.NewBinding(key.WithKeys("s"), key.WithHelp("s/f/p/w", "sort/filter")),
		key.NewBinding(key.WithKeys("g"), key.WithHelp("g", "timeline")),
		key.NewBinding(key.WithKeys("i"), key.WithHelp("i", "assistant")),
		key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "calendar")),
	}
}

func (v *taskListView) Init() tea.Cmd {
	v.reload()
	return nil
}

// reload re-derives the visible rows from the store snapshot. The
// cursor is clamped and stale selections dropped.
func (v *taskListView) reload() {
	v.all = v.state.App.Store.Snapshot()
	v.tasks = v.state.VisibleTasks()
	if v.cursor >= len(v.tasks) {
		v.cursor = len(v.tasks) - 1
	}
	if v.cursor < 0 {
		v.cursor = 0
	}
	v.state.PruneSelection(v.all)
}

// targets returns the tasks a bulk operation applies to: the selection
// when non-empty, otherwise the task under the cursor.
func (v *taskListView) targets() []domain.Task {
	if len(v.state.Selected) > 0 {
		var out []domain.Task
		for _, t := range v.tasks {
			if v.state.Selected[t.ID] {
				out = append(out, t)
			}
		}
		return out
	}
	if v.cursor < len(v.tasks) {
		return []domain.Task{v.tasks[v.cursor]}
	}
	return nil
}

func (v *taskListView) targetIDs() []string {
	ts := v.targets()
	ids := make([]string, 0, len(ts))
	for _, t := range ts {
		ids = append(ids, t.ID)
	}
	return ids
}

func (v *taskListView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case refreshViewMsg:
		v.reload()
		return v, nil

	case tea.KeyMsg:
		return v.handleKey(msg)
	}
	return v, nil
}

func (v *taskListView) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
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

	case "A":
		// Select all / clear all.
		if len(v.state.Selected) == len(v.tasks) {
			v.state.Selected = make(map[string]bool)
		} else {
			for _, t := range v.tasks {
				v.state.Selected[t.ID] = true
			}
		}

	case "enter":
		if v.cursor < len(v.tasks) {
			return v, pushView(newEditTaskView(v.state, v.tasks[v.cursor].ID))
		}

	case "a":
		return v, pushView(newAddTaskView(v.state))

	case "t":
		return v, v.cycleStatus()

	case "x":
		return v, v.deleteTargets()

	case "K":
		return v, v.moveBy(-1)

	case "J":
		return v, v.moveBy(1)

	case "s":
		v.state.Sort = nextIn(sortCycle, v.state.Sort)
		v.reload()

	case "S":
		v.state.SortDesc = !v.state.SortDesc
		v.reload()

	case "f":
		cur := domain.TaskStatus("")
		if len(v.state.Filter.Statuses) > 0 {
			cur = v.state.Filter.Statuses[0]
		}
		next := nextIn(statusFilterCycle, cur)
		if next == "" {
			v.state.Filter.Statuses = nil
		} else {
			v.state.Filter.Statuses = []domain.TaskStatus{next}
		}
		v.reload()

	case "p":
		cur := domain.TaskPriority("")
		if len(v.state.Filter.Priorities) > 0 {
			cur = v.state.Filter.Priorities[0]
		}
		next := nextIn(priorityFilterCycle, cur)
		if next == "" {
			v.state.Filter.Priorities = nil
		} else {
			v.state.Filter.Priorities = []domain.TaskPriority{next}
		}
		v.reload()

	case "w":
		v.state.Filter.WindowDays = nextIn(windowCycle, v.state.Filter.WindowDays)
		v.reload()

	case "g":
		return v, replaceView(newGanttView(v.state))

	case "i":
		return v, pushView(newAssistantView(v.state))

	case "c":
		return v, v.exportTargets()

	case "r":
		v.reload()
	}
	return v, nil
}

// cycleStatus advances every target task to the next status in the cycle.
// With a multi-selection all targets adopt the status after the cursor
// task's current one, so the bulk result is uniform.
func (v *taskListView) cycleStatus() tea.Cmd {
	targets := v.targets()
	if len(targets) == 0 {
		return nil
	}
	ref := targets[0]
	if v.cursor < len(v.tasks) && v.state.Selected[v.tasks[v.cursor].ID] {
		ref = v.tasks[v.cursor]
	}
	next := nextIn(statusCycle, ref.Status)
	if err := v.state.App.Store.BulkSetStatus(v.targetIDs(), next); err != nil {
		return showOutput(errorLine(err))
	}
	return refreshViews()
}

func (v *taskListView) deleteTargets() tea.Cmd {
	ids := v.targetIDs()
	if len(ids) == 0 {
		return nil
	}
	if err := v.state.App.Store.BulkDelete(ids); err != nil {
		return showOutput(errorLine(err))
	}
	v.state.Selected = make(map[string]bool)
	return refreshViews()
}

// moveBy swaps the cursor task with its visible neighbour. Only
// available in manual order; a sorted list has no stable target slot.
// The target index is the neighbour's position in the stored order, so
// the swap works even when a filter hides rows in between.
func (v *taskListView) moveBy(delta int) tea.Cmd {
	if v.state.Sort != "" {
		return showOutput(formatter.Dim("Reordering needs manual order (press 's' until sort is off)."))
	}
	if v.cursor >= len(v.tasks) {
		return nil
	}
	neighbor := v.cursor + delta
	if neighbor < 0 || neighbor >= len(v.tasks) {
		return nil
	}
	toIndex := storeIndexOf(v.all, v.tasks[neighbor].ID)
	if toIndex < 0 {
		return nil
	}
	if err := v.state.App.Store.Reorder(v.tasks[v.cursor].ID, toIndex); err != nil {
		return showOutput(errorLine(err))
	}
	v.cursor = neighbor
	return refreshViews()
}

func storeIndexOf(tasks []domain.Task, id string) int {
	for i, t := range tasks {
		if t.ID == id {
			return i
		}
	}
	return -1
}

// exportTargets shows the calendar export plan for the selection.
func (v *taskListView) exportTargets() tea.Cmd {
	targets := v.targets()
	if len(targets) == 0 {
		return nil
	}
	plan := calendar.BuildPlan(targets)
	out := formatter.Header("Calendar export") + "\n" + formatter.FormatExportPlan(plan)
	if plan.NeedsConfirm {
		out += formatter.StyleYellow.Render(fmt.Sprintf("! %d events; use \"planweave export\" to open them with confirmation.", len(plan.Links))) + "\n"
	}
	return showOutput(out)
}

func (v *taskListView) View() string {
	if v.err != nil {
		return "\n  " + formatter.StyleRed.Render("Error: "+v.err.Error())
	}
	if len(v.tasks) == 0 {
		return "\n  " + formatter.Dim("No tasks. Press 'a' to add one.")
	}

	var b strings.Builder
	if line := v.renderModeLine(); line != "" {
		b.WriteString("  " + line + "\n")
	}
	b.WriteString("\n")
	for i, t := range v.tasks {
		b.WriteString(v.renderRow(t, i == v.cursor))
		b.WriteByte('\n')
	}
	return b.String()
}

// renderModeLine summarizes the active sort and filters, or nothing
// when the list is unmodified.
func (v *taskListView) renderModeLine() string {
	var parts []string
	if v.state.Sort != "" {
		dir := "asc"
		if v.state.SortDesc {
			dir = "desc"
		}
		parts = append(parts, fmt.Sprintf("sort: %s %s", v.state.Sort, dir))
	}
	if len(v.state.Filter.Statuses) > 0 {
		parts = append(parts, "status: "+v.state.Filter.Statuses[0].Label())
	}
	if len(v.state.Filter.Priorities) > 0 {
		parts = append(parts, "priority: "+v.state.Filter.Priorities[0].Label())
	}
	if v.state.Filter.WindowDays > 0 {
		parts = append(parts, fmt.Sprintf("next %dd", v.state.Filter.WindowDays))
	}
	if len(v.state.Selected) > 0 {
		parts = append(parts, fmt.Sprintf("%d selected", len(v.state.Selected)))
	}
	if len(parts) == 0 {
		return ""
	}
	return formatter.Dim(strings.Join(parts, "  ·  "))
}

func (v *taskListView) renderRow(t domain.Task, isCursor bool) string {
	cursor := "  "
	if isCursor {
		cursor = formatter.StyleGreen.Render("▸ ")
	}

	mark := "  "
	if v.state.Selected[t.ID] {
		mark = formatter.StyleYellow.Render("◉ ")
	}

	statusIcon := formatter.StyleBlue.Render("○")
	switch t.Status {
	case domain.StatusCompleted:
		statusIcon = formatter.StyleGreen.Render("✔")
	case domain.StatusInProgress:
		statusIcon = formatter.StyleYellow.Render("▶")
	}

	name := t.Name
	if t.Status == domain.StatusCompleted {
		name = formatter.Dim(name)
	}

	line := fmt.Sprintf("%s%s%s %s %s  %s",
		cursor, mark, statusIcon,
		formatter.PriorityPill(t.Priority),
		name,
		formatter.Dim(formatter.DateRange(t.StartDate, t.EndDate)),
	)
	if deps := formatter.DependencyNames(v.all, t); deps != "" {
		line += "  " + formatter.Dim("after "+deps)
	}
	return line
}

// nextIn returns the element after cur in cycle, wrapping around.
// An unknown cur restarts the cycle.
func nextIn[T comparable](cycle []T, cur T) T {
	for i, c := range cycle {
		if c == cur {
			return cycle[(i+1)%len(cycle)]
		}
	}
	return cycle[0]
}

func errorLine(err error) string {
	return formatter.StyleRed.Render("Error: " + err.Error())
}

package cli

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/avolkenstein/planweave/internal/domain"
	"github.com/avolkenstein/planweave/internal/gantt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTaskList_RendersTasks(t *testing.T) {
	pinNow(t, day(2024, 3, 1))
	d := NewTestDriver(t, newTestApp(t))

	view := d.View()
	assert.Contains(t, view, "Design")
	assert.Contains(t, view, "Build")
	assert.Contains(t, view, "Ship")
}

func TestTaskList_SelectAndBulkStatus(t *testing.T) {
	pinNow(t, day(2024, 3, 1))
	app := newTestApp(t)
	d := NewTestDriver(t, app)

	// Select the second and third rows, then cycle their status.
	d.PressDown()
	d.PressSpace()
	d.PressDown()
	d.PressSpace()
	d.PressKey('t')

	tasks := app.Store.Snapshot()
	assert.Equal(t, domain.StatusCompleted, tasks[0].Status, "unselected task untouched")
	assert.Equal(t, domain.StatusInProgress, tasks[1].Status)
	assert.Equal(t, domain.StatusInProgress, tasks[2].Status)
}

func TestTaskList_DeleteCursorTask(t *testing.T) {
	pinNow(t, day(2024, 3, 1))
	app := newTestApp(t)
	d := NewTestDriver(t, app)

	d.PressKey('x')

	require.Equal(t, 2, app.Store.Len())
	assert.NotContains(t, d.View(), "Design")
	// The survivor's dependency on the deleted task is gone.
	for _, task := range app.Store.Snapshot() {
		assert.Empty(t, task.Dependencies)
	}
}

func TestTaskList_SortAndFilterCycles(t *testing.T) {
	pinNow(t, day(2024, 3, 1))
	d := NewTestDriver(t, newTestApp(t))

	d.PressKey('s')
	assert.Equal(t, domain.SortByStartDate, d.state().Sort)
	d.PressKey('S')
	assert.True(t, d.state().SortDesc)

	d.PressKey('f')
	assert.Equal(t, []domain.TaskStatus{domain.StatusNotStarted}, d.state().Filter.Statuses)
	assert.NotContains(t, d.View(), "Design")

	// Cycle status filter back to off.
	d.PressKey('f')
	d.PressKey('f')
	d.PressKey('f')
	assert.Empty(t, d.state().Filter.Statuses)
}

func TestTaskList_ReorderNeedsManualOrder(t *testing.T) {
	pinNow(t, day(2024, 3, 1))
	app := newTestApp(t)
	d := NewTestDriver(t, app)

	// Move the first task down one slot.
	d.PressKey('J')
	ids := idsOf(app.Store.Snapshot())
	assert.Equal(t, "Build", app.Store.Snapshot()[0].Name)

	// Sorted lists refuse to reorder.
	d.PressKey('s')
	d.PressKey('J')
	assert.Equal(t, ids, idsOf(app.Store.Snapshot()))
}

func TestTaskList_ReorderSkipsFilteredRows(t *testing.T) {
	pinNow(t, day(2024, 3, 1))
	app := newTestApp(t)
	d := NewTestDriver(t, app)

	// Hide the completed Design row; Build and Ship remain visible.
	d.PressKey('f')
	require.Equal(t, []domain.TaskStatus{domain.StatusNotStarted}, d.state().Filter.Statuses)

	// Moving Build below Ship must target Ship's slot in the stored
	// order, not the cursor's index in the filtered view.
	d.PressKey('J')

	names := make([]string, 0, 3)
	for _, task := range app.Store.Snapshot() {
		names = append(names, task.Name)
	}
	assert.Equal(t, []string{"Design", "Ship", "Build"}, names)
}

func TestGantt_SwitchGranularityAndZoom(t *testing.T) {
	pinNow(t, day(2024, 3, 1))
	d := NewTestDriver(t, newTestApp(t))

	d.PressKey('g')
	require.Equal(t, ViewGantt, d.activeViewID())

	d.PressKey('w')
	assert.Equal(t, gantt.GranularityWeek, d.state().Granularity)

	d.PressKey('+')
	assert.InDelta(t, 1.25, d.state().Zoom, 1e-9)

	// Zoom clamps at the ceiling.
	for i := 0; i < 20; i++ {
		d.PressKey('+')
	}
	assert.InDelta(t, gantt.MaxZoom, d.state().Zoom, 1e-9)

	d.PressKey('l')
	assert.Equal(t, ViewTaskList, d.activeViewID())
}

func TestGantt_DragReschedulesTask(t *testing.T) {
	pinNow(t, day(2024, 3, 1))
	app := newTestApp(t)
	d := NewTestDriver(t, app)

	d.PressKey('g')
	require.Equal(t, ViewGantt, d.activeViewID())

	// Row 0 sits below the app header (2 lines) and axis header
	// (2 lines). A day unit is 75px = 10 cells, so +10 cells is +1 day.
	d.Mouse(30, 4, tea.MouseActionPress, tea.MouseButtonLeft)
	d.Mouse(40, 4, tea.MouseActionMotion, tea.MouseButtonLeft)
	d.Mouse(40, 4, tea.MouseActionRelease, tea.MouseButtonLeft)

	moved, ok := findTask(app.Store.Snapshot(), "Design")
	require.True(t, ok)
	assert.Equal(t, day(2024, 3, 2), moved.StartDate)
	assert.Equal(t, day(2024, 3, 4), moved.EndDate)

	// No edit form opened: the drag suppressed the click.
	assert.Equal(t, ViewGantt, d.activeViewID())
}

func TestGantt_DragMovesWholeSelection(t *testing.T) {
	pinNow(t, day(2024, 3, 1))
	app := newTestApp(t)
	d := NewTestDriver(t, app)

	// Select Design and Build in the list, then open the timeline.
	d.PressSpace()
	d.PressDown()
	d.PressSpace()
	d.PressKey('g')
	require.Equal(t, ViewGantt, d.activeViewID())

	// Dragging a selected bar +1 day shifts every selected task by the
	// same delta; the unselected Ship stays put.
	d.Mouse(30, 4, tea.MouseActionPress, tea.MouseButtonLeft)
	d.Mouse(40, 4, tea.MouseActionMotion, tea.MouseButtonLeft)
	d.Mouse(40, 4, tea.MouseActionRelease, tea.MouseButtonLeft)

	design, ok := findTask(app.Store.Snapshot(), "Design")
	require.True(t, ok)
	assert.Equal(t, day(2024, 3, 2), design.StartDate)
	assert.Equal(t, day(2024, 3, 4), design.EndDate)

	build, ok := findTask(app.Store.Snapshot(), "Build")
	require.True(t, ok)
	assert.Equal(t, day(2024, 3, 5), build.StartDate)
	assert.Equal(t, day(2024, 3, 9), build.EndDate)

	ship, ok := findTask(app.Store.Snapshot(), "Ship")
	require.True(t, ok)
	assert.Equal(t, day(2024, 3, 9), ship.StartDate)
}

func TestGantt_DragOnUnselectedBarMovesItAlone(t *testing.T) {
	pinNow(t, day(2024, 3, 1))
	app := newTestApp(t)
	d := NewTestDriver(t, app)

	// Select only Build, then drag the unselected Design bar.
	d.PressDown()
	d.PressSpace()
	d.PressKey('g')

	d.Mouse(30, 4, tea.MouseActionPress, tea.MouseButtonLeft)
	d.Mouse(40, 4, tea.MouseActionMotion, tea.MouseButtonLeft)
	d.Mouse(40, 4, tea.MouseActionRelease, tea.MouseButtonLeft)

	design, ok := findTask(app.Store.Snapshot(), "Design")
	require.True(t, ok)
	assert.Equal(t, day(2024, 3, 2), design.StartDate)

	build, ok := findTask(app.Store.Snapshot(), "Build")
	require.True(t, ok)
	assert.Equal(t, day(2024, 3, 4), build.StartDate, "selection not under the pointer stays put")
}

func TestGantt_DragAutoScrollsAtEdge(t *testing.T) {
	pinNow(t, day(2024, 3, 1))
	app := newTestApp(t)
	d := NewTestDriver(t, app)

	d.PressKey('g')
	gv := d.appModel().activeView().(*ganttView)
	require.Equal(t, 0, gv.hScroll)

	// Drag toward the right edge of the 120-cell terminal; each motion
	// inside the edge zone nudges the chart further.
	d.Mouse(30, 4, tea.MouseActionPress, tea.MouseButtonLeft)
	d.Mouse(119, 4, tea.MouseActionMotion, tea.MouseButtonLeft)
	d.Mouse(119, 4, tea.MouseActionMotion, tea.MouseButtonLeft)

	gv = d.appModel().activeView().(*ganttView)
	assert.GreaterOrEqual(t, gv.hScroll, 2*edgeScrollStep)

	d.Mouse(119, 4, tea.MouseActionRelease, tea.MouseButtonLeft)
}

func TestGantt_SmallDragIsClick(t *testing.T) {
	pinNow(t, day(2024, 3, 1))
	app := newTestApp(t)
	d := NewTestDriver(t, app)

	d.PressKey('g')
	d.Mouse(30, 4, tea.MouseActionPress, tea.MouseButtonLeft)
	d.Mouse(30, 4, tea.MouseActionRelease, tea.MouseButtonLeft)

	// Dates unchanged, edit form opened.
	unmoved, ok := findTask(app.Store.Snapshot(), "Design")
	require.True(t, ok)
	assert.Equal(t, day(2024, 3, 1), unmoved.StartDate)
	assert.Equal(t, ViewForm, d.activeViewID())
}

func TestAssistant_DisabledShowsHint(t *testing.T) {
	pinNow(t, day(2024, 3, 1))
	d := NewTestDriver(t, newTestApp(t))

	d.PressKey('i')
	require.Equal(t, ViewAssistant, d.activeViewID())
	assert.Contains(t, d.View(), "assistant is disabled")

	d.PressEsc()
	assert.Equal(t, ViewTaskList, d.activeViewID())
}

func TestEscPopsViewStack(t *testing.T) {
	pinNow(t, day(2024, 3, 1))
	d := NewTestDriver(t, newTestApp(t))

	d.PressKey('a')
	require.Equal(t, ViewForm, d.activeViewID())
	require.Equal(t, 2, d.stackDepth())

	d.PressEsc()
	assert.Equal(t, 1, d.stackDepth())
	assert.Equal(t, ViewTaskList, d.activeViewID())
}

func idsOf(tasks []domain.Task) []string {
	out := make([]string, 0, len(tasks))
	for _, t := range tasks {
		out = append(out, t.ID)
	}
	return out
}

func findTask(tasks []domain.Task, name string) (domain.Task, bool) {
	for _, t := range tasks {
		if t.Name == name {
			return t, true
		}
	}
	return domain.Task{}, false
}

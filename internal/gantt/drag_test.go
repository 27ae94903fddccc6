package gantt

import (
	"testing"

	"github.com/avolkenstein/planweave/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dragTimeline(g Granularity) Timeline {
	tasks := []domain.Task{
		{ID: "a", StartDate: date(2024, 1, 1), EndDate: date(2024, 1, 2)},
		{ID: "b", StartDate: date(2024, 1, 3), EndDate: date(2024, 1, 4)},
	}
	return NewTimeline(tasks, g, 1.0, date(2024, 1, 1))
}

func originA() map[string]DateRange {
	return map[string]DateRange{
		"a": {Start: date(2024, 1, 1), End: date(2024, 1, 2)},
	}
}

func TestDrag_BelowThresholdStaysPending(t *testing.T) {
	d := NewDrag(dragTimeline(GranularityDay))
	d.PointerDown("a", 100, 50, originA())
	assert.Equal(t, DragPending, d.Phase())

	preview := d.PointerMove(103, 52)
	assert.Nil(t, preview, "5px threshold not crossed")
	assert.Equal(t, DragPending, d.Phase())

	commit, dragged := d.PointerUp(103, 52)
	assert.Nil(t, commit)
	assert.False(t, dragged)
	assert.False(t, d.ConsumeClickSuppression(), "a click must open the edit form")
	assert.Equal(t, DragIdle, d.Phase())
}

func TestDrag_ShiftByUnits(t *testing.T) {
	d := NewDrag(dragTimeline(GranularityDay))
	d.PointerDown("a", 100, 50, originA())

	// 150px right at 75px/unit rounds to +2 days.
	preview := d.PointerMove(250, 50)
	require.NotNil(t, preview)
	assert.Equal(t, DragActive, d.Phase())
	assert.Equal(t, date(2024, 1, 3), preview["a"].Start)
	assert.Equal(t, date(2024, 1, 4), preview["a"].End)

	commit, dragged := d.PointerUp(250, 50)
	require.True(t, dragged)
	require.NotNil(t, commit)
	assert.Equal(t, date(2024, 1, 3), commit["a"].Start)
	assert.True(t, d.ConsumeClickSuppression())
	assert.False(t, d.ConsumeClickSuppression(), "suppression resets after one read")
}

// Moves are computed from the drag origin, not from the currently
// displayed dates: dragging +N units and then back to the origin
// restores the original dates exactly.
func TestDrag_IdempotentFromOrigin(t *testing.T) {
	d := NewDrag(dragTimeline(GranularityDay))
	d.PointerDown("a", 100, 50, originA())

	for i := 0; i < 5; i++ {
		preview := d.PointerMove(100+75*3, 50)
		require.NotNil(t, preview)
		assert.Equal(t, date(2024, 1, 4), preview["a"].Start, "repeated moves are not cumulative")
	}

	preview := d.PointerMove(100, 50)
	require.NotNil(t, preview, "still dragging after returning to origin")
	assert.Equal(t, date(2024, 1, 1), preview["a"].Start)
	assert.Equal(t, date(2024, 1, 2), preview["a"].End)

	commit, dragged := d.PointerUp(100, 50)
	assert.True(t, dragged)
	assert.Nil(t, commit, "zero-unit drag commits nothing")
}

func TestDrag_MultiSelectSharesUnitDelta(t *testing.T) {
	d := NewDrag(dragTimeline(GranularityDay))
	origins := map[string]DateRange{
		"a": {Start: date(2024, 1, 1), End: date(2024, 1, 2)},
		"b": {Start: date(2024, 1, 3), End: date(2024, 1, 4)},
	}
	d.PointerDown("a", 0, 0, origins)

	preview := d.PointerMove(75, 0)
	require.NotNil(t, preview)
	assert.Equal(t, date(2024, 1, 2), preview["a"].Start)
	assert.Equal(t, date(2024, 1, 4), preview["b"].Start, "each task shifts from its own origin")
}

func TestDrag_WeekAndMonthSteps(t *testing.T) {
	d := NewDrag(dragTimeline(GranularityWeek))
	d.PointerDown("a", 0, 0, originA())
	preview := d.PointerMove(70, 0)
	require.NotNil(t, preview)
	assert.Equal(t, date(2024, 1, 8), preview["a"].Start, "week granularity moves in 7-day steps")
	d.PointerUp(70, 0)

	d = NewDrag(dragTimeline(GranularityMonth))
	d.PointerDown("a", 0, 0, map[string]DateRange{
		"a": {Start: date(2024, 1, 31), End: date(2024, 1, 31)},
	})
	preview = d.PointerMove(180, 0)
	require.NotNil(t, preview)
	assert.Equal(t, date(2024, 3, 2), preview["a"].Start, "AddDate normalizes Jan 31 + 1 month")
}

func TestDrag_NegativeShiftRestores(t *testing.T) {
	tl := dragTimeline(GranularityDay)

	d := NewDrag(tl)
	d.PointerDown("a", 0, 0, originA())
	d.PointerMove(0, 6) // cross threshold vertically, zero horizontal units
	commit, _ := d.PointerUp(75*4, 0)
	require.NotNil(t, commit)
	shifted := commit["a"]
	assert.Equal(t, date(2024, 1, 5), shifted.Start)

	// Second drag by -4 units from the new origin restores the dates.
	d = NewDrag(tl)
	d.PointerDown("a", 0, 0, map[string]DateRange{"a": shifted})
	require.NotNil(t, d.PointerMove(-75*4, 0))
	commit, _ = d.PointerUp(-75*4, 6)
	require.NotNil(t, commit)
	assert.Equal(t, date(2024, 1, 1), commit["a"].Start)
	assert.Equal(t, date(2024, 1, 2), commit["a"].End)
}

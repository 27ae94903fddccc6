package gantt

import (
	"testing"
	"time"

	"github.com/avolkenstein/planweave/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestArrows_ForwardCurve(t *testing.T) {
	tasks := []domain.Task{
		{ID: "a", StartDate: date(2024, 1, 1), EndDate: date(2024, 1, 2)},
		{ID: "b", StartDate: date(2024, 1, 5), EndDate: date(2024, 1, 6), Dependencies: []string{"a"}},
	}
	tl := NewTimeline(tasks, GranularityDay, 1.0, date(2024, 1, 1))

	arrows := Arrows(tasks, tl, 40)
	require.Len(t, arrows, 1)
	a := arrows[0]

	assert.Equal(t, "a", a.FromID)
	assert.Equal(t, "b", a.ToID)

	// Right edge of a's bar: 2 days * 75px - gap; row 0 center.
	assert.InDelta(t, 2*75.0-smallGap, a.P0.X, 1e-9)
	assert.InDelta(t, 20.0, a.P0.Y, 1e-9)

	// Left edge of b's bar: 4 days offset; row 1 center.
	assert.InDelta(t, 4*75.0, a.P1.X, 1e-9)
	assert.InDelta(t, 60.0, a.P1.Y, 1e-9)

	// Control points sit 30% of the span inside the gap, pointing forward.
	span := a.P1.X - a.P0.X
	assert.InDelta(t, a.P0.X+0.3*span, a.C1.X, 1e-9)
	assert.InDelta(t, a.P1.X-0.3*span, a.C2.X, 1e-9)
	assert.Greater(t, a.C1.X, a.P0.X)
}

func TestArrows_BackReferenceFlipsControls(t *testing.T) {
	// Dependent starts before its dependency ends: the curve must loop
	// back instead of running straight backward.
	tasks := []domain.Task{
		{ID: "late", StartDate: date(2024, 1, 10), EndDate: date(2024, 1, 20)},
		{ID: "early", StartDate: date(2024, 1, 1), EndDate: date(2024, 1, 2), Dependencies: []string{"late"}},
	}
	tl := NewTimeline(tasks, GranularityDay, 1.0, date(2024, 1, 1))

	arrows := Arrows(tasks, tl, 40)
	require.Len(t, arrows, 1)
	a := arrows[0]

	require.Less(t, a.P1.X, a.P0.X)
	assert.Less(t, a.C1.X, a.P0.X, "first control point flips behind the start")
	assert.Greater(t, a.C2.X, a.P1.X, "second control point flips past the end")
}

func TestArrows_DanglingAndCycleTolerated(t *testing.T) {
	tasks := []domain.Task{
		{ID: "a", StartDate: date(2024, 1, 1), EndDate: date(2024, 1, 2), Dependencies: []string{"ghost", "b"}},
		{ID: "b", StartDate: date(2024, 1, 3), EndDate: date(2024, 1, 4), Dependencies: []string{"a"}},
	}
	tl := NewTimeline(tasks, GranularityDay, 1.0, date(2024, 1, 1))

	// The a↔b cycle draws both arrows; the dangling "ghost" id draws none.
	arrows := Arrows(tasks, tl, 40)
	assert.Len(t, arrows, 2)
}

func TestArrows_NoDependencies(t *testing.T) {
	tasks := []domain.Task{{ID: "a", StartDate: date(2024, 1, 1), EndDate: date(2024, 1, 2)}}
	tl := NewTimeline(tasks, GranularityDay, 1.0, time.Now())
	assert.Empty(t, Arrows(tasks, tl, 40))
}

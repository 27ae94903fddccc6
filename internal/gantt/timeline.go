package gantt

import (
	"time"

	"github.com/avolkenstein/planweave/internal/domain"
)

// smallGap is the pixel gap trimmed from each bar's width so adjacent
// bars do not touch.
const smallGap = 2.0

// Timeline holds the computed time axis for one render: the covering
// window snapped to unit boundaries, the enumerated unit columns, and
// the effective column width. Switching granularity or zoom builds a
// fresh Timeline; nothing is relaid out incrementally.
type Timeline struct {
	Granularity Granularity
	Zoom        float64
	UnitWidth   float64

	// Snapped covering window [Start, End], inclusive.
	Start time.Time
	End   time.Time

	// Units lists the start boundary of every axis column.
	Units []time.Time
}

// Bar is the horizontal placement of one task on the axis, in pixels.
type Bar struct {
	TaskID string
	Row    int
	X      float64
	Width  float64
}

// NewTimeline computes the axis window covering every task's date range,
// snapped outward to unit boundaries, and enumerates the axis columns.
// With no dated tasks the window collapses to the single unit containing
// today.
func NewTimeline(tasks []domain.Task, g Granularity, zoom float64, today time.Time) Timeline {
	if !ValidGranularities[g] {
		g = GranularityDay
	}
	zoom = ClampZoom(zoom)

	min, max, ok := coveringRange(tasks)
	if !ok {
		min, max = today, today
	}

	switch g {
	case GranularityWeek:
		min = startOfWeek(min)
		max = endOfWeek(max)
	case GranularityMonth:
		min = startOfMonth(min)
		max = endOfMonth(max)
	}

	tl := Timeline{
		Granularity: g,
		Zoom:        zoom,
		UnitWidth:   g.BaseUnitWidth() * zoom,
		Start:       min,
		End:         max,
	}
	tl.Units = enumerateUnits(g, min, max)
	return tl
}

// coveringRange returns the union of all task date ranges.
func coveringRange(tasks []domain.Task) (time.Time, time.Time, bool) {
	var min, max time.Time
	found := false
	for _, t := range tasks {
		if t.StartDate.IsZero() || t.EndDate.IsZero() {
			continue
		}
		if !found {
			min, max = t.StartDate, t.EndDate
			found = true
			continue
		}
		if t.StartDate.Before(min) {
			min = t.StartDate
		}
		if t.EndDate.After(max) {
			max = t.EndDate
		}
	}
	return min, max, found
}

// enumerateUnits lists unit start boundaries from start to end inclusive.
func enumerateUnits(g Granularity, start, end time.Time) []time.Time {
	var units []time.Time
	cur := start
	for !cur.After(end) {
		units = append(units, cur)
		switch g {
		case GranularityWeek:
			cur = cur.AddDate(0, 0, 7)
		case GranularityMonth:
			cur = cur.AddDate(0, 1, 0)
		default:
			cur = cur.AddDate(0, 0, 1)
		}
	}
	return units
}

// TotalUnits is the number of axis columns.
func (tl Timeline) TotalUnits() int { return len(tl.Units) }

// TotalWidth is the full chart width in pixels.
func (tl Timeline) TotalWidth() float64 {
	return float64(tl.TotalUnits()) * tl.UnitWidth
}

// UnitsBetween counts whole axis units from the window start to date.
// Dates inside the window always yield a non-negative count.
func (tl Timeline) UnitsBetween(date time.Time) int {
	switch tl.Granularity {
	case GranularityWeek:
		return daysBetween(tl.Start, startOfWeek(date)) / 7
	case GranularityMonth:
		return monthsBetween(tl.Start, date)
	default:
		return daysBetween(tl.Start, date)
	}
}

// DurationInUnits counts the axis columns a [start, end] range occupies.
// The week and month policies are deliberately coarse: a range that fits
// inside its starting unit always occupies one full column. A reversed
// range yields zero, which renders as a zero/negative-width bar rather
// than an error.
func (tl Timeline) DurationInUnits(start, end time.Time) int {
	if end.Before(start) {
		return 0
	}
	switch tl.Granularity {
	case GranularityWeek:
		if startOfWeek(start).Equal(startOfWeek(end)) {
			return 1
		}
		days := daysBetween(start, end) + 1
		spans := days / 7
		if days%7 != 0 {
			spans++
		}
		return spans
	case GranularityMonth:
		return monthsBetween(start, end) + 1
	default:
		return daysBetween(start, end) + 1
	}
}

// BarFor places a task on the axis. Row is the task's index in the
// collection's display order.
func (tl Timeline) BarFor(t domain.Task, row int) Bar {
	offset := float64(tl.UnitsBetween(t.StartDate)) * tl.UnitWidth
	width := float64(tl.DurationInUnits(t.StartDate, t.EndDate))*tl.UnitWidth - smallGap
	return Bar{TaskID: t.ID, Row: row, X: offset, Width: width}
}

// UnitLabel formats the axis header label for column i.
func (tl Timeline) UnitLabel(i int) string {
	if i < 0 || i >= len(tl.Units) {
		return ""
	}
	switch tl.Granularity {
	case GranularityMonth:
		return tl.Units[i].Format("Jan 2006")
	default:
		return tl.Units[i].Format("Jan 02")
	}
}

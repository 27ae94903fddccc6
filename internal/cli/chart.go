package cli

import (
	"math"
	"strings"
	"time"

	"github.com/avolkenstein/planweave/internal/cli/formatter"
	"github.com/avolkenstein/planweave/internal/domain"
	"github.com/avolkenstein/planweave/internal/gantt"
)

// renderChart draws the timeline: an axis header plus one bar row per
// task. rangeOf supplies each task's displayed dates, which lets the
// interactive view substitute drag previews. hScroll and chartWidth are
// in cells; cursor is the highlighted row, or -1 for none; selected may
// be nil when the caller has no multi-select.
func renderChart(tasks []domain.Task, tl gantt.Timeline, rangeOf func(domain.Task) (time.Time, time.Time), chartWidth, hScroll, cursor int, selected map[string]bool) string {
	var b strings.Builder

	b.WriteString(strings.Repeat(" ", nameColWidth))
	b.WriteString(renderAxis(tl, chartWidth, hScroll))
	b.WriteByte('\n')

	b.WriteString(formatter.Dim(strings.Repeat("─", nameColWidth+chartWidth)))
	b.WriteByte('\n')

	for i, t := range tasks {
		start, end := rangeOf(t)
		b.WriteString(renderBarRow(t, tl, start, end, chartWidth, hScroll, i == cursor, selected[t.ID]))
		b.WriteByte('\n')
	}

	return b.String()
}

// renderAxis lays out unit labels at their column positions, dropping
// labels that would overlap the previous one.
func renderAxis(tl gantt.Timeline, chartWidth, hScroll int) string {
	cells := make([]rune, chartWidth)
	for i := range cells {
		cells[i] = ' '
	}

	lastEnd := -1
	for i := 0; i < tl.TotalUnits(); i++ {
		pos := pxToCell(float64(i)*tl.UnitWidth) - hScroll
		label := tl.UnitLabel(i)
		if pos <= lastEnd {
			continue
		}
		for j, r := range label {
			at := pos + j
			if at < 0 || at >= chartWidth {
				continue
			}
			cells[at] = r
		}
		lastEnd = pos + len(label)
	}

	return formatter.Dim(string(cells))
}

// renderBarRow draws one task: the name column then the bar.
func renderBarRow(t domain.Task, tl gantt.Timeline, start, end time.Time, chartWidth, hScroll int, isCursor, isSelected bool) string {
	name := t.Name
	if runes := []rune(name); len(runes) > nameColWidth-3 {
		name = string(runes[:nameColWidth-4]) + "…"
	}
	prefix := "  "
	if isCursor {
		prefix = formatter.StyleGreen.Render("▸ ")
	} else if isSelected {
		prefix = formatter.StyleYellow.Render("◉ ")
	}
	nameCell := prefix + name + strings.Repeat(" ", nameColWidth-2-len([]rune(name)))

	barStart := pxToCell(float64(tl.UnitsBetween(start))*tl.UnitWidth) - hScroll
	units := tl.DurationInUnits(start, end)
	barLen := pxToCell(float64(units) * tl.UnitWidth)
	if units > 0 && barLen < 1 {
		barLen = 1
	}

	row := make([]rune, chartWidth)
	for i := range row {
		row[i] = ' '
	}
	for i := 0; i < barLen; i++ {
		at := barStart + i
		if at < 0 || at >= chartWidth {
			continue
		}
		row[at] = '█'
	}

	return nameCell + formatter.StatusColor(t.Status).Render(string(row))
}

func pxToCell(px float64) int {
	return int(math.Round(px / pxPerCell))
}

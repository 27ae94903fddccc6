package gantt

import "github.com/avolkenstein/planweave/internal/domain"

// controlOffsetRatio is the fraction of the horizontal span between the
// arrow endpoints used as the bezier control-point offset.
const controlOffsetRatio = 0.3

// Point is a chart-space coordinate in pixels.
type Point struct {
	X float64
	Y float64
}

// Arrow is the cubic curve from a dependency's bar to its dependent's
// bar. It is purely cosmetic: it carries no scheduling semantics and is
// computed without cycle detection.
type Arrow struct {
	FromID string // dependency (predecessor)
	ToID   string // dependent (successor)

	P0 Point // right edge of the dependency bar, row center
	C1 Point // control point near P0
	C2 Point // control point near P1
	P1 Point // left edge of the dependent bar, row center
}

// Arrows computes one curve per (dependency → dependent) pair. Rows are
// rowHeight pixels tall and follow the display order of tasks. Dangling
// dependency ids simply produce no arrow.
func Arrows(tasks []domain.Task, tl Timeline, rowHeight float64) []Arrow {
	bars := make(map[string]Bar, len(tasks))
	for i, t := range tasks {
		bars[t.ID] = tl.BarFor(t, i)
	}

	var arrows []Arrow
	for _, t := range tasks {
		to, ok := bars[t.ID]
		if !ok {
			continue
		}
		for _, depID := range t.Dependencies {
			from, ok := bars[depID]
			if !ok {
				continue
			}
			arrows = append(arrows, curve(from, to, rowHeight))
		}
	}
	return arrows
}

func curve(from, to Bar, rowHeight float64) Arrow {
	p0 := Point{
		X: from.X + from.Width,
		Y: (float64(from.Row) + 0.5) * rowHeight,
	}
	p1 := Point{
		X: to.X,
		Y: (float64(to.Row) + 0.5) * rowHeight,
	}

	span := p1.X - p0.X
	if span < 0 {
		span = -span
	}
	offset := span * controlOffsetRatio

	// When the dependent bar starts left of the dependency's right edge,
	// flip the control offsets outward so the curve loops back instead of
	// running straight backward.
	if p1.X < p0.X {
		offset = -offset
	}

	return Arrow{
		FromID: from.TaskID,
		ToID:   to.TaskID,
		P0:     p0,
		C1:     Point{X: p0.X + offset, Y: p0.Y},
		C2:     Point{X: p1.X - offset, Y: p1.Y},
		P1:     p1,
	}
}

package gantt

import (
	"math"
	"time"
)

// dragThresholdPx is the cumulative pointer displacement required before
// a press becomes a drag. Below it, pointer-up is treated as a click.
const dragThresholdPx = 5.0

// DragPhase is the state of the reschedule interaction.
type DragPhase int

const (
	// DragIdle: no pointer interaction in progress.
	DragIdle DragPhase = iota
	// DragPending: pointer is down on a bar, displacement still under
	// the threshold.
	DragPending
	// DragActive: threshold exceeded, the bar follows the pointer.
	DragActive
)

// DateRange is a task's [start, end] pair.
type DateRange struct {
	Start time.Time
	End   time.Time
}

// Drag is the explicit {idle, pending, dragging} state machine behind
// drag-to-reschedule. All selected tasks shift by the same unit delta,
// each computed from its own dates captured at press time, so repeated
// moves are idempotent with respect to the drag origin.
type Drag struct {
	tl    Timeline
	phase DragPhase

	startX float64
	startY float64

	targetID string
	origins  map[string]DateRange

	suppressClick bool
}

// NewDrag creates an idle drag machine bound to a timeline. Rebuild it
// whenever the timeline changes; unit conversion depends on UnitWidth.
func NewDrag(tl Timeline) *Drag {
	return &Drag{tl: tl}
}

// Phase returns the current state.
func (d *Drag) Phase() DragPhase { return d.phase }

// TargetID returns the task the pointer went down on, or "".
func (d *Drag) TargetID() string { return d.targetID }

// PointerDown enters the pending state. origins carries the pre-drag
// dates of every task that should move: the pressed task alone, or the
// whole multi-selection when the press lands inside it.
func (d *Drag) PointerDown(taskID string, x, y float64, origins map[string]DateRange) {
	d.phase = DragPending
	d.startX = x
	d.startY = y
	d.targetID = taskID
	d.suppressClick = false

	d.origins = make(map[string]DateRange, len(origins))
	for id, r := range origins {
		d.origins[id] = r
	}
}

// PointerMove updates the machine and returns the previewed date ranges
// keyed by task id, or nil while the threshold has not been crossed.
func (d *Drag) PointerMove(x, y float64) map[string]DateRange {
	if d.phase == DragIdle {
		return nil
	}
	dx := x - d.startX
	dy := y - d.startY

	if d.phase == DragPending {
		if math.Hypot(dx, dy) <= dragThresholdPx {
			return nil
		}
		d.phase = DragActive
	}

	return d.shifted(dx)
}

// PointerUp leaves the interaction unconditionally. It returns the final
// date ranges to commit (nil for a plain click) and whether the click
// event that follows the release must be suppressed.
func (d *Drag) PointerUp(x, y float64) (map[string]DateRange, bool) {
	var commit map[string]DateRange
	dragged := d.phase == DragActive
	if dragged {
		commit = d.shifted(x - d.startX)
		if unitDelta(x-d.startX, d.tl.UnitWidth) == 0 {
			commit = nil
		}
	}

	d.phase = DragIdle
	d.targetID = ""
	d.origins = nil
	d.suppressClick = dragged

	return commit, dragged
}

// ConsumeClickSuppression reports whether the click immediately following
// a release belongs to a finished drag. The flag resets on read so only
// one click is swallowed.
func (d *Drag) ConsumeClickSuppression() bool {
	s := d.suppressClick
	d.suppressClick = false
	return s
}

// shifted applies the pixel displacement to every origin range.
func (d *Drag) shifted(dx float64) map[string]DateRange {
	units := unitDelta(dx, d.tl.UnitWidth)
	out := make(map[string]DateRange, len(d.origins))
	for id, r := range d.origins {
		start, end := ShiftRange(d.tl.Granularity, r.Start, r.End, units)
		out[id] = DateRange{Start: start, End: end}
	}
	return out
}

// unitDelta converts horizontal pixel displacement into a signed count of
// axis units.
func unitDelta(dx, unitWidth float64) int {
	if unitWidth <= 0 {
		return 0
	}
	return int(math.Round(dx / unitWidth))
}

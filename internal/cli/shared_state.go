package cli

import (
	"github.com/avolkenstein/planweave/internal/domain"
	"github.com/avolkenstein/planweave/internal/gantt"
)

// SharedState holds context shared across all views via pointer.
type SharedState struct {
	App *App

	// List presentation. An empty Sort key means the stored manual order.
	Sort     domain.SortKey
	SortDesc bool
	Filter   domain.Filter

	// Selected is the multi-select set, shared so a selection made in
	// the list survives into the timeline (bulk drag) and back.
	Selected map[string]bool

	// Timeline presentation, preserved when hopping between views.
	Granularity gantt.Granularity
	Zoom        float64

	// Terminal dimensions
	Width  int
	Height int
}

func newSharedState(app *App) *SharedState {
	return &SharedState{
		App:         app,
		Selected:    make(map[string]bool),
		Granularity: gantt.GranularityDay,
		Zoom:        1.0,
	}
}

// VisibleTasks returns the store snapshot with the current filter and
// sort applied.
func (s *SharedState) VisibleTasks() []domain.Task {
	tasks := s.Filter.Apply(s.App.Store.Snapshot(), nowFunc())
	if s.Sort == "" {
		return tasks
	}
	return domain.SortTasks(tasks, s.Sort, s.SortDesc)
}

// PruneSelection drops selected ids that no longer exist among tasks.
// Called with the full snapshot so a filtered-out task stays selected.
func (s *SharedState) PruneSelection(tasks []domain.Task) {
	present := make(map[string]bool, len(tasks))
	for _, t := range tasks {
		present[t.ID] = true
	}
	for id := range s.Selected {
		if !present[id] {
			delete(s.Selected, id)
		}
	}
}

// ContentHeight returns the available height for view content,
// accounting for header (2 lines: title + separator) and
// status bar (2 lines: separator + hints).
func (s *SharedState) ContentHeight() int {
	h := s.Height - 4
	if h < 1 {
		return 1
	}
	return h
}

package calendar

import (
	"time"

	"github.com/avolkenstein/planweave/internal/domain"
)

const (
	// confirmThreshold is the task count above which a bulk export asks
	// for confirmation before opening anything.
	confirmThreshold = 10

	// openDelay spaces out browser opens so popup blocking does not
	// swallow them.
	openDelay = 500 * time.Millisecond
)

// TaskLink pairs a task with its event URL.
type TaskLink struct {
	TaskID string
	Name   string
	URL    string
}

// Plan describes a bulk export before it runs: one link per task, the
// pacing between opens, and whether the caller must confirm first.
type Plan struct {
	Links        []TaskLink
	OpenDelay    time.Duration
	NeedsConfirm bool
}

// BuildPlan creates the export plan for the given tasks.
func BuildPlan(tasks []domain.Task) Plan {
	links := make([]TaskLink, 0, len(tasks))
	for _, t := range tasks {
		links = append(links, TaskLink{
			TaskID: t.ID,
			Name:   t.Name,
			URL:    EventLink(t),
		})
	}
	return Plan{
		Links:        links,
		OpenDelay:    openDelay,
		NeedsConfirm: len(links) > confirmThreshold,
	}
}

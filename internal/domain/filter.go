package domain

import "time"

// Filter narrows a task list by status, priority and a relative date
// window. Zero-valued fields match everything.
type Filter struct {
	Statuses   []TaskStatus
	Priorities []TaskPriority

	// WindowDays keeps tasks whose date range touches
	// [now, now+WindowDays]. Zero disables the window.
	WindowDays int
}

// Apply returns the tasks matching the filter, preserving order.
func (f Filter) Apply(tasks []Task, now time.Time) []Task {
	var out []Task
	for _, t := range tasks {
		if !f.matchStatus(t.Status) {
			continue
		}
		if !f.matchPriority(t.Priority) {
			continue
		}
		if f.WindowDays > 0 && !rangeTouchesWindow(t, now, f.WindowDays) {
			continue
		}
		out = append(out, t.Clone())
	}
	return out
}

func (f Filter) matchStatus(s TaskStatus) bool {
	if len(f.Statuses) == 0 {
		return true
	}
	for _, want := range f.Statuses {
		if s == want {
			return true
		}
	}
	return false
}

func (f Filter) matchPriority(p TaskPriority) bool {
	if len(f.Priorities) == 0 {
		return true
	}
	for _, want := range f.Priorities {
		if p == want {
			return true
		}
	}
	return false
}

func rangeTouchesWindow(t Task, now time.Time, days int) bool {
	windowStart := now.Truncate(24 * time.Hour)
	windowEnd := windowStart.AddDate(0, 0, days)
	if t.EndDate.Before(windowStart) {
		return false
	}
	if t.StartDate.After(windowEnd) {
		return false
	}
	return true
}

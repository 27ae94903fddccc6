package domain

import (
	"errors"
	"fmt"
	"time"
)

// DateLayout is the calendar date format used everywhere: forms, YAML,
// calendar links.
const DateLayout = "2006-01-02"

var (
	// ErrNameRequired indicates a task was submitted without a name.
	ErrNameRequired = errors.New("task name is required")

	// ErrDateOrder indicates a start date after the end date.
	ErrDateOrder = errors.New("start date must not be after end date")

	// ErrSelfDependency indicates a task listing itself as a dependency.
	ErrSelfDependency = errors.New("task may not depend on itself")
)

// Task is a unit of work with a date range, status, priority and optional
// dependencies on other tasks. Dates carry day precision in UTC.
type Task struct {
	ID           string
	Name         string
	Description  string
	Status       TaskStatus
	Priority     TaskPriority
	StartDate    time.Time
	EndDate      time.Time
	Dependencies []string
}

// Validate applies the form-level checks: required name, start <= end,
// no self-dependency. These are creation/edit-time checks only; tasks
// arriving through an assistant rewrite bypass them by design of the
// rewrite repair path.
func (t *Task) Validate() error {
	if t.Name == "" {
		return ErrNameRequired
	}
	if !t.StartDate.IsZero() && !t.EndDate.IsZero() && t.StartDate.After(t.EndDate) {
		return ErrDateOrder
	}
	for _, dep := range t.Dependencies {
		if dep == t.ID {
			return ErrSelfDependency
		}
	}
	if t.Status != "" && !ValidTaskStatuses[t.Status] {
		return fmt.Errorf("invalid status %q", t.Status)
	}
	if t.Priority != "" && !ValidTaskPriorities[t.Priority] {
		return fmt.Errorf("invalid priority %q", t.Priority)
	}
	return nil
}

// DependsOn reports whether the task lists id as a dependency.
func (t *Task) DependsOn(id string) bool {
	for _, dep := range t.Dependencies {
		if dep == id {
			return true
		}
	}
	return false
}

// StripDependency removes id from the task's dependency list, if present.
func (t *Task) StripDependency(id string) {
	kept := t.Dependencies[:0]
	for _, dep := range t.Dependencies {
		if dep != id {
			kept = append(kept, dep)
		}
	}
	t.Dependencies = kept
}

// Clone returns a deep copy of the task.
func (t Task) Clone() Task {
	c := t
	if t.Dependencies != nil {
		c.Dependencies = make([]string, len(t.Dependencies))
		copy(c.Dependencies, t.Dependencies)
	}
	return c
}

// CloneTasks returns a deep copy of a task slice. Views receive copies so
// the store remains the single writer.
func CloneTasks(tasks []Task) []Task {
	out := make([]Task, len(tasks))
	for i, t := range tasks {
		out[i] = t.Clone()
	}
	return out
}

// TaskName resolves id to a task name within tasks, or "Unknown Task"
// when the id dangles.
func TaskName(tasks []Task, id string) string {
	for i := range tasks {
		if tasks[i].ID == id {
			return tasks[i].Name
		}
	}
	return "Unknown Task"
}

// ParseDate parses a YYYY-MM-DD calendar date in UTC.
func ParseDate(s string) (time.Time, error) {
	return time.Parse(DateLayout, s)
}

// FormatDate renders a calendar date as YYYY-MM-DD.
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

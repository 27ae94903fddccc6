package domain

import "sort"

// SortKey selects the field used to order the task list.
type SortKey string

const (
	SortByStartDate SortKey = "start"
	SortByEndDate   SortKey = "end"
	SortByPriority  SortKey = "priority"
	SortByStatus    SortKey = "status"
)

// ValidSortKeys is the canonical set of accepted sort key strings.
var ValidSortKeys = map[SortKey]bool{
	SortByStartDate: true,
	SortByEndDate:   true,
	SortByPriority:  true,
	SortByStatus:    true,
}

// SortTasks returns a sorted copy of tasks. The sort is stable: tied
// elements keep their original array order, so ascending followed by
// descending reverses any non-tied dataset exactly.
func SortTasks(tasks []Task, key SortKey, desc bool) []Task {
	sorted := CloneTasks(tasks)
	less := lessFunc(key)
	sort.SliceStable(sorted, func(i, j int) bool {
		if desc {
			return less(sorted[j], sorted[i])
		}
		return less(sorted[i], sorted[j])
	})
	return sorted
}

func lessFunc(key SortKey) func(a, b Task) bool {
	switch key {
	case SortByEndDate:
		return func(a, b Task) bool { return a.EndDate.Before(b.EndDate) }
	case SortByPriority:
		return func(a, b Task) bool { return a.Priority.Rank() < b.Priority.Rank() }
	case SortByStatus:
		return func(a, b Task) bool { return a.Status.Rank() < b.Status.Rank() }
	default:
		return func(a, b Task) bool { return a.StartDate.Before(b.StartDate) }
	}
}

package yamldoc

import (
	"fmt"
	"time"

	"github.com/avolkenstein/planweave/internal/domain"
)

// ValidateDocument checks the document for structural errors before
// conversion. Returns a slice of all errors found.
//
// A reversed date range (end before start) is deliberately NOT an error:
// the chart renders it as a zero-width bar and the edit form is the only
// place that enforces date order. Dangling dependency ids are likewise
// accepted; they render as "Unknown Task".
func ValidateDocument(doc *Document) []error {
	var errs []error

	seen := make(map[string]bool)
	for i, rec := range doc.Tasks {
		prefix := fmt.Sprintf("tasks[%d]", i)

		if rec.Name == "" {
			errs = append(errs, fmt.Errorf("%s.name is required", prefix))
		}
		if rec.ID != "" {
			if seen[rec.ID] {
				errs = append(errs, fmt.Errorf("%s.id: duplicate id %q", prefix, rec.ID))
			}
			seen[rec.ID] = true
		}

		if rec.Status != "" && !domain.ValidTaskStatuses[domain.TaskStatus(rec.Status)] {
			errs = append(errs, fmt.Errorf("%s.status: invalid value %q", prefix, rec.Status))
		}
		if rec.Priority != "" && !domain.ValidTaskPriorities[domain.TaskPriority(rec.Priority)] {
			errs = append(errs, fmt.Errorf("%s.priority: invalid value %q", prefix, rec.Priority))
		}

		errs = append(errs, validateDate(prefix+".start_date", rec.StartDate)...)
		errs = append(errs, validateDate(prefix+".end_date", rec.EndDate)...)
	}

	return errs
}

func validateDate(field, s string) []error {
	if s == "" {
		return []error{fmt.Errorf("%s is required", field)}
	}
	if _, err := time.Parse(domain.DateLayout, s); err != nil {
		return []error{fmt.Errorf("%s: invalid date format %q (expected YYYY-MM-DD)", field, s)}
	}
	return nil
}

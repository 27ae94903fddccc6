package formatter

import (
	"fmt"
	"strings"

	"github.com/avolkenstein/planweave/internal/calendar"
	"github.com/avolkenstein/planweave/internal/domain"
	"github.com/avolkenstein/planweave/internal/history"
)

// FormatTaskTable renders tasks as an aligned table for list output.
func FormatTaskTable(tasks []domain.Task) string {
	if len(tasks) == 0 {
		return Dim("No tasks.") + "\n"
	}

	headers := []string{"ID", "Task", "Status", "Priority", "Dates", "After"}
	rows := make([][]string, 0, len(tasks))
	for _, t := range tasks {
		rows = append(rows, []string{
			TruncID(t.ID),
			t.Name,
			StatusPill(t.Status),
			PriorityPill(t.Priority),
			DateRange(t.StartDate, t.EndDate),
			Dim(DependencyNames(tasks, t)),
		})
	}
	return RenderTable(headers, rows)
}

// FormatTaskDetail renders one task with all fields for detail output.
func FormatTaskDetail(tasks []domain.Task, t domain.Task) string {
	var b strings.Builder
	b.WriteString(Bold(t.Name) + "\n")
	if t.Description != "" {
		b.WriteString(t.Description + "\n")
	}
	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("%s  %s\n", StatusPill(t.Status), PriorityPill(t.Priority)))
	b.WriteString(Dim("Dates: ") + DateRange(t.StartDate, t.EndDate) + "\n")
	if deps := DependencyNames(tasks, t); deps != "" {
		b.WriteString(Dim("After: ") + deps + "\n")
	}
	b.WriteString(Dim("ID: "+t.ID) + "\n")
	return b.String()
}

// FormatRevisionTable renders the revision history, newest first.
func FormatRevisionTable(revs []history.Revision) string {
	if len(revs) == 0 {
		return Dim("No history yet.") + "\n"
	}

	headers := []string{"ID", "When", "Change"}
	rows := make([][]string, 0, len(revs))
	for _, r := range revs {
		rows = append(rows, []string{
			TruncID(r.ID),
			HumanTimestamp(r.CreatedAt),
			r.Reason,
		})
	}
	return RenderTable(headers, rows)
}

// FormatExportPlan renders a calendar export plan as one link per line.
func FormatExportPlan(plan calendar.Plan) string {
	var b strings.Builder
	for _, l := range plan.Links {
		b.WriteString(Bold(l.Name) + "\n  " + Dim(l.URL) + "\n")
	}
	return b.String()
}

// FormatRewritePreview renders a proposed task rewrite: the would-be
// task list plus any repairs made while parsing the model's output.
func FormatRewritePreview(tasks []domain.Task, warnings []string) string {
	var b strings.Builder
	b.WriteString(Header("Proposed plan") + "\n")
	b.WriteString(FormatTaskTable(tasks))
	for _, w := range warnings {
		b.WriteString(StyleYellow.Render("! ") + w + "\n")
	}
	return b.String()
}

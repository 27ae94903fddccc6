package calendar

import (
	"fmt"
	"strings"
	"time"

	"github.com/avolkenstein/planweave/internal/domain"
)

// BuildICS renders the tasks as an iCalendar document with one all-day
// VEVENT per task, for calendar apps that import files rather than
// follow template links. DTEND is exclusive, so it is the day after the
// task's end date.
func BuildICS(tasks []domain.Task, now time.Time) string {
	lines := []string{
		"BEGIN:VCALENDAR",
		"VERSION:2.0",
		"PRODID:-//Planweave//Task Export//EN",
		"CALSCALE:GREGORIAN",
		"METHOD:PUBLISH",
	}

	stamp := now.UTC().Format("20060102T150405Z")
	for _, t := range tasks {
		uid := fmt.Sprintf("task-%s@planweave", t.ID)
		lines = append(lines,
			"BEGIN:VEVENT",
			"UID:"+escapeICSText(uid),
			"DTSTAMP:"+stamp,
			"SUMMARY:"+escapeICSText(t.Name),
			"DTSTART;VALUE=DATE:"+t.StartDate.Format(compactDate),
			"DTEND;VALUE=DATE:"+t.EndDate.AddDate(0, 0, 1).Format(compactDate),
		)
		if t.Description != "" {
			lines = append(lines, "DESCRIPTION:"+escapeICSText(t.Description))
		}
		lines = append(lines, "END:VEVENT")
	}

	lines = append(lines, "END:VCALENDAR", "")
	return strings.Join(lines, "\r\n")
}

func escapeICSText(s string) string {
	repl := strings.NewReplacer(
		"\\", "\\\\",
		";", "\\;",
		",", "\\,",
		"\r\n", "\\n",
		"\n", "\\n",
		"\r", "\\n",
	)
	return repl.Replace(s)
}

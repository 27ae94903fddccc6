// Package calendar builds event deep links and iCalendar exports for
// tasks. There is no local scheduling logic: a link is a pure function
// of the task.
package calendar

import (
	"net/url"

	"github.com/avolkenstein/planweave/internal/domain"
)

const (
	templateURL = "https://calendar.google.com/calendar/render"

	// All exported events carry one fixed timezone identifier.
	timeZone = "UTC"

	// Working hours used for the timed range of a same-day task.
	dayStartHour = "T090000"
	dayEndHour   = "T170000"

	compactDate = "20060102"
)

// EventLink builds the event-creation template URL for one task.
// A same-day task produces a timed range within working hours; a
// multi-day task produces an all-day range with the end date incremented
// by one day, per the calendar service's exclusive-end convention.
func EventLink(t domain.Task) string {
	var dates string
	if domain.FormatDate(t.StartDate) == domain.FormatDate(t.EndDate) {
		day := t.StartDate.Format(compactDate)
		dates = day + dayStartHour + "/" + day + dayEndHour
	} else {
		end := t.EndDate.AddDate(0, 0, 1)
		dates = t.StartDate.Format(compactDate) + "/" + end.Format(compactDate)
	}

	q := url.Values{}
	q.Set("action", "TEMPLATE")
	q.Set("text", t.Name)
	if t.Description != "" {
		q.Set("details", t.Description)
	}
	q.Set("dates", dates)
	q.Set("ctz", timeZone)

	return templateURL + "?" + q.Encode()
}

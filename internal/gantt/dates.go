package gantt

import "time"

// Date helpers for axis snapping and drag rescheduling. All inputs are
// day-precision UTC dates.

// startOfWeek returns the preceding Monday (or t itself on a Monday).
func startOfWeek(t time.Time) time.Time {
	wd := int(t.Weekday())
	// time.Weekday has Sunday == 0; shift so Monday == 0.
	offset := (wd + 6) % 7
	return t.AddDate(0, 0, -offset)
}

// endOfWeek returns the following Sunday (or t itself on a Sunday).
func endOfWeek(t time.Time) time.Time {
	return startOfWeek(t).AddDate(0, 0, 6)
}

// startOfMonth returns the first day of t's month.
func startOfMonth(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
}

// endOfMonth returns the last day of t's month.
func endOfMonth(t time.Time) time.Time {
	return startOfMonth(t).AddDate(0, 1, -1)
}

// daysBetween returns the signed number of calendar days from a to b.
func daysBetween(a, b time.Time) int {
	return int(b.Truncate(24*time.Hour).Sub(a.Truncate(24*time.Hour)) / (24 * time.Hour))
}

// monthsBetween returns the signed number of calendar months from a to b,
// ignoring the day of month.
func monthsBetween(a, b time.Time) int {
	return (b.Year()-a.Year())*12 + int(b.Month()) - int(a.Month())
}

// ShiftRange moves a date range by the given number of axis units while
// preserving its duration: calendar days at day granularity, 7-day steps
// at week granularity, calendar months at month granularity.
func ShiftRange(g Granularity, start, end time.Time, units int) (time.Time, time.Time) {
	switch g {
	case GranularityWeek:
		return start.AddDate(0, 0, 7*units), end.AddDate(0, 0, 7*units)
	case GranularityMonth:
		return start.AddDate(0, units, 0), end.AddDate(0, units, 0)
	default:
		return start.AddDate(0, 0, units), end.AddDate(0, 0, units)
	}
}

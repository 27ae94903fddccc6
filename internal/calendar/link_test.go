package calendar

import (
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/avolkenstein/planweave/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestEventLink_SameDayIsTimedRange(t *testing.T) {
	task := domain.Task{
		ID:        "a",
		Name:      "Standup prep",
		StartDate: date(2024, 3, 5),
		EndDate:   date(2024, 3, 5),
	}
	link := EventLink(task)

	u, err := url.Parse(link)
	require.NoError(t, err)
	q := u.Query()

	assert.Equal(t, "TEMPLATE", q.Get("action"))
	assert.Equal(t, "Standup prep", q.Get("text"))
	assert.Equal(t, "20240305T090000/20240305T170000", q.Get("dates"))
	assert.Contains(t, q.Get("dates"), "T", "same-day exports are timed")
	assert.Equal(t, "UTC", q.Get("ctz"))
}

func TestEventLink_MultiDayIsAllDayExclusiveEnd(t *testing.T) {
	task := domain.Task{
		ID:          "b",
		Name:        "Sprint 12",
		Description: "Two week sprint",
		StartDate:   date(2024, 3, 4),
		EndDate:     date(2024, 3, 15),
	}
	u, err := url.Parse(EventLink(task))
	require.NoError(t, err)
	q := u.Query()

	assert.Equal(t, "20240304/20240316", q.Get("dates"), "end date incremented by one day")
	assert.NotContains(t, q.Get("dates"), "T")
	assert.Equal(t, "Two week sprint", q.Get("details"))
}

func TestEventLink_MonthRollover(t *testing.T) {
	task := domain.Task{
		Name:      "Quarter close",
		StartDate: date(2024, 1, 30),
		EndDate:   date(2024, 1, 31),
	}
	u, err := url.Parse(EventLink(task))
	require.NoError(t, err)
	assert.Equal(t, "20240130/20240201", u.Query().Get("dates"))
}

func TestBuildPlan_ConfirmThreshold(t *testing.T) {
	var tasks []domain.Task
	for i := 0; i < 10; i++ {
		tasks = append(tasks, domain.Task{ID: string(rune('a' + i)), Name: "T", StartDate: date(2024, 1, 1), EndDate: date(2024, 1, 1)})
	}
	plan := BuildPlan(tasks)
	assert.Len(t, plan.Links, 10)
	assert.False(t, plan.NeedsConfirm, "ten tasks is at the threshold, not above it")
	assert.Greater(t, plan.OpenDelay, time.Duration(0))

	tasks = append(tasks, domain.Task{ID: "k", Name: "T", StartDate: date(2024, 1, 1), EndDate: date(2024, 1, 1)})
	assert.True(t, BuildPlan(tasks).NeedsConfirm)
}

func TestBuildICS(t *testing.T) {
	tasks := []domain.Task{
		{ID: "a", Name: "Demo; day", Description: "line1\nline2", StartDate: date(2024, 3, 5), EndDate: date(2024, 3, 6)},
	}
	ics := BuildICS(tasks, time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC))

	assert.True(t, strings.HasPrefix(ics, "BEGIN:VCALENDAR\r\n"))
	assert.Contains(t, ics, "UID:task-a@planweave")
	assert.Contains(t, ics, "SUMMARY:Demo\\; day")
	assert.Contains(t, ics, "DESCRIPTION:line1\\nline2")
	assert.Contains(t, ics, "DTSTART;VALUE=DATE:20240305")
	assert.Contains(t, ics, "DTEND;VALUE=DATE:20240307", "exclusive end")
	assert.Contains(t, ics, "DTSTAMP:20240301T120000Z")
	assert.True(t, strings.HasSuffix(ics, "END:VCALENDAR\r\n"))
}

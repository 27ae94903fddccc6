package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestValidate_NameRequired(t *testing.T) {
	task := Task{Status: StatusNotStarted, Priority: PriorityMedium}
	err := task.Validate()
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNameRequired)
}

func TestValidate_DateOrder(t *testing.T) {
	task := Task{
		Name:      "Write report",
		StartDate: date(2024, 3, 10),
		EndDate:   date(2024, 3, 5),
	}
	assert.ErrorIs(t, task.Validate(), ErrDateOrder)

	task.EndDate = date(2024, 3, 10)
	assert.NoError(t, task.Validate(), "same-day range is valid")
}

func TestValidate_SelfDependency(t *testing.T) {
	task := Task{
		ID:           "t1",
		Name:         "Review",
		Dependencies: []string{"t2", "t1"},
	}
	assert.ErrorIs(t, task.Validate(), ErrSelfDependency)
}

func TestValidate_InvalidEnums(t *testing.T) {
	task := Task{Name: "x", Status: "paused"}
	require.Error(t, task.Validate())

	task = Task{Name: "x", Priority: "urgent"}
	require.Error(t, task.Validate())
}

func TestStripDependency(t *testing.T) {
	task := Task{ID: "b", Dependencies: []string{"a", "c", "a"}}
	task.StripDependency("a")
	assert.Equal(t, []string{"c"}, task.Dependencies)

	task.StripDependency("missing")
	assert.Equal(t, []string{"c"}, task.Dependencies)
}

func TestClone_Independent(t *testing.T) {
	orig := Task{ID: "a", Dependencies: []string{"b"}}
	c := orig.Clone()
	c.Dependencies[0] = "z"
	assert.Equal(t, []string{"b"}, orig.Dependencies)
}

func TestTaskName_Dangling(t *testing.T) {
	tasks := []Task{{ID: "a", Name: "Alpha"}}
	assert.Equal(t, "Alpha", TaskName(tasks, "a"))
	assert.Equal(t, "Unknown Task", TaskName(tasks, "ghost"))
}

package store

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/avolkenstein/planweave/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s := New(filepath.Join(t.TempDir(), "tasks.yaml"))
	require.NoError(t, s.Load())
	return s
}

func mustAdd(t *testing.T, s *Store, task domain.Task) domain.Task {
	t.Helper()
	added, err := s.Add(task)
	require.NoError(t, err)
	return added
}

func TestAdd_MintsIDAndDefaults(t *testing.T) {
	s := newTestStore(t)
	added := mustAdd(t, s, domain.Task{
		Name:      "Plan sprint",
		StartDate: date(2024, 1, 1),
		EndDate:   date(2024, 1, 2),
	})
	assert.NotEmpty(t, added.ID)
	assert.Equal(t, domain.StatusNotStarted, added.Status)
	assert.Equal(t, domain.PriorityMedium, added.Priority)
}

func TestAdd_RejectsInvalid(t *testing.T) {
	s := newTestStore(t)
	_, err := s.Add(domain.Task{StartDate: date(2024, 1, 2), EndDate: date(2024, 1, 1)})
	require.Error(t, err)
	assert.Equal(t, 0, s.Len(), "no state change on validation failure")
}

func TestDelete_StripsDependencies(t *testing.T) {
	s := newTestStore(t)
	a := mustAdd(t, s, domain.Task{Name: "A", StartDate: date(2024, 1, 1), EndDate: date(2024, 1, 2)})
	b := mustAdd(t, s, domain.Task{Name: "B", StartDate: date(2024, 1, 3), EndDate: date(2024, 1, 4), Dependencies: []string{a.ID}})

	require.NoError(t, s.Delete(a.ID))

	snap := s.Snapshot()
	require.Len(t, snap, 1)
	assert.Equal(t, b.ID, snap[0].ID)
	assert.Empty(t, snap[0].Dependencies, "deleting A leaves B with no dangling reference")
}

func TestBulkOps(t *testing.T) {
	s := newTestStore(t)
	a := mustAdd(t, s, domain.Task{Name: "A", StartDate: date(2024, 1, 1), EndDate: date(2024, 1, 2)})
	b := mustAdd(t, s, domain.Task{Name: "B", StartDate: date(2024, 1, 3), EndDate: date(2024, 1, 4)})
	c := mustAdd(t, s, domain.Task{Name: "C", StartDate: date(2024, 1, 5), EndDate: date(2024, 1, 6)})

	require.NoError(t, s.BulkSetStatus([]string{a.ID, c.ID, "ghost"}, domain.StatusCompleted))
	snap := s.Snapshot()
	assert.Equal(t, domain.StatusCompleted, snap[0].Status)
	assert.Equal(t, domain.StatusNotStarted, snap[1].Status)
	assert.Equal(t, domain.StatusCompleted, snap[2].Status)

	require.NoError(t, s.BulkDelete([]string{a.ID, b.ID}))
	snap = s.Snapshot()
	require.Len(t, snap, 1)
	assert.Equal(t, c.ID, snap[0].ID)
}

func TestReorder(t *testing.T) {
	s := newTestStore(t)
	a := mustAdd(t, s, domain.Task{Name: "A", StartDate: date(2024, 1, 1), EndDate: date(2024, 1, 1)})
	mustAdd(t, s, domain.Task{Name: "B", StartDate: date(2024, 1, 1), EndDate: date(2024, 1, 1)})
	mustAdd(t, s, domain.Task{Name: "C", StartDate: date(2024, 1, 1), EndDate: date(2024, 1, 1)})

	require.NoError(t, s.Reorder(a.ID, 2))
	snap := s.Snapshot()
	assert.Equal(t, []string{"B", "C", "A"}, []string{snap[0].Name, snap[1].Name, snap[2].Name})

	// Out-of-range targets clamp instead of failing.
	require.NoError(t, s.Reorder(a.ID, -5))
	snap = s.Snapshot()
	assert.Equal(t, "A", snap[0].Name)
}

func TestReschedule(t *testing.T) {
	s := newTestStore(t)
	a := mustAdd(t, s, domain.Task{Name: "A", StartDate: date(2024, 1, 1), EndDate: date(2024, 1, 5)})

	require.NoError(t, s.Reschedule([]TaskDates{
		{ID: a.ID, Start: date(2024, 1, 8), End: date(2024, 1, 12)},
	}))
	got, ok := s.Get(a.ID)
	require.True(t, ok)
	assert.Equal(t, date(2024, 1, 8), got.StartDate)
	assert.Equal(t, date(2024, 1, 12), got.EndDate)
}

func TestPersistence_RoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "tasks.yaml")

	s := New(path)
	require.NoError(t, s.Load())
	a := mustAdd(t, s, domain.Task{Name: "Survives restart", StartDate: date(2024, 1, 1), EndDate: date(2024, 1, 2)})

	reloaded := New(path)
	require.NoError(t, reloaded.Load())
	snap := reloaded.Snapshot()
	require.Len(t, snap, 1)
	assert.Equal(t, a.ID, snap[0].ID)
	assert.Equal(t, "Survives restart", snap[0].Name)
}

func TestLoad_MalformedKeepsRawText(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "tasks.yaml")
	require.NoError(t, os.WriteFile(path, []byte("tasks: [unclosed"), 0o644))

	s := New(path)
	err := s.Load()
	require.Error(t, err)
	assert.Equal(t, 0, s.Len(), "collection stays empty")
	assert.Equal(t, "tasks: [unclosed", s.RawDocument(), "offending text retained for manual correction")
}

func TestOnChange_FiresPerMutation(t *testing.T) {
	s := newTestStore(t)

	var reasons []string
	s.OnChange(func(reason, yamlText string) {
		reasons = append(reasons, reason)
		assert.NotEmpty(t, yamlText)
	})

	a := mustAdd(t, s, domain.Task{Name: "A", StartDate: date(2024, 1, 1), EndDate: date(2024, 1, 2)})
	require.NoError(t, s.Delete(a.ID))
	require.NoError(t, s.ReplaceAll(nil, "rewrite"))

	assert.Equal(t, []string{"add", "delete", "rewrite"}, reasons)
}

func TestSnapshot_IsACopy(t *testing.T) {
	s := newTestStore(t)
	mustAdd(t, s, domain.Task{Name: "A", StartDate: date(2024, 1, 1), EndDate: date(2024, 1, 2), Dependencies: []string{"x"}})

	snap := s.Snapshot()
	snap[0].Name = "mutated"
	snap[0].Dependencies[0] = "mutated"

	fresh := s.Snapshot()
	assert.Equal(t, "A", fresh[0].Name)
	assert.Equal(t, "x", fresh[0].Dependencies[0])
}

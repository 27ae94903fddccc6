// Package store owns the task collection. It is the single writer: views
// receive snapshots and send intended changes back through store methods.
// Every mutation re-serializes the collection to YAML, writes it to the
// backing file, and notifies registered on-change hooks.
package store

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/avolkenstein/planweave/internal/domain"
	"github.com/avolkenstein/planweave/internal/yamldoc"
	"github.com/google/uuid"
)

var (
	// ErrTaskNotFound indicates an operation referenced an unknown task id.
	ErrTaskNotFound = errors.New("task not found")
)

// ChangeFunc observes a successful mutation. reason is a short verb
// ("add", "delete", "rewrite", ...) and yamlText the full serialized
// document after the change.
type ChangeFunc func(reason, yamlText string)

// TaskDates carries a drag-commit reschedule for one task.
type TaskDates struct {
	ID    string
	Start time.Time
	End   time.Time
}

// Store holds the ordered task collection and its YAML file.
type Store struct {
	mu       sync.Mutex
	path     string
	tasks    []domain.Task
	raw      string // raw document text; kept even when it failed to parse
	onChange []ChangeFunc
}

// New creates a store backed by the YAML document at path. Call Load
// before use.
func New(path string) *Store {
	return &Store{path: path}
}

// OnChange registers a hook invoked after every persisted mutation.
func (s *Store) OnChange(fn ChangeFunc) {
	s.onChange = append(s.onChange, fn)
}

// Load reads the backing document. A missing file yields an empty
// collection. A malformed document leaves the collection empty, retains
// the raw text for manual correction, and returns the parse error; the
// caller surfaces it and carries on.
func (s *Store) Load() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			s.tasks = nil
			return nil
		}
		return fmt.Errorf("reading task document: %w", err)
	}

	s.raw = string(data)
	tasks, _, err := yamldoc.Parse(s.raw)
	if err != nil {
		s.tasks = nil
		return fmt.Errorf("loading %s: %w", s.path, err)
	}
	s.tasks = tasks
	return nil
}

// RawDocument returns the most recent document text, valid or not.
func (s *Store) RawDocument() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.raw
}

// Snapshot returns a read-only copy of the collection in display order.
func (s *Store) Snapshot() []domain.Task {
	s.mu.Lock()
	defer s.mu.Unlock()
	return domain.CloneTasks(s.tasks)
}

// Len returns the number of tasks.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.tasks)
}

// Get returns a copy of the task with the given id.
func (s *Store) Get(id string) (domain.Task, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.tasks {
		if s.tasks[i].ID == id {
			return s.tasks[i].Clone(), true
		}
	}
	return domain.Task{}, false
}

// Add validates and appends a task, minting an id if absent.
func (s *Store) Add(t domain.Task) (domain.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if t.ID == "" {
		t.ID = uuid.New().String()
	}
	if t.Status == "" {
		t.Status = domain.StatusNotStarted
	}
	if t.Priority == "" {
		t.Priority = domain.PriorityMedium
	}
	if err := t.Validate(); err != nil {
		return domain.Task{}, err
	}

	s.tasks = append(s.tasks, t.Clone())
	if err := s.persistLocked("add"); err != nil {
		return domain.Task{}, err
	}
	return t, nil
}

// Update validates and replaces an existing task in place.
func (s *Store) Update(t domain.Task) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := t.Validate(); err != nil {
		return err
	}
	for i := range s.tasks {
		if s.tasks[i].ID == t.ID {
			s.tasks[i] = t.Clone()
			return s.persistLocked("update")
		}
	}
	return fmt.Errorf("%w: %s", ErrTaskNotFound, t.ID)
}

// Delete removes a task and strips its id from every other task's
// dependency list.
func (s *Store) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.removeLocked(id) {
		return fmt.Errorf("%w: %s", ErrTaskNotFound, id)
	}
	return s.persistLocked("delete")
}

// BulkDelete removes every listed task. Unknown ids are skipped; the
// operation persists once.
func (s *Store) BulkDelete(ids []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	removed := false
	for _, id := range ids {
		if s.removeLocked(id) {
			removed = true
		}
	}
	if !removed {
		return nil
	}
	return s.persistLocked("bulk-delete")
}

// BulkSetStatus sets the status on every listed task.
func (s *Store) BulkSetStatus(ids []string, status domain.TaskStatus) error {
	if !domain.ValidTaskStatuses[status] {
		return fmt.Errorf("invalid status %q", status)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	changed := false
	want := make(map[string]bool, len(ids))
	for _, id := range ids {
		want[id] = true
	}
	for i := range s.tasks {
		if want[s.tasks[i].ID] && s.tasks[i].Status != status {
			s.tasks[i].Status = status
			changed = true
		}
	}
	if !changed {
		return nil
	}
	return s.persistLocked("bulk-status")
}

// Reorder moves a task to a new index in display order. No task data
// changes; the array sequence is the only persisted order.
func (s *Store) Reorder(id string, toIndex int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	from := -1
	for i := range s.tasks {
		if s.tasks[i].ID == id {
			from = i
			break
		}
	}
	if from == -1 {
		return fmt.Errorf("%w: %s", ErrTaskNotFound, id)
	}

	if toIndex < 0 {
		toIndex = 0
	}
	if toIndex >= len(s.tasks) {
		toIndex = len(s.tasks) - 1
	}
	if toIndex == from {
		return nil
	}

	t := s.tasks[from]
	s.tasks = append(s.tasks[:from], s.tasks[from+1:]...)
	rest := append([]domain.Task{}, s.tasks[toIndex:]...)
	s.tasks = append(append(s.tasks[:toIndex], t), rest...)
	return s.persistLocked("reorder")
}

// Reschedule applies drag-commit date changes to the listed tasks.
// Only dates change; duration-preservation is the caller's concern.
func (s *Store) Reschedule(changes []TaskDates) error {
	if len(changes) == 0 {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	byID := make(map[string]TaskDates, len(changes))
	for _, c := range changes {
		byID[c.ID] = c
	}
	changed := false
	for i := range s.tasks {
		if c, ok := byID[s.tasks[i].ID]; ok {
			s.tasks[i].StartDate = c.Start
			s.tasks[i].EndDate = c.End
			changed = true
		}
	}
	if !changed {
		return nil
	}
	return s.persistLocked("reschedule")
}

// ReplaceAll swaps in a whole new collection, as produced by an
// assistant rewrite. The tasks are assumed already repaired by the
// document parser; no form-level validation is applied.
func (s *Store) ReplaceAll(tasks []domain.Task, reason string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.tasks = domain.CloneTasks(tasks)
	return s.persistLocked(reason)
}

func (s *Store) removeLocked(id string) bool {
	idx := -1
	for i := range s.tasks {
		if s.tasks[i].ID == id {
			idx = i
			break
		}
	}
	if idx == -1 {
		return false
	}
	s.tasks = append(s.tasks[:idx], s.tasks[idx+1:]...)
	for i := range s.tasks {
		s.tasks[i].StripDependency(id)
	}
	return true
}

func (s *Store) persistLocked(reason string) error {
	text, err := yamldoc.Marshal(s.tasks)
	if err != nil {
		return err
	}

	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating data directory: %w", err)
		}
	}
	if err := os.WriteFile(s.path, []byte(text), 0o644); err != nil {
		return fmt.Errorf("writing task document: %w", err)
	}

	s.raw = text
	for _, fn := range s.onChange {
		fn(reason, text)
	}
	return nil
}

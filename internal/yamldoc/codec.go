package yamldoc

import (
	"errors"
	"fmt"
	"strings"

	"github.com/avolkenstein/planweave/internal/domain"
	"github.com/google/uuid"
	"gopkg.in/yaml.v3"
)

// Parse converts YAML text (optionally wrapped in code fences) into a
// task collection. Structural errors abort with ErrInvalidDocument;
// repairable irregularities (a blank id, a self-dependency) are fixed
// and reported as warnings so an assistant rewrite can never smuggle
// them into the store.
func Parse(text string) ([]domain.Task, []string, error) {
	doc, err := DecodeDocument(StripFences(text))
	if err != nil {
		return nil, nil, err
	}

	if errs := ValidateDocument(doc); len(errs) > 0 {
		return nil, nil, fmt.Errorf("%w: %v", ErrInvalidDocument, errors.Join(errs...))
	}

	return toTasks(doc)
}

func toTasks(doc *Document) ([]domain.Task, []string, error) {
	var warnings []string
	tasks := make([]domain.Task, 0, len(doc.Tasks))

	for _, rec := range doc.Tasks {
		id := rec.ID
		if id == "" {
			id = uuid.New().String()
			warnings = append(warnings, fmt.Sprintf("minted id for task %q", rec.Name))
		}

		start, err := domain.ParseDate(rec.StartDate)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: %v", ErrInvalidDocument, err)
		}
		end, err := domain.ParseDate(rec.EndDate)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: %v", ErrInvalidDocument, err)
		}

		var deps []string
		for _, dep := range rec.Dependencies {
			if dep == id {
				warnings = append(warnings, fmt.Sprintf("dropped self-dependency on task %q", rec.Name))
				continue
			}
			deps = append(deps, dep)
		}

		status := domain.TaskStatus(rec.Status)
		if rec.Status == "" {
			status = domain.StatusNotStarted
		}
		priority := domain.TaskPriority(rec.Priority)
		if rec.Priority == "" {
			priority = domain.PriorityMedium
		}

		tasks = append(tasks, domain.Task{
			ID:           id,
			Name:         rec.Name,
			Description:  rec.Description,
			Status:       status,
			Priority:     priority,
			StartDate:    start,
			EndDate:      end,
			Dependencies: deps,
		})
	}

	return tasks, warnings, nil
}

// Marshal renders the task collection as a YAML document. Marshal and
// Parse round-trip: parsing the output yields an equal collection.
func Marshal(tasks []domain.Task) (string, error) {
	doc := Document{Tasks: make([]TaskRecord, 0, len(tasks))}
	for _, t := range tasks {
		doc.Tasks = append(doc.Tasks, TaskRecord{
			ID:           t.ID,
			Name:         t.Name,
			Description:  t.Description,
			Status:       string(t.Status),
			Priority:     string(t.Priority),
			StartDate:    domain.FormatDate(t.StartDate),
			EndDate:      domain.FormatDate(t.EndDate),
			Dependencies: t.Dependencies,
		})
	}

	var b strings.Builder
	enc := yaml.NewEncoder(&b)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return "", fmt.Errorf("encoding task document: %w", err)
	}
	if err := enc.Close(); err != nil {
		return "", fmt.Errorf("encoding task document: %w", err)
	}
	return b.String(), nil
}

package cli

import (
	"fmt"
	"strings"

	"github.com/avolkenstein/planweave/internal/domain"
)

// resolveTask finds the task a command argument refers to. Matching is
// tried in order: exact id, id prefix, exact name (case-insensitive),
// then unique name substring.
func resolveTask(app *App, ref string) (domain.Task, error) {
	tasks := app.Store.Snapshot()

	for _, t := range tasks {
		if t.ID == ref {
			return t, nil
		}
	}

	var matches []domain.Task
	for _, t := range tasks {
		if strings.HasPrefix(t.ID, ref) {
			matches = append(matches, t)
		}
	}
	if len(matches) == 1 {
		return matches[0], nil
	}
	if len(matches) > 1 {
		return domain.Task{}, fmt.Errorf("id prefix %q is ambiguous (%d matches)", ref, len(matches))
	}

	lower := strings.ToLower(ref)
	for _, t := range tasks {
		if strings.ToLower(t.Name) == lower {
			return t, nil
		}
	}

	matches = matches[:0]
	for _, t := range tasks {
		if strings.Contains(strings.ToLower(t.Name), lower) {
			matches = append(matches, t)
		}
	}
	if len(matches) == 1 {
		return matches[0], nil
	}
	if len(matches) > 1 {
		names := make([]string, 0, len(matches))
		for _, m := range matches {
			names = append(names, m.Name)
		}
		return domain.Task{}, fmt.Errorf("%q matches several tasks: %s", ref, strings.Join(names, ", "))
	}

	return domain.Task{}, fmt.Errorf("no task matches %q", ref)
}

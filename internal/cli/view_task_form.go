package cli

import (
	"fmt"

	"github.com/avolkenstein/planweave/internal/cli/formatter"
	"github.com/avolkenstein/planweave/internal/domain"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
)

func formErrorOutput(err error) tea.Msg {
	return cmdOutputMsg{output: errorLine(err)}
}

func formSuccessOutput(msg string) tea.Msg {
	return cmdOutputMsg{output: msg}
}

// taskFields holds form-bound values for the add/edit task wizard.
type taskFields struct {
	name     string
	desc     string
	status   string
	priority string
	start    string
	end      string
	deps     []string
}

func fieldsFromTask(t domain.Task) *taskFields {
	return &taskFields{
		name:     t.Name,
		desc:     t.Description,
		status:   string(t.Status),
		priority: string(t.Priority),
		start:    domain.FormatDate(t.StartDate),
		end:      domain.FormatDate(t.EndDate),
		deps:     append([]string(nil), t.Dependencies...),
	}
}

// apply copies form values onto the task. The date fields have already
// passed per-field validation; range and dependency checks happen in
// Task.Validate on save.
func (f *taskFields) apply(t *domain.Task) error {
	start, err := domain.ParseDate(f.start)
	if err != nil {
		return err
	}
	end, err := domain.ParseDate(f.end)
	if err != nil {
		return err
	}
	t.Name = f.name
	t.Description = f.desc
	t.Status = domain.TaskStatus(f.status)
	t.Priority = domain.TaskPriority(f.priority)
	t.StartDate = start
	t.EndDate = end
	t.Dependencies = f.deps
	return nil
}

// taskForm builds the two-page wizard form shared by add and edit.
// excludeID keeps a task out of its own dependency options.
func taskForm(state *SharedState, f *taskFields, excludeID string) *huh.Form {
	statusOptions := []huh.Option[string]{
		huh.NewOption(domain.StatusNotStarted.Label(), string(domain.StatusNotStarted)),
		huh.NewOption(domain.StatusInProgress.Label(), string(domain.StatusInProgress)),
		huh.NewOption(domain.StatusCompleted.Label(), string(domain.StatusCompleted)),
	}
	priorityOptions := []huh.Option[string]{
		huh.NewOption(domain.PriorityHigh.Label(), string(domain.PriorityHigh)),
		huh.NewOption(domain.PriorityMedium.Label(), string(domain.PriorityMedium)),
		huh.NewOption(domain.PriorityLow.Label(), string(domain.PriorityLow)),
	}

	var depOptions []huh.Option[string]
	for _, t := range state.App.Store.Snapshot() {
		if t.ID == excludeID {
			continue
		}
		depOptions = append(depOptions, huh.NewOption(t.Name, t.ID))
	}

	groups := []*huh.Group{
		huh.NewGroup(
			huh.NewInput().
				Title("Name").
				Placeholder("Task name").
				Value(&f.name).
				Validate(validateRequired),
			huh.NewInput().
				Title("Description").
				Placeholder("optional").
				Value(&f.desc),
			huh.NewSelect[string]().
				Title("Status").
				Options(statusOptions...).
				Value(&f.status),
			huh.NewSelect[string]().
				Title("Priority").
				Options(priorityOptions...).
				Value(&f.priority),
		),
		huh.NewGroup(
			huh.NewInput().
				Title("Start Date (YYYY-MM-DD)").
				Placeholder("2026-01-15").
				Value(&f.start).
				Validate(validateDate),
			huh.NewInput().
				Title("End Date (YYYY-MM-DD)").
				Placeholder("2026-01-20").
				Value(&f.end).
				Validate(func(s string) error {
					if err := validateDate(s); err != nil {
						return err
					}
					start, serr := domain.ParseDate(f.start)
					end, _ := domain.ParseDate(s)
					if serr == nil && end.Before(start) {
						return fmt.Errorf("end date is before start date")
					}
					return nil
				}),
		),
	}

	if len(depOptions) > 0 {
		groups = append(groups, huh.NewGroup(
			huh.NewMultiSelect[string]().
				Title("Depends On").
				Options(depOptions...).
				Value(&f.deps),
		))
	}

	return huh.NewForm(groups...).WithTheme(planweaveHuhTheme()).WithShowHelp(false)
}

// newAddTaskView creates a wizard form for adding a task.
func newAddTaskView(state *SharedState) View {
	f := &taskFields{
		status:   string(domain.StatusNotStarted),
		priority: string(domain.PriorityMedium),
		start:    domain.FormatDate(nowFunc()),
		end:      domain.FormatDate(nowFunc()),
	}

	form := taskForm(state, f, "")

	done := func() tea.Cmd {
		return func() tea.Msg {
			var t domain.Task
			if err := f.apply(&t); err != nil {
				return formErrorOutput(err)
			}
			added, err := state.App.Store.Add(t)
			if err != nil {
				return formErrorOutput(err)
			}
			return formSuccessOutput(fmt.Sprintf("%s Added: %s",
				formatter.StyleGreen.Render("✔"),
				formatter.Bold(added.Name)))
		}
	}

	return newWizardView(state, "Add Task", form, done)
}

// newEditTaskView creates a wizard form for editing a task,
// pre-populated from its current values.
func newEditTaskView(state *SharedState, taskID string) View {
	current, ok := state.App.Store.Get(taskID)
	if !ok {
		form := huh.NewForm(
			huh.NewGroup(huh.NewNote().Title("Error").Description("task no longer exists")),
		).WithTheme(planweaveHuhTheme()).WithShowHelp(false)
		return newWizardView(state, "Edit Task", form, nil)
	}

	f := fieldsFromTask(current)
	form := taskForm(state, f, taskID)

	done := func() tea.Cmd {
		return func() tea.Msg {
			t := current
			if err := f.apply(&t); err != nil {
				return formErrorOutput(err)
			}
			if err := state.App.Store.Update(t); err != nil {
				return formErrorOutput(err)
			}
			return formSuccessOutput(fmt.Sprintf("%s Updated: %s",
				formatter.StyleGreen.Render("✔"),
				formatter.Bold(t.Name)))
		}
	}

	return newWizardView(state, "Edit Task", form, done)
}

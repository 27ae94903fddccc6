package assistant

import (
	"context"
	"fmt"
	"strings"

	"github.com/avolkenstein/planweave/internal/domain"
	"github.com/avolkenstein/planweave/internal/yamldoc"
)

// RewriteResult is the outcome of a rewrite request: the repaired task
// collection, any repair warnings, and the raw model output for display
// when parsing fails upstream.
type RewriteResult struct {
	Tasks    []domain.Task
	Warnings []string
	RawYAML  string
}

// Service is the assistant boundary: two independent request shapes,
// each a single round trip with no retry beyond client policy, no
// streaming, and no cancellation of in-flight calls.
type Service interface {
	// Summarize sends a sanitized task list and returns free text.
	Summarize(ctx context.Context, tasks []domain.Task) (string, error)

	// Rewrite sends the current YAML plus an instruction and returns the
	// parsed replacement collection. On any parse failure the error is
	// surfaced and the caller keeps its previous collection.
	Rewrite(ctx context.Context, currentYAML, instruction string) (*RewriteResult, error)
}

type service struct {
	client Client
}

// NewService creates a Service backed by a model client.
func NewService(client Client) Service {
	return &service{client: client}
}

func (s *service) Summarize(ctx context.Context, tasks []domain.Task) (string, error) {
	resp, err := s.client.Generate(ctx, GenerateRequest{
		Task:         TaskSummarize,
		SystemPrompt: summarizeSystemPrompt,
		UserPrompt:   renderTaskLines(tasks),
	})
	if err != nil {
		return "", fmt.Errorf("summarize failed: %w", err)
	}
	return strings.TrimSpace(resp.Text), nil
}

func (s *service) Rewrite(ctx context.Context, currentYAML, instruction string) (*RewriteResult, error) {
	cleaned, err := SanitizeInstruction(instruction)
	if err != nil {
		return nil, err
	}
	payload := SanitizeDocument(currentYAML)

	var prompt strings.Builder
	prompt.WriteString("Current tasks:\n\n")
	prompt.WriteString(payload)
	prompt.WriteString("\n\nInstruction: ")
	prompt.WriteString(cleaned)

	resp, err := s.client.Generate(ctx, GenerateRequest{
		Task:         TaskRewrite,
		SystemPrompt: rewriteSystemPrompt,
		UserPrompt:   prompt.String(),
	})
	if err != nil {
		return nil, fmt.Errorf("rewrite failed: %w", err)
	}

	tasks, warnings, err := yamldoc.Parse(resp.Text)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidOutput, err)
	}

	return &RewriteResult{
		Tasks:    tasks,
		Warnings: warnings,
		RawYAML:  yamldoc.StripFences(resp.Text),
	}, nil
}

// renderTaskLines flattens the tasks into the sanitized line format the
// summarize prompt expects. Names pass through the instruction filter so
// stray markup cannot reach the model.
func renderTaskLines(tasks []domain.Task) string {
	if len(tasks) == 0 {
		return "(no tasks)"
	}

	var b strings.Builder
	for _, t := range tasks {
		name := stripAngleBrackets(t.Name)
		fmt.Fprintf(&b, "- %s [%s, %s] %s to %s",
			name, t.Status.Label(), t.Priority.Label(),
			domain.FormatDate(t.StartDate), domain.FormatDate(t.EndDate))
		if len(t.Dependencies) > 0 {
			depNames := make([]string, 0, len(t.Dependencies))
			for _, dep := range t.Dependencies {
				depNames = append(depNames, stripAngleBrackets(domain.TaskName(tasks, dep)))
			}
			fmt.Fprintf(&b, " (after: %s)", strings.Join(depNames, ", "))
		}
		b.WriteString("\n")
	}
	return b.String()
}

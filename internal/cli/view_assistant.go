package cli

import (
	"context"
	"strings"

	"github.com/avolkenstein/planweave/internal/assistant"
	"github.com/avolkenstein/planweave/internal/cli/formatter"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// assistantReplyMsg carries an asynchronous assistant result back to
// the view.
type assistantReplyMsg struct {
	summary string
	rewrite *assistant.RewriteResult
	err     error
}

// assistantView is a chat-style view over the assistant service.
// A bare "summary" asks for a plan summary; any other input is treated
// as a rewrite instruction whose result must be confirmed before it
// replaces the plan.
type assistantView struct {
	state *SharedState
	input textinput.Model

	messages []string
	waiting  bool

	// pending holds a rewrite proposal awaiting y/n confirmation.
	pending *assistant.RewriteResult
}

func newAssistantView(state *SharedState) *assistantView {
	ti := textinput.New()
	ti.Focus()
	ti.Prompt = ""
	ti.CharLimit = 500

	v := &assistantView{
		state: state,
		input: ti,
	}

	if state.App.Assistant == nil {
		v.messages = append(v.messages,
			formatter.Dim("The assistant is disabled. Set PLANWEAVE_LLM_ENABLED=true to use it."))
	} else {
		v.messages = append(v.messages,
			formatter.Dim(`Type "summary" for a plan overview, or describe a change ("move the design tasks to next week").`))
	}

	return v
}

func (v *assistantView) ID() ViewID    { return ViewAssistant }
func (v *assistantView) Title() string { return "Assistant" }

func (v *assistantView) ShortHelp() []key.Binding {
	return []key.Binding{
		key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "send")),
		key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back")),
	}
}

func (v *assistantView) Init() tea.Cmd {
	return textinput.Blink
}

func (v *assistantView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case assistantReplyMsg:
		v.waiting = false
		if msg.err != nil {
			v.messages = append(v.messages, errorLine(msg.err))
			return v, nil
		}
		if msg.summary != "" {
			v.messages = append(v.messages, msg.summary)
			return v, nil
		}
		if msg.rewrite != nil {
			v.pending = msg.rewrite
			v.messages = append(v.messages,
				formatter.FormatRewritePreview(msg.rewrite.Tasks, msg.rewrite.Warnings),
				formatter.Bold("Apply this plan? (y/n)"))
		}
		return v, nil

	case tea.KeyMsg:
		if msg.Type == tea.KeyEsc {
			return v, popView()
		}
		if v.waiting {
			return v, nil
		}

		if v.pending != nil {
			return v.handleConfirm(msg)
		}

		if msg.Type == tea.KeyEnter {
			input := strings.TrimSpace(v.input.Value())
			v.input.Reset()
			if input == "" {
				return v, nil
			}
			return v.handleInput(input)
		}
	}

	var cmd tea.Cmd
	v.input, cmd = v.input.Update(msg)
	return v, cmd
}

func (v *assistantView) handleConfirm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch strings.ToLower(msg.String()) {
	case "y":
		pending := v.pending
		v.pending = nil
		if err := v.state.App.Store.ReplaceAll(pending.Tasks, "rewrite"); err != nil {
			v.messages = append(v.messages, errorLine(err))
			return v, nil
		}
		v.messages = append(v.messages, formatter.StyleGreen.Render("✔ Plan updated."))
		return v, refreshViews()
	case "n":
		v.pending = nil
		v.messages = append(v.messages, formatter.Dim("Discarded."))
		return v, nil
	}
	return v, nil
}

func (v *assistantView) handleInput(input string) (tea.Model, tea.Cmd) {
	if v.state.App.Assistant == nil {
		return v, nil
	}

	v.messages = append(v.messages, formatter.Dim("You: ")+input)
	v.waiting = true

	app := v.state.App
	if isSummaryRequest(input) {
		tasks := app.Store.Snapshot()
		return v, func() tea.Msg {
			summary, err := app.Assistant.Summarize(context.Background(), tasks)
			return assistantReplyMsg{summary: summary, err: err}
		}
	}

	doc := app.Store.RawDocument()
	return v, func() tea.Msg {
		result, err := app.Assistant.Rewrite(context.Background(), doc, input)
		return assistantReplyMsg{rewrite: result, err: err}
	}
}

func (v *assistantView) View() string {
	var b strings.Builder

	for _, msg := range v.messages {
		b.WriteString(msg)
		b.WriteString("\n")
	}

	if v.waiting {
		b.WriteString(formatter.Dim("Thinking...") + "\n")
	}

	if v.pending == nil {
		prompt := formatter.StylePurple.Render("plan") + formatter.Dim("> ")
		b.WriteString(prompt)
		b.WriteString(v.input.View())
	}

	return b.String()
}

// isSummaryRequest matches the handful of phrasings that mean "tell me
// where the plan stands" rather than a rewrite instruction.
func isSummaryRequest(input string) bool {
	switch strings.ToLower(strings.TrimSpace(input)) {
	case "summary", "summarize", "/summary", "status":
		return true
	}
	return false
}

package assistant

import (
	"fmt"
	"io"
	"time"
)

// CallEvent records metadata about a single model invocation. Prompt
// and reply sizes are in characters; the plan document dominates the
// prompt, so PromptChars tracks how much of it survived sanitization.
type CallEvent struct {
	Task        TaskType
	Model       string
	LatencyMs   int64
	Attempts    int
	PromptChars int
	ReplyChars  int
	Success     bool
	ErrorCode   string
}

// Observer receives events about assistant calls for logging and metrics.
type Observer interface {
	OnCallComplete(event CallEvent)
}

// LogObserver writes call events to an io.Writer.
type LogObserver struct {
	w io.Writer
}

// NewLogObserver creates an Observer that logs events to w.
func NewLogObserver(w io.Writer) *LogObserver {
	return &LogObserver{w: w}
}

func (o *LogObserver) OnCallComplete(event CallEvent) {
	ts := time.Now().UTC().Format(time.RFC3339)
	status := "ok"
	if !event.Success {
		status = "err:" + event.ErrorCode
	}
	fmt.Fprintf(o.w, "[%s] assistant_call task=%s model=%s attempts=%d prompt_chars=%d reply_chars=%d latency_ms=%d status=%s\n",
		ts, event.Task, event.Model, event.Attempts, event.PromptChars, event.ReplyChars, event.LatencyMs, status)
}

// NoopObserver discards all events. Useful for tests.
type NoopObserver struct{}

func (NoopObserver) OnCallComplete(CallEvent) {}

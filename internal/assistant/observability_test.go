package assistant

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLogObserver_RecordsCallShape(t *testing.T) {
	var buf bytes.Buffer
	o := NewLogObserver(&buf)

	o.OnCallComplete(CallEvent{
		Task:        TaskRewrite,
		Model:       "llama3.2",
		LatencyMs:   120,
		Attempts:    2,
		PromptChars: 4200,
		ReplyChars:  900,
		Success:     true,
	})

	line := buf.String()
	assert.Contains(t, line, "task=rewrite")
	assert.Contains(t, line, "attempts=2")
	assert.Contains(t, line, "prompt_chars=4200")
	assert.Contains(t, line, "reply_chars=900")
	assert.Contains(t, line, "status=ok")
}

func TestLogObserver_RecordsFailureCode(t *testing.T) {
	var buf bytes.Buffer
	o := NewLogObserver(&buf)

	o.OnCallComplete(CallEvent{
		Task:      TaskSummarize,
		Model:     "llama3.2",
		Attempts:  1,
		Success:   false,
		ErrorCode: "TIMEOUT",
	})

	assert.Contains(t, buf.String(), "status=err:TIMEOUT")
}

package assistant

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/avolkenstein/planweave/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newGenerateServer returns an httptest server that answers
// POST /api/generate with the given response text.
func newGenerateServer(t *testing.T, responseText string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/generate", r.URL.Path)
		assert.Equal(t, http.MethodPost, r.Method)

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{
			"model":    "test-model",
			"response": responseText,
		})
	}))
}

func newTestService(t *testing.T, srv *httptest.Server) Service {
	t.Helper()
	cfg := DefaultConfig()
	cfg.Endpoint = srv.URL
	cfg.Model = "test-model"
	cfg.MaxRetries = 0
	return NewService(NewOllamaClient(cfg, NoopObserver{}))
}

const rewriteYAML = `tasks:
  - id: a1
    name: Ship release
    status: in_progress
    priority: high
    start_date: 2024-03-01
    end_date: 2024-03-05
`

func TestRewrite_PlainYAML(t *testing.T) {
	srv := newGenerateServer(t, rewriteYAML)
	defer srv.Close()

	res, err := newTestService(t, srv).Rewrite(context.Background(), "tasks: []\n", "start the release")
	require.NoError(t, err)
	require.Len(t, res.Tasks, 1)
	assert.Equal(t, "a1", res.Tasks[0].ID)
	assert.Equal(t, domain.StatusInProgress, res.Tasks[0].Status)
}

// A fenced response and an unfenced response must parse to the same
// collection.
func TestRewrite_FencedEqualsUnfenced(t *testing.T) {
	plainSrv := newGenerateServer(t, rewriteYAML)
	defer plainSrv.Close()
	fencedSrv := newGenerateServer(t, "```yaml\n"+rewriteYAML+"```")
	defer fencedSrv.Close()

	plain, err := newTestService(t, plainSrv).Rewrite(context.Background(), "tasks: []\n", "start the release")
	require.NoError(t, err)
	fenced, err := newTestService(t, fencedSrv).Rewrite(context.Background(), "tasks: []\n", "start the release")
	require.NoError(t, err)

	assert.Equal(t, plain.Tasks, fenced.Tasks)
}

func TestRewrite_InvalidYAMLSurfacesError(t *testing.T) {
	srv := newGenerateServer(t, "sorry, I cannot help with that")
	defer srv.Close()

	_, err := newTestService(t, srv).Rewrite(context.Background(), "tasks: []\n", "do something")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidOutput)
}

func TestRewrite_RejectedInstructionNeverReachesServer(t *testing.T) {
	called := false
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))
	defer srv.Close()

	_, err := newTestService(t, srv).Rewrite(context.Background(), "tasks: []\n", "<script>alert(1)</script>")
	assert.ErrorIs(t, err, ErrRejectedInput)
	assert.False(t, called)
}

func TestSummarize(t *testing.T) {
	srv := newGenerateServer(t, "  Two tasks, one in progress.  ")
	defer srv.Close()

	tasks := []domain.Task{
		{ID: "a", Name: "Design", Status: domain.StatusInProgress, Priority: domain.PriorityHigh,
			StartDate: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
			EndDate:   time.Date(2024, 3, 2, 0, 0, 0, 0, time.UTC)},
	}
	text, err := newTestService(t, srv).Summarize(context.Background(), tasks)
	require.NoError(t, err)
	assert.Equal(t, "Two tasks, one in progress.", text, "whitespace trimmed")
}

func TestSummarize_Unavailable(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Endpoint = "http://127.0.0.1:1" // nothing listens here
	cfg.MaxRetries = 0
	cfg.Tasks[TaskSummarize] = TaskConfig{Temperature: 0.3, MaxTokens: 16, TimeoutMs: 2000}

	svc := NewService(NewOllamaClient(cfg, NoopObserver{}))
	_, err := svc.Summarize(context.Background(), nil)
	require.Error(t, err)
}

func TestRenderTaskLines_ResolvesDependencyNames(t *testing.T) {
	tasks := []domain.Task{
		{ID: "a", Name: "First", StartDate: time.Now(), EndDate: time.Now()},
		{ID: "b", Name: "Second <b>", StartDate: time.Now(), EndDate: time.Now(), Dependencies: []string{"a", "ghost"}},
	}
	lines := renderTaskLines(tasks)
	assert.Contains(t, lines, "after: First, Unknown Task")
	assert.NotContains(t, lines, "<b>", "markup stripped from names")
}

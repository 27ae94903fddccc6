package history

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestLog(t *testing.T) *RevisionLog {
	t.Helper()
	db, err := OpenDB(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewRevisionLog(db)
}

func TestAppendAndList(t *testing.T) {
	log := newTestLog(t)
	ctx := context.Background()

	require.NoError(t, log.Append(ctx, "add", "tasks: []\n"))
	require.NoError(t, log.Append(ctx, "update", "tasks:\n  - id: a\n"))

	revs, err := log.List(ctx, 10)
	require.NoError(t, err)
	require.Len(t, revs, 2)
	assert.Equal(t, "update", revs[0].Reason, "newest first")
	assert.Equal(t, "add", revs[1].Reason)
	assert.False(t, revs[0].CreatedAt.IsZero())
}

func TestPrevious(t *testing.T) {
	log := newTestLog(t)
	ctx := context.Background()

	_, err := log.Previous(ctx)
	assert.ErrorIs(t, err, ErrNoRevision)

	require.NoError(t, log.Append(ctx, "add", "v1"))
	_, err = log.Previous(ctx)
	assert.ErrorIs(t, err, ErrNoRevision, "a single revision has no predecessor")

	require.NoError(t, log.Append(ctx, "delete", "v2"))
	prev, err := log.Previous(ctx)
	require.NoError(t, err)
	assert.Equal(t, "v1", prev.Document)
}

func TestLatest(t *testing.T) {
	log := newTestLog(t)
	ctx := context.Background()

	_, err := log.Latest(ctx)
	assert.ErrorIs(t, err, ErrNoRevision)

	require.NoError(t, log.Append(ctx, "add", "v1"))
	latest, err := log.Latest(ctx)
	require.NoError(t, err)
	assert.Equal(t, "v1", latest.Document)
}

package tracker

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestTracker(t *testing.T) *Tracker {
	t.Helper()
	tr, err := Open(t.TempDir())
	require.NoError(t, err)
	t.Cleanup(func() { _ = tr.Close() })
	return tr
}

func TestTrackerMarkProcessed(t *testing.T) {
	tr := openTestTracker(t)

	processed, err := tr.IsProcessed("abc123")
	require.NoError(t, err)
	assert.False(t, processed)

	require.NoError(t, tr.MarkProcessed("resume.txt", "abc123"))

	processed, err = tr.IsProcessed("abc123")
	require.NoError(t, err)
	assert.True(t, processed)
}

func TestTrackerMarkFailed(t *testing.T) {
	tr := openTestTracker(t)

	require.NoError(t, tr.MarkFailed("broken.txt", "def456", "extraction failed"))

	status, err := tr.Status()
	require.NoError(t, err)
	require.Len(t, status.Failed, 1)
	assert.Equal(t, "broken.txt", status.Failed[0].Filename)
	assert.Equal(t, "extraction failed", status.Failed[0].Error)
	assert.Empty(t, status.Processed)

	// A failed file is not processed; it will be retried next run.
	processed, err := tr.IsProcessed("def456")
	require.NoError(t, err)
	assert.False(t, processed)
}

func TestTrackerSuccessClearsFailure(t *testing.T) {
	tr := openTestTracker(t)

	require.NoError(t, tr.MarkFailed("resume.txt", "abc123", "transient error"))
	require.NoError(t, tr.MarkProcessed("resume.txt", "abc123"))

	status, err := tr.Status()
	require.NoError(t, err)
	assert.Empty(t, status.Failed)
	require.Len(t, status.Processed, 1)
	assert.Equal(t, "resume.txt", status.Processed[0].Filename)
}

func TestTrackerStatusListsAll(t *testing.T) {
	tr := openTestTracker(t)

	require.NoError(t, tr.MarkProcessed("a.txt", "sum-a"))
	require.NoError(t, tr.MarkProcessed("b.txt", "sum-b"))
	require.NoError(t, tr.MarkFailed("c.txt", "sum-c", "bad record"))

	status, err := tr.Status()
	require.NoError(t, err)
	assert.Len(t, status.Processed, 2)
	assert.Len(t, status.Failed, 1)
}

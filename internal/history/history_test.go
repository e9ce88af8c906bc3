package history_test

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/raysh454/browserctl/internal/history"
	"github.com/raysh454/browserctl/internal/testutil"
)

func newJournal(t *testing.T) *history.Journal {
	t.Helper()
	j, err := history.Open(filepath.Join(t.TempDir(), "journal.db"), &testutil.DummyLogger{})
	require.NoError(t, err)
	t.Cleanup(func() { j.Close() })
	return j
}

func TestJournal_RecordAndList(t *testing.T) {
	t.Parallel()
	j := newJournal(t)
	ctx := context.Background()

	require.NoError(t, j.Record(ctx, "https://one.example", "111"))
	require.NoError(t, j.Record(ctx, "https://two.example", "222"))

	entries, err := j.List(ctx, 10)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	require.Equal(t, "https://two.example", entries[0].URL)
	require.Equal(t, "222", entries[0].WindowID)
	require.Equal(t, "https://one.example", entries[1].URL)
	require.NotEmpty(t, entries[0].ID)
	require.WithinDuration(t, time.Now().UTC(), entries[0].CreatedAt, time.Minute)
}

func TestJournal_ListLimit(t *testing.T) {
	t.Parallel()
	j := newJournal(t)
	ctx := context.Background()

	for _, u := range []string{"https://a.example", "https://b.example", "https://c.example"} {
		require.NoError(t, j.Record(ctx, u, "1"))
	}

	entries, err := j.List(ctx, 2)
	require.NoError(t, err)
	require.Len(t, entries, 2)
}

func TestJournal_ListEmpty(t *testing.T) {
	t.Parallel()
	j := newJournal(t)

	entries, err := j.List(context.Background(), 10)
	require.NoError(t, err)
	require.Empty(t, entries)
}

func TestJournal_ReopenKeepsRows(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "journal.db")

	j, err := history.Open(path, &testutil.DummyLogger{})
	require.NoError(t, err)
	require.NoError(t, j.Record(context.Background(), "https://keep.example", "1"))
	require.NoError(t, j.Close())

	j2, err := history.Open(path, &testutil.DummyLogger{})
	require.NoError(t, err)
	defer j2.Close()

	entries, err := j2.List(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	require.Equal(t, "https://keep.example", entries[0].URL)
}

package ledger

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tarikhaida/menu-tracker/constants"
	"github.com/tarikhaida/menu-tracker/internal/entity"
)

func openTestLedger(t *testing.T) *Ledger {
	t.Helper()
	l, err := Open(":memory:", nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = l.Close() })
	return l
}

func TestRecordAndIsCompleted(t *testing.T) {
	l := openTestLedger(t)
	ctx := context.Background()

	done, err := l.IsCompleted(ctx, "abc123")
	require.NoError(t, err)
	assert.False(t, done)

	require.NoError(t, l.Record(ctx, entity.Document{
		Filename:    "menu-du-06-au-10-octobre.jpg",
		ContentHash: "abc123",
		Status:      constants.DocStatusCompleted,
		RecordCount: 5,
	}))

	done, err = l.IsCompleted(ctx, "abc123")
	require.NoError(t, err)
	assert.True(t, done)
}

func TestFailedDocumentIsNotCompleted(t *testing.T) {
	l := openTestLedger(t)
	ctx := context.Background()

	require.NoError(t, l.Record(ctx, entity.Document{
		Filename:     "menu-broken.jpg",
		ContentHash:  "def456",
		Status:       constants.DocStatusFailed,
		ErrorMessage: "document processing failed: unreadable image",
	}))

	done, err := l.IsCompleted(ctx, "def456")
	require.NoError(t, err)
	assert.False(t, done)
}

func TestRecordUpsertsByContentHash(t *testing.T) {
	l := openTestLedger(t)
	ctx := context.Background()

	require.NoError(t, l.Record(ctx, entity.Document{
		Filename:    "menu.jpg",
		ContentHash: "h1",
		Status:      constants.DocStatusFailed,
	}))
	// Retry of the same image succeeds: the row flips to COMPLETED.
	require.NoError(t, l.Record(ctx, entity.Document{
		Filename:    "menu.jpg",
		ContentHash: "h1",
		Status:      constants.DocStatusCompleted,
		RecordCount: 4,
	}))

	docs, err := l.List(ctx)
	require.NoError(t, err)
	require.Len(t, docs, 1)
	assert.Equal(t, constants.DocStatusCompleted, docs[0].Status)
	assert.Equal(t, 4, docs[0].RecordCount)
	assert.Empty(t, docs[0].ErrorMessage)
}

func TestFileChecksum(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "menu.jpg")
	require.NoError(t, os.WriteFile(path, []byte("image-bytes"), 0o644))

	sum1, err := FileChecksum(path)
	require.NoError(t, err)
	require.NotEmpty(t, sum1)

	// Same contents, different name: same hash.
	other := filepath.Join(dir, "renamed.jpg")
	require.NoError(t, os.WriteFile(other, []byte("image-bytes"), 0o644))
	sum2, err := FileChecksum(other)
	require.NoError(t, err)
	assert.Equal(t, sum1, sum2)

	_, err = FileChecksum(filepath.Join(dir, "missing.jpg"))
	assert.Error(t, err)
}

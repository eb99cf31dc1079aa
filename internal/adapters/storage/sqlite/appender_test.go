package sqlite_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/zhukovg/energolog/internal/adapters/storage/sqlite"
)

func TestAppendRow(t *testing.T) {
	a, err := sqlite.Open(filepath.Join(t.TempDir(), "journal.db"))
	require.NoError(t, err)
	t.Cleanup(func() { a.Close() })

	ctx := context.Background()

	err = a.AppendRow(ctx, []string{"2026-08-29", "читал книгу", "positive", "инженер", "чтение", ""})
	require.NoError(t, err)
	err = a.AppendRow(ctx, []string{"2026-08-29", "созвон", "negative", "", "", "утро"})
	require.NoError(t, err)

	n, err := a.Count(ctx)
	require.NoError(t, err)
	require.Equal(t, 2, n)
}

func TestAppendRowRejectsWrongArity(t *testing.T) {
	a, err := sqlite.Open(filepath.Join(t.TempDir(), "journal.db"))
	require.NoError(t, err)
	t.Cleanup(func() { a.Close() })

	err = a.AppendRow(context.Background(), []string{"only", "three", "columns"})
	require.Error(t, err)
}

package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ppiankov/pensionfacts/internal/model"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "db", "reports.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func report(naid, runID string, categories ...string) *model.DocumentReport {
	return &model.DocumentReport{
		RunID:      runID,
		NAID:       naid,
		Title:      model.TitleParseResult{RawTitle: "File W." + naid, Category: model.FileTypeWidow},
		Categories: categories,
	}
}

func TestSaveAndGet(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	id, err := s.Save(ctx, report("100", "run-1", model.CategoryWidow))
	require.NoError(t, err)
	assert.Len(t, id, 36)

	got, err := s.Get(ctx, "100")
	require.NoError(t, err)
	assert.Equal(t, "100", got.NAID)
	assert.Equal(t, "run-1", got.RunID)
	assert.Equal(t, model.FileTypeWidow, got.Title.Category)
}

func TestGetLatest(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return now }
	_, err := s.Save(ctx, report("7", "old"))
	require.NoError(t, err)

	now = now.Add(time.Hour)
	_, err = s.Save(ctx, report("7", "new"))
	require.NoError(t, err)

	got, err := s.Get(ctx, "7")
	require.NoError(t, err)
	assert.Equal(t, "new", got.RunID)
}

func TestGetMissing(t *testing.T) {
	s := openTestStore(t)

	_, err := s.Get(context.Background(), "nope")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCountByCategory(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	for _, r := range []*model.DocumentReport{
		report("1", "r", model.CategoryBountyLand, model.CategoryWidow),
		report("2", "r", model.CategoryWidow),
		report("3", "r", model.CategoryUnknown),
		report("4", "r"),
	} {
		_, err := s.Save(ctx, r)
		require.NoError(t, err)
	}

	counts, err := s.CountByCategory(ctx)
	require.NoError(t, err)
	assert.Equal(t, map[string]int{
		model.CategoryWidow:      2,
		model.CategoryBountyLand: 1,
		model.CategoryUnknown:    1,
	}, counts)
}

func TestListRun(t *testing.T) {
	s, err := Open(":memory:")
	require.NoError(t, err)
	defer func() { _ = s.Close() }()
	ctx := context.Background()

	for _, naid := range []string{"a", "b", "c"} {
		_, err := s.Save(ctx, report(naid, "run-x"))
		require.NoError(t, err)
	}
	_, err = s.Save(ctx, report("z", "run-y"))
	require.NoError(t, err)

	reports, err := s.ListRun(ctx, "run-x")
	require.NoError(t, err)
	require.Len(t, reports, 3)
	assert.Equal(t, "a", reports[0].NAID)
	assert.Equal(t, "c", reports[2].NAID)
}

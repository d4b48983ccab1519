package core

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JonMunkholm/brfss/internal/validation"
)

func report(id, filename string, ts time.Time, status validation.Status, errs ...string) *validation.ValidationResult {
	res := validation.NewResult(id, filename)
	res.Timestamp = ts
	for _, field := range errs {
		res.AddError(2, field, "bad "+field)
	}
	res.Status = status
	return res
}

func TestMemoryStore_SaveGet(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	res := report("aaaa0001", "CA_submission_2023.csv", time.Now().Truncate(time.Second), validation.StatusFailed, "year")
	require.NoError(t, store.Save(ctx, res))

	got, err := store.Get(ctx, "aaaa0001")
	require.NoError(t, err)
	assert.Equal(t, "CA_submission_2023.csv", got.Filename)
	assert.Equal(t, 1, got.ErrorCount())

	// Returned reports are copies.
	got.Errors[0].Message = "changed"
	again, err := store.Get(ctx, "aaaa0001")
	require.NoError(t, err)
	assert.Equal(t, "bad year", again.Errors[0].Message)

	// So are saved ones.
	res.Filename = "changed.csv"
	again, err = store.Get(ctx, "aaaa0001")
	require.NoError(t, err)
	assert.Equal(t, "CA_submission_2023.csv", again.Filename)
}

func TestMemoryStore_NotFound(t *testing.T) {
	_, err := NewMemoryStore().Get(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryStore_ListNewestFirst(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	base := time.Date(2024, 5, 1, 9, 0, 0, 0, time.Local)

	require.NoError(t, store.Save(ctx, report("old00001", "a.csv", base, validation.StatusPassed)))
	require.NoError(t, store.Save(ctx, report("new00001", "b.csv", base.Add(time.Hour), validation.StatusPassed)))
	// Same second as old00001 but saved later.
	require.NoError(t, store.Save(ctx, report("old00002", "c.csv", base, validation.StatusPassed)))

	list, err := store.List(ctx)
	require.NoError(t, err)

	var ids []string
	for _, r := range list {
		ids = append(ids, r.SubmissionID)
	}
	assert.Equal(t, []string{"new00001", "old00002", "old00001"}, ids)
}

func TestMemoryStore_ClearAndDeleteBefore(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	now := time.Now().Truncate(time.Second)

	require.NoError(t, store.Save(ctx, report("keep0001", "a.csv", now, validation.StatusPassed)))
	require.NoError(t, store.Save(ctx, report("drop0001", "b.csv", now.Add(-48*time.Hour), validation.StatusPassed)))

	n, err := store.DeleteBefore(ctx, now.Add(-24*time.Hour))
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	_, err = store.Get(ctx, "drop0001")
	assert.ErrorIs(t, err, ErrNotFound)

	n, err = store.Clear(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	list, err := store.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)
}

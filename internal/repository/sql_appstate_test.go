package repository

import (
	"context"
	"testing"

	"github.com/alexanderramin/stride/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppStateRepo_FetchOrCreate_CreatesOnce(t *testing.T) {
	repo := NewSQLAppStateRepo(testutil.NewTestDB(t).Querier())
	ctx := context.Background()

	s, err := repo.FetchOrCreate(ctx, testutil.Date("2025-01-01"))
	require.NoError(t, err)
	assert.Equal(t, "2025-01-01", s.CreateDate.String())
	assert.Nil(t, s.LatestEvaluatedDate)

	// A later call keeps the original create date.
	s, err = repo.FetchOrCreate(ctx, testutil.Date("2025-03-01"))
	require.NoError(t, err)
	assert.Equal(t, "2025-01-01", s.CreateDate.String())
}

func TestAppStateRepo_UpdateLatestEvaluated(t *testing.T) {
	repo := NewSQLAppStateRepo(testutil.NewTestDB(t).Querier())
	ctx := context.Background()

	_, err := repo.FetchOrCreate(ctx, testutil.Date("2025-01-01"))
	require.NoError(t, err)
	require.NoError(t, repo.UpdateLatestEvaluated(ctx, testutil.Date("2025-01-04")))

	s, err := repo.FetchOrCreate(ctx, testutil.Date("2025-01-01"))
	require.NoError(t, err)
	require.NotNil(t, s.LatestEvaluatedDate)
	assert.Equal(t, "2025-01-04", s.LatestEvaluatedDate.String())
	assert.Equal(t, "2025-01-05", s.NextPendingDate().String())
}

func TestAppStateRepo_UpdateBeforeCreate(t *testing.T) {
	repo := NewSQLAppStateRepo(testutil.NewTestDB(t).Querier())

	err := repo.UpdateLatestEvaluated(context.Background(), testutil.Date("2025-01-04"))
	assert.ErrorIs(t, err, ErrNotFound)
}

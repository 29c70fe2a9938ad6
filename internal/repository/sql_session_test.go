package repository

import (
	"context"
	"testing"

	"github.com/alexanderramin/stride/internal/calendar"
	"github.com/alexanderramin/stride/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// sessionTestSetup creates the activity scaffolding needed by session tests.
func sessionTestSetup(t *testing.T) (*SQLSessionRepo, string) {
	t.Helper()
	q := testutil.NewTestDB(t).Querier()
	a := testutil.NewTestActivity("Running", testutil.WithSessionUnit("km"))
	require.NoError(t, NewSQLActivityRepo(q).Create(context.Background(), a))
	return NewSQLSessionRepo(q), a.ID
}

func TestSessionRepo_CreateAndGetByID(t *testing.T) {
	repo, activityID := sessionTestSetup(t)
	ctx := context.Background()

	sess := testutil.NewTestSession(activityID, 5.25, testutil.Date("2025-01-02"), testutil.WithNote("Easy pace"))
	require.NoError(t, repo.Create(ctx, sess))

	fetched, err := repo.GetByID(ctx, sess.ID)
	require.NoError(t, err)
	assert.Equal(t, activityID, fetched.ActivityID)
	assert.Equal(t, "5.25", fetched.Value.String())
	assert.Equal(t, "2025-01-02", fetched.CompleteDate.String())
	assert.Equal(t, "Easy pace", fetched.Note)
}

func TestSessionRepo_GetByID_NotFound(t *testing.T) {
	repo, _ := sessionTestSetup(t)

	_, err := repo.GetByID(context.Background(), "nonexistent")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSessionRepo_TotalInRange_IsInclusiveAndExact(t *testing.T) {
	repo, activityID := sessionTestSetup(t)
	ctx := context.Background()

	for _, s := range []struct {
		value float64
		date  string
	}{
		{0.1, "2025-01-05"}, // before
		{0.1, "2025-01-06"},
		{0.2, "2025-01-09"},
		{0.3, "2025-01-12"},
		{9, "2025-01-13"}, // after
	} {
		require.NoError(t, repo.Create(ctx, testutil.NewTestSession(activityID, s.value, testutil.Date(s.date))))
	}

	week := calendar.Range{Start: testutil.Date("2025-01-06"), End: testutil.Date("2025-01-12")}
	total, err := repo.TotalInRange(ctx, activityID, week)
	require.NoError(t, err)
	assert.Equal(t, "0.6", total.String())

	empty, err := repo.TotalInRange(ctx, activityID, calendar.Day(testutil.Date("2025-02-01")))
	require.NoError(t, err)
	assert.True(t, empty.IsZero())
}

func TestSessionRepo_ListByActivity(t *testing.T) {
	repo, activityID := sessionTestSetup(t)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, testutil.NewTestSession(activityID, 3, testutil.Date("2025-01-03"))))
	require.NoError(t, repo.Create(ctx, testutil.NewTestSession(activityID, 1, testutil.Date("2025-01-01"))))
	require.NoError(t, repo.Create(ctx, testutil.NewTestSession(activityID, 2, testutil.Date("2025-01-02"))))

	sessions, err := repo.ListByActivity(ctx, activityID, calendar.Range{Start: testutil.Date("2025-01-02"), End: testutil.Date("2025-01-03")})
	require.NoError(t, err)
	require.Len(t, sessions, 2)
	assert.Equal(t, "2025-01-02", sessions[0].CompleteDate.String())
	assert.Equal(t, "2025-01-03", sessions[1].CompleteDate.String())
}

func TestSessionRepo_Delete(t *testing.T) {
	repo, activityID := sessionTestSetup(t)
	ctx := context.Background()

	sess := testutil.NewTestSession(activityID, 1, testutil.Date("2025-01-01"))
	require.NoError(t, repo.Create(ctx, sess))
	require.NoError(t, repo.Delete(ctx, sess.ID))

	_, err := repo.GetByID(ctx, sess.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, repo.Delete(ctx, sess.ID), ErrNotFound)
}

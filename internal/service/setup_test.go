package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/alexanderramin/stride/internal/calendar"
	"github.com/alexanderramin/stride/internal/db"
	"github.com/alexanderramin/stride/internal/domain"
	"github.com/alexanderramin/stride/internal/repository"
	"github.com/alexanderramin/stride/internal/testutil"
	"github.com/stretchr/testify/require"
)

// repoSet bundles the SQL repositories over one connection or wrapper.
type repoSet struct {
	appState   *repository.SQLAppStateRepo
	activities *repository.SQLActivityRepo
	goals      *repository.SQLGoalRepo
	sessions   *repository.SQLSessionRepo
}

func newRepoSet(q db.DBTX) repoSet {
	return repoSet{
		appState:   repository.NewSQLAppStateRepo(q),
		activities: repository.NewSQLActivityRepo(q),
		goals:      repository.NewSQLGoalRepo(q),
		sessions:   repository.NewSQLSessionRepo(q),
	}
}

func setupRepos(t *testing.T) (*db.Conn, repoSet) {
	t.Helper()
	conn := testutil.NewTestDB(t)
	return conn, newRepoSet(conn.Querier())
}

func (r repoSet) engine(today calendar.Date, observers ...UseCaseObserver) StreakService {
	return NewStreakService(r.appState, r.activities, r.goals, r.sessions, calendar.ClockAt(today), time.UTC, observers...)
}

// seedAppState creates the app state row as if the app was first opened on created.
func (r repoSet) seedAppState(t *testing.T, created calendar.Date) {
	t.Helper()
	_, err := r.appState.FetchOrCreate(context.Background(), created)
	require.NoError(t, err)
}

func (r repoSet) addActivity(t *testing.T, name string, opts ...testutil.ActivityOption) *domain.Activity {
	t.Helper()
	a := testutil.NewTestActivity(name, opts...)
	require.NoError(t, r.activities.Create(context.Background(), a))
	return a
}

func (r repoSet) addGoal(t *testing.T, g domain.Goal) {
	t.Helper()
	require.NoError(t, r.goals.Create(context.Background(), g))
}

func (r repoSet) addSessions(t *testing.T, activityID string, from calendar.Date, values ...float64) {
	t.Helper()
	for i, v := range values {
		require.NoError(t, r.sessions.Create(context.Background(), testutil.NewTestSession(activityID, v, from.AddDays(i))))
	}
}

func (r repoSet) reload(t *testing.T, id string) *domain.Activity {
	t.Helper()
	a, err := r.activities.GetByID(context.Background(), id)
	require.NoError(t, err)
	return a
}

func watermarkOf(a *domain.Activity) string {
	if a.LastGoalSuccessCheckDate == nil {
		return ""
	}
	return a.LastGoalSuccessCheckDate.String()
}

// captureObserver records every use-case event it receives.
type captureObserver struct {
	mu     sync.Mutex
	events []UseCaseEvent
}

func (o *captureObserver) ObserveUseCase(_ context.Context, event UseCaseEvent) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.events = append(o.events, event)
}

func (o *captureObserver) last() UseCaseEvent {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.events[len(o.events)-1]
}

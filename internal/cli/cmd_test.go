package cli

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/alexanderramin/stride/internal/calendar"
	"github.com/alexanderramin/stride/internal/cli/formatter"
	"github.com/alexanderramin/stride/internal/db"
	"github.com/alexanderramin/stride/internal/domain"
	"github.com/alexanderramin/stride/internal/repository"
	"github.com/alexanderramin/stride/internal/service"
	"github.com/alexanderramin/stride/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testApp wires a full App backed by a fresh in-memory DB, frozen on today.
func testApp(t *testing.T, today string) *App {
	t.Helper()
	return wireApp(t, testutil.NewTestDB(t), today)
}

func wireApp(t *testing.T, conn *db.Conn, today string) *App {
	t.Helper()
	q := conn.Querier()

	appState := repository.NewSQLAppStateRepo(q)
	activities := repository.NewSQLActivityRepo(q)
	goals := repository.NewSQLGoalRepo(q)
	sessions := repository.NewSQLSessionRepo(q)
	clock := calendar.ClockAt(calendar.MustParse(today))

	formatter.SetPlain(true)
	t.Cleanup(func() { formatter.SetPlain(false) })

	return &App{
		Activities: service.NewActivityService(activities),
		Goals:      service.NewGoalService(goals, activities, testutil.NewTestUoW(conn)),
		Sessions:   service.NewSessionService(sessions, activities, goals),
		Streaks:    service.NewStreakService(appState, activities, goals, sessions, clock, time.UTC),
		Status:     service.NewStatusService(activities, goals, sessions, clock, time.UTC),
		Import:     service.NewImportService(testutil.NewTestUoW(conn), clock, time.UTC),
		Clock:      clock,
		Location:   time.UTC,
	}
}

// executeCmd runs a cobra command and captures stdout/stderr.
func executeCmd(t *testing.T, app *App, args ...string) (string, error) {
	t.Helper()
	root := NewRootCmd(app, nil)
	buf := new(bytes.Buffer)
	root.SetOut(buf)
	root.SetErr(buf)
	root.SetArgs(args)
	err := root.Execute()
	return buf.String(), err
}

func mustExec(t *testing.T, app *App, args ...string) string {
	t.Helper()
	out, err := executeCmd(t, app, args...)
	require.NoError(t, err, out)
	return out
}

func TestActivityCommands(t *testing.T) {
	app := testApp(t, "2025-01-08")

	out := mustExec(t, app, "activity", "add", "Read", "--unit", "pages")
	assert.Contains(t, out, "Added Read")

	_, err := executeCmd(t, app, "activity", "add", "read")
	assert.ErrorIs(t, err, service.ErrActivityExists)

	mustExec(t, app, "activity", "add", "Old")
	assert.Contains(t, mustExec(t, app, "activity", "archive", "old"), "Archived Old")

	out = mustExec(t, app, "activity", "list")
	assert.Contains(t, out, "Read")
	assert.Contains(t, out, "pages")
	assert.NotContains(t, out, "Old")

	out = mustExec(t, app, "activity", "list", "--all")
	assert.Contains(t, out, "Old (archived)")

	_, err = executeCmd(t, app, "activity", "archive", "nope")
	assert.ErrorContains(t, err, `no activity named "nope"`)
}

func TestGoalCommands(t *testing.T) {
	app := testApp(t, "2025-01-08") // Wednesday
	mustExec(t, app, "activity", "add", "Run")
	mustExec(t, app, "activity", "add", "Read")
	mustExec(t, app, "activity", "add", "Swim")

	out := mustExec(t, app, "goal", "set", "Run", "--target", "5", "--from", "2025-01-01")
	assert.Contains(t, out, "Run: daily ≥ 5 from 2025-01-01")

	out = mustExec(t, app, "goal", "set", "Run", "--every", "2", "--target", "3", "--criteria", "=")
	assert.Contains(t, out, "every 2 days = 3 from 2025-01-08")

	out = mustExec(t, app, "goal", "set", "Read", "--kind", "weekly", "--target", "180")
	assert.Contains(t, out, "per week ≥ 180 from 2025-01-13", "weekly goals default to the next week start")

	out = mustExec(t, app, "goal", "set", "Swim", "--on", "sun=30", "--on", "wed=2:less_than", "--weeks", "2")
	assert.Contains(t, out, "every 2 weeks Wed < 2 Sun ≥ 30")

	// Each weekday keeps its own target.
	swim, err := app.Activities.Resolve(context.Background(), "Swim")
	require.NoError(t, err)
	stored, err := app.Goals.EffectiveOn(context.Background(), swim.ID, calendar.MustParse("2025-01-08"))
	require.NoError(t, err)
	dow, ok := stored.(*domain.DaysOfWeek)
	require.True(t, ok)
	require.NotNil(t, dow.TargetOn(calendar.Sunday))
	require.NotNil(t, dow.TargetOn(calendar.Wednesday))
	assert.Equal(t, domain.CriteriaAtLeast, dow.TargetOn(calendar.Sunday).Criteria)
	assert.Equal(t, domain.CriteriaLessThan, dow.TargetOn(calendar.Wednesday).Criteria)

	out = mustExec(t, app, "goal", "history", "Run")
	assert.Contains(t, out, "2025-01-01")
	assert.Contains(t, out, "every 2 days = 3")
	assert.Contains(t, out, "* current")

	_, err = executeCmd(t, app, "goal", "set", "Run")
	assert.ErrorContains(t, err, "--target is required")

	_, err = executeCmd(t, app, "goal", "set", "Run", "--target", "0")
	assert.ErrorIs(t, err, domain.ErrInvalidTarget)

	_, err = executeCmd(t, app, "goal", "set", "Run", "--target", "5", "--from", "2025-13-01")
	assert.Error(t, err)
}

func TestSessionCommands(t *testing.T) {
	app := testApp(t, "2025-01-08")
	mustExec(t, app, "activity", "add", "Read", "--unit", "pages")

	out := mustExec(t, app, "session", "log", "Read", "12.5", "--note", "chapter one")
	assert.Contains(t, out, "Logged 12.5 pages of Read on 2025-01-08")
	mustExec(t, app, "session", "log", "Read", "20", "--date", "2025-01-02")
	mustExec(t, app, "session", "log", "Read", "99", "--date", "2024-12-01")

	out = mustExec(t, app, "session", "list", "Read")
	assert.Contains(t, out, "chapter one")
	assert.Contains(t, out, "Total: 32.5 pages")

	out = mustExec(t, app, "session", "list", "Read", "--from", "2024-12-01")
	assert.Contains(t, out, "Total: 131.5 pages")

	_, err := executeCmd(t, app, "session", "log", "Read", "-3")
	assert.Error(t, err)
	_, err = executeCmd(t, app, "session", "log", "Read", "lots")
	assert.ErrorContains(t, err, "invalid number")

	_, err = executeCmd(t, app, "session", "remove", "missing")
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestSweepAndStatusCommands(t *testing.T) {
	app := testApp(t, "2025-01-05")
	ctx := context.Background()

	mustExec(t, app, "activity", "add", "Run", "--unit", "km")
	mustExec(t, app, "goal", "set", "Run", "--target", "10", "--from", "2025-01-05")
	mustExec(t, app, "session", "log", "Run", "4")

	out := mustExec(t, app, "sweep")
	assert.Contains(t, out, "up to date")

	out = mustExec(t, app, "status")
	assert.Contains(t, out, "Run")
	assert.Contains(t, out, "4 / 10 km")
	assert.Contains(t, out, "IN PROGRESS")

	run, err := app.Activities.Resolve(ctx, "Run")
	require.NoError(t, err)
	assert.Equal(t, 0, run.CurrentStreakCount)
}

func TestStatusSettlesPastDaysFirst(t *testing.T) {
	conn := testutil.NewTestDB(t)
	first := wireApp(t, conn, "2025-01-05")
	mustExec(t, first, "activity", "add", "Run")
	mustExec(t, first, "goal", "set", "Run", "--target", "10")
	for _, day := range []string{"2025-01-05", "2025-01-06", "2025-01-07"} {
		mustExec(t, first, "session", "log", "Run", "10", "--date", day)
	}
	// The first run records the 5th as the day the app was opened.
	mustExec(t, first, "sweep")

	later := wireApp(t, conn, "2025-01-08")
	out := mustExec(t, later, "status", "--no-sweep")
	assert.NotContains(t, out, "3 days")

	out = mustExec(t, later, "status")
	assert.Contains(t, out, "3 days")

	run, err := later.Activities.Resolve(context.Background(), "Run")
	require.NoError(t, err)
	assert.Equal(t, 3, run.CurrentStreakCount)
	require.NotNil(t, run.LastGoalSuccessCheckDate)
	assert.Equal(t, "2025-01-07", run.LastGoalSuccessCheckDate.String())
}

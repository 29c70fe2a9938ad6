package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/alexanderramin/stride/internal/calendar"
	"github.com/alexanderramin/stride/internal/cli"
	"github.com/alexanderramin/stride/internal/cli/formatter"
	"github.com/alexanderramin/stride/internal/config"
	"github.com/alexanderramin/stride/internal/db"
	"github.com/alexanderramin/stride/internal/keyring"
	"github.com/alexanderramin/stride/internal/logger"
	"github.com/alexanderramin/stride/internal/repository"
	"github.com/alexanderramin/stride/internal/service"
	"github.com/mattn/go-isatty"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load(os.Getenv("STRIDE_CONFIG"))
	if err != nil {
		return err
	}

	if err := logger.Init(logger.Config{Debug: cfg.Debug, DataDir: cfg.DataDir}); err != nil {
		return fmt.Errorf("initializing logger: %w", err)
	}

	weekStart, err := cfg.WeekStartDay()
	if err != nil {
		return err
	}
	if err := calendar.SetWeekStart(weekStart); err != nil {
		return err
	}
	loc, err := cfg.Location()
	if err != nil {
		return err
	}

	// Plain output when piped or redirected.
	out := os.Stdout.Fd()
	formatter.SetPlain(!isatty.IsTerminal(out) && !isatty.IsCygwinTerminal(out))

	app := &cli.App{Clock: calendar.SystemClock{}, Location: loc}

	var conn *db.Conn
	defer func() {
		if conn != nil {
			conn.Close()
		}
	}()

	setup := func() error {
		dsn, err := cfg.DSN()
		if errors.Is(err, keyring.ErrNotFound) {
			return fmt.Errorf("%w; run 'stride db keyring set <dsn>' first", err)
		}
		if err != nil {
			return err
		}

		conn, err = db.Open(dsn)
		if err != nil {
			return fmt.Errorf("opening database: %w", err)
		}
		logger.Debug("database opened", "dialect", conn.Dialect)

		wire(app, conn)
		return nil
	}

	rootCmd := cli.NewRootCmd(app, setup)
	return rootCmd.Execute()
}

// wire builds repositories and services on conn.
func wire(app *cli.App, conn *db.Conn) {
	q := conn.Querier()

	appStateRepo := repository.NewSQLAppStateRepo(q)
	activityRepo := repository.NewSQLActivityRepo(q)
	goalRepo := repository.NewSQLGoalRepo(q)
	sessionRepo := repository.NewSQLSessionRepo(q)

	uow := db.NewUnitOfWork(conn)
	observer := service.NewLogUseCaseObserver(logger.Slog())

	app.Activities = service.NewActivityService(activityRepo)
	app.Goals = service.NewGoalService(goalRepo, activityRepo, uow, observer)
	app.Sessions = service.NewSessionService(sessionRepo, activityRepo, goalRepo, observer)
	app.Streaks = service.NewStreakService(appStateRepo, activityRepo, goalRepo, sessionRepo, app.Clock, app.Location, observer)
	app.Status = service.NewStatusService(activityRepo, goalRepo, sessionRepo, app.Clock, app.Location)
	app.Import = service.NewImportService(uow, app.Clock, app.Location, observer)
}

package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/alexanderramin/stride/internal/calendar"
	"github.com/alexanderramin/stride/internal/db"
	"github.com/alexanderramin/stride/internal/domain"
	"github.com/alexanderramin/stride/internal/importer"
	"github.com/alexanderramin/stride/internal/repository"
	"github.com/google/uuid"
)

// ImportResult holds the outcome of an import.
type ImportResult struct {
	Activities int
	Goals      int
	Sessions   int

	// SettledSessions counts imported sessions dated on days the sweep has
	// already settled. They are stored but cannot change any streak.
	SettledSessions int
}

type importService struct {
	uow      db.UnitOfWork
	clock    calendar.Clock
	loc      *time.Location
	observer UseCaseObserver
}

// NewImportService creates activities with their goal history and sessions
// from an import file. Everything in a file is written in one transaction.
func NewImportService(uow db.UnitOfWork, clock calendar.Clock, loc *time.Location, observers ...UseCaseObserver) ImportService {
	if loc == nil {
		loc = time.Local
	}
	return &importService{uow: uow, clock: clock, loc: loc, observer: useCaseObserverOrNoop(observers)}
}

func (s *importService) ImportFile(ctx context.Context, path string) (*ImportResult, error) {
	schema, err := importer.LoadImportSchema(path)
	if err != nil {
		return nil, fmt.Errorf("loading import file: %w", err)
	}
	return s.ImportSchema(ctx, schema)
}

func (s *importService) ImportSchema(ctx context.Context, schema *importer.ImportSchema) (result *ImportResult, err error) {
	startedAt := time.Now()
	fields := map[string]any{}
	defer func() { observe(ctx, s.observer, "import", startedAt, err, fields) }()

	if errs := importer.ValidateImportSchema(schema); len(errs) > 0 {
		return nil, formatValidationErrors(errs)
	}

	bundles, err := importer.Convert(schema)
	if err != nil {
		return nil, fmt.Errorf("converting import schema: %w", err)
	}

	result = &ImportResult{}
	now := time.Now().UTC().Truncate(time.Second)
	today := calendar.Today(s.clock, s.loc)

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		activities := repository.NewSQLActivityRepo(tx)
		goals := repository.NewSQLGoalRepo(tx)
		sessions := repository.NewSQLSessionRepo(tx)

		for _, b := range bundles {
			a := b.Activity
			if _, err := activities.GetByName(ctx, a.Name); err == nil {
				return fmt.Errorf("%w: %q", ErrActivityExists, a.Name)
			} else if !errors.Is(err, repository.ErrNotFound) {
				return err
			}

			a.ID = uuid.New().String()
			a.CreatedAt = now
			a.UpdatedAt = now
			if err := activities.Create(ctx, a); err != nil {
				return fmt.Errorf("creating activity %q: %w", a.Name, err)
			}

			for _, g := range b.Goals {
				base := g.Base()
				base.ID = uuid.New().String()
				base.ActivityID = a.ID
				base.CreatedAt = now
				if err := goals.Create(ctx, g); err != nil {
					return fmt.Errorf("creating goal for %q from %s: %w", a.Name, base.EffectiveDate, err)
				}
			}

			for _, sess := range b.Sessions {
				sess.ID = uuid.New().String()
				sess.ActivityID = a.ID
				sess.CreatedAt = now
				if err := sessions.Create(ctx, sess); err != nil {
					return fmt.Errorf("creating session for %q on %s: %w", a.Name, sess.CompleteDate, err)
				}
			}

			result.Activities++
			result.Goals += len(b.Goals)
			result.Sessions += len(b.Sessions)
		}

		// On a fresh store the app is treated as opened on the earliest
		// imported day so the next sweep settles the imported history.
		state, err := repository.NewSQLAppStateRepo(tx).FetchOrCreate(ctx, earliestDate(bundles, today))
		if err != nil {
			return err
		}
		// Imported activities join the sweep at the next pending date. A
		// session is settled only when its whole goal window ends before it.
		pending := state.NextPendingDate()
		for _, b := range bundles {
			for _, sess := range b.Sessions {
				end := sess.CompleteDate
				if g := effectiveGoal(b.Goals, sess.CompleteDate); g != nil {
					end = g.SessionWindowFor(sess.CompleteDate).End
				}
				if end.Before(pending) {
					result.SettledSessions++
				}
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	fields["activities"] = result.Activities
	fields["goals"] = result.Goals
	fields["sessions"] = result.Sessions
	fields["settled_sessions"] = result.SettledSessions
	return result, nil
}

// effectiveGoal picks the goal in effect on date from goals ordered by
// effective date.
func effectiveGoal(goals []domain.Goal, date calendar.Date) domain.Goal {
	var effective domain.Goal
	for _, g := range goals {
		if g.Base().EffectiveDate.After(date) {
			break
		}
		effective = g
	}
	return effective
}

// earliestDate is the first goal or session date in bundles, capped at today.
func earliestDate(bundles []*importer.ActivityBundle, today calendar.Date) calendar.Date {
	earliest := today
	for _, b := range bundles {
		for _, g := range b.Goals {
			if d := g.Base().EffectiveDate; d.Before(earliest) {
				earliest = d
			}
		}
		for _, sess := range b.Sessions {
			if sess.CompleteDate.Before(earliest) {
				earliest = sess.CompleteDate
			}
		}
	}
	return earliest
}

func formatValidationErrors(errs []error) error {
	msg := fmt.Sprintf("import validation failed (%d errors):", len(errs))
	for _, e := range errs {
		msg += "\n  - " + e.Error()
	}
	return errors.New(msg)
}

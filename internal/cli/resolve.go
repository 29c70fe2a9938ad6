package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/alexanderramin/stride/internal/domain"
	"github.com/alexanderramin/stride/internal/repository"
)

// resolveActivity looks an activity up by ID or name with a friendly error.
func resolveActivity(ctx context.Context, app *App, ref string) (*domain.Activity, error) {
	a, err := app.Activities.Resolve(ctx, ref)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, fmt.Errorf("no activity named %q (see 'stride activity list')", ref)
	}
	return a, err
}

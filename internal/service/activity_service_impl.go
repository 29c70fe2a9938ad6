package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/stride/internal/domain"
	"github.com/alexanderramin/stride/internal/repository"
	"github.com/google/uuid"
)

type activityService struct {
	activities repository.ActivityRepo
}

func NewActivityService(activities repository.ActivityRepo) ActivityService {
	return &activityService{activities: activities}
}

func (s *activityService) Create(ctx context.Context, a *domain.Activity) error {
	a.Name = strings.TrimSpace(a.Name)
	if err := a.Validate(); err != nil {
		return err
	}
	if _, err := s.activities.GetByName(ctx, a.Name); err == nil {
		return fmt.Errorf("%w: %q", ErrActivityExists, a.Name)
	} else if !errors.Is(err, repository.ErrNotFound) {
		return err
	}

	if a.ID == "" {
		a.ID = uuid.New().String()
	}
	now := time.Now().UTC().Truncate(time.Second)
	a.CreatedAt = now
	a.UpdatedAt = now
	// The sweep owns these from here on.
	a.CurrentStreakCount = 0
	a.LastGoalSuccessCheckDate = nil
	return s.activities.Create(ctx, a)
}

func (s *activityService) Resolve(ctx context.Context, ref string) (*domain.Activity, error) {
	a, err := s.activities.GetByID(ctx, ref)
	if err == nil {
		return a, nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}
	return s.activities.GetByName(ctx, ref)
}

func (s *activityService) List(ctx context.Context, includeArchived bool) ([]*domain.Activity, error) {
	return s.activities.List(ctx, includeArchived)
}

func (s *activityService) Archive(ctx context.Context, id string) error {
	return s.activities.Archive(ctx, id)
}
